package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/middleware"
)

// LostFoundController handles lost and found item operations
type LostFoundController struct {
	lostFoundService services.LostFoundService
}

// NewLostFoundController creates a new LostFoundController
func NewLostFoundController(lostFoundService services.LostFoundService) *LostFoundController {
	return &LostFoundController{lostFoundService: lostFoundService}
}

// List returns items matching the filter
// @Summary List lost and found items
// @Description Lists items. Supplying lat, lon and maxDistance together filters by proximity.
// @Tags lost-found
// @Produce json
// @Security BearerAuth
// @Param category query string false "lost or found"
// @Param status query string false "Filter by status"
// @Param lat query number false "Latitude for proximity filtering"
// @Param lon query number false "Longitude for proximity filtering"
// @Param maxDistance query number false "Maximum distance in km"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Items retrieved"
// @Failure 400 {object} dto.APIResponse "Partial geo filter"
// @Router /lost-found [get]
func (c *LostFoundController) List(ctx *gin.Context) {
	var filter dto.LostFoundFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	items, total, err := c.lostFoundService.List(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.NewPaginatedResponse(items, filter.Page, filter.PageSize, total), "Items retrieved"))
}

// Get returns a single item
// @Summary Get a lost and found item
// @Tags lost-found
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} dto.APIResponse{data=models.LostFoundItem} "Item retrieved"
// @Failure 404 {object} dto.APIResponse "Item not found"
// @Router /lost-found/{id} [get]
func (c *LostFoundController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	item, err := c.lostFoundService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, "Item retrieved"))
}

// Create reports a lost or found item
// @Summary Report an item
// @Tags lost-found
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLostFoundRequest true "Item fields"
// @Success 201 {object} dto.APIResponse{data=models.LostFoundItem} "Item reported"
// @Failure 400 {object} dto.APIResponse "Invalid request format or partial coordinates"
// @Router /lost-found [post]
func (c *LostFoundController) Create(ctx *gin.Context) {
	var req dto.CreateLostFoundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	item, err := c.lostFoundService.Create(ctx.Request.Context(), currentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item, "Item reported"))
}

// Update patches an item's descriptive fields
// @Summary Update an item
// @Tags lost-found
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body dto.UpdateLostFoundRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.LostFoundItem} "Item updated"
// @Failure 403 {object} dto.APIResponse "Not the reporter or an admin"
// @Router /lost-found/{id} [put]
func (c *LostFoundController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateLostFoundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	item, err := c.lostFoundService.Update(ctx.Request.Context(), currentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, "Item updated"))
}

// Delete removes an item report
// @Summary Delete an item
// @Tags lost-found
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} dto.APIResponse "Item deleted"
// @Failure 403 {object} dto.APIResponse "Not the reporter or an admin"
// @Router /lost-found/{id} [delete]
func (c *LostFoundController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.lostFoundService.Delete(ctx.Request.Context(), currentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Item deleted"))
}

// Claim moves an open item to claimed
// @Summary Claim an item
// @Description Claims an open item. Claiming your own report is rejected.
// @Tags lost-found
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} dto.APIResponse{data=models.LostFoundItem} "Item claimed"
// @Failure 409 {object} dto.APIResponse "Item not open or claiming own report"
// @Router /lost-found/{id}/claim [post]
func (c *LostFoundController) Claim(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	item, err := c.lostFoundService.Claim(ctx.Request.Context(), currentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, "Item claimed"))
}

// Resolve moves a claimed item to resolved
// @Summary Resolve an item
// @Description Resolves a claimed item. Allowed for the reporter, the claimant and staff.
// @Tags lost-found
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} dto.APIResponse{data=models.LostFoundItem} "Item resolved"
// @Failure 403 {object} dto.APIResponse "Not involved and not staff"
// @Failure 409 {object} dto.APIResponse "Item not claimed"
// @Router /lost-found/{id}/resolve [post]
func (c *LostFoundController) Resolve(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	item, err := c.lostFoundService.Resolve(ctx.Request.Context(), currentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, "Item resolved"))
}

// Match pairs a lost report with a found report
// @Summary Match two items
// @Description Links a lost report and a found report; staff only. Both items must be open and of opposite categories.
// @Tags lost-found
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body dto.MatchLostFoundRequest true "Item to match with"
// @Success 200 {object} dto.APIResponse{data=models.LostFoundItem} "Items matched"
// @Failure 403 {object} dto.APIResponse "Faculty or admin role required"
// @Failure 409 {object} dto.APIResponse "Items not matchable"
// @Router /lost-found/{id}/match [post]
func (c *LostFoundController) Match(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.MatchLostFoundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	item, err := c.lostFoundService.Match(ctx.Request.Context(), currentActor(ctx), id, req.MatchedItemID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, "Items matched"))
}
