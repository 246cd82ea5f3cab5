package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/middleware"
)

// AnnouncementController handles announcement operations
type AnnouncementController struct {
	announcementService services.AnnouncementService
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementService services.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{announcementService: announcementService}
}

// List returns announcements matching the filter
// @Summary List announcements
// @Description Lists announcements. Non-staff callers only see active, unexpired ones.
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param priority query string false "Filter by priority"
// @Param audience query string false "Filter by target audience"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Announcements retrieved"
// @Router /announcements [get]
func (c *AnnouncementController) List(ctx *gin.Context) {
	var filter dto.AnnouncementFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	announcements, total, err := c.announcementService.List(ctx.Request.Context(), currentActor(ctx), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.NewPaginatedResponse(announcements, filter.Page, filter.PageSize, total), "Announcements retrieved"))
}

// Get returns a single announcement and counts the view
// @Summary Get an announcement
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.APIResponse{data=models.Announcement} "Announcement retrieved"
// @Failure 404 {object} dto.APIResponse "Announcement not found or expired"
// @Router /announcements/{id} [get]
func (c *AnnouncementController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	a, err := c.announcementService.Get(ctx.Request.Context(), currentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(a, "Announcement retrieved"))
}

// Create posts a new announcement
// @Summary Post an announcement
// @Description Posts an announcement; faculty or admin only. Department and year audiences require the matching field.
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAnnouncementRequest true "Announcement fields"
// @Success 201 {object} dto.APIResponse{data=models.Announcement} "Announcement posted"
// @Failure 403 {object} dto.APIResponse "Faculty or admin role required"
// @Router /announcements [post]
func (c *AnnouncementController) Create(ctx *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	a, err := c.announcementService.Create(ctx.Request.Context(), currentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(a, "Announcement posted"))
}

// Update patches an announcement
// @Summary Update an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param request body dto.UpdateAnnouncementRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Announcement} "Announcement updated"
// @Failure 403 {object} dto.APIResponse "Not the poster or an admin"
// @Router /announcements/{id} [put]
func (c *AnnouncementController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	a, err := c.announcementService.Update(ctx.Request.Context(), currentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(a, "Announcement updated"))
}

// Delete removes an announcement
// @Summary Delete an announcement
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.APIResponse "Announcement deleted"
// @Failure 403 {object} dto.APIResponse "Not the poster or an admin"
// @Router /announcements/{id} [delete]
func (c *AnnouncementController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.announcementService.Delete(ctx.Request.Context(), currentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Announcement deleted"))
}

// MarkRead records the caller's read receipt
// @Summary Mark an announcement as read
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.APIResponse "Marked as read"
// @Failure 404 {object} dto.APIResponse "Announcement not found"
// @Router /announcements/{id}/read [post]
func (c *AnnouncementController) MarkRead(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.announcementService.MarkRead(ctx.Request.Context(), currentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Marked as read"))
}
