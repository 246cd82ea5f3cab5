package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/middleware"
)

// ClubController handles club lifecycle and membership operations
type ClubController struct {
	clubService services.ClubService
}

// NewClubController creates a new ClubController
func NewClubController(clubService services.ClubService) *ClubController {
	return &ClubController{clubService: clubService}
}

// List returns clubs matching the filter
// @Summary List clubs
// @Description Lists clubs. Non-staff callers only see approved clubs; staff may filter by approval status.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param status query string false "approved or pending (staff only)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Clubs retrieved"
// @Router /clubs [get]
func (c *ClubController) List(ctx *gin.Context) {
	var filter dto.ClubFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	clubs, total, err := c.clubService.List(ctx.Request.Context(), currentActor(ctx), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.NewPaginatedResponse(clubs, filter.Page, filter.PageSize, total), "Clubs retrieved"))
}

// Get returns a single club with its membership list
// @Summary Get a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=models.Club} "Club retrieved"
// @Failure 404 {object} dto.APIResponse "Club not found"
// @Router /clubs/{id} [get]
func (c *ClubController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	club, err := c.clubService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club, "Club retrieved"))
}

// Create submits a new club with the caller as advisor
// @Summary Create a club
// @Description Submits a new club. Clubs by admins are approved immediately; all others await approval.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClubRequest true "Club fields"
// @Success 201 {object} dto.APIResponse{data=models.Club} "Club created"
// @Failure 409 {object} dto.APIResponse "Club name already taken"
// @Router /clubs [post]
func (c *ClubController) Create(ctx *gin.Context) {
	var req dto.CreateClubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	club, err := c.clubService.Create(ctx.Request.Context(), currentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(club, "Club created"))
}

// Update patches a club's fields
// @Summary Update a club
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.UpdateClubRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Club} "Club updated"
// @Failure 403 {object} dto.APIResponse "Not the advisor or an admin"
// @Router /clubs/{id} [put]
func (c *ClubController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateClubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	club, err := c.clubService.Update(ctx.Request.Context(), currentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club, "Club updated"))
}

// Delete removes a club
// @Summary Delete a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse "Club deleted"
// @Failure 403 {object} dto.APIResponse "Not the advisor or an admin"
// @Router /clubs/{id} [delete]
func (c *ClubController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.Delete(ctx.Request.Context(), currentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Club deleted"))
}

// Approve moves a pending club to approved
// @Summary Approve a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=models.Club} "Club approved"
// @Failure 403 {object} dto.APIResponse "Faculty or admin role required"
// @Failure 409 {object} dto.APIResponse "Club already approved"
// @Router /clubs/{id}/approve [post]
func (c *ClubController) Approve(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	club, err := c.clubService.Approve(ctx.Request.Context(), currentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club, "Club approved"))
}

// Reject removes a pending club
// @Summary Reject a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse "Club rejected"
// @Failure 403 {object} dto.APIResponse "Faculty or admin role required"
// @Router /clubs/{id}/reject [post]
func (c *ClubController) Reject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.Reject(ctx.Request.Context(), currentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Club rejected"))
}

// Join adds the caller to the membership list
// @Summary Join a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=models.Club} "Joined"
// @Failure 409 {object} dto.APIResponse "Capacity reached or already a member"
// @Failure 422 {object} dto.APIResponse "Club not approved"
// @Router /clubs/{id}/members [post]
func (c *ClubController) Join(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	club, err := c.clubService.Join(ctx.Request.Context(), currentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club, "Joined"))
}

// Leave removes the caller's membership
// @Summary Leave a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse "Left"
// @Failure 409 {object} dto.APIResponse "Not a member"
// @Router /clubs/{id}/members [delete]
func (c *ClubController) Leave(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubService.Leave(ctx.Request.Context(), currentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Left"))
}

// UpdateMemberRole changes a member's office
// @Summary Change a member's role
// @Description Changes a club member's office. Allowed for the advisor, the president and admins.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param userId path int true "Member's user ID"
// @Param request body dto.UpdateMemberRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse{data=models.Club} "Role updated"
// @Failure 403 {object} dto.APIResponse "Not the advisor, president or an admin"
// @Failure 404 {object} dto.APIResponse "Member not found"
// @Router /clubs/{id}/members/{userId}/role [put]
func (c *ClubController) UpdateMemberRole(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	var req dto.UpdateMemberRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	club, err := c.clubService.UpdateMemberRole(ctx.Request.Context(), currentActor(ctx), id, userID, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club, "Role updated"))
}
