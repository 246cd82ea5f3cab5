package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/middleware"
)

// FeedbackController handles feedback threads, responses and votes
type FeedbackController struct {
	feedbackService services.FeedbackService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService services.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// List returns feedback entries matching the filter
// @Summary List feedback
// @Description Lists feedback. Non-staff callers see public entries plus their own private ones.
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Feedback retrieved"
// @Router /feedback [get]
func (c *FeedbackController) List(ctx *gin.Context) {
	var filter dto.FeedbackFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	entries, total, err := c.feedbackService.List(ctx.Request.Context(), currentActor(ctx), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.NewPaginatedResponse(entries, filter.Page, filter.PageSize, total), "Feedback retrieved"))
}

// Get returns a single feedback thread with responses and votes
// @Summary Get a feedback thread
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Success 200 {object} dto.APIResponse{data=models.Feedback} "Feedback retrieved"
// @Failure 404 {object} dto.APIResponse "Feedback not found"
// @Router /feedback/{id} [get]
func (c *FeedbackController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	f, err := c.feedbackService.Get(ctx.Request.Context(), currentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(f, "Feedback retrieved"))
}

// Create submits a new feedback entry
// @Summary Submit feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFeedbackRequest true "Feedback fields"
// @Success 201 {object} dto.APIResponse{data=models.Feedback} "Feedback submitted"
// @Router /feedback [post]
func (c *FeedbackController) Create(ctx *gin.Context) {
	var req dto.CreateFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	f, err := c.feedbackService.Create(ctx.Request.Context(), currentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(f, "Feedback submitted"))
}

// Update patches a feedback entry
// @Summary Update feedback
// @Description Owners edit their own text; status changes require faculty or admin role.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Param request body dto.UpdateFeedbackRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Feedback} "Feedback updated"
// @Failure 403 {object} dto.APIResponse "Not the submitter or insufficient role"
// @Router /feedback/{id} [put]
func (c *FeedbackController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	f, err := c.feedbackService.Update(ctx.Request.Context(), currentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(f, "Feedback updated"))
}

// Delete removes a feedback entry
// @Summary Delete feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Success 200 {object} dto.APIResponse "Feedback deleted"
// @Failure 403 {object} dto.APIResponse "Not the submitter or an admin"
// @Router /feedback/{id} [delete]
func (c *FeedbackController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.feedbackService.Delete(ctx.Request.Context(), currentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Feedback deleted"))
}

// Respond posts a staff response on a thread
// @Summary Respond to feedback
// @Description Posts a staff response. The first response moves open feedback to in-progress and assigns it to the responder.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Param request body dto.RespondFeedbackRequest true "Response text"
// @Success 201 {object} dto.APIResponse{data=models.Feedback} "Response added"
// @Failure 403 {object} dto.APIResponse "Faculty or admin role required"
// @Router /feedback/{id}/responses [post]
func (c *FeedbackController) Respond(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RespondFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	f, err := c.feedbackService.Respond(ctx.Request.Context(), currentActor(ctx), id, req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(f, "Response added"))
}

// Vote records or switches the caller's vote
// @Summary Vote on feedback
// @Description Records an up or down vote. Voting again with the other direction switches the vote.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Param request body dto.VoteFeedbackRequest true "Vote direction"
// @Success 200 {object} dto.APIResponse{data=models.Feedback} "Vote recorded"
// @Router /feedback/{id}/vote [post]
func (c *FeedbackController) Vote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.VoteFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	f, err := c.feedbackService.Vote(ctx.Request.Context(), currentActor(ctx), id, req.VoteType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(f, "Vote recorded"))
}
