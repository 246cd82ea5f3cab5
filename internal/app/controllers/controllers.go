// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
)

// currentActor reads the caller's identity from the request context. The
// auth middleware fills these keys; anonymous requests yield a zero Actor.
func currentActor(ctx *gin.Context) models.Actor {
	actor := models.Actor{}
	if userID, ok := ctx.Get("userID"); ok {
		if id, ok := userID.(int64); ok {
			actor.ID = id
		}
	}
	if email, ok := ctx.Get("email"); ok {
		if e, ok := email.(string); ok {
			actor.Email = e
		}
	}
	if role, ok := ctx.Get("role"); ok {
		if r, ok := role.(string); ok {
			actor.Role = models.Role(r)
		}
	}
	return actor
}

// parseIDParam reads a positive int64 path parameter. On failure it writes
// the error response and returns false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
