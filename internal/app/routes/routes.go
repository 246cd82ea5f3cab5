package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/controllers"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	eventController *controllers.EventController,
	clubController *controllers.ClubController,
	feedbackController *controllers.FeedbackController,
	lostFoundController *controllers.LostFoundController,
	announcementController *controllers.AnnouncementController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Public read routes; a valid token still identifies the caller
	// so staff see pending and non-public resources ---
	public := v1.Group("")
	public.Use(authMiddleware.OptionalJWTAuth())
	{
		public.GET("/events", eventController.List)
		public.GET("/events/:id", eventController.Get)
		public.GET("/clubs", clubController.List)
		public.GET("/clubs/:id", clubController.Get)
		public.GET("/feedback", feedbackController.List)
		public.GET("/feedback/:id", feedbackController.Get)
		public.GET("/lost-found", lostFoundController.List)
		public.GET("/lost-found/:id", lostFoundController.Get)
		public.GET("/announcements", announcementController.List)
		public.GET("/announcements/:id", announcementController.Get)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetProfile)
			users.PUT("/me", userController.UpdateProfile)

			usersAdmin := users.Group("")
			usersAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				usersAdmin.GET("", userController.List)
				usersAdmin.DELETE("/:id", userController.Deactivate)
			}
		}

		events := authenticated.Group("/events")
		{
			events.POST("", eventController.Create)
			events.PUT("/:id", eventController.Update)
			events.DELETE("/:id", eventController.Delete)
			events.POST("/:id/register", eventController.Register)
			events.DELETE("/:id/register", eventController.CancelRegistration)

			eventsStaff := events.Group("")
			eventsStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
			{
				eventsStaff.POST("/:id/approve", eventController.Approve)
				eventsStaff.POST("/:id/reject", eventController.Reject)
			}
		}

		clubs := authenticated.Group("/clubs")
		{
			clubs.POST("", clubController.Create)
			clubs.PUT("/:id", clubController.Update)
			clubs.DELETE("/:id", clubController.Delete)
			clubs.POST("/:id/members", clubController.Join)
			clubs.DELETE("/:id/members", clubController.Leave)
			clubs.PUT("/:id/members/:userId/role", clubController.UpdateMemberRole)

			clubsStaff := clubs.Group("")
			clubsStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
			{
				clubsStaff.POST("/:id/approve", clubController.Approve)
				clubsStaff.POST("/:id/reject", clubController.Reject)
			}
		}

		feedback := authenticated.Group("/feedback")
		{
			feedback.POST("", feedbackController.Create)
			feedback.PUT("/:id", feedbackController.Update)
			feedback.DELETE("/:id", feedbackController.Delete)
			feedback.POST("/:id/vote", feedbackController.Vote)

			feedbackStaff := feedback.Group("")
			feedbackStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
			{
				feedbackStaff.POST("/:id/responses", feedbackController.Respond)
			}
		}

		lostFound := authenticated.Group("/lost-found")
		{
			lostFound.POST("", lostFoundController.Create)
			lostFound.PUT("/:id", lostFoundController.Update)
			lostFound.DELETE("/:id", lostFoundController.Delete)
			lostFound.POST("/:id/claim", lostFoundController.Claim)
			lostFound.POST("/:id/resolve", lostFoundController.Resolve)

			lostFoundStaff := lostFound.Group("")
			lostFoundStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
			{
				lostFoundStaff.POST("/:id/match", lostFoundController.Match)
			}
		}

		announcements := authenticated.Group("/announcements")
		{
			announcements.POST("/:id/read", announcementController.MarkRead)

			announcementsStaff := announcements.Group("")
			announcementsStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
			{
				announcementsStaff.POST("", announcementController.Create)
				announcementsStaff.PUT("/:id", announcementController.Update)
				announcementsStaff.DELETE("/:id", announcementController.Delete)
			}
		}

		// Live notification feed
		authenticated.GET("/ws", wsHandler.HandleConnection)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Success: true,
			Data:    gin.H{"status": "ok"},
		})
	})
}
