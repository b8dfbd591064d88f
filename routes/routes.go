package routes

import (
	"paper-submission-api/controllers"
	"paper-submission-api/middleware"
	"paper-submission-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/refresh", controllers.RefreshToken)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Paper Submission API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Events
			events := protected.Group("/events")
			{
				events.GET("", controllers.GetEvents)
				events.GET("/:id", controllers.GetEvent)
				events.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreateEvent)
				events.PUT("/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdateEvent)
			}

			// Submissions
			submissions := protected.Group("/submissions")
			{
				submissions.GET("", controllers.GetSubmissions)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.POST("", controllers.CreateSubmission)
				submissions.PUT("/:id", controllers.UpdateSubmission)
				submissions.DELETE("/:id", controllers.DeleteSubmission)
				submissions.POST("/:id/submit", controllers.SubmitSubmission)

				// Reviewer workspace
				submissions.GET("/:id/review", middleware.RequireRole(models.RoleReviewer, models.RoleAdmin), controllers.GetMyReview)
				submissions.PUT("/:id/review", middleware.RequireRole(models.RoleReviewer, models.RoleAdmin), controllers.SaveReview)

				// Admin: reviewer assignment & decisions
				admin := submissions.Group("")
				admin.Use(middleware.RequireRole(models.RoleAdmin))
				{
					admin.GET("/:id/assignments", controllers.GetSubmissionAssignments)
					admin.POST("/:id/reviewers", controllers.AssignReviewer)
					admin.DELETE("/:id/reviewers/:reviewer_id", controllers.RemoveReviewer)
					admin.GET("/:id/reviews", controllers.GetSubmissionReviews)
					admin.GET("/:id/review-stats", controllers.GetReviewStats)
					admin.POST("/:id/decision", controllers.AdminDecision)
					admin.POST("/:id/status", controllers.OverrideStatus)
					admin.POST("/:id/notify-decision", controllers.SendDecisionNotification)
				}
			}

			// Review assignments (reviewer's own)
			protected.GET("/assignments", middleware.RequireRole(models.RoleReviewer, models.RoleAdmin), controllers.GetMyAssignments)
		}
	}
}
