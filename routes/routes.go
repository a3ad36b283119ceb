package routes

import (
	"github.com/gin-gonic/gin"

	"stat-reports-api/controllers"
	"stat-reports-api/middleware"
	"stat-reports-api/models"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Stat Reports API is running",
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

			// Templates: creation spawns one open deadline per branch
			templates := protected.Group("/templates")
			{
				templates.GET("", controllers.GetTemplates)
				templates.GET("/:id", controllers.GetTemplate)
				templates.GET("/:id/download", controllers.DownloadTemplateFile)
				templates.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreateTemplate)
				templates.PUT("/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdateTemplate)
				templates.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteTemplate)
			}

			// Reports: upload and the review workflow
			reports := protected.Group("/reports")
			{
				reports.POST("/upload", controllers.UploadReport)
				reports.GET("/archive", controllers.GetArchive)
				reports.GET("/:report_id/download", controllers.DownloadReport)
				reports.DELETE("/:report_id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteReport)

				// Review actions are for reviewers and administrators
				review := reports.Group("")
				review.Use(middleware.RequireRole(models.RoleAdmin, models.RolePEB, models.RoleOBUnF))
				{
					review.POST("/:report_id/accept/:deadline_id", controllers.AcceptReport)
					review.POST("/:report_id/request-correction/:deadline_id", controllers.RequestCorrection)
					review.POST("/:report_id/reopen", controllers.ReopenReport)
				}
			}

			// Deadlines
			deadlines := protected.Group("/deadlines")
			{
				deadlines.GET("", controllers.GetOpenDeadlines)
				deadlines.GET("/pending/:branch_id", controllers.GetPendingDeadlines)
				deadlines.GET("/:id/history", controllers.GetDeadlineHistory)
				deadlines.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteDeadline)
			}

			// Comments (administrative deletion only)
			protected.DELETE("/comments/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteComment)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.DELETE("/:id", controllers.DeleteNotification)
			}

			// Branches
			branches := protected.Group("/branches")
			{
				branches.GET("", controllers.GetBranches)
				branches.GET("/:id/users", controllers.GetBranchUsers)
				branches.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreateBranch)
			}
		}
	}
}
