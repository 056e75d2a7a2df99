package main

import (
	"github.com/collabconnect/backend/internal/handlers"
	"github.com/collabconnect/backend/internal/middleware"
	"github.com/collabconnect/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiters: tight on login, looser on vote toggling.
	loginLimiter := middleware.NewRateLimiter(1, 5)
	voteLimiter := middleware.NewRateLimiter(5, 20)

	// Health check
	healthHandler := handlers.NewHealthHandler(svc.db)
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", loginLimiter.Middleware(), svc.authHandler.Register)
			auth.POST("/login", loginLimiter.Middleware(), svc.authHandler.Login)
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Projects
			projectHandler := handlers.NewProjectHandler(svc.db)
			protected.GET("/projects", projectHandler.List)
			protected.GET("/projects/:id", projectHandler.GetByID)
			protected.POST("/projects", projectHandler.Create)
			protected.POST("/projects/:id/complete", projectHandler.Complete)

			// Collaborator lifecycle
			collabHandler := handlers.NewCollabHandler(svc.db)
			protected.POST("/projects/:id/collaborators", collabHandler.RequestToJoin)
			protected.POST("/projects/:id/collaborators/approve", collabHandler.Approve)
			protected.POST("/projects/:id/collaborators/reject", collabHandler.Reject)
			protected.GET("/collabs", collabHandler.ListCollabs)

			// Project reviews
			commentHandler := handlers.NewCommentHandler(svc.db)
			protected.GET("/projects/:id/comments", commentHandler.List)
			protected.POST("/projects/:id/comments", commentHandler.Post)

			// Project chat
			chatHandler := handlers.NewChatHandler(svc.db)
			protected.GET("/projects/:id/chat", chatHandler.Messages)
			protected.POST("/projects/:id/chat", chatHandler.PostMessage)

			// Doubts, answers and voting
			doubtHandler := handlers.NewDoubtHandler(svc.db)
			protected.GET("/doubts", doubtHandler.ListDoubts)
			protected.POST("/doubts", doubtHandler.PostDoubt)
			protected.GET("/doubts/:id/answers", doubtHandler.ListAnswers)
			protected.POST("/answers", doubtHandler.PostAnswer)
			protected.POST("/answers/:id/vote", voteLimiter.Middleware(), doubtHandler.CastVote)

			// Courses
			courseHandler := handlers.NewCourseHandler(svc.db)
			protected.GET("/courses", courseHandler.List)
			protected.GET("/courses/:id", courseHandler.GetByID)
			protected.POST("/courses", courseHandler.Create)
			protected.GET("/courses/:id/feedback", courseHandler.ListFeedback)
			protected.POST("/courses/:id/feedback", courseHandler.PostFeedback)

			// User profiles
			userHandler := handlers.NewUserHandler(svc.db)
			protected.GET("/users/:id/profile", userHandler.GetProfile)
		}

		// Admin only routes, with write-operation auditing
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.AuditLog(svc.systemLogService))
		{
			userHandler := handlers.NewUserHandler(svc.db)
			admin.GET("/users", userHandler.List)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)

			systemLogHandler := handlers.NewSystemLogHandler(svc.systemLogService)
			admin.GET("/logs", systemLogHandler.List)
		}
	}
}
