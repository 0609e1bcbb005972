package http

import (
	"github.com/belovedly/backend/internal/delivery/http/handler"
	"github.com/belovedly/backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	profileHandler  *handler.ProfileHandler
	matchingHandler *handler.MatchingHandler
	commentHandler  *handler.CommentHandler
	authMiddleware  *middleware.AuthMiddleware
}

func NewRouter(
	profileHandler *handler.ProfileHandler,
	matchingHandler *handler.MatchingHandler,
	commentHandler *handler.CommentHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		profileHandler:  profileHandler,
		matchingHandler: matchingHandler,
		commentHandler:  commentHandler,
		authMiddleware:  authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidations()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.GET("/:user_id", r.profileHandler.GetProfile)
			}

			// Feed routes
			feed := protected.Group("/feed")
			{
				feed.GET("/candidates", r.matchingHandler.GetCandidates)
			}

			// Interaction and match routes
			protected.POST("/interactions", r.matchingHandler.CreateSwipe)
			protected.GET("/matches", r.matchingHandler.GetMatches)

			// Comment routes
			posts := protected.Group("/posts/:post_id")
			{
				posts.GET("/comments", r.commentHandler.GetComments)
				posts.POST("/comments", r.commentHandler.AddComment)
				posts.POST("/restore-comments", r.commentHandler.RestoreComments)
				posts.POST("/comments/:comment_id/like", r.commentHandler.ToggleLike)
				posts.PUT("/comments/:comment_id", r.commentHandler.EditComment)
				posts.DELETE("/comments/:comment_id", r.commentHandler.DeleteComment)
				posts.POST("/comments/:comment_id/collapse", r.commentHandler.ToggleCollapsed)
			}
		}
	}

	return router
}
