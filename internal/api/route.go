package api

import (
	"Arbor/internal/api/middleware"
	"Arbor/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"Code":    200,
			"Message": "ok",
			"Data":    nil,
		})
	})

	apiGroup := r.Group("/api/v1")
	{
		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/:post_id/comments", group.CommentHandler.GetCommentTree)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/:post_id/comments", group.CommentHandler.CreateComment)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		{
			authOptGroup := commentGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/:comment_id/votes", group.VoteHandler.GetVoteState)
			}

			authGroup := commentGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
				authGroup.POST("/:comment_id/votes", group.VoteHandler.ToggleVote)
			}
		}
	}

	return r
}
