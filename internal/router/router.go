package router

import (
	"freeboard/internal/handlers"
	"freeboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	boardHandler := handlers.NewBoardHandler()
	commentHandler := handlers.NewCommentHandler()
	feelingHandler := handlers.NewFeelingHandler()
	galleryHandler := handlers.NewGalleryHandler()

	api := r.Group("/api")

	// Public Routes
	api.POST("/signup", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)

	api.GET("/board/free", boardHandler.List)
	api.GET("/board/free/categories", boardHandler.Categories)
	api.GET("/board/free/:seq", boardHandler.Detail)
	api.GET("/board/free/:seq/history", boardHandler.History)
	api.GET("/board/free/:seq/comments", commentHandler.List)
	api.GET("/galleries/:id", galleryHandler.Detail)

	// Feelings resolve the outcome themselves, anonymous included, so they
	// stay outside the auth group.
	api.POST("/board/free/:seq/:kind", feelingHandler.SubmitArticle)
	api.POST("/comments/:cid/:kind", feelingHandler.SubmitComment)

	// Protected Routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/board/free", boardHandler.Create)
		authorized.PUT("/board/free/:seq", boardHandler.Edit)
		authorized.DELETE("/board/free/:seq", boardHandler.Delete)
		authorized.POST("/board/free/:seq/notice", boardHandler.SetNotice)
		authorized.DELETE("/board/free/:seq/notice", boardHandler.ClearNotice)

		authorized.POST("/board/free/:seq/comments", commentHandler.Create)

		authorized.POST("/galleries", galleryHandler.Upload)
		authorized.DELETE("/galleries/:id", galleryHandler.Remove)
	}
}
