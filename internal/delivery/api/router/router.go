// Package router wires the API handlers to their routes.
package router

import (
	"brewshare/internal/delivery/api/middleware"
	"brewshare/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	PostHandler    *handler.PostHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	postHandler    *handler.PostHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		postHandler:    params.PostHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Account routes; registration and login are public
	usersGroup := api.Group("/users")
	{
		usersGroup.POST("", r.accountHandler.Register)
		usersGroup.POST("/login", r.accountHandler.Login)

		usersGroup.GET("/me", r.accountHandler.GetProfile, r.authMiddleware.Authenticate)
		usersGroup.GET("/:username", r.accountHandler.GetByUsername, r.authMiddleware.Authenticate)
		usersGroup.PATCH("/:userID", r.accountHandler.UpdateAccount, r.authMiddleware.Authenticate)
		usersGroup.DELETE("/:userID", r.accountHandler.DeleteAccount, r.authMiddleware.Authenticate)
	}

	postsGroup := api.Group("/posts")
	postsGroup.Use(r.authMiddleware.Authenticate)
	{
		postsGroup.POST("", r.postHandler.CreatePost)
		postsGroup.GET("", r.postHandler.ListPosts)
		postsGroup.GET("/creator/:creatorID", r.postHandler.ListPostsByCreator)
		postsGroup.GET("/:postID", r.postHandler.GetPost)
		postsGroup.PATCH("/:postID", r.postHandler.UpdatePost)
	}
}
