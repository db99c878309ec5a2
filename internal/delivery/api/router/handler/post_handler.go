package handler

import (
	"log/slog"
	"net/http"

	"brewshare/internal/delivery/api/middleware"
	"brewshare/internal/delivery/api/response"
	domainerrors "brewshare/internal/domain/errors"
	"brewshare/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PostHandlerParams holds dependencies for PostHandler, injected by Fx.
type PostHandlerParams struct {
	fx.In

	PostUC usecase.PostUsecase
	Logger *slog.Logger
}

// PostHandler serves the /api/posts routes.
type PostHandler struct {
	postUC usecase.PostUsecase
	logger *slog.Logger
}

// NewPostHandler is the constructor for PostHandler
func NewPostHandler(params PostHandlerParams) *PostHandler {
	return &PostHandler{
		postUC: params.PostUC,
		logger: params.Logger,
	}
}

// CreatePost creates a post owned by the caller.
func (h *PostHandler) CreatePost(c echo.Context) error {
	callerID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrTokenMissing)
	}

	var req usecase.CreatePostInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	post, err := h.postUC.CreatePost(c.Request().Context(), callerID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newPostResponse(post))
}

// ListPosts returns every post, newest first.
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.postUC.ListPosts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newPostResponses(posts))
}

// GetPost returns the post identified by :postID.
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := uuid.Parse(c.Param("postID"))
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrPostNotFound)
	}

	post, err := h.postUC.GetPost(c.Request().Context(), postID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newPostResponse(post))
}

// ListPostsByCreator returns the posts created by :creatorID.
func (h *PostHandler) ListPostsByCreator(c echo.Context) error {
	creatorID, err := uuid.Parse(c.Param("creatorID"))
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrAccountNotFound)
	}

	posts, err := h.postUC.ListPostsByCreator(c.Request().Context(), creatorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newPostResponses(posts))
}

// UpdatePost applies a partial update to a post owned by the caller.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	callerID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrTokenMissing)
	}

	postID, err := uuid.Parse(c.Param("postID"))
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrPostNotFound)
	}

	var req usecase.UpdatePostInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post update input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	post, err := h.postUC.UpdatePost(c.Request().Context(), callerID, postID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newPostResponse(post))
}
