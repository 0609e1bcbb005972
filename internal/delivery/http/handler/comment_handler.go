package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/belovedly/backend/internal/domain"
	"github.com/belovedly/backend/internal/usecase/comments"
	"github.com/belovedly/backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentsUseCase *comments.CommentsUseCase
	profileUseCase  *profile.ProfileUseCase
}

func NewCommentHandler(commentsUseCase *comments.CommentsUseCase, profileUseCase *profile.ProfileUseCase) *CommentHandler {
	return &CommentHandler{
		commentsUseCase: commentsUseCase,
		profileUseCase:  profileUseCase,
	}
}

// CommentsResponse is a sorted comment forest for a post
type CommentsResponse struct {
	Comments     []domain.Comment         `json:"comments"`
	SortOption   domain.CommentSortOption `json:"sort_option"`
	MaxViewDepth int                      `json:"max_view_depth"`
	Total        int                      `json:"total"`
}

type listCommentsQuery struct {
	Sort string `form:"sort" binding:"omitempty,sort_option"`
}

// GetComments handles GET /posts/:post_id/comments
// @Summary Get post comments
// @Description Get the sorted comment forest for a post
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Param post_id path string true "Post ID"
// @Param sort query string false "Sort option" Enums(newest, oldest, most_liked, most_replies)
// @Success 200 {object} CommentsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts/{post_id}/comments [get]
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID := c.Param("post_id")

	var query listCommentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "unknown sort option",
		})
		return
	}

	option := domain.CommentSortOption(query.Sort)
	forest, err := h.commentsUseCase.GetComments(c.Request.Context(), postID, option)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to load comments",
		})
		return
	}

	if !option.Valid() {
		option = h.commentsUseCase.GetSortOption(c.Request.Context(), postID)
	} else {
		// Remember the last explicitly requested order for this post
		_ = h.commentsUseCase.SetSortOption(c.Request.Context(), postID, option)
	}

	c.JSON(http.StatusOK, CommentsResponse{
		Comments:     forest,
		SortOption:   option,
		MaxViewDepth: h.commentsUseCase.MaxViewDepth(),
		Total:        len(forest),
	})
}

// AddComment handles POST /posts/:post_id/comments
// @Summary Add a comment or reply
// @Description Add a comment; with parent_id it becomes a nested reply
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param post_id path string true "Post ID"
// @Param request body comments.AddReplyRequest true "Comment data"
// @Success 201 {object} domain.Comment
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts/{post_id}/comments [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	var req comments.AddReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	authorName := userID
	if p, err := h.profileUseCase.GetMyProfile(c.Request.Context(), userID); err == nil {
		authorName = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}

	comment, err := h.commentsUseCase.AddReply(c.Request.Context(), c.Param("post_id"), userID, authorName, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to add comment",
		})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ToggleLike handles POST /posts/:post_id/comments/:comment_id/like
// @Summary Toggle a comment like
// @Description Like the comment, or unlike it if already liked
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Param post_id path string true "Post ID"
// @Param comment_id path string true "Comment ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts/{post_id}/comments/{comment_id}/like [post]
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	err := h.commentsUseCase.ToggleLike(c.Request.Context(), c.Param("post_id"), c.Param("comment_id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to toggle like",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// EditCommentRequest carries the replacement content
type EditCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// EditComment handles PUT /posts/:post_id/comments/:comment_id
// @Summary Edit a comment
// @Description Edit a top-level comment inside the edit window
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param post_id path string true "Post ID"
// @Param comment_id path string true "Comment ID"
// @Param request body EditCommentRequest true "New content"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts/{post_id}/comments/{comment_id} [put]
func (h *CommentHandler) EditComment(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	var req EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	err := h.commentsUseCase.EditComment(c.Request.Context(), c.Param("post_id"), c.Param("comment_id"), req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrEditWindowExpired) {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error: "comment can no longer be edited",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to edit comment",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteComment handles DELETE /posts/:post_id/comments/:comment_id
// @Summary Delete a comment
// @Description Delete an own comment together with all of its replies
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Param post_id path string true "Post ID"
// @Param comment_id path string true "Comment ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts/{post_id}/comments/{comment_id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	err := h.commentsUseCase.DeleteComment(c.Request.Context(), c.Param("post_id"), c.Param("comment_id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotCommentAuthor) {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error: "you can only delete your own comments",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to delete comment",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// RestoreComments handles POST /posts/:post_id/restore-comments
// @Summary Restore comments from backup
// @Description Replace a post's comments with the most recent backup
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Param post_id path string true "Post ID"
// @Success 200 {object} CommentsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts/{post_id}/restore-comments [post]
func (h *CommentHandler) RestoreComments(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	postID := c.Param("post_id")
	forest, err := h.commentsUseCase.RestoreFromBackup(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to restore comments",
		})
		return
	}
	if forest == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "no backup found",
		})
		return
	}

	option := h.commentsUseCase.GetSortOption(c.Request.Context(), postID)
	c.JSON(http.StatusOK, CommentsResponse{
		Comments:     comments.SortComments(forest, option),
		SortOption:   option,
		MaxViewDepth: h.commentsUseCase.MaxViewDepth(),
		Total:        len(forest),
	})
}

// ToggleCollapsed handles POST /posts/:post_id/comments/:comment_id/collapse
// @Summary Toggle collapsed state
// @Description Collapse or expand a comment thread for the caller
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Param post_id path string true "Post ID"
// @Param comment_id path string true "Comment ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts/{post_id}/comments/{comment_id}/collapse [post]
func (h *CommentHandler) ToggleCollapsed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	collapsed, err := h.commentsUseCase.ToggleCollapsed(c.Request.Context(), userID, c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to toggle collapsed state",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"collapsed": collapsed})
}
