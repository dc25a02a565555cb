package handler

import (
	"zkbugs/internal/domain/bookmark/service"
	"zkbugs/internal/pkg/middleware"
	"zkbugs/pkg/apperr"
	"zkbugs/pkg/response"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct {
	service service.BookmarkService
}

func NewBookmarkHandler(s service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{service: s}
}

// AddInput 收藏输入
type AddInput struct {
	PostID string `json:"postId"`
}

// AddBookmark 收藏
// @Summary 收藏报告
// @Tags Bookmark
// @Accept json
// @Produce json
// @Param input body AddInput true "报告ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /bookmark/add [post]
func (h *BookmarkHandler) AddBookmark(c *gin.Context) {
	var input AddInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}
	h.add(c, input.PostID)
}

// BookmarkPost 收藏（旧接口）
// @Summary 收藏报告（兼容旧路由）
// @Tags Bookmark
// @Produce json
// @Param postId path string true "报告ID"
// @Success 200 {object} map[string]interface{}
// @Router /post/{postId}/bookmark [post]
func (h *BookmarkHandler) BookmarkPost(c *gin.Context) {
	h.add(c, c.Param("postId"))
}

func (h *BookmarkHandler) add(c *gin.Context, postID string) {
	caller, _ := middleware.CurrentUser(c)
	if err := h.service.AddBookmark(c.Request.Context(), caller.ID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Post bookmarked successfully")
}

// RemoveBookmark 取消收藏
// @Summary 取消收藏
// @Tags Bookmark
// @Produce json
// @Param postId path string true "报告ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /bookmark/remove/{postId} [delete]
func (h *BookmarkHandler) RemoveBookmark(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	if err := h.service.RemoveBookmark(c.Request.Context(), caller.ID, c.Param("postId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Bookmark removed successfully")
}

// ListBookmarkedPosts 我的收藏
// @Summary 我收藏的报告，按收藏时间排序
// @Tags Bookmark
// @Produce json
// @Success 200 {array} model.Post
// @Router /bookmark/posts [get]
func (h *BookmarkHandler) ListBookmarkedPosts(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	posts, err := h.service.ListBookmarkedPosts(c.Request.Context(), caller.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// BookmarkStatus 收藏状态
// @Summary 是否已收藏，游客返回 false
// @Tags Bookmark
// @Produce json
// @Param postId path string true "报告ID"
// @Success 200 {object} map[string]bool
// @Router /bookmark/status/{postId} [get]
func (h *BookmarkHandler) BookmarkStatus(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	ok, err := h.service.IsBookmarked(c.Request.Context(), caller.ID, c.Param("postId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"isBookmarked": ok})
}
