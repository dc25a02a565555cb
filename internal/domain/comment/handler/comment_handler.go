package handler

import (
	"zkbugs/internal/domain/comment/service"
	"zkbugs/internal/pkg/middleware"
	"zkbugs/pkg/apperr"
	"zkbugs/pkg/response"
	"zkbugs/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(s service.CommentService) *CommentHandler {
	return &CommentHandler{service: s}
}

// EditInput 编辑评论输入
type EditInput struct {
	Content string `json:"content"`
}

// CreateComment 发表评论
// @Summary 发表评论
// @Tags Comment
// @Accept json
// @Produce json
// @Param input body service.CreateInput true "评论内容"
// @Success 200 {object} model.Comment
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /comment/create [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var input service.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}
	comment, err := h.service.CreateComment(c.Request.Context(), caller.ID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

// GetPostComments 报告下的评论
// @Summary 报告下的评论，最新在前
// @Tags Comment
// @Produce json
// @Param postId path string true "报告ID"
// @Success 200 {array} model.Comment
// @Router /comment/getPostComments/{postId} [get]
func (h *CommentHandler) GetPostComments(c *gin.Context) {
	comments, err := h.service.ListCommentsForPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

// LikeComment 点赞/取消点赞
// @Summary 切换点赞状态
// @Tags Comment
// @Produce json
// @Param commentId path string true "评论ID"
// @Success 200 {object} model.Comment
// @Failure 404 {object} response.ErrorBody
// @Router /comment/likeComment/{commentId} [put]
func (h *CommentHandler) LikeComment(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	comment, err := h.service.ToggleLike(c.Request.Context(), c.Param("commentId"), caller.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

// EditComment 编辑评论
// @Summary 编辑评论（作者或管理员）
// @Tags Comment
// @Accept json
// @Produce json
// @Param commentId path string true "评论ID"
// @Param input body EditInput true "新内容"
// @Success 200 {object} model.Comment
// @Failure 403 {object} response.ErrorBody
// @Router /comment/editComment/{commentId} [put]
func (h *CommentHandler) EditComment(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var input EditInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}
	comment, err := h.service.EditComment(c.Request.Context(), c.Param("commentId"), caller.ID, caller.IsAdmin, input.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

// DeleteComment 删除评论
// @Summary 删除评论（作者或管理员）
// @Tags Comment
// @Produce json
// @Param commentId path string true "评论ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} response.ErrorBody
// @Router /comment/deleteComment/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	if err := h.service.DeleteComment(c.Request.Context(), c.Param("commentId"), caller.ID, caller.IsAdmin); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Comment has been deleted")
}

// GetComments 评论管理列表
// @Summary 全部评论（管理员）
// @Tags Comment
// @Produce json
// @Param startIndex query int false "偏移量"
// @Param limit query int false "数量"
// @Param order query string false "asc 或 desc"
// @Success 200 {object} service.CommentList
// @Router /comment/getcomments [get]
func (h *CommentHandler) GetComments(c *gin.Context) {
	var page utils.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, apperr.Validation("Invalid query parameters"))
		return
	}
	list, err := h.service.ListAllComments(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
