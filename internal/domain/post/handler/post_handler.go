package handler

import (
	"zkbugs/internal/domain/post/service"
	"zkbugs/internal/pkg/middleware"
	"zkbugs/pkg/apperr"
	"zkbugs/pkg/response"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	service service.PostService
}

func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{service: s}
}

// GetPosts 报告列表
// @Summary 按条件查询报告
// @Tags Post
// @Produce json
// @Param userId query string false "作者ID"
// @Param category query string false "分类"
// @Param slug query string false "slug"
// @Param postId query string false "报告ID"
// @Param searchTerm query string false "标题或内容关键字"
// @Param startIndex query int false "偏移量，默认 0"
// @Param limit query int false "数量，默认 9"
// @Param order query string false "asc 或 desc"
// @Success 200 {object} service.ListResult
// @Router /post/getposts [get]
func (h *PostHandler) GetPosts(c *gin.Context) {
	var q service.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperr.Validation("Invalid query parameters"))
		return
	}
	result, err := h.service.ListPosts(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreatePost 发布报告
// @Summary 发布报告（管理员）
// @Tags Post
// @Accept json
// @Produce json
// @Param input body service.CreateInput true "报告内容"
// @Success 201 {object} model.Post
// @Failure 403 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /post/create [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var input service.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}
	post, err := h.service.CreatePost(c.Request.Context(), caller.ID, caller.IsAdmin, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

// UpdatePost 更新报告
// @Summary 更新报告（作者本人且为管理员）
// @Tags Post
// @Accept json
// @Produce json
// @Param postId path string true "报告ID"
// @Param userId path string true "作者ID"
// @Param input body service.UpdateInput true "修改内容"
// @Success 200 {object} model.Post
// @Failure 403 {object} response.ErrorBody
// @Router /post/updatepost/{postId}/{userId} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var input service.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}
	post, err := h.service.UpdatePost(c.Request.Context(), caller.ID, caller.IsAdmin, c.Param("postId"), c.Param("userId"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删除报告
// @Summary 删除报告（作者本人且为管理员）
// @Tags Post
// @Produce json
// @Param postId path string true "报告ID"
// @Param userId path string true "作者ID"
// @Success 200 {string} string "The post has been deleted"
// @Failure 403 {object} response.ErrorBody
// @Router /post/deletepost/{postId}/{userId} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	if err := h.service.DeletePost(c.Request.Context(), caller.ID, caller.IsAdmin, c.Param("postId"), c.Param("userId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "The post has been deleted")
}
