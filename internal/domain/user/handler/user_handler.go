package handler

import (
	"net/http"

	"zkbugs/internal/domain/user/service"
	"zkbugs/internal/pkg/middleware"
	"zkbugs/pkg/apperr"
	"zkbugs/pkg/response"
	"zkbugs/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	service      service.UserService
	tokens       *utils.TokenIssuer
	secureCookie bool
}

// NewUserHandler 创建处理器
func NewUserHandler(s service.UserService, tokens *utils.TokenIssuer, secureCookie bool) *UserHandler {
	return &UserHandler{service: s, tokens: tokens, secureCookie: secureCookie}
}

// SigninInput 登录输入
type SigninInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordInput 找回密码输入
type ForgotPasswordInput struct {
	Email string `json:"email"`
}

// ResetPasswordInput 重置密码输入
type ResetPasswordInput struct {
	Password string `json:"password"`
}

func (h *UserHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, token, int(h.tokens.TTL().Seconds()), "/", "", h.secureCookie, true)
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return false
	}
	return true
}

// Signup 注册
// @Summary 注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body service.SignupInput true "注册信息"
// @Success 200 {string} string "Signup successful"
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /auth/signup [post]
func (h *UserHandler) Signup(c *gin.Context) {
	var input service.SignupInput
	if !bindJSON(c, &input) {
		return
	}
	if err := h.service.Signup(c.Request.Context(), input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Signup successful")
}

// Signin 登录
// @Summary 邮箱密码登录，写入 access_token Cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body SigninInput true "登录信息"
// @Success 200 {object} model.User
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /auth/signin [post]
func (h *UserHandler) Signin(c *gin.Context) {
	var input SigninInput
	if !bindJSON(c, &input) {
		return
	}
	session, err := h.service.Signin(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setSessionCookie(c, session.Token)
	response.Success(c, session.User)
}

// Google 第三方登录
// @Summary Google 登录（查找或创建用户）
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body service.GoogleInput true "Google 用户信息"
// @Success 200 {object} model.User
// @Router /auth/google [post]
func (h *UserHandler) Google(c *gin.Context) {
	var input service.GoogleInput
	if !bindJSON(c, &input) {
		return
	}
	session, err := h.service.Google(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setSessionCookie(c, session.Token)
	response.Success(c, session.User)
}

// ForgotPassword 找回密码
// @Summary 发送重置密码邮件
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body ForgotPasswordInput true "邮箱"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /auth/forgot-password [post]
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if !bindJSON(c, &input) {
		return
	}
	if err := h.service.ForgotPassword(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Password reset email sent")
}

// ResetPassword 重置密码
// @Summary 使用令牌重置密码
// @Tags Auth
// @Accept json
// @Produce json
// @Param token path string true "重置令牌"
// @Param input body ResetPasswordInput true "新密码"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Router /auth/reset-password/{token} [post]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if !bindJSON(c, &input) {
		return
	}
	if err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), input.Password); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Password has been reset")
}

// VerifyResetToken 校验重置令牌
// @Summary 校验重置令牌
// @Tags Auth
// @Produce json
// @Param token path string true "重置令牌"
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.ErrorBody
// @Router /auth/verify-reset-token/{token} [get]
func (h *UserHandler) VerifyResetToken(c *gin.Context) {
	email, err := h.service.VerifyResetToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"email": email})
}

// Signout 退出登录
// @Summary 清除会话 Cookie
// @Tags User
// @Produce json
// @Success 200 {string} string "User has been signed out"
// @Router /user/signout [post]
func (h *UserHandler) Signout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, "User has been signed out")
}

// GetUsers 获取用户列表
// @Summary 用户列表（管理员）
// @Tags User
// @Produce json
// @Param startIndex query int false "偏移量"
// @Param limit query int false "数量"
// @Param order query string false "asc 或 desc"
// @Success 200 {object} service.UserList
// @Router /user/getusers [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	var page utils.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, apperr.Validation("Invalid pagination parameters"))
		return
	}
	list, err := h.service.ListUsers(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetUser 获取单个用户
// @Summary 获取用户公开信息
// @Tags User
// @Produce json
// @Param userId path string true "用户ID"
// @Success 200 {object} model.User
// @Failure 404 {object} response.ErrorBody
// @Router /user/{userId} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateUser 更新用户
// @Summary 更新本人资料
// @Tags User
// @Accept json
// @Produce json
// @Param userId path string true "用户ID"
// @Param input body service.UpdateInput true "资料"
// @Success 200 {object} model.User
// @Failure 403 {object} response.ErrorBody
// @Router /user/update/{userId} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var input service.UpdateInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := h.service.UpdateUser(c.Request.Context(), caller.ID, c.Param("userId"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// DeleteUser 删除用户
// @Summary 删除用户（本人或管理员）
// @Tags User
// @Produce json
// @Param userId path string true "用户ID"
// @Success 200 {string} string "User has been deleted"
// @Failure 403 {object} response.ErrorBody
// @Router /user/delete/{userId} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	if err := h.service.DeleteUser(c.Request.Context(), caller.ID, caller.IsAdmin, c.Param("userId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "User has been deleted")
}
