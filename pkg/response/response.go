package response

import (
	"net/http"

	"zkbugs/pkg/apperr"
	"zkbugs/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorBody 统一错误响应结构
type ErrorBody struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// Success 成功响应，载荷原样输出
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 仅返回提示信息的成功响应
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

// Error 错误响应，按错误分类映射状态码
func Error(c *gin.Context, err error) {
	e := apperr.From(err)
	status := e.StatusCode()
	if status >= http.StatusInternalServerError {
		logger.Log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, ErrorBody{
		Success:    false,
		StatusCode: status,
		Message:    e.Message,
	})
}

// TooManyRequests 限流响应
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorBody{
		Success:    false,
		StatusCode: http.StatusTooManyRequests,
		Message:    "Too many requests",
	})
}
