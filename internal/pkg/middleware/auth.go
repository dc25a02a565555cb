package middleware

import (
	"strings"

	"zkbugs/pkg/apperr"
	"zkbugs/pkg/response"
	"zkbugs/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AccessTokenCookie 会话 Cookie 名称
const AccessTokenCookie = "access_token"

const (
	ctxUserID  = "userID"
	ctxIsAdmin = "isAdmin"
)

// extractToken 优先读取 Cookie，其次读取 "Bearer <token>" 请求头
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AuthMiddleware JWT认证中间件，未登录返回 401
func AuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, apperr.Unauthorized("Unauthorized"))
			return
		}

		claims, err := tokens.ParseToken(tokenString)
		if err != nil {
			response.Error(c, apperr.Unauthorized("Unauthorized"))
			return
		}

		// 将 userID 和 isAdmin 存入上下文
		c.Set(ctxUserID, claims.ID)
		c.Set(ctxIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// OptionalAuthMiddleware 可选认证：Token 有效则注入用户，否则以游客身份继续
func OptionalAuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if claims, err := tokens.ParseToken(tokenString); err == nil {
				c.Set(ctxUserID, claims.ID)
				c.Set(ctxIsAdmin, claims.IsAdmin)
			}
		}
		c.Next()
	}
}

// AdminMiddleware 管理员权限中间件，需挂在 AuthMiddleware 之后
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ctxUserID); !ok {
			response.Error(c, apperr.Unauthorized("Unauthorized"))
			return
		}
		if !c.GetBool(ctxIsAdmin) {
			response.Error(c, apperr.Forbidden("You are not allowed to access this resource"))
			return
		}
		c.Next()
	}
}

// Caller 当前请求的调用者
type Caller struct {
	ID      string
	IsAdmin bool
}

// CurrentUser 读取认证中间件注入的调用者，游客返回 false
func CurrentUser(c *gin.Context) (Caller, bool) {
	id := c.GetString(ctxUserID)
	if id == "" {
		return Caller{}, false
	}
	return Caller{ID: id, IsAdmin: c.GetBool(ctxIsAdmin)}, true
}
