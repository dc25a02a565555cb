package user

import (
	"zkbugs/internal/domain/user/handler"
	"zkbugs/internal/domain/user/model"
	"zkbugs/internal/domain/user/repository"
	"zkbugs/internal/domain/user/service"
	"zkbugs/internal/pkg/middleware"
	"zkbugs/internal/pkg/registry"
	"zkbugs/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UserModule 用户与认证模块
type UserModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，因为其他模块可能依赖它
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	if ctx.Config.Database.AutoMigrate {
		if err := ctx.DB.AutoMigrate(&model.User{}); err != nil {
			return err
		}
	}

	// 1. 依赖注入
	userRepo := repository.NewUserRepository(ctx.DB)
	userService := service.NewUserService(userRepo, ctx.Tokens, ctx.Mailer, ctx.Cache, ctx.Config.Client.BaseURL)
	userHandler := handler.NewUserHandler(userService, ctx.Tokens, ctx.Config.App.Env == "prod")

	// 2. 路由注册
	setupRoutes(ctx.Router, userHandler, ctx.Tokens)

	return nil
}

func setupRoutes(r *gin.RouterGroup, h *handler.UserHandler, tokens *utils.TokenIssuer) {
	// 认证路由，按 IP 限流
	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(middleware.NewIPRateLimiter(5, 20)))
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/signin", h.Signin)
		authGroup.POST("/google", h.Google)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password/:token", h.ResetPassword)
		authGroup.GET("/verify-reset-token/:token", h.VerifyResetToken)
	}

	userGroup := r.Group("/user")
	{
		userGroup.POST("/signout", h.Signout)
		userGroup.GET("/getusers", middleware.AuthMiddleware(tokens), middleware.AdminMiddleware(), h.GetUsers)
		userGroup.GET("/:userId", h.GetUser)
		userGroup.PUT("/update/:userId", middleware.AuthMiddleware(tokens), h.UpdateUser)
		userGroup.DELETE("/delete/:userId", middleware.AuthMiddleware(tokens), h.DeleteUser)
	}
}
