package post

import (
	"zkbugs/internal/domain/post/handler"
	"zkbugs/internal/domain/post/model"
	"zkbugs/internal/domain/post/repository"
	"zkbugs/internal/domain/post/service"
	"zkbugs/internal/pkg/middleware"
	"zkbugs/internal/pkg/registry"
	"zkbugs/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PostModule 漏洞报告模块
type PostModule struct{}

func init() {
	registry.Register(&PostModule{})
}

func (m *PostModule) Name() string {
	return "post"
}

func (m *PostModule) Priority() int {
	return 10
}

func (m *PostModule) Init(ctx *registry.ModuleContext) error {
	if ctx.Config.Database.AutoMigrate {
		if err := ctx.DB.AutoMigrate(&model.Post{}); err != nil {
			return err
		}
	}

	// 1. 依赖注入
	postRepo := repository.NewPostRepository(ctx.DB)
	postService := service.NewPostService(postRepo, ctx.Cache)
	postHandler := handler.NewPostHandler(postService)

	// 2. 路由注册
	setupRoutes(ctx.Router, postHandler, ctx.Tokens)

	return nil
}

func setupRoutes(r *gin.RouterGroup, h *handler.PostHandler, tokens *utils.TokenIssuer) {
	g := r.Group("/post")

	// Public
	g.GET("/getposts", h.GetPosts)

	// Admin (Requires Admin Role)
	admin := g.Group("")
	admin.Use(middleware.AuthMiddleware(tokens), middleware.AdminMiddleware())
	{
		admin.POST("/create", h.CreatePost)
		admin.PUT("/updatepost/:postId/:userId", h.UpdatePost)
		admin.DELETE("/deletepost/:postId/:userId", h.DeletePost)
	}
}
