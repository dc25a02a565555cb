package bookmark

import (
	"zkbugs/internal/domain/bookmark/handler"
	"zkbugs/internal/domain/bookmark/model"
	"zkbugs/internal/domain/bookmark/repository"
	"zkbugs/internal/domain/bookmark/service"
	postRepository "zkbugs/internal/domain/post/repository"
	postService "zkbugs/internal/domain/post/service"
	"zkbugs/internal/pkg/middleware"
	"zkbugs/internal/pkg/registry"
	"zkbugs/pkg/utils"

	"github.com/gin-gonic/gin"
)

// BookmarkModule 收藏模块
type BookmarkModule struct{}

func init() {
	registry.Register(&BookmarkModule{})
}

func (m *BookmarkModule) Name() string {
	return "bookmark"
}

func (m *BookmarkModule) Priority() int {
	// 依赖 posts 表
	return 20
}

func (m *BookmarkModule) Init(ctx *registry.ModuleContext) error {
	if ctx.Config.Database.AutoMigrate {
		if err := ctx.DB.AutoMigrate(&model.Bookmark{}); err != nil {
			return err
		}
	}

	// 1. 依赖注入
	posts := postService.NewPostService(postRepository.NewPostRepository(ctx.DB), ctx.Cache)
	bService := service.NewBookmarkService(repository.NewBookmarkRepository(ctx.DB), posts)
	bHandler := handler.NewBookmarkHandler(bService)

	// 2. 路由注册
	setupRoutes(ctx.Router, bHandler, ctx.Tokens)

	return nil
}

func setupRoutes(r *gin.RouterGroup, h *handler.BookmarkHandler, tokens *utils.TokenIssuer) {
	auth := middleware.AuthMiddleware(tokens)

	g := r.Group("/bookmark")
	{
		g.POST("/add", auth, h.AddBookmark)
		g.DELETE("/remove/:postId", auth, h.RemoveBookmark)
		g.GET("/posts", auth, h.ListBookmarkedPosts)
		g.GET("/status/:postId", middleware.OptionalAuthMiddleware(tokens), h.BookmarkStatus)
	}

	// 旧路由，与上面共用同一张收藏表
	legacy := r.Group("/post")
	legacy.Use(auth)
	{
		legacy.POST("/:postId/bookmark", h.BookmarkPost)
		legacy.POST("/:postId/unbookmark", h.RemoveBookmark)
		legacy.GET("/bookmarked", h.ListBookmarkedPosts)
	}
}
