package comment

import (
	"zkbugs/internal/domain/comment/handler"
	"zkbugs/internal/domain/comment/model"
	"zkbugs/internal/domain/comment/repository"
	"zkbugs/internal/domain/comment/service"
	postRepository "zkbugs/internal/domain/post/repository"
	postService "zkbugs/internal/domain/post/service"
	"zkbugs/internal/pkg/middleware"
	"zkbugs/internal/pkg/registry"
	"zkbugs/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CommentModule 评论模块
type CommentModule struct{}

func init() {
	registry.Register(&CommentModule{})
}

func (m *CommentModule) Name() string {
	return "comment"
}

func (m *CommentModule) Priority() int {
	return 20
}

func (m *CommentModule) Init(ctx *registry.ModuleContext) error {
	if ctx.Config.Database.AutoMigrate {
		if err := ctx.DB.AutoMigrate(&model.Comment{}); err != nil {
			return err
		}
	}

	// 1. 依赖注入
	posts := postService.NewPostService(postRepository.NewPostRepository(ctx.DB), ctx.Cache)
	cService := service.NewCommentService(repository.NewCommentRepository(ctx.DB), posts, ctx.Cache)
	cHandler := handler.NewCommentHandler(cService)

	// 2. 路由注册
	setupRoutes(ctx.Router, cHandler, ctx.Tokens)

	return nil
}

func setupRoutes(r *gin.RouterGroup, h *handler.CommentHandler, tokens *utils.TokenIssuer) {
	auth := middleware.AuthMiddleware(tokens)

	g := r.Group("/comment")
	{
		g.GET("/getPostComments/:postId", h.GetPostComments)

		g.POST("/create", auth, h.CreateComment)
		g.PUT("/likeComment/:commentId", auth, h.LikeComment)
		g.PUT("/editComment/:commentId", auth, h.EditComment)
		g.DELETE("/deleteComment/:commentId", auth, h.DeleteComment)

		g.GET("/getcomments", auth, middleware.AdminMiddleware(), h.GetComments)
	}
}
