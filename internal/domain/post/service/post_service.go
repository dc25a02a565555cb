package service

import (
	"context"
	"errors"
	"strings"
	"time"

	commentService "zkbugs/internal/domain/comment/service"
	"zkbugs/internal/domain/post/model"
	"zkbugs/internal/domain/post/repository"
	"zkbugs/pkg/apperr"
	"zkbugs/pkg/cache"
	"zkbugs/pkg/database"
	baseModel "zkbugs/pkg/model"
	"zkbugs/pkg/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// StatsCacheKey 报告计数缓存键，任何写操作后失效
	StatsCacheKey = "posts:stats"
	statsCacheTTL = time.Minute
)

// ListQuery 列表查询参数
type ListQuery struct {
	repository.PostFilter
	utils.Pagination
}

// ListResult 列表结果
type ListResult struct {
	Posts          []model.Post `json:"posts"`
	TotalPosts     int64        `json:"totalPosts"`
	LastMonthPosts int64        `json:"lastMonthPosts"`
}

type postStats struct {
	Total     int64 `json:"total"`
	LastMonth int64 `json:"lastMonth"`
}

// CreateInput 发布报告参数
type CreateInput struct {
	Title          string             `json:"title"`
	Content        string             `json:"content"`
	Category       string             `json:"category"`
	Image          string             `json:"image"`
	PublishDate    *time.Time         `json:"publishDate"`
	ReportSource   model.ReportSource `json:"reportSource"`
	AuditFirm      string             `json:"auditFirm"`
	Protocol       ProtocolInput      `json:"protocol"`
	Source         string             `json:"source"`
	Severity       string             `json:"severity"`
	Difficulty     string             `json:"difficulty"`
	Tags           []string           `json:"tags"`
	Frameworks     []string           `json:"frameworks"`
	ReportedBy     []string           `json:"reported_by"`
	Scope          []model.ScopeItem  `json:"scope"`
	FindingID      string             `json:"finding_id"`
	TargetFile     string             `json:"target_file"`
	Impact         string             `json:"impact"`
	Recommendation string             `json:"recommendation"`
}

type ProtocolInput struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// UpdateInput 可修改的字段，空值保持不变
type UpdateInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// PostService 报告服务接口
type PostService interface {
	ListPosts(ctx context.Context, q ListQuery) (*ListResult, error)
	GetPost(ctx context.Context, id string) (*model.Post, error)
	CreatePost(ctx context.Context, callerID string, callerIsAdmin bool, in CreateInput) (*model.Post, error)
	UpdatePost(ctx context.Context, callerID string, callerIsAdmin bool, postID, userID string, in UpdateInput) (*model.Post, error)
	DeletePost(ctx context.Context, callerID string, callerIsAdmin bool, postID, userID string) error
}

type postService struct {
	repo  repository.PostRepository
	cache cache.CacheService
	now   func() time.Time
}

// NewPostService 创建报告服务
func NewPostService(repo repository.PostRepository, c cache.CacheService) PostService {
	return &postService{repo: repo, cache: c, now: time.Now}
}

// ListPosts 过滤分页查询；totalPosts 为全部报告数量
func (s *postService) ListPosts(ctx context.Context, q ListQuery) (*ListResult, error) {
	q.Normalize()
	q.SearchTerm = strings.TrimSpace(q.SearchTerm)

	posts := []model.Post{}
	// 非法 UUID 不可能匹配任何记录
	if idFilterValid(q.UserID) && idFilterValid(q.PostID) {
		found, err := s.repo.List(ctx, q.PostFilter, q.Pagination)
		if err != nil {
			return nil, apperr.Internal("failed to list posts", err)
		}
		if found != nil {
			posts = found
		}
	}

	stats, err := cache.Remember(ctx, s.cache, StatsCacheKey, statsCacheTTL, func() (postStats, error) {
		total, err := s.repo.Count(ctx)
		if err != nil {
			return postStats{}, err
		}
		lastMonth, err := s.repo.CountCreatedSince(ctx, utils.OneMonthAgo(s.now()))
		if err != nil {
			return postStats{}, err
		}
		return postStats{Total: total, LastMonth: lastMonth}, nil
	})
	if err != nil {
		return nil, apperr.Internal("failed to count posts", err)
	}

	return &ListResult{Posts: posts, TotalPosts: stats.Total, LastMonthPosts: stats.LastMonth}, nil
}

func idFilterValid(id string) bool {
	return id == "" || baseModel.IsValidID(id)
}

// GetPost 获取单个报告
func (s *postService) GetPost(ctx context.Context, id string) (*model.Post, error) {
	if !baseModel.IsValidID(id) {
		return nil, apperr.NotFound("Post not found")
	}
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, apperr.Internal("failed to load post", err)
	}
	return post, nil
}

// CreatePost 管理员发布报告
func (s *postService) CreatePost(ctx context.Context, callerID string, callerIsAdmin bool, in CreateInput) (*model.Post, error) {
	if !callerIsAdmin {
		return nil, apperr.Forbidden("You are not allowed to create a post")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Content) == "" {
		return nil, apperr.Validation("Please provide all required fields")
	}
	slug := utils.TitleSlug(title)
	if strings.Trim(slug, "-") == "" {
		return nil, apperr.Validation("Title must contain at least one letter or digit")
	}

	severity, err := model.ParseSeverity(in.Severity)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	difficulty, err := model.ParseDifficulty(in.Difficulty)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	protocolType, err := model.ParseProtocolType(in.Protocol.Type)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	post := &model.Post{
		UserID:         callerID,
		Title:          title,
		Slug:           slug,
		Content:        in.Content,
		Image:          in.Image,
		Category:       in.Category,
		ReportSource:   in.ReportSource,
		AuditFirm:      in.AuditFirm,
		Protocol:       model.Protocol{Name: in.Protocol.Name, Type: protocolType},
		Source:         in.Source,
		Severity:       severity,
		Difficulty:     difficulty,
		Tags:           datatypes.JSONSlice[string](in.Tags),
		Frameworks:     datatypes.JSONSlice[string](in.Frameworks),
		ReportedBy:     datatypes.JSONSlice[string](in.ReportedBy),
		Scope:          datatypes.JSONSlice[model.ScopeItem](in.Scope),
		FindingID:      in.FindingID,
		TargetFile:     in.TargetFile,
		Impact:         in.Impact,
		Recommendation: in.Recommendation,
	}
	if in.PublishDate != nil {
		post.PublishDate = *in.PublishDate
	}
	post.ApplyDefaults(s.now())

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, TranslateWriteError(err)
	}
	cache.Forget(ctx, s.cache, StatsCacheKey)
	return post, nil
}

// authorize 调用者必须是管理员且与路径中的 userId 一致
func authorize(callerID string, callerIsAdmin bool, userID string) error {
	if !callerIsAdmin || callerID != userID {
		return apperr.Forbidden("You are not allowed to modify this post")
	}
	return nil
}

// UpdatePost 只更新标题、内容、分类、封面
func (s *postService) UpdatePost(ctx context.Context, callerID string, callerIsAdmin bool, postID, userID string, in UpdateInput) (*model.Post, error) {
	if err := authorize(callerID, callerIsAdmin, userID); err != nil {
		return nil, err
	}
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, apperr.Forbidden("You are not allowed to modify this post")
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		post.Title = title
	}
	if in.Content != "" {
		post.Content = in.Content
	}
	if in.Category != "" {
		post.Category = in.Category
	}
	if in.Image != "" {
		post.Image = in.Image
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, TranslateWriteError(err)
	}
	return post, nil
}

// DeletePost 删除报告及其收藏、评论
func (s *postService) DeletePost(ctx context.Context, callerID string, callerIsAdmin bool, postID, userID string) error {
	if err := authorize(callerID, callerIsAdmin, userID); err != nil {
		return err
	}
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return apperr.Forbidden("You are not allowed to modify this post")
	}

	if err := s.repo.DeleteCascade(ctx, post.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Post not found")
		}
		return apperr.Internal("failed to delete post", err)
	}
	cache.Forget(ctx, s.cache, StatsCacheKey, commentService.StatsCacheKey)
	return nil
}

// TranslateWriteError 标题或 slug 冲突映射为 409
func TranslateWriteError(err error) error {
	if database.IsUniqueViolation(err) {
		switch name := database.ConstraintName(err); {
		case strings.Contains(name, "slug"):
			return apperr.Conflict("A post with this slug already exists")
		case strings.Contains(name, "title"):
			return apperr.Conflict("A post with this title already exists")
		default:
			return apperr.Conflict("Post already exists")
		}
	}
	return apperr.Internal("failed to save post", err)
}
