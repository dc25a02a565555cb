package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"zkbugs/internal/domain/comment/model"
	"zkbugs/internal/domain/comment/repository"
	postModel "zkbugs/internal/domain/post/model"
	"zkbugs/pkg/apperr"
	"zkbugs/pkg/cache"
	baseModel "zkbugs/pkg/model"
	"zkbugs/pkg/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// StatsCacheKey 评论计数缓存键，评论写入及级联删除后失效
	StatsCacheKey = "comments:stats"
	statsCacheTTL = time.Minute
)

// PostLookup 查询报告是否存在
type PostLookup interface {
	GetPost(ctx context.Context, id string) (*postModel.Post, error)
}

// CreateInput 评论输入；UserID 可省略，给出时必须是调用者本人
type CreateInput struct {
	Content string `json:"content"`
	PostID  string `json:"postId"`
	UserID  string `json:"userId"`
}

// CommentList 管理端评论列表
type CommentList struct {
	Comments          []model.Comment `json:"comments"`
	TotalComments     int64           `json:"totalComments"`
	LastMonthComments int64           `json:"lastMonthComments"`
}

type commentStats struct {
	Total     int64 `json:"total"`
	LastMonth int64 `json:"lastMonth"`
}

// CommentService 评论服务接口
type CommentService interface {
	CreateComment(ctx context.Context, callerID string, in CreateInput) (*model.Comment, error)
	ToggleLike(ctx context.Context, commentID, callerID string) (*model.Comment, error)
	EditComment(ctx context.Context, commentID, callerID string, callerIsAdmin bool, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, commentID, callerID string, callerIsAdmin bool) error
	ListCommentsForPost(ctx context.Context, postID string) ([]model.Comment, error)
	ListAllComments(ctx context.Context, page utils.Pagination) (*CommentList, error)
}

type commentService struct {
	repo  repository.CommentRepository
	posts PostLookup
	cache cache.CacheService
	now   func() time.Time
}

func NewCommentService(repo repository.CommentRepository, posts PostLookup, c cache.CacheService) CommentService {
	return &commentService{repo: repo, posts: posts, cache: c, now: time.Now}
}

func validateContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", apperr.Validation("Comment content is required")
	}
	if utf8.RuneCountInString(content) > model.MaxContentLength {
		return "", apperr.Validation("Comment must be at most 200 characters")
	}
	return content, nil
}

func (s *commentService) CreateComment(ctx context.Context, callerID string, in CreateInput) (*model.Comment, error) {
	if callerID == "" {
		return nil, apperr.Unauthorized("Unauthorized")
	}
	if in.UserID != "" && in.UserID != callerID {
		return nil, apperr.Forbidden("You are not allowed to create this comment")
	}
	content, err := validateContent(in.Content)
	if err != nil {
		return nil, err
	}
	if _, err := s.posts.GetPost(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Content: content,
		PostID:  in.PostID,
		UserID:  callerID,
		Likes:   datatypes.JSONSlice[string]{},
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, apperr.Internal("failed to create comment", err)
	}
	cache.Forget(ctx, s.cache, StatsCacheKey)
	return comment, nil
}

// ToggleLike 任何登录用户都可点赞或取消
func (s *commentService) ToggleLike(ctx context.Context, commentID, callerID string) (*model.Comment, error) {
	if callerID == "" {
		return nil, apperr.Unauthorized("Unauthorized")
	}
	if !baseModel.IsValidID(commentID) {
		return nil, apperr.NotFound("Comment not found")
	}
	comment, err := s.repo.ToggleLike(ctx, commentID, callerID)
	if err != nil {
		return nil, notFoundOrInternal(err, "failed to like comment")
	}
	return comment, nil
}

// EditComment 作者本人或管理员可编辑
func (s *commentService) EditComment(ctx context.Context, commentID, callerID string, callerIsAdmin bool, content string) (*model.Comment, error) {
	comment, err := s.loadForModification(ctx, commentID, callerID, callerIsAdmin)
	if err != nil {
		return nil, err
	}
	content, err = validateContent(content)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.repo.UpdateContent(ctx, comment); err != nil {
		return nil, apperr.Internal("failed to edit comment", err)
	}
	return comment, nil
}

// DeleteComment 作者本人或管理员可删除
func (s *commentService) DeleteComment(ctx context.Context, commentID, callerID string, callerIsAdmin bool) error {
	comment, err := s.loadForModification(ctx, commentID, callerID, callerIsAdmin)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, comment.ID); err != nil {
		return notFoundOrInternal(err, "failed to delete comment")
	}
	cache.Forget(ctx, s.cache, StatsCacheKey)
	return nil
}

func (s *commentService) loadForModification(ctx context.Context, commentID, callerID string, callerIsAdmin bool) (*model.Comment, error) {
	if callerID == "" {
		return nil, apperr.Unauthorized("Unauthorized")
	}
	if !baseModel.IsValidID(commentID) {
		return nil, apperr.NotFound("Comment not found")
	}
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, notFoundOrInternal(err, "failed to load comment")
	}
	if comment.UserID != callerID && !callerIsAdmin {
		return nil, apperr.Forbidden("You are not allowed to modify this comment")
	}
	return comment, nil
}

// ListCommentsForPost 公开接口，最新在前
func (s *commentService) ListCommentsForPost(ctx context.Context, postID string) ([]model.Comment, error) {
	if !baseModel.IsValidID(postID) {
		return []model.Comment{}, nil
	}
	comments, err := s.repo.ListByPost(ctx, postID)
	if err != nil {
		return nil, apperr.Internal("failed to list comments", err)
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}

// ListAllComments 管理端分页列表
func (s *commentService) ListAllComments(ctx context.Context, page utils.Pagination) (*CommentList, error) {
	page.Normalize()

	comments, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, apperr.Internal("failed to list comments", err)
	}
	if comments == nil {
		comments = []model.Comment{}
	}

	stats, err := cache.Remember(ctx, s.cache, StatsCacheKey, statsCacheTTL, func() (commentStats, error) {
		total, err := s.repo.Count(ctx)
		if err != nil {
			return commentStats{}, err
		}
		lastMonth, err := s.repo.CountCreatedSince(ctx, utils.OneMonthAgo(s.now()))
		if err != nil {
			return commentStats{}, err
		}
		return commentStats{Total: total, LastMonth: lastMonth}, nil
	})
	if err != nil {
		return nil, apperr.Internal("failed to count comments", err)
	}

	return &CommentList{Comments: comments, TotalComments: stats.Total, LastMonthComments: stats.LastMonth}, nil
}

func notFoundOrInternal(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Comment not found")
	}
	return apperr.Internal(msg, err)
}
