package service

import (
	"context"

	"zkbugs/internal/domain/bookmark/model"
	"zkbugs/internal/domain/bookmark/repository"
	postModel "zkbugs/internal/domain/post/model"
	"zkbugs/pkg/apperr"
	"zkbugs/pkg/database"
	baseModel "zkbugs/pkg/model"
)

// PostLookup 查询报告是否存在
type PostLookup interface {
	GetPost(ctx context.Context, id string) (*postModel.Post, error)
}

// BookmarkService 收藏服务接口
type BookmarkService interface {
	AddBookmark(ctx context.Context, userID, postID string) error
	RemoveBookmark(ctx context.Context, userID, postID string) error
	ListBookmarkedPosts(ctx context.Context, userID string) ([]postModel.Post, error)
	IsBookmarked(ctx context.Context, userID, postID string) (bool, error)
}

type bookmarkService struct {
	repo  repository.BookmarkRepository
	posts PostLookup
}

func NewBookmarkService(repo repository.BookmarkRepository, posts PostLookup) BookmarkService {
	return &bookmarkService{repo: repo, posts: posts}
}

// AddBookmark 并发重复收藏由唯一索引裁决，失败方返回 409
func (s *bookmarkService) AddBookmark(ctx context.Context, userID, postID string) error {
	if userID == "" {
		return apperr.Unauthorized("Unauthorized")
	}
	if postID == "" {
		return apperr.Validation("Post ID is required")
	}
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, &model.Bookmark{UserID: userID, PostID: postID}); err != nil {
		if database.IsUniqueViolation(err) {
			return apperr.Conflict("Post already bookmarked")
		}
		return apperr.Internal("failed to bookmark post", err)
	}
	return nil
}

func (s *bookmarkService) RemoveBookmark(ctx context.Context, userID, postID string) error {
	if userID == "" {
		return apperr.Unauthorized("Unauthorized")
	}
	if !baseModel.IsValidID(postID) {
		return apperr.NotFound("Bookmark not found")
	}

	removed, err := s.repo.Delete(ctx, userID, postID)
	if err != nil {
		return apperr.Internal("failed to remove bookmark", err)
	}
	if removed == 0 {
		return apperr.NotFound("Bookmark not found")
	}
	return nil
}

func (s *bookmarkService) ListBookmarkedPosts(ctx context.Context, userID string) ([]postModel.Post, error) {
	if userID == "" {
		return nil, apperr.Unauthorized("Unauthorized")
	}
	posts, err := s.repo.ListPosts(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list bookmarks", err)
	}
	if posts == nil {
		posts = []postModel.Post{}
	}
	return posts, nil
}

// IsBookmarked 游客始终返回 false
func (s *bookmarkService) IsBookmarked(ctx context.Context, userID, postID string) (bool, error) {
	if userID == "" || !baseModel.IsValidID(postID) {
		return false, nil
	}
	ok, err := s.repo.Exists(ctx, userID, postID)
	if err != nil {
		return false, apperr.Internal("failed to check bookmark", err)
	}
	return ok, nil
}
