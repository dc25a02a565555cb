package repository

import (
	"context"

	"zkbugs/internal/domain/bookmark/model"
	postModel "zkbugs/internal/domain/post/model"

	"gorm.io/gorm"
)

// BookmarkRepository 接口定义
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *model.Bookmark) error
	Delete(ctx context.Context, userID, postID string) (int64, error)
	Exists(ctx context.Context, userID, postID string) (bool, error)
	ListPosts(ctx context.Context, userID string) ([]postModel.Post, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Create 插入收藏，重复由唯一索引 idx_user_post 拒绝
func (r *bookmarkRepository) Create(ctx context.Context, bookmark *model.Bookmark) error {
	return r.db.WithContext(ctx).Create(bookmark).Error
}

// Delete 返回删除的行数
func (r *bookmarkRepository) Delete(ctx context.Context, userID, postID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Bookmark{})
	return res.RowsAffected, res.Error
}

func (r *bookmarkRepository) Exists(ctx context.Context, userID, postID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Bookmark{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// ListPosts 按收藏时间顺序返回报告
func (r *bookmarkRepository) ListPosts(ctx context.Context, userID string) ([]postModel.Post, error) {
	var posts []postModel.Post
	err := r.db.WithContext(ctx).Model(&postModel.Post{}).
		Joins("JOIN bookmarks ON bookmarks.post_id = posts.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at ASC").
		Order("bookmarks.id ASC").
		Find(&posts).Error
	return posts, err
}
