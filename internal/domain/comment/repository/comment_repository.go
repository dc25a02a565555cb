package repository

import (
	"context"
	"time"

	"zkbugs/internal/domain/comment/model"
	"zkbugs/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository 接口定义
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	UpdateContent(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id, userID string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]model.Comment, error)
	List(ctx context.Context, page utils.Pagination) ([]model.Comment, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateContent 只写 content，点赞列表由 ToggleLike 单独维护
func (r *commentRepository) UpdateContent(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Model(comment).Select("content").Updates(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleLike 行锁内读改写，并发点赞不会丢失更新
func (r *commentRepository) ToggleLike(ctx context.Context, id, userID string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&comment).Error; err != nil {
			return err
		}
		comment.ToggleLike(userID)
		return tx.Model(&comment).Select("likes", "number_of_likes").Updates(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost 某报告下的评论，最新在前
func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) List(ctx context.Context, page utils.Pagination) ([]model.Comment, error) {
	direction := "DESC"
	if page.Ascending() {
		direction = "ASC"
	}

	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Order("created_at " + direction).
		Order("id " + direction).
		Offset(page.StartIndex).
		Limit(page.Limit).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Count(&total).Error
	return total, err
}

func (r *commentRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("created_at >= ?", since).Count(&total).Error
	return total, err
}
