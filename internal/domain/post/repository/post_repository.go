package repository

import (
	"context"
	"strings"
	"time"

	bookmarkModel "zkbugs/internal/domain/bookmark/model"
	commentModel "zkbugs/internal/domain/comment/model"
	"zkbugs/internal/domain/post/model"
	"zkbugs/pkg/utils"

	"gorm.io/gorm"
)

// PostFilter 列表过滤条件，空字段不参与过滤
type PostFilter struct {
	UserID     string `form:"userId"`
	Category   string `form:"category"`
	Slug       string `form:"slug"`
	PostID     string `form:"postId"`
	SearchTerm string `form:"searchTerm"`
}

// PostRepository 接口定义
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, filter PostFilter, page utils.Pagination) ([]model.Post, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	Update(ctx context.Context, post *model.Post) error
	DeleteCascade(ctx context.Context, id string) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建仓库实例
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List 按过滤条件分页查询，updated_at 相同按 id 排序保证分页稳定
func (r *postRepository) List(ctx context.Context, filter PostFilter, page utils.Pagination) ([]model.Post, error) {
	query := r.db.WithContext(ctx).Model(&model.Post{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Slug != "" {
		query = query.Where("slug = ?", filter.Slug)
	}
	if filter.PostID != "" {
		query = query.Where("id = ?", filter.PostID)
	}
	if filter.SearchTerm != "" {
		pattern := "%" + escapeLike(filter.SearchTerm) + "%"
		query = query.Where("(title ILIKE ? OR content ILIKE ?)", pattern, pattern)
	}

	direction := "DESC"
	if page.Ascending() {
		direction = "ASC"
	}

	var posts []model.Post
	err := query.
		Order("updated_at " + direction).
		Order("id " + direction).
		Offset(page.StartIndex).
		Limit(page.Limit).
		Find(&posts).Error
	return posts, err
}

// Count 全部报告数量（不受过滤条件影响）
func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&total).Error
	return total, err
}

func (r *postRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("created_at >= ?", since).Count(&total).Error
	return total, err
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// DeleteCascade 删除报告及其收藏、评论
func (r *postRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&bookmarkModel.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&commentModel.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义 LIKE 通配符，搜索词按字面子串匹配
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
