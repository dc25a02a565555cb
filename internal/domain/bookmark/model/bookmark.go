package model

import baseModel "zkbugs/pkg/model"

// Bookmark 用户收藏，(user_id, post_id) 唯一
type Bookmark struct {
	baseModel.BaseModel
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_user_post,priority:1" json:"userId"`
	PostID string `gorm:"type:uuid;not null;uniqueIndex:idx_user_post,priority:2;index" json:"postId"`
}
