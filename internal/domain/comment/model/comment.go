package model

import (
	baseModel "zkbugs/pkg/model"

	"gorm.io/datatypes"
)

// MaxContentLength 评论最大字符数
const MaxContentLength = 200

// Comment 评论模型
type Comment struct {
	baseModel.BaseModel
	Content       string                      `gorm:"size:200;not null" json:"content"`
	PostID        string                      `gorm:"type:uuid;not null;index" json:"postId"`
	UserID        string                      `gorm:"type:uuid;not null;index" json:"userId"`
	Likes         datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"likes"`
	NumberOfLikes int                         `gorm:"not null;default:0" json:"numberOfLikes"`
}

// ToggleLike 已点赞则取消，否则点赞；点赞数始终等于 likes 长度
func (c *Comment) ToggleLike(userID string) {
	if !c.HasLiked(userID) {
		c.Likes = append(c.Likes, userID)
		c.NumberOfLikes = len(c.Likes)
		return
	}
	likes := make(datatypes.JSONSlice[string], 0, len(c.Likes))
	for _, id := range c.Likes {
		if id != userID {
			likes = append(likes, id)
		}
	}
	c.Likes = likes
	c.NumberOfLikes = len(c.Likes)
}

// HasLiked 是否已点赞
func (c *Comment) HasLiked(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
