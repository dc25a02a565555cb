package model

import (
	"time"

	baseModel "zkbugs/pkg/model"
)

// DefaultProfilePicture 默认头像
const DefaultProfilePicture = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_1280.png"

// User 用户模型
type User struct {
	baseModel.BaseModel
	Username             string     `gorm:"uniqueIndex:idx_users_username;size:64;not null" json:"username"`
	Email                string     `gorm:"uniqueIndex:idx_users_email;size:255;not null" json:"email"`
	Password             string     `gorm:"not null" json:"-"` // 密码不返回给前端
	IsAdmin              bool       `gorm:"not null;default:false" json:"isAdmin"`
	ProfilePicture       string     `gorm:"size:1024" json:"profilePicture"`
	ResetPasswordToken   *string    `gorm:"index;size:128" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
}

// ClearResetToken 清除找回密码令牌
func (u *User) ClearResetToken() {
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
}
