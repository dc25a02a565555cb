package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userModel "zkbugs/internal/domain/user/model"
	baseModel "zkbugs/pkg/model"

	"gorm.io/gorm"
)

// UserLookup 按 ID 或邮箱查找导入归属人
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*userModel.User, error)
	GetByEmail(ctx context.Context, email string) (*userModel.User, error)
}

// ResolveOwner ref 为 UUID 时按 ID 查找，否则按邮箱；归属人必须是管理员
func ResolveOwner(ctx context.Context, users UserLookup, ref string) (*userModel.User, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("owner is required")
	}

	var (
		user *userModel.User
		err  error
	)
	if baseModel.IsValidID(ref) {
		user, err = users.GetByID(ctx, ref)
	} else {
		user, err = users.GetByEmail(ctx, ref)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("owner %q not found", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("look up owner: %w", err)
	}
	if !user.IsAdmin {
		return nil, fmt.Errorf("owner %q is not an admin", ref)
	}
	return user, nil
}
