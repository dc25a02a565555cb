package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	commentService "zkbugs/internal/domain/comment/service"
	"zkbugs/internal/domain/user/model"
	"zkbugs/internal/domain/user/repository"
	"zkbugs/internal/pkg/mailer"
	"zkbugs/pkg/apperr"
	"zkbugs/pkg/cache"
	"zkbugs/pkg/database"
	"zkbugs/pkg/logger"
	baseModel "zkbugs/pkg/model"
	"zkbugs/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLength = 6
	resetTokenTTL     = time.Hour
	statsCacheKey     = "users:stats"
	statsCacheTTL     = time.Minute
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9]{7,20}$`)

// SignupInput 注册参数
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleInput 第三方登录参数
type GoogleInput struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	GooglePhotoURL string `json:"googlePhotoUrl"`
}

// UpdateInput 资料更新参数，空值表示不修改
type UpdateInput struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	ProfilePicture string `json:"profilePicture"`
}

// UserList 用户列表
type UserList struct {
	Users          []model.User `json:"users"`
	TotalUsers     int64        `json:"totalUsers"`
	LastMonthUsers int64        `json:"lastMonthUsers"`
}

type userStats struct {
	Total     int64 `json:"total"`
	LastMonth int64 `json:"lastMonth"`
}

// Session 登录成功后的用户与 Token
type Session struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

// UserService 用户服务接口
type UserService interface {
	Signup(ctx context.Context, in SignupInput) error
	Signin(ctx context.Context, email, password string) (*Session, error)
	Google(ctx context.Context, in GoogleInput) (*Session, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	VerifyResetToken(ctx context.Context, token string) (string, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateUser(ctx context.Context, callerID, id string, in UpdateInput) (*model.User, error)
	DeleteUser(ctx context.Context, callerID string, callerIsAdmin bool, id string) error
	ListUsers(ctx context.Context, page utils.Pagination) (*UserList, error)
}

// userService 实现
type userService struct {
	repo          repository.UserRepository
	tokens        *utils.TokenIssuer
	mailer        mailer.Mailer
	cache         cache.CacheService
	clientBaseURL string
	now           func() time.Time
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository, tokens *utils.TokenIssuer, m mailer.Mailer, c cache.CacheService, clientBaseURL string) UserService {
	return &userService{
		repo:          repo,
		tokens:        tokens,
		mailer:        m,
		cache:         c,
		clientBaseURL: strings.TrimRight(clientBaseURL, "/"),
		now:           time.Now,
	}
}

// Signup 注册
func (s *userService) Signup(ctx context.Context, in SignupInput) error {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return apperr.Validation("All fields are required")
	}
	if len(in.Password) < minPasswordLength {
		return apperr.Validation("Password must be at least 6 characters")
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:       username,
		Email:          email,
		Password:       hash,
		ProfilePicture: model.DefaultProfilePicture,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return translateWriteError(err)
	}
	cache.Forget(ctx, s.cache, statsCacheKey)
	return nil
}

// Signin 邮箱密码登录
func (s *userService) Signin(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("All fields are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Validation("Invalid password")
	}
	return s.issue(user)
}

// Google 第三方登录：按邮箱查找，不存在则创建
func (s *userService) Google(ctx context.Context, in GoogleInput) (*Session, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, apperr.Validation("Email is required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return s.issue(user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("failed to load user", err)
	}

	password, err := randomString(16)
	if err != nil {
		return nil, apperr.Internal("failed to generate password", err)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	suffix, err := randomDigits(4)
	if err != nil {
		return nil, apperr.Internal("failed to generate username", err)
	}

	base := strings.ToLower(strings.Join(strings.Fields(in.Name), ""))
	if base == "" {
		base = "user"
	}
	picture := in.GooglePhotoURL
	if picture == "" {
		picture = model.DefaultProfilePicture
	}

	user = &model.User{
		Username:       base + suffix,
		Email:          email,
		Password:       hash,
		ProfilePicture: picture,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, translateWriteError(err)
	}
	cache.Forget(ctx, s.cache, statsCacheKey)
	return s.issue(user)
}

// ForgotPassword 生成一小时有效的重置令牌并发送邮件
func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperr.Validation("Email is required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal("failed to load user", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return apperr.Internal("failed to generate reset token", err)
	}
	token := hex.EncodeToString(buf)
	expires := s.now().Add(resetTokenTTL)
	user.ResetPasswordToken = &token
	user.ResetPasswordExpires = &expires
	if err := s.repo.Update(ctx, user); err != nil {
		return apperr.Internal("failed to save reset token", err)
	}

	link := s.clientBaseURL + "/reset-password/" + token
	if err := s.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		user.ClearResetToken()
		if uerr := s.repo.Update(ctx, user); uerr != nil {
			logger.Log.Warn("failed to clear reset token", zap.String("user_id", user.ID), zap.Error(uerr))
		}
		return apperr.Internal("Error sending email", err)
	}
	return nil
}

// ResetPassword 校验令牌后设置新密码并清除令牌
func (s *userService) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < minPasswordLength {
		return apperr.Validation("Password must be at least 6 characters")
	}

	user, err := s.findByResetToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hash
	user.ClearResetToken()
	if err := s.repo.Update(ctx, user); err != nil {
		return apperr.Internal("failed to update password", err)
	}
	return nil
}

// VerifyResetToken 令牌有效时返回对应邮箱
func (s *userService) VerifyResetToken(ctx context.Context, token string) (string, error) {
	user, err := s.findByResetToken(ctx, token)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}

func (s *userService) findByResetToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperr.Validation("Password reset token is invalid or has expired")
	}
	user, err := s.repo.GetByResetToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("Password reset token is invalid or has expired")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return user, nil
}

// GetUser 获取单个用户
func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.load(ctx, id)
}

// UpdateUser 只能修改自己的资料
func (s *userService) UpdateUser(ctx context.Context, callerID, id string, in UpdateInput) (*model.User, error) {
	if callerID != id {
		return nil, apperr.Forbidden("You are not allowed to update this user")
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Password != "" {
		if len(in.Password) < minPasswordLength {
			return nil, apperr.Validation("Password must be at least 6 characters")
		}
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if in.Username != "" {
		if err := validateUsername(in.Username); err != nil {
			return nil, err
		}
		user.Username = in.Username
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		user.Email = email
	}
	if in.ProfilePicture != "" {
		user.ProfilePicture = in.ProfilePicture
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, translateWriteError(err)
	}
	return user, nil
}

// DeleteUser 本人或管理员可删除，同时清理收藏与评论
func (s *userService) DeleteUser(ctx context.Context, callerID string, callerIsAdmin bool, id string) error {
	if !callerIsAdmin && callerID != id {
		return apperr.Forbidden("You are not allowed to delete this user")
	}
	if !baseModel.IsValidID(id) {
		return apperr.NotFound("User not found")
	}

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal("failed to delete user", err)
	}
	cache.Forget(ctx, s.cache, statsCacheKey, commentService.StatsCacheKey)
	return nil
}

// ListUsers 管理员查看用户列表
func (s *userService) ListUsers(ctx context.Context, page utils.Pagination) (*UserList, error) {
	page.Normalize()

	users, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, apperr.Internal("failed to list users", err)
	}

	stats, err := cache.Remember(ctx, s.cache, statsCacheKey, statsCacheTTL, func() (userStats, error) {
		total, err := s.repo.Count(ctx)
		if err != nil {
			return userStats{}, err
		}
		lastMonth, err := s.repo.CountCreatedSince(ctx, utils.OneMonthAgo(s.now()))
		if err != nil {
			return userStats{}, err
		}
		return userStats{Total: total, LastMonth: lastMonth}, nil
	})
	if err != nil {
		return nil, apperr.Internal("failed to count users", err)
	}

	if users == nil {
		users = []model.User{}
	}
	return &UserList{Users: users, TotalUsers: stats.Total, LastMonthUsers: stats.LastMonth}, nil
}

func (s *userService) load(ctx context.Context, id string) (*model.User, error) {
	if !baseModel.IsValidID(id) {
		return nil, apperr.NotFound("User not found")
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return user, nil
}

func (s *userService) issue(user *model.User) (*Session, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, apperr.Internal("failed to sign token", err)
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func validateUsername(username string) error {
	if len(username) < 7 || len(username) > 20 {
		return apperr.Validation("Username must be between 7 and 20 characters")
	}
	if strings.Contains(username, " ") {
		return apperr.Validation("Username cannot contain spaces")
	}
	if username != strings.ToLower(username) {
		return apperr.Validation("Username must be lowercase")
	}
	if !usernamePattern.MatchString(username) {
		return apperr.Validation("Username can only contain letters and numbers")
	}
	return nil
}

// translateWriteError 唯一索引冲突映射为 409
func translateWriteError(err error) error {
	if database.IsUniqueViolation(err) {
		switch name := database.ConstraintName(err); {
		case strings.Contains(name, "username"):
			return apperr.Conflict("Username already exists")
		case strings.Contains(name, "email"):
			return apperr.Conflict("Email already exists")
		default:
			return apperr.Conflict("User already exists")
		}
	}
	return apperr.Internal("failed to save user", err)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.Validation("Password is too long")
	}
	if err != nil {
		return "", apperr.Internal("failed to hash password", err)
	}
	return string(hash), nil
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomString(n int) (string, error) {
	b := make([]byte, n)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = passwordAlphabet[idx.Int64()]
	}
	return string(b), nil
}

func randomDigits(n int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, v.Int64()), nil
}
