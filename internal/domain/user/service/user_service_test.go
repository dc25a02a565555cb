package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	commentService "zkbugs/internal/domain/comment/service"
	"zkbugs/internal/domain/user/model"
	"zkbugs/pkg/apperr"
	"zkbugs/pkg/cache"
	baseModel "zkbugs/pkg/model"
	"zkbugs/pkg/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if user.ID == "" {
		user.ID = "11111111-1111-1111-1111-111111111111"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error) {
	args := m.Called(ctx, token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, page utils.Pagination) ([]model.User, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteCascade(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMailer is a mock of mailer.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	args := m.Called(ctx, to, link)
	return args.Error(0)
}

const (
	userID  = "0b6f3a2e-6a4c-4a8e-9b1d-2f3c4d5e6f70"
	otherID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

var fixedNow = time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*userService, *MockUserRepository, *MockMailer) {
	repo := new(MockUserRepository)
	mailer := new(MockMailer)
	tokens := utils.NewTokenIssuer("user-service-test-secret-0123456789ab", time.Hour)
	svc := NewUserService(repo, tokens, mailer, cache.NewMemoryCache(), "http://localhost:5173/").(*userService)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, mailer
}

func createTestUser(id, email, password string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &model.User{
		BaseModel: baseModel.BaseModel{ID: id},
		Username:  "tester01",
		Email:     email,
		Password:  string(hash),
	}
}

func assertKind(t *testing.T, err error, kind apperr.Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperr.Is(err, kind), "unexpected error: %v", err)
	if msg != "" {
		assert.Equal(t, msg, apperr.From(err).Message)
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("success hashes password", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "alice" && u.Email == "alice@example.com" &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")) == nil &&
				u.ProfilePicture == model.DefaultProfilePicture
		})).Return(nil)

		err := svc.Signup(ctx, SignupInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing field", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		err := svc.Signup(ctx, SignupInput{Username: "alice", Password: "secret1"})
		assertKind(t, err, apperr.KindValidation, "All fields are required")
	})

	t.Run("short password", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		err := svc.Signup(ctx, SignupInput{Username: "alice", Email: "a@b.c", Password: "123"})
		assertKind(t, err, apperr.KindValidation, "")
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		dup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
		repo.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(dup)

		err := svc.Signup(ctx, SignupInput{Username: "alice", Email: "a@b.c", Password: "secret1"})
		assertKind(t, err, apperr.KindConflict, "Email already exists")
	})
}

func TestSignin(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues token", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		user := createTestUser(userID, "alice@example.com", "secret1")
		repo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil)

		session, err := svc.Signin(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, user, session.User)

		claims, err := svc.tokens.ParseToken(session.Token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.ID)
		assert.False(t, claims.IsAdmin)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Signin(ctx, "nobody@example.com", "secret1")
		assertKind(t, err, apperr.KindNotFound, "User not found")
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetByEmail", ctx, "alice@example.com").Return(createTestUser(userID, "alice@example.com", "secret1"), nil)

		_, err := svc.Signin(ctx, "alice@example.com", "wrong-password")
		assertKind(t, err, apperr.KindValidation, "Invalid password")
	})

	t.Run("store failure", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetByEmail", ctx, "alice@example.com").Return(nil, errors.New("connection reset"))

		_, err := svc.Signin(ctx, "alice@example.com", "secret1")
		assertKind(t, err, apperr.KindInternal, "")
	})
}

func TestGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("existing user", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		user := createTestUser(userID, "alice@example.com", "secret1")
		repo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil)

		session, err := svc.Google(ctx, GoogleInput{Email: "alice@example.com", Name: "Alice Liddell"})
		require.NoError(t, err)
		assert.Equal(t, userID, session.User.ID)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates user with generated username", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetByEmail", ctx, "bob@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(nil)

		session, err := svc.Google(ctx, GoogleInput{Email: "bob@example.com", Name: "Bob The Builder", GooglePhotoURL: "http://img/bob.png"})
		require.NoError(t, err)

		created := session.User
		assert.True(t, strings.HasPrefix(created.Username, "bobthebuilder"))
		assert.Len(t, created.Username, len("bobthebuilder")+4)
		assert.Equal(t, "http://img/bob.png", created.ProfilePicture)
		assert.NotEmpty(t, created.Password)
		assert.NotEmpty(t, session.Token)
	})
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("saves token and mails link", func(t *testing.T) {
		svc, repo, mailer := newTestService(t)
		user := createTestUser(userID, "alice@example.com", "secret1")
		repo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)
		mailer.On("SendPasswordReset", ctx, "alice@example.com", mock.MatchedBy(func(link string) bool {
			return strings.HasPrefix(link, "http://localhost:5173/reset-password/")
		})).Return(nil)

		require.NoError(t, svc.ForgotPassword(ctx, "alice@example.com"))
		require.NotNil(t, user.ResetPasswordToken)
		assert.Len(t, *user.ResetPasswordToken, 64)
		assert.Equal(t, fixedNow.Add(time.Hour), *user.ResetPasswordExpires)
		mailer.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		err := svc.ForgotPassword(ctx, "nobody@example.com")
		assertKind(t, err, apperr.KindNotFound, "User not found")
	})

	t.Run("mail failure clears token", func(t *testing.T) {
		svc, repo, mailer := newTestService(t)
		user := createTestUser(userID, "alice@example.com", "secret1")
		repo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)
		mailer.On("SendPasswordReset", ctx, "alice@example.com", mock.Anything).Return(errors.New("smtp down"))

		err := svc.ForgotPassword(ctx, "alice@example.com")
		assertKind(t, err, apperr.KindInternal, "Error sending email")
		assert.Nil(t, user.ResetPasswordToken)
		repo.AssertNumberOfCalls(t, "Update", 2)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		user := createTestUser(userID, "alice@example.com", "secret1")
		token := "abc"
		expires := fixedNow.Add(30 * time.Minute)
		user.ResetPasswordToken, user.ResetPasswordExpires = &token, &expires

		repo.On("GetByResetToken", ctx, "abc", fixedNow).Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		require.NoError(t, svc.ResetPassword(ctx, "abc", "newsecret"))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newsecret")))
		assert.Nil(t, user.ResetPasswordToken)
		assert.Nil(t, user.ResetPasswordExpires)
	})

	t.Run("expired or unknown token", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetByResetToken", ctx, "stale", fixedNow).Return(nil, gorm.ErrRecordNotFound)

		err := svc.ResetPassword(ctx, "stale", "newsecret")
		assertKind(t, err, apperr.KindValidation, "Password reset token is invalid or has expired")
	})

	t.Run("short password rejected before lookup", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		err := svc.ResetPassword(ctx, "abc", "123")
		assertKind(t, err, apperr.KindValidation, "")
		repo.AssertNotCalled(t, "GetByResetToken", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestVerifyResetToken(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)
	repo.On("GetByResetToken", ctx, "good", fixedNow).Return(createTestUser(userID, "alice@example.com", "x"), nil)
	repo.On("GetByResetToken", ctx, "bad", fixedNow).Return(nil, gorm.ErrRecordNotFound)

	email, err := svc.VerifyResetToken(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)

	_, err = svc.VerifyResetToken(ctx, "bad")
	assertKind(t, err, apperr.KindValidation, "")
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("other user forbidden", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.UpdateUser(ctx, otherID, userID, UpdateInput{Username: "newname01"})
		assertKind(t, err, apperr.KindForbidden, "")
	})

	t.Run("invalid username", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetByID", ctx, userID).Return(createTestUser(userID, "alice@example.com", "x"), nil)

		for _, name := range []string{"short", "has space1", "UpperCase1", "under_score", strings.Repeat("a", 21)} {
			_, err := svc.UpdateUser(ctx, userID, userID, UpdateInput{Username: name})
			assertKind(t, err, apperr.KindValidation, "")
		}
	})

	t.Run("updates fields", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		user := createTestUser(userID, "alice@example.com", "x")
		repo.On("GetByID", ctx, userID).Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		updated, err := svc.UpdateUser(ctx, userID, userID, UpdateInput{Username: "alice2024", ProfilePicture: "http://img/a.png"})
		require.NoError(t, err)
		assert.Equal(t, "alice2024", updated.Username)
		assert.Equal(t, "http://img/a.png", updated.ProfilePicture)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("self delete cascades", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("DeleteCascade", ctx, userID).Return(nil)

		assert.NoError(t, svc.DeleteUser(ctx, userID, false, userID))
		repo.AssertExpectations(t)
	})

	t.Run("admin may delete others", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("DeleteCascade", ctx, userID).Return(nil)
		assert.NoError(t, svc.DeleteUser(ctx, otherID, true, userID))
	})

	t.Run("cascade clears user and comment counters", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("DeleteCascade", ctx, userID).Return(nil)
		require.NoError(t, svc.cache.Set(ctx, statsCacheKey, userStats{Total: 2}, time.Minute))
		require.NoError(t, svc.cache.Set(ctx, commentService.StatsCacheKey, map[string]int64{"total": 1}, time.Minute))

		require.NoError(t, svc.DeleteUser(ctx, userID, false, userID))

		var stats map[string]int64
		assert.ErrorIs(t, svc.cache.Get(ctx, statsCacheKey, &stats), cache.ErrCacheMiss)
		assert.ErrorIs(t, svc.cache.Get(ctx, commentService.StatsCacheKey, &stats), cache.ErrCacheMiss)
	})

	t.Run("non-admin other user forbidden", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		err := svc.DeleteUser(ctx, otherID, false, userID)
		assertKind(t, err, apperr.KindForbidden, "")
		repo.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything)
	})

	t.Run("missing user", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("DeleteCascade", ctx, userID).Return(gorm.ErrRecordNotFound)
		err := svc.DeleteUser(ctx, userID, false, userID)
		assertKind(t, err, apperr.KindNotFound, "User not found")
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	users := []model.User{*createTestUser(userID, "a@b.c", "x"), *createTestUser(otherID, "d@e.f", "x")}
	repo.On("List", ctx, utils.Pagination{StartIndex: 0, Limit: 9, Order: "desc"}).Return(users, nil)
	repo.On("Count", ctx).Return(int64(12), nil).Once()
	repo.On("CountCreatedSince", ctx, time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)).Return(int64(3), nil).Once()

	list, err := svc.ListUsers(ctx, utils.Pagination{})
	require.NoError(t, err)
	assert.Len(t, list.Users, 2)
	assert.Equal(t, int64(12), list.TotalUsers)
	assert.Equal(t, int64(3), list.LastMonthUsers)

	// 第二次命中缓存，不再计数
	list, err = svc.ListUsers(ctx, utils.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(12), list.TotalUsers)
	repo.AssertNumberOfCalls(t, "Count", 1)
}
