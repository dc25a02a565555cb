package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	postModel "zkbugs/internal/domain/post/model"
	"zkbugs/internal/pkg/middleware"
	"zkbugs/pkg/apperr"
	"zkbugs/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookmarkService struct {
	mock.Mock
}

func (m *MockBookmarkService) AddBookmark(ctx context.Context, userID, postID string) error {
	return m.Called(userID, postID).Error(0)
}

func (m *MockBookmarkService) RemoveBookmark(ctx context.Context, userID, postID string) error {
	return m.Called(userID, postID).Error(0)
}

func (m *MockBookmarkService) ListBookmarkedPosts(ctx context.Context, userID string) ([]postModel.Post, error) {
	args := m.Called(userID)
	return args.Get(0).([]postModel.Post), args.Error(1)
}

func (m *MockBookmarkService) IsBookmarked(ctx context.Context, userID, postID string) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

const postID = "9b2f5c1e-0d3a-4f6b-8c7d-1e2f3a4b5c6d"

func setup(t *testing.T) (*gin.Engine, *MockBookmarkService, string) {
	gin.SetMode(gin.TestMode)
	tokens := utils.NewTokenIssuer("bookmark-handler-secret-0123456789abcdef", time.Hour)
	svc := new(MockBookmarkService)
	h := NewBookmarkHandler(svc)

	r := gin.New()
	auth := middleware.AuthMiddleware(tokens)
	r.POST("/api/bookmark/add", auth, h.AddBookmark)
	r.POST("/api/post/:postId/bookmark", auth, h.BookmarkPost)
	r.GET("/api/bookmark/status/:postId", middleware.OptionalAuthMiddleware(tokens), h.BookmarkStatus)

	token, _, err := tokens.GenerateToken("user-1", false)
	require.NoError(t, err)
	return r, svc, token
}

func TestBookmarkStatusAnonymous(t *testing.T) {
	r, svc, _ := setup(t)
	svc.On("IsBookmarked", "", postID).Return(false, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookmark/status/"+postID, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isBookmarked":false}`, w.Body.String())
}

func TestAddBookmarkRequiresAuth(t *testing.T) {
	r, svc, _ := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/bookmark/add", strings.NewReader(`{"postId":"`+postID+`"}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "AddBookmark", mock.Anything, mock.Anything)
}

func TestAddBookmarkBothSurfaces(t *testing.T) {
	r, svc, token := setup(t)
	svc.On("AddBookmark", "user-1", postID).Return(nil).Once()
	svc.On("AddBookmark", "user-1", postID).Return(apperr.Conflict("Post already bookmarked")).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/bookmark/add", strings.NewReader(`{"postId":"`+postID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/post/"+postID+"/bookmark", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"success":false,"statusCode":409,"message":"Post already bookmarked"}`, w.Body.String())
}
