package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"zkbugs/internal/domain/post/model"
	"zkbugs/internal/domain/post/repository"
	"zkbugs/internal/domain/post/service"
	"zkbugs/internal/pkg/middleware"
	"zkbugs/pkg/apperr"
	"zkbugs/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ListPosts(ctx context.Context, q service.ListQuery) (*service.ListResult, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, id string) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, callerID string, callerIsAdmin bool, in service.CreateInput) (*model.Post, error) {
	args := m.Called(callerID, callerIsAdmin, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, callerID string, callerIsAdmin bool, postID, userID string, in service.UpdateInput) (*model.Post, error) {
	args := m.Called(callerID, callerIsAdmin, postID, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, callerID string, callerIsAdmin bool, postID, userID string) error {
	return m.Called(callerID, callerIsAdmin, postID, userID).Error(0)
}

func setup(t *testing.T) (*gin.Engine, *MockPostService, string) {
	gin.SetMode(gin.TestMode)
	tokens := utils.NewTokenIssuer("post-handler-secret-0123456789abcdef", time.Hour)
	svc := new(MockPostService)
	h := NewPostHandler(svc)

	r := gin.New()
	r.GET("/api/post/getposts", h.GetPosts)
	auth := r.Group("/api/post", middleware.AuthMiddleware(tokens))
	auth.POST("/create", h.CreatePost)
	auth.PUT("/updatepost/:postId/:userId", h.UpdatePost)
	auth.DELETE("/deletepost/:postId/:userId", h.DeletePost)

	token, _, err := tokens.GenerateToken("admin-1", true)
	require.NoError(t, err)
	return r, svc, token
}

func authed(method, path, body, token string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: token})
	return req
}

func TestGetPostsBindsQuery(t *testing.T) {
	r, svc, _ := setup(t)
	want := service.ListQuery{
		PostFilter: repository.PostFilter{Category: "circuit", SearchTerm: "nullifier"},
		Pagination: utils.Pagination{StartIndex: 9, Limit: 3, Order: "asc"},
	}
	svc.On("ListPosts", want).Return(&service.ListResult{Posts: []model.Post{}, TotalPosts: 12}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/post/getposts?category=circuit&searchTerm=nullifier&startIndex=9&limit=3&order=asc", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"posts":[],"totalPosts":12,"lastMonthPosts":0}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestGetPostsBadQuery(t *testing.T) {
	r, svc, _ := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/post/getposts?limit=many", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ListPosts", mock.Anything)
}

func TestCreatePost(t *testing.T) {
	r, svc, token := setup(t)
	svc.On("CreatePost", "admin-1", true, mock.MatchedBy(func(in service.CreateInput) bool {
		return in.Title == "Missing constraint" && in.Severity == "high"
	})).Return(&model.Post{Title: "Missing constraint", Slug: "missing-constraint"}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authed(http.MethodPost, "/api/post/create", `{"title":"Missing constraint","content":"c","severity":"high"}`, token))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"missing-constraint"`)
}

func TestCreatePostConflict(t *testing.T) {
	r, svc, token := setup(t)
	svc.On("CreatePost", "admin-1", true, mock.Anything).Return(nil, apperr.Conflict("A post with this title already exists"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authed(http.MethodPost, "/api/post/create", `{"title":"dup","content":"c"}`, token))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestCreatePostRequiresSession(t *testing.T) {
	r, svc, _ := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/post/create", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateAndDeletePassPathParams(t *testing.T) {
	r, svc, token := setup(t)
	svc.On("UpdatePost", "admin-1", true, "p1", "admin-1", service.UpdateInput{Title: "New"}).
		Return(&model.Post{Title: "New"}, nil)
	svc.On("DeletePost", "admin-1", true, "p1", "someone").Return(apperr.Forbidden("You are not allowed to delete this post"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authed(http.MethodPut, "/api/post/updatepost/p1/admin-1", `{"title":"New"}`, token))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authed(http.MethodDelete, "/api/post/deletepost/p1/someone", "", token))
	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertExpectations(t)
}
