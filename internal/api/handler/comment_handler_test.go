package handler

import (
	"Arbor/internal/api/dto"
	"Arbor/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCommentService struct {
	createFn func(ctx context.Context, authorID, postID uint64, req *dto.CommentCreateReq) (*dto.CommentCreatedDTO, error)
	deleteFn func(ctx context.Context, userID, commentID uint64) (string, error)
	treeFn   func(ctx context.Context, userID, postID uint64, page, pageSize int) (*dto.CommentPageDTO, error)
}

func (f *fakeCommentService) CreateComment(ctx context.Context, authorID, postID uint64, req *dto.CommentCreateReq) (*dto.CommentCreatedDTO, error) {
	return f.createFn(ctx, authorID, postID, req)
}

func (f *fakeCommentService) DeleteComment(ctx context.Context, userID, commentID uint64) (string, error) {
	return f.deleteFn(ctx, userID, commentID)
}

func (f *fakeCommentService) GetCommentTree(ctx context.Context, userID, postID uint64, page, pageSize int) (*dto.CommentPageDTO, error) {
	return f.treeFn(ctx, userID, postID, page, pageSize)
}

func (f *fakeCommentService) GetPostCommentCount(context.Context, uint64) (int64, error) {
	return 0, nil
}

// setupCommentRouter 以固定身份的鉴权桩替代真实中间件，userID 为 0 表示未登录
func setupCommentRouter(svc service.CommentService, userID uint64) *gin.Engine {
	router := gin.New()
	auth := func(c *gin.Context) {
		if userID > 0 {
			c.Set("user_id", userID)
		}
		c.Next()
	}
	h := NewCommentHandler(svc)
	v1 := router.Group("/api/v1")
	v1.GET("/posts/:post_id/comments", auth, h.GetCommentTree)
	v1.POST("/posts/:post_id/comments", auth, h.CreateComment)
	v1.DELETE("/comments/:comment_id", auth, h.DeleteComment)
	return router
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCommentHandler_GetCommentTree(t *testing.T) {
	t.Run("invalid post id", func(t *testing.T) {
		router := setupCommentRouter(&fakeCommentService{}, 0)

		for _, path := range []string{"/api/v1/posts/abc/comments", "/api/v1/posts/0/comments"} {
			req, _ := http.NewRequest("GET", path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeResponse(t, w)
			assert.Equal(t, 400, resp.Code)
			assert.Equal(t, "参数错误", resp.Message)
		}
	})

	t.Run("defaults page and limit", func(t *testing.T) {
		var gotPage, gotSize int
		svc := &fakeCommentService{
			treeFn: func(_ context.Context, _, _ uint64, page, pageSize int) (*dto.CommentPageDTO, error) {
				gotPage, gotSize = page, pageSize
				return &dto.CommentPageDTO{Comments: []*dto.CommentDTO{}, Page: page}, nil
			},
		}
		router := setupCommentRouter(svc, 0)

		cases := []struct {
			query    string
			wantPage int
			wantSize int
		}{
			{"", 1, 20},
			{"?page=-3&limit=1000", 1, 20},
			{"?page=abc&limit=xyz", 1, 20},
			{"?page=2&limit=50", 2, 50},
		}
		for _, tc := range cases {
			req, _ := http.NewRequest("GET", "/api/v1/posts/10/comments"+tc.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.wantPage, gotPage, "query %q", tc.query)
			assert.Equal(t, tc.wantSize, gotSize, "query %q", tc.query)
		}
	})

	t.Run("passes viewer identity", func(t *testing.T) {
		var gotUser uint64
		svc := &fakeCommentService{
			treeFn: func(_ context.Context, userID, _ uint64, _, _ int) (*dto.CommentPageDTO, error) {
				gotUser = userID
				return &dto.CommentPageDTO{}, nil
			},
		}

		router := setupCommentRouter(svc, 7)
		req, _ := http.NewRequest("GET", "/api/v1/posts/10/comments", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, uint64(7), gotUser)

		router = setupCommentRouter(svc, 0)
		req, _ = http.NewRequest("GET", "/api/v1/posts/10/comments", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, uint64(0), gotUser)
	})

	t.Run("post missing maps to 404", func(t *testing.T) {
		svc := &fakeCommentService{
			treeFn: func(context.Context, uint64, uint64, int, int) (*dto.CommentPageDTO, error) {
				return nil, service.ErrPostNotFound
			},
		}
		router := setupCommentRouter(svc, 0)

		req, _ := http.NewRequest("GET", "/api/v1/posts/404/comments", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, 404, resp.Code)
		assert.Equal(t, service.ErrPostNotFound.Error(), resp.Message)
	})

	t.Run("returns page payload", func(t *testing.T) {
		svc := &fakeCommentService{
			treeFn: func(context.Context, uint64, uint64, int, int) (*dto.CommentPageDTO, error) {
				return &dto.CommentPageDTO{
					Comments:   []*dto.CommentDTO{{ID: 1, Content: "hi"}},
					Total:      3,
					Page:       1,
					TotalPages: 2,
					HasMore:    true,
				}, nil
			},
		}
		router := setupCommentRouter(svc, 0)

		req, _ := http.NewRequest("GET", "/api/v1/posts/10/comments", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, 200, resp.Code)
		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(3), data["total"])
		assert.Equal(t, true, data["hasMore"])
		assert.Equal(t, float64(2), data["totalPages"])
	})
}

func TestCommentHandler_CreateComment(t *testing.T) {
	t.Run("created with reply target", func(t *testing.T) {
		var gotReq *dto.CommentCreateReq
		var gotAuthor, gotPost uint64
		svc := &fakeCommentService{
			createFn: func(_ context.Context, authorID, postID uint64, req *dto.CommentCreateReq) (*dto.CommentCreatedDTO, error) {
				gotAuthor, gotPost, gotReq = authorID, postID, req
				return &dto.CommentCreatedDTO{ID: 42, Content: req.Content, Depth: 1, CreatedAt: "2026-08-01 10:00:00"}, nil
			},
		}
		router := setupCommentRouter(svc, 7)

		body := `{"content":"nice post","parentId":5}`
		req, _ := http.NewRequest("POST", "/api/v1/posts/10/comments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, 201, resp.Code)
		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(42), data["id"])

		assert.Equal(t, uint64(7), gotAuthor)
		assert.Equal(t, uint64(10), gotPost)
		require.NotNil(t, gotReq.ParentID)
		assert.Equal(t, uint64(5), *gotReq.ParentID)
	})

	t.Run("binding rejects missing content", func(t *testing.T) {
		router := setupCommentRouter(&fakeCommentService{}, 7)

		req, _ := http.NewRequest("POST", "/api/v1/posts/10/comments", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "字段 [Content] 校验失败，规则 [required]", resp.Message)
	})

	t.Run("binding rejects overlong content", func(t *testing.T) {
		router := setupCommentRouter(&fakeCommentService{}, 7)

		body, _ := json.Marshal(map[string]string{"content": strings.Repeat("a", 1001)})
		req, _ := http.NewRequest("POST", "/api/v1/posts/10/comments", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("depth limit maps to 400", func(t *testing.T) {
		svc := &fakeCommentService{
			createFn: func(context.Context, uint64, uint64, *dto.CommentCreateReq) (*dto.CommentCreatedDTO, error) {
				return nil, service.ErrDepthExceeded
			},
		}
		router := setupCommentRouter(svc, 7)

		req, _ := http.NewRequest("POST", "/api/v1/posts/10/comments", bytes.NewBufferString(`{"content":"deep"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, service.ErrDepthExceeded.Error(), resp.Message)
	})
}

func TestCommentHandler_DeleteComment(t *testing.T) {
	t.Run("invalid comment id", func(t *testing.T) {
		router := setupCommentRouter(&fakeCommentService{}, 7)

		req, _ := http.NewRequest("DELETE", "/api/v1/comments/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete errors keep their status", func(t *testing.T) {
		cases := []struct {
			name     string
			err      error
			wantCode int
		}{
			{"missing comment", service.ErrCommentNotFound, http.StatusNotFound},
			{"not the author", service.ErrNotCommentAuthor, http.StatusForbidden},
			{"already deleted", service.ErrCommentAlreadyDeleted, http.StatusBadRequest},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc := &fakeCommentService{
					deleteFn: func(context.Context, uint64, uint64) (string, error) {
						return "", tc.err
					},
				}
				router := setupCommentRouter(svc, 7)

				req, _ := http.NewRequest("DELETE", "/api/v1/comments/5", nil)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				assert.Equal(t, tc.wantCode, w.Code)
				resp := decodeResponse(t, w)
				assert.Equal(t, tc.err.Error(), resp.Message)
			})
		}
	})

	t.Run("returns delete action", func(t *testing.T) {
		var gotUser, gotComment uint64
		svc := &fakeCommentService{
			deleteFn: func(_ context.Context, userID, commentID uint64) (string, error) {
				gotUser, gotComment = userID, commentID
				return "content_deleted", nil
			},
		}
		router := setupCommentRouter(svc, 7)

		req, _ := http.NewRequest("DELETE", "/api/v1/comments/5", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "content_deleted", data["action"])
		assert.Equal(t, uint64(7), gotUser)
		assert.Equal(t, uint64(5), gotComment)
	})
}
