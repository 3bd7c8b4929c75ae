package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Yassen717/ModBlog/internal/auth"
	"github.com/Yassen717/ModBlog/internal/handler"
	"github.com/Yassen717/ModBlog/internal/repository"
	"github.com/Yassen717/ModBlog/internal/seed"
	"github.com/Yassen717/ModBlog/internal/service"
	"github.com/Yassen717/ModBlog/internal/storage"
	"github.com/Yassen717/ModBlog/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

type testServer struct {
	router   *gin.Engine
	store    *storage.Adapter
	sessions *repository.StoreAdminSessionRepository
	tokens   *auth.TokenManager
}

// newTestServer wires the full router over a seeded in-memory store.
// backups may be nil.
func newTestServer(t *testing.T, backups handler.Backups) *testServer {
	t.Helper()
	return newTestServerWith(t, backups, nil)
}

// newTestServerWith is newTestServer with a hook to adjust the router
// dependencies before the engine is built.
func newTestServerWith(t *testing.T, backups handler.Backups, configure func(*handler.RouterDeps)) *testServer {
	t.Helper()

	store := storage.NewAdapter(storage.NewMemory())
	seeder := seed.New(store)
	seeder.Initialize(context.Background())

	v := validator.NewValidator()
	posts := repository.NewPostRepository(store)
	categories := repository.NewCategoryRepository(store)
	authors := repository.NewAuthorRepository(store)
	users := repository.NewUserRepository(store)
	comments := repository.NewCommentRepository(store)
	settings := repository.NewSettingsRepository(store)
	sessions := repository.NewAdminSessionRepository(store)

	postSvc := service.NewPostService(posts, categories, authors, v)
	categorySvc := service.NewCategoryService(categories, posts, v)
	commentSvc := service.NewCommentService(comments, posts, settings, v)
	dashboardSvc := service.NewDashboardService(posts, comments, users, categories, authors)

	directory, err := auth.NewDirectory(auth.DefaultSeeds(), bcrypt.MinCost)
	require.NoError(t, err)
	tokens := auth.NewTokenManager(testSecret, time.Hour)

	deps := handler.RouterDeps{
		Health:     handler.NewHealthHandler(store, "memory"),
		Posts:      handler.NewPostHandler(postSvc),
		Blog:       handler.NewBlogHandler(postSvc, categorySvc, commentSvc),
		Categories: handler.NewCategoryHandler(categorySvc),
		Comments:   handler.NewCommentHandler(commentSvc),
		Authors:    handler.NewAuthorHandler(service.NewAuthorService(authors, v)),
		Users:      handler.NewUserHandler(service.NewUserService(users, v)),
		Settings:   handler.NewSettingsHandler(service.NewSettingsService(settings, v)),
		Admin:      handler.NewAdminHandler(dashboardSvc, service.NewDataService(seeder, dashboardSvc), backups),
		Export:     handler.NewExportHandler(service.NewExportService(posts, categories, comments, users)),
		Auth:       handler.NewAuthHandler(directory, tokens, sessions, false),
		Tokens:     tokens,
	}
	if configure != nil {
		configure(&deps)
	}
	router := handler.NewRouter(deps)

	return &testServer{router: router, store: store, sessions: sessions, tokens: tokens}
}

// token returns a valid session token for role.
func (s *testServer) token(t *testing.T, role string) string {
	t.Helper()
	token, _, err := s.tokens.Issue(auth.Profile{ID: "1", Role: role})
	require.NoError(t, err)
	return token
}

// do sends a request with an optional JSON body and session token.
func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a response body into v.
func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
