package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/newsroom-backend/internal/data/repos"
	"github.com/yungbote/newsroom-backend/internal/data/repos/testutil"
	types "github.com/yungbote/newsroom-backend/internal/domain"
	httpH "github.com/yungbote/newsroom-backend/internal/http/handlers"
	httpMW "github.com/yungbote/newsroom-backend/internal/http/middleware"
	"github.com/yungbote/newsroom-backend/internal/observability"
	"github.com/yungbote/newsroom-backend/internal/services"
)

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)

	accountRepo := repos.NewAccountRepo(db, log)
	categoryRepo := repos.NewCategoryRepo(db, log)
	articleRepo := repos.NewArticleRepo(db, log)
	tagRepo := repos.NewTagRepo(db, log)

	tagService := services.NewTagService(db, log, tagRepo, articleRepo)
	authService := services.NewAuthService(db, log, accountRepo, services.NewMemoryRevoker(), services.AuthConfig{
		SecretKey: "router-test-secret",
		Issuer:    "newsroom",
		Audience:  "newsroom",
	}, bcrypt.MinCost)
	accountService := services.NewAccountService(db, log, accountRepo, articleRepo, bcrypt.MinCost)

	_, err := authService.EnsureAdminAccount(context.Background(), services.AdminAccount{
		Name: "Admin", Email: "admin@news.test", Password: "admin-pass", Role: types.RoleLecturer,
	})
	require.NoError(t, err)

	engine := NewRouter(RouterConfig{
		Log:             log,
		Metrics:         observability.New(),
		AuthMiddleware:  httpMW.NewAuthMiddleware(log, authService),
		AuthHandler:     httpH.NewAuthHandler(authService),
		AccountHandler:  httpH.NewAccountHandler(accountService),
		CategoryHandler: httpH.NewCategoryHandler(services.NewCategoryService(db, log, categoryRepo)),
		ArticleHandler: httpH.NewArticleHandler(services.NewArticleService(
			db, log, articleRepo, categoryRepo, accountRepo, tagRepo, tagService,
		)),
		TagHandler:    httpH.NewTagHandler(tagService),
		HealthHandler: httpH.NewHealthHandler(),
	})
	return &apiClient{t: t, engine: engine}
}

func (a *apiClient) do(method, path, token string, body any) (int, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	out := map[string]any{}
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec.Code, out
}

func (a *apiClient) login(email, password string) string {
	a.t.Helper()
	code, body := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, code, "login %s: %v", email, body)
	return body["token"].(string)
}

func field(m map[string]any, keys ...string) any {
	var cur any = m
	for _, k := range keys {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = mm[k]
	}
	return cur
}

func TestRouterNewsroomFlow(t *testing.T) {
	api := newAPI(t)

	code, _ := api.do(http.MethodGet, "/api/articles", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	admin := api.login("admin@news.test", "admin-pass")

	code, body := api.do(http.MethodPost, "/api/accounts", admin, gin.H{
		"name": "Reporter", "email": "reporter@news.test", "password": "reporter-pass", "role": 1,
	})
	require.Equal(t, http.StatusCreated, code, "%v", body)
	assert.Nil(t, field(body, "account", "password_hash"))
	staff := api.login("reporter@news.test", "reporter-pass")

	code, _ = api.do(http.MethodGet, "/api/accounts", staff, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, body = api.do(http.MethodPost, "/api/categories", staff, gin.H{"name": "Tech", "is_active": true})
	require.Equal(t, http.StatusCreated, code, "%v", body)
	catID := field(body, "category", "id").(float64)

	code, body = api.do(http.MethodPost, "/api/categories", staff, gin.H{"name": "tech"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "category_exists", field(body, "error", "code"))

	code, body = api.do(http.MethodPost, "/api/articles", staff, gin.H{
		"title": "Launch", "content": "details", "category_id": catID, "published": true,
		"tags": []gin.H{{"name": " AI "}},
	})
	require.Equal(t, http.StatusCreated, code, "%v", body)
	artID := field(body, "article", "id").(float64)
	artPath := fmt.Sprintf("/api/articles/%d", int(artID))

	code, body = api.do(http.MethodGet, artPath, staff, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1.0, field(body, "article", "views"))
	code, body = api.do(http.MethodGet, artPath, staff, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2.0, field(body, "article", "views"))

	code, body = api.do(http.MethodGet, "/api/articles?tag=ai&published=true", staff, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["articles"], 1)

	code, body = api.do(http.MethodGet, "/api/articles/mine", staff, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["articles"], 1)

	code, _ = api.do(http.MethodGet, "/api/articles?published=maybe", staff, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = api.do(http.MethodDelete, artPath, staff, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "article_published", field(body, "error", "code"))

	code, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", int(catID)), staff, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = api.do(http.MethodGet, "/api/articles/99999", staff, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = api.do(http.MethodGet, "/api/articles/abc", staff, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = api.do(http.MethodGet, "/api/auth/whoami", staff, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "reporter@news.test", field(body, "me", "email"))

	code, body = api.do(http.MethodPut, "/api/profile", staff, gin.H{"name": "Lead Reporter", "email": "reporter@news.test"})
	require.Equal(t, http.StatusOK, code, "%v", body)
	assert.Equal(t, "Lead Reporter", field(body, "profile", "name"))

	code, _ = api.do(http.MethodPost, "/api/auth/logout", staff, nil)
	require.Equal(t, http.StatusOK, code)
	code, body = api.do(http.MethodGet, "/api/auth/whoami", staff, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "token_revoked", field(body, "error", "code"))
}

func TestRouterValidationErrors(t *testing.T) {
	api := newAPI(t)
	admin := api.login("admin@news.test", "admin-pass")

	code, body := api.do(http.MethodPost, "/api/tags", admin, gin.H{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "validation_failed", field(body, "error", "code"))
	assert.Equal(t, "is required", field(body, "error", "fields", "name"))

	code, _ = api.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "admin@news.test", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = api.do(http.MethodGet, "/api/accounts", admin, nil)
	require.Equal(t, http.StatusOK, code)
	accounts := body["accounts"].([]any)
	require.Len(t, accounts, 1)
	adminID := accounts[0].(map[string]any)["id"].(float64)

	code, body = api.do(http.MethodDelete, fmt.Sprintf("/api/accounts/%d", int(adminID)), admin, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "account_protected", field(body, "error", "code"))
}

func TestRouterMetricsEndpoint(t *testing.T) {
	api := newAPI(t)
	api.do(http.MethodGet, "/healthcheck", "", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	api.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `newsroom_api_requests_total{method="GET",route="/healthcheck",status="200"} 1`)
}
