package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpupo63/notebook/auth"
	"github.com/rpupo63/notebook/models"
	"github.com/rpupo63/notebook/services"
)

func init() {
	auth.Cost = bcrypt.MinCost
}

type testAPI struct {
	t      *testing.T
	server *httptest.Server
}

func newTestAPI(t *testing.T, cfg map[string]string) *testAPI {
	t.Helper()
	repo := newMemoryRepo()
	tokens := auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	svc := Services{
		Posts: services.NewPostService(repo),
		Auth:  services.NewAuthService(userRepo{repo}, tokens),
		Users: services.NewUserService(userRepo{repo}),
	}
	router := newRouter(svc, withConfig(cfg), withRequestLogger(zerolog.Nop()))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testAPI{t: t, server: server}
}

func (a *testAPI) do(method, path, token string, body any) *http.Response {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.server.URL+"/api"+path, &buf)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(a.t, err)
	a.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (a *testAPI) signup(username string) string {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/auth/signup", "", models.Credentials{
		Username: username,
		Email:    username + "@example.com",
		Password: "password",
	})
	require.Equal(a.t, http.StatusOK, resp.StatusCode)
	var auth models.AuthResponse
	decode(a.t, resp, &auth)
	return auth.AccessToken
}

func (a *testAPI) createPost(token, title string) models.Post {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/posts", token, models.PostInput{Title: title, Content: "body"})
	require.Equal(a.t, http.StatusOK, resp.StatusCode)
	var post models.Post
	decode(a.t, resp, &post)
	return post
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t, nil)

	token := api.signup("ada")

	resp := api.do(http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile models.Profile
	decode(t, resp, &profile)
	assert.Equal(t, "ada", profile.Username)
	assert.Equal(t, []string{}, profile.Authorities)

	resp = api.do(http.MethodPost, "/auth/login", "", models.Credentials{Username: "ada", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = api.do(http.MethodPost, "/auth/login", "", models.Credentials{Username: "ada", Password: "password"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pair models.AuthResponse
	decode(t, resp, &pair)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	resp = api.do(http.MethodPost, "/auth/refresh", "", models.RefreshRequest{RefreshToken: pair.RefreshToken})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(http.MethodPost, "/auth/refresh", "", models.RefreshRequest{RefreshToken: pair.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = api.do(http.MethodPost, "/auth/signup", "", models.Credentials{Username: "ada", Email: "other@example.com", Password: "x"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPostsRequireBearer(t *testing.T) {
	api := newTestAPI(t, nil)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, api.server.URL+"/api/posts", nil)
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			var body ErrorResponse
			decode(t, resp, &body)
			assert.Equal(t, "error", body.Status)
		})
	}
}

func TestListReturnsOnlyOwnPostsNewestFirst(t *testing.T) {
	api := newTestAPI(t, nil)
	ada := api.signup("ada")
	bob := api.signup("bob")

	for i := 1; i <= 12; i++ {
		api.createPost(ada, fmt.Sprintf("ada %d", i))
	}
	api.createPost(bob, "bob 1")

	resp := api.do(http.MethodGet, "/posts?page=1&size=10&sort=createdAt,desc", ada, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page models.Page[models.Post]
	decode(t, resp, &page)

	assert.Equal(t, int64(12), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.Number)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "ada 2", page.Content[0].Title)
	assert.Equal(t, "ada 1", page.Content[1].Title)

	resp = api.do(http.MethodGet, "/posts", bob, nil)
	decode(t, resp, &page)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "bob 1", page.Content[0].Title)

	resp = api.do(http.MethodGet, "/posts?sort=password", bob, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = api.do(http.MethodGet, "/posts?page=abc", bob, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateDerivesFields(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.signup("ada")

	resp := api.do(http.MethodPost, "/posts", token, map[string]string{"title": "Shipping code", "contents": "late night"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var post models.Post
	decode(t, resp, &post)
	assert.Equal(t, models.TagDev, post.Tag)
	assert.Equal(t, "late night", post.Excerpt)
	assert.Equal(t, "1 min", post.ReadTime)
	assert.NotZero(t, post.ID)

	resp = api.do(http.MethodPost, "/posts", token, map[string]string{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = api.do(http.MethodPost, "/posts", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateAndDeleteOwnership(t *testing.T) {
	api := newTestAPI(t, nil)
	ada := api.signup("ada")
	bob := api.signup("bob")
	post := api.createPost(ada, "mine")
	path := fmt.Sprintf("/posts/%d", post.ID)

	resp := api.do(http.MethodPut, path, bob, models.PostInput{Title: "stolen"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = api.do(http.MethodDelete, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = api.do(http.MethodPut, "/posts/9999", ada, models.PostInput{Title: "ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = api.do(http.MethodPut, "/posts/abc", ada, models.PostInput{Title: "ghost"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = api.do(http.MethodPut, path, ada, models.PostInput{Title: "Family dinner", Excerpt: "with friends"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Post
	decode(t, resp, &updated)
	assert.Equal(t, post.ID, updated.ID)
	assert.Equal(t, post.Date, updated.Date)
	assert.Equal(t, models.TagLife, updated.Tag)

	resp = api.do(http.MethodDelete, path, ada, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = api.do(http.MethodDelete, path, ada, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserRoutes(t *testing.T) {
	api := newTestAPI(t, nil)
	ada := api.signup("ada")
	api.signup("bob")

	resp := api.do(http.MethodGet, "/auth/me", ada, nil)
	var me models.Profile
	decode(t, resp, &me)

	other := fmt.Sprintf("/users/%d", me.ID+1)
	resp = api.do(http.MethodPut, other, ada, models.Credentials{Username: "hijack", Email: "h@example.com"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = api.do(http.MethodDelete, other, ada, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	self := fmt.Sprintf("/users/%d", me.ID)
	resp = api.do(http.MethodPut, self, ada, models.Credentials{Username: "bob", Email: "ada@example.com"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = api.do(http.MethodPut, self, ada, models.Credentials{Username: "ada2", Email: "ada2@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile models.Profile
	decode(t, resp, &profile)
	assert.Equal(t, "ada2", profile.Username)

	resp = api.do(http.MethodDelete, self, ada, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = api.do(http.MethodGet, "/auth/me", ada, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthAndCORS(t *testing.T) {
	api := newTestAPI(t, map[string]string{"ACCEPTED_ORIGINS": "http://allowed.test"})

	resp := api.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health HealthResponse
	decode(t, resp, &health)
	assert.Equal(t, "ok", health.Status)

	preflight := func(origin string) *http.Response {
		req, err := http.NewRequest(http.MethodOptions, api.server.URL+"/api/posts", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	resp = preflight("http://evil.test")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = preflight("http://allowed.test")
	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "http://allowed.test", resp.Header.Get("Access-Control-Allow-Origin"))
}
