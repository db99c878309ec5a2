package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"brewshare/config"
	apimiddleware "brewshare/internal/delivery/api/middleware"
	"brewshare/internal/delivery/api/response"
	"brewshare/internal/delivery/api/router"
	"brewshare/internal/delivery/api/router/handler"
	"brewshare/internal/infra/auth"
	"brewshare/internal/infra/persistence/memory"
	"brewshare/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Error *response.ErrorInfo `json:"error"`
	Meta  response.MetaInfo   `json:"meta"`
}

type testAPI struct {
	t *testing.T
	e *echo.Echo
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.SecretKey.Access = "integration-secret"
	cfg.Auth = &config.AuthConfig{BcryptCost: bcrypt.MinCost, TokenTTL: time.Hour}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher, err := auth.NewPasswordHasher(cfg)
	require.NoError(t, err)

	txManager := memory.NewTransactionManager(memory.NewStore())
	accountUC := impl.NewAccountService(impl.AccountServiceParams{
		TxManager:    txManager,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Logger:       logger,
	})
	postUC := impl.NewPostService(impl.PostServiceParams{TxManager: txManager, Logger: logger})

	routes := router.NewRouter(router.RouterParams{
		AccountHandler: handler.NewAccountHandler(handler.AccountHandlerParams{AccountUC: accountUC, Logger: logger}),
		PostHandler:    handler.NewPostHandler(handler.PostHandlerParams{PostUC: postUC, Logger: logger}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(tokenSvc),
	})

	return &testAPI{t: t, e: NewEcho(cfg, logger, routes)}
}

func (a *testAPI) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return rec, env
}

func (a *testAPI) register(username, email string) handler.AuthResponse {
	a.t.Helper()

	rec, env := a.do(http.MethodPost, "/api/users", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "s3cret-pass",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var out handler.AuthResponse
	require.NoError(a.t, json.Unmarshal(env.Data, &out))

	return out
}

func recipeBody() map[string]any {
	return map[string]any{
		"title":         "Morning V60",
		"brewingMethod": "Pour Over",
		"coffeeBean":    "Ethiopia Guji",
		"grindSize":     "medium-fine",
		"coffeeWeight":  20,
		"waterWeight":   300,
		"steps": []map[string]any{
			{"stepNumber": 1, "description": "Bloom", "duration": 30},
		},
	}
}

func decodePost(t *testing.T, env envelope) handler.PostResponse {
	t.Helper()

	var post handler.PostResponse
	require.NoError(t, json.Unmarshal(env.Data, &post))

	return post
}

func TestAPI_Health(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, env.Meta.RequestID)
	assert.Equal(t, env.Meta.RequestID, rec.Header().Get("X-Request-Id"))
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	api := newTestAPI(t)

	registered := api.register("alice", "alice@example.com")
	require.NotNil(t, registered.User)
	assert.Equal(t, "alice", registered.User.Username)
	assert.Equal(t, "alice@example.com", registered.User.Email)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, int64(3600), registered.ExpiresIn)

	t.Run("login by username", func(t *testing.T) {
		rec, env := api.do(http.MethodPost, "/api/users/login", "", map[string]string{"login": "alice", "password": "s3cret-pass"})
		require.Equal(t, http.StatusOK, rec.Code)

		var out handler.AuthResponse
		require.NoError(t, json.Unmarshal(env.Data, &out))
		assert.Equal(t, registered.User.ID, out.User.ID)
		assert.NotEmpty(t, out.Token)
	})

	t.Run("login by email", func(t *testing.T) {
		rec, _ := api.do(http.MethodPost, "/api/users/login", "", map[string]string{"login": "alice@example.com", "password": "s3cret-pass"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec, env := api.do(http.MethodPost, "/api/users/login", "", map[string]string{"login": "alice", "password": "nope-nope"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_PASSWORD", env.Error.Code)
	})

	t.Run("unknown account", func(t *testing.T) {
		rec, env := api.do(http.MethodPost, "/api/users/login", "", map[string]string{"login": "bob", "password": "s3cret-pass"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "USER_NOT_FOUND", env.Error.Code)
	})
}

func TestAPI_RegisterConflictsAndValidation(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "alice@example.com")

	tests := []struct {
		name     string
		body     map[string]string
		wantCode string
	}{
		{
			name:     "username taken",
			body:     map[string]string{"username": "alice", "email": "other@example.com", "password": "s3cret-pass"},
			wantCode: "USERNAME_TAKEN",
		},
		{
			name:     "email taken",
			body:     map[string]string{"username": "alice2", "email": "alice@example.com", "password": "s3cret-pass"},
			wantCode: "EMAIL_TAKEN",
		},
		{
			name:     "invalid email",
			body:     map[string]string{"username": "carol", "email": "not-an-email", "password": "s3cret-pass"},
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "multibyte password over bcrypt limit",
			body:     map[string]string{"username": "carol", "email": "carol@example.com", "password": strings.Repeat("é", 40)},
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "short password",
			body:     map[string]string{"username": "carol", "email": "carol@example.com", "password": "short"},
			wantCode: "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := api.do(http.MethodPost, "/api/users", "", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)

			rec, env = api.do(http.MethodPost, "/api/users/login", "", map[string]string{"login": "alice", "password": "s3cret-pass"})
			require.Equal(t, http.StatusOK, rec.Code)
			var out handler.AuthResponse
			require.NoError(t, json.Unmarshal(env.Data, &out))
			assert.Equal(t, alice.User.ID, out.User.ID)
			assert.Equal(t, "alice@example.com", out.User.Email)
		})
	}
}

func TestAPI_ValidationDetailsNameFields(t *testing.T) {
	api := newTestAPI(t)

	_, env := api.do(http.MethodPost, "/api/users", "", map[string]string{"username": "carol", "password": "s3cret-pass"})

	require.NotNil(t, env.Error)
	details, ok := env.Error.Details.([]any)
	require.True(t, ok, "details should list failing fields")
	require.Len(t, details, 1)
	assert.Equal(t, "email", details[0].(map[string]any)["field"])
}

func TestAPI_ResponsesNeverExposePasswordHash(t *testing.T) {
	api := newTestAPI(t)
	registered := api.register("alice", "alice@example.com")

	paths := []string{"/api/users/me", "/api/users/alice"}
	for _, path := range paths {
		rec, _ := api.do(http.MethodGet, path, registered.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotContains(t, rec.Body.String(), "password", path)
		assert.NotContains(t, rec.Body.String(), "$2a$", path)
	}

	rec, _ := api.do(http.MethodPost, "/api/users/login", "", map[string]string{"login": "alice", "password": "s3cret-pass"})
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestAPI_Authentication(t *testing.T) {
	api := newTestAPI(t)
	registered := api.register("alice", "alice@example.com")

	t.Run("missing token", func(t *testing.T) {
		rec, env := api.do(http.MethodGet, "/api/users/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "TOKEN_MISSING", env.Error.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		rec, env := api.do(http.MethodGet, "/api/users/me", "not.a.jwt", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "TOKEN_INVALID", env.Error.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rec, env := api.do(http.MethodGet, "/api/users/me", registered.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var account handler.AccountResponse
		require.NoError(t, json.Unmarshal(env.Data, &account))
		assert.Equal(t, registered.User.ID, account.ID)
	})

	t.Run("posts require a token", func(t *testing.T) {
		rec, _ := api.do(http.MethodGet, "/api/posts", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAPI_UpdateAccount(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "alice@example.com")
	bob := api.register("bob", "bob@example.com")

	t.Run("another account is forbidden", func(t *testing.T) {
		rec, env := api.do(http.MethodPatch, "/api/users/"+bob.User.ID.String(), alice.Token, map[string]string{"username": "mallory"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)

		rec, env = api.do(http.MethodGet, "/api/users/me", bob.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var account handler.AccountResponse
		require.NoError(t, json.Unmarshal(env.Data, &account))
		assert.Equal(t, "bob", account.Username)
	})

	t.Run("taken username", func(t *testing.T) {
		rec, env := api.do(http.MethodPatch, "/api/users/"+alice.User.ID.String(), alice.Token, map[string]string{"username": "bob"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "USERNAME_TAKEN", env.Error.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec, _ := api.do(http.MethodPatch, "/api/users/not-a-uuid", alice.Token, map[string]string{"username": "x"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("own account", func(t *testing.T) {
		rec, env := api.do(http.MethodPatch, "/api/users/"+alice.User.ID.String(), alice.Token, map[string]string{
			"username": "alice_v2",
			"password": "another-pass",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var account handler.AccountResponse
		require.NoError(t, json.Unmarshal(env.Data, &account))
		assert.Equal(t, "alice_v2", account.Username)
		assert.Equal(t, "alice@example.com", account.Email)

		rec, _ = api.do(http.MethodPost, "/api/users/login", "", map[string]string{"login": "alice_v2", "password": "another-pass"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAPI_DeleteAccount(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "alice@example.com")
	bob := api.register("bob", "bob@example.com")

	rec, _ := api.do(http.MethodDelete, "/api/users/"+bob.User.ID.String(), alice.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = api.do(http.MethodDelete, "/api/users/"+alice.User.ID.String(), alice.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.do(http.MethodGet, "/api/users/me", alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_CreatePost(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "alice@example.com")

	t.Run("recipe post derives ratio and temperature", func(t *testing.T) {
		rec, env := api.do(http.MethodPost, "/api/posts", alice.Token, map[string]any{
			"type":    "Recipe",
			"title":   "My V60",
			"content": "Bright and clean",
			"recipe":  recipeBody(),
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		post := decodePost(t, env)
		assert.Equal(t, alice.User.ID, post.Creator)
		require.NotNil(t, post.Recipe)
		assert.InDelta(t, 15.0, post.Recipe.WaterToCoffeeRatio, 1e-9)
		assert.InDelta(t, 100.0, post.Recipe.WaterTemperature, 1e-9)
		require.Len(t, post.Recipe.Steps, 1)
	})

	t.Run("review post without recipe", func(t *testing.T) {
		rec, env := api.do(http.MethodPost, "/api/posts", alice.Token, map[string]any{
			"type":    "Cafe review",
			"title":   "Corner cafe",
			"content": "Great flat white",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Nil(t, decodePost(t, env).Recipe)
	})

	t.Run("recipe type requires a recipe", func(t *testing.T) {
		rec, env := api.do(http.MethodPost, "/api/posts", alice.Token, map[string]any{"type": "Recipe", "title": "Empty"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	})

	t.Run("unknown type", func(t *testing.T) {
		rec, env := api.do(http.MethodPost, "/api/posts", alice.Token, map[string]any{"type": "Poem"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	})
}

func TestAPI_ReadPosts(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "alice@example.com")
	bob := api.register("bob", "bob@example.com")

	_, created := api.do(http.MethodPost, "/api/posts", alice.Token, map[string]any{"type": "Recipe", "title": "V60", "recipe": recipeBody()})
	alicePost := decodePost(t, created)
	api.do(http.MethodPost, "/api/posts", bob.Token, map[string]any{"type": "Coffee review", "title": "Kenya AA"})

	rec, env := api.do(http.MethodGet, "/api/posts", bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []handler.PostResponse
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 2)

	rec, env = api.do(http.MethodGet, "/api/posts/creator/"+alice.User.ID.String(), bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var byAlice []handler.PostResponse
	require.NoError(t, json.Unmarshal(env.Data, &byAlice))
	require.Len(t, byAlice, 1)
	assert.Equal(t, alicePost.ID, byAlice[0].ID)

	rec, env = api.do(http.MethodGet, "/api/posts/"+alicePost.ID.String(), bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, alicePost.ID, decodePost(t, env).ID)

	rec, env = api.do(http.MethodGet, "/api/posts/not-a-uuid", bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "POST_NOT_FOUND", env.Error.Code)
}

func TestAPI_UpdatePost(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "alice@example.com")
	bob := api.register("bob", "bob@example.com")

	_, created := api.do(http.MethodPost, "/api/posts", alice.Token, map[string]any{"type": "Recipe", "title": "V60", "recipe": recipeBody()})
	path := "/api/posts/" + decodePost(t, created).ID.String()

	t.Run("non-owner is forbidden", func(t *testing.T) {
		rec, env := api.do(http.MethodPatch, path, bob.Token, map[string]any{"title": "Stolen"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("water weight recomputes ratio", func(t *testing.T) {
		rec, env := api.do(http.MethodPatch, path, alice.Token, map[string]any{"recipe": map[string]any{"waterWeight": 360}})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		post := decodePost(t, env)
		assert.Equal(t, "V60", post.Title)
		assert.InDelta(t, 18.0, post.Recipe.WaterToCoffeeRatio, 1e-9)
		assert.Equal(t, "Ethiopia Guji", post.Recipe.CoffeeBean)
	})

	t.Run("explicit ratio wins", func(t *testing.T) {
		rec, env := api.do(http.MethodPatch, path, alice.Token, map[string]any{
			"recipe": map[string]any{"waterWeight": 400, "waterToCoffeeRatio": 99},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.InDelta(t, 99.0, decodePost(t, env).Recipe.WaterToCoffeeRatio, 1e-9)
	})

	t.Run("missing post", func(t *testing.T) {
		rec, _ := api.do(http.MethodPatch, "/api/posts/"+alice.User.ID.String(), alice.Token, map[string]any{"title": "x"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAPI_UnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodGet, "/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ROUTE_NOT_FOUND", env.Error.Code)
}
