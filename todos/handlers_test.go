package todos

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobertLib/todo-api/auth"
	"github.com/RobertLib/todo-api/config"
)

// newTestRouter mounts the todo handlers behind the real JWT middleware, the
// same way main does.
func newTestRouter(store Store, cfg *config.AuthConfig) http.Handler {
	handlers := NewHandlers(NewService(store))

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.JWTMiddleware(cfg))
		r.Route("/todos", func(r chi.Router) {
			r.Post("/", handlers.HandleCreate())
			r.Get("/", handlers.HandleList())
			r.Get("/{id}", handlers.HandleGet())
			r.Patch("/{id}", handlers.HandleUpdate())
			r.Delete("/{id}", handlers.HandleDelete())
		})
	})
	return r
}

func bearerToken(t *testing.T, userID int, cfg *config.AuthConfig) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte(cfg.JWTSecret), cfg.TokenTTL)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTodoLifecycleAcrossUsers(t *testing.T) {
	cfg := &config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
	router := newTestRouter(newFakeStore(), cfg)

	user1 := bearerToken(t, 1, cfg)
	user2 := bearerToken(t, 2, cfg)

	// Create as user 1.
	rec := doRequest(t, router, http.MethodPost, "/todos", user1, `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, false, created["completed"])
	assert.NotContains(t, created, "user_id")
	assert.NotContains(t, created, "ownerId")

	id := strconv.Itoa(int(created["id"].(float64)))

	// Fetching as user 2 is forbidden; as user 1 it succeeds.
	rec = doRequest(t, router, http.MethodGet, "/todos/"+id, user2, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/todos/"+id, user1, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Update and delete stay owner-scoped too.
	rec = doRequest(t, router, http.MethodPatch, "/todos/"+id, user2, `{"completed":true}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, router, http.MethodPatch, "/todos/"+id, user1, `{"completed":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/todos/"+id, user1, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/todos/"+id, user1, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateValidation(t *testing.T) {
	cfg := &config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
	router := newTestRouter(newFakeStore(), cfg)
	user1 := bearerToken(t, 1, cfg)

	rec := doRequest(t, router, http.MethodPost, "/todos", user1, `{"title":"   "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "title", payload.Errors[0].Field)
	assert.Equal(t, "Title is required", payload.Errors[0].Message)
}

func TestUpdateEmptyBody(t *testing.T) {
	cfg := &config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
	store := newFakeStore()
	router := newTestRouter(store, cfg)
	user1 := bearerToken(t, 1, cfg)

	rec := doRequest(t, router, http.MethodPost, "/todos", user1, `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPatch, "/todos/1", user1, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"body"`)
	assert.Contains(t, rec.Body.String(), "At least one field")
}

func TestInvalidTodoIDParam(t *testing.T) {
	cfg := &config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
	router := newTestRouter(newFakeStore(), cfg)
	user1 := bearerToken(t, 1, cfg)

	rec := doRequest(t, router, http.MethodGet, "/todos/abc", user1, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid todo ID")
}

func TestMissingTokenRejected(t *testing.T) {
	cfg := &config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
	router := newTestRouter(newFakeStore(), cfg)

	rec := doRequest(t, router, http.MethodGet, "/todos", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No token provided")
}
