package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"itemhub/internal/middleware"
	"itemhub/internal/model"
	"itemhub/internal/repository"
	"itemhub/internal/service"
	"itemhub/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memUserRepo is an in-memory stand-in for the Mongo user repository
type memUserRepo struct {
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	if _, exists := r.users[user.Username]; exists {
		return repository.ErrDuplicateUsername
	}
	user.ID = primitive.NewObjectID()
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

type authFixture struct {
	router *gin.Engine
	repo   *memUserRepo
}

func newAuthFixture(initialAdmin string) *authFixture {
	repo := newMemUserRepo()
	jwtUtil := utils.NewJWTUtil("secret", 1)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewAuthHandler(service.NewAuthService(repo, jwtUtil, initialAdmin, logger))

	r := gin.New()
	r.Use(middleware.ErrorHandler(logger, false))
	api := r.Group("/api")
	authMW := middleware.JWTAuthMiddleware(jwtUtil)
	h.RegisterAuthRoutes(api, authMW)
	h.RegisterAdminRoutes(api, authMW, middleware.AdminMiddleware())

	return &authFixture{router: r, repo: repo}
}

func (f *authFixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *authFixture) register(t *testing.T, username, password string) (string, map[string]interface{}) {
	t.Helper()
	w := f.do(http.MethodPost, "/api/auth/register", `{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	return body["token"].(string), body["user"].(map[string]interface{})
}

func TestAuthHandler_Register(t *testing.T) {
	f := newAuthFixture("")

	w := f.do(http.MethodPost, "/api/auth/register", `{"username":"alice","password":"password123"}`, "")

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered successfully", body["message"])
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "user", user["role"])
	assert.NotEmpty(t, user["id"])
	assert.NotEmpty(t, user["createdAt"])
	// The hashed secret must never appear in a response
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)
	assert.NotContains(t, w.Body.String(), "passwordHash")
	assert.NotContains(t, w.Body.String(), "password123")
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	f := newAuthFixture("")

	for name, body := range map[string]string{
		"missing username": `{"password":"password123"}`,
		"missing password": `{"username":"alice"}`,
		"short password":   `{"username":"alice","password":"123"}`,
		"short username":   `{"username":"ab","password":"password123"}`,
	} {
		w := f.do(http.MethodPost, "/api/auth/register", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w), name)
	}
	assert.Empty(t, f.repo.users)
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	f := newAuthFixture("")
	f.register(t, "alice", "password123")

	w := f.do(http.MethodPost, "/api/auth/register", `{"username":"alice","password":"otherpassword"}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	assert.Contains(t, w.Body.String(), `"field":"username"`)
}

func TestAuthHandler_Login(t *testing.T) {
	f := newAuthFixture("")
	f.register(t, "alice", "password123")

	w := f.do(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"password123"}`, "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	f := newAuthFixture("")
	f.register(t, "alice", "password123")

	wrongPass := f.do(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrongpassword"}`, "")
	unknownUser := f.do(http.MethodPost, "/api/auth/login", `{"username":"nobody","password":"password123"}`, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, wrongPass))
	// Identical shape for both failures, so usernames cannot be enumerated
	assert.Equal(t, wrongPass.Body.String(), unknownUser.Body.String())
}

func TestAuthHandler_Me(t *testing.T) {
	f := newAuthFixture("")
	token, registered := f.register(t, "alice", "password123")

	w := f.do(http.MethodGet, "/api/auth/me", "", token)

	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, registered["id"], user["id"])
}

func TestAuthHandler_Me_NoToken(t *testing.T) {
	f := newAuthFixture("")

	w := f.do(http.MethodGet, "/api/auth/me", "", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_REQUIRED", errorCode(t, w))
}

func TestAuthHandler_Me_UserNoLongerExists(t *testing.T) {
	f := newAuthFixture("")
	// A valid token whose identity does not resolve to a stored user
	jwtUtil := utils.NewJWTUtil("secret", 1)
	token, err := jwtUtil.GenerateToken(primitive.NewObjectID().Hex(), "ghost", "user")
	require.NoError(t, err)

	w := f.do(http.MethodGet, "/api/auth/me", "", token)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", errorCode(t, w))
}

func TestAuthHandler_AdminListUsers(t *testing.T) {
	f := newAuthFixture("root")
	adminToken, _ := f.register(t, "root", "password123")
	userToken, _ := f.register(t, "alice", "password123")

	w := f.do(http.MethodGet, "/api/admin/users", "", adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])
	assert.NotContains(t, w.Body.String(), "passwordHash")

	w = f.do(http.MethodGet, "/api/admin/users", "", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", errorCode(t, w))

	w = f.do(http.MethodGet, "/api/admin/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_REQUIRED", errorCode(t, w))
}
