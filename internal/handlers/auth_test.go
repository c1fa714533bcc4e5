package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/middleware"
	"taskboard-api/internal/models"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/services"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	tokens      *services.TokenIssuer
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	require.NoError(t, err)

	tokens := services.NewTokenIssuer([]byte("test-secret"), time.Hour)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	authService := services.NewAuthService(userRepo, tokens)
	handler := NewAuthHandler(authService, testLogger())
	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo), testLogger())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.GET("/tasks", middleware.RequireAuth(tokens), taskHandler.ListTasks)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
		tokens:      tokens,
	}
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/auth/register", map[string]string{
		"email":    "newuser@example.com",
		"password": "supersecret",
		"fullName": "New User",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newuser@example.com", response.User.Email)
	require.Equal(t, "New User", response.User.FullName)
	require.Equal(t, models.RoleUser, response.User.Role)
	require.NotEmpty(t, response.User.ID)
	require.NotEmpty(t, response.Token)

	// The returned token authenticates subsequent requests
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+response.Token)
	tasksRecorder := httptest.NewRecorder()
	env.router.ServeHTTP(tasksRecorder, req)
	require.Equal(t, http.StatusOK, tasksRecorder.Code)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]string{
		"email":    "taken@example.com",
		"password": "supersecret",
		"fullName": "First User",
	}
	w := postJSON(t, env.router, "/auth/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, env.router, "/auth/register", payload)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/auth/register", map[string]string{
		"email":    "user@example.com",
		"password": "short",
		"fullName": "User",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/auth/register", map[string]string{
		"email":    "not-an-email",
		"password": "supersecret",
		"fullName": "User",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, _, err := env.authService.Register(services.RegisterInput{
		Email:    "existing@example.com",
		Password: "supersecret",
		FullName: "Existing User",
	})
	require.NoError(t, err)

	w := postJSON(t, env.router, "/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "existing@example.com", response.User.Email)
	require.NotEmpty(t, response.Token)

	claims, err := env.tokens.Parse(response.Token)
	require.NoError(t, err)
	require.Equal(t, response.User.ID, claims.UserID)
	require.Equal(t, models.RoleUser, claims.Role)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, _, err := env.authService.Register(services.RegisterInput{
		Email:    "existing@example.com",
		Password: "supersecret",
		FullName: "Existing User",
	})
	require.NoError(t, err)

	w := postJSON(t, env.router, "/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, env.router, "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_PasswordNeverStoredPlain(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/auth/register", map[string]string{
		"email":    "hash@example.com",
		"password": "supersecret",
		"fullName": "Hash User",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "hash@example.com").First(&user).Error)
	require.NotEqual(t, "supersecret", user.PasswordHash)
	require.NotEmpty(t, user.PasswordHash)
}
