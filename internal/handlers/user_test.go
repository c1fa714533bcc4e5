package handlers

import (
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

type userTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *services.TokenIssuer
}

func setupUserTestEnv(t *testing.T) userTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))

	tokens := services.NewTokenIssuer([]byte("test-secret"), time.Hour)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	handler := NewUserHandler(services.NewUserService(userRepo, taskRepo), testLogger())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	users := r.Group("/users")
	users.Use(middleware.RequireAuth(tokens), middleware.RequireAdmin())
	{
		users.GET("", handler.ListUsers)
		users.GET("/:userId/tasks", handler.ListUserTasks)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return userTestEnv{db: db, router: r, tokens: tokens}
}

func (env userTestEnv) createUser(t *testing.T, email string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		FullName:     "Test User",
		Role:         role,
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env userTestEnv) createTask(t *testing.T, ownerID string, status models.TaskStatus) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:  "Task",
		Status: status,
		UserID: ownerID,
	}
	require.NoError(t, env.db.Create(task).Error)
	return task
}

func (env userTestEnv) get(t *testing.T, url string, user *models.User) *httptest.ResponseRecorder {
	t.Helper()
	token, err := env.tokens.Sign(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestUserHandler_ListUsers_Stats(t *testing.T) {
	env := setupUserTestEnv(t)

	admin := env.createUser(t, "admin@example.com", models.RoleAdmin)
	worker := env.createUser(t, "worker@example.com", models.RoleUser)

	env.createTask(t, worker.ID, models.TaskStatusTodo)
	env.createTask(t, worker.ID, models.TaskStatusTodo)
	env.createTask(t, worker.ID, models.TaskStatusInProgress)
	env.createTask(t, worker.ID, models.TaskStatusDone)

	w := env.get(t, "/users", admin)
	require.Equal(t, http.StatusOK, w.Code)

	var users []dto.UserWithStatsDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)

	byEmail := map[string]dto.UserWithStatsDTO{}
	for _, u := range users {
		byEmail[u.Email] = u
	}

	stats := byEmail["worker@example.com"].TaskCounts
	require.Equal(t, int64(4), stats.Total)
	require.Equal(t, int64(2), stats.Todo)
	require.Equal(t, int64(1), stats.InProgress)
	require.Equal(t, int64(1), stats.Done)

	adminStats := byEmail["admin@example.com"].TaskCounts
	require.Equal(t, int64(0), adminStats.Total)
}

func TestUserHandler_ListUsers_NonAdminForbidden(t *testing.T) {
	env := setupUserTestEnv(t)
	user := env.createUser(t, "user@example.com", models.RoleUser)

	w := env.get(t, "/users", user)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserHandler_ListUserTasks(t *testing.T) {
	env := setupUserTestEnv(t)

	admin := env.createUser(t, "admin@example.com", models.RoleAdmin)
	worker := env.createUser(t, "worker@example.com", models.RoleUser)
	task := env.createTask(t, worker.ID, models.TaskStatusTodo)

	w := env.get(t, "/users/"+worker.ID+"/tasks", admin)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	require.Equal(t, task.ID, tasks[0].ID)
	require.Equal(t, worker.ID, tasks[0].UserID)
}

func TestUserHandler_ListUserTasks_UnknownUser(t *testing.T) {
	env := setupUserTestEnv(t)
	admin := env.createUser(t, "admin@example.com", models.RoleAdmin)

	w := env.get(t, "/users/no-such-user/tasks", admin)
	require.Equal(t, http.StatusNotFound, w.Code)
}
