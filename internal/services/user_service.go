package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskboard-api/internal/models"
	"taskboard-api/internal/repository"
)

// TaskCounts aggregates a user's tasks by status.
type TaskCounts struct {
	Total      int64
	Todo       int64
	InProgress int64
	Done       int64
}

// UserWithStats pairs a user with their task counts.
type UserWithStats struct {
	User   models.User
	Counts TaskCounts
}

// UserService handles admin-only reads over users.
type UserService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, taskRepo repository.TaskRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
}

// ListWithStats returns every user with task counts grouped by status.
func (s *UserService) ListWithStats() ([]UserWithStats, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	rows, err := s.userRepo.CountTasksByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate task counts: %w", err)
	}

	countsByUser := make(map[string]TaskCounts, len(users))
	for _, row := range rows {
		counts := countsByUser[row.UserID]
		counts.Total += row.Count
		switch row.Status {
		case models.TaskStatusTodo:
			counts.Todo += row.Count
		case models.TaskStatusInProgress:
			counts.InProgress += row.Count
		case models.TaskStatusDone:
			counts.Done += row.Count
		}
		countsByUser[row.UserID] = counts
	}

	result := make([]UserWithStats, len(users))
	for i, user := range users {
		result[i] = UserWithStats{
			User:   user,
			Counts: countsByUser[user.ID],
		}
	}
	return result, nil
}

// GetOwnedTasks returns the target user's tasks with children.
func (s *UserService) GetOwnedTasks(userID string) ([]models.Task, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	tasks, err := s.taskRepo.ListByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
