package repository

import (
	"taskboard-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID without relations
	FindByID(id string) (*models.Task, error)

	// FindWithSubtasks finds a task by ID including its direct children
	FindWithSubtasks(id string) (*models.Task, error)

	// ListByOwner retrieves all tasks owned by a user, newest first,
	// each with its direct children oldest first
	ListByOwner(ownerID string) ([]models.Task, error)

	// ListAll retrieves every task with its owner and direct children
	ListAll() ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// DeleteWithSubtasks removes a task and all tasks referencing it as
	// parent within a single transaction
	DeleteWithSubtasks(id string) error
}

// TaskStatusCount is one row of the per-user status aggregation.
type TaskStatusCount struct {
	UserID string
	Status models.TaskStatus
	Count  int64
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves all users, newest first
	List() ([]models.User, error)

	// CountTasksByStatus returns task counts grouped by owner and status
	CountTasksByStatus() ([]TaskStatusCount, error)
}
