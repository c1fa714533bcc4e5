package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"taskboard-api/internal/models"
	"taskboard-api/internal/repository"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrParentTaskNotFound = errors.New("parent task not found")
	ErrParentTaskNested   = errors.New("parent task is itself a sub-task")
	ErrNotTaskOwner       = errors.New("only the owner or an admin can modify this task")
	ErrTitleEmpty         = errors.New("title cannot be empty")
	ErrInvalidStatus      = errors.New("invalid task status")
)

// TaskService handles task business rules: ownership, nesting and cascades.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTaskInput represents input for creating a task. OwnerID always comes
// from the authenticated caller, never from the request body.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	ParentID    *string
	OwnerID     string
}

// UpdateTaskInput represents a partial patch; nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

// ListOwned returns the user's tasks with direct children.
func (s *TaskService) ListOwned(userID string) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListAll returns every task with owner and children. Admin access is
// enforced at the route.
func (s *TaskService) ListAll() ([]models.Task, error) {
	tasks, err := s.taskRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create validates nesting rules and creates a task owned by the caller.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleEmpty
	}
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	if input.ParentID != nil {
		parent, err := s.taskRepo.FindByID(*input.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentTaskNotFound
			}
			return nil, fmt.Errorf("failed to resolve parent task: %w", err)
		}
		// A parent owned by someone else is reported as missing rather
		// than forbidden, so task ids of other users cannot be probed.
		if parent.UserID != input.OwnerID {
			return nil, ErrParentTaskNotFound
		}
		if parent.ParentID != nil {
			return nil, ErrParentTaskNested
		}
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		UserID:      input.OwnerID,
		ParentID:    input.ParentID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindWithSubtasks(task.ID)
}

// Update applies a partial patch after ownership checks. The owner never
// changes, regardless of the patch.
func (s *TaskService) Update(taskID, callerID string, callerRole models.UserRole, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findAuthorized(taskID, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindWithSubtasks(task.ID)
}

// Delete removes a task and all of its children after ownership checks.
func (s *TaskService) Delete(taskID, callerID string, callerRole models.UserRole) error {
	task, err := s.findAuthorized(taskID, callerID, callerRole)
	if err != nil {
		return err
	}

	if err := s.taskRepo.DeleteWithSubtasks(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) findAuthorized(taskID, callerID string, callerRole models.UserRole) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.UserID != callerID && callerRole != models.RoleAdmin {
		return nil, ErrNotTaskOwner
	}
	return task, nil
}
