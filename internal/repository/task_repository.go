package repository

import (
	"gorm.io/gorm"

	"taskboard-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// subtasksAscending preloads direct children ordered by creation time.
func subtasksAscending(db *gorm.DB) *gorm.DB {
	return db.Order("tasks.created_at ASC")
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID without relations
func (r *GormTaskRepository) FindByID(id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindWithSubtasks finds a task by ID including its direct children
func (r *GormTaskRepository) FindWithSubtasks(id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		Preload("Subtasks", subtasksAscending).
		First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByOwner retrieves all tasks owned by a user, newest first
func (r *GormTaskRepository) ListByOwner(ownerID string) ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.db.
		Where("user_id = ?", ownerID).
		Preload("Subtasks", subtasksAscending).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAll retrieves every task with its owner and direct children
func (r *GormTaskRepository) ListAll() ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.db.
		Preload("User").
		Preload("Subtasks", subtasksAscending).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// DeleteWithSubtasks removes a task and its direct children atomically
func (r *GormTaskRepository) DeleteWithSubtasks(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, "id = ?", id).Error
	})
}
