package dto

import (
	"time"

	"taskboard-api/internal/models"
)

// OwnerDTO is the user summary attached to admin task listings.
type OwnerDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// TaskDTO represents a task in API responses. Children nest one level only.
type TaskDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	UserID      string            `json:"userId"`
	ParentID    *string           `json:"parentId"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Subtasks    []TaskDTO         `json:"subtasks"`
	User        *OwnerDTO         `json:"user,omitempty"`
}

// SubtaskSuggestionDTO is one AI-proposed sub-task.
type SubtaskSuggestionDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SubtaskSuggestionsResponse wraps the suggestion list.
type SubtaskSuggestionsResponse struct {
	Subtasks []SubtaskSuggestionDTO `json:"subtasks"`
}

// ToTaskDTO converts a Task model to TaskDTO, nesting direct children.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		UserID:      task.UserID,
		ParentID:    task.ParentID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Subtasks:    []TaskDTO{},
	}

	for _, subtask := range task.Subtasks {
		child := ToTaskDTO(subtask)
		child.Subtasks = []TaskDTO{}
		dto.Subtasks = append(dto.Subtasks, child)
	}

	// Include owner summary if preloaded
	if task.User.ID != "" {
		dto.User = &OwnerDTO{
			ID:       task.User.ID,
			Email:    task.User.Email,
			FullName: task.User.FullName,
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToSuggestionsResponse pairs each suggested title with an empty
// description placeholder.
func ToSuggestionsResponse(titles []string) SubtaskSuggestionsResponse {
	subtasks := make([]SubtaskSuggestionDTO, len(titles))
	for i, title := range titles {
		subtasks[i] = SubtaskSuggestionDTO{Title: title, Description: ""}
	}
	return SubtaskSuggestionsResponse{Subtasks: subtasks}
}
