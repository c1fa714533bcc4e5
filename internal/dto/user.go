package dto

import (
	"time"

	"taskboard-api/internal/models"
	"taskboard-api/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	FullName  string          `json:"fullName"`
	Role      models.UserRole `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TaskCountsDTO is the per-status task breakdown for a user.
type TaskCountsDTO struct {
	Total      int64 `json:"total"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
	Done       int64 `json:"done"`
}

// UserWithStatsDTO represents a user with task counts in admin listings.
type UserWithStatsDTO struct {
	UserDTO
	TaskCounts TaskCountsDTO `json:"taskCounts"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserWithStatsDTO converts a user and their counts to a DTO.
func ToUserWithStatsDTO(stats services.UserWithStats) UserWithStatsDTO {
	return UserWithStatsDTO{
		UserDTO: ToUserDTO(stats.User),
		TaskCounts: TaskCountsDTO{
			Total:      stats.Counts.Total,
			Todo:       stats.Counts.Todo,
			InProgress: stats.Counts.InProgress,
			Done:       stats.Counts.Done,
		},
	}
}

// ToUserWithStatsDTOs converts a slice of users with counts.
func ToUserWithStatsDTOs(stats []services.UserWithStats) []UserWithStatsDTO {
	dtos := make([]UserWithStatsDTO, len(stats))
	for i, s := range stats {
		dtos[i] = ToUserWithStatsDTO(s)
	}
	return dtos
}
