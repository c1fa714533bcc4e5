package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskboard-api/internal/dto"
	apierrors "taskboard-api/internal/errors"
	"taskboard-api/internal/services"
)

// UserHandler coordinates admin-only user views.
type UserHandler struct {
	userService *services.UserService
	log         logrus.FieldLogger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

// ListUsers returns every user with per-status task counts.
func (h *UserHandler) ListUsers(c *gin.Context) {
	stats, err := h.userService.ListWithStats()
	if err != nil {
		h.respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserWithStatsDTOs(stats))
}

// ListUserTasks returns the target user's tasks with children.
func (h *UserHandler) ListUserTasks(c *gin.Context) {
	tasks, err := h.userService.GetOwnedTasks(c.Param("userId"))
	if err != nil {
		h.respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

func (h *UserHandler) respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		h.log.WithError(err).Error("user request failed")
		apierrors.InternalError(c, "")
	}
}
