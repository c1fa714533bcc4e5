package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskboard-api/internal/dto"
	apierrors "taskboard-api/internal/errors"
	"taskboard-api/internal/services"
)

// AIHandler exposes sub-task suggestion generation.
type AIHandler struct {
	provider services.SuggestionProvider
	log      logrus.FieldLogger
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(provider services.SuggestionProvider, log logrus.FieldLogger) *AIHandler {
	return &AIHandler{
		provider: provider,
		log:      log,
	}
}

// GenerateSubtasks asks the suggestion provider for up to five sub-task
// titles for the given task.
func (h *AIHandler) GenerateSubtasks(c *gin.Context) {
	type GenerateSubtasksRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req GenerateSubtasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		apierrors.BadRequest(c, "title is required")
		return
	}

	if h.provider == nil {
		apierrors.BadGateway(c, "Suggestion service is not configured")
		return
	}

	titles, err := h.provider.GenerateSubtasks(c.Request.Context(), title, strings.TrimSpace(req.Description))
	if err != nil {
		if errors.Is(err, services.ErrSuggestionUpstream) {
			h.log.WithError(err).Warn("suggestion upstream call failed")
			apierrors.BadGateway(c, "Failed to generate subtasks")
			return
		}
		h.log.WithError(err).Error("suggestion request failed")
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToSuggestionsResponse(titles))
}
