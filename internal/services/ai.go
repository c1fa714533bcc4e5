package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"

	"taskboard-api/internal/constants"
)

// ErrSuggestionUpstream indicates the external text-generation call itself
// failed. Malformed content is never an error; the fallback parser absorbs it.
var ErrSuggestionUpstream = errors.New("suggestion service upstream error")

// SuggestionProvider proposes short sub-task titles for a task.
type SuggestionProvider interface {
	GenerateSubtasks(ctx context.Context, title, description string) ([]string, error)
}

// AIService calls an OpenAI-compatible chat-completion endpoint to break a
// task down into sub-task titles.
type AIService struct {
	client *openai.Client
	model  string
}

// NewAIService creates an AIService. baseURL may point at any
// OpenAI-compatible endpoint; an empty value keeps the client default.
func NewAIService(apiKey, baseURL, model string) *AIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

const suggestionSystemPrompt = "You are a helpful task management assistant. " +
	"Break down tasks into 3-5 actionable subtasks. Return only a JSON array of strings."

// GenerateSubtasks issues one chat-completion request and parses the reply
// into at most five suggestion titles.
func (s *AIService) GenerateSubtasks(ctx context.Context, title, description string) ([]string, error) {
	userPrompt := fmt.Sprintf("Break down this task: %q", title)
	if description != "" {
		userPrompt += " - " + description
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: suggestionSystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
			Temperature: 0.7,
			MaxTokens:   500,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSuggestionUpstream, err)
	}

	if len(resp.Choices) == 0 {
		return []string{}, nil
	}

	return parseSuggestions(resp.Choices[0].Message.Content), nil
}

// listMarkup matches leading digits, dashes, asterisks, dots and whitespace
// on a suggestion line.
var listMarkup = regexp.MustCompile(`^[\d\-\*.\s]+`)

// parseSuggestions reads the model reply as a JSON array of strings; when
// that fails it degrades to line splitting with list markup stripped.
// Best-effort: the result may be empty.
func parseSuggestions(content string) []string {
	var parsed interface{}
	if err := json.Unmarshal([]byte(content), &parsed); err == nil {
		items, ok := parsed.([]interface{})
		if !ok {
			return []string{}
		}
		suggestions := []string{}
		for _, item := range items {
			text, ok := item.(string)
			if !ok {
				continue
			}
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			suggestions = append(suggestions, text)
			if len(suggestions) == constants.MaxSubtaskSuggestions {
				break
			}
		}
		return suggestions
	}

	suggestions := []string{}
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		text := strings.TrimSpace(listMarkup.ReplaceAllString(line, ""))
		if text == "" {
			continue
		}
		suggestions = append(suggestions, text)
		if len(suggestions) == constants.MaxSubtaskSuggestions {
			break
		}
	}
	return suggestions
}
