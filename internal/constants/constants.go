package constants

// Context keys set by the auth middleware.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

const (
	MinPasswordLength = 6

	// MaxSubtaskSuggestions caps AI-generated suggestions regardless of
	// how many the model returns.
	MaxSubtaskSuggestions = 5
)
