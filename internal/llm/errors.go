package llm

import (
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultUserMessage is shown for any failure without a better explanation.
const DefaultUserMessage = "Failed to fetch suggestions from AI"

// UserMessage turns a provider error into text safe to show to clients.
func UserMessage(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch fmt.Sprint(apiErr.Code) {
		case "insufficient_quota":
			return "API quota exceeded. Please try again later."
		case "invalid_api_key":
			return "Invalid API credentials."
		case "model_not_found", "DeploymentNotFound":
			return "AI model not available."
		}
	}
	return DefaultUserMessage
}
