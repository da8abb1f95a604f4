package chat

import "github.com/yanqian/weather-companion/pkg/metrics"

// Request captures one conversational turn from the user.
type Request struct {
	Message   string `json:"message"`
	UserID    string `json:"userId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// Response is serialized back to API consumers.
type Response struct {
	SessionID string             `json:"sessionId"`
	Reply     string             `json:"reply"`
	Usage     metrics.TokenUsage `json:"usage"`
}

// Turn is one stored message of a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Config wires runtime settings for the chat domain.
type Config struct {
	Model            string
	Temperature      float32
	Prompt           string
	MaxHistoryTurns  int
	MaxHistoryTokens int
	MaxToolRounds    int
	TokenEncoding    string
}
