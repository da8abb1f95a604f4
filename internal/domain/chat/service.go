package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkoukk/tiktoken-go"

	"github.com/yanqian/weather-companion/internal/domain/advisor"
	"github.com/yanqian/weather-companion/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/weather-companion/pkg/errors"
	"github.com/yanqian/weather-companion/pkg/metrics"
)

const (
	weatherToolName      = "get_weather_advice"
	defaultTokenEncoding = "cl100k_base"
	defaultHistoryTurns  = 20
	defaultHistoryTokens = 2000
	defaultToolRounds    = 3
)

// Service exposes the conversational weather companion.
type Service interface {
	Respond(ctx context.Context, req Request) (Response, error)
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// AdviceProvider backs the weather tool exposed to the model.
type AdviceProvider interface {
	Advise(ctx context.Context, req advisor.Request) (advisor.Response, error)
}

type service struct {
	cfg     Config
	store   Store
	advice  AdviceProvider
	client  ChatClient
	logger  *slog.Logger
	encoder *tiktoken.Tiktoken
}

// NewService wires up the chat domain.
func NewService(cfg Config, store Store, advice AdviceProvider, client ChatClient, logger *slog.Logger) Service {
	log := logger.With("component", "chat.service")

	encoding := cfg.TokenEncoding
	if encoding == "" {
		encoding = defaultTokenEncoding
	}
	encoder, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		log.Warn("token encoding unavailable, falling back to length estimate", "encoding", encoding, "error", err)
		encoder = nil
	}

	return &service{
		cfg:     cfg,
		store:   store,
		advice:  advice,
		client:  client,
		logger:  log,
		encoder: encoder,
	}
}

func (s *service) Respond(ctx context.Context, req Request) (Response, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Response{}, apperrors.Wrap("invalid_input", "message cannot be empty", nil)
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	messages := make([]chatgpt.Message, 0, s.historyTurns()+2)
	messages = append(messages, chatgpt.Message{Role: "system", Content: s.cfg.Prompt})
	for _, turn := range s.loadHistory(ctx, sessionID) {
		messages = append(messages, chatgpt.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, chatgpt.Message{Role: "user", Content: message})

	tools := []chatgpt.Tool{weatherAdviceTool()}

	var (
		usage metrics.TokenUsage
		reply string
	)
	for round := 0; round < s.toolRounds(); round++ {
		completion, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
			Model:       s.cfg.Model,
			Messages:    messages,
			Temperature: s.cfg.Temperature,
			Tools:       tools,
		})
		if err != nil {
			return Response{}, apperrors.Wrap("llm_error", "chatgpt request failed", err)
		}
		if len(completion.Choices) == 0 {
			return Response{}, apperrors.Wrap("llm_error", "chatgpt returned no choices", nil)
		}
		usage = usage.Add(metrics.TokenUsage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		})

		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			reply = msg.Content
			break
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			messages = append(messages, chatgpt.Message{
				Role:       "tool",
				Content:    s.runTool(ctx, req.UserID, call),
				ToolCallID: call.ID,
			})
		}
	}
	if reply == "" {
		return Response{}, apperrors.Wrap("llm_error", "tool call limit reached without a final answer", nil)
	}

	if err := s.store.Append(ctx, sessionID,
		Turn{Role: "user", Content: message},
		Turn{Role: "assistant", Content: reply},
	); err != nil {
		s.logger.Warn("failed to persist conversation turns", "sessionId", sessionID, "error", err)
	}

	return Response{SessionID: sessionID, Reply: reply, Usage: usage}, nil
}

func (s *service) runTool(ctx context.Context, userID string, call chatgpt.ToolCall) string {
	if call.Function.Name != weatherToolName {
		return "unknown tool: " + call.Function.Name
	}
	var args struct {
		City string `json:"city"`
	}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return "invalid tool arguments: " + err.Error()
	}

	resp, err := s.advice.Advise(ctx, advisor.Request{City: args.City, UserID: userID})
	if err != nil {
		s.logger.Warn("weather advice tool failed", "city", args.City, "error", err)
		return "failed to fetch weather advice: " + err.Error()
	}
	s.logger.Info("weather advice tool served", "city", resp.City)
	return resp.Text
}

// loadHistory fetches recent turns and trims them to the token budget,
// dropping the oldest turns first. History problems degrade to an empty
// context rather than failing the request.
func (s *service) loadHistory(ctx context.Context, sessionID string) []Turn {
	history, err := s.store.Recent(ctx, sessionID, s.historyTurns())
	if err != nil {
		s.logger.Warn("failed to load conversation history", "sessionId", sessionID, "error", err)
		return nil
	}

	budget := s.cfg.MaxHistoryTokens
	if budget <= 0 {
		budget = defaultHistoryTokens
	}

	total := 0
	start := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		total += s.countTokens(history[i].Content) + 4
		if total > budget {
			break
		}
		start = i
	}
	return history[start:]
}

func (s *service) countTokens(text string) int {
	if s.encoder != nil {
		return len(s.encoder.Encode(text, nil, nil))
	}
	// Rough fallback: about four characters per token.
	return len(text)/4 + 1
}

func (s *service) historyTurns() int {
	if s.cfg.MaxHistoryTurns <= 0 {
		return defaultHistoryTurns
	}
	return s.cfg.MaxHistoryTurns
}

func (s *service) toolRounds() int {
	if s.cfg.MaxToolRounds <= 0 {
		return defaultToolRounds
	}
	return s.cfg.MaxToolRounds
}

func weatherAdviceTool() chatgpt.Tool {
	return chatgpt.Tool{
		Type: "function",
		Function: chatgpt.ToolFunction{
			Name:        weatherToolName,
			Description: "Get the current weather of a given city along with personalized health, activity, food, and general recommendations.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"city": map[string]any{
						"type":        "string",
						"description": "City name, for example: Singapore",
					},
				},
				"required": []string{"city"},
			},
		},
	}
}
