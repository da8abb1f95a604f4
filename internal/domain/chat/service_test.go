package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-companion/internal/domain/advisor"
	"github.com/yanqian/weather-companion/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/weather-companion/pkg/errors"
)

func TestRespondResolvesToolCall(t *testing.T) {
	client := &stubChatClient{responses: []chatgpt.ChatCompletionResponse{
		toolCallResponse("call_1", `{"city":"Singapore"}`),
		textResponse("Pack an umbrella before heading out."),
	}}
	advice := &stubAdviceProvider{response: advisor.Response{
		City: "Singapore",
		Text: "Current weather in Singapore:\nTemperature: 27°C",
	}}
	store := newStubStore()

	svc := NewService(Config{Model: "gpt-test", Prompt: "You are a weather companion."}, store, advice, client, testLogger())
	resp, err := svc.Respond(context.Background(), Request{Message: "What's the weather in Singapore?", UserID: "u1"})

	require.NoError(t, err)
	require.Equal(t, "Pack an umbrella before heading out.", resp.Reply)
	require.NotEmpty(t, resp.SessionID)

	require.Equal(t, advisor.Request{City: "Singapore", UserID: "u1"}, advice.lastRequest)

	// Second call carries the assistant tool call plus the tool result.
	require.Len(t, client.requests, 2)
	second := client.requests[1].Messages
	last := second[len(second)-1]
	require.Equal(t, "tool", last.Role)
	require.Equal(t, "call_1", last.ToolCallID)
	require.Contains(t, last.Content, "Current weather in Singapore:")

	// Both turns were persisted under the generated session.
	turns := store.turns[resp.SessionID]
	require.Len(t, turns, 2)
	require.Equal(t, Turn{Role: "user", Content: "What's the weather in Singapore?"}, turns[0])
	require.Equal(t, Turn{Role: "assistant", Content: "Pack an umbrella before heading out."}, turns[1])
}

func TestRespondDirectAnswerWithoutTools(t *testing.T) {
	client := &stubChatClient{responses: []chatgpt.ChatCompletionResponse{
		textResponse("Hello! Ask me about the weather."),
	}}
	store := newStubStore()

	svc := NewService(Config{Model: "gpt-test"}, store, &stubAdviceProvider{}, client, testLogger())
	resp, err := svc.Respond(context.Background(), Request{Message: "hi", SessionID: "sess-1"})

	require.NoError(t, err)
	require.Equal(t, "sess-1", resp.SessionID)
	require.Equal(t, "Hello! Ask me about the weather.", resp.Reply)
	require.Len(t, client.requests, 1)
}

func TestRespondAccumulatesUsage(t *testing.T) {
	first := toolCallResponse("call_1", `{"city":"Oslo"}`)
	first.Usage = chatgpt.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}
	second := textResponse("done")
	second.Usage = chatgpt.Usage{PromptTokens: 20, CompletionTokens: 7, TotalTokens: 27}

	client := &stubChatClient{responses: []chatgpt.ChatCompletionResponse{first, second}}

	svc := NewService(Config{}, newStubStore(), &stubAdviceProvider{}, client, testLogger())
	resp, err := svc.Respond(context.Background(), Request{Message: "weather in Oslo"})

	require.NoError(t, err)
	require.Equal(t, 30, resp.Usage.PromptTokens)
	require.Equal(t, 12, resp.Usage.CompletionTokens)
	require.Equal(t, 42, resp.Usage.TotalTokens)
}

func TestRespondEmptyMessage(t *testing.T) {
	svc := NewService(Config{}, newStubStore(), &stubAdviceProvider{}, &stubChatClient{}, testLogger())

	_, err := svc.Respond(context.Background(), Request{Message: "   "})

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestRespondToolRoundLimit(t *testing.T) {
	// The model keeps asking for tools and never produces an answer.
	client := &stubChatClient{repeat: toolCallResponse("call_x", `{"city":"Oslo"}`)}

	svc := NewService(Config{MaxToolRounds: 2}, newStubStore(), &stubAdviceProvider{}, client, testLogger())
	_, err := svc.Respond(context.Background(), Request{Message: "weather"})

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "llm_error"))
	require.Len(t, client.requests, 2)
}

func TestRespondToolFailureIsReportedToModel(t *testing.T) {
	client := &stubChatClient{responses: []chatgpt.ChatCompletionResponse{
		toolCallResponse("call_1", `{"city":"Nowhereville"}`),
		textResponse("I could not find that city."),
	}}
	advice := &stubAdviceProvider{err: errors.New("city not found")}

	svc := NewService(Config{}, newStubStore(), advice, client, testLogger())
	resp, err := svc.Respond(context.Background(), Request{Message: "weather in Nowhereville"})

	require.NoError(t, err)
	require.Equal(t, "I could not find that city.", resp.Reply)

	second := client.requests[1].Messages
	last := second[len(second)-1]
	require.Equal(t, "tool", last.Role)
	require.Contains(t, last.Content, "failed to fetch weather advice")
}

func TestRespondTrimsHistoryToTokenBudget(t *testing.T) {
	store := newStubStore()
	store.turns["sess-1"] = []Turn{
		{Role: "user", Content: strings.Repeat("weather ", 200)},
		{Role: "assistant", Content: "short answer"},
	}
	client := &stubChatClient{responses: []chatgpt.ChatCompletionResponse{textResponse("ok")}}

	svc := NewService(Config{MaxHistoryTokens: 50}, store, &stubAdviceProvider{}, client, testLogger())
	_, err := svc.Respond(context.Background(), Request{Message: "hi", SessionID: "sess-1"})

	require.NoError(t, err)
	messages := client.requests[0].Messages
	// system + surviving history turn + new user message
	require.Len(t, messages, 3)
	require.Equal(t, "short answer", messages[1].Content)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func textResponse(content string) chatgpt.ChatCompletionResponse {
	var resp chatgpt.ChatCompletionResponse
	resp.Choices = []struct {
		Message chatgpt.Message `json:"message"`
	}{
		{Message: chatgpt.Message{Role: "assistant", Content: content}},
	}
	return resp
}

func toolCallResponse(id, arguments string) chatgpt.ChatCompletionResponse {
	var resp chatgpt.ChatCompletionResponse
	resp.Choices = []struct {
		Message chatgpt.Message `json:"message"`
	}{
		{Message: chatgpt.Message{
			Role: "assistant",
			ToolCalls: []chatgpt.ToolCall{
				{
					ID:   id,
					Type: "function",
					Function: chatgpt.ToolCallDefinition{
						Name:      weatherToolName,
						Arguments: arguments,
					},
				},
			},
		}},
	}
	return resp
}

type stubChatClient struct {
	responses []chatgpt.ChatCompletionResponse
	repeat    chatgpt.ChatCompletionResponse
	requests  []chatgpt.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.requests = append(s.requests, req)
	if len(s.responses) == 0 {
		return s.repeat, nil
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	return next, nil
}

type stubAdviceProvider struct {
	response    advisor.Response
	err         error
	lastRequest advisor.Request
}

func (s *stubAdviceProvider) Advise(_ context.Context, req advisor.Request) (advisor.Response, error) {
	s.lastRequest = req
	if s.err != nil {
		return advisor.Response{}, s.err
	}
	return s.response, nil
}

type stubStore struct {
	turns map[string][]Turn
}

func newStubStore() *stubStore {
	return &stubStore{turns: make(map[string][]Turn)}
}

func (s *stubStore) Append(_ context.Context, sessionID string, turns ...Turn) error {
	s.turns[sessionID] = append(s.turns[sessionID], turns...)
	return nil
}

func (s *stubStore) Recent(_ context.Context, sessionID string, limit int) ([]Turn, error) {
	turns := s.turns[sessionID]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns, nil
}
