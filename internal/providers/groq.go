package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	DefaultGroqURL     = "https://api.groq.com/openai/v1/chat/completions"
	DefaultGroqModel   = "llama-3.1-8b-instant"
	FallbackCoachReply = "Let's train! 💪"

	groqProvider    = "groq"
	groqTemperature = 0.7
	groqMaxTokens   = 500

	coachInstruction = "You are an expert fitness trainer and nutritionist named 'FitLife Coach'. " +
		"You provide motivating, scientific, and concise advice. " +
		"If the user greets you, welcome them warmly. " +
		"If they ask for a plan, ask for their age/weight/goals first if you don't know it."
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	roleSystem    = "system"
)

var ErrChatHistoryInvalid = errors.New("chat history invalid")

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ValidateChatHistory accepts only user and assistant turns with content.
// Client-supplied system turns are rejected so the coach persona stays fixed.
func ValidateChatHistory(history []ChatMessage) error {
	if len(history) == 0 {
		return ErrChatHistoryInvalid
	}
	for _, message := range history {
		if message.Role != RoleUser && message.Role != RoleAssistant {
			return ErrChatHistoryInvalid
		}
		if strings.TrimSpace(message.Content) == "" {
			return ErrChatHistoryInvalid
		}
	}
	return nil
}

type GroqClient struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

func NewGroqClient(apiKey string, model string, endpoint string, httpClient *http.Client) *GroqClient {
	if strings.TrimSpace(model) == "" {
		model = DefaultGroqModel
	}
	if endpoint == "" {
		endpoint = DefaultGroqURL
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout)
	}
	return &GroqClient{apiKey: strings.TrimSpace(apiKey), model: model, endpoint: endpoint, httpClient: httpClient}
}

type groqCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type groqCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// Reply returns the coach's next turn for history. An empty completion yields FallbackCoachReply.
func (client *GroqClient) Reply(ctx context.Context, history []ChatMessage) (string, error) {
	if client.apiKey == "" {
		return "", fmt.Errorf("groq: %w", ErrNotConfigured)
	}

	messages := make([]ChatMessage, 0, len(history)+1)
	messages = append(messages, ChatMessage{Role: roleSystem, Content: coachInstruction})
	messages = append(messages, history...)

	body, err := json.Marshal(groqCompletionRequest{
		Model:       client.model,
		Messages:    messages,
		Temperature: groqTemperature,
		MaxTokens:   groqMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encode groq request: %w", err)
	}

	request, err := http.NewRequest(http.MethodPost, client.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build groq request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+client.apiKey)

	var completion groqCompletionResponse
	if err := doJSON(ctx, client.httpClient, groqProvider, request, &completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return FallbackCoachReply, nil
	}
	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	if reply == "" {
		return FallbackCoachReply, nil
	}
	return reply, nil
}
