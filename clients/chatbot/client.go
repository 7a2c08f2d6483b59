package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"slackrelay/clients"
)

// ChatbotClient implements clients.ChatbotClient against the conversations service
type ChatbotClient struct {
	httpClient *http.Client
	baseURL    string
}

// ChatRequest is the body sent to the conversations endpoint
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the body returned by the conversations endpoint
type ChatResponse struct {
	Reply string `json:"reply"`
}

// NewChatbotClient creates a new chatbot client for the service at baseURL
func NewChatbotClient(baseURL string) clients.ChatbotClient {
	return &ChatbotClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Chat sends a single message and returns the service's reply
func (c *ChatbotClient) Chat(ctx context.Context, message string) (string, error) {
	jsonBody, err := json.Marshal(ChatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/conversations/chat/",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("chatbot request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if strings.TrimSpace(chatResp.Reply) == "" {
		return "", fmt.Errorf("chatbot returned an empty reply")
	}

	return chatResp.Reply, nil
}
