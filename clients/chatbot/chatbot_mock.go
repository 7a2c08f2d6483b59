package chatbot

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockChatbotClient is a mock implementation of clients.ChatbotClient
type MockChatbotClient struct {
	mock.Mock
}

func (m *MockChatbotClient) Chat(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}
