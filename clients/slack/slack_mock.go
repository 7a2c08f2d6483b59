package slack

import (
	"context"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/mock"
)

// MockSlackClient is a mock implementation of clients.SlackClient
type MockSlackClient struct {
	mock.Mock
}

func (m *MockSlackClient) GetChannelName(ctx context.Context, channelID string) (string, error) {
	args := m.Called(ctx, channelID)
	return args.String(0), args.Error(1)
}

func (m *MockSlackClient) OpenModal(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	args := m.Called(ctx, triggerID, view)
	return args.Error(0)
}

func (m *MockSlackClient) PostMessage(ctx context.Context, channelID, text string) error {
	args := m.Called(ctx, channelID, text)
	return args.Error(0)
}

func (m *MockSlackClient) PostResponse(ctx context.Context, responseURL string, msg *slack.WebhookMessage) error {
	args := m.Called(ctx, responseURL, msg)
	return args.Error(0)
}
