package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slackrelay/models"
)

// MockIssueEnricher is a mock implementation of IssueEnricher
type MockIssueEnricher struct {
	mock.Mock
}

func (m *MockIssueEnricher) Enrich(ctx context.Context, userID, text string) error {
	args := m.Called(ctx, userID, text)
	return args.Error(0)
}

// MockFanoutSender is a mock implementation of FanoutSender
type MockFanoutSender struct {
	mock.Mock
}

func (m *MockFanoutSender) Send(ctx context.Context, channelIDs []string, text, userID string) models.FanoutReport {
	args := m.Called(ctx, channelIDs, text, userID)
	return args.Get(0).(models.FanoutReport)
}
