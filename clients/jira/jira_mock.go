package jira

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slackrelay/clients"
)

// MockJiraClient is a mock implementation of clients.JiraClient
type MockJiraClient struct {
	mock.Mock
}

func (m *MockJiraClient) GetIssue(ctx context.Context, issueKey string) (*clients.JiraIssue, error) {
	args := m.Called(ctx, issueKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.JiraIssue), args.Error(1)
}
