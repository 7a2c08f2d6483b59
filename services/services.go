package services

import (
	"context"

	"slackrelay/models"
)

// IssueEnricher looks up issue keys found in command text and privately tells the requester about them
type IssueEnricher interface {
	Enrich(ctx context.Context, userID, text string) error
}

// FanoutSender delivers one message to every selected destination channel
type FanoutSender interface {
	Send(ctx context.Context, channelIDs []string, text, userID string) models.FanoutReport
}
