package clients

import (
	"context"

	"github.com/samber/mo"
	"github.com/slack-go/slack"
)

// SlackClient is the subset of the Slack Web API the relay talks to
type SlackClient interface {
	GetChannelName(ctx context.Context, channelID string) (string, error)
	OpenModal(ctx context.Context, triggerID string, view slack.ModalViewRequest) error
	PostMessage(ctx context.Context, channelID, text string) error
	PostResponse(ctx context.Context, responseURL string, msg *slack.WebhookMessage) error
}

// JiraIssue holds the issue fields used for enrichment
type JiraIssue struct {
	Key         string
	Summary     string
	Description mo.Option[string]
}

// JiraClient fetches issues from the tracker
type JiraClient interface {
	GetIssue(ctx context.Context, issueKey string) (*JiraIssue, error)
}

// ChatbotClient talks to the completion service used by /summarize
type ChatbotClient interface {
	Chat(ctx context.Context, message string) (string, error)
}
