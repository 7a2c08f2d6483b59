package slack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"slackrelay/clients"
)

const defaultHTTPTimeout = 10 * time.Second

// SlackClient implements the clients.SlackClient interface using the slack-go/slack SDK
type SlackClient struct {
	api        *slack.Client
	httpClient *http.Client
}

// NewSlackClient creates a new Slack client with the provided bot token
func NewSlackClient(botToken string) clients.SlackClient {
	return newSlackClient(botToken)
}

// NewSlackClientWithAPIURL creates a Slack client that targets a custom API URL.
// Useful for testing with a fake server.
func NewSlackClientWithAPIURL(botToken, apiURL string) clients.SlackClient {
	return newSlackClient(botToken, slack.OptionAPIURL(apiURL))
}

func newSlackClient(botToken string, options ...slack.Option) *SlackClient {
	httpClient := &http.Client{Timeout: defaultHTTPTimeout}
	options = append(options, slack.OptionHTTPClient(httpClient))
	return &SlackClient{
		api:        slack.New(botToken, options...),
		httpClient: httpClient,
	}
}

// GetChannelName resolves a channel id to its display name via conversations.info
func (c *SlackClient) GetChannelName(ctx context.Context, channelID string) (string, error) {
	channel, err := c.api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{
		ChannelID: channelID,
	})
	if err != nil {
		return "", fmt.Errorf("conversations.info failed for %s: %w", channelID, err)
	}
	if channel.Name == "" {
		return "", fmt.Errorf("conversations.info returned no name for %s", channelID)
	}
	return channel.Name, nil
}

// OpenModal opens a modal view using a single-use trigger id
func (c *SlackClient) OpenModal(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	if _, err := c.api.OpenViewContext(ctx, triggerID, view); err != nil {
		return fmt.Errorf("views.open failed: %w", err)
	}
	return nil
}

// PostMessage sends a plain text message to a channel or user id
func (c *SlackClient) PostMessage(ctx context.Context, channelID, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("chat.postMessage failed for %s: %w", channelID, err)
	}
	return nil
}

// PostResponse delivers a message to a slash command response_url
func (c *SlackClient) PostResponse(ctx context.Context, responseURL string, msg *slack.WebhookMessage) error {
	if err := slack.PostWebhookCustomHTTPContext(ctx, responseURL, c.httpClient, msg); err != nil {
		return fmt.Errorf("response_url post failed: %w", err)
	}
	return nil
}
