package fanout

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"slackrelay/clients"
	"slackrelay/models"
)

const defaultPostTimeout = 10 * time.Second

// FanoutSender posts a composed message to every selected channel. Channels are
// independent: one failing post never affects the others and nothing is retried.
type FanoutSender struct {
	slackClient clients.SlackClient
	limiter     *rate.Limiter
	postTimeout time.Duration
}

// NewFanoutSender creates a sender. ratePerSecond <= 0 disables pacing.
func NewFanoutSender(slackClient clients.SlackClient, ratePerSecond float64) *FanoutSender {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if ratePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSecond), 1)
	}
	return &FanoutSender{
		slackClient: slackClient,
		limiter:     limiter,
		postTimeout: defaultPostTimeout,
	}
}

// ComposeMessages attributes text to the submitter and addresses one copy per channel
func ComposeMessages(channelIDs []string, text, userID string) []models.ComposedMessage {
	finalText := fmt.Sprintf("📣 Message from <@%s>:\n%s", userID, text)
	messages := make([]models.ComposedMessage, 0, len(channelIDs))
	for _, channelID := range channelIDs {
		messages = append(messages, models.ComposedMessage{ChannelID: channelID, Text: finalText})
	}
	return messages
}

// Send posts to all channels concurrently and waits for every post to finish.
// The report is for logging only.
func (s *FanoutSender) Send(ctx context.Context, channelIDs []string, text, userID string) models.FanoutReport {
	messages := ComposeMessages(channelIDs, text, userID)
	results := make([]error, len(messages))

	var wg sync.WaitGroup
	for i, msg := range messages {
		wg.Add(1)
		go func(i int, msg models.ComposedMessage) {
			defer wg.Done()
			results[i] = s.post(ctx, msg)
		}(i, msg)
	}
	wg.Wait()

	report := models.FanoutReport{Failed: make(map[string]error)}
	for i, msg := range messages {
		if results[i] != nil {
			log.Printf("❌ Failed to send message to channel %s: %v", msg.ChannelID, results[i])
			report.Failed[msg.ChannelID] = results[i]
			continue
		}
		log.Printf("📣 Message sent to channel %s", msg.ChannelID)
		report.Delivered = append(report.Delivered, msg.ChannelID)
	}

	return report
}

func (s *FanoutSender) post(ctx context.Context, msg models.ComposedMessage) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	postCtx, cancel := context.WithTimeout(ctx, s.postTimeout)
	defer cancel()

	return s.slackClient.PostMessage(postCtx, msg.ChannelID, msg.Text)
}
