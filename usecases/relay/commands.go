package relay

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/samber/mo"
	"github.com/slack-go/slack"

	"slackrelay/appctx"
	"slackrelay/core"
	"slackrelay/models"
	"slackrelay/services/enrichment"
	"slackrelay/utils"
)

const (
	promptText = "✅ Your request has been processed and posted."

	// MaxButtonValueLength is the largest button value Slack accepts
	MaxButtonValueLength = 2000
	// SummaryTruncationMarker ends a summary cut to fit into the button value
	SummaryTruncationMarker = "..."
)

// HandleCommand validates a slash command and returns the prompt to embed in the
// acknowledgment. It returns None when the prompt will instead be posted to the
// response_url after the acknowledgment. Enrichment never delays the return.
func (u *RelayUseCase) HandleCommand(
	ctx context.Context,
	invocation models.CommandInvocation,
) (mo.Option[*slack.WebhookMessage], error) {
	requestID := appctx.RequestIDOrUnknown(ctx)

	cmd, err := models.ParseCommandName(invocation.Command)
	if err != nil {
		log.Printf("⚠️ [%s] Rejected slash command %q from user %s", requestID, invocation.Command, invocation.UserID)
		return mo.None[*slack.WebhookMessage](), err
	}

	log.Printf("⚡ [%s] Handling %s from user %s in channel %s", requestID, cmd, invocation.UserID, invocation.ChannelID)

	// Follow-up work outlives the request
	backgroundCtx := context.WithoutCancel(ctx)

	if issueKey := enrichment.ExtractIssueKey(invocation.Text); issueKey.IsPresent() {
		log.Printf("🔎 [%s] Issue key %s detected, starting enrichment", requestID, issueKey.MustGet())
		u.runner.Go("IssueEnrichment", func() error {
			return u.enricher.Enrich(backgroundCtx, invocation.UserID, invocation.Text)
		})
	}

	pending := models.PendingFormContext{
		Command: cmd,
		Summary: invocation.Text,
		UserID:  invocation.UserID,
	}

	if cmd == models.CommandSummarize {
		if responseURL, ok := invocation.ResponseURL.Get(); ok {
			log.Printf("⏳ [%s] Deferring %s prompt to response_url", requestID, cmd)
			u.runner.Go("DeferredPrompt", func() error {
				return u.postDeferredPrompt(backgroundCtx, responseURL, pending)
			})
			return mo.None[*slack.WebhookMessage](), nil
		}
	}

	prompt, err := BuildPrompt(pending)
	if err != nil {
		return mo.None[*slack.WebhookMessage](), err
	}
	return mo.Some(prompt), nil
}

func (u *RelayUseCase) postDeferredPrompt(ctx context.Context, responseURL string, pending models.PendingFormContext) error {
	pending.Summary = u.summarize(ctx, pending.Summary)

	prompt, err := BuildPrompt(pending)
	if err != nil {
		return err
	}

	if err := u.slackClient.PostResponse(ctx, responseURL, prompt); err != nil {
		return fmt.Errorf("failed to post deferred prompt: %w", err)
	}

	log.Printf("✅ [%s] Deferred prompt posted for user %s", appctx.RequestIDOrUnknown(ctx), pending.UserID)
	return nil
}

// summarize asks the chatbot for a summary and falls back to the raw text on any failure
func (u *RelayUseCase) summarize(ctx context.Context, text string) string {
	chatbotClient, ok := u.chatbotClient.Get()
	if !ok || strings.TrimSpace(text) == "" {
		return text
	}

	reply, err := chatbotClient.Chat(ctx, text)
	if err != nil {
		log.Printf("⚠️ [%s] Chatbot summary failed, using raw text: %v", appctx.RequestIDOrUnknown(ctx), err)
		return text
	}
	return utils.ConvertMarkdownToSlack(reply)
}

// BuildPrompt renders the ephemeral prompt whose button carries the pending form context
func BuildPrompt(pending models.PendingFormContext) (*slack.WebhookMessage, error) {
	value, err := encodeButtonValue(pending)
	if err != nil {
		return nil, err
	}

	section := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.PlainTextType, promptText, false, false),
		nil,
		nil,
	)
	button := slack.NewButtonBlockElement(
		ActionOpenSubmitModal,
		value,
		slack.NewTextBlockObject(slack.PlainTextType, "📤 Open Submit Form", true, false),
	)

	return &slack.WebhookMessage{
		Text:         promptText,
		ResponseType: slack.ResponseTypeEphemeral,
		Blocks: &slack.Blocks{BlockSet: []slack.Block{
			section,
			slack.NewActionBlock(BlockPromptActions, button),
		}},
	}, nil
}

// encodeButtonValue encodes the pending context, cutting the summary until the
// encoded value fits into a button
func encodeButtonValue(pending models.PendingFormContext) (string, error) {
	value, err := pending.Encode()
	if err != nil {
		return "", err
	}

	summary := pending.Summary
	for len(value) > MaxButtonValueLength {
		runeCount := utf8.RuneCountInString(summary)
		if runeCount == 0 {
			return "", fmt.Errorf("%w: button value exceeds %d bytes", core.ErrInvalidPayload, MaxButtonValueLength)
		}

		// Proportional cut, escaped runes take more than one byte
		keep := min(runeCount-1, runeCount*(MaxButtonValueLength-len(SummaryTruncationMarker))/len(value))
		summary, _ = utils.TruncateRunes(summary, keep)
		pending.Summary = summary + SummaryTruncationMarker

		if value, err = pending.Encode(); err != nil {
			return "", err
		}
	}

	if summary != pending.Summary {
		log.Printf("⚠️ Summary for %s from %s cut to %d runes to fit the prompt button", pending.Command, pending.UserID, utf8.RuneCountInString(summary))
	}
	return value, nil
}
