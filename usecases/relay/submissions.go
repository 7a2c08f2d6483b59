package relay

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"slackrelay/appctx"
	"slackrelay/models"
	"slackrelay/services/templates"
)

var mentionPlaceholderRegex = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(templates.MentionPlaceholder))

// SubmitForm composes the final text and starts the fan-out in the background so
// the form can be cleared right away. Delivery failures are logged per channel
// and never surface to the submitter.
func (u *RelayUseCase) SubmitForm(ctx context.Context, submission models.FormSubmission) {
	requestID := appctx.RequestIDOrUnknown(ctx)
	finalText := ApplyMentions(submission.Message, submission.MentionUserIDs)

	channelIDs := make([]string, 0, len(submission.ChannelIDs))
	for _, channelID := range submission.ChannelIDs {
		if _, ok := u.directory.Name(channelID); !ok {
			log.Printf("⚠️ [%s] Dropping unconfigured channel %s from submission", requestID, channelID)
			continue
		}
		channelIDs = append(channelIDs, channelID)
	}

	if len(channelIDs) == 0 {
		log.Printf("⚠️ [%s] Form submitted by %s with no channels selected - nothing to send", requestID, submission.UserID)
		return
	}

	// Posts must outlive the interaction request
	backgroundCtx := context.WithoutCancel(ctx)

	log.Printf("📣 [%s] Fanning out message from %s to %d channel(s): %v", requestID, submission.UserID, len(channelIDs), channelIDs)
	u.runner.Go("Fanout", func() error {
		report := u.fanoutSender.Send(backgroundCtx, channelIDs, finalText, submission.UserID)
		log.Printf("📣 [%s] Fan-out finished: %d delivered, %d failed", requestID, len(report.Delivered), len(report.Failed))
		return nil
	})
}

// ApplyMentions replaces every placeholder with the mention string, or prepends
// the mention string when the body has no placeholder
func ApplyMentions(body string, userIDs []string) string {
	if len(userIDs) == 0 {
		return body
	}

	mentions := make([]string, 0, len(userIDs))
	for _, userID := range userIDs {
		mentions = append(mentions, fmt.Sprintf("<@%s>", userID))
	}
	mentionString := strings.Join(mentions, " ")

	if mentionPlaceholderRegex.MatchString(body) {
		return mentionPlaceholderRegex.ReplaceAllLiteralString(body, mentionString)
	}
	return mentionString + "\n\n" + body
}
