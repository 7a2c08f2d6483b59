package enrichment

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"github.com/samber/mo"

	"slackrelay/clients"
	"slackrelay/utils"
)

const (
	// MaxDescriptionLength is the number of description runes kept in the private message
	MaxDescriptionLength = 100
	TruncationMarker     = "..."
	NoDescriptionMarker  = "_No description provided._"
)

var issueKeyRegex = regexp.MustCompile(`[A-Z]+-\d+`)

// EnrichmentService fetches the first issue mentioned in command text and sends
// the requester a private summary of it
type EnrichmentService struct {
	jiraClient  clients.JiraClient
	slackClient clients.SlackClient
}

// NewEnrichmentService creates a new enrichment service
func NewEnrichmentService(jiraClient clients.JiraClient, slackClient clients.SlackClient) *EnrichmentService {
	return &EnrichmentService{
		jiraClient:  jiraClient,
		slackClient: slackClient,
	}
}

// Enrich is a no-op when text holds no issue key. A returned error means nothing
// was sent; callers only log it.
func (s *EnrichmentService) Enrich(ctx context.Context, userID, text string) error {
	maybeKey := ExtractIssueKey(text)
	if !maybeKey.IsPresent() {
		return nil
	}
	issueKey := maybeKey.MustGet()

	log.Printf("🔎 Fetching Jira issue %s for user %s", issueKey, userID)
	issue, err := s.jiraClient.GetIssue(ctx, issueKey)
	if err != nil {
		return fmt.Errorf("failed to fetch issue %s: %w", issueKey, err)
	}

	if err := s.slackClient.PostMessage(ctx, userID, FormatIssueMessage(issue)); err != nil {
		return fmt.Errorf("failed to deliver issue %s to user %s: %w", issueKey, userID, err)
	}

	log.Printf("✅ Sent Jira issue %s privately to user %s", issueKey, userID)
	return nil
}

// ExtractIssueKey returns the first issue-key-shaped substring of text
func ExtractIssueKey(text string) mo.Option[string] {
	key := issueKeyRegex.FindString(text)
	if key == "" {
		return mo.None[string]()
	}
	return mo.Some(key)
}

// FormatDescription truncates a description to MaxDescriptionLength runes
func FormatDescription(description mo.Option[string]) string {
	if !description.IsPresent() {
		return NoDescriptionMarker
	}

	truncated, wasTruncated := utils.TruncateRunes(description.MustGet(), MaxDescriptionLength)
	if wasTruncated {
		return truncated + TruncationMarker
	}
	return truncated
}

// FormatIssueMessage renders the private message sent to the requester
func FormatIssueMessage(issue *clients.JiraIssue) string {
	header := fmt.Sprintf("🔎 *%s*", issue.Key)
	if issue.Summary != "" {
		header = fmt.Sprintf("%s: %s", header, issue.Summary)
	}
	return fmt.Sprintf("%s\n>%s", header, FormatDescription(issue.Description))
}
