package channels

import (
	"context"
	"fmt"
	"log"

	"slackrelay/clients"
	"slackrelay/models"
)

// approvalChannelCount is how many leading channels the approval flow may offer
const approvalChannelCount = 2

// Directory holds the display names of the configured destination channels.
// It is populated once at startup and never mutated afterwards.
type Directory struct {
	entries []models.ChannelDirectoryEntry
}

// NewDirectory looks up every configured channel once. Any failed lookup aborts
// startup since the forms cannot offer channels without names.
func NewDirectory(ctx context.Context, slackClient clients.SlackClient, channelIDs []string) (*Directory, error) {
	if len(channelIDs) != models.DestinationChannelCount {
		return nil, fmt.Errorf("expected %d destination channels, got %d", models.DestinationChannelCount, len(channelIDs))
	}

	entries := make([]models.ChannelDirectoryEntry, 0, len(channelIDs))
	for _, channelID := range channelIDs {
		name, err := slackClient.GetChannelName(ctx, channelID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve destination channel %s: %w", channelID, err)
		}
		log.Printf("📋 Resolved destination channel %s -> #%s", channelID, name)
		entries = append(entries, models.ChannelDirectoryEntry{ID: channelID, Name: name})
	}

	return &Directory{entries: entries}, nil
}

// Entries returns every configured channel in configuration order
func (d *Directory) Entries() []models.ChannelDirectoryEntry {
	return append([]models.ChannelDirectoryEntry(nil), d.entries...)
}

// OptionsFor returns the channels a form for cmd may offer. Approval requests never
// go to the third channel.
func (d *Directory) OptionsFor(cmd models.CommandName) []models.ChannelDirectoryEntry {
	if cmd.IsApproval() {
		return append([]models.ChannelDirectoryEntry(nil), d.entries[:approvalChannelCount]...)
	}
	return d.Entries()
}

// Name returns the display name for a configured channel id
func (d *Directory) Name(channelID string) (string, bool) {
	for _, entry := range d.entries {
		if entry.ID == channelID {
			return entry.Name, true
		}
	}
	return "", false
}
