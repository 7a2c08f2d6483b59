package relay

import (
	"context"
	"fmt"
	"log"

	"github.com/slack-go/slack"

	"slackrelay/appctx"
	"slackrelay/models"
	"slackrelay/services/templates"
	"slackrelay/utils"
)

// MaxInitialValueLength is the longest prefilled text Slack accepts in a plain text input
const MaxInitialValueLength = 3000

// OpenSubmitForm decodes the button value and opens the submit modal with the trigger id
func (u *RelayUseCase) OpenSubmitForm(ctx context.Context, triggerID, buttonValue string) error {
	pending, err := models.DecodePendingFormContext(buttonValue)
	if err != nil {
		return err
	}

	view := u.BuildSubmitModal(pending)
	if err := u.slackClient.OpenModal(ctx, triggerID, view); err != nil {
		return fmt.Errorf("failed to open submit form for %s: %w", pending.Command, err)
	}

	log.Printf("✅ [%s] Opened %s submit form for user %s", appctx.RequestIDOrUnknown(ctx), pending.Command, pending.UserID)
	return nil
}

// BuildSubmitModal builds the channel / mention / message form for a pending command
func (u *RelayUseCase) BuildSubmitModal(pending models.PendingFormContext) slack.ModalViewRequest {
	entries := u.directory.OptionsFor(pending.Command)
	options := make([]*slack.OptionBlockObject, 0, len(entries))
	for _, entry := range entries {
		options = append(options, slack.NewOptionBlockObject(entry.ID, plainText(entry.Name), nil))
	}

	channelSelect := slack.NewOptionsMultiSelectBlockElement(
		slack.MultiOptTypeStatic,
		plainText("Select channels"),
		ActionChannels,
		options...,
	)
	blocks := []slack.Block{
		slack.NewInputBlock(BlockChannelSelect, plainText("Select channels(s) to send this to:"), nil, channelSelect),
	}

	if pending.Command.IsApproval() {
		mentionSelect := slack.NewOptionsMultiSelectBlockElement(
			slack.MultiOptTypeUser,
			plainText("Choose users"),
			ActionMention,
		)
		mentionSelect.InitialUsers = []string{u.defaultMentionUserID}

		mentionBlock := slack.NewInputBlock(BlockUserSelect, plainText("Select person(s) to @mention for approval"), nil, mentionSelect)
		mentionBlock.Optional = true
		blocks = append(blocks, mentionBlock)
	}

	messageInput := slack.NewPlainTextInputBlockElement(nil, ActionMessage)
	messageInput.Multiline = true
	initialValue, cut := utils.TruncateRunes(templates.Render(pending.Command, pending.Summary), MaxInitialValueLength-len(SummaryTruncationMarker))
	if cut {
		initialValue += SummaryTruncationMarker
	}
	messageInput.InitialValue = initialValue
	blocks = append(blocks, slack.NewInputBlock(BlockMessageInput, plainText("Message to send:"), nil, messageInput))

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: CallbackSubmitSummaryModal,
		Title:      plainText("Send to Channels"),
		Submit:     plainText("Send"),
		Close:      plainText("Cancel"),
		Blocks:     slack.Blocks{BlockSet: blocks},
	}
}

// ParseSubmission reads the form values keyed by the block ids used in BuildSubmitModal
func ParseSubmission(callback *slack.InteractionCallback) models.FormSubmission {
	submission := models.FormSubmission{UserID: callback.User.ID}
	if callback.View.State == nil {
		return submission
	}
	values := callback.View.State.Values

	for _, option := range values[BlockChannelSelect][ActionChannels].SelectedOptions {
		submission.ChannelIDs = append(submission.ChannelIDs, option.Value)
	}

	submission.Message = values[BlockMessageInput][ActionMessage].Value

	if mentionBlock, ok := values[BlockUserSelect]; ok {
		submission.MentionUserIDs = mentionBlock[ActionMention].SelectedUsers
	}

	return submission
}

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, false, false)
}
