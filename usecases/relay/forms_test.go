package relay

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"slackrelay/core"
	"slackrelay/models"
)

func inputBlock(t *testing.T, view slack.ModalViewRequest, blockID string) *slack.InputBlock {
	t.Helper()
	for _, block := range view.Blocks.BlockSet {
		if input, ok := block.(*slack.InputBlock); ok && input.BlockID == blockID {
			return input
		}
	}
	return nil
}

func channelOptionValues(t *testing.T, view slack.ModalViewRequest) []string {
	t.Helper()
	block := inputBlock(t, view, BlockChannelSelect)
	require.NotNil(t, block)

	selectElement, ok := block.Element.(*slack.MultiSelectBlockElement)
	require.True(t, ok)
	assert.Equal(t, ActionChannels, selectElement.ActionID)

	values := make([]string, 0, len(selectElement.Options))
	for _, option := range selectElement.Options {
		values = append(values, option.Value)
	}
	return values
}

func TestBuildSubmitModal(t *testing.T) {
	t.Run("Success_InformOffersAllChannels", func(t *testing.T) {
		f := setupRelayUseCase(t, false)

		view := f.useCase.BuildSubmitModal(models.PendingFormContext{Command: models.CommandInform, Summary: "rack swap", UserID: "U1"})

		assert.Equal(t, CallbackSubmitSummaryModal, view.CallbackID)
		assert.Equal(t, []string{"C1", "C2", "C3"}, channelOptionValues(t, view))
		assert.Nil(t, inputBlock(t, view, BlockUserSelect))

		message := inputBlock(t, view, BlockMessageInput)
		require.NotNil(t, message)
		input, ok := message.Element.(*slack.PlainTextInputBlockElement)
		require.True(t, ok)
		assert.True(t, input.Multiline)
		assert.Equal(t, ActionMessage, input.ActionID)
		assert.Contains(t, input.InitialValue, "we are starting the following change")
		assert.Contains(t, input.InitialValue, "\n\nrack swap")
	})

	t.Run("Success_ApprovalOffersFirstTwoChannelsAndMentionSelector", func(t *testing.T) {
		f := setupRelayUseCase(t, false)

		view := f.useCase.BuildSubmitModal(models.PendingFormContext{Command: models.CommandApproval, Summary: "firewall rule", UserID: "U1"})

		assert.Equal(t, []string{"C1", "C2"}, channelOptionValues(t, view))

		mention := inputBlock(t, view, BlockUserSelect)
		require.NotNil(t, mention)
		assert.True(t, mention.Optional)
		mentionSelect, ok := mention.Element.(*slack.MultiSelectBlockElement)
		require.True(t, ok)
		assert.Equal(t, ActionMention, mentionSelect.ActionID)
		assert.Equal(t, slack.MultiOptTypeUser, mentionSelect.Type)
		assert.Equal(t, []string{testDefaultMentionUserID}, mentionSelect.InitialUsers)
	})

	t.Run("Success_SummarizeUsesSummaryTemplate", func(t *testing.T) {
		f := setupRelayUseCase(t, false)

		view := f.useCase.BuildSubmitModal(models.PendingFormContext{Command: models.CommandSummarize, Summary: "all green", UserID: "U1"})

		assert.Equal(t, []string{"C1", "C2", "C3"}, channelOptionValues(t, view))
		input := inputBlock(t, view, BlockMessageInput).Element.(*slack.PlainTextInputBlockElement)
		assert.Equal(t, "Hi team, here is a summary for your awareness:\n\nall green", input.InitialValue)
	})
}

func TestOpenSubmitForm(t *testing.T) {
	t.Run("Success_OpensModalWithTriggerID", func(t *testing.T) {
		f := setupRelayUseCase(t, false)
		f.slackClient.On("OpenModal", mock.Anything, "trigger-1", mock.MatchedBy(func(view slack.ModalViewRequest) bool {
			return view.CallbackID == CallbackSubmitSummaryModal
		})).Return(nil).Once()

		err := f.useCase.OpenSubmitForm(context.Background(), "trigger-1", `{"command":"/inform","summary":"x","user_id":"U1"}`)

		require.NoError(t, err)
		f.slackClient.AssertExpectations(t)
	})

	t.Run("Error_InvalidButtonValue", func(t *testing.T) {
		f := setupRelayUseCase(t, false)

		err := f.useCase.OpenSubmitForm(context.Background(), "trigger-1", `{"command":"/deploy","user_id":"U1"}`)

		require.Error(t, err)
		assert.True(t, core.IsInvalidPayloadError(err))
		f.slackClient.AssertNotCalled(t, "OpenModal", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_ModalOpenFails", func(t *testing.T) {
		f := setupRelayUseCase(t, false)
		f.slackClient.On("OpenModal", mock.Anything, "expired", mock.Anything).Return(errors.New("expired_trigger_id"))

		err := f.useCase.OpenSubmitForm(context.Background(), "expired", `{"command":"/approval","summary":"x","user_id":"U1"}`)

		require.Error(t, err)
		assert.False(t, core.IsInvalidPayloadError(err))
		assert.Contains(t, err.Error(), "expired_trigger_id")
	})
}

func TestParseSubmission(t *testing.T) {
	t.Run("Success_AllBlocks", func(t *testing.T) {
		callback := &slack.InteractionCallback{
			User: slack.User{ID: "U1"},
			View: slack.View{State: &slack.ViewState{Values: map[string]map[string]slack.BlockAction{
				BlockChannelSelect: {ActionChannels: {SelectedOptions: []slack.OptionBlockObject{{Value: "C1"}, {Value: "C3"}}}},
				BlockUserSelect:    {ActionMention: {SelectedUsers: []string{"U2", "U3"}}},
				BlockMessageInput:  {ActionMessage: {Value: "hello @person"}},
			}}},
		}

		submission := ParseSubmission(callback)

		assert.Equal(t, models.FormSubmission{
			ChannelIDs:     []string{"C1", "C3"},
			Message:        "hello @person",
			MentionUserIDs: []string{"U2", "U3"},
			UserID:         "U1",
		}, submission)
	})

	t.Run("Success_MissingMentionBlockAndNoChannels", func(t *testing.T) {
		callback := &slack.InteractionCallback{
			User: slack.User{ID: "U1"},
			View: slack.View{State: &slack.ViewState{Values: map[string]map[string]slack.BlockAction{
				BlockMessageInput: {ActionMessage: {Value: "body"}},
			}}},
		}

		submission := ParseSubmission(callback)

		assert.Empty(t, submission.ChannelIDs)
		assert.Empty(t, submission.MentionUserIDs)
		assert.Equal(t, "body", submission.Message)
	})

	t.Run("Success_NoState", func(t *testing.T) {
		submission := ParseSubmission(&slack.InteractionCallback{User: slack.User{ID: "U1"}})

		assert.Equal(t, models.FormSubmission{UserID: "U1"}, submission)
	})
}

func TestBuildSubmitModalInitialValueLimit(t *testing.T) {
	f := setupRelayUseCase(t, false)

	view := f.useCase.BuildSubmitModal(models.PendingFormContext{
		Command: models.CommandInform,
		Summary: strings.Repeat("x", 4000),
		UserID:  "U1",
	})

	input := inputBlock(t, view, BlockMessageInput).Element.(*slack.PlainTextInputBlockElement)
	assert.Equal(t, MaxInitialValueLength, utf8.RuneCountInString(input.InitialValue))
	assert.True(t, strings.HasSuffix(input.InitialValue, SummaryTruncationMarker))
}
