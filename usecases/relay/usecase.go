package relay

import (
	"github.com/samber/mo"

	"slackrelay/clients"
	"slackrelay/services"
	"slackrelay/services/channels"
)

const (
	ActionOpenSubmitModal      = "open_submit_modal"
	CallbackSubmitSummaryModal = "submit_summary_modal"

	BlockPromptActions = "prompt_actions"
	BlockChannelSelect = "channel_select"
	ActionChannels     = "channels"
	BlockUserSelect    = "user_select"
	ActionMention      = "mention"
	BlockMessageInput  = "message_input"
	ActionMessage      = "message"
)

// BackgroundRunner runs detached work. Failures inside a task must never reach the caller.
type BackgroundRunner interface {
	Go(taskName string, task func() error)
}

// RelayUseCase drives the command -> form -> fan-out flow. It keeps no state
// between requests apart from the read-only channel directory.
type RelayUseCase struct {
	slackClient          clients.SlackClient
	directory            *channels.Directory
	enricher             services.IssueEnricher
	fanoutSender         services.FanoutSender
	chatbotClient        mo.Option[clients.ChatbotClient]
	runner               BackgroundRunner
	defaultMentionUserID string
}

func NewRelayUseCase(
	slackClient clients.SlackClient,
	directory *channels.Directory,
	enricher services.IssueEnricher,
	fanoutSender services.FanoutSender,
	chatbotClient mo.Option[clients.ChatbotClient],
	runner BackgroundRunner,
	defaultMentionUserID string,
) *RelayUseCase {
	return &RelayUseCase{
		slackClient:          slackClient,
		directory:            directory,
		enricher:             enricher,
		fanoutSender:         fanoutSender,
		chatbotClient:        chatbotClient,
		runner:               runner,
		defaultMentionUserID: defaultMentionUserID,
	}
}
