package relay

import (
	"context"
	"sync"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"slackrelay/clients"
	chatbotclient "slackrelay/clients/chatbot"
	slackclient "slackrelay/clients/slack"
	"slackrelay/services"
	"slackrelay/services/channels"
)

const testDefaultMentionUserID = "U_DEFAULT"

// inlineRunner runs background tasks synchronously so tests can assert on their effects
type inlineRunner struct {
	mu    sync.Mutex
	tasks []string
	errs  []error
}

func (r *inlineRunner) Go(taskName string, task func() error) {
	err := task()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, taskName)
	r.errs = append(r.errs, err)
}

type relayFixture struct {
	useCase      *RelayUseCase
	slackClient  *slackclient.MockSlackClient
	enricher     *services.MockIssueEnricher
	fanoutSender *services.MockFanoutSender
	chatbot      *chatbotclient.MockChatbotClient
	runner       *inlineRunner
}

func newTestDirectory(t *testing.T) *channels.Directory {
	t.Helper()
	directorySlack := new(slackclient.MockSlackClient)
	directorySlack.On("GetChannelName", mock.Anything, "C1").Return("netops", nil)
	directorySlack.On("GetChannelName", mock.Anything, "C2").Return("dc-east", nil)
	directorySlack.On("GetChannelName", mock.Anything, "C3").Return("dc-west", nil)

	directory, err := channels.NewDirectory(context.Background(), directorySlack, []string{"C1", "C2", "C3"})
	require.NoError(t, err)
	return directory
}

func setupRelayUseCase(t *testing.T, withChatbot bool) *relayFixture {
	t.Helper()

	fixture := &relayFixture{
		slackClient:  new(slackclient.MockSlackClient),
		enricher:     new(services.MockIssueEnricher),
		fanoutSender: new(services.MockFanoutSender),
		chatbot:      new(chatbotclient.MockChatbotClient),
		runner:       &inlineRunner{},
	}

	chatbot := mo.None[clients.ChatbotClient]()
	if withChatbot {
		chatbot = mo.Some[clients.ChatbotClient](fixture.chatbot)
	}

	fixture.useCase = NewRelayUseCase(
		fixture.slackClient,
		newTestDirectory(t),
		fixture.enricher,
		fixture.fanoutSender,
		chatbot,
		fixture.runner,
		testDefaultMentionUserID,
	)
	return fixture
}
