package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("DEFAULT_USER_ID", "U_DEFAULT")
	t.Setenv("TEAM_1_CHANNEL_ID", "C1")
	t.Setenv("TEAM_2_CHANNEL_ID", "C2")
	t.Setenv("TEAM_3_CHANNEL_ID", "C3")
	for _, key := range []string{
		"SLACK_SIGNING_SECRET", "JIRA_DOMAIN", "JIRA_USERNAME", "JIRA_PASSWORD",
		"CHATBOT_URL", "PORT", "USE_STRICT_CONFIG", "FANOUT_RATE_PER_SECOND",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Success_Defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, []string{"C1", "C2", "C3"}, cfg.DestinationChannelIDs)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, "U_DEFAULT", cfg.SlackConfig.DefaultMentionUserID)
		assert.Equal(t, float64(0), cfg.FanoutRatePerSecond)
		assert.False(t, cfg.JiraConfig.IsConfigured())
		assert.False(t, cfg.ChatbotConfig.IsConfigured())
		assert.False(t, cfg.SlackConfig.IsVerificationEnabled())
	})

	t.Run("Success_OptionalIntegrations", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JIRA_DOMAIN", "example.atlassian.net")
		t.Setenv("JIRA_USERNAME", "bot")
		t.Setenv("JIRA_PASSWORD", "secret")
		t.Setenv("CHATBOT_URL", "http://chatbot:8000")
		t.Setenv("FANOUT_RATE_PER_SECOND", "2.5")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.True(t, cfg.JiraConfig.IsConfigured())
		assert.True(t, cfg.ChatbotConfig.IsConfigured())
		assert.Equal(t, 2.5, cfg.FanoutRatePerSecond)
	})

	t.Run("Error_MissingRequired", func(t *testing.T) {
		for _, key := range []string{"SLACK_BOT_TOKEN", "DEFAULT_USER_ID", "TEAM_3_CHANNEL_ID"} {
			setRequiredEnv(t)
			t.Setenv(key, "")

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		}
	})

	t.Run("Error_StrictConfigWithoutJira", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("USE_STRICT_CONFIG", "true")
		t.Setenv("SLACK_SIGNING_SECRET", "signing")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jira")
	})

	t.Run("Error_InvalidFanoutRate", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("FANOUT_RATE_PER_SECOND", "-1")

		_, err := LoadConfig()
		require.Error(t, err)
	})
}
