package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type SlackConfig struct {
	BotToken             string
	SigningSecret        string
	DefaultMentionUserID string
	AlertWebhookURL      string
}

// IsVerificationEnabled returns true if incoming webhooks should be signature-checked
func (c SlackConfig) IsVerificationEnabled() bool {
	return c.SigningSecret != ""
}

type JiraConfig struct {
	Domain   string
	Username string
	Password string
}

// IsConfigured returns true if all required Jira configuration is present
func (c JiraConfig) IsConfigured() bool {
	return c.Domain != "" &&
		c.Username != "" &&
		c.Password != ""
}

type ChatbotConfig struct {
	BaseURL string
}

// IsConfigured returns true if the chatbot service URL is present
func (c ChatbotConfig) IsConfigured() bool {
	return c.BaseURL != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DestinationChannelIDs []string
	Port                  string // Optional with default "3000"
	CORSAllowedOrigins    string // Optional with default "*"
	Environment           string
	FanoutRatePerSecond   float64 // 0 disables pacing
	UseStrictConfig       bool    // If true, error when any optional integration is not fully configured

	SlackConfig   SlackConfig
	JiraConfig    JiraConfig
	ChatbotConfig ChatbotConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	botToken, err := getEnvRequired("SLACK_BOT_TOKEN")
	if err != nil {
		return nil, err
	}

	defaultUserID, err := getEnvRequired("DEFAULT_USER_ID")
	if err != nil {
		return nil, err
	}

	channelIDs := make([]string, 0, 3)
	for _, key := range []string{"TEAM_1_CHANNEL_ID", "TEAM_2_CHANNEL_ID", "TEAM_3_CHANNEL_ID"} {
		channelID, err := getEnvRequired(key)
		if err != nil {
			return nil, err
		}
		channelIDs = append(channelIDs, channelID)
	}

	fanoutRate, err := strconv.ParseFloat(getEnvWithDefault("FANOUT_RATE_PER_SECOND", "0"), 64)
	if err != nil || fanoutRate < 0 {
		return nil, fmt.Errorf("FANOUT_RATE_PER_SECOND must be a non-negative number")
	}

	config := &AppConfig{
		DestinationChannelIDs: channelIDs,
		Port:                  getEnvWithDefault("PORT", "3000"),
		CORSAllowedOrigins:    getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:           getEnvWithDefault("ENVIRONMENT", "dev"),
		FanoutRatePerSecond:   fanoutRate,
		UseStrictConfig:       getEnvWithDefault("USE_STRICT_CONFIG", "false") == "true",

		SlackConfig: SlackConfig{
			BotToken:             botToken,
			SigningSecret:        os.Getenv("SLACK_SIGNING_SECRET"),
			DefaultMentionUserID: defaultUserID,
			AlertWebhookURL:      os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		},

		// Jira configuration (optional)
		JiraConfig: JiraConfig{
			Domain:   os.Getenv("JIRA_DOMAIN"),
			Username: os.Getenv("JIRA_USERNAME"),
			Password: os.Getenv("JIRA_PASSWORD"),
		},

		// Chatbot configuration (optional)
		ChatbotConfig: ChatbotConfig{
			BaseURL: os.Getenv("CHATBOT_URL"),
		},
	}

	if config.SlackConfig.IsVerificationEnabled() {
		log.Printf("✅ Slack request signature verification enabled")
	} else {
		log.Printf("⚠️ SLACK_SIGNING_SECRET not set - Slack requests will not be verified")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("SLACK_SIGNING_SECRET is not set (USE_STRICT_CONFIG=true)")
		}
	}

	if config.JiraConfig.IsConfigured() {
		log.Printf("✅ Jira integration configured")
	} else {
		log.Printf("⚠️ Jira integration not configured - issue enrichment will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("jira integration is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.ChatbotConfig.IsConfigured() {
		log.Printf("✅ Chatbot service configured")
	} else {
		log.Printf("⚠️ Chatbot service not configured - /summarize will use the raw text")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("chatbot service is not configured (USE_STRICT_CONFIG=true)")
		}
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
