package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/samber/mo"

	"slackrelay/clients"
	chatbotclient "slackrelay/clients/chatbot"
	jiraclient "slackrelay/clients/jira"
	slackclient "slackrelay/clients/slack"
	"slackrelay/config"
	"slackrelay/core"
	"slackrelay/handlers"
	"slackrelay/middleware"
	"slackrelay/services"
	"slackrelay/services/channels"
	"slackrelay/services/enrichment"
	"slackrelay/services/fanout"
	"slackrelay/usecases/relay"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackConfig.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "slackrelay",
	})

	slackClient := slackclient.NewSlackClient(cfg.SlackConfig.BotToken)

	// Forms cannot be offered without channel names
	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	directory, err := channels.NewDirectory(startupCtx, slackClient, cfg.DestinationChannelIDs)
	cancel()
	if err != nil {
		return err
	}

	var enricher services.IssueEnricher
	jiraClient, err := jiraclient.NewJiraClient(cfg.JiraConfig.Domain, cfg.JiraConfig.Username, cfg.JiraConfig.Password)
	switch {
	case core.IsNotConfiguredError(err):
		enricher = enrichment.NewUnconfiguredEnrichmentService()
	case err != nil:
		return err
	default:
		enricher = enrichment.NewEnrichmentService(jiraClient, slackClient)
	}

	chatbot := mo.None[clients.ChatbotClient]()
	if cfg.ChatbotConfig.IsConfigured() {
		chatbot = mo.Some(chatbotclient.NewChatbotClient(cfg.ChatbotConfig.BaseURL))
	}

	fanoutSender := fanout.NewFanoutSender(slackClient, cfg.FanoutRatePerSecond)

	relayUseCase := relay.NewRelayUseCase(
		slackClient,
		directory,
		enricher,
		fanoutSender,
		chatbot,
		alertMiddleware,
		cfg.SlackConfig.DefaultMentionUserID,
	)
	slackHandler := handlers.NewSlackHandler(cfg.SlackConfig.SigningSecret, relayUseCase)

	router := mux.NewRouter()
	slackHandler.SetupEndpoints(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Slack-Signature", "X-Slack-Request-Timestamp"},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(middleware.RequestIDMiddleware(c.Handler(router))),
		ReadHeaderTimeout: 30 * time.Second,
	}

	log.Printf("🚀 slackrelay starting in %s with %d destination channels", cfg.Environment, len(directory.Entries()))
	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		log.Printf("❌ Server error: %v", err)
		return err
	case <-stop:
		log.Printf("🛑 Shutdown signal received, cleaning up...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
