package middleware

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/slack-go/slack"
)

type SlackAlertConfig struct {
	WebhookURL  string
	Environment string
	AppName     string
}

type ErrorAlertMiddleware struct {
	config        SlackAlertConfig
	alertedErrors map[string]time.Time // hash -> last alert time
	mutex         sync.Mutex
	alertCooldown time.Duration
	alertTimeout  time.Duration
}

func NewErrorAlertMiddleware(config SlackAlertConfig) *ErrorAlertMiddleware {
	return &ErrorAlertMiddleware{
		config:        config,
		alertedErrors: make(map[string]time.Time),
		alertCooldown: 10 * time.Minute, // Don't alert same error more than once per 10min
		alertTimeout:  10 * time.Second,
	}
}

// HTTPMiddleware recovers panics in HTTP handlers and turns them into a 500
func (m *ErrorAlertMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := newStatusRecorder(w)
		defer func() {
			if rec := recover(); rec != nil {
				m.reportPanic(fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path), rec)
				if recorder.wroteHeader {
					return
				}
				http.Error(recorder, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(recorder, r)
	})
}

// WrapBackgroundTask makes a detached task safe to run: errors are logged and
// alerted, panics are recovered
func (m *ErrorAlertMiddleware) WrapBackgroundTask(taskName string, task func() error) func() error {
	return func() (err error) {
		taskContext := fmt.Sprintf("Background task: %s", taskName)
		defer func() {
			if rec := recover(); rec != nil {
				m.reportPanic(taskContext, rec)
				err = fmt.Errorf("%s panicked: %v", taskName, rec)
			}
		}()

		if err := task(); err != nil {
			log.Printf("❌ %s failed: %v", taskContext, err)
			m.alertOnError(err, taskContext)
			return err
		}
		return nil
	}
}

// Go runs a wrapped task on its own goroutine. Nothing is reported back to the caller.
func (m *ErrorAlertMiddleware) Go(taskName string, task func() error) {
	wrapped := m.WrapBackgroundTask(taskName, task)
	go func() {
		_ = wrapped()
	}()
}

// Core error alerting logic
func (m *ErrorAlertMiddleware) alertOnError(err error, alertContext string) {
	errorMsg := fmt.Sprintf("%s: %v", alertContext, err)

	// Create hash of error for deduplication
	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if lastAlert, exists := m.alertedErrors[hash]; exists {
		if time.Since(lastAlert) < m.alertCooldown {
			return // Skip alert - too recent
		}
	}

	go m.sendSlackAlert(errorMsg, alertContext)
	m.alertedErrors[hash] = time.Now()
}

func (m *ErrorAlertMiddleware) reportPanic(alertContext string, rec any) {
	errorMsg := fmt.Sprintf("%s: PANIC - %v", alertContext, rec)
	log.Printf("❌ %s", errorMsg)
	go m.sendSlackAlert(errorMsg, alertContext+" (PANIC)")
}

func (m *ErrorAlertMiddleware) sendSlackAlert(errorMsg, alertContext string) {
	if m.config.WebhookURL == "" {
		return // Slack alerts disabled
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.alertTimeout)
	defer cancel()

	if err := slack.PostWebhookContext(ctx, m.config.WebhookURL, m.buildAlert(errorMsg, alertContext)); err != nil {
		log.Printf("❌ Failed to send Slack alert: %v", err)
	}
}

func (m *ErrorAlertMiddleware) buildAlert(errorMsg, alertContext string) *slack.WebhookMessage {
	envPrefix := ""
	if m.config.Environment == "dev" {
		envPrefix = "[dev] "
	}

	header := slack.NewHeaderBlock(slack.NewTextBlockObject(
		slack.PlainTextType,
		fmt.Sprintf("🚨 %s[%s] Error Alert", envPrefix, m.config.AppName),
		true,
		false,
	))
	fields := slack.NewSectionBlock(nil, []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Service:* %s", m.config.AppName), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Environment:* %s", m.config.Environment), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Context:* %s", alertContext), false, false),
	}, nil)
	details := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Error:*\n```%s```", errorMsg), false, false),
		nil,
		nil,
	)

	return &slack.WebhookMessage{
		Text:   errorMsg,
		Blocks: &slack.Blocks{BlockSet: []slack.Block{header, fields, details}},
	}
}
