package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/samber/mo"
	"github.com/slack-go/slack"

	"slackrelay/appctx"
	"slackrelay/core"
	"slackrelay/models"
	"slackrelay/usecases/relay"
)

type SlackHandler struct {
	signingSecret string
	relayUseCase  *relay.RelayUseCase
}

func NewSlackHandler(signingSecret string, relayUseCase *relay.RelayUseCase) *SlackHandler {
	return &SlackHandler{
		signingSecret: signingSecret,
		relayUseCase:  relayUseCase,
	}
}

// readVerifiedBody reads the body, checks the Slack signature when a signing secret
// is configured and puts the body back so it can be parsed again
func (h *SlackHandler) readVerifiedBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	if h.signingSecret == "" {
		return body, nil
	}

	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid secret verifier: %w", err)
	}
	if _, err := verifier.Write(body); err != nil {
		return nil, fmt.Errorf("failed to hash request body: %w", err)
	}
	if err := verifier.Ensure(); err != nil {
		return nil, fmt.Errorf("signature verification failed: %w", err)
	}

	return body, nil
}

func (h *SlackHandler) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := appctx.RequestIDOrUnknown(ctx)
	log.Printf("⚡ [%s] Slack command received from %s", requestID, r.RemoteAddr)

	if _, err := h.readVerifiedBody(r); err != nil {
		log.Printf("❌ [%s] Rejected Slack command: %v", requestID, err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	command, err := slack.SlashCommandParse(r)
	if err != nil {
		log.Printf("❌ [%s] Failed to parse slash command: %v", requestID, err)
		http.Error(w, "failed to parse slash command", http.StatusBadRequest)
		return
	}

	prompt, err := h.relayUseCase.HandleCommand(ctx, models.CommandInvocation{
		Command:     command.Command,
		Text:        command.Text,
		UserID:      command.UserID,
		ChannelID:   command.ChannelID,
		TriggerID:   command.TriggerID,
		ResponseURL: mo.EmptyableToOption(command.ResponseURL),
	})
	if err != nil {
		if core.IsUnsupportedCommandError(err) {
			http.Error(w, "Unsupported command.", http.StatusBadRequest)
			return
		}
		log.Printf("❌ [%s] Failed to handle %s: %v", requestID, command.Command, err)
		http.Error(w, "failed to handle command", http.StatusInternalServerError)
		return
	}

	if msg, ok := prompt.Get(); ok {
		h.writeJSONResponse(w, http.StatusOK, msg)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *SlackHandler) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := appctx.RequestIDOrUnknown(ctx)
	log.Printf("⚡ [%s] Slack interaction received from %s", requestID, r.RemoteAddr)

	body, err := h.readVerifiedBody(r)
	if err != nil {
		log.Printf("❌ [%s] Rejected Slack interaction: %v", requestID, err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	callback, err := parseInteractionPayload(r, body)
	if err != nil {
		log.Printf("❌ [%s] Invalid interaction payload: %v", requestID, err)
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	switch callback.Type {
	case slack.InteractionTypeBlockActions:
		if len(callback.ActionCallback.BlockActions) == 0 ||
			callback.ActionCallback.BlockActions[0].ActionID != relay.ActionOpenSubmitModal {
			break
		}

		action := callback.ActionCallback.BlockActions[0]
		log.Printf("📋 [%s] Opening submit form for user %s", requestID, callback.User.ID)
		if err := h.relayUseCase.OpenSubmitForm(ctx, callback.TriggerID, action.Value); err != nil {
			if core.IsInvalidPayloadError(err) {
				log.Printf("❌ [%s] Invalid button value: %v", requestID, err)
				http.Error(w, "invalid payload", http.StatusBadRequest)
				return
			}
			log.Printf("❌ [%s] Failed to open submit form: %v", requestID, err)
			http.Error(w, "failed to open form", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		return

	case slack.InteractionTypeViewSubmission:
		if callback.View.CallbackID != relay.CallbackSubmitSummaryModal {
			break
		}

		submission := relay.ParseSubmission(callback)
		h.relayUseCase.SubmitForm(ctx, submission)
		h.writeJSONResponse(w, http.StatusOK, slack.NewClearViewSubmissionResponse())
		return
	}

	log.Printf("📋 [%s] Ignoring interaction of type %s", requestID, callback.Type)
	w.WriteHeader(http.StatusOK)
}

// parseInteractionPayload accepts the form-encoded payload field Slack sends, or a JSON
// body whose payload is either an encoded string or an inline object
func parseInteractionPayload(r *http.Request, body []byte) (*slack.InteractionCallback, error) {
	var raw []byte

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var envelope struct {
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode JSON body: %w", err)
		}

		var encoded string
		if err := json.Unmarshal(envelope.Payload, &encoded); err == nil {
			raw = []byte(encoded)
		} else {
			raw = envelope.Payload
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("failed to parse form: %w", err)
		}
		raw = []byte(r.PostFormValue("payload"))
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: missing payload", core.ErrInvalidPayload)
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal(raw, &callback); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
	}
	return &callback, nil
}

func (h *SlackHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
	}
}

func (h *SlackHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering Slack endpoints")

	router.HandleFunc("/slack/commands", h.HandleSlashCommand).Methods("POST")
	log.Printf("✅ POST /slack/commands endpoint registered")

	router.HandleFunc("/slack/interactions", h.HandleInteraction).Methods("POST")
	log.Printf("✅ POST /slack/interactions endpoint registered")
}
