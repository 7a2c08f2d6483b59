package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"slackrelay/core"
)

// PendingFormContext travels inside the prompt button value so the form can be
// built without keeping any state between the command and the button click
type PendingFormContext struct {
	Command CommandName `json:"command"`
	Summary string      `json:"summary"`
	UserID  string      `json:"user_id"`
}

// Encode serializes the context into a button value
func (p PendingFormContext) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode pending form context: %w", err)
	}
	return string(data), nil
}

// DecodePendingFormContext parses a round-tripped button value and validates its shape
func DecodePendingFormContext(value string) (PendingFormContext, error) {
	var pending PendingFormContext
	if err := json.Unmarshal([]byte(value), &pending); err != nil {
		return PendingFormContext{}, fmt.Errorf("%w: button value is not valid JSON: %v", core.ErrInvalidPayload, err)
	}

	cmd, err := ParseCommandName(string(pending.Command))
	if err != nil {
		return PendingFormContext{}, fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
	}
	pending.Command = cmd

	if strings.TrimSpace(pending.UserID) == "" {
		return PendingFormContext{}, fmt.Errorf("%w: button value has no user_id", core.ErrInvalidPayload)
	}

	return pending, nil
}

// FormSubmission holds the values read back from a submitted form
type FormSubmission struct {
	ChannelIDs     []string
	Message        string
	MentionUserIDs []string
	UserID         string
}

// ComposedMessage is the final text for a single destination channel
type ComposedMessage struct {
	ChannelID string
	Text      string
}

// FanoutReport summarises one fan-out round. It is only ever logged.
type FanoutReport struct {
	Delivered []string
	Failed    map[string]error
}
