package models

import (
	"fmt"

	"github.com/samber/mo"

	"slackrelay/core"
)

// CommandName is the closed set of slash commands the relay accepts
type CommandName string

const (
	CommandInform    CommandName = "/inform"
	CommandApproval  CommandName = "/approval"
	CommandSummarize CommandName = "/summarize"
)

// SupportedCommands lists every CommandName in a stable order
var SupportedCommands = []CommandName{CommandInform, CommandApproval, CommandSummarize}

// ParseCommandName validates a raw slash command name
func ParseCommandName(raw string) (CommandName, error) {
	for _, cmd := range SupportedCommands {
		if string(cmd) == raw {
			return cmd, nil
		}
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnsupportedCommand, raw)
}

// IsApproval reports whether the command runs the approval flow (mention selector, reduced channel set)
func (c CommandName) IsApproval() bool {
	return c == CommandApproval
}

// CommandInvocation is a single inbound slash command. It lives for one request cycle.
type CommandInvocation struct {
	Command     string
	Text        string
	UserID      string
	ChannelID   string
	TriggerID   string
	ResponseURL mo.Option[string]
}
