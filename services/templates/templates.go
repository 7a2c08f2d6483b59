package templates

import (
	"fmt"

	"slackrelay/models"
	"slackrelay/utils"
)

// MentionPlaceholder marks where selected mentions go. It is matched case-insensitively.
const MentionPlaceholder = "@person"

var templates = map[models.CommandName]func(summary string) string{
	models.CommandInform: func(summary string) string {
		return fmt.Sprintf("Hi team, we are starting the following change. Please reach out to the help-network-datacenter channel with any related alerts or issues.Thanks!\n\n%s", summary)
	},
	models.CommandApproval: func(summary string) string {
		return fmt.Sprintf("Hi %s! Approval needed! Please review the attached request:\n\n%s", MentionPlaceholder, summary)
	},
	models.CommandSummarize: func(summary string) string {
		return fmt.Sprintf("Hi team, here is a summary for your awareness:\n\n%s", summary)
	},
}

// Render builds the pre-populated form body for cmd. Commands are validated before
// a form is ever built, so a missing template is a programming error.
func Render(cmd models.CommandName, summary string) string {
	render, ok := templates[cmd]
	utils.AssertInvariant(ok, fmt.Sprintf("no message template for command %q", cmd))
	return render(summary)
}
