package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/behave/internal/validator"
	"github.com/aretw0/behave/pkg/domain"
)

// Describe renders a behaviour as a markdown document: variables, verbs with
// their catalog documentation when available, and lint findings.
func Describe(b *domain.Behaviour, catalog domain.Catalog, report validator.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Behaviour %s\n\n", b.Name)
	fmt.Fprintf(&sb, "Control script `%s`, checkcues `%s`.\n\n",
		domain.ControlFileName(b.Name), domain.StubFileName(b.Name))

	if len(b.Variables) > 0 {
		sb.WriteString("## Variables\n\n")
		sb.WriteString("| Name | Type | Actor | Description |\n")
		sb.WriteString("|------|------|-------|-------------|\n")
		for _, v := range b.Variables {
			actor := ""
			if v.IsActor {
				actor = "yes"
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", v.Name, v.Type, actor, escapeCell(v.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Verbs\n\n")
	if len(b.Verbs) == 0 {
		sb.WriteString("_No verbs._\n\n")
	}
	for _, v := range b.Verbs {
		fmt.Fprintf(&sb, "### %s\n\n", v.ContextName)
		role := v.Role()
		if v.Terminal {
			role += ", terminal"
		}
		fmt.Fprintf(&sb, "- **Constant:** `%s` (%s)\n", v.ConstantName(), role)
		if v.ActualName != "" {
			fmt.Fprintf(&sb, "- **Calls:** `%s`", v.ActualName)
			if entry, ok := catalog.Lookup(v.ActualName); ok && entry.Description != "" {
				fmt.Fprintf(&sb, " - %s", entry.Description)
			}
			sb.WriteString("\n")
		}
		if len(v.Preconditions) > 0 {
			fmt.Fprintf(&sb, "- **Preconditions:** `%s`\n", strings.Join(v.Preconditions, "` and `"))
		}
		if len(v.VerbData) > 0 {
			fmt.Fprintf(&sb, "- **Verb data:** %s\n", strings.Join(v.VerbData, ", "))
		}
		if len(v.Arguments) > 0 {
			fmt.Fprintf(&sb, "- **Arguments:** `%s`\n", strings.Join(v.Arguments, "`, `"))
		}
		if len(v.Followers) > 0 {
			fmt.Fprintf(&sb, "- **Followers:** %s\n", strings.Join(v.FollowerNames(), ", "))
		}
		sb.WriteString("\n")
	}

	if len(report) > 0 {
		sb.WriteString("## Findings\n\n")
		for _, f := range report {
			fmt.Fprintf(&sb, "- %s\n", f.String())
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
