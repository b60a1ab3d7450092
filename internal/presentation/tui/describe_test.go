package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/behave/internal/validator"
	"github.com/aretw0/behave/pkg/domain"
)

func TestDescribe(t *testing.T) {
	b := domain.NewBehaviour("Greeter")
	b.AddVariable(domain.NewActor("oPC", "the player | hero"))
	greet := b.AddVerb("GreetPlayer")
	greet.ActualName = "Speak"
	greet.Arguments = []string{`"Hello"`}
	leave := b.AddVerb("Leave")
	leave.Follower = true
	leave.Terminal = true
	greet.AddFollower(leave)

	catalog := domain.Catalog{{Name: "Speak", Description: "Says a line"}}
	report := validator.Report{{Severity: validator.SeverityWarning, Code: "dead-end", Verb: "X", Message: "m"}}

	md := Describe(b, catalog, report)

	assert.True(t, strings.HasPrefix(md, "# Behaviour Greeter\n"))
	assert.Contains(t, md, "`b_greeter.nss`")
	assert.Contains(t, md, "| oPC | object | yes | the player \\| hero |")
	assert.Contains(t, md, "- **Constant:** `V_S_GREET_PLAYER` (Supporter)")
	assert.Contains(t, md, "- **Constant:** `V_FT_LEAVE` (Follower, terminal)")
	assert.Contains(t, md, "- **Calls:** `Speak` - Says a line")
	assert.Contains(t, md, "- **Followers:** Leave")
	assert.Contains(t, md, "- warning [dead-end] X: m")
}

func TestDescribe_Empty(t *testing.T) {
	md := Describe(domain.NewBehaviour("Idle"), nil, nil)
	assert.Contains(t, md, "_No verbs._")
	assert.NotContains(t, md, "## Variables")
	assert.NotContains(t, md, "## Findings")
}

func TestNewRenderer_Plain(t *testing.T) {
	render := NewRenderer(false)
	out, err := render("# Title")
	assert.NoError(t, err)
	assert.Equal(t, "# Title", out)
}
