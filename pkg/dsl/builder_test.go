package dsl

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/behave/pkg/domain"
)

func TestBuilder_SimpleBehaviour(t *testing.T) {
	// 1. Build the behaviour using DSL
	b := New("Greeter").
		Actor("oPC", "The player").
		Variable(domain.TypeInt, "nTries", "")

	b.Verb("Greet").
		Does("Speak").
		When("GetIsPC(oPC)", "nTries > 0").
		Bind("oPC").
		Args("Hello", "").
		Then("Wave", "Leave")

	b.Verb("Wave").Follower().Does("PlayAnimation").Then("Greet")
	b.Verb("Leave").Follower().Terminal()

	// 2. Compile
	behaviour, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	// 3. Verify shape
	if got := strings.Join(behaviour.VerbNames(), ","); got != "Greet,Wave,Leave" {
		t.Errorf("Expected verbs in declaration order, got %s", got)
	}
	greet := behaviour.Verb("Greet")
	if got := strings.Join(greet.FollowerNames(), ","); got != "Wave,Leave" {
		t.Errorf("Expected followers Wave,Leave, got %s", got)
	}
	if greet.Followers[0] != behaviour.Verb("Wave") {
		t.Error("Expected follower to point into the behaviour's own verbs")
	}
	if len(greet.Arguments) != 2 || greet.Arguments[1] != "" {
		t.Errorf("Expected unset second argument, got %q", greet.Arguments)
	}
	if len(behaviour.Actors()) != 1 {
		t.Errorf("Expected 1 actor, got %d", len(behaviour.Actors()))
	}
}

func TestBuilder_BuildReturnsFreshCopies(t *testing.T) {
	b := New("Twice")
	b.Verb("A").Then("A")

	first := b.MustBuild()
	second := b.MustBuild()

	if first.Verbs[0] == second.Verbs[0] {
		t.Fatal("Expected distinct verbs for each Build")
	}
	if second.Verbs[0].Followers[0] != second.Verbs[0] {
		t.Error("Expected self follower to point at the second copy")
	}
	first.Verbs[0].Preconditions = append(first.Verbs[0].Preconditions, "x")
	if len(second.Verbs[0].Preconditions) != 0 {
		t.Error("Expected copies not to share slices")
	}
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Builder
		want  string
	}{
		{"terminal with followers", func() *Builder {
			b := New("T")
			b.Verb("A").Terminal().Then("A")
			return b
		}, "terminal"},
		{"unknown follower", func() *Builder {
			b := New("U")
			b.Verb("A").Then("Ghost")
			return b
		}, "Ghost"},
		{"invalid name", func() *Builder {
			b := New("Far Too Long Name")
			b.Verb("A")
			return b
		}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build().Build()
			if err == nil {
				t.Fatal("Expected Build() to fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestBuilder_ValidationErrorIsTyped(t *testing.T) {
	b := New("")
	b.Verb("A")

	_, err := b.Build()
	if !errors.Is(err, domain.ErrInvalidBehaviour) {
		t.Fatalf("Expected ErrInvalidBehaviour, got %v", err)
	}
}

func TestBuilder_VerbIsIdempotent(t *testing.T) {
	b := New("Same")
	b.Verb("A").Does("Walk")
	b.Verb("A").Follower()

	behaviour := b.MustBuild()
	if len(behaviour.Verbs) != 1 {
		t.Fatalf("Expected 1 verb, got %d", len(behaviour.Verbs))
	}
	if !behaviour.Verbs[0].Follower || behaviour.Verbs[0].ActualName != "Walk" {
		t.Errorf("Expected both calls to configure the same verb, got %+v", behaviour.Verbs[0])
	}
}
