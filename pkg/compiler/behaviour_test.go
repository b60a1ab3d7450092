package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/behave/pkg/domain"
)

func TestParseBehaviour_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *domain.Behaviour)
	}{
		{"greeter", func(*domain.Behaviour) {}},
		{"trailing empty argument", func(b *domain.Behaviour) {
			b.Verb("GreetPlayer").Arguments = []string{"sLine", ""}
		}},
		{"single empty argument", func(b *domain.Behaviour) {
			b.Verb("Wave").Arguments = []string{""}
		}},
		{"leading empty argument", func(b *domain.Behaviour) {
			b.Verb("Wave").Arguments = []string{"", "x"}
		}},
		{"semicolon inside value", func(b *domain.Behaviour) {
			b.Verb("Wave").Preconditions = []string{"a;b", "c"}
		}},
		{"self follower and duplicates", func(b *domain.Behaviour) {
			greet := b.Verb("GreetPlayer")
			greet.AddFollower(greet)
			greet.AddFollower(b.Verb("Wave"))
		}},
		{"no variables", func(b *domain.Behaviour) { b.Variables = nil }},
		{"float and mixed order", func(b *domain.Behaviour) {
			b.AddVariable(domain.NewVariable(domain.TypeFloat, "fDelay", "Seconds"))
			b.AddVariable(domain.NewActor("oNPC", ""))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := greeter()
			tt.mutate(want)
			require.NoError(t, want.Validate())

			got, err := ParseBehaviour(Lines(GenerateControlCode(want)))
			require.NoError(t, err)
			assert.Nil(t, domain.Diff(want, got))
			assert.Equal(t, want.Variables, got.Variables)

			for i, v := range got.Verbs {
				assert.Equal(t, want.Verbs[i].ConstantName(), v.ConstantName())
				for _, f := range v.Followers {
					assert.GreaterOrEqual(t, got.Index(f), 0, "follower must point into the parsed arena")
				}
			}
			assert.Equal(t, GenerateControlCode(want), GenerateControlCode(got))
		})
	}
}

func TestParseBehaviour_ForwardReference(t *testing.T) {
	src := `/* hand written
BEHAVIOUR: Fwd
VERB1: First Speak Supporter
    VERB1_FOLLOWERS: Second
VERB2: Second Walk Follower Terminal
*/
`
	b, err := ParseBehaviour(Lines(src))
	require.NoError(t, err)
	require.Len(t, b.Verbs, 2)

	first, second := b.Verbs[0], b.Verbs[1]
	require.Len(t, first.Followers, 1)
	assert.Same(t, second, first.Followers[0])
	assert.True(t, second.Terminal)
	assert.True(t, second.Follower)
}

func TestParseBehaviour_Diagnostics(t *testing.T) {
	src := `// leading code comment
/* Title text that is ignored
BEHAVIOUR: Diag

VERB1: A - Supporter
  some decorative note
VERB2: B Walk Leader
    VERB2_PRECONDITIONS: x ;; y
*/
void main() {}
`
	var seen []Diagnostic
	p := NewParser(WithDiagnosticHandler(func(d Diagnostic) { seen = append(seen, d) }))

	b, diags, err := p.ParseBehaviour(Lines(src))
	require.NoError(t, err)
	require.Len(t, diags, 2)
	assert.Equal(t, diags, seen)

	assert.Equal(t, 6, diags[0].Line)
	assert.Equal(t, "unrecognised line", diags[0].Reason)
	assert.Equal(t, 7, diags[1].Line)
	assert.Contains(t, diags[1].Reason, "unknown role")

	assert.Equal(t, "", b.Verbs[0].ActualName)
	assert.False(t, b.Verbs[1].Follower)
	assert.Equal(t, []string{"x", "y"}, b.Verbs[1].Preconditions)
}

func TestParseBehaviour_BlankLinesAndIndentation(t *testing.T) {
	src := "/*\r\n\r\nBEHAVIOUR: Loose\r\n\tVERB1: A Act Supporter\r\n\r\nVERB1_ARGUMENTS: 1 ;; 2\r\n\r\n*/\r\n"
	b, err := ParseBehaviour(Lines(src))
	require.NoError(t, err)
	require.Len(t, b.Verbs, 1)
	assert.Equal(t, []string{"1", "2"}, b.Verbs[0].Arguments)
}

func TestParseBehaviour_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"no block", "void main() {}\n", "no comment block"},
		{"end before start", "*/\n/*\nBEHAVIOUR: X\n*/\n", "closed before it was opened"},
		{"unterminated", "/*\nBEHAVIOUR: X\nVERB1: A - Supporter\n", "not terminated"},
		{"attribute before verb", "/*\nBEHAVIOUR: X\n    VERB1_PRECONDITIONS: a\nVERB1: A - Supporter\n*/\n", "not declared yet"},
		{"attribute for unknown ordinal", "/*\nBEHAVIOUR: X\nVERB1: A - Supporter\n    VERB2_ARGUMENTS: a\n*/\n", "not declared yet"},
		{"unresolved follower", "/*\nBEHAVIOUR: X\nVERB1: A - Supporter\n    VERB1_FOLLOWERS: Ghost\n*/\n", `follower "Ghost"`},
		{"duplicate verb", "/*\nBEHAVIOUR: X\nVERB1: A - Supporter\nVERB2: A - Follower\n*/\n", "declared twice"},
		{"terminal with followers", "/*\nBEHAVIOUR: X\nVERB1: A - Supporter Terminal\n    VERB1_FOLLOWERS: A\n*/\n", "terminal verb"},
		{"behaviour twice", "/*\nBEHAVIOUR: X\nBEHAVIOUR: Y\n*/\n", "declared twice"},
		{"missing name", "/*\nVERB1: A - Supporter\n*/\n", "not valid"},
		{"bad variable type", "/*\nBEHAVIOUR: X\nVARIABLE1: vector vPos\n*/\n", "not valid"},
		{"verb ordinal overflow", "/*\nBEHAVIOUR: X\nVERB99999999999999999999: B - Supporter\n*/\n", "out of range"},
		{"attribute ordinal overflow", "/*\nBEHAVIOUR: X\nVERB1: A - Supporter\n    VERB99999999999999999998_PRECONDITIONS: p\n*/\n", "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBehaviour(Lines(tt.src))
			require.Error(t, err)
			assert.Nil(t, b)
			assert.True(t, errors.Is(err, domain.ErrParse))

			var pe *domain.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Contains(t, pe.Error(), tt.wantMsg)
		})
	}
}

func TestParseBehaviour_InvalidWrapsValidation(t *testing.T) {
	_, err := ParseBehaviour(Lines("/*\nBEHAVIOUR: ThisNameIsTooLong\n*/\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParse))
	assert.True(t, errors.Is(err, domain.ErrInvalidBehaviour))
	assert.NotEmpty(t, domain.ValidationErrors(err))
}

func TestParseBehaviour_OnlyFirstBlock(t *testing.T) {
	src := GenerateControlCode(greeter()) + "\n/*\nBEHAVIOUR: Other\n*/\n"
	b, err := ParseBehaviour(Lines(src))
	require.NoError(t, err)
	assert.Equal(t, "Greeter", b.Name)
}

func TestLines(t *testing.T) {
	assert.Nil(t, Lines(""))
	assert.Equal(t, []string{"a", "b"}, Lines("a\r\nb\n"))
	assert.Equal(t, []string{"a", "", "b"}, Lines("a\n\nb"))
	assert.Equal(t, []string{""}, Lines("\n"))
	assert.Len(t, Lines(strings.Repeat("x\n", 3)), 3)
}
