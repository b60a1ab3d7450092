package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/behave/pkg/domain"
)

const utilVerbs = `// util_verbs.nss
/* Library of actual verbs. */

/* Speak verb
Description: Make the speaker say a line.
VerbData Arguments: oSpeaker
Verb Arguments:
    string sLine [Mandatory] - The line to say
    int nVolume [Optional] - TALKVOLUME_* constant
    int bQueue - Queue instead of speaking now
*/
void Speak(object oSpeaker, string sLine, int nVolume = TALKVOLUME_TALK, int bQueue = FALSE);

/* Walk verb
Description: Walk to a waypoint.
VerbData Arguments: oWalker oWaypoint
*/
void Walk(object oWalker, object oWaypoint);

/* Wait verb
Description: Do nothing.
VerbData Arguments:
*/
void Wait();
`

func TestParseActionCatalog(t *testing.T) {
	catalog := ParseActionCatalog(Lines(utilVerbs))
	require.Len(t, catalog, 3)
	assert.Equal(t, []string{"Speak", "Walk", "Wait"}, catalog.Names())

	speak := catalog[0]
	assert.Equal(t, "Make the speaker say a line.", speak.Description)
	assert.Equal(t, []string{"oSpeaker"}, speak.VerbData)
	assert.Equal(t, []domain.VerbArgument{
		{Mandatory: true, Type: "string", Name: "sLine", Description: "The line to say"},
		{Mandatory: false, Type: "int", Name: "nVolume", Description: "TALKVOLUME_* constant"},
		{Mandatory: false, Type: "int", Name: "bQueue", Description: "Queue instead of speaking now"},
	}, speak.Arguments)

	walk := catalog[1]
	assert.Equal(t, []string{"oWalker", "oWaypoint"}, walk.VerbData)
	assert.Empty(t, walk.Arguments)

	assert.Empty(t, catalog[2].VerbData)
}

func TestParseActionCatalog_MandatoryMarker(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"    object oTarget [Mandatory] - Who", true},
		{"    object oTarget [mandatory] - Who", false},
		{"    object oTarget [Optional] - Who", false},
		{"    object oTarget - Who", false},
		{"    object oTarget * - Who", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			src := []string{
				"/* Touch verb",
				"Description: Touch something.",
				"VerbData Arguments: oActor",
				"Verb Arguments:",
				tt.line,
				"*/",
			}
			catalog := ParseActionCatalog(src)
			require.Len(t, catalog, 1)
			require.Len(t, catalog[0].Arguments, 1)
			assert.Equal(t, tt.want, catalog[0].Arguments[0].Mandatory)
			assert.Equal(t, "oTarget", catalog[0].Arguments[0].Name)
		})
	}
}

func TestParseActionCatalog_SkipAndContinue(t *testing.T) {
	src := `/* Speak verb
Description: Say something.
VerbData Arguments: oSpeaker
*/
/* Broken verb
VerbData Arguments: oWho
*/
/* Walk verb
Description: Walk.
VerbData Arguments: oWalker
Verb Arguments:
    object oTo [Mandatory] - Destination
*/
`
	var diags []Diagnostic
	p := NewParser(WithDiagnosticHandler(func(d Diagnostic) { diags = append(diags, d) }))

	catalog, returned := p.ParseActionCatalog(Lines(src))
	require.Len(t, catalog, 2)
	assert.Equal(t, []string{"Speak", "Walk"}, catalog.Names())
	require.Len(t, returned, 1)
	assert.Equal(t, returned, diags)
	assert.Equal(t, 6, returned[0].Line)
}

func TestParseActionCatalog_BlankLinesTolerated(t *testing.T) {
	src := []string{
		"/* Speak verb",
		"",
		"Description: Say something.",
		"",
		"VerbData Arguments: oSpeaker",
		"",
		"Verb Arguments:",
		"",
		"    string sLine [Mandatory] - Text",
		"*/",
	}
	catalog := ParseActionCatalog(src)
	require.Len(t, catalog, 1)
	assert.Len(t, catalog[0].Arguments, 1)
}

func TestParseActionCatalog_Interrupted(t *testing.T) {
	src := []string{
		"/* Speak verb",
		"Description: Say something.",
		"/* Walk verb",
		"Description: Walk.",
		"VerbData Arguments: oWalker",
		"*/",
		"/* Open verb",
		"Description: Open a door.",
		"VerbData Arguments: oDoor",
		"Verb Arguments:",
		"    object oKey - Key",
	}
	catalog, diags := NewParser().ParseActionCatalog(src)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Walk", catalog[0].Name)
	require.Len(t, diags, 2)
	assert.Equal(t, 1, diags[0].Line)
	assert.Contains(t, diags[0].Reason, "interrupted")
	assert.Equal(t, 7, diags[1].Line)
	assert.Contains(t, diags[1].Reason, "not terminated")
}

func TestParseActionCatalog_CommentMarkersInText(t *testing.T) {
	src := []string{
		"/* Speak verb",
		"Description: Says a line /* see util_speak",
		"VerbData Arguments: oSpeaker",
		"Verb Arguments:",
		"    string sLine [Mandatory] - The line, e.g. /* greeting",
		"*/",
		"/* Walk verb",
		"Description: Walks /* slowly",
		"VerbData Arguments: oWalker",
		"*/",
	}
	catalog, diags := NewParser().ParseActionCatalog(src)
	assert.Empty(t, diags)
	require.Equal(t, []string{"Speak", "Walk"}, catalog.Names())
	assert.Equal(t, "Says a line /* see util_speak", catalog[0].Description)
	require.Len(t, catalog[0].Arguments, 1)
	assert.Equal(t, "The line, e.g. /* greeting", catalog[0].Arguments[0].Description)
	assert.Equal(t, "Walks /* slowly", catalog[1].Description)
}

func TestParseActionCatalog_DuplicatesKept(t *testing.T) {
	src := []string{
		"/* Speak verb", "Description: first", "VerbData Arguments:", "*/",
		"/* Speak verb", "Description: second", "VerbData Arguments:", "*/",
	}
	catalog := ParseActionCatalog(src)
	require.Len(t, catalog, 2)
	got, ok := catalog.Lookup("Speak")
	require.True(t, ok)
	assert.Equal(t, "second", got.Description)
	assert.Equal(t, []string{"Speak"}, catalog.Duplicates())
}
