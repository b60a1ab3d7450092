package compiler

import (
	"regexp"
	"strings"

	"github.com/aretw0/behave/pkg/domain"
)

// Block delimiters of the host language comment.
const (
	blockStart = "/*"
	blockEnd   = "*/"
)

// Control script header keywords.
const (
	kwBehaviour     = "BEHAVIOUR"
	kwVerb          = "VERB"
	kwActor         = "ACTOR"
	kwVariable      = "VARIABLE"
	kwPreconditions = "PRECONDITIONS"
	kwFollowers     = "FOLLOWERS"
	kwVerbData      = "VERBDATA"
	kwArguments     = "ARGUMENTS"

	// noActualVerb stands in for an empty actual verb name on a VERB line.
	noActualVerb = "-"

	attrIndent = "    "
)

// Catalog keywords.
const (
	catDescription = "Description:"
	catVerbData    = "VerbData Arguments:"
	catArguments   = "Verb Arguments:"
	markMandatory  = "[Mandatory]"
)

var (
	behaviourRe = regexp.MustCompile(`^\s*BEHAVIOUR:\s*(\w+)\s*$`)
	verbRe      = regexp.MustCompile(`^\s*VERB(\d+):\s*(\w+)\s+(\S+)\s+(\w+)(?:\s+(\w+))?\s*$`)
	attributeRe = regexp.MustCompile(`^\s*VERB(\d+)_(PRECONDITIONS|FOLLOWERS|VERBDATA|ARGUMENTS):\s?(.*)$`)
	variableRe  = regexp.MustCompile(`^\s*(ACTOR|VARIABLE)(\d+):\s*(\w+)\s+(\w+)(?:\s+(.*))?$`)

	catNameRe     = regexp.MustCompile(`^\s*/\*\s*(\w+)\s+verb\b`)
	catDescRe     = regexp.MustCompile(`^\s*Description:\s?(.*)$`)
	catVerbDataRe = regexp.MustCompile(`^\s*VerbData Arguments:\s?(.*)$`)
	catArgsRe     = regexp.MustCompile(`^\s*Verb Arguments:\s*$`)
	catArgRe      = regexp.MustCompile(`^\s*(\w+)\s+(\w+)(?:\s+(\S+))?\s+-\s?(.*)$`)
)

// Lines splits text into lines, dropping carriage returns and the empty
// element after a final newline.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// splitList splits a ";;" list value. Every item is trimmed of spaces and ';'.
func splitList(value string) []string {
	parts := strings.Split(value, domain.ListSeparator)
	for i, p := range parts {
		parts[i] = strings.Trim(p, " ;")
	}
	return parts
}

// joinList is the inverse of splitList for values accepted by Validate.
func joinList(items []string) string {
	return strings.Join(items, " "+domain.ListSeparator+" ")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
