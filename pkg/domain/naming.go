package domain

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Script file naming conventions.
const (
	CatalogFileName = "util_verbs.nss"
	ControlPrefix   = "b_"
	StubPrefix      = "z_b_"
	ScriptExt       = ".nss"

	// MaxBehaviourName keeps "z_b_<name>" within the 16 character resref limit.
	MaxBehaviourName = 11
)

var identifierRe = regexp.MustCompile(`^\w+$`)

// IsIdentifier reports whether s is a single grammar word (letters, digits, underscore).
func IsIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}

// ConstantName derives the script constant for a verb.
//
// The result is "V_" + role + terminal flag + "_" + the upper snake-cased
// context name, e.g. ("GreetPlayer", true, true) -> "V_FT_GREET_PLAYER".
func ConstantName(contextName string, follower, terminal bool) string {
	var b strings.Builder
	b.WriteString("V_")
	if follower {
		b.WriteByte('F')
	} else {
		b.WriteByte('S')
	}
	if terminal {
		b.WriteByte('T')
	}
	b.WriteByte('_')
	b.WriteString(upperSnake(contextName))
	return b.String()
}

func upperSnake(s string) string {
	var b strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteByte('_')
		}
		b.WriteRune(r)
		prev = r
	}
	return cases.Upper(language.Und).String(b.String())
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// ControlFileName returns the conventional control script name for a behaviour.
func ControlFileName(behaviourName string) string {
	return ControlPrefix + lower(behaviourName) + ScriptExt
}

// StubFileName returns the conventional checkcues script name for a behaviour.
func StubFileName(behaviourName string) string {
	return StubPrefix + lower(behaviourName) + ScriptExt
}

// ScriptResRef strips directory and extension, giving the name used by #include.
func ScriptResRef(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CheckCatalogPath enforces that path names the action catalog.
func CheckCatalogPath(path string) error {
	if filepath.Base(path) != CatalogFileName {
		return &FilenameError{Path: path, Rule: "must be named " + CatalogFileName}
	}
	return nil
}

// CheckControlPath enforces the control script prefix.
func CheckControlPath(path string) error {
	if !strings.HasPrefix(filepath.Base(path), ControlPrefix) {
		return &FilenameError{Path: path, Rule: "must start with " + ControlPrefix}
	}
	return nil
}

// CheckStubPath enforces the checkcues script prefix.
func CheckStubPath(path string) error {
	if !strings.HasPrefix(filepath.Base(path), StubPrefix) {
		return &FilenameError{Path: path, Rule: "must start with " + StubPrefix}
	}
	return nil
}
