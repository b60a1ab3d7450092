// Package validator lints a behaviour beyond the structural rules enforced by
// domain.Behaviour.Validate: graph shape and conformance to the action catalog.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/behave/pkg/domain"
)

// Severity ranks a finding.
type Severity string

const (
	// SeverityError marks findings that produce a script the game compiler rejects.
	SeverityError Severity = "error"
	// SeverityWarning marks suspicious but compilable behaviours.
	SeverityWarning Severity = "warning"
)

// Finding codes.
const (
	CodeDeadEnd          = "dead-end"
	CodeOrphanFollower   = "orphan-follower"
	CodeUnreachable      = "unreachable"
	CodeUnknownVerb      = "unknown-verb"
	CodeVerbDataCount    = "verb-data-count"
	CodeArgumentCount    = "argument-count"
	CodeMissingMandatory = "missing-mandatory"
	CodeUnsetArgument    = "unset-argument"
	CodeDuplicateCatalog = "duplicate-catalog-entry"
)

// Finding is one lint result. Verb is empty for catalog-wide findings.
type Finding struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Code     string   `json:"code" yaml:"code"`
	Verb     string   `json:"verb,omitempty" yaml:"verb,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

func (f Finding) String() string {
	if f.Verb == "" {
		return fmt.Sprintf("%s [%s]: %s", f.Severity, f.Code, f.Message)
	}
	return fmt.Sprintf("%s [%s] %s: %s", f.Severity, f.Code, f.Verb, f.Message)
}

// Report is the ordered list of findings for one behaviour.
type Report []Finding

// HasErrors reports whether any finding is an error.
func (r Report) HasErrors() bool {
	for _, f := range r {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err folds the error-level findings into a single error, or nil.
func (r Report) Err() error {
	var lines []string
	for _, f := range r {
		if f.Severity == SeverityError {
			lines = append(lines, f.String())
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(lines), strings.Join(lines, "\n- "))
}

// Lint runs the graph checks and, when catalog is non-nil, the catalog checks.
func Lint(b *domain.Behaviour, catalog domain.Catalog) Report {
	r := LintGraph(b)
	r = append(r, lintArguments(b)...)
	if catalog != nil {
		r = append(r, LintCatalog(b, catalog)...)
	}
	return r
}

// LintGraph reports verbs the dispatcher can never reach or never leave.
//
// Supporter verbs are entry points. The crawl walks follower edges from every
// entry point; a Follower verb left unvisited is either an orphan (nothing
// lists it) or part of a cycle only reachable from itself.
func LintGraph(b *domain.Behaviour) Report {
	var r Report

	visited := make(map[*domain.Verb]bool, len(b.Verbs))
	var queue []*domain.Verb
	for _, v := range b.Verbs {
		if !v.Follower {
			queue = append(queue, v)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, next := range current.Followers {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	for _, v := range b.Verbs {
		if !v.Terminal && len(v.Followers) == 0 {
			r = append(r, Finding{
				Severity: SeverityWarning,
				Code:     CodeDeadEnd,
				Verb:     v.ContextName,
				Message:  "verb is not terminal but has no followers",
			})
		}
		if visited[v] {
			continue
		}
		if len(b.Predecessors(v)) == 0 {
			r = append(r, Finding{
				Severity: SeverityWarning,
				Code:     CodeOrphanFollower,
				Verb:     v.ContextName,
				Message:  "follower verb is not listed as a follower of any verb",
			})
			continue
		}
		r = append(r, Finding{
			Severity: SeverityWarning,
			Code:     CodeUnreachable,
			Verb:     v.ContextName,
			Message:  "verb cannot be reached from any supporter verb",
		})
	}
	return r
}

// lintArguments flags empty arguments followed by a set one; the generator
// renders those as an unset placeholder that does not compile.
func lintArguments(b *domain.Behaviour) Report {
	var r Report
	for _, v := range b.Verbs {
		last := len(v.Arguments) - 1
		for last >= 0 && v.Arguments[last] == "" {
			last--
		}
		for i := 0; i < last; i++ {
			if v.Arguments[i] == "" {
				r = append(r, Finding{
					Severity: SeverityError,
					Code:     CodeUnsetArgument,
					Verb:     v.ContextName,
					Message:  fmt.Sprintf("argument %d is empty but a later argument is set", i+1),
				})
			}
		}
	}
	return r
}

// LintCatalog checks every verb's actual verb, bindings and arguments against
// the catalog entry of the same name.
func LintCatalog(b *domain.Behaviour, catalog domain.Catalog) Report {
	var r Report
	for _, name := range catalog.Duplicates() {
		r = append(r, Finding{
			Severity: SeverityWarning,
			Code:     CodeDuplicateCatalog,
			Message:  fmt.Sprintf("actual verb %q is declared more than once; the last declaration is used", name),
		})
	}

	for _, v := range b.Verbs {
		if v.ActualName == "" {
			continue
		}
		entry, ok := catalog.Lookup(v.ActualName)
		if !ok {
			r = append(r, Finding{
				Severity: SeverityError,
				Code:     CodeUnknownVerb,
				Verb:     v.ContextName,
				Message:  fmt.Sprintf("actual verb %q is not in the catalog", v.ActualName),
			})
			continue
		}

		if len(v.VerbData) != len(entry.VerbData) {
			r = append(r, Finding{
				Severity: SeverityError,
				Code:     CodeVerbDataCount,
				Verb:     v.ContextName,
				Message: fmt.Sprintf("%s takes %d verb data bindings, got %d",
					entry.Name, len(entry.VerbData), len(v.VerbData)),
			})
		}

		if len(v.Arguments) > len(entry.Arguments) {
			r = append(r, Finding{
				Severity: SeverityError,
				Code:     CodeArgumentCount,
				Verb:     v.ContextName,
				Message: fmt.Sprintf("%s takes at most %d arguments, got %d",
					entry.Name, len(entry.Arguments), len(v.Arguments)),
			})
		}

		for i, arg := range entry.Arguments {
			if !arg.Mandatory {
				continue
			}
			if i >= len(v.Arguments) || v.Arguments[i] == "" {
				r = append(r, Finding{
					Severity: SeverityError,
					Code:     CodeMissingMandatory,
					Verb:     v.ContextName,
					Message:  fmt.Sprintf("mandatory argument %s (%d) of %s is not set", arg.Name, i+1, entry.Name),
				})
			}
		}
	}
	return r
}
