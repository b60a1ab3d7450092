package domain

import (
	"fmt"
	"strings"
)

// Validate checks every structural invariant of the behaviour.
// Returns an *AggregateError listing all failures found, or nil.
func (b *Behaviour) Validate() error {
	var errs []error
	add := func(key, reason string, value any) {
		errs = append(errs, &ValidationError{Key: key, Reason: reason, Value: value})
	}

	switch {
	case b.Name == "":
		add("name", "required", nil)
	case !IsIdentifier(b.Name):
		add("name", "must be a single word of letters, digits or underscores", b.Name)
	case len(b.Name) > MaxBehaviourName:
		add("name", fmt.Sprintf("must be at most %d characters", MaxBehaviourName), b.Name)
	}

	varNames := make(map[string]bool, len(b.Variables))
	for i, v := range b.Variables {
		key := fmt.Sprintf("variables[%d]", i)
		if !IsIdentifier(v.Name) {
			add(key+".name", "must be a single word of letters, digits or underscores", v.Name)
		} else if varNames[v.Name] {
			add(key+".name", "duplicate variable name", v.Name)
		}
		varNames[v.Name] = true

		if _, err := ParseVarType(string(v.Type)); err != nil {
			add(key+".type", err.Error(), v.Type)
		}
		if v.IsActor && v.Type != TypeObject {
			add(key+".type", "actors must be object variables", v.Type)
		}
		if reason := checkFreeText(v.Description); reason != "" {
			add(key+".description", reason, v.Description)
		}
	}

	contextNames := make(map[string]bool, len(b.Verbs))
	constants := make(map[string]string, len(b.Verbs))
	for i, v := range b.Verbs {
		key := fmt.Sprintf("verbs[%d]", i)
		if v == nil {
			add(key, "nil verb", nil)
			continue
		}

		if !IsIdentifier(v.ContextName) {
			add(key+".context_name", "must be a single word of letters, digits or underscores", v.ContextName)
		} else if contextNames[v.ContextName] {
			add(key+".context_name", "duplicate context name", v.ContextName)
		} else {
			constant := v.ConstantName()
			if other, ok := constants[constant]; ok {
				add(key+".context_name", fmt.Sprintf("constant %s collides with verb %s", constant, other), v.ContextName)
			}
			constants[constant] = v.ContextName
		}
		contextNames[v.ContextName] = true

		if v.ActualName != "" && !IsIdentifier(v.ActualName) {
			add(key+".actual_name", "must be empty or a single word", v.ActualName)
		}
		if v.Terminal && len(v.Followers) > 0 {
			add(key+".followers", "terminal verbs cannot have followers", strings.Join(v.FollowerNames(), " "))
		}
		for j, f := range v.Followers {
			if f == nil || b.Index(f) < 0 {
				add(fmt.Sprintf("%s.followers[%d]", key, j), "follower is not a verb of this behaviour", followerLabel(f))
			}
		}
		for j, p := range v.Preconditions {
			if reason := checkListItem(p); reason != "" {
				add(fmt.Sprintf("%s.preconditions[%d]", key, j), reason, p)
			}
		}
		for j, d := range v.VerbData {
			if !IsIdentifier(d) {
				add(fmt.Sprintf("%s.verb_data[%d]", key, j), "must be a single word of letters, digits or underscores", d)
			}
		}
		for j, a := range v.Arguments {
			if reason := checkListItem(a); reason != "" {
				add(fmt.Sprintf("%s.arguments[%d]", key, j), reason, a)
			}
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func followerLabel(f *Verb) any {
	if f == nil {
		return nil
	}
	return f.ContextName
}

// checkFreeText returns a reason when s cannot be written on one header line
// and read back unchanged.
func checkFreeText(s string) string {
	if strings.ContainsAny(s, "\r\n") {
		return "must not contain line breaks"
	}
	if strings.TrimSpace(s) != s {
		return "must not start or end with whitespace"
	}
	if strings.Contains(s, "*/") {
		return "must not contain */"
	}
	return ""
}

// checkListItem applies checkFreeText plus the ";;" list separator rules.
func checkListItem(s string) string {
	if reason := checkFreeText(s); reason != "" {
		return reason
	}
	if strings.Contains(s, ListSeparator) {
		return "must not contain " + ListSeparator
	}
	if strings.Trim(s, " ;") != s {
		return "must not start or end with ';'"
	}
	return ""
}

// ListSeparator joins precondition and argument values in the control script.
const ListSeparator = ";;"
