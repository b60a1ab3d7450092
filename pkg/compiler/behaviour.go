package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/behave/pkg/domain"
)

type behaviourState int

const (
	stateAwaitBlockStart behaviourState = iota
	stateAwaitVerbLine
	stateAwaitAttributeOrNextVerb
	stateAwaitBlockEnd
)

func (s behaviourState) String() string {
	switch s {
	case stateAwaitBlockStart:
		return "AwaitBlockStart"
	case stateAwaitVerbLine:
		return "AwaitVerbLine"
	case stateAwaitAttributeOrNextVerb:
		return "AwaitAttributeOrNextVerb"
	case stateAwaitBlockEnd:
		return "AwaitBlockEnd"
	}
	return "unknown"
}

// followerRef is a follower edge recorded before every verb is known.
type followerRef struct {
	source *domain.Verb
	target string
	line   int
}

// behaviourScratch holds a behaviour under construction. Nothing in it is
// reachable by the caller until the whole block parsed and validated.
type behaviourScratch struct {
	b        *domain.Behaviour
	nameLine int
	byID     map[int]*domain.Verb
	refs     []followerRef
}

// ParseBehaviour parses the first comment block of a control script.
//
// Inside the block the parser moves from AwaitVerbLine to
// AwaitAttributeOrNextVerb once a verb is declared, and to AwaitBlockEnd once
// the variable section starts. Attribute lines are rejected until a verb with
// the same ordinal has been declared.
//
// Follower names may refer to verbs declared further down; they are resolved
// once the block is closed. The returned behaviour has passed Validate.
func (p *Parser) ParseBehaviour(lines []string) (*domain.Behaviour, []Diagnostic, error) {
	diags := &diagnostics{p: p, kind: "behaviour"}
	s := &behaviourScratch{b: &domain.Behaviour{}, nameLine: -1, byID: map[int]*domain.Verb{}}

	state := stateAwaitBlockStart
	startLine := -1
	closed := false

scan:
	for idx, line := range lines {
		switch state {
		case stateAwaitBlockStart:
			open := strings.Index(line, blockStart)
			end := strings.Index(line, blockEnd)
			if end >= 0 && (open < 0 || end < open) {
				return nil, diags.list, parseErrorf(idx, "comment block closed before it was opened")
			}
			if open < 0 {
				continue
			}
			startLine = idx
			// The remainder of the opening line is a title.
			if strings.Contains(line[open+len(blockStart):], blockEnd) {
				closed = true
				break scan
			}
			state = stateAwaitVerbLine

		default:
			body := line
			closing := strings.Index(line, blockEnd)
			if closing >= 0 {
				body = line[:closing]
			}
			if !isBlank(body) {
				next, err := s.consume(idx, body, state, diags)
				if err != nil {
					return nil, diags.list, err
				}
				state = next
			}
			if closing >= 0 {
				p.logger.Debug("behaviour block closed", "start", startLine+1, "end", idx+1, "state", state.String())
				closed = true
				break scan
			}
		}
	}

	switch {
	case startLine < 0:
		return nil, diags.list, parseErrorf(-1, "no comment block found")
	case !closed:
		return nil, diags.list, parseErrorf(startLine, "comment block is not terminated")
	}

	if err := s.resolve(); err != nil {
		return nil, diags.list, err
	}
	if err := s.b.Validate(); err != nil {
		return nil, diags.list, &domain.ParseError{Line: startLine + 1, Msg: "behaviour is not valid", Err: err}
	}
	return s.b, diags.list, nil
}

// consume applies one body line and returns the next state.
func (s *behaviourScratch) consume(idx int, line string, state behaviourState, diags *diagnostics) (behaviourState, error) {
	if m := behaviourRe.FindStringSubmatch(line); m != nil {
		if s.nameLine >= 0 {
			return state, parseErrorf(idx, "%s declared twice (first at line %d)", kwBehaviour, s.nameLine+1)
		}
		s.b.Name = m[1]
		s.nameLine = idx
		return state, nil
	}

	if m := verbRe.FindStringSubmatch(line); m != nil {
		id, err := verbOrdinal(idx, m[1])
		if err != nil {
			return state, err
		}
		v := &domain.Verb{ContextName: m[2]}
		if m[3] != noActualVerb {
			v.ActualName = m[3]
		}
		switch m[4] {
		case domain.RoleFollower:
			v.Follower = true
		case domain.RoleSupporter:
		default:
			diags.report(idx, line, "unknown role "+strconv.Quote(m[4])+", assuming "+domain.RoleSupporter)
		}
		switch m[5] {
		case domain.MarkTerminal:
			v.Terminal = true
		case "":
		default:
			diags.report(idx, line, "unknown marker "+strconv.Quote(m[5])+" ignored")
		}
		s.b.Verbs = append(s.b.Verbs, v)
		s.byID[id] = v
		return stateAwaitAttributeOrNextVerb, nil
	}

	if m := attributeRe.FindStringSubmatch(line); m != nil {
		id, err := verbOrdinal(idx, m[1])
		if err != nil {
			return state, err
		}
		v, ok := s.byID[id]
		if state == stateAwaitVerbLine || !ok {
			return state, parseErrorf(idx, "%s%s_%s refers to a verb that is not declared yet", kwVerb, m[1], m[2])
		}
		s.applyAttribute(idx, v, m[2], m[3])
		return state, nil
	}

	if m := variableRe.FindStringSubmatch(line); m != nil {
		s.b.Variables = append(s.b.Variables, domain.NWVariable{
			Type:        domain.VarType(m[3]),
			Name:        m[4],
			Description: strings.TrimSpace(m[5]),
			IsActor:     m[1] == kwActor,
		})
		if state == stateAwaitVerbLine {
			return state, nil
		}
		return stateAwaitBlockEnd, nil
	}

	diags.report(idx, line, "unrecognised line")
	return state, nil
}

// verbOrdinal reads the <n> of VERB<n>; ordinals too large for an int are rejected
// so they cannot collide with each other.
func verbOrdinal(idx int, digits string) (int, error) {
	id, err := strconv.Atoi(digits)
	if err != nil {
		return 0, &domain.ParseError{Line: idx + 1, Msg: fmt.Sprintf("verb ordinal %s is out of range", digits), Err: err}
	}
	return id, nil
}

func (s *behaviourScratch) applyAttribute(idx int, v *domain.Verb, kind, value string) {
	switch kind {
	case kwPreconditions:
		v.Preconditions = append(v.Preconditions, splitList(value)...)
	case kwFollowers:
		for _, name := range strings.Fields(value) {
			s.refs = append(s.refs, followerRef{source: v, target: name, line: idx})
		}
	case kwVerbData:
		v.VerbData = append(v.VerbData, strings.Fields(value)...)
	case kwArguments:
		v.Arguments = append(v.Arguments, splitList(value)...)
	}
}

// resolve links the recorded follower names now that every verb is declared.
func (s *behaviourScratch) resolve() error {
	seen := make(map[string]int, len(s.b.Verbs))
	for i, v := range s.b.Verbs {
		if first, dup := seen[v.ContextName]; dup {
			return parseErrorf(-1, "verb %q is declared twice (verbs %d and %d)", v.ContextName, first+1, i+1)
		}
		seen[v.ContextName] = i
	}

	for _, ref := range s.refs {
		if ref.source.Terminal {
			return parseErrorf(ref.line, "terminal verb %q cannot have followers", ref.source.ContextName)
		}
		target := s.b.Verb(ref.target)
		if target == nil {
			return parseErrorf(ref.line, "follower %q of verb %q is not declared", ref.target, ref.source.ContextName)
		}
		ref.source.AddFollower(target)
	}
	return nil
}
