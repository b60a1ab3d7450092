package compiler

import (
	"strings"

	"github.com/aretw0/behave/pkg/domain"
)

type catalogState int

const (
	scanForBlock catalogState = iota
	awaitDescription
	awaitVerbData
	awaitArgsHeader
	inArguments
)

// ParseActionCatalog reads every "/* <Name> verb" block of util_verbs.nss.
//
// A block whose description or VerbData line is missing is skipped and the
// scan continues with the next block. Blank lines inside a block are ignored.
// Entries keep file order and duplicate names are kept.
func (p *Parser) ParseActionCatalog(lines []string) (domain.Catalog, []Diagnostic) {
	diags := &diagnostics{p: p, kind: "catalog"}
	catalog := domain.Catalog{}

	state := scanForBlock
	var current *domain.ActualVerb
	blockLine := 0

	abandon := func(idx int, line, reason string) {
		diags.report(idx, line, reason)
		current = nil
		state = scanForBlock
	}
	emit := func() {
		catalog = append(catalog, *current)
		current = nil
		state = scanForBlock
	}

	for idx := 0; idx < len(lines); idx++ {
		line := lines[idx]

		if state != scanForBlock && opensBlock(line) {
			if state == awaitArgsHeader {
				emit()
			} else {
				diags.report(blockLine, lines[blockLine], "verb block interrupted by a new comment block")
				current = nil
				state = scanForBlock
			}
		}

		switch state {
		case scanForBlock:
			if !strings.Contains(line, blockStart) {
				continue
			}
			m := catNameRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			current = &domain.ActualVerb{Name: m[1], VerbData: []string{}, Arguments: []domain.VerbArgument{}}
			blockLine = idx
			state = awaitDescription
			if strings.Contains(line, blockEnd) {
				abandon(idx, line, "verb block closed before its description")
			}

		case awaitDescription:
			if isBlank(line) {
				continue
			}
			m := catDescRe.FindStringSubmatch(line)
			if m == nil {
				abandon(idx, line, "expected "+catDescription)
				continue
			}
			current.Description = strings.TrimSpace(m[1])
			state = awaitVerbData

		case awaitVerbData:
			if isBlank(line) {
				continue
			}
			m := catVerbDataRe.FindStringSubmatch(line)
			if m == nil {
				abandon(idx, line, "expected "+catVerbData)
				continue
			}
			current.VerbData = append(current.VerbData, strings.Fields(m[1])...)
			state = awaitArgsHeader

		case awaitArgsHeader:
			if isBlank(line) {
				continue
			}
			if catArgsRe.MatchString(line) {
				state = inArguments
				continue
			}
			// The argument list is optional: anything else completes the entry.
			emit()

		case inArguments:
			if strings.Contains(line, blockEnd) {
				emit()
				continue
			}
			if isBlank(line) {
				continue
			}
			m := catArgRe.FindStringSubmatch(line)
			if m == nil {
				diags.report(idx, line, "unrecognised verb argument")
				continue
			}
			current.Arguments = append(current.Arguments, domain.VerbArgument{
				Mandatory:   m[3] == markMandatory,
				Type:        m[1],
				Name:        m[2],
				Description: strings.TrimSpace(m[4]),
			})
		}
	}

	switch state {
	case awaitArgsHeader:
		emit()
	case scanForBlock:
	default:
		diags.report(blockLine, lines[blockLine], "verb block not terminated")
	}

	p.logger.Debug("parsed action catalog", "verbs", len(catalog), "skipped", len(diags.list))
	return catalog, diags.list
}

// opensBlock reports whether line starts a new comment block. A "/*" inside
// description or argument text does not.
func opensBlock(line string) bool {
	return catNameRe.MatchString(line) || strings.HasPrefix(strings.TrimSpace(line), blockStart)
}
