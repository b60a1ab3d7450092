package compiler

import (
	"fmt"
	"strings"

	"github.com/aretw0/behave/pkg/domain"
)

// Stub section markers. Everything between a BEGIN and the matching END line
// belongs to the user once written.
const (
	sectionBegin  = "//:: BEGIN "
	sectionEnd    = "//:: END "
	helpersKey    = "Helpers"
	orphanBanner  = "//:: Sections below no longer match a verb. They are kept until you delete them."
	stubPreambleA = "//:: Checkcues for behaviour %s, included by %s."
	stubPreambleB = "//:: Edit only between BEGIN and END markers; the rest is regenerated on save."
)

// GenerateStubCode renders a fresh checkcues script (z_b_<name>.nss) with one
// section per verb. Use MergeStub to combine it with an existing file.
func GenerateStubCode(b *domain.Behaviour) string {
	w := &scriptWriter{}
	w.line("//:: %s", domain.ScriptResRef(domain.StubFileName(b.Name)))
	w.line(stubPreambleA, b.Name, domain.ScriptResRef(domain.ControlFileName(b.Name)))
	w.line(stubPreambleB)

	w.line("")
	w.line("%s%s", sectionBegin, helpersKey)
	w.line("// Shared helpers for the checkcues below.")
	w.line("%s%s", sectionEnd, helpersKey)

	for _, v := range b.Verbs {
		w.line("")
		writeCheckcues(w, v)
	}
	return w.String()
}

// GenerateVerbCheckcues renders the stub section of a single verb.
func GenerateVerbCheckcues(_ *domain.Behaviour, v *domain.Verb) string {
	w := &scriptWriter{}
	writeCheckcues(w, v)
	return w.String()
}

func writeCheckcues(w *scriptWriter, v *domain.Verb) {
	name := checkcuesName(v)
	w.line("%s%s", sectionBegin, name)
	w.line("int %s()", name)
	w.line("{")
	w.line("    return TRUE;")
	w.line("}")
	w.line("%s%s", sectionEnd, name)
}

// stubSection is one BEGIN/END delimited region, markers included. trailer
// holds the lines after END up to the next BEGIN or the end of the file.
type stubSection struct {
	key     string
	lines   []string
	trailer []string
}

// stubFile is a stub script split into its preamble and its sections.
type stubFile struct {
	preamble []string
	sections []stubSection
}

func splitStub(text string) (*stubFile, error) {
	f := &stubFile{}
	var open *stubSection
	seen := make(map[string]bool)

	for idx, line := range Lines(text) {
		trimmed := strings.TrimSpace(line)
		if open != nil {
			open.lines = append(open.lines, line)
			if key, ok := strings.CutPrefix(trimmed, sectionEnd); ok && strings.TrimSpace(key) == open.key {
				f.sections = append(f.sections, *open)
				open = nil
			}
			continue
		}
		if key, ok := strings.CutPrefix(trimmed, sectionBegin); ok {
			key = strings.TrimSpace(key)
			if seen[key] {
				return nil, fmt.Errorf("line %d: section %q appears twice", idx+1, key)
			}
			seen[key] = true
			open = &stubSection{key: key, lines: []string{line}}
			continue
		}
		if strings.HasPrefix(trimmed, sectionEnd) {
			return nil, fmt.Errorf("line %d: %q has no matching BEGIN", idx+1, trimmed)
		}
		if n := len(f.sections); n > 0 {
			f.sections[n-1].trailer = append(f.sections[n-1].trailer, line)
		} else {
			f.preamble = append(f.preamble, line)
		}
	}
	if open != nil {
		return nil, fmt.Errorf("section %q is not closed", open.key)
	}
	return f, nil
}

// userPreamble returns the lines of a preamble that were not written by
// GenerateStubCode: everything but "//::" lines, without surrounding blanks.
func userPreamble(lines []string) []string {
	var out []string
	for _, l := range lines {
		if !strings.HasPrefix(strings.TrimSpace(l), "//::") {
			out = append(out, l)
		}
	}
	return trimBlankLines(out)
}

func trimBlankLines(lines []string) []string {
	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (w *scriptWriter) section(s stubSection) {
	for _, l := range s.lines {
		w.line("%s", l)
	}
	var trailer []string
	for _, l := range s.trailer {
		if strings.TrimSpace(l) != orphanBanner {
			trailer = append(trailer, l)
		}
	}
	if trailer = trimBlankLines(trailer); len(trailer) > 0 {
		w.line("")
		for _, l := range trailer {
			w.line("%s", l)
		}
	}
}

// MergeStub combines a previously saved stub with freshly generated text.
//
// The "//::" preamble lines and the set and order of sections come from
// generated. A section already present in existing is kept verbatim together
// with any text that follows it, and other text written above the first
// section is kept below the new preamble. Sections of existing that generated
// no longer has are appended after a banner. Merging the result again with the
// same generated text returns it unchanged. A stub whose sections cannot be
// matched up (unclosed or repeated) is refused rather than rewritten.
func MergeStub(existing, generated string) (string, error) {
	if strings.TrimSpace(existing) == "" {
		return generated, nil
	}
	old, err := splitStub(existing)
	if err != nil {
		return "", fmt.Errorf("existing stub: %w", err)
	}
	gen, err := splitStub(generated)
	if err != nil {
		return "", fmt.Errorf("generated stub: %w", err)
	}

	kept := make(map[string]stubSection, len(old.sections))
	for _, s := range old.sections {
		kept[s.key] = s
	}

	w := &scriptWriter{}
	for _, l := range gen.preamble {
		w.line("%s", l)
	}
	if user := userPreamble(old.preamble); len(user) > 0 {
		for _, l := range user {
			w.line("%s", l)
		}
		w.line("")
	}

	used := make(map[string]bool, len(gen.sections))
	for i, s := range gen.sections {
		if i > 0 {
			w.line("")
		}
		if prev, ok := kept[s.key]; ok {
			s = prev
		}
		used[s.key] = true
		w.section(s)
	}

	var orphans []stubSection
	for _, s := range old.sections {
		if !used[s.key] {
			orphans = append(orphans, s)
		}
	}
	if len(orphans) > 0 {
		w.line("")
		w.line(orphanBanner)
		for _, s := range orphans {
			w.line("")
			w.section(s)
		}
	}
	return w.String(), nil
}

// StubSectionKeys lists the section keys of a stub script in file order.
func StubSectionKeys(text string) ([]string, error) {
	f, err := splitStub(text)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(f.sections))
	for _, s := range f.sections {
		keys = append(keys, s.key)
	}
	return keys, nil
}
