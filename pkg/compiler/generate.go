package compiler

import (
	"fmt"
	"strings"

	"github.com/aretw0/behave/pkg/domain"
)

const controlTitle = "Behaviour control script generated by behave. Changes are overwritten on save."

// localGetters maps a variable type to the NWScript local variable accessor.
var localGetters = map[domain.VarType]string{
	domain.TypeObject: "GetLocalObject",
	domain.TypeString: "GetLocalString",
	domain.TypeInt:    "GetLocalInt",
	domain.TypeFloat:  "GetLocalFloat",
}

// GenerateControlCode renders the control script (b_<name>.nss).
// The output is a pure function of b; the header block is exactly what
// ParseBehaviour reads back.
func GenerateControlCode(b *domain.Behaviour) string {
	w := &scriptWriter{}
	writeHeader(w, b)

	w.line("")
	w.line(`#include "%s"`, domain.ScriptResRef(domain.CatalogFileName))
	w.line(`#include "%s"`, domain.ScriptResRef(domain.StubFileName(b.Name)))

	if len(b.Verbs) > 0 {
		w.line("")
		for i, v := range b.Verbs {
			w.line("const int %s = %d;", v.ConstantName(), i+1)
		}
	}

	if len(b.Variables) > 0 {
		w.line("")
		for _, v := range b.Variables {
			w.line(`%s %s = %s(OBJECT_SELF, "%s");`, v.Type, v.Name, localGetter(v.Type), v.Name)
		}
	}

	w.line("")
	writeCanFollow(w, b)

	for _, v := range b.Verbs {
		w.line("")
		writeVerbFunction(w, v)
	}

	w.line("")
	writeMain(w, b)
	return w.String()
}

// GenerateVerbControl renders the part of the control script that belongs to
// one verb: its header lines and its Verb_ function.
func GenerateVerbControl(b *domain.Behaviour, v *domain.Verb) string {
	w := &scriptWriter{}
	writeVerbHeader(w, b.Index(v)+1, v)
	w.line("")
	writeVerbFunction(w, v)
	return w.String()
}

func writeHeader(w *scriptWriter, b *domain.Behaviour) {
	w.line("%s %s", blockStart, controlTitle)
	w.line("%s: %s", kwBehaviour, b.Name)
	for i, v := range b.Verbs {
		writeVerbHeader(w, i+1, v)
	}
	actors, others := 0, 0
	for _, v := range b.Variables {
		kw, n := kwVariable, 0
		if v.IsActor {
			actors++
			kw, n = kwActor, actors
		} else {
			others++
			n = others
		}
		if v.Description == "" {
			w.line("%s%d: %s %s", kw, n, v.Type, v.Name)
		} else {
			w.line("%s%d: %s %s %s", kw, n, v.Type, v.Name, v.Description)
		}
	}
	w.line(blockEnd)
}

func writeVerbHeader(w *scriptWriter, n int, v *domain.Verb) {
	actual := v.ActualName
	if actual == "" {
		actual = noActualVerb
	}
	decl := fmt.Sprintf("%s%d: %s %s %s", kwVerb, n, v.ContextName, actual, v.Role())
	if v.Terminal {
		decl += " " + domain.MarkTerminal
	}
	w.line("%s", decl)

	attr := func(kind, value string) {
		w.line("%s%s%d_%s: %s", attrIndent, kwVerb, n, kind, value)
	}
	if len(v.Preconditions) > 0 {
		attr(kwPreconditions, joinList(v.Preconditions))
	}
	if len(v.Followers) > 0 {
		attr(kwFollowers, strings.Join(v.FollowerNames(), " "))
	}
	if len(v.VerbData) > 0 {
		attr(kwVerbData, strings.Join(v.VerbData, " "))
	}
	if len(v.Arguments) > 0 {
		attr(kwArguments, joinList(v.Arguments))
	}
}

func writeCanFollow(w *scriptWriter, b *domain.Behaviour) {
	w.line("int %s(int nVerb, int nNext)", canFollowName(b))
	w.line("{")
	var withFollowers []*domain.Verb
	for _, v := range b.Verbs {
		if len(v.Followers) > 0 {
			withFollowers = append(withFollowers, v)
		}
	}
	if len(withFollowers) > 0 {
		w.line("    switch (nVerb)")
		w.line("    {")
		for _, v := range withFollowers {
			conds := make([]string, 0, len(v.Followers))
			for _, f := range v.Followers {
				conds = append(conds, "nNext == "+f.ConstantName())
			}
			w.line("        case %s:", v.ConstantName())
			w.line("            return %s;", strings.Join(conds, " || "))
		}
		w.line("    }")
	}
	w.line("    return FALSE;")
	w.line("}")
}

func writeVerbFunction(w *scriptWriter, v *domain.Verb) {
	w.line("void %s()", verbFunctionName(v))
	w.line("{")
	for _, p := range v.Preconditions {
		if p == "" {
			continue
		}
		w.line("    if (!(%s)) return;", p)
	}
	w.line("    if (!%s()) return;", checkcuesName(v))
	if v.ActualName != "" {
		w.line("    %s(%s);", v.ActualName, strings.Join(callArguments(v), ", "))
	}
	w.line("}")
}

func writeMain(w *scriptWriter, b *domain.Behaviour) {
	w.line("void main()")
	w.line("{")
	w.line(`    int nVerb = GetLocalInt(OBJECT_SELF, "%s");`, verbLocalName(b))
	if len(b.Verbs) > 0 {
		w.line("    switch (nVerb)")
		w.line("    {")
		for _, v := range b.Verbs {
			w.line("        case %s: %s(); break;", v.ConstantName(), verbFunctionName(v))
		}
		w.line("    }")
	}
	w.line("}")
}

// callArguments lists VerbData bindings followed by verb arguments, with
// trailing empty arguments dropped so the callee's defaults apply.
func callArguments(v *domain.Verb) []string {
	args := append([]string{}, v.VerbData...)
	last := len(v.Arguments)
	for last > 0 && v.Arguments[last-1] == "" {
		last--
	}
	for _, a := range v.Arguments[:last] {
		if a == "" {
			a = "/* unset */"
		}
		args = append(args, a)
	}
	return args
}

func localGetter(t domain.VarType) string {
	if g, ok := localGetters[t]; ok {
		return g
	}
	return "GetLocalInt"
}

func canFollowName(b *domain.Behaviour) string { return b.Name + "_CanFollow" }

func verbFunctionName(v *domain.Verb) string { return "Verb_" + v.ContextName }

func checkcuesName(v *domain.Verb) string { return "Checkcues_" + v.ContextName }

func verbLocalName(b *domain.Behaviour) string {
	return "B_" + strings.ToUpper(b.Name) + "_VERB"
}

// scriptWriter accumulates "\n"-terminated lines.
type scriptWriter struct {
	sb strings.Builder
}

func (w *scriptWriter) line(format string, args ...any) {
	if len(args) == 0 {
		w.sb.WriteString(format)
	} else {
		fmt.Fprintf(&w.sb, format, args...)
	}
	w.sb.WriteByte('\n')
}

func (w *scriptWriter) String() string { return w.sb.String() }
