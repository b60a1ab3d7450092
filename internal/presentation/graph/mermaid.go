package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/behave/pkg/domain"
)

// GraphOverlay marks verbs to highlight on the graph.
type GraphOverlay struct {
	FlaggedVerbs []string
	SelectedVerb string
}

// GenerateMermaid produces a Mermaid flowchart of a behaviour's follower edges.
// Shapes follow the verb role:
// - Supporter (entry point): ((Circle))
// - Terminal: [[Subroutine]]
// - Follower: [Rectangle]
// An edge into a verb with preconditions is labelled with them.
func GenerateMermaid(b *domain.Behaviour, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i, v := range b.Verbs {
		opener, closer := "[", "]"
		switch {
		case v.Terminal:
			opener, closer = "[[", "]]"
		case !v.Follower:
			opener, closer = "((", "))"
		}

		label := v.ContextName
		if v.ActualName != "" {
			label += "<br/>" + v.ActualName
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", nodeID(i), opener, label, closer)
	}

	for i, v := range b.Verbs {
		for _, f := range v.Followers {
			to := b.Index(f)
			if to < 0 {
				continue
			}
			arrow := "-->"
			if len(f.Preconditions) > 0 {
				cond := strings.ReplaceAll(strings.Join(f.Preconditions, " && "), "\"", "'")
				arrow = fmt.Sprintf("-- \"%s\" -->", cond)
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", nodeID(i), arrow, nodeID(to))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef flagged fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, name := range overlay.FlaggedVerbs {
			idx := b.Index(b.Verb(name))
			if idx < 0 || seen[idx] {
				continue
			}
			seen[idx] = true
			fmt.Fprintf(&sb, "    class %s flagged;\n", nodeID(idx))
		}
		if idx := b.Index(b.Verb(overlay.SelectedVerb)); idx >= 0 {
			fmt.Fprintf(&sb, "    class %s selected;\n", nodeID(idx))
		}
	}

	return sb.String()
}

// nodeID uses the arena index, so context names never clash with Mermaid keywords.
func nodeID(i int) string {
	return fmt.Sprintf("v%d", i)
}
