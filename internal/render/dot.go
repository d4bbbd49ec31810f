package render

import (
	"fmt"
	"strings"

	"github.com/hghwng/cfgtool/internal/automaton"
)

// DOT emits a Graphviz digraph of c: one record-shaped node per state
// (kernel items above the divider, non-kernel items below), and one
// labeled edge per transition.
func DOT(c automaton.Collection) string {
	var sb strings.Builder
	sb.WriteString("digraph {\n  rankdir = \"LR\";\n")

	for _, st := range c.States {
		fmt.Fprintf(&sb, "  \"node%d\" [\n", st.Index)
		sb.WriteString("    shape = \"record\"\n")
		fmt.Fprintf(&sb, "    label = \"I%d\\n|", st.Index)

		parts := make([]string, len(st.Kernel))
		for i, it := range st.Kernel {
			parts[i] = it.String()
		}
		sb.WriteString(strings.Join(parts, "\\l"))
		sb.WriteString("\\l")

		if len(st.NonKernel) > 0 {
			sb.WriteString("|")
			nonKernel := make([]string, len(st.NonKernel))
			for i, it := range st.NonKernel {
				nonKernel[i] = it.String()
			}
			sb.WriteString(strings.Join(nonKernel, "\\l"))
			sb.WriteString("\\l")
		}
		sb.WriteString("\"\n  ];\n")
	}

	sb.WriteString("\n")
	for _, e := range c.Edges {
		fmt.Fprintf(&sb, "  \"node%d\" -> \"node%d\" [label=\"%s\"]\n", e.From, e.To, e.Symbol)
	}
	sb.WriteString("}\n")
	return sb.String()
}
