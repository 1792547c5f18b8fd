package terminal

import (
	"fmt"
	"strings"
)

// Mermaid renders the transition table as a Mermaid stateDiagram-v2 block.
// highlight marks the given state, typically the current one; pass -1 for none.
func Mermaid(highlight State) string {
	var sb strings.Builder

	sb.WriteString("```mermaid\n")
	sb.WriteString("stateDiagram-v2\n")
	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", Waiting))

	for _, e := range Transitions() {
		label := e.Action.String()
		if e.Label != "" {
			label += " (" + e.Label + ")"
		}

		sb.WriteString(fmt.Sprintf("    %s --> %s: %s\n", e.From, e.To, label))
	}

	if highlight >= Waiting && highlight <= Operating {
		sb.WriteString("\n")
		sb.WriteString("    classDef current fill:#fff9c4,stroke:#f57f17,stroke-width:3px\n")
		sb.WriteString(fmt.Sprintf("    class %s current\n", highlight))
	}

	sb.WriteString("```\n")

	return sb.String()
}
