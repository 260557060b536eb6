package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/craftchain-go/internal/adapters/api"
)

// TreeFormatter renders a production chain as an indented tree
type TreeFormatter struct {
	showIDs bool
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(showIDs bool) *TreeFormatter {
	return &TreeFormatter{showIDs: showIDs}
}

// FormatChain renders the chain starting at its root node
func (f *TreeFormatter) FormatChain(view *api.ChainView) string {
	nodes := make(map[string]api.ChainNodeView, len(view.Nodes))
	for _, n := range view.Nodes {
		nodes[n.ID] = n
	}

	// Edges point producer -> consumer, so a node's children are the
	// sources of the edges targeting it.
	children := make(map[string][]string, len(view.Nodes))
	for _, e := range view.Edges {
		children[e.Target] = append(children[e.Target], e.Source)
	}

	root, ok := nodes[view.RootNodeID]
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(f.label(root))
	sb.WriteString("\n")
	f.formatChildren(&sb, nodes, children, root.ID, "")

	if len(view.RawMaterials) > 0 {
		sb.WriteString(fmt.Sprintf("\nRaw materials: %s\n", strings.Join(view.RawMaterials, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Nodes: %d  Depth: %d\n", view.TotalNodes, view.Depth))
	return sb.String()
}

func (f *TreeFormatter) formatChildren(sb *strings.Builder, nodes map[string]api.ChainNodeView, children map[string][]string, id, prefix string) {
	kids := children[id]
	for i, childID := range kids {
		child, ok := nodes[childID]
		if !ok {
			continue
		}
		last := i == len(kids)-1

		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}

		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(f.label(child))
		sb.WriteString("\n")

		f.formatChildren(sb, nodes, children, childID, prefix+indent)
	}
}

func (f *TreeFormatter) label(n api.ChainNodeView) string {
	var parts []string

	if n.Type == "facility" {
		name := n.FacilityName
		if name == "" {
			name = "Manual"
		}
		parts = append(parts, "["+name+"]")
		if n.ProcessingTimeMs > 0 {
			parts = append(parts, formatCraftTime(n.ProcessingTimeMs))
		}
		if f.showIDs && n.RecipeID != "" {
			parts = append(parts, "("+n.RecipeID+")")
		}
	} else {
		name := n.ItemName
		if name == "" {
			name = n.ItemID
		}
		parts = append(parts, fmt.Sprintf("%s x%d", name, n.Quantity))
		if f.showIDs {
			parts = append(parts, "("+n.ItemID+")")
		}
		if n.IsRawMaterial {
			parts = append(parts, "raw")
		}
		if n.Truncated {
			parts = append(parts, "...")
		}
	}

	if n.HiddenDescendants > 0 {
		parts = append(parts, fmt.Sprintf("[+%d hidden]", n.HiddenDescendants))
	}
	return strings.Join(parts, " ")
}

func formatCraftTime(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}
