package chain

// FilterCollapsed hides the upstream subtree of every collapsed node.
//
// Collapse roots that stay visible get HiddenDescendants set to the number of
// nodes hidden beneath them; every other visible node gets 0. Edges survive only
// when both endpoints are visible. Unknown (stale) collapsed ids are ignored.
//
// The transform is idempotent: running it again on its own output with the same
// collapsed ids changes nothing, because the count carried by a visible collapse
// root is added to whatever is still found beneath it.
func FilterCollapsed(nodes []Node, edges []Edge, collapsedNodeIDs map[string]bool) ([]Node, []Edge) {
	present := make(map[string]*Node, len(nodes))
	for i := range nodes {
		present[nodes[i].ID] = &nodes[i]
	}

	incoming := incomingIndex(edges)

	hidden := make(map[string]bool)
	hiddenBelow := make(map[string]int)
	for id, collapsed := range collapsedNodeIDs {
		if !collapsed {
			continue
		}
		root, ok := present[id]
		if !ok {
			continue
		}

		count := root.HiddenDescendants
		for subID := range subtree(id, incoming) {
			hidden[subID] = true
			count++
			if sub, ok := present[subID]; ok {
				count += sub.HiddenDescendants
			}
		}
		hiddenBelow[id] = count
	}

	filteredNodes := make([]Node, 0, len(nodes))
	visible := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if hidden[n.ID] {
			continue
		}
		n.HiddenDescendants = 0
		if count, ok := hiddenBelow[n.ID]; ok {
			n.HiddenDescendants = count
		}
		filteredNodes = append(filteredNodes, n)
		visible[n.ID] = true
	}

	filteredEdges := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if visible[e.Source] && visible[e.Target] {
			filteredEdges = append(filteredEdges, e)
		}
	}

	return filteredNodes, filteredEdges
}

// Subtree returns every node reachable by following edges backwards from nodeID,
// i.e. all of its producers and ingredients transitively. nodeID itself is excluded.
func Subtree(nodeID string, edges []Edge) map[string]bool {
	return subtree(nodeID, incomingIndex(edges))
}

// CountDescendants returns the number of nodes in nodeID's upstream subtree that
// are present in nodes
func CountDescendants(nodeID string, edges []Edge, nodes []Node) int {
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}

	count := 0
	for id := range Subtree(nodeID, edges) {
		if present[id] {
			count++
		}
	}
	return count
}

func incomingIndex(edges []Edge) map[string][]string {
	incoming := make(map[string][]string)
	for _, e := range edges {
		incoming[e.Target] = append(incoming[e.Target], e.Source)
	}
	return incoming
}

func subtree(nodeID string, incoming map[string][]string) map[string]bool {
	result := make(map[string]bool)
	stack := []string{nodeID}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, source := range incoming[current] {
			if source == nodeID || result[source] {
				continue
			}
			result[source] = true
			stack = append(stack, source)
		}
	}
	return result
}
