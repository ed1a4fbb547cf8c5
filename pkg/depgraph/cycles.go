package depgraph

// WouldCreateCycle reports whether accepting the proposed edge source→target
// would create a directed cycle in the graph formed by edges plus the
// candidate edge.
//
// The check is advisory: callers must reject the edge before any mutation of
// persisted state when it returns true, and may proceed when it returns
// false. A self-loop (source == target) is always reported as a cycle.
//
// The candidate edge closes a loop exactly when source is already reachable
// from target, so the search starts at target and walks the adjacency built
// from the existing edges plus the candidate. The traversal uses an explicit
// stack rather than recursion so adversarially deep graphs cannot exhaust
// the goroutine stack. Cost is O(V+E).
func WouldCreateCycle(edges []Edge, source, target string) bool {
	if source == target {
		return true
	}

	adjacency := make(map[string][]string, len(edges))
	for _, e := range edges {
		adjacency[e.From] = append(adjacency[e.From], e.To)
	}
	adjacency[source] = append(adjacency[source], target)

	visited := make(map[string]bool, len(adjacency))
	stack := []string{target}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		if id == source {
			return true
		}
		stack = append(stack, adjacency[id]...)
	}
	return false
}
