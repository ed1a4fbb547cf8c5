package transform

// resolver computes effective dependencies: the substantive nodes reachable
// from a technical node by following outgoing edges through further
// technical nodes only, collecting the first substantive node met on each
// path. It never continues past a substantive node.
//
// Results are memoized per resolver instance for every technical node a
// query walks over, not just the queried root. Long technical chains are
// common and many incoming edges target nodes along them; memoizing the
// whole walk keeps total resolution cost across a Filter call at O(V+E)
// instead of re-walking each suffix per query. The memo must never outlive
// the call, or it would serve stale answers for a different graph snapshot.
type resolver struct {
	adjacency map[string][]string
	technical map[string]bool
	memo      map[string][]string
}

func newResolver(adjacency map[string][]string, technical map[string]bool) *resolver {
	return &resolver{
		adjacency: adjacency,
		technical: technical,
		memo:      make(map[string][]string),
	}
}

// effectiveDeps returns the substantive node IDs reachable from the
// technical node id. Cyclic technical chains resolve to the same answer for
// every member of the cycle instead of looping. Order is deterministic for
// a given input.
func (r *resolver) effectiveDeps(id string) []string {
	if deps, ok := r.memo[id]; ok {
		return deps
	}
	r.resolve(id)
	return r.memo[id]
}

// frame is one node on the resolve DFS stack together with the index of its
// next unexamined successor.
type frame struct {
	id   string
	next int
}

// resolve walks the technical subgraph reachable from root and writes a
// memo entry for every technical node it completes. It is Tarjan's strongly
// connected components algorithm with an explicit stack: a component pops
// only after all components it reaches are resolved, and all members of a
// cycle share one entry. Each node and edge is examined once across all
// resolve calls on the same resolver.
func (r *resolver) resolve(root string) {
	index := make(map[string]int)
	low := make(map[string]int)
	onStack := make(map[string]bool)
	var pending []string
	var frames []frame
	counter := 0

	push := func(id string) {
		index[id] = counter
		low[id] = counter
		counter++
		onStack[id] = true
		pending = append(pending, id)
		frames = append(frames, frame{id: id})
	}
	push(root)

	for len(frames) > 0 {
		f := &frames[len(frames)-1]
		if f.next < len(r.adjacency[f.id]) {
			next := r.adjacency[f.id][f.next]
			f.next++
			if !r.technical[next] {
				// Substantive successors are collected when the
				// component pops
				continue
			}
			if _, done := r.memo[next]; done {
				continue
			}
			if _, ok := index[next]; !ok {
				push(next)
			} else if onStack[next] && index[next] < low[f.id] {
				low[f.id] = index[next]
			}
			continue
		}

		finished := f.id
		frames = frames[:len(frames)-1]
		if len(frames) > 0 {
			parent := &frames[len(frames)-1]
			if low[finished] < low[parent.id] {
				low[parent.id] = low[finished]
			}
		}
		if low[finished] != index[finished] {
			continue
		}

		// finished roots a component; pop its members off the pending
		// stack and resolve them together.
		var members []string
		for {
			m := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			onStack[m] = false
			members = append(members, m)
			if m == finished {
				break
			}
		}

		deps := []string{}
		seen := make(map[string]bool)
		for i := len(members) - 1; i >= 0; i-- {
			for _, next := range r.adjacency[members[i]] {
				if !r.technical[next] {
					if !seen[next] {
						seen[next] = true
						deps = append(deps, next)
					}
					continue
				}
				// Technical successors outside this component are
				// already memoized; successors inside it are covered
				// by the members loop.
				for _, d := range r.memo[next] {
					if !seen[d] {
						seen[d] = true
						deps = append(deps, d)
					}
				}
			}
		}
		for _, m := range members {
			r.memo[m] = deps
		}
	}
}
