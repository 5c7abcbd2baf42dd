package depgraph

// tarjanFrame is one stack frame of the explicit-stack reformulation of
// Tarjan's strongconnect, replacing the original's recursive lambda
// (TypeDependencyAnalyzer.h's `strongconnect`) per spec.md §9's note that
// a systems-language implementation should convert unbounded-depth
// recursive traversal to an explicit stack — a self-referential or deeply
// nested C++ header can produce a dependency chain too deep for a
// recursive Go call stack to be worth risking.
type tarjanFrame struct {
	v        int
	edgeIdx  int
	childVis bool // not set or read by tarjanSCC
}

// tarjanSCC computes strongly connected components of the graph described
// by edges (edges[v] is the list of nodes v depends on), returning SCCs in
// the order Tarjan naturally produces them: reverse topological, i.e. a
// dependency's SCC is emitted before any SCC that depends on it.
func tarjanSCC(edges [][]int) [][]int {
	n := len(edges)
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}

	var stack []int
	var sccs [][]int
	current := 0

	for start := 0; start < n; start++ {
		if index[start] != -1 {
			continue
		}

		var work []*tarjanFrame
		work = append(work, &tarjanFrame{v: start})

		for len(work) > 0 {
			top := work[len(work)-1]
			v := top.v

			if index[v] == -1 {
				index[v] = current
				lowlink[v] = current
				current++
				stack = append(stack, v)
				onStack[v] = true
			}

			advanced := false
			for top.edgeIdx < len(edges[v]) {
				w := edges[v][top.edgeIdx]
				top.edgeIdx++

				if index[w] == -1 {
					work = append(work, &tarjanFrame{v: w})
					advanced = true
					break
				} else if onStack[w] {
					if index[w] < lowlink[v] {
						lowlink[v] = index[w]
					}
				}
			}
			if advanced {
				continue
			}

			// All of v's edges are processed; pop and fold lowlink into
			// the parent frame, then emit v's SCC if v is a root.
			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1]
				if lowlink[v] < lowlink[parent.v] {
					lowlink[parent.v] = lowlink[v]
				}
			}

			if lowlink[v] == index[v] {
				var scc []int
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					scc = append(scc, w)
					if w == v {
						break
					}
				}
				sccs = append(sccs, scc)
			}
		}
	}

	return sccs
}
