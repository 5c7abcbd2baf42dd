package depgraph

import "github.com/lux-cxx/godref/meta"

// SCC is one strongly connected component of the type dependency graph: a
// single type when acyclic, or a group of mutually dependent types that
// must be forward-declared together (spec.md §4.4).
type SCC struct {
	Types  []*meta.Type
	Cyclic bool
}

// Order computes the Generator Core's emission order for types: a
// definitions-precede-uses sequence of SCCs, reverse topological so that
// every type's dependencies are emitted (or forward-declared, for a cyclic
// group) before the type itself. Ties within an SCC — and SCC-to-SCC
// ordering where Tarjan leaves ambiguity — are broken by insertion order
// in the input slice, so re-running Order on the same Unit always
// produces the same sequence (spec.md §8's determinism property).
func Order(types []*meta.Type) []SCC {
	g := buildGraph(types)
	rawSCCs := tarjanSCC(g.edges)

	result := make([]SCC, 0, len(rawSCCs))
	for _, indices := range rawSCCs {
		scc := SCC{Cyclic: len(indices) > 1}
		// tarjanSCC pops its internal stack in discovery-reverse order; to
		// keep insertion order stable within a component we sort ascending
		// by original index rather than trust pop order.
		sorted := append([]int(nil), indices...)
		insertionSort(sorted)
		for _, idx := range sorted {
			scc.Types = append(scc.Types, g.types[idx])
		}
		result = append(result, scc)
	}
	return result
}

// insertionSort sorts a small slice of ints ascending; SCC sizes are
// small enough in practice (one translation unit's type graph) that a
// simple insertion sort avoids pulling in sort.Slice's reflection-free but
// still indirect call overhead.
func insertionSort(xs []int) {
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		j := i - 1
		for j >= 0 && xs[j] > v {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = v
	}
}
