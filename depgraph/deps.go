// Package depgraph implements the Type Dependency Analyzer: direct
// dependency edges between meta.Type nodes, and Tarjan's strongly
// connected components algorithm to produce a definitions-precede-uses
// emission order for the Generator Core.
package depgraph

import "github.com/lux-cxx/godref/meta"

// graph is a dependency graph over a fixed slice of types, built once per
// Order call. Edges point from a type to the types its own definition
// requires to already be known (spec.md §4.4's direct-edge rules).
type graph struct {
	types   []*meta.Type
	index   map[*meta.Type]int
	declIdx map[string]int // meta.Decl.ID -> index into types, for Record/Enum
	edges   [][]int
}

func buildGraph(types []*meta.Type) *graph {
	g := &graph{
		types:   types,
		index:   make(map[*meta.Type]int, len(types)),
		declIdx: make(map[string]int, len(types)),
	}
	for i, t := range types {
		g.index[t] = i
		if (t.Kind == meta.TypeRecord || t.Kind == meta.TypeEnum) && t.Declaration != nil {
			g.declIdx[t.Declaration.ID] = i
		}
	}
	g.edges = make([][]int, len(types))
	for i, t := range types {
		g.edges[i] = g.dependenciesOf(t)
	}
	return g
}

func (g *graph) addEdge(edges []int, t *meta.Type) []int {
	if t == nil {
		return edges
	}
	if i, ok := g.index[t]; ok {
		edges = append(edges, i)
	}
	return edges
}

func (g *graph) addDeclTypeEdge(edges []int, d *meta.Decl) []int {
	if d == nil {
		return edges
	}
	if i, ok := g.declIdx[d.ID]; ok {
		edges = append(edges, i)
	}
	return edges
}

// dependenciesOf returns the direct dependency edges for t, exactly per
// spec.md §4.4's rule table: Pointer→pointee, Reference→referred,
// Array→element, Function→return+params, Record→bases+ctors+dtor+methods+
// static methods+fields, Enum→underlying.
func (g *graph) dependenciesOf(t *meta.Type) []int {
	var edges []int
	switch t.Kind {
	case meta.TypePointer:
		edges = g.addEdge(edges, t.Pointee)
	case meta.TypeLvalueReference, meta.TypeRvalueReference:
		edges = g.addEdge(edges, t.Referred)
	case meta.TypeArray:
		edges = g.addEdge(edges, t.Element)
	case meta.TypeFunction:
		edges = g.addEdge(edges, t.Return)
		for _, p := range t.Parameters {
			edges = g.addEdge(edges, p)
		}
	case meta.TypeRecord:
		if d := t.Declaration; d != nil {
			for _, b := range d.Bases {
				edges = g.addDeclTypeEdge(edges, b)
			}
			for _, f := range d.Fields {
				edges = g.addEdge(edges, f.Type)
			}
			for _, c := range d.Constructors {
				edges = g.functionEdges(edges, c)
			}
			if d.Destructor != nil {
				edges = g.functionEdges(edges, d.Destructor)
			}
			for _, m := range d.Methods {
				edges = g.functionEdges(edges, m)
			}
			for _, m := range d.StaticMethods {
				edges = g.functionEdges(edges, m)
			}
		}
	case meta.TypeEnum:
		edges = g.addEdge(edges, t.UnderlyingType)
	}
	return edges
}

func (g *graph) functionEdges(edges []int, fn *meta.Decl) []int {
	edges = g.addEdge(edges, fn.ReturnType)
	for _, p := range fn.Parameters {
		edges = g.addEdge(edges, p.Type)
	}
	return edges
}
