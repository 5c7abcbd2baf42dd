package parser

import (
	"github.com/lux-cxx/godref/front"
	"github.com/lux-cxx/godref/meta"
)

// discover walks the translation unit recursing into namespaces (except
// Options.SkipNamespaces, default {"std"}) and materializes every
// Record/Enum/Function declaration for which Options.markerMatches holds:
// one of its annotations equals MarkerSymbol exactly, or, with an empty
// MarkerSymbol, it has any annotation at all. Records must also be
// definitions. A base class is still materialized as a Decl regardless of
// its own annotations (via resolveBaseRecord), and a field's composed
// record type gets a Type node (via intern.internType) but no Decl — not
// through this top-level walk — since the type graph needs it whether or
// not it is itself reflected.
func (p *parseState) discover(cur front.Cursor) {
	p.adapter.VisitChildren(cur, func(child front.Cursor) bool {
		switch child.Kind() {
		case front.CursorNamespace:
			if p.skip[child.Spelling()] {
				return true
			}
			p.discover(child)
		case front.CursorClassDecl, front.CursorStructDecl, front.CursorUnionDecl:
			if child.IsDefinition() && p.opts.markerMatches(child.Annotations()) {
				p.buildRecord(child)
			}
		case front.CursorEnumDecl:
			if p.opts.markerMatches(child.Annotations()) {
				p.buildEnum(child)
			}
		case front.CursorFunctionDecl:
			if p.opts.markerMatches(child.Annotations()) {
				p.buildFunction(child, meta.DeclFunction)
			}
		}
		return true
	})
}
