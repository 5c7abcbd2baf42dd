// Package parser implements the Parser Core: a discovery pass over a
// front.Adapter's translation unit, materializing Record/Enum/Function
// declarations and their types into a *meta.Unit.
package parser

import (
	"fmt"

	"github.com/lux-cxx/godref/front"
	"github.com/lux-cxx/godref/meta"
)

// parseState threads the adapter, the in-progress Unit, the type interner,
// and the active Options through one Parse call's recursive builders.
type parseState struct {
	adapter front.Adapter
	unit    *meta.Unit
	intern  *interner
	opts    Options
	skip    map[string]bool
}

// Parse runs the discovery + materialization pipeline spec.md §4.2
// describes: open the translation unit, recurse namespaces (skipping
// Options.SkipNamespaces), build a Decl for every Record/Enum/Function
// found, intern every Type reached along the way, then validate the
// resulting Unit's invariants before returning it.
//
// A FrontEndError return means adapter.OpenTranslationUnit itself failed;
// an InvariantViolation means the Unit built successfully but failed
// Validate(). Both are fatal per spec.md §7 — everything else becomes a
// Diagnostic delivered to Options.OnDiagnostic.
func Parse(adapter front.Adapter, path string, opts Options) (Status, *meta.Unit, error) {
	if err := adapter.OpenTranslationUnit(path, opts.Commands); err != nil {
		return StatusFrontEndError, nil, &FrontEndError{Path: path, Err: err}
	}

	for _, diag := range adapter.Diagnostics() {
		opts.emit(Diagnostic{File: diag.File, Line: diag.Line, Message: diag.Message})
	}

	unit := meta.NewUnit(opts.Name, opts.Version)
	state := &parseState{
		adapter: adapter,
		unit:    unit,
		intern:  newInterner(unit, opts.InternCacheSize),
		opts:    opts,
		skip:    opts.skipSet(),
	}

	root := adapter.RootCursor()
	if root == nil {
		return StatusFrontEndError, nil, &FrontEndError{Path: path, Err: fmt.Errorf("adapter returned a nil root cursor")}
	}
	state.discover(root)

	if err := unit.Validate(); err != nil {
		return StatusInvariantViolation, nil, &InvariantViolation{Err: err}
	}

	return StatusOK, unit, nil
}
