package parser

import "fmt"

// FrontEndError wraps a failure reported by the front.Adapter itself
// (failed to open a translation unit, fatal parse error) — always fatal to
// Parse, per spec.md §7's propagation policy.
type FrontEndError struct {
	Path string
	Err  error
}

func (e *FrontEndError) Error() string {
	return fmt.Sprintf("front end: %s: %v", e.Path, e.Err)
}

func (e *FrontEndError) Unwrap() error { return e.Err }

// InvariantViolation reports a broken Meta Unit invariant discovered at the
// end of parsing (spec.md §3) — fatal, since a dangling cross-reference
// means the materializer itself has a bug, not the input source.
type InvariantViolation struct {
	Err error
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %v", e.Err)
}

func (e *InvariantViolation) Unwrap() error { return e.Err }

// Diagnostic is a non-fatal per-declaration problem (unsupported construct,
// skipped annotation, ...), routed to Options.OnDiagnostic rather than
// aborting the parse.
type Diagnostic struct {
	File    string
	Line    int
	Message string
}

// UnsupportedConstruct marks a declaration or type the materializer
// recognized but declined to build a full node for (spec.md §4.2/§4.4's
// "unsupported" escape hatch). Parse does not construct one; the only
// Diagnostics it emits are those the front end reports.
type UnsupportedConstruct struct {
	QualifiedName string
	Reason        string
}

func (e *UnsupportedConstruct) Error() string {
	return fmt.Sprintf("unsupported construct %q: %s", e.QualifiedName, e.Reason)
}
