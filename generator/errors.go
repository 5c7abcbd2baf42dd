package generator

import "fmt"

// RenderError reports a failure rendering one output file from a Meta Unit,
// such as a template referring to data the Unit does not contain. An
// include root that cannot be resolved is reported by ResolveOutputPath as a
// plain error, not as a RenderError. Fatal for that output
// file only — spec.md §4.6/§7: "RenderError ... Fatal for that output file;
// other files still attempted."
type RenderError struct {
	Unit     string
	File     string
	DeclID   string
	Err      error
}

func (e *RenderError) Error() string {
	if e.DeclID != "" {
		return fmt.Sprintf("render %s (unit %s, decl %s): %v", e.File, e.Unit, e.DeclID, e.Err)
	}
	return fmt.Sprintf("render %s (unit %s): %v", e.File, e.Unit, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
