// Package generator implements the Generator Core: it renders the static
// and dynamic reflection artifacts spec.md §4.6 defines from a *meta.Unit,
// via a logic-less mustache templating layer.
package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cbroglie/mustache"

	"github.com/lux-cxx/godref/meta"
)

// Artifact is one rendered output file, not yet written to disk.
type Artifact struct {
	Path    string
	Content string
}

// Generator renders a Config's artifact set from a *meta.Unit. The zero
// value is not usable; construct with New.
type Generator struct {
	cfg          Config
	customFields map[string]any
}

// New builds a Generator from cfg, pre-parsing cfg.CustomFieldsJSON once so
// every rendered file shares the same parsed context.
func New(cfg Config) *Generator {
	return &Generator{cfg: cfg, customFields: parseCustomFields(cfg.CustomFieldsJSON)}
}

func (g *Generator) templateText(name string) (string, error) {
	if g.cfg.TemplatePath != "" {
		override := filepath.Join(g.cfg.TemplatePath, filepath.Base(name))
		if data, err := os.ReadFile(override); err == nil {
			return string(data), nil
		}
	}
	data, err := templatesFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("builtin template %s: %w", name, err)
	}
	return string(data), nil
}

func (g *Generator) render(templateName string, data any) (string, error) {
	text, err := g.templateText(templateName)
	if err != nil {
		return "", err
	}
	return mustache.Render(text, data)
}

// Render produces the static artifact and the two dynamic artifacts for
// unit, under outputPath (the static artifact's path; dynamic paths are
// derived from it per spec.md §6's naming rule). runID is stamped into the
// rendered artifacts' header comments; RenderError itself does not carry it.
//
// A RenderError for one artifact does not prevent the others from being
// attempted, per spec.md §4.6/§7: "Fatal for that output file; other files
// still attempted."
func (g *Generator) Render(unit *meta.Unit, outputPath, runID string) ([]Artifact, []error) {
	data := buildUnitData(unit, runID, g.customFields)

	var artifacts []Artifact
	var errs []error

	staticBody, err := g.renderStatic(data)
	if err != nil {
		errs = append(errs, &RenderError{Unit: unit.Name, File: outputPath, Err: err})
	} else {
		artifacts = append(artifacts, Artifact{Path: outputPath, Content: staticBody})
	}

	recordPath := dynamicRecordPath(outputPath)
	recordBody, err := g.render(dynamicRecordTemplate, data)
	if err != nil {
		errs = append(errs, &RenderError{Unit: unit.Name, File: recordPath, Err: err})
	} else {
		artifacts = append(artifacts, Artifact{Path: recordPath, Content: recordBody})
	}

	funcPath := dynamicFuncPath(outputPath)
	funcBody, err := g.render(dynamicFuncTemplate, data)
	if err != nil {
		errs = append(errs, &RenderError{Unit: unit.Name, File: funcPath, Err: err})
	} else {
		artifacts = append(artifacts, Artifact{Path: funcPath, Content: funcBody})
	}

	return artifacts, errs
}

// renderStatic concatenates one record.mustache / enum.mustache rendering
// per reflected record/enum, in the Unit's emission order, into the single
// static-artifact header spec.md §4.6 describes ("one header per Meta
// Unit").
func (g *Generator) renderStatic(data unitData) (string, error) {
	out := fmt.Sprintf("#pragma once\n// Generated by godref for unit %q (run %s).\n\n", data.UnitName, data.RunID)

	for _, r := range data.Records {
		if r.ForwardDecl {
			out += fmt.Sprintf("%s %s;\n", r.RecordTag, r.QualifiedName)
		}
		ctx := recordTemplateContext(data, r)
		body, err := g.render(recordTemplate, ctx)
		if err != nil {
			return "", fmt.Errorf("record %s: %w", r.QualifiedName, err)
		}
		out += body + "\n"
	}
	for _, e := range data.Enums {
		ctx := enumTemplateContext(data, e)
		body, err := g.render(enumTemplate, ctx)
		if err != nil {
			return "", fmt.Errorf("enum %s: %w", e.QualifiedName, err)
		}
		out += body + "\n"
	}
	return out, nil
}

// recordTemplateContext/enumTemplateContext flatten the shared unit-level
// fields (UnitName/UnitVersion/RunID/CustomFields) alongside one record/enum's own
// fields, since mustache resolves a struct's exported fields by name and
// these templates reference both levels.
func recordTemplateContext(u unitData, r recordData) map[string]any {
	return map[string]any{
		"UnitName": u.UnitName, "UnitVersion": u.UnitVersion, "RunID": u.RunID,
		"Name": r.Name, "QualifiedName": r.QualifiedName, "ExtendedName": r.ExtendedName,
		"PascalName": r.PascalName,
		"Hash": r.Hash, "Size": r.Size, "Align": r.Align, "MetaKind": r.MetaKind,
		"Annotations": r.Annotations, "Fields": r.Fields, "FieldTypes": r.FieldTypes,
		"Methods": r.Methods, "StaticMethods": r.StaticMethods,
		"MethodTypes": r.MethodTypes, "StaticMethodTypes": r.StaticMethodTypes,
		"ForwardDecl": r.ForwardDecl,
		"CustomFields": u.CustomFields,
	}
}

func enumTemplateContext(u unitData, e enumData) map[string]any {
	return map[string]any{
		"UnitName": u.UnitName, "UnitVersion": u.UnitVersion, "RunID": u.RunID,
		"Name": e.Name, "QualifiedName": e.QualifiedName, "ExtendedName": e.ExtendedName,
		"PascalName": e.PascalName,
		"Hash": e.Hash, "Size": e.Size, "ValueType": e.ValueType, "Scoped": e.Scoped,
		"Annotations": e.Annotations, "Elements": e.Elements, "Keys": e.Keys, "Values": e.Values,
		"CustomFields": u.CustomFields,
	}
}
