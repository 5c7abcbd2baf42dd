package generator

import "github.com/tidwall/sjson"

// Manifest summarizes one generate invocation: the run id, the Unit it
// rendered, and every file path it wrote, serialized with sjson rather than
// a struct + encoding/json so CustomFields (already flattened by gjson in
// customfields.go) can be folded in without a second marshal pass.
func buildManifest(runID, unitName string, files []string) (string, error) {
	doc := "{}"
	var err error
	if doc, err = sjson.Set(doc, "run_id", runID); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "unit", unitName); err != nil {
		return "", err
	}
	for _, f := range files {
		if doc, err = sjson.Set(doc, "files.-1", f); err != nil {
			return "", err
		}
	}
	return doc, nil
}

// Manifest builds the JSON manifest for one generate invocation against
// this Generator's already-parsed custom_fields_json, so a caller never has
// to re-marshal CustomFields itself.
func (g *Generator) Manifest(runID, unitName string, files []string) (string, error) {
	doc, err := buildManifest(runID, unitName, files)
	if err != nil {
		return "", err
	}
	for k, v := range g.customFields {
		if doc, err = sjson.Set(doc, "custom_fields."+k, v); err != nil {
			return "", err
		}
	}
	return doc, nil
}
