package generator

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// parseCustomFields decodes Config.CustomFieldsJSON (spec.md §6's opaque
// "custom_fields_json" key) into the flat map merged into every template's
// render context. Queried with gjson rather than a hand-rolled
// map[string]any walk so nested paths ("service.name") work the same way a
// template author would expect from any other gjson-backed config surface.
func parseCustomFields(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	result := gjson.ParseBytes(raw)
	if !result.IsObject() {
		return nil
	}
	out := make(map[string]any)
	result.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = value.Value()
		return true
	})
	return out
}
