package generator

import "embed"

// templatesFS holds the built-in template set: exactly one static template
// per reflected kind (record, enum) and two dynamic templates
// (record registrations, free-function registrations), per spec.md §9 open
// question (c). Config.TemplatePath overrides individual files by basename
// without requiring every template to be supplied.
//
//go:embed templates/*.mustache
var templatesFS embed.FS

const (
	recordTemplate        = "templates/record.mustache"
	enumTemplate          = "templates/enum.mustache"
	dynamicRecordTemplate = "templates/dynamic_record.mustache"
	dynamicFuncTemplate   = "templates/dynamic_func.mustache"
)
