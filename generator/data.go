package generator

import (
	"sort"

	"github.com/lux-cxx/godref/depgraph"
	"github.com/lux-cxx/godref/meta"
)

// fieldData is the mustache-context shape for one Record field, matching
// spec.md §4.6's "arrays of field descriptors (name, offset, visibility,
// index, const flag)".
type fieldData struct {
	Name       string
	Type       string
	Offset     int64
	Index      int
	Visibility string
	Const      bool
	Static     bool
}

// callableData is the shared shape for a method, static method, free
// function, constructor, or destructor entry: name, mangled thunk name,
// parameter/return spellings, and the flags spec.md §3 lists for
// Function/Method/Constructor/Destructor.
type callableData struct {
	Name        string
	ThunkName   string
	ReturnType  string
	FuncPtrType string
	Params      []paramData
	IsConst     bool
	IsVirtual   bool
	IsStatic    bool
	HasReturn   bool
}

type paramData struct {
	Name  string
	Type  string
	Index int
	Last  bool
}

// recordData is the static-artifact context for one reflected record,
// matching spec.md §4.6's member list for Record: type/size/align/name/
// meta-kind/hash, field-type tuple, field descriptor array, annotation
// array, method/static-method name+type arrays.
type recordData struct {
	Name          string
	QualifiedName string
	ExtendedName  string
	PascalName    string // toIdentifier(Name), for the friendly type_meta alias
	RecordTag     string // "class" / "struct" / "union", for the forward-declare line
	Hash          uint64
	Size          int64
	Align         int64
	MetaKind      string
	Annotations       []string
	Fields            []fieldData
	FieldTypes        []tupleEntry
	Methods           []callableData
	StaticMethods     []callableData
	MethodTypes       []tupleEntry
	StaticMethodTypes []tupleEntry
	Constructors      []callableData
	Destructor        *callableData
	ForwardDecl       bool // this record shares an SCC with another type
}

// enumData is the static-artifact context for one reflected enum, matching
// spec.md §4.6's member list for Enum.
type enumData struct {
	Name          string
	QualifiedName string
	ExtendedName  string
	PascalName    string // toIdentifier(Name), for the friendly type_meta alias
	Hash          uint64
	Size          int64
	ValueType     string
	Scoped        bool
	Annotations   []string
	Elements      []enumElement
	Keys          []string
	Values        []string
}

type enumElement struct {
	Name     string
	Signed   int64
	Unsigned uint64
}

// tupleEntry is one element of a comma-separated tuple rendered by a
// logic-less template: Last is precomputed in Go so the template itself
// never has to express "is this the final element" logic, per spec.md
// §4.6's "no source C++ types leak into the engine" / logic-less-renderer
// contract.
type tupleEntry struct {
	Type string
	Last bool
}

// unitData is the top-level mustache context shared by every template this
// package renders: the Unit's identity plus whatever CustomFields
// (custom_fields_json) the config supplied.
type unitData struct {
	UnitName     string
	UnitVersion  string
	UnitHash     uint64
	RunID        string
	Records      []recordData
	Enums        []enumData
	Functions    []callableData
	CustomFields map[string]any
}

func visibilityString(v meta.Visibility) string {
	switch v {
	case meta.VisibilityProtected:
		return "protected"
	case meta.VisibilityPrivate:
		return "private"
	default:
		return "public"
	}
}

// recordTagString renders the C++ keyword a forward declaration of d needs
// ("class Foo;" vs "struct Foo;" vs "union Foo;"), used only for records
// that share an SCC with another type and therefore need a real forward
// declaration ahead of their definition (spec.md §4.4/§8 scenario 4), not
// just the definition itself.
func recordTagString(k meta.RecordKind) string {
	switch k {
	case meta.RecordClass:
		return "class"
	case meta.RecordUnion:
		return "union"
	default:
		return "struct"
	}
}

func typeSpelling(t *meta.Type) string {
	if t == nil {
		return "void"
	}
	return t.Spelling
}

func buildParams(params []*meta.Decl) []paramData {
	out := make([]paramData, len(params))
	for i, p := range params {
		out[i] = paramData{Name: p.Name, Type: typeSpelling(p.Type), Index: p.Index, Last: i == len(params)-1}
	}
	return out
}

// funcPtrSpelling renders the function-pointer type spelling a static
// artifact's method/static-method type tuple needs, e.g.
// "int (Demo::Point::*)(int, double) const" for a bound method or
// "int (*)(int, double)" for a static method / free function.
func funcPtrSpelling(owner, ret string, params []paramData, static, isConst bool) string {
	paramList := ""
	for i, p := range params {
		if i > 0 {
			paramList += ", "
		}
		paramList += p.Type
	}
	qualifier := ""
	if isConst {
		qualifier = " const"
	}
	if owner == "" || static {
		return ret + " (*)(" + paramList + ")" + qualifier
	}
	return ret + " (" + owner + "::*)(" + paramList + ")" + qualifier
}

func buildCallable(d *meta.Decl, ownerQualified, extendedName, suffix string) callableData {
	ret := typeSpelling(d.ReturnType)
	params := buildParams(d.Parameters)
	// A free function's extendedName is already its own mangled qualified
	// name, so the thunk is "<extended_name>_bridge" with no separate
	// member component (spec.md §8 scenario 3: "f_bridge", not
	// "f_f_bridge"). A method/ctor/dtor's extendedName is its *owning
	// record's* mangled qualified name, so the member name is still needed.
	member := d.Name
	if suffix == "bridge" {
		member = ""
	}
	return callableData{
		Name:        d.Name,
		ThunkName:   thunkName(extendedName, member, suffix),
		ReturnType:  ret,
		FuncPtrType: funcPtrSpelling(ownerQualified, ret, params, d.IsStatic, d.IsConst),
		Params:      params,
		IsConst:     d.IsConst,
		IsVirtual:   d.IsVirtual,
		IsStatic:    d.IsStatic,
		HasReturn:   d.ReturnType != nil && ret != "void",
	}
}

// sortDeclsByID sorts a slice of *meta.Decl by ID (the USR-like textual
// identifier), per spec.md §4.6's "methods are sorted by their textual
// identifier" deterministic-output rule.
func sortDeclsByID(decls []*meta.Decl) []*meta.Decl {
	out := append([]*meta.Decl(nil), decls...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// buildRecordData shapes one marked Record decl into the static/dynamic
// template context, in declared field order (spec.md §4.6: "within a
// record, fields are in declared order") and methods sorted by textual id.
func buildRecordData(d *meta.Decl, cyclic map[string]bool) recordData {
	ext := mangle(d.QualifiedName)

	fields := make([]fieldData, len(d.Fields))
	fieldTypes := make([]tupleEntry, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = fieldData{
			Name:       f.Name,
			Type:       typeSpelling(f.Type),
			Offset:     f.Offset,
			Index:      f.Index,
			Visibility: visibilityString(f.Visibility),
			Const:      f.Const,
			Static:     f.Static,
		}
		fieldTypes[i] = tupleEntry{Type: typeSpelling(f.Type), Last: i == len(d.Fields)-1}
	}

	methods := make([]callableData, 0, len(d.Methods))
	for _, m := range sortDeclsByID(d.Methods) {
		methods = append(methods, buildCallable(m, d.QualifiedName, ext, "invoker"))
	}
	statics := make([]callableData, 0, len(d.StaticMethods))
	for _, m := range sortDeclsByID(d.StaticMethods) {
		statics = append(statics, buildCallable(m, d.QualifiedName, ext, "invoker"))
	}
	ctors := make([]callableData, 0, len(d.Constructors))
	for _, c := range d.Constructors {
		ctors = append(ctors, buildCallable(c, d.QualifiedName, ext, "ctor"))
	}

	var dtor *callableData
	if d.Destructor != nil {
		c := buildCallable(d.Destructor, d.QualifiedName, ext, "dtor")
		dtor = &c
	}

	return recordData{
		Name:              d.Name,
		QualifiedName:     d.QualifiedName,
		ExtendedName:      ext,
		PascalName:        toIdentifier(d.Name),
		RecordTag:         recordTagString(d.RecordKind),
		Hash:              d.Hash,
		Size:              d.Size,
		Align:             d.Align,
		MetaKind:          "Record",
		Annotations:       d.Annotations,
		Fields:            fields,
		FieldTypes:        fieldTypes,
		Methods:           methods,
		StaticMethods:     statics,
		MethodTypes:       tupleEntries(methods),
		StaticMethodTypes: tupleEntries(statics),
		Constructors:      ctors,
		Destructor:        dtor,
		ForwardDecl:       cyclic[d.ID],
	}
}

// tupleEntries projects a callableData slice's FuncPtrType into the
// trailing-comma-aware tuple shape the static artifact's method/
// static-method type tuples render with.
func tupleEntries(methods []callableData) []tupleEntry {
	out := make([]tupleEntry, len(methods))
	for i, m := range methods {
		out[i] = tupleEntry{Type: m.FuncPtrType, Last: i == len(methods)-1}
	}
	return out
}

// buildEnumData shapes one marked Enum decl into the static-artifact
// context, preserving declaration order for elements/keys/values.
func buildEnumData(d *meta.Decl) enumData {
	elements := make([]enumElement, len(d.Enumerators))
	keys := make([]string, len(d.Enumerators))
	values := make([]string, len(d.Enumerators))
	for i, e := range d.Enumerators {
		elements[i] = enumElement{Name: e.Name, Signed: e.Signed, Unsigned: e.Unsigned}
		keys[i] = e.Name
		values[i] = formatSigned(e.Signed)
	}
	return enumData{
		Name:          d.Name,
		QualifiedName: d.QualifiedName,
		ExtendedName:  mangle(d.QualifiedName),
		PascalName:    toIdentifier(d.Name),
		Hash:          d.Hash,
		Size:          d.UnderlyingType.Size,
		ValueType:     typeSpelling(d.UnderlyingType),
		Scoped:        d.Scoped,
		Annotations:   d.Annotations,
		Elements:      elements,
		Keys:          keys,
		Values:        values,
	}
}

func formatSigned(v int64) string {
	return intToString(v)
}

func intToString(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// buildFunctionData shapes one marked free Function decl into the dynamic
// free-function-registration context.
func buildFunctionData(d *meta.Decl) callableData {
	return buildCallable(d, "", mangle(d.QualifiedName), "bridge")
}

// cyclicDeclIDs walks the depgraph.Order output for types and returns the
// set of Decl ids belonging to an SCC of size > 1 — spec.md §4.6/§8's
// "forward declarations for the whole SCC before any definition in it."
func cyclicDeclIDs(unit *meta.Unit) map[string]bool {
	order := depgraph.Order(unit.Types())
	set := make(map[string]bool)
	for _, scc := range order {
		if !scc.Cyclic {
			continue
		}
		for _, t := range scc.Types {
			if t.Declaration != nil {
				set[t.Declaration.ID] = true
			}
		}
	}
	return set
}

// buildUnitData assembles the full template context for unit, in the
// emission order depgraph.Order derives from the type dependency graph:
// records/enums are emitted in the order their own Record/Enum Type node
// appears across the SCC sequence, so definitions precede uses wherever
// the graph allows it (spec.md §4.6's "order of records/enums/functions
// follows the emission order from §4.4").
func buildUnitData(unit *meta.Unit, runID string, customFields map[string]any) unitData {
	cyclic := cyclicDeclIDs(unit)
	order := depgraph.Order(unit.Types())

	recordByID := make(map[string]*meta.Decl, len(unit.MarkedRecords()))
	for _, r := range unit.MarkedRecords() {
		recordByID[r.ID] = r
	}
	enumByID := make(map[string]*meta.Decl, len(unit.MarkedEnums()))
	for _, e := range unit.MarkedEnums() {
		enumByID[e.ID] = e
	}

	var records []recordData
	var enums []enumData
	seenRecord := make(map[string]bool)
	seenEnum := make(map[string]bool)

	for _, scc := range order {
		for _, t := range scc.Types {
			if t.Declaration == nil {
				continue
			}
			id := t.Declaration.ID
			switch t.Kind {
			case meta.TypeRecord:
				if r, ok := recordByID[id]; ok && !seenRecord[id] {
					seenRecord[id] = true
					records = append(records, buildRecordData(r, cyclic))
				}
			case meta.TypeEnum:
				if e, ok := enumByID[id]; ok && !seenEnum[id] {
					seenEnum[id] = true
					enums = append(enums, buildEnumData(e))
				}
			}
		}
	}

	functions := make([]callableData, 0, len(unit.MarkedFunctions()))
	for _, f := range unit.MarkedFunctions() {
		functions = append(functions, buildFunctionData(f))
	}

	return unitData{
		UnitName:     unit.Name,
		UnitVersion:  unit.Version,
		UnitHash:     unit.ID,
		RunID:        runID,
		Records:      records,
		Enums:        enums,
		Functions:    functions,
		CustomFields: customFields,
	}
}
