// Package load builds type definitions from external descriptions: YAML
// documents describing a module, and compiled Go packages whose types can
// serve as metadata-only bases.
package load

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/typeforge/define"
	"github.com/syssam/typeforge/impl"
	"github.com/syssam/typeforge/member"
	"github.com/syssam/typeforge/object"
)

// File is the top-level YAML document.
type File struct {
	Module string    `yaml:"module"`
	Types  []TypeDoc `yaml:"types"`
}

// TypeDoc describes one type. Types are finalized in document order, so a
// base may name any type that appears earlier in the same file.
type TypeDoc struct {
	Name         string     `yaml:"name"`
	Struct       bool       `yaml:"struct,omitempty"`
	Base         string     `yaml:"base,omitempty"`
	Abstract     bool       `yaml:"abstract,omitempty"`
	Sealed       bool       `yaml:"sealed,omitempty"`
	Fields       []FieldDoc `yaml:"fields,omitempty"`
	Properties   []PropDoc  `yaml:"properties,omitempty"`
	Events       []EventDoc `yaml:"events,omitempty"`
	Methods      []MethDoc  `yaml:"methods,omitempty"`
	Constructors []CtorDoc  `yaml:"constructors,omitempty"`
}

// FieldDoc describes a field.
type FieldDoc struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Visibility string `yaml:"visibility,omitempty"`
	Static     bool   `yaml:"static,omitempty"`
	Initial    any    `yaml:"initial,omitempty"`
	HasInitial bool   `yaml:"-"`
}

// UnmarshalYAML records whether an initial value was present, so that an
// explicit null or zero still counts as an initializer.
func (f *FieldDoc) UnmarshalYAML(node *yaml.Node) error {
	type plain FieldDoc
	if err := node.Decode((*plain)(f)); err != nil {
		return err
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "initial" {
			f.HasInitial = true
		}
	}
	return nil
}

// PropDoc describes a property. Strategy selects the body source: "simple"
// (the default) stores into a backing field, "notify" additionally raises
// OnPropertyChanged when the stored value changes. Backing names a declared
// field to reuse; when absent the strategy declares its own.
type PropDoc struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Kind       string `yaml:"kind,omitempty"`
	Visibility string `yaml:"visibility,omitempty"`
	Strategy   string `yaml:"strategy,omitempty"`
	Backing    string `yaml:"backing,omitempty"`
}

// EventDoc describes an event. The handler type is fixed to the engine's
// variadic handler form.
type EventDoc struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind,omitempty"`
	Visibility string `yaml:"visibility,omitempty"`
}

// MethDoc describes a method. YAML carries no body language, so only
// abstract methods can be described declaratively.
type MethDoc struct {
	Name       string   `yaml:"name"`
	Params     []string `yaml:"params,omitempty"`
	Returns    string   `yaml:"returns,omitempty"`
	Kind       string   `yaml:"kind,omitempty"`
	Visibility string   `yaml:"visibility,omitempty"`
}

// CtorDoc describes a constructor. Sets names the fields the parameters are
// stored into, in order; without it the body is empty.
type CtorDoc struct {
	Params     []string `yaml:"params,omitempty"`
	Visibility string   `yaml:"visibility,omitempty"`
	Sets       []string `yaml:"sets,omitempty"`
}

// Decode parses a YAML module document.
func Decode(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding module document: %w", err)
	}
	if f.Module == "" {
		return nil, fmt.Errorf("module document declares no module name")
	}
	return &f, nil
}

// Build creates a module from a decoded document and finalizes every type in
// document order. The built types are available through BuiltTypes on the
// returned module.
func Build(f *File) (*define.ModuleDefinition, error) {
	m, err := define.NewModule(f.Module)
	if err != nil {
		return nil, err
	}
	built := make(map[string]*object.Type, len(f.Types))
	for _, doc := range f.Types {
		t, err := buildType(m, built, doc)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", doc.Name, err)
		}
		built[doc.Name] = t
	}
	return m, nil
}

// Read decodes and builds in one step.
func Read(r io.Reader) (*define.ModuleDefinition, error) {
	f, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return Build(f)
}

func buildType(m *define.ModuleDefinition, built map[string]*object.Type, doc TypeDoc) (*object.Type, error) {
	var td *define.TypeDefinition
	var err error
	if doc.Struct {
		if doc.Base != "" || doc.Abstract || doc.Sealed {
			return nil, fmt.Errorf("structs take no base, abstract or sealed modifiers")
		}
		td, err = m.NewStruct(doc.Name)
	} else {
		var base define.BaseType
		if doc.Base != "" {
			bt, ok := built[doc.Base]
			if !ok {
				return nil, fmt.Errorf("base %q is not defined earlier in the document", doc.Base)
			}
			base = bt
		}
		attrs := member.None
		switch {
		case doc.Abstract && doc.Sealed:
			return nil, fmt.Errorf("a type cannot be both abstract and sealed")
		case doc.Abstract:
			attrs = member.AbstractClass
		case doc.Sealed:
			attrs = member.Sealed
		}
		td, err = m.NewClass(doc.Name, base, attrs)
	}
	if err != nil {
		return nil, err
	}
	if err := populate(td, doc); err != nil {
		return nil, err
	}
	return td.Finalize()
}

func populate(td *define.TypeDefinition, doc TypeDoc) error {
	for _, fd := range doc.Fields {
		typ, err := ParseType(fd.Type)
		if err != nil {
			return fmt.Errorf("field %s: %w", fd.Name, err)
		}
		vis, err := parseVisibility(fd.Visibility)
		if err != nil {
			return fmt.Errorf("field %s: %w", fd.Name, err)
		}
		var f *define.GeneratedField
		if fd.Static {
			f, err = td.AddStaticField(fd.Name, typ, vis)
		} else {
			f, err = td.AddField(fd.Name, typ, vis)
		}
		if err != nil {
			return err
		}
		if fd.HasInitial {
			if err := f.SetInitializer(fd.Initial); err != nil {
				return err
			}
		}
	}
	for _, pd := range doc.Properties {
		if err := addProperty(td, pd); err != nil {
			return fmt.Errorf("property %s: %w", pd.Name, err)
		}
	}
	for _, ed := range doc.Events {
		kind, err := parseKind(ed.Kind)
		if err != nil {
			return fmt.Errorf("event %s: %w", ed.Name, err)
		}
		vis, err := parseVisibility(ed.Visibility)
		if err != nil {
			return fmt.Errorf("event %s: %w", ed.Name, err)
		}
		var strategy define.EventImplementation
		if kind != member.Abstract {
			strategy = impl.DefaultEvent()
		}
		if _, err := td.AddEvent(ed.Name, member.Any, kind, vis, strategy); err != nil {
			return err
		}
	}
	for _, md := range doc.Methods {
		if err := addMethod(td, md); err != nil {
			return fmt.Errorf("method %s: %w", md.Name, err)
		}
	}
	for i, cd := range doc.Constructors {
		if err := addConstructor(td, cd); err != nil {
			return fmt.Errorf("constructor %d: %w", i, err)
		}
	}
	return nil
}

func addProperty(td *define.TypeDefinition, pd PropDoc) error {
	typ, err := ParseType(pd.Type)
	if err != nil {
		return err
	}
	kind, err := parseKind(pd.Kind)
	if err != nil {
		return err
	}
	vis, err := parseVisibility(pd.Visibility)
	if err != nil {
		return err
	}
	var strategy define.PropertyImplementation
	if kind != member.Abstract {
		var backing *define.GeneratedField
		if pd.Backing != "" {
			f, ok := td.FieldNamed(pd.Backing)
			if !ok {
				return fmt.Errorf("backing field %q is not declared", pd.Backing)
			}
			backing = f
		}
		switch pd.Strategy {
		case "", "simple":
			if backing != nil {
				strategy = impl.SimplePropertyBackedBy(backing)
			} else {
				strategy = impl.SimpleProperty()
			}
		case "notify":
			if backing != nil {
				strategy = impl.NotifyingPropertyBackedBy(backing)
			} else {
				strategy = impl.NotifyingProperty()
			}
		default:
			return fmt.Errorf("unknown property strategy %q", pd.Strategy)
		}
	} else if pd.Strategy != "" || pd.Backing != "" {
		return fmt.Errorf("abstract properties declare a signature only")
	}
	_, err = td.AddProperty(pd.Name, typ, kind, vis, strategy)
	return err
}

func addMethod(td *define.TypeDefinition, md MethDoc) error {
	kind, err := parseKind(md.Kind)
	if err != nil {
		return err
	}
	if kind != member.Abstract {
		return fmt.Errorf("method bodies cannot be described declaratively; only abstract methods are permitted")
	}
	vis, err := parseVisibility(md.Visibility)
	if err != nil {
		return err
	}
	params, err := parseParams(md.Params)
	if err != nil {
		return err
	}
	returns := member.Void
	if md.Returns != "" {
		returns, err = ParseType(md.Returns)
		if err != nil {
			return err
		}
	}
	_, err = td.AddMethod(md.Name, params, returns, vis, kind, nil, nil)
	return err
}

func addConstructor(td *define.TypeDefinition, cd CtorDoc) error {
	vis, err := parseVisibility(cd.Visibility)
	if err != nil {
		return err
	}
	params, err := parseParams(cd.Params)
	if err != nil {
		return err
	}
	var strategy define.ConstructorImplementation
	if len(cd.Sets) > 0 {
		fields := make([]*define.GeneratedField, len(cd.Sets))
		for i, name := range cd.Sets {
			f, ok := td.FieldNamed(name)
			if !ok {
				return fmt.Errorf("set target %q is not a declared field", name)
			}
			fields[i] = f
		}
		strategy = impl.SettingConstructor(fields...)
	} else {
		strategy = impl.DefaultConstructor()
	}
	_, err = td.AddConstructor(params, vis, strategy, nil)
	return err
}

func parseParams(specs []string) ([]define.Param, error) {
	params := make([]define.Param, len(specs))
	for i, s := range specs {
		typ, err := ParseType(s)
		if err != nil {
			return nil, err
		}
		params[i] = define.Param{Name: fmt.Sprintf("p%d", i), Type: typ}
	}
	return params, nil
}

// ParseType resolves a YAML type spelling. The built-in categories use their
// Go spellings; anything else is treated as a named type, with an optional
// package path before the final dot.
func ParseType(s string) (member.TypeInfo, error) {
	switch s {
	case "bool":
		return member.Bool, nil
	case "int":
		return member.Int, nil
	case "int64":
		return member.Int64, nil
	case "float64":
		return member.Float64, nil
	case "string":
		return member.String, nil
	case "bytes", "[]byte":
		return member.Bytes, nil
	case "decimal":
		return member.Decimal, nil
	case "time":
		return member.Time, nil
	case "any":
		return member.Any, nil
	case "":
		return member.TypeInfo{}, fmt.Errorf("empty type")
	}
	if i := strings.LastIndex(s, "."); i > 0 {
		return member.Named(s[i+1:], s[:i]), nil
	}
	return member.Named(s, ""), nil
}

func parseVisibility(s string) (member.Visibility, error) {
	switch s {
	case "", "public":
		return member.Public, nil
	case "private":
		return member.Private, nil
	case "internal":
		return member.Internal, nil
	case "protected":
		return member.Protected, nil
	case "protected_internal":
		return member.ProtectedInternal, nil
	default:
		return member.NotSpecified, fmt.Errorf("unknown visibility %q", s)
	}
}

func parseKind(s string) (member.Kind, error) {
	switch s {
	case "", "normal":
		return member.Normal, nil
	case "static":
		return member.Static, nil
	case "virtual":
		return member.Virtual, nil
	case "abstract":
		return member.Abstract, nil
	default:
		return member.Normal, fmt.Errorf("unknown kind %q", s)
	}
}
