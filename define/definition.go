package define

import (
	"fmt"

	"github.com/syssam/typeforge"
	"github.com/syssam/typeforge/member"
)

// State tracks the lifecycle of a type definition. Transitions are strictly
// forward; membership mutation is permitted only before Implementing.
type State int

// Lifecycle states.
const (
	Open State = iota
	Declaring
	Implementing
	Finalized
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Declaring:
		return "declaring"
	case Implementing:
		return "implementing"
	case Finalized:
		return "finalized"
	default:
		return "invalid"
	}
}

// TypeDefinition is the single authority for the shape of one type under
// construction. It owns every member descriptor exclusively; descriptors
// never outlive their definition. Mutation is single-threaded by contract:
// callers must not add, remove or override members concurrently.
type TypeDefinition struct {
	module    *ModuleDefinition
	name      string
	base      BaseType
	valueType bool
	attrs     member.ClassAttributes

	state  State
	failed bool

	fields  []*GeneratedField
	methods []*GeneratedMethod
	props   []*GeneratedProperty
	events  []*GeneratedEvent
	ctors   []*GeneratedConstructor

	inheritedMethods map[string]*InheritedMethod
	inheritedProps   map[string]*InheritedProperty
	inheritedEvents  map[string]*InheritedEvent
}

// NewClass creates a standalone class definition. base may be nil for a
// root class; attrs selects abstract/sealed modifiers.
func NewClass(name string, base BaseType, attrs member.ClassAttributes) (*TypeDefinition, error) {
	return newDefinition(nil, name, base, false, attrs)
}

// NewStruct creates a standalone struct (value type) definition. Structs
// have no base type and no dispatch hierarchy.
func NewStruct(name string) (*TypeDefinition, error) {
	return newDefinition(nil, name, nil, true, member.None)
}

func newDefinition(m *ModuleDefinition, name string, base BaseType, valueType bool, attrs member.ClassAttributes) (*TypeDefinition, error) {
	if !member.ValidIdent(name) {
		return nil, typeforge.NewArgumentError("name", name, "not a valid type identifier")
	}
	return &TypeDefinition{
		module:           m,
		name:             name,
		base:             base,
		valueType:        valueType,
		attrs:            attrs,
		inheritedMethods: make(map[string]*InheritedMethod),
		inheritedProps:   make(map[string]*InheritedProperty),
		inheritedEvents:  make(map[string]*InheritedEvent),
	}, nil
}

// Name returns the type name.
func (td *TypeDefinition) Name() string { return td.name }

// Base returns the base type, or nil.
func (td *TypeDefinition) Base() BaseType { return td.base }

// IsValueType reports whether the definition describes a struct.
func (td *TypeDefinition) IsValueType() bool { return td.valueType }

// Attributes returns the type-level modifiers.
func (td *TypeDefinition) Attributes() member.ClassAttributes { return td.attrs }

// State returns the current lifecycle state.
func (td *TypeDefinition) State() State { return td.state }

// Module returns the owning module definition, or nil for standalone
// definitions.
func (td *TypeDefinition) Module() *ModuleDefinition { return td.module }

// Fields returns the declared fields in declaration order.
func (td *TypeDefinition) Fields() []*GeneratedField { return td.fields }

// Methods returns the declared methods, including property and event
// accessors.
func (td *TypeDefinition) Methods() []*GeneratedMethod { return td.methods }

// Properties returns the declared properties.
func (td *TypeDefinition) Properties() []*GeneratedProperty { return td.props }

// Events returns the declared events.
func (td *TypeDefinition) Events() []*GeneratedEvent { return td.events }

// Constructors returns the declared constructors.
func (td *TypeDefinition) Constructors() []*GeneratedConstructor { return td.ctors }

// FieldNamed returns the declared field with the given name.
func (td *TypeDefinition) FieldNamed(name string) (*GeneratedField, bool) {
	for _, f := range td.fields {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

// MethodNamed returns the declared method matching name and, when params
// is non-nil, the exact ordered parameter-type sequence.
func (td *TypeDefinition) MethodNamed(name string, params []member.TypeInfo) (*GeneratedMethod, bool) {
	for _, m := range td.methods {
		if m.name != name {
			continue
		}
		if params != nil && !member.SignatureEqual(m.ParamTypes(), params) {
			continue
		}
		return m, true
	}
	return nil, false
}

// PropertyNamed returns the declared property with the given name.
func (td *TypeDefinition) PropertyNamed(name string) (*GeneratedProperty, bool) {
	for _, p := range td.props {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// EventNamed returns the declared event with the given name.
func (td *TypeDefinition) EventNamed(name string) (*GeneratedEvent, bool) {
	for _, e := range td.events {
		if e.name == name {
			return e, true
		}
	}
	return nil, false
}

// ConstructorWith returns the declared constructor with the exact ordered
// parameter-type sequence.
func (td *TypeDefinition) ConstructorWith(params []member.TypeInfo) (*GeneratedConstructor, bool) {
	for _, c := range td.ctors {
		if member.SignatureEqual(c.ParamTypes(), params) {
			return c, true
		}
	}
	return nil, false
}

// HasMethod reports whether a method with the given name and signature is
// resolvable on this definition or its base chain.
func (td *TypeDefinition) HasMethod(name string, params []member.TypeInfo) bool {
	if _, ok := td.MethodNamed(name, params); ok {
		return true
	}
	if td.base != nil {
		if _, ok := td.base.LookupMethod(name, params); ok {
			return true
		}
	}
	return false
}

func (td *TypeDefinition) ensureMutable() error {
	if td.failed {
		return typeforge.NewInvalidOperationError(td.name, "", "definition failed to finalize and must be discarded")
	}
	if td.state > Declaring {
		return typeforge.NewInvalidOperationError(td.name, "", fmt.Sprintf("membership is fixed in state %s", td.state))
	}
	return nil
}

// AddField declares an instance field. The optional construction-time value
// is supplied afterwards through GeneratedField.SetInitializer.
func (td *TypeDefinition) AddField(name string, typ member.TypeInfo, vis member.Visibility) (*GeneratedField, error) {
	return td.addField(name, typ, vis, false)
}

// AddStaticField declares a type-level field.
func (td *TypeDefinition) AddStaticField(name string, typ member.TypeInfo, vis member.Visibility) (*GeneratedField, error) {
	return td.addField(name, typ, vis, true)
}

func (td *TypeDefinition) addField(name string, typ member.TypeInfo, vis member.Visibility, static bool) (*GeneratedField, error) {
	if err := td.ensureMutable(); err != nil {
		return nil, err
	}
	if !member.ValidIdent(name) {
		return nil, typeforge.NewArgumentError("name", name, "not a valid member identifier")
	}
	if !typ.Valid() || typ.IsVoid() {
		return nil, typeforge.NewArgumentError("type", typ, "not a valid field type")
	}
	if _, dup := td.FieldNamed(name); dup {
		return nil, typeforge.NewDuplicateMemberError(td.name, "field", name, "")
	}
	f := &GeneratedField{td: td, name: name, typ: typ, vis: vis, static: static}
	td.fields = append(td.fields, f)
	return f, nil
}

// AddMethod declares a method. Exactly one of impl and fn must supply the
// body; abstract methods take neither. Override methods are created through
// OverrideMethod, never directly.
func (td *TypeDefinition) AddMethod(name string, params []Param, returns member.TypeInfo, vis member.Visibility, kind member.MethodKind, impl MethodImplementation, fn BodyFunc) (*GeneratedMethod, error) {
	if err := td.ensureMutable(); err != nil {
		return nil, err
	}
	if !member.ValidIdent(name) {
		return nil, typeforge.NewArgumentError("name", name, "not a valid member identifier")
	}
	if kind == member.Override {
		return nil, typeforge.NewInvalidOperationError(td.name, name, "overrides are created through OverrideMethod")
	}
	if err := checkBodySource(kind, impl != nil, fn != nil); err != nil {
		return nil, err
	}
	m := &GeneratedMethod{
		td:      td,
		name:    name,
		params:  params,
		returns: returns,
		vis:     vis,
		kind:    kind,
		impl:    impl,
		callback: fn,
	}
	if err := td.insertMethod(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (td *TypeDefinition) insertMethod(m *GeneratedMethod) error {
	for _, existing := range td.methods {
		if existing.name == m.name && member.SignatureEqual(existing.ParamTypes(), m.ParamTypes()) {
			return typeforge.NewDuplicateMemberError(td.name, "method", m.name, member.Signature(m.ParamTypes()))
		}
	}
	td.methods = append(td.methods, m)
	return nil
}

// checkBodySource enforces the strategy-xor-callback rule: a non-abstract
// member takes exactly one body source, an abstract member takes none.
func checkBodySource(kind member.Kind, hasImpl, hasFn bool) error {
	if kind == member.Abstract {
		if hasImpl || hasFn {
			return typeforge.NewArgumentError("impl", nil, "abstract members declare a signature only")
		}
		return nil
	}
	if hasImpl == hasFn {
		return typeforge.NewArgumentError("impl", nil, "exactly one of a strategy and a body callback is required")
	}
	return nil
}

// AddConstructor declares a constructor identified by its parameter
// signature. The body runs after the base construction step and the field
// initializers.
func (td *TypeDefinition) AddConstructor(params []Param, vis member.Visibility, impl ConstructorImplementation, fn BodyFunc) (*GeneratedConstructor, error) {
	if err := td.ensureMutable(); err != nil {
		return nil, err
	}
	if err := checkBodySource(member.Normal, impl != nil, fn != nil); err != nil {
		return nil, err
	}
	for _, existing := range td.ctors {
		if member.SignatureEqual(existing.ParamTypes(), ParamTypes(params)) {
			return nil, typeforge.NewDuplicateMemberError(td.name, "constructor", "", member.Signature(ParamTypes(params)))
		}
	}
	c := &GeneratedConstructor{td: td, params: params, vis: vis, impl: impl, callback: fn}
	td.ctors = append(td.ctors, c)
	return c, nil
}

// AddProperty declares a property with getter and setter accessors. For an
// Abstract kind only the signatures are declared and impl must be nil; all
// other kinds require a strategy.
func (td *TypeDefinition) AddProperty(name string, typ member.TypeInfo, kind member.PropertyKind, vis member.Visibility, impl PropertyImplementation) (*GeneratedProperty, error) {
	if err := td.ensureMutable(); err != nil {
		return nil, err
	}
	if !member.ValidIdent(name) {
		return nil, typeforge.NewArgumentError("name", name, "not a valid member identifier")
	}
	if !typ.Valid() || typ.IsVoid() {
		return nil, typeforge.NewArgumentError("type", typ, "not a valid property type")
	}
	if kind == member.Override {
		return nil, typeforge.NewInvalidOperationError(td.name, name, "overrides are created through OverrideProperty")
	}
	if kind == member.Abstract {
		if impl != nil {
			return nil, typeforge.NewArgumentError("impl", nil, "abstract members declare a signature only")
		}
	} else if impl == nil {
		return nil, typeforge.NewArgumentError("impl", nil, "a property strategy is required")
	}
	if _, dup := td.PropertyNamed(name); dup {
		return nil, typeforge.NewDuplicateMemberError(td.name, "property", name, "")
	}
	p := &GeneratedProperty{td: td, name: name, typ: typ, vis: vis, kind: kind, impl: impl}
	getter, setter, err := td.declareAccessors(p, name, typ, vis, kind, true, true)
	if err != nil {
		return nil, err
	}
	p.getter, p.setter = getter, setter
	td.props = append(td.props, p)
	return p, nil
}

// declareAccessors declares the accessor methods for a property or the
// override of one. Registration is atomic: a duplicate-accessor failure
// leaves no partial member behind.
func (td *TypeDefinition) declareAccessors(owner any, name string, typ member.TypeInfo, vis member.Visibility, kind member.Kind, wantGetter, wantSetter bool) (getter, setter *GeneratedMethod, err error) {
	if wantGetter {
		getter = &GeneratedMethod{
			td:         td,
			name:       GetterName(name),
			returns:    typ,
			vis:        vis,
			kind:       kind,
			accessorOf: owner,
		}
		if err := td.insertMethod(getter); err != nil {
			return nil, nil, err
		}
	}
	if wantSetter {
		setter = &GeneratedMethod{
			td:         td,
			name:       SetterName(name),
			params:     []Param{{Name: "value", Type: typ}},
			returns:    member.Void,
			vis:        vis,
			kind:       kind,
			accessorOf: owner,
		}
		if err := td.insertMethod(setter); err != nil {
			if getter != nil {
				td.dropMethod(getter)
			}
			return nil, nil, err
		}
	}
	return getter, setter, nil
}

// AddEvent declares an event with add/remove accessors. Non-abstract events
// require a strategy to declare the handler list and implement the
// accessors.
func (td *TypeDefinition) AddEvent(name string, handler member.TypeInfo, kind member.EventKind, vis member.Visibility, impl EventImplementation) (*GeneratedEvent, error) {
	if err := td.ensureMutable(); err != nil {
		return nil, err
	}
	if !member.ValidIdent(name) {
		return nil, typeforge.NewArgumentError("name", name, "not a valid member identifier")
	}
	if kind == member.Override {
		return nil, typeforge.NewInvalidOperationError(td.name, name, "overrides are created through OverrideEvent")
	}
	if kind == member.Abstract {
		if impl != nil {
			return nil, typeforge.NewArgumentError("impl", nil, "abstract members declare a signature only")
		}
	} else if impl == nil {
		return nil, typeforge.NewArgumentError("impl", nil, "an event strategy is required")
	}
	if _, dup := td.EventNamed(name); dup {
		return nil, typeforge.NewDuplicateMemberError(td.name, "event", name, "")
	}
	e := &GeneratedEvent{td: td, name: name, handler: handler, vis: vis, kind: kind, impl: impl}
	add, remove, err := td.declareEventAccessors(e, name, handler, vis, kind)
	if err != nil {
		return nil, err
	}
	e.add, e.remove = add, remove
	td.events = append(td.events, e)
	return e, nil
}

func (td *TypeDefinition) declareEventAccessors(owner *GeneratedEvent, name string, handler member.TypeInfo, vis member.Visibility, kind member.Kind) (add, remove *GeneratedMethod, err error) {
	add = &GeneratedMethod{
		td:         td,
		name:       AdderName(name),
		params:     []Param{{Name: "handler", Type: handler}},
		returns:    member.Void,
		vis:        vis,
		kind:       kind,
		accessorOf: owner,
	}
	if err := td.insertMethod(add); err != nil {
		return nil, nil, err
	}
	remove = &GeneratedMethod{
		td:         td,
		name:       RemoverName(name),
		params:     []Param{{Name: "handler", Type: handler}},
		returns:    member.Void,
		vis:        vis,
		kind:       kind,
		accessorOf: owner,
	}
	if err := td.insertMethod(remove); err != nil {
		td.dropMethod(add)
		return nil, nil, err
	}
	return add, remove, nil
}

// Accessor naming scheme. The engine reserves these spellings; declaring a
// method with a colliding name fails with DuplicateMemberError.

// GetterName returns the accessor method name of a property getter.
func GetterName(property string) string { return "get_" + property }

// SetterName returns the accessor method name of a property setter.
func SetterName(property string) string { return "set_" + property }

// AdderName returns the accessor method name of an event subscription.
func AdderName(event string) string { return "add_" + event }

// RemoverName returns the accessor method name of an event unsubscription.
func RemoverName(event string) string { return "remove_" + event }
