// Package object holds the runtime representation of finalized types:
// immutable type handles, instantiable objects with field storage, virtual
// dispatch across the base chain, property access and event raising.
package object

import (
	"fmt"

	"github.com/syssam/typeforge/emit"
	"github.com/syssam/typeforge/member"
)

// Handler is the callable shape stored in event handler lists.
type Handler func(args ...any)

// Field is a finalized field: metadata plus the optional initializer value
// applied at construction time.
type Field struct {
	Meta    member.FieldMeta
	Initial any
}

// Method is a finalized method. Body is nil only for abstract methods,
// which can never be reached through dispatch on an instantiable type.
type Method struct {
	Meta member.MethodMeta
	Body *emit.Body
}

// Property is a finalized property; accessors are regular methods reached
// through the recorded accessor names.
type Property struct {
	Meta   member.PropertyMeta
	Getter string // accessor method name, empty if absent
	Setter string
}

// Event is a finalized event; Add/Remove are accessor method names and
// Field names the handler-list backing field.
type Event struct {
	Meta   member.EventMeta
	Add    string
	Remove string
	Field  string
}

// Constructor is a finalized constructor body.
type Constructor struct {
	Meta member.ConstructorMeta
	Body *emit.Body
}

// Type is the immutable handle for one finalized type. It is produced by a
// type definition's Finalize and is never mutated afterwards; concurrent
// reads are safe.
type Type struct {
	name      string
	base      *Type
	valueType bool
	attrs     member.ClassAttributes
	module    string // owning module container name

	fields   []*Field // declaration order
	methods  []*Method
	props    []*Property
	events   []*Event
	ctors    []*Constructor
	handlers map[string]bool // handler-list field names

	statics map[string]any // static field storage
}

// Shape carries everything a definition hands over when committing a type.
type Shape struct {
	Name      string
	Base      *Type
	ValueType bool
	Attrs     member.ClassAttributes
	Module    string

	Fields       []*Field
	Methods      []*Method
	Properties   []*Property
	Events       []*Event
	Constructors []*Constructor
}

// NewType builds an immutable type handle from a committed shape.
func NewType(s Shape) *Type {
	t := &Type{
		name:      s.Name,
		base:      s.Base,
		valueType: s.ValueType,
		attrs:     s.Attrs,
		module:    s.Module,
		fields:    s.Fields,
		methods:   s.Methods,
		props:     s.Properties,
		events:    s.Events,
		ctors:     s.Constructors,
		handlers:  make(map[string]bool),
		statics:   make(map[string]any),
	}
	for _, e := range t.events {
		t.handlers[e.Field] = true
	}
	for _, f := range t.fields {
		if f.Meta.Static {
			v := f.Initial
			if v == nil && !f.Meta.HasInitial {
				v = member.Zero(f.Meta.Type)
			}
			t.statics[f.Meta.Name] = v
		}
	}
	return t
}

// Name returns the type name.
func (t *Type) Name() string { return t.name }

// Module returns the name of the owning module container.
func (t *Type) Module() string { return t.module }

// Base returns the base type, or nil.
func (t *Type) Base() *Type { return t.base }

// IsValueType reports whether the type was defined as a struct.
func (t *Type) IsValueType() bool { return t.valueType }

// Attributes returns the type-level modifiers.
func (t *Type) Attributes() member.ClassAttributes { return t.attrs }

// IsAbstract reports whether instances of the type cannot be created.
func (t *Type) IsAbstract() bool { return t.attrs == member.AbstractClass }

// Fields returns the declared fields in declaration order.
func (t *Type) Fields() []*Field { return t.fields }

// Methods returns the declared methods.
func (t *Type) Methods() []*Method { return t.methods }

// Properties returns the declared properties.
func (t *Type) Properties() []*Property { return t.props }

// Events returns the declared events.
func (t *Type) Events() []*Event { return t.events }

// Constructors returns the declared constructors.
func (t *Type) Constructors() []*Constructor { return t.ctors }

// LookupField resolves a field by name on this type or its base chain.
func (t *Type) LookupField(name string) (member.FieldMeta, bool) {
	for cur := t; cur != nil; cur = cur.base {
		for _, f := range cur.fields {
			if f.Meta.Name == name {
				return f.Meta, true
			}
		}
	}
	return member.FieldMeta{}, false
}

// LookupMethod resolves the most-derived method matching name and, when
// params is non-nil, the exact ordered parameter-type sequence.
func (t *Type) LookupMethod(name string, params []member.TypeInfo) (member.MethodMeta, bool) {
	for cur := t; cur != nil; cur = cur.base {
		for _, m := range cur.methods {
			if m.Meta.Name != name {
				continue
			}
			if params != nil && !member.SignatureEqual(m.Meta.Params, params) {
				continue
			}
			return m.Meta, true
		}
	}
	return member.MethodMeta{}, false
}

// LookupProperty resolves the most-derived property with the given name.
func (t *Type) LookupProperty(name string) (member.PropertyMeta, bool) {
	for cur := t; cur != nil; cur = cur.base {
		for _, p := range cur.props {
			if p.Meta.Name == name {
				return p.Meta, true
			}
		}
	}
	return member.PropertyMeta{}, false
}

// LookupEvent resolves the most-derived event with the given name.
func (t *Type) LookupEvent(name string) (member.EventMeta, bool) {
	for cur := t; cur != nil; cur = cur.base {
		for _, e := range cur.events {
			if e.Meta.Name == name {
				return e.Meta, true
			}
		}
	}
	return member.EventMeta{}, false
}

// LookupConstructor resolves a constructor by exact parameter signature.
func (t *Type) LookupConstructor(params []member.TypeInfo) (member.ConstructorMeta, bool) {
	for _, c := range t.ctors {
		if member.SignatureEqual(c.Meta.Params, params) {
			return c.Meta, true
		}
	}
	return member.ConstructorMeta{}, false
}

// resolveMethod finds the most-derived callable method with the given name
// and arity, starting the search at from (used for base calls).
func resolveMethod(from *Type, name string, argc int) (*Method, *Type, bool) {
	for cur := from; cur != nil; cur = cur.base {
		for _, m := range cur.methods {
			if m.Meta.Name == name && len(m.Meta.Params) == argc {
				return m, cur, true
			}
		}
	}
	return nil, nil, false
}

// InvokeStatic calls a static method declared on this type.
func (t *Type) InvokeStatic(name string, args ...any) (any, error) {
	m, declaredBy, ok := resolveMethod(t, name, len(args))
	if !ok {
		return nil, fmt.Errorf("object: type %s has no method %q with %d parameter(s)", t.name, name, len(args))
	}
	if m.Meta.Kind != member.Static {
		return nil, fmt.Errorf("object: method %s.%s is not static", t.name, name)
	}
	return m.Body.Eval(&staticReceiver{typ: t, declaredBy: declaredBy}, args)
}

// StaticField returns the value of a static field declared on this type.
func (t *Type) StaticField(name string) (any, bool) {
	for cur := t; cur != nil; cur = cur.base {
		if v, ok := cur.statics[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// staticReceiver adapts type-level storage to the emit.Receiver surface for
// static method bodies.
type staticReceiver struct {
	typ        *Type
	declaredBy *Type
}

func (r *staticReceiver) FieldValue(name string) (any, bool) {
	return r.typ.StaticField(name)
}

func (r *staticReceiver) SetFieldValue(name string, v any) error {
	for cur := r.typ; cur != nil; cur = cur.base {
		if _, ok := cur.statics[name]; ok {
			cur.statics[name] = v
			return nil
		}
	}
	return fmt.Errorf("object: type %s has no static field %q", r.typ.name, name)
}

func (r *staticReceiver) Invoke(name string, args []any) (any, error) {
	return r.typ.InvokeStatic(name, args...)
}

func (r *staticReceiver) InvokeBase(name string, args []any) (any, error) {
	if r.declaredBy == nil || r.declaredBy.base == nil {
		return nil, fmt.Errorf("object: type %s has no base type", r.typ.name)
	}
	return r.declaredBy.base.InvokeStatic(name, args...)
}

func (r *staticReceiver) AppendHandler(string, any) error {
	return fmt.Errorf("object: static bodies cannot mutate instance handler lists")
}

func (r *staticReceiver) RemoveHandler(string, any) error {
	return fmt.Errorf("object: static bodies cannot mutate instance handler lists")
}
