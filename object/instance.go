package object

import (
	"fmt"

	"github.com/syssam/typeforge/emit"
	"github.com/syssam/typeforge/member"
)

// Instance is one object of a finalized type. Field storage covers the
// whole base chain; handler lists back the declared events.
type Instance struct {
	typ      *Type
	fields   map[string]any
	handlers map[string][]Handler
}

// New instantiates a finalized type: field initializers run base-first in
// declaration order, then the constructor matching the argument count runs.
// Abstract types cannot be instantiated.
func New(t *Type, args ...any) (*Instance, error) {
	if t == nil {
		return nil, fmt.Errorf("object: nil type")
	}
	if t.IsAbstract() {
		return nil, fmt.Errorf("object: cannot instantiate abstract type %s", t.name)
	}
	inst := &Instance{
		typ:      t,
		fields:   make(map[string]any),
		handlers: make(map[string][]Handler),
	}
	// Base-first initializer order: walk to the root, then apply downwards.
	var chain []*Type
	for cur := t; cur != nil; cur = cur.base {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, f := range chain[i].fields {
			if f.Meta.Static {
				continue
			}
			v := f.Initial
			if v == nil && !f.Meta.HasInitial {
				v = member.Zero(f.Meta.Type)
			}
			inst.fields[f.Meta.Name] = v
		}
	}
	ctor := selectConstructor(t, len(args))
	if ctor == nil {
		if len(args) > 0 {
			return nil, fmt.Errorf("object: type %s has no constructor with %d parameter(s)", t.name, len(args))
		}
		return inst, nil
	}
	if _, err := ctor.Body.Eval(&boundReceiver{inst: inst, declaredBy: t}, args); err != nil {
		return nil, fmt.Errorf("object: constructing %s: %w", t.name, err)
	}
	return inst, nil
}

func selectConstructor(t *Type, argc int) *Constructor {
	for _, c := range t.ctors {
		if len(c.Meta.Params) == argc {
			return c
		}
	}
	return nil
}

// Type returns the instance's finalized type.
func (i *Instance) Type() *Type { return i.typ }

// Field returns the current value of the named field.
func (i *Instance) Field(name string) (any, bool) {
	v, ok := i.fields[name]
	if !ok {
		// Static fields are readable through instances as well.
		return i.typ.StaticField(name)
	}
	return v, ok
}

// SetField stores v into the named field.
func (i *Instance) SetField(name string, v any) error {
	if _, ok := i.fields[name]; !ok {
		return fmt.Errorf("object: type %s has no field %q", i.typ.name, name)
	}
	i.fields[name] = v
	return nil
}

// Invoke calls the named method through virtual dispatch, resolving the
// most-derived body for the instance's type.
func (i *Instance) Invoke(name string, args ...any) (any, error) {
	m, declaredBy, ok := resolveMethod(i.typ, name, len(args))
	if !ok {
		return nil, fmt.Errorf("object: type %s has no method %q with %d parameter(s)", i.typ.name, name, len(args))
	}
	if m.Meta.Kind == member.Static {
		return i.typ.InvokeStatic(name, args...)
	}
	if m.Body == nil {
		return nil, fmt.Errorf("object: method %s.%s is abstract", declaredBy.name, name)
	}
	return m.Body.Eval(&boundReceiver{inst: i, declaredBy: declaredBy}, args)
}

// GetProperty reads a property through its getter accessor.
func (i *Instance) GetProperty(name string) (any, error) {
	p, ok := findProperty(i.typ, name)
	if !ok {
		return nil, fmt.Errorf("object: type %s has no property %q", i.typ.name, name)
	}
	if p.Getter == "" {
		return nil, fmt.Errorf("object: property %s.%s has no getter", i.typ.name, name)
	}
	return i.Invoke(p.Getter)
}

// SetProperty writes a property through its setter accessor.
func (i *Instance) SetProperty(name string, v any) error {
	p, ok := findProperty(i.typ, name)
	if !ok {
		return fmt.Errorf("object: type %s has no property %q", i.typ.name, name)
	}
	if p.Setter == "" {
		return fmt.Errorf("object: property %s.%s has no setter", i.typ.name, name)
	}
	_, err := i.Invoke(p.Setter, v)
	return err
}

// AddHandler subscribes h to the named event through its add accessor.
func (i *Instance) AddHandler(event string, h Handler) error {
	e, ok := findEvent(i.typ, event)
	if !ok {
		return fmt.Errorf("object: type %s has no event %q", i.typ.name, event)
	}
	_, err := i.Invoke(e.Add, h)
	return err
}

// RemoveHandler unsubscribes the first matching handler through the remove
// accessor.
func (i *Instance) RemoveHandler(event string, h Handler) error {
	e, ok := findEvent(i.typ, event)
	if !ok {
		return fmt.Errorf("object: type %s has no event %q", i.typ.name, event)
	}
	_, err := i.Invoke(e.Remove, h)
	return err
}

// Raise invokes the event's current handlers in subscription order.
func (i *Instance) Raise(event string, args ...any) error {
	e, ok := findEvent(i.typ, event)
	if !ok {
		return fmt.Errorf("object: type %s has no event %q", i.typ.name, event)
	}
	for _, h := range i.handlers[e.Field] {
		h(args...)
	}
	return nil
}

// HandlerCount returns the number of subscribed handlers for an event.
func (i *Instance) HandlerCount(event string) int {
	e, ok := findEvent(i.typ, event)
	if !ok {
		return 0
	}
	return len(i.handlers[e.Field])
}

func findProperty(t *Type, name string) (*Property, bool) {
	for cur := t; cur != nil; cur = cur.base {
		for _, p := range cur.props {
			if p.Meta.Name == name {
				return p, true
			}
		}
	}
	return nil, false
}

func findEvent(t *Type, name string) (*Event, bool) {
	for cur := t; cur != nil; cur = cur.base {
		for _, e := range cur.events {
			if e.Meta.Name == name {
				return e, true
			}
		}
	}
	return nil, false
}

// boundReceiver adapts an instance to the emit.Receiver surface, keeping
// track of the type that declared the executing body so base calls start
// their lookup above it.
type boundReceiver struct {
	inst       *Instance
	declaredBy *Type
}

var _ emit.Receiver = (*boundReceiver)(nil)

func (r *boundReceiver) FieldValue(name string) (any, bool) {
	return r.inst.Field(name)
}

func (r *boundReceiver) SetFieldValue(name string, v any) error {
	return r.inst.SetField(name, v)
}

func (r *boundReceiver) Invoke(name string, args []any) (any, error) {
	return r.inst.Invoke(name, args...)
}

func (r *boundReceiver) InvokeBase(name string, args []any) (any, error) {
	if r.declaredBy == nil || r.declaredBy.base == nil {
		return nil, fmt.Errorf("object: type %s has no base type", r.inst.typ.name)
	}
	m, declaredBy, ok := resolveMethod(r.declaredBy.base, name, len(args))
	if !ok {
		return nil, fmt.Errorf("object: base of %s has no method %q with %d parameter(s)", r.declaredBy.name, name, len(args))
	}
	if m.Body == nil {
		return nil, fmt.Errorf("object: base method %s.%s is abstract", declaredBy.name, name)
	}
	return m.Body.Eval(&boundReceiver{inst: r.inst, declaredBy: declaredBy}, args)
}

func (r *boundReceiver) AppendHandler(field string, h any) error {
	handler, ok := h.(Handler)
	if !ok {
		if fn, fnOK := h.(func(args ...any)); fnOK {
			handler = fn
		} else {
			return fmt.Errorf("object: event handler must be an object.Handler, got %T", h)
		}
	}
	r.inst.handlers[field] = append(r.inst.handlers[field], handler)
	return nil
}

func (r *boundReceiver) RemoveHandler(field string, h any) error {
	handler, ok := h.(Handler)
	if !ok {
		if fn, fnOK := h.(func(args ...any)); fnOK {
			handler = fn
		} else {
			return fmt.Errorf("object: event handler must be an object.Handler, got %T", h)
		}
	}
	list := r.inst.handlers[field]
	for idx := range list {
		if fmt.Sprintf("%p", list[idx]) == fmt.Sprintf("%p", handler) {
			r.inst.handlers[field] = append(list[:idx:idx], list[idx+1:]...)
			return nil
		}
	}
	return nil
}
