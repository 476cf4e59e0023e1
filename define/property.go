package define

import (
	"github.com/syssam/typeforge/member"
)

// GeneratedProperty is a property descriptor owned by one type definition.
// Its accessors are generated methods declared alongside it; the bound
// strategy supplies their bodies during the implement pass.
type GeneratedProperty struct {
	td   *TypeDefinition
	name string
	typ  member.TypeInfo
	vis  member.Visibility
	kind member.PropertyKind

	impl      PropertyImplementation
	overrides *InheritedProperty

	getter *GeneratedMethod
	setter *GeneratedMethod

	declared bool
	frozen   bool
}

// Name returns the property name.
func (p *GeneratedProperty) Name() string { return p.name }

// Type returns the property value type.
func (p *GeneratedProperty) Type() member.TypeInfo { return p.typ }

// Visibility returns the declared visibility.
func (p *GeneratedProperty) Visibility() member.Visibility { return p.vis }

// Kind returns the dispatch kind.
func (p *GeneratedProperty) Kind() member.PropertyKind { return p.kind }

// IsFrozen reports whether the descriptor has been locked by finalization.
func (p *GeneratedProperty) IsFrozen() bool { return p.frozen }

// IsAbstract reports whether the property declares signatures only.
func (p *GeneratedProperty) IsAbstract() bool { return p.kind == member.Abstract }

// Overrides returns the inherited member this property overrides, or nil.
func (p *GeneratedProperty) Overrides() *InheritedProperty { return p.overrides }

// Getter returns the getter accessor method, or nil if the property has
// no getter.
func (p *GeneratedProperty) Getter() *GeneratedMethod { return p.getter }

// Setter returns the setter accessor method, or nil if the property has
// no setter.
func (p *GeneratedProperty) Setter() *GeneratedMethod { return p.setter }

// Implementation returns the bound strategy, nil for abstract properties.
func (p *GeneratedProperty) Implementation() PropertyImplementation { return p.impl }

// Meta returns the metadata record describing this property.
func (p *GeneratedProperty) Meta() member.PropertyMeta {
	return member.PropertyMeta{
		Name:       p.name,
		Type:       p.typ,
		Visibility: p.vis,
		Kind:       p.kind,
		HasGetter:  p.getter != nil,
		HasSetter:  p.setter != nil,
		DeclaredBy: p.td.name,
	}
}

func (p *GeneratedProperty) freeze() { p.frozen = true }

// GeneratedEvent is an event descriptor owned by one type definition. The
// bound strategy declares the handler-list backing field and supplies the
// add/remove accessor bodies.
type GeneratedEvent struct {
	td      *TypeDefinition
	name    string
	handler member.TypeInfo
	vis     member.Visibility
	kind    member.EventKind

	impl      EventImplementation
	overrides *InheritedEvent

	add          *GeneratedMethod
	remove       *GeneratedMethod
	handlerField string

	declared bool
	frozen   bool
}

// Name returns the event name.
func (e *GeneratedEvent) Name() string { return e.name }

// Handler returns the handler type accepted by the accessors.
func (e *GeneratedEvent) Handler() member.TypeInfo { return e.handler }

// Visibility returns the declared visibility.
func (e *GeneratedEvent) Visibility() member.Visibility { return e.vis }

// Kind returns the dispatch kind.
func (e *GeneratedEvent) Kind() member.EventKind { return e.kind }

// IsFrozen reports whether the descriptor has been locked by finalization.
func (e *GeneratedEvent) IsFrozen() bool { return e.frozen }

// IsAbstract reports whether the event declares signatures only.
func (e *GeneratedEvent) IsAbstract() bool { return e.kind == member.Abstract }

// Overrides returns the inherited member this event overrides, or nil.
func (e *GeneratedEvent) Overrides() *InheritedEvent { return e.overrides }

// Add returns the add accessor method.
func (e *GeneratedEvent) Add() *GeneratedMethod { return e.add }

// Remove returns the remove accessor method.
func (e *GeneratedEvent) Remove() *GeneratedMethod { return e.remove }

// HandlerField returns the name of the handler-list backing field
// registered by the strategy's declare pass.
func (e *GeneratedEvent) HandlerField() string { return e.handlerField }

// SetHandlerField records the handler-list backing field. Event strategies
// call this from Declare after adding the field to the definition.
func (e *GeneratedEvent) SetHandlerField(name string) { e.handlerField = name }

// Meta returns the metadata record describing this event.
func (e *GeneratedEvent) Meta() member.EventMeta {
	return member.EventMeta{
		Name:       e.name,
		Handler:    e.handler,
		Visibility: e.vis,
		Kind:       e.kind,
		DeclaredBy: e.td.name,
	}
}

func (e *GeneratedEvent) freeze() { e.frozen = true }
