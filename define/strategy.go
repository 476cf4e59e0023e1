// Package define implements the type-assembly engine: type definitions
// accumulate member descriptors through a declare-time API, validate
// uniqueness and override compatibility as members are added, and finalize
// into instantiable object types in a fixed multi-phase order.
package define

import "github.com/syssam/typeforge/emit"

// BodyFunc is a raw code-emission callback bound directly to a member in
// place of a strategy. The callback writes the member's executable body
// into b; every control-flow path must terminate with the return form
// matching the member's declared return type.
type BodyFunc func(td *TypeDefinition, b *emit.Body) error

// MethodImplementation supplies the body of a generated method. Declare is
// called exactly once per member during the declare pass and may add
// auxiliary members to the owning definition; Implement writes the body.
type MethodImplementation interface {
	Declare(td *TypeDefinition, m *GeneratedMethod) error
	Implement(td *TypeDefinition, m *GeneratedMethod, b *emit.Body) error
	// OnRemoving releases auxiliary members if the method is removed
	// before finalization.
	OnRemoving(td *TypeDefinition, m *GeneratedMethod)
}

// PropertyImplementation supplies the accessor bodies of a generated
// property. Accessor implement calls are made only for accessors the
// property declares.
type PropertyImplementation interface {
	Declare(td *TypeDefinition, p *GeneratedProperty) error
	ImplementGetter(td *TypeDefinition, p *GeneratedProperty, b *emit.Body) error
	ImplementSetter(td *TypeDefinition, p *GeneratedProperty, b *emit.Body) error
	OnRemoving(td *TypeDefinition, p *GeneratedProperty)
}

// EventImplementation supplies the add/remove accessor bodies of a
// generated event. Declare must register the handler-list backing field
// via GeneratedEvent.SetHandlerField.
type EventImplementation interface {
	Declare(td *TypeDefinition, e *GeneratedEvent) error
	ImplementAdd(td *TypeDefinition, e *GeneratedEvent, b *emit.Body) error
	ImplementRemove(td *TypeDefinition, e *GeneratedEvent, b *emit.Body) error
	OnRemoving(td *TypeDefinition, e *GeneratedEvent)
}

// ConstructorImplementation supplies the custom portion of a generated
// constructor body. Field initializers run before it, in declaration order.
type ConstructorImplementation interface {
	Declare(td *TypeDefinition, c *GeneratedConstructor) error
	Implement(td *TypeDefinition, c *GeneratedConstructor, b *emit.Body) error
	OnRemoving(td *TypeDefinition, c *GeneratedConstructor)
}
