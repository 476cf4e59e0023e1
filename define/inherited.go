package define

import "github.com/syssam/typeforge/member"

// BaseType is the reflection-style inspection surface a definition resolves
// inherited members from. Finalized object.Type values satisfy it, as do
// the metadata-only base types produced by compiler/load.
type BaseType interface {
	Name() string
	LookupField(name string) (member.FieldMeta, bool)
	LookupMethod(name string, params []member.TypeInfo) (member.MethodMeta, bool)
	LookupProperty(name string) (member.PropertyMeta, bool)
	LookupEvent(name string) (member.EventMeta, bool)
	LookupConstructor(params []member.TypeInfo) (member.ConstructorMeta, bool)
}

// InheritedMethod wraps a base-type method. It is frozen at construction;
// the only operation is overriding it on the definition that resolved it.
type InheritedMethod struct {
	owner *TypeDefinition
	meta  member.MethodMeta
}

// Name returns the method name.
func (m *InheritedMethod) Name() string { return m.meta.Name }

// Params returns the ordered parameter types.
func (m *InheritedMethod) Params() []member.TypeInfo { return m.meta.Params }

// Returns returns the return type.
func (m *InheritedMethod) Returns() member.TypeInfo { return m.meta.Returns }

// Visibility returns the declared visibility.
func (m *InheritedMethod) Visibility() member.Visibility { return m.meta.Visibility }

// Kind returns the dispatch kind of the base member.
func (m *InheritedMethod) Kind() member.MethodKind { return m.meta.Kind }

// IsFrozen always reports true for inherited members.
func (m *InheritedMethod) IsFrozen() bool { return true }

// Meta returns the underlying metadata record.
func (m *InheritedMethod) Meta() member.MethodMeta { return m.meta }

// Override turns the inherited method into a generated one on the owning
// definition, forwarding to TypeDefinition.OverrideMethod.
func (m *InheritedMethod) Override(impl MethodImplementation, fn BodyFunc) (*GeneratedMethod, error) {
	return m.owner.OverrideMethod(m, impl, fn)
}

// InheritedProperty wraps a base-type property.
type InheritedProperty struct {
	owner *TypeDefinition
	meta  member.PropertyMeta
}

// Name returns the property name.
func (p *InheritedProperty) Name() string { return p.meta.Name }

// Type returns the property value type.
func (p *InheritedProperty) Type() member.TypeInfo { return p.meta.Type }

// Visibility returns the declared visibility.
func (p *InheritedProperty) Visibility() member.Visibility { return p.meta.Visibility }

// Kind returns the dispatch kind of the base member.
func (p *InheritedProperty) Kind() member.PropertyKind { return p.meta.Kind }

// HasGetter reports whether the base property declares a getter.
func (p *InheritedProperty) HasGetter() bool { return p.meta.HasGetter }

// HasSetter reports whether the base property declares a setter.
func (p *InheritedProperty) HasSetter() bool { return p.meta.HasSetter }

// IsFrozen always reports true for inherited members.
func (p *InheritedProperty) IsFrozen() bool { return true }

// Meta returns the underlying metadata record.
func (p *InheritedProperty) Meta() member.PropertyMeta { return p.meta }

// Override turns the inherited property into a generated one on the owning
// definition, forwarding to TypeDefinition.OverrideProperty.
func (p *InheritedProperty) Override(impl PropertyImplementation) (*GeneratedProperty, error) {
	return p.owner.OverrideProperty(p, impl)
}

// InheritedEvent wraps a base-type event.
type InheritedEvent struct {
	owner *TypeDefinition
	meta  member.EventMeta
}

// Name returns the event name.
func (e *InheritedEvent) Name() string { return e.meta.Name }

// Handler returns the handler type accepted by the accessors.
func (e *InheritedEvent) Handler() member.TypeInfo { return e.meta.Handler }

// Visibility returns the declared visibility.
func (e *InheritedEvent) Visibility() member.Visibility { return e.meta.Visibility }

// Kind returns the dispatch kind of the base member.
func (e *InheritedEvent) Kind() member.EventKind { return e.meta.Kind }

// IsFrozen always reports true for inherited members.
func (e *InheritedEvent) IsFrozen() bool { return true }

// Meta returns the underlying metadata record.
func (e *InheritedEvent) Meta() member.EventMeta { return e.meta }

// Override turns the inherited event into a generated one on the owning
// definition, forwarding to TypeDefinition.OverrideEvent.
func (e *InheritedEvent) Override(impl EventImplementation) (*GeneratedEvent, error) {
	return e.owner.OverrideEvent(e, impl)
}
