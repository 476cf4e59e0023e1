package define

import (
	"github.com/syssam/typeforge"
	"github.com/syssam/typeforge/member"
)

// Inherited member resolution. Descriptors are produced lazily from the
// base type's inspection surface and cached per definition; private base
// members are not resolvable from a deriving type.

// GetInheritedMethod resolves a base-type method by name and exact ordered
// parameter-type sequence.
func (td *TypeDefinition) GetInheritedMethod(name string, params []member.TypeInfo) (*InheritedMethod, bool) {
	if td.base == nil {
		return nil, false
	}
	key := name + "(" + member.Signature(params) + ")"
	if cached, ok := td.inheritedMethods[key]; ok {
		return cached, true
	}
	meta, ok := td.base.LookupMethod(name, params)
	if !ok || meta.Visibility == member.Private {
		return nil, false
	}
	im := &InheritedMethod{owner: td, meta: meta}
	td.inheritedMethods[key] = im
	return im, true
}

// GetInheritedProperty resolves a base-type property by name.
func (td *TypeDefinition) GetInheritedProperty(name string) (*InheritedProperty, bool) {
	if td.base == nil {
		return nil, false
	}
	if cached, ok := td.inheritedProps[name]; ok {
		return cached, true
	}
	meta, ok := td.base.LookupProperty(name)
	if !ok || meta.Visibility == member.Private {
		return nil, false
	}
	ip := &InheritedProperty{owner: td, meta: meta}
	td.inheritedProps[name] = ip
	return ip, true
}

// GetInheritedEvent resolves a base-type event by name.
func (td *TypeDefinition) GetInheritedEvent(name string) (*InheritedEvent, bool) {
	if td.base == nil {
		return nil, false
	}
	if cached, ok := td.inheritedEvents[name]; ok {
		return cached, true
	}
	meta, ok := td.base.LookupEvent(name)
	if !ok || meta.Visibility == member.Private {
		return nil, false
	}
	ie := &InheritedEvent{owner: td, meta: meta}
	td.inheritedEvents[name] = ie
	return ie, true
}

// OverrideMethod turns an inherited abstract/virtual method into a
// generated one. The produced member's kind is Override, its signature and
// visibility are adopted from the overridden member.
func (td *TypeDefinition) OverrideMethod(im *InheritedMethod, impl MethodImplementation, fn BodyFunc) (*GeneratedMethod, error) {
	if err := td.ensureMutable(); err != nil {
		return nil, err
	}
	if im == nil {
		return nil, typeforge.NewArgumentError("inherited", nil, "nil inherited member")
	}
	if im.owner != td {
		return nil, typeforge.NewInvalidOperationError(td.name, im.Name(), "inherited member belongs to a different definition")
	}
	if !im.Kind().Overridable() {
		return nil, typeforge.NewInvalidOperationError(td.name, im.Name(), "cannot override a "+im.Kind().String()+" member")
	}
	if err := checkBodySource(member.Normal, impl != nil, fn != nil); err != nil {
		return nil, err
	}
	params := make([]Param, len(im.meta.Params))
	for i, t := range im.meta.Params {
		params[i] = Param{Name: paramName(i), Type: t}
	}
	m := &GeneratedMethod{
		td:        td,
		name:      im.Name(),
		params:    params,
		returns:   im.Returns(),
		vis:       im.Visibility(),
		kind:      member.Override,
		impl:      impl,
		callback:  fn,
		overrides: im,
	}
	if err := td.insertMethod(m); err != nil {
		return nil, err
	}
	return m, nil
}

// OverrideProperty turns an inherited abstract/virtual property into a
// generated one with the strategy-supplied accessor bodies. Only the
// accessors the base property declares are generated.
func (td *TypeDefinition) OverrideProperty(ip *InheritedProperty, impl PropertyImplementation) (*GeneratedProperty, error) {
	if err := td.ensureMutable(); err != nil {
		return nil, err
	}
	if ip == nil {
		return nil, typeforge.NewArgumentError("inherited", nil, "nil inherited member")
	}
	if ip.owner != td {
		return nil, typeforge.NewInvalidOperationError(td.name, ip.Name(), "inherited member belongs to a different definition")
	}
	if !ip.Kind().Overridable() {
		return nil, typeforge.NewInvalidOperationError(td.name, ip.Name(), "cannot override a "+ip.Kind().String()+" member")
	}
	if impl == nil {
		return nil, typeforge.NewArgumentError("impl", nil, "a property strategy is required")
	}
	if _, dup := td.PropertyNamed(ip.Name()); dup {
		return nil, typeforge.NewDuplicateMemberError(td.name, "property", ip.Name(), "")
	}
	p := &GeneratedProperty{
		td:        td,
		name:      ip.Name(),
		typ:       ip.Type(),
		vis:       ip.Visibility(),
		kind:      member.Override,
		impl:      impl,
		overrides: ip,
	}
	getter, setter, err := td.declareAccessors(p, p.name, p.typ, p.vis, member.Override, ip.HasGetter(), ip.HasSetter())
	if err != nil {
		return nil, err
	}
	p.getter, p.setter = getter, setter
	td.props = append(td.props, p)
	return p, nil
}

// OverrideEvent turns an inherited abstract/virtual event into a generated
// one with strategy-supplied accessors.
func (td *TypeDefinition) OverrideEvent(ie *InheritedEvent, impl EventImplementation) (*GeneratedEvent, error) {
	if err := td.ensureMutable(); err != nil {
		return nil, err
	}
	if ie == nil {
		return nil, typeforge.NewArgumentError("inherited", nil, "nil inherited member")
	}
	if ie.owner != td {
		return nil, typeforge.NewInvalidOperationError(td.name, ie.Name(), "inherited member belongs to a different definition")
	}
	if !ie.Kind().Overridable() {
		return nil, typeforge.NewInvalidOperationError(td.name, ie.Name(), "cannot override a "+ie.Kind().String()+" member")
	}
	if impl == nil {
		return nil, typeforge.NewArgumentError("impl", nil, "an event strategy is required")
	}
	if _, dup := td.EventNamed(ie.Name()); dup {
		return nil, typeforge.NewDuplicateMemberError(td.name, "event", ie.Name(), "")
	}
	e := &GeneratedEvent{
		td:        td,
		name:      ie.Name(),
		handler:   ie.Handler(),
		vis:       ie.Visibility(),
		kind:      member.Override,
		impl:      impl,
		overrides: ie,
	}
	add, remove, err := td.declareEventAccessors(e, e.name, e.handler, e.vis, member.Override)
	if err != nil {
		return nil, err
	}
	e.add, e.remove = add, remove
	td.events = append(td.events, e)
	return e, nil
}

func paramName(i int) string {
	return "p" + string(rune('0'+i%10))
}

// Member removal. Permitted only before the implement pass begins; removal
// cascades to auxiliary members the bound strategy declared on the
// member's behalf.

func (td *TypeDefinition) dropMethod(m *GeneratedMethod) {
	for i, existing := range td.methods {
		if existing == m {
			td.methods = append(td.methods[:i], td.methods[i+1:]...)
			return
		}
	}
}

// RemoveField removes a declared field.
func (td *TypeDefinition) RemoveField(f *GeneratedField) error {
	if err := td.ensureMutable(); err != nil {
		return err
	}
	for i, existing := range td.fields {
		if existing == f {
			td.fields = append(td.fields[:i], td.fields[i+1:]...)
			return nil
		}
	}
	return typeforge.NewInvalidOperationError(td.name, f.name, "field is not declared on this definition")
}

// RemoveMethod removes a declared method. Accessor methods are removed
// together with the property or event that owns them.
func (td *TypeDefinition) RemoveMethod(m *GeneratedMethod) error {
	if err := td.ensureMutable(); err != nil {
		return err
	}
	if m.accessorOf != nil {
		return typeforge.NewInvalidOperationError(td.name, m.name, "accessor methods are removed through their owning member")
	}
	for _, existing := range td.methods {
		if existing == m {
			if m.impl != nil {
				m.impl.OnRemoving(td, m)
			}
			td.dropMethod(m)
			return nil
		}
	}
	return typeforge.NewInvalidOperationError(td.name, m.name, "method is not declared on this definition")
}

// RemoveProperty removes a declared property, its accessors and any
// auxiliary members its strategy declared (e.g. a backing field).
func (td *TypeDefinition) RemoveProperty(p *GeneratedProperty) error {
	if err := td.ensureMutable(); err != nil {
		return err
	}
	for i, existing := range td.props {
		if existing == p {
			if p.impl != nil {
				p.impl.OnRemoving(td, p)
			}
			if p.getter != nil {
				td.dropMethod(p.getter)
			}
			if p.setter != nil {
				td.dropMethod(p.setter)
			}
			td.props = append(td.props[:i], td.props[i+1:]...)
			return nil
		}
	}
	return typeforge.NewInvalidOperationError(td.name, p.name, "property is not declared on this definition")
}

// RemoveEvent removes a declared event, its accessors and its
// strategy-declared handler list.
func (td *TypeDefinition) RemoveEvent(e *GeneratedEvent) error {
	if err := td.ensureMutable(); err != nil {
		return err
	}
	for i, existing := range td.events {
		if existing == e {
			if e.impl != nil {
				e.impl.OnRemoving(td, e)
			}
			td.dropMethod(e.add)
			td.dropMethod(e.remove)
			td.events = append(td.events[:i], td.events[i+1:]...)
			return nil
		}
	}
	return typeforge.NewInvalidOperationError(td.name, e.name, "event is not declared on this definition")
}

// RemoveConstructor removes a declared constructor.
func (td *TypeDefinition) RemoveConstructor(c *GeneratedConstructor) error {
	if err := td.ensureMutable(); err != nil {
		return err
	}
	for i, existing := range td.ctors {
		if existing == c {
			if c.impl != nil {
				c.impl.OnRemoving(td, c)
			}
			td.ctors = append(td.ctors[:i], td.ctors[i+1:]...)
			return nil
		}
	}
	return typeforge.NewInvalidOperationError(td.name, "", "constructor is not declared on this definition")
}
