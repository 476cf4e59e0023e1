package define

import (
	"github.com/syssam/typeforge"
	"github.com/syssam/typeforge/emit"
	"github.com/syssam/typeforge/member"
)

// Param is one named parameter of a method or constructor. Signature
// equality considers only the ordered type sequence; names exist for
// source rendering.
type Param struct {
	Name string
	Type member.TypeInfo
}

// ParamTypes projects the ordered type sequence of a parameter list.
func ParamTypes(params []Param) []member.TypeInfo {
	if len(params) == 0 {
		return nil
	}
	types := make([]member.TypeInfo, len(params))
	for i, p := range params {
		types[i] = p.Type
	}
	return types
}

// GeneratedMethod is a method descriptor owned by one type definition.
// Exactly one of the bound strategy or callback supplies the body; abstract
// methods carry neither.
type GeneratedMethod struct {
	td      *TypeDefinition
	name    string
	params  []Param
	returns member.TypeInfo
	vis     member.Visibility
	kind    member.MethodKind

	impl     MethodImplementation
	callback BodyFunc
	// overrides back-links the inherited member this method overrides.
	// Non-owning; used for compatibility checks and base-call emission.
	overrides *InheritedMethod

	// accessorOf marks methods declared on behalf of a property or event;
	// they are removed together with their owner.
	accessorOf any

	declared bool
	body     *emit.Body
	frozen   bool
}

// Name returns the method name.
func (m *GeneratedMethod) Name() string { return m.name }

// Params returns the declared parameters.
func (m *GeneratedMethod) Params() []Param { return m.params }

// ParamTypes returns the ordered parameter-type sequence.
func (m *GeneratedMethod) ParamTypes() []member.TypeInfo { return ParamTypes(m.params) }

// Returns returns the declared return type.
func (m *GeneratedMethod) Returns() member.TypeInfo { return m.returns }

// Visibility returns the declared visibility.
func (m *GeneratedMethod) Visibility() member.Visibility { return m.vis }

// Kind returns the dispatch kind.
func (m *GeneratedMethod) Kind() member.MethodKind { return m.kind }

// IsFrozen reports whether the descriptor has been locked by finalization.
func (m *GeneratedMethod) IsFrozen() bool { return m.frozen }

// IsAbstract reports whether the method declares a signature only.
func (m *GeneratedMethod) IsAbstract() bool { return m.kind == member.Abstract }

// Overrides returns the inherited member this method overrides, or nil.
func (m *GeneratedMethod) Overrides() *InheritedMethod { return m.overrides }

// Body returns the emitted body after finalization; nil before the
// implement pass and for abstract methods.
func (m *GeneratedMethod) Body() *emit.Body { return m.body }

// SetKind changes the dispatch kind before finalization. Override methods
// keep their kind; it is derived from the overridden member.
func (m *GeneratedMethod) SetKind(k member.MethodKind) error {
	if m.frozen {
		return typeforge.NewInvalidOperationError(m.td.name, m.name, "member is frozen")
	}
	if m.overrides != nil {
		return typeforge.NewInvalidOperationError(m.td.name, m.name, "kind of an override is fixed")
	}
	if !k.Valid() {
		return typeforge.NewArgumentError("kind", k, "unknown method kind")
	}
	m.kind = k
	return nil
}

// Meta returns the metadata record describing this method.
func (m *GeneratedMethod) Meta() member.MethodMeta {
	return member.MethodMeta{
		Name:       m.name,
		Params:     m.ParamTypes(),
		Returns:    m.returns,
		Visibility: m.vis,
		Kind:       m.kind,
		DeclaredBy: m.td.name,
	}
}

func (m *GeneratedMethod) freeze() { m.frozen = true }

// GeneratedConstructor is a constructor descriptor owned by one type
// definition. Constructors are identified by their parameter signature.
type GeneratedConstructor struct {
	td     *TypeDefinition
	params []Param
	vis    member.Visibility

	impl     ConstructorImplementation
	callback BodyFunc

	declared bool
	body     *emit.Body
	frozen   bool
}

// Params returns the declared parameters.
func (c *GeneratedConstructor) Params() []Param { return c.params }

// ParamTypes returns the ordered parameter-type sequence.
func (c *GeneratedConstructor) ParamTypes() []member.TypeInfo { return ParamTypes(c.params) }

// Visibility returns the declared visibility.
func (c *GeneratedConstructor) Visibility() member.Visibility { return c.vis }

// IsFrozen reports whether the descriptor has been locked by finalization.
func (c *GeneratedConstructor) IsFrozen() bool { return c.frozen }

// Body returns the emitted body after finalization.
func (c *GeneratedConstructor) Body() *emit.Body { return c.body }

// Meta returns the metadata record describing this constructor.
func (c *GeneratedConstructor) Meta() member.ConstructorMeta {
	return member.ConstructorMeta{
		Params:     c.ParamTypes(),
		Visibility: c.vis,
		DeclaredBy: c.td.name,
	}
}

func (c *GeneratedConstructor) freeze() { c.frozen = true }
