package define

import (
	"github.com/syssam/typeforge"
	"github.com/syssam/typeforge/member"
)

// GeneratedField is a field descriptor owned by one type definition.
// It is mutable until the definition freezes it during finalization.
type GeneratedField struct {
	td         *TypeDefinition
	name       string
	typ        member.TypeInfo
	vis        member.Visibility
	static     bool
	initial    any
	hasInitial bool
	frozen     bool
}

// Name returns the field name.
func (f *GeneratedField) Name() string { return f.name }

// Type returns the field value type.
func (f *GeneratedField) Type() member.TypeInfo { return f.typ }

// Visibility returns the declared visibility.
func (f *GeneratedField) Visibility() member.Visibility { return f.vis }

// IsStatic reports whether the field is type-level storage.
func (f *GeneratedField) IsStatic() bool { return f.static }

// IsFrozen reports whether the descriptor has been locked by finalization.
func (f *GeneratedField) IsFrozen() bool { return f.frozen }

// HasInitializer reports whether a construction-time value was supplied.
func (f *GeneratedField) HasInitializer() bool { return f.hasInitial }

// Initializer returns the construction-time value, if one was supplied.
func (f *GeneratedField) Initializer() (any, bool) { return f.initial, f.hasInitial }

// SetInitializer supplies the value stored into the field at construction
// time. Absence of an initializer means the field starts at the type's
// zero value.
func (f *GeneratedField) SetInitializer(v any) error {
	if f.frozen {
		return typeforge.NewInvalidOperationError(f.td.name, f.name, "member is frozen")
	}
	conformed, err := member.Conform(f.typ, v)
	if err != nil {
		return typeforge.NewArgumentError("initializer", v, err.Error())
	}
	f.initial = conformed
	f.hasInitial = true
	return nil
}

// Meta returns the metadata record describing this field.
func (f *GeneratedField) Meta() member.FieldMeta {
	return member.FieldMeta{
		Name:       f.name,
		Type:       f.typ,
		Visibility: f.vis,
		Static:     f.static,
		HasInitial: f.hasInitial,
		DeclaredBy: f.td.name,
	}
}

func (f *GeneratedField) freeze() { f.frozen = true }
