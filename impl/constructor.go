package impl

import (
	"fmt"

	"github.com/syssam/typeforge/define"
	"github.com/syssam/typeforge/emit"
)

// emptyConstructor emits a constructor body that does nothing beyond the
// implicit base construction and field initializers.
type emptyConstructor struct{}

// DefaultConstructor returns a constructor strategy with an empty custom
// body: base construction and field initializers still run.
func DefaultConstructor() define.ConstructorImplementation {
	return emptyConstructor{}
}

func (emptyConstructor) Declare(*define.TypeDefinition, *define.GeneratedConstructor) error {
	return nil
}

func (emptyConstructor) Implement(_ *define.TypeDefinition, _ *define.GeneratedConstructor, b *emit.Body) error {
	b.Return()
	return b.Err()
}

func (emptyConstructor) OnRemoving(*define.TypeDefinition, *define.GeneratedConstructor) {}

// settingConstructor assigns each constructor parameter to a field, in
// order.
type settingConstructor struct {
	fields []*define.GeneratedField
}

// SettingConstructor returns a constructor strategy that stores the i-th
// argument into the i-th given field. The parameter list declared for the
// constructor must match the fields in count and type.
func SettingConstructor(fields ...*define.GeneratedField) define.ConstructorImplementation {
	return &settingConstructor{fields: fields}
}

func (s *settingConstructor) Declare(*define.TypeDefinition, *define.GeneratedConstructor) error {
	return nil
}

func (s *settingConstructor) Implement(_ *define.TypeDefinition, c *define.GeneratedConstructor, b *emit.Body) error {
	if len(c.Params()) != len(s.fields) {
		return fmt.Errorf("constructor declares %d parameter(s) but %d field(s) are bound", len(c.Params()), len(s.fields))
	}
	for i, f := range s.fields {
		if !c.Params()[i].Type.Equal(f.Type()) {
			return fmt.Errorf("parameter %d has type %s but field %s has type %s", i, c.Params()[i].Type, f.Name(), f.Type())
		}
		b.LoadArg(i).StoreField(f.Name())
	}
	b.Return()
	return b.Err()
}

func (s *settingConstructor) OnRemoving(*define.TypeDefinition, *define.GeneratedConstructor) {}
