// Package impl provides the standard implementation strategies: simple
// backing-field properties, change-notifying setters, raw-callback
// accessors, default event accessors and field-setting constructors.
package impl

import (
	"fmt"

	"github.com/go-openapi/inflect"

	"github.com/syssam/typeforge/define"
	"github.com/syssam/typeforge/emit"
	"github.com/syssam/typeforge/member"
)

// backingFieldName picks an unclaimed private field name derived from the
// member name.
func backingFieldName(td *define.TypeDefinition, base string) string {
	name := inflect.CamelizeDownFirst(base)
	if name == "" {
		name = "backing"
	}
	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s%d", name, i)
		}
		if _, taken := td.FieldNamed(candidate); !taken {
			return candidate
		}
	}
}

// simpleProperty backs a property with a private field: the getter returns
// the field value, the setter stores unconditionally.
type simpleProperty struct {
	field *define.GeneratedField
	owned bool
}

// SimpleProperty returns a property strategy that declares its own private
// backing field during the declare pass.
func SimpleProperty() define.PropertyImplementation {
	return &simpleProperty{}
}

// SimplePropertyBackedBy returns a property strategy bound to an existing
// field declared by the caller.
func SimplePropertyBackedBy(f *define.GeneratedField) define.PropertyImplementation {
	return &simpleProperty{field: f}
}

func (s *simpleProperty) Declare(td *define.TypeDefinition, p *define.GeneratedProperty) error {
	if s.field != nil {
		return nil
	}
	f, err := td.AddField(backingFieldName(td, p.Name()), p.Type(), member.Private)
	if err != nil {
		return err
	}
	s.field = f
	s.owned = true
	return nil
}

func (s *simpleProperty) ImplementGetter(_ *define.TypeDefinition, _ *define.GeneratedProperty, b *emit.Body) error {
	b.LoadField(s.field.Name()).ReturnValue()
	return b.Err()
}

func (s *simpleProperty) ImplementSetter(_ *define.TypeDefinition, _ *define.GeneratedProperty, b *emit.Body) error {
	b.LoadArg(0).StoreField(s.field.Name()).Return()
	return b.Err()
}

func (s *simpleProperty) OnRemoving(td *define.TypeDefinition, _ *define.GeneratedProperty) {
	if s.owned && s.field != nil {
		_ = td.RemoveField(s.field)
		s.field = nil
		s.owned = false
	}
}
