package impl

import (
	"fmt"

	"github.com/syssam/typeforge/define"
	"github.com/syssam/typeforge/emit"
)

// propertyAccessors adapts raw body callbacks to the property strategy
// contract for properties whose accessors need hand-written emission.
type propertyAccessors struct {
	getter define.BodyFunc
	setter define.BodyFunc
}

// PropertyAccessors returns a property strategy whose accessor bodies come
// from the given callbacks. Either callback may be nil when the matching
// accessor is absent from the declared property.
func PropertyAccessors(getter, setter define.BodyFunc) define.PropertyImplementation {
	return &propertyAccessors{getter: getter, setter: setter}
}

func (s *propertyAccessors) Declare(*define.TypeDefinition, *define.GeneratedProperty) error {
	return nil
}

func (s *propertyAccessors) ImplementGetter(td *define.TypeDefinition, p *define.GeneratedProperty, b *emit.Body) error {
	if s.getter == nil {
		return fmt.Errorf("property %s declares a getter but no getter callback was supplied", p.Name())
	}
	return s.getter(td, b)
}

func (s *propertyAccessors) ImplementSetter(td *define.TypeDefinition, p *define.GeneratedProperty, b *emit.Body) error {
	if s.setter == nil {
		return fmt.Errorf("property %s declares a setter but no setter callback was supplied", p.Name())
	}
	return s.setter(td, b)
}

func (s *propertyAccessors) OnRemoving(*define.TypeDefinition, *define.GeneratedProperty) {}
