package define

import (
	"errors"
	"fmt"

	"github.com/syssam/typeforge"
	"github.com/syssam/typeforge/emit"
	"github.com/syssam/typeforge/member"
	"github.com/syssam/typeforge/object"
)

// Finalize commits the definition into a concrete type. The member set is
// walked in a fixed order: the declare pass runs every strategy's Declare to
// a fixed point (strategies may add members that themselves need declaring),
// abstract resolution is validated, then the implement pass emits
// constructor bodies followed by event, property and method bodies, each
// verified for completeness. All descriptors are frozen as the type is
// committed. Failure is atomic: the definition is marked failed, no type
// handle is produced, and the definition must be discarded.
func (td *TypeDefinition) Finalize() (*object.Type, error) {
	if td.failed {
		return nil, typeforge.NewInvalidOperationError(td.name, "", "definition failed to finalize and must be discarded")
	}
	if td.state != Open {
		return nil, typeforge.NewInvalidOperationError(td.name, "", fmt.Sprintf("cannot finalize in state %s", td.state))
	}

	td.state = Declaring
	if err := td.runDeclarePass(); err != nil {
		td.failed = true
		return nil, err
	}
	if err := td.checkAbstractResolution(); err != nil {
		td.failed = true
		return nil, err
	}

	td.state = Implementing
	if err := td.runImplementPass(); err != nil {
		td.failed = true
		return nil, err
	}

	td.freezeAll()
	td.state = Finalized

	shape := td.buildShape()
	built := object.NewType(shape)
	if td.module != nil {
		td.module.recordType(built)
	}
	return built, nil
}

// runDeclarePass calls Declare exactly once per strategy-bound member,
// iterating until no undeclared member remains. Declare may add further
// members; the loop picks them up on the next sweep.
func (td *TypeDefinition) runDeclarePass() error {
	for {
		progress := false
		for _, e := range td.events {
			if e.impl == nil || e.declared {
				continue
			}
			e.declared = true
			progress = true
			if err := e.impl.Declare(td, e); err != nil {
				return typeforge.NewCodeGenError(td.name, e.name, "declare", err)
			}
		}
		for _, p := range td.props {
			if p.impl == nil || p.declared {
				continue
			}
			p.declared = true
			progress = true
			if err := p.impl.Declare(td, p); err != nil {
				return typeforge.NewCodeGenError(td.name, p.name, "declare", err)
			}
		}
		for _, m := range td.methods {
			if m.impl == nil || m.declared {
				continue
			}
			m.declared = true
			progress = true
			if err := m.impl.Declare(td, m); err != nil {
				return typeforge.NewCodeGenError(td.name, m.name, "declare", err)
			}
		}
		for _, c := range td.ctors {
			if c.impl == nil || c.declared {
				continue
			}
			c.declared = true
			progress = true
			if err := c.impl.Declare(td, c); err != nil {
				return typeforge.NewCodeGenError(td.name, "", "declare", err)
			}
		}
		if !progress {
			return nil
		}
	}
}

// checkAbstractResolution rejects abstract members on instantiable types
// and requires every abstract member of an object base type to be
// overridden unless this type is abstract as well.
func (td *TypeDefinition) checkAbstractResolution() error {
	abstractOK := td.attrs == member.AbstractClass
	if td.valueType {
		abstractOK = false
	}
	if !abstractOK {
		for _, m := range td.methods {
			if m.kind == member.Abstract {
				return typeforge.NewCodeGenError(td.name, m.name, "declare",
					errors.New("abstract member on a non-abstract type"))
			}
		}
		for _, p := range td.props {
			if p.kind == member.Abstract {
				return typeforge.NewCodeGenError(td.name, p.name, "declare",
					errors.New("abstract member on a non-abstract type"))
			}
		}
		for _, e := range td.events {
			if e.kind == member.Abstract {
				return typeforge.NewCodeGenError(td.name, e.name, "declare",
					errors.New("abstract member on a non-abstract type"))
			}
		}
	}
	baseType, ok := td.base.(*object.Type)
	if !ok || abstractOK {
		return nil
	}
	for cur := baseType; cur != nil; cur = cur.Base() {
		for _, m := range cur.Methods() {
			if m.Meta.Kind != member.Abstract {
				continue
			}
			if override, found := td.MethodNamed(m.Meta.Name, m.Meta.Params); !found || override.kind != member.Override {
				return typeforge.NewCodeGenError(td.name, m.Meta.Name, "declare",
					fmt.Errorf("abstract member inherited from %s is not overridden", cur.Name()))
			}
		}
	}
	return nil
}

func (td *TypeDefinition) runImplementPass() error {
	implement := func(name string, returns member.TypeInfo, write func(*emit.Body) error) (*emit.Body, error) {
		body := emit.NewBody()
		if err := write(body); err != nil {
			return nil, typeforge.NewCodeGenError(td.name, name, "implement", err)
		}
		if err := emit.Verify(body, returns); err != nil {
			return nil, typeforge.NewCodeGenError(td.name, name, "implement", err)
		}
		return body, nil
	}

	for _, c := range td.ctors {
		body, err := implement("", member.Void, func(b *emit.Body) error {
			if c.impl != nil {
				return c.impl.Implement(td, c, b)
			}
			return c.callback(td, b)
		})
		if err != nil {
			return err
		}
		c.body = body
	}
	for _, e := range td.events {
		if e.kind == member.Abstract {
			continue
		}
		if e.handlerField == "" {
			return typeforge.NewCodeGenError(td.name, e.name, "implement",
				errors.New("event strategy did not register a handler-list field"))
		}
		addBody, err := implement(e.add.name, member.Void, func(b *emit.Body) error {
			return e.impl.ImplementAdd(td, e, b)
		})
		if err != nil {
			return err
		}
		e.add.body = addBody
		removeBody, err := implement(e.remove.name, member.Void, func(b *emit.Body) error {
			return e.impl.ImplementRemove(td, e, b)
		})
		if err != nil {
			return err
		}
		e.remove.body = removeBody
	}
	for _, p := range td.props {
		if p.kind == member.Abstract {
			continue
		}
		if p.getter != nil {
			body, err := implement(p.getter.name, p.typ, func(b *emit.Body) error {
				return p.impl.ImplementGetter(td, p, b)
			})
			if err != nil {
				return err
			}
			p.getter.body = body
		}
		if p.setter != nil {
			body, err := implement(p.setter.name, member.Void, func(b *emit.Body) error {
				return p.impl.ImplementSetter(td, p, b)
			})
			if err != nil {
				return err
			}
			p.setter.body = body
		}
	}
	for _, m := range td.methods {
		if m.accessorOf != nil || m.kind == member.Abstract || m.body != nil {
			continue
		}
		body, err := implement(m.name, m.returns, func(b *emit.Body) error {
			if m.impl != nil {
				return m.impl.Implement(td, m, b)
			}
			return m.callback(td, b)
		})
		if err != nil {
			return err
		}
		m.body = body
	}
	return nil
}

func (td *TypeDefinition) freezeAll() {
	for _, f := range td.fields {
		f.freeze()
	}
	for _, m := range td.methods {
		m.freeze()
	}
	for _, p := range td.props {
		p.freeze()
	}
	for _, e := range td.events {
		e.freeze()
	}
	for _, c := range td.ctors {
		c.freeze()
	}
}

func (td *TypeDefinition) buildShape() object.Shape {
	shape := object.Shape{
		Name:      td.name,
		ValueType: td.valueType,
		Attrs:     td.attrs,
	}
	if td.module != nil {
		shape.Module = td.module.Name()
	}
	if baseType, ok := td.base.(*object.Type); ok {
		shape.Base = baseType
	}
	for _, f := range td.fields {
		initial, _ := f.Initializer()
		shape.Fields = append(shape.Fields, &object.Field{Meta: f.Meta(), Initial: initial})
	}
	for _, m := range td.methods {
		shape.Methods = append(shape.Methods, &object.Method{Meta: m.Meta(), Body: m.body})
	}
	for _, p := range td.props {
		prop := &object.Property{Meta: p.Meta()}
		if p.getter != nil {
			prop.Getter = p.getter.name
		}
		if p.setter != nil {
			prop.Setter = p.setter.name
		}
		shape.Properties = append(shape.Properties, prop)
	}
	for _, e := range td.events {
		shape.Events = append(shape.Events, &object.Event{
			Meta:   e.Meta(),
			Add:    e.add.name,
			Remove: e.remove.name,
			Field:  e.handlerField,
		})
	}
	for _, c := range td.ctors {
		shape.Constructors = append(shape.Constructors, &object.Constructor{Meta: c.Meta(), Body: c.body})
	}
	return shape
}
