package define

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/syssam/typeforge"
	"github.com/syssam/typeforge/member"
	"github.com/syssam/typeforge/object"
)

// ModuleDefinition owns one dynamic container and acts as the factory for
// type definitions scoped to it. Type names are unique within a module;
// member collisions are checked per definition only.
type ModuleDefinition struct {
	name  string
	id    uuid.UUID
	types []*TypeDefinition
	built []*object.Type
}

// NewModule creates a module definition with a fresh container identity.
func NewModule(name string) (*ModuleDefinition, error) {
	if !member.ValidIdent(name) {
		return nil, typeforge.NewArgumentError("name", name, "not a valid module identifier")
	}
	return &ModuleDefinition{name: name, id: uuid.New()}, nil
}

// Name returns the module name.
func (m *ModuleDefinition) Name() string { return m.name }

// ID returns the unique container identity assigned at creation.
func (m *ModuleDefinition) ID() uuid.UUID { return m.id }

// ContainerName returns the globally unique name of the dynamic container,
// derived from the module name and its identity.
func (m *ModuleDefinition) ContainerName() string {
	return fmt.Sprintf("%s_%s", m.name, m.id.String()[:8])
}

// Types returns the definitions created through this module.
func (m *ModuleDefinition) Types() []*TypeDefinition { return m.types }

// BuiltTypes returns the types finalized so far, in finalization order.
func (m *ModuleDefinition) BuiltTypes() []*object.Type { return m.built }

// NewClass creates a class definition hosted by this module.
func (m *ModuleDefinition) NewClass(name string, base BaseType, attrs member.ClassAttributes) (*TypeDefinition, error) {
	if err := m.checkTypeName(name); err != nil {
		return nil, err
	}
	td, err := newDefinition(m, name, base, false, attrs)
	if err != nil {
		return nil, err
	}
	m.types = append(m.types, td)
	return td, nil
}

// NewStruct creates a struct definition hosted by this module.
func (m *ModuleDefinition) NewStruct(name string) (*TypeDefinition, error) {
	if err := m.checkTypeName(name); err != nil {
		return nil, err
	}
	td, err := newDefinition(m, name, nil, true, member.None)
	if err != nil {
		return nil, err
	}
	m.types = append(m.types, td)
	return td, nil
}

func (m *ModuleDefinition) checkTypeName(name string) error {
	for _, td := range m.types {
		if td.name == name {
			return typeforge.NewDuplicateMemberError(m.name, "type", name, "")
		}
	}
	return nil
}

// FinalizeAll finalizes every definition still open, in creation order, and
// returns all types built through this module.
func (m *ModuleDefinition) FinalizeAll() ([]*object.Type, error) {
	for _, td := range m.types {
		if td.state != Open {
			continue
		}
		if _, err := td.Finalize(); err != nil {
			return nil, err
		}
	}
	return m.built, nil
}

func (m *ModuleDefinition) recordType(t *object.Type) {
	m.built = append(m.built, t)
}
