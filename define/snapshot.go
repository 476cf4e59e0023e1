package define

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/typeforge"
	"github.com/syssam/typeforge/member"
	"github.com/syssam/typeforge/object"
)

// ModuleSnapshot is the serializable shape of a finalized module: type and
// member metadata only, no strategies or bodies. Snapshots let the source
// backend and the CLI skip regeneration when the declared shape is
// unchanged between runs.
type ModuleSnapshot struct {
	Module    string         `msgpack:"module"`
	Container string         `msgpack:"container"`
	Types     []TypeSnapshot `msgpack:"types"`
}

// TypeSnapshot is the serializable shape of one finalized type.
type TypeSnapshot struct {
	Name         string                   `msgpack:"name"`
	Base         string                   `msgpack:"base,omitempty"`
	ValueType    bool                     `msgpack:"value_type,omitempty"`
	Attrs        member.ClassAttributes   `msgpack:"attrs,omitempty"`
	Fields       []member.FieldMeta       `msgpack:"fields,omitempty"`
	Methods      []member.MethodMeta      `msgpack:"methods,omitempty"`
	Properties   []member.PropertyMeta    `msgpack:"properties,omitempty"`
	Events       []member.EventMeta       `msgpack:"events,omitempty"`
	Constructors []member.ConstructorMeta `msgpack:"constructors,omitempty"`
}

// Snapshot captures the shape of every type finalized through the module.
// It fails if no type has been finalized yet.
func (m *ModuleDefinition) Snapshot() (*ModuleSnapshot, error) {
	if len(m.built) == 0 {
		return nil, typeforge.NewInvalidOperationError(m.name, "", "module has no finalized types to snapshot")
	}
	snap := &ModuleSnapshot{Module: m.name, Container: m.ContainerName()}
	for _, t := range m.built {
		snap.Types = append(snap.Types, snapshotType(t))
	}
	return snap, nil
}

func snapshotType(t *object.Type) TypeSnapshot {
	ts := TypeSnapshot{
		Name:      t.Name(),
		ValueType: t.IsValueType(),
		Attrs:     t.Attributes(),
	}
	if t.Base() != nil {
		ts.Base = t.Base().Name()
	}
	for _, f := range t.Fields() {
		ts.Fields = append(ts.Fields, f.Meta)
	}
	for _, m := range t.Methods() {
		ts.Methods = append(ts.Methods, m.Meta)
	}
	for _, p := range t.Properties() {
		ts.Properties = append(ts.Properties, p.Meta)
	}
	for _, e := range t.Events() {
		ts.Events = append(ts.Events, e.Meta)
	}
	for _, c := range t.Constructors() {
		ts.Constructors = append(ts.Constructors, c.Meta)
	}
	return ts
}

// Encode serializes the snapshot.
func (s *ModuleSnapshot) Encode() ([]byte, error) {
	return msgpack.Marshal(s)
}

// DecodeSnapshot deserializes a snapshot produced by Encode.
func DecodeSnapshot(data []byte) (*ModuleSnapshot, error) {
	var s ModuleSnapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, typeforge.NewArgumentError("data", nil, "malformed module snapshot: "+err.Error())
	}
	return &s, nil
}
