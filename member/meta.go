package member

// Metadata records describe members of an already-built type. The assembly
// engine resolves them from a base type when constructing inherited member
// descriptors, and serializes them when snapshotting a finalized module.

// FieldMeta describes a field of a built type.
type FieldMeta struct {
	Name        string     `msgpack:"name" yaml:"name"`
	Type        TypeInfo   `msgpack:"type" yaml:"type"`
	Visibility  Visibility `msgpack:"visibility" yaml:"visibility"`
	Static      bool       `msgpack:"static,omitempty" yaml:"static,omitempty"`
	HasInitial  bool       `msgpack:"has_initial,omitempty" yaml:"has_initial,omitempty"`
	ReadOnly    bool       `msgpack:"read_only,omitempty" yaml:"read_only,omitempty"`
	DeclaredBy  string     `msgpack:"declared_by,omitempty" yaml:"declared_by,omitempty"`
}

// MethodMeta describes a method of a built type.
type MethodMeta struct {
	Name       string     `msgpack:"name" yaml:"name"`
	Params     []TypeInfo `msgpack:"params,omitempty" yaml:"params,omitempty"`
	Returns    TypeInfo   `msgpack:"returns" yaml:"returns"`
	Visibility Visibility `msgpack:"visibility" yaml:"visibility"`
	Kind       Kind       `msgpack:"kind" yaml:"kind"`
	DeclaredBy string     `msgpack:"declared_by,omitempty" yaml:"declared_by,omitempty"`
}

// PropertyMeta describes a property of a built type.
type PropertyMeta struct {
	Name       string     `msgpack:"name" yaml:"name"`
	Type       TypeInfo   `msgpack:"type" yaml:"type"`
	Visibility Visibility `msgpack:"visibility" yaml:"visibility"`
	Kind       Kind       `msgpack:"kind" yaml:"kind"`
	HasGetter  bool       `msgpack:"has_getter" yaml:"has_getter"`
	HasSetter  bool       `msgpack:"has_setter" yaml:"has_setter"`
	DeclaredBy string     `msgpack:"declared_by,omitempty" yaml:"declared_by,omitempty"`
}

// EventMeta describes an event of a built type. Handler is the type of the
// values accepted by the add/remove accessors.
type EventMeta struct {
	Name       string     `msgpack:"name" yaml:"name"`
	Handler    TypeInfo   `msgpack:"handler" yaml:"handler"`
	Visibility Visibility `msgpack:"visibility" yaml:"visibility"`
	Kind       Kind       `msgpack:"kind" yaml:"kind"`
	DeclaredBy string     `msgpack:"declared_by,omitempty" yaml:"declared_by,omitempty"`
}

// ConstructorMeta describes a constructor of a built type.
type ConstructorMeta struct {
	Params     []TypeInfo `msgpack:"params,omitempty" yaml:"params,omitempty"`
	Visibility Visibility `msgpack:"visibility" yaml:"visibility"`
	DeclaredBy string     `msgpack:"declared_by,omitempty" yaml:"declared_by,omitempty"`
}
