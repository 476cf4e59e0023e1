// Package typeforge assembles types at runtime from declarative descriptions.
//
// A ModuleDefinition hosts one or more TypeDefinitions. Each TypeDefinition
// accumulates member descriptors (fields, properties, events, methods,
// constructors) through its declare-time API, validates uniqueness and
// override compatibility as members are added, and finalizes into an
// instantiable in-memory type whose member bodies are supplied by pluggable
// implementation strategies. Finalized types can additionally be rendered to
// Go source through the compiler/gen backend.
//
// The root package carries the error taxonomy shared by all subpackages and
// the process-wide attachment registry for finalized types.
package typeforge
