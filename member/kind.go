// Package member defines the descriptor vocabulary shared by the assembly
// engine: visibility and kind enumerations, value-type information for
// fields and signatures, and the metadata records used to describe members
// of already-built base types.
package member

// Visibility describes the access level of a member or type.
type Visibility int

// Visibility levels, widest first.
const (
	NotSpecified Visibility = iota
	Private
	Internal
	Protected
	ProtectedInternal
	Public
)

var visibilityNames = map[Visibility]string{
	NotSpecified:      "notspecified",
	Private:           "private",
	Internal:          "internal",
	Protected:         "protected",
	ProtectedInternal: "protected internal",
	Public:            "public",
}

// String returns the lowercase name of the visibility level.
func (v Visibility) String() string {
	if s, ok := visibilityNames[v]; ok {
		return s
	}
	return "invalid"
}

// Valid reports whether v is one of the declared visibility levels.
func (v Visibility) Valid() bool {
	_, ok := visibilityNames[v]
	return ok
}

// Exported reports whether members with this visibility surface as exported
// identifiers when rendered to Go source.
func (v Visibility) Exported() bool {
	return v == Public || v == ProtectedInternal || v == Protected
}

// rank orders visibility levels for narrowing checks. Protected and Internal
// are incomparable access domains; they share a rank so that switching
// between them counts as narrowing in both directions.
func (v Visibility) rank() int {
	switch v {
	case Public:
		return 4
	case ProtectedInternal:
		return 3
	case Protected, Internal:
		return 2
	case Private:
		return 1
	default:
		return 0
	}
}

// Narrows reports whether using v in place of from reduces accessibility.
// An override must not narrow the visibility of the member it overrides.
func (v Visibility) Narrows(from Visibility) bool {
	if v == from {
		return false
	}
	if v.rank() != from.rank() {
		return v.rank() < from.rank()
	}
	// Same rank but different domain (protected vs. internal).
	return true
}

// Kind describes how a method-shaped member participates in dispatch.
type Kind int

// Member kinds.
const (
	Static Kind = iota
	Normal
	Virtual
	Abstract
	Override
)

// MethodKind, PropertyKind and EventKind are the per-family names for the
// shared kind enumeration.
type (
	MethodKind   = Kind
	PropertyKind = Kind
	EventKind    = Kind
)

var kindNames = map[Kind]string{
	Static:   "static",
	Normal:   "normal",
	Virtual:  "virtual",
	Abstract: "abstract",
	Override: "override",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Overridable reports whether an inherited member of this kind may be
// overridden. Static and Normal members are not part of virtual dispatch.
func (k Kind) Overridable() bool {
	return k == Virtual || k == Abstract || k == Override
}

// ClassAttributes describe type-level modifiers.
type ClassAttributes int

// Type-level modifiers.
const (
	None ClassAttributes = iota
	AbstractClass
	Sealed
)

// String returns the lowercase name of the attribute set.
func (a ClassAttributes) String() string {
	switch a {
	case None:
		return "none"
	case AbstractClass:
		return "abstract"
	case Sealed:
		return "sealed"
	default:
		return "invalid"
	}
}
