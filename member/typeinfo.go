package member

import (
	"fmt"
	"strings"
)

// TypeKind is the closed set of value categories the engine can describe.
type TypeKind int

// Supported value categories.
const (
	TypeInvalid TypeKind = iota
	TypeVoid
	TypeBool
	TypeInt
	TypeInt64
	TypeFloat64
	TypeString
	TypeBytes
	TypeDecimal
	TypeTime
	TypeAny
	TypeNamed
)

var typeKindNames = [...]string{
	TypeInvalid: "invalid",
	TypeVoid:    "void",
	TypeBool:    "bool",
	TypeInt:     "int",
	TypeInt64:   "int64",
	TypeFloat64: "float64",
	TypeString:  "string",
	TypeBytes:   "[]byte",
	TypeDecimal: "decimal.Decimal",
	TypeTime:    "time.Time",
	TypeAny:     "any",
	TypeNamed:   "named",
}

// String returns the Go spelling of the type kind.
func (k TypeKind) String() string {
	if k < 0 || int(k) >= len(typeKindNames) {
		return typeKindNames[TypeInvalid]
	}
	return typeKindNames[k]
}

// TypeInfo holds the type information of a field, parameter or return value.
type TypeInfo struct {
	Kind    TypeKind `msgpack:"kind" yaml:"kind"`
	Ident   string   `msgpack:"ident,omitempty" yaml:"ident,omitempty"`
	PkgPath string   `msgpack:"pkg_path,omitempty" yaml:"pkg_path,omitempty"`
}

// Predeclared type descriptors for the built-in value categories.
var (
	Void    = TypeInfo{Kind: TypeVoid}
	Bool    = TypeInfo{Kind: TypeBool}
	Int     = TypeInfo{Kind: TypeInt}
	Int64   = TypeInfo{Kind: TypeInt64}
	Float64 = TypeInfo{Kind: TypeFloat64}
	String  = TypeInfo{Kind: TypeString}
	Bytes   = TypeInfo{Kind: TypeBytes}
	Decimal = TypeInfo{Kind: TypeDecimal}
	Time    = TypeInfo{Kind: TypeTime}
	Any     = TypeInfo{Kind: TypeAny}
)

// Named returns a descriptor for a named type outside the built-in set,
// e.g. a type assembled by this engine or a host Go type.
func Named(ident, pkgPath string) TypeInfo {
	return TypeInfo{Kind: TypeNamed, Ident: ident, PkgPath: pkgPath}
}

// Valid reports whether t describes a usable value type. Void is valid only
// as a return type and invalid for fields and parameters.
func (t TypeInfo) Valid() bool {
	return t.Kind > TypeInvalid && int(t.Kind) < len(typeKindNames)
}

// IsVoid reports whether t is the absent return type.
func (t TypeInfo) IsVoid() bool {
	return t.Kind == TypeVoid
}

// Equal reports whether two descriptors denote the same type.
func (t TypeInfo) Equal(other TypeInfo) bool {
	return t.Kind == other.Kind && t.Ident == other.Ident && t.PkgPath == other.PkgPath
}

// String returns the Go spelling of the type.
func (t TypeInfo) String() string {
	if t.Kind == TypeNamed {
		if t.PkgPath != "" {
			return fmt.Sprintf("%s.%s", t.PkgPath, t.Ident)
		}
		return t.Ident
	}
	return t.Kind.String()
}

// SignatureEqual reports whether two ordered parameter-type sequences are
// identical. Order is significant; an empty and a nil sequence compare equal.
func SignatureEqual(a, b []TypeInfo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Signature renders an ordered parameter-type sequence for error messages
// and lookup keys, e.g. "int, string".
func Signature(params []TypeInfo) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
