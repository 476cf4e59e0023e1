package typeforge

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the assembly engine's failure classes.
var (
	// ErrDuplicateMember is returned when a generated member collides with an
	// existing member of the same kind and signature.
	ErrDuplicateMember = errors.New("typeforge: duplicate member")

	// ErrInvalidOperation is returned when an operation is not permitted in
	// the current state, e.g. mutating a frozen member or overriding a
	// non-overridable inherited member.
	ErrInvalidOperation = errors.New("typeforge: invalid operation")

	// ErrCodeGen is returned when body emission fails during finalization.
	ErrCodeGen = errors.New("typeforge: code generation failed")

	// ErrArgument is returned for invalid user-supplied input such as a
	// malformed identifier or a nil required strategy.
	ErrArgument = errors.New("typeforge: invalid argument")
)

// DuplicateMemberError reports a signature collision among generated members
// of the same kind on one type definition.
type DuplicateMemberError struct {
	Type      string // type definition name
	Kind      string // member kind ("field", "method", ...)
	Member    string // member name; empty for constructors
	Signature string // rendered parameter signature, if applicable
}

// Error returns the error string.
func (e *DuplicateMemberError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "typeforge: duplicate %s", e.Kind)
	if e.Member != "" {
		fmt.Fprintf(&b, " %q", e.Member)
	}
	if e.Signature != "" {
		fmt.Fprintf(&b, " with signature (%s)", e.Signature)
	}
	if e.Type != "" {
		fmt.Fprintf(&b, " on type %s", e.Type)
	}
	return b.String()
}

// Is reports whether the target matches the duplicate-member sentinel.
// This allows errors.Is(err, ErrDuplicateMember) to return true.
func (e *DuplicateMemberError) Is(target error) bool {
	return target == ErrDuplicateMember
}

// NewDuplicateMemberError returns a new DuplicateMemberError.
func NewDuplicateMemberError(typeName, kind, member, signature string) *DuplicateMemberError {
	return &DuplicateMemberError{Type: typeName, Kind: kind, Member: member, Signature: signature}
}

// IsDuplicateMember returns true if the error is a DuplicateMemberError.
func IsDuplicateMember(err error) bool {
	if err == nil {
		return false
	}
	var e *DuplicateMemberError
	return errors.As(err, &e) || errors.Is(err, ErrDuplicateMember)
}

// InvalidOperationError reports an operation that is not permitted in the
// current lifecycle state: mutating a frozen member, declaring on a finalized
// definition, overriding a member whose kind forbids it, or a missing
// required collaborator member.
type InvalidOperationError struct {
	Type    string // type definition name, if known
	Member  string // member name, if applicable
	Message string
}

// Error returns the error string.
func (e *InvalidOperationError) Error() string {
	var b strings.Builder
	b.WriteString("typeforge: invalid operation")
	if e.Type != "" {
		fmt.Fprintf(&b, " on type %s", e.Type)
	}
	if e.Member != "" {
		fmt.Fprintf(&b, " member %q", e.Member)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the invalid-operation sentinel.
func (e *InvalidOperationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// NewInvalidOperationError returns a new InvalidOperationError.
func NewInvalidOperationError(typeName, member, message string) *InvalidOperationError {
	return &InvalidOperationError{Type: typeName, Member: member, Message: message}
}

// IsInvalidOperation returns true if the error is an InvalidOperationError.
func IsInvalidOperation(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidOperationError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidOperation)
}

// CodeGenError reports a failure during the declare/implement phases of
// finalization. It wraps the underlying cause, which may originate from a
// strategy, a body callback, or the emission backend itself.
type CodeGenError struct {
	Type   string // type definition name
	Member string // member being emitted, if known
	Phase  string // "declare", "implement", "construct"
	Cause  error
}

// Error returns the error string.
func (e *CodeGenError) Error() string {
	var b strings.Builder
	b.WriteString("typeforge: code generation failed")
	if e.Type != "" {
		fmt.Fprintf(&b, " for type %s", e.Type)
	}
	if e.Member != "" {
		fmt.Fprintf(&b, " member %q", e.Member)
	}
	if e.Phase != "" {
		fmt.Fprintf(&b, " during %s", e.Phase)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *CodeGenError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the code-generation sentinel.
func (e *CodeGenError) Is(target error) bool {
	return target == ErrCodeGen
}

// NewCodeGenError returns a new CodeGenError wrapping cause.
func NewCodeGenError(typeName, member, phase string, cause error) *CodeGenError {
	return &CodeGenError{Type: typeName, Member: member, Phase: phase, Cause: cause}
}

// IsCodeGen returns true if the error is a CodeGenError.
func IsCodeGen(err error) bool {
	if err == nil {
		return false
	}
	var e *CodeGenError
	return errors.As(err, &e) || errors.Is(err, ErrCodeGen)
}

// ArgumentError reports invalid user-supplied input detected at the call
// boundary: an empty or malformed identifier, a nil strategy or callback
// where one is required, or both a strategy and a callback supplied at once.
type ArgumentError struct {
	Name    string // parameter name
	Value   any    // offending value, if helpful
	Message string
}

// Error returns the error string.
func (e *ArgumentError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("typeforge: invalid argument %q (value: %v): %s", e.Name, e.Value, e.Message)
	}
	return fmt.Sprintf("typeforge: invalid argument %q: %s", e.Name, e.Message)
}

// Is reports whether the target matches the argument sentinel.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgument
}

// NewArgumentError returns a new ArgumentError.
func NewArgumentError(name string, value any, message string) *ArgumentError {
	return &ArgumentError{Name: name, Value: value, Message: message}
}

// IsArgument returns true if the error is an ArgumentError.
func IsArgument(err error) bool {
	if err == nil {
		return false
	}
	var e *ArgumentError
	return errors.As(err, &e) || errors.Is(err, ErrArgument)
}
