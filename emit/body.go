// Package emit provides the narrow code-emission capability set the
// assembly engine writes member bodies against: constant and argument
// loads, field load/store, method and base calls, labels and branches,
// and returns. A Body records the instruction sequence; it can be
// verified for completeness, executed in-process against a receiver, or
// translated to Go source by the compiler/gen backend.
package emit

import (
	"fmt"

	"github.com/syssam/typeforge/member"
)

// OpCode identifies one instruction in a member body.
type OpCode int

// Instruction set. The engine's strategies are written against exactly
// this surface; there is no general-purpose instruction encoder behind it.
const (
	OpLoadConst OpCode = iota
	OpLoadArg
	OpLoadField
	OpStoreField
	OpCallMethod
	OpCallBase
	OpPop
	OpDup
	OpBranch
	OpBranchIfEqual
	OpAppendHandler
	OpRemoveHandler
	OpReturn
	OpReturnValue
)

// Label marks a branch target within one body.
type Label int

// Instr is a single recorded instruction.
type Instr struct {
	Op    OpCode
	Name  string // field or method name
	Value any    // constant for OpLoadConst
	Arg   int    // argument index or call arity
	Label Label
	// Result reports whether a call pushes a value.
	Result bool
}

// Body accumulates the executable instruction sequence of one member.
// Builder methods record the first error and turn subsequent calls into
// no-ops, so emission code can be written without per-call checks; the
// deferred error surfaces from Err and from verification at finalize time.
type Body struct {
	ops    []Instr
	labels int
	marks  map[Label]int
	err    error
}

// NewBody returns an empty body.
func NewBody() *Body {
	return &Body{marks: make(map[Label]int)}
}

// Err returns the first recording error, if any.
func (b *Body) Err() error {
	return b.err
}

// Ops returns the recorded instruction sequence.
func (b *Body) Ops() []Instr {
	return b.ops
}

// LabelTarget returns the instruction index a label was marked at.
func (b *Body) LabelTarget(l Label) (int, bool) {
	i, ok := b.marks[l]
	return i, ok
}

func (b *Body) push(in Instr) *Body {
	if b.err == nil {
		b.ops = append(b.ops, in)
	}
	return b
}

// LoadConst pushes a constant.
func (b *Body) LoadConst(v any) *Body {
	return b.push(Instr{Op: OpLoadConst, Value: v})
}

// LoadArg pushes the i-th argument (zero-based, excluding the receiver).
func (b *Body) LoadArg(i int) *Body {
	if b.err == nil && i < 0 {
		b.err = fmt.Errorf("emit: negative argument index %d", i)
		return b
	}
	return b.push(Instr{Op: OpLoadArg, Arg: i})
}

// LoadField pushes the value of the named field on the receiver.
func (b *Body) LoadField(name string) *Body {
	return b.push(Instr{Op: OpLoadField, Name: name})
}

// StoreField pops a value and stores it into the named field.
func (b *Body) StoreField(name string) *Body {
	return b.push(Instr{Op: OpStoreField, Name: name})
}

// CallMethod pops argc arguments and invokes the named method on the
// receiver through virtual dispatch. If result is true the return value
// is pushed.
func (b *Body) CallMethod(name string, argc int, result bool) *Body {
	return b.push(Instr{Op: OpCallMethod, Name: name, Arg: argc, Result: result})
}

// CallBase pops argc arguments and invokes the base-type implementation
// of the named method, bypassing virtual dispatch.
func (b *Body) CallBase(name string, argc int, result bool) *Body {
	return b.push(Instr{Op: OpCallBase, Name: name, Arg: argc, Result: result})
}

// Pop discards the top of the stack.
func (b *Body) Pop() *Body {
	return b.push(Instr{Op: OpPop})
}

// Dup duplicates the top of the stack.
func (b *Body) Dup() *Body {
	return b.push(Instr{Op: OpDup})
}

// NewLabel allocates a fresh, unmarked label.
func (b *Body) NewLabel() Label {
	l := Label(b.labels)
	b.labels++
	return l
}

// MarkLabel pins l to the next instruction recorded.
func (b *Body) MarkLabel(l Label) *Body {
	if b.err != nil {
		return b
	}
	if _, dup := b.marks[l]; dup {
		b.err = fmt.Errorf("emit: label %d marked twice", l)
		return b
	}
	b.marks[l] = len(b.ops)
	return b
}

// Branch jumps unconditionally to l.
func (b *Body) Branch(l Label) *Body {
	return b.push(Instr{Op: OpBranch, Label: l})
}

// BranchIfEqual pops two values and jumps to l when they compare equal
// under boxed equality (member.BoxedEqual).
func (b *Body) BranchIfEqual(l Label) *Body {
	return b.push(Instr{Op: OpBranchIfEqual, Label: l})
}

// AppendHandler pops a value and appends it to the named handler-list field.
func (b *Body) AppendHandler(field string) *Body {
	return b.push(Instr{Op: OpAppendHandler, Name: field})
}

// RemoveHandler pops a value and removes its first occurrence from the
// named handler-list field.
func (b *Body) RemoveHandler(field string) *Body {
	return b.push(Instr{Op: OpRemoveHandler, Name: field})
}

// Return ends the body without a value.
func (b *Body) Return() *Body {
	return b.push(Instr{Op: OpReturn})
}

// ReturnValue pops the return value and ends the body.
func (b *Body) ReturnValue() *Body {
	return b.push(Instr{Op: OpReturnValue})
}

// ReturnsValue reports whether returns requires OpReturnValue terminators.
func ReturnsValue(returns member.TypeInfo) bool {
	return returns.Valid() && !returns.IsVoid()
}
