package emit

import (
	"fmt"

	"github.com/syssam/typeforge/member"
)

// Receiver is the surface a body executes against. Instance methods run
// with an object instance as the receiver; static bodies run against the
// finalized type itself.
type Receiver interface {
	// FieldValue returns the current value of the named field.
	FieldValue(name string) (any, bool)
	// SetFieldValue stores v into the named field.
	SetFieldValue(name string, v any) error
	// Invoke calls the named method through virtual dispatch.
	Invoke(name string, args []any) (any, error)
	// InvokeBase calls the base-type implementation of the named method.
	InvokeBase(name string, args []any) (any, error)
	// AppendHandler appends h to the named handler-list field.
	AppendHandler(field string, h any) error
	// RemoveHandler removes the first occurrence of h from the named
	// handler-list field.
	RemoveHandler(field string, h any) error
}

// Eval executes the body against recv with the given arguments and returns
// the produced value (nil for void bodies). Bodies are verified at finalize
// time, so execution-time failures indicate receiver errors (unknown field,
// failed call), not malformed instruction sequences.
func (b *Body) Eval(recv Receiver, args []any) (any, error) {
	stack := make([]any, 0, 8)
	pop := func() any {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}
	pc := 0
	for pc < len(b.ops) {
		in := b.ops[pc]
		switch in.Op {
		case OpLoadConst:
			stack = append(stack, in.Value)
		case OpLoadArg:
			if in.Arg >= len(args) {
				return nil, fmt.Errorf("emit: argument %d out of range (%d supplied)", in.Arg, len(args))
			}
			stack = append(stack, args[in.Arg])
		case OpLoadField:
			v, ok := recv.FieldValue(in.Name)
			if !ok {
				return nil, fmt.Errorf("emit: unknown field %q", in.Name)
			}
			stack = append(stack, v)
		case OpStoreField:
			if err := recv.SetFieldValue(in.Name, pop()); err != nil {
				return nil, err
			}
		case OpCallMethod, OpCallBase:
			callArgs := make([]any, in.Arg)
			for i := in.Arg - 1; i >= 0; i-- {
				callArgs[i] = pop()
			}
			var (
				out any
				err error
			)
			if in.Op == OpCallBase {
				out, err = recv.InvokeBase(in.Name, callArgs)
			} else {
				out, err = recv.Invoke(in.Name, callArgs)
			}
			if err != nil {
				return nil, err
			}
			if in.Result {
				stack = append(stack, out)
			}
		case OpPop:
			pop()
		case OpDup:
			stack = append(stack, stack[len(stack)-1])
		case OpBranch:
			pc, _ = b.LabelTarget(in.Label)
			continue
		case OpBranchIfEqual:
			right := pop()
			left := pop()
			if member.BoxedEqual(left, right) {
				pc, _ = b.LabelTarget(in.Label)
				continue
			}
		case OpAppendHandler:
			if err := recv.AppendHandler(in.Name, pop()); err != nil {
				return nil, err
			}
		case OpRemoveHandler:
			if err := recv.RemoveHandler(in.Name, pop()); err != nil {
				return nil, err
			}
		case OpReturn:
			return nil, nil
		case OpReturnValue:
			return pop(), nil
		default:
			return nil, fmt.Errorf("emit: unknown opcode %d", in.Op)
		}
		pc++
	}
	return nil, fmt.Errorf("emit: control flow fell off the end of the body")
}
