package emit

import (
	"fmt"

	"github.com/syssam/typeforge/member"
)

// Verify checks that a recorded body is executable for a member with the
// given return type: every label is marked, the operand stack never
// underflows, converging paths agree on stack depth, and every control-flow
// path terminates with the correct return form. The underlying evaluator
// rejects incomplete bodies, so a failure here is surfaced before any
// instance can observe a half-implemented member.
func Verify(b *Body, returns member.TypeInfo) error {
	if b == nil {
		return fmt.Errorf("emit: nil body")
	}
	if err := b.Err(); err != nil {
		return err
	}
	wantValue := ReturnsValue(returns)

	type entry struct {
		pc    int
		depth int
	}
	seen := make(map[int]int, len(b.ops))
	work := []entry{{pc: 0, depth: 0}}
	enqueue := func(pc, depth int, work []entry) ([]entry, error) {
		if prev, ok := seen[pc]; ok {
			if prev != depth {
				return work, fmt.Errorf("emit: stack depth mismatch at instruction %d (%d vs %d)", pc, prev, depth)
			}
			return work, nil
		}
		seen[pc] = depth
		return append(work, entry{pc: pc, depth: depth}), nil
	}
	seen[0] = 0

	for len(work) > 0 {
		e := work[len(work)-1]
		work = work[:len(work)-1]
		pc, depth := e.pc, e.depth
		if pc >= len(b.ops) {
			return fmt.Errorf("emit: control flow falls off the end of the body")
		}
		in := b.ops[pc]
		var err error
		switch in.Op {
		case OpLoadConst, OpLoadArg, OpLoadField:
			work, err = enqueue(pc+1, depth+1, work)
		case OpDup:
			if depth < 1 {
				return fmt.Errorf("emit: stack underflow at instruction %d", pc)
			}
			work, err = enqueue(pc+1, depth+1, work)
		case OpStoreField, OpPop, OpAppendHandler, OpRemoveHandler:
			if depth < 1 {
				return fmt.Errorf("emit: stack underflow at instruction %d", pc)
			}
			work, err = enqueue(pc+1, depth-1, work)
		case OpCallMethod, OpCallBase:
			if depth < in.Arg {
				return fmt.Errorf("emit: stack underflow at instruction %d", pc)
			}
			next := depth - in.Arg
			if in.Result {
				next++
			}
			work, err = enqueue(pc+1, next, work)
		case OpBranch:
			target, ok := b.LabelTarget(in.Label)
			if !ok {
				return fmt.Errorf("emit: branch to unmarked label %d", in.Label)
			}
			work, err = enqueue(target, depth, work)
		case OpBranchIfEqual:
			if depth < 2 {
				return fmt.Errorf("emit: stack underflow at instruction %d", pc)
			}
			target, ok := b.LabelTarget(in.Label)
			if !ok {
				return fmt.Errorf("emit: branch to unmarked label %d", in.Label)
			}
			if work, err = enqueue(target, depth-2, work); err != nil {
				return err
			}
			work, err = enqueue(pc+1, depth-2, work)
		case OpReturn:
			if wantValue {
				return fmt.Errorf("emit: return without a value in a body that must produce %s", returns)
			}
			if depth != 0 {
				return fmt.Errorf("emit: %d values left on the stack at return", depth)
			}
		case OpReturnValue:
			if !wantValue {
				return fmt.Errorf("emit: value returned from a void body")
			}
			if depth != 1 {
				return fmt.Errorf("emit: expected exactly one value on the stack at return, have %d", depth)
			}
		default:
			return fmt.Errorf("emit: unknown opcode %d at instruction %d", in.Op, pc)
		}
		if err != nil {
			return err
		}
	}
	if len(b.ops) == 0 {
		return fmt.Errorf("emit: empty body")
	}
	return nil
}
