package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/typeforge/emit"
	"github.com/syssam/typeforge/member"
	"github.com/syssam/typeforge/object"
)

// translateBody converts a recorded instruction sequence to Go statements.
// Values are tracked on an expression stack; labels become Go labels with
// goto branches. ctorResult, when non-nil, is the expression returned in
// place of a bare return (constructor functions return the new value).
func translateBody(g *jen.Group, t *object.Type, names *naming, recv string, body *emit.Body, ctorResult *jen.Statement) error {
	ops := body.Ops()

	// Collect branch targets so labels are only emitted where used.
	labels := make(map[int]string)
	for _, in := range ops {
		if in.Op == emit.OpBranch || in.Op == emit.OpBranchIfEqual {
			target, ok := body.LabelTarget(in.Label)
			if !ok {
				return fmt.Errorf("branch to unmarked label %d", in.Label)
			}
			labels[target] = fmt.Sprintf("l%d", in.Label)
		}
	}

	var stack []*jen.Statement
	pop := func() *jen.Statement {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return s
	}
	fieldRef := func(name string) (*jen.Statement, error) {
		for cur := t; cur != nil; cur = cur.Base() {
			for _, fd := range cur.Fields() {
				if fd.Meta.Name != name {
					continue
				}
				if fd.Meta.Static {
					return jen.Id(names.staticField(cur, name)), nil
				}
				return jen.Id(recv).Dot(names.field(name)), nil
			}
		}
		return nil, fmt.Errorf("body references unknown field %q", name)
	}

	for pc, in := range ops {
		if lbl, ok := labels[pc]; ok {
			if len(stack) != 0 {
				return fmt.Errorf("values on the expression stack at label %s", lbl)
			}
			g.Id(lbl).Op(":")
		}
		switch in.Op {
		case emit.OpLoadConst:
			lit, err := litExpr(in.Value)
			if err != nil {
				return err
			}
			stack = append(stack, lit)
		case emit.OpLoadArg:
			stack = append(stack, jen.Id(argName(in.Arg)))
		case emit.OpLoadField:
			ref, err := fieldRef(in.Name)
			if err != nil {
				return err
			}
			stack = append(stack, ref)
		case emit.OpStoreField:
			v := pop()
			ref, err := fieldRef(in.Name)
			if err != nil {
				return err
			}
			g.Add(ref).Op("=").Add(v)
		case emit.OpCallMethod, emit.OpCallBase:
			args := make([]jen.Code, in.Arg)
			for i := in.Arg - 1; i >= 0; i-- {
				args[i] = pop()
			}
			call, err := callExpr(t, names, recv, in, args)
			if err != nil {
				return err
			}
			if in.Result {
				stack = append(stack, call)
			} else {
				g.Add(call)
			}
		case emit.OpPop:
			g.Id("_").Op("=").Add(pop())
		case emit.OpDup:
			stack = append(stack, stack[len(stack)-1])
		case emit.OpBranch:
			if len(stack) != 0 {
				return fmt.Errorf("values on the expression stack at branch")
			}
			g.Goto().Id(labels[mustTarget(body, in.Label)])
		case emit.OpBranchIfEqual:
			right := pop()
			left := pop()
			if len(stack) != 0 {
				return fmt.Errorf("values on the expression stack at branch")
			}
			g.If(jen.Qual("github.com/syssam/typeforge/member", "BoxedEqual").Call(left, right)).Block(
				jen.Goto().Id(labels[mustTarget(body, in.Label)]),
			)
		case emit.OpAppendHandler:
			h := pop()
			ref, err := fieldRef(in.Name)
			if err != nil {
				return err
			}
			target, err := fieldRef(in.Name)
			if err != nil {
				return err
			}
			g.Add(ref).Op("=").Append(target, h)
		case emit.OpRemoveHandler:
			if err := renderRemoveHandler(g, in.Name, pop(), fieldRef); err != nil {
				return err
			}
		case emit.OpReturn:
			if ctorResult != nil {
				g.Return(ctorResult)
			} else {
				g.Return()
			}
		case emit.OpReturnValue:
			g.Return(pop())
		default:
			return fmt.Errorf("unsupported opcode %d", in.Op)
		}
	}
	return nil
}

func mustTarget(body *emit.Body, l emit.Label) int {
	target, _ := body.LabelTarget(l)
	return target
}

func callExpr(t *object.Type, names *naming, recv string, in emit.Instr, args []jen.Code) (*jen.Statement, error) {
	if in.Op == emit.OpCallBase {
		base := t.Base()
		if base == nil {
			return nil, fmt.Errorf("base call %q on type %s without a base type", in.Name, t.Name())
		}
		baseNames := newNaming(base)
		meta, ok := base.LookupMethod(in.Name, nil)
		if ok && meta.Kind == member.Static {
			return jen.Id(baseNames.staticMethod(base, in.Name)).Call(args...), nil
		}
		return jen.Id(recv).Dot(base.Name()).Dot(baseNames.method(in.Name)).Call(args...), nil
	}
	meta, ok := t.LookupMethod(in.Name, nil)
	if ok && meta.Kind == member.Static {
		return jen.Id(names.staticMethod(t, in.Name)).Call(args...), nil
	}
	return jen.Id(recv).Dot(names.method(in.Name)).Call(args...), nil
}

// renderRemoveHandler emits the first-match removal loop for an event's
// handler list. Function values are matched by code pointer.
func renderRemoveHandler(g *jen.Group, field string, handler *jen.Statement, fieldRef func(string) (*jen.Statement, error)) error {
	list, err := fieldRef(field)
	if err != nil {
		return err
	}
	idx, err := fieldRef(field)
	if err != nil {
		return err
	}
	slice1, err := fieldRef(field)
	if err != nil {
		return err
	}
	slice2, err := fieldRef(field)
	if err != nil {
		return err
	}
	slice3, err := fieldRef(field)
	if err != nil {
		return err
	}
	g.For(jen.Id("i").Op(":=").Range().Add(list)).Block(
		jen.If(
			jen.Qual("reflect", "ValueOf").Call(jen.Add(idx).Index(jen.Id("i"))).Dot("Pointer").Call().
				Op("==").
				Qual("reflect", "ValueOf").Call(handler).Dot("Pointer").Call(),
		).Block(
			jen.Add(slice1).Op("=").Append(
				jen.Add(slice2).Index(jen.Empty(), jen.Id("i")),
				jen.Add(slice3).Index(jen.Id("i").Op("+").Lit(1), jen.Empty()).Op("..."),
			),
			jen.Break(),
		),
	)
	return nil
}
