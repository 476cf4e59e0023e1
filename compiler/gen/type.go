package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/shopspring/decimal"

	"github.com/syssam/typeforge/member"
	"github.com/syssam/typeforge/object"
)

// naming maps engine member names to the Go identifiers they render as.
// Accessor methods collapse into idiomatic Go spellings: get_X becomes X,
// set_X becomes SetX, add_X/remove_X become AddXHandler/RemoveXHandler.
type naming struct {
	t        *object.Type
	handlers map[string]bool // handler-list backing fields
}

func newNaming(t *object.Type) *naming {
	n := &naming{t: t, handlers: make(map[string]bool)}
	for cur := t; cur != nil; cur = cur.Base() {
		for _, e := range cur.Events() {
			if e.Field != "" {
				n.handlers[e.Field] = true
			}
		}
	}
	return n
}

func (n *naming) field(name string) string {
	meta, ok := n.t.LookupField(name)
	if ok && meta.Visibility.Exported() {
		return member.Exported(name)
	}
	return member.Unexported(name)
}

func (n *naming) staticField(t *object.Type, name string) string {
	return member.Unexported(t.Name()) + member.Exported(name)
}

func (n *naming) method(name string) string {
	switch {
	case len(name) > 4 && name[:4] == "get_":
		return member.Exported(name[4:])
	case len(name) > 4 && name[:4] == "set_":
		return "Set" + member.Exported(name[4:])
	case len(name) > 4 && name[:4] == "add_":
		return "Add" + member.Exported(name[4:]) + "Handler"
	case len(name) > 7 && name[:7] == "remove_":
		return "Remove" + member.Exported(name[7:]) + "Handler"
	}
	meta, ok := n.t.LookupMethod(name, nil)
	if ok && !meta.Visibility.Exported() {
		return member.Unexported(name)
	}
	return member.Exported(name)
}

func (n *naming) staticMethod(t *object.Type, name string) string {
	return t.Name() + member.Exported(name)
}

// typeExpr renders the Go spelling of a type descriptor.
func typeExpr(t member.TypeInfo) (*jen.Statement, error) {
	switch t.Kind {
	case member.TypeBool:
		return jen.Bool(), nil
	case member.TypeInt:
		return jen.Int(), nil
	case member.TypeInt64:
		return jen.Int64(), nil
	case member.TypeFloat64:
		return jen.Float64(), nil
	case member.TypeString:
		return jen.String(), nil
	case member.TypeBytes:
		return jen.Index().Byte(), nil
	case member.TypeDecimal:
		return jen.Qual("github.com/shopspring/decimal", "Decimal"), nil
	case member.TypeTime:
		return jen.Qual("time", "Time"), nil
	case member.TypeAny:
		return jen.Any(), nil
	case member.TypeNamed:
		if t.PkgPath != "" {
			return jen.Qual(t.PkgPath, t.Ident), nil
		}
		return jen.Op("*").Id(t.Ident), nil
	default:
		return nil, fmt.Errorf("type %s cannot be rendered", t)
	}
}

// handlerTypeExpr is the rendered type of an event handler list.
func handlerTypeExpr() *jen.Statement {
	return jen.Index().Func().Params(jen.Id("args").Op("...").Any())
}

// litExpr renders an initializer value.
func litExpr(v any) (*jen.Statement, error) {
	switch x := v.(type) {
	case nil:
		return jen.Nil(), nil
	case bool, int, int64, float64, string:
		return jen.Lit(x), nil
	case []byte:
		return jen.Index().Byte().Parens(jen.Lit(string(x))), nil
	case decimal.Decimal:
		return jen.Qual("github.com/shopspring/decimal", "RequireFromString").Call(jen.Lit(x.String())), nil
	default:
		return nil, fmt.Errorf("initializer of type %T cannot be rendered", v)
	}
}

// renderType emits the struct, static storage, constructors and methods of
// one finalized type into the file.
func renderType(f *jen.File, t *object.Type) error {
	names := newNaming(t)

	f.Commentf("%s is assembled from the %s type definition.", t.Name(), t.Name())
	var structErr error
	f.Type().Id(t.Name()).StructFunc(func(g *jen.Group) {
		if t.Base() != nil {
			g.Id(t.Base().Name())
		}
		for _, fd := range t.Fields() {
			if fd.Meta.Static {
				continue
			}
			if names.handlers[fd.Meta.Name] {
				g.Id(names.field(fd.Meta.Name)).Add(handlerTypeExpr())
				continue
			}
			expr, err := typeExpr(fd.Meta.Type)
			if err != nil {
				structErr = err
				return
			}
			g.Id(names.field(fd.Meta.Name)).Add(expr)
		}
	})
	if structErr != nil {
		return structErr
	}

	for _, fd := range t.Fields() {
		if !fd.Meta.Static {
			continue
		}
		expr, err := typeExpr(fd.Meta.Type)
		if err != nil {
			return err
		}
		stmt := f.Var().Id(names.staticField(t, fd.Meta.Name)).Add(expr)
		if fd.Meta.HasInitial {
			lit, err := litExpr(fd.Initial)
			if err != nil {
				return err
			}
			stmt.Op("=").Add(lit)
		}
	}

	if err := renderConstructors(f, t, names); err != nil {
		return err
	}
	return renderMethods(f, t, names)
}

func renderConstructors(f *jen.File, t *object.Type, names *naming) error {
	if t.IsAbstract() {
		return nil
	}
	ctors := t.Constructors()
	if len(ctors) == 0 {
		return renderConstructor(f, t, names, nil, "New"+t.Name())
	}
	for i, c := range ctors {
		name := "New" + t.Name()
		if i > 0 {
			name = fmt.Sprintf("New%s%d", t.Name(), i+1)
		}
		if err := renderConstructor(f, t, names, c, name); err != nil {
			return err
		}
	}
	return nil
}

func renderConstructor(f *jen.File, t *object.Type, names *naming, c *object.Constructor, funcName string) error {
	var params []jen.Code
	if c != nil {
		for i, p := range c.Meta.Params {
			expr, err := typeExpr(p)
			if err != nil {
				return err
			}
			params = append(params, jen.Id(argName(i)).Add(expr))
		}
	}
	recv := receiverName(t)
	var blockErr error
	f.Commentf("%s constructs a %s.", funcName, t.Name())
	f.Func().Id(funcName).Params(params...).Op("*").Id(t.Name()).BlockFunc(func(g *jen.Group) {
		g.Id(recv).Op(":=").Op("&").Id(t.Name()).Values()
		// Field initializers run base-first in declaration order; zero
		// values are implicit in Go.
		var chain []*object.Type
		for cur := t; cur != nil; cur = cur.Base() {
			chain = append(chain, cur)
		}
		for i := len(chain) - 1; i >= 0; i-- {
			for _, fd := range chain[i].Fields() {
				if fd.Meta.Static || !fd.Meta.HasInitial {
					continue
				}
				lit, err := litExpr(fd.Initial)
				if err != nil {
					blockErr = err
					return
				}
				g.Id(recv).Dot(names.field(fd.Meta.Name)).Op("=").Add(lit)
			}
		}
		if c != nil {
			if err := translateBody(g, t, names, recv, c.Body, jen.Id(recv)); err != nil {
				blockErr = err
				return
			}
		} else {
			g.Return(jen.Id(recv))
		}
	})
	return blockErr
}

func renderMethods(f *jen.File, t *object.Type, names *naming) error {
	recv := receiverName(t)
	for _, m := range t.Methods() {
		params, err := paramList(m.Meta.Params)
		if err != nil {
			return err
		}
		var returns *jen.Statement
		if !m.Meta.Returns.IsVoid() {
			returns, err = typeExpr(m.Meta.Returns)
			if err != nil {
				return err
			}
		}
		var fn *jen.Statement
		if m.Meta.Kind == member.Static {
			fn = f.Func().Id(names.staticMethod(t, m.Meta.Name))
		} else {
			fn = f.Func().Params(jen.Id(recv).Op("*").Id(t.Name())).Id(names.method(m.Meta.Name))
		}
		fn.Params(params...)
		if returns != nil {
			fn.Add(returns)
		}
		if m.Body == nil {
			fn.Block(jen.Panic(jen.Lit(fmt.Sprintf("abstract: %s.%s", t.Name(), m.Meta.Name))))
			continue
		}
		var blockErr error
		fn.BlockFunc(func(g *jen.Group) {
			blockErr = translateBody(g, t, names, recv, m.Body, nil)
		})
		if blockErr != nil {
			return blockErr
		}
	}
	return nil
}

func paramList(types []member.TypeInfo) ([]jen.Code, error) {
	var params []jen.Code
	for i, p := range types {
		expr, err := typeExpr(p)
		if err != nil {
			return nil, err
		}
		params = append(params, jen.Id(argName(i)).Add(expr))
	}
	return params, nil
}

func argName(i int) string {
	return fmt.Sprintf("p%d", i)
}

func receiverName(t *object.Type) string {
	name := member.Unexported(t.Name())
	return name[:1]
}
