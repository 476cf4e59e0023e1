package load

import (
	"fmt"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/syssam/typeforge/member"
)

// GoType is a metadata-only base type backed by a compiled Go package. It
// carries field and method signatures for inherited-member resolution but
// cannot be instantiated by the engine.
type GoType struct {
	name    string
	fields  []member.FieldMeta
	methods []member.MethodMeta
}

// GoBase loads the named type from the package matching pattern and exposes
// its surface as a base type. Interface methods come back abstract; struct
// methods come back virtual, so definitions can override either.
func GoBase(pattern, name string) (*GoType, error) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedTypes}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("loading package %s: %w", pattern, err)
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("loading package %s: %v", pattern, pkg.Errors[0])
		}
		obj := pkg.Types.Scope().Lookup(name)
		if obj == nil {
			continue
		}
		named, ok := obj.Type().(*types.Named)
		if !ok {
			return nil, fmt.Errorf("%s.%s is not a named type", pkg.PkgPath, name)
		}
		return fromNamed(named), nil
	}
	return nil, fmt.Errorf("type %s not found in %s", name, pattern)
}

func fromNamed(named *types.Named) *GoType {
	t := &GoType{name: named.Obj().Name()}
	kind := member.Virtual
	if iface, ok := named.Underlying().(*types.Interface); ok {
		kind = member.Abstract
		for i := 0; i < iface.NumMethods(); i++ {
			if m, ok := methodMeta(t.name, iface.Method(i), kind); ok {
				t.methods = append(t.methods, m)
			}
		}
		return t
	}
	if st, ok := named.Underlying().(*types.Struct); ok {
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			t.fields = append(t.fields, member.FieldMeta{
				Name:       f.Name(),
				Type:       fromGoType(f.Type()),
				Visibility: visibilityOf(f.Exported()),
				DeclaredBy: t.name,
			})
		}
	}
	ms := types.NewMethodSet(types.NewPointer(named))
	for i := 0; i < ms.Len(); i++ {
		fn, ok := ms.At(i).Obj().(*types.Func)
		if !ok {
			continue
		}
		if m, ok := methodMeta(t.name, fn, kind); ok {
			t.methods = append(t.methods, m)
		}
	}
	return t
}

// methodMeta converts a Go method signature. Variadic and multi-result
// signatures have no equivalent in the engine and are skipped.
func methodMeta(owner string, fn *types.Func, kind member.Kind) (member.MethodMeta, bool) {
	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Variadic() || sig.Results().Len() > 1 {
		return member.MethodMeta{}, false
	}
	params := make([]member.TypeInfo, sig.Params().Len())
	for i := range params {
		params[i] = fromGoType(sig.Params().At(i).Type())
	}
	returns := member.Void
	if sig.Results().Len() == 1 {
		returns = fromGoType(sig.Results().At(0).Type())
	}
	return member.MethodMeta{
		Name:       fn.Name(),
		Params:     params,
		Returns:    returns,
		Visibility: visibilityOf(fn.Exported()),
		Kind:       kind,
		DeclaredBy: owner,
	}, true
}

func visibilityOf(exported bool) member.Visibility {
	if exported {
		return member.Public
	}
	return member.Private
}

// fromGoType maps a Go type to the engine's descriptor set. Types outside
// the built-in categories come back as named descriptors.
func fromGoType(t types.Type) member.TypeInfo {
	switch x := t.(type) {
	case *types.Basic:
		switch x.Kind() {
		case types.Bool:
			return member.Bool
		case types.Int:
			return member.Int
		case types.Int64:
			return member.Int64
		case types.Float64:
			return member.Float64
		case types.String:
			return member.String
		}
	case *types.Slice:
		if b, ok := x.Elem().(*types.Basic); ok && b.Kind() == types.Byte {
			return member.Bytes
		}
	case *types.Interface:
		if x.Empty() {
			return member.Any
		}
	case *types.Named:
		obj := x.Obj()
		path := ""
		if obj.Pkg() != nil {
			path = obj.Pkg().Path()
		}
		switch {
		case path == "time" && obj.Name() == "Time":
			return member.Time
		case strings.HasSuffix(path, "shopspring/decimal") && obj.Name() == "Decimal":
			return member.Decimal
		}
		return member.Named(obj.Name(), path)
	case *types.Pointer:
		return fromGoType(x.Elem())
	}
	return member.Any
}

// Name returns the type name.
func (t *GoType) Name() string { return t.name }

// LookupField returns the struct field with the given name.
func (t *GoType) LookupField(name string) (member.FieldMeta, bool) {
	for _, f := range t.fields {
		if f.Name == name {
			return f, true
		}
	}
	return member.FieldMeta{}, false
}

// LookupMethod returns the method matching name and, when params is non-nil,
// the exact ordered parameter-type sequence.
func (t *GoType) LookupMethod(name string, params []member.TypeInfo) (member.MethodMeta, bool) {
	for _, m := range t.methods {
		if m.Name != name {
			continue
		}
		if params != nil && !member.SignatureEqual(m.Params, params) {
			continue
		}
		return m, true
	}
	return member.MethodMeta{}, false
}

// LookupProperty always misses: Go types carry no property metadata.
func (t *GoType) LookupProperty(string) (member.PropertyMeta, bool) {
	return member.PropertyMeta{}, false
}

// LookupEvent always misses: Go types carry no event metadata.
func (t *GoType) LookupEvent(string) (member.EventMeta, bool) {
	return member.EventMeta{}, false
}

// LookupConstructor always misses: construction of host Go types stays with
// their own package.
func (t *GoType) LookupConstructor([]member.TypeInfo) (member.ConstructorMeta, bool) {
	return member.ConstructorMeta{}, false
}
