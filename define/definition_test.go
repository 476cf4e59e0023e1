package define_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/typeforge"
	"github.com/syssam/typeforge/define"
	"github.com/syssam/typeforge/emit"
	"github.com/syssam/typeforge/impl"
	"github.com/syssam/typeforge/member"
)

func constReturn(v any) define.BodyFunc {
	return func(_ *define.TypeDefinition, b *emit.Body) error {
		b.LoadConst(v).ReturnValue()
		return b.Err()
	}
}

func voidReturn() define.BodyFunc {
	return func(_ *define.TypeDefinition, b *emit.Body) error {
		b.Return()
		return b.Err()
	}
}

func TestNewClass(t *testing.T) {
	td, err := define.NewClass("Point", nil, member.None)
	require.NoError(t, err)
	assert.Equal(t, "Point", td.Name())
	assert.Nil(t, td.Base())
	assert.False(t, td.IsValueType())
	assert.Equal(t, define.Open, td.State())
	assert.Nil(t, td.Module())

	_, err = define.NewClass("9Point", nil, member.None)
	assert.True(t, typeforge.IsArgument(err))

	st, err := define.NewStruct("Vector")
	require.NoError(t, err)
	assert.True(t, st.IsValueType())
}

func TestAddField(t *testing.T) {
	td, err := define.NewClass("Point", nil, member.None)
	require.NoError(t, err)

	f, err := td.AddField("x", member.Float64, member.Private)
	require.NoError(t, err)
	assert.Equal(t, "x", f.Name())
	assert.False(t, f.IsStatic())
	assert.False(t, f.IsFrozen())
	assert.False(t, f.HasInitializer())

	require.NoError(t, f.SetInitializer(1.5))
	v, ok := f.Initializer()
	require.True(t, ok)
	assert.Equal(t, 1.5, v)
	assert.True(t, f.Meta().HasInitial)

	// Initializers conform to the declared type.
	err = f.SetInitializer("nope")
	assert.True(t, typeforge.IsArgument(err))

	_, err = td.AddField("x", member.Int, member.Public)
	assert.True(t, typeforge.IsDuplicateMember(err))
	_, err = td.AddField("2x", member.Int, member.Public)
	assert.True(t, typeforge.IsArgument(err))
	_, err = td.AddField("v", member.Void, member.Public)
	assert.True(t, typeforge.IsArgument(err))

	s, err := td.AddStaticField("origin", member.String, member.Public)
	require.NoError(t, err)
	assert.True(t, s.IsStatic())
}

func TestAddMethodOverloads(t *testing.T) {
	td, err := define.NewClass("Calc", nil, member.None)
	require.NoError(t, err)

	_, err = td.AddMethod("Add", []define.Param{{Name: "n", Type: member.Int}}, member.Int, member.Public, member.Normal, nil, constReturn(0))
	require.NoError(t, err)

	// Same name, different ordered signature: a distinct overload.
	_, err = td.AddMethod("Add", []define.Param{{Name: "s", Type: member.String}}, member.Int, member.Public, member.Normal, nil, constReturn(0))
	require.NoError(t, err)

	// Same name and signature: rejected.
	_, err = td.AddMethod("Add", []define.Param{{Name: "m", Type: member.Int}}, member.Int, member.Public, member.Normal, nil, constReturn(0))
	require.True(t, typeforge.IsDuplicateMember(err))
	var dup *typeforge.DuplicateMemberError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "int", dup.Signature)

	m, ok := td.MethodNamed("Add", []member.TypeInfo{member.String})
	require.True(t, ok)
	assert.Equal(t, []member.TypeInfo{member.String}, m.ParamTypes())
}

func TestBodySourceRule(t *testing.T) {
	td, err := define.NewClass("Calc", nil, member.None)
	require.NoError(t, err)

	// Neither a strategy nor a callback.
	_, err = td.AddMethod("A", nil, member.Void, member.Public, member.Normal, nil, nil)
	assert.True(t, typeforge.IsArgument(err))

	// Abstract members take no body source at all.
	_, err = td.AddMethod("B", nil, member.Void, member.Public, member.Abstract, nil, voidReturn())
	assert.True(t, typeforge.IsArgument(err))
	_, err = td.AddMethod("C", nil, member.Void, member.Public, member.Abstract, nil, nil)
	assert.NoError(t, err)

	// Override members are created through OverrideMethod only.
	_, err = td.AddMethod("D", nil, member.Void, member.Public, member.Override, nil, voidReturn())
	assert.True(t, typeforge.IsInvalidOperation(err))

	_, err = td.AddProperty("P", member.Int, member.Normal, member.Public, nil)
	assert.True(t, typeforge.IsArgument(err))
	_, err = td.AddEvent("E", member.Any, member.Normal, member.Public, nil)
	assert.True(t, typeforge.IsArgument(err))
}

func TestAccessorNameReservation(t *testing.T) {
	td, err := define.NewClass("Model", nil, member.None)
	require.NoError(t, err)

	_, err = td.AddProperty("Count", member.Int, member.Normal, member.Public, impl.SimpleProperty())
	require.NoError(t, err)

	// The property's accessor spellings are taken.
	_, err = td.AddMethod("get_Count", nil, member.Int, member.Public, member.Normal, nil, constReturn(0))
	assert.True(t, typeforge.IsDuplicateMember(err))

	_, err = td.AddProperty("Count", member.Int, member.Normal, member.Public, impl.SimpleProperty())
	assert.True(t, typeforge.IsDuplicateMember(err))

	// The reverse direction: a method squatting on an accessor name blocks
	// the property, and the failed declaration leaves nothing behind.
	_, err = td.AddMethod("set_Size", []define.Param{{Name: "value", Type: member.Int}}, member.Void, member.Public, member.Normal, nil, voidReturn())
	require.NoError(t, err)
	_, err = td.AddProperty("Size", member.Int, member.Normal, member.Public, impl.SimpleProperty())
	require.True(t, typeforge.IsDuplicateMember(err))
	_, ok := td.MethodNamed(define.GetterName("Size"), nil)
	assert.False(t, ok)
	_, ok = td.PropertyNamed("Size")
	assert.False(t, ok)

	_, err = td.AddEvent("Changed", member.Any, member.Normal, member.Public, impl.DefaultEvent())
	require.NoError(t, err)
	_, err = td.AddMethod("add_Changed", []define.Param{{Name: "handler", Type: member.Any}}, member.Void, member.Public, member.Normal, nil, voidReturn())
	assert.True(t, typeforge.IsDuplicateMember(err))
}

func TestAccessorNames(t *testing.T) {
	assert.Equal(t, "get_Count", define.GetterName("Count"))
	assert.Equal(t, "set_Count", define.SetterName("Count"))
	assert.Equal(t, "add_Changed", define.AdderName("Changed"))
	assert.Equal(t, "remove_Changed", define.RemoverName("Changed"))
}

func TestAddConstructor(t *testing.T) {
	td, err := define.NewClass("Point", nil, member.None)
	require.NoError(t, err)
	x, err := td.AddField("x", member.Float64, member.Private)
	require.NoError(t, err)

	_, err = td.AddConstructor(nil, member.Public, impl.DefaultConstructor(), nil)
	require.NoError(t, err)
	_, err = td.AddConstructor([]define.Param{{Name: "x", Type: member.Float64}}, member.Public, impl.SettingConstructor(x), nil)
	require.NoError(t, err)

	// Constructors are identified by signature.
	_, err = td.AddConstructor(nil, member.Private, impl.DefaultConstructor(), nil)
	assert.True(t, typeforge.IsDuplicateMember(err))

	c, ok := td.ConstructorWith([]member.TypeInfo{member.Float64})
	require.True(t, ok)
	assert.Equal(t, []member.TypeInfo{member.Float64}, c.Meta().Params)
}

func TestHasMethod(t *testing.T) {
	base, err := define.NewClass("Base", nil, member.None)
	require.NoError(t, err)
	_, err = base.AddMethod("OnPropertyChanged", []define.Param{{Name: "name", Type: member.String}}, member.Void, member.Public, member.Virtual, nil, voidReturn())
	require.NoError(t, err)
	baseType, err := base.Finalize()
	require.NoError(t, err)

	td, err := define.NewClass("Derived", baseType, member.None)
	require.NoError(t, err)
	assert.True(t, td.HasMethod("OnPropertyChanged", []member.TypeInfo{member.String}))
	assert.False(t, td.HasMethod("OnPropertyChanged", []member.TypeInfo{member.Int}))
	assert.False(t, td.HasMethod("Missing", nil))
}

func TestRemoveMembers(t *testing.T) {
	td, err := define.NewClass("Model", nil, member.None)
	require.NoError(t, err)

	f, err := td.AddField("count", member.Int, member.Private)
	require.NoError(t, err)
	p, err := td.AddProperty("Count", member.Int, member.Normal, member.Public, impl.SimplePropertyBackedBy(f))
	require.NoError(t, err)
	e, err := td.AddEvent("Changed", member.Any, member.Normal, member.Public, impl.DefaultEvent())
	require.NoError(t, err)
	c, err := td.AddConstructor(nil, member.Public, impl.DefaultConstructor(), nil)
	require.NoError(t, err)
	m, err := td.AddMethod("Reset", nil, member.Void, member.Public, member.Normal, nil, voidReturn())
	require.NoError(t, err)

	// Accessors go only through their owner.
	err = td.RemoveMethod(p.Getter())
	assert.True(t, typeforge.IsInvalidOperation(err))

	require.NoError(t, td.RemoveProperty(p))
	_, ok := td.PropertyNamed("Count")
	assert.False(t, ok)
	_, ok = td.MethodNamed(define.GetterName("Count"), nil)
	assert.False(t, ok)
	_, ok = td.MethodNamed(define.SetterName("Count"), nil)
	assert.False(t, ok)
	// The caller-declared backing field is not the strategy's to cascade.
	_, ok = td.FieldNamed("count")
	assert.True(t, ok)

	require.NoError(t, td.RemoveEvent(e))
	_, ok = td.MethodNamed(define.AdderName("Changed"), nil)
	assert.False(t, ok)

	require.NoError(t, td.RemoveConstructor(c))
	assert.Empty(t, td.Constructors())
	require.NoError(t, td.RemoveMethod(m))
	require.NoError(t, td.RemoveField(f))

	// Removing twice fails.
	assert.True(t, typeforge.IsInvalidOperation(td.RemoveField(f)))
	assert.True(t, typeforge.IsInvalidOperation(td.RemoveProperty(p)))
}

func TestMutationAfterFinalize(t *testing.T) {
	td, err := define.NewClass("Frozen", nil, member.None)
	require.NoError(t, err)
	f, err := td.AddField("x", member.Int, member.Private)
	require.NoError(t, err)
	m, err := td.AddMethod("Get", nil, member.Int, member.Public, member.Normal, nil, func(_ *define.TypeDefinition, b *emit.Body) error {
		b.LoadField("x").ReturnValue()
		return b.Err()
	})
	require.NoError(t, err)

	_, err = td.Finalize()
	require.NoError(t, err)
	assert.Equal(t, define.Finalized, td.State())
	assert.True(t, f.IsFrozen())
	assert.True(t, m.IsFrozen())

	_, err = td.AddField("y", member.Int, member.Private)
	assert.True(t, typeforge.IsInvalidOperation(err))
	assert.True(t, typeforge.IsInvalidOperation(f.SetInitializer(1)))
	assert.True(t, typeforge.IsInvalidOperation(m.SetKind(member.Virtual)))
	assert.True(t, typeforge.IsInvalidOperation(td.RemoveField(f)))

	// A finalized definition cannot be finalized again.
	_, err = td.Finalize()
	assert.True(t, typeforge.IsInvalidOperation(err))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "open", define.Open.String())
	assert.Equal(t, "declaring", define.Declaring.String())
	assert.Equal(t, "implementing", define.Implementing.String())
	assert.Equal(t, "finalized", define.Finalized.String())
}
