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
	"github.com/syssam/typeforge/object"
)

func TestFinalizeSimpleProperty(t *testing.T) {
	td, err := define.NewClass("Model", nil, member.None)
	require.NoError(t, err)
	p, err := td.AddProperty("Count", member.Int, member.Normal, member.Public, impl.SimpleProperty())
	require.NoError(t, err)

	typ, err := td.Finalize()
	require.NoError(t, err)
	assert.True(t, p.IsFrozen())

	// The strategy declared its private backing field during finalization.
	meta, ok := typ.LookupField("count")
	require.True(t, ok)
	assert.Equal(t, member.Private, meta.Visibility)

	inst, err := object.New(typ)
	require.NoError(t, err)
	v, err := inst.GetProperty("Count")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	require.NoError(t, inst.SetProperty("Count", 7))
	v, err = inst.GetProperty("Count")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestFinalizeEvent(t *testing.T) {
	td, err := define.NewClass("Model", nil, member.None)
	require.NoError(t, err)
	_, err = td.AddEvent("Changed", member.Any, member.Normal, member.Public, impl.DefaultEvent())
	require.NoError(t, err)

	typ, err := td.Finalize()
	require.NoError(t, err)
	_, ok := typ.LookupField("changedHandlers")
	assert.True(t, ok)

	inst, err := object.New(typ)
	require.NoError(t, err)
	var fired int
	h := object.Handler(func(...any) { fired++ })
	require.NoError(t, inst.AddHandler("Changed", h))
	require.NoError(t, inst.Raise("Changed"))
	require.NoError(t, inst.RemoveHandler("Changed", h))
	require.NoError(t, inst.Raise("Changed"))
	assert.Equal(t, 1, fired)
}

func TestFinalizeConstructors(t *testing.T) {
	td, err := define.NewClass("Point", nil, member.None)
	require.NoError(t, err)
	x, err := td.AddField("x", member.Float64, member.Private)
	require.NoError(t, err)
	y, err := td.AddField("y", member.Float64, member.Private)
	require.NoError(t, err)
	require.NoError(t, y.SetInitializer(2.5))

	_, err = td.AddConstructor(nil, member.Public, impl.DefaultConstructor(), nil)
	require.NoError(t, err)
	_, err = td.AddConstructor(
		[]define.Param{{Name: "x", Type: member.Float64}, {Name: "y", Type: member.Float64}},
		member.Public, impl.SettingConstructor(x, y), nil,
	)
	require.NoError(t, err)

	typ, err := td.Finalize()
	require.NoError(t, err)

	// Zero-argument construction leaves the initializers in place.
	inst, err := object.New(typ)
	require.NoError(t, err)
	v, _ := inst.Field("x")
	assert.Equal(t, float64(0), v)
	v, _ = inst.Field("y")
	assert.Equal(t, 2.5, v)

	// The setting constructor runs after the initializers.
	inst, err = object.New(typ, 1.0, 2.0)
	require.NoError(t, err)
	v, _ = inst.Field("x")
	assert.Equal(t, 1.0, v)
	v, _ = inst.Field("y")
	assert.Equal(t, 2.0, v)
}

func TestFinalizeAbstractChecks(t *testing.T) {
	// Abstract members on a non-abstract class are rejected.
	td, err := define.NewClass("Shape", nil, member.None)
	require.NoError(t, err)
	_, err = td.AddMethod("Area", nil, member.Float64, member.Public, member.Abstract, nil, nil)
	require.NoError(t, err)
	_, err = td.Finalize()
	require.True(t, typeforge.IsCodeGen(err))
	assert.ErrorContains(t, err, "non-abstract")

	// Structs can never carry abstract members.
	st, err := define.NewStruct("Vec")
	require.NoError(t, err)
	_, err = st.AddMethod("Len", nil, member.Float64, member.Public, member.Abstract, nil, nil)
	require.NoError(t, err)
	_, err = st.Finalize()
	assert.True(t, typeforge.IsCodeGen(err))

	// On an abstract class the same declaration finalizes.
	abs, err := define.NewClass("Shape", nil, member.AbstractClass)
	require.NoError(t, err)
	_, err = abs.AddMethod("Area", nil, member.Float64, member.Public, member.Abstract, nil, nil)
	require.NoError(t, err)
	shape, err := abs.Finalize()
	require.NoError(t, err)
	assert.True(t, shape.IsAbstract())
	_, err = object.New(shape)
	assert.Error(t, err)

	// A concrete subtype must override every inherited abstract member.
	missing, err := define.NewClass("Circle", shape, member.None)
	require.NoError(t, err)
	_, err = missing.Finalize()
	require.True(t, typeforge.IsCodeGen(err))
	assert.ErrorContains(t, err, "not overridden")

	circle, err := define.NewClass("Circle", shape, member.None)
	require.NoError(t, err)
	area, ok := circle.GetInheritedMethod("Area", nil)
	require.True(t, ok)
	_, err = area.Override(nil, constReturn(3.14))
	require.NoError(t, err)
	ct, err := circle.Finalize()
	require.NoError(t, err)

	inst, err := object.New(ct)
	require.NoError(t, err)
	v, err := inst.Invoke("Area")
	require.NoError(t, err)
	assert.Equal(t, 3.14, v)
}

func TestFinalizeFailureIsSticky(t *testing.T) {
	td, err := define.NewClass("Broken", nil, member.None)
	require.NoError(t, err)
	// The property declares a getter, but the accessor callbacks supply
	// none, so the implement pass fails.
	_, err = td.AddProperty("X", member.Int, member.Normal, member.Public, impl.PropertyAccessors(nil, nil))
	require.NoError(t, err)

	_, err = td.Finalize()
	require.True(t, typeforge.IsCodeGen(err))

	// The definition is poisoned: no retry, no further mutation.
	_, err = td.Finalize()
	assert.True(t, typeforge.IsInvalidOperation(err))
	assert.ErrorContains(t, err, "discarded")
	_, err = td.AddField("y", member.Int, member.Private)
	assert.True(t, typeforge.IsInvalidOperation(err))
}

func TestFinalizeVerifiesBodies(t *testing.T) {
	td, err := define.NewClass("Broken", nil, member.None)
	require.NoError(t, err)
	// The callback claims a value-returning method but emits a bare return.
	_, err = td.AddMethod("Get", nil, member.Int, member.Public, member.Normal, nil, func(_ *define.TypeDefinition, b *emit.Body) error {
		b.Return()
		return b.Err()
	})
	require.NoError(t, err)

	_, err = td.Finalize()
	require.True(t, typeforge.IsCodeGen(err))
	var cg *typeforge.CodeGenError
	require.ErrorAs(t, err, &cg)
	assert.Equal(t, "implement", cg.Phase)
	assert.Equal(t, "Get", cg.Member)
}

func TestFinalizeStatics(t *testing.T) {
	td, err := define.NewClass("Counter", nil, member.None)
	require.NoError(t, err)
	f, err := td.AddStaticField("instances", member.Int64, member.Private)
	require.NoError(t, err)
	require.NoError(t, f.SetInitializer(5))
	_, err = td.AddMethod("Instances", nil, member.Int64, member.Public, member.Static, nil, func(_ *define.TypeDefinition, b *emit.Body) error {
		b.LoadField("instances").ReturnValue()
		return b.Err()
	})
	require.NoError(t, err)

	typ, err := td.Finalize()
	require.NoError(t, err)
	v, err := typ.InvokeStatic("Instances")
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)
}
