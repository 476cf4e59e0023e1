package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/typeforge/emit"
	"github.com/syssam/typeforge/member"
	"github.com/syssam/typeforge/object"
)

func method(declaredBy, name string, params []member.TypeInfo, returns member.TypeInfo, kind member.Kind, body *emit.Body) *object.Method {
	return &object.Method{
		Meta: member.MethodMeta{
			Name:       name,
			Params:     params,
			Returns:    returns,
			Visibility: member.Public,
			Kind:       kind,
			DeclaredBy: declaredBy,
		},
		Body: body,
	}
}

func constBody(v any) *emit.Body {
	b := emit.NewBody()
	b.LoadConst(v).ReturnValue()
	return b
}

// animalTypes builds a two-level hierarchy by hand: Animal declares a
// virtual Speak and a Describe that dispatches through it; Dog overrides
// Speak and adds a base call.
func animalTypes() (*object.Type, *object.Type) {
	describe := emit.NewBody()
	describe.CallMethod("Speak", 0, true).ReturnValue()

	animal := object.NewType(object.Shape{
		Name: "Animal",
		Fields: []*object.Field{
			{Meta: member.FieldMeta{Name: "name", Type: member.String, Visibility: member.Private, DeclaredBy: "Animal"}},
		},
		Methods: []*object.Method{
			method("Animal", "Speak", nil, member.String, member.Virtual, constBody("...")),
			method("Animal", "Describe", nil, member.String, member.Normal, describe),
		},
	})

	baseSpeak := emit.NewBody()
	baseSpeak.CallBase("Speak", 0, true).ReturnValue()
	ctor := emit.NewBody()
	ctor.LoadArg(0).StoreField("name").Return()

	dog := object.NewType(object.Shape{
		Name: "Dog",
		Base: animal,
		Methods: []*object.Method{
			method("Dog", "Speak", nil, member.String, member.Override, constBody("woof")),
			method("Dog", "BaseSpeak", nil, member.String, member.Normal, baseSpeak),
		},
		Constructors: []*object.Constructor{
			{
				Meta: member.ConstructorMeta{Params: []member.TypeInfo{member.String}, Visibility: member.Public, DeclaredBy: "Dog"},
				Body: ctor,
			},
		},
	})
	return animal, dog
}

func TestTypeLookup(t *testing.T) {
	animal, dog := animalTypes()

	meta, ok := dog.LookupField("name")
	require.True(t, ok)
	assert.Equal(t, "Animal", meta.DeclaredBy)

	// Most-derived resolution.
	m, ok := dog.LookupMethod("Speak", nil)
	require.True(t, ok)
	assert.Equal(t, "Dog", m.DeclaredBy)
	m, ok = animal.LookupMethod("Speak", nil)
	require.True(t, ok)
	assert.Equal(t, "Animal", m.DeclaredBy)

	_, ok = dog.LookupMethod("Speak", []member.TypeInfo{member.Int})
	assert.False(t, ok)
	_, ok = dog.LookupMethod("Fly", nil)
	assert.False(t, ok)

	c, ok := dog.LookupConstructor([]member.TypeInfo{member.String})
	require.True(t, ok)
	assert.Equal(t, "Dog", c.DeclaredBy)
	_, ok = dog.LookupConstructor(nil)
	assert.False(t, ok)
}

func TestVirtualDispatch(t *testing.T) {
	_, dog := animalTypes()

	inst, err := object.New(dog, "Rex")
	require.NoError(t, err)
	name, ok := inst.Field("name")
	require.True(t, ok)
	assert.Equal(t, "Rex", name)

	v, err := inst.Invoke("Speak")
	require.NoError(t, err)
	assert.Equal(t, "woof", v)

	// Describe is declared on the base but dispatches to the override.
	v, err = inst.Invoke("Describe")
	require.NoError(t, err)
	assert.Equal(t, "woof", v)

	// Base calls bypass the override.
	v, err = inst.Invoke("BaseSpeak")
	require.NoError(t, err)
	assert.Equal(t, "...", v)
}

func TestNewErrors(t *testing.T) {
	_, dog := animalTypes()

	_, err := object.New(nil)
	assert.Error(t, err)

	// No two-argument constructor exists.
	_, err = object.New(dog, "a", "b")
	assert.ErrorContains(t, err, "no constructor")

	abstract := object.NewType(object.Shape{Name: "Shape", Attrs: member.AbstractClass})
	assert.True(t, abstract.IsAbstract())
	_, err = object.New(abstract)
	assert.ErrorContains(t, err, "abstract")
}

func TestFieldInitializers(t *testing.T) {
	typ := object.NewType(object.Shape{
		Name: "Config",
		Fields: []*object.Field{
			{Meta: member.FieldMeta{Name: "limit", Type: member.Int64, HasInitial: true, DeclaredBy: "Config"}, Initial: int64(10)},
			{Meta: member.FieldMeta{Name: "label", Type: member.String, DeclaredBy: "Config"}},
		},
	})
	inst, err := object.New(typ)
	require.NoError(t, err)

	v, _ := inst.Field("limit")
	assert.Equal(t, int64(10), v)
	v, _ = inst.Field("label")
	assert.Equal(t, "", v)

	require.NoError(t, inst.SetField("label", "x"))
	assert.Error(t, inst.SetField("missing", 1))
}

func TestStatics(t *testing.T) {
	get := emit.NewBody()
	get.LoadField("instances").ReturnValue()
	bump := emit.NewBody()
	bump.LoadArg(0).StoreField("instances").Return()

	typ := object.NewType(object.Shape{
		Name: "Counter",
		Fields: []*object.Field{
			{Meta: member.FieldMeta{Name: "instances", Type: member.Int64, Static: true, HasInitial: true, DeclaredBy: "Counter"}, Initial: int64(3)},
		},
		Methods: []*object.Method{
			method("Counter", "Instances", nil, member.Int64, member.Static, get),
			method("Counter", "SetInstances", []member.TypeInfo{member.Int64}, member.Void, member.Static, bump),
		},
	})

	v, ok := typ.StaticField("instances")
	require.True(t, ok)
	assert.Equal(t, int64(3), v)

	out, err := typ.InvokeStatic("Instances")
	require.NoError(t, err)
	assert.Equal(t, int64(3), out)

	_, err = typ.InvokeStatic("SetInstances", int64(7))
	require.NoError(t, err)
	out, _ = typ.InvokeStatic("Instances")
	assert.Equal(t, int64(7), out)

	// Instances forward static calls and reads to the type.
	inst, err := object.New(typ)
	require.NoError(t, err)
	out, err = inst.Invoke("Instances")
	require.NoError(t, err)
	assert.Equal(t, int64(7), out)
	v, ok = inst.Field("instances")
	require.True(t, ok)
	assert.Equal(t, int64(7), v)
}

func eventType() *object.Type {
	add := emit.NewBody()
	add.LoadArg(0).AppendHandler("changedHandlers").Return()
	remove := emit.NewBody()
	remove.LoadArg(0).RemoveHandler("changedHandlers").Return()

	return object.NewType(object.Shape{
		Name: "Model",
		Fields: []*object.Field{
			{Meta: member.FieldMeta{Name: "changedHandlers", Type: member.Any, Visibility: member.Private, DeclaredBy: "Model"}},
		},
		Methods: []*object.Method{
			method("Model", "add_Changed", []member.TypeInfo{member.Any}, member.Void, member.Normal, add),
			method("Model", "remove_Changed", []member.TypeInfo{member.Any}, member.Void, member.Normal, remove),
		},
		Events: []*object.Event{
			{
				Meta:   member.EventMeta{Name: "Changed", Handler: member.Any, Visibility: member.Public, DeclaredBy: "Model"},
				Add:    "add_Changed",
				Remove: "remove_Changed",
				Field:  "changedHandlers",
			},
		},
	})
}

func TestEvents(t *testing.T) {
	inst, err := object.New(eventType())
	require.NoError(t, err)

	var got []any
	h1 := object.Handler(func(args ...any) { got = append(got, args...) })
	h2 := object.Handler(func(args ...any) { got = append(got, "second") })

	require.NoError(t, inst.AddHandler("Changed", h1))
	require.NoError(t, inst.AddHandler("Changed", h2))
	assert.Equal(t, 2, inst.HandlerCount("Changed"))

	require.NoError(t, inst.Raise("Changed", "Count"))
	assert.Equal(t, []any{"Count", "second"}, got)

	got = nil
	require.NoError(t, inst.RemoveHandler("Changed", h1))
	assert.Equal(t, 1, inst.HandlerCount("Changed"))
	require.NoError(t, inst.Raise("Changed", "again"))
	assert.Equal(t, []any{"second"}, got)

	// Removing an unsubscribed handler is a no-op.
	require.NoError(t, inst.RemoveHandler("Changed", h1))
	assert.Equal(t, 1, inst.HandlerCount("Changed"))

	assert.Error(t, inst.Raise("Missing"))
	assert.Equal(t, 0, inst.HandlerCount("Missing"))
}
