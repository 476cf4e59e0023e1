package emit_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/typeforge/emit"
)

// recorder is a minimal receiver for exercising bodies in isolation.
type recorder struct {
	fields   map[string]any
	handlers map[string][]any
	calls    []string
	results  map[string]any
}

func newRecorder() *recorder {
	return &recorder{
		fields:   make(map[string]any),
		handlers: make(map[string][]any),
		results:  make(map[string]any),
	}
}

func (r *recorder) FieldValue(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

func (r *recorder) SetFieldValue(name string, v any) error {
	r.fields[name] = v
	return nil
}

func (r *recorder) Invoke(name string, args []any) (any, error) {
	r.calls = append(r.calls, fmt.Sprintf("%s/%d", name, len(args)))
	return r.results[name], nil
}

func (r *recorder) InvokeBase(name string, args []any) (any, error) {
	r.calls = append(r.calls, "base:"+name)
	return r.results[name], nil
}

func (r *recorder) AppendHandler(field string, h any) error {
	r.handlers[field] = append(r.handlers[field], h)
	return nil
}

func (r *recorder) RemoveHandler(field string, h any) error {
	list := r.handlers[field]
	for i := range list {
		if fmt.Sprintf("%v", list[i]) == fmt.Sprintf("%v", h) {
			r.handlers[field] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	return nil
}

func TestEvalFieldRoundTrip(t *testing.T) {
	recv := newRecorder()
	recv.fields["x"] = 0

	set := emit.NewBody()
	set.LoadArg(0).StoreField("x").Return()
	_, err := set.Eval(recv, []any{41})
	require.NoError(t, err)
	assert.Equal(t, 41, recv.fields["x"])

	get := emit.NewBody()
	get.LoadField("x").ReturnValue()
	v, err := get.Eval(recv, nil)
	require.NoError(t, err)
	assert.Equal(t, 41, v)
}

func TestEvalCalls(t *testing.T) {
	recv := newRecorder()
	recv.results["Speak"] = "woof"

	b := emit.NewBody()
	b.CallMethod("Speak", 0, true).ReturnValue()
	v, err := b.Eval(recv, nil)
	require.NoError(t, err)
	assert.Equal(t, "woof", v)
	assert.Equal(t, []string{"Speak/0"}, recv.calls)

	b = emit.NewBody()
	b.LoadConst("a").LoadConst("b").CallBase("Join", 2, false).Return()
	_, err = b.Eval(recv, nil)
	require.NoError(t, err)
	assert.Contains(t, recv.calls, "base:Join")
}

func TestEvalBranchIfEqual(t *testing.T) {
	run := func(stored, incoming any) *recorder {
		recv := newRecorder()
		recv.fields["x"] = stored
		b := emit.NewBody()
		unchanged := b.NewLabel()
		b.LoadField("x").
			LoadArg(0).
			BranchIfEqual(unchanged).
			LoadArg(0).
			StoreField("x").
			LoadConst("X").
			CallMethod("OnPropertyChanged", 1, false).
			MarkLabel(unchanged).
			Return()
		_, err := b.Eval(recv, []any{incoming})
		require.NoError(t, err)
		return recv
	}

	recv := run(1, 2)
	assert.Equal(t, 2, recv.fields["x"])
	assert.Len(t, recv.calls, 1)

	recv = run(2, 2)
	assert.Equal(t, 2, recv.fields["x"])
	assert.Empty(t, recv.calls)

	// NaN compares equal to itself under boxed equality, so no notification.
	recv = run(math.NaN(), math.NaN())
	assert.Empty(t, recv.calls)
}

func TestEvalHandlers(t *testing.T) {
	recv := newRecorder()

	add := emit.NewBody()
	add.LoadArg(0).AppendHandler("changedHandlers").Return()
	_, err := add.Eval(recv, []any{"h1"})
	require.NoError(t, err)
	_, err = add.Eval(recv, []any{"h2"})
	require.NoError(t, err)
	assert.Equal(t, []any{"h1", "h2"}, recv.handlers["changedHandlers"])

	remove := emit.NewBody()
	remove.LoadArg(0).RemoveHandler("changedHandlers").Return()
	_, err = remove.Eval(recv, []any{"h1"})
	require.NoError(t, err)
	assert.Equal(t, []any{"h2"}, recv.handlers["changedHandlers"])
}

func TestEvalErrors(t *testing.T) {
	recv := newRecorder()

	b := emit.NewBody()
	b.LoadArg(2).ReturnValue()
	_, err := b.Eval(recv, []any{1})
	assert.ErrorContains(t, err, "out of range")

	b = emit.NewBody()
	b.LoadField("missing").ReturnValue()
	_, err = b.Eval(recv, nil)
	assert.ErrorContains(t, err, "unknown field")

	b = emit.NewBody()
	b.LoadConst(1).Pop()
	_, err = b.Eval(recv, nil)
	assert.ErrorContains(t, err, "fell off the end")
}
