package define_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/typeforge"
	"github.com/syssam/typeforge/define"
	"github.com/syssam/typeforge/impl"
	"github.com/syssam/typeforge/member"
)

func TestNewModule(t *testing.T) {
	m, err := define.NewModule("shapes")
	require.NoError(t, err)
	assert.Equal(t, "shapes", m.Name())
	assert.NotEqual(t, uuid.Nil, m.ID())

	// The container name carries the identity, so two modules with the same
	// name never collide.
	assert.True(t, strings.HasPrefix(m.ContainerName(), "shapes_"))
	other, err := define.NewModule("shapes")
	require.NoError(t, err)
	assert.NotEqual(t, m.ContainerName(), other.ContainerName())

	_, err = define.NewModule("bad name")
	assert.True(t, typeforge.IsArgument(err))
}

func TestModuleTypeNames(t *testing.T) {
	m, err := define.NewModule("shapes")
	require.NoError(t, err)

	_, err = m.NewClass("Point", nil, member.None)
	require.NoError(t, err)
	_, err = m.NewClass("Point", nil, member.None)
	require.True(t, typeforge.IsDuplicateMember(err))
	_, err = m.NewStruct("Point")
	assert.True(t, typeforge.IsDuplicateMember(err))

	_, err = m.NewStruct("Vec")
	require.NoError(t, err)
	assert.Len(t, m.Types(), 2)
}

func TestFinalizeAll(t *testing.T) {
	m, err := define.NewModule("shapes")
	require.NoError(t, err)

	td, err := m.NewClass("Model", nil, member.None)
	require.NoError(t, err)
	_, err = td.AddProperty("Count", member.Int, member.Normal, member.Public, impl.SimpleProperty())
	require.NoError(t, err)
	_, err = m.NewStruct("Vec")
	require.NoError(t, err)

	built, err := m.FinalizeAll()
	require.NoError(t, err)
	require.Len(t, built, 2)
	assert.Equal(t, "Model", built[0].Name())
	assert.Equal(t, "shapes", built[0].Module())
	assert.Equal(t, built, m.BuiltTypes())

	// Already-finalized definitions are skipped on a second sweep.
	again, err := m.FinalizeAll()
	require.NoError(t, err)
	assert.Len(t, again, 2)
}

func TestModuleSnapshot(t *testing.T) {
	m, err := define.NewModule("shapes")
	require.NoError(t, err)
	_, err = m.Snapshot()
	assert.True(t, typeforge.IsInvalidOperation(err))

	td, err := m.NewClass("Model", nil, member.None)
	require.NoError(t, err)
	_, err = td.AddProperty("Count", member.Int, member.Normal, member.Public, impl.SimpleProperty())
	require.NoError(t, err)
	_, err = td.AddEvent("Changed", member.Any, member.Normal, member.Public, impl.DefaultEvent())
	require.NoError(t, err)
	_, err = m.FinalizeAll()
	require.NoError(t, err)

	snap, err := m.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "shapes", snap.Module)
	assert.Equal(t, m.ContainerName(), snap.Container)
	require.Len(t, snap.Types, 1)
	ts := snap.Types[0]
	assert.Equal(t, "Model", ts.Name)
	assert.Len(t, ts.Properties, 1)
	assert.Len(t, ts.Events, 1)
	// Accessors and the strategy-declared backing fields are part of the
	// recorded shape.
	assert.Len(t, ts.Fields, 2)
	assert.Len(t, ts.Methods, 4)

	data, err := snap.Encode()
	require.NoError(t, err)
	decoded, err := define.DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snap.Module, decoded.Module)
	assert.Equal(t, snap.Container, decoded.Container)
	require.Len(t, decoded.Types, 1)
	assert.Equal(t, ts.Name, decoded.Types[0].Name)
	assert.Equal(t, ts.Properties, decoded.Types[0].Properties)

	_, err = define.DecodeSnapshot([]byte("not msgpack"))
	assert.True(t, typeforge.IsArgument(err))
}
