package member_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/typeforge/member"
)

func TestVisibility(t *testing.T) {
	assert.Equal(t, "public", member.Public.String())
	assert.Equal(t, "private", member.Private.String())
	assert.Equal(t, "protected internal", member.ProtectedInternal.String())
	assert.Equal(t, "invalid", member.Visibility(42).String())

	assert.True(t, member.Public.Valid())
	assert.False(t, member.Visibility(42).Valid())

	assert.True(t, member.Public.Exported())
	assert.True(t, member.Protected.Exported())
	assert.True(t, member.ProtectedInternal.Exported())
	assert.False(t, member.Private.Exported())
	assert.False(t, member.Internal.Exported())
}

func TestVisibilityNarrows(t *testing.T) {
	assert.False(t, member.Public.Narrows(member.Public))
	assert.True(t, member.Private.Narrows(member.Public))
	assert.True(t, member.Protected.Narrows(member.ProtectedInternal))
	assert.False(t, member.Public.Narrows(member.Private))

	// Protected and internal are incomparable access domains; replacing one
	// with the other narrows in both directions.
	assert.True(t, member.Protected.Narrows(member.Internal))
	assert.True(t, member.Internal.Narrows(member.Protected))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "static", member.Static.String())
	assert.Equal(t, "override", member.Override.String())
	assert.Equal(t, "invalid", member.Kind(42).String())
	assert.False(t, member.Kind(42).Valid())

	assert.True(t, member.Virtual.Overridable())
	assert.True(t, member.Abstract.Overridable())
	assert.True(t, member.Override.Overridable())
	assert.False(t, member.Normal.Overridable())
	assert.False(t, member.Static.Overridable())
}

func TestClassAttributes(t *testing.T) {
	assert.Equal(t, "none", member.None.String())
	assert.Equal(t, "abstract", member.AbstractClass.String())
	assert.Equal(t, "sealed", member.Sealed.String())
}
