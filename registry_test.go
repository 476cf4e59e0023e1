package typeforge_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/typeforge"
)

func TestAttachments(t *testing.T) {
	type key struct{ name string }
	k := key{name: "Point"}

	_, ok := typeforge.Attachment(k)
	assert.False(t, ok)
	assert.False(t, typeforge.Detach(k))

	typeforge.Attach(k, "first")
	v, ok := typeforge.Attachment(k)
	require.True(t, ok)
	assert.Equal(t, "first", v)

	// Replacement, not accumulation.
	typeforge.Attach(k, "second")
	v, _ = typeforge.Attachment(k)
	assert.Equal(t, "second", v)

	assert.True(t, typeforge.Detach(k))
	_, ok = typeforge.Attachment(k)
	assert.False(t, ok)
}

func TestAttachmentsConcurrent(t *testing.T) {
	type key struct{ id int }
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k := key{id: i}
			typeforge.Attach(k, i)
			v, ok := typeforge.Attachment(k)
			assert.True(t, ok)
			assert.Equal(t, i, v)
			assert.True(t, typeforge.Detach(k))
		}(i)
	}
	wg.Wait()
}
