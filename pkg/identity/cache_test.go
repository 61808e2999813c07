package identity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Parse(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)

	id := Identity{Kind: KindUser, DisplayName: "alice", PublicKey: randomKey(t)}

	got, err := c.Parse(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, 1, c.Len())

	// 命中
	got, err = c.Parse(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_ErrorsNotCached(t *testing.T) {
	c, err := NewCache(0)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := c.Parse("unknown.sutera-identity-v1." + zeroKeyHex)
		assert.ErrorIs(t, err, ErrUnsupportedKind)
	}
	assert.Equal(t, 0, c.Len())
}

func TestCache_Eviction(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := c.Parse(Identity{Kind: KindUser, PublicKey: randomKey(t)}.String())
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestCache_Concurrent(t *testing.T) {
	c, err := NewCache(16)
	require.NoError(t, err)

	text := Identity{Kind: KindUser, DisplayName: "bob", PublicKey: randomKey(t)}.String()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Parse(text)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}
