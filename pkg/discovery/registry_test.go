package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(extPanID []byte, network string) *Router {
	return &Router{
		Key:         RouterKey(extPanID),
		NetworkName: network,
	}
}

func TestRouterRegistryUpsert(t *testing.T) {
	var discovered []*Router
	reg := NewRouterRegistry(func(r *Router) {
		discovered = append(discovered, r)
	}, nil)

	router := testRouter([]byte{1, 2, 3, 4, 5, 6, 7, 8}, "NetA")
	reg.Upsert("agent #1", router)

	require.Len(t, discovered, 1)
	assert.Equal(t, router, discovered[0])
	assert.Equal(t, 1, reg.Len())
}

func TestRouterRegistryUpsertResignals(t *testing.T) {
	count := 0
	reg := NewRouterRegistry(func(*Router) { count++ }, nil)

	router := testRouter([]byte{1, 2, 3, 4, 5, 6, 7, 8}, "NetA")
	reg.Upsert("agent #1", router)
	reg.Upsert("agent #1", router)

	assert.Equal(t, 2, count)
	assert.Equal(t, 1, reg.Len())
}

func TestRouterRegistryConvergesByKey(t *testing.T) {
	reg := NewRouterRegistry(nil, nil)

	extPanID := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	reg.Upsert("agent old name", testRouter(extPanID, "NetA"))
	reg.Upsert("agent new name", testRouter(extPanID, "NetA"))

	// Two instance names, one extended PAN ID: a single router.
	assert.Equal(t, 1, reg.Len())
}

func TestRouterRegistryRemove(t *testing.T) {
	var removed []string
	reg := NewRouterRegistry(nil, func(key string) {
		removed = append(removed, key)
	})

	router := testRouter([]byte{1, 2, 3, 4, 5, 6, 7, 8}, "NetA")
	reg.Upsert("agent #1", router)

	key, ok := reg.Remove("agent #1")
	require.True(t, ok)
	assert.Equal(t, router.Key, key)
	assert.Equal(t, []string{router.Key}, removed)
	assert.Equal(t, 0, reg.Len())
}

func TestRouterRegistryRemoveUnknownIsSilent(t *testing.T) {
	called := false
	reg := NewRouterRegistry(nil, func(string) { called = true })

	_, ok := reg.Remove("never announced")
	assert.False(t, ok)
	assert.False(t, called)
}

func TestRouterRegistryRemoveStaleNameIsSilent(t *testing.T) {
	var removed []string
	reg := NewRouterRegistry(nil, func(key string) {
		removed = append(removed, key)
	})

	extPanID := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	reg.Upsert("old name", testRouter(extPanID, "NetA"))
	reg.Upsert("new name", testRouter(extPanID, "NetA"))

	_, ok := reg.Remove("new name")
	require.True(t, ok)

	// The old name still maps to the dropped key; withdrawing it is a no-op.
	_, ok = reg.Remove("old name")
	assert.False(t, ok)
	assert.Len(t, removed, 1)
}

func TestRouterRegistryClearIsSilent(t *testing.T) {
	var removed []string
	reg := NewRouterRegistry(nil, func(key string) {
		removed = append(removed, key)
	})

	reg.Upsert("agent #1", testRouter([]byte{1, 2, 3, 4, 5, 6, 7, 8}, "NetA"))
	reg.Upsert("agent #2", testRouter([]byte{8, 7, 6, 5, 4, 3, 2, 1}, "NetB"))

	reg.Clear()
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, removed)
	assert.Empty(t, reg.Routers())
}
