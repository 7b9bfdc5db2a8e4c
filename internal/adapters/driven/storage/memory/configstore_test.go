package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("edition", "solo"))
	require.NoError(t, store.Set("edition", "pro"))

	val, ok := store.Get("edition")
	assert.True(t, ok)
	assert.Equal(t, "pro", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("document.path", "config/schema.yml")
	_ = store.Set("document.split", true)
	_ = store.Set("retries.int", 3)
	_ = store.Set("retries.int64", int64(4))
	_ = store.Set("retries.float", float64(5))
	_ = store.Set("wrong", 12)

	assert.Equal(t, "config/schema.yml", store.GetString("document.path"))
	assert.Empty(t, store.GetString("wrong"))
	assert.True(t, store.GetBool("document.split"))
	assert.False(t, store.GetBool("wrong"))
	assert.Equal(t, 3, store.GetInt("retries.int"))
	assert.Equal(t, 4, store.GetInt("retries.int64"))
	assert.Equal(t, 5, store.GetInt("retries.float"))
	assert.Zero(t, store.GetInt("document.path"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{name: "string slice", value: []string{"plugins", "sites"}, want: []string{"plugins", "sites"}},
		{name: "any slice", value: []any{"plugins", 3, "sites"}, want: []string{"plugins", "sites"}},
		{name: "comma separated", value: "plugins, sites,,fields ", want: []string{"plugins", "sites", "fields"}},
		{name: "wrong type", value: 7, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			_ = store.Set("exclude", tt.value)
			assert.Equal(t, tt.want, store.GetStringSlice("exclude"))
		})
	}

	assert.Nil(t, NewConfigStore().GetStringSlice("exclude"))
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("storage.path", ".schematic")
	_ = store.Set("edition", "pro")
	_ = store.Set("document.path", "schema.yml")

	assert.Equal(t, []string{"document.path", "edition", "storage.path"}, store.Keys())
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("force", n%2 == 0)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetBool("force")
			_ = store.Keys()
		}()
	}
	wg.Wait()

	_, ok := store.Get("force")
	assert.True(t, ok)
}
