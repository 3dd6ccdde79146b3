package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/chemscreen/internal/model"
)

func TestKey(t *testing.T) {
	type opts struct {
		Mixed  bool
		Source string
	}

	a, err := Key("Fe3O4", opts{Mixed: true, Source: "icsd24"})
	require.NoError(t, err)
	b, err := Key("Fe3O4", opts{Mixed: true, Source: "icsd24"})
	require.NoError(t, err)
	c, err := Key("Fe3O4", opts{Mixed: false, Source: "icsd24"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, keyPrefix))

	_, err = Key(func() {})
	assert.Error(t, err)
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)

	require.NoError(t, c.Set("k", []byte(`"v"`), 0))
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte(`"v"`), got)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Set("short", []byte(`1`), time.Nanosecond))
	time.Sleep(time.Millisecond)
	_, ok = c.Get("short")
	assert.False(t, ok)

	require.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)

	require.NoError(t, c.Set("k", []byte(`1`), 0))
	require.NoError(t, c.Clear())
	assert.Zero(t, c.Len())
}

func TestDiskCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := NewDiskCache(dir, time.Hour)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	require.NoError(t, c.Set("k", []byte(`{"a":1}`), 0))
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(got))

	assert.Error(t, c.Set("bad", []byte("not json"), 0))

	require.NoError(t, c.Set("old", []byte(`1`), -time.Second))
	_, ok = c.Get("old")
	assert.False(t, ok)
	_, err := os.Stat(c.path("old"))
	assert.True(t, os.IsNotExist(err), "expired entry should be removed")

	require.NoError(t, c.Delete("k"))
	require.NoError(t, c.Delete("k"))

	require.NoError(t, c.Clear())
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	first := NewLayeredCache(time.Minute, dir, time.Hour)
	require.NoError(t, first.Set("k", []byte(`"v"`), 0))

	// a fresh process only has the disk layer populated
	second := NewLayeredCache(time.Minute, dir, time.Hour)
	got, ok := second.Get("k")
	require.True(t, ok)
	assert.Equal(t, `"v"`, string(got))

	got, ok = second.memory.Get("k")
	require.True(t, ok)
	assert.Equal(t, `"v"`, string(got))

	require.NoError(t, second.Delete("k"))
	_, ok = second.Get("k")
	assert.False(t, ok)
}

func TestVerdictCache(t *testing.T) {
	c := NewVerdictCache(NewMemoryCache(time.Minute, 0), 0)

	v := &model.Verdict{
		Formula: "Fe3O4",
		Valid:   true,
		Reason:  model.ReasonMixedValence,
		Source:  "icsd24",
		Assignment: []model.Species{
			{Symbol: "Fe", OxidationState: 2, Count: 1},
			{Symbol: "Fe", OxidationState: 3, Count: 2},
			{Symbol: "O", OxidationState: -2, Count: 4},
		},
	}
	require.NoError(t, c.Put("k", v))

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.True(t, got.Cached)
	assert.False(t, v.Cached)
	got.Cached = false
	assert.Equal(t, v, got)

	_, ok = c.Get("other")
	assert.False(t, ok)
}

func TestVerdictCache_DropsCorruptEntries(t *testing.T) {
	store := NewMemoryCache(time.Minute, 0)
	require.NoError(t, store.Set("k", []byte("{"), 0))

	c := NewVerdictCache(store, 0)
	_, ok := c.Get("k")
	assert.False(t, ok)
	_, ok = store.Get("k")
	assert.False(t, ok)
}
