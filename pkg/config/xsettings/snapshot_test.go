package xsettings_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/nativekit/pkg/config/xsettings"
	"github.com/omeyang/nativekit/pkg/option/xoption"
	"github.com/omeyang/nativekit/pkg/storage/xstore"
)

func TestSnapshot_KeysFollowDeclarationOrder(t *testing.T) {
	backend := xstore.NewMemory(map[string]string{
		"Retries": "7",
		"Verbose": "1",
	})
	cfg := newTestConfig(t, backend)

	snap, err := cfg.Snapshot(testContext(t))
	require.NoError(t, err)

	// 字节级顺序断言：键按注册表声明顺序出现。
	assert.Equal(t,
		`{"Greeting":"hello","Retries":7,"Verbose":true,"Tags":null}`,
		string(snap))
}

func TestSnapshot_ExcludesVersionKey(t *testing.T) {
	cfg := newTestConfig(t, xstore.NewMemory(nil))

	snap, err := cfg.Snapshot(testContext(t))
	require.NoError(t, err)

	var entries map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(snap, &entries))
	assert.NotContains(t, entries, xsettings.DefaultVersionKey)
}

func TestRestore_RoundTrip_ReproducesValues(t *testing.T) {
	src := newTestConfig(t, xstore.NewMemory(nil))
	require.NoError(t, src.Set(testContext(t), "Greeting", "salve"))
	require.NoError(t, src.Set(testContext(t), "Retries", int64(12)))
	require.NoError(t, src.Set(testContext(t), "Tags", []any{"x", "y"}))

	snap, err := src.Snapshot(testContext(t))
	require.NoError(t, err)

	dst := newTestConfig(t, xstore.NewMemory(nil))
	require.NoError(t, dst.Restore(testContext(t), snap))

	for name, want := range map[string]any{
		"Greeting": "salve",
		"Retries":  int64(12),
		"Tags":     []any{"x", "y"},
	} {
		value, errGet := dst.Get(testContext(t), name)
		require.NoError(t, errGet)
		assert.Equal(t, want, value, name)
	}
}

func TestRestore_UnknownKeys_Ignored(t *testing.T) {
	cfg := newTestConfig(t, xstore.NewMemory(nil))

	err := cfg.Restore(testContext(t), []byte(`{"Greeting":"hi","Removed":"whatever"}`))
	require.NoError(t, err)

	value, err := cfg.Get(testContext(t), "Greeting")
	require.NoError(t, err)
	assert.Equal(t, "hi", value)
}

func TestRestore_NullValue_DeletesOption(t *testing.T) {
	backend := xstore.NewMemory(map[string]string{"Greeting": "stored"})
	cfg := newTestConfig(t, backend)

	require.NoError(t, cfg.Restore(testContext(t), []byte(`{"Greeting":null}`)))

	_, ok, err := backend.Read(testContext(t), "Greeting")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRestore_MalformedSnapshot_Error(t *testing.T) {
	cfg := newTestConfig(t, xstore.NewMemory(nil))

	err := cfg.Restore(testContext(t), []byte(`["not","an","object"]`))
	assert.ErrorIs(t, err, xsettings.ErrBadSnapshot)
}

func TestRestore_BadEntry_OthersStillRestored(t *testing.T) {
	cfg := newTestConfig(t, xstore.NewMemory(nil))

	err := cfg.Restore(testContext(t),
		[]byte(`{"Greeting":"ok","Retries":"not a number"}`))

	// 默认解析器放弃坏键但不报错，其余键照常恢复。
	require.NoError(t, err)

	value, gerr := cfg.Get(testContext(t), "Greeting")
	require.NoError(t, gerr)
	assert.Equal(t, "ok", value)

	value, gerr = cfg.Get(testContext(t), "Retries")
	require.NoError(t, gerr)
	assert.Equal(t, int64(3), value)
}

func TestRestore_BadEntry_ResolverSuppliesReplacement(t *testing.T) {
	var got xsettings.Failure
	cfg, err := xsettings.New(testContext(t), newTestRegistry(t), xstore.NewMemory(nil),
		xsettings.WithResolver(func(f xsettings.Failure) (any, error) {
			got = f
			return int64(1), nil
		}))
	require.NoError(t, err)

	require.NoError(t, cfg.Restore(testContext(t), []byte(`{"Retries":"broken"}`)))

	assert.Equal(t, "Retries", got.Name)
	assert.Equal(t, xsettings.SourceRestore, got.Source)
	assert.ErrorIs(t, got.Err, xoption.ErrDeserialization)

	value, err := cfg.Get(testContext(t), "Retries")
	require.NoError(t, err)
	assert.Equal(t, int64(1), value)
}

func TestRestore_Idempotent_SecondPassWritesNothing(t *testing.T) {
	snap := []byte(`{"Greeting":"twice","Retries":5}`)

	backend := newCountingBackend(nil)
	cfg := newTestConfig(t, backend, xsettings.WithCache(true))

	require.NoError(t, cfg.Restore(testContext(t), snap))
	writesAfterFirst := backend.writes

	require.NoError(t, cfg.Restore(testContext(t), snap))
	assert.Equal(t, writesAfterFirst, backend.writes)
}
