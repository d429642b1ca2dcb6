package registry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveValue(t *testing.T, src Source, name string) (string, bool) {
	t.Helper()
	v, ok := src.Variable(name)
	if !ok {
		return "", false
	}
	value, ok, err := v.Resolve(context.Background())
	require.NoError(t, err)
	return value, ok
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := New()
	reg.RegisterValue("region", "us-east-1")

	t.Run("registered name resolves", func(t *testing.T) {
		value, ok := resolveValue(t, reg, "region")
		assert.True(t, ok)
		assert.Equal(t, "us-east-1", value)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, ok := reg.Variable("missing")
		assert.False(t, ok)
	})

	t.Run("register replaces", func(t *testing.T) {
		reg.RegisterValue("region", "eu-west-1")
		value, _ := resolveValue(t, reg, "region")
		assert.Equal(t, "eu-west-1", value)
	})
}

func TestRegistry_RegisterFunc(t *testing.T) {
	reg := New()
	reg.RegisterFunc("dynamic", func(context.Context) (string, bool, error) {
		return "computed", true, nil
	})
	reg.RegisterFunc("empty", func(context.Context) (string, bool, error) {
		return "", false, nil
	})
	reg.RegisterFunc("broken", func(context.Context) (string, bool, error) {
		return "", false, errors.New("boom")
	})

	value, ok := resolveValue(t, reg, "dynamic")
	assert.True(t, ok)
	assert.Equal(t, "computed", value)

	_, ok = resolveValue(t, reg, "empty")
	assert.False(t, ok)

	v, found := reg.Variable("broken")
	require.True(t, found)
	_, _, err := v.Resolve(context.Background())
	assert.Error(t, err)
}

func TestRegistry_Mutation(t *testing.T) {
	reg := New()
	reg.RegisterValue("a", "1")
	reg.RegisterValue("b", "2")

	assert.True(t, reg.Has("a"))
	assert.Equal(t, 2, reg.Len())
	assert.ElementsMatch(t, []string{"a", "b"}, reg.Names())

	reg.Delete("a")
	assert.False(t, reg.Has("a"))
	assert.Equal(t, 1, reg.Len())

	// Deleting an absent name is a no-op.
	reg.Delete("a")
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := New()
	reg.RegisterValue("shared", "v")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				reg.RegisterValue("shared", "v")
				_, ok := reg.Variable("shared")
				assert.True(t, ok)
				reg.Has("shared")
				reg.Len()
			}
		}()
	}
	wg.Wait()
}

func TestVariableFunc(t *testing.T) {
	var f Variable = VariableFunc(func(context.Context) (string, bool, error) {
		return "v", true, nil
	})
	value, ok, err := f.Resolve(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}
