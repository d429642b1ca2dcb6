package varsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/varsub/pkg/varsub/registry"
)

func parseYAML(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &n))
	return &n
}

func marshalYAML(t *testing.T, n *yaml.Node) string {
	t.Helper()
	out, err := yaml.Marshal(n)
	require.NoError(t, err)
	return string(out)
}

// TestResolveNode_KeyOrderPreserved tests that mapping keys keep their
// document order through substitution.
func TestResolveNode_KeyOrderPreserved(t *testing.T) {
	r := staticResolver(map[string]string{"env": "prod"})

	in := parseYAML(t, "zulu: ${env}\nalpha: plain\nmike: ${env}-db\n")
	out, ok := r.Resolve(context.Background(), in).(*yaml.Node)
	require.True(t, ok)

	assert.Equal(t, "zulu: prod\nalpha: plain\nmike: prod-db\n", marshalYAML(t, out))
}

// TestResolveNode_OnlyStringScalars tests that non-string scalars are
// untouched even when their text contains token-like content.
func TestResolveNode_OnlyStringScalars(t *testing.T) {
	r := staticResolver(map[string]string{"n": "7"})

	in := parseYAML(t, "count: 42\nratio: 0.5\nflag: true\nempty: null\nname: ${n}\n")
	out := r.Resolve(context.Background(), in).(*yaml.Node)

	assert.Equal(t, "count: 42\nratio: 0.5\nflag: true\nempty: null\nname: \"7\"\n", marshalYAML(t, out))
}

// TestResolveNode_KeysNeverSubstituted tests that tokens in mapping keys
// are left alone.
func TestResolveNode_KeysNeverSubstituted(t *testing.T) {
	r := staticResolver(map[string]string{"k": "replaced"})

	in := parseYAML(t, "${k}: ${k}\n")
	out := r.Resolve(context.Background(), in).(*yaml.Node)

	assert.Equal(t, "${k}: replaced\n", marshalYAML(t, out))
}

// TestResolveNode_Sequences tests substitution inside sequences.
func TestResolveNode_Sequences(t *testing.T) {
	r := staticResolver(map[string]string{"x": "v"})

	in := parseYAML(t, "- ${x}\n- 42\n- ${missing}\n")
	out := r.Resolve(context.Background(), in).(*yaml.Node)

	assert.Equal(t, "- v\n- 42\n- ${missing}\n", marshalYAML(t, out))
}

// TestResolveNode_InputNotMutated tests that the original tree is intact
// after resolution.
func TestResolveNode_InputNotMutated(t *testing.T) {
	r := staticResolver(map[string]string{"x": "v"})

	in := parseYAML(t, "a: ${x}\n")
	before := marshalYAML(t, in)

	_ = r.Resolve(context.Background(), in)
	assert.Equal(t, before, marshalYAML(t, in))
}

// TestResolveNode_Memoized tests one lookup per name across a node tree.
func TestResolveNode_Memoized(t *testing.T) {
	calls := 0
	reg := registry.New()
	reg.RegisterFunc("x", func(context.Context) (string, bool, error) {
		calls++
		return "v", true, nil
	})
	r := New(reg)

	in := parseYAML(t, "a: ${x}\nb:\n  - ${x}\n  - ${x}\n")
	out := r.Resolve(context.Background(), in).(*yaml.Node)

	assert.Equal(t, 1, calls)

	var got map[string]any
	require.NoError(t, out.Decode(&got))
	assert.Equal(t, map[string]any{"a": "v", "b": []any{"v", "v"}}, got)
}

// TestResolveNode_Nil tests the nil node case.
func TestResolveNode_Nil(t *testing.T) {
	r := staticResolver(nil)
	var n *yaml.Node
	out := r.Resolve(context.Background(), n)
	assert.Equal(t, (*yaml.Node)(nil), out)
}
