package doxygen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig_SetKeepsFirstPosition(t *testing.T) {
	cfg := New()
	cfg.SetString("PROJECT_NAME", "a")
	cfg.SetString("INPUT", "src")
	cfg.SetString("PROJECT_NAME", "b")

	require.Equal(t, []string{"PROJECT_NAME", "INPUT"}, cfg.Keys())
	require.Equal(t, "b", cfg.Lookup("PROJECT_NAME"))
	require.Equal(t, 2, cfg.Len())
}

func TestConfig_Append(t *testing.T) {
	t.Run("absent key creates list", func(t *testing.T) {
		cfg := New()
		cfg.Append("TAGFILES", "a=b")
		v, ok := cfg.Get("TAGFILES")
		require.True(t, ok)
		require.True(t, v.IsList())
		require.Equal(t, []string{"a=b"}, v.Items())
	})

	t.Run("empty scalar is replaced", func(t *testing.T) {
		cfg := New()
		cfg.SetString("TAGFILES", "")
		cfg.Append("TAGFILES", "a=b")
		v, _ := cfg.Get("TAGFILES")
		require.Equal(t, []string{"a=b"}, v.Items())
	})

	t.Run("scalar becomes first element", func(t *testing.T) {
		cfg := New()
		cfg.SetString("TAGFILES", "x=y")
		cfg.Append("TAGFILES", "a=b", "c=d")
		v, _ := cfg.Get("TAGFILES")
		require.Equal(t, []string{"x=y", "a=b", "c=d"}, v.Items())
	})
}

func TestConfig_UpdateAndClone(t *testing.T) {
	base := New()
	base.SetString("A", "1")
	base.SetString("B", "2")

	clone := base.Clone()
	overlay := New()
	overlay.SetString("B", "20")
	overlay.SetString("C", "30")
	clone.Update(overlay)

	require.Equal(t, []string{"A", "B", "C"}, clone.Keys())
	require.Equal(t, "20", clone.Lookup("B"))
	require.Equal(t, "2", base.Lookup("B"), "clone must not alias the original")

	clone.Update(nil)
	require.Equal(t, 3, clone.Len())
}

func TestValue_String(t *testing.T) {
	require.Equal(t, "x", Scalar("x").String())
	require.Equal(t, "a b", List("a", "b").String())
	require.Empty(t, List().Items())
	require.False(t, Scalar("x").IsList())
}
