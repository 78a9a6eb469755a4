package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitJoinRoundTrip(t *testing.T) {
	in := []string{"Name", "Email", "Message"}
	assert.Equal(t, in, SplitList(JoinList(in)))
	assert.Equal(t, []string{}, SplitList(""))
	assert.Equal(t, []string{}, SplitList("   "))
	assert.Equal(t, []string{"a", "b"}, SplitList("a, b"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "héllo...", Truncate("héllo wörld", 5))
	assert.Equal(t, "anything", Truncate("anything", 0))
}

func TestStringShapes(t *testing.T) {
	c := map[string]any{"s": "x", "n": 3, "f": 1.5, "b": true, "m": map[string]any{}}
	assert.Equal(t, "x", String(c, "s"))
	assert.Equal(t, "3", String(c, "n"))
	assert.Equal(t, "1.5", String(c, "f"))
	assert.Equal(t, "true", String(c, "b"))
	assert.Equal(t, "", String(c, "m"))
	assert.Equal(t, "", String(c, "missing"))
	assert.Equal(t, "fallback", Or(" ", "fallback"))
}

func TestStringDecodedNumbers(t *testing.T) {
	// BSON decodes small integers as int32 and may carry float32.
	c := map[string]any{"i32": int32(42), "f32": float32(2.5)}
	assert.Equal(t, "42", String(c, "i32"))
	assert.Equal(t, "2.5", String(c, "f32"))
}
