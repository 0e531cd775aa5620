package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnyConversions(t *testing.T) {
	assert.Equal(t, "abc", AnyToString("abc"))
	assert.Equal(t, "", AnyToString(42))
	assert.Equal(t, "", AnyToString(nil))

	assert.Equal(t, map[string]any{"k": "v"}, AnyToMap(map[string]any{"k": "v"}))
	assert.Nil(t, AnyToMap("not a map"))

	assert.True(t, AnyToBool(true))
	assert.False(t, AnyToBool(false))
	assert.False(t, AnyToBool("true"))
}

func TestDecodeJSON(t *testing.T) {
	var out map[string]any
	require.NoError(t, DecodeJSON(strings.NewReader(`{"value":{"ready":true}}`), &out))
	assert.True(t, AnyToBool(AnyToMap(out["value"])["ready"]))

	var empty map[string]any
	require.NoError(t, DecodeJSON(strings.NewReader(""), &empty))
	assert.Nil(t, empty)

	assert.Error(t, DecodeJSON(strings.NewReader("{"), &out))
}

func TestJsonString(t *testing.T) {
	assert.Equal(t, `{"a":1}`, JsonString(map[string]int{"a": 1}))
	assert.Contains(t, JsonIndent(map[string]int{"a": 1}), "\n  \"a\": 1")
}
