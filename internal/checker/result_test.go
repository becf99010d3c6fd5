package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_SetKeepsFirstPosition(t *testing.T) {
	r := NewResult()
	r.Set("b", true)
	r.Set("a", false)
	r.Set("b", false)

	assert.Equal(t, []string{"b", "a"}, r.Keys())
	present, ok := r.Get("b")
	assert.True(t, ok)
	assert.False(t, present)
	assert.Equal(t, 0, r.Passed())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestResult_MarshalJSON(t *testing.T) {
	r := NewResult()
	r.Set("div > p", true)
	r.Set(`a[title="x"]`, false)
	r.Set("a & b", true)

	out, err := r.MarshalJSON()

	require.NoError(t, err)
	assert.Equal(t, `{"div > p":true,"a[title=\"x\"]":false,"a & b":true}`, string(out))
}

func TestResult_KeysIsCopy(t *testing.T) {
	r := NewResult()
	r.Set("a", true)

	keys := r.Keys()
	keys[0] = "z"

	assert.Equal(t, []string{"a"}, r.Keys())
}
