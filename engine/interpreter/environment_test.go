package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnv_Set_Lookup(t *testing.T) {
	env := NewEnv()
	assert.True(t, env.Lookup("var").IsAbsent())
	assert.Equal(t, "var", env.Resolve("var"))

	env.Set("var", "1")
	v, ok := env.Lookup("var").Get()
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	// later assignments overwrite
	env.Set("var", "2")
	assert.Equal(t, "2", env.Resolve("var"))
	assert.Equal(t, 1, env.Len())

	// an empty value is still a binding
	env.Set("empty", "")
	assert.True(t, env.Lookup("empty").IsPresent())
	assert.Equal(t, "", env.Resolve("empty"))
	assert.Equal(t, []string{"empty", "var"}, env.Names())
}

func TestEnv_FromMap_Copies(t *testing.T) {
	seed := map[string]string{"a": "1"}
	env := FromMap(seed)
	env.Set("a", "2")
	env.Set("b", "3")
	assert.Equal(t, map[string]string{"a": "1"}, seed)

	snapshot := env.Bindings()
	assert.Equal(t, map[string]string{"a": "2", "b": "3"}, snapshot)
	snapshot["c"] = "4"
	assert.Equal(t, 2, env.Len())
}
