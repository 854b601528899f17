package main

import (
	"io"
	"strings"
	"testing"

	"quarteto/lib/script"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func TestGetRunRequestFromRest(t *testing.T) {
	req, err := getRunRequestFromRest([]byte(`{"source": "apresentar \"a\\nb\"", "bindings": {"xé": "1", "y": "\"q\""}}`))
	require.NoError(t, err)
	assert.Equal(t, script.RunRequest{
		Source:   `apresentar "a` + "\n" + `b"`,
		Bindings: map[string]string{"xé": "1", "y": `"q"`},
	}, req)

	req, err = getRunRequestFromRest([]byte(`{"vocabulary": "classic", "source": "", "bindings": null}`))
	require.NoError(t, err)
	assert.Equal(t, "classic", req.Vocabulary)
	assert.Equal(t, map[string]string{}, req.Bindings)
}

func TestGetScriptFromRest(t *testing.T) {
	s, err := getScriptFromRest([]byte(`{"id": 7, "name": "a", "vocabulary": "classic", "source": "mostrar x", "timestamp": 9}`))
	require.NoError(t, err)
	assert.Equal(t, script.Script{Name: "a", Vocabulary: "classic", Source: "mostrar x"}, s)

	_, err = getScriptFromRest([]byte(`{"name": "a", "source": "mostrar x"}`))
	assert.Error(t, err)
}

func TestGetRunScriptBindingsFromRest(t *testing.T) {
	b, err := getRunScriptBindingsFromRest(nil)
	require.NoError(t, err)
	assert.Empty(t, b)

	b, err = getRunScriptBindingsFromRest([]byte(`{"bindings": {"a": "b"}}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "b"}, b)

	_, err = getRunScriptBindingsFromRest([]byte(`{"source": "x"}`))
	assert.Error(t, err)
}
