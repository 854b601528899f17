package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"quarteto/engine/ast"
	"quarteto/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRouter(t *testing.T) {
	st := test.Stage(t)
	_, err := st.Executor.Exec(context.Background(), ast.Classic, "mostrar \"x\"\nvoar", nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	MetricsRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `quarteto_statements_total{role="print"}`)
	assert.Contains(t, body, `quarteto_diagnostics_total{kind="unrecognized_command"}`)
	assert.Contains(t, body, `fn_duration_seconds`)
}
