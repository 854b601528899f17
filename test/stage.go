package test

import (
	"path/filepath"
	"testing"

	"quarteto/stage"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Stage returns a stage backed by a throwaway SQLite database with the
// program cache enabled. It is closed when the test ends.
func Stage(t *testing.T) stage.Stage {
	t.Helper()
	args := stage.StageArgs{
		SQLitePath:        filepath.Join(t.TempDir(), "quarteto_test.db"),
		ProgramCacheBytes: 1 << 20,
		Dev:               true,
	}
	s, err := stage.CreateFromArgs(&args)
	require.NoError(t, err)
	s.Logger = zap.NewNop()
	s.Clock = &FakeClock{}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
