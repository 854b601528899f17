package stage

import (
	"context"
	"path/filepath"
	"testing"

	"quarteto/engine/ast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageArgs_Valid(t *testing.T) {
	assert.NoError(t, StageArgs{SQLitePath: "x.db"}.Valid())
	assert.Error(t, StageArgs{}.Valid())
	assert.Error(t, StageArgs{SQLitePath: "x.db", ProgramCacheBytes: -1}.Valid())

	err := StageArgs{MysqlHost: "localhost:3306", MysqlDB: "quarteto"}.Valid()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MYSQL_USERNAME")
	assert.Contains(t, err.Error(), "MYSQL_PASSWORD")
	assert.NoError(t, StageArgs{MysqlHost: "h", MysqlDB: "d", MysqlUsername: "u", MysqlPassword: "p"}.Valid())
}

func TestCreateFromArgs(t *testing.T) {
	for _, cacheBytes := range []int64{0, 1 << 20} {
		args := StageArgs{
			SQLitePath:        filepath.Join(t.TempDir(), "stage.db"),
			ProgramCacheBytes: cacheBytes,
			Dev:               true,
		}
		s, err := CreateFromArgs(&args)
		require.NoError(t, err)
		assert.Equal(t, cacheBytes > 0, s.Cache.IsPresent())
		assert.NoError(t, s.DB.Ping())

		res, err := s.Executor.Exec(context.Background(), ast.Classic, `mostrar "ok"`, nil)
		assert.NoError(t, err)
		assert.Equal(t, []string{"ok"}, res.Output)
		assert.NoError(t, s.Close())
	}
}

func TestStage_CloseTwice(t *testing.T) {
	args := StageArgs{
		SQLitePath:        filepath.Join(t.TempDir(), "stage.db"),
		ProgramCacheBytes: 1 << 20,
		Dev:               true,
	}
	s, err := CreateFromArgs(&args)
	require.NoError(t, err)
	copied := s
	assert.NoError(t, s.Close())
	assert.NotPanics(t, func() {
		assert.NoError(t, s.Close())
		assert.NoError(t, copied.Close())
	})
}
