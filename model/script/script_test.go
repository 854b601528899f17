package script

import (
	"context"
	"testing"

	"quarteto/lib/script"
	"quarteto/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertRetrieve(t *testing.T) {
	ctx := context.Background()
	st := test.Stage(t)
	clock := &test.FakeClock{}
	st.Clock = clock

	_, err := Retrieve(ctx, st, "demo")
	assert.ErrorIs(t, err, script.ErrNotFound)

	clock.Set(1)
	s1 := script.Script{Name: "demo", Vocabulary: "classic", Source: `mostrar "v1"`}
	id1, err := Insert(ctx, st, s1)
	require.NoError(t, err)
	s1.ID, s1.Timestamp = id1, 1

	found, err := Retrieve(ctx, st, "demo")
	require.NoError(t, err)
	assert.Equal(t, s1, found)

	// a second version shadows the first one
	clock.Set(3)
	s2 := script.Script{Name: "demo", Vocabulary: "musical", Source: `apresentar "v2"`}
	id2, err := Insert(ctx, st, s2)
	require.NoError(t, err)
	s2.ID, s2.Timestamp = id2, 3
	assert.Greater(t, id2, id1)

	found, err = Retrieve(ctx, st, "demo")
	require.NoError(t, err)
	assert.Equal(t, s2, found)

	versions, err := Versions(ctx, st, "demo")
	require.NoError(t, err)
	assert.Equal(t, []script.Script{s1, s2}, versions)

	// lookups are by exact name
	_, err = Retrieve(ctx, st, "Demo")
	assert.ErrorIs(t, err, script.ErrNotFound)
}

func TestInsert_Invalid(t *testing.T) {
	st := test.Stage(t)
	_, err := Insert(context.Background(), st, script.Script{Name: "x", Vocabulary: "jazz"})
	assert.Error(t, err)
	scripts, err := List(context.Background(), st)
	require.NoError(t, err)
	assert.Empty(t, scripts)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	st := test.Stage(t)
	for _, s := range []script.Script{
		{Name: "b", Vocabulary: "classic", Source: "1"},
		{Name: "a", Vocabulary: "classic", Source: "2"},
		{Name: "b", Vocabulary: "musical", Source: "3"},
	} {
		_, err := Insert(ctx, st, s)
		require.NoError(t, err)
	}
	scripts, err := List(ctx, st)
	require.NoError(t, err)
	require.Len(t, scripts, 2)
	assert.Equal(t, "a", scripts[0].Name)
	assert.Equal(t, "2", scripts[0].Source)
	assert.Equal(t, "b", scripts[1].Name)
	assert.Equal(t, "3", scripts[1].Source)
}
