package test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_UsesFakeClock(t *testing.T) {
	st := Stage(t)
	clock, ok := st.Clock.(*FakeClock)
	require.True(t, ok)

	assert.Equal(t, int64(0), st.Clock.Now())
	clock.Set(123)
	assert.Equal(t, int64(123), st.Clock.Now())
	assert.Equal(t, int64(130), clock.Advance(7))
	assert.Equal(t, int64(130), st.Clock.Now())
}
