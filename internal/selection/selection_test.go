package selection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleKeepsToggleOrder(t *testing.T) {
	s := New([]string{"A", "B", "C"})

	on, err := s.Toggle("A")
	require.NoError(t, err)
	assert.True(t, on)
	_, err = s.Toggle("B")
	require.NoError(t, err)
	on, err = s.Toggle("A")
	require.NoError(t, err)
	assert.False(t, on)

	assert.Equal(t, []string{"B"}, s.Selected())
	assert.Equal(t, 1, s.Count())
	assert.False(t, s.IsSelected("A"))
	assert.True(t, s.IsSelected("B"))
}

func TestOrderFollowsTogglesNotColumns(t *testing.T) {
	s := New([]string{"A", "B", "C"})
	for _, f := range []string{"C", "A"} {
		_, err := s.Toggle(f)
		require.NoError(t, err)
	}
	p, ignored, err := s.Pair()
	require.NoError(t, err)
	assert.Equal(t, Pair{X: "C", Y: "A"}, p)
	assert.Empty(t, ignored)
}

func TestPairInsufficient(t *testing.T) {
	s := New([]string{"A", "B"})
	_, _, err := s.Pair()
	var ie *InsufficientError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 0, ie.Selected)

	_, err = s.Toggle("A")
	require.NoError(t, err)
	_, _, err = s.Pair()
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 1, ie.Selected)
}

func TestPairExcessUsesFirstTwo(t *testing.T) {
	s := New([]string{"A", "B", "C"})
	for _, f := range []string{"A", "B", "C"} {
		_, err := s.Toggle(f)
		require.NoError(t, err)
	}
	p, ignored, err := s.Pair()
	require.NoError(t, err)
	assert.Equal(t, Pair{X: "A", Y: "B"}, p)
	assert.Equal(t, []string{"C"}, ignored)
}

func TestToggleUnknownField(t *testing.T) {
	s := New([]string{"A"})
	_, err := s.Toggle("Z")
	var ue *UnknownFieldError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "Z", ue.Field)
	assert.Zero(t, s.Count())
}

func TestSelectedReturnsCopy(t *testing.T) {
	s := New([]string{"A", "B"})
	_, _ = s.Toggle("A")
	got := s.Selected()
	got[0] = "mutated"
	assert.Equal(t, []string{"A"}, s.Selected())
}
