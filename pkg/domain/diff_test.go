package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	t.Run("identical", func(t *testing.T) {
		assert.Nil(t, Diff(sampleBehaviour(), sampleBehaviour()))
		assert.True(t, Equal(sampleBehaviour(), sampleBehaviour()))
	})

	t.Run("initial load", func(t *testing.T) {
		d := Diff(nil, sampleBehaviour())
		require.NotNil(t, d)
		assert.Nil(t, d.Name)
		assert.Equal(t, []string{"GreetPlayer", "Wave", "Leave"}, d.VerbsAdded)
		assert.Equal(t, []string{"oPC", "sLine", "oDoor", "nTries"}, d.VariablesAdded)
	})

	t.Run("follower edge change", func(t *testing.T) {
		newB := sampleBehaviour()
		newB.Verb("Wave").RemoveFollower(newB.Verb("Leave"))

		d := Diff(sampleBehaviour(), newB)
		require.NotNil(t, d)
		assert.Equal(t, []string{"Wave"}, d.VerbsChanged)
		assert.False(t, d.VerbsReordered)
	})

	t.Run("rename and remove", func(t *testing.T) {
		newB := sampleBehaviour()
		newB.Name = "Host"
		newB.RemoveVariable("oDoor")
		newB.Variables[0].Description = "Guest"

		d := Diff(sampleBehaviour(), newB)
		require.NotNil(t, d)
		require.NotNil(t, d.Name)
		assert.Equal(t, "Host", *d.Name)
		assert.Equal(t, []string{"oDoor"}, d.VariablesRemoved)
		assert.Equal(t, []string{"oPC"}, d.VariablesChanged)
	})

	t.Run("reorder", func(t *testing.T) {
		newB := sampleBehaviour()
		newB.Verbs[0], newB.Verbs[1] = newB.Verbs[1], newB.Verbs[0]

		d := Diff(sampleBehaviour(), newB)
		require.NotNil(t, d)
		assert.True(t, d.VerbsReordered)
		assert.False(t, Equal(sampleBehaviour(), newB))
	})
}
