package world

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/legion-shores/internal/errx"
)

func TestRecipeValidate(t *testing.T) {
	require.NoError(t, StandardRecipe().Validate())
	require.NoError(t, LargeRecipe().Validate())

	r := StandardRecipe()
	r.Size = 128
	require.ErrorIs(t, r.Validate(), errx.ErrConfiguration)
	_, err := r.Build(1)
	require.ErrorIs(t, err, errx.ErrConfiguration)

	r = StandardRecipe()
	r.Border = -2
	require.ErrorIs(t, r.Validate(), errx.ErrConfiguration)
}

func TestLargeRecipeScalesStandard(t *testing.T) {
	std, large := StandardRecipe(), LargeRecipe()
	assert.Equal(t, 512, large.Size)
	assert.Equal(t, 4*std.Flood.FloodSize, large.Flood.FloodSize)
	assert.Equal(t, 2*std.Rivers.Amount, large.Rivers.Amount)
	assert.Equal(t, std.Settle, large.Settle)
}

func TestStandardRecipeBuild(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size build")
	}
	r := StandardRecipe()
	a, err := r.Build(2024)
	require.NoError(t, err)
	requireFinished(t, a, r.Size)

	counts := Counts(a)
	assert.Equal(t, 4*r.Size-4, counts[TerrainCloud])
	assert.Positive(t, counts[TerrainPlains])
	assert.Positive(t, counts[TerrainForest]+counts[TerrainDryForest])

	b, err := r.Build(2024)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a.Bytes(), b.Bytes()))
}

func TestRecipeWithNoiseBase(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size build")
	}
	r := StandardRecipe()
	noise := DefaultNoiseParams()
	r.Noise = &noise
	g, err := r.Build(7)
	require.NoError(t, err)
	requireFinished(t, g, r.Size)
}
