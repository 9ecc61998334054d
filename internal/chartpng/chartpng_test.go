package chartpng

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/altinukshini/schedviz/internal/diagnostics"
	"github.com/altinukshini/schedviz/internal/model"
	"github.com/altinukshini/schedviz/internal/present"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func optionsFor(theme present.Theme, title string) present.Options {
	return present.OptionsFor(present.NewThemeState(theme), title)
}

func TestHeuristicCostDecomposed(t *testing.T) {
	c := diagnostics.BindHeuristic(model.HeuristicValues{
		Variant: model.VariantCostDecomposed,
		Costs: []model.CostRecord{
			{F: 10, G: 0, H: 10},
			{F: 12, G: 4, H: 8},
			{F: 15, G: 9, H: 6},
		},
	})

	var buf bytes.Buffer
	err := Heuristic(&buf, c, optionsFor(present.Light, diagnostics.HeuristicTitle), DefaultWidth, DefaultHeight)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestHeuristicSinglePoint(t *testing.T) {
	c := diagnostics.BindHeuristic(model.HeuristicValues{
		Variant:    model.VariantHeuristicOnly,
		Heuristics: []model.HeuristicRecord{{Heuristic: 7}},
	})

	var buf bytes.Buffer
	err := Heuristic(&buf, c, optionsFor(present.Dark, diagnostics.HeuristicTitle), DefaultWidth, DefaultHeight)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestExploration(t *testing.T) {
	c := diagnostics.BindExploration(map[string]int{"0": 1, "1": 4, "2": 9, "10": 2})

	var buf bytes.Buffer
	err := Exploration(&buf, c, optionsFor(present.Dark, diagnostics.ExplorationTitle), DefaultWidth, DefaultHeight)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestExplorationAllZero(t *testing.T) {
	c := diagnostics.BindExploration(map[string]int{"0": 0})

	var buf bytes.Buffer
	err := Exploration(&buf, c, optionsFor(present.Light, diagnostics.ExplorationTitle), DefaultWidth, DefaultHeight)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestNoData(t *testing.T) {
	opts := optionsFor(present.Light, "")
	var buf bytes.Buffer

	require.ErrorIs(t, Heuristic(&buf, diagnostics.BindHeuristic(model.HeuristicValues{}), opts, DefaultWidth, DefaultHeight), ErrNoData)
	require.ErrorIs(t, Exploration(&buf, diagnostics.BindExploration(nil), opts, DefaultWidth, DefaultHeight), ErrNoData)
	require.Zero(t, buf.Len())
}
