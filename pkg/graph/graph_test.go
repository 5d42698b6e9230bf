package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eth-easl/complexitygraph/pkg/common"
	"github.com/eth-easl/complexitygraph/pkg/fit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quadraticMatrix(t *testing.T, sizes []int) *common.TimingMatrix {
	rows := make([][]float64, len(sizes))
	for i, n := range sizes {
		base := float64(n * n)
		rows[i] = []float64{base * 0.95, base, base * 1.05, base * 1.02}
	}

	m, err := common.NewTimingMatrixFromRows(sizes, rows)
	require.NoError(t, err)
	require.NoError(t, m.Normalize())

	return m
}

func TestPlotComplexity(t *testing.T) {
	// Deliberately unsorted and unevenly spaced.
	sizes := []int{100, 1, 180, 50, 150}
	m := quadraticMatrix(t, sizes)

	res, err := fit.Fit(sizes, m)
	require.NoError(t, err)

	p, err := PlotComplexity(res, m, true)
	require.NoError(t, err)

	assert.Equal(t, "Linear scale complexity", p.Title.Text)
	assert.Equal(t, 0.0, p.Y.Min)

	lowMax := 0.0
	for _, v := range m.Percentiles(0.25) {
		if v > lowMax {
			lowMax = v
		}
	}
	assert.InDelta(t, lowMax*1.1, p.Y.Max, 1e-9)

	lines, names := referenceLines(res)
	// factorial overflows at n=180 and is not drawn
	assert.Len(t, lines, len(res.Fits)-1)
	assert.NotContains(t, names, common.CurveFactorial)

	for i, line := range lines {
		assert.Len(t, line.XYs, len(sizes))
		for k := 1; k < len(line.XYs); k++ {
			assert.Less(t, line.XYs[k-1].X, line.XYs[k].X, names[i])
		}
	}

	_, err = PlotComplexity(res, m, false)
	require.NoError(t, err)
}

func TestSaveComplexity(t *testing.T) {
	sizes := []int{1, 20, 40, 60}
	m := quadraticMatrix(t, sizes)

	res, err := fit.Fit(sizes, m)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "complexity.png")
	require.NoError(t, SaveComplexity(path, res, m, true))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotComplexityMismatch(t *testing.T) {
	m := quadraticMatrix(t, []int{1, 2, 3})
	res := &fit.Result{Sizes: []int{1, 2}}

	_, err := PlotComplexity(res, m, true)
	assert.ErrorIs(t, err, common.ErrSizeMismatch)
}
