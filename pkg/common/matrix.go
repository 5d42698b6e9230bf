package common

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// TimingMatrix holds one row per input size and one column per repetition.
// Row i always corresponds to Sizes[i].
type TimingMatrix struct {
	Sizes []int
	Times *mat.Dense
}

func NewTimingMatrix(sizes []int, repetitions int) *TimingMatrix {
	s := make([]int, len(sizes))
	copy(s, sizes)

	return &TimingMatrix{
		Sizes: s,
		Times: mat.NewDense(len(sizes), repetitions, nil),
	}
}

// NewTimingMatrixFromRows builds a matrix from per-size rows of equal length.
func NewTimingMatrixFromRows(sizes []int, rows [][]float64) (*TimingMatrix, error) {
	if len(sizes) == 0 {
		return nil, ErrEmptyInputSizes
	}
	if len(sizes) != len(rows) {
		return nil, fmt.Errorf("%w: %d sizes, %d rows", ErrSizeMismatch, len(sizes), len(rows))
	}

	repetitions := len(rows[0])
	if repetitions == 0 {
		return nil, fmt.Errorf("%w: row 0 is empty", ErrSizeMismatch)
	}

	data := make([]float64, 0, len(rows)*repetitions)
	for i, row := range rows {
		if len(row) != repetitions {
			return nil, fmt.Errorf("%w: row %d has %d repetitions, expected %d", ErrSizeMismatch, i, len(row), repetitions)
		}
		data = append(data, row...)
	}

	m := NewTimingMatrix(sizes, repetitions)
	m.Times = mat.NewDense(len(rows), repetitions, data)

	return m, nil
}

func (m *TimingMatrix) Rows() int {
	r, _ := m.Times.Dims()
	return r
}

func (m *TimingMatrix) Repetitions() int {
	_, c := m.Times.Dims()
	return c
}

func (m *TimingMatrix) At(i, rep int) float64 {
	return m.Times.At(i, rep)
}

func (m *TimingMatrix) Set(i, rep int, value float64) {
	m.Times.Set(i, rep, value)
}

// Row returns a copy of the measurements taken for Sizes[i].
func (m *TimingMatrix) Row(i int) []float64 {
	return mat.Row(nil, i, m.Times)
}

func (m *TimingMatrix) RowMedians() []float64 {
	medians := make([]float64, m.Rows())
	for i := range medians {
		medians[i] = Median(m.Row(i))
	}

	return medians
}

// Percentiles returns the p-quantile of every row.
func (m *TimingMatrix) Percentiles(p float64) []float64 {
	result := make([]float64, m.Rows())
	for i := range result {
		result[i] = Percentile(m.Row(i), p)
	}

	return result
}

// Normalize divides every entry by the median of row 0 so that the
// reference size has a median time of exactly 1.
func (m *TimingMatrix) Normalize() error {
	reference := Median(m.Row(0))
	if !(reference > 0) || !IsFinite(reference) {
		return fmt.Errorf("%w: median(row 0) = %g", ErrNonPositiveReference, reference)
	}

	m.Times.Scale(1/reference, m.Times)

	return nil
}
