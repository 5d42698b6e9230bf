/*
 * MIT License
 *
 * Copyright (c) 2023 EASL and the vHive community
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package fit

import (
	"fmt"
	"math"
	"sort"

	"github.com/eth-easl/complexitygraph/pkg/common"
	"github.com/eth-easl/complexitygraph/pkg/curve"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// FitResult is the outcome of fitting one candidate curve.
type FitResult struct {
	Name        string
	Curve       curve.Curve
	Coefficient float64
	// Residual is the fit error E. It can be +Inf for objectives that
	// overflow; LogResidual = ln(E) stays finite and drives the score.
	Residual    float64
	LogResidual float64
	Score       float64
	// Err is set when the candidate could not be fitted. Its score is zero.
	Err error
}

// Predict evaluates the fitted curve, coefficient included, at sizes.
func (r FitResult) Predict(sizes []int) []float64 {
	values := r.Curve.Evaluate(sizes)
	floats.Scale(r.Coefficient, values)

	return values
}

// Result holds one entry per candidate, in registry order.
type Result struct {
	Sizes       []int
	MedianTimes []float64
	Objective   string
	Fits        []FitResult
}

func (r *Result) Names() []string {
	names := make([]string, len(r.Fits))
	for i, f := range r.Fits {
		names[i] = f.Name
	}

	return names
}

func (r *Result) Coefficients() []float64 {
	coefficients := make([]float64, len(r.Fits))
	for i, f := range r.Fits {
		coefficients[i] = f.Coefficient
	}

	return coefficients
}

// Scores returns the candidates ordered by descending weight. Ties keep
// registry order.
func (r *Result) Scores() ScoreDistribution {
	dist := make(ScoreDistribution, len(r.Fits))
	for i, f := range r.Fits {
		dist[i] = Score{Name: f.Name, Weight: f.Score}
	}

	sort.SliceStable(dist, func(i, j int) bool {
		return dist[i].Weight > dist[j].Weight
	})

	return dist
}

type Fitter struct {
	registry  *curve.Registry
	objective Objective
	low, high float64
}

type Option func(*Fitter)

func WithRegistry(r *curve.Registry) Option {
	return func(f *Fitter) {
		f.registry = r
	}
}

func WithObjective(o Objective) Option {
	return func(f *Fitter) {
		f.objective = o
	}
}

// WithBracket sets the coefficient range probed before refinement.
func WithBracket(low, high float64) Option {
	return func(f *Fitter) {
		if low > 0 && high > low {
			f.low, f.high = low, high
		}
	}
}

func NewFitter(opts ...Option) *Fitter {
	f := &Fitter{
		registry:  curve.Default(),
		objective: SquaredResidual,
		low:       common.BracketLow,
		high:      common.BracketHigh,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fit fits every candidate curve to the per-size median of m. Fitting is
// deterministic: the same input always gives the same result.
func (f *Fitter) Fit(sizes []int, m *common.TimingMatrix) (*Result, error) {
	if err := common.ValidateInputSizes(sizes); err != nil {
		return nil, err
	}
	if m == nil || m.Rows() != len(sizes) {
		return nil, fmt.Errorf("%w: %d sizes", common.ErrSizeMismatch, len(sizes))
	}
	if m.Sizes != nil {
		if len(m.Sizes) != len(sizes) {
			return nil, fmt.Errorf("%w: matrix carries %d sizes for %d rows", common.ErrSizeMismatch, len(m.Sizes), len(sizes))
		}
		for i := range sizes {
			if m.Sizes[i] != sizes[i] {
				return nil, fmt.Errorf("%w: row %d was measured at n=%d, not n=%d", common.ErrSizeMismatch, i, m.Sizes[i], sizes[i])
			}
		}
	}
	if common.DistinctSizes(sizes) < 2 {
		log.Warn("Fewer than two distinct input sizes; candidate fits are underdetermined and scores are not reliable.")
	}

	medians := m.RowMedians()

	fits := make([]FitResult, 0, f.registry.Len())
	for _, c := range f.registry.Curves() {
		fits = append(fits, f.fitCurve(c, sizes, medians))
	}

	if err := assignScores(fits); err != nil {
		return nil, err
	}

	s := make([]int, len(sizes))
	copy(s, sizes)

	return &Result{
		Sizes:       s,
		MedianTimes: medians,
		Objective:   f.objective.Name(),
		Fits:        fits,
	}, nil
}

// ScoreOnly fits and returns only the ranked score distribution.
func (f *Fitter) ScoreOnly(sizes []int, m *common.TimingMatrix) (ScoreDistribution, error) {
	res, err := f.Fit(sizes, m)
	if err != nil {
		return nil, err
	}

	return res.Scores(), nil
}

func (f *Fitter) fitCurve(c curve.Curve, sizes []int, medians []float64) FitResult {
	result := FitResult{
		Name:        c.Name,
		Curve:       c,
		Coefficient: math.NaN(),
		Residual:    math.Inf(1),
		LogResidual: math.Inf(1),
	}

	values := c.Evaluate(sizes)
	for i, v := range values {
		if !common.IsFinite(v) {
			result.Err = fmt.Errorf("%w: %s(%d) = %g", common.ErrDegenerateFit, c.Name, sizes[i], v)
			log.Warnf("Candidate %s excluded: %v", c.Name, result.Err)
			return result
		}
	}

	predicted := make([]float64, len(values))
	residual := func(x float64) float64 {
		for i, v := range values {
			predicted[i] = x * v
		}
		e := f.objective.LogError(predicted, medians)
		if math.IsNaN(e) {
			return math.Inf(1)
		}
		return e
	}

	// e is ln(E); -Inf is an exact fit.
	x, e := f.seed(values, medians, residual)
	if math.IsNaN(x) || math.IsInf(e, 1) {
		result.Err = fmt.Errorf("%w: %s has no finite residual in [%g, %g]", common.ErrDegenerateFit, c.Name, f.low, f.high)
		log.Warnf("Candidate %s excluded: %v", c.Name, result.Err)
		return result
	}

	// Refine over ln(x) to keep the coefficient positive while letting the
	// search leave the bracket.
	problem := optimize.Problem{
		Func: func(theta []float64) float64 {
			return residual(math.Exp(theta[0]))
		},
	}
	settings := &optimize.Settings{
		MajorIterations: 1000,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-14,
			Relative:   1e-12,
			Iterations: 25,
		},
	}

	if !math.IsInf(e, -1) {
		refined, err := optimize.Minimize(problem, []float64{math.Log(x)}, settings, &optimize.NelderMead{})
		if err != nil {
			log.Debugf("Refinement of %s stopped early: %v", c.Name, err)
		}
		if refined != nil && !math.IsNaN(refined.F) && !math.IsInf(refined.F, 1) && refined.F < e {
			x, e = math.Exp(refined.X[0]), refined.F
		}
	}

	result.Coefficient = x
	result.LogResidual = e
	result.Residual = math.Exp(e)
	log.Debugf("Candidate %s: coefficient=%g ln(residual)=%g", c.Name, x, e)

	return result
}

// seed picks the best starting coefficient among a log-spaced grid over the
// bracket and the closed-form least-squares coefficient.
func (f *Fitter) seed(values, medians []float64, residual func(float64) float64) (float64, float64) {
	candidates := make([]float64, common.BracketGridPoints)
	floats.LogSpan(candidates, f.low, f.high)

	if ls := floats.Dot(values, medians) / floats.Dot(values, values); ls > 0 && common.IsFinite(ls) {
		candidates = append(candidates, ls)
	}

	bestX, bestE := math.NaN(), math.Inf(1)
	for _, x := range candidates {
		if e := residual(x); e < bestE {
			bestX, bestE = x, e
		}
	}

	return bestX, bestE
}

// assignScores turns residuals into weights proportional to 1/sqrt(E),
// normalised to sum to one. Weights are computed from ln(E) through
// log-sum-exp so that huge residuals do not underflow every weight to zero.
// Perfect fits (E == 0) share the whole mass.
func assignScores(fits []FitResult) error {
	perfect := 0
	for _, fr := range fits {
		if fr.Err == nil && math.IsInf(fr.LogResidual, -1) {
			perfect++
		}
	}

	logConfidences := make([]float64, len(fits))
	for i, fr := range fits {
		switch {
		case fr.Err != nil:
			logConfidences[i] = math.Inf(-1)
		case perfect > 0:
			logConfidences[i] = math.Inf(-1)
			if math.IsInf(fr.LogResidual, -1) {
				logConfidences[i] = 0
			}
		default:
			logConfidences[i] = -fr.LogResidual / 2
		}
	}

	norm := floats.LogSumExp(logConfidences)
	if !common.IsFinite(norm) {
		return common.ErrNoUsableFit
	}

	for i := range fits {
		fits[i].Score = math.Exp(logConfidences[i] - norm)
	}

	return nil
}

// Fit runs the default fitter: the fixed candidate set with the squared
// residual objective.
func Fit(sizes []int, m *common.TimingMatrix) (*Result, error) {
	return NewFitter().Fit(sizes, m)
}

func ScoreOnly(sizes []int, m *common.TimingMatrix) (ScoreDistribution, error) {
	return NewFitter().ScoreOnly(sizes, m)
}
