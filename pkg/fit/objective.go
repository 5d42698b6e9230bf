package fit

import (
	"fmt"
	"math"

	"github.com/eth-easl/complexitygraph/pkg/common"
	"gonum.org/v1/gonum/floats"
)

// Objective measures how far a scaled candidate curve is from the observed
// median times. It reports ln(E), where E is the fit error summed over all
// input sizes, so that objectives whose E overflows float64 stay comparable.
// An exact fit may report -Inf.
type Objective interface {
	Name() string
	LogError(predicted, observed []float64) float64
}

type squaredResidual struct{}

func (squaredResidual) Name() string { return common.ObjectiveSquared }

func (squaredResidual) LogError(predicted, observed []float64) float64 {
	sum := 0.0
	for i, p := range predicted {
		d := p - observed[i]
		sum += d * d
	}

	return math.Log(sum)
}

// expSquaredResidual sums exp(d^2). It penalises large deviations
// super-exponentially and changes relative scores materially.
type expSquaredResidual struct{}

func (expSquaredResidual) Name() string { return common.ObjectiveExpSquared }

func (expSquaredResidual) LogError(predicted, observed []float64) float64 {
	terms := make([]float64, len(predicted))
	for i, p := range predicted {
		d := p - observed[i]
		terms[i] = d * d
	}

	return floats.LogSumExp(terms)
}

var (
	SquaredResidual    Objective = squaredResidual{}
	ExpSquaredResidual Objective = expSquaredResidual{}
)

func ObjectiveByName(name string) (Objective, error) {
	switch name {
	case "", common.ObjectiveSquared:
		return SquaredResidual, nil
	case common.ObjectiveExpSquared:
		return ExpSquaredResidual, nil
	default:
		return nil, fmt.Errorf("%w: unknown objective %q", common.ErrInvalidConfiguration, name)
	}
}
