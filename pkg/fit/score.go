package fit

import "gonum.org/v1/gonum/floats"

type Score struct {
	Name   string
	Weight float64
}

// ScoreDistribution is ordered by rank, highest weight first.
type ScoreDistribution []Score

func (d ScoreDistribution) Top() Score {
	if len(d) == 0 {
		return Score{}
	}

	return d[0]
}

func (d ScoreDistribution) Weight(name string) (float64, bool) {
	for _, s := range d {
		if s.Name == name {
			return s.Weight, true
		}
	}

	return 0, false
}

func (d ScoreDistribution) Names() []string {
	names := make([]string, len(d))
	for i, s := range d {
		names[i] = s.Name
	}

	return names
}

func (d ScoreDistribution) Sum() float64 {
	weights := make([]float64, len(d))
	for i, s := range d {
		weights[i] = s.Weight
	}

	return floats.Sum(weights)
}
