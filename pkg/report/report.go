package report

import (
	"fmt"
	"io"

	"github.com/eth-easl/complexitygraph/pkg/fit"
)

const nameWidth = 12

// WriteScores prints a short table of the ranked candidates, one per line,
// with the weight as a percentage.
func WriteScores(w io.Writer, fnName string, dist fit.ScoreDistribution) error {
	if _, err := fmt.Fprintf(w, "\nScores for %s\n", fnName); err != nil {
		return err
	}

	for _, s := range dist {
		if _, err := fmt.Fprintf(w, "  %-*s %4.1f%%\n", nameWidth, s.Name, s.Weight*100.0); err != nil {
			return err
		}
	}

	return nil
}
