package config

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/eth-easl/complexitygraph/pkg/common"
	"github.com/eth-easl/complexitygraph/pkg/measure"
)

func DefaultConfiguration() ComplexityConfiguration {
	return ComplexityConfiguration{
		Seed:                        42,
		Workload:                    "quadratic",
		SizeRange:                   SizeRange{Start: 1, Stop: 500, Step: 20},
		Repetitions:                 common.DefaultRepetitions,
		Number:                      common.DefaultNumber,
		Shuffle:                     true,
		SamplePauseMicroseconds:     int(common.DefaultSamplePause / time.Microsecond),
		RepetitionPauseMilliseconds: int(common.DefaultRepetitionPause / time.Millisecond),
		Objective:                   common.ObjectiveSquared,
		PinCPU:                      common.NoCPUPinning,
		OutputPathPrefix:            "data/out/complexity",
	}
}

// Sizes returns InputSizes when given, SizeRange otherwise.
func (c *ComplexityConfiguration) Sizes() []int {
	if len(c.InputSizes) > 0 {
		return c.InputSizes
	}

	return common.SizeRange(c.SizeRange.Start, c.SizeRange.Stop, c.SizeRange.Step)
}

func (c *ComplexityConfiguration) Validate() error {
	if c.Repetitions < 1 {
		return fmt.Errorf("%w: Repetitions must be at least 1, got %d", common.ErrInvalidConfiguration, c.Repetitions)
	}
	if c.Number < 1 {
		return fmt.Errorf("%w: Number must be at least 1, got %d", common.ErrInvalidConfiguration, c.Number)
	}
	if !c.DisablePauses && (c.SamplePauseMicroseconds <= 0 || c.RepetitionPauseMilliseconds <= 0) {
		return fmt.Errorf("%w: pauses must be positive, set DisablePauses to turn them off", common.ErrInvalidConfiguration)
	}
	if !common.IsValidObjective(c.Objective) {
		return fmt.Errorf("%w: unknown Objective %q", common.ErrInvalidConfiguration, c.Objective)
	}
	if len(c.InputSizes) == 0 && c.SizeRange.Step <= 0 {
		return fmt.Errorf("%w: SizeRange.Step must be positive", common.ErrInvalidConfiguration)
	}
	if err := common.ValidateInputSizes(c.Sizes()); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfiguration, err)
	}

	return nil
}

// CollectorConfiguration maps the file settings onto the timing collector.
func (c *ComplexityConfiguration) CollectorConfiguration() *measure.CollectorConfiguration {
	return &measure.CollectorConfiguration{
		Repetitions:     c.Repetitions,
		Number:          c.Number,
		Shuffle:         c.Shuffle,
		SamplePause:     time.Duration(c.SamplePauseMicroseconds) * time.Microsecond,
		RepetitionPause: time.Duration(c.RepetitionPauseMilliseconds) * time.Millisecond,
		DisablePauses:   c.DisablePauses,
		Rand:            rand.New(rand.NewSource(c.Seed)),
		PinToCPU:        c.PinCPU >= 0,
		CPU:             c.PinCPU,
	}
}
