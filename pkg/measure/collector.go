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

package measure

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/eth-easl/complexitygraph/pkg/common"
	log "github.com/sirupsen/logrus"
)

// Target is the function under test. It receives the input size and must be
// safe to invoke repeatedly. A returned error aborts the measurement.
type Target func(n int) error

// Setup runs before every timed interval for size n and is not timed.
type Setup func(n int) error

// Timer measures number back-to-back invocations of target(n). The total is
// reported, not the per-invocation average.
type Timer func(target Target, n int, number int) (time.Duration, error)

type CollectorConfiguration struct {
	Repetitions int
	Number      int
	Shuffle     bool
	Setup       Setup

	// Zero pauses fall back to the defaults. Only DisablePauses turns them off.
	SamplePause     time.Duration
	RepetitionPause time.Duration
	DisablePauses   bool

	// Rand drives the per-repetition permutation. Seed it for repeatable orderings.
	Rand *rand.Rand
	// Progress receives one marker per completed repetition.
	Progress io.Writer

	Timer Timer
	Sleep func(time.Duration)

	PinToCPU bool
	CPU      int
}

type Collector struct {
	cfg CollectorConfiguration
}

func NewCollector(cfg *CollectorConfiguration) *Collector {
	c := CollectorConfiguration{}
	if cfg != nil {
		c = *cfg
	}

	if c.Repetitions <= 0 {
		c.Repetitions = common.DefaultRepetitions
	}
	if c.Number <= 0 {
		c.Number = common.DefaultNumber
	}
	if c.SamplePause == 0 {
		c.SamplePause = common.DefaultSamplePause
	}
	if c.RepetitionPause == 0 {
		c.RepetitionPause = common.DefaultRepetitionPause
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.Timer == nil {
		c.Timer = WallClockTimer
	}
	if c.Sleep == nil {
		c.Sleep = time.Sleep
	}

	return &Collector{cfg: c}
}

// WallClockTimer times number sequential calls of target(n) with the
// monotonic clock.
func WallClockTimer(target Target, n int, number int) (time.Duration, error) {
	start := time.Now()
	for i := 0; i < number; i++ {
		if err := target(n); err != nil {
			return 0, err
		}
	}

	return time.Since(start), nil
}

// Measure times target over every size in sizes, Repetitions times. The
// returned matrix has one row per size (row i is sizes[i] regardless of the
// presentation order) and one column per repetition, normalised so that the
// median of row 0 is 1.
func (c *Collector) Measure(target Target, sizes []int) (*common.TimingMatrix, error) {
	if target == nil {
		return nil, fmt.Errorf("target function is nil")
	}
	if err := common.ValidateInputSizes(sizes); err != nil {
		return nil, err
	}
	if common.DistinctSizes(sizes) < 2 {
		log.Warnf("Measuring %d distinct input size(s); curve scores will not be reliable.", common.DistinctSizes(sizes))
	}

	if c.cfg.PinToCPU {
		release, err := pinToCPU(c.cfg.CPU)
		if err != nil {
			return nil, fmt.Errorf("failed to pin measurement to CPU %d: %w", c.cfg.CPU, err)
		}
		defer release()
	}

	matrix := common.NewTimingMatrix(sizes, c.cfg.Repetitions)
	order := make([]int, len(sizes))

	for rep := 0; rep < c.cfg.Repetitions; rep++ {
		c.presentationOrder(order)

		for _, i := range order {
			n := sizes[i]

			if c.cfg.Setup != nil {
				if err := c.cfg.Setup(n); err != nil {
					return nil, fmt.Errorf("setup failed for n=%d: %w", n, err)
				}
			}

			elapsed, err := c.cfg.Timer(target, n, c.cfg.Number)
			if err != nil {
				return nil, fmt.Errorf("target failed for n=%d: %w", n, err)
			}

			// Written by original index, which restores the caller's ordering.
			matrix.Set(i, rep, elapsed.Seconds())
			log.Tracef("rep=%d n=%d elapsed=%v", rep, n, elapsed)

			c.pause(c.cfg.SamplePause)
		}

		c.reportProgress()
		c.pause(c.cfg.RepetitionPause)
	}

	if err := matrix.Normalize(); err != nil {
		return nil, err
	}

	return matrix, nil
}

func (c *Collector) presentationOrder(order []int) {
	if c.cfg.Shuffle {
		copy(order, c.cfg.Rand.Perm(len(order)))
		return
	}

	for i := range order {
		order[i] = i
	}
}

func (c *Collector) pause(d time.Duration) {
	if c.cfg.DisablePauses {
		return
	}

	c.cfg.Sleep(d)
}

func (c *Collector) reportProgress() {
	if c.cfg.Progress == nil {
		return
	}

	if _, err := io.WriteString(c.cfg.Progress, common.ProgressMarker); err != nil {
		log.Debugf("Failed to write progress marker: %v", err)
	}
}
