package measure

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/eth-easl/complexitygraph/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// proportionalTimer pretends every call of target(n) takes n milliseconds and
// records the sizes in presentation order.
func proportionalTimer(presented *[]int) Timer {
	return func(target Target, n int, number int) (time.Duration, error) {
		*presented = append(*presented, n)
		return time.Duration(n*number) * time.Millisecond, nil
	}
}

func noop(int) error { return nil }

func TestMeasureRowsFollowInputOrder(t *testing.T) {
	sizes := []int{40, 10, 30, 20, 50}

	tests := []struct {
		testName string
		shuffle  bool
	}{
		{testName: "ordered", shuffle: false},
		{testName: "shuffled", shuffle: true},
	}

	for _, test := range tests {
		t.Run(test.testName, func(t *testing.T) {
			var presented []int
			collector := NewCollector(&CollectorConfiguration{
				Repetitions:   6,
				Number:        3,
				Shuffle:       test.shuffle,
				Rand:          rand.New(rand.NewSource(42)),
				Timer:         proportionalTimer(&presented),
				DisablePauses: true,
			})

			matrix, err := collector.Measure(noop, sizes)
			require.NoError(t, err)
			require.Equal(t, len(sizes), matrix.Rows())
			require.Equal(t, 6, matrix.Repetitions())
			require.Equal(t, sizes, matrix.Sizes)

			for i, n := range sizes {
				for rep := 0; rep < matrix.Repetitions(); rep++ {
					assert.InDelta(t, float64(n)/float64(sizes[0]), matrix.At(i, rep), 1e-12)
				}
			}
			assert.InDelta(t, 1.0, common.Median(matrix.Row(0)), 1e-12)
			assert.Len(t, presented, len(sizes)*6)
		})
	}
}

func TestMeasureShufflePermutesEveryRepetition(t *testing.T) {
	sizes := common.SizeRange(1, 11, 1)
	reps := 20

	run := func(seed int64) []int {
		var presented []int
		collector := NewCollector(&CollectorConfiguration{
			Repetitions:   reps,
			Number:        1,
			Shuffle:       true,
			Rand:          rand.New(rand.NewSource(seed)),
			Timer:         proportionalTimer(&presented),
			DisablePauses: true,
		})
		_, err := collector.Measure(noop, sizes)
		require.NoError(t, err)
		return presented
	}

	first := run(7)
	assert.Equal(t, first, run(7), "same seed must give the same presentation order")

	reordered := false
	for rep := 0; rep < reps; rep++ {
		chunk := first[rep*len(sizes) : (rep+1)*len(sizes)]
		assert.ElementsMatch(t, sizes, chunk, "every size is presented exactly once per repetition")
		if !assert.ObjectsAreEqual(sizes, chunk) {
			reordered = true
		}
	}
	assert.True(t, reordered)
}

func TestMeasureWithoutShuffleKeepsOrder(t *testing.T) {
	sizes := []int{5, 3, 9}

	var presented []int
	collector := NewCollector(&CollectorConfiguration{
		Repetitions:   3,
		Number:        1,
		Timer:         proportionalTimer(&presented),
		DisablePauses: true,
	})

	_, err := collector.Measure(noop, sizes)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3, 9, 5, 3, 9, 5, 3, 9}, presented)
}

func TestMeasurePausesAndProgress(t *testing.T) {
	var pauses []time.Duration
	var progress bytes.Buffer
	var presented []int

	collector := NewCollector(&CollectorConfiguration{
		Repetitions: 4,
		Number:      1,
		Shuffle:     true,
		Rand:        rand.New(rand.NewSource(1)),
		Timer:       proportionalTimer(&presented),
		Sleep:       func(d time.Duration) { pauses = append(pauses, d) },
		Progress:    &progress,
	})

	_, err := collector.Measure(noop, []int{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, "....", progress.String())
	require.Len(t, pauses, 4*3+4)

	samplePauses, repetitionPauses := 0, 0
	for _, d := range pauses {
		switch d {
		case common.DefaultSamplePause:
			samplePauses++
		case common.DefaultRepetitionPause:
			repetitionPauses++
		}
	}
	assert.Equal(t, 12, samplePauses)
	assert.Equal(t, 4, repetitionPauses)
}

func TestMeasureSetupRunsBeforeEveryInterval(t *testing.T) {
	var calls []string
	collector := NewCollector(&CollectorConfiguration{
		Repetitions: 2,
		Number:      5,
		Setup: func(n int) error {
			calls = append(calls, "setup")
			return nil
		},
		Timer: func(target Target, n int, number int) (time.Duration, error) {
			calls = append(calls, "timed")
			return time.Millisecond, nil
		},
		DisablePauses: true,
	})

	_, err := collector.Measure(noop, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"setup", "timed", "setup", "timed", "setup", "timed", "setup", "timed"}, calls)
}

func TestMeasureErrors(t *testing.T) {
	targetErr := errors.New("boom")

	tests := []struct {
		testName string
		sizes    []int
		target   Target
		timer    Timer
		expected error
	}{
		{
			testName: "empty_sizes",
			sizes:    []int{},
			target:   noop,
			expected: common.ErrEmptyInputSizes,
		},
		{
			testName: "zero_size",
			sizes:    []int{0, 10},
			target:   noop,
			expected: common.ErrNonPositiveInputSize,
		},
		{
			testName: "negative_size",
			sizes:    []int{10, -1},
			target:   noop,
			expected: common.ErrNonPositiveInputSize,
		},
		{
			testName: "target_error",
			sizes:    []int{1, 2},
			target: func(n int) error {
				if n == 2 {
					return targetErr
				}
				return nil
			},
			expected: targetErr,
		},
		{
			testName: "coarse_timer",
			sizes:    []int{1, 2},
			target:   noop,
			timer: func(Target, int, int) (time.Duration, error) {
				return 0, nil
			},
			expected: common.ErrNonPositiveReference,
		},
	}

	for _, test := range tests {
		t.Run(test.testName, func(t *testing.T) {
			collector := NewCollector(&CollectorConfiguration{
				Repetitions:   2,
				Number:        1,
				Timer:         test.timer,
				DisablePauses: true,
			})

			_, err := collector.Measure(test.target, test.sizes)
			assert.ErrorIs(t, err, test.expected)
		})
	}
}

func TestMeasurePanicsPropagate(t *testing.T) {
	collector := NewCollector(&CollectorConfiguration{Repetitions: 1, Number: 1, DisablePauses: true})

	assert.Panics(t, func() {
		_, _ = collector.Measure(func(int) error { panic("target failure") }, []int{1})
	})
}

func TestWallClockTimerSingleSize(t *testing.T) {
	calls := 0
	collector := NewCollector(&CollectorConfiguration{
		Repetitions:   1,
		Number:        10,
		Shuffle:       true,
		Rand:          rand.New(rand.NewSource(3)),
		DisablePauses: true,
	})

	matrix, err := collector.Measure(func(n int) error {
		calls++
		time.Sleep(10 * time.Microsecond)
		return nil
	}, []int{1})
	require.NoError(t, err)
	assert.Equal(t, 10, calls)
	assert.InDelta(t, 1.0, matrix.At(0, 0), 1e-12)
}
