package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/eth-easl/complexitygraph/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigParser(t *testing.T) {
	var pathToConfigFile = ""
	wd, _ := os.Getwd()

	if strings.HasSuffix(wd, "pkg/config") {
		pathToConfigFile = "../../"
	}
	pathToConfigFile += "cmd/config.json"

	config := ReadConfigurationFile(pathToConfigFile)

	if config.Seed != 42 ||
		config.Workload != "quadratic" ||
		config.SizeRange.Start != 1 ||
		config.SizeRange.Stop != 200 ||
		config.SizeRange.Step != 20 ||
		config.Repetitions != 12 ||
		config.Number != 6 ||
		config.Shuffle != true ||
		config.SamplePauseMicroseconds != 500 ||
		config.RepetitionPauseMilliseconds != 10 ||
		config.Objective != "squared" ||
		config.PinCPU != -1 ||
		config.OutputPathPrefix != "data/out/complexity" ||
		config.EnablePlot != true ||
		config.EnableExport != true ||
		config.EnableZipkinTracing != false {

		t.Error("Unexpected configuration read.")
	}

	require.NoError(t, config.Validate())
	assert.Equal(t, common.SizeRange(1, 200, 20), config.Sizes())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		testName string
		mutate   func(c *ComplexityConfiguration)
		valid    bool
	}{
		{testName: "defaults", mutate: func(c *ComplexityConfiguration) {}, valid: true},
		{testName: "explicit_sizes", mutate: func(c *ComplexityConfiguration) { c.InputSizes = []int{1, 5, 9} }, valid: true},
		{testName: "zero_repetitions", mutate: func(c *ComplexityConfiguration) { c.Repetitions = 0 }},
		{testName: "zero_number", mutate: func(c *ComplexityConfiguration) { c.Number = 0 }},
		{testName: "unknown_objective", mutate: func(c *ComplexityConfiguration) { c.Objective = "abs" }},
		{testName: "zero_size", mutate: func(c *ComplexityConfiguration) { c.InputSizes = []int{0, 10} }},
		{testName: "range_from_zero", mutate: func(c *ComplexityConfiguration) { c.SizeRange = SizeRange{Start: 0, Stop: 100, Step: 10} }},
		{testName: "empty_range", mutate: func(c *ComplexityConfiguration) { c.SizeRange = SizeRange{Start: 10, Stop: 10, Step: 1} }},
		{testName: "zero_step", mutate: func(c *ComplexityConfiguration) { c.SizeRange.Step = 0 }},
		{testName: "negative_pause", mutate: func(c *ComplexityConfiguration) { c.SamplePauseMicroseconds = -1 }},
		{testName: "zero_sample_pause", mutate: func(c *ComplexityConfiguration) { c.SamplePauseMicroseconds = 0 }},
		{testName: "zero_repetition_pause", mutate: func(c *ComplexityConfiguration) { c.RepetitionPauseMilliseconds = 0 }},
		{
			testName: "zero_pauses_when_disabled",
			mutate: func(c *ComplexityConfiguration) {
				c.DisablePauses = true
				c.SamplePauseMicroseconds = 0
				c.RepetitionPauseMilliseconds = 0
			},
			valid: true,
		},
	}

	for _, test := range tests {
		t.Run(test.testName, func(t *testing.T) {
			c := DefaultConfiguration()
			test.mutate(&c)

			err := c.Validate()
			if test.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
			}
		})
	}
}

func TestCollectorConfiguration(t *testing.T) {
	c := DefaultConfiguration()
	c.PinCPU = 2

	cc := c.CollectorConfiguration()
	assert.Equal(t, c.Repetitions, cc.Repetitions)
	assert.Equal(t, c.Number, cc.Number)
	assert.Equal(t, 500*time.Microsecond, cc.SamplePause)
	assert.Equal(t, 10*time.Millisecond, cc.RepetitionPause)
	assert.True(t, cc.PinToCPU)
	assert.Equal(t, 2, cc.CPU)

	// seeded source gives repeatable permutations
	assert.Equal(t, cc.Rand.Perm(10), c.CollectorConfiguration().Rand.Perm(10))
}
