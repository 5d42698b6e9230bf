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

package common

import "time"

// Candidate curve names. Scores, reports and plots key off these strings.
const (
	CurveConstant  = "constant"
	CurveLinear    = "linear"
	CurveQuadratic = "quadratic"
	CurveCubic     = "cubic"
	CurveLog       = "log"
	CurveNLogN     = "nlogn"
	CurveExp       = "exp"
	CurveFactorial = "factorial"
)

const (
	// DefaultRepetitions number of independent passes over the input sizes
	DefaultRepetitions = 20
	// DefaultNumber number of back-to-back target invocations per timed interval
	DefaultNumber = 1000

	// DefaultSamplePause pause after every timed interval. Removing it makes
	// successive samples correlate and the fits noticeably worse.
	DefaultSamplePause = 500 * time.Microsecond
	// DefaultRepetitionPause pause after every completed repetition
	DefaultRepetitionPause = 10 * time.Millisecond

	// NoCPUPinning disables pinning the measuring thread to a CPU
	NoCPUPinning = -1
)

const (
	// BracketLow and BracketHigh delimit the range of coefficients probed
	// before the refinement step. Curves differ in magnitude by many orders
	// across the candidate set so the range has to be wide.
	BracketLow  = 1e-5
	BracketHigh = 1e5

	// BracketGridPoints number of log-spaced probes inside the bracket
	BracketGridPoints = 41
)

const (
	ObjectiveSquared    = "squared"
	ObjectiveExpSquared = "exp-squared"
)

var ValidObjectives = []string{ObjectiveSquared, ObjectiveExpSquared}

// ProgressMarker is written once per completed repetition.
const ProgressMarker = "."
