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

package workload

import (
	"fmt"
	"sort"

	"github.com/eth-easl/complexitygraph/pkg/common"
	"github.com/eth-easl/complexitygraph/pkg/measure"
)

// Workload is a target function with a known growth rate, used to sanity
// check the fitter end to end.
type Workload struct {
	Name     string
	Expected string
	Target   measure.Target
}

// sink keeps the compiler from discarding the loops below.
var sink int

const busyLoopIterations = 1 << 10

var registry = map[string]Workload{
	"constant":  {Name: "constant", Expected: common.CurveConstant, Target: constantTime},
	"log":       {Name: "log", Expected: common.CurveLog, Target: logTime},
	"linear":    {Name: "linear", Expected: common.CurveLinear, Target: linearTime},
	"nlogn":     {Name: "nlogn", Expected: common.CurveNLogN, Target: nlognTime},
	"quadratic": {Name: "quadratic", Expected: common.CurveQuadratic, Target: quadraticTime},
	"cubic":     {Name: "cubic", Expected: common.CurveCubic, Target: cubicTime},
	"exp":       {Name: "exp", Expected: common.CurveExp, Target: expTime},
	"factorial": {Name: "factorial", Expected: common.CurveFactorial, Target: factorialTime},
	"pages":     {Name: "pages", Expected: common.CurveLinear, Target: touchPages},
	"busyloop":  {Name: "busyloop", Expected: common.CurveConstant, Target: busyLoop},
}

func Lookup(name string) (Workload, error) {
	w, ok := registry[name]
	if !ok {
		return Workload{}, fmt.Errorf("unknown workload %q (choose from %v)", name, Names())
	}

	return w, nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func constantTime(n int) error {
	s := 0
	for i := 0; i < 16; i++ {
		s += i
	}
	sink = s

	return nil
}

func logTime(n int) error {
	// binary search for the last element of [0, n)
	sink = sort.Search(n, func(i int) bool { return i >= n-1 })
	return nil
}

func linearTime(n int) error {
	xs := make([]int, 0, 1)
	for i := 0; i < n; i++ {
		xs = append(xs, i)
	}
	sink = len(xs)

	return nil
}

func nlognTime(n int) error {
	xs := make([]int, n)
	for i := range xs {
		// scrambled but deterministic input
		xs[i] = (i * 7919) % (n + 1)
	}
	sort.Ints(xs)
	sink = xs[0]

	return nil
}

func quadraticTime(n int) error {
	s := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s = s + 1
		}
	}
	sink = s

	return nil
}

func cubicTime(n int) error {
	s := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				s = s + 1
			}
		}
	}
	sink = s

	return nil
}

// expTime enumerates every subset of {0..n-1}.
func expTime(n int) error {
	var subsets func(i int) int
	subsets = func(i int) int {
		if i == n {
			return 1
		}
		return subsets(i+1) + subsets(i+1)
	}
	sink = subsets(0)

	return nil
}

// factorialTime visits every permutation of n elements (Heap's algorithm).
func factorialTime(n int) error {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = i
	}

	count := 0
	var permute func(k int)
	permute = func(k int) {
		if k <= 1 {
			count++
			return
		}
		for i := 0; i < k-1; i++ {
			permute(k - 1)
			if k%2 == 0 {
				xs[i], xs[k-1] = xs[k-1], xs[i]
			} else {
				xs[0], xs[k-1] = xs[k-1], xs[0]
			}
		}
		permute(k - 1)
	}
	permute(n)
	sink = count

	return nil
}

func busyLoop(n int) error {
	s := 0
	for i := 0; i < busyLoopIterations; i++ {
		s ^= i
	}
	sink = s

	return nil
}
