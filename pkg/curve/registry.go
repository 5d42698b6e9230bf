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

package curve

import (
	"fmt"
	"math"

	"github.com/eth-easl/complexitygraph/pkg/common"
)

// Curve is a named growth function mapping an input size to a magnitude.
type Curve struct {
	Name string
	Fn   func(n float64) float64
}

// Evaluate applies the curve element-wise over sizes.
func (c Curve) Evaluate(sizes []int) []float64 {
	values := make([]float64, len(sizes))
	for i, n := range sizes {
		values[i] = c.Fn(float64(n))
	}

	return values
}

// Registry is an immutable, ordered set of candidate curves. The order
// breaks ties between equally scored candidates.
type Registry struct {
	curves []Curve
	index  map[string]int
}

func NewRegistry(curves ...Curve) (*Registry, error) {
	r := &Registry{
		curves: make([]Curve, 0, len(curves)),
		index:  make(map[string]int, len(curves)),
	}

	for _, c := range curves {
		if c.Name == "" || c.Fn == nil {
			return nil, fmt.Errorf("curve %q: name and function are required", c.Name)
		}
		if _, ok := r.index[c.Name]; ok {
			return nil, fmt.Errorf("curve %q registered twice", c.Name)
		}

		r.index[c.Name] = len(r.curves)
		r.curves = append(r.curves, c)
	}

	if len(r.curves) == 0 {
		return nil, fmt.Errorf("registry needs at least one curve")
	}

	return r, nil
}

// Default returns the fixed candidate set: constant, linear, quadratic,
// cubic, log, nlogn, exp and factorial (via the gamma function).
func Default() *Registry {
	r, err := NewRegistry(
		Curve{Name: common.CurveConstant, Fn: func(n float64) float64 { return 1 }},
		Curve{Name: common.CurveLinear, Fn: func(n float64) float64 { return n }},
		Curve{Name: common.CurveQuadratic, Fn: func(n float64) float64 { return n * n }},
		Curve{Name: common.CurveCubic, Fn: func(n float64) float64 { return n * n * n }},
		Curve{Name: common.CurveLog, Fn: math.Log},
		Curve{Name: common.CurveNLogN, Fn: func(n float64) float64 { return n * math.Log(n) }},
		Curve{Name: common.CurveExp, Fn: func(n float64) float64 { return math.Exp2(n) }},
		// Overflows to +Inf above n ~ 171.
		Curve{Name: common.CurveFactorial, Fn: math.Gamma},
	)
	if err != nil {
		panic(err)
	}

	return r
}

// Curves returns a copy of the registered curves in registration order.
func (r *Registry) Curves() []Curve {
	out := make([]Curve, len(r.curves))
	copy(out, r.curves)

	return out
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.curves))
	for i, c := range r.curves {
		names[i] = c.Name
	}

	return names
}

func (r *Registry) Len() int {
	return len(r.curves)
}

func (r *Registry) Lookup(name string) (Curve, bool) {
	i, ok := r.index[name]
	if !ok {
		return Curve{}, false
	}

	return r.curves[i], true
}
