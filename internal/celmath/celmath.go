// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package celmath provides CEL bindings for the floating point math
// vocabulary used by curve expressions.
package celmath

import (
	"math"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// Lib returns a cel.EnvOption to configure the math functions sin,
// cos, tan, exp, log, sqrt, abs, pow and the constant function pi.
// All functions operate on doubles.
//
// Examples:
//
//	sin(2.0 * pi() * x)      // sine over a unit period
//	exp(-x) * cos(10.0 * x)  // damped oscillation
//	pow(abs(x), 0.5)         // equivalent to sqrt(abs(x))
func Lib() cel.EnvOption {
	return cel.Lib(lib{})
}

type lib struct{}

func (lib) CompileOptions() []cel.EnvOption {
	opts := []cel.EnvOption{
		cel.Function("pow",
			cel.Overload(
				"pow_double_double",
				[]*cel.Type{cel.DoubleType, cel.DoubleType},
				cel.DoubleType,
				cel.BinaryBinding(binary(math.Pow)),
			),
		),
		cel.Function("pi",
			cel.Overload(
				"pi",
				nil,
				cel.DoubleType,
				cel.FunctionBinding(func(...ref.Val) ref.Val {
					return types.Double(math.Pi)
				}),
			),
		),
	}
	for name, fn := range map[string]func(float64) float64{
		"sin":  math.Sin,
		"cos":  math.Cos,
		"tan":  math.Tan,
		"exp":  math.Exp,
		"log":  math.Log,
		"sqrt": math.Sqrt,
		"abs":  math.Abs,
	} {
		opts = append(opts, cel.Function(name,
			cel.Overload(
				name+"_double",
				[]*cel.Type{cel.DoubleType},
				cel.DoubleType,
				cel.UnaryBinding(unary(fn)),
			),
		))
	}
	return opts
}

func (lib) ProgramOptions() []cel.ProgramOption {
	return nil
}

func unary(f func(float64) float64) func(ref.Val) ref.Val {
	return func(arg ref.Val) ref.Val {
		v, ok := arg.(types.Double)
		if !ok {
			return types.ValOrErr(arg, "no such overload")
		}
		return types.Double(f(float64(v)))
	}
}

func binary(f func(_, _ float64) float64) func(_, _ ref.Val) ref.Val {
	return func(arg0, arg1 ref.Val) ref.Val {
		v0, ok := arg0.(types.Double)
		if !ok {
			return types.ValOrErr(arg0, "no such overload")
		}
		v1, ok := arg1.(types.Double)
		if !ok {
			return types.ValOrErr(arg1, "no such overload")
		}
		return types.Double(f(float64(v0), float64(v1)))
	}
}
