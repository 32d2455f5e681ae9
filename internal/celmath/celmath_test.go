// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package celmath

import (
	"math"
	"testing"

	"github.com/google/cel-go/cel"
)

var libTests = []struct {
	expr string
	x    float64
	want float64
}{
	{expr: "sin(0.0)", want: 0},
	{expr: "cos(0.0)", want: 1},
	{expr: "tan(0.0)", want: 0},
	{expr: "exp(0.0)", want: 1},
	{expr: "log(1.0)", want: 0},
	{expr: "sqrt(4.0)", want: 2},
	{expr: "abs(-1.5)", want: 1.5},
	{expr: "pow(2.0, 10.0)", want: 1024},
	{expr: "pi()", want: math.Pi},
	{expr: "sin(pi() / 2.0)", want: 1},
	{expr: "sin(x)", x: math.Pi / 6, want: 0.5},
	{expr: "exp(-x) * cos(x)", x: 0, want: 1},
	{expr: "pow(abs(x), 0.5)", x: 4, want: 2},
}

func TestLib(t *testing.T) {
	env, err := cel.NewEnv(cel.Variable("x", cel.DoubleType), Lib())
	if err != nil {
		t.Fatalf("unexpected error creating env: %v", err)
	}
	for _, test := range libTests {
		ast, iss := env.Compile(test.expr)
		if iss.Err() != nil {
			t.Errorf("unexpected error compiling %q: %v", test.expr, iss.Err())
			continue
		}
		prg, err := env.Program(ast)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", test.expr, err)
			continue
		}
		out, _, err := prg.Eval(map[string]any{"x": test.x})
		if err != nil {
			t.Errorf("unexpected error evaluating %q: %v", test.expr, err)
			continue
		}
		got, ok := out.Value().(float64)
		if !ok {
			t.Errorf("unexpected result type for %q: %T", test.expr, out.Value())
			continue
		}
		if math.Abs(got-test.want) > 1e-12 {
			t.Errorf("unexpected result for %q: got %v, want %v", test.expr, got, test.want)
		}
	}
}

func TestLibTypeError(t *testing.T) {
	env, err := cel.NewEnv(Lib())
	if err != nil {
		t.Fatalf("unexpected error creating env: %v", err)
	}
	_, iss := env.Compile(`sin("not a double")`)
	if iss.Err() == nil {
		t.Error("expected compile error for string argument")
	}
}
