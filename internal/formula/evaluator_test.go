package formula

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestEvaluateBasicArithmetic(t *testing.T) {
	vars := map[string]float64{"width": 40, "height": 80}
	nearlyEqual(t, `width - 5`, Evaluate("width - 5", vars), 35)
	nearlyEqual(t, `width + height`, Evaluate("width + height", vars), 120)
	nearlyEqual(t, `width * 2 + 1`, Evaluate("width * 2 + 1", vars), 81)
	nearlyEqual(t, `(width + height) / 2`, Evaluate("(width + height) / 2", vars), 60)
	nearlyEqual(t, `width / 12`, Evaluate("width / 12", vars), 40.0/12.0)
}

func TestEvaluateBlankFormula(t *testing.T) {
	nearlyEqual(t, "empty", Evaluate("", nil), 0)
	nearlyEqual(t, "blank", Evaluate("   ", map[string]float64{}), 0)
}

func TestEvaluateCaseInsensitiveVariables(t *testing.T) {
	nearlyEqual(t, "WIDTH*2", Evaluate("WIDTH*2", map[string]float64{"width": 3}), 6)
	nearlyEqual(t, "Width-Height", Evaluate("Width-Height", map[string]float64{"WIDTH": 10, "height": 4}), 6)
}

func TestEvaluateWholeWordVariables(t *testing.T) {
	// widthx is its own identifier, not a partial match of width.
	if got := Evaluate("widthx + 1", map[string]float64{"width": 40}); got != 0 {
		t.Fatalf("widthx should be unknown, got %v", got)
	}
	nearlyEqual(t, "width2", Evaluate("width2 * 2", map[string]float64{"width2": 5, "width": 40}), 10)
}

func TestEvaluateNegativeClampsToZero(t *testing.T) {
	nearlyEqual(t, "5 - 10", Evaluate("5 - 10", nil), 0)
	nearlyEqual(t, "width - 50", Evaluate("width - 50", map[string]float64{"width": 40}), 0)
}

func TestEvaluateMalformedYieldsZero(t *testing.T) {
	cases := []string{
		"width +",
		"(width + 2",
		"2 ** 3",
		"import os",
		"__import__('os')",
		"width; height",
		"1 / 0",
		"foo + 1",
	}
	for _, c := range cases {
		if got := Evaluate(c, map[string]float64{"width": 40, "height": 80}); got != 0 {
			t.Fatalf("Evaluate(%q) = %v, want 0", c, got)
		}
	}
}

func TestEvaluateErrReportsProblem(t *testing.T) {
	if _, err := EvaluateErr("width +", map[string]float64{"width": 1}); err == nil {
		t.Fatalf("expected error for trailing operator")
	}
	if _, err := EvaluateErr("", nil); err != nil {
		t.Fatalf("blank formula should not error, got %v", err)
	}
	if _, err := EvaluateErr("1/0", nil); err == nil {
		t.Fatalf("expected division by zero error")
	}
}

func TestEvaluateUnaryMinus(t *testing.T) {
	nearlyEqual(t, "-2 + 5", Evaluate("-2 + 5", nil), 3)
	nearlyEqual(t, "-(2 - 5)", Evaluate("-(2 - 5)", nil), 3)
}
