package style

import "math"

// EvalType selects how a Scalar's numeric value is interpreted, mirroring
// the evaluation types spec.md assigns to non-literal styling attributes.
type EvalType int

const (
	Literal EvalType = iota
	Percent
	ViewportWidth
	ViewportHeight
	ViewportMin
	ViewportMax
	Em
	Rem
	Ch
	Ex
	Fraction
	Physical
)

// Scalar is a numeric styling value tagged with its evaluation type. Only
// Literal values are immediately usable; everything else needs Resolve
// against a reference dimension and the viewport before layout can consume
// it (spec §4.1 "dynamic evaluation").
type Scalar struct {
	Eval        EvalType
	Value       float64
	Denominator float64 // only meaningful for Fraction
}

// Px builds a literal pixel/cell scalar.
func Px(n int) Scalar { return Scalar{Eval: Literal, Value: float64(n)} }

// Pct builds a percentage-of-parent scalar, p in [0,100].
func Pct(p float64) Scalar { return Scalar{Eval: Percent, Value: p} }

// Vw builds a viewport-width-relative scalar, p in [0,100].
func Vw(p float64) Scalar { return Scalar{Eval: ViewportWidth, Value: p} }

// Vh builds a viewport-height-relative scalar, p in [0,100].
func Vh(p float64) Scalar { return Scalar{Eval: ViewportHeight, Value: p} }

// Frac builds a fraction-of-reference scalar (num/den).
func Frac(num, den float64) Scalar { return Scalar{Eval: Fraction, Value: num, Denominator: den} }

// Resolve computes the integer cell value of sc against refDimension (the
// parent's width or height, matching the axis the Scalar applies to) and
// viewport (terminal width or height). Percentage multiplies by
// refDimension; viewport units multiply by viewport; em/rem/ch/ex collapse
// to the cell size (1x1 in a terminal, so they pass their literal value
// straight through); physical units collapse 1:1. nonInteger reports
// whether a percentage resolution produced a fractional cell count —
// callers log a non-discriminant-scalar warning when true, per spec §4.1.
func (sc Scalar) Resolve(refDimension, viewport int) (value int, nonInteger bool) {
	switch sc.Eval {
	case Literal, Em, Rem, Ch, Ex, Physical:
		return int(sc.Value), false
	case Percent:
		exact := float64(refDimension) * sc.Value / 100
		return int(math.Round(exact)), !isWholeNumber(exact)
	case ViewportWidth, ViewportHeight, ViewportMin, ViewportMax:
		exact := float64(viewport) * sc.Value / 100
		return int(math.Round(exact)), !isWholeNumber(exact)
	case Fraction:
		if sc.Denominator == 0 {
			return 0, false
		}
		exact := float64(refDimension) * sc.Value / sc.Denominator
		return int(math.Round(exact)), !isWholeNumber(exact)
	default:
		return int(sc.Value), false
	}
}

// IsLiteral reports whether sc can be used without a Resolve pass.
func (sc Scalar) IsLiteral() bool {
	switch sc.Eval {
	case Literal, Em, Rem, Ch, Ex, Physical:
		return true
	}
	return false
}

func isWholeNumber(f float64) bool {
	return f == math.Trunc(f)
}
