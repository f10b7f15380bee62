package value

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
)

// Literal tokens for non-finite doubles, used in both JSON and plain formats.
const (
	NaNToken              = "NaN"
	PositiveInfinityToken = "PositiveInfinity"
	NegativeInfinityToken = "NegativeInfinity"
)

type doubleClass uint8

// classFinite is zero so that the zero Double is +0.
const (
	classFinite doubleClass = iota
	classNaN
	classNegInf
	classPosInf
)

// rank orders the classes: NaN, -Inf, finite, +Inf.
func (c doubleClass) rank() int {
	switch c {
	case classNaN:
		return 0
	case classNegInf:
		return 1
	case classPosInf:
		return 3
	}
	return 2
}

// Double is a totally ordered float64:
// NaN < NegativeInfinity < finite values < PositiveInfinity. Finite values
// order numerically, and -0 equals +0. The zero value is +0.
type Double struct {
	class doubleClass
	f     float64
}

// NewDouble canonicalizes f.
func NewDouble(f float64) Double {
	switch {
	case math.IsNaN(f):
		return Double{class: classNaN}
	case math.IsInf(f, 1):
		return Double{class: classPosInf}
	case math.IsInf(f, -1):
		return Double{class: classNegInf}
	}
	return Double{class: classFinite, f: f}
}

// NaN returns the NaN double.
func NaN() Double { return Double{class: classNaN} }

// PositiveInfinity returns +Inf.
func PositiveInfinity() Double { return Double{class: classPosInf} }

// NegativeInfinity returns -Inf.
func NegativeInfinity() Double { return Double{class: classNegInf} }

// ParseDouble accepts the three literal tokens or a decimal float.
func ParseDouble(s string) (Double, error) {
	if d, ok := DoubleFromToken(s); ok {
		return d, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Double{}, fmt.Errorf("invalid double %q", s)
	}
	// strconv also accepts "Inf", "NaN" and overflowing literals, none of
	// which are valid here.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Double{}, fmt.Errorf("invalid double %q", s)
	}
	return NewDouble(f), nil
}

// DoubleFromToken recognizes the three literal tokens only.
func DoubleFromToken(s string) (Double, bool) {
	switch s {
	case NaNToken:
		return NaN(), true
	case PositiveInfinityToken:
		return PositiveInfinity(), true
	case NegativeInfinityToken:
		return NegativeInfinity(), true
	}
	return Double{}, false
}

// Float64 returns the IEEE-754 value.
func (d Double) Float64() float64 {
	switch d.class {
	case classNaN:
		return math.NaN()
	case classPosInf:
		return math.Inf(1)
	case classNegInf:
		return math.Inf(-1)
	}
	return d.f
}

// IsFinite reports whether d is neither NaN nor infinite.
func (d Double) IsFinite() bool { return d.class == classFinite }

// Compare orders doubles totally.
func (d Double) Compare(o Double) int {
	if c := cmp.Compare(d.class.rank(), o.class.rank()); c != 0 {
		return c
	}
	if d.class != classFinite {
		return 0
	}
	return cmp.Compare(d.f, o.f)
}

// String renders the wire text: a literal token or the shortest decimal.
func (d Double) String() string {
	switch d.class {
	case classNaN:
		return NaNToken
	case classPosInf:
		return PositiveInfinityToken
	case classNegInf:
		return NegativeInfinityToken
	}
	return strconv.FormatFloat(d.f, 'g', -1, 64)
}
