package format

import (
	"math"
	"math/big"
)

// sigFig is DEC_SIG_FIG for the 64-bit double this engine always decodes
// to (spec.md treats 32-bit float support as a separate build selection;
// this Go port, like the teacher's fmt package, promotes every floating
// argument to float64 before formatting — see formatFloat).
const sigFig = 16

// sentinelExponent marks the radixDecoded.exponent of an Inf or NaN value.
const sentinelExponent = math.MaxInt32

// radixDecoded is the output of decomposing an IEEE-754 double into a
// canonical D.dddd...×10^exponent form with exactly sigFig significant
// decimal digits, computed without ever performing floating-point
// arithmetic on the mantissa (spec.md §3, §4.5).
type radixDecoded struct {
	sign     int
	mantissa uint64 // sigFig significant digits; 0 only for ±0
	exponent int
}

func (r radixDecoded) isSpecial() bool { return r.exponent == sentinelExponent }
func (r radixDecoded) isNaN() bool     { return r.isSpecial() && r.mantissa != 0 }
func (r radixDecoded) isInf() bool     { return r.isSpecial() && r.mantissa == 0 }
func (r radixDecoded) isZero() bool    { return !r.isSpecial() && r.mantissa == 0 }

// decodeFloat64 classifies f and, for finite nonzero values, converts its
// exact binary value to sigFig decimal digits using only big.Int integer
// arithmetic: a finite double is exactly mantissa × 2^exp2 for an integer
// mantissa and integer exp2, and 2^exp2 always has an exact decimal
// reciprocal or multiple (5^|exp2|), so the digit string of mantissa×2^exp2
// can be produced without any rounding until the final truncation to
// sigFig digits — at which point the engine rounds half away from zero,
// matching spec.md's documented rounding quirk.
func decodeFloat64(f float64) radixDecoded {
	bits := math.Float64bits(f)
	sign := int(bits >> 63)
	rawExp := int((bits >> 52) & 0x7FF)
	frac := bits & (uint64(1)<<52 - 1)

	if rawExp == 0x7FF {
		if frac != 0 {
			return radixDecoded{sign: sign, mantissa: 1, exponent: sentinelExponent}
		}
		return radixDecoded{sign: sign, mantissa: 0, exponent: sentinelExponent}
	}
	if rawExp == 0 && frac == 0 {
		return radixDecoded{sign: sign, mantissa: 0, exponent: 0}
	}

	var m uint64
	var exp2 int
	if rawExp == 0 {
		// Denormal: no implicit leading bit.
		m = frac
		exp2 = -1074
	} else {
		m = frac | (uint64(1) << 52)
		exp2 = rawExp - 1075
	}

	mantissa, exponent := binaryToDecimal(m, exp2)
	return radixDecoded{sign: sign, mantissa: mantissa, exponent: exponent}
}

func binaryToDecimal(m uint64, exp2 int) (uint64, int) {
	var n *big.Int
	var exponent int

	if exp2 >= 0 {
		n = new(big.Int).Lsh(new(big.Int).SetUint64(m), uint(exp2))
		exponent = decimalDigits(n) - 1
	} else {
		p := uint(-exp2)
		five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(p)), nil)
		n = new(big.Int).Mul(new(big.Int).SetUint64(m), five)
		exponent = decimalDigits(n) - 1 - int(p)
	}

	digits := decimalDigits(n)
	switch {
	case digits > sigFig:
		drop := digits - sigFig
		divisor := pow10(drop)
		half := new(big.Int).Rsh(divisor, 1)
		n.Add(n, half)
		n.Div(n, divisor)
		if decimalDigits(n) > sigFig {
			n.Div(n, big.NewInt(10))
			exponent++
		}
	case digits < sigFig:
		n.Mul(n, pow10(sigFig-digits))
	}

	return n.Uint64(), exponent
}

func decimalDigits(n *big.Int) int {
	return len(n.Text(10))
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// pow10u64 returns 10^n as a uint64 for small n (n <= 19), used by the
// floating-point layout code for rounding and digit counting that never
// needs big.Int precision.
func pow10u64(n int) uint64 {
	v := uint64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
