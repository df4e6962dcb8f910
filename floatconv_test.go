package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatFixedPrecision(t *testing.T) {
	out, n := run(t, "%.3f", 1234.5678)
	assert.Equal(t, "1234.568", out)
	assert.Equal(t, 8, n)
}

func TestFloatFixedPrecisionCharCount(t *testing.T) {
	// For %f with precision p on a finite value, the count of
	// characters after the decimal point equals p (spec.md §8).
	out, _ := run(t, "%.4f", 3.14159)
	dot := -1
	for i, c := range out {
		if c == '.' {
			dot = i
			break
		}
	}
	assert.NotEqual(t, -1, dot)
	assert.Equal(t, 4, len(out)-dot-1)
}

func TestFloatFixedZeroPrecisionNoPoint(t *testing.T) {
	out, _ := run(t, "%.0f", 3.6)
	assert.NotContains(t, out, ".")
	assert.Equal(t, "4", out)
}

func TestFloatFixedHashForcesPoint(t *testing.T) {
	out, _ := run(t, "%#.0f", 3.0)
	assert.Equal(t, "3.", out)
}

func TestFloatDefaultPrecisionSix(t *testing.T) {
	out, _ := run(t, "%f", 1.5)
	assert.Equal(t, "1.500000", out)
}

func TestFloatExponentTwoDigitsMinimum(t *testing.T) {
	out, _ := run(t, "%e", 5.0)
	assert.Equal(t, "5.000000e+00", out)

	out, _ = run(t, "%e", 5e100)
	assert.Contains(t, out, "e+100")
}

func TestFloatExponentLeadingDigitNonzeroIffArgNonzero(t *testing.T) {
	out, _ := run(t, "%e", 0.0)
	assert.Equal(t, "0.000000e+00", out)

	out, _ = run(t, "%.0e", 9.99)
	assert.Equal(t, "1e+01", out)
}

func TestFloatG(t *testing.T) {
	out, n := run(t, "%.2g", 1234.5)
	assert.Equal(t, "1.2e+03", out)
	assert.Equal(t, 7, n)
}

// For %g, the e/f choice matches "e iff exponent < -4 or exponent >= precision".
func TestFloatGChoosesFVersusE(t *testing.T) {
	out, _ := run(t, "%g", 0.0001234)
	assert.Equal(t, "0.0001234", out) // exponent -4, not < -4 -> f

	out, _ = run(t, "%g", 0.00001234)
	assert.Contains(t, out, "e-05") // exponent -5 < -4 -> e

	out, _ = run(t, "%.3g", 999.9)
	assert.Contains(t, out, "e+03") // rounds to 1.00e+03, exponent 3 >= precision 3 -> e
}

func TestFloatGPrecisionZeroRenormalizedToOne(t *testing.T) {
	out, _ := run(t, "%.0g", 42.0)
	assert.Equal(t, "4e+01", out)
}

func TestFloatGTrimsTrailingZeros(t *testing.T) {
	out, _ := run(t, "%g", 100.0)
	assert.Equal(t, "100", out)
}

func TestFloatGHashKeepsTrailingZeros(t *testing.T) {
	out, _ := run(t, "%#.4g", 1.5)
	assert.Equal(t, "1.500", out)
}

func TestFloatEngineeringSIPrefix(t *testing.T) {
	out, n := run(t, "%!.3f", 0.012345)
	assert.Equal(t, "12.345m", out)
	assert.Equal(t, 7, n)
}

func TestFloatEngineeringExponentMultipleOfThree(t *testing.T) {
	out, _ := run(t, "%!e", 1234.0)
	assert.Contains(t, out, "e+03")
}

func TestFloatSignFlags(t *testing.T) {
	out, _ := run(t, "%+.1f", 1.5)
	assert.Equal(t, "+1.5", out)

	out, _ = run(t, "% .1f", 1.5)
	assert.Equal(t, " 1.5", out)

	out, _ = run(t, "%+.1f", -1.5)
	assert.Equal(t, "-1.5", out)
}

func TestDenormalDecode(t *testing.T) {
	dec := decodeFloat64(math.Float64frombits(1)) // smallest denormal, 2^-1074
	out, _ := run(t, "%.2e", math.Float64frombits(1))
	assert.Equal(t, "4.94e-324", out)
	assert.Equal(t, -324, dec.exponent)
}

func TestRoundMantissaHalfAwayFromZero(t *testing.T) {
	// Ties round half away from zero, not banker's rounding: 2.5 with no
	// fraction digits becomes 3, not 2.
	out, _ := run(t, "%.3f", 0.5)
	assert.Equal(t, "0.500", out)

	out, _ = run(t, "%.0f", 2.5)
	assert.Equal(t, "3", out)
}

func TestRoundMantissaCarryPastZeroDigitBudget(t *testing.T) {
	// Precision 0 on a value whose magnitude contributes zero integer
	// digits (|x| < 1) still has to carry a round-up into a leading "1",
	// even though roundMantissa was asked to keep none.
	out, _ := run(t, "%.0f", 0.5)
	assert.Equal(t, "1", out)

	out, _ = run(t, "%.0f", 0.9)
	assert.Equal(t, "1", out)

	out, _ = run(t, "%.1f", 0.05)
	assert.Equal(t, "0.1", out)
}

func TestFormatFPrecisionBeyondMantissaDigits(t *testing.T) {
	// 16 significant digits is all a double's mantissa carries; asking
	// for more fractional digits than that must pad with trailing
	// zeros, not shift the real digits out of place.
	out, _ := run(t, "%.16f", 1.5)
	assert.Equal(t, "1.5000000000000000", out)
}
