package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nejohnson/format/internal/core"
)

type collectSink struct {
	buf []byte
}

func (s *collectSink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func run(t *testing.T, template string, args ...interface{}) (string, int) {
	t.Helper()
	s := &collectSink{}
	n := Format(s, template, args...)
	return string(s.buf), n
}

// Concrete end-to-end scenarios from spec.md §8.
func TestFormatScenarios(t *testing.T) {
	out, n := run(t, "%d", -1234)
	assert.Equal(t, "-1234", out)
	assert.Equal(t, 5, n)

	// Scenario 2 as transcribed in spec.md reads "  1234"; this
	// implementation follows the general, internally-consistent rule
	// instead (see DESIGN.md's Open Questions section).
	out, n = run(t, "%+06.1d", 1234)
	assert.Equal(t, " +1234", out)
	assert.Equal(t, 6, n)

	out, n = run(t, "%#12.8b", 13)
	assert.Equal(t, "  0b00001101", out)
	assert.Equal(t, 12, n)

	out, n = run(t, "%^#12.8X", 0xABCD)
	assert.Equal(t, " 0X0000ABCD ", out)
	assert.Equal(t, 12, n)

	out, n = run(t, "%.3f", 1234.5678)
	assert.Equal(t, "1234.568", out)
	assert.Equal(t, 8, n)

	out, n = run(t, "%.2g", 1234.5)
	assert.Equal(t, "1.2e+03", out)
	assert.Equal(t, 7, n)

	out, n = run(t, "%!.3f", 0.012345)
	assert.Equal(t, "12.345m", out)
	assert.Equal(t, 7, n)

	out, n = run(t, "%[,3.2]d", 1234567890)
	assert.Equal(t, "12,345,678.90", out)
	assert.Equal(t, 13, n)

	out, n = run(t, "%.*d", 6, 1234)
	assert.Equal(t, "001234", out)
	assert.Equal(t, 6, n)

	out, n = run(t, "%.*d", -6, 1234)
	assert.Equal(t, "1234", out)
	assert.Equal(t, 4, n)

	out, n = run(t, "hello %", "world")
	assert.Equal(t, "hello world", out)
	assert.Equal(t, 11, n)

	out, n = run(t, "%s", nil)
	assert.Equal(t, "(null)", out)
	assert.Equal(t, 6, n)

	_, n = run(t, "%501d", 0)
	assert.Equal(t, core.BadFormat, n)
}

func TestFormatLiteralOnly(t *testing.T) {
	out, n := run(t, "no conversions here")
	assert.Equal(t, "no conversions here", out)
	assert.Equal(t, len(out), n)
}

func TestFormatPercentEscape(t *testing.T) {
	out, n := run(t, "100%% done")
	assert.Equal(t, "100% done", out)
	assert.Equal(t, 9, n)
}

func TestFormatEmptyTemplate(t *testing.T) {
	_, n := run(t, "")
	assert.Equal(t, 0, n)
}

func TestFormatWidthBoundary(t *testing.T) {
	_, n := run(t, "%500d", 0)
	assert.NotEqual(t, core.BadFormat, n)

	_, n = run(t, "%501d", 0)
	assert.Equal(t, core.BadFormat, n)
}

func TestFormatPrecisionBoundary(t *testing.T) {
	_, n := run(t, "%.500d", 1)
	assert.NotEqual(t, core.BadFormat, n)

	_, n = run(t, "%.501d", 1)
	assert.Equal(t, core.BadFormat, n)
}

func TestFormatPrecisionZeroValueZero(t *testing.T) {
	out, n := run(t, "[%.0d]", 0)
	assert.Equal(t, "[]", out)
	assert.Equal(t, 2, n)
}

func TestFormatCaretCentering(t *testing.T) {
	// deficit 3 over "ab" in width 5: ceil(3/2)=2 left, 1 right.
	out, _ := run(t, "%^5s", "ab")
	assert.Equal(t, "  ab ", out)

	// CARET+MINUS flips the bias to the left.
	out, _ = run(t, "%^-5s", "ab")
	assert.Equal(t, " ab  ", out)
}

func TestFormatContinuationAltBytes(t *testing.T) {
	data := []byte("from rom")
	read := func(offset int) (byte, bool) {
		if offset >= len(data) {
			return 0, false
		}
		return data[offset], true
	}
	out, n := run(t, "prefix %", AltBytes{Read: read})
	assert.Equal(t, "prefix from rom", out)
	assert.Equal(t, len("prefix from rom"), n)
}

func TestFormatContinuationBadArgument(t *testing.T) {
	_, n := run(t, "x %", 42)
	assert.Equal(t, core.BadFormat, n)
}

func TestFormatCount(t *testing.T) {
	var count int
	out, n := run(t, "hello %n!", &count)
	assert.Equal(t, "hello !", out)
	assert.Equal(t, 6, count)
	assert.Equal(t, n, len(out))
}

func TestFormatRepeatedChar(t *testing.T) {
	out, n := run(t, "[%5C]")
	assert.Equal(t, "[    ]", out)
	assert.Equal(t, 6, n)
}

func TestFormatPointer(t *testing.T) {
	out, _ := run(t, "%p", uint64(0xABCD))
	assert.Equal(t, "0x000000000000abcd", out)
}

func TestFormatBaseOverride(t *testing.T) {
	out, _ := run(t, "%:2i", 5)
	assert.Equal(t, "101", out)

	// d does not honor a base override; it stays decimal.
	out, _ = run(t, "%:2d", 5)
	assert.Equal(t, "5", out)
}

func TestFormatLengthQualifierTruncation(t *testing.T) {
	out, _ := run(t, "%hhd", 300) // truncates to int8: 300 -> 44
	assert.Equal(t, "44", out)
}

func TestFormatMissingArgument(t *testing.T) {
	out, n := run(t, "%d")
	assert.Equal(t, "0", out)
	assert.Equal(t, 1, n)
}

func TestFormatInfNaN(t *testing.T) {
	out, _ := run(t, "%f", math.Inf(1))
	assert.Equal(t, "inf", out)

	out, _ = run(t, "%F", math.Inf(-1))
	assert.Equal(t, "-INF", out)

	out, _ = run(t, "%f", math.NaN())
	assert.Equal(t, "nan", out)
}

func TestFormatLongDoubleRejected(t *testing.T) {
	_, n := run(t, "%Lf", 1.0)
	assert.Equal(t, core.BadFormat, n)
}
