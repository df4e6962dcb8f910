package micro

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nejohnson/format/internal/core"
)

func collect(t *testing.T, template string, args ...interface{}) (string, int) {
	t.Helper()
	var buf []byte
	put := func(b byte) bool {
		buf = append(buf, b)
		return true
	}
	n := Format(put, template, args...)
	return string(buf), n
}

func TestMicroIntegerConversions(t *testing.T) {
	out, n := collect(t, "%d", int16(-7))
	assert.Equal(t, "-7", out)
	assert.Equal(t, 2, n)

	out, _ = collect(t, "%u", uint16(42))
	assert.Equal(t, "42", out)

	out, _ = collect(t, "%x", int16(255))
	assert.Equal(t, "ff", out)

	out, _ = collect(t, "%X", int16(255))
	assert.Equal(t, "FF", out)

	out, _ = collect(t, "%b", int16(5))
	assert.Equal(t, "101", out)
}

func TestMicroChar(t *testing.T) {
	out, _ := collect(t, "%c", int16('Z'))
	assert.Equal(t, "Z", out)
}

func TestMicroStringNullIsQuestionMark(t *testing.T) {
	// Micro tier's deliberate divergence: null renders as "?", not
	// "(null)" (spec.md §9 Open Questions).
	out, n := collect(t, "%s", nil)
	assert.Equal(t, "?", out)
	assert.Equal(t, 1, n)
}

func TestMicroStringBasic(t *testing.T) {
	out, _ := collect(t, "%s", "hi")
	assert.Equal(t, "hi", out)
}

func TestMicroPointerBareHexNoPrefix(t *testing.T) {
	// Unlike tiny's "0x"-prefixed alias, micro renders bare hex digits.
	out, _ := collect(t, "%p", uint16(0xBEEF))
	assert.Equal(t, "beef", out)
}

func TestMicroWidthCeiling(t *testing.T) {
	_, n := collect(t, "%80d", 0)
	assert.NotEqual(t, core.BadFormat, n)

	_, n = collect(t, "%81d", 0)
	assert.Equal(t, core.BadFormat, n)
}

func TestMicroPrecisionCeiling(t *testing.T) {
	_, n := collect(t, "%.80d", 1)
	assert.NotEqual(t, core.BadFormat, n)

	_, n = collect(t, "%.81d", 1)
	assert.Equal(t, core.BadFormat, n)
}

func TestMicroNoContinuation(t *testing.T) {
	_, n := collect(t, "hello %", "world")
	assert.Equal(t, core.BadFormat, n)
}

func TestMicroValuesTruncateTo16Bits(t *testing.T) {
	// A value outside int16 range wraps, matching the tier's committed
	// 16-bit argument width.
	out, _ := collect(t, "%d", int32(70000))
	assert.Equal(t, "4464", out) // 70000 mod 65536 = 4464
}

func TestMicroSinkFailureAborts(t *testing.T) {
	calls := 0
	put := func(b byte) bool {
		calls++
		return calls <= 2
	}
	n := Format(put, "abcdef")
	assert.Equal(t, core.BadFormat, n)
}
