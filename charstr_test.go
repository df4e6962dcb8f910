package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharConversion(t *testing.T) {
	out, n := run(t, "%c", byte('A'))
	assert.Equal(t, "A", out)
	assert.Equal(t, 1, n)
}

func TestCharPrecisionIsRepeatCount(t *testing.T) {
	out, _ := run(t, "%.4c", byte('x'))
	assert.Equal(t, "xxxx", out)
}

func TestCharWidthPadding(t *testing.T) {
	out, _ := run(t, "%3c", byte('Z'))
	assert.Equal(t, "  Z", out)

	out, _ = run(t, "%-3c", byte('Z'))
	assert.Equal(t, "Z  ", out)
}

func TestStringBasic(t *testing.T) {
	out, n := run(t, "%s", "hello")
	assert.Equal(t, "hello", out)
	assert.Equal(t, 5, n)
}

func TestStringPrecisionTruncates(t *testing.T) {
	out, _ := run(t, "%.3s", "hello")
	assert.Equal(t, "hel", out)
}

func TestStringNullRendersNullMark(t *testing.T) {
	var nilBytes []byte
	out, n := run(t, "%s", nilBytes)
	assert.Equal(t, "(null)", out)
	assert.Equal(t, 6, n)
}

func TestStringHashReadsAltBytes(t *testing.T) {
	data := []byte("rom data")
	read := func(offset int) (byte, bool) {
		if offset >= len(data) {
			return 0, false
		}
		return data[offset], true
	}
	out, _ := run(t, "%#s", AltBytes{Read: read})
	assert.Equal(t, "rom data", out)
}

func TestStringWidthAndJustification(t *testing.T) {
	out, _ := run(t, "%10s", "abc")
	assert.Equal(t, "       abc", out)

	out, _ = run(t, "%-10s", "abc")
	assert.Equal(t, "abc       ", out)
}
