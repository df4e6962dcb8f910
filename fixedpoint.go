package format

import (
	"math"

	"github.com/nejohnson/format/internal/core"
)

// formatFixedPoint implements %k (spec.md §4.7): the argument is a
// two's-complement fixed-point integer with w_int integer bits and
// w_frac fraction bits (default 16.16, overridden by a "{w_int.w_frac}"
// modifier). It is unpacked to sign + magnitude, rebuilt as a double via
// Ldexp (the power-of-two scale is exact in IEEE-754; a magnitude wider
// than 53 bits is rounded when converted to float64), and handed to the
// %f layout with the requested precision.
func formatFixedPoint(sink core.Sink, fs *formatSpec, args *core.Args) int {
	wInt, wFrac := defaultFixedIntBits, defaultFixedFracBits
	if fs.hasFixed {
		wInt, wFrac = fs.fixedIntBits, fs.fixedFracBits
	}
	total := wInt + wFrac
	if total <= 0 || total > 64 {
		return core.BadFormat
	}

	raw, _ := readUnsigned(args, lenNone)
	var mask uint64 = ^uint64(0)
	if total < 64 {
		mask = uint64(1)<<uint(total) - 1
	}
	raw &= mask

	signBit := uint64(1) << uint(total-1)
	neg := raw&signBit != 0
	mag := raw
	if neg {
		mag = (^raw + 1) & mask
	}

	value := math.Ldexp(float64(mag), -wFrac)
	if neg {
		value = -value
	}

	dec := decodeFloat64(value)
	return formatF(sink, fs, dec, false, false)
}
