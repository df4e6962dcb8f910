// Package micro is the smallest tier of the formatting engine: fixed
// 16-bit argument widths, an 8-conversion verb set, and an entry point
// that calls a single put_byte callback instead of accepting a Sink —
// for hosts too constrained even for an interface method call per byte
// (spec.md §2, §6).
package micro

import "github.com/nejohnson/format/internal/core"

const (
	maxWidth    = 80
	maxPrec     = 80
	scratchSize = 16
)

// PutByte consumes one byte and reports failure by returning ok=false,
// mirroring spec.md §6's "put_byte(byte) -> byte_or_-1" external contract.
type PutByte func(b byte) (ok bool)

type flag uint8

const (
	flagSpace flag = 1 << iota
	flagPlus
	flagMinus
	flagZero
)

func (f flag) has(b flag) bool { return f&b != 0 }

type spec struct {
	flags     flag
	width     int
	hasWidth  bool
	precision int
}

func newSpec() *spec { return &spec{precision: -1} }

func emit(put PutByte, p []byte) bool {
	for _, b := range p {
		if !put(b) {
			return false
		}
	}
	return true
}

func emitRepeat(put PutByte, ch byte, n int) bool {
	for i := 0; i < n; i++ {
		if !put(ch) {
			return false
		}
	}
	return true
}

func compose(put PutByte, left int, prefix []byte, zeroPad int, body []byte, right int) int {
	total := 0
	if !emitRepeat(put, ' ', left) {
		return core.BadFormat
	}
	total += left
	if !emit(put, prefix) {
		return core.BadFormat
	}
	total += len(prefix)
	if !emitRepeat(put, '0', zeroPad) {
		return core.BadFormat
	}
	total += zeroPad
	if !emit(put, body) {
		return core.BadFormat
	}
	total += len(body)
	if !emitRepeat(put, ' ', right) {
		return core.BadFormat
	}
	total += right
	return total
}

// Format scans template for literal runs and micro-tier '%' conversions,
// calling put for every output byte, and returns the total byte count or
// core.BadFormat. Unlike the full and tiny tiers, micro has no
// continuation feature: a bare '%' terminator is a format error.
func Format(put PutByte, template string, args ...interface{}) int {
	a := core.NewArgs(args)
	pos := 0
	total := 0

	for pos < len(template) {
		if template[pos] != '%' {
			start := pos
			for pos < len(template) && template[pos] != '%' {
				pos++
			}
			if !emit(put, []byte(template[start:pos])) {
				return core.BadFormat
			}
			total += pos - start
			continue
		}

		pos++
		if pos < len(template) && template[pos] == '%' {
			if !put('%') {
				return core.BadFormat
			}
			total++
			pos++
			continue
		}

		fs := newSpec()
		pos = parseFlags(template, pos, fs)

		var perr bool
		pos, perr = parseWidth(template, pos, fs, a)
		if perr {
			return core.BadFormat
		}
		pos, perr = parsePrecision(template, pos, fs, a)
		if perr {
			return core.BadFormat
		}

		if pos >= len(template) {
			return core.BadFormat
		}

		verb := template[pos]
		pos++

		written := dispatch(put, fs, a, verb)
		if written == core.BadFormat {
			return core.BadFormat
		}
		total += written
	}

	return total
}

func parseFlags(t string, pos int, fs *spec) int {
	for pos < len(t) {
		switch t[pos] {
		case ' ':
			fs.flags |= flagSpace
		case '+':
			fs.flags |= flagPlus
		case '-':
			fs.flags |= flagMinus
		case '0':
			fs.flags |= flagZero
		default:
			return pos
		}
		pos++
	}
	return pos
}

func parseWidth(t string, pos int, fs *spec, args *core.Args) (int, bool) {
	if pos < len(t) && t[pos] == '*' {
		pos++
		v, _ := args.Next()
		iv := toInt16(v)
		if iv < 0 {
			fs.flags |= flagMinus
			iv = -iv
		}
		fs.width = int(iv)
		fs.hasWidth = true
	} else {
		start := pos
		for pos < len(t) && t[pos] >= '0' && t[pos] <= '9' {
			pos++
		}
		if pos > start {
			fs.width = atoi(t[start:pos])
			fs.hasWidth = true
		}
	}
	if fs.hasWidth && (fs.width < 0 || fs.width > maxWidth) {
		return pos, true
	}
	return pos, false
}

func parsePrecision(t string, pos int, fs *spec, args *core.Args) (int, bool) {
	if pos >= len(t) || t[pos] != '.' {
		return pos, false
	}
	pos++
	if pos < len(t) && t[pos] == '*' {
		pos++
		v, _ := args.Next()
		iv := toInt16(v)
		if iv < 0 {
			fs.precision = -1
		} else {
			fs.precision = int(iv)
		}
	} else {
		start := pos
		for pos < len(t) && t[pos] >= '0' && t[pos] <= '9' {
			pos++
		}
		fs.precision = atoi(t[start:pos])
	}
	if fs.precision > maxPrec {
		return pos, true
	}
	return pos, false
}

func atoi(digits string) int {
	v := 0
	for i := 0; i < len(digits); i++ {
		v = v*10 + int(digits[i]-'0')
	}
	return v
}

// toInt16 widens and truncates v to the 16-bit values micro tier
// commits to (spec.md §2's "16-bit values").
func toInt16(v interface{}) int16 {
	switch x := v.(type) {
	case int:
		return int16(x)
	case int8:
		return int16(x)
	case int16:
		return x
	case int32:
		return int16(x)
	case int64:
		return int16(x)
	case uint:
		return int16(x)
	case uint8:
		return int16(x)
	case uint16:
		return int16(x)
	case uint32:
		return int16(x)
	case uint64:
		return int16(x)
	}
	return 0
}

func toUint16(v interface{}) uint16 {
	return uint16(toInt16(v))
}

func dispatch(put PutByte, fs *spec, args *core.Args, verb byte) int {
	switch verb {
	case 'd':
		return formatInt(put, fs, args, 10, true, false)
	case 'u':
		return formatInt(put, fs, args, 10, false, false)
	case 'x':
		return formatInt(put, fs, args, 16, false, false)
	case 'X':
		return formatInt(put, fs, args, 16, false, true)
	case 'b':
		return formatInt(put, fs, args, 2, false, false)
	case 'c':
		return formatChar(put, fs, args)
	case 's':
		return formatString(put, fs, args)
	case 'p':
		return formatPointer(put, fs, args)
	default:
		return core.BadFormat
	}
}

func formatInt(put PutByte, fs *spec, args *core.Args, base int, signed, upper bool) int {
	v, _ := args.Next()

	var neg bool
	var absVal uint64
	if signed {
		iv := toInt16(v)
		neg = iv < 0
		if neg {
			absVal = uint64(-int32(iv))
		} else {
			absVal = uint64(iv)
		}
	} else {
		absVal = uint64(toUint16(v))
	}

	var signByte byte
	if signed {
		switch {
		case neg:
			signByte = '-'
		case fs.flags.has(flagPlus):
			signByte = '+'
		case fs.flags.has(flagSpace):
			signByte = ' '
		}
	}

	var prefix []byte
	if signByte != 0 {
		prefix = []byte{signByte}
	}

	var scratch [scratchSize]byte
	start := core.AppendUint(scratch[:], scratchSize, absVal, base, upper)
	digits := scratch[start:scratchSize]

	if fs.precision >= 0 {
		if fs.precision == 0 && absVal == 0 {
			digits = digits[:0]
		} else if len(digits) < fs.precision {
			pad := fs.precision - len(digits)
			padded := make([]byte, pad, pad+len(digits))
			for i := range padded {
				padded[i] = '0'
			}
			digits = append(padded, digits...)
		}
	}

	width := 0
	if fs.hasWidth {
		width = fs.width
	}
	contentLen := len(prefix) + len(digits)
	zeroActive := fs.flags.has(flagZero) && fs.precision < 0 && !fs.flags.has(flagMinus)
	left, right := core.Pad(contentLen, width, fs.flags.has(flagMinus), false)
	zeroPad := 0
	if zeroActive {
		zeroPad = left
		left = 0
	}

	return compose(put, left, prefix, zeroPad, digits, right)
}

func formatChar(put PutByte, fs *spec, args *core.Args) int {
	v, _ := args.Next()
	b := byte(toInt16(v))

	count := 1
	if fs.precision > 0 {
		count = fs.precision
	}
	body := make([]byte, count)
	for i := range body {
		body[i] = b
	}

	width := 0
	if fs.hasWidth {
		width = fs.width
	}
	left, right := core.Pad(count, width, fs.flags.has(flagMinus), false)
	return compose(put, left, nil, 0, body, right)
}

// formatString implements %s: a nil string/[]byte argument renders as
// the single character "?", the micro tier's deliberate divergence from
// the full/tiny tiers' "(null)" (spec.md §9 Open Questions — retained,
// not resolved away).
func formatString(put PutByte, fs *spec, args *core.Args) int {
	v, _ := args.Next()

	var body []byte
	switch x := v.(type) {
	case string:
		body = []byte(x)
	case []byte:
		body = x
	}
	if body == nil {
		body = []byte{'?'}
	} else if fs.precision >= 0 && fs.precision < len(body) {
		body = body[:fs.precision]
	}

	width := 0
	if fs.hasWidth {
		width = fs.width
	}
	left, right := core.Pad(len(body), width, fs.flags.has(flagMinus), false)
	return compose(put, left, nil, 0, body, right)
}

// formatPointer implements %p as bare hex digits with no alternate-form
// prefix, the cheapest rendering micro tier commits to (tiny and full
// both add a "0x" prefix; see tiny's formatPointer for the contrast).
func formatPointer(put PutByte, fs *spec, args *core.Args) int {
	v, _ := args.Next()
	addr := uint64(toUint16(v))

	var scratch [scratchSize]byte
	start := core.AppendUint(scratch[:], scratchSize, addr, 16, false)
	digits := scratch[start:scratchSize]

	width := 0
	if fs.hasWidth {
		width = fs.width
	}
	left, right := core.Pad(len(digits), width, fs.flags.has(flagMinus), false)
	return compose(put, left, nil, 0, digits, right)
}
