// Package tiny is the tiny tier of the formatting engine: the micro
// tier's conversion set (d u x X b c s p) plus format continuation,
// built on the same internal/core plumbing and the same Sink contract as
// the full tier, but without grouping, custom bases, length qualifiers,
// or floating-point conversions (spec.md §2).
package tiny

import (
	"github.com/nejohnson/format/internal/core"
)

const (
	maxWidth    = 500
	maxPrec     = 500
	scratchSize = 80
)

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

// Format scans template for literal runs and '%' conversions from the
// tiny verb set, writing results to sink, and returns the total byte
// count or core.BadFormat.
func Format(sink core.Sink, template string, args ...interface{}) int {
	a := core.NewArgs(args)
	total := 0

	for {
		n, next, cont, ok := scanOnce(sink, template, a)
		if !ok {
			return core.BadFormat
		}
		total += n
		if !cont {
			return total
		}
		template = next
	}
}

func scanOnce(sink core.Sink, template string, args *core.Args) (n int, next string, cont bool, ok bool) {
	pos := 0
	total := 0

	for pos < len(template) {
		if template[pos] != '%' {
			start := pos
			for pos < len(template) && template[pos] != '%' {
				pos++
			}
			if !core.Emit(sink, []byte(template[start:pos])) {
				return 0, "", false, false
			}
			total += pos - start
			continue
		}

		pos++
		if pos < len(template) && template[pos] == '%' {
			if !core.Emit(sink, []byte{'%'}) {
				return 0, "", false, false
			}
			total++
			pos++
			continue
		}

		fs := newSpec()
		pos = parseFlags(template, pos, fs)

		var perr bool
		pos, perr = parseWidth(template, pos, fs, args)
		if perr {
			return 0, "", false, false
		}
		pos, perr = parsePrecision(template, pos, fs, args)
		if perr {
			return 0, "", false, false
		}

		if pos >= len(template) {
			v, okArg := args.Next()
			if !okArg {
				return 0, "", false, false
			}
			s, isStr := v.(string)
			if !isStr {
				return 0, "", false, false
			}
			return total, s, true, true
		}

		verb := template[pos]
		pos++

		written := dispatch(sink, fs, args, verb)
		if written == core.BadFormat {
			return 0, "", false, false
		}
		total += written
	}

	return total, "", false, true
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
		iv := toInt64(v)
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
		iv := toInt64(v)
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

func toInt64(v interface{}) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	}
	return 0
}

func toUint64(v interface{}) uint64 {
	switch x := v.(type) {
	case uint:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	}
	return uint64(toInt64(v))
}

func dispatch(sink core.Sink, fs *spec, args *core.Args, verb byte) int {
	switch verb {
	case 'd':
		return formatInt(sink, fs, args, 10, true, false)
	case 'u':
		return formatInt(sink, fs, args, 10, false, false)
	case 'x':
		return formatInt(sink, fs, args, 16, false, false)
	case 'X':
		return formatInt(sink, fs, args, 16, false, true)
	case 'b':
		return formatInt(sink, fs, args, 2, false, false)
	case 'c':
		return formatChar(sink, fs, args)
	case 's':
		return formatString(sink, fs, args)
	case 'p':
		return formatPointer(sink, fs, args)
	default:
		return core.BadFormat
	}
}

func formatInt(sink core.Sink, fs *spec, args *core.Args, base int, signed, upper bool) int {
	v, _ := args.Next()

	var neg bool
	var absVal uint64
	if signed {
		iv := toInt64(v)
		neg = iv < 0
		if neg {
			absVal = uint64(-iv)
		} else {
			absVal = uint64(iv)
		}
	} else {
		absVal = toUint64(v)
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

	return core.Compose(sink, left, prefix, zeroPad, digits, 0, nil, right)
}

func formatChar(sink core.Sink, fs *spec, args *core.Args) int {
	v, _ := args.Next()
	b := byte(toInt64(v))

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
	return core.Compose(sink, left, nil, 0, body, 0, nil, right)
}

// nullMark is what a nil string/[]byte argument renders as in tiny tier —
// "(null)", matching the full tier (spec.md §4.3; only micro diverges
// and prints "?").
var nullMark = []byte("(null)")

func formatString(sink core.Sink, fs *spec, args *core.Args) int {
	v, _ := args.Next()

	var body []byte
	switch x := v.(type) {
	case string:
		body = []byte(x)
	case []byte:
		body = x
	}
	if body == nil {
		body = nullMark
	} else if fs.precision >= 0 && fs.precision < len(body) {
		body = body[:fs.precision]
	}

	width := 0
	if fs.hasWidth {
		width = fs.width
	}
	left, right := core.Pad(len(body), width, fs.flags.has(flagMinus), false)
	return core.Compose(sink, left, nil, 0, body, 0, nil, right)
}

// formatPointer implements tiny tier's "%p alias": unlike micro's bare
// hex digits, tiny always shows the "0x" alternate-form prefix and
// zero-pads to the platform's hex-digit pointer width, matching the full
// tier's %p behavior without needing the HASH/BANG flags tiny otherwise
// omits from its grammar.
func formatPointer(sink core.Sink, fs *spec, args *core.Args) int {
	const hexDigits = 16
	v, _ := args.Next()
	addr := toUint64(v)

	var scratch [scratchSize]byte
	start := core.AppendUint(scratch[:], scratchSize, addr, 16, false)
	digits := scratch[start:scratchSize]
	if len(digits) < hexDigits {
		pad := hexDigits - len(digits)
		padded := make([]byte, pad, pad+len(digits))
		for i := range padded {
			padded[i] = '0'
		}
		digits = append(padded, digits...)
	}

	prefix := []byte("0x")
	width := 0
	if fs.hasWidth {
		width = fs.width
	}
	contentLen := len(prefix) + len(digits)
	left, right := core.Pad(contentLen, width, fs.flags.has(flagMinus), false)
	return core.Compose(sink, left, prefix, 0, digits, 0, nil, right)
}
