package format

import (
	"github.com/nejohnson/format/internal/core"
)

// argToInt64 widens any of Go's built-in signed integer types held in v to
// an int64, sign-extending as it goes.
func argToInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	}
	return 0, false
}

// argToUint64 widens any of Go's built-in unsigned integer types (plus
// uintptr) held in v to a uint64.
func argToUint64(v interface{}) (uint64, bool) {
	switch x := v.(type) {
	case uint:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	case uintptr:
		return uint64(x), true
	}
	return 0, false
}

// truncateSigned reinterprets v as if it had been stored in a variable of
// the qualifier-selected width, sign-extending from that width.
func truncateSigned(v int64, lq lengthQualifier) int64 {
	switch lq {
	case lenHH:
		return int64(int8(v))
	case lenH:
		return int64(int16(v))
	default:
		return v
	}
}

// truncateUnsigned is truncateSigned's unsigned counterpart.
func truncateUnsigned(v uint64, lq lengthQualifier) uint64 {
	switch lq {
	case lenHH:
		return uint64(uint8(v))
	case lenH:
		return uint64(uint16(v))
	default:
		return v
	}
}

// readSigned pulls the next argument, widens it to int64 regardless of its
// concrete Go type (unsigned values are reinterpreted bit-for-bit, the C
// convention for passing the "wrong" sign to a format verb), and applies
// the qualifier's width truncation.
func readSigned(args *core.Args, lq lengthQualifier) (int64, bool) {
	v, ok := args.Next()
	if !ok {
		return 0, false
	}
	if s, ok := argToInt64(v); ok {
		return truncateSigned(s, lq), true
	}
	if u, ok := argToUint64(v); ok {
		return truncateSigned(int64(u), lq), true
	}
	return 0, false
}

// readUnsigned is readSigned's unsigned counterpart.
func readUnsigned(args *core.Args, lq lengthQualifier) (uint64, bool) {
	v, ok := args.Next()
	if !ok {
		return 0, false
	}
	if u, ok := argToUint64(v); ok {
		return truncateUnsigned(u, lq), true
	}
	if s, ok := argToInt64(v); ok {
		return truncateUnsigned(uint64(s), lq), true
	}
	return 0, false
}

// absUint64 returns the absolute value of a possibly math.MinInt64 signed
// integer as an unsigned magnitude, without overflowing.
func absUint64(v int64) uint64 {
	if v >= 0 {
		return uint64(v)
	}
	return uint64(-(v + 1)) + 1
}

// parseGroupEntries parses a grouping modifier's "[...]" interior into
// left-to-right (separator, run-length, terminal) triples, drawing any
// '*' run-length from args in the order encountered, matching spec.md
// §3's GroupingPattern and §4.1 step 7.
func parseGroupEntries(raw string, args *core.Args) []groupEntry {
	var entries []groupEntry
	i := 0
	for i < len(raw) {
		terminal := false
		if raw[i] == '-' {
			terminal = true
			i++
			if i >= len(raw) {
				break
			}
		}
		sep := raw[i]
		i++
		run := 0
		if i < len(raw) && raw[i] == '*' {
			i++
			if n, ok := args.Next(); ok {
				if iv, ok := argToInt64(n); ok {
					run = int(iv)
				}
			}
		} else {
			for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
				run = run*10 + int(raw[i]-'0')
				i++
			}
		}
		if run <= 0 {
			run = 1
		}
		entries = append(entries, groupEntry{sep: sep, run: run, terminal: terminal})
	}
	return entries
}

// applyGrouping walks entries right-to-left over the entries slice (which
// is itself already in the template's left-to-right text order, so the
// walk iterates it back to front) inserting separators into digits.
// Matches spec.md §4.2 step 4: the last-written entry governs the digits
// nearest the right edge; the first-written entry governs everything
// further left and repeats indefinitely unless marked terminal.
func applyGrouping(digits []byte, entries []groupEntry) []byte {
	if len(entries) == 0 || len(digits) == 0 {
		return digits
	}

	var out []byte
	pos := len(digits) // unconsumed prefix is digits[:pos]
	idx := len(entries) - 1
	var pendingSep byte
	havePending := false

	for pos > 0 {
		e := entries[idx]
		run := e.run
		if run > pos {
			run = pos
		}
		chunk := digits[pos-run : pos]
		// The separator placed to the left of a chunk belongs to the
		// entry that produced the chunk just to its right, not this
		// chunk's own entry — entries[1]'s "." in "[,3.2]" separates
		// the 2-digit group it owns from the 3-digit groups further
		// left, so it has to be applied one join late.
		if havePending {
			out = append([]byte{pendingSep}, out...)
		}
		out = append(append([]byte{}, chunk...), out...)
		havePending = true
		pendingSep = e.sep
		pos -= run

		if idx > 0 {
			idx--
		} else if e.terminal {
			break
		}
		// idx stays at 0 and repeats entries[0] until digits run out,
		// unless entries[0] was terminal (handled above).
	}

	if pos > 0 {
		if havePending {
			out = append([]byte{pendingSep}, out...)
		}
		out = append(append([]byte{}, digits[:pos]...), out...)
	}

	return out
}

// intParams bundles the per-verb behavior intconv needs: the numeric
// base, whether the verb reads a signed argument, and the digit
// alphabet's case.
type intParams struct {
	base            int
	signed          bool
	upper           bool
	baseOverridable bool // only i/I/u/U honor a ":base" modifier
}

func formatInteger(sink core.Sink, fs *formatSpec, args *core.Args, p intParams) int {
	var (
		neg    bool
		absVal uint64
	)

	if p.signed {
		v, ok := readSigned(args, fs.length)
		if !ok {
			v = 0
		}
		neg = v < 0
		absVal = absUint64(v)
	} else {
		v, ok := readUnsigned(args, fs.length)
		if !ok {
			v = 0
		}
		absVal = v
	}

	base := p.base
	if p.baseOverridable && fs.base != 0 {
		base = fs.base
	}
	if base < minBase || base > maxBase {
		base = 10
	}

	var signByte byte
	if p.signed {
		switch {
		case neg:
			signByte = '-'
		case fs.flags.has(flagPlus):
			signByte = '+'
		case fs.flags.has(flagSpace):
			signByte = ' '
		}
	}

	hashEffective := fs.flags.has(flagHash)
	if signByte != 0 {
		hashEffective = true
	}
	altRequested := hashEffective || fs.flags.has(flagBang)
	upperEffective := p.upper && !fs.flags.has(flagBang)

	var altPrefix string
	if altRequested {
		switch base {
		case 8:
			if absVal != 0 {
				altPrefix = "0"
			}
		case 16:
			if absVal != 0 || fs.flags.has(flagBang) {
				if upperEffective {
					altPrefix = "0X"
				} else {
					altPrefix = "0x"
				}
			}
		case 2:
			if absVal != 0 || fs.flags.has(flagBang) {
				if upperEffective {
					altPrefix = "0B"
				} else {
					altPrefix = "0b"
				}
			}
		}
	}

	prefix := make([]byte, 0, 3)
	if signByte != 0 {
		prefix = append(prefix, signByte)
	}
	prefix = append(prefix, altPrefix...)

	var scratch [scratchSize]byte
	start := core.AppendUint(scratch[:], scratchSize, absVal, base, upperEffective)
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

	if fs.hasGrouping {
		entries := parseGroupEntries(fs.grouping, args)
		digits = applyGrouping(digits, entries)
	}

	width := 0
	if fs.hasWidth {
		width = fs.width
	}
	contentLen := len(prefix) + len(digits)

	zeroActive := fs.flags.has(flagZero) && fs.precision < 0 && !fs.flags.has(flagMinus) && !fs.flags.has(flagCaret)

	left, right := core.Pad(contentLen, width, fs.flags.has(flagMinus), fs.flags.has(flagCaret))

	zeroPad := 0
	if zeroActive {
		zeroPad = left
		left = 0
	}

	return core.Compose(sink, left, prefix, zeroPad, digits, 0, nil, right)
}
