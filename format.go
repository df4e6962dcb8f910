// Package format is a reentrant, allocation-free printf-style text
// formatting engine. It mirrors the full C99 conversion set plus a
// handful of extensions (grouping, centering, custom bases, ROM pointers,
// engineering/SI floating-point notation, and a fixed-point converter)
// behind a single entry point, Format, that streams its output to a
// caller-supplied Sink instead of building a string in memory.
//
// Format allocates per conversion: digit, padding-body and prefix slices,
// and math/big values when decoding a floating-point argument. There is
// no shared state between calls, so concurrent callers on distinct sinks
// never interfere with one another.
package format

import (
	"reflect"

	"github.com/nejohnson/format/internal/core"
)

// pointerHexDigits is the hex-digit width %p uses: 2 per byte of a
// 64-bit address, the common target for this engine's callers.
const pointerHexDigits = 16

// Format scans template for literal runs and '%' conversions, writing the
// resulting bytes to sink in order, and returns the total byte count or
// core.BadFormat on any parse or sink failure. args supplies the typed
// values the template's conversions consume, read strictly in order.
func Format(sink core.Sink, template string, args ...interface{}) int {
	a := core.NewArgs(args)
	total := 0

	for {
		n, next, cont, ok := scanOnce(sink, template, a, total)
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

// scanOnce runs the scan loop over one template string until it either
// finishes the string (cont=false) or hits a continuation (cont=true,
// next holds the new template). ok is false on any parse/sink failure.
// emitted is the byte count already produced by earlier templates of the
// same call, so %n reports the running total across continuations.
func scanOnce(sink core.Sink, template string, args *core.Args, emitted int) (n int, next string, cont bool, ok bool) {
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

		pos++ // consume '%'
		if pos < len(template) && template[pos] == '%' {
			if !core.Emit(sink, []byte{'%'}) {
				return 0, "", false, false
			}
			total++
			pos++
			continue
		}

		fs := newFormatSpec()
		var perr bool
		pos, perr = parseConversion(template, pos, fs, args)
		if perr {
			return 0, "", false, false
		}

		if pos >= len(template) {
			v, okArg := args.Next()
			if !okArg {
				return 0, "", false, false
			}
			newTemplate, aerr := resolveContinuation(v, fs.flags.has(flagHash))
			if aerr {
				return 0, "", false, false
			}
			return total, newTemplate, true, true
		}

		verb := template[pos]
		pos++

		if verb == 'C' {
			if pos >= len(template) {
				return 0, "", false, false
			}
			fs.repChar = template[pos]
			pos++
		}

		if verb == 'n' {
			formatCount(args, emitted+total)
			continue
		}

		written := dispatchConversion(sink, fs, args, verb)
		if written == core.BadFormat {
			return 0, "", false, false
		}
		total += written
	}

	return total, "", false, true
}

func resolveContinuation(v interface{}, alt bool) (string, bool) {
	if ab, isAlt := v.(AltBytes); isAlt {
		if ab.Read == nil {
			return "", true
		}
		return drainAlt(ab.Read), false
	}
	if alt {
		return "", true
	}
	if s, isStr := v.(string); isStr {
		return s, false
	}
	return "", true
}

// parseConversion parses everything between '%' and the conversion
// letter: flags, width, precision, base, grouping, fixed-point widths,
// and length qualifier (spec.md §4.1 steps 3-9). It returns the new scan
// position and whether a parse error occurred.
func parseConversion(t string, pos int, fs *formatSpec, args *core.Args) (int, bool) {
	// Flags.
	for pos < len(t) {
		switch t[pos] {
		case ' ':
			fs.flags |= flagSpace
		case '+':
			fs.flags |= flagPlus
		case '-':
			fs.flags |= flagMinus
		case '#':
			fs.flags |= flagHash
		case '0':
			fs.flags |= flagZero
		case '!':
			fs.flags |= flagBang
		case '^':
			fs.flags |= flagCaret
		default:
			goto widthStage
		}
		pos++
	}

widthStage:
	if pos < len(t) && t[pos] == '*' {
		pos++
		v, _ := args.Next()
		iv, _ := argToInt64(v)
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
			fs.width = atoiRange(t[start:pos])
			fs.hasWidth = true
		}
	}
	if fs.hasWidth && (fs.width < 0 || fs.width > maxWidth) {
		return pos, true
	}

	// Precision.
	if pos < len(t) && t[pos] == '.' {
		pos++
		if pos < len(t) && t[pos] == '*' {
			pos++
			v, _ := args.Next()
			iv, _ := argToInt64(v)
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
			fs.precision = atoiRange(t[start:pos])
		}
		if fs.precision > maxPrec {
			return pos, true
		}
	}

	// Base modifier.
	if pos < len(t) && t[pos] == ':' {
		pos++
		var base int
		if pos < len(t) && t[pos] == '*' {
			pos++
			v, _ := args.Next()
			iv, _ := argToInt64(v)
			base = int(iv)
			if base == 0 || base == 1 {
				base = 0
			}
		} else {
			start := pos
			for pos < len(t) && t[pos] >= '0' && t[pos] <= '9' {
				pos++
			}
			base = atoiRange(t[start:pos])
		}
		if base != 0 && (base < minBase || base > maxBase) {
			return pos, true
		}
		fs.base = base
	}

	// Grouping modifier.
	if pos < len(t) && t[pos] == '[' {
		pos++
		start := pos
		for pos < len(t) && t[pos] != ']' {
			pos++
		}
		if pos >= len(t) {
			return pos, true
		}
		fs.grouping = t[start:pos]
		fs.hasGrouping = true
		pos++ // consume ']'
	}

	// Fixed-point modifier.
	if pos < len(t) && t[pos] == '{' {
		pos++
		wStart := pos
		for pos < len(t) && t[pos] >= '0' && t[pos] <= '9' {
			pos++
		}
		wInt := defaultFixedIntBits
		if pos > wStart {
			wInt = atoiRange(t[wStart:pos])
		}
		wFrac := defaultFixedFracBits
		if pos < len(t) && t[pos] == '.' {
			pos++
			fStart := pos
			for pos < len(t) && t[pos] >= '0' && t[pos] <= '9' {
				pos++
			}
			if pos > fStart {
				wFrac = atoiRange(t[fStart:pos])
			}
		}
		if pos >= len(t) || t[pos] != '}' {
			return pos, true
		}
		pos++
		fs.fixedIntBits = wInt
		fs.fixedFracBits = wFrac
		fs.hasFixed = true
	}

	// Length qualifier.
	if pos < len(t) {
		switch t[pos] {
		case 'h':
			pos++
			if pos < len(t) && t[pos] == 'h' {
				fs.length = lenHH
				pos++
			} else {
				fs.length = lenH
			}
		case 'l':
			pos++
			if pos < len(t) && t[pos] == 'l' {
				fs.length = lenLL
				pos++
			} else {
				fs.length = lenL
			}
		case 'j':
			fs.length = lenJ
			pos++
		case 'z':
			fs.length = lenZ
			pos++
		case 't':
			fs.length = lenT
			pos++
		case 'L':
			fs.length = lenBigL
			pos++
		}
	}

	return pos, false
}

// atoiRange parses a digit run without range-checking; overly long runs
// saturate rather than overflow, and the caller compares against
// maxWidth/maxPrec/maxBase afterward.
func atoiRange(digits string) int {
	v := 0
	for i := 0; i < len(digits); i++ {
		v = v*10 + int(digits[i]-'0')
		if v > 1<<30 {
			return 1 << 30
		}
	}
	return v
}

// dispatchConversion routes a parsed FormatSpec and its trailing verb
// letter to the matching converter (spec.md §4.1 step 11).
func dispatchConversion(sink core.Sink, fs *formatSpec, args *core.Args, verb byte) int {
	switch verb {
	case 'd', 'i':
		return formatInteger(sink, fs, args, intParams{base: 10, signed: true, baseOverridable: verb == 'i'})
	case 'I':
		return formatInteger(sink, fs, args, intParams{base: 10, signed: true, baseOverridable: true})
	case 'u':
		return formatInteger(sink, fs, args, intParams{base: 10, signed: false, baseOverridable: true})
	case 'U':
		return formatInteger(sink, fs, args, intParams{base: 10, signed: false, baseOverridable: true})
	case 'o':
		return formatInteger(sink, fs, args, intParams{base: 8, signed: false})
	case 'b':
		return formatInteger(sink, fs, args, intParams{base: 2, signed: false})
	case 'x':
		return formatInteger(sink, fs, args, intParams{base: 16, signed: false})
	case 'X':
		return formatInteger(sink, fs, args, intParams{base: 16, signed: false, upper: true})
	case 'c':
		return formatChar(sink, fs, args)
	case 'C':
		return formatRepChar(sink, fs)
	case 's':
		return formatString(sink, fs, args)
	case 'p':
		return formatPointer(sink, fs, args)
	case 'e', 'E', 'f', 'F', 'g', 'G':
		return formatFloat(sink, fs, args, verb)
	case 'k':
		return formatFixedPoint(sink, fs, args)
	default:
		return core.BadFormat
	}
}

// formatPointer implements %p: rewritten internally as "#!N.NX" (spec.md
// §4.1 step 11) — HASH and BANG set, width and precision both the
// platform's hex-digit pointer width, dispatched as an unsigned hex
// integer conversion.
func formatPointer(sink core.Sink, fs *formatSpec, args *core.Args) int {
	v, _ := args.Next()
	addr := pointerAddress(v)

	pfs := *fs
	pfs.flags |= flagHash | flagBang
	pfs.width = pointerHexDigits
	pfs.hasWidth = true
	pfs.precision = pointerHexDigits

	single := core.NewArgs([]interface{}{addr})
	return formatInteger(sink, &pfs, single, intParams{base: 16, signed: false, upper: true})
}

func pointerAddress(v interface{}) uint64 {
	if v == nil {
		return 0
	}
	if u, ok := argToUint64(v); ok {
		return u
	}
	if s, ok := argToInt64(v); ok {
		return uint64(s)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Chan, reflect.Map, reflect.Func, reflect.Slice:
		return uint64(rv.Pointer())
	}
	return 0
}

// formatCount implements %n: writes the caller's running emitted-byte
// count back through a pointer argument and itself emits nothing.
func formatCount(args *core.Args, countSoFar int) {
	v, _ := args.Next()
	switch p := v.(type) {
	case *int:
		*p = countSoFar
	case *int32:
		*p = int32(countSoFar)
	case *int64:
		*p = int64(countSoFar)
	case *uint:
		*p = uint(countSoFar)
	}
}
