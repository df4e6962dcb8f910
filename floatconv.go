package format

import (
	"github.com/nejohnson/format/internal/core"
)

// siPrefixes is the SI/engineering suffix table, centered on the empty
// slot (index 8 ⇒ offset 0, i.e. no scaling).
var siPrefixes = [...]string{"y", "z", "a", "f", "p", "n", "u", "m", "", "k", "M", "G", "T", "P", "E", "Z", "Y"}

const siCenter = 8

func zerosOf(n int) []byte {
	if n <= 0 {
		return nil
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return b
}

// digitsOf returns v's decimal digits left-padded with zeros to exactly
// width characters.
func digitsOf(v uint64, width int) []byte {
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return buf
}

// expandMantissaDigits reads mantissa at its own native width — at most
// sigFig real digits — and pads the remainder out to keep characters
// with trailing zeros, rather than asking digitsOf for keep digits
// directly. Two situations need this: keep > sigFig (more digits
// requested than a double carries, e.g. "%.16f", where digitsOf(v,
// keep) would instead prepend a spurious leading zero and shift every
// digit one place); and keep == 0 with mantissa != 0, the carry-past-a
// -zero-digit-budget case roundMantissa signals by returning a nonzero
// mantissa despite keep asking for none.
func expandMantissaDigits(mantissa uint64, keep int) []byte {
	digitCount := keep
	if digitCount > sigFig {
		digitCount = sigFig
	}
	if digitCount == 0 && mantissa != 0 {
		digitCount = sigFig
	}
	kept := digitsOf(mantissa, digitCount)
	if keep > digitCount {
		kept = append(kept, zerosOf(keep-digitCount)...)
	}
	return kept
}

// roundMantissa rounds a sigFig-digit decimal mantissa down to keep
// significant digits, half away from zero, returning the rounded value
// and the exponent after accounting for any carry out of the leading
// digit (spec.md's rounding step, §4.6). The value has keep digits,
// except that keep >= sigFig returns the mantissa unchanged (sigFig
// digits) and a carry with keep == 0 returns the sigFig-digit 10^(sigFig-1).
func roundMantissa(mantissa uint64, exponent, keep int) (uint64, int) {
	if keep >= sigFig {
		return mantissa, exponent
	}
	if keep < 0 {
		keep = 0
	}
	drop := sigFig - keep
	divisor := pow10u64(drop)
	rounded := (mantissa + divisor/2) / divisor

	if keep == 0 {
		if rounded > 0 {
			// Carry past a zero-digit budget: the "1" the carry
			// produced has nowhere to live in a zero-width keep, so
			// hand back a full-scale mantissa expandMantissaDigits
			// knows how to read at its native width instead.
			return pow10u64(sigFig - 1), exponent + 1
		}
		return 0, exponent
	}

	limit := pow10u64(keep)
	if rounded >= limit {
		rounded /= 10
		exponent++
	}
	return rounded, exponent
}

// shiftForEngineering returns the 0..2 digit shift that moves exponent
// down to the nearest multiple of 3, and the corresponding SI table
// index (offset from center, 0 meaning no scaling).
func shiftForEngineering(exponent int) (shift, siIndex int) {
	shift = ((exponent % 3) + 3) % 3
	siIndex = (exponent - shift) / 3
	return
}

func siSuffixFor(siIndex int) string {
	tableIdx := siIndex + siCenter
	if tableIdx < 0 || tableIdx >= len(siPrefixes) {
		return ""
	}
	return siPrefixes[tableIdx]
}

func computeFloatSign(fs *formatSpec, negative bool) []byte {
	switch {
	case negative:
		return []byte{'-'}
	case fs.flags.has(flagPlus):
		return []byte{'+'}
	case fs.flags.has(flagSpace):
		return []byte{' '}
	}
	return nil
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// formatInfNaN renders the three-letter spelling for a non-finite value,
// case-matched to the verb, signed and padded the same as a finite body
// (spec.md §4.6: "stop" after this step — no body/exponent follows).
func formatInfNaN(sink core.Sink, fs *formatSpec, dec radixDecoded, upper bool) int {
	word := "inf"
	if dec.isNaN() {
		word = "nan"
	}
	if upper {
		word = upperASCII(word)
	}

	prefix := computeFloatSign(fs, dec.sign != 0 && !dec.isNaN())
	body := append(append([]byte{}, prefix...), word...)

	width := 0
	if fs.hasWidth {
		width = fs.width
	}
	left, right := core.Pad(len(body), width, fs.flags.has(flagMinus), fs.flags.has(flagCaret))
	return core.Compose(sink, left, nil, 0, body, 0, nil, right)
}

// fracLayout builds the integer-part and fraction-part digit runs for an
// %f-shaped body given a rounded (mantissa, exponent) pair already
// reduced to keep significant digits, and the fraction precision to
// display. trim suppresses trailing fractional zeros (used by %g's
// default, non-HASH rendering).
func fracLayout(mantissa uint64, exponent, keep, precision int, trim, hash bool) (intPart, fracPart []byte, showPoint bool) {
	kept := expandMantissaDigits(mantissa, keep)
	rawIntDigits := exponent + 1

	if rawIntDigits <= 0 {
		intPart = []byte{'0'}
	} else {
		take := rawIntDigits
		if take > len(kept) {
			take = len(kept)
		}
		intPart = append(append([]byte{}, kept[:take]...), zerosOf(rawIntDigits-take)...)
		kept = kept[take:]
	}

	if rawIntDigits <= 0 {
		lead := 0
		if exponent < -1 {
			lead = -1 - exponent
			if lead > precision {
				lead = precision
			}
		}
		fracPart = append(fracPart, zerosOf(lead)...)
		remain := precision - lead
		if remain < 0 {
			remain = 0
		}
		take := remain
		if take > len(kept) {
			take = len(kept)
		}
		fracPart = append(fracPart, kept[:take]...)
		fracPart = append(fracPart, zerosOf(precision-len(fracPart))...)
	} else {
		take := precision
		if take > len(kept) {
			take = len(kept)
		}
		fracPart = append(fracPart, kept[:take]...)
		fracPart = append(fracPart, zerosOf(precision-len(fracPart))...)
	}

	if trim {
		end := len(fracPart)
		for end > 0 && fracPart[end-1] == '0' {
			end--
		}
		fracPart = fracPart[:end]
	}

	showPoint = len(fracPart) > 0 || hash
	return
}

func composeFloatBody(sink core.Sink, fs *formatSpec, prefix, body, trailing []byte) int {
	width := 0
	if fs.hasWidth {
		width = fs.width
	}
	contentLen := len(prefix) + len(body) + len(trailing)
	zeroActive := fs.flags.has(flagZero) && !fs.flags.has(flagMinus) && !fs.flags.has(flagCaret)
	left, right := core.Pad(contentLen, width, fs.flags.has(flagMinus), fs.flags.has(flagCaret))
	zeroPad := 0
	if zeroActive {
		zeroPad = left
		left = 0
	}
	return core.Compose(sink, left, prefix, zeroPad, body, 0, trailing, right)
}

// formatF implements the %f/%F layout, including the BANG (engineering
// SI-prefix) variant.
func formatF(sink core.Sink, fs *formatSpec, dec radixDecoded, upper, trim bool) int {
	precision := fs.precision
	if precision < 0 {
		precision = 6
	}

	engineering := fs.flags.has(flagBang) && !dec.isZero()

	layoutExp := dec.exponent
	siIdx := 0
	if engineering {
		layoutExp, siIdx = shiftForEngineering(dec.exponent)
	}

	keep := layoutExp + precision + 1
	mant, newExp := roundMantissa(dec.mantissa, dec.exponent, keep)

	if engineering {
		if newExp != dec.exponent {
			layoutExp, siIdx = shiftForEngineering(newExp)
		}
	} else {
		layoutExp = newExp
	}

	intPart, fracPart, showPoint := fracLayout(mant, layoutExp, keep, precision, trim, fs.flags.has(flagHash))

	var body []byte
	body = append(body, intPart...)
	if showPoint {
		body = append(body, '.')
		body = append(body, fracPart...)
	}
	if upper {
		body = []byte(upperASCII(string(body)))
	}

	var trailing []byte
	if engineering {
		if suffix := siSuffixFor(siIdx); suffix != "" {
			trailing = []byte(suffix)
		}
	}

	prefix := computeFloatSign(fs, dec.sign != 0)
	return composeFloatBody(sink, fs, prefix, body, trailing)
}

// itoaMin renders v in decimal with at least minDigits digits.
func itoaMin(v, minDigits int) string {
	digits := 1
	for t := v; t >= 10; t /= 10 {
		digits++
	}
	if digits < minDigits {
		digits = minDigits
	}
	return string(digitsOf(uint64(v), digits))
}

// formatE implements the %e/%E layout, including BANG engineering mode
// (a multiple-of-3 exponent with 1-3 leading digits). trim suppresses
// trailing fraction zeros for %g's benefit.
func formatE(sink core.Sink, fs *formatSpec, dec radixDecoded, upper, trim bool) int {
	precision := fs.precision
	if precision < 0 {
		precision = 6
	}

	engineering := fs.flags.has(flagBang) && !dec.isZero()
	leadCount := 1
	if engineering {
		shift, _ := shiftForEngineering(dec.exponent)
		leadCount = shift + 1
	}

	keep := leadCount + precision
	mant, exponent := roundMantissa(dec.mantissa, dec.exponent, keep)
	if engineering {
		shift, _ := shiftForEngineering(exponent)
		if shift+1 != leadCount {
			leadCount = shift + 1
			keep = leadCount + precision
			mant, exponent = roundMantissa(dec.mantissa, dec.exponent, keep)
		}
	}

	kept := expandMantissaDigits(mant, keep)
	lead := kept[:leadCount]
	frac := kept[leadCount:]
	if trim {
		end := len(frac)
		for end > 0 && frac[end-1] == '0' {
			end--
		}
		frac = frac[:end]
	}

	showPoint := len(frac) > 0 || fs.flags.has(flagHash)

	var body []byte
	body = append(body, lead...)
	if showPoint {
		body = append(body, '.')
		body = append(body, frac...)
	}
	if upper {
		body = []byte(upperASCII(string(body)))
	}

	expVal := exponent - (leadCount - 1)
	eLetter := byte('e')
	if upper {
		eLetter = 'E'
	}
	expSign := byte('+')
	if expVal < 0 {
		expSign = '-'
		expVal = -expVal
	}
	expDigits := []byte(itoaMin(expVal, 2))
	trailing := append([]byte{eLetter, expSign}, expDigits...)

	prefix := computeFloatSign(fs, dec.sign != 0)
	return composeFloatBody(sink, fs, prefix, body, trailing)
}

// formatFloat is the entry point for f/F/e/E/g/G: it reads the next
// argument as a float64 (widening float32), rejects the 'L' length
// qualifier (spec.md treats "long double" as meaningless without a true
// extended type, and calls it out as an FP error case), decodes the
// value, and dispatches to the layout matching verb.
func formatFloat(sink core.Sink, fs *formatSpec, args *core.Args, verb byte) int {
	if fs.length == lenBigL {
		return core.BadFormat
	}

	v, _ := args.Next()
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	}

	dec := decodeFloat64(f)
	upper := verb >= 'A' && verb <= 'Z'

	if dec.isSpecial() {
		return formatInfNaN(sink, fs, dec, upper)
	}

	switch verb {
	case 'f', 'F':
		return formatF(sink, fs, dec, upper, false)
	case 'e', 'E':
		return formatE(sink, fs, dec, upper, false)
	case 'g', 'G':
		return formatG(sink, fs, dec, upper)
	}
	return core.BadFormat
}

// formatG implements %g/%G: precision 0 is renormalized to 1; the e/f
// choice is made against the exponent after rounding to the requested
// significant-digit count, so a value that rounds up across a power of
// ten (9.996 -> 10.00) picks the same layout a human reading the rounded
// result would expect (spec.md §4.6).
func formatG(sink core.Sink, fs *formatSpec, dec radixDecoded, upper bool) int {
	p := fs.precision
	if p < 0 {
		p = 6
	}
	if p == 0 {
		p = 1
	}

	mant, exponent := roundMantissa(dec.mantissa, dec.exponent, p)
	// Rescale back to a full sigFig-digit mantissa (trailing zeros past
	// the p significant digits already decided) so formatF/formatE's
	// own rounding step, which expects that scale, is a no-op here.
	rounded := radixDecoded{sign: dec.sign, mantissa: mant * pow10u64(sigFig-p), exponent: exponent}
	trim := !fs.flags.has(flagHash)

	if exponent < -4 || exponent >= p {
		sub := *fs
		sub.precision = p - 1
		return formatE(sink, &sub, rounded, upper, trim)
	}

	fracPrecision := p - 1 - exponent
	if fracPrecision < 0 {
		fracPrecision = 0
	}
	sub := *fs
	sub.precision = fracPrecision
	return formatF(sink, &sub, rounded, upper, trim)
}
