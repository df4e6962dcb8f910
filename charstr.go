package format

import "github.com/nejohnson/format/internal/core"

// formatChar implements %c: the argument is read as an int, truncated to
// a byte, and repeated max(1, precision) times (spec.md §4.3 — precision
// acts as a repeat count here, not a truncation length).
func formatChar(sink core.Sink, fs *formatSpec, args *core.Args) int {
	v, _ := args.Next()
	var b byte
	if iv, ok := argToInt64(v); ok {
		b = byte(iv)
	} else if uv, ok := argToUint64(v); ok {
		b = byte(uv)
	}
	return formatRepeatedByte(sink, fs, b)
}

// formatRepChar implements %C: same as %c but the byte was already
// captured from the template at parse time as fs.repChar.
func formatRepChar(sink core.Sink, fs *formatSpec) int {
	return formatRepeatedByte(sink, fs, fs.repChar)
}

func formatRepeatedByte(sink core.Sink, fs *formatSpec, b byte) int {
	count := 1
	if fs.precision > 0 {
		count = fs.precision
	}

	width := 0
	if fs.hasWidth {
		width = fs.width
	}
	left, right := core.Pad(count, width, fs.flags.has(flagMinus), fs.flags.has(flagCaret))

	body := make([]byte, count)
	for i := range body {
		body[i] = b
	}

	return core.Compose(sink, left, nil, 0, body, 0, nil, right)
}

var nullString = []byte("(null)")

// formatString implements %s. A nil string/[]byte argument renders as the
// literal "(null)" in the full tier. If HASH is set the argument must be
// an AltBytes, whose content is drained (via its AltReader) before
// precision truncation and padding are applied the same as for a normal
// string.
func formatString(sink core.Sink, fs *formatSpec, args *core.Args) int {
	v, _ := args.Next()

	var body []byte
	isNull := true

	if fs.flags.has(flagHash) {
		if ab, ok := v.(AltBytes); ok && ab.Read != nil {
			body = []byte(drainAlt(ab.Read))
			isNull = false
		}
	} else {
		switch x := v.(type) {
		case string:
			body = []byte(x)
			isNull = false
		case []byte:
			if x != nil {
				body = x
				isNull = false
			}
		}
	}

	if isNull {
		body = nullString
	} else if fs.precision >= 0 && fs.precision < len(body) {
		body = body[:fs.precision]
	}

	width := 0
	if fs.hasWidth {
		width = fs.width
	}
	left, right := core.Pad(len(body), width, fs.flags.has(flagMinus), fs.flags.has(flagCaret))

	return core.Compose(sink, left, nil, 0, body, 0, nil, right)
}
