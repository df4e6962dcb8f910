package core

// ByteSource is a tagged cursor over one of two address spaces: the
// caller's normal memory, or an alternate space (e.g. ROM on a Harvard
// architecture host) reached only through a host-supplied accessor.
// Converters read through ByteSource without caring which variant they
// were handed.
type ByteSource interface {
	// Next returns the next byte and advances the cursor, or ok=false at
	// end of input.
	Next() (b byte, ok bool)
}

// NormalSource reads sequential bytes out of a plain Go string held in the
// process's regular address space.
type NormalSource struct {
	s   string
	pos int
}

// NewNormalSource wraps s for sequential byte access.
func NewNormalSource(s string) *NormalSource {
	return &NormalSource{s: s}
}

// Next implements ByteSource.
func (n *NormalSource) Next() (byte, bool) {
	if n.pos >= len(n.s) {
		return 0, false
	}
	b := n.s[n.pos]
	n.pos++
	return b, true
}

// AltReader reads one byte at the given offset from a host-chosen base in
// the alternate address space, reporting ok=false past the end of the
// accessible range.
type AltReader func(offset int) (b byte, ok bool)

// AltSource reads sequential bytes through a host-supplied AltReader,
// advancing its own offset by one on every successful read.
type AltSource struct {
	read   AltReader
	offset int
}

// NewAltSource wraps read for sequential access starting at offset 0.
func NewAltSource(read AltReader) *AltSource {
	return &AltSource{read: read}
}

// Next implements ByteSource.
func (a *AltSource) Next() (byte, bool) {
	b, ok := a.read(a.offset)
	if !ok {
		return 0, false
	}
	a.offset++
	return b, true
}
