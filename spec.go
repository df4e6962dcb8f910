package format

// flag is a bitset over the per-conversion modifier characters.
type flag uint8

const (
	flagSpace flag = 1 << iota
	flagPlus
	flagMinus
	flagHash
	flagZero
	flagBang  // '!': force alt-form prefix even for zero; engineering/SI for floats
	flagCaret // '^': center the field within width
	flagSigned
)

func (f flag) has(bit flag) bool { return f&bit != 0 }

// lengthQualifier selects the width of integer argument a conversion reads.
type lengthQualifier int

const (
	lenNone lengthQualifier = iota
	lenHH                   // "hh"
	lenH                    // "h"
	lenL                    // "l"
	lenLL                   // "ll"
	lenJ                    // "j" (intmax_t)
	lenZ                    // "z" (size_t)
	lenT                    // "t" (ptrdiff_t)
	lenBigL                 // "L"; valid only as a no-op on integers, an error on FP
)

// groupEntry is one (separator, run-length, terminal) triple parsed out of
// a grouping modifier's "[...]" content, in the left-to-right order the
// triples appear in the template text.
type groupEntry struct {
	sep      byte
	run      int
	terminal bool // a leading '-' on this entry: do not repeat past it
}

// formatSpec is the per-conversion working record described in spec.md §3.
// One is created at each '%' and discarded once the conversion has been
// handled; nothing in it is retained between calls to Format.
type formatSpec struct {
	flags flag

	width    int
	hasWidth bool

	precision int // -1 means absent

	base int // 0 means "default for the verb"

	length lengthQualifier

	repChar byte // %C's inline character

	grouping    string // raw "[...]" interior, parsed lazily by intconv.go
	hasGrouping bool

	fixedIntBits, fixedFracBits int
	hasFixed                    bool
}

func newFormatSpec() *formatSpec {
	return &formatSpec{precision: -1}
}
