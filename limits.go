package format

// Limits for the full tier (spec.md §6).
const (
	maxWidth = 500
	maxPrec  = 500
	minBase  = 2
	maxBase  = 36

	// scratchSize bounds the digit-expansion buffer: 64 bits in base 2
	// is 64 digits, plus room for a grouping separator roughly every
	// third digit and a multi-byte prefix.
	scratchSize = 160
)

const defaultFixedIntBits = 16
const defaultFixedFracBits = 16
