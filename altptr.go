package format

import "github.com/nejohnson/format/internal/core"

// AltBytes represents a value read from an alternate (non-default)
// address space — ROM on a Harvard-architecture host, for instance —
// reached only through a host-supplied accessor. Pass an AltBytes as the
// continuation argument after "%#" (in place of a plain string) or as the
// argument to "%#s" to have the engine read its bytes through Read rather
// than treating the argument as a Go string.
type AltBytes struct {
	Read core.AltReader
}

// drainAlt reads every byte an AltReader will yield into a Go string. The
// engine's alternate-memory support exists for host parity with a
// Harvard-architecture C target; Go has no such split address space, so
// once a byte source has been identified as alternate it is fully
// materialized here and the rest of the engine proceeds exactly as it
// would for a normal string.
func drainAlt(read core.AltReader) string {
	src := core.NewAltSource(read)
	var out []byte
	for {
		b, ok := src.Next()
		if !ok {
			break
		}
		out = append(out, b)
	}
	return string(out)
}
