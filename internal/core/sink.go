// Package core holds the tier-agnostic plumbing shared by the full, tiny,
// and micro formatting engines: the sink contract, the byte emitter, the
// output composer, the padding calculator, the argument cursor, and the
// alternate-memory byte source. None of it parses a format template or
// knows about a specific conversion verb.
package core

// Sink receives runs of bytes produced by the formatting engine. A sink
// that cannot accept more bytes returns a non-nil error; the engine treats
// any error as non-retryable and aborts the call.
type Sink interface {
	Write(p []byte) (int, error)
}

// BadFormat is the sentinel returned by an engine entry point on any parse
// or sink failure.
const BadFormat = -1
