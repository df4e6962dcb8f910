// Package format implements a reentrant printf-style text formatting
// engine, built for hosts where pulling in a full C runtime formatter is
// impractical: embedded targets, kernels, and other environments that
// still want ANSI C99 printf semantics (plus a few extensions). The
// engine keeps no state between calls, but it does allocate small
// per-conversion buffers on the Go heap.
//
// # Conversions
//
// The full tier supports every C99 verb (d i o u x X c s p n e E f F g G)
// plus extensions: b for binary, C for a template-supplied repeated
// character, I/U for explicitly base-overridable signed/unsigned
// integers, and k for a fixed-point-to-float converter. Flags are
// space, +, -, #, 0, ! (engineering/forced-prefix), and ^ (centering).
// Width and precision accept either a literal digit run or '*' to pull
// the value from the argument list. A grouping modifier "[...]" inserts
// digit separators; a base modifier ":n" overrides the numeric base for
// i/I/u/U; a fixed-point modifier "{w_int.w_frac}" configures %k.
//
// A '%' with nothing meaningful after it (a bare terminator) triggers a
// continuation: the next argument supplies a new template and scanning
// resumes there, letting long templates be split across multiple
// string constants or read from an alternate address space via AltBytes.
//
// # Errors
//
// Format returns core.BadFormat (-1) on any parse error or sink failure.
// There is no richer error value: the engine is built to run in contexts
// where allocating one isn't an option.
//
// # Tiers
//
// This package is the full tier. See the tiny and micro subpackages for
// the two reduced tiers described in spec: tiny keeps the micro verb set
// plus template continuation; micro drops the Sink abstraction entirely
// in favor of a single put_byte callback, for hosts too constrained even
// for an interface call per byte.
package format
