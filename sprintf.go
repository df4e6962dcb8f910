package format

import "github.com/nejohnson/format/internal/core"

// byteSink is a Sink backed by a growable in-memory buffer, the engine's
// own equivalent of the teacher's Sprintf-internal buffer: Format itself
// never owns memory, so anything that wants a string result supplies one
// of these as its sink.
type byteSink struct {
	buf []byte
}

func (s *byteSink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

// Sprintf formats template with args and returns the result as a string.
// It returns ok=false if Format reported BadFormat; the partial bytes
// already produced (everything up to the failure, per spec.md §7's
// no-rollback policy) are returned alongside rather than discarded,
// mirroring a caller that "should not append a terminator" on failure
// but may still want to inspect what was emitted.
func Sprintf(template string, args ...interface{}) (string, bool) {
	s := &byteSink{}
	n := Format(s, template, args...)
	return string(s.buf), n != core.BadFormat
}

// Fprintf formats template with args, writing the result to sink, and
// returns the byte count or core.BadFormat.
func Fprintf(sink core.Sink, template string, args ...interface{}) int {
	return Format(sink, template, args...)
}
