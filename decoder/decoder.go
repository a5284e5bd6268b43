// Package decoder provides a small parser-combinator layer over a byte
// cursor. A Decoder is a pure function from a buffer to a value plus the
// leftover bytes; composition threads the cursor and a single error channel.
package decoder

import "errors"

// Decoder parses a prefix of b and returns the unconsumed remainder.
type Decoder[A any] func(b []byte) (rest []byte, v A, err error)

var errEndOfBytes = errors.New("Unexpected end of bytes")

// Succeed returns a without consuming input.
func Succeed[A any](a A) Decoder[A] {
	return func(b []byte) ([]byte, A, error) {
		return b, a, nil
	}
}

// Fail always fails with msg.
func Fail[A any](msg string) Decoder[A] {
	err := errors.New(msg)
	return func(b []byte) ([]byte, A, error) {
		var zero A
		return nil, zero, err
	}
}

func Map[A, B any](d Decoder[A], f func(A) B) Decoder[B] {
	return func(b []byte) ([]byte, B, error) {
		rest, a, err := d(b)
		if err != nil {
			var zero B
			return nil, zero, err
		}
		return rest, f(a), nil
	}
}

// MapErr is Map with a fallible conversion; the conversion's error aborts
// the parse verbatim.
func MapErr[A, B any](d Decoder[A], f func(A) (B, error)) Decoder[B] {
	return func(b []byte) ([]byte, B, error) {
		var zero B
		rest, a, err := d(b)
		if err != nil {
			return nil, zero, err
		}
		v, err := f(a)
		if err != nil {
			return nil, zero, err
		}
		return rest, v, nil
	}
}

// FlatMap sequences d with the decoder chosen from its result. An empty
// incoming buffer fails before d runs.
func FlatMap[A, B any](d Decoder[A], f func(A) Decoder[B]) Decoder[B] {
	return func(b []byte) ([]byte, B, error) {
		if len(b) == 0 {
			var zero B
			return nil, zero, errEndOfBytes
		}
		rest, a, err := d(b)
		if err != nil {
			var zero B
			return nil, zero, err
		}
		return f(a)(rest)
	}
}

// Take runs d on the first n bytes only and re-appends the suffix onto d's
// leftover, so a bounded sub-parse resumes the outer cursor afterwards.
func (d Decoder[A]) Take(n int) Decoder[A] {
	return func(b []byte) ([]byte, A, error) {
		var zero A
		if n > len(b) {
			return nil, zero, errEndOfBytes
		}
		rest, v, err := d(b[:n])
		if err != nil {
			return nil, zero, err
		}
		if len(rest) == 0 {
			return b[n:], v, nil
		}
		out := make([]byte, 0, len(rest)+len(b)-n)
		out = append(out, rest...)
		out = append(out, b[n:]...)
		return out, v, nil
	}
}

// Loop runs d repeatedly until the buffer is exhausted.
func (d Decoder[A]) Loop() Decoder[[]A] {
	return func(b []byte) ([]byte, []A, error) {
		out := []A{}
		for len(b) > 0 {
			rest, v, err := d(b)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, v)
			b = rest
		}
		return b, out, nil
	}
}

// Bytes consumes the entire remaining buffer. Only meaningful inside a Take
// envelope.
var Bytes Decoder[[]byte] = func(b []byte) ([]byte, []byte, error) {
	out := make([]byte, len(b))
	copy(out, b)
	return b[:0], out, nil
}

// String consumes the entire remaining buffer as UTF-8. Only meaningful
// inside a Take envelope.
var String Decoder[string] = func(b []byte) ([]byte, string, error) {
	return b[:0], string(b), nil
}
