package utils

import "strings"

// Accessor tries to read one candidate value. ok=false means "not present,
// try the next one".
type Accessor[T any] func() (T, bool)

// FirstOf walks the accessors in order and returns the first present value,
// or def when none is present. Precedence is the order of the arguments.
func FirstOf[T any](def T, accessors ...Accessor[T]) T {
	for _, get := range accessors {
		if get == nil {
			continue
		}
		if v, ok := get(); ok {
			return v
		}
	}
	return def
}

// NonEmpty reads a string pointer, treating nil and blank strings as absent.
func NonEmpty(s *string) Accessor[string] {
	return func() (string, bool) {
		if s == nil || strings.TrimSpace(*s) == "" {
			return "", false
		}
		return *s, true
	}
}

// NonZero reads a float pointer, treating nil and 0 as absent, the same way
// `a || b` skips a zero amount.
func NonZero(f *float64) Accessor[float64] {
	return func() (float64, bool) {
		if f == nil || *f == 0 {
			return 0, false
		}
		return *f, true
	}
}

// LastN returns at most the last n runes of s.
func LastN(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
