package schema

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
)

// Validating transforms: constraint combinators expressed as TransformSchema
// nodes, so they stay inside the schema algebra and every codec sharing the
// schema abstraction enforces them on both encode and decode.

type StringErrorDetails struct {
	Expected string
	Actual   string
}

func (e StringErrorDetails) Error() string {
	return fmt.Sprintf("'%s'!='%s'", e.Actual, e.Expected)
}

// RangeErrorDetails represents a structured range violation for any ordered type.
type RangeErrorDetails[T constraints.Ordered] struct {
	Min    *T
	Max    *T
	Actual T
}

func (r RangeErrorDetails[T]) Error() string {
	switch {
	case r.Min != nil && r.Max != nil:
		return fmt.Sprintf("%v not in [%v , %v]", r.Actual, *r.Min, *r.Max)
	case r.Min != nil:
		return fmt.Sprintf("%v < %v", r.Actual, *r.Min)
	case r.Max != nil:
		return fmt.Sprintf("%v > %v", r.Actual, *r.Max)
	default:
		return fmt.Sprintf("%v", r.Actual)
	}
}

// CheckRange validates val against optional min/max bounds.
// Returns a RangeErrorDetails if out of range, otherwise nil.
func CheckRange[T constraints.Ordered](val T, min *T, max *T) error {
	if (min != nil && val < *min) || (max != nil && val > *max) {
		return RangeErrorDetails[T]{Min: min, Max: max, Actual: val}
	}
	return nil
}

func stringCheck(expected string, test func(string) bool) Schema {
	check := func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		if !test(s) {
			return nil, StringErrorDetails{Actual: s, Expected: expected}
		}
		return s, nil
	}
	return STransform(SString, check, check)
}

// SStringMatch accepts only the exact expected string.
func SStringMatch(expected string) Schema {
	return stringCheck(expected, func(s string) bool { return s == expected })
}

func SStringPrefix(prefix string) Schema {
	return stringCheck(prefix+"*", func(s string) bool { return strings.HasPrefix(s, prefix) })
}

func SStringSuffix(suffix string) Schema {
	return stringCheck("*"+suffix, func(s string) bool { return strings.HasSuffix(s, suffix) })
}

func SStringPattern(expr string) Schema {
	re := regexp.MustCompile(expr)
	return stringCheck(expr, re.MatchString)
}

// SEmail validates RFC 5322 address syntax via net/mail.
func SEmail() Schema {
	return stringCheck("email", func(s string) bool {
		_, err := mail.ParseAddress(s)
		return err == nil
	})
}

// SURI validates absolute URI syntax via net/url.
func SURI() Schema {
	return stringCheck("uri", func(s string) bool {
		u, err := url.Parse(s)
		return err == nil && u.Scheme != ""
	})
}

// SLang validates BCP 47 language tags.
func SLang() Schema {
	return stringCheck("language tag", func(s string) bool {
		_, err := language.Parse(s)
		return err == nil
	})
}

func intRange(inner Schema, min, max *int64, widen func(any) (int64, bool)) Schema {
	check := func(v any) (any, error) {
		n, ok := widen(v)
		if !ok {
			return nil, fmt.Errorf("expected integer, got %T", v)
		}
		if err := CheckRange(n, min, max); err != nil {
			return nil, err
		}
		return v, nil
	}
	return STransform(inner, check, check)
}

// SLongRange bounds a long to [min, max]; nil bounds are open.
func SLongRange(min, max *int64) Schema {
	return intRange(SLong, min, max, func(v any) (int64, bool) {
		n, ok := v.(int64)
		return n, ok
	})
}

// SIntRange bounds an int to [min, max]; nil bounds are open.
func SIntRange(min, max *int64) Schema {
	return intRange(SInt, min, max, func(v any) (int64, bool) {
		n, ok := v.(int32)
		return int64(n), ok
	})
}

func PtrToInt64[T constraints.Integer](val T) *int64 {
	v := int64(val)
	return &v
}
