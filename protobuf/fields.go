package protobuf

import (
	"github.com/quickwritereader/protopack/schema"
)

// flatField is one wire field of a record frame after flattening.
type flatField struct {
	number int
	name   string
	schema schema.Schema
}

// flatFields assigns wire field numbers to record fields in declaration
// order, starting at base. A field that inlines into several wire fields
// consumes one number per inlined field; every other field occupies exactly
// one number.
func flatFields(fields *schema.OrderedMap[schema.Schema], base int) []flatField {
	out := make([]flatField, 0, fields.Len())
	next := base
	for name, sub := range fields.ItemsIter() {
		if inlined := nestedFields(name, sub, next); len(inlined) > 0 {
			out = append(out, inlined...)
			next += len(inlined)
			continue
		}
		out = append(out, flatField{number: next, name: name, schema: sub})
		next++
	}
	return out
}

// nestedFields probes a transform chain for fields to inline, carrying the
// transform down onto each inlined field. A terminal that stands for a
// single wire field (every non-transform schema) reports nothing, so the
// caller assigns the field one number of its own.
func nestedFields(name string, s schema.Schema, base int) []flatField {
	t, ok := s.(*schema.TransformSchema)
	if !ok {
		return nil
	}
	inlined := nestedFields(name, t.Inner, base)
	for i := range inlined {
		inlined[i].schema = schema.STransform(inlined[i].schema, t.Ap, t.Unap)
	}
	return inlined
}

func lookupField(fields []flatField, number int) (flatField, bool) {
	for _, f := range fields {
		if f.number == number {
			return f, true
		}
	}
	return flatField{}, false
}

func unwrapLazy(s schema.Schema) schema.Schema {
	for {
		l, ok := s.(*schema.LazySchema)
		if !ok {
			return s
		}
		s = l.Resolve()
	}
}

// canBePacked reports whether sequence elements of this schema may share a
// single length-delimited frame with no intervening tags.
func canBePacked(s schema.Schema) bool {
	switch sc := unwrapLazy(s).(type) {
	case *schema.PrimitiveSchema:
		return packableKind(sc.Type.Kind)
	case *schema.SequenceSchema:
		return canBePacked(sc.Element)
	case *schema.TransformSchema:
		return canBePacked(sc.Inner)
	}
	return false
}

// packableKind excludes char even though it is a scalar: chars travel
// length-delimited, and a packed frame of length-delimited payloads cannot
// be decoded.
func packableKind(k schema.Kind) bool {
	switch k {
	case schema.KindBool, schema.KindShort, schema.KindInt, schema.KindLong,
		schema.KindFloat32, schema.KindFloat64, schema.KindDayOfWeek,
		schema.KindMonth, schema.KindYear, schema.KindZoneOffset,
		schema.KindDuration:
		return true
	}
	return false
}
