// Package protobuf implements a schema-driven Protocol Buffers codec: a
// Schema value drives both serialization to the Protobuf wire format and
// parsing back, with field numbers assigned positionally from declaration
// order. There is no generated code and no .proto compiler involved.
package protobuf

import (
	"github.com/quickwritereader/protopack/schema"
	"github.com/quickwritereader/protopack/utils"
	"github.com/quickwritereader/protopack/wire"
)

var framePool = utils.NewBufferPool()

// Encode serializes v according to s. It never fails: a (schema, value)
// pair the dispatcher cannot match contributes an empty chunk, as does a
// transform whose conversion reports an error. A top-level value is emitted
// without an outer tag.
func Encode(s schema.Schema, v any) []byte {
	return appendValue(nil, 0, s, v)
}

// appendFrame wraps payload as a length-delimited field when fieldNumber is
// positive; a zero fieldNumber marks the top level, where neither tag nor
// length prefix is emitted.
func appendFrame(buf []byte, fieldNumber int, payload []byte) []byte {
	if fieldNumber > 0 {
		buf = wire.AppendKey(buf, fieldNumber, wire.LengthDelimited)
		buf = wire.AppendVarint(buf, uint64(len(payload)))
	}
	return append(buf, payload...)
}

func appendValue(buf []byte, fieldNumber int, s schema.Schema, v any) []byte {
	switch sc := s.(type) {
	case *schema.LazySchema:
		return appendValue(buf, fieldNumber, sc.Resolve(), v)

	case *schema.PrimitiveSchema:
		return appendPrimitive(buf, fieldNumber, sc.Type, v)

	case *schema.SequenceSchema:
		return appendSequence(buf, fieldNumber, sc, v)

	case *schema.TupleSchema:
		p, ok := v.(schema.TuplePair)
		if !ok {
			return buf
		}
		payload := framePool.Acquire(64)
		payload = appendValue(payload, 1, sc.Left, p.First)
		payload = appendValue(payload, 2, sc.Right, p.Second)
		buf = appendFrame(buf, fieldNumber, payload)
		framePool.Release(payload)
		return buf

	case *schema.OptionalSchema:
		if v == nil {
			return buf
		}
		payload := framePool.Acquire(64)
		payload = appendValue(payload, 1, sc.Inner, v)
		buf = appendFrame(buf, fieldNumber, payload)
		framePool.Release(payload)
		return buf

	case *schema.EitherSchema:
		payload := framePool.Acquire(64)
		switch e := v.(type) {
		case schema.Left:
			payload = appendValue(payload, 1, sc.Left, e.Value)
		case schema.Right:
			payload = appendValue(payload, 2, sc.Right, e.Value)
		default:
			framePool.Release(payload)
			return buf
		}
		buf = appendFrame(buf, fieldNumber, payload)
		framePool.Release(payload)
		return buf

	case *schema.TransformSchema:
		inner, err := sc.Unap(v)
		if err != nil {
			return buf
		}
		return appendValue(buf, fieldNumber, sc.Inner, inner)

	case *schema.GenericRecordSchema:
		get := fieldLookup(v)
		if get == nil {
			return buf
		}
		payload := framePool.Acquire(256)
		for _, f := range flatFields(sc.Fields, 1) {
			if fv, ok := get(f.name); ok {
				payload = appendValue(payload, f.number, f.schema, fv)
			}
		}
		buf = appendFrame(buf, fieldNumber, payload)
		framePool.Release(payload)
		return buf

	case *schema.ProductSchema:
		payload := framePool.Acquire(256)
		for i, f := range sc.Fields {
			payload = appendValue(payload, i+1, f.Schema, f.Get(v))
		}
		buf = appendFrame(buf, fieldNumber, payload)
		framePool.Release(payload)
		return buf

	case *schema.EnumerationSchema:
		payload := framePool.Acquire(64)
		if m, ok := v.(*schema.OrderedMapAny); ok && m != nil && m.Len() > 0 {
			name, val, _ := m.At(0)
			if idx := sc.Cases.IndexOf(name); idx >= 0 {
				caseSchema, _ := sc.Cases.Get(name)
				payload = appendValue(payload, idx+1, caseSchema, val)
			}
		}
		buf = appendFrame(buf, fieldNumber, payload)
		framePool.Release(payload)
		return buf

	case *schema.EnumSchema:
		payload := framePool.Acquire(64)
		for i, c := range sc.Cases {
			if child, ok := c.Deconstruct(v); ok {
				payload = appendValue(payload, i+1, c.Schema, child)
				break
			}
		}
		buf = appendFrame(buf, fieldNumber, payload)
		framePool.Release(payload)
		return buf

	case *schema.SingletonSchema:
		return appendFrame(buf, fieldNumber, nil)

	default:
		// FailSchema and unmatched shapes contribute nothing.
		return buf
	}
}

func appendSequence(buf []byte, fieldNumber int, sc *schema.SequenceSchema, v any) []byte {
	chunk, err := sc.ToChunk(v)
	if err != nil {
		return buf
	}
	payload := framePool.Acquire(256)
	if canBePacked(sc.Element) {
		for _, el := range chunk {
			payload = appendValue(payload, 0, sc.Element, el)
		}
	} else {
		for i, el := range chunk {
			payload = appendValue(payload, i+1, sc.Element, el)
		}
	}
	buf = appendFrame(buf, fieldNumber, payload)
	framePool.Release(payload)
	return buf
}

// fieldLookup adapts the accepted record value shapes to a common getter.
func fieldLookup(v any) func(name string) (any, bool) {
	switch m := v.(type) {
	case *schema.OrderedMapAny:
		if m == nil {
			return nil
		}
		return m.Get
	case map[string]any:
		return func(name string) (any, bool) {
			val, ok := m[name]
			return val, ok
		}
	}
	return nil
}
