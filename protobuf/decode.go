package protobuf

import (
	"errors"
	"fmt"

	"github.com/quickwritereader/protopack/decoder"
	"github.com/quickwritereader/protopack/schema"
	"github.com/quickwritereader/protopack/wire"
)

var (
	errNoBytes     = errors.New("No bytes to decode")
	errTupleShape  = errors.New("Error while decoding tuple.")
	errEitherShape = errors.New("Failed to decode either.")
)

var keyDecoder decoder.Decoder[wire.Key] = wire.DecodeKey

// Decode parses b according to s. Empty input is rejected before the
// dispatcher runs; leftover bytes after a complete top-level value are
// ignored.
func Decode(s schema.Schema, b []byte) (any, error) {
	if len(b) == 0 {
		return nil, errNoBytes
	}
	_, v, err := decoderFor(s)(b)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func decoderFor(s schema.Schema) decoder.Decoder[any] {
	switch sc := s.(type) {
	case *schema.LazySchema:
		return func(b []byte) ([]byte, any, error) {
			return decoderFor(sc.Resolve())(b)
		}

	case *schema.PrimitiveSchema:
		return primitiveDecoder(sc.Type)

	case *schema.SequenceSchema:
		return sequenceDecoder(sc)

	case *schema.TupleSchema:
		fields := []flatField{
			{number: 1, name: "first", schema: sc.Left},
			{number: 2, name: "second", schema: sc.Right},
		}
		return decoder.MapErr(recordDecoder(fields), func(m *schema.OrderedMapAny) (any, error) {
			first, ok1 := m.Get("first")
			second, ok2 := m.Get("second")
			if !ok1 || !ok2 {
				return nil, errTupleShape
			}
			return schema.TuplePair{First: first, Second: second}, nil
		})

	case *schema.OptionalSchema:
		fields := []flatField{{number: 1, name: "value", schema: sc.Inner}}
		return decoder.Map(recordDecoder(fields), func(m *schema.OrderedMapAny) any {
			v, _ := m.Get("value")
			return v
		})

	case *schema.EitherSchema:
		return decoder.FlatMap(keyDecoder, func(k wire.Key) decoder.Decoder[any] {
			switch k.FieldNumber {
			case 1:
				return decoder.Map(boundedDecoder(sc.Left, k), func(v any) any {
					return schema.Left{Value: v}
				})
			case 2:
				return decoder.Map(boundedDecoder(sc.Right, k), func(v any) any {
					return schema.Right{Value: v}
				})
			default:
				return decoder.Fail[any](errEitherShape.Error())
			}
		})

	case *schema.TransformSchema:
		return decoder.MapErr(decoderFor(sc.Inner), sc.Ap)

	case *schema.GenericRecordSchema:
		return decoder.Map(recordDecoder(flatFields(sc.Fields, 1)), func(m *schema.OrderedMapAny) any {
			return m
		})

	case *schema.EnumerationSchema:
		return decoder.FlatMap(keyDecoder, func(k wire.Key) decoder.Decoder[any] {
			name, caseSchema, ok := sc.Cases.At(k.FieldNumber - 1)
			if !ok {
				return decoder.Fail[any](fmt.Sprintf("Schema doesn't contain field number %d.", k.FieldNumber))
			}
			return decoder.Map(boundedDecoder(caseSchema, k), func(v any) any {
				return schema.NewOrderedMapAny(schema.OPAny(name, v))
			})
		})

	case *schema.ProductSchema:
		return productDecoder(sc)

	case *schema.EnumSchema:
		return decoder.FlatMap(keyDecoder, func(k wire.Key) decoder.Decoder[any] {
			if k.FieldNumber < 1 || k.FieldNumber > len(sc.Cases) {
				return decoder.Fail[any](fmt.Sprintf("Schema doesn't contain field number %d.", k.FieldNumber))
			}
			return boundedDecoder(sc.Cases[k.FieldNumber-1].Schema, k)
		})

	case *schema.SingletonSchema:
		return decoder.FlatMap(keyDecoder, func(k wire.Key) decoder.Decoder[any] {
			if k.Type == wire.LengthDelimited && k.Width == 0 {
				return decoder.Succeed[any](sc.Instance)
			}
			return decoder.Fail[any]("Failed to decode case object.")
		})

	case *schema.FailSchema:
		return decoder.Fail[any](sc.Message)

	default:
		return decoder.Fail[any](fmt.Sprintf("unknown schema %s", s))
	}
}

// boundedDecoder runs a field's decoder inside the length-delimited frame a
// key announced, or directly for the scalar wire types. A singleton's empty
// frame is recognized here, since its wire form is the frame itself.
func boundedDecoder(s schema.Schema, k wire.Key) decoder.Decoder[any] {
	if k.Type != wire.LengthDelimited {
		return decoderFor(s)
	}
	if sg, ok := unwrapLazy(s).(*schema.SingletonSchema); ok {
		if k.Width == 0 {
			return decoder.Succeed[any](sg.Instance)
		}
		return decoder.Fail[any]("Failed to decode case object.")
	}
	return decoderFor(s).Take(k.Width)
}

// recordDecoder reads key/value pairs until the frame is exhausted. Unknown
// field numbers abort; duplicated fields silently lose to the first
// occurrence.
func recordDecoder(fields []flatField) decoder.Decoder[*schema.OrderedMapAny] {
	return func(b []byte) ([]byte, *schema.OrderedMapAny, error) {
		out := schema.NewOrderedMapAny()
		for len(b) > 0 {
			rest, k, err := wire.DecodeKey(b)
			if err != nil {
				return nil, nil, err
			}
			f, ok := lookupField(fields, k.FieldNumber)
			if !ok {
				return nil, nil, fmt.Errorf("Schema doesn't contain field number %d.", k.FieldNumber)
			}
			rest, v, err := boundedDecoder(f.schema, k)(rest)
			if err != nil {
				return nil, nil, err
			}
			if !out.Has(f.name) {
				out.Set(f.name, v)
			}
			b = rest
		}
		return b, out, nil
	}
}

func sequenceDecoder(sc *schema.SequenceSchema) decoder.Decoder[any] {
	var d decoder.Decoder[[]any]
	if canBePacked(sc.Element) {
		d = decoderFor(sc.Element).Loop()
	} else {
		one := decoder.FlatMap(keyDecoder, func(k wire.Key) decoder.Decoder[any] {
			return boundedDecoder(sc.Element, k)
		})
		d = one.Loop()
	}
	return decoder.Map(d, func(chunk []any) any { return sc.FromChunk(chunk) })
}

func productDecoder(sc *schema.ProductSchema) decoder.Decoder[any] {
	n := len(sc.Fields)
	return func(b []byte) ([]byte, any, error) {
		slots := make([]any, n)
		filled := make([]bool, n)
		for len(b) > 0 {
			rest, k, err := wire.DecodeKey(b)
			if err != nil {
				return nil, nil, err
			}
			if k.FieldNumber > n {
				return nil, nil, fmt.Errorf("Schema doesn't contain field number %d.", k.FieldNumber)
			}
			i := k.FieldNumber - 1
			rest, v, err := boundedDecoder(sc.Fields[i].Schema, k)(rest)
			if err != nil {
				return nil, nil, err
			}
			if !filled[i] {
				slots[i] = v
				filled[i] = true
			}
			b = rest
		}
		for i := range slots {
			if !filled[i] && !fillsAbsent(sc.Fields[i].Schema, &slots[i]) {
				return nil, nil, fmt.Errorf("Missing field number %d.", i+1)
			}
		}
		return b, sc.Construct(slots), nil
	}
}

// fillsAbsent reports whether a field with no bytes on the wire still has a
// well-defined value: an absent optional is None and an absent unit is Unit,
// since neither emits a tag.
func fillsAbsent(s schema.Schema, slot *any) bool {
	switch sc := unwrapLazy(s).(type) {
	case *schema.OptionalSchema:
		*slot = nil
		return true
	case *schema.PrimitiveSchema:
		if sc.Type.Kind == schema.KindUnit {
			*slot = schema.Unit{}
			return true
		}
	}
	return false
}
