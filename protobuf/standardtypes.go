package protobuf

import (
	"errors"
	"math"
	"time"
	"unicode/utf8"

	"golang.org/x/exp/constraints"

	"github.com/quickwritereader/protopack/decoder"
	"github.com/quickwritereader/protopack/schema"
	"github.com/quickwritereader/protopack/wire"
)

// convertToNumber widens any numeric value into target type T.
func convertToNumber[T constraints.Integer | constraints.Float](val any) (T, bool) {
	switch v := val.(type) {
	case int:
		return T(v), true
	case int8:
		return T(v), true
	case int16:
		return T(v), true
	case int32:
		return T(v), true
	case int64:
		return T(v), true
	case uint:
		return T(v), true
	case uint8:
		return T(v), true
	case uint16:
		return T(v), true
	case uint32:
		return T(v), true
	case uint64:
		return T(v), true
	case float32:
		return T(v), true
	case float64:
		return T(v), true
	default:
		var zero T
		return zero, false
	}
}

func appendVarintField(buf []byte, fieldNumber int, v uint64) []byte {
	if fieldNumber > 0 {
		buf = wire.AppendKey(buf, fieldNumber, wire.VarInt)
	}
	return wire.AppendVarint(buf, v)
}

func appendDelimitedField(buf []byte, fieldNumber int, payload []byte) []byte {
	if fieldNumber > 0 {
		buf = wire.AppendKey(buf, fieldNumber, wire.LengthDelimited)
		buf = wire.AppendVarint(buf, uint64(len(payload)))
	}
	return append(buf, payload...)
}

func appendPrimitive(buf []byte, fieldNumber int, st schema.StandardType, v any) []byte {
	switch st.Kind {
	case schema.KindUnit:
		return buf

	case schema.KindBool:
		b, ok := v.(bool)
		if !ok {
			return buf
		}
		var n uint64
		if b {
			n = 1
		}
		return appendVarintField(buf, fieldNumber, n)

	case schema.KindShort, schema.KindInt, schema.KindLong:
		n, ok := convertToNumber[int64](v)
		if !ok {
			return buf
		}
		return appendVarintField(buf, fieldNumber, uint64(n))

	case schema.KindFloat32:
		f, ok := convertToNumber[float32](v)
		if !ok {
			return buf
		}
		if fieldNumber > 0 {
			buf = wire.AppendKey(buf, fieldNumber, wire.Bit32)
		}
		return wire.AppendFixed32(buf, math.Float32bits(f))

	case schema.KindFloat64:
		f, ok := convertToNumber[float64](v)
		if !ok {
			return buf
		}
		if fieldNumber > 0 {
			buf = wire.AppendKey(buf, fieldNumber, wire.Bit64)
		}
		return wire.AppendFixed64(buf, math.Float64bits(f))

	case schema.KindString:
		s, ok := v.(string)
		if !ok {
			return buf
		}
		return appendDelimitedField(buf, fieldNumber, []byte(s))

	case schema.KindBinary:
		b, ok := v.([]byte)
		if !ok {
			return buf
		}
		return appendDelimitedField(buf, fieldNumber, b)

	case schema.KindChar:
		r, ok := v.(rune)
		if !ok {
			return buf
		}
		return appendDelimitedField(buf, fieldNumber, utf8.AppendRune(nil, r))

	case schema.KindDayOfWeek:
		var iso int64
		if w, ok := v.(time.Weekday); ok {
			iso = int64(w)
			if iso == 0 {
				iso = 7
			}
		} else if n, ok := convertToNumber[int64](v); ok {
			iso = n
		} else {
			return buf
		}
		return appendVarintField(buf, fieldNumber, uint64(iso))

	case schema.KindMonth:
		var n int64
		if m, ok := v.(time.Month); ok {
			n = int64(m)
		} else if i, ok := convertToNumber[int64](v); ok {
			n = i
		} else {
			return buf
		}
		return appendVarintField(buf, fieldNumber, uint64(n))

	case schema.KindYear, schema.KindZoneOffset:
		n, ok := convertToNumber[int64](v)
		if !ok {
			return buf
		}
		return appendVarintField(buf, fieldNumber, uint64(n))

	case schema.KindZoneID:
		s, ok := v.(string)
		if !ok {
			return buf
		}
		return appendDelimitedField(buf, fieldNumber, []byte(s))

	case schema.KindMonthDay:
		md, ok := v.(schema.MonthDay)
		if !ok {
			return buf
		}
		return appendIntRecord(buf, fieldNumber, int64(md.Month), int64(md.Day))

	case schema.KindYearMonth:
		ym, ok := v.(schema.YearMonth)
		if !ok {
			return buf
		}
		return appendIntRecord(buf, fieldNumber, int64(ym.Year), int64(ym.Month))

	case schema.KindPeriod:
		p, ok := v.(schema.Period)
		if !ok {
			return buf
		}
		return appendIntRecord(buf, fieldNumber, int64(p.Years), int64(p.Months), int64(p.Days))

	case schema.KindDuration:
		d, ok := v.(time.Duration)
		if !ok {
			return buf
		}
		return appendIntRecord(buf, fieldNumber, int64(d/time.Second), int64(d%time.Second))

	default:
		if st.IsTemporalString() {
			t, ok := v.(time.Time)
			if !ok {
				return buf
			}
			return appendDelimitedField(buf, fieldNumber, []byte(t.Format(st.Layout)))
		}
		return buf
	}
}

// appendIntRecord emits the record-shaped temporal types: each value becomes
// a varint field numbered by position.
func appendIntRecord(buf []byte, fieldNumber int, values ...int64) []byte {
	payload := framePool.Acquire(64)
	for i, v := range values {
		payload = appendVarintField(payload, i+1, uint64(v))
	}
	buf = appendFrame(buf, fieldNumber, payload)
	framePool.Release(payload)
	return buf
}

var (
	errDecodeFloat  = errors.New("Unable to decode Float")
	errDecodeDouble = errors.New("Unable to decode Double")
	errDecodeChar   = errors.New("Unable to decode Char")
)

var varintDecoder decoder.Decoder[uint64] = wire.DecodeVarint

var float32Decoder decoder.Decoder[any] = func(b []byte) ([]byte, any, error) {
	if len(b) < 4 {
		return nil, nil, errDecodeFloat
	}
	rest, v, err := wire.DecodeFixed32(b)
	if err != nil {
		return nil, nil, errDecodeFloat
	}
	return rest, math.Float32frombits(v), nil
}

var float64Decoder decoder.Decoder[any] = func(b []byte) ([]byte, any, error) {
	if len(b) < 8 {
		return nil, nil, errDecodeDouble
	}
	rest, v, err := wire.DecodeFixed64(b)
	if err != nil {
		return nil, nil, errDecodeDouble
	}
	return rest, math.Float64frombits(v), nil
}

var charDecoder decoder.Decoder[any] = func(b []byte) ([]byte, any, error) {
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return nil, nil, errDecodeChar
	}
	return b[size:], r, nil
}

func primitiveDecoder(st schema.StandardType) decoder.Decoder[any] {
	switch st.Kind {
	case schema.KindUnit:
		return decoder.Succeed[any](schema.Unit{})

	case schema.KindBool:
		return decoder.Map(varintDecoder, func(v uint64) any { return v != 0 })

	case schema.KindShort:
		return decoder.Map(varintDecoder, func(v uint64) any { return int16(int64(v)) })

	case schema.KindInt:
		return decoder.Map(varintDecoder, func(v uint64) any { return int32(int64(v)) })

	case schema.KindLong:
		return decoder.Map(varintDecoder, func(v uint64) any { return int64(v) })

	case schema.KindFloat32:
		return float32Decoder

	case schema.KindFloat64:
		return float64Decoder

	case schema.KindString, schema.KindZoneID:
		return decoder.Map(decoder.String, func(s string) any { return s })

	case schema.KindBinary:
		return decoder.Map(decoder.Bytes, func(b []byte) any { return b })

	case schema.KindChar:
		return charDecoder

	case schema.KindDayOfWeek:
		return decoder.Map(varintDecoder, func(v uint64) any {
			if v == 7 {
				return time.Sunday
			}
			return time.Weekday(int64(v))
		})

	case schema.KindMonth:
		return decoder.Map(varintDecoder, func(v uint64) any { return time.Month(int64(v)) })

	case schema.KindYear, schema.KindZoneOffset:
		return decoder.Map(varintDecoder, func(v uint64) any { return int(int64(v)) })

	case schema.KindMonthDay:
		return intRecordDecoder([]string{"month", "day"}, func(v []int64) any {
			return schema.MonthDay{Month: int(v[0]), Day: int(v[1])}
		})

	case schema.KindYearMonth:
		return intRecordDecoder([]string{"year", "month"}, func(v []int64) any {
			return schema.YearMonth{Year: int(v[0]), Month: int(v[1])}
		})

	case schema.KindPeriod:
		return intRecordDecoder([]string{"years", "months", "days"}, func(v []int64) any {
			return schema.Period{Years: int(v[0]), Months: int(v[1]), Days: int(v[2])}
		})

	case schema.KindDuration:
		return intRecordDecoder([]string{"seconds", "nanos"}, func(v []int64) any {
			return time.Duration(v[0])*time.Second + time.Duration(v[1])
		})

	default:
		if st.IsTemporalString() {
			layout := st.Layout
			return decoder.MapErr(decoder.String, func(s string) (any, error) {
				t, err := time.Parse(layout, s)
				if err != nil {
					return nil, err
				}
				return t, nil
			})
		}
		return decoder.Fail[any]("unknown standard type " + st.Kind.String())
	}
}

// intRecordDecoder reads the record-shaped temporal types; absent sub-fields
// default to zero.
func intRecordDecoder(names []string, build func([]int64) any) decoder.Decoder[any] {
	fields := make([]flatField, len(names))
	for i, name := range names {
		fields[i] = flatField{number: i + 1, name: name, schema: schema.SLong}
	}
	return decoder.Map(recordDecoder(fields), func(m *schema.OrderedMapAny) any {
		values := make([]int64, len(names))
		for i, name := range names {
			if v, ok := m.Get(name); ok {
				if n, ok := v.(int64); ok {
					values[i] = n
				}
			}
		}
		return build(values)
	})
}
