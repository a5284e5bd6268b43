package protobuf

import (
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickwritereader/protopack/schema"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func singleFieldRecord(name string, s schema.Schema) schema.Schema {
	return schema.SRecord(schema.F(name, s))
}

func TestEncode_ExplicitByteMatch(t *testing.T) {
	oneOf := oneOfSchema()

	cases := []struct {
		name   string
		schema schema.Schema
		value  any
		hex    string
	}{
		{
			name:   "int field",
			schema: singleFieldRecord("value", schema.SInt),
			value:  schema.NewOrderedMapAny(schema.OPAny("value", int32(150))),
			hex:    "089601",
		},
		{
			name:   "string field",
			schema: singleFieldRecord("value", schema.SString),
			value:  schema.NewOrderedMapAny(schema.OPAny("value", "testing")),
			hex:    "0a0774657374696e67",
		},
		{
			name:   "float field",
			schema: singleFieldRecord("value", schema.SFloat32),
			value:  schema.NewOrderedMapAny(schema.OPAny("value", float32(0.001))),
			hex:    "0d6f12833a",
		},
		{
			name:   "double field",
			schema: singleFieldRecord("value", schema.SFloat64),
			value:  schema.NewOrderedMapAny(schema.OPAny("value", 0.001)),
			hex:    "09fca9f1d24d62503f",
		},
		{
			name:   "embedded record",
			schema: singleFieldRecord("embedded", singleFieldRecord("value", schema.SInt)),
			value: schema.NewOrderedMapAny(
				schema.OPAny("embedded", schema.NewOrderedMapAny(schema.OPAny("value", int32(150)))),
			),
			hex: "0a03089601",
		},
		{
			name:   "packed int list",
			schema: singleFieldRecord("packed", schema.SSequence(schema.SInt)),
			value: schema.NewOrderedMapAny(
				schema.OPAny("packed", []any{int32(3), int32(270), int32(86942)}),
			),
			hex: "0a06038e029ea705",
		},
		{
			name:   "unpacked string list",
			schema: singleFieldRecord("items", schema.SSequence(schema.SString)),
			value: schema.NewOrderedMapAny(
				schema.OPAny("items", []any{"foo", "bar", "baz"}),
			),
			hex: "0a0f0a03666f6f12036261721a0362617a",
		},
		{
			name:   "two fields",
			schema: schema.SRecord(schema.F("name", schema.SString), schema.F("value", schema.SInt)),
			value: schema.NewOrderedMapAny(
				schema.OPAny("name", "Foo"),
				schema.OPAny("value", int32(123)),
			),
			hex: "0a03466f6f107b",
		},
		{
			name:   "one-of int case",
			schema: singleFieldRecord("oneOf", oneOf),
			value:  schema.NewOrderedMapAny(schema.OPAny("oneOf", intValue{482})),
			hex:    "0a05120308e203",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Encode(tc.schema, tc.value)
			assert.Equal(t, mustHex(t, tc.hex), got)

			back, err := Decode(tc.schema, got)
			require.NoError(t, err)
			assertValueEqual(t, tc.value, back)
		})
	}
}

// assertValueEqual compares decoded values, honoring ordered-map order.
func assertValueEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if em, ok := expected.(*schema.OrderedMapAny); ok {
		am, ok := actual.(*schema.OrderedMapAny)
		require.True(t, ok, "expected ordered map, got %T", actual)
		if !em.Equal(am) {
			// fall through for a readable diff
			ev := map[string]any{}
			for k, v := range em.ItemsIter() {
				ev[k] = v
			}
			av := map[string]any{}
			for k, v := range am.ItemsIter() {
				av[k] = v
			}
			assert.Equal(t, ev, av)
			assert.Fail(t, "ordered maps differ in order")
		}
		return
	}
	assert.Equal(t, expected, actual)
}

type stringValue struct{ value string }
type intValue struct{ value int32 }
type boolValue struct{ value bool }

func oneOfSchema() schema.Schema {
	return schema.SEnum("OneOf",
		schema.EnumCase{
			Name: "StringValue",
			Schema: schema.SProduct("StringValue",
				func(vs []any) any { return stringValue{vs[0].(string)} },
				schema.ProductField{Name: "value", Schema: schema.SString, Get: func(p any) any { return p.(stringValue).value }},
			),
			Deconstruct: func(p any) (any, bool) { v, ok := p.(stringValue); return v, ok },
		},
		schema.EnumCase{
			Name: "IntValue",
			Schema: schema.SProduct("IntValue",
				func(vs []any) any { return intValue{vs[0].(int32)} },
				schema.ProductField{Name: "value", Schema: schema.SInt, Get: func(p any) any { return p.(intValue).value }},
			),
			Deconstruct: func(p any) (any, bool) { v, ok := p.(intValue); return v, ok },
		},
		schema.EnumCase{
			Name: "BooleanValue",
			Schema: schema.SProduct("BooleanValue",
				func(vs []any) any { return boolValue{vs[0].(bool)} },
				schema.ProductField{Name: "value", Schema: schema.SBool, Get: func(p any) any { return p.(boolValue).value }},
			),
			Deconstruct: func(p any) (any, bool) { v, ok := p.(boolValue); return v, ok },
		},
	)
}

func TestDecode_NegativeVectors(t *testing.T) {
	twoFields := schema.SRecord(schema.F("name", schema.SString), schema.F("value", schema.SInt))

	cases := []struct {
		hex string
		msg string
	}{
		{"0f", "Failed decoding key: unknown wire type"},
		{"00", "Failed decoding key: invalid field number"},
		{"0a0346", "Unexpected end of bytes"},
		{"10ff", "Unexpected end of chunk"},
		{"0b", "Failed decoding key: group wire types are not supported"},
	}
	for _, tc := range cases {
		_, err := Decode(twoFields, mustHex(t, tc.hex))
		require.Error(t, err, "input %s", tc.hex)
		assert.EqualError(t, err, tc.msg, "input %s", tc.hex)
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	_, err := Decode(schema.SInt, nil)
	assert.EqualError(t, err, "No bytes to decode")
	_, err = Decode(schema.SInt, []byte{})
	assert.EqualError(t, err, "No bytes to decode")
}

func TestPrimitive_TopLevelRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		schema schema.Schema
		value  any
	}{
		{"bool", schema.SBool, true},
		{"short", schema.SShort, int16(-5)},
		{"int", schema.SInt, int32(-150)},
		{"long", schema.SLong, int64(1) << 60},
		{"float32", schema.SFloat32, float32(3.5)},
		{"float64", schema.SFloat64, -2.25},
		{"string", schema.SString, "hello"},
		{"binary", schema.SBytes, []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{"char", schema.SChar, 'G'},
		{"char multibyte", schema.SChar, 'λ'},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enc := Encode(tc.schema, tc.value)
			back, err := Decode(tc.schema, enc)
			require.NoError(t, err)
			assert.Equal(t, tc.value, back)
		})
	}
}

func TestTemporal_RoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		schema schema.Schema
		value  any
	}{
		{"dayOfWeek", schema.SDayOfWeek, time.Saturday},
		{"dayOfWeek sunday", schema.SDayOfWeek, time.Sunday},
		{"month", schema.SMonth, time.December},
		{"year", schema.SYear, 2025},
		{"zoneOffset", schema.SZoneOffset, -18000},
		{"zoneId", schema.SZoneID, "Europe/Paris"},
		{"monthDay", schema.SMonthDay, schema.MonthDay{Month: 12, Day: 25}},
		{"yearMonth", schema.SYearMonth, schema.YearMonth{Year: 2025, Month: 8}},
		{"period", schema.SPeriod, schema.Period{Years: 1, Months: 2, Days: 3}},
		{"duration", schema.SDuration, 90*time.Second + 500*time.Nanosecond},
		{"negative duration", schema.SDuration, -(2*time.Second + 300*time.Nanosecond)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// within a record so the length-delimited shapes are bounded
			rec := singleFieldRecord("value", tc.schema)
			enc := Encode(rec, schema.NewOrderedMapAny(schema.OPAny("value", tc.value)))
			back, err := Decode(rec, enc)
			require.NoError(t, err)
			m := back.(*schema.OrderedMapAny)
			got, ok := m.Get("value")
			require.True(t, ok)
			assert.Equal(t, tc.value, got)
		})
	}
}

func TestTemporalString_RoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		schema schema.Schema
		value  time.Time
	}{
		{"instant", schema.SInstant(""), time.Date(2025, 1, 2, 3, 4, 5, 123456789, time.UTC)},
		{"localDate", schema.SLocalDate(""), time.Date(2025, 8, 6, 0, 0, 0, 0, time.UTC)},
		{"localDateTime", schema.SLocalDateTime(""), time.Date(2025, 8, 6, 13, 30, 15, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := singleFieldRecord("at", tc.schema)
			enc := Encode(rec, schema.NewOrderedMapAny(schema.OPAny("at", tc.value)))
			back, err := Decode(rec, enc)
			require.NoError(t, err)
			got, ok := back.(*schema.OrderedMapAny).Get("at")
			require.True(t, ok)
			require.IsType(t, time.Time{}, got)
			assert.True(t, tc.value.Equal(got.(time.Time)), "got %v", got)
		})
	}
}

func TestTemporalString_BadInput(t *testing.T) {
	rec := singleFieldRecord("at", schema.SInstant(""))
	enc := Encode(singleFieldRecord("at", schema.SString),
		schema.NewOrderedMapAny(schema.OPAny("at", "not a timestamp")))
	_, err := Decode(rec, enc)
	assert.Error(t, err)
}

func TestSequence_PackedSelection(t *testing.T) {
	assert.True(t, canBePacked(schema.SInt))
	assert.True(t, canBePacked(schema.SBool))
	assert.True(t, canBePacked(schema.SFloat32))
	assert.True(t, canBePacked(schema.SFloat64))
	assert.True(t, canBePacked(schema.SDayOfWeek))
	assert.True(t, canBePacked(schema.SZoneOffset))
	assert.True(t, canBePacked(schema.SSequence(schema.SLong)))

	assert.False(t, canBePacked(schema.SChar))
	assert.False(t, canBePacked(schema.SString))
	assert.False(t, canBePacked(schema.SBytes))
	assert.False(t, canBePacked(schema.SMonthDay))
	assert.False(t, canBePacked(schema.SPeriod))
	assert.False(t, canBePacked(schema.SOptional(schema.SInt)))
	assert.False(t, canBePacked(schema.STuple(schema.SInt, schema.SInt)))
	assert.False(t, canBePacked(singleFieldRecord("value", schema.SInt)))
}

func TestSequence_RoundTrips(t *testing.T) {
	packed := singleFieldRecord("xs", schema.SSequence(schema.SLong))
	v := schema.NewOrderedMapAny(schema.OPAny("xs", []any{int64(-1), int64(0), int64(1) << 50}))
	enc := Encode(packed, v)
	back, err := Decode(packed, enc)
	require.NoError(t, err)
	assertValueEqual(t, v, back)

	unpacked := singleFieldRecord("xs", schema.SSequence(schema.SString))
	v2 := schema.NewOrderedMapAny(schema.OPAny("xs", []any{"a", "", "ccc"}))
	back, err = Decode(unpacked, Encode(unpacked, v2))
	require.NoError(t, err)
	assertValueEqual(t, v2, back)

	empty := schema.NewOrderedMapAny(schema.OPAny("xs", []any{}))
	back, err = Decode(packed, Encode(packed, empty))
	require.NoError(t, err)
	assertValueEqual(t, empty, back)
}

func TestOptional_RoundTrips(t *testing.T) {
	rec := schema.SRecord(
		schema.F("id", schema.SInt),
		schema.F("note", schema.SOptional(schema.SString)),
	)

	present := schema.NewOrderedMapAny(
		schema.OPAny("id", int32(7)),
		schema.OPAny("note", "hi"),
	)
	back, err := Decode(rec, Encode(rec, present))
	require.NoError(t, err)
	assertValueEqual(t, present, back)

	absent := schema.NewOrderedMapAny(schema.OPAny("id", int32(7)))
	back, err = Decode(rec, Encode(rec, absent))
	require.NoError(t, err)
	assertValueEqual(t, absent, back)

	// nested optional: a present inner value survives both envelopes
	nested := schema.SRecord(
		schema.F("id", schema.SInt),
		schema.F("opt", schema.SOptional(schema.SOptional(schema.SInt))),
	)
	v := schema.NewOrderedMapAny(schema.OPAny("id", int32(1)), schema.OPAny("opt", int32(5)))
	back, err = Decode(nested, Encode(nested, v))
	require.NoError(t, err)
	assertValueEqual(t, v, back)
}

func TestEither_RoundTrips(t *testing.T) {
	rec := singleFieldRecord("e", schema.SEither(schema.SString, schema.SInt))

	left := schema.NewOrderedMapAny(schema.OPAny("e", schema.Left{Value: "oops"}))
	back, err := Decode(rec, Encode(rec, left))
	require.NoError(t, err)
	assertValueEqual(t, left, back)

	right := schema.NewOrderedMapAny(schema.OPAny("e", schema.Right{Value: int32(99)}))
	back, err = Decode(rec, Encode(rec, right))
	require.NoError(t, err)
	assertValueEqual(t, right, back)
}

func TestEither_BadFieldNumber(t *testing.T) {
	e := schema.SEither(schema.SInt, schema.SInt)
	// field number 3 inside the either envelope
	_, err := Decode(e, []byte{0x18, 0x01})
	assert.EqualError(t, err, "Failed to decode either.")
}

func TestTuple_RoundTrip(t *testing.T) {
	tup := schema.STuple(schema.SString, schema.SLong)
	v := schema.TuplePair{First: "answer", Second: int64(42)}
	back, err := Decode(tup, Encode(tup, v))
	require.NoError(t, err)
	assert.Equal(t, v, back)
}

func TestTuple_MissingSide(t *testing.T) {
	tup := schema.STuple(schema.SInt, schema.SInt)
	// only field 1 present
	_, err := Decode(tup, []byte{0x08, 0x05})
	assert.EqualError(t, err, "Error while decoding tuple.")
}

func TestEnumeration_RoundTrip(t *testing.T) {
	e := schema.SEnumeration(
		schema.F("i", schema.SInt),
		schema.F("s", schema.SString),
	)
	rec := singleFieldRecord("v", e)

	intCase := schema.NewOrderedMapAny(
		schema.OPAny("v", schema.NewOrderedMapAny(schema.OPAny("i", int32(42)))),
	)
	back, err := Decode(rec, Encode(rec, intCase))
	require.NoError(t, err)
	assertValueEqual(t, intCase, back)

	strCase := schema.NewOrderedMapAny(
		schema.OPAny("v", schema.NewOrderedMapAny(schema.OPAny("s", "hey"))),
	)
	back, err = Decode(rec, Encode(rec, strCase))
	require.NoError(t, err)
	assertValueEqual(t, strCase, back)
}

func TestEnumeration_UnknownCase(t *testing.T) {
	e := schema.SEnumeration(schema.F("i", schema.SInt))
	// field number 3 selects no declared case
	_, err := Decode(e, []byte{0x18, 0x01})
	assert.EqualError(t, err, "Schema doesn't contain field number 3.")
}

type person struct {
	name string
	age  int32
	note any
}

func personSchema() schema.Schema {
	return schema.SProduct("person",
		func(vs []any) any {
			return person{name: vs[0].(string), age: vs[1].(int32), note: vs[2]}
		},
		schema.ProductField{Name: "name", Schema: schema.SString, Get: func(p any) any { return p.(person).name }},
		schema.ProductField{Name: "age", Schema: schema.SInt, Get: func(p any) any { return p.(person).age }},
		schema.ProductField{Name: "note", Schema: schema.SOptional(schema.SString), Get: func(p any) any { return p.(person).note }},
	)
}

func TestProduct_RoundTrip(t *testing.T) {
	s := personSchema()

	full := person{name: "Ada", age: 36, note: "pioneer"}
	back, err := Decode(s, Encode(s, full))
	require.NoError(t, err)
	assert.Equal(t, full, back)

	// absent optional slot decodes as nil
	partial := person{name: "Ada", age: 36, note: nil}
	back, err = Decode(s, Encode(s, partial))
	require.NoError(t, err)
	assert.Equal(t, partial, back)
}

func TestProduct_MissingField(t *testing.T) {
	s := personSchema()
	// only field 1 present
	buf := mustHex(t, "0a03416461")
	_, err := Decode(s, buf)
	assert.EqualError(t, err, "Missing field number 2.")
}

func TestProduct_UnknownField(t *testing.T) {
	s := personSchema()
	// field number 4 beyond the declared three
	_, err := Decode(s, []byte{0x20, 0x01})
	assert.EqualError(t, err, "Schema doesn't contain field number 4.")
}

func TestRecord_DuplicateLosesToFirst(t *testing.T) {
	rec := singleFieldRecord("value", schema.SInt)
	// field 1 twice: 1 then 2
	back, err := Decode(rec, []byte{0x08, 0x01, 0x08, 0x02})
	require.NoError(t, err)
	got, _ := back.(*schema.OrderedMapAny).Get("value")
	assert.Equal(t, int32(1), got)
}

func TestRecord_UnknownField(t *testing.T) {
	rec := singleFieldRecord("value", schema.SInt)
	_, err := Decode(rec, []byte{0x08, 0x01, 0x10, 0x02})
	assert.EqualError(t, err, "Schema doesn't contain field number 2.")
}

type red struct{}
type green struct{}

func TestEnum_SingletonCases(t *testing.T) {
	color := schema.SEnum("Color",
		schema.EnumCase{
			Name:        "Red",
			Schema:      schema.SSingleton(red{}),
			Deconstruct: func(p any) (any, bool) { v, ok := p.(red); return v, ok },
		},
		schema.EnumCase{
			Name:        "Green",
			Schema:      schema.SSingleton(green{}),
			Deconstruct: func(p any) (any, bool) { v, ok := p.(green); return v, ok },
		},
	)

	enc := Encode(color, green{})
	assert.Equal(t, []byte{0x12, 0x00}, enc)

	back, err := Decode(color, enc)
	require.NoError(t, err)
	assert.Equal(t, green{}, back)

	back, err = Decode(color, Encode(color, red{}))
	require.NoError(t, err)
	assert.Equal(t, red{}, back)
}

func TestEnum_OutOfRangeCase(t *testing.T) {
	e := oneOfSchema()
	// field number 4 with one varint payload
	_, err := Decode(e, []byte{0x20, 0x01})
	assert.EqualError(t, err, "Schema doesn't contain field number 4.")
}

type point struct{ x, y int32 }

func pointSchema() schema.Schema {
	inner := schema.SRecord(schema.F("x", schema.SInt), schema.F("y", schema.SInt))
	return schema.STransform(inner,
		func(v any) (any, error) {
			m, ok := v.(*schema.OrderedMapAny)
			if !ok {
				return nil, errors.New("expected record")
			}
			x, _ := m.Get("x")
			y, _ := m.Get("y")
			return point{x: x.(int32), y: y.(int32)}, nil
		},
		func(v any) (any, error) {
			p, ok := v.(point)
			if !ok {
				return nil, errors.New("expected point")
			}
			return schema.NewOrderedMapAny(
				schema.OPAny("x", p.x),
				schema.OPAny("y", p.y),
			), nil
		},
	)
}

func TestTransform_RoundTrip(t *testing.T) {
	s := pointSchema()
	v := point{x: -3, y: 14}
	back, err := Decode(s, Encode(s, v))
	require.NoError(t, err)
	assert.Equal(t, v, back)

	// as a record field
	rec := singleFieldRecord("p", s)
	m := schema.NewOrderedMapAny(schema.OPAny("p", v))
	back, err = Decode(rec, Encode(rec, m))
	require.NoError(t, err)
	assertValueEqual(t, m, back)
}

func TestTransform_ApErrorVerbatim(t *testing.T) {
	s := schema.STransform(schema.SString,
		func(any) (any, error) { return nil, errors.New("bad value") },
		func(v any) (any, error) { return v, nil },
	)
	rec := singleFieldRecord("v", s)
	enc := Encode(singleFieldRecord("v", schema.SString),
		schema.NewOrderedMapAny(schema.OPAny("v", "x")))
	_, err := Decode(rec, enc)
	assert.EqualError(t, err, "bad value")
}

func TestTransform_UnapErrorDropsSilently(t *testing.T) {
	s := schema.STransform(schema.SString,
		func(v any) (any, error) { return v, nil },
		func(any) (any, error) { return nil, errors.New("refuse") },
	)
	assert.Empty(t, Encode(s, "anything"))
}

func TestFailSchema(t *testing.T) {
	s := schema.SFail("nope")
	assert.Empty(t, Encode(s, "whatever"))
	_, err := Decode(s, []byte{0x01})
	assert.EqualError(t, err, "nope")
}

func TestUnit_InProduct(t *testing.T) {
	type marker struct {
		tag schema.Unit
		id  int32
	}
	s := schema.SProduct("marker",
		func(vs []any) any { return marker{tag: vs[0].(schema.Unit), id: vs[1].(int32)} },
		schema.ProductField{Name: "tag", Schema: schema.SUnit, Get: func(p any) any { return p.(marker).tag }},
		schema.ProductField{Name: "id", Schema: schema.SInt, Get: func(p any) any { return p.(marker).id }},
	)
	v := marker{id: 9}
	back, err := Decode(s, Encode(s, v))
	require.NoError(t, err)
	assert.Equal(t, v, back)
}

type intList struct {
	head int32
	tail any
}

func intListSchema() schema.Schema {
	var self schema.Schema
	self = schema.SProduct("intList",
		func(vs []any) any { return intList{head: vs[0].(int32), tail: vs[1]} },
		schema.ProductField{Name: "head", Schema: schema.SInt, Get: func(p any) any { return p.(intList).head }},
		schema.ProductField{
			Name:   "tail",
			Schema: schema.SOptional(schema.SLazy(func() schema.Schema { return self })),
			Get:    func(p any) any { return p.(intList).tail },
		},
	)
	return self
}

func TestRecursiveSchema_RoundTrip(t *testing.T) {
	s := intListSchema()
	v := intList{head: 1, tail: intList{head: 2, tail: intList{head: 3, tail: nil}}}
	back, err := Decode(s, Encode(s, v))
	require.NoError(t, err)
	assert.Equal(t, v, back)
}

func TestFieldReorder_ChangesBytesKeepsRoundTrip(t *testing.T) {
	a := schema.SRecord(schema.F("name", schema.SString), schema.F("value", schema.SInt))
	b := schema.SRecord(schema.F("value", schema.SInt), schema.F("name", schema.SString))

	va := schema.NewOrderedMapAny(schema.OPAny("name", "Foo"), schema.OPAny("value", int32(123)))
	vb := schema.NewOrderedMapAny(schema.OPAny("value", int32(123)), schema.OPAny("name", "Foo"))

	encA := Encode(a, va)
	encB := Encode(b, vb)
	assert.NotEqual(t, encA, encB)

	back, err := Decode(b, encB)
	require.NoError(t, err)
	assertValueEqual(t, vb, back)
}

func TestLengthPrefixMatchesPayload(t *testing.T) {
	rec := singleFieldRecord("items", schema.SSequence(schema.SString))
	v := schema.NewOrderedMapAny(schema.OPAny("items", []any{"foo", "bar", "baz"}))
	enc := Encode(rec, v)

	// outer frame: tag byte, then the length prefix must equal the rest
	require.Greater(t, len(enc), 2)
	assert.Equal(t, byte(0x0A), enc[0])
	assert.Equal(t, int(enc[1]), len(enc)-2)
}

func TestEncode_SilentDrop(t *testing.T) {
	assert.Empty(t, Encode(schema.SInt, "not an int"))
	assert.Empty(t, Encode(schema.SString, 5))
	assert.Empty(t, Encode(schema.STuple(schema.SInt, schema.SInt), "not a pair"))
	assert.Empty(t, Encode(singleFieldRecord("v", schema.SInt), 42))
}

func TestMalformedRecordFrame(t *testing.T) {
	// nested record frame announces 3 bytes but only 1 follows
	rec := singleFieldRecord("embedded", singleFieldRecord("value", schema.SInt))
	_, err := Decode(rec, mustHex(t, "0a0308"))
	assert.EqualError(t, err, "Unexpected end of bytes")
}
