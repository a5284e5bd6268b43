// Package schema holds the runtime description of data types. A Schema is an
// immutable algebraic value built once per type and shared across every
// encode/decode call; codecs interpret it by structural traversal.
package schema

import (
	"fmt"
	"strings"
)

// Schema describes the shape of a value at runtime.
type Schema interface {
	fmt.Stringer
}

// PrimitiveSchema is a scalar leaf.
type PrimitiveSchema struct {
	Type StandardType
}

func (s *PrimitiveSchema) String() string { return s.Type.Kind.String() }

// SequenceSchema is a homogeneous ordered collection. ToChunk and FromChunk
// convert between the user-facing collection value and the generic []any
// chunk the codec traverses.
type SequenceSchema struct {
	Element   Schema
	ToChunk   func(v any) ([]any, error)
	FromChunk func(chunk []any) any
}

func (s *SequenceSchema) String() string { return "sequence(" + s.Element.String() + ")" }

// TupleSchema is an ordered pair.
type TupleSchema struct {
	Left  Schema
	Right Schema
}

func (s *TupleSchema) String() string {
	return "tuple(" + s.Left.String() + "," + s.Right.String() + ")"
}

// OptionalSchema is zero-or-one of Inner. A nil value is the absent case.
type OptionalSchema struct {
	Inner Schema
}

func (s *OptionalSchema) String() string { return "optional(" + s.Inner.String() + ")" }

// EitherSchema is a tagged union of exactly two alternatives; values are
// Left or Right.
type EitherSchema struct {
	Left  Schema
	Right Schema
}

func (s *EitherSchema) String() string {
	return "either(" + s.Left.String() + "," + s.Right.String() + ")"
}

// TransformSchema carries conversions between the stored inner
// representation and a user-facing value. Ap runs on decode, Unap on encode;
// for values that round-trip, Unap then Ap is the identity.
type TransformSchema struct {
	Inner Schema
	Ap    func(inner any) (any, error)
	Unap  func(v any) (any, error)
}

func (s *TransformSchema) String() string { return "transform(" + s.Inner.String() + ")" }

// GenericRecordSchema is a named-field product with a runtime-dynamic field
// list; values are *OrderedMapAny.
type GenericRecordSchema struct {
	Fields *OrderedMap[Schema]
}

func (s *GenericRecordSchema) String() string {
	var b strings.Builder
	b.WriteString("record(")
	first := true
	for name, sub := range s.Fields.ItemsIter() {
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(sub.String())
	}
	b.WriteByte(')')
	return b.String()
}

// EnumerationSchema is a runtime-dynamic sum; a value is a single-entry
// *OrderedMapAny naming the present case.
type EnumerationSchema struct {
	Cases *OrderedMap[Schema]
}

func (s *EnumerationSchema) String() string {
	var b strings.Builder
	b.WriteString("enumeration(")
	first := true
	for name := range s.Cases.KeysIter() {
		if !first {
			b.WriteByte('|')
		}
		first = false
		b.WriteString(name)
	}
	b.WriteByte(')')
	return b.String()
}

// ProductField is one field of a statically-sized product. Get extracts the
// field value from the parent.
type ProductField struct {
	Name   string
	Schema Schema
	Get    func(parent any) any
}

// ProductSchema is a statically-sized product of any arity. Construct builds
// the parent value from the field values in declaration order.
type ProductSchema struct {
	TypeName  string
	Fields    []ProductField
	Construct func(values []any) any
}

func (s *ProductSchema) String() string {
	if s.TypeName != "" {
		return s.TypeName
	}
	return fmt.Sprintf("product/%d", len(s.Fields))
}

// EnumCase is one alternative of a statically-sized sum. Deconstruct probes
// whether a parent value belongs to this case and extracts the child.
type EnumCase struct {
	Name        string
	Schema      Schema
	Deconstruct func(parent any) (child any, ok bool)
}

// EnumSchema is a statically-sized sum. For any value exactly one case's
// Deconstruct reports ok.
type EnumSchema struct {
	TypeName string
	Cases    []EnumCase
}

func (s *EnumSchema) String() string {
	if s.TypeName != "" {
		return s.TypeName
	}
	return fmt.Sprintf("enum/%d", len(s.Cases))
}

// FailSchema always fails to decode and encodes to the empty byte sequence.
type FailSchema struct {
	Message string
}

func (s *FailSchema) String() string { return "fail(" + s.Message + ")" }

// SingletonSchema is a product of zero fields decoding to a fixed instance.
type SingletonSchema struct {
	Instance any
}

func (s *SingletonSchema) String() string { return "singleton" }

// LazySchema defers schema construction so a sum or product can reference
// itself. Codecs resolve it at every traversal step.
type LazySchema struct {
	Resolve func() Schema
}

func (s *LazySchema) String() string { return "lazy" }

// TuplePair is the value form of TupleSchema.
type TuplePair struct {
	First  any
	Second any
}

// Left marks the first alternative of an either value.
type Left struct {
	Value any
}

// Right marks the second alternative of an either value.
type Right struct {
	Value any
}

func primitive(k Kind) Schema { return &PrimitiveSchema{Type: StandardType{Kind: k}} }

var (
	SUnit    = primitive(KindUnit)
	SBool    = primitive(KindBool)
	SShort   = primitive(KindShort)
	SInt     = primitive(KindInt)
	SLong    = primitive(KindLong)
	SFloat32 = primitive(KindFloat32)
	SFloat64 = primitive(KindFloat64)
	SString  = primitive(KindString)
	SBytes   = primitive(KindBinary)
	SChar    = primitive(KindChar)

	SDayOfWeek  = primitive(KindDayOfWeek)
	SMonth      = primitive(KindMonth)
	SMonthDay   = primitive(KindMonthDay)
	SPeriod     = primitive(KindPeriod)
	SYear       = primitive(KindYear)
	SYearMonth  = primitive(KindYearMonth)
	SZoneID     = primitive(KindZoneID)
	SZoneOffset = primitive(KindZoneOffset)
	SDuration   = primitive(KindDuration)
)

func temporal(k Kind, layout string) Schema {
	return &PrimitiveSchema{Type: StandardType{Kind: k, Layout: layout}}
}

// SInstant and friends carry the wire layout inside the descriptor; an empty
// layout selects the package default for the kind.
func SInstant(layout string) Schema {
	return temporal(KindInstant, orDefault(layout, LayoutInstant))
}

func SLocalDate(layout string) Schema {
	return temporal(KindLocalDate, orDefault(layout, LayoutLocalDate))
}

func SLocalTime(layout string) Schema {
	return temporal(KindLocalTime, orDefault(layout, LayoutLocalTime))
}

func SLocalDateTime(layout string) Schema {
	return temporal(KindLocalDateTime, orDefault(layout, LayoutLocalDateTime))
}

func SOffsetTime(layout string) Schema {
	return temporal(KindOffsetTime, orDefault(layout, LayoutOffsetTime))
}

func SOffsetDateTime(layout string) Schema {
	return temporal(KindOffsetDateTime, orDefault(layout, LayoutOffsetDateTime))
}

func SZonedDateTime(layout string) Schema {
	return temporal(KindZonedDateTime, orDefault(layout, LayoutZonedDateTime))
}

func orDefault(layout, def string) string {
	if layout == "" {
		return def
	}
	return layout
}

// SSequence describes a []any collection of element values.
func SSequence(element Schema) Schema {
	return &SequenceSchema{
		Element: element,
		ToChunk: func(v any) ([]any, error) {
			if v == nil {
				return nil, nil
			}
			chunk, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("sequence value is %T, not []any", v)
			}
			return chunk, nil
		},
		FromChunk: func(chunk []any) any { return chunk },
	}
}

func STuple(left, right Schema) Schema {
	return &TupleSchema{Left: left, Right: right}
}

func SOptional(inner Schema) Schema {
	return &OptionalSchema{Inner: inner}
}

func SEither(left, right Schema) Schema {
	return &EitherSchema{Left: left, Right: right}
}

func STransform(inner Schema, ap, unap func(any) (any, error)) Schema {
	return &TransformSchema{Inner: inner, Ap: ap, Unap: unap}
}

// SRecord declares a generic record from ordered (name, schema) pairs.
func SRecord(fields ...Pair[Schema]) Schema {
	return &GenericRecordSchema{Fields: NewOrderedMap(fields...)}
}

// SEnumeration declares a dynamic sum from ordered (name, schema) pairs.
func SEnumeration(cases ...Pair[Schema]) Schema {
	return &EnumerationSchema{Cases: NewOrderedMap(cases...)}
}

// SProduct declares a statically-sized product.
func SProduct(typeName string, construct func([]any) any, fields ...ProductField) Schema {
	return &ProductSchema{TypeName: typeName, Fields: fields, Construct: construct}
}

// SEnum declares a statically-sized sum.
func SEnum(typeName string, cases ...EnumCase) Schema {
	return &EnumSchema{TypeName: typeName, Cases: cases}
}

func SFail(message string) Schema {
	return &FailSchema{Message: message}
}

func SSingleton(instance any) Schema {
	return &SingletonSchema{Instance: instance}
}

func SLazy(resolve func() Schema) Schema {
	return &LazySchema{Resolve: resolve}
}

// F declares a record field inline.
func F(name string, s Schema) Pair[Schema] {
	return Pair[Schema]{Key: name, Value: s}
}
