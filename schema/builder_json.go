package schema

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// SchemaJSON is the serializable description a Schema can be built from.
type SchemaJSON struct {
	Type       string       `json:"type"`
	FieldNames []string     `json:"fieldNames,omitempty"`
	Schema     []SchemaJSON `json:"schema,omitempty"`

	// Temporal layout for the string-formatted time typetags
	Layout string `json:"layout,omitempty"`

	// Constraint helpers
	Min     *int64 `json:"min,omitempty"`
	Max     *int64 `json:"max,omitempty"`
	Exact   string `json:"exact,omitempty"`
	Prefix  string `json:"prefix,omitempty"`
	Suffix  string `json:"suffix,omitempty"`
	Pattern string `json:"pattern,omitempty"`

	// Message for the "fail" type
	Message string `json:"message,omitempty"`

	// Extra metadata for UI or other purposes
	Extra map[string]any `json:"extra,omitempty"`
}

// Registry of custom schema builders.
// Key: type name (case-sensitive), Value: builder function.
var customSchemaBuilders = map[string]func(*SchemaJSON) Schema{}

// RegisterSchemaType registers a custom Schema builder for a given type name.
//
// Usage:
//
//	schema.RegisterSchemaType("MyCustomType", func(js *schema.SchemaJSON) schema.Schema {
//	    return schema.SStringPattern("[A-Z]{3}[0-9]{2}")
//	})
//
// Notes:
//   - Type names are case-sensitive ("MyCustomType" ≠ "mycustomtype").
//   - Panics if the type name is empty or already registered as a custom type.
//     Built-in type names are not checked; BuildSchema resolves them before
//     consulting the registry, so a builder registered under one is never used.
//   - Use UnregisterSchemaType to remove a custom type.
func RegisterSchemaType(typeName string, builder func(*SchemaJSON) Schema) {
	if typeName == "" {
		panic("cannot register empty type name")
	}
	if _, exists := customSchemaBuilders[typeName]; exists {
		panic("schema type already registered: " + typeName)
	}
	customSchemaBuilders[typeName] = builder
}

// UnregisterSchemaType removes a previously registered custom Schema builder.
// If the type name is not found, the function does nothing.
func UnregisterSchemaType(typeName string) {
	delete(customSchemaBuilders, typeName)
}

// BuildSchemaJSON unmarshals a JSON description and builds the Schema.
func BuildSchemaJSON(data []byte) (Schema, error) {
	var js SchemaJSON
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, fmt.Errorf("schema json: %w", err)
	}
	return BuildSchema(&js)
}

// BuildSchema constructs a Schema instance from a SchemaJSON definition.
//
// It inspects the `Type` field of the provided SchemaJSON and returns the
// corresponding Schema. Built-in typetags include:
//
//   - "unit", "bool", "short", "int", "long", "float32", "float64"
//   - "string" with optional exact/prefix/suffix/pattern constraints
//   - "email", "uri", "lang"
//   - "bytes", "char"
//   - "record"      → fieldNames + schema, aligned by index
//   - "sequence"    → schema[0] is the element
//   - "optional"    → schema[0] is the inner schema
//   - "either"      → schema[0] is left, schema[1] is right
//   - "tuple"       → schema[0] is left, schema[1] is right
//   - "enumeration" → fieldNames + schema, aligned by index
//   - "fail"        → message
//   - temporal typetags ("instant", "localDate", …) with optional layout
//
// If the type is not recognized, BuildSchema checks the custom registry
// (see RegisterSchemaType) before failing.
func BuildSchema(js *SchemaJSON) (Schema, error) {
	if js == nil {
		return nil, fmt.Errorf("nil schema json")
	}
	switch js.Type {
	case "unit":
		return SUnit, nil
	case "bool":
		return SBool, nil
	case "short":
		return SShort, nil
	case "int":
		if js.Min != nil || js.Max != nil {
			return SIntRange(js.Min, js.Max), nil
		}
		return SInt, nil
	case "long":
		if js.Min != nil || js.Max != nil {
			return SLongRange(js.Min, js.Max), nil
		}
		return SLong, nil
	case "float32":
		return SFloat32, nil
	case "float64":
		return SFloat64, nil
	case "string":
		if js.Exact != "" {
			return SStringMatch(js.Exact), nil
		}
		if js.Prefix != "" {
			return SStringPrefix(js.Prefix), nil
		}
		if js.Suffix != "" {
			return SStringSuffix(js.Suffix), nil
		}
		if js.Pattern != "" {
			return SStringPattern(js.Pattern), nil
		}
		return SString, nil
	case "email":
		return SEmail(), nil
	case "uri":
		return SURI(), nil
	case "lang":
		return SLang(), nil
	case "bytes":
		return SBytes, nil
	case "char":
		return SChar, nil
	case "record":
		fields, err := namedSubSchemas(js)
		if err != nil {
			return nil, err
		}
		return &GenericRecordSchema{Fields: fields}, nil
	case "enumeration":
		cases, err := namedSubSchemas(js)
		if err != nil {
			return nil, err
		}
		return &EnumerationSchema{Cases: cases}, nil
	case "sequence":
		elem, err := oneSubSchema(js)
		if err != nil {
			return nil, err
		}
		return SSequence(elem), nil
	case "optional":
		inner, err := oneSubSchema(js)
		if err != nil {
			return nil, err
		}
		return SOptional(inner), nil
	case "either":
		left, right, err := twoSubSchemas(js)
		if err != nil {
			return nil, err
		}
		return SEither(left, right), nil
	case "tuple":
		left, right, err := twoSubSchemas(js)
		if err != nil {
			return nil, err
		}
		return STuple(left, right), nil
	case "fail":
		return SFail(js.Message), nil
	case "dayOfWeek":
		return SDayOfWeek, nil
	case "month":
		return SMonth, nil
	case "monthDay":
		return SMonthDay, nil
	case "period":
		return SPeriod, nil
	case "year":
		return SYear, nil
	case "yearMonth":
		return SYearMonth, nil
	case "zoneId":
		return SZoneID, nil
	case "zoneOffset":
		return SZoneOffset, nil
	case "duration":
		return SDuration, nil
	case "instant":
		return SInstant(js.Layout), nil
	case "localDate":
		return SLocalDate(js.Layout), nil
	case "localTime":
		return SLocalTime(js.Layout), nil
	case "localDateTime":
		return SLocalDateTime(js.Layout), nil
	case "offsetTime":
		return SOffsetTime(js.Layout), nil
	case "offsetDateTime":
		return SOffsetDateTime(js.Layout), nil
	case "zonedDateTime":
		return SZonedDateTime(js.Layout), nil
	}
	if builder, ok := customSchemaBuilders[js.Type]; ok {
		return builder(js), nil
	}
	return nil, fmt.Errorf("unknown schema type %q", js.Type)
}

func namedSubSchemas(js *SchemaJSON) (*OrderedMap[Schema], error) {
	if len(js.FieldNames) != len(js.Schema) {
		return nil, fmt.Errorf("%s: %d field names for %d schemas", js.Type, len(js.FieldNames), len(js.Schema))
	}
	out := NewOrderedMap[Schema]()
	for i := range js.Schema {
		sub, err := BuildSchema(&js.Schema[i])
		if err != nil {
			return nil, err
		}
		out.Set(js.FieldNames[i], sub)
	}
	return out, nil
}

func oneSubSchema(js *SchemaJSON) (Schema, error) {
	if len(js.Schema) != 1 {
		return nil, fmt.Errorf("%s: expected 1 sub-schema, got %d", js.Type, len(js.Schema))
	}
	return BuildSchema(&js.Schema[0])
}

func twoSubSchemas(js *SchemaJSON) (Schema, Schema, error) {
	if len(js.Schema) != 2 {
		return nil, nil, fmt.Errorf("%s: expected 2 sub-schemas, got %d", js.Type, len(js.Schema))
	}
	left, err := BuildSchema(&js.Schema[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := BuildSchema(&js.Schema[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}
