package schema

import (
	"fmt"
	"time"
)

// Kind enumerates the scalar leaves the codec understands.
type Kind int

const (
	KindUnit Kind = iota
	KindBool
	KindShort
	KindInt
	KindLong
	KindFloat32
	KindFloat64
	KindString
	KindBinary
	KindChar
	KindDayOfWeek
	KindMonth
	KindMonthDay
	KindPeriod
	KindYear
	KindYearMonth
	KindZoneID
	KindZoneOffset
	KindDuration
	KindInstant
	KindLocalDate
	KindLocalTime
	KindLocalDateTime
	KindOffsetTime
	KindOffsetDateTime
	KindZonedDateTime
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindBinary:
		return "binary"
	case KindChar:
		return "char"
	case KindDayOfWeek:
		return "dayOfWeek"
	case KindMonth:
		return "month"
	case KindMonthDay:
		return "monthDay"
	case KindPeriod:
		return "period"
	case KindYear:
		return "year"
	case KindYearMonth:
		return "yearMonth"
	case KindZoneID:
		return "zoneId"
	case KindZoneOffset:
		return "zoneOffset"
	case KindDuration:
		return "duration"
	case KindInstant:
		return "instant"
	case KindLocalDate:
		return "localDate"
	case KindLocalTime:
		return "localTime"
	case KindLocalDateTime:
		return "localDateTime"
	case KindOffsetTime:
		return "offsetTime"
	case KindOffsetDateTime:
		return "offsetDateTime"
	case KindZonedDateTime:
		return "zonedDateTime"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// StandardType describes a scalar leaf. Layout carries the time layout used
// by the string-formatted temporal kinds; the other kinds ignore it.
type StandardType struct {
	Kind   Kind
	Layout string
}

// IsTemporalString reports whether values of this type travel as a formatted
// time string on the wire.
func (t StandardType) IsTemporalString() bool {
	switch t.Kind {
	case KindInstant, KindLocalDate, KindLocalTime, KindLocalDateTime,
		KindOffsetTime, KindOffsetDateTime, KindZonedDateTime:
		return true
	}
	return false
}

// Default layouts for the temporal constructors.
const (
	LayoutInstant        = time.RFC3339Nano
	LayoutLocalDate      = "2006-01-02"
	LayoutLocalTime      = "15:04:05.999999999"
	LayoutLocalDateTime  = "2006-01-02T15:04:05.999999999"
	LayoutOffsetTime     = "15:04:05.999999999Z07:00"
	LayoutOffsetDateTime = time.RFC3339Nano
	LayoutZonedDateTime  = time.RFC3339Nano
)

// Unit is the value of the unit standard type.
type Unit struct{}

// MonthDay is a calendar month/day without a year.
type MonthDay struct {
	Month int
	Day   int
}

// YearMonth is a calendar year/month without a day.
type YearMonth struct {
	Year  int
	Month int
}

// Period is a calendar amount in years, months and days.
type Period struct {
	Years  int
	Months int
	Days   int
}
