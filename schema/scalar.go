/*
Copyright 2025 eatmoreapple

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package schema

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScalarTypeOf resolves the EdgeQL scalar type name for a Go value type, as
// used by the Insert node's shape builder (§4.2.1) to render
// `edgedb_name := <scalar_type>$name`.
//
// ok is false when no mapping exists; callers surface UnserializableType.
func ScalarTypeOf(t reflect.Type) (name string, ok bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name, ok := scalarsByType[t]; ok {
		return name, true
	}
	switch t.Kind() {
	case reflect.String:
		return "str", true
	case reflect.Bool:
		return "bool", true
	case reflect.Int16:
		return "int16", true
	case reflect.Int32, reflect.Int:
		return "int32", true
	case reflect.Int64:
		return "int64", true
	case reflect.Float32:
		return "float32", true
	case reflect.Float64:
		return "float64", true
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return "bytes", true
		}
		elem, ok := ScalarTypeOf(t.Elem())
		if !ok {
			return "", false
		}
		return "array<" + elem + ">", true
	default:
		return "", false
	}
}

// scalarsByType holds exact-type overrides that the Kind()-based fallback
// in ScalarTypeOf cannot express (named structs, third-party value types).
var scalarsByType = map[reflect.Type]string{
	reflect.TypeOf(uuid.UUID{}):         "uuid",
	reflect.TypeOf(decimal.Decimal{}):   "decimal",
	reflect.TypeOf(time.Time{}):         "datetime",
	reflect.TypeOf(LocalDate{}):         "cal::local_date",
	reflect.TypeOf(LocalTime{}):         "cal::local_time",
	reflect.TypeOf(LocalDateTime{}):     "cal::local_datetime",
	reflect.TypeOf(time.Duration(0)):    "duration",
	reflect.TypeOf(RelativeDuration{}):  "cal::relative_duration",
	reflect.TypeOf(RawJSON{}):           "json",
}

// RegisterScalar adds or overrides the EdgeQL scalar type name used for
// values of type T. Call during package init, mirroring the teacher's
// init-time translator registration (§4.3 design note: "Assembly-wide
// translator discovery -> explicit registration").
func RegisterScalar[T any](edgeqlType string) {
	scalarsByType[reflect.TypeOf(*new(T))] = edgeqlType
}

// LocalDate mirrors EdgeQL's cal::local_date: a date with no time or zone
// component. The core does not interpret its value, only serializes it.
type LocalDate struct {
	Year  int
	Month int
	Day   int
}

// LocalTime mirrors EdgeQL's cal::local_time.
type LocalTime struct {
	Hour, Minute, Second, Microsecond int
}

// LocalDateTime mirrors EdgeQL's cal::local_datetime.
type LocalDateTime struct {
	Date LocalDate
	Time LocalTime
}

// RelativeDuration mirrors EdgeQL's cal::relative_duration, a calendar
// duration that is not reducible to a fixed number of seconds.
type RelativeDuration struct {
	Months, Days int
	Microseconds int64
}

// RawJSON is a pre-encoded JSON document. It is bound as a json-typed
// variable verbatim, never re-marshaled.
type RawJSON []byte
