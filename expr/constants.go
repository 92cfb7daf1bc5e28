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

package expr

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Enumer lets a Go enum type control how it renders as an EdgeQL constant:
// as a quoted lowercase string, or as its underlying numeric value.
type Enumer interface {
	EdgeQLEnum() (value string, asString bool)
}

// TypeNamer resolves the EdgeQL type name for a Go reflect.Type, used when
// a Constant wraps a reflect.Type value (a type-name literal). Translator
// falls back to t.Name() when unset.
type TypeNamer func(t reflect.Type) string

// renderConstant implements the parse_object family of rules from §4.3:
// strings are quoted, enums honor their annotation, types render as their
// EdgeQL type name, null becomes {}, and everything else falls back to its
// canonical textual form. A rune is an int32 to the type switch, so a char
// renders as its numeric code point, not as a quoted string.
func renderConstant(v any, typeNamer TypeNamer) (string, error) {
	if v == nil {
		return "{}", nil
	}
	switch t := v.(type) {
	case string:
		return quoteString(t), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int16:
		return strconv.FormatInt(int64(t), 10), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case decimal.Decimal:
		return t.String() + "n", nil
	case reflect.Type:
		if typeNamer != nil {
			return typeNamer(t), nil
		}
		return t.Name(), nil
	}

	if en, ok := v.(Enumer); ok {
		value, asString := en.EdgeQLEnum()
		if asString {
			return quoteString(strings.ToLower(value)), nil
		}
		return value, nil
	}

	if s, ok := v.(fmt.Stringer); ok {
		return quoteString(s.String()), nil
	}

	return fmt.Sprintf("%v", v), nil
}

// quoteString renders an EdgeQL single-quoted string literal, escaping
// backslashes and single quotes.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\', '\'':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}
