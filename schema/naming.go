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
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// edgedbTag is the struct tag this package reads when deriving a
// TypeDescriptor by reflection instead of explicit registration.
const edgedbTag = "edgedb"

var snakeFolder = cases.Lower(language.Und)

// reservedShapeNames must never be emitted as a user shape key (§6).
var reservedShapeNames = map[string]bool{
	"id":       true,
	"__type__": true,
}

// IsReserved reports whether name is a reserved EdgeQL identifier that the
// generator must never emit as a shape key.
func IsReserved(name string) bool {
	return reservedShapeNames[name]
}

// DeriveEdgedbName computes the canonical EdgeQL property name for a Go
// struct field when no explicit tag annotation is present: the field name
// folded to snake_case.
//
// Example: "FirstName" -> "first_name", "ID" -> "id".
func DeriveEdgedbName(fieldName string) string {
	var b strings.Builder
	b.Grow(len(fieldName) + 4)
	for i, r := range fieldName {
		if i > 0 && isUpper(r) && !isUpper(rune(fieldName[i-1])) {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return snakeFolder.String(b.String())
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// GoTypeName returns a readable name for a reflect.Type, unwrapping
// pointers, used in error messages when a property or call target cannot
// be resolved.
func GoTypeName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
