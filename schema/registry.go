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
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/edgeql-go/qbuilder/internal/stringutil"
)

// registry caches TypeDescriptors by their underlying Go type so repeated
// Describe calls for the same type in one process don't re-walk reflection.
var registry sync.Map // reflect.Type -> TypeDescriptor

// Register explicitly installs a TypeDescriptor for T, bypassing
// reflection-based derivation entirely. This is the "compile-time schema
// descriptor" path called out as preferable to ad-hoc reflection: a
// codegen step in a consuming application can call Register once per
// generated type at init time instead of relying on struct tags.
func Register[T any](d TypeDescriptor) {
	d.GoType = reflect.TypeOf(*new(T))
	registry.Store(d.GoType, d)
}

// Describe returns the TypeDescriptor for t, deriving it from struct tags
// on first use and caching the result. t must be a struct type or a
// pointer to one.
func Describe(t reflect.Type) (TypeDescriptor, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return TypeDescriptor{}, fmt.Errorf("schema: %s is not a struct type", t)
	}
	if cached, ok := registry.Load(t); ok {
		return cached.(TypeDescriptor), nil
	}
	d := derive(t)
	registry.Store(t, d)
	return d, nil
}

// derive builds a TypeDescriptor from struct field tags. The tag grammar
// mirrors the teacher's #{...} parameter tag style in spirit (a small,
// comma-separated annotation language) rather than its syntax:
//
//	`edgedb:"name"`                  // explicit edgedb name
//	`edgedb:"name,exclusive"`        // single-property exclusive constraint
//	`edgedb:"name,link"`             // single link
//	`edgedb:"name,link,multi"`       // multi link
//	`edgedb:"-"`                     // ignored
//	`edgedb:"id"` on the id field, or a field literally named ID, is the
//	object id and is never emitted as a shape key.
func derive(t reflect.Type) TypeDescriptor {
	d := TypeDescriptor{
		EdgedbName: t.Name(),
		GoType:     t,
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		p := derivField(f)
		d.Properties = append(d.Properties, p)
	}
	return d
}

func derivField(f reflect.StructField) PropertyDescriptor {
	p := PropertyDescriptor{SourceName: f.Name}

	valueType := f.Type
	for valueType.Kind() == reflect.Pointer {
		valueType = valueType.Elem()
	}

	tag, hasTag := f.Tag.Lookup(edgedbTag)
	if hasTag && tag == "-" {
		p.Ignored = true
		return p
	}

	var explicitName string
	first := true
	stringutil.WalkByStep(tag, ',', func(_ int, part string) bool {
		part = strings.TrimSpace(part)
		if first {
			explicitName = part
			first = false
			return true
		}
		switch part {
		case "exclusive":
			p.IsExclusive = true
		case "link":
			p.IsLink = true
		case "multi":
			p.IsMultiLink = true
		case "id":
			p.IsID = true
		}
		return true
	})

	if hasTag && explicitName != "" {
		p.EdgedbName = explicitName
	} else {
		p.EdgedbName = DeriveEdgedbName(f.Name)
	}

	if f.Name == "ID" && !hasTag {
		p.IsID = true
	}
	if IsReserved(p.EdgedbName) {
		p.IsID = true
	}

	switch valueType.Kind() {
	case reflect.Struct:
		if _, scalar := ScalarTypeOf(valueType); !scalar {
			p.IsLink = true
			p.LinkTarget = valueType
		}
	case reflect.Slice, reflect.Array:
		elem := valueType.Elem()
		for elem.Kind() == reflect.Pointer {
			elem = elem.Elem()
		}
		if elem.Kind() == reflect.Struct {
			if _, scalar := ScalarTypeOf(elem); !scalar {
				p.IsLink = true
				p.IsMultiLink = true
				p.LinkTarget = elem
			}
		}
	}

	p.ValueType = valueType
	return p
}
