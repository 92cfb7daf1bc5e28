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

package node

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/edgeql-go/qbuilder/schema"
)

// Tracked is implemented by domain objects whose id was populated from a
// prior query result. A tracked value is known to already exist in the
// database, so the link resolver can reference it directly by id instead
// of synthesizing a nested insert (§4.2.1 case 1).
type Tracked interface {
	TrackedID() (id uuid.UUID, ok bool)
}

// shapeEnv bundles what recursive shape construction needs: the shared
// Environment plus the enclosing Insert node's per-node SubQueryMap, which
// must be threaded through every recursive call so link cycles are caught
// no matter how deep the object graph goes (§3 SubQueryMap is "per-node",
// i.e. per top-level Insert, not per recursion depth).
type shapeEnv struct {
	env           Environment
	subQueryTypes map[reflect.Type]bool
}

// buildShape renders the brace-enclosed field list for goValue (a struct,
// already dereferenced), applying §4.2.1's per-property rules. desc must
// describe goValue's type.
func (s *shapeEnv) buildShape(desc schema.TypeDescriptor, goValue reflect.Value) (string, error) {
	var shape string
	for _, prop := range desc.Properties {
		if prop.Ignored || prop.IsID {
			continue
		}
		fieldValue := goValue.FieldByName(prop.SourceName)
		if !fieldValue.IsValid() {
			continue
		}
		text, err := s.shapeProperty(prop, fieldValue)
		if err != nil {
			return "", err
		}
		if shape != "" {
			shape += ", "
		}
		shape += prop.EdgedbName + " := " + text
	}
	return "{ " + shape + " }", nil
}

// shapeProperty renders one property's right-hand side per §4.2.1:
// scalar -> a bound variable, nil link -> {}, single link -> a resolved
// reference, multi link -> a set of resolved references.
func (s *shapeEnv) shapeProperty(prop schema.PropertyDescriptor, fieldValue reflect.Value) (string, error) {
	if !prop.IsLink {
		scalarType, ok := schema.ScalarTypeOf(prop.ValueType)
		if !ok {
			return "", fmt.Errorf("%w: %s has no scalar mapping", ErrUnserializableType, prop.ValueType)
		}
		name := s.env.NewVariable(fieldValue.Interface())
		return fmt.Sprintf("<%s>$%s", scalarType, name), nil
	}

	if prop.IsMultiLink {
		if fieldValue.Kind() != reflect.Slice && fieldValue.Kind() != reflect.Array {
			return "", fmt.Errorf("%w: multi link %s is not a slice", ErrUnserializableProperty, prop.EdgedbName)
		}
		if fieldValue.Len() == 0 {
			return "{}", nil
		}
		refs := make([]string, 0, fieldValue.Len())
		for i := 0; i < fieldValue.Len(); i++ {
			ref, err := s.resolveLink(prop.LinkTarget, fieldValue.Index(i))
			if err != nil {
				return "", err
			}
			refs = append(refs, ref)
		}
		return "{ " + joinComma(refs) + " }", nil
	}

	// single link
	if isNilValue(fieldValue) {
		return "{}", nil
	}
	return s.resolveLink(prop.LinkTarget, fieldValue)
}

// resolveLink implements the link resolver of §4.2.1 and offers its
// result to inlineOrGlobal.
func (s *shapeEnv) resolveLink(targetType reflect.Type, value reflect.Value) (string, error) {
	ptr, structValue, err := asPointerAndStruct(value)
	if err != nil {
		return "", err
	}

	desc, err := schema.Describe(targetType)
	if err != nil {
		return "", err
	}

	if tracked, ok := ptr.Interface().(Tracked); ok {
		if id, ok := tracked.TrackedID(); ok {
			sub := Ready(fmt.Sprintf("(select %s filter .id = <uuid>%q)", desc.EdgedbName, id.String()))
			return s.inlineOrGlobal(targetType, ptr.Interface(), sub)
		}
	}

	s.env.RequireIntrospectionFor(targetType)
	captured := s // closures below capture s by reference; shapeEnv carries no per-call state beyond the shared map/env, so this is safe.
	sub := Deferred(func(info *schema.Info) (string, error) {
		shape, err := captured.buildShape(desc, structValue)
		if err != nil {
			return "", err
		}
		clause, err := synthesizeConflictClause(desc, info)
		switch {
		case errors.Is(err, ErrNoExclusiveConstraints):
			// §4.2.1 case 2: a target type with no exclusive constraint has
			// nothing to conflict on, so the nested insert omits the
			// `unless conflict on` clause; the `else (select ...)` tail is
			// still rendered.
			return fmt.Sprintf("(insert %s %s else (select %s))", desc.EdgedbName, shape, desc.EdgedbName), nil
		case err != nil:
			return "", err
		}
		return fmt.Sprintf("(insert %s %s unless conflict on %s else (select %s))", desc.EdgedbName, shape, clause, desc.EdgedbName), nil
	})
	return s.inlineOrGlobal(targetType, ptr.Interface(), sub)
}

// inlineOrGlobal implements §4.2.1's dedup/promotion rule: a type already
// seen in this node's SubQueryMap, or any sub-query needing
// introspection, is promoted to a global; otherwise it is inlined and the
// type is recorded as seen.
func (s *shapeEnv) inlineOrGlobal(targetType reflect.Type, ref any, sub SubQuery) (string, error) {
	if s.subQueryTypes[targetType] || sub.RequiresIntrospection() {
		return s.env.GetOrAddGlobal(ref, sub)
	}
	s.subQueryTypes[targetType] = true
	return sub.Resolve(nil)
}

func asPointerAndStruct(value reflect.Value) (ptr reflect.Value, structValue reflect.Value, err error) {
	switch value.Kind() {
	case reflect.Pointer:
		if value.IsNil() {
			return reflect.Value{}, reflect.Value{}, fmt.Errorf("%w: nil link value passed to resolveLink", ErrUnserializableProperty)
		}
		return value, value.Elem(), nil
	case reflect.Struct:
		if !value.CanAddr() {
			cp := reflect.New(value.Type())
			cp.Elem().Set(value)
			return cp, cp.Elem(), nil
		}
		return value.Addr(), value, nil
	default:
		return reflect.Value{}, reflect.Value{}, fmt.Errorf("%w: link value must be a struct or pointer to struct, got %s", ErrUnserializableProperty, value.Kind())
	}
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
