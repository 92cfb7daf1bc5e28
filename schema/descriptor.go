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

// Package schema describes the reflection facts the query builder needs
// about Go types that stand in for EdgeDB object types: their EdgeQL name,
// their properties, and which of those properties are links, multi-links,
// or exclusive constraints.
//
// Descriptors are derived once per Go type and cached, the same way the
// teacher lineage caches struct-tag lookups in its reflectlite package
// instead of re-walking reflect.Type on every call.
package schema

import "reflect"

// PropertyDescriptor describes a single field of a TypeDescriptor.
type PropertyDescriptor struct {
	// SourceName is the Go struct field name.
	SourceName string

	// EdgedbName is the property name as it appears in the EdgeQL shape.
	EdgedbName string

	// ValueType is the Go type of the field, after unwrapping pointers.
	ValueType reflect.Type

	// IsLink reports whether the property references another object type.
	IsLink bool

	// IsMultiLink reports whether the link is set-valued.
	IsMultiLink bool

	// LinkTarget is the Go type of the linked object (element type, for
	// multi-links). Zero value when IsLink is false.
	LinkTarget reflect.Type

	// IsExclusive reports whether the database enforces a single-property
	// uniqueness constraint on this property. Composite exclusives are
	// recorded on ObjectInfo instead, since they are a database fact, not
	// a per-property one.
	IsExclusive bool

	// IsID reports whether this is the object's id property. id properties
	// are never emitted as shape keys.
	IsID bool

	// Ignored properties are skipped entirely during shape construction.
	Ignored bool
}

// TypeDescriptor describes an EdgeDB object type as reflected from a Go
// type.
type TypeDescriptor struct {
	// EdgedbName is the type's name in the EdgeQL schema.
	EdgedbName string

	// GoType is the reflect.Type this descriptor was derived from.
	GoType reflect.Type

	// Properties lists every reflected property, including ignored and id
	// ones; callers filter during shape construction per §4.2.1.
	Properties []PropertyDescriptor
}

// Property looks up a property by its Go source field name.
func (t TypeDescriptor) Property(sourceName string) (PropertyDescriptor, bool) {
	for _, p := range t.Properties {
		if p.SourceName == sourceName {
			return p, true
		}
	}
	return PropertyDescriptor{}, false
}

// Exclusives returns the edgedb names of every single-property exclusive
// constraint declared directly on the type descriptor (not composite ones,
// which live in ObjectInfo and require introspection to discover).
func (t TypeDescriptor) Exclusives() []string {
	var names []string
	for _, p := range t.Properties {
		if p.IsExclusive && !p.Ignored {
			names = append(names, p.EdgedbName)
		}
	}
	return names
}
