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

import "reflect"

// ObjectInfo lists the concrete exclusive constraints the database knows
// about for one object type, as returned by introspection. Single-property
// constraints are []string of length one; composite constraints list every
// participating property.
type ObjectInfo struct {
	Exclusives [][]string
}

// HasExclusives reports whether the type has any exclusive constraint at
// all, single or composite.
func (o ObjectInfo) HasExclusives() bool {
	return len(o.Exclusives) > 0
}

// Info is the schema-wide introspection result: one ObjectInfo per
// requested type, keyed by its underlying Go type per §3's
// "SchemaInfo: mapping TypeDescriptor -> ObjectInfo" (GoType stands in for
// TypeDescriptor as the map key since TypeDescriptor itself is not
// comparable).
type Info struct {
	objects map[reflect.Type]ObjectInfo
}

// NewInfo builds an Info from a map of Go type to ObjectInfo, as returned
// by a server.Server.DescribeSchema call.
func NewInfo(objects map[reflect.Type]ObjectInfo) *Info {
	return &Info{objects: objects}
}

// Lookup returns the ObjectInfo for t, unwrapping pointers.
func (i *Info) Lookup(t reflect.Type) (ObjectInfo, bool) {
	if i == nil {
		return ObjectInfo{}, false
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	o, ok := i.objects[t]
	return o, ok
}

// ExclusivesOf returns the exclusive-constraint clause components for t:
// the descriptor's own single-property exclusives merged with any
// composite exclusives introspection discovered, each rendered as one
// `unless conflict on` candidate (either `.prop` or `(.a, .b)`).
func ExclusivesOf(d TypeDescriptor, info *Info) [][]string {
	var out [][]string
	for _, name := range d.Exclusives() {
		out = append(out, []string{name})
	}
	if o, ok := info.Lookup(d.GoType); ok {
		for _, composite := range o.Exclusives {
			if len(composite) < 2 {
				continue
			}
			out = append(out, composite)
		}
	}
	return out
}
