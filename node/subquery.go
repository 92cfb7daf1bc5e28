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

import "github.com/edgeql-go/qbuilder/schema"

// SubQuery is either already-materialized text or a deferred builder
// taking SchemaInfo and producing text (§3). It is the Go sum type the
// design notes call for in place of a runtime "requires_introspection"
// boolean living separately from the value that needs it: the Deferred
// variant carries its own dependency on SchemaInfo, so there is nothing
// to get out of sync.
type SubQuery struct {
	text     string
	deferred func(*schema.Info) (string, error)
}

// Ready wraps already-known text that needs no schema facts.
func Ready(text string) SubQuery {
	return SubQuery{text: text}
}

// Deferred wraps a builder function that needs SchemaInfo to produce its
// text, e.g. a synthesized `unless conflict on <exclusives>`.
func Deferred(fn func(*schema.Info) (string, error)) SubQuery {
	return SubQuery{deferred: fn}
}

// RequiresIntrospection reports whether this sub-query needs SchemaInfo
// to resolve.
func (s SubQuery) RequiresIntrospection() bool {
	return s.deferred != nil
}

// Resolve produces the sub-query's text, invoking the deferred builder
// with info if this SubQuery is the Deferred variant.
func (s SubQuery) Resolve(info *schema.Info) (string, error) {
	if s.deferred != nil {
		return s.deferred(info)
	}
	return s.text, nil
}
