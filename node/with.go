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

// With registers an explicit `name := (sub_query)` binding in the
// enclosing statement's `with` prelude (§4.1's "with" operation). Unlike
// the automatic promotion a node performs on itself via AsGlobal, a With
// node lets a caller name and reuse a sub-query up front, the way the
// teacher's include.go lets a mapper statement splice in a reusable
// fragment by name.
//
// A With node renders no text of its own in the statement body; its
// only effect is the registered global. Callers reference the bound
// name directly in a later node's expression (e.g. a filter that reads
// the global as a bare identifier).
type With struct {
	Base

	name string
	sub  SubQuery
}

// NewWith builds a With node binding name to sub.
func NewWith(name string, sub SubQuery) *With {
	return &With{Base: Base{Kind: KindWith}, name: name, sub: sub}
}

func (n *With) Visit(env Environment) error {
	if n.sub.RequiresIntrospection() {
		env.RequireIntrospection()
	}
	return env.RegisterNamedGlobal(n.name, n.sub)
}

func (n *With) Finalize(Environment) error { return nil }
