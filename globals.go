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

package qbuilder

import (
	"fmt"

	"github.com/edgeql-go/qbuilder/node"
	"github.com/edgeql-go/qbuilder/schema"
)

// globalEntry is one binding destined for the statement's `with` clause:
// a name and the sub-query that resolves to its bound text.
type globalEntry struct {
	Name string
	Sub  node.SubQuery
}

// globalState owns a Builder's QueryGlobals: an ordered list of
// name->sub-query bindings, deduplicated by the reference identity of the
// Go value each sub-query was built from (§3 Global, §8 invariant 3 — two
// links to the same pointer collapse to one global no matter how many
// times GetOrAddGlobal is called for it).
type globalState struct {
	order []globalEntry
	index map[string]int // name -> position in order, for RegisterNamedGlobal's dedup check
	byRef map[any]string // reference identity -> already-assigned name
}

func newGlobalState() *globalState {
	return &globalState{index: map[string]int{}, byRef: map[any]string{}}
}

// getOrAdd implements node.Environment.GetOrAddGlobal: ref must be a
// non-nil, comparable value (in practice, a pointer) — the same ref
// always resolves to the same name, regardless of how many times or
// where in the node graph it is offered.
func (g *globalState) getOrAdd(ref any, sub node.SubQuery) (string, error) {
	if ref == nil {
		return "", fmt.Errorf("qbuilder: GetOrAddGlobal requires a non-nil reference")
	}
	if name, ok := g.byRef[ref]; ok {
		return name, nil
	}
	name := "g" + shortID()
	g.byRef[ref] = name
	if err := g.register(name, sub); err != nil {
		return "", err
	}
	return name, nil
}

// register implements node.Environment.RegisterNamedGlobal and the
// internal path getOrAdd uses for a fresh reference-identity binding.
// Re-registering the same name is an error (§7's ErrGlobalNameConflict):
// a caller that reuses an explicit global name, or two With nodes bound
// to the same name, is a programming error the builder should surface
// immediately rather than silently overwrite.
func (g *globalState) register(name string, sub node.SubQuery) error {
	if _, ok := g.index[name]; ok {
		return fmt.Errorf("%w: %q", ErrGlobalNameConflict, name)
	}
	g.index[name] = len(g.order)
	g.order = append(g.order, globalEntry{Name: name, Sub: sub})
	return nil
}

// resolveAll resolves every registered global's sub-query against info,
// in registration order, and returns the rendered `name := (text)`
// bindings ready to join into a `with` clause.
func (g *globalState) resolveAll(info *schema.Info) ([]string, error) {
	out := make([]string, 0, len(g.order))
	for _, entry := range g.order {
		text, err := entry.Sub.Resolve(info)
		if err != nil {
			return nil, fmt.Errorf("qbuilder: resolving global %q: %w", entry.Name, err)
		}
		out = append(out, entry.Name+" := ("+text+")")
	}
	return out, nil
}
