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
	"strings"

	"github.com/google/uuid"
)

// Variable is one binding in the statement's QueryVariables (§3): a
// generated name and the Go value bound to it, materialized later as the
// map passed to Server.Execute.
type Variable struct {
	Name  string
	Value any
}

// varState owns a Builder's QueryVariables: an ordered, append-only list
// of scalar bindings under names the generator never reuses. Names are
// derived from a random UUID rather than a counter so two independently
// built sub-statements spliced together (an Else branch, a nested
// deferred insert) can never collide on a variable name (§3).
type varState struct {
	order []Variable
	seen  map[string]bool
}

func newVarState() *varState {
	return &varState{seen: map[string]bool{}}
}

// add binds value under a fresh name and returns the name.
func (v *varState) add(value any) string {
	name := v.freshName()
	v.order = append(v.order, Variable{Name: name, Value: value})
	return name
}

func (v *varState) freshName() string {
	for {
		name := "v" + shortID()
		if !v.seen[name] {
			v.seen[name] = true
			return name
		}
	}
}

// toMap renders the bound variables as the map Server.Execute expects.
func (v *varState) toMap() map[string]any {
	m := make(map[string]any, len(v.order))
	for _, bound := range v.order {
		m[bound.Name] = bound.Value
	}
	return m
}

// shortID returns a short, URL-safe identifier derived from a random
// UUID, suitable as a suffix for a generated variable or global name.
// EdgeQL identifiers can't start with a digit or contain hyphens, so the
// raw UUID string is unsuitable as-is.
func shortID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:12]
}
