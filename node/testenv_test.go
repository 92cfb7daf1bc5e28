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
	"fmt"
	"reflect"

	"github.com/edgeql-go/qbuilder/schema"
)

// testEnv is a minimal, single-goroutine Environment fake for exercising
// Node implementations without pulling in the root qbuilder package
// (which imports node, making that dependency a cycle from here).
type testEnv struct {
	vars            map[string]any
	globals         map[string]SubQuery
	globalOrder     []string
	requiresSchema  bool
	introspectTypes map[reflect.Type]bool
	info            *schema.Info
	nextVar         int
	nextGlobal      int
}

func newTestEnv() *testEnv {
	return &testEnv{vars: map[string]any{}, globals: map[string]SubQuery{}, introspectTypes: map[reflect.Type]bool{}}
}

func (e *testEnv) NewVariable(value any) string {
	e.nextVar++
	name := fmt.Sprintf("v%d", e.nextVar)
	e.vars[name] = value
	return name
}

func (e *testEnv) GetOrAddGlobal(ref any, sub SubQuery) (string, error) {
	e.nextGlobal++
	name := fmt.Sprintf("g%d", e.nextGlobal)
	e.globals[name] = sub
	e.globalOrder = append(e.globalOrder, name)
	return name, nil
}

func (e *testEnv) RequireIntrospection() {
	e.requiresSchema = true
}

func (e *testEnv) RequireIntrospectionFor(t reflect.Type) {
	e.requiresSchema = true
	e.introspectTypes[t] = true
}

func (e *testEnv) SchemaInfo() *schema.Info {
	return e.info
}

func (e *testEnv) NewGlobalName() string {
	e.nextGlobal++
	return fmt.Sprintf("g%d", e.nextGlobal)
}

func (e *testEnv) RegisterNamedGlobal(name string, sub SubQuery) error {
	if _, ok := e.globals[name]; ok {
		return fmt.Errorf("testEnv: global %q already registered", name)
	}
	e.globals[name] = sub
	e.globalOrder = append(e.globalOrder, name)
	return nil
}

var _ Environment = (*testEnv)(nil)
