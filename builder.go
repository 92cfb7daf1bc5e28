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
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/edgeql-go/qbuilder/expr"
	"github.com/edgeql-go/qbuilder/node"
	"github.com/edgeql-go/qbuilder/schema"
	"github.com/edgeql-go/qbuilder/server"
)

// Builder assembles a sequence of node.Node clauses into one EdgeQL
// statement (§4.1). It owns the QueryVariables and QueryGlobals shared
// across every node in the chain, implementing node.Environment so the
// node package never needs to import qbuilder back.
//
// A Builder is not safe for concurrent use: its chained append methods
// and Build must run on one goroutine, the same restriction the teacher
// lineage places on a single statement's Binder.
type Builder struct {
	srv   server.Server
	nodes []node.Node

	vars    *varState
	globals *globalState

	requiresIntrospection bool
	introspectTypes       map[reflect.Type]bool
	schemaInfo            *schema.Info
}

// Option configures a Builder at construction.
type Option func(*Builder)

// WithServer supplies the capability surface Build uses to fetch
// SchemaInfo when a node requires introspection. A Builder with no
// Server can still assemble statements that never need schema facts
// (explicit conflict selectors, no links); it fails with
// ErrSchemaRequired the moment one does.
func WithServer(srv server.Server) Option {
	return func(b *Builder) { b.srv = srv }
}

// New returns an empty Builder. Chain the node-appending methods below to
// assemble a statement, then call Build.
func New(opts ...Option) *Builder {
	b := &Builder{vars: newVarState(), globals: newGlobalState()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Append adds n as the next node in the chain; its position in the slice
// is its position in the final statement (§4.1).
func (b *Builder) Append(n node.Node) *Builder {
	b.nodes = append(b.nodes, n)
	return b
}

// Insert appends an insert node built from value (a struct, pointer to
// struct, or expr.Lambda — §4.2 cases (a) and (b)), returning it so the
// caller can chain UnlessConflict/UnlessConflictOn/Else/AsGlobal before
// calling Build.
func (b *Builder) Insert(value any) (*node.Insert, error) {
	n, err := node.NewInsert(value)
	if err != nil {
		return nil, err
	}
	b.Append(n)
	return n, nil
}

// InsertJSON appends a JSON bulk insert node flattening roots into one
// `for iter in json_array_unpack(...) union (insert ...)` per depth
// (§4.2 case (c), §4.2.2).
func (b *Builder) InsertJSON(roots ...any) (*node.JSONInsert, error) {
	n, err := node.NewJSONInsert(roots)
	if err != nil {
		return nil, err
	}
	b.Append(n)
	return n, nil
}

// Select appends a select node over operatingType. filter may be nil to
// select every row.
func (b *Builder) Select(operatingType reflect.Type, filter expr.Expr) *node.Select {
	n := node.NewSelect(operatingType, filter)
	b.Append(n)
	return n
}

// Update appends an update node over operatingType.
func (b *Builder) Update(operatingType reflect.Type, filter expr.Expr, setFields map[string]expr.Expr) *node.Update {
	n := node.NewUpdate(operatingType, filter, setFields)
	b.Append(n)
	return n
}

// Delete appends a delete node over operatingType.
func (b *Builder) Delete(operatingType reflect.Type, filter expr.Expr) *node.Delete {
	n := node.NewDelete(operatingType, filter)
	b.Append(n)
	return n
}

// With registers an explicit `name := (sub_query)` global up front (§4.1
// "with" operation). Unlike the append methods above, With contributes no
// text to the statement body; callers reference name directly from a
// later node's expression.
func (b *Builder) With(name string, sub node.SubQuery) *Builder {
	b.Append(node.NewWith(name, sub))
	return b
}

// For appends a `for iterName in iterable union (body)` node.
func (b *Builder) For(iterName string, iterable expr.Expr, body node.Node) *Builder {
	b.Append(node.NewFor(iterName, iterable, body))
	return b
}

// Offset appends an `offset n` clause.
func (b *Builder) Offset(n int) *Builder {
	b.Append(node.NewOffset(n))
	return b
}

// Limit appends a `limit n` clause.
func (b *Builder) Limit(n int) *Builder {
	b.Append(node.NewLimit(n))
	return b
}

// OrderBy appends an `order by <expr> [desc]` clause.
func (b *Builder) OrderBy(operatingType reflect.Type, by expr.Expr, descending bool) *Builder {
	b.Append(node.NewOrderBy(operatingType, by, descending))
	return b
}

// --- node.Environment ---

func (b *Builder) NewVariable(value any) string {
	return b.vars.add(value)
}

func (b *Builder) GetOrAddGlobal(ref any, sub node.SubQuery) (string, error) {
	return b.globals.getOrAdd(ref, sub)
}

func (b *Builder) RequireIntrospection() {
	b.requiresIntrospection = true
}

func (b *Builder) RequireIntrospectionFor(t reflect.Type) {
	b.requiresIntrospection = true
	if b.introspectTypes == nil {
		b.introspectTypes = map[reflect.Type]bool{}
	}
	b.introspectTypes[t] = true
}

func (b *Builder) SchemaInfo() *schema.Info {
	return b.schemaInfo
}

func (b *Builder) NewGlobalName() string {
	return "g" + shortID()
}

func (b *Builder) RegisterNamedGlobal(name string, sub node.SubQuery) error {
	return b.globals.register(name, sub)
}

var _ node.Environment = (*Builder)(nil)

// --- node.ElseSource ---

// BuildAsElse renders this Builder's statement for embedding inside a
// parent Insert's `else (...)` clause (§4.2.3's Else(builder) form):
// every auto-generated node is dropped, the result is never itself
// promoted to a global, and every variable or global this Builder's
// nodes allocate is redirected into parentEnv so it lands in the same
// statement's `with` clause as the enclosing insert.
func (b *Builder) BuildAsElse(parentEnv node.Environment) (string, error) {
	visible := make([]node.Node, 0, len(b.nodes))
	for _, n := range b.nodes {
		if n.AutoGenerated() {
			continue
		}
		// Drop any AsGlobal request on the child node so its text stays
		// inside the else clause.
		if rv := reflect.ValueOf(n); rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Struct {
			if f := rv.Elem().FieldByName("Base"); f.IsValid() && f.CanAddr() {
				if base, ok := f.Addr().Interface().(*node.Base); ok {
					base.Context.SetAsGlobal = false
				}
			}
		}
		visible = append(visible, n)
	}

	if err := (node.Group(visible)).VisitAll(parentEnv); err != nil {
		return "", err
	}
	if err := (node.Group(visible)).FinalizeAll(parentEnv); err != nil {
		return "", err
	}
	return node.Group(visible).Join(), nil
}

var _ node.ElseSource = (*Builder)(nil)

// Result is a finalized statement ready for a transport client's
// Execute call: the EdgeQL text and its bound scalar variables (§4.1
// step 5, §6).
type Result struct {
	Query     string
	Variables map[string]any
}

// Build runs the two-pass Visit/Finalize pipeline over every appended
// node (§4.1): Visit every node, fetch SchemaInfo if any node required
// it, Finalize every node, resolve every registered global, and render
// the final `with ... <body>` text.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	if len(b.nodes) == 0 {
		return nil, ErrEmptyBuild
	}

	if err := node.Group(b.nodes).VisitAll(b); err != nil {
		return nil, err
	}

	if b.requiresIntrospection {
		if b.srv == nil {
			return nil, fmt.Errorf("%w: no server configured for introspection", ErrSchemaRequired)
		}
		info, err := b.srv.DescribeSchema(ctx, b.introspectionTypeList())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSchemaRequired, err)
		}
		if info == nil {
			return nil, ErrSchemaRequired
		}
		b.schemaInfo = info
	}

	if err := node.Group(b.nodes).FinalizeAll(b); err != nil {
		return nil, err
	}

	bindings, err := b.globals.resolveAll(b.schemaInfo)
	if err != nil {
		return nil, err
	}

	body := node.Group(b.nodes).Join()
	query := body
	if len(bindings) > 0 {
		query = "with " + strings.Join(bindings, ", ") + " " + body
	}

	return &Result{Query: query, Variables: b.vars.toMap()}, nil
}

func (b *Builder) introspectionTypeList() []reflect.Type {
	out := make([]reflect.Type, 0, len(b.introspectTypes))
	for t := range b.introspectTypes {
		out = append(out, t)
	}
	return out
}
