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

// Package node is the query builder's node graph: one Go type per EdgeQL
// clause (insert, select, update, delete, with, for), each responsible
// for emitting its own text during a two-pass Visit/Finalize walk (§4.1).
//
// The package mirrors the teacher lineage's node package in spirit — one
// file per Node implementation, a shared interface the owning builder
// dispatches over — but the contract each Node implements is Visit/
// Finalize against a schema-aware Environment instead of Accept against a
// SQL dialect translator: clause ordering and schema introspection matter
// here in a way a single-pass SQL template never needed.
package node

import (
	"reflect"
	"strings"

	"github.com/edgeql-go/qbuilder/schema"
)

// Environment is the shared, builder-owned state a Node reads and writes
// during Visit and Finalize: QueryVariables, QueryGlobals, and the
// introspection-required flag from §3. It is implemented by the top-level
// Builder; Node lives in its own package so the builder package can
// import node without a cycle.
type Environment interface {
	// NewVariable allocates a unique variable name, binds value to it, and
	// returns the name for use in an inline `<scalar_type>$name` reference.
	NewVariable(value any) string

	// GetOrAddGlobal returns the name of the global registered for sub,
	// deduplicating by the identity of ref (a pointer). Two calls with the
	// same reference pointer collapse to one global (§3 Global, §8
	// invariant 3). ref must be a non-nil pointer.
	GetOrAddGlobal(ref any, sub SubQuery) (name string, err error)

	// RequireIntrospection marks that Finalize will need SchemaInfo from
	// the Server (§4.1 step 2).
	RequireIntrospection()

	// RequireIntrospectionFor marks t as a type the introspection request
	// must describe, in addition to flagging RequireIntrospection. Called
	// for every type a deferred sub-query's conflict-clause synthesis
	// depends on — the operating type of an auto-conflict Insert, a link
	// target resolved through a deferred sub-query, or a JSON bulk
	// insert's per-depth type.
	RequireIntrospectionFor(t reflect.Type)

	// SchemaInfo returns the introspection result fetched between Visit
	// and Finalize, or nil if none was required or available.
	SchemaInfo() *schema.Info

	// NewGlobalName allocates a fresh, unused global name not tied to any
	// reference-identity dedup (§4.2.2's T_d1…T_dD, §4.2.4's promoted
	// node globals).
	NewGlobalName() string

	// RegisterNamedGlobal binds sub under an explicit name already
	// obtained from NewGlobalName or supplied by the caller.
	RegisterNamedGlobal(name string, sub SubQuery) error
}

// Node is one clause in the final statement. Build calls Visit on every
// node in order, then — if introspection was required — fetches
// SchemaInfo and calls Finalize on every node in order (§4.1).
type Node interface {
	// Visit emits whatever text this node can produce without schema
	// facts, and flags RequireIntrospection on env if it will need them.
	Visit(env Environment) error

	// Finalize rewrites or appends to the node's text once SchemaInfo (if
	// requested) is available. Called on every node, even ones that did
	// not request introspection, so they can react to sibling state (an
	// else clause appended after a conflict clause, for instance).
	Finalize(env Environment) error

	// Text returns the node's current rendered text. Valid after Visit,
	// and authoritative after Finalize.
	Text() string

	// AutoGenerated reports whether the builder synthesized this node
	// itself rather than the caller appending it explicitly. An
	// ElseSource drops auto-generated nodes when embedding another
	// builder's statement as an else clause (§4.2.3).
	AutoGenerated() bool
}

// Context is the per-node state the spec calls NodeContext (§3): the
// value or lambda the node operates on, and whether/how its assembled
// text should be promoted to a global instead of inlined.
type Context struct {
	// Value is the object or expr.Lambda this node was built from.
	Value any

	// IsJSONVariable marks an Insert node built from a pre-serialized JSON
	// bulk document (§4.2 (c)) rather than a typed object or lambda.
	IsJSONVariable bool

	// SetAsGlobal requests that Finalize wrap this node's entire assembled
	// text in parentheses and register it as a global under GlobalName,
	// clearing the local text buffer (§4.2.4).
	SetAsGlobal bool

	// GlobalName is the name to register under when SetAsGlobal is true.
	// Left empty, a node allocates one itself when Finalize runs.
	GlobalName string
}

// Base holds the fields common to every Node implementation: its kind,
// the Go type it operates over, its Context, and its append-only text
// buffer. Concrete node types embed Base and add their own child nodes
// and clause-specific state.
type Base struct {
	Kind          Kind
	OperatingType reflect.Type
	Context       Context

	// IsAutoGenerated marks a node synthesized by the builder itself
	// rather than supplied by the caller; Else(builder) filters these out
	// (§4.2.3). An auto-generated `unless conflict` is not a node of its
	// own: it is a clause Insert appends to its own text.
	IsAutoGenerated bool

	buf *strings.Builder
}

// WriteString appends to the node's text buffer, drawing the underlying
// strings.Builder from the shared pool (pool.go) on first use.
func (b *Base) WriteString(s string) {
	if b.buf == nil {
		b.buf = getStringBuilder()
	}
	b.buf.WriteString(s)
}

// Text returns the buffer's current contents.
func (b *Base) Text() string {
	if b.buf == nil {
		return ""
	}
	return b.buf.String()
}

// ResetText clears the buffer and returns it to the pool, used when
// Finalize promotes the node's assembled text to a global (§4.2.4).
func (b *Base) ResetText() {
	if b.buf == nil {
		return
	}
	putStringBuilder(b.buf)
	b.buf = nil
}

// AutoGenerated implements Node.
func (b *Base) AutoGenerated() bool {
	return b.IsAutoGenerated
}

// Group concatenates several Nodes' text into one statement, separating
// non-empty fragments with a single space. Mirrors the teacher's
// NodeGroup.Accept concatenation rule, minus the translator/args plumbing
// this package's nodes don't need — variables and globals are referenced
// by name in the text itself, not threaded through a side channel.
type Group []Node

// Join renders every node's current Text(), in order, separated by a
// single space, skipping empty fragments.
func (g Group) Join() string {
	parts := make([]string, 0, len(g))
	for _, n := range g {
		if t := n.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// VisitAll calls Visit on every node in order, stopping at the first
// error.
func (g Group) VisitAll(env Environment) error {
	for _, n := range g {
		if err := n.Visit(env); err != nil {
			return err
		}
	}
	return nil
}

// FinalizeAll calls Finalize on every node in order, stopping at the
// first error.
func (g Group) FinalizeAll(env Environment) error {
	for _, n := range g {
		if err := n.Finalize(env); err != nil {
			return err
		}
	}
	return nil
}
