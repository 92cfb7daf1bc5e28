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

// Package server declares the capability surface the query builder core
// consumes from the transport client, without implementing it. The binary
// protocol, connection pool, TLS/auth, and codec subsystem all live
// upstream of this package (§1 Out of scope); Server is the seam between
// them and the core, the way the teacher lineage keeps database/sql
// itself out of its node/eval packages and only depends on a narrow
// session.Transaction-shaped interface.
package server

import (
	"context"
	"reflect"

	"github.com/edgeql-go/qbuilder/schema"
)

// Cardinality constrains how many rows a statement is expected to return.
type Cardinality int

const (
	CardinalityMany Cardinality = iota
	CardinalityOne
	CardinalityAtMostOne
)

// IOFormat selects the wire encoding of returned rows.
type IOFormat int

const (
	IOFormatBinary IOFormat = iota
	IOFormatJSON
)

// Capabilities is a bitset of server-side capabilities a statement may
// require (e.g. DDL, transactions, session config). The core treats it as
// an opaque flag set it passes through, never inspects.
type Capabilities uint64

// ParseResult is what a successful Parse call returns: enough information
// for the caller to validate argument shapes and decode results, without
// the core needing to understand the codec wire format itself.
type ParseResult struct {
	InCodecID    [16]byte
	OutCodecID   [16]byte
	Cardinality  Cardinality
	Capabilities Capabilities
	// ArgsAreObjectCodec reports whether the server described the input
	// codec as an object codec (named arguments) rather than null (no
	// arguments). Any other shape is a MalformedArgumentCodec invariant
	// violation the caller should surface immediately.
	ArgsAreObjectCodec bool
}

// ExecuteResult carries whatever the transport decoded; the core never
// looks inside it (§1 Non-goals: "the core does not interpret query
// results").
type ExecuteResult struct {
	Rows any
}

// Server is the capability surface the core depends on. A real
// implementation wraps the binary protocol connection; tests use
// server/servertest's in-memory fake.
type Server interface {
	// Parse compiles query and returns codec and cardinality information.
	Parse(ctx context.Context, query string, cardinality Cardinality, ioFormat IOFormat, capabilities Capabilities) (ParseResult, error)

	// Execute runs query with the given bound variables.
	Execute(ctx context.Context, query string, variables map[string]any, cardinality Cardinality, ioFormat IOFormat, capabilities Capabilities) (ExecuteResult, error)

	// DescribeSchema returns introspected object information for each of
	// the given Go types, keyed by Go type per schema.Info's contract.
	DescribeSchema(ctx context.Context, typesOfInterest []reflect.Type) (*schema.Info, error)
}
