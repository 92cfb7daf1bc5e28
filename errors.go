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
	"errors"

	"github.com/edgeql-go/qbuilder/expr"
	"github.com/edgeql-go/qbuilder/node"
)

// Sentinel errors Build can return (§7). The node and expr packages own
// the conditions that trigger each one; qbuilder re-exports them so
// callers depend on one import instead of reaching into both lower
// packages with errors.Is.
var (
	// ErrSchemaRequired means a node needed SchemaInfo but the Builder has
	// no Server configured, the Server's DescribeSchema call failed (the
	// Server's own error is wrapped alongside), or it returned a nil Info.
	ErrSchemaRequired = node.ErrSchemaRequired

	// ErrNoExclusiveConstraints means unless-conflict synthesis found no
	// exclusive property to build a clause from.
	ErrNoExclusiveConstraints = node.ErrNoExclusiveConstraints

	// ErrUnserializableType means a Go type has no scalar or link mapping.
	ErrUnserializableType = node.ErrUnserializableType

	// ErrUnserializableProperty means a property's Go value could not be
	// rendered given its declared shape.
	ErrUnserializableProperty = node.ErrUnserializableProperty

	// ErrUnsupportedExpression means an expr.Expr value has no registered
	// translation handler.
	ErrUnsupportedExpression = expr.ErrUnsupportedExpression

	// ErrMalformedArgumentCodec means a Server.Parse call described its
	// input codec as something other than an object codec or null,
	// violating the one invariant the core assumes about Parse results.
	ErrMalformedArgumentCodec = errors.New("qbuilder: server described a non-object, non-null argument codec")

	// ErrGlobalNameConflict means two nodes registered a named global
	// under the same name with no dedup between them (With, or an
	// explicit AsGlobal name reused across nodes).
	ErrGlobalNameConflict = errors.New("qbuilder: global name already registered")

	// ErrEmptyBuild means Build was called with no nodes appended.
	ErrEmptyBuild = errors.New("qbuilder: no nodes appended to builder")
)
