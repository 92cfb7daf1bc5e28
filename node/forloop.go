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

	"github.com/edgeql-go/qbuilder/expr"
)

// For renders a `for <iterName> in <iterable> union (<body>)` statement
// (§4.1's "for" operation). It generalizes the per-depth `for iter in
// json_array_unpack(...) union (insert ...)` shape JSONInsert emits
// inline (§4.2.2) into a standalone, user-constructible node — grounded
// on the teacher's foreach.go, which wraps a nested node group the same
// way, minus the XML-tag iteration variable plumbing this package's
// nodes don't need.
type For struct {
	Base

	iterName string
	iterable expr.Expr
	body     Node

	iterableText string
}

// NewFor builds a For node iterating iterName over iterable, executing
// body once per iteration.
func NewFor(iterName string, iterable expr.Expr, body Node) *For {
	return &For{Base: Base{Kind: KindFor}, iterName: iterName, iterable: iterable, body: body}
}

func (n *For) Visit(env Environment) error {
	tr := expr.New()
	text, err := tr.Translate(n.iterable)
	if err != nil {
		return err
	}
	n.iterableText = text
	return n.body.Visit(env)
}

func (n *For) Finalize(env Environment) error {
	if err := n.body.Finalize(env); err != nil {
		return err
	}
	n.WriteString(fmt.Sprintf("for %s in %s union (%s)", n.iterName, n.iterableText, n.body.Text()))
	return promoteToGlobalIfRequested(&n.Base, env)
}
