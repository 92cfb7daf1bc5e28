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

	"github.com/edgeql-go/qbuilder/expr"
	"github.com/edgeql-go/qbuilder/schema"
)

// Select renders a `select OperatingType filter <predicate>` statement
// (§4.1's "select(filter)" operation). An empty filter selects every
// row.
type Select struct {
	Base

	filter expr.Expr
}

// NewSelect builds a Select node over operatingType. filter may be nil.
func NewSelect(operatingType reflect.Type, filter expr.Expr) *Select {
	return &Select{Base: Base{Kind: KindSelect, OperatingType: operatingType}, filter: filter}
}

// AsGlobal requests that Finalize promote this node's assembled
// statement to a global (§4.2.4's promotion rule, generalized to every
// node kind).
func (n *Select) AsGlobal(name string) *Select {
	n.Context.SetAsGlobal = true
	n.Context.GlobalName = name
	return n
}

func (n *Select) Visit(env Environment) error {
	desc, err := schema.Describe(n.OperatingType)
	if err != nil {
		return err
	}
	n.WriteString("select " + desc.EdgedbName)
	if n.filter != nil {
		text, err := translateWithScope(n.filter, n.OperatingType)
		if err != nil {
			return err
		}
		n.WriteString(" filter " + text)
	}
	return nil
}

func (n *Select) Finalize(env Environment) error {
	return promoteToGlobalIfRequested(&n.Base, env)
}

// Offset appends an `offset N` clause as its own node, per §4.1's rule
// that each chained operation appends exactly one node.
type Offset struct {
	Base
	n int
}

// NewOffset builds an Offset node.
func NewOffset(n int) *Offset { return &Offset{n: n} }

func (o *Offset) Visit(Environment) error {
	o.WriteString(fmt.Sprintf("offset %d", o.n))
	return nil
}

func (o *Offset) Finalize(Environment) error { return nil }

// Limit appends a `limit N` clause as its own node.
type Limit struct {
	Base
	n int
}

// NewLimit builds a Limit node.
func NewLimit(n int) *Limit { return &Limit{n: n} }

func (l *Limit) Visit(Environment) error {
	l.WriteString(fmt.Sprintf("limit %d", l.n))
	return nil
}

func (l *Limit) Finalize(Environment) error { return nil }

// OrderBy appends an `order by <expr> [desc]` clause as its own node.
type OrderBy struct {
	Base

	by            expr.Expr
	descending    bool
	operatingType reflect.Type
}

// NewOrderBy builds an OrderBy node translating by against operatingType.
func NewOrderBy(operatingType reflect.Type, by expr.Expr, descending bool) *OrderBy {
	return &OrderBy{operatingType: operatingType, by: by, descending: descending}
}

func (o *OrderBy) Visit(Environment) error {
	text, err := translateWithScope(o.by, o.operatingType)
	if err != nil {
		return err
	}
	o.WriteString("order by " + text)
	if o.descending {
		o.WriteString(" desc")
	}
	return nil
}

func (o *OrderBy) Finalize(Environment) error { return nil }
