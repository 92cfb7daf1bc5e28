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

// Insert renders an `insert` statement from a typed domain object (§4.2
// case (a)) or an inline shape lambda (case (b)). The JSON bulk path
// (case (c)) is JSONInsert in insert_json.go — its depth-indexed
// array_agg emission shares nothing with a single-object shape beyond
// the conflict-clause synthesis in insert_conflict.go.
type Insert struct {
	Base

	elseClause   ElseSource
	elseDefault  bool
	autoConflict bool
	conflictExpr expr.Expr
	conflictText string

	desc schema.TypeDescriptor
}

// NewInsert builds an Insert node for value, which must be a struct, a
// pointer to struct, or an expr.Lambda whose parameter type names the
// operating type.
func NewInsert(value any) (*Insert, error) {
	t, err := operatingTypeOf(value)
	if err != nil {
		return nil, err
	}
	return &Insert{Base: Base{Kind: KindInsert, OperatingType: t, Context: Context{Value: value}}}, nil
}

func operatingTypeOf(value any) (reflect.Type, error) {
	if lambda, ok := value.(expr.Lambda); ok {
		if lambda.ParamType == nil {
			return nil, fmt.Errorf("%w: lambda has no parameter type", ErrUnserializableType)
		}
		return lambda.ParamType, nil
	}
	t := reflect.TypeOf(value)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: insert value must be a struct, pointer to struct, or lambda, got %T", ErrUnserializableType, value)
	}
	return t, nil
}

// UnlessConflict requests an auto-synthesized `unless conflict on
// <exclusives>` clause, resolved from introspection during Finalize
// (§4.2.3). Fails with ErrNoExclusiveConstraints if the type has none.
func (n *Insert) UnlessConflict() *Insert {
	n.autoConflict = true
	return n
}

// UnlessConflictOn appends an explicit `unless conflict on <selector>`
// clause immediately; selector is translated during Visit and needs no
// introspection (§4.2.3).
func (n *Insert) UnlessConflictOn(selector expr.Expr) *Insert {
	n.conflictExpr = selector
	return n
}

// ElseDefault appends `else (select OperatingType)` (§4.2.3).
func (n *Insert) ElseDefault() *Insert {
	n.elseDefault = true
	return n
}

// Else appends `else (<child>)`, where child renders its statement
// through src (§4.2.3's Else(builder) form).
func (n *Insert) Else(src ElseSource) *Insert {
	n.elseClause = src
	return n
}

// AsGlobal requests that Finalize promote this node's entire assembled
// statement to a global, clearing the local text buffer (§4.2.4). An
// empty name allocates a fresh one from the environment.
func (n *Insert) AsGlobal(name string) *Insert {
	n.Context.SetAsGlobal = true
	n.Context.GlobalName = name
	return n
}

// Visit implements Node.
func (n *Insert) Visit(env Environment) error {
	desc, err := schema.Describe(n.OperatingType)
	if err != nil {
		return err
	}
	n.desc = desc

	if lambda, ok := n.Context.Value.(expr.Lambda); ok {
		tr := expr.New()
		text, err := tr.Translate(lambda)
		if err != nil {
			return err
		}
		n.WriteString("insert " + text)
	} else {
		s := &shapeEnv{env: env, subQueryTypes: map[reflect.Type]bool{}}
		shape, err := s.buildShape(desc, dereferenceValue(n.Context.Value))
		if err != nil {
			return err
		}
		n.WriteString("insert " + desc.EdgedbName + " " + shape)
	}

	switch {
	case n.conflictExpr != nil:
		text, err := translateWithScope(n.conflictExpr, n.OperatingType)
		if err != nil {
			return err
		}
		n.conflictText = "unless conflict on " + text
	case n.autoConflict:
		env.RequireIntrospectionFor(n.OperatingType)
	}
	return nil
}

// Finalize implements Node. Order is fixed per §4.2.4: conflict synthesis,
// then the else clause, then optional promotion to a global.
func (n *Insert) Finalize(env Environment) error {
	if n.autoConflict {
		clause, err := synthesizeConflictClause(n.desc, env.SchemaInfo())
		if err != nil {
			return err
		}
		n.conflictText = "unless conflict on " + clause
	}
	if n.conflictText != "" {
		n.WriteString(" " + n.conflictText)
	}

	switch {
	case n.elseClause != nil:
		text, err := n.elseClause.BuildAsElse(env)
		if err != nil {
			return err
		}
		n.WriteString(" else (" + text + ")")
	case n.elseDefault:
		n.WriteString(" else (select " + n.desc.EdgedbName + ")")
	}

	return promoteToGlobalIfRequested(&n.Base, env)
}

// promoteToGlobalIfRequested implements the last step of §4.2.4 for any
// node kind: wrap the assembled text in parentheses, register it as a
// global, and clear the local buffer so downstream nodes reference the
// result by name.
func promoteToGlobalIfRequested(b *Base, env Environment) error {
	if !b.Context.SetAsGlobal {
		return nil
	}
	name := b.Context.GlobalName
	if name == "" {
		name = env.NewGlobalName()
		b.Context.GlobalName = name
	}
	if err := env.RegisterNamedGlobal(name, Ready("("+b.Text()+")")); err != nil {
		return err
	}
	b.ResetText()
	return nil
}

// translateWithScope translates e with a lambda scope bound to
// operatingType pushed, the way a filter or conflict selector references
// `.prop` without an explicit enclosing Lambda node.
func translateWithScope(e expr.Expr, operatingType reflect.Type) (string, error) {
	tr := expr.New()
	return tr.Translate(expr.Lambda{ParamName: "it", ParamType: operatingType, Body: e})
}

func dereferenceValue(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	return rv
}
