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
	"reflect"

	"github.com/edgeql-go/qbuilder/expr"
	"github.com/edgeql-go/qbuilder/schema"
)

// Update renders an `update OperatingType filter <selector> set { ... }`
// statement (§4.1's "update(selector)" operation). Set fields are keyed
// by Go struct field name, mirroring the typed-object shape construction
// rule of §4.2.1 but against the mutation target rather than a fresh
// insert.
type Update struct {
	Base

	filter    expr.Expr
	setFields map[string]expr.Expr
}

// NewUpdate builds an Update node. filter may be nil to update every row
// of operatingType; setFields maps Go field names to the value
// expressions assigned to them.
func NewUpdate(operatingType reflect.Type, filter expr.Expr, setFields map[string]expr.Expr) *Update {
	return &Update{
		Base:      Base{Kind: KindUpdate, OperatingType: operatingType},
		filter:    filter,
		setFields: setFields,
	}
}

// AsGlobal requests that Finalize promote this node's assembled
// statement to a global.
func (n *Update) AsGlobal(name string) *Update {
	n.Context.SetAsGlobal = true
	n.Context.GlobalName = name
	return n
}

func (n *Update) Visit(env Environment) error {
	desc, err := schema.Describe(n.OperatingType)
	if err != nil {
		return err
	}

	n.WriteString("update " + desc.EdgedbName)
	if n.filter != nil {
		text, err := translateWithScope(n.filter, n.OperatingType)
		if err != nil {
			return err
		}
		n.WriteString(" filter " + text)
	}

	shape, err := n.buildSetShape(desc)
	if err != nil {
		return err
	}
	n.WriteString(" set " + shape)
	return nil
}

func (n *Update) buildSetShape(desc schema.TypeDescriptor) (string, error) {
	var shape string
	for _, prop := range desc.Properties {
		if prop.Ignored || prop.IsID {
			continue
		}
		fieldExpr, ok := n.setFields[prop.SourceName]
		if !ok {
			continue
		}
		text, err := translateWithScope(fieldExpr, n.OperatingType)
		if err != nil {
			return "", err
		}
		if shape != "" {
			shape += ", "
		}
		shape += prop.EdgedbName + " := " + text
	}
	return "{ " + shape + " }", nil
}

func (n *Update) Finalize(env Environment) error {
	return promoteToGlobalIfRequested(&n.Base, env)
}
