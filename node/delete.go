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

// Delete renders a `delete OperatingType filter <selector>` statement
// (§4.1's node operation list).
type Delete struct {
	Base

	filter expr.Expr
}

// NewDelete builds a Delete node. filter may be nil to delete every row
// of operatingType.
func NewDelete(operatingType reflect.Type, filter expr.Expr) *Delete {
	return &Delete{Base: Base{Kind: KindDelete, OperatingType: operatingType}, filter: filter}
}

// AsGlobal requests that Finalize promote this node's assembled
// statement to a global.
func (n *Delete) AsGlobal(name string) *Delete {
	n.Context.SetAsGlobal = true
	n.Context.GlobalName = name
	return n
}

func (n *Delete) Visit(env Environment) error {
	desc, err := schema.Describe(n.OperatingType)
	if err != nil {
		return err
	}
	n.WriteString("delete " + desc.EdgedbName)
	if n.filter != nil {
		text, err := translateWithScope(n.filter, n.OperatingType)
		if err != nil {
			return err
		}
		n.WriteString(" filter " + text)
	}
	return nil
}

func (n *Delete) Finalize(env Environment) error {
	return promoteToGlobalIfRequested(&n.Base, env)
}
