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

	"github.com/edgeql-go/qbuilder/schema"
)

// ElseSource is implemented by a statement builder that can be embedded
// as the target of an `else (...)` clause (§4.2.3's Else(builder) form).
// Node cannot depend on the builder package (that would cycle back
// through Environment), so the relationship is expressed the other way:
// the builder implements this interface and an Insert node holds one.
type ElseSource interface {
	// BuildAsElse renders the child statement for embedding inside an
	// `else (...)` clause: auto-generated nodes are dropped, the result
	// is never itself promoted to a global, and any variables or globals
	// the child allocates are registered against parentEnv so they end up
	// in the same `with` clause as the enclosing statement.
	BuildAsElse(parentEnv Environment) (string, error)
}

// synthesizeConflictClause implements §4.2.1 and §4.2.3's exclusive
// clause synthesis: a composite exclusive constraint discovered through
// introspection wins when present (it encodes a real multi-property
// constraint from the schema); otherwise every property the type
// descriptor marks exclusive on its own is combined into a single
// clause, per the literal rule "single exclusive -> .prop; multiple ->
// (.propA, .propB, …)".
func synthesizeConflictClause(desc schema.TypeDescriptor, info *schema.Info) (string, error) {
	if info != nil {
		for _, composite := range schema.ExclusivesOf(desc, info) {
			if len(composite) > 1 {
				return renderExclusiveGroup(composite), nil
			}
		}
	}

	names := desc.Exclusives()
	if len(names) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoExclusiveConstraints, desc.EdgedbName)
	}
	return renderExclusiveGroup(names), nil
}

func renderExclusiveGroup(names []string) string {
	if len(names) == 1 {
		return "." + names[0]
	}
	out := "("
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += "." + n
	}
	return out + ")"
}
