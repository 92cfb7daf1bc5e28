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
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/edgeql-go/qbuilder/schema"
)

// JSONInsert renders the JSON bulk insert path for batch insertion of a
// nested object tree (§4.2 case (c), §4.2.2): each depth of the tree is
// flattened into one JSON array, bound to a variable, and rendered as a
// global performing a batched `for iter in json_array_unpack(...) union
// (insert ...)`, with link properties at depth d referencing depth d+1
// by array index. Depth numbering starts at 1 for the shallowest
// (root) rows; the deepest depth's link properties are terminal (`{}`).
//
// Every row at one depth shares that depth's type (the `insert T {
// ... }` shape is rendered once per depth, not once per row), and every
// link property at one depth must target the same next-depth type — a
// tree that fans out into more than one type at a given depth is not
// representable by this node and NewJSONInsert returns
// ErrUnserializableProperty.
type JSONInsert struct {
	Base

	depths []depthPlan // depths[0] is depth 1 (shallowest)
}

// depthPlan holds one depth's rows (already dereferenced struct values)
// and, per row, the link references discovered into the next depth's
// row slice.
type depthPlan struct {
	desc  schema.TypeDescriptor
	rows  []reflect.Value
	links []map[string]linkRef
}

// linkRef is one property's resolved position in the next depth's row
// slice: a single index for a single link, or a contiguous [from, to)
// range for a multi link, matching §4.2.2's depth_index / depth_from /
// depth_to annotation.
type linkRef struct {
	multi    bool
	index    int
	from, to int
}

// NewJSONInsert flattens roots — the depth-1 rows, each a struct or
// pointer to struct of the same type — into a per-depth plan by walking
// every link property breadth-first.
func NewJSONInsert(roots []any) (*JSONInsert, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: JSON bulk insert requires at least one root object", ErrUnserializableProperty)
	}
	rootType, err := operatingTypeOf(roots[0])
	if err != nil {
		return nil, err
	}
	desc, err := schema.Describe(rootType)
	if err != nil {
		return nil, err
	}
	rows := make([]reflect.Value, len(roots))
	for i, r := range roots {
		rows[i] = dereferenceValue(r)
	}
	depths, err := buildDepthPlans(desc, rows)
	if err != nil {
		return nil, err
	}
	return &JSONInsert{
		Base:   Base{Kind: KindInsert, OperatingType: rootType, Context: Context{IsJSONVariable: true}},
		depths: depths,
	}, nil
}

// AsGlobal requests that Finalize promote this node's entire assembled
// statement (the depth-1 surfacing select) to a global.
func (n *JSONInsert) AsGlobal(name string) *JSONInsert {
	n.Context.SetAsGlobal = true
	n.Context.GlobalName = name
	return n
}

func buildDepthPlans(rootDesc schema.TypeDescriptor, rootRows []reflect.Value) ([]depthPlan, error) {
	var plans []depthPlan
	desc, rows := rootDesc, rootRows

	for {
		plan := depthPlan{desc: desc, rows: rows, links: make([]map[string]linkRef, len(rows))}

		var nextDesc schema.TypeDescriptor
		var nextRows []reflect.Value
		haveNext := false

		for i, v := range rows {
			linkMap := map[string]linkRef{}
			for _, prop := range desc.Properties {
				if !prop.IsLink || prop.Ignored || prop.IsID {
					continue
				}
				fv := v.FieldByName(prop.SourceName)
				if !fv.IsValid() {
					continue
				}
				if !prop.IsMultiLink && isNilValue(fv) {
					continue
				}

				target, err := schema.Describe(prop.LinkTarget)
				if err != nil {
					return nil, err
				}
				if haveNext && target.GoType != nextDesc.GoType {
					return nil, fmt.Errorf("%w: depth has links to both %s and %s; JSON bulk insert supports one type per depth", ErrUnserializableProperty, nextDesc.EdgedbName, target.EdgedbName)
				}
				nextDesc = target
				haveNext = true

				if prop.IsMultiLink {
					if fv.Kind() != reflect.Slice && fv.Kind() != reflect.Array {
						return nil, fmt.Errorf("%w: multi link %s is not a slice", ErrUnserializableProperty, prop.EdgedbName)
					}
					from := len(nextRows)
					for j := 0; j < fv.Len(); j++ {
						nextRows = append(nextRows, dereferenceValue(fv.Index(j).Interface()))
					}
					linkMap[prop.SourceName] = linkRef{multi: true, from: from, to: len(nextRows)}
				} else {
					idx := len(nextRows)
					nextRows = append(nextRows, dereferenceValue(fv.Interface()))
					linkMap[prop.SourceName] = linkRef{index: idx}
				}
			}
			plan.links[i] = linkMap
		}

		plans = append(plans, plan)
		if !haveNext {
			break
		}
		desc, rows = nextDesc, nextRows
	}
	return plans, nil
}

// serializeDepthRows renders one depth's rows as the JSON array bound to
// that depth's variable: scalar properties by value, link properties as
// {"depth_index": i} or {"depth_from": a, "depth_to": b}, and omitted
// entirely for an absent single link (json_get on a missing key returns
// null, which the shape template's `if json_typeof(...) != 'null'`
// guard handles).
func serializeDepthRows(plan depthPlan) ([]byte, error) {
	rows := make([]map[string]any, len(plan.rows))
	for i, v := range plan.rows {
		obj := map[string]any{}
		for _, prop := range plan.desc.Properties {
			if prop.Ignored || prop.IsID {
				continue
			}
			if prop.IsLink {
				ref, ok := plan.links[i][prop.SourceName]
				if !ok {
					continue
				}
				if ref.multi {
					obj[prop.EdgedbName] = map[string]any{"depth_from": ref.from, "depth_to": ref.to}
				} else {
					obj[prop.EdgedbName] = map[string]any{"depth_index": ref.index}
				}
				continue
			}
			fv := v.FieldByName(prop.SourceName)
			if !fv.IsValid() {
				continue
			}
			obj[prop.EdgedbName] = fv.Interface()
		}
		rows[i] = obj
	}
	return json.Marshal(rows)
}

// renderDepthShape renders the brace-enclosed shape shared by every row
// at this depth: scalar properties bind through json_get, link
// properties index into nextDepthName (the next depth's global), and at
// the deepest depth every link property is the terminal `{}` (§4.2.2).
func renderDepthShape(plan depthPlan, nextDepthName string, deepest bool) (string, error) {
	var shape string
	for _, prop := range plan.desc.Properties {
		if prop.Ignored || prop.IsID {
			continue
		}
		text, err := renderDepthProperty(prop, nextDepthName, deepest)
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

func renderDepthProperty(prop schema.PropertyDescriptor, nextDepthName string, deepest bool) (string, error) {
	switch {
	case prop.IsLink && deepest:
		return "{}", nil
	case prop.IsLink && prop.IsMultiLink:
		return fmt.Sprintf(
			"distinct array_unpack(%s[<int64>json_get(iter, '%s', 'depth_from') ?? 0 : <int64>json_get(iter, '%s', 'depth_to') ?? 0])",
			nextDepthName, prop.EdgedbName, prop.EdgedbName,
		), nil
	case prop.IsLink:
		target, err := schema.Describe(prop.LinkTarget)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(
			"%s[<int64>json_get(iter, '%s', 'depth_index')] if json_typeof(json_get(iter, '%s')) != 'null' else <%s>{}",
			nextDepthName, prop.EdgedbName, prop.EdgedbName, target.EdgedbName,
		), nil
	default:
		scalarType, ok := schema.ScalarTypeOf(prop.ValueType)
		if !ok {
			return "", fmt.Errorf("%w: %s has no scalar mapping", ErrUnserializableType, prop.ValueType)
		}
		return fmt.Sprintf("<%s>json_get(iter, '%s')", scalarType, prop.EdgedbName), nil
	}
}

// buildDepthGlobal returns the deferred builder for one depth's global:
// the conflict clause needs introspection the same way a typed-object
// insert's does (§4.2.3), so depth globals are always Deferred.
func (n *JSONInsert) buildDepthGlobal(depthIdx int, varName, nextDepthName string) func(*schema.Info) (string, error) {
	plan := n.depths[depthIdx]
	deepest := depthIdx == len(n.depths)-1
	return func(info *schema.Info) (string, error) {
		shape, err := renderDepthShape(plan, nextDepthName, deepest)
		if err != nil {
			return "", err
		}
		clause, err := synthesizeConflictClause(plan.desc, info)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(
			"array_agg((for iter in json_array_unpack(<json>$%s) union (insert %s %s unless conflict on %s else (select %s))))",
			varName, plan.desc.EdgedbName, shape, clause, plan.desc.EdgedbName,
		), nil
	}
}

// Visit implements Node. It binds one JSON variable per depth and
// registers one deferred global per depth, named T_d1 … T_dD, in
// deepest-first order so each shallower depth's reference to the next
// depth's global name resolves to an already-declared `with` binding.
func (n *JSONInsert) Visit(env Environment) error {
	for _, plan := range n.depths {
		env.RequireIntrospectionFor(plan.desc.GoType)
	}

	varNames := make([]string, len(n.depths))
	for i, plan := range n.depths {
		payload, err := serializeDepthRows(plan)
		if err != nil {
			return err
		}
		varNames[i] = env.NewVariable(schema.RawJSON(payload))
	}

	for i := len(n.depths) - 1; i >= 0; i-- {
		depthNum := i + 1
		globalName := fmt.Sprintf("T_d%d", depthNum)
		nextDepthName := ""
		if i+1 < len(n.depths) {
			nextDepthName = fmt.Sprintf("T_d%d", depthNum+1)
		}
		build := n.buildDepthGlobal(i, varNames[i], nextDepthName)
		if err := env.RegisterNamedGlobal(globalName, Deferred(build)); err != nil {
			return err
		}
	}

	n.WriteString("select array_unpack(T_d1)")
	return nil
}

// Finalize implements Node.
func (n *JSONInsert) Finalize(env Environment) error {
	return promoteToGlobalIfRequested(&n.Base, env)
}
