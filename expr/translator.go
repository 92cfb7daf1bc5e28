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

package expr

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/edgeql-go/qbuilder/schema"
)

// handler renders one concrete Expr kind to EdgeQL text. Registered once
// per kind at init, indexed by the Go type of the node — the "type-keyed
// translators" registry from §4.3.
type handler func(tr *Translator, e Expr) (string, error)

var handlers = map[reflect.Type]handler{}

func registerHandler(sample Expr, h handler) {
	handlers[reflect.TypeOf(sample)] = h
}

func init() {
	registerHandler(Binary{}, translateBinary)
	registerHandler(Unary{}, translateUnary)
	registerHandler(Param{}, translateParam)
	registerHandler(Member{}, translateMember)
	registerHandler(Constant{}, translateConstant)
	registerHandler(Call{}, translateCall)
	registerHandler(Conditional{}, translateConditional)
	registerHandler(NewObject{}, translateNewObject)
	registerHandler(Lambda{}, translateLambda)
	registerHandler(Tuple{}, translateTuple)
}

// Translator walks an Expr tree and emits EdgeQL text. It is not safe for
// concurrent use by multiple goroutines, consistent with the rest of the
// builder (§5).
type Translator struct {
	scopes    scopes
	TypeNamer TypeNamer
}

// New returns a Translator using the default type-name resolution (a
// struct's bare Go type name).
func New() *Translator {
	return &Translator{}
}

// Translate renders e to EdgeQL text.
func (tr *Translator) Translate(e Expr) (string, error) {
	h, ok := handlers[reflect.TypeOf(e)]
	if !ok {
		return "", fmt.Errorf("%w: %T", ErrUnsupportedExpression, e)
	}
	return h(tr, e)
}

// translateAll translates a slice of expressions, failing fast on the
// first error.
func (tr *Translator) translateAll(exprs []Expr) ([]arg, error) {
	out := make([]arg, len(exprs))
	for i, e := range exprs {
		text, err := tr.Translate(e)
		if err != nil {
			return nil, err
		}
		out[i] = arg{text: text, present: true}
	}
	return out, nil
}

func translateBinary(tr *Translator, e Expr) (string, error) {
	b := e.(Binary)
	op, ok := binaryOperators[b.Op]
	if !ok {
		return "", fmt.Errorf("%w: binary operator %d has no template", ErrUnsupportedExpression, b.Op)
	}
	left, err := tr.Translate(b.Left)
	if err != nil {
		return "", err
	}
	right, err := tr.Translate(b.Right)
	if err != nil {
		return "", err
	}
	return render(op.Template, []arg{{text: left, present: true}, {text: right, present: true}})
}

func translateUnary(tr *Translator, e Expr) (string, error) {
	u := e.(Unary)
	op, ok := unaryOperators[u.Op]
	if !ok {
		return "", fmt.Errorf("%w: unary operator %d has no template", ErrUnsupportedExpression, u.Op)
	}
	operand, err := tr.Translate(u.Operand)
	if err != nil {
		return "", err
	}
	return render(op.Template, []arg{{text: operand, present: true}})
}

func translateParam(tr *Translator, e Expr) (string, error) {
	p := e.(Param)
	if _, ok := tr.scopes.resolve(p.Name); !ok {
		return "", fmt.Errorf("%w: no active lambda scope for parameter %q", ErrUnsupportedExpression, p.Name)
	}
	// A bare parameter reference has no text of its own; it only matters
	// as the root of a Member chain, which renders the leading dot.
	return "", nil
}

func translateMember(tr *Translator, e Expr) (string, error) {
	m := e.(Member)
	text, _, err := tr.resolveMemberPath(m)
	return text, err
}

// resolveMemberPath recursively renders a (possibly chained) member
// access and returns the Go type of the resolved property, so a parent
// Member in the chain can keep resolving further link hops.
func (tr *Translator) resolveMemberPath(e Expr) (text string, resolvedType reflect.Type, err error) {
	switch n := e.(type) {
	case Param:
		sc, ok := tr.scopes.resolve(n.Name)
		if !ok {
			return "", nil, fmt.Errorf("%w: no active lambda scope for parameter %q", ErrUnsupportedExpression, n.Name)
		}
		return "", sc.operatingType, nil
	case Member:
		targetText, targetType, err := tr.resolveMemberPath(n.Target)
		if err != nil {
			return "", nil, err
		}
		if targetType == nil {
			return "", nil, fmt.Errorf("%w: member access %q on unresolved type", ErrUnsupportedExpression, n.Name)
		}
		desc, err := schema.Describe(targetType)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrUnsupportedExpression, err)
		}
		prop, ok := desc.Property(n.Name)
		if !ok {
			return "", nil, fmt.Errorf("%w: %s has no property %q", ErrUnsupportedExpression, targetType, n.Name)
		}
		next := prop.ValueType
		if prop.IsLink {
			next = prop.LinkTarget
		}
		return targetText + "." + prop.EdgedbName, next, nil
	default:
		return "", nil, fmt.Errorf("%w: member target must be a parameter or member chain, got %T", ErrUnsupportedExpression, e)
	}
}

func translateConstant(tr *Translator, e Expr) (string, error) {
	c := e.(Constant)
	return renderConstant(c.Value, tr.TypeNamer)
}

func translateCall(tr *Translator, e Expr) (string, error) {
	c := e.(Call)
	op, ok := callOperators[c.Method]
	if !ok {
		return "", fmt.Errorf("%w: call to %q is not registered", ErrUnsupportedExpression, c.Method)
	}

	var args []arg
	if c.Target != nil {
		targetText, err := tr.Translate(c.Target)
		if err != nil {
			return "", err
		}
		args = append(args, arg{text: targetText, present: true})
	}
	rest, err := tr.translateAll(c.Args)
	if err != nil {
		return "", err
	}
	args = append(args, rest...)
	return render(op.Template, args)
}

func translateConditional(tr *Translator, e Expr) (string, error) {
	c := e.(Conditional)
	cond, err := tr.Translate(c.Cond)
	if err != nil {
		return "", err
	}
	then, err := tr.Translate(c.Then)
	if err != nil {
		return "", err
	}
	otherwise, err := tr.Translate(c.Otherwise)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s if %s else %s", then, cond, otherwise), nil
}

func translateNewObject(tr *Translator, e Expr) (string, error) {
	n := e.(NewObject)
	desc, err := schema.Describe(n.Type)
	if err != nil {
		return "", err
	}
	var shape string
	for _, prop := range desc.Properties {
		if prop.Ignored || prop.IsID {
			continue
		}
		fieldExpr, ok := n.Fields[prop.SourceName]
		if !ok {
			continue
		}
		text, err := tr.Translate(fieldExpr)
		if err != nil {
			return "", err
		}
		if shape != "" {
			shape += ", "
		}
		shape += prop.EdgedbName + " := " + text
	}
	return desc.EdgedbName + " { " + shape + " }", nil
}

func translateLambda(tr *Translator, e Expr) (string, error) {
	l := e.(Lambda)
	tr.scopes.push(l.ParamName, l.ParamType)
	defer tr.scopes.pop()
	return tr.Translate(l.Body)
}

func translateTuple(tr *Translator, e Expr) (string, error) {
	t := e.(Tuple)
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		text, err := tr.Translate(el)
		if err != nil {
			return "", err
		}
		parts[i] = text
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}
