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
	"strconv"
	"strings"
)

// Operator is a flat registry entry mapping one expression kind (a binary
// op, a unary op, or a named method call) to a rendering template. "{0}",
// "{1}", ... mark positional argument slots; a trailing "?" — "{1?}" —
// marks an optional slot the renderer drops, along with its preceding
// separator text, when the corresponding argument is absent.
type Operator struct {
	Template string
}

var (
	binaryOperators = map[BinaryOp]Operator{}
	unaryOperators  = map[UnaryOp]Operator{}
	callOperators   = map[string]Operator{}
)

// RegisterBinaryOperator installs the template used to render a binary
// operator. Called at package init for the built-ins; exported so a
// consuming application can add vendor-specific operators the way the
// teacher registers custom translators per driver.
func RegisterBinaryOperator(op BinaryOp, template string) {
	binaryOperators[op] = Operator{Template: template}
}

// RegisterUnaryOperator installs the template used to render a unary
// operator.
func RegisterUnaryOperator(op UnaryOp, template string) {
	unaryOperators[op] = Operator{Template: template}
}

// RegisterCallOperator installs the template used to render a method call
// identified by name, e.g. RegisterCallOperator("ToBigint", "to_bigint({0}, {1?})").
func RegisterCallOperator(method string, template string) {
	callOperators[method] = Operator{Template: template}
}

func init() {
	RegisterBinaryOperator(OpAnd, "{0} and {1}")
	RegisterBinaryOperator(OpOr, "{0} or {1}")
	RegisterBinaryOperator(OpEq, "{0} = {1}")
	RegisterBinaryOperator(OpNeq, "{0} != {1}")
	RegisterBinaryOperator(OpGt, "{0} > {1}")
	RegisterBinaryOperator(OpGte, "{0} >= {1}")
	RegisterBinaryOperator(OpLt, "{0} < {1}")
	RegisterBinaryOperator(OpLte, "{0} <= {1}")
	RegisterBinaryOperator(OpAdd, "{0} + {1}")
	RegisterBinaryOperator(OpSub, "{0} - {1}")
	RegisterBinaryOperator(OpMul, "{0} * {1}")
	RegisterBinaryOperator(OpDiv, "{0} / {1}")
	RegisterBinaryOperator(OpMod, "{0} % {1}")

	RegisterUnaryOperator(OpNot, "not {0}")
	RegisterUnaryOperator(OpNeg, "-{0}")

	RegisterCallOperator("Contains", "contains({0}, {1})")
	RegisterCallOperator("Like", "{0} like {1}")
	RegisterCallOperator("ILike", "{0} ilike {1}")
	RegisterCallOperator("Len", "len({0})")
	RegisterCallOperator("ToBigint", "to_bigint({0}, {1?})")
	RegisterCallOperator("ToDecimal", "to_decimal({0}, {1?})")
	RegisterCallOperator("ToStr", "to_str({0}, {1?})")
	RegisterCallOperator("ExistsIn", "{0} in {1}")
}

// arg is one rendered argument: Present is false for an omitted optional
// argument.
type arg struct {
	text    string
	present bool
}

// render fills template's {N} and {N?} slots with args, dropping an
// optional slot and its immediately preceding literal segment when the
// matching argument is absent.
func render(template string, args []arg) (string, error) {
	var out []string // literal/arg segments built so far, in order
	var i int
	for i < len(template) {
		if template[i] != '{' {
			start := i
			for i < len(template) && template[i] != '{' {
				i++
			}
			out = append(out, template[start:i])
			continue
		}
		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			return "", fmt.Errorf("expr: malformed operator template %q", template)
		}
		token := template[i+1 : i+end]
		i += end + 1

		optional := strings.HasSuffix(token, "?")
		idxStr := strings.TrimSuffix(token, "?")
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return "", fmt.Errorf("expr: malformed operator placeholder %q: %w", token, err)
		}
		if idx < 0 || idx >= len(args) || !args[idx].present {
			if optional {
				// drop the immediately preceding literal separator too
				if len(out) > 0 {
					out = out[:len(out)-1]
				}
				continue
			}
			return "", fmt.Errorf("expr: missing required argument %d for template %q", idx, template)
		}
		out = append(out, args[idx].text)
	}
	return strings.Join(out, ""), nil
}
