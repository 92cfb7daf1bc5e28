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

// Package expr is the expression translator (spec §4.3): a dispatcher
// from an abstract expression tree built through a fluent Go API to
// EdgeQL text. Unlike the teacher's eval package, which parses a Go
// source-level string with go/parser and walks a go/ast.Expr at runtime,
// this tree is constructed directly in memory by callers (filter
// builders, insert shape literals) — there is no string to parse, only a
// sum type to match over, per the design note that replaces runtime
// reflection with a tagged variant.
package expr

import "reflect"

// Expr is any node in the expression tree. The unexported method seals the
// set of implementations to this package, the same closed-sum-type
// pattern go/ast uses for ast.Expr.
type Expr interface {
	exprNode()
}

// BinaryOp enumerates the binary operators the translator understands.
type BinaryOp int

const (
	OpAnd BinaryOp = iota
	OpOr
	OpEq
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

// UnaryOp enumerates the unary operators the translator understands.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
)

// Binary is a binary operator expression, e.g. `it.age > 18`.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (Binary) exprNode() {}

// Unary is a unary operator expression, e.g. `!it.active`.
type Unary struct {
	Op      UnaryOp
	Operand Expr
}

func (Unary) exprNode() {}

// Param references a lambda's parameter ("it") by the name it was bound
// under. An empty Name resolves to the innermost active scope.
type Param struct {
	Name string
}

func (Param) exprNode() {}

// Member is a field or property access, e.g. `it.Age` or, chained,
// `it.Author.Name`. Target is either a Param or another Member.
type Member struct {
	Target Expr
	Name   string // Go struct field name; the translator maps it to the edgedb property name.
}

func (Member) exprNode() {}

// Constant is a literal value: a string, number, bool, nil, a reflect.Type
// (for type-name literals), or any value recognized by the constant
// renderer in constants.go.
type Constant struct {
	Value any
}

func (Constant) exprNode() {}

// Call is a method call translated through the operator registry, e.g.
// `it.Name.Contains("A")` or `ToBigint(it.Amount, 2)`.
type Call struct {
	// Target is the receiver expression. For a free function rendered as
	// an operator call (no natural receiver), Target may be nil.
	Target Expr
	Method string
	Args   []Expr
}

func (Call) exprNode() {}

// Conditional is `cond ? then : otherwise`, rendered as EdgeQL's
// `then if cond else otherwise`.
type Conditional struct {
	Cond      Expr
	Then      Expr
	Otherwise Expr
}

func (Conditional) exprNode() {}

// NewObject is an inline shape literal: the lambda-expression form of
// Insert input (§4.2 (b)), e.g. `it => new Person{ Name = "Bob" }`.
type NewObject struct {
	Type   reflect.Type
	Fields map[string]Expr // Go field name -> value expression
}

func (NewObject) exprNode() {}

// Lambda is a single-parameter function: `it => <body>`. ParamType is the
// Go type `it` ranges over, used to resolve Member property names.
type Lambda struct {
	ParamName string
	ParamType reflect.Type
	Body      Expr
}

func (Lambda) exprNode() {}

// Tuple is a parenthesized, comma-separated list of expressions: an
// EdgeQL positional tuple literal, or the composite exclusive selector
// passed to UnlessConflictOn (§4.2.1's "(.propA, .propB, …)" form).
type Tuple struct {
	Elements []Expr
}

func (Tuple) exprNode() {}
