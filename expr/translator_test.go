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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type translatorPerson struct {
	Name string
	Age  int
	Best *translatorPerson `edgedb:"best_friend,link"`
}

func withLambda(body Expr) Expr {
	return Lambda{ParamName: "it", ParamType: reflect.TypeOf(translatorPerson{}), Body: body}
}

func TestTranslateBinaryAndMember(t *testing.T) {
	tr := New()
	e := withLambda(Binary{
		Op:    OpGt,
		Left:  Member{Target: Param{}, Name: "Age"},
		Right: Constant{Value: 18},
	})
	text, err := tr.Translate(e)
	require.NoError(t, err)
	assert.Equal(t, ".age > 18", text)
}

func TestTranslateChainedMember(t *testing.T) {
	tr := New()
	e := withLambda(Member{Target: Member{Target: Param{}, Name: "Best"}, Name: "Name"})
	text, err := tr.Translate(e)
	require.NoError(t, err)
	assert.Equal(t, ".best_friend.name", text)
}

func TestTranslateMemberUnknownProperty(t *testing.T) {
	tr := New()
	e := withLambda(Member{Target: Param{}, Name: "Nope"})
	_, err := tr.Translate(e)
	assert.ErrorIs(t, err, ErrUnsupportedExpression)
}

func TestTranslateParamWithNoActiveScope(t *testing.T) {
	tr := New()
	_, err := tr.Translate(Param{})
	assert.ErrorIs(t, err, ErrUnsupportedExpression)
}

func TestTranslateCallWithOptionalArgDropped(t *testing.T) {
	tr := New()
	e := withLambda(Call{Target: Member{Target: Param{}, Name: "Name"}, Method: "ToStr"})
	text, err := tr.Translate(e)
	require.NoError(t, err)
	assert.Equal(t, "to_str(.name)", text)
}

func TestTranslateCallWithOptionalArgPresent(t *testing.T) {
	tr := New()
	e := withLambda(Call{
		Target: Member{Target: Param{}, Name: "Name"},
		Method: "ToStr",
		Args:   []Expr{Constant{Value: "YYYY"}},
	})
	text, err := tr.Translate(e)
	require.NoError(t, err)
	assert.Equal(t, "to_str(.name, 'YYYY')", text)
}

func TestTranslateCallUnregisteredMethod(t *testing.T) {
	tr := New()
	_, err := tr.Translate(withLambda(Call{Method: "DoesNotExist"}))
	assert.ErrorIs(t, err, ErrUnsupportedExpression)
}

func TestTranslateConditional(t *testing.T) {
	tr := New()
	e := withLambda(Conditional{
		Cond:      Binary{Op: OpGt, Left: Member{Target: Param{}, Name: "Age"}, Right: Constant{Value: 18}},
		Then:      Constant{Value: "adult"},
		Otherwise: Constant{Value: "minor"},
	})
	text, err := tr.Translate(e)
	require.NoError(t, err)
	assert.Equal(t, "'adult' if .age > 18 else 'minor'", text)
}

func TestTranslateNewObject(t *testing.T) {
	tr := New()
	e := NewObject{
		Type: reflect.TypeOf(translatorPerson{}),
		Fields: map[string]Expr{
			"Name": Constant{Value: "Bob"},
			"Age":  Constant{Value: 30},
		},
	}
	text, err := tr.Translate(e)
	require.NoError(t, err)
	assert.Equal(t, "translatorPerson { name := 'Bob', age := 30 }", text)
}

func TestTranslateTuple(t *testing.T) {
	tr := New()
	e := Tuple{Elements: []Expr{Constant{Value: "a"}, Constant{Value: 1}}}
	text, err := tr.Translate(e)
	require.NoError(t, err)
	assert.Equal(t, "('a', 1)", text)
}

func TestTranslateUnsupportedExprKind(t *testing.T) {
	tr := New()
	_, err := tr.Translate(nil)
	assert.ErrorIs(t, err, ErrUnsupportedExpression)
}

type translatorWidget struct {
	Label string
}

func TestTranslateNestedLambdaScopesByName(t *testing.T) {
	tr := New()
	e := Lambda{
		ParamName: "outer",
		ParamType: reflect.TypeOf(translatorPerson{}),
		Body: Lambda{
			ParamName: "inner",
			ParamType: reflect.TypeOf(translatorWidget{}), // no "Name" field
			Body:      Member{Target: Param{Name: "outer"}, Name: "Name"},
		},
	}
	text, err := tr.Translate(e)
	require.NoError(t, err)
	assert.Equal(t, ".name", text)
}

type colorEnum int

func (c colorEnum) EdgeQLEnum() (string, bool) { return "Red", colorEnum(c) == colorRed }

const colorRed colorEnum = 1

func TestTranslateConstantEnumer(t *testing.T) {
	tr := New()
	text, err := tr.Translate(Constant{Value: colorRed})
	require.NoError(t, err)
	assert.Equal(t, "'red'", text)
}

func TestTranslateConstantTypeNamer(t *testing.T) {
	tr := &Translator{TypeNamer: func(t reflect.Type) string { return "Custom" + t.Name() }}
	text, err := tr.Translate(Constant{Value: reflect.TypeOf(translatorPerson{})})
	require.NoError(t, err)
	assert.Equal(t, "CustomtranslatorPerson", text)
}
