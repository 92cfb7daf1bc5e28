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
	"testing"

	"github.com/edgeql-go/qbuilder/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personShapeEnv(env Environment) *shapeEnv {
	return &shapeEnv{env: env, subQueryTypes: map[reflect.Type]bool{}}
}

func TestResolveLinkTrackedInlinesDirectReference(t *testing.T) {
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	best := &nodePerson{ID: id, Name: "Ada", Email: "ada@example.com", Age: 30}

	env := newTestEnv()
	s := personShapeEnv(env)

	text, err := s.resolveLink(reflect.TypeOf(nodePerson{}), reflect.ValueOf(best))
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("(select nodePerson filter .id = <uuid>%q)", id.String()), text)
	assert.False(t, env.requiresSchema)
	assert.Empty(t, env.globals)
	assert.True(t, s.subQueryTypes[reflect.TypeOf(nodePerson{})])
}

func TestResolveLinkUntrackedDefersAndPromotesToGlobal(t *testing.T) {
	tag := nodeTag{Name: "golang"}

	env := newTestEnv()
	s := personShapeEnv(env)

	text, err := s.resolveLink(reflect.TypeOf(nodeTag{}), reflect.ValueOf(tag))
	require.NoError(t, err)

	assert.Equal(t, "g1", text)
	assert.True(t, env.requiresSchema)
	assert.True(t, env.introspectTypes[reflect.TypeOf(nodeTag{})])
	require.Contains(t, env.globals, "g1")

	resolved, err := env.globals["g1"].Resolve(nil)
	require.NoError(t, err)
	assert.Contains(t, resolved, "insert nodeTag")
	assert.Contains(t, resolved, "unless conflict on .name")
}

func TestResolveLinkOmitsConflictClauseWhenTargetHasNoExclusives(t *testing.T) {
	booking := nodeBooking{Room: "101", Day: "Mon"}

	env := newTestEnv()
	s := personShapeEnv(env)

	text, err := s.resolveLink(reflect.TypeOf(nodeBooking{}), reflect.ValueOf(booking))
	require.NoError(t, err)

	resolved, err := env.globals[text].Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "(insert nodeBooking { room := <str>$v1, day := <str>$v2 } else (select nodeBooking))", resolved)
	assert.NotContains(t, resolved, "unless conflict")
}

func TestInlineOrGlobalPromotesSecondSightingOfSameType(t *testing.T) {
	first := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	second := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	env := newTestEnv()
	s := personShapeEnv(env)

	_, err := s.resolveLink(reflect.TypeOf(nodePerson{}), reflect.ValueOf(&nodePerson{ID: first, Name: "A", Email: "a@x.com"}))
	require.NoError(t, err)

	text, err := s.resolveLink(reflect.TypeOf(nodePerson{}), reflect.ValueOf(&nodePerson{ID: second, Name: "B", Email: "b@x.com"}))
	require.NoError(t, err)

	assert.Equal(t, "g1", text)
	require.Contains(t, env.globals, "g1")
}

func TestShapePropertyNilSingleLinkRendersEmptySet(t *testing.T) {
	env := newTestEnv()
	s := personShapeEnv(env)

	desc, err := schema.Describe(reflect.TypeOf(nodePerson{}))
	require.NoError(t, err)

	var bestProp schema.PropertyDescriptor
	for _, p := range desc.Properties {
		if p.SourceName == "Best" {
			bestProp = p
		}
	}
	require.Equal(t, "Best", bestProp.SourceName)

	value := reflect.ValueOf(&nodePerson{Name: "Ada", Email: "ada@example.com"}).Elem()
	text, err := s.shapeProperty(bestProp, value.FieldByName("Best"))
	require.NoError(t, err)
	assert.Equal(t, "{}", text)
}

func TestShapePropertyEmptyMultiLinkRendersEmptySet(t *testing.T) {
	env := newTestEnv()
	s := personShapeEnv(env)

	desc, err := schema.Describe(reflect.TypeOf(nodePerson{}))
	require.NoError(t, err)

	var tagsProp schema.PropertyDescriptor
	for _, p := range desc.Properties {
		if p.SourceName == "Tags" {
			tagsProp = p
		}
	}
	require.Equal(t, "Tags", tagsProp.SourceName)

	value := reflect.ValueOf(&nodePerson{Name: "Ada", Email: "ada@example.com"}).Elem()
	text, err := s.shapeProperty(tagsProp, value.FieldByName("Tags"))
	require.NoError(t, err)
	assert.Equal(t, "{}", text)
}

func TestBuildShapeFullPersonWithLinks(t *testing.T) {
	bestID := uuid.MustParse("44444444-4444-4444-4444-444444444444")
	person := &nodePerson{
		Name:  "Ada",
		Email: "ada@example.com",
		Age:   30,
		Best:  &nodePerson{ID: bestID, Name: "Grace", Email: "grace@example.com"},
		Tags:  []nodeTag{{Name: "golang"}},
	}

	env := newTestEnv()
	s := personShapeEnv(env)

	desc, err := schema.Describe(reflect.TypeOf(nodePerson{}))
	require.NoError(t, err)

	shape, err := s.buildShape(desc, reflect.ValueOf(person).Elem())
	require.NoError(t, err)

	assert.Contains(t, shape, "name := <str>$v1")
	assert.Contains(t, shape, "email := <str>$v2")
	assert.Contains(t, shape, "age := <int32>$v3")
	assert.Contains(t, shape, fmt.Sprintf("best := (select nodePerson filter .id = <uuid>%q)", bestID.String()))
	assert.Contains(t, shape, "tags := { g1 }")
	assert.Equal(t, "Ada", env.vars["v1"])
	assert.Equal(t, "ada@example.com", env.vars["v2"])
	assert.Equal(t, 30, env.vars["v3"])
}

func TestAsPointerAndStructRejectsNilPointer(t *testing.T) {
	var p *nodeTag
	_, _, err := asPointerAndStruct(reflect.ValueOf(p))
	assert.ErrorIs(t, err, ErrUnserializableProperty)
}

func TestAsPointerAndStructRejectsNonStruct(t *testing.T) {
	_, _, err := asPointerAndStruct(reflect.ValueOf(42))
	assert.ErrorIs(t, err, ErrUnserializableProperty)
}

func TestAsPointerAndStructCopiesUnaddressableStruct(t *testing.T) {
	value := reflect.ValueOf(nodeTag{Name: "golang"})
	require.False(t, value.CanAddr())

	ptr, structValue, err := asPointerAndStruct(value)
	require.NoError(t, err)
	assert.Equal(t, "golang", structValue.FieldByName("Name").String())
	assert.True(t, ptr.Kind() == reflect.Pointer)
}

func TestJoinCommaJoinsWithSeparator(t *testing.T) {
	assert.Equal(t, "", joinComma(nil))
	assert.Equal(t, "a", joinComma([]string{"a"}))
	assert.Equal(t, "a, b, c", joinComma([]string{"a", "b", "c"}))
}

func TestIsNilValue(t *testing.T) {
	var p *nodeTag
	assert.True(t, isNilValue(reflect.ValueOf(p)))
	assert.False(t, isNilValue(reflect.ValueOf(nodeTag{})))
	var s []nodeTag
	assert.True(t, isNilValue(reflect.ValueOf(s)))
}
