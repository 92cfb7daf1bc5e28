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
	"testing"

	"github.com/edgeql-go/qbuilder/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteWithFilter(t *testing.T) {
	n := NewDelete(reflect.TypeOf(nodeTag{}), expr.Member{Target: expr.Param{}, Name: "Name"})

	env := newTestEnv()
	require.NoError(t, n.Visit(env))
	require.NoError(t, n.Finalize(env))

	assert.Equal(t, "delete nodeTag filter .name", n.Text())
}

func TestDeleteWithoutFilter(t *testing.T) {
	n := NewDelete(reflect.TypeOf(nodeTag{}), nil)

	env := newTestEnv()
	require.NoError(t, n.Visit(env))
	require.NoError(t, n.Finalize(env))

	assert.Equal(t, "delete nodeTag", n.Text())
}

func TestDeleteAsGlobal(t *testing.T) {
	n := NewDelete(reflect.TypeOf(nodeTag{}), nil)
	n.AsGlobal("T")

	env := newTestEnv()
	require.NoError(t, n.Visit(env))
	require.NoError(t, n.Finalize(env))

	assert.Equal(t, "", n.Text())
	assert.Contains(t, env.globals, "T")
}
