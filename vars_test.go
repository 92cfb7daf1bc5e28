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

package qbuilder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarStateAddBindsFreshNames(t *testing.T) {
	v := newVarState()

	n1 := v.add("a")
	n2 := v.add("b")

	require.NotEqual(t, n1, n2)
	assert.True(t, strings.HasPrefix(n1, "v"))
	assert.True(t, strings.HasPrefix(n2, "v"))
	assert.Len(t, v.order, 2)
}

func TestVarStateToMapRendersBindings(t *testing.T) {
	v := newVarState()
	n1 := v.add(1)
	n2 := v.add("two")

	m := v.toMap()
	assert.Equal(t, 1, m[n1])
	assert.Equal(t, "two", m[n2])
	assert.Len(t, m, 2)
}

func TestShortIDIsUniqueAndHasNoHyphens(t *testing.T) {
	a := shortID()
	b := shortID()

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 12)
	assert.NotContains(t, a, "-")
}
