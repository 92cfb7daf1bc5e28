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
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringerValue struct{}

func (stringerValue) String() string { return "stringer" }

func TestRenderConstantPrimitives(t *testing.T) {
	cases := []struct {
		value any
		want  string
	}{
		{nil, "{}"},
		{"it's", `'it\'s'`},
		{true, "true"},
		{42, "42"},
		{int16(7), "7"},
		{int64(9), "9"},
		{3.5, "3.5"},
		{decimal.RequireFromString("1.50"), "1.5n"},
	}
	for _, c := range cases {
		text, err := renderConstant(c.value, nil)
		require.NoError(t, err)
		assert.Equal(t, c.want, text)
	}
}

func TestRenderConstantStringerFallback(t *testing.T) {
	text, err := renderConstant(stringerValue{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "'stringer'", text)
}

func TestQuoteStringEscapesBackslash(t *testing.T) {
	assert.Equal(t, `'a\\b'`, quoteString(`a\b`))
}
