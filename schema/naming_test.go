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

package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveEdgedbName(t *testing.T) {
	cases := map[string]string{
		"FirstName": "first_name",
		"ID":        "id",
		"Name":      "name",
		"URLPath":   "urlpath",
		"A":         "a",
	}
	for in, want := range cases {
		assert.Equal(t, want, DeriveEdgedbName(in), in)
	}
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved("id"))
	assert.True(t, IsReserved("__type__"))
	assert.False(t, IsReserved("name"))
}

func TestGoTypeName(t *testing.T) {
	type Widget struct{}
	w := Widget{}
	assert.Equal(t, "schema.Widget", GoTypeName(reflect.TypeOf(&w)))
	assert.Equal(t, "<nil>", GoTypeName(nil))
}
