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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseWriteStringAndText(t *testing.T) {
	var b Base
	assert.Equal(t, "", b.Text())
	b.WriteString("select ")
	b.WriteString("Foo")
	assert.Equal(t, "select Foo", b.Text())
}

func TestBaseResetTextClearsBuffer(t *testing.T) {
	var b Base
	b.WriteString("x")
	b.ResetText()
	assert.Equal(t, "", b.Text())
	b.ResetText() // no-op on an already-empty buffer
}

func TestBaseAutoGenerated(t *testing.T) {
	var b Base
	assert.False(t, b.AutoGenerated())
	b.IsAutoGenerated = true
	assert.True(t, b.AutoGenerated())
}

type fakeNode struct {
	Base
	visitErr, finalizeErr error
	visited, finalized    bool
}

func (n *fakeNode) Visit(Environment) error {
	n.visited = true
	return n.visitErr
}

func (n *fakeNode) Finalize(Environment) error {
	n.finalized = true
	return n.finalizeErr
}

func TestGroupJoinSkipsEmptyFragments(t *testing.T) {
	a := &fakeNode{}
	a.WriteString("select A")
	b := &fakeNode{} // no text written
	c := &fakeNode{}
	c.WriteString("limit 1")

	g := Group{a, b, c}
	assert.Equal(t, "select A limit 1", g.Join())
}

func TestGroupVisitAllStopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	a := &fakeNode{}
	b := &fakeNode{visitErr: boom}
	c := &fakeNode{}

	g := Group{a, b, c}
	err := g.VisitAll(nil)
	require.ErrorIs(t, err, boom)
	assert.True(t, a.visited)
	assert.True(t, b.visited)
	assert.False(t, c.visited)
}

func TestGroupFinalizeAllStopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	a := &fakeNode{}
	b := &fakeNode{finalizeErr: boom}
	c := &fakeNode{}

	g := Group{a, b, c}
	err := g.FinalizeAll(nil)
	require.ErrorIs(t, err, boom)
	assert.True(t, a.finalized)
	assert.True(t, b.finalized)
	assert.False(t, c.finalized)
}
