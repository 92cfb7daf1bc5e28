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

// Kind identifies which EdgeQL clause a Node renders. Adapted from the
// teacher's action type, which distinguished read/write SQL statements;
// here it distinguishes clause kinds within one statement's node graph.
type Kind string

const (
	KindInsert Kind = "insert"
	KindSelect Kind = "select"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
	KindWith   Kind = "with"
	KindFor    Kind = "for"
)

func (k Kind) String() string {
	return string(k)
}

// ForRead reports whether the clause only reads data.
func (k Kind) ForRead() bool {
	return k == KindSelect
}

// ForWrite reports whether the clause mutates data.
func (k Kind) ForWrite() bool {
	return k == KindInsert || k == KindUpdate || k == KindDelete
}
