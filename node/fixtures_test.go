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

import "github.com/google/uuid"

// nodeTag has no TrackedID method: every link to one always goes through
// the deferred nested-insert path.
type nodeTag struct {
	ID   uuid.UUID `edgedb:"id"`
	Name string    `edgedb:"name,exclusive"`
}

// nodePerson implements Tracked: a zero ID means "not yet known to exist"
// and falls back to a nested insert, a populated ID means "known to
// exist" and resolves to a direct reference.
type nodePerson struct {
	ID    uuid.UUID `edgedb:"id"`
	Name  string    `edgedb:"name,exclusive"`
	Email string    `edgedb:"email,exclusive"`
	Age   int
	Best  *nodePerson
	Tags  []nodeTag
}

func (p *nodePerson) TrackedID() (uuid.UUID, bool) {
	if p.ID == uuid.Nil {
		return uuid.UUID{}, false
	}
	return p.ID, true
}

// nodeBooking has no single-property exclusive of its own; its uniqueness
// constraint is composite and only discoverable through introspection.
type nodeBooking struct {
	ID   uuid.UUID `edgedb:"id"`
	Room string
	Day  string
}
