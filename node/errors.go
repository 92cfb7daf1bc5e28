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

import "errors"

// Sentinel errors a Node can return from Visit or Finalize (§7). The
// owning builder returns a Visit or Finalize error to the caller as is;
// the root package re-exports these values for errors.Is checks.
var (
	// ErrSchemaRequired means a node needed SchemaInfo but introspection
	// was never run, or the Server returned none.
	ErrSchemaRequired = errors.New("qbuilder: schema introspection required but unavailable")

	// ErrNoExclusiveConstraints means unless-conflict synthesis found no
	// exclusive property to build a clause from.
	ErrNoExclusiveConstraints = errors.New("qbuilder: type has no exclusive constraints to synthesize an unless-conflict clause from")

	// ErrUnserializableType means a Go type has no scalar or link mapping.
	ErrUnserializableType = errors.New("qbuilder: type cannot be serialized to an EdgeQL scalar")

	// ErrUnserializableProperty means a property's Go value could not be
	// rendered given its declared shape (wrong kind, nil non-optional
	// link, and similar).
	ErrUnserializableProperty = errors.New("qbuilder: property value cannot be serialized")
)
