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

// Package servertest provides an in-memory fake of server.Server for
// exercising introspection-dependent Finalize paths without a running
// EdgeDB instance, the same role internal/sqlmock plays in the teacher
// lineage's own test suite for database/sql.
package servertest

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"github.com/edgeql-go/qbuilder/schema"
	"github.com/edgeql-go/qbuilder/server"
)

// ErrOffline simulates a server that cannot answer DescribeSchema,
// exercising the qbuilder.SchemaRequired failure path.
var ErrOffline = errors.New("servertest: server is offline")

// Fake is a recording, scriptable implementation of server.Server.
type Fake struct {
	mu sync.Mutex

	// Objects seeds DescribeSchema's response: Go type -> ObjectInfo.
	Objects map[reflect.Type]schema.ObjectInfo

	// Offline, when true, makes DescribeSchema fail with ErrOffline.
	Offline bool

	// ParseCalls and ExecuteCalls record every query text seen, in order,
	// for assertions in tests.
	ParseCalls   []string
	ExecuteCalls []string

	// ParseResult is returned verbatim from every successful Parse call.
	ParseResult server.ParseResult
}

// NewFake returns a Fake with no seeded objects.
func NewFake() *Fake {
	return &Fake{Objects: make(map[reflect.Type]schema.ObjectInfo)}
}

// SeedExclusive registers a single-property exclusive constraint for T,
// as if introspection had discovered it on the database.
func SeedExclusive[T any](f *Fake, property string) {
	seedComposite[T](f, []string{property})
}

// SeedComposite registers a composite exclusive constraint for T.
func SeedComposite[T any](f *Fake, properties []string) {
	seedComposite[T](f, properties)
}

func seedComposite[T any](f *Fake, properties []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := reflect.TypeOf(*new(T))
	info := f.Objects[t]
	info.Exclusives = append(info.Exclusives, properties)
	f.Objects[t] = info
}

// Parse implements server.Server.
func (f *Fake) Parse(_ context.Context, query string, _ server.Cardinality, _ server.IOFormat, _ server.Capabilities) (server.ParseResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ParseCalls = append(f.ParseCalls, query)
	return f.ParseResult, nil
}

// Execute implements server.Server.
func (f *Fake) Execute(_ context.Context, query string, _ map[string]any, _ server.Cardinality, _ server.IOFormat, _ server.Capabilities) (server.ExecuteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ExecuteCalls = append(f.ExecuteCalls, query)
	return server.ExecuteResult{}, nil
}

// DescribeSchema implements server.Server.
func (f *Fake) DescribeSchema(_ context.Context, typesOfInterest []reflect.Type) (*schema.Info, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Offline {
		return nil, ErrOffline
	}
	out := make(map[reflect.Type]schema.ObjectInfo, len(typesOfInterest))
	for _, t := range typesOfInterest {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		out[t] = f.Objects[t]
	}
	return schema.NewInfo(out), nil
}

var _ server.Server = (*Fake)(nil)
