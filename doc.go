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

// Package qbuilder assembles typed Go values into EdgeQL statements
// without a running connection: insert, select, update, delete, with, and
// for clauses compose into one Builder chain, which renders a query
// string and its bound variables ready for a transport client's Execute
// call.
//
// The package is a thin orchestration layer over node, expr, and schema:
// Builder implements node.Environment and node.ElseSource, and owns the
// two collections those nodes read and write while they run — the bound
// scalar variables and the deduplicated `with`-clause globals.
package qbuilder
