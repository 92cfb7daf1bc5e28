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

import "errors"

// ErrUnsupportedExpression is returned when the tree contains a node kind
// with no registered handler, or a call whose method name is not in the
// operator registry (§7 UnsupportedExpression).
var ErrUnsupportedExpression = errors.New("expr: unsupported expression")
