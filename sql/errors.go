// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

// The analyzer-visible diagnostic taxonomy. All errors abort the current
// analysis and propagate to the caller; there is no recovery within the
// analyzer itself.
var (
	// ErrNQLSyntax is returned when the parser failed upstream, the
	// top-level AST node is missing or has kind Unknown, or an index
	// method string is unknown. Any other unrecognized statement kind is
	// ErrInvalidQuery.
	ErrNQLSyntax = errors.NewKind("syntax error: %s")

	// ErrNotSupportQuery is returned for a CREATE TABLE with a body that
	// matches neither the with-schema nor the CTAS form.
	ErrNotSupportQuery = errors.NewKind("query not supported: %s")

	// ErrInvalidQuery covers unknown schema types, unknown tables, unknown
	// columns, a NATURAL/CROSS join carrying a qualifier, and malformed
	// AST shapes.
	ErrInvalidQuery = errors.NewKind("invalid query: %s")

	// ErrAmbiguousField is returned when a bare column reference matches
	// columns in two or more input tables.
	ErrAmbiguousField = errors.NewKind("ambiguous field %q")

	// ErrUndefinedFunction is returned when no catalog function matches
	// the requested (name, argument types) signature.
	ErrUndefinedFunction = errors.NewKind("function %s is not defined")

	// ErrInvalidEval is returned when a binary operand is required to be
	// either a literal or a FIELD_NAME and is neither.
	ErrInvalidEval = errors.NewKind("invalid expression: %s")

	// ErrNoSuchTable is raised by the catalog and rewrapped by the
	// analyzer as ErrInvalidQuery at the call site.
	ErrNoSuchTable = errors.NewKind("table %q does not exist")
)
