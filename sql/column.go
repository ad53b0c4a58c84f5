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

// Package sql holds the types the analyzer shares with its external
// collaborators: the catalog, the datum/type system, and the planner.
package sql

import (
	"fmt"

	"github.com/nqllang/analyzer/sql/types"
)

// Column is a fully-qualified column reference: the table it came from, its
// name, and its scalar type. Equality is by qualified name.
type Column struct {
	TableID string
	Name    string
	Type    types.Type
}

// QualifiedName returns the canonical "<table_id>.<column_name>" key used
// for schema lookups.
func (c *Column) QualifiedName() string {
	return fmt.Sprintf("%s.%s", c.TableID, c.Name)
}

// Equals compares two columns by qualified name.
func (c *Column) Equals(o *Column) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.QualifiedName() == o.QualifiedName()
}

// Schema is an ordered set of columns belonging to a table.
type Schema []*Column

// GetColumn looks up a column by its qualified name ("<table>.<name>").
func (s Schema) GetColumn(qualified string) (*Column, bool) {
	for _, c := range s {
		if c.QualifiedName() == qualified {
			return c, true
		}
	}
	return nil, false
}

// Contains reports whether the schema has a column with the given
// qualified name.
func (s Schema) Contains(qualified string) bool {
	_, ok := s.GetColumn(qualified)
	return ok
}
