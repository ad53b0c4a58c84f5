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

package analyzer

import (
	"fmt"

	"github.com/nqllang/analyzer/sql"
)

// ResolveQualified resolves a "table.column" reference. table must be
// either an input table's effective name or an alias mapped to one.
func (c *Context) ResolveQualified(tableRef, name string) (*sql.Column, error) {
	actual, ok := c.GetActualTableName(tableRef)
	if !ok {
		return nil, sql.ErrInvalidQuery.New(fmt.Sprintf("table %q is not in scope", tableRef))
	}

	desc, err := c.GetTable(actual)
	if err != nil {
		return nil, err
	}

	qualified := fmt.Sprintf("%s.%s", actual, name)
	col, ok := desc.Schema().GetColumn(qualified)
	if !ok {
		return nil, sql.ErrInvalidQuery.New(fmt.Sprintf("column %q does not exist", qualified))
	}
	c.Log("column %q resolved qualified via %q", qualified, tableRef)
	return col, nil
}

// ResolveBare resolves a bare column reference by scanning every input
// table in this scope. Zero matches is an error, one match resolves, two
// or more is ErrAmbiguousField.
func (c *Context) ResolveBare(name string) (*sql.Column, error) {
	var matches []*sql.Column

	for _, effective := range c.inputOrder {
		actual, ok := c.GetActualTableName(effective)
		if !ok {
			actual = effective
		}

		desc, err := c.Catalog.GetTable(actual)
		if err != nil {
			continue
		}

		qualified := fmt.Sprintf("%s.%s", actual, name)
		if col, ok := desc.Schema().GetColumn(qualified); ok {
			matches = append(matches, col)
		}
	}

	switch len(matches) {
	case 0:
		return nil, sql.ErrInvalidQuery.New(fmt.Sprintf("column %q does not exist", name))
	case 1:
		c.Log("bare column %q resolved to %q", name, matches[0].QualifiedName())
		return matches[0], nil
	default:
		return nil, sql.ErrAmbiguousField.New(name)
	}
}
