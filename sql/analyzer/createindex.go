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
	"strings"

	"github.com/spf13/cast"

	"github.com/nqllang/analyzer/ast"
	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/plan"
)

var indexMethodsByName = map[string]plan.IndexMethod{
	"bst":    plan.TwoLevelBinTree,
	"btree":  plan.BTree,
	"hash":   plan.Hash,
	"bitmap": plan.Bitmap,
}

// analyzeCreateIndex resolves a CREATE INDEX statement against the table it
// targets (spec.md §4.8). The table is brought into scope only for
// resolving the indexed columns; it is not added to any enclosing query's
// input tables.
func (a *Analyzer) analyzeCreateIndex(c *Context, node *ast.Node) (*plan.CreateIndexStmt, error) {
	stmt := &plan.CreateIndexStmt{Name: node.Text}

	var tableDef, storeType, params *ast.Node
	var sortNodes []*ast.Node

	for _, child := range node.Children {
		switch child.Kind {
		case ast.Unique:
			stmt.Unique = true
		case ast.TableDef:
			tableDef = child
		case ast.StoreType:
			storeType = child
		case ast.Params:
			params = child
		case ast.SortSpec:
			sortNodes = append(sortNodes, child)
		default:
			return nil, sql.ErrNQLSyntax.New(fmt.Sprintf("unexpected CREATE INDEX clause %s", child.Kind))
		}
	}

	if tableDef == nil {
		return nil, sql.ErrInvalidQuery.New("CREATE INDEX requires a target table")
	}
	stmt.Table = tableDef.Text

	desc, err := c.GetTable(stmt.Table)
	if err != nil {
		return nil, err
	}
	scoped := c.Fork()
	scoped.RenameTable(desc.ID(), desc.ID())
	scoped.AddInputTable(desc.ID())

	if len(sortNodes) == 0 {
		return nil, sql.ErrInvalidQuery.New("CREATE INDEX requires at least one column")
	}
	for _, sn := range sortNodes {
		spec, err := a.buildSortSpec(scoped, sn)
		if err != nil {
			return nil, err
		}
		stmt.SortSpecs = append(stmt.SortSpecs, spec)
	}

	if storeType != nil {
		method, err := parseIndexMethod(storeType.Text)
		if err != nil {
			return nil, err
		}
		stmt.Method = &method
	}

	if params != nil {
		stmt.Params = make(map[string]string, len(params.Children))
		for _, p := range params.Children {
			if p.Kind != ast.Param {
				continue
			}
			val := p.Text
			if v := p.Child(0); v != nil {
				val = cast.ToString(v.Text)
			}
			stmt.Params[p.Text] = val
		}
	}

	return stmt, nil
}

func (a *Analyzer) buildSortSpec(c *Context, node *ast.Node) (*plan.SortSpec, error) {
	fieldNode := node.Child(0)
	if fieldNode == nil {
		return nil, sql.ErrNQLSyntax.New("SORT_SPEC requires a field reference")
	}
	col, err := a.resolveFieldName(c, fieldNode)
	if err != nil {
		return nil, err
	}

	spec := &plan.SortSpec{Column: col}
	for _, marker := range node.Children[1:] {
		switch marker.Kind {
		case ast.Desc:
			spec.Descending = true
		case ast.NullsFirst:
			spec.NullsFirst = true
		}
	}
	return spec, nil
}

// An unknown method string is a syntax error, not a semantic one
// (spec.md §7: "unknown index method string" is classified under
// NQLSyntax alongside parser failures).
func parseIndexMethod(raw string) (plan.IndexMethod, error) {
	m, ok := indexMethodsByName[strings.ToLower(raw)]
	if !ok {
		return 0, sql.ErrNQLSyntax.New(fmt.Sprintf("unknown index method %q", raw))
	}
	return m, nil
}
