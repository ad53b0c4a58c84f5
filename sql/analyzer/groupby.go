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
	"github.com/nqllang/analyzer/ast"
	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/plan"
)

// analyzeGroupBy builds a GroupByClause. CUBE and ROLLUP each form their own
// GroupElement; every plain column reference, wherever it appears among
// them, accumulates into a single trailing GroupElement instead of one
// element per column (spec.md §4.6).
func (a *Analyzer) analyzeGroupBy(c *Context, node *ast.Node) (*plan.GroupByClause, error) {
	if node == nil {
		return nil, nil
	}

	if len(node.Children) == 1 && node.Children[0].Kind == ast.EmptyGroupingSet {
		return &plan.GroupByClause{EmptyGroupingSet: true}, nil
	}

	gb := &plan.GroupByClause{}
	var plainRun []*sql.Column

	flushPlain := func() {
		if len(plainRun) == 0 {
			return
		}
		gb.Groups = append(gb.Groups, &plan.GroupElement{Kind: plan.GroupByKind, Columns: plainRun})
		plainRun = nil
	}

	for _, item := range node.Children {
		switch item.Kind {
		case ast.Cube, ast.Rollup:
			cols, err := a.resolveFieldNameList(c, item.Child(0))
			if err != nil {
				return nil, err
			}
			kind := plan.CubeKind
			if item.Kind == ast.Rollup {
				kind = plan.RollupKind
			}
			gb.Groups = append(gb.Groups, &plan.GroupElement{Kind: kind, Columns: cols})

		case ast.FieldName:
			col, err := a.resolveFieldName(c, item)
			if err != nil {
				return nil, err
			}
			plainRun = append(plainRun, col)

		default:
			return nil, sql.ErrNQLSyntax.New("GROUP BY entries must be a field, CUBE, or ROLLUP")
		}
	}
	flushPlain()

	return gb, nil
}

func (a *Analyzer) resolveFieldNameList(c *Context, node *ast.Node) ([]*sql.Column, error) {
	if node == nil {
		return nil, sql.ErrNQLSyntax.New("expected a field name list")
	}
	cols := make([]*sql.Column, 0, len(node.Children))
	for _, fn := range node.Children {
		col, err := a.resolveFieldName(c, fn)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}
