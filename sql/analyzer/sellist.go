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

// analyzeSelList builds the projection Targets of a QueryBlock. A bare "*"
// sets ProjectAll and yields no Targets (the planner expands it against the
// resolved FROM tables).
func (a *Analyzer) analyzeSelList(c *Context, node *ast.Node) (targets []*plan.Target, projectAll bool, err error) {
	if node == nil {
		return nil, false, sql.ErrInvalidQuery.New("query has no select list")
	}

	for i, item := range node.Children {
		if item.Kind == ast.Star {
			projectAll = true
			continue
		}
		if item.Kind != ast.DerivedColumn {
			return nil, false, sql.ErrNQLSyntax.New("select list entries must be STAR or DERIVED_COLUMN")
		}

		expr, err := a.buildEval(c, item.Child(0))
		if err != nil {
			return nil, false, err
		}

		alias := ""
		if aliasNode := item.Child(1); aliasNode != nil && aliasNode.Kind == ast.Alias {
			alias = aliasNode.Text
		}

		targets = append(targets, &plan.Target{Expr: expr, Index: i, Alias: alias})
	}

	return targets, projectAll, nil
}
