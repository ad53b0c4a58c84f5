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

// analyzeOrderBy builds the ORDER BY sort specs. Defaults are ascending,
// nulls-last when neither marker is present.
func (a *Analyzer) analyzeOrderBy(c *Context, node *ast.Node) ([]*plan.SortSpec, error) {
	if node == nil {
		return nil, nil
	}

	specs := make([]*plan.SortSpec, 0, len(node.Children))
	for _, item := range node.Children {
		if item.Kind != ast.SortSpec {
			return nil, sql.ErrNQLSyntax.New("ORDER BY entries must be SORT_SPEC nodes")
		}

		fieldNode := item.Child(0)
		if fieldNode == nil {
			return nil, sql.ErrNQLSyntax.New("SORT_SPEC requires a field reference")
		}
		col, err := a.resolveFieldName(c, fieldNode)
		if err != nil {
			return nil, err
		}

		spec := &plan.SortSpec{Column: col}
		for _, marker := range item.Children[1:] {
			switch marker.Kind {
			case ast.Desc:
				spec.Descending = true
			case ast.Asc:
				spec.Descending = false
			case ast.NullsFirst:
				spec.NullsFirst = true
			case ast.NullsLast:
				spec.NullsFirst = false
			}
		}
		specs = append(specs, spec)
	}

	return specs, nil
}
