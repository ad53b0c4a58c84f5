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

	"github.com/nqllang/analyzer/ast"
	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/plan"
)

var setKinds = map[ast.Kind]plan.SetKind{
	ast.Union:     plan.UnionSet,
	ast.Intersect: plan.IntersectSet,
	ast.Except:    plan.ExceptSet,
}

// analyzeSetOp analyzes a UNION/INTERSECT/EXCEPT statement. Each operand is
// analyzed in its own forked Context, independent of the other and of the
// parent, then merged back into the parent so outer references (if any)
// still see every table the operands touched.
//
// Distinct follows the inverted naming spec.md §4.7 documents: ALL sets
// Distinct=true, DISTINCT (or no qualifier) sets Distinct=false. This
// analyzer does not correct it; see DESIGN.md.
func (a *Analyzer) analyzeSetOp(c *Context, node *ast.Node) (*plan.SetStmt, error) {
	kind, ok := setKinds[node.Kind]
	if !ok {
		return nil, sql.ErrNQLSyntax.New(fmt.Sprintf("not a set operation: %s", node.Kind))
	}

	leftNode, rightNode := node.Child(0), node.Child(1)
	if leftNode == nil || rightNode == nil {
		return nil, sql.ErrNQLSyntax.New("set operation requires two operands")
	}

	leftCtx := c.Fork()
	left, err := a.dispatch(leftCtx, leftNode)
	if err != nil {
		return nil, err
	}
	c.MergeContext(leftCtx)

	rightCtx := c.Fork()
	right, err := a.dispatch(rightCtx, rightNode)
	if err != nil {
		return nil, err
	}
	c.MergeContext(rightCtx)

	distinct := false
	if qual := node.Child(2); qual != nil && qual.Kind == ast.SetQualifier {
		if q := qual.Child(0); q != nil && q.Kind == ast.All {
			distinct = true
		}
	}

	return &plan.SetStmt{Kind: kind, Left: left, Right: right, Distinct: distinct}, nil
}
