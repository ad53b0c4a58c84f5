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
	"github.com/nqllang/analyzer/sql/expression"
)

// analyzeWhere builds the WHERE clause's predicate. Aggregate functions are
// rejected here: they may not appear outside the select list, GROUP BY, or
// HAVING.
func (a *Analyzer) analyzeWhere(c *Context, node *ast.Node) (expression.EvalNode, error) {
	if node == nil {
		return nil, nil
	}
	expr, err := a.buildEval(c, node.Child(0))
	if err != nil {
		return nil, err
	}
	if expression.ContainsAgg(expr) {
		return nil, sql.ErrInvalidQuery.New("aggregate functions are not allowed in WHERE")
	}
	return expr, nil
}

// analyzeHaving builds the HAVING clause's predicate.
func (a *Analyzer) analyzeHaving(c *Context, node *ast.Node) (expression.EvalNode, error) {
	if node == nil {
		return nil, nil
	}
	return a.buildEval(c, node.Child(0))
}
