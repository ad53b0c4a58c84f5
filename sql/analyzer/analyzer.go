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
	"context"
	"fmt"

	"github.com/opentracing/opentracing-go"

	"github.com/nqllang/analyzer/ast"
	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/plan"
)

// Analyzer turns a parser-produced AST into a Query Block Tree. It holds no
// mutable state of its own; every traversal threads its state through a
// fresh Context.
type Analyzer struct {
	Catalog sql.Catalog
}

// NewAnalyzer builds an Analyzer bound to catalog, the table/function
// namespace every analysis resolves names against.
func NewAnalyzer(catalog sql.Catalog) *Analyzer {
	return &Analyzer{Catalog: catalog}
}

// Analyze translates root into a ParseTree. It is the single external entry
// point; everything else in this package is reached only through it or
// through tests.
func (a *Analyzer) Analyze(ctx context.Context, root *ast.Node) (plan.ParseTree, *Context, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "analyzer.Analyze")
	defer span.Finish()

	if a.Catalog == nil {
		return nil, nil, sql.ErrInvalidQuery.New("analyzer has no catalog")
	}

	c := NewContext(a.Catalog)
	span.SetTag("run_id", c.RunID.String())

	tree, err := a.dispatch(c, root)
	if err != nil {
		span.SetTag("error", true)
		return nil, c, err
	}

	c.MakeHints(tree)
	return tree, c, nil
}

// dispatch routes a single statement-level AST node to its analyzer.
func (a *Analyzer) dispatch(c *Context, node *ast.Node) (plan.ParseTree, error) {
	if node == nil {
		return nil, sql.ErrNQLSyntax.New("empty statement")
	}

	switch node.Kind {
	case ast.Select:
		return a.analyzeSelectBlock(c, node)
	case ast.Union, ast.Intersect, ast.Except:
		return a.analyzeSetOp(c, node)
	case ast.CreateIndex:
		return a.analyzeCreateIndex(c, node)
	case ast.CreateTable:
		return a.analyzeCreateTable(c, node)
	case ast.Store, ast.Insert, ast.DropTable, ast.ShowTables, ast.ShowDatabases, ast.DescTable:
		// Recognized, but out of the analyzer's core per spec.md §4.1:
		// classified only, no tree built.
		return nil, nil
	case ast.Unknown:
		return nil, sql.ErrNQLSyntax.New("statement has no kind")
	default:
		return nil, sql.ErrInvalidQuery.New(fmt.Sprintf("unrecognized statement %s", node.Kind))
	}
}

// analyzeSelectBlock builds a single QueryBlock. FROM is always resolved
// first, independent of its position in node.Children, because every other
// clause depends on the tables it brings into scope (spec.md §4.2); the
// remaining clauses are then analyzed in their original AST order.
func (a *Analyzer) analyzeSelectBlock(c *Context, node *ast.Node) (*plan.QueryBlock, error) {
	var fromNode *ast.Node
	for _, child := range node.Children {
		if child.Kind == ast.From {
			fromNode = child
			break
		}
	}

	fromTables, join, err := a.analyzeFrom(c, fromNode)
	if err != nil {
		return nil, err
	}

	qb := &plan.QueryBlock{FromTables: fromTables, Join: join}

	for _, child := range node.Children {
		switch child.Kind {
		case ast.From:
			// already handled above

		case ast.SetQualifier:
			if q := child.Child(0); q != nil && q.Kind == ast.Distinct {
				qb.Distinct = true
			}

		case ast.SelList:
			targets, projectAll, err := a.analyzeSelList(c, child)
			if err != nil {
				return nil, err
			}
			qb.Targets = targets
			qb.ProjectAll = projectAll

		case ast.Where:
			expr, err := a.analyzeWhere(c, child)
			if err != nil {
				return nil, err
			}
			qb.Where = expr

		case ast.GroupBy:
			gb, err := a.analyzeGroupBy(c, child)
			if err != nil {
				return nil, err
			}
			qb.GroupBy = gb

		case ast.Having:
			expr, err := a.analyzeHaving(c, child)
			if err != nil {
				return nil, err
			}
			qb.Having = expr

		case ast.OrderBy:
			specs, err := a.analyzeOrderBy(c, child)
			if err != nil {
				return nil, err
			}
			qb.SortSpecs = specs

		default:
			return nil, sql.ErrNQLSyntax.New(fmt.Sprintf("unexpected SELECT clause %s", child.Kind))
		}
	}

	if qb.Targets == nil && !qb.ProjectAll {
		return nil, sql.ErrInvalidQuery.New("query has no select list")
	}

	// is_aggregation is true iff an AggFuncCall is reachable from targets
	// or HAVING (spec.md §3 invariants, §8 testable properties); GROUP BY
	// alone, with no aggregate function, does not set it.
	qb.IsAggregation = c.Aggregation

	return qb, nil
}
