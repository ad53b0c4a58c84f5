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
	"github.com/nqllang/analyzer/sql/expression"
	"github.com/nqllang/analyzer/sql/plan"
)

// analyzeFrom walks a FROM node, registering every table it introduces
// into c for column resolution, and returns the flat table list plus an
// optional join tree. It runs before every other clause regardless of the
// clause's position in the source AST (spec.md §4.2).
func (a *Analyzer) analyzeFrom(c *Context, fromNode *ast.Node) ([]*plan.FromTable, *plan.JoinClause, error) {
	if fromNode == nil {
		return nil, nil, sql.ErrInvalidQuery.New("query has no FROM clause")
	}

	var tables []*plan.FromTable
	var join *plan.JoinClause

	for _, item := range fromNode.Children {
		if isJoinKind(item.Kind) {
			j, err := a.buildJoin(c, item, &tables)
			if err != nil {
				return nil, nil, err
			}
			join = j
			continue
		}

		ft, err := a.buildFromTable(c, item)
		if err != nil {
			return nil, nil, err
		}
		tables = append(tables, ft)
	}

	return tables, join, nil
}

func isJoinKind(k ast.Kind) bool {
	return k == ast.NaturalJoin || k == ast.InnerJoin || k == ast.CrossJoin || k == ast.OuterJoin
}

// buildFromTable resolves a bare TABLE node into a FromTable, registering
// its effective name (alias, if any, else its own id) in the scope.
func (a *Analyzer) buildFromTable(c *Context, node *ast.Node) (*plan.FromTable, error) {
	if node.Kind != ast.Table {
		return nil, sql.ErrNQLSyntax.New(fmt.Sprintf("expected a table reference, got %s", node.Kind))
	}

	desc, err := c.GetTable(node.Text)
	if err != nil {
		return nil, err
	}

	alias := ""
	if a := node.Child(0); a != nil && a.Kind == ast.Alias {
		alias = a.Text
	}

	ft := &plan.FromTable{Desc: desc, Alias: alias}
	effective := ft.EffectiveName()
	if c.HasInputTable(effective) {
		return nil, sql.ErrInvalidQuery.New(fmt.Sprintf("table name %q is used more than once in FROM", effective))
	}
	c.RenameTable(desc.ID(), effective)
	c.AddInputTable(effective)
	return ft, nil
}

// buildJoin recursively builds a left-deep JoinClause, appending every leaf
// FromTable it resolves to *tables so callers can register them alongside
// plain FROM items.
func (a *Analyzer) buildJoin(c *Context, node *ast.Node, tables *[]*plan.FromTable) (*plan.JoinClause, error) {
	var kind plan.JoinKind
	childOffset := 0

	switch node.Kind {
	case ast.NaturalJoin:
		kind = plan.NaturalJoin
	case ast.InnerJoin:
		kind = plan.InnerJoin
	case ast.CrossJoin:
		kind = plan.CrossJoin
	case ast.OuterJoin:
		dir := node.Child(0)
		if dir == nil {
			return nil, sql.ErrNQLSyntax.New("OUTER_JOIN requires a LEFT or RIGHT direction marker")
		}
		switch dir.Kind {
		case ast.Left:
			kind = plan.LeftOuterJoin
		case ast.Right:
			kind = plan.RightOuterJoin
		default:
			return nil, sql.ErrNQLSyntax.New(fmt.Sprintf("invalid outer join direction %s", dir.Kind))
		}
		childOffset = 1
	default:
		return nil, sql.ErrNQLSyntax.New(fmt.Sprintf("not a join node: %s", node.Kind))
	}

	leftNode := node.Child(childOffset)
	rightNode := node.Child(childOffset + 1)
	if leftNode == nil || rightNode == nil {
		return nil, sql.ErrNQLSyntax.New("join requires a left and right operand")
	}

	leftTable, err := a.buildJoinOperand(c, leftNode, tables)
	if err != nil {
		return nil, err
	}
	rightOperand, err := a.buildJoinRightOperand(c, rightNode, tables)
	if err != nil {
		return nil, err
	}

	qualNode := node.Child(childOffset + 2)

	var qualifier plan.JoinQualifier
	if kind == plan.NaturalJoin && qualNode == nil {
		qualifier = buildNaturalQualifier(leftTable, rightOperand)
	} else {
		qualifier, err = a.buildJoinQualifier(c, kind, qualNode)
		if err != nil {
			return nil, err
		}
	}

	return &plan.JoinClause{Kind: kind, Left: leftTable, Right: rightOperand, Qualifier: qualifier}, nil
}

// collectSchema flattens every column reachable from a join operand (a
// terminal FromTable or a nested JoinClause) into one schema, in left-deep
// order, for NATURAL join's common-column computation.
func collectSchema(operand interface{}) sql.Schema {
	switch o := operand.(type) {
	case *plan.FromTable:
		return o.Desc.Schema()
	case *plan.JoinClause:
		schema := collectSchema(o.Left)
		schema = append(schema, collectSchema(o.Right)...)
		return schema
	default:
		return nil
	}
}

// buildNaturalQualifier computes the implicit equality filter a NATURAL
// join applies: an AND of "<left>.<c> = <right>.<c>" for every column name
// shared by both sides (spec.md §4.10 step 3's implicit projection,
// SPEC_FULL.md §12). A NATURAL join with no column names in common carries
// no qualifier at all, behaving like CROSS.
func buildNaturalQualifier(leftTable *plan.FromTable, rightOperand interface{}) plan.JoinQualifier {
	leftSchema := leftTable.Desc.Schema()
	rightSchema := collectSchema(rightOperand)

	var expr expression.EvalNode
	for _, lc := range leftSchema {
		for _, rc := range rightSchema {
			if lc.Name != rc.Name {
				continue
			}
			eq := &expression.Binary{Op: expression.OpEq, Left: &expression.Field{Column: lc}, Right: &expression.Field{Column: rc}}
			if expr == nil {
				expr = eq
			} else {
				expr = &expression.Binary{Op: expression.OpAnd, Left: expr, Right: eq}
			}
			break
		}
	}

	if expr == nil {
		return nil
	}
	return &plan.OnExpr{Expr: expr}
}

// buildJoinOperand resolves the left side of a join, which spec.md's
// left-deep construction always models as a single table.
func (a *Analyzer) buildJoinOperand(c *Context, node *ast.Node, tables *[]*plan.FromTable) (*plan.FromTable, error) {
	ft, err := a.buildFromTable(c, node)
	if err != nil {
		return nil, err
	}
	*tables = append(*tables, ft)
	return ft, nil
}

// buildJoinRightOperand resolves the right side of a join: either a table
// (the common case) or a nested JoinClause, for chained joins.
func (a *Analyzer) buildJoinRightOperand(c *Context, node *ast.Node, tables *[]*plan.FromTable) (interface{}, error) {
	if isJoinKind(node.Kind) {
		return a.buildJoin(c, node, tables)
	}
	ft, err := a.buildFromTable(c, node)
	if err != nil {
		return nil, err
	}
	*tables = append(*tables, ft)
	return ft, nil
}

// buildJoinQualifier enforces spec.md §4.10: NATURAL and CROSS must never
// carry a qualifier; every other kind requires exactly one.
func (a *Analyzer) buildJoinQualifier(c *Context, kind plan.JoinKind, qualNode *ast.Node) (plan.JoinQualifier, error) {
	if kind == plan.NaturalJoin || kind == plan.CrossJoin {
		if qualNode != nil {
			return nil, sql.ErrInvalidQuery.New("NATURAL and CROSS joins may not carry an ON or USING qualifier")
		}
		return nil, nil
	}

	if qualNode == nil {
		return nil, sql.ErrInvalidQuery.New("this join requires an ON or USING qualifier")
	}

	switch qualNode.Kind {
	case ast.On:
		expr, err := a.buildEval(c, qualNode.Child(0))
		if err != nil {
			return nil, err
		}
		return &plan.OnExpr{Expr: expr}, nil

	case ast.Using:
		cols := make([]*sql.Column, 0, len(qualNode.Children))
		for _, fn := range qualNode.Children {
			col, err := c.ResolveBare(fn.Text)
			if err != nil {
				return nil, err
			}
			cols = append(cols, col)
		}
		return &plan.UsingCols{Columns: cols}, nil

	default:
		return nil, sql.ErrNQLSyntax.New(fmt.Sprintf("invalid join qualifier %s", qualNode.Kind))
	}
}
