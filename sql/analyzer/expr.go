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
	"strconv"

	"github.com/nqllang/analyzer/ast"
	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/expression"
	"github.com/nqllang/analyzer/sql/types"
)

var binaryOps = map[ast.Kind]expression.BinaryOp{
	ast.And:      expression.OpAnd,
	ast.Or:       expression.OpOr,
	ast.Eq:       expression.OpEq,
	ast.Neq:      expression.OpNeq,
	ast.Lt:       expression.OpLt,
	ast.Lte:      expression.OpLte,
	ast.Gt:       expression.OpGt,
	ast.Gte:      expression.OpGte,
	ast.Plus:     expression.OpAdd,
	ast.Minus:    expression.OpSub,
	ast.Multiply: expression.OpMul,
	ast.Divide:   expression.OpDiv,
	ast.Modulo:   expression.OpMod,
}

func isLiteralKind(k ast.Kind) bool {
	return k == ast.Digit || k == ast.Real || k == ast.String
}

// buildEval dispatches an expression subtree into an EvalNode, per
// spec.md §4.11.
func (a *Analyzer) buildEval(c *Context, node *ast.Node) (expression.EvalNode, error) {
	if node == nil {
		return nil, sql.ErrNQLSyntax.New("empty expression node")
	}

	switch node.Kind {
	case ast.Digit:
		v, err := strconv.ParseInt(node.Text, 10, 64)
		if err != nil {
			return nil, sql.ErrNQLSyntax.New(fmt.Sprintf("invalid integer literal %q", node.Text))
		}
		return &expression.Const{Datum: v, Type: types.Int}, nil

	case ast.Real:
		v, err := strconv.ParseFloat(node.Text, 64)
		if err != nil {
			return nil, sql.ErrNQLSyntax.New(fmt.Sprintf("invalid real literal %q", node.Text))
		}
		return &expression.Const{Datum: v, Type: types.Double}, nil

	case ast.String:
		return &expression.Const{Datum: node.Text, Type: types.Text}, nil

	case ast.Not:
		child, err := a.buildEval(c, node.Child(0))
		if err != nil {
			return nil, err
		}
		return &expression.Not{Child: child}, nil

	case ast.Like:
		return a.buildLike(c, node)

	case ast.And, ast.Or, ast.Eq, ast.Neq, ast.Lt, ast.Lte, ast.Gt, ast.Gte,
		ast.Plus, ast.Minus, ast.Multiply, ast.Divide, ast.Modulo:
		return a.buildBinary(c, node)

	case ast.Column:
		return a.buildEval(c, node.Child(0))

	case ast.FieldName:
		col, err := a.resolveFieldName(c, node)
		if err != nil {
			return nil, err
		}
		return &expression.Field{Column: col}, nil

	case ast.Function:
		return a.buildFunction(c, node)

	case ast.CountVal:
		return a.buildCount(c, node, true)

	case ast.CountRows:
		return a.buildCount(c, node, false)

	case ast.Case:
		return a.buildCase(c, node)

	default:
		return nil, sql.ErrNQLSyntax.New(fmt.Sprintf("unsupported expression node %s", node.Dump()))
	}
}

// resolveFieldName resolves the column a FIELD_NAME AST node refers to. A
// FIELD_NAME's Text is the column name; an optional child 0 holds the
// table qualifier, when present.
func (a *Analyzer) resolveFieldName(c *Context, node *ast.Node) (*sql.Column, error) {
	if tableNode := node.Child(0); tableNode != nil && tableNode.Text != "" {
		return c.ResolveQualified(tableNode.Text, node.Text)
	}
	return c.ResolveBare(node.Text)
}

// buildBinary builds a Binary node, applying constant-type inference
// (spec.md §4.13) when exactly one operand is a literal and the other a
// plain field reference.
func (a *Analyzer) buildBinary(c *Context, node *ast.Node) (expression.EvalNode, error) {
	op, ok := binaryOps[node.Kind]
	if !ok {
		return nil, sql.ErrNQLSyntax.New(fmt.Sprintf("unknown binary operator %s", node.Kind))
	}

	leftAST, rightAST := node.Child(0), node.Child(1)
	if leftAST == nil || rightAST == nil {
		return nil, sql.ErrNQLSyntax.New("binary expression requires two operands")
	}

	leftLit, rightLit := isLiteralKind(leftAST.Kind), isLiteralKind(rightAST.Kind)
	leftField, rightField := leftAST.Kind == ast.FieldName, rightAST.Kind == ast.FieldName

	switch {
	case leftLit && rightField && !rightLit:
		fieldEval, err := a.buildEval(c, rightAST)
		if err != nil {
			return nil, err
		}
		field, ok := fieldEval.(*expression.Field)
		if !ok {
			return nil, sql.ErrInvalidEval.New("expected a field reference")
		}
		return &expression.Binary{Op: op, Left: inferConst(leftAST, field.Column.Type), Right: fieldEval}, nil

	case rightLit && leftField && !leftLit:
		fieldEval, err := a.buildEval(c, leftAST)
		if err != nil {
			return nil, err
		}
		field, ok := fieldEval.(*expression.Field)
		if !ok {
			return nil, sql.ErrInvalidEval.New("expected a field reference")
		}
		return &expression.Binary{Op: op, Left: fieldEval, Right: inferConst(rightAST, field.Column.Type)}, nil

	default:
		left, err := a.buildEval(c, leftAST)
		if err != nil {
			return nil, err
		}
		right, err := a.buildEval(c, rightAST)
		if err != nil {
			return nil, err
		}
		return &expression.Binary{Op: op, Left: left, Right: right}, nil
	}
}

// inferConst builds a Const from a literal AST node, typed against the
// peer field's value type per spec.md §4.13.
func inferConst(lit *ast.Node, fieldType types.Type) *expression.Const {
	switch lit.Kind {
	case ast.Digit:
		n, _ := strconv.ParseInt(lit.Text, 10, 64)
		switch fieldType {
		case types.Short:
			return &expression.Const{Datum: int16(n), Type: types.Short}
		case types.Long:
			return &expression.Const{Datum: n, Type: types.Long}
		default:
			return &expression.Const{Datum: int32(n), Type: types.Int}
		}

	case ast.Real:
		f, _ := strconv.ParseFloat(lit.Text, 64)
		if fieldType == types.Float {
			return &expression.Const{Datum: float32(f), Type: types.Float}
		}
		return &expression.Const{Datum: f, Type: types.Double}

	case ast.String:
		if fieldType == types.Char {
			r := []rune(lit.Text)
			ch := ""
			if len(r) > 0 {
				ch = string(r[0])
			}
			return &expression.Const{Datum: ch, Type: types.Char}
		}
		return &expression.Const{Datum: lit.Text, Type: types.Text}
	}
	return &expression.Const{Datum: lit.Text, Type: types.Text}
}

// buildLike builds a LIKE node: optional leading NOT, then a field, then a
// string constant pattern (spec.md §4.12).
func (a *Analyzer) buildLike(c *Context, node *ast.Node) (expression.EvalNode, error) {
	children := node.Children
	not := false
	idx := 0
	if idx < len(children) && children[idx].Kind == ast.Not {
		not = true
		idx++
	}
	if idx+1 >= len(children) {
		return nil, sql.ErrNQLSyntax.New("LIKE requires a field and a pattern")
	}

	fieldEval, err := a.buildEval(c, children[idx])
	if err != nil {
		return nil, err
	}
	field, ok := fieldEval.(*expression.Field)
	if !ok {
		return nil, sql.ErrInvalidEval.New("LIKE requires a field operand")
	}
	idx++

	patEval, err := a.buildEval(c, children[idx])
	if err != nil {
		return nil, err
	}
	pattern, ok := patEval.(*expression.Const)
	if !ok || pattern.Type != types.Text {
		return nil, sql.ErrInvalidEval.New("LIKE pattern must be a string constant")
	}

	return &expression.Like{Not: not, Field: field, Pattern: pattern}, nil
}

// buildFunction resolves a general FUNCTION node against the catalog,
// building a FuncCall or, for AGG-typed functions, an AggFuncCall that also
// marks the enclosing scope as an aggregation.
func (a *Analyzer) buildFunction(c *Context, node *ast.Node) (expression.EvalNode, error) {
	args := make([]expression.EvalNode, len(node.Children))
	argTypes := make([]types.Type, len(node.Children))
	for i, argAST := range node.Children {
		ev, err := a.buildEval(c, argAST)
		if err != nil {
			return nil, err
		}
		args[i] = ev
		argTypes[i] = ev.ValueType()
	}

	desc, err := a.resolveFunction(c, node.Text, argTypes)
	if err != nil {
		return nil, err
	}

	if desc.FuncType == sql.AggFunc {
		c.SetAggregation()
		return &expression.AggFuncCall{Desc: desc, Args: args}, nil
	}
	return &expression.FuncCall{Desc: desc, Args: args}, nil
}

// buildCount resolves count(expr) / count() against the catalog. Both
// forms are always aggregates.
func (a *Analyzer) buildCount(c *Context, node *ast.Node, hasArg bool) (expression.EvalNode, error) {
	var argTypes []types.Type
	var args []expression.EvalNode

	if hasArg {
		argTypes = []types.Type{types.Any}
		if arg := node.Child(0); arg != nil {
			ev, err := a.buildEval(c, arg)
			if err != nil {
				return nil, err
			}
			args = []expression.EvalNode{ev}
		}
	}

	desc, err := a.resolveFunction(c, "count", argTypes)
	if err != nil {
		return nil, err
	}

	c.SetAggregation()
	return &expression.AggFuncCall{Desc: desc, Args: args}, nil
}

// resolveFunction looks up (name, argTypes) in the catalog and performs
// its lazy binding. Instantiation failure is always fatal: the source's
// swallow-and-log-nil behavior is a bug spec.md §9 calls out and this
// analyzer does not reproduce.
func (a *Analyzer) resolveFunction(c *Context, name string, argTypes []types.Type) (*sql.FunctionDesc, error) {
	if !c.Catalog.ContainsFunction(name, argTypes) {
		return nil, sql.ErrUndefinedFunction.New(canonicalSignature(name, argTypes))
	}

	desc, err := c.Catalog.GetFunction(name, argTypes)
	if err != nil {
		return nil, sql.ErrInvalidQuery.New(err.Error())
	}

	if _, err := desc.NewInstance(); err != nil {
		return nil, sql.ErrInvalidQuery.New(fmt.Sprintf("failed to instantiate function %s: %v", name, err))
	}

	c.Log("resolved function %q", name)
	return desc, nil
}

// buildCase builds a CASE expression (spec.md §4.15). Zero WHEN branches
// with no ELSE is a valid (if useless) CaseWhen.
func (a *Analyzer) buildCase(c *Context, node *ast.Node) (expression.EvalNode, error) {
	cw := &expression.CaseWhen{}
	i := 0
	for i < len(node.Children) && node.Children[i].Kind == ast.When {
		whenNode := node.Children[i]
		cond, err := a.buildEval(c, whenNode.Child(0))
		if err != nil {
			return nil, err
		}
		result, err := a.buildEval(c, whenNode.Child(1))
		if err != nil {
			return nil, err
		}
		cw.Branches = append(cw.Branches, expression.CaseBranch{Cond: cond, Result: result})
		i++
	}
	if i < len(node.Children) && node.Children[i].Kind == ast.Else {
		elseEval, err := a.buildEval(c, node.Children[i].Child(0))
		if err != nil {
			return nil, err
		}
		cw.Else = elseEval
	}
	return cw, nil
}
