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

// Package expression holds EvalNode, the typed expression tree the analyzer
// builds out of a query's scalar subtrees.
package expression

import (
	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/types"
)

// EvalNode is a node of a typed, resolved expression tree, ready for the
// planner/executor to consume.
type EvalNode interface {
	// ValueType is the scalar type this node evaluates to.
	ValueType() types.Type
	evalNode()
}

// Const is a literal value with its inferred or declared type.
type Const struct {
	Datum interface{}
	Type  types.Type
}

func (c *Const) ValueType() types.Type { return c.Type }
func (*Const) evalNode()               {}

// Field references a resolved, fully-qualified column.
type Field struct {
	Column *sql.Column
}

func (f *Field) ValueType() types.Type { return f.Column.Type }
func (*Field) evalNode()               {}

// Not negates a boolean-valued child.
type Not struct {
	Child EvalNode
}

func (*Not) ValueType() types.Type { return types.Bool }
func (*Not) evalNode()             {}

// BinaryOp identifies the operator of a Binary node.
type BinaryOp int

const (
	OpAnd BinaryOp = iota
	OpOr
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

var binaryOpNames = map[BinaryOp]string{
	OpAnd: "AND", OpOr: "OR", OpEq: "=", OpNeq: "<>", OpLt: "<", OpLte: "<=",
	OpGt: ">", OpGte: ">=", OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
}

func (op BinaryOp) String() string {
	if s, ok := binaryOpNames[op]; ok {
		return s
	}
	return "?"
}

// IsComparison reports whether op always yields a boolean.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpAnd, OpOr, OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte:
		return true
	default:
		return false
	}
}

// Binary is a two-operand expression. Operand order is preserved exactly
// as built (constant-on-left stays on left) so downstream operator
// semantics such as subtraction stay correct.
type Binary struct {
	Op          BinaryOp
	Left, Right EvalNode
}

func (b *Binary) ValueType() types.Type {
	if b.Op.IsComparison() {
		return types.Bool
	}
	return widenNumeric(b.Left.ValueType(), b.Right.ValueType())
}
func (*Binary) evalNode() {}

func widenNumeric(a, b types.Type) types.Type {
	if a == types.Double || b == types.Double {
		return types.Double
	}
	if a == types.Float || b == types.Float {
		return types.Float
	}
	if a == types.Long || b == types.Long {
		return types.Long
	}
	if a == types.Int || b == types.Int {
		return types.Int
	}
	return a
}

// Like is a (possibly negated) pattern match of a field against a string
// constant.
type Like struct {
	Not     bool
	Field   *Field
	Pattern *Const
}

func (*Like) ValueType() types.Type { return types.Bool }
func (*Like) evalNode()             {}

// FuncCall is a resolved call to a scalar (non-aggregate) function.
type FuncCall struct {
	Desc *sql.FunctionDesc
	Args []EvalNode
}

func (f *FuncCall) ValueType() types.Type { return f.Desc.ReturnType }
func (*FuncCall) evalNode()               {}

// AggFuncCall is a resolved call to an aggregate function. Its presence in
// a QueryBlock's targets or HAVING clause is what makes that block an
// aggregation.
type AggFuncCall struct {
	Desc *sql.FunctionDesc
	Args []EvalNode
}

func (f *AggFuncCall) ValueType() types.Type { return f.Desc.ReturnType }
func (*AggFuncCall) evalNode()               {}

// CaseBranch is one WHEN cond THEN result arm of a CaseWhen.
type CaseBranch struct {
	Cond, Result EvalNode
}

// CaseWhen is a CASE expression. Zero branches with no Else is valid (the
// caller is responsible for deciding whether that is acceptable).
type CaseWhen struct {
	Branches []CaseBranch
	Else     EvalNode
}

func (c *CaseWhen) ValueType() types.Type {
	if len(c.Branches) > 0 {
		return c.Branches[0].Result.ValueType()
	}
	if c.Else != nil {
		return c.Else.ValueType()
	}
	return types.Unknown
}
func (*CaseWhen) evalNode() {}

// ContainsAgg reports whether an AggFuncCall is reachable anywhere in the
// expression tree rooted at n. Used to reject aggregates in WHERE;
// QueryBlock.IsAggregation is taken from Context.Aggregation instead.
func ContainsAgg(n EvalNode) bool {
	switch e := n.(type) {
	case nil:
		return false
	case *AggFuncCall:
		return true
	case *Not:
		return ContainsAgg(e.Child)
	case *Binary:
		return ContainsAgg(e.Left) || ContainsAgg(e.Right)
	case *FuncCall:
		for _, a := range e.Args {
			if ContainsAgg(a) {
				return true
			}
		}
		return false
	case *CaseWhen:
		for _, b := range e.Branches {
			if ContainsAgg(b.Cond) || ContainsAgg(b.Result) {
				return true
			}
		}
		return ContainsAgg(e.Else)
	default:
		return false
	}
}
