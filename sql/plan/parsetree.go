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

// Package plan is the Query Block Tree: the analyzer's typed, resolved
// output, ready for the planner to consume. AST is immutable input; QBT
// entities are constructed monotonically during traversal.
package plan

import (
	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/expression"
)

// ParseTree is the sum type at the root of the analyzer's output.
type ParseTree interface {
	parseTree()
}

// Target is a single projected expression in a SELECT list.
type Target struct {
	Expr  expression.EvalNode
	Index int
	Alias string
}

// GroupKind identifies the shape of a GroupElement.
type GroupKind int

const (
	GroupByKind GroupKind = iota
	CubeKind
	RollupKind
)

// GroupElement is one grouping construct (a plain GROUP BY column list, a
// CUBE, or a ROLLUP) within a GroupByClause.
type GroupElement struct {
	Kind    GroupKind
	Columns []*sql.Column
}

// GroupByClause is the resolved GROUP BY clause of a QueryBlock.
type GroupByClause struct {
	EmptyGroupingSet bool
	Groups           []*GroupElement
}

// SortSpec is one column of an ORDER BY (or CREATE INDEX column) list.
// Defaults are ascending, nulls-last.
type SortSpec struct {
	Column     *sql.Column
	Descending bool
	NullsFirst bool
}

// FromTable is a single table reference in a FROM clause.
type FromTable struct {
	Desc  sql.TableDesc
	Alias string
}

// EffectiveName is the alias if present, otherwise the table's own id.
func (f *FromTable) EffectiveName() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Desc.ID()
}

// JoinKind identifies the kind of an explicit join.
type JoinKind int

const (
	NaturalJoin JoinKind = iota
	InnerJoin
	LeftOuterJoin
	RightOuterJoin
	CrossJoin
)

// JoinQualifier is either an ON expression or a USING column list.
type JoinQualifier interface {
	joinQualifier()
}

// OnExpr is a JOIN ... ON <expr> qualifier.
type OnExpr struct {
	Expr expression.EvalNode
}

func (*OnExpr) joinQualifier() {}

// UsingCols is a JOIN ... USING (cols) qualifier.
type UsingCols struct {
	Columns []*sql.Column
}

func (*UsingCols) joinQualifier() {}

// JoinClause is a left-deep join tree: its right operand is either another
// JoinClause (for chained joins) or a terminal FromTable.
type JoinClause struct {
	Kind      JoinKind
	Left      *FromTable
	Right     interface{} // *FromTable or *JoinClause
	Qualifier JoinQualifier
}

// QueryBlock is a single SELECT scope.
type QueryBlock struct {
	FromTables    []*FromTable
	Join          *JoinClause
	Where         expression.EvalNode
	GroupBy       *GroupByClause
	Having        expression.EvalNode
	SortSpecs     []*SortSpec
	Targets       []*Target
	ProjectAll    bool
	Distinct      bool
	IsAggregation bool
}

func (*QueryBlock) parseTree() {}

// SetKind identifies a set-operation statement's operator.
type SetKind int

const (
	UnionSet SetKind = iota
	IntersectSet
	ExceptSet
)

// SetStmt is a UNION/INTERSECT/EXCEPT of two independently analyzed
// operands.
//
// Distinct follows the source's inverted naming: ALL sets Distinct=true
// (no dedup), DISTINCT sets Distinct=false. This is preserved bit-for-bit;
// see DESIGN.md.
type SetStmt struct {
	Kind        SetKind
	Left, Right ParseTree
	Distinct    bool
}

func (*SetStmt) parseTree() {}

// IndexMethod identifies the physical structure requested by CREATE INDEX.
type IndexMethod int

const (
	TwoLevelBinTree IndexMethod = iota
	BTree
	Hash
	Bitmap
)

var indexMethodNames = map[IndexMethod]string{
	TwoLevelBinTree: "TWO_LEVEL_BIN_TREE",
	BTree:           "BTREE",
	Hash:            "HASH",
	Bitmap:          "BITMAP",
}

func (m IndexMethod) String() string {
	if s, ok := indexMethodNames[m]; ok {
		return s
	}
	return "?"
}

// CreateIndexStmt is the resolved form of a CREATE INDEX statement.
type CreateIndexStmt struct {
	Name      string
	Unique    bool
	Table     string
	SortSpecs []*SortSpec
	Method    *IndexMethod
	Params    map[string]string
}

func (*CreateIndexStmt) parseTree() {}

// CreateTableStmt is the resolved form of a CREATE TABLE statement, in
// either its with-schema or CTAS shape. Exactly one of Schema or Select is
// set.
type CreateTableStmt struct {
	Name      string
	Schema    sql.Schema
	StoreKind string
	Path      string
	Options   map[string]string
	Select    *QueryBlock
}

func (*CreateTableStmt) parseTree() {}
