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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nqllang/analyzer/ast"
	"github.com/nqllang/analyzer/catalog"
	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/expression"
	"github.com/nqllang/analyzer/sql/plan"
	"github.com/nqllang/analyzer/sql/types"
)

func testCatalog() *catalog.Memory {
	c := catalog.New()
	c.RegisterTable("users", sql.Schema{
		{Name: "id", Type: types.Int},
		{Name: "name", Type: types.Text},
	})
	c.RegisterTable("orders", sql.Schema{
		{Name: "id", Type: types.Int},
		{Name: "user_id", Type: types.Int},
		{Name: "total", Type: types.Double},
	})
	return c
}

func fieldName(name string) *ast.Node {
	return ast.New(ast.FieldName, name)
}

func qualifiedFieldName(table, name string) *ast.Node {
	return ast.New(ast.FieldName, name, ast.New(ast.Alias, table))
}

func selectStar(from *ast.Node) *ast.Node {
	return ast.New(ast.Select, "",
		from,
		ast.New(ast.SelList, "", ast.New(ast.Star, "")))
}

func TestAnalyzeBareColumnResolution(t *testing.T) {
	require := require.New(t)
	a := NewAnalyzer(testCatalog())

	query := ast.New(ast.Select, "",
		ast.New(ast.From, "", ast.New(ast.Table, "users")),
		ast.New(ast.SelList, "",
			ast.New(ast.DerivedColumn, "", ast.New(ast.Column, "", fieldName("name")))))

	tree, _, err := a.Analyze(context.Background(), query)
	require.NoError(err)

	qb := tree.(*plan.QueryBlock)
	require.Len(qb.Targets, 1)
	field, ok := qb.Targets[0].Expr.(*expression.Field)
	require.True(ok)
	require.Equal("users.name", field.Column.QualifiedName())
}

func TestAnalyzeAmbiguousBareColumn(t *testing.T) {
	require := require.New(t)

	c := catalog.New()
	c.RegisterTable("a", sql.Schema{{Name: "id", Type: types.Int}})
	c.RegisterTable("b", sql.Schema{{Name: "id", Type: types.Int}})
	a := NewAnalyzer(c)

	query := ast.New(ast.Select, "",
		ast.New(ast.From, "", ast.New(ast.Table, "a"), ast.New(ast.Table, "b")),
		ast.New(ast.SelList, "",
			ast.New(ast.DerivedColumn, "", ast.New(ast.Column, "", fieldName("id")))))

	_, _, err := a.Analyze(context.Background(), query)
	require.Error(err)
	require.True(sql.ErrAmbiguousField.Is(err))
}

func TestAnalyzeConstantTypeInferredComparison(t *testing.T) {
	require := require.New(t)
	a := NewAnalyzer(testCatalog())

	query := ast.New(ast.Select, "",
		ast.New(ast.From, "", ast.New(ast.Table, "orders")),
		ast.New(ast.SelList, "",
			ast.New(ast.DerivedColumn, "", ast.New(ast.Column, "", fieldName("id")))),
		ast.New(ast.Where, "",
			ast.New(ast.Eq, "", fieldName("user_id"), ast.New(ast.Digit, "7"))))

	tree, _, err := a.Analyze(context.Background(), query)
	require.NoError(err)

	qb := tree.(*plan.QueryBlock)
	bin := qb.Where.(*expression.Binary)
	_, leftIsField := bin.Left.(*expression.Field)
	require.True(leftIsField)
	right := bin.Right.(*expression.Const)
	require.Equal(types.Int, right.Type)
	require.Equal(int32(7), right.Datum)
}

func TestAnalyzeLeftOuterJoinWithOn(t *testing.T) {
	require := require.New(t)
	a := NewAnalyzer(testCatalog())

	join := ast.New(ast.OuterJoin, "",
		ast.New(ast.Left, ""),
		ast.New(ast.Table, "users"),
		ast.New(ast.Table, "orders"),
		ast.New(ast.On, "",
			ast.New(ast.Eq, "", qualifiedFieldName("users", "id"), qualifiedFieldName("orders", "user_id"))))

	query := selectStar(ast.New(ast.From, "", join))

	tree, _, err := a.Analyze(context.Background(), query)
	require.NoError(err)

	qb := tree.(*plan.QueryBlock)
	require.NotNil(qb.Join)
	require.Equal(plan.LeftOuterJoin, qb.Join.Kind)
	_, ok := qb.Join.Qualifier.(*plan.OnExpr)
	require.True(ok)
	require.Len(qb.FromTables, 2)
}

func TestAnalyzeNaturalJoinRejectsQualifier(t *testing.T) {
	require := require.New(t)
	a := NewAnalyzer(testCatalog())

	join := ast.New(ast.NaturalJoin, "",
		ast.New(ast.Table, "users"),
		ast.New(ast.Table, "orders"),
		ast.New(ast.On, "", ast.New(ast.Eq, "", fieldName("id"), fieldName("id"))))

	query := selectStar(ast.New(ast.From, "", join))

	_, _, err := a.Analyze(context.Background(), query)
	require.Error(err)
	require.True(sql.ErrInvalidQuery.Is(err))
}

func TestAnalyzeNaturalJoinImplicitEquality(t *testing.T) {
	require := require.New(t)
	a := NewAnalyzer(testCatalog())

	join := ast.New(ast.NaturalJoin, "",
		ast.New(ast.Table, "users"),
		ast.New(ast.Table, "orders"))

	query := selectStar(ast.New(ast.From, "", join))

	tree, _, err := a.Analyze(context.Background(), query)
	require.NoError(err)

	qb := tree.(*plan.QueryBlock)
	require.NotNil(qb.Join)
	onExpr, ok := qb.Join.Qualifier.(*plan.OnExpr)
	require.True(ok)

	bin, ok := onExpr.Expr.(*expression.Binary)
	require.True(ok)
	require.Equal(expression.OpEq, bin.Op)
	left := bin.Left.(*expression.Field)
	right := bin.Right.(*expression.Field)
	require.Equal("users.id", left.Column.QualifiedName())
	require.Equal("orders.id", right.Column.QualifiedName())
}

func TestAnalyzeUnionAllInvertedDistinct(t *testing.T) {
	require := require.New(t)
	a := NewAnalyzer(testCatalog())

	left := selectStar(ast.New(ast.From, "", ast.New(ast.Table, "users")))
	right := selectStar(ast.New(ast.From, "", ast.New(ast.Table, "users")))

	union := ast.New(ast.Union, "", left, right,
		ast.New(ast.SetQualifier, "", ast.New(ast.All, "")))

	tree, _, err := a.Analyze(context.Background(), union)
	require.NoError(err)

	set := tree.(*plan.SetStmt)
	// ALL maps to Distinct = true; this is the inverted naming spec.md
	// documents and DESIGN.md justifies, not a bug in this test.
	require.True(set.Distinct)
}

func TestAnalyzeUnionDistinctQualifier(t *testing.T) {
	require := require.New(t)
	a := NewAnalyzer(testCatalog())

	left := selectStar(ast.New(ast.From, "", ast.New(ast.Table, "users")))
	right := selectStar(ast.New(ast.From, "", ast.New(ast.Table, "users")))

	union := ast.New(ast.Union, "", left, right,
		ast.New(ast.SetQualifier, "", ast.New(ast.Distinct, "")))

	tree, _, err := a.Analyze(context.Background(), union)
	require.NoError(err)

	set := tree.(*plan.SetStmt)
	require.False(set.Distinct)
}

func TestAnalyzeCreateIndexWithOptions(t *testing.T) {
	require := require.New(t)
	a := NewAnalyzer(testCatalog())

	stmtNode := ast.New(ast.CreateIndex, "idx_orders_total",
		ast.New(ast.TableDef, "orders"),
		ast.New(ast.SortSpec, "", fieldName("total")),
		ast.New(ast.StoreType, "bitmap"),
		ast.New(ast.Params, "",
			ast.New(ast.Param, "frame_size", ast.New(ast.String, "64"))))

	tree, _, err := a.Analyze(context.Background(), stmtNode)
	require.NoError(err)

	idx := tree.(*plan.CreateIndexStmt)
	require.Equal("orders", idx.Table)
	require.NotNil(idx.Method)
	require.Equal(plan.Bitmap, *idx.Method)
	require.Equal("64", idx.Params["frame_size"])
	require.Len(idx.SortSpecs, 1)
	require.Equal("orders.total", idx.SortSpecs[0].Column.QualifiedName())
}

func TestAnalyzeCreateTableAsSelectMergesChildContext(t *testing.T) {
	require := require.New(t)
	a := NewAnalyzer(testCatalog())

	stmtNode := ast.New(ast.CreateTable, "user_orders",
		selectStar(ast.New(ast.From, "", ast.New(ast.Table, "users"))))

	tree, ctx, err := a.Analyze(context.Background(), stmtNode)
	require.NoError(err)

	ctas := tree.(*plan.CreateTableStmt)
	require.NotNil(ctas.Select)
	require.True(ctx.HasInputTable("users"))
}

func TestAnalyzeEmptyGroupingSet(t *testing.T) {
	require := require.New(t)
	a := NewAnalyzer(testCatalog())

	query := ast.New(ast.Select, "",
		ast.New(ast.From, "", ast.New(ast.Table, "orders")),
		ast.New(ast.SelList, "",
			ast.New(ast.DerivedColumn, "", ast.New(ast.Column, "", fieldName("id")))),
		ast.New(ast.GroupBy, "", ast.New(ast.EmptyGroupingSet, "")))

	tree, _, err := a.Analyze(context.Background(), query)
	require.NoError(err)

	qb := tree.(*plan.QueryBlock)
	require.True(qb.GroupBy.EmptyGroupingSet)
	require.False(qb.IsAggregation)
}

func TestAnalyzeSelectStar(t *testing.T) {
	require := require.New(t)
	a := NewAnalyzer(testCatalog())

	query := selectStar(ast.New(ast.From, "", ast.New(ast.Table, "users")))

	tree, _, err := a.Analyze(context.Background(), query)
	require.NoError(err)

	qb := tree.(*plan.QueryBlock)
	require.True(qb.ProjectAll)
	require.Nil(qb.Targets)
}

func TestDispatchClassifiesOutOfCoreStatementsAsNullTree(t *testing.T) {
	require := require.New(t)
	a := NewAnalyzer(testCatalog())

	for _, kind := range []ast.Kind{ast.Store, ast.Insert, ast.DropTable, ast.ShowTables, ast.ShowDatabases, ast.DescTable} {
		tree, _, err := a.Analyze(context.Background(), ast.New(kind, ""))
		require.NoError(err)
		require.Nil(tree)
	}
}

func TestDispatchRejectsUnrecognizedStatement(t *testing.T) {
	require := require.New(t)
	a := NewAnalyzer(testCatalog())

	_, _, err := a.Analyze(context.Background(), ast.New(ast.Unknown, ""))
	require.Error(err)
	require.True(sql.ErrNQLSyntax.Is(err))
}
