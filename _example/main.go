// Copyright 2020-2022 Dolthub, Inc.
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

package main

import (
	"context"
	"fmt"

	nqllang "github.com/nqllang/analyzer"
	"github.com/nqllang/analyzer/ast"
	"github.com/nqllang/analyzer/catalog"
	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/plan"
	"github.com/nqllang/analyzer/sql/types"
)

// This is an example of running the analyzer over a hand-built AST, the
// shape a real parser would hand it. There is no parser in this module: it
// is an external collaborator (see SPEC_FULL.md §1).
//
// Running this program prints the resolved QueryBlock for:
//
//	SELECT name, email FROM mytable WHERE name = 'Jane Doe'
func main() {
	cat := catalog.New()
	cat.RegisterTable("mytable", sql.Schema{
		{Name: "name", Type: types.Text},
		{Name: "email", Type: types.Text},
	})

	engine := nqllang.New(cat, &nqllang.Config{})

	query := ast.New(ast.Select, "",
		ast.New(ast.From, "",
			ast.New(ast.Table, "mytable")),
		ast.New(ast.SelList, "",
			ast.New(ast.DerivedColumn, "", ast.New(ast.Column, "", ast.New(ast.FieldName, "name"))),
			ast.New(ast.DerivedColumn, "", ast.New(ast.Column, "", ast.New(ast.FieldName, "email")))),
		ast.New(ast.Where, "",
			ast.New(ast.Eq, "",
				ast.New(ast.FieldName, "name"),
				ast.New(ast.String, "Jane Doe"))))

	result, err := engine.Analyze(context.Background(), query)
	if err != nil {
		panic(err)
	}

	qb := result.Tree.(*plan.QueryBlock)
	fmt.Printf("tables: %v\n", qb.FromTables)
	fmt.Printf("targets: %d\n", len(qb.Targets))
	fmt.Printf("aggregation: %v\n", qb.IsAggregation)
	fmt.Printf("hints: %v\n", result.Hints)
}
