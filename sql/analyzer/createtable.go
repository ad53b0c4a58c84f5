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
	"strings"

	"github.com/spf13/cast"

	"github.com/nqllang/analyzer/ast"
	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/plan"
	"github.com/nqllang/analyzer/sql/types"
)

var primitiveTypesByName = map[string]types.Type{
	"bool":   types.Bool,
	"byte":   types.Byte,
	"short":  types.Short,
	"int":    types.Int,
	"long":   types.Long,
	"float":  types.Float,
	"double": types.Double,
	"char":   types.Char,
	"text":   types.Text,
	"bytes":  types.Bytes,
	"ipv4":   types.IPv4,
}

// analyzeCreateTable resolves a CREATE TABLE statement in either its
// with-schema or CTAS form (spec.md §4.9). Exactly one of the two is
// produced; a statement carrying both a column list and a SELECT is
// rejected.
func (a *Analyzer) analyzeCreateTable(c *Context, node *ast.Node) (*plan.CreateTableStmt, error) {
	stmt := &plan.CreateTableStmt{Name: node.Text, Options: make(map[string]string)}

	var columnDefs []*ast.Node
	var selectNode, storeType, path, params *ast.Node

	for _, child := range node.Children {
		switch child.Kind {
		case ast.ColumnDef:
			columnDefs = append(columnDefs, child)
		case ast.Select, ast.Union, ast.Intersect, ast.Except:
			selectNode = child
		case ast.StoreType:
			storeType = child
		case ast.Path:
			path = child
		case ast.Params:
			params = child
		default:
			return nil, sql.ErrNQLSyntax.New(fmt.Sprintf("unexpected CREATE TABLE clause %s", child.Kind))
		}
	}

	if len(columnDefs) > 0 && selectNode != nil {
		return nil, sql.ErrNotSupportQuery.New("CREATE TABLE may not specify both a column list and a SELECT")
	}
	if len(columnDefs) == 0 && selectNode == nil {
		return nil, sql.ErrNotSupportQuery.New("CREATE TABLE requires either a column list or a SELECT")
	}

	if len(columnDefs) > 0 {
		schema, err := buildSchema(stmt.Name, columnDefs)
		if err != nil {
			return nil, err
		}
		stmt.Schema = schema
	} else {
		childCtx := c.Fork()
		qb, err := a.dispatch(childCtx, selectNode)
		if err != nil {
			return nil, err
		}
		c.MergeContext(childCtx)
		block, ok := qb.(*plan.QueryBlock)
		if !ok {
			return nil, sql.ErrInvalidQuery.New("CREATE TABLE AS SELECT requires a single query block")
		}
		stmt.Select = block
	}

	if storeType != nil {
		stmt.StoreKind = storeType.Text
	}
	if path != nil {
		stmt.Path = path.Text
	}
	if params != nil {
		for _, p := range params.Children {
			if p.Kind != ast.Param {
				continue
			}
			val := p.Text
			if v := p.Child(0); v != nil {
				val = cast.ToString(v.Text)
			}
			stmt.Options[p.Text] = val
		}
	}

	return stmt, nil
}

func buildSchema(tableName string, defs []*ast.Node) (sql.Schema, error) {
	schema := make(sql.Schema, 0, len(defs))
	for _, def := range defs {
		typeNode := def.Child(0)
		if typeNode == nil {
			return nil, sql.ErrNQLSyntax.New(fmt.Sprintf("column %q has no declared type", def.Text))
		}
		t, err := parsePrimitiveType(typeNode.Text)
		if err != nil {
			return nil, err
		}
		schema = append(schema, &sql.Column{TableID: tableName, Name: def.Text, Type: t})
	}
	return schema, nil
}

func parsePrimitiveType(raw string) (types.Type, error) {
	t, ok := primitiveTypesByName[strings.ToLower(raw)]
	if !ok {
		return types.Unknown, sql.ErrInvalidQuery.New(fmt.Sprintf("unknown column type %q", raw))
	}
	return t, nil
}
