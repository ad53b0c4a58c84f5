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

// Package catalog is an in-memory sql.Catalog implementation: a table
// registry and a function registry the analyzer resolves names against.
// It sits outside the analyzer proper, the way the teacher keeps its test
// catalog out of sql/analyzer.
package catalog

import (
	"fmt"

	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/types"
)

// table is the in-memory sql.TableDesc.
type table struct {
	id     string
	schema sql.Schema
}

func (t *table) ID() string        { return t.id }
func (t *table) Schema() sql.Schema { return t.schema }

// signature is a resolved function's lookup key: its name plus the arity
// it was registered with. Parameter types are not part of the key.
type signature struct {
	name  string
	arity int
}

// Memory is a mutable, in-process Catalog. It is not safe for concurrent
// writes; concurrent reads are fine once registration is complete.
type Memory struct {
	tables    map[string]*table
	functions map[signature]*sql.FunctionDesc
}

// New returns an empty Memory catalog.
func New() *Memory {
	return &Memory{
		tables:    make(map[string]*table),
		functions: make(map[signature]*sql.FunctionDesc),
	}
}

// RegisterTable adds or replaces a table and its schema. Every column's
// TableID is forced to id, so callers may build schemas without that
// bookkeeping.
func (m *Memory) RegisterTable(id string, schema sql.Schema) {
	owned := make(sql.Schema, len(schema))
	for i, c := range schema {
		owned[i] = &sql.Column{TableID: id, Name: c.Name, Type: c.Type}
	}
	m.tables[id] = &table{id: id, schema: owned}
}

// RegisterFunction adds or replaces a function signature. paramTypes is
// matched by arity only, not by type: spec.md's catalog-resolution rule
// (§4.11) treats signature matching as the catalog's business, which this
// simple implementation resolves by argument count.
func (m *Memory) RegisterFunction(desc *sql.FunctionDesc) {
	m.functions[signature{name: desc.Name, arity: len(desc.ParamTypes)}] = desc
}

func (m *Memory) GetTable(name string) (sql.TableDesc, error) {
	t, ok := m.tables[name]
	if !ok {
		return nil, sql.ErrNoSuchTable.New(name)
	}
	return t, nil
}

func (m *Memory) ContainsFunction(name string, paramTypes []types.Type) bool {
	_, ok := m.functions[signature{name: name, arity: len(paramTypes)}]
	return ok
}

func (m *Memory) GetFunction(name string, paramTypes []types.Type) (*sql.FunctionDesc, error) {
	desc, ok := m.functions[signature{name: name, arity: len(paramTypes)}]
	if !ok {
		return nil, fmt.Errorf("catalog: no function %s/%d", name, len(paramTypes))
	}
	return desc, nil
}

var _ sql.Catalog = (*Memory)(nil)
