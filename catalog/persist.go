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

package catalog

import (
	"fmt"
	"io/ioutil"

	msgpack "gopkg.in/vmihailenco/msgpack.v2"

	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/types"
)

// persistedColumn / persistedTable are the msgpack wire shapes: sql.Column
// and sql.Schema carry no struct tags of their own, so persistence gets its
// own mirrored types rather than leaking an encoding concern into sql.
type persistedColumn struct {
	Name string
	Type int
}

type persistedTable struct {
	ID      string
	Columns []persistedColumn
}

// SaveTable msgpack-encodes a table's schema to path, for catalogs that
// persist across process restarts instead of being rebuilt from a fixture
// every time.
func SaveTable(path string, id string, schema sql.Schema) error {
	pt := persistedTable{ID: id}
	for _, c := range schema {
		pt.Columns = append(pt.Columns, persistedColumn{Name: c.Name, Type: int(c.Type)})
	}

	b, err := msgpack.Marshal(pt)
	if err != nil {
		return fmt.Errorf("catalog: encoding table %s: %w", id, err)
	}
	return ioutil.WriteFile(path, b, 0640)
}

// LoadTable decodes a table previously written by SaveTable and registers
// it into m.
func (m *Memory) LoadTable(path string) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog: reading table file %s: %w", path, err)
	}

	var pt persistedTable
	if err := msgpack.Unmarshal(raw, &pt); err != nil {
		return fmt.Errorf("catalog: decoding table file %s: %w", path, err)
	}

	schema := make(sql.Schema, 0, len(pt.Columns))
	for _, c := range pt.Columns {
		schema = append(schema, &sql.Column{TableID: pt.ID, Name: c.Name, Type: types.Type(c.Type)})
	}
	m.RegisterTable(pt.ID, schema)
	return nil
}
