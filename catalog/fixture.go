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
	"strings"

	yaml "gopkg.in/yaml.v2"

	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/types"
)

// fixtureColumn is one column entry in a YAML table fixture.
type fixtureColumn struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// fixtureTable is one table entry in a YAML catalog fixture.
type fixtureTable struct {
	Name    string          `yaml:"name"`
	Columns []fixtureColumn `yaml:"columns"`
}

// fixture is the top-level shape a YAML catalog fixture file parses into.
type fixture struct {
	Tables []fixtureTable `yaml:"tables"`
}

var fixtureTypes = map[string]types.Type{
	"bool": types.Bool, "byte": types.Byte, "short": types.Short,
	"int": types.Int, "long": types.Long, "float": types.Float,
	"double": types.Double, "char": types.Char, "text": types.Text,
	"bytes": types.Bytes, "ipv4": types.IPv4,
}

// LoadFixture parses a YAML catalog fixture (a list of tables and their
// columns), registers every table it describes into a new Memory catalog,
// and returns that catalog.
func LoadFixture(path string) (*Memory, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading fixture %s: %w", path, err)
	}

	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("catalog: parsing fixture %s: %w", path, err)
	}

	m := New()
	for _, t := range f.Tables {
		schema := make(sql.Schema, 0, len(t.Columns))
		for _, col := range t.Columns {
			typ, ok := fixtureTypes[strings.ToLower(col.Type)]
			if !ok {
				return nil, fmt.Errorf("catalog: table %s column %s: unknown type %q", t.Name, col.Name, col.Type)
			}
			schema = append(schema, &sql.Column{TableID: t.Name, Name: col.Name, Type: typ})
		}
		m.RegisterTable(t.Name, schema)
	}

	return m, nil
}
