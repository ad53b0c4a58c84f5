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
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
tables:
  - name: users
    columns:
      - name: id
        type: int
      - name: name
        type: text
  - name: orders
    columns:
      - name: id
        type: int
      - name: user_id
        type: int
`

func TestLoadFixture(t *testing.T) {
	require := require.New(t)

	dir, err := ioutil.TempDir("", "catalog-fixture")
	require.NoError(err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(ioutil.WriteFile(path, []byte(fixtureYAML), 0640))

	m, err := LoadFixture(path)
	require.NoError(err)

	desc, err := m.GetTable("users")
	require.NoError(err)
	require.True(desc.Schema().Contains("users.id"))
	require.True(desc.Schema().Contains("users.name"))

	desc, err = m.GetTable("orders")
	require.NoError(err)
	require.True(desc.Schema().Contains("orders.user_id"))
}

func TestLoadFixtureUnknownType(t *testing.T) {
	require := require.New(t)

	dir, err := ioutil.TempDir("", "catalog-fixture")
	require.NoError(err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(ioutil.WriteFile(path, []byte("tables:\n  - name: t\n    columns:\n      - name: c\n        type: nonsense\n"), 0640))

	_, err = LoadFixture(path)
	require.Error(err)
}
