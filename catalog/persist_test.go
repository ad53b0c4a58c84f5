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

	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/types"
)

func TestSaveAndLoadTable(t *testing.T) {
	require := require.New(t)

	dir, err := ioutil.TempDir("", "catalog-persist")
	require.NoError(err)
	defer os.RemoveAll(dir)

	schema := sql.Schema{
		{TableID: "users", Name: "id", Type: types.Int},
		{TableID: "users", Name: "name", Type: types.Text},
	}
	path := filepath.Join(dir, "users.tbl")
	require.NoError(SaveTable(path, "users", schema))

	m := New()
	require.NoError(m.LoadTable(path))

	desc, err := m.GetTable("users")
	require.NoError(err)
	require.True(desc.Schema().Contains("users.id"))
	require.True(desc.Schema().Contains("users.name"))
}
