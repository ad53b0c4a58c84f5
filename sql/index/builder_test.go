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

package index

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/plan"
	"github.com/nqllang/analyzer/sql/types"
)

func testStmt(method *plan.IndexMethod) *plan.CreateIndexStmt {
	return &plan.CreateIndexStmt{
		Name:  "idx_t_c",
		Table: "t",
		SortSpecs: []*plan.SortSpec{
			{Column: &sql.Column{TableID: "t", Name: "c", Type: types.Int}},
		},
		Method: method,
	}
}

func TestBuildDefaultsToTwoLevelBinTree(t *testing.T) {
	require := require.New(t)

	dir, err := ioutil.TempDir("", "index-build")
	require.NoError(err)
	defer os.RemoveAll(dir)

	result, err := Build(testStmt(nil), dir)
	require.NoError(err)
	require.Equal(plan.TwoLevelBinTree, result.Method)
	require.DirExists(result.Dir)
}

func TestBuildBTree(t *testing.T) {
	require := require.New(t)

	dir, err := ioutil.TempDir("", "index-build")
	require.NoError(err)
	defer os.RemoveAll(dir)

	method := plan.BTree
	result, err := Build(testStmt(&method), dir)
	require.NoError(err)
	require.Equal(plan.BTree, result.Method)
}

func TestBuildHash(t *testing.T) {
	require := require.New(t)

	dir, err := ioutil.TempDir("", "index-build")
	require.NoError(err)
	defer os.RemoveAll(dir)

	method := plan.Hash
	result, err := Build(testStmt(&method), dir)
	require.NoError(err)
	require.Equal(plan.Hash, result.Method)
}

func TestColumnNames(t *testing.T) {
	specs := []*plan.SortSpec{
		{Column: &sql.Column{TableID: "t", Name: "a", Type: types.Int}},
		{Column: &sql.Column{TableID: "t", Name: "b", Type: types.Int}},
	}
	require.Equal(t, []string{"t.a", "t.b"}, columnNames(specs))
}
