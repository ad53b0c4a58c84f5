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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/types"
)

func TestRegisterAndGetTable(t *testing.T) {
	require := require.New(t)

	m := New()
	m.RegisterTable("users", sql.Schema{
		{Name: "id", Type: types.Int},
		{Name: "name", Type: types.Text},
	})

	desc, err := m.GetTable("users")
	require.NoError(err)
	require.Equal("users", desc.ID())
	require.True(desc.Schema().Contains("users.id"))
	require.True(desc.Schema().Contains("users.name"))
}

func TestGetTableNotFound(t *testing.T) {
	m := New()
	_, err := m.GetTable("missing")
	require.Error(t, err)
	require.True(t, sql.ErrNoSuchTable.Is(err))
}

func TestRegisterFunctionMatchedByArity(t *testing.T) {
	require := require.New(t)

	m := New()
	m.RegisterFunction(&sql.FunctionDesc{Name: "count", FuncType: sql.AggFunc, ParamTypes: []types.Type{types.Any}, ReturnType: types.Long})

	require.True(m.ContainsFunction("count", []types.Type{types.Any}))
	require.False(m.ContainsFunction("count", []types.Type{types.Any, types.Any}))
	require.False(m.ContainsFunction("sum", []types.Type{types.Any}))

	desc, err := m.GetFunction("count", []types.Type{types.Any})
	require.NoError(err)
	require.Equal(sql.AggFunc, desc.FuncType)
}
