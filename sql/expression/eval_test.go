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

package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/types"
)

func TestBinaryValueTypeComparisonIsBool(t *testing.T) {
	b := &Binary{
		Op:    OpEq,
		Left:  &Const{Datum: int32(1), Type: types.Int},
		Right: &Const{Datum: int32(2), Type: types.Int},
	}
	require.Equal(t, types.Bool, b.ValueType())
}

func TestBinaryValueTypeWidensNumeric(t *testing.T) {
	b := &Binary{
		Op:    OpAdd,
		Left:  &Const{Datum: int32(1), Type: types.Int},
		Right: &Const{Datum: 2.5, Type: types.Double},
	}
	require.Equal(t, types.Double, b.ValueType())
}

func TestCaseWhenValueTypeFromFirstBranch(t *testing.T) {
	cw := &CaseWhen{
		Branches: []CaseBranch{
			{Cond: &Const{Datum: true, Type: types.Bool}, Result: &Const{Datum: "a", Type: types.Text}},
		},
	}
	require.Equal(t, types.Text, cw.ValueType())
}

func TestCaseWhenValueTypeFromElseWhenNoBranches(t *testing.T) {
	cw := &CaseWhen{Else: &Const{Datum: int32(0), Type: types.Int}}
	require.Equal(t, types.Int, cw.ValueType())
}

func TestCaseWhenValueTypeUnknownWhenEmpty(t *testing.T) {
	cw := &CaseWhen{}
	require.Equal(t, types.Unknown, cw.ValueType())
}

func TestContainsAggFindsNestedAggCall(t *testing.T) {
	agg := &AggFuncCall{Desc: &sql.FunctionDesc{Name: "sum", ReturnType: types.Long}}
	expr := &Not{Child: &Binary{Op: OpGt, Left: agg, Right: &Const{Datum: int32(0), Type: types.Int}}}
	require.True(t, ContainsAgg(expr))
}

func TestContainsAggFalseForPlainExpression(t *testing.T) {
	expr := &Binary{Op: OpEq, Left: &Const{Datum: int32(1), Type: types.Int}, Right: &Const{Datum: int32(1), Type: types.Int}}
	require.False(t, ContainsAgg(expr))
}

func TestFieldValueTypeFollowsColumn(t *testing.T) {
	f := &Field{Column: &sql.Column{TableID: "t", Name: "c", Type: types.Char}}
	require.Equal(t, types.Char, f.ValueType())
}
