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

package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	require.Equal(t, "INT", Int.String())
	require.Equal(t, "TEXT", Text.String())
	require.Equal(t, "TYPE(?)", Type(999).String())
}

func TestTypeIsNumeric(t *testing.T) {
	for _, typ := range []Type{Short, Int, Long, Float, Double} {
		require.Truef(t, typ.IsNumeric(), "%s should be numeric", typ)
	}
	for _, typ := range []Type{Byte, Bool, Char, Text, Bytes, IPv4} {
		require.Falsef(t, typ.IsNumeric(), "%s should not be numeric", typ)
	}
}

func TestTypeIsInteger(t *testing.T) {
	for _, typ := range []Type{Short, Int, Long} {
		require.Truef(t, typ.IsInteger(), "%s should be integer", typ)
	}
	for _, typ := range []Type{Byte, Float, Double, Bool, Text} {
		require.Falsef(t, typ.IsInteger(), "%s should not be integer", typ)
	}
}
