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

	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/types"
)

// wrapNoSuchTable rewraps a catalog not-found error as ErrInvalidQuery, the
// way spec.md §7 requires.
func wrapNoSuchTable(err error, name string) error {
	if sql.ErrNoSuchTable.Is(err) {
		return sql.ErrInvalidQuery.New(fmt.Sprintf("table %q does not exist", name))
	}
	return err
}

func canonicalSignature(name string, paramTypes []types.Type) string {
	parts := make([]string, len(paramTypes))
	for i, t := range paramTypes {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}
