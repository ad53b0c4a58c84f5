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
	"github.com/mitchellh/hashstructure"

	"github.com/nqllang/analyzer/sql/plan"
)

// StructuralHash computes a structural-equality hash of a ParseTree: two
// trees built from differently-shaped but semantically identical AST input
// (e.g. a GROUP BY whose plain columns arrive in a different run than a
// CUBE) hash equal exactly when every resolved field matches. This grounds
// the round-trip idempotence property of re-analyzing an already-resolved
// tree.
func StructuralHash(tree plan.ParseTree) (uint64, error) {
	return hashstructure.Hash(tree, nil)
}
