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
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"

	"github.com/nqllang/analyzer/sql/plan"
)

var columnsBucket = []byte("columns")

// buildTree creates a boltdb-backed store for BTREE and TWO_LEVEL_BIN_TREE
// methods: one top-level "columns" bucket holding one nested bucket per
// indexed column. Both methods get the same layout; method does not
// change it.
func buildTree(dir string, stmt *plan.CreateIndexStmt, method plan.IndexMethod) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	db, err := bolt.Open(filepath.Join(dir, "index.db"), 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists(columnsBucket)
		if err != nil {
			return err
		}
		for _, name := range columnNames(stmt.SortSpecs) {
			if _, err := root.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
}
