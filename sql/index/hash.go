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

var hashBucket = []byte("hash")

// buildHash creates a single flat, empty boltdb bucket, with no nested
// per-column buckets, unlike the tree methods.
func buildHash(dir string, stmt *plan.CreateIndexStmt) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	db, err := bolt.Open(filepath.Join(dir, "index.db"), 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(hashBucket)
		return err
	})
}
