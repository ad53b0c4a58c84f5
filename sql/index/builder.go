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

// Package index builds the physical index structure a resolved CREATE
// INDEX statement asks for. It is a consumer of the analyzer's output, not
// part of analysis itself: the analyzer only validates and resolves a
// CreateIndexStmt, this package is what actually materializes one.
package index

import (
	"fmt"
	"path/filepath"

	uuid "github.com/satori/go.uuid"

	"github.com/nqllang/analyzer/sql/plan"
)

// BuildResult identifies a materialized index: the directory it was built
// under and the correlation id assigned to the build.
type BuildResult struct {
	BuildID string
	Dir     string
	Method  plan.IndexMethod
}

// Build materializes stmt's index under baseDir, dispatching to the
// backend its resolved Method names. Method defaults to TWO_LEVEL_BIN_TREE,
// matching spec.md §4.8's default when CREATE INDEX carries no USING
// clause.
func Build(stmt *plan.CreateIndexStmt, baseDir string) (*BuildResult, error) {
	method := plan.TwoLevelBinTree
	if stmt.Method != nil {
		method = *stmt.Method
	}

	buildID := uuid.NewV4().String()
	dir := filepath.Join(baseDir, stmt.Table, stmt.Name, buildID)

	var err error
	switch method {
	case plan.Bitmap:
		err = buildBitmap(dir, stmt)
	case plan.BTree, plan.TwoLevelBinTree:
		err = buildTree(dir, stmt, method)
	case plan.Hash:
		err = buildHash(dir, stmt)
	default:
		return nil, fmt.Errorf("index: unknown method %s", method)
	}
	if err != nil {
		return nil, err
	}

	return &BuildResult{BuildID: buildID, Dir: dir, Method: method}, nil
}

func columnNames(specs []*plan.SortSpec) []string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Column.QualifiedName()
	}
	return names
}
