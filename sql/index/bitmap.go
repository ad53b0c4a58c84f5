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
	"fmt"
	"os"

	"github.com/pilosa/pilosa"

	"github.com/nqllang/analyzer/sql/plan"
)

// buildBitmap creates a pilosa holder under dir and one frame per indexed
// column, the BITMAP method's backing structure. This grounds on the
// teacher's sql/index/pilosa driver but stays to the holder/index/frame
// surface; a production build additionally needs a running pilosa cluster
// for the distributed case, which is out of scope here.
func buildBitmap(dir string, stmt *plan.CreateIndexStmt) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	holder := pilosa.NewHolder()
	holder.Path = dir
	if err := holder.Open(); err != nil {
		return fmt.Errorf("index: opening pilosa holder: %w", err)
	}
	defer holder.Close()

	idx, err := holder.CreateIndexIfNotExists(stmt.Table, pilosa.IndexOptions{})
	if err != nil {
		return fmt.Errorf("index: creating pilosa index: %w", err)
	}

	for _, name := range columnNames(stmt.SortSpecs) {
		if _, err := idx.CreateFrameIfNotExists(frameName(name), pilosa.FrameOptions{}); err != nil {
			return fmt.Errorf("index: creating pilosa frame %q: %w", name, err)
		}
	}

	return nil
}

func frameName(column string) string {
	out := make([]rune, 0, len(column))
	for _, r := range column {
		if r == '.' {
			out = append(out, '_')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
