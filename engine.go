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

// Package nqllang bundles an Analyzer with a Catalog behind a single
// entry point, the way the teacher's sqle package bundles an analyzer
// with a database provider behind its Engine.
package nqllang

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/nqllang/analyzer/ast"
	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/analyzer"
	"github.com/nqllang/analyzer/sql/index"
	"github.com/nqllang/analyzer/sql/plan"
)

const experimentalFlag = "NQL_EXPERIMENTAL"

// Experimental mirrors the teacher's env-gated feature flag convention.
var Experimental bool

func init() {
	Experimental = os.Getenv(experimentalFlag) != ""
}

// Config holds Engine-wide settings.
type Config struct {
	// IndexDir is where CREATE INDEX materializes index backends. Empty
	// disables physical index building: statements still analyze and
	// validate, but Build is never called.
	IndexDir string
}

// Engine bundles an Analyzer with the catalog it resolves against, the way
// the teacher's Engine bundles an analyzer with a database provider.
type Engine struct {
	Analyzer *analyzer.Analyzer
	Catalog  sql.Catalog
	Config   *Config

	mu sync.Mutex
}

// New builds an Engine over catalog.
func New(catalog sql.Catalog, cfg *Config) *Engine {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Engine{
		Analyzer: analyzer.NewAnalyzer(catalog),
		Catalog:  catalog,
		Config:   cfg,
	}
}

// AnalyzeResult is what a top-level Analyze call hands back: the resolved
// tree, the hints its Context accumulated, and, for CREATE INDEX, the
// backend that was materialized.
type AnalyzeResult struct {
	Tree  plan.ParseTree
	Hints map[string]interface{}
	Index *index.BuildResult
}

// Analyze resolves root into a ParseTree and, for CREATE INDEX statements,
// materializes the requested index backend when e.Config.IndexDir is set.
func (e *Engine) Analyze(ctx context.Context, root *ast.Node) (*AnalyzeResult, error) {
	tree, analysisCtx, err := e.Analyzer.Analyze(ctx, root)
	if err != nil {
		return nil, err
	}

	result := &AnalyzeResult{Tree: tree, Hints: analysisCtx.Hints}

	if stmt, ok := tree.(*plan.CreateIndexStmt); ok && e.Config.IndexDir != "" {
		e.mu.Lock()
		built, err := index.Build(stmt, e.Config.IndexDir)
		e.mu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("engine: building index %s: %w", stmt.Name, err)
		}
		result.Index = built
	}

	return result, nil
}
