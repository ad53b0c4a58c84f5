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

// Package analyzer implements the semantic analyzer: the recursive,
// stateful transformer that turns a grammar-produced AST into a Query
// Block Tree.
package analyzer

import (
	"github.com/sirupsen/logrus"
	uuid "github.com/satori/go.uuid"

	"github.com/nqllang/analyzer/sql"
	"github.com/nqllang/analyzer/sql/plan"
)

// Context is per-scope mutable state: alias bindings, the set of input
// tables, the aggregation flag, and caller-opaque hints. It is exclusively
// owned by the analysis invocation that created it and mutated in place
// during traversal; it is never read by two handlers at once.
type Context struct {
	Catalog sql.Catalog

	// RunID correlates every Context spawned by a single top-level
	// Analyze call (including forks for set operations and CTAS) back to
	// that call, for logging/tracing.
	RunID uuid.UUID

	aliasToActual map[string]string
	inputOrder    []string
	inputSet      map[string]struct{}

	Aggregation bool
	Hints       map[string]interface{}

	log *logrus.Entry
}

// NewContext creates a fresh, empty Context bound to catalog.
func NewContext(catalog sql.Catalog) *Context {
	return newContext(catalog, uuid.NewV4(), logrus.NewEntry(logrus.StandardLogger()))
}

func newContext(catalog sql.Catalog, runID uuid.UUID, log *logrus.Entry) *Context {
	return &Context{
		Catalog:       catalog,
		RunID:         runID,
		aliasToActual: make(map[string]string),
		inputSet:      make(map[string]struct{}),
		Hints:         make(map[string]interface{}),
		log:           log.WithField("run_id", runID.String()),
	}
}

// Fork creates a fresh Context for an independently-analyzed sub-scope
// (one operand of a set operation, or a CTAS's nested SELECT). The fork is
// owned by its subcall and consumed by MergeContext on return.
func (c *Context) Fork() *Context {
	return newContext(c.Catalog, c.RunID, c.log)
}

// Log emits one structured debug line tagged with this Context's run id.
func (c *Context) Log(format string, args ...interface{}) {
	c.log.Debugf(format, args...)
}

// RenameTable records that effective is the name a query scope uses to
// refer to actual (its own id when there is no alias).
func (c *Context) RenameTable(actual, effective string) {
	c.aliasToActual[effective] = actual
}

// GetActualTableName resolves an effective name (alias or bare table name)
// back to the catalog table id it refers to.
func (c *Context) GetActualTableName(effective string) (string, bool) {
	actual, ok := c.aliasToActual[effective]
	return actual, ok
}

// AddInputTable records effective as a table available for column
// resolution in this scope.
func (c *Context) AddInputTable(effective string) {
	if _, ok := c.inputSet[effective]; ok {
		return
	}
	c.inputSet[effective] = struct{}{}
	c.inputOrder = append(c.inputOrder, effective)
}

// HasInputTable reports whether effective is a table available for column
// resolution in this scope.
func (c *Context) HasInputTable(effective string) bool {
	_, ok := c.inputSet[effective]
	return ok
}

// GetInputTables returns the effective names of every table available for
// resolution in this scope, in the order they were added.
func (c *Context) GetInputTables() []string {
	out := make([]string, len(c.inputOrder))
	copy(out, c.inputOrder)
	return out
}

// GetTable resolves name (an actual catalog table name) through the
// catalog, wrapping a not-found result as ErrInvalidQuery.
func (c *Context) GetTable(name string) (sql.TableDesc, error) {
	desc, err := c.Catalog.GetTable(name)
	if err != nil {
		return nil, wrapNoSuchTable(err, name)
	}
	return desc, nil
}

// SetAggregation marks this scope as an aggregation; called whenever the
// expression builder resolves an aggregate function call.
func (c *Context) SetAggregation() {
	c.Aggregation = true
}

// MergeContext absorbs a forked sub-context's alias map, input tables, and
// aggregation flag into this one. Used when a SetStmt's independently
// analyzed operands report back to their shared parent.
func (c *Context) MergeContext(child *Context) {
	for effective, actual := range child.aliasToActual {
		c.aliasToActual[effective] = actual
	}
	for _, effective := range child.inputOrder {
		c.AddInputTable(effective)
	}
	c.Aggregation = c.Aggregation || child.Aggregation
}

// MakeHints is the post-analysis hook: it stamps caller-opaque metadata
// onto the Context once the ParseTree is built. The analyzer itself never
// interprets these hints.
func (c *Context) MakeHints(tree plan.ParseTree) {
	c.Hints["run_id"] = c.RunID.String()
	if tree == nil {
		return
	}
	switch t := tree.(type) {
	case *plan.QueryBlock:
		c.Hints["is_aggregation"] = t.IsAggregation
		c.Hints["input_table_count"] = len(c.inputOrder)
	case *plan.SetStmt:
		c.Hints["set_kind"] = t.Kind
	}
}
