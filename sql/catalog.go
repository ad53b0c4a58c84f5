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

package sql

import "github.com/nqllang/analyzer/sql/types"

// TableDesc is what the catalog hands back for a resolved table: an
// identity and the schema the analyzer resolves columns against.
type TableDesc interface {
	// ID is the table's canonical name, used as the default effective
	// name and as the qualifier for its columns.
	ID() string
	Schema() Schema
}

// FuncType distinguishes scalar functions from aggregates; the analyzer
// sets QueryBlock.IsAggregation / Context.Aggregation when it resolves an
// Agg-typed function.
type FuncType int

const (
	GeneralFunc FuncType = iota
	AggFunc
)

// FunctionDesc is a resolved function signature. NewInstance is the lazy
// binding hook the catalog uses to actually construct a callable/evaluable
// instance; a failure there is fatal (ErrInvalidQuery), never silently
// swallowed.
type FunctionDesc struct {
	Name       string
	FuncType   FuncType
	ParamTypes []types.Type
	ReturnType types.Type

	// NewInstanceFn, when set, is invoked by NewInstance. Catalogs that
	// have nothing to bind eagerly may leave it nil.
	NewInstanceFn func() (interface{}, error)
}

// NewInstance performs the catalog's lazy binding for this function. A
// non-nil error here is always fatal to the enclosing analysis.
func (f *FunctionDesc) NewInstance() (interface{}, error) {
	if f.NewInstanceFn == nil {
		return nil, nil
	}
	return f.NewInstanceFn()
}

// Catalog resolves table names to schemas and function signatures to
// descriptors. It is a read-only collaborator from the analyzer's
// perspective and must be safe for concurrent reads.
type Catalog interface {
	// GetTable returns the descriptor for name, or an error satisfying
	// ErrNoSuchTable.Is if it is not known to the catalog.
	GetTable(name string) (TableDesc, error)

	// ContainsFunction reports whether a function with this name accepts
	// these argument types under the catalog's resolution rule.
	ContainsFunction(name string, paramTypes []types.Type) bool

	// GetFunction resolves (name, paramTypes) to a FunctionDesc. Callers
	// should check ContainsFunction first; GetFunction on an unknown
	// signature returns an error.
	GetFunction(name string, paramTypes []types.Type) (*FunctionDesc, error)
}
