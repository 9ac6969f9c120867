// Package query defines a small structured language for describing frame
// transformations: row filters, derived columns and column projections. A
// Query is declarative data; the Processor evaluates it against a frame.
package query

import (
	"github.com/asaidimu/go-tabula/core/schema"
)

// ComparisonOperator defines the set of operators usable in a filter condition.
type ComparisonOperator string

// Supported comparison operators.
const (
	ComparisonOperatorEq  ComparisonOperator = "eq"
	ComparisonOperatorNeq ComparisonOperator = "neq"
	ComparisonOperatorLt  ComparisonOperator = "lt"
	ComparisonOperatorLte ComparisonOperator = "lte"
	ComparisonOperatorGt  ComparisonOperator = "gt"
	ComparisonOperatorGte ComparisonOperator = "gte"
	ComparisonOperatorIn  ComparisonOperator = "in"
	ComparisonOperatorNin ComparisonOperator = "nin"
)

// Value represents the comparison value of a filter condition. For In and
// Nin it holds a []any membership set.
type Value any

// Condition is a single row predicate on one column.
type Condition struct {
	Column   string             // The column the filter applies to.
	Operator ComparisonOperator // The comparison operator to use.
	Value    Value              // The value or membership set to compare against.
}

// Group combines multiple filters with a logical operator, allowing nested
// filter logic.
type Group struct {
	Operator schema.LogicalOperator
	Filters  []Filter
}

// Filter is a union type: either a single condition or a group.
type Filter struct {
	Condition *Condition `json:",omitempty"`
	Group     *Group     `json:",omitempty"`
}

// Derived describes a column computed from other columns by a registered
// compute function.
type Derived struct {
	Alias    string   // The name of the new column.
	Function string   // The registered compute function to apply.
	Columns  []string // The input columns passed to the function.
}

// Query is the top-level description of a frame transformation: an optional
// filter, derived columns appended in order, and an optional final column
// projection.
type Query struct {
	Filters *Filter   `json:",omitempty"`
	Derived []Derived `json:",omitempty"`
	Select  []string  `json:",omitempty"`
}

// standardComparisonOperators is the set of built-in comparison operators.
var standardComparisonOperators = map[ComparisonOperator]struct{}{
	ComparisonOperatorEq:  {},
	ComparisonOperatorNeq: {},
	ComparisonOperatorLt:  {},
	ComparisonOperatorLte: {},
	ComparisonOperatorGt:  {},
	ComparisonOperatorGte: {},
	ComparisonOperatorIn:  {},
	ComparisonOperatorNin: {},
}

// IsStandard checks if a comparison operator is one of the built-in operators.
func (c ComparisonOperator) IsStandard() bool {
	_, ok := standardComparisonOperators[c]
	return ok
}
