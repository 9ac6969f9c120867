// Package query provides a fluent API for building Query structures. The
// builder ensures that queries are constructed step by step in a readable
// manner: conditions added through Where are combined with a logical AND.
package query

import (
	"github.com/asaidimu/go-tabula/core/schema"
)

// Builder provides a fluent API for constructing Query values.
type Builder struct {
	query Query
}

// NewBuilder creates a new, empty query builder instance.
func NewBuilder() *Builder {
	return &Builder{query: Query{}}
}

// Build returns the constructed Query.
func (b *Builder) Build() Query {
	return b.query
}

// Reset clears all configuration, returning the builder to its initial state.
func (b *Builder) Reset() *Builder {
	b.query = Query{}
	return b
}

// Where begins the construction of a filter condition for a specific column.
func (b *Builder) Where(column string) *ConditionBuilder {
	return &ConditionBuilder{builder: b, column: column}
}

// Derive appends a derived column computed by a registered function over the
// given input columns.
func (b *Builder) Derive(alias, function string, columns ...string) *Builder {
	b.query.Derived = append(b.query.Derived, Derived{
		Alias:    alias,
		Function: function,
		Columns:  columns,
	})
	return b
}

// Select restricts the result to the named columns, in the given order.
func (b *Builder) Select(columns ...string) *Builder {
	b.query.Select = columns
	return b
}

// addFilter merges a new filter into the query. Multiple filters are
// combined under a single AND group.
func (b *Builder) addFilter(f Filter) *Builder {
	if b.query.Filters == nil {
		b.query.Filters = &f
		return b
	}
	existing := *b.query.Filters
	if existing.Group != nil && existing.Group.Operator == schema.LogicalAnd {
		existing.Group.Filters = append(existing.Group.Filters, f)
		b.query.Filters = &existing
		return b
	}
	b.query.Filters = &Filter{
		Group: &Group{
			Operator: schema.LogicalAnd,
			Filters:  []Filter{existing, f},
		},
	}
	return b
}

// ConditionBuilder is used to complete a single filter condition. It is not
// intended to be used directly but is part of the fluent API.
type ConditionBuilder struct {
	builder *Builder
	column  string
}

func (cb *ConditionBuilder) addCondition(op ComparisonOperator, value Value) *Builder {
	return cb.builder.addFilter(Filter{
		Condition: &Condition{Column: cb.column, Operator: op, Value: value},
	})
}

// Eq adds an equality condition to the query.
func (cb *ConditionBuilder) Eq(value Value) *Builder {
	return cb.addCondition(ComparisonOperatorEq, value)
}

// Neq adds a not-equal condition to the query.
func (cb *ConditionBuilder) Neq(value Value) *Builder {
	return cb.addCondition(ComparisonOperatorNeq, value)
}

// Lt adds a less-than condition to the query.
func (cb *ConditionBuilder) Lt(value Value) *Builder {
	return cb.addCondition(ComparisonOperatorLt, value)
}

// Lte adds a less-than-or-equal condition to the query.
func (cb *ConditionBuilder) Lte(value Value) *Builder {
	return cb.addCondition(ComparisonOperatorLte, value)
}

// Gt adds a greater-than condition to the query.
func (cb *ConditionBuilder) Gt(value Value) *Builder {
	return cb.addCondition(ComparisonOperatorGt, value)
}

// Gte adds a greater-than-or-equal condition to the query.
func (cb *ConditionBuilder) Gte(value Value) *Builder {
	return cb.addCondition(ComparisonOperatorGte, value)
}

// In adds a membership condition: the row passes when the column's value is
// one of the given values.
func (cb *ConditionBuilder) In(values ...any) *Builder {
	return cb.addCondition(ComparisonOperatorIn, values)
}

// Nin adds a negated membership condition.
func (cb *ConditionBuilder) Nin(values ...any) *Builder {
	return cb.addCondition(ComparisonOperatorNin, values)
}
