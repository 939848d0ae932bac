package jql

import (
	"errors"
	"fmt"
)

// QueryBuilder assembles a query using a fluent API.
// Not thread-safe - build a query in one goroutine, then share the result.
//
// Errors returned by chained builder calls are recorded and reported by Build,
// so results of Field methods can be passed straight through:
//
//	q, err := jql.NewQueryBuilder().
//	    Where(fields.Project.Eq("PROJ")).
//	    Where(fields.Assignee.IsNotEmpty()).
//	    OrderBy(fields.Created, jql.Descending).
//	    Build()
type QueryBuilder struct {
	filters []Expression
	sorts   []SortField
	errs    []error
	clauses int
	built   bool
}

// NewQueryBuilder creates an empty query builder.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		filters: make([]Expression, 0),
		sorts:   make([]SortField, 0),
	}
}

// Where adds a filter clause. Clauses are combined with AND.
// A non-nil err is recorded and returned by Build.
// Returns self for method chaining.
func (qb *QueryBuilder) Where(expr Expression, err error) *QueryBuilder {
	i := qb.clauses
	qb.clauses++
	if err != nil {
		qb.errs = append(qb.errs, fmt.Errorf("where clause %d: %w", i, err))
		return qb
	}
	qb.filters = append(qb.filters, expr)
	return qb
}

// WhereAny adds a clause matching any of exprs.
// Returns self for method chaining.
func (qb *QueryBuilder) WhereAny(exprs ...Expression) *QueryBuilder {
	return qb.Where(Any(exprs...))
}

// OrderBy appends a sort field. Sort fields are rendered in the order added.
// Returns self for method chaining.
func (qb *QueryBuilder) OrderBy(field Field, direction SortDirection) *QueryBuilder {
	qb.sorts = append(qb.sorts, SortField{Field: field, Direction: direction})
	return qb
}

// Build validates the clauses and returns the query.
// Can only be called once.
func (qb *QueryBuilder) Build() (*SortExpression, error) {
	if qb.built {
		return nil, ErrAlreadyBuilt
	}
	qb.built = true

	if len(qb.errs) > 0 {
		return nil, errors.Join(qb.errs...)
	}

	var filter Expression
	switch len(qb.filters) {
	case 0:
		return nil, nullArgument("expression")
	case 1:
		filter = qb.filters[0]
		if isNilExpression(filter) {
			return nil, invalidCollection("expressions", 0)
		}
	default:
		l, err := All(qb.filters...)
		if err != nil {
			return nil, err
		}
		filter = l
	}

	return NewSortExpression(filter, qb.sorts)
}
