package jql

import (
	"fmt"
	"slices"
	"strings"
)

// SortField pairs a field with a sort direction.
type SortField struct {
	Field     Field
	Direction SortDirection
}

// Asc sorts by field in ascending order.
func Asc(field Field) SortField { return SortField{Field: field, Direction: Ascending} }

// Desc sorts by field in descending order.
func Desc(field Field) SortField { return SortField{Field: field, Direction: Descending} }

// SortBy sorts by the simple field name in the given direction.
func SortBy(name string, direction SortDirection) SortField {
	return SortField{Field: NewField(name), Direction: direction}
}

// Validate reports an absent field or direction.
func (s SortField) Validate() error {
	if s.Field.IsZero() {
		return nullArgument("field")
	}
	if !s.Direction.Valid() {
		return nullArgument("direction")
	}
	return nil
}

func (s SortField) String() string {
	return s.Field.String() + " " + string(s.Direction)
}

// SortExpression is a filter followed by an ORDER BY clause.
// Sort fields keep their order and duplicates.
type SortExpression struct {
	expr   Expression
	fields []SortField
}

// NewSortExpression wraps expr with the given ordering.
func NewSortExpression(expr Expression, fields []SortField) (*SortExpression, error) {
	if isNilExpression(expr) {
		return nil, nullArgument("expression")
	}
	if fields == nil {
		return nil, invalidCollection("fields", -1)
	}
	for i, f := range fields {
		if err := f.Validate(); err != nil {
			return nil, &ArgumentError{Param: "fields", Index: i, Err: fmt.Errorf("%w: %w", ErrInvalidCollection, err)}
		}
	}
	return &SortExpression{expr: expr, fields: slices.Clone(fields)}, nil
}

// OrderBy sorts expr by field in ascending order.
func OrderBy(expr Expression, field Field) (*SortExpression, error) {
	return OrderByDirection(expr, field, Ascending)
}

// OrderByDirection sorts expr by field in the given direction.
func OrderByDirection(expr Expression, field Field, direction SortDirection) (*SortExpression, error) {
	return NewSortExpression(expr, []SortField{{Field: field, Direction: direction}})
}

// OrderByFields sorts expr by the fields in the order given.
func OrderByFields(expr Expression, fields ...SortField) (*SortExpression, error) {
	return NewSortExpression(expr, fields)
}

// Filter returns the wrapped filter expression.
func (s *SortExpression) Filter() Expression { return s.expr }

// Fields returns a copy of the sort fields.
func (s *SortExpression) Fields() []SortField { return slices.Clone(s.fields) }

// String renders "<filter> ORDER BY f1 ASC, f2 DESC". Without sort fields
// only the filter is rendered.
func (s *SortExpression) String() string {
	if len(s.fields) == 0 {
		return s.expr.String()
	}
	parts := make([]string, len(s.fields))
	for i, f := range s.fields {
		parts[i] = f.String()
	}
	return s.expr.String() + " ORDER BY " + strings.Join(parts, ", ")
}

// Equal reports whether both filters are equal and the sort fields match in order.
func (s *SortExpression) Equal(other *SortExpression) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.expr.Equal(other.expr) && slices.Equal(s.fields, other.fields)
}

// Hash returns a hash consistent with Equal.
func (s *SortExpression) Hash() uint64 {
	var sb strings.Builder
	sb.WriteString(s.expr.key())
	for _, f := range s.fields {
		sb.WriteString("|")
		sb.WriteString(f.Field.key())
		sb.WriteString(string(f.Direction))
	}
	return hashKey(sb.String())
}
