package filter

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hugr-lab/jql-go"
)

// ErrInvalidDocument indicates a document node that cannot be compiled.
var ErrInvalidDocument = errors.New("invalid filter document")

// Document is the serializable form of a query: a filter tree with an
// optional ordering. The filter keys sit at the top level:
//
//	{"and": [...], "order_by": [{"field": "created", "direction": "DESC"}]}
type Document struct {
	Node `yaml:",inline" msgpack:",inline" mapstructure:",squash"`

	// OrderBy lists sort keys in priority order.
	OrderBy []SortKey `json:"order_by,omitempty" yaml:"order_by,omitempty" msgpack:"order_by,omitempty" mapstructure:"order_by"`
}

// Node is one node of a filter tree. A node is either a group (And or Or)
// or a condition on Field.
//
// Conditions:
//
//	{"field": "status", "op": "=", "value": "Open"}
//	{"field": "project", "op": "in", "values": ["A", "B"]}
//	{"field": "assignee", "op": "is empty"}
//	{"field": "resolution", "op": "is null"}
//
// Op defaults to "=" when Value is set and to "in" when Values is set.
type Node struct {
	And []Node `json:"and,omitempty" yaml:"and,omitempty" msgpack:"and,omitempty" mapstructure:"and"`
	Or  []Node `json:"or,omitempty" yaml:"or,omitempty" msgpack:"or,omitempty" mapstructure:"or"`

	Field *FieldRef `json:"field,omitempty" yaml:"field,omitempty" msgpack:"field,omitempty" mapstructure:"field"`
	Op    string    `json:"op,omitempty" yaml:"op,omitempty" msgpack:"op,omitempty" mapstructure:"op"`

	// Value is a scalar, or an object of the form {"date": "2024-01-31"},
	// {"datetime": "2024-01-31T08:20:00Z"}, {"function": "name", "args": [...]}
	// or {"number": "123.450"}.
	Value any `json:"value,omitzero" yaml:"value,omitempty" msgpack:"value,omitempty" mapstructure:"value"`

	// Values holds the members of an in / not in set. An empty list is an
	// empty set; a missing list is an error.
	Values []any `json:"values,omitzero" yaml:"values,omitempty" msgpack:"values" mapstructure:"values"`
}

// FieldRef names a field. In JSON and YAML a simple field is written as a
// plain string, a custom field as "cf[10010]" or {"custom": 10010}.
// {"name": "cf[10]", "literal": true} is the simple field 'cf[10]'.
type FieldRef struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty" mapstructure:"name"`

	// Literal takes Name verbatim, bypassing field mapping, known field
	// lookup and the cf[N] form.
	Literal bool `json:"literal,omitempty" yaml:"literal,omitempty" msgpack:"literal,omitempty" mapstructure:"literal"`

	Custom      int             `json:"custom,omitempty" yaml:"custom,omitempty" msgpack:"custom,omitempty" mapstructure:"custom"`
	Development *DevelopmentRef `json:"development,omitempty" yaml:"development,omitempty" msgpack:"development,omitempty" mapstructure:"development"`
}

// DevelopmentRef names a development metric, e.g. {"subscript": "pullrequests", "property": "open"}.
type DevelopmentRef struct {
	Subscript string `json:"subscript" yaml:"subscript" msgpack:"subscript" mapstructure:"subscript"`
	Property  string `json:"property" yaml:"property" msgpack:"property" mapstructure:"property"`
}

// SortKey is one entry of order_by. Direction defaults to ASC.
// A plain string is accepted as an ascending key.
type SortKey struct {
	Field     FieldRef `json:"field" yaml:"field" msgpack:"field" mapstructure:"field"`
	Direction string   `json:"direction,omitempty" yaml:"direction,omitempty" msgpack:"direction,omitempty" mapstructure:"direction"`
}

// isSimple reports whether the reference is a bare name.
func (f FieldRef) isSimple() bool {
	return f.Custom == 0 && f.Development == nil && !f.Literal
}

// MarshalJSON writes simple fields as a plain string.
func (f FieldRef) MarshalJSON() ([]byte, error) {
	if f.isSimple() {
		return json.Marshal(f.Name)
	}
	type plain FieldRef
	return json.Marshal(plain(f))
}

// UnmarshalJSON accepts a plain string or an object.
func (f *FieldRef) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*f = FieldRef{Name: name}
		return nil
	}
	type plain FieldRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("field must be a name or an object: %w", err)
	}
	*f = FieldRef(p)
	return nil
}

// MarshalYAML writes simple fields as a plain string.
func (f FieldRef) MarshalYAML() (any, error) {
	if f.isSimple() {
		return f.Name, nil
	}
	type plain FieldRef
	return plain(f), nil
}

// Query is a compiled document.
type Query struct {
	// Filter is the filter tree.
	Filter jql.Expression

	// Sort is set when the document has an order_by list.
	Sort *jql.SortExpression
}

// String renders the query text.
func (q *Query) String() string {
	if q.Sort != nil {
		return q.Sort.String()
	}
	return q.Filter.String()
}
