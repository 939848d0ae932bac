package filter

import (
	"fmt"

	"github.com/hugr-lab/jql-go"
	"github.com/hugr-lab/jql-go/internal/serialize"
)

// FromExpression converts an expression tree into a document node.
// Compiling the node without FieldMapping or CustomFields yields an
// expression with the same query text; simple field names that would
// otherwise be remapped are marked Literal.
func FromExpression(expr jql.Expression) (*Node, error) {
	switch x := expr.(type) {
	case *jql.Logical:
		children := x.Children()
		nodes := make([]Node, len(children))
		for i, c := range children {
			n, err := FromExpression(c)
			if err != nil {
				return nil, err
			}
			nodes[i] = *n
		}
		if x.Operator() == jql.Or {
			return &Node{Or: nodes}, nil
		}
		return &Node{And: nodes}, nil

	case *jql.Existence:
		return &Node{Field: fieldRef(x.Field()), Op: x.Operator().Token()}, nil

	case *jql.Binary:
		if x.Value() == nil {
			op := "IS NULL"
			if x.Operator() == jql.NotEqual {
				op = "IS NOT NULL"
			}
			return &Node{Field: fieldRef(x.Field()), Op: op}, nil
		}
		return &Node{Field: fieldRef(x.Field()), Op: x.Operator().Token(), Value: encodeValue(x.Value())}, nil

	case *jql.MultiValue:
		src := x.Values()
		values := make([]any, len(src))
		for i, v := range src {
			values[i] = encodeValue(v)
		}
		return &Node{Field: fieldRef(x.Field()), Op: x.Operator().Token(), Values: values}, nil
	}
	return nil, fmt.Errorf("filter: %w: unsupported expression %T", ErrInvalidDocument, expr)
}

// FromSort converts a sort expression into a document.
func FromSort(s *jql.SortExpression) (*Document, error) {
	if s == nil {
		return nil, fmt.Errorf("filter: %w: nil sort expression", ErrInvalidDocument)
	}
	n, err := FromExpression(s.Filter())
	if err != nil {
		return nil, err
	}

	doc := &Document{Node: *n}
	sortFields := s.Fields()
	doc.OrderBy = make([]SortKey, len(sortFields))
	for i, f := range sortFields {
		doc.OrderBy[i] = SortKey{Field: *fieldRef(f.Field), Direction: f.Direction.Token()}
	}
	return doc, nil
}

// FromQuery converts a compiled query back into a document.
func FromQuery(q *Query) (*Document, error) {
	if q.Sort != nil {
		return FromSort(q.Sort)
	}
	n, err := FromExpression(q.Filter)
	if err != nil {
		return nil, err
	}
	return &Document{Node: *n}, nil
}

// MarshalBinary packs a document into its compact binary form.
func MarshalBinary(doc *Document) ([]byte, error) {
	data, err := serialize.Pack(doc)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return data, nil
}

// UnmarshalBinary unpacks a document produced by MarshalBinary.
func UnmarshalBinary(data []byte) (*Document, error) {
	var doc Document
	if err := serialize.Unpack(data, &doc); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return &doc, nil
}
