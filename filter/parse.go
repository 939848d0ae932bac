package filter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/hugr-lab/jql-go"
)

// Parse compiles a JSON filter document. Numbers are kept in their
// original textual form and render unquoted.
//
// Error conditions:
//   - Invalid JSON syntax
//   - Unknown keys or malformed nodes (ErrInvalidDocument)
//   - Absent values or collections (jql.ErrNullArgument, jql.ErrInvalidCollection)
func Parse(data []byte, opts *Options) (*Query, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("filter: invalid JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("filter: invalid JSON: trailing data after document")
	}
	return ParseMap(raw, opts)
}

// ParseYAML compiles a YAML filter document.
func ParseYAML(data []byte, opts *Options) (*Query, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("filter: invalid YAML: %w", err)
	}
	return ParseMap(raw, opts)
}

// ParseMap compiles a document given as generic maps, e.g. decoded from a
// request body or a config file. Scalars are converted weakly, so
// {"custom": "10010"} is accepted.
func ParseMap(raw map[string]any, opts *Options) (*Query, error) {
	doc, err := DecodeMap(raw)
	if err != nil {
		return nil, err
	}
	return Compile(doc, opts)
}

// DecodeMap decodes generic maps into a Document without compiling it.
func DecodeMap(raw map[string]any) (*Document, error) {
	if raw == nil {
		return nil, fmt.Errorf("filter: %w: empty document", ErrInvalidDocument)
	}

	var doc Document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       documentHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &doc,
	})
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("filter: %w: %w", ErrInvalidDocument, err)
	}
	return &doc, nil
}

var (
	fieldRefType = reflect.TypeOf(FieldRef{})
	sortKeyType  = reflect.TypeOf(SortKey{})
)

// documentHook accepts plain strings where a field or sort key is expected.
func documentHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to {
	case fieldRefType:
		return FieldRef{Name: data.(string)}, nil
	case sortKeyType:
		return SortKey{Field: FieldRef{Name: data.(string)}}, nil
	}
	return data, nil
}

// Compile turns a document into a query.
func Compile(doc *Document, opts *Options) (*Query, error) {
	if doc == nil {
		return nil, fmt.Errorf("filter: %w: empty document", ErrInvalidDocument)
	}
	c := &compiler{r: newResolver(opts)}

	expr, err := c.node(&doc.Node, "filter")
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	q := &Query{Filter: expr}

	if doc.OrderBy != nil {
		sort, err := c.sort(expr, doc.OrderBy)
		if err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
		q.Sort = sort
	}

	c.r.logger.Debug("Filter document compiled", "query", q.String())
	return q, nil
}

type compiler struct {
	r *resolver
}

func (c *compiler) node(n *Node, path string) (jql.Expression, error) {
	groups := 0
	for _, set := range []bool{n.And != nil, n.Or != nil, n.Field != nil} {
		if set {
			groups++
		}
	}
	switch {
	case groups == 0:
		return nil, fmt.Errorf("%s: %w: node needs and, or or field", path, ErrInvalidDocument)
	case groups > 1:
		return nil, fmt.Errorf("%s: %w: and, or and field are mutually exclusive", path, ErrInvalidDocument)
	}

	switch {
	case n.And != nil:
		return c.group(jql.And, n.And, path+".and")
	case n.Or != nil:
		return c.group(jql.Or, n.Or, path+".or")
	}

	expr, err := c.condition(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return expr, nil
}

func (c *compiler) group(op jql.LogicalOperator, nodes []Node, path string) (jql.Expression, error) {
	children := make([]jql.Expression, 0, len(nodes))
	for i := range nodes {
		child, err := c.node(&nodes[i], path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	l, err := jql.NewLogical(op, children)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

func (c *compiler) condition(n *Node) (jql.Expression, error) {
	field, err := c.r.field(n.Field)
	if err != nil {
		return nil, err
	}

	op := n.Op
	if strings.TrimSpace(op) == "" {
		switch {
		case n.Values != nil:
			op = string(jql.In)
		default:
			op = string(jql.Equal)
		}
	}

	switch nullOperator(op) {
	case jql.Equal, jql.NotEqual:
		if n.Value != nil || n.Values != nil {
			return nil, fmt.Errorf("%w: %q takes no value", ErrInvalidDocument, op)
		}
		return jql.NewNullComparison(field, nullOperator(op))
	}

	if eop, ok := jql.ParseExistenceOperator(op); ok {
		if n.Value != nil || n.Values != nil {
			return nil, fmt.Errorf("%w: %q takes no value", ErrInvalidDocument, op)
		}
		return jql.NewExistence(field, eop)
	}

	if mop, ok := jql.ParseMultiValueOperator(op); ok {
		values := n.Values
		if values == nil && n.Value != nil {
			values = []any{n.Value}
		}
		var decoded []any
		if values != nil {
			decoded = make([]any, len(values))
			for i, v := range values {
				if decoded[i], err = decodeValue(v); err != nil {
					return nil, fmt.Errorf("values[%d]: %w", i, err)
				}
			}
		}
		return jql.NewMultiValue(field, mop, decoded)
	}

	if bop, ok := jql.ParseBinaryOperator(op); ok {
		if n.Values != nil {
			return nil, fmt.Errorf("%w: %q takes a single value", ErrInvalidDocument, op)
		}
		v, err := decodeValue(n.Value)
		if err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
		return jql.NewBinary(field, bop, v)
	}

	return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidDocument, op)
}

// nullOperator maps "is null" to = and "is not null" to !=; other operators map to "".
func nullOperator(op string) jql.BinaryOperator {
	switch strings.ToLower(strings.Join(strings.Fields(op), "")) {
	case "isnull":
		return jql.Equal
	case "isnotnull":
		return jql.NotEqual
	}
	return ""
}

func (c *compiler) sort(expr jql.Expression, keys []SortKey) (*jql.SortExpression, error) {
	sortFields := make([]jql.SortField, len(keys))
	for i, k := range keys {
		path := "order_by[" + strconv.Itoa(i) + "]"
		f, err := c.r.field(&k.Field)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		dir := jql.Ascending
		if k.Direction != "" {
			d, ok := jql.ParseSortDirection(k.Direction)
			if !ok {
				return nil, fmt.Errorf("%s: %w: unknown direction %q", path, ErrInvalidDocument, k.Direction)
			}
			dir = d
		}
		sortFields[i] = jql.SortField{Field: f, Direction: dir}
	}
	return jql.NewSortExpression(expr, sortFields)
}
