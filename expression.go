package jql

import (
	"math/big"
	"strings"
	"time"
)

// ExpressionKind identifies the variant of a filter expression.
type ExpressionKind string

const (
	KindLogical    ExpressionKind = "Logical"
	KindExistence  ExpressionKind = "Existence"
	KindBinary     ExpressionKind = "Binary"
	KindMultiValue ExpressionKind = "MultiValue"
)

// Expression is a node of the filter tree. It is implemented by *Logical,
// *Existence, *Binary and *MultiValue only; use a type switch to inspect it.
// Expressions are immutable and safe for concurrent use.
type Expression interface {
	// Kind returns the node variant.
	Kind() ExpressionKind

	// Operator returns the node operator.
	Operator() Operator

	// String renders the expression in query syntax.
	String() string

	// Equal reports structural equality. Logical children and
	// membership values compare as sets.
	Equal(other Expression) bool

	// Hash returns a hash consistent with Equal.
	Hash() uint64

	// key is the canonical structural key; unexported to prevent external implementations.
	key() string
}

// isNilExpression catches both nil interfaces and typed nil pointers.
func isNilExpression(e Expression) bool {
	switch x := e.(type) {
	case nil:
		return true
	case *Logical:
		return x == nil
	case *Existence:
		return x == nil
	case *Binary:
		return x == nil
	case *MultiValue:
		return x == nil
	}
	return false
}

func equalExpressions(a, b Expression) bool {
	if isNilExpression(a) || isNilExpression(b) {
		return isNilExpression(a) && isNilExpression(b)
	}
	return a.Kind() == b.Kind() && a.key() == b.key()
}

// normalizeValue detaches pointer values from the caller so nodes stay immutable.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case *time.Time:
		return *x
	case *Function:
		return *x
	case *big.Int:
		return new(big.Int).Set(x)
	case *big.Float:
		return new(big.Float).Copy(x)
	case *big.Rat:
		return new(big.Rat).Set(x)
	}
	return v
}

// isAbsentValue reports values that stand for null: nil, typed nil pointers and
// the zero Function, by value or by pointer.
func isAbsentValue(v any) bool {
	if isNil(v) {
		return true
	}
	switch fn := v.(type) {
	case Function:
		return fn.IsZero()
	case *Function:
		return fn.IsZero()
	}
	return false
}

// Existence tests whether a field has a value: "field IS EMPTY".
type Existence struct {
	field Field
	op    ExistenceOperator
	k     string
}

// NewExistence builds an existence test.
func NewExistence(field Field, op ExistenceOperator) (*Existence, error) {
	if field.IsZero() {
		return nil, nullArgument("field")
	}
	if !op.Valid() {
		return nil, nullArgument("operator")
	}
	return &Existence{
		field: field,
		op:    op,
		k:     "E(" + field.key() + "|" + string(op) + ")",
	}, nil
}

func (e *Existence) Kind() ExpressionKind { return KindExistence }
func (e *Existence) Operator() Operator   { return e.op }
func (e *Existence) Field() Field         { return e.field }

func (e *Existence) String() string {
	return e.field.String() + " " + string(e.op)
}

func (e *Existence) Equal(other Expression) bool { return equalExpressions(e, other) }
func (e *Existence) Hash() uint64                { return hashKey(e.k) }
func (e *Existence) key() string                 { return e.k }

// Binary compares a field with a single value: "field >= 240".
type Binary struct {
	field Field
	op    BinaryOperator
	value any
	k     string
}

// NewBinary builds a comparison. The value must not be nil; use
// NewNullComparison to compare against null.
func NewBinary(field Field, op BinaryOperator, value any) (*Binary, error) {
	if field.IsZero() {
		return nil, nullArgument("field")
	}
	if !op.Valid() {
		return nil, nullArgument("operator")
	}
	if isAbsentValue(value) {
		return nil, nullArgument("value")
	}
	return newBinary(field, op, normalizeValue(value)), nil
}

// NewNullComparison builds "field = null" or "field != null".
// Other operators do not accept null.
func NewNullComparison(field Field, op BinaryOperator) (*Binary, error) {
	if field.IsZero() {
		return nil, nullArgument("field")
	}
	if op != Equal && op != NotEqual {
		return nil, nullArgument("value")
	}
	return newBinary(field, op, nil), nil
}

func newBinary(field Field, op BinaryOperator, value any) *Binary {
	return &Binary{
		field: field,
		op:    op,
		value: value,
		k:     "B(" + field.key() + "|" + string(op) + "|" + valueKey(value) + ")",
	}
}

func (b *Binary) Kind() ExpressionKind { return KindBinary }
func (b *Binary) Operator() Operator   { return b.op }
func (b *Binary) Field() Field         { return b.field }

// Value returns the compared value; nil for null comparisons.
func (b *Binary) Value() any { return b.value }

func (b *Binary) String() string {
	return b.field.String() + " " + string(b.op) + " " + EscapeValue(b.value)
}

func (b *Binary) Equal(other Expression) bool { return equalExpressions(b, other) }
func (b *Binary) Hash() uint64                { return hashKey(b.k) }
func (b *Binary) key() string                 { return b.k }

// MultiValue tests membership: "field IN ('A', 'B')".
// Values are a set; duplicates are dropped and the first occurrence order is kept.
type MultiValue struct {
	field  Field
	op     MultiValueOperator
	values []any
	k      string
}

// NewMultiValue builds a membership test. values must not be nil nor contain nil;
// an empty non-nil slice is accepted and renders as "field IN ()".
func NewMultiValue(field Field, op MultiValueOperator, values []any) (*MultiValue, error) {
	if field.IsZero() {
		return nil, nullArgument("field")
	}
	if !op.Valid() {
		return nil, nullArgument("operator")
	}
	if values == nil {
		return nil, invalidCollection("values", -1)
	}

	unique := make([]any, 0, len(values))
	keys := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for i, v := range values {
		if isAbsentValue(v) {
			return nil, invalidCollection("values", i)
		}
		v = normalizeValue(v)
		k := valueKey(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, v)
		keys = append(keys, k)
	}

	return &MultiValue{
		field:  field,
		op:     op,
		values: unique,
		k:      "M(" + field.key() + "|" + string(op) + "|" + setKey(keys) + ")",
	}, nil
}

func (m *MultiValue) Kind() ExpressionKind { return KindMultiValue }
func (m *MultiValue) Operator() Operator   { return m.op }
func (m *MultiValue) Field() Field         { return m.field }

// Values returns a copy of the deduplicated values in first-occurrence order.
func (m *MultiValue) Values() []any { return append([]any(nil), m.values...) }

// String renders the membership test. A lone function value is emitted
// without parentheses, e.g. 'fixVersion' IN unreleasedVersions('JORP').
func (m *MultiValue) String() string {
	head := m.field.String() + " " + string(m.op) + " "
	if len(m.values) == 1 {
		if fn, ok := m.values[0].(Function); ok {
			return head + fn.String()
		}
	}
	parts := make([]string, len(m.values))
	for i, v := range m.values {
		parts[i] = EscapeValue(v)
	}
	return head + "(" + strings.Join(parts, ", ") + ")"
}

func (m *MultiValue) Equal(other Expression) bool { return equalExpressions(m, other) }
func (m *MultiValue) Hash() uint64                { return hashKey(m.k) }
func (m *MultiValue) key() string                 { return m.k }
