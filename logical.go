package jql

import "strings"

// Logical combines child expressions with AND or OR and always renders
// fully parenthesized. Children form a set: duplicates are dropped and the
// first occurrence order is kept.
type Logical struct {
	op       LogicalOperator
	children []Expression
	k        string
}

// NewLogical combines exprs with op. exprs must be non-empty and contain no nil.
func NewLogical(op LogicalOperator, exprs []Expression) (*Logical, error) {
	if !op.Valid() {
		return nil, nullArgument("operator")
	}
	if len(exprs) == 0 {
		return nil, invalidCollection("expressions", -1)
	}

	children := make([]Expression, 0, len(exprs))
	keys := make([]string, 0, len(exprs))
	seen := make(map[string]struct{}, len(exprs))
	for i, e := range exprs {
		if isNilExpression(e) {
			return nil, invalidCollection("expressions", i)
		}
		k := e.key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		children = append(children, e)
		keys = append(keys, k)
	}

	return &Logical{
		op:       op,
		children: children,
		k:        "L(" + string(op) + "|" + setKey(keys) + ")",
	}, nil
}

// All combines every expression with AND into a single node.
func All(exprs ...Expression) (*Logical, error) {
	return NewLogical(And, exprs)
}

// Any combines every expression with OR into a single node.
func Any(exprs ...Expression) (*Logical, error) {
	return NewLogical(Or, exprs)
}

// AndOf returns "(left AND right)". Nested nodes are never flattened:
// AndOf(AndOf(a, b), c) renders as ((a AND b) AND c).
func AndOf(left, right Expression) (*Logical, error) {
	return NewLogical(And, []Expression{left, right})
}

// OrOf returns "(left OR right)" without flattening nested nodes.
func OrOf(left, right Expression) (*Logical, error) {
	return NewLogical(Or, []Expression{left, right})
}

func (l *Logical) Kind() ExpressionKind { return KindLogical }
func (l *Logical) Operator() Operator   { return l.op }

// Children returns a copy of the deduplicated children.
func (l *Logical) Children() []Expression { return append([]Expression(nil), l.children...) }

func (l *Logical) String() string {
	parts := make([]string, len(l.children))
	for i, c := range l.children {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, " "+string(l.op)+" ") + ")"
}

func (l *Logical) Equal(other Expression) bool { return equalExpressions(l, other) }
func (l *Logical) Hash() uint64                { return hashKey(l.k) }
func (l *Logical) key() string                 { return l.k }

// Walk visits expr and its descendants depth-first. Children of a node are
// skipped when fn returns false for it.
func Walk(expr Expression, fn func(Expression) bool) {
	if isNilExpression(expr) || !fn(expr) {
		return
	}
	if l, ok := expr.(*Logical); ok {
		for _, c := range l.children {
			Walk(c, fn)
		}
	}
}

// ReferencedFields returns the distinct fields used by expr in first-occurrence order.
func ReferencedFields(expr Expression) []Field {
	var out []Field
	seen := make(map[Field]struct{})
	Walk(expr, func(e Expression) bool {
		var f Field
		switch x := e.(type) {
		case *Existence:
			f = x.field
		case *Binary:
			f = x.field
		case *MultiValue:
			f = x.field
		default:
			return true
		}
		if _, ok := seen[f]; !ok {
			seen[f] = struct{}{}
			out = append(out, f)
		}
		return true
	})
	return out
}
