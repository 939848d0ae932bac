package jql

import "strings"

// OperatorCategory identifies the family an operator belongs to.
type OperatorCategory string

const (
	CategoryLogical       OperatorCategory = "Logical"
	CategoryExistence     OperatorCategory = "Existence"
	CategoryBinary        OperatorCategory = "Binary"
	CategoryMultiValue    OperatorCategory = "MultiValue"
	CategorySortDirection OperatorCategory = "SortDirection"
)

// Operator is implemented by every operator enumeration.
// The set of valid operators is closed; Valid reports membership.
type Operator interface {
	// Token returns the literal text emitted into the query.
	Token() string

	// Category returns the operator family.
	Category() OperatorCategory

	// Valid reports whether the operator is one of the predefined constants.
	Valid() bool
}

// SameOperator reports whether two operators share the same token.
// Tokens are unique within a category and never collide across categories.
func SameOperator(a, b Operator) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Token() == b.Token()
}

// LogicalOperator joins child expressions.
type LogicalOperator string

const (
	And LogicalOperator = "AND"
	Or  LogicalOperator = "OR"
)

func (o LogicalOperator) Token() string              { return string(o) }
func (o LogicalOperator) Category() OperatorCategory { return CategoryLogical }
func (o LogicalOperator) Valid() bool                { return o == And || o == Or }

// ExistenceOperator tests whether a field holds a value.
type ExistenceOperator string

const (
	IsEmpty    ExistenceOperator = "IS EMPTY"
	IsNotEmpty ExistenceOperator = "IS NOT EMPTY"
)

func (o ExistenceOperator) Token() string              { return string(o) }
func (o ExistenceOperator) Category() OperatorCategory { return CategoryExistence }
func (o ExistenceOperator) Valid() bool                { return o == IsEmpty || o == IsNotEmpty }

// BinaryOperator compares a field with a single value.
type BinaryOperator string

const (
	Equal              BinaryOperator = "="
	NotEqual           BinaryOperator = "!="
	Like               BinaryOperator = "~"
	NotLike            BinaryOperator = "!~"
	GreaterThan        BinaryOperator = ">"
	GreaterThanOrEqual BinaryOperator = ">="
	LessThan           BinaryOperator = "<"
	LessThanOrEqual    BinaryOperator = "<="
)

func (o BinaryOperator) Token() string              { return string(o) }
func (o BinaryOperator) Category() OperatorCategory { return CategoryBinary }

func (o BinaryOperator) Valid() bool {
	switch o {
	case Equal, NotEqual, Like, NotLike, GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual:
		return true
	}
	return false
}

// MultiValueOperator tests membership of a field in a value set.
type MultiValueOperator string

const (
	In    MultiValueOperator = "IN"
	NotIn MultiValueOperator = "NOT IN"
)

func (o MultiValueOperator) Token() string              { return string(o) }
func (o MultiValueOperator) Category() OperatorCategory { return CategoryMultiValue }
func (o MultiValueOperator) Valid() bool                { return o == In || o == NotIn }

// SortDirection orders results by a field.
type SortDirection string

const (
	Ascending  SortDirection = "ASC"
	Descending SortDirection = "DESC"
)

func (d SortDirection) Token() string              { return string(d) }
func (d SortDirection) Category() OperatorCategory { return CategorySortDirection }
func (d SortDirection) Valid() bool                { return d == Ascending || d == Descending }

// operatorNames maps descriptive names and short aliases to tokens, e.g. "GreaterThanOrEqual" -> ">=".
var operatorNames = map[string]string{
	"and":                "AND",
	"or":                 "OR",
	"isempty":            "IS EMPTY",
	"isnotempty":         "IS NOT EMPTY",
	"equal":              "=",
	"notequal":           "!=",
	"like":               "~",
	"notlike":            "!~",
	"greaterthan":        ">",
	"greaterthanorequal": ">=",
	"lessthan":           "<",
	"lessthanorequal":    "<=",
	"eq":                 "=",
	"ne":                 "!=",
	"neq":                "!=",
	"gt":                 ">",
	"gte":                ">=",
	"lt":                 "<",
	"lte":                "<=",
	"in":                 "IN",
	"notin":              "NOT IN",
	"ascending":          "ASC",
	"descending":         "DESC",
	"asc":                "ASC",
	"desc":               "DESC",
}

// normalizeToken accepts a token or operator name in any case and returns the canonical token.
func normalizeToken(s string) string {
	s = strings.TrimSpace(s)
	if tok, ok := operatorNames[strings.ToLower(strings.ReplaceAll(s, " ", ""))]; ok {
		return tok
	}
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

// ParseLogicalOperator resolves "AND", "or", "And", ...
func ParseLogicalOperator(s string) (LogicalOperator, bool) {
	op := LogicalOperator(normalizeToken(s))
	return op, op.Valid()
}

// ParseExistenceOperator resolves "IS EMPTY", "isNotEmpty", ...
func ParseExistenceOperator(s string) (ExistenceOperator, bool) {
	op := ExistenceOperator(normalizeToken(s))
	return op, op.Valid()
}

// ParseBinaryOperator resolves "=", ">=", "Like", ...
func ParseBinaryOperator(s string) (BinaryOperator, bool) {
	op := BinaryOperator(normalizeToken(s))
	return op, op.Valid()
}

// ParseMultiValueOperator resolves "IN", "not in", "NotIn", ...
func ParseMultiValueOperator(s string) (MultiValueOperator, bool) {
	op := MultiValueOperator(normalizeToken(s))
	return op, op.Valid()
}

// ParseSortDirection resolves "ASC", "desc", "Descending", ...
func ParseSortDirection(s string) (SortDirection, bool) {
	d := SortDirection(normalizeToken(s))
	return d, d.Valid()
}
