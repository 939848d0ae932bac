package jql

import "strconv"

// FieldKind identifies the variant of a Field.
type FieldKind uint8

const (
	// FieldInvalid is the kind of the zero Field, which stands for an absent field.
	FieldInvalid FieldKind = iota
	// FieldSimple is a named field rendered as a quoted literal, e.g. 'assignee'.
	FieldSimple
	// FieldCustom is a custom field referenced by id, e.g. cf[10010].
	FieldCustom
	// FieldDevelopment is a development metric, e.g. Development[pullrequests].open.
	FieldDevelopment
)

func (k FieldKind) String() string {
	switch k {
	case FieldSimple:
		return "Simple"
	case FieldCustom:
		return "Custom"
	case FieldDevelopment:
		return "Development"
	}
	return "Invalid"
}

// Field refers to a queryable attribute. Field values are immutable and
// comparable with ==; the zero Field is treated as absent.
type Field struct {
	kind      FieldKind
	name      string
	id        int
	subscript string
	property  string
}

// NewField returns a simple named field.
func NewField(name string) Field {
	return Field{kind: FieldSimple, name: name}
}

// CustomField returns a custom field reference rendered as cf[id].
func CustomField(id int) Field {
	return Field{kind: FieldCustom, id: id}
}

// DevelopmentField returns a development metric field rendered as Development[subscript].property.
func DevelopmentField(subscript, property string) Field {
	return Field{kind: FieldDevelopment, subscript: subscript, property: property}
}

func (f Field) Kind() FieldKind { return f.kind }

// IsZero reports whether f is the absent field.
func (f Field) IsZero() bool { return f.kind == FieldInvalid }

// Name returns the name of a simple field, or the rendered text of other kinds.
func (f Field) Name() string {
	if f.kind == FieldSimple {
		return f.name
	}
	return f.String()
}

// ID returns the custom field id; zero for other kinds.
func (f Field) ID() int { return f.id }

func (f Field) Subscript() string { return f.subscript }
func (f Field) Property() string  { return f.property }

// String renders the field in query syntax.
func (f Field) String() string {
	switch f.kind {
	case FieldSimple:
		return quoteLiteral(f.name)
	case FieldCustom:
		return "cf[" + strconv.Itoa(f.id) + "]"
	case FieldDevelopment:
		return "Development[" + f.subscript + "]." + f.property
	}
	return ""
}

// Equal reports structural equality.
func (f Field) Equal(other Field) bool { return f == other }

// Hash returns a hash consistent with Equal.
func (f Field) Hash() uint64 { return hashKey(f.key()) }

func (f Field) key() string {
	switch f.kind {
	case FieldSimple:
		return "S" + strconv.Quote(f.name)
	case FieldCustom:
		return "C" + strconv.Itoa(f.id)
	case FieldDevelopment:
		return "D" + strconv.Quote(f.subscript) + "." + strconv.Quote(f.property)
	}
	return "-"
}

// IsEmpty builds "field IS EMPTY".
func (f Field) IsEmpty() (*Existence, error) {
	return NewExistence(f, IsEmpty)
}

// IsNotEmpty builds "field IS NOT EMPTY".
func (f Field) IsNotEmpty() (*Existence, error) {
	return NewExistence(f, IsNotEmpty)
}

// In builds "field IN (values...)". Duplicate values are dropped.
func (f Field) In(values ...any) (*MultiValue, error) {
	return NewMultiValue(f, In, values)
}

// NotIn builds "field NOT IN (values...)". Duplicate values are dropped.
func (f Field) NotIn(values ...any) (*MultiValue, error) {
	return NewMultiValue(f, NotIn, values)
}

// Like builds "field ~ value".
func (f Field) Like(value any) (*Binary, error) { return NewBinary(f, Like, value) }

// NotLike builds "field !~ value".
func (f Field) NotLike(value any) (*Binary, error) { return NewBinary(f, NotLike, value) }

// Eq builds "field = value".
func (f Field) Eq(value any) (*Binary, error) { return NewBinary(f, Equal, value) }

// NotEq builds "field != value".
func (f Field) NotEq(value any) (*Binary, error) { return NewBinary(f, NotEqual, value) }

// Gt builds "field > value".
func (f Field) Gt(value any) (*Binary, error) { return NewBinary(f, GreaterThan, value) }

// Gte builds "field >= value".
func (f Field) Gte(value any) (*Binary, error) { return NewBinary(f, GreaterThanOrEqual, value) }

// Lt builds "field < value".
func (f Field) Lt(value any) (*Binary, error) { return NewBinary(f, LessThan, value) }

// Lte builds "field <= value".
func (f Field) Lte(value any) (*Binary, error) { return NewBinary(f, LessThanOrEqual, value) }

// IsNull builds "field = null".
func (f Field) IsNull() (*Binary, error) { return NewNullComparison(f, Equal) }

// IsNotNull builds "field != null".
func (f Field) IsNotNull() (*Binary, error) { return NewNullComparison(f, NotEqual) }
