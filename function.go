package jql

import (
	"slices"
	"strconv"
	"strings"
)

// Function is a named server-side function call, e.g. membersOf('jira-users').
// It can be compared against directly or used as a value in comparisons and
// membership tests. The zero Function is treated as absent.
type Function struct {
	name string
	args []string
}

// NewFunction returns a function call with the given arguments.
// Arguments are rendered as escaped string literals.
func NewFunction(name string, args ...string) (Function, error) {
	if name == "" {
		return Function{}, nullArgument("name")
	}
	return Function{name: name, args: slices.Clone(args)}, nil
}

// MustFunction is like NewFunction but panics on error.
func MustFunction(name string, args ...string) Function {
	return Must(NewFunction(name, args...))
}

func (f Function) Name() string { return f.name }

// Arguments returns a copy of the argument list.
func (f Function) Arguments() []string { return slices.Clone(f.args) }

// IsZero reports whether f is the absent function.
func (f Function) IsZero() bool { return f.name == "" }

// String renders the call, e.g. updatedBy('user', '2020/02/01').
func (f Function) String() string {
	var sb strings.Builder
	sb.WriteString(f.name)
	sb.WriteByte('(')
	for i, a := range f.args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quoteLiteral(a))
	}
	sb.WriteByte(')')
	return sb.String()
}

// Equal reports whether both functions have the same name and argument sequence.
func (f Function) Equal(other Function) bool {
	return f.name == other.name && slices.Equal(f.args, other.args)
}

// Hash returns a hash consistent with Equal.
func (f Function) Hash() uint64 { return hashKey(f.key()) }

func (f Function) key() string {
	var sb strings.Builder
	sb.WriteString("F")
	sb.WriteString(strconv.Quote(f.name))
	for _, a := range f.args {
		sb.WriteByte(',')
		sb.WriteString(strconv.Quote(a))
	}
	return sb.String()
}
