package jql

import (
	"errors"
	"strconv"
)

// Standard errors returned by the builder.
var (
	// ErrNullArgument indicates a required field, value, operator or direction is absent.
	ErrNullArgument = errors.New("required argument is missing")

	// ErrInvalidCollection indicates a collection is absent or holds an absent element.
	ErrInvalidCollection = errors.New("collection must not be nil or contain a nil element")

	// ErrAlreadyBuilt is returned by QueryBuilder.Build on a second call.
	ErrAlreadyBuilt = errors.New("query already built")
)

// ArgumentError identifies the parameter that failed validation.
// Index is the offending element position for collections, or -1.
type ArgumentError struct {
	Param string
	Index int
	Err   error
}

func (e *ArgumentError) Error() string {
	msg := "jql: " + e.Param
	if e.Index >= 0 {
		msg += "[" + strconv.Itoa(e.Index) + "]"
	}
	return msg + ": " + e.Err.Error()
}

func (e *ArgumentError) Unwrap() error { return e.Err }

func nullArgument(param string) error {
	return &ArgumentError{Param: param, Index: -1, Err: ErrNullArgument}
}

func invalidCollection(param string, index int) error {
	return &ArgumentError{Param: param, Index: index, Err: ErrInvalidCollection}
}

// Must panics if err is non-nil and returns v otherwise.
// Intended for queries assembled from constants, like regexp.MustCompile.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
