package jql

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	goreflect "github.com/goccy/go-reflect"
)

const (
	dateLayout     = "2006/01/02"
	dateTimeLayout = "2006/01/02 15:04"
)

// literalEscaper escapes backslashes, double quotes and single quotes in one pass,
// so an escaped quote is never escaped again.
var literalEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `'`, `\'`)

// EscapeValue returns the textual literal for a value:
//   - nil renders as the bare token null
//   - time.Time renders as a quoted date, with the time of day when it is not midnight
//   - numbers render unquoted in decimal form; json.Number only when its text is a plain decimal
//   - infinities and NaN render as quoted text
//   - Function values render as an unquoted call
//   - anything else is formatted with fmt.Sprint, escaped and single-quoted
func EscapeValue(v any) string {
	if isNil(v) {
		return "null"
	}

	switch x := v.(type) {
	case string:
		return quoteLiteral(x)
	case time.Time:
		return "'" + FormatDateTime(x) + "'"
	case *time.Time:
		return "'" + FormatDateTime(*x) + "'"
	case Function:
		return x.String()
	case *Function:
		return x.String()
	case json.Number:
		if isDecimal(string(x)) {
			return string(x)
		}
		return quoteLiteral(string(x))
	case *big.Int:
		return x.String()
	case *big.Float:
		if x.IsInf() {
			return quoteLiteral(x.String())
		}
		return x.Text('f', -1)
	case *big.Rat:
		if x.IsInt() {
			return x.Num().String()
		}
		f, _ := x.Float64()
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	if s, ok := formatNumber(v); ok {
		return s
	}
	return quoteLiteral(fmt.Sprint(v))
}

// FormatDateTime formats t as yyyy/MM/dd, or yyyy/MM/dd HH:mm when t carries a time of day.
// Seconds are truncated.
func FormatDateTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(dateLayout)
	}
	return t.Format(dateTimeLayout)
}

// quoteLiteral returns a single-quoted, escaped string literal.
func quoteLiteral(s string) string {
	return "'" + literalEscaper.Replace(s) + "'"
}

// formatNumber formats any value whose kind is an integer or float, including named types.
func formatNumber(v any) (string, bool) {
	rv := goreflect.ValueNoEscapeOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return "", false
		}
		bits := 64
		if rv.Kind() == reflect.Float32 {
			bits = 32
		}
		return strconv.FormatFloat(f, 'f', -1, bits), true
	}
	return "", false
}

// isDecimal reports whether s matches -?digits(.digits)?.
func isDecimal(s string) bool {
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasPoint := strings.Cut(s, ".")
	if !allDigits(intPart) {
		return false
	}
	return !hasPoint || allDigits(frac)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isNumber reports whether v renders as an unquoted number.
func isNumber(v any) bool {
	switch x := v.(type) {
	case json.Number:
		return isDecimal(string(x))
	case *big.Float:
		return !x.IsInf()
	case *big.Int, *big.Rat:
		return true
	}
	_, ok := formatNumber(v)
	return ok
}

// isNil reports whether v is nil or a typed nil pointer, map, slice, func or channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := goreflect.ValueNoEscapeOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
