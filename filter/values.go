package filter

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	goreflect "github.com/goccy/go-reflect"

	"github.com/hugr-lab/jql-go"
)

const dateLayout = "2006-01-02"

// maxExponent bounds the digits produced when expanding exponent notation.
const maxExponent = 400

var (
	// numberText matches JSON number syntax: sign, integer, fraction, exponent.
	numberText = regexp.MustCompile(`^(-?)([0-9]+)(?:\.([0-9]+))?(?:[eE]([+-]?[0-9]+))?$`)

	// decimalText matches numbers that render unquoted as they are.
	decimalText = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
)

// canonicalNumber rewrites numeric text as plain decimal text. Decimal text is
// kept as is, exponent forms are expanded, anything else (Inf, NaN, hex) is rejected.
func canonicalNumber(text string) (string, error) {
	m := numberText.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", fmt.Errorf("%w: number %q is not decimal", ErrInvalidDocument, text)
	}
	if m[4] == "" {
		return m[0], nil
	}
	exp, err := strconv.Atoi(m[4])
	if err != nil || exp > maxExponent || exp < -maxExponent {
		return "", fmt.Errorf("%w: number %q is out of range", ErrInvalidDocument, text)
	}

	digits := m[2] + m[3]
	point := len(m[2]) + exp
	if point <= 0 {
		digits = strings.Repeat("0", 1-point) + digits
		point = 1
	}
	if point > len(digits) {
		digits += strings.Repeat("0", point-len(digits))
	}

	out := strings.TrimLeft(digits[:point], "0")
	if out == "" {
		out = "0"
	}
	if frac := strings.TrimRight(digits[point:], "0"); frac != "" {
		out += "." + frac
	}
	if out != "0" {
		out = m[1] + out
	}
	return out, nil
}

// decodeValue turns a document value into a comparison value.
func decodeValue(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return decodeObject(x)
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = val
		}
		return decodeObject(m)
	case []any:
		return nil, fmt.Errorf("%w: nested lists are not values", ErrInvalidDocument)
	case json.Number:
		text, err := canonicalNumber(x.String())
		if err != nil {
			return nil, err
		}
		return json.Number(text), nil
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return nil, fmt.Errorf("%w: number %v is not finite", ErrInvalidDocument, x)
		}
	case float32:
		if math.IsInf(float64(x), 0) || math.IsNaN(float64(x)) {
			return nil, fmt.Errorf("%w: number %v is not finite", ErrInvalidDocument, x)
		}
	}
	return v, nil
}

func decodeObject(m map[string]any) (any, error) {
	if name, ok := m["function"]; ok {
		return decodeFunction(name, m)
	}
	if len(m) != 1 {
		return nil, fmt.Errorf("%w: value object needs exactly one of date, datetime, function, number", ErrInvalidDocument)
	}

	if s, ok := m["date"]; ok {
		if t, ok := s.(time.Time); ok {
			return t, nil
		}
		text, ok := s.(string)
		if !ok {
			return nil, fmt.Errorf("%w: date must be a string", ErrInvalidDocument)
		}
		t, err := time.Parse(dateLayout, text)
		if err != nil {
			return nil, fmt.Errorf("%w: date: %w", ErrInvalidDocument, err)
		}
		return t, nil
	}

	if s, ok := m["datetime"]; ok {
		switch x := s.(type) {
		case time.Time:
			return x, nil
		case string:
			t, err := time.Parse(time.RFC3339, x)
			if err != nil {
				return nil, fmt.Errorf("%w: datetime: %w", ErrInvalidDocument, err)
			}
			return t, nil
		}
		return nil, fmt.Errorf("%w: datetime must be a string", ErrInvalidDocument)
	}

	if s, ok := m["number"]; ok {
		if f, ok := s.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return nil, fmt.Errorf("%w: number %v is not finite", ErrInvalidDocument, f)
		}
		text, err := canonicalNumber(fmt.Sprint(s))
		if err != nil {
			return nil, err
		}
		return json.Number(text), nil
	}

	for k := range m {
		return nil, fmt.Errorf("%w: unknown value object key %q", ErrInvalidDocument, k)
	}
	return nil, nil
}

func decodeFunction(name any, m map[string]any) (any, error) {
	for k := range m {
		if k != "function" && k != "args" {
			return nil, fmt.Errorf("%w: unknown function key %q", ErrInvalidDocument, k)
		}
	}
	fname, ok := name.(string)
	if !ok {
		return nil, fmt.Errorf("%w: function name must be a string", ErrInvalidDocument)
	}

	var args []string
	switch x := m["args"].(type) {
	case nil:
	case []string:
		args = x
	case []any:
		args = make([]string, len(x))
		for i, a := range x {
			if t, ok := a.(time.Time); ok {
				args[i] = jql.FormatDateTime(t)
				continue
			}
			args[i] = fmt.Sprint(a)
		}
	default:
		return nil, fmt.Errorf("%w: function args must be a list", ErrInvalidDocument)
	}

	fn, err := jql.NewFunction(fname, args...)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// encodeValue is the inverse of decodeValue. Values whose text would
// change after a JSON or MessagePack round trip are wrapped in objects.
func encodeValue(v any) any {
	switch x := v.(type) {
	case nil, string, bool:
		return v
	case time.Time:
		if jql.FormatDateTime(x) == x.Format("2006/01/02") {
			return map[string]any{"date": x.Format(dateLayout)}
		}
		return map[string]any{"datetime": x.Format(time.RFC3339Nano)}
	case jql.Function:
		args := make([]any, 0, len(x.Arguments()))
		for _, a := range x.Arguments() {
			args = append(args, a)
		}
		return map[string]any{"function": x.Name(), "args": args}
	case json.Number:
		if !decimalText.MatchString(x.String()) {
			// Renders as a quoted string.
			return x.String()
		}
		if i, err := x.Int64(); err == nil && strconv.FormatInt(i, 10) == x.String() {
			return i
		}
		return map[string]any{"number": x.String()}
	case *big.Float:
		if x.IsInf() {
			return x.String()
		}
		return map[string]any{"number": jql.EscapeValue(x)}
	case *big.Int, *big.Rat:
		return map[string]any{"number": jql.EscapeValue(x)}
	}

	rv := goreflect.ValueNoEscapeOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v
	case reflect.Float32, reflect.Float64:
		if f := rv.Float(); !math.IsInf(f, 0) && !math.IsNaN(f) {
			return v
		}
	}
	return fmt.Sprint(v)
}
