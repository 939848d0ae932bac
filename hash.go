package jql

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
)

// Structural keys are canonical strings describing a node. Two nodes are equal
// iff their keys are equal; members of sets are sorted inside the key so that
// construction order does not matter. Hash is xxh3 over the key.

func hashKey(key string) uint64 {
	return xxh3.HashString(key)
}

// valueKey returns a type-tagged key for a comparison value.
func valueKey(v any) string {
	if isNil(v) {
		return "n"
	}
	switch x := v.(type) {
	case string:
		return "s" + strconv.Quote(x)
	case time.Time:
		return "t" + x.Format(time.RFC3339Nano)
	case *time.Time:
		return "t" + x.Format(time.RFC3339Nano)
	case Function:
		return x.key()
	case *Function:
		return x.key()
	case json.Number, *big.Int, *big.Float, *big.Rat:
		if isNumber(x) {
			return "d" + EscapeValue(x)
		}
		return "s" + strconv.Quote(fmt.Sprint(x))
	}
	if s, ok := formatNumber(v); ok {
		return fmt.Sprintf("N%T:%s", v, s)
	}
	return fmt.Sprintf("o%T:%q", v, fmt.Sprint(v))
}

// setKey joins member keys in sorted order.
func setKey(keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x1f")
}
