// Package display turns stored secret values into operator-facing text:
// the masking rule used by list and the natural string form used by get.
package display

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// UndefinedValue marks a value that is absent rather than null. It renders
// as "(undefined)" and encodes as JSON null.
type UndefinedValue struct{}

// Undefined is the missing-value sentinel. Values decoded from the backing
// file are never Undefined; it exists for callers that build Entries from
// sources where a key can be present without a value.
var Undefined = UndefinedValue{}

// MarshalJSON implements json.Marshaler
func (UndefinedValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

const (
	maskShort       = "***"
	maskEmpty       = "(empty string)"
	maskEllipsis    = "..."
	maskVisibleEdge = 3
	maskMinReveal   = 8
)

// Mask hides most of a value. Strings longer than seven characters keep
// their first and last three characters; any other non-empty value becomes
// "***". Lengths count characters, not bytes.
func Mask(value any) string {
	switch v := value.(type) {
	case nil:
		return "(null)"
	case UndefinedValue:
		return "(undefined)"
	case string:
		n := utf8.RuneCountInString(v)
		switch {
		case n == 0:
			return maskEmpty
		case n < maskMinReveal:
			return maskShort
		default:
			runes := []rune(v)
			return string(runes[:maskVisibleEdge]) + maskEllipsis + string(runes[n-maskVisibleEdge:])
		}
	default:
		return maskShort
	}
}

// Reveal renders a value in full, keeping the parenthesized form for null
// and undefined.
func Reveal(value any) string {
	switch value.(type) {
	case nil:
		return "(null)"
	case UndefinedValue:
		return "(undefined)"
	default:
		return Stringify(value)
	}
}

// Stringify returns the natural string form of a JSON value: strings as-is,
// null as "null", numbers in plain decimal notation and objects or arrays
// as compact JSON.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case UndefinedValue:
		return "undefined"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return formatNumber(v)
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v)
	case json.RawMessage:
		return string(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

// formatNumber keeps integer literals exact so values beyond float64
// precision are not rounded. Everything else is normalized through float64.
func formatNumber(n json.Number) string {
	lit := n.String()
	if isIntegerLiteral(lit) {
		if strings.Trim(lit, "-0") == "" {
			return "0"
		}
		return lit
	}
	f, err := n.Float64()
	if err != nil {
		return lit
	}
	return formatFloat(f)
}

func isIntegerLiteral(lit string) bool {
	digits := strings.TrimPrefix(lit, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// formatFloat prints f in plain decimal notation, switching to exponent
// form only below 1e-6 or from 1e21 upwards.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f == 0 {
		return "0"
	}
	if math.Abs(f) >= 1e21 || math.Abs(f) < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent drops leading zeros from the exponent: 1e-07 becomes 1e-7.
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 > len(s) {
		return s
	}
	exp := strings.TrimLeft(s[i+2:], "0")
	if exp == "" {
		exp = "0"
	}
	return s[:i+2] + exp
}
