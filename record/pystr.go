package record

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

// pyStr renders a JSON value the way Python's str renders the decoded
// value: true is True, null is None, 1e5 is 100000.0 and {"a": 1} is
// {'a': 1}. Strings are returned unquoted.
func pyStr(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.String()
	}
	var sb strings.Builder
	writeRepr(&sb, v)
	return sb.String()
}

func writeRepr(sb *strings.Builder, v gjson.Result) {
	switch {
	case v.Type == gjson.String:
		writeStringRepr(sb, v.String())
	case v.Type == gjson.Number:
		sb.WriteString(pyNumber(v.Raw))
	case v.Type == gjson.True:
		sb.WriteString("True")
	case v.Type == gjson.False:
		sb.WriteString("False")
	case v.Type == gjson.Null:
		sb.WriteString("None")
	case v.IsArray():
		sb.WriteByte('[')
		for i, e := range v.Array() {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeRepr(sb, e)
		}
		sb.WriteByte(']')
	case v.IsObject():
		// Later duplicate keys replace the value and keep the first position.
		var (
			keys   []string
			values = make(map[string]gjson.Result)
		)
		v.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if _, ok := values[k]; !ok {
				keys = append(keys, k)
			}
			values[k] = value
			return true
		})
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeStringRepr(sb, k)
			sb.WriteString(": ")
			writeRepr(sb, values[k])
		}
		sb.WriteByte('}')
	default:
		sb.WriteString(v.Raw)
	}
}

// pyNumber formats a JSON number literal. Literals without fraction or
// exponent are integers and keep their digits, everything else is a float.
func pyNumber(raw string) string {
	if !strings.ContainsAny(raw, ".eE") {
		if n, ok := new(big.Int).SetString(raw, 10); ok {
			return n.String()
		}
		return raw
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil && !math.IsInf(f, 0) {
		return raw
	}
	return pyFloat(f)
}

// pyFloat is the shortest round trip form, positional for decimal exponents
// from -5 to 15, otherwise scientific.
func pyFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil {
		return sci
	}
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// writeStringRepr quotes s with single quotes, or with double quotes when s
// contains a single quote but no double quote.
func writeStringRepr(sb *strings.Builder, s string) {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	sb.WriteByte(quote)
	for _, c := range s {
		switch {
		case c == rune(quote) || c == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(c)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case unicode.IsPrint(c):
			sb.WriteRune(c)
		case c < 0x100:
			fmt.Fprintf(sb, `\x%02x`, c)
		case c < 0x10000:
			fmt.Fprintf(sb, `\u%04x`, c)
		default:
			fmt.Fprintf(sb, `\U%08x`, c)
		}
	}
	sb.WriteByte(quote)
}
