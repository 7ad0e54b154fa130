package pretty

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"astpretty/internal/tree"
)

// repr renders a scalar. Nodes and lists are not scalars and are handled by
// the formatter.
func repr(v tree.Value) string {
	switch v := v.(type) {
	case nil, tree.None:
		return "None"
	case tree.Str:
		return quote(string(v))
	case tree.Int:
		return strconv.FormatInt(int64(v), 10)
	case tree.Float:
		return formatFloat(float64(v))
	case tree.Bool:
		if v {
			return "True"
		}
		return "False"
	case *tree.Node:
		if v == nil {
			return "None"
		}
	}
	return fmt.Sprintf("<%T>", v)
}

// quote produces a single-quoted literal, switching to double quotes when the
// text contains a single quote but no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == rune(q):
			sb.WriteByte('\\')
			sb.WriteByte(q)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case unicode.IsPrint(r):
			sb.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			fmt.Fprintf(&sb, `\U%08x`, r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if abs := math.Abs(f); f == 0 || (abs >= 1e-4 && abs < 1e16) {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	return strconv.FormatFloat(f, 'e', -1, 64)
}
