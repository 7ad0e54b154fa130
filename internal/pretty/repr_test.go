package pretty

import (
	"math"
	"testing"

	"astpretty/internal/tree"
)

func TestRepr(t *testing.T) {
	tests := []struct {
		in   tree.Value
		want string
	}{
		{tree.None{}, "None"},
		{nil, "None"},
		{tree.Str("x"), "'x'"},
		{tree.Str(""), "''"},
		{tree.Str("it's"), `"it's"`},
		{tree.Str(`it's "quoted"`), `'it\'s "quoted"'`},
		{tree.Str("a\\b"), `'a\\b'`},
		{tree.Str("line\nbreak\ttab\r"), `'line\nbreak\ttab\r'`},
		{tree.Str("\x00\x7f"), `'\x00\x7f'`},
		{tree.Str("héllo"), "'héllo'"},
		{tree.Str("\u2028"), `'\u2028'`},
		{tree.Int(0), "0"},
		{tree.Int(-42), "-42"},
		{tree.Float(1), "1.0"},
		{tree.Float(2.5), "2.5"},
		{tree.Float(1234567), "1234567.0"},
		{tree.Float(1e15), "1000000000000000.0"},
		{tree.Float(0.0001), "0.0001"},
		{tree.Float(1e-05), "1e-05"},
		{tree.Float(1.5e-07), "1.5e-07"},
		{tree.Float(1e+16), "1e+16"},
		{tree.Float(math.Inf(1)), "inf"},
		{tree.Float(math.Inf(-1)), "-inf"},
		{tree.Float(math.NaN()), "nan"},
		{tree.Bool(true), "True"},
		{tree.Bool(false), "False"},
	}

	for _, tt := range tests {
		if got := repr(tt.in); got != tt.want {
			t.Errorf("repr(%#v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
