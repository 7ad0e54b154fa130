package pretty

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultIndent is the indentation unit used when none is configured.
const DefaultIndent = "    "

// Options configures Format.
type Options struct {
	// Indent is the unit repeated once per depth level.
	Indent string
	// ShowPositions includes position attributes for kinds that declare them.
	ShowPositions bool
	// ExpandSingletons renders a one-element list of a leaf as a multi-line
	// block instead of the compact [leaf] form.
	ExpandSingletons bool
	// Color highlights kind names with ANSI colours.
	Color bool
}

// DefaultOptions returns four-space indentation with positions shown.
func DefaultOptions() Options {
	return Options{
		Indent:        DefaultIndent,
		ShowPositions: true,
	}
}

// ParseIndent converts an indentation setting into the literal unit.
// An integer n means n spaces, "tab" or `\t` means a tab character,
// and anything else is used as is.
func ParseIndent(s string) (string, error) {
	switch s {
	case "":
		return DefaultIndent, nil
	case "tab", `\t`:
		return "\t", nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		if n < 0 {
			return "", fmt.Errorf("invalid indent %q: width must not be negative", s)
		}
		return strings.Repeat(" ", n), nil
	}
	return s, nil
}

func (o Options) indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(o.Indent, depth)
}
