package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"astpretty/internal/driver"
	"astpretty/internal/observ"
)

// printTimings writes one line per driver phase, then the slowest files.
func printTimings(out io.Writer, res driver.Result) {
	if err := res.Timings.Fprint(out); err != nil {
		return
	}

	cached := 0
	for _, f := range res.Files {
		if f.Cached {
			cached++
		}
	}
	if cached > 0 {
		fmt.Fprintf(out, "cache hits %d/%d\n", cached, len(res.Files))
	}
	for _, f := range slowest(res.Files, 3) {
		fmt.Fprintf(out, "  %8.1f ms  %s\n", observ.Millis(f.Elapsed), f.Path)
	}
}

// slowest returns up to n files ordered by elapsed time, longest first.
// Only directory runs with more than one file report them.
func slowest(files []driver.FileResult, n int) []driver.FileResult {
	if len(files) < 2 {
		return nil
	}
	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, func(a, b driver.FileResult) int {
		return cmp.Compare(b.Elapsed, a.Elapsed)
	})
	return sorted[:min(n, len(sorted))]
}
