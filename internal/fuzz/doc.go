// Package fuzztests houses Go fuzz harnesses that feed arbitrary bytes
// through every front-end and the formatter. They guard against panics,
// hangs and malformed trees on inputs the parsers accept.
package fuzztests
