package compiler

import "strings"

// FirstComment returns the text of the first "double-quoted" comment in the
// raw source, without its quotes. It scans the text directly, independent of
// tokenization, so a quote inside a string literal counts too.
func FirstComment(source string) (string, bool) {
	start := strings.IndexByte(source, '"')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(source[start+1:], '"')
	if end < 0 {
		return "", false
	}
	return source[start+1 : start+1+end], true
}
