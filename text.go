package componentbuilder

import (
	"regexp"
	"strings"
)

// spaceRuns matches ascii whitespace, unicode space separators and the byte order mark
var (
	lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
	spaceRuns  = regexp.MustCompile(`[\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]+`)
)

// collapseWhitespace turns line breaks into spaces and every whitespace run
// into a single space, leading and trailing whitespace is kept.
func collapseWhitespace(data string) string {
	return spaceRuns.ReplaceAllString(lineBreaks.Replace(data), " ")
}
