package taxonomy

import "github.com/lucasjones/reggen"

// maxPatternExampleLength bounds the synthesized example so pathological
// patterns (unbounded repetition) don't generate huge strings.
const maxPatternExampleLength = 32

// generateFromPattern produces a string matching an XSD pattern facet:
// hand the regex to reggen and let it walk the pattern to produce a
// conforming value.
func generateFromPattern(pattern string) (string, bool) {
	str, err := reggen.Generate(pattern, maxPatternExampleLength)
	if err != nil {
		return "", false
	}
	return str, true
}
