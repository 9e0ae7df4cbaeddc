package atf

import (
	"regexp"
	"sort"
	"strings"
)

// substitutions maps each ATF digraph to its Unicode replacement.
var substitutions = map[string]string{
	"SZ": "Š",
	"sz": "š",
	",S": "Ṣ",
	",s": "ṣ",
	",T": "Ṭ",
	",t": "ṭ",
}

var pattern = compile()

func compile() *regexp.Regexp {
	keys := make([]string, 0, len(substitutions))
	for k := range substitutions {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	// Stable alternation order keeps the pattern deterministic.
	sort.Strings(keys)
	return regexp.MustCompile("(" + strings.Join(keys, "|") + ")")
}

// Normalize returns a copy of text with every ATF digraph replaced by its
// Unicode form.
func Normalize(text string) string {
	matches := pattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	result := text
	for i := len(matches) - 1; i >= 0; i-- {
		start, end := matches[i][0], matches[i][1]
		replacement, ok := substitutions[result[start:end]]
		if !ok {
			continue
		}
		result = result[:start] + replacement + result[end:]
	}
	return result
}

// Table returns a copy of the substitution table.
func Table() map[string]string {
	out := make(map[string]string, len(substitutions))
	for k, v := range substitutions {
		out[k] = v
	}
	return out
}
