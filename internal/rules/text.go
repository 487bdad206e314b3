package rules

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// isWordRune reports whether r continues a word. Han, kana and Hangul are
// written without spaces, so they never glue onto an adjacent digit run.
func isWordRune(r rune) bool {
	if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// bounded reports whether text[start:end] does not cut through a word on
// either side
func bounded(text string, start, end int) bool {
	if start < 0 || end > len(text) || start >= end {
		return false
	}
	if start > 0 {
		first, _ := utf8.DecodeRuneInString(text[start:])
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(first) && isWordRune(prev) {
			return false
		}
	}
	if end < len(text) {
		last, _ := utf8.DecodeLastRuneInString(text[:end])
		next, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(last) && isWordRune(next) {
			return false
		}
	}
	return true
}

// alt builds a regexp alternation from literal phrases, longest first so the
// leftmost-first engine prefers "per cent" over "per". Spaces match any run
// of whitespace.
func alt(words []string) string {
	if len(words) == 0 {
		return ""
	}
	sorted := append([]string(nil), words...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	parts := make([]string, len(sorted))
	for i, w := range sorted {
		quoted := regexp.QuoteMeta(w)
		parts[i] = strings.ReplaceAll(quoted, " ", `\s+`)
	}
	return strings.Join(parts, "|")
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// compile returns nil when the alternation is empty, so a language without
// the words simply skips the rule
func compile(pattern string, alternations ...string) *regexp.Regexp {
	for _, a := range alternations {
		if a == "" {
			return nil
		}
	}
	return regexp.MustCompile("(?i)" + pattern)
}

// matchAfter runs an anchored (^) pattern at text[pos:] and returns absolute
// submatch offsets, or nil
func matchAfter(re *regexp.Regexp, text string, pos int) []int {
	if re == nil || pos > len(text) {
		return nil
	}
	loc := re.FindStringSubmatchIndex(text[pos:])
	if loc == nil {
		return nil
	}
	for i := range loc {
		if loc[i] >= 0 {
			loc[i] += pos
		}
	}
	if loc[1] > loc[0] && !bounded(text, loc[0], loc[1]) {
		return nil
	}
	return loc
}

// matchBefore runs a pattern anchored at the end ($) on text[:pos]
func matchBefore(re *regexp.Regexp, text string, pos int) []int {
	if re == nil || pos < 0 {
		return nil
	}
	loc := re.FindStringSubmatchIndex(text[:pos])
	if loc == nil {
		return nil
	}
	if loc[1] > loc[0] && !bounded(text, loc[0], loc[1]) {
		return nil
	}
	return loc
}

// findAll returns bounded matches of re in text
func findAll(re *regexp.Regexp, text string) [][]int {
	if re == nil {
		return nil
	}
	var out [][]int
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		if bounded(text, loc[0], loc[1]) {
			out = append(out, loc)
		}
	}
	return out
}

// group returns the text of submatch n, or "" when it did not participate
func group(text string, loc []int, n int) string {
	if n < 0 || 2*n+1 >= len(loc) || loc[2*n] < 0 {
		return ""
	}
	return text[loc[2*n]:loc[2*n+1]]
}
