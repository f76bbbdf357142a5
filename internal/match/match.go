package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxTypoDistance is the largest edit-distance budget a config may request.
const MaxTypoDistance = 3

// Config controls how typed answers are compared against accepted answers.
type Config struct {
	// IgnoreCase folds letter case before comparison.
	IgnoreCase bool `json:"ignoreCase"`

	// IgnoreAccents strips combining diacritics before comparison,
	// so "café" and "cafe" compare equal.
	IgnoreAccents bool `json:"ignoreAccents"`

	// AllowTypoDistance is the edit-distance budget for a typed answer
	// to still count as correct. Clamped to 0..MaxTypoDistance.
	AllowTypoDistance int `json:"allowTypoDistance"`
}

// DefaultConfig returns the standard grading tolerance.
func DefaultConfig() Config {
	return Config{
		IgnoreCase:        true,
		IgnoreAccents:     true,
		AllowTypoDistance: 1,
	}
}

// Result describes the outcome of comparing a typed answer.
type Result struct {
	// IsCorrect is true when the input matched an accepted answer within
	// the configured tolerance.
	IsCorrect bool

	// IsExact is true only on a literal match of the normalized forms.
	IsExact bool

	// Distance is the smallest edit distance seen across all accepted
	// answers. Zero iff IsExact.
	Distance int

	// Matched is the accepted answer (original, un-normalized form) that
	// produced the result. Empty when the input was not correct.
	Matched string
}

// Match compares input against the accepted answers in order.
//
// A literal match of normalized forms short-circuits immediately, so an
// exact match on a later alternative beats a closer-but-inexact match on an
// earlier one. Otherwise the lowest edit distance across all accepted
// answers decides correctness against the tolerance budget.
//
// accepted must be non-empty; questions are never built without answers.
func Match(input string, accepted []string, cfg Config) Result {
	tolerance := cfg.AllowTypoDistance
	if tolerance < 0 {
		tolerance = 0
	}
	if tolerance > MaxTypoDistance {
		tolerance = MaxTypoDistance
	}

	in := Normalize(input, cfg)

	best := Result{Distance: -1}
	for _, ans := range accepted {
		want := Normalize(ans, cfg)
		if in == want {
			return Result{
				IsCorrect: true,
				IsExact:   true,
				Distance:  0,
				Matched:   ans,
			}
		}

		d := levenshtein(in, want)
		if best.Distance < 0 || d < best.Distance {
			best = Result{
				IsCorrect: d <= tolerance,
				Distance:  d,
			}
			if best.IsCorrect {
				best.Matched = ans
			}
		}
	}

	return best
}

// Normalize applies the comparison transform: surrounding whitespace is
// trimmed, internal whitespace runs collapse to a single space, then case
// and accent folding per cfg.
func Normalize(s string, cfg Config) string {
	s = strings.Join(strings.Fields(s), " ")
	if cfg.IgnoreCase {
		s = strings.ToLower(s)
	}
	if cfg.IgnoreAccents {
		s = stripAccents(s)
	}
	return s
}

// stripAccents decomposes to NFD and drops combining marks.
func stripAccents(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// levenshtein computes the unit-cost edit distance between a and b using
// the classical dynamic-programming recurrence over runes.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			cost := 1
			if rb[i-1] == ra[j-1] {
				cost = 0
			}
			curr[j] = minOf(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

func minOf(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
