package chat

import "strings"

// IntentMatcher decides whether normalized text expresses an intent. Implementations
// receive lower-cased input.
type IntentMatcher interface {
	Matches(text string) bool
}

// Contains matches text holding the word as a substring.
type Contains string

func (c Contains) Matches(text string) bool {
	return strings.Contains(text, string(c))
}

// AllOf matches when every matcher matches.
type AllOf []IntentMatcher

func (a AllOf) Matches(text string) bool {
	for _, m := range a {
		if !m.Matches(text) {
			return false
		}
	}
	return len(a) > 0
}

// AnyOf matches when at least one matcher matches.
type AnyOf []IntentMatcher

func (a AnyOf) Matches(text string) bool {
	for _, m := range a {
		if m.Matches(text) {
			return true
		}
	}
	return false
}

// AllWords is AllOf over Contains matchers.
func AllWords(words ...string) IntentMatcher {
	out := make(AllOf, len(words))
	for i, w := range words {
		out[i] = Contains(w)
	}
	return out
}

// AnyWord is AnyOf over Contains matchers.
func AnyWord(words ...string) IntentMatcher {
	out := make(AnyOf, len(words))
	for i, w := range words {
		out[i] = Contains(w)
	}
	return out
}

// NameFinder picks the option a text refers to.
type NameFinder interface {
	Find(text string, options []string) (string, bool)
}

// SubstringFinder returns the first option, in the given order, that occurs anywhere in
// the text. "red" is found in "bodyguard red alert" and also in "redo"; that looseness
// is accepted.
type SubstringFinder struct{}

func (SubstringFinder) Find(text string, options []string) (string, bool) {
	for _, o := range options {
		if o != "" && strings.Contains(text, o) {
			return o, true
		}
	}
	return "", false
}
