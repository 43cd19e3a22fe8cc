package checker

import (
	"strings"
	"unicode"

	"github.com/coregx/ahocorasick"
	"github.com/rawblock/decipher-engine/pkg/models"
)

// commonEnglishWords seeds the Aho-Corasick automaton used for word-hit
// scoring. It is deliberately small and skewed toward function words —
// the words most likely to appear in any sentence-length plaintext —
// rather than an exhaustive dictionary; exhaustiveness is the wordlist
// checker's job, not this one's.
var commonEnglishWords = []string{
	"the", "and", "you", "that", "was", "for", "are", "with", "his", "they",
	"this", "have", "from", "not", "had", "but", "what", "all", "were", "when",
	"your", "can", "said", "there", "use", "each", "which", "she", "how", "will",
	"other", "about", "out", "many", "then", "them", "these", "some", "her", "would",
	"like", "into", "time", "has", "look", "more", "write", "see", "number", "way",
	"could", "people", "than", "first", "water", "been", "call", "who", "its", "now",
	"find", "long", "down", "day", "did", "get", "come", "made", "may", "part",
	"hello", "world", "flag", "secret", "message", "password", "key", "is", "in", "to",
}

// EnglishChecker estimates whether a candidate is prose by the fraction of
// its tokens (runs of letters, see tokenize) that are recognized English
// words.
// Sensitivity trades recall for precision: Low accepts a low hit ratio,
// High demands most tokens to be recognized and at least two tokens
// total.
type EnglishChecker struct {
	matcher     *ahocorasick.Matcher
	sensitivity Sensitivity
}

func NewEnglishChecker(sensitivity Sensitivity) *EnglishChecker {
	return &EnglishChecker{
		matcher:     ahocorasick.NewStringMatcher(commonEnglishWords),
		sensitivity: sensitivity,
	}
}

func (c *EnglishChecker) Name() string { return "English Checker" }

func (c *EnglishChecker) CheckText(text string) models.CheckerResult {
	tokens := tokenize(text)
	if len(tokens) < minWordsFor(c.sensitivity) {
		return notIdentified(c.Name())
	}

	hits := 0
	for _, tok := range tokens {
		if c.matcher.ContainsString(strings.ToLower(tok)) {
			hits++
		}
	}
	ratio := float64(hits) / float64(len(tokens))
	if ratio < thresholdFor(c.sensitivity) {
		return notIdentified(c.Name())
	}
	return models.CheckerResult{
		IsIdentified: true,
		Text:         text,
		CheckerName:  c.Name(),
		Description:  "recognized as English prose by dictionary word-hit ratio",
	}
}

// tokenize splits on runs of non-letter characters, discarding empty
// tokens, so punctuation adjacent to a word ("flag!" or "flag,") doesn't
// suppress a hit.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
