package checker

import (
	"strings"

	"github.com/rawblock/decipher-engine/pkg/models"
)

// Membership is the minimal lookup surface WordlistChecker needs. The
// bloom-filter-backed index in internal/wordlist implements this; keeping
// the dependency as an interface avoids a checker<->wordlist import cycle
// and lets tests substitute a plain map.
type Membership interface {
	Contains(word string) bool
}

// WordlistChecker flags a candidate as identified when it is, verbatim or
// after trimming, a member of a loaded wordlist — e.g. a cracked password
// matching a known leaked-password corpus.
type WordlistChecker struct {
	index Membership
}

func NewWordlistChecker(index Membership) *WordlistChecker {
	return &WordlistChecker{index: index}
}

func (c *WordlistChecker) Name() string { return "Wordlist Checker" }

func (c *WordlistChecker) CheckText(text string) models.CheckerResult {
	candidate := strings.TrimSpace(text)
	if candidate == "" || c.index == nil {
		return notIdentified(c.Name())
	}
	if c.index.Contains(candidate) {
		return models.CheckerResult{
			IsIdentified: true,
			Text:         text,
			CheckerName:  c.Name(),
			Description:  "matches an entry in a loaded wordlist",
		}
	}
	return notIdentified(c.Name())
}
