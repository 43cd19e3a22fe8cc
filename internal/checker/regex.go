package checker

import (
	"fmt"

	"github.com/coregx/coregex"
	"github.com/rawblock/decipher-engine/pkg/models"
)

// RegexChecker matches a user-supplied pattern against candidate
// plaintext. It is compiled once at construction so CheckText never pays
// compile cost on the hot path.
type RegexChecker struct {
	pattern string
	re      *coregex.Regex
}

// NewRegexChecker compiles pattern eagerly. coregex.Compile rejects
// malformed patterns the same way stdlib regexp would, so the error is
// surfaced to the caller (config load time) instead of swallowed here.
func NewRegexChecker(pattern string) (*RegexChecker, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("checker: compile regex %q: %w", pattern, err)
	}
	return &RegexChecker{pattern: pattern, re: re}, nil
}

func (c *RegexChecker) Name() string { return "Regex Checker" }

func (c *RegexChecker) CheckText(text string) models.CheckerResult {
	if !c.re.MatchString(text) {
		return notIdentified(c.Name())
	}
	return models.CheckerResult{
		IsIdentified: true,
		Text:         text,
		CheckerName:  c.Name(),
		Description:  fmt.Sprintf("matches user-supplied pattern %q", c.pattern),
	}
}
