package checker

import (
	"fmt"

	"github.com/coregx/coregex"
	"github.com/rawblock/decipher-engine/pkg/models"
)

// signature is one entry in the pattern-identification catalog: a named,
// fully anchored regex recognizing a well-known data format. Unlike
// RegexChecker (a single user pattern), PatternChecker tries every
// signature and reports the first that fully matches the candidate text.
type signature struct {
	name string
	link string
	re   *coregex.Regex
}

// PatternChecker recognizes common structured formats — hashes, UUIDs,
// network addresses, URLs — that are identifiable by shape alone and
// don't need a dictionary or entropy pass.
type PatternChecker struct {
	signatures []signature
}

// NewPatternChecker compiles the built-in catalog. Every pattern is
// anchored with ^...$ so a decode outcome must match the format in full,
// not merely contain a substring that looks like one.
func NewPatternChecker() *PatternChecker {
	catalog := []struct{ name, link, pattern string }{
		{"MD5", "https://en.wikipedia.org/wiki/MD5", `^[a-fA-F0-9]{32}$`},
		{"SHA1", "https://en.wikipedia.org/wiki/SHA-1", `^[a-fA-F0-9]{40}$`},
		{"SHA256", "https://en.wikipedia.org/wiki/SHA-2", `^[a-fA-F0-9]{64}$`},
		{"UUID", "https://en.wikipedia.org/wiki/Universally_unique_identifier", `^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}$`},
		{"IPv4", "https://en.wikipedia.org/wiki/IPv4", `^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`},
		{"URL", "https://en.wikipedia.org/wiki/URL", `^https?://[^\s]+$`},
		{"Email", "https://en.wikipedia.org/wiki/Email_address", `^[^\s@]+@[^\s@]+\.[^\s@]+$`},
	}

	sigs := make([]signature, 0, len(catalog))
	for _, c := range catalog {
		re, err := coregex.Compile(c.pattern)
		if err != nil {
			// The catalog is compiled into the binary; a bad pattern here is
			// a build-time bug, not a runtime condition.
			panic(fmt.Sprintf("checker: built-in pattern %q for %s: %v", c.pattern, c.name, err))
		}
		sigs = append(sigs, signature{name: c.name, link: c.link, re: re})
	}
	return &PatternChecker{signatures: sigs}
}

func (c *PatternChecker) Name() string { return "Pattern Checker" }

func (c *PatternChecker) CheckText(text string) models.CheckerResult {
	for _, sig := range c.signatures {
		if sig.re.MatchString(text) {
			return models.CheckerResult{
				IsIdentified: true,
				Text:         text,
				CheckerName:  c.Name(),
				Description:  fmt.Sprintf("matches %s format", sig.name),
				Link:         sig.link,
			}
		}
	}
	return notIdentified(c.Name())
}
