// Package checker implements the pluggable plaintext-identification
// pipeline: Regex, Pattern, Wordlist, Password and English backends,
// composed through Athena/WaitAthena, with an optional human-confirmation
// gate in front of the final answer.
package checker

import "github.com/rawblock/decipher-engine/pkg/models"

// Sensitivity controls how aggressively the English checker accepts noisy
// text. Lower tiers are cheaper to satisfy but produce more false
// positives; higher tiers demand a larger dictionary-hit ratio. Medium
// balances the two for typical prose-length candidates.
type Sensitivity int

const (
	SensitivityLow Sensitivity = iota
	SensitivityMedium
	SensitivityHigh
)

// Checker is the contract every identification backend implements.
// CheckText must be pure and fast: it is called once per decode outcome,
// possibly thousands of times per search.
type Checker interface {
	Name() string
	CheckText(text string) models.CheckerResult
}

// notIdentified builds the common negative result so backends don't each
// repeat the zero-value boilerplate.
func notIdentified(name string) models.CheckerResult {
	return models.CheckerResult{IsIdentified: false, CheckerName: name}
}
