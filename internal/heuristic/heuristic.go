package heuristic

import "unicode/utf8"

// Weights combining the three heuristic signals into h.
const (
	EntropyWeight      = 2.0
	SuccessPriorWeight = 0.5
	QualityWeight      = 0.5

	// UnknownPenalty is the success-prior contribution for a decoder with
	// no recorded history at all, distinct from a decoder whose recorded
	// rate happens to be low.
	UnknownPenalty = 0.25

	// nonPrintableCeiling and qualityFloor bound CantBeDecoded's
	// non-printable-ratio and quality checks.
	nonPrintableCeiling = 0.3
	qualityFloor        = 0.2
)

// H estimates the remaining cost to reach a goal (plaintext) state from a
// candidate string produced by decoderName. Lower is more promising:
//   - entropy_score = EntropyWeight * normalized Shannon entropy of the
//     candidate (high-entropy text looks like it still needs decoding).
//   - success_prior = SuccessPriorWeight * (1 - success rate of
//     decoderName), or UnknownPenalty if decoderName has no recorded
//     history yet.
//   - quality_penalty = QualityWeight * (1 - Quality(candidate)).
func H(candidate string, decoderName string, tracker *SuccessTracker) float64 {
	entropyScore := EntropyWeight * Shannon(candidate)

	var successPrior float64
	if tracker != nil && tracker.Known(decoderName) {
		successPrior = SuccessPriorWeight * (1 - tracker.Rate(decoderName))
	} else {
		successPrior = UnknownPenalty
	}

	qualityPenalty := QualityWeight * (1 - Quality(candidate))

	return entropyScore + successPrior + qualityPenalty
}

// CantBeDecoded is the pruning predicate: a candidate this short, this
// full of non-printable bytes, or this low-quality is treated as a dead
// end and dropped from the frontier rather than expanded further.
func CantBeDecoded(candidate string) bool {
	if utf8.RuneCountInString(candidate) <= 2 {
		return true
	}
	if nonPrintableRatio(candidate) > nonPrintableCeiling {
		return true
	}
	return Quality(candidate) < qualityFloor
}
