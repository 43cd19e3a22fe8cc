package heuristic

import "github.com/rawblock/decipher-engine/pkg/models"

// Cost model constants for the search path cost g (Occam's razor: prefer
// long chains of cheap encoders over a single exotic cipher). Encoders
// cost a flat base regardless of popularity; nested same-encoding
// (Base64(Base64(x))) gets a steep discount since it's a common shape.
// Ciphers cost more, scaled up further the more ciphers already appear
// on the path, so a second or third cipher is disproportionately
// expensive rather than merely additive.
const (
	EncoderBase     = 0.7
	RepeatedEncoder = 0.2
	CipherBase      = 2.0
	PopCeiling      = 2.0
)

func clampPopularity(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// StepCost is the incremental path cost g contributed by applying one
// decoder at some position on a path.
//
// isFirst is true for the first decoder on the path, which has no
// predecessor to compare against. repeatsPrevEncoder is true only when
// kind is Encoder, isFirst is false, and this decoder's name equals the
// immediately preceding step's name — a repeat anywhere else on the path
// does not qualify. cipherPosition is the count of ciphers on the path so
// far, including this step if kind is Cipher; it is ignored for
// encoders.
func StepCost(kind models.Kind, popularity float64, isFirst, repeatsPrevEncoder bool, cipherPosition int) float64 {
	if kind == models.KindCipher {
		return CipherBase * float64(cipherPosition) * (PopCeiling - clampPopularity(popularity))
	}
	if !isFirst && repeatsPrevEncoder {
		return RepeatedEncoder
	}
	return EncoderBase
}

// PathCost sums StepCost over every step in path, given popularity/kind
// lookups by decoder name. It is used by tests and by any caller that
// needs the cost of a complete path rather than one incremental step.
func PathCost(path []models.DecodeOutcome, popularityOf func(name string) float64, kindOf func(name string) models.Kind) float64 {
	var total float64
	var prevName string
	cipherCount := 0
	for i, step := range path {
		kind := kindOf(step.DecoderName)
		if kind == models.KindCipher {
			cipherCount++
		}
		isFirst := i == 0
		repeatsPrevEncoder := !isFirst && kind == models.KindEncoder && step.DecoderName == prevName
		total += StepCost(kind, popularityOf(step.DecoderName), isFirst, repeatsPrevEncoder, cipherCount)
		prevName = step.DecoderName
	}
	return total
}

// PriorCipherCount returns how many cipher steps already appear in path.
// Callers extending a path one step at a time (the search engine) use
// this to compute the new step's cipherPosition without recomputing the
// whole path's cost from scratch.
func PriorCipherCount(path []models.DecodeOutcome, kindOf func(name string) models.Kind) int {
	count := 0
	for _, step := range path {
		if kindOf(step.DecoderName) == models.KindCipher {
			count++
		}
	}
	return count
}
