package decoder

import (
	"strconv"

	"github.com/rawblock/decipher-engine/internal/checker"
	"github.com/rawblock/decipher-engine/pkg/models"
)

type caesarDecoder struct{}

func newCaesarDecoder() *caesarDecoder { return &caesarDecoder{} }

func (d *caesarDecoder) Describe() models.Descriptor {
	return models.Descriptor{
		Name:        "Caesar",
		Kind:        models.KindCipher,
		Tags:        []string{"caesar", "rot13", "substitution"},
		Popularity:  0.5,
		Description: "tries every one of the 25 non-trivial shifts of the Latin alphabet",
		Link:        "https://en.wikipedia.org/wiki/Caesar_cipher",
	}
}

// Crack returns every non-trivial shift (1..25) as a candidate in one
// outcome, since a Caesar shift is cheap enough to brute force in full
// rather than guess a single key. The key of the first checker-confirmed
// shift is recorded on success.
func (d *caesarDecoder) Crack(input string, chk checker.Checker) models.DecodeOutcome {
	out := models.DecodeOutcome{EncryptedText: input, DecoderName: d.Describe().Name}
	if input == "" {
		return out
	}

	for shift := 1; shift < 26; shift++ {
		candidate := shiftString(input, shift)
		out.UnencryptedText = append(out.UnencryptedText, candidate)
		if out.Success || chk == nil {
			continue
		}
		if res := chk.CheckText(candidate); res.IsIdentified {
			out.Success = true
			out.Key = strconv.Itoa(shift)
			out.MatchedText = candidate
			out.CheckerName = res.CheckerName
			out.CheckerDescription = res.Description
		}
	}
	return out
}

func shiftString(s string, shift int) string {
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r >= 'a' && r <= 'z':
			runes[i] = 'a' + (r-'a'+rune(shift))%26
		case r >= 'A' && r <= 'Z':
			runes[i] = 'A' + (r-'A'+rune(shift))%26
		}
	}
	return string(runes)
}
