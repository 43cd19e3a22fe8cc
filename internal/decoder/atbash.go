package decoder

import (
	"github.com/rawblock/decipher-engine/internal/checker"
	"github.com/rawblock/decipher-engine/pkg/models"
)

type atbashDecoder struct{}

func newAtbashDecoder() *atbashDecoder { return &atbashDecoder{} }

func (d *atbashDecoder) Describe() models.Descriptor {
	return models.Descriptor{
		Name:        "Atbash",
		Kind:        models.KindCipher,
		Tags:        []string{"atbash", "substitution"},
		Popularity:  0.2,
		Description: "applies the fixed Atbash substitution (a<->z, b<->y, ...)",
		Link:        "https://en.wikipedia.org/wiki/Atbash",
	}
}

// Crack has exactly one candidate: Atbash is its own inverse, so there is
// no key to search over.
func (d *atbashDecoder) Crack(input string, chk checker.Checker) models.DecodeOutcome {
	out := models.DecodeOutcome{EncryptedText: input, DecoderName: d.Describe().Name}
	if input == "" {
		return out
	}

	runes := []rune(input)
	for i, r := range runes {
		switch {
		case r >= 'a' && r <= 'z':
			runes[i] = 'z' - (r - 'a')
		case r >= 'A' && r <= 'Z':
			runes[i] = 'Z' - (r - 'A')
		}
	}
	text := string(runes)

	out.UnencryptedText = []string{text}
	if chk != nil {
		if res := chk.CheckText(text); res.IsIdentified {
			out.Success = true
			out.MatchedText = text
			out.CheckerName = res.CheckerName
			out.CheckerDescription = res.Description
		}
	}
	return out
}
