package decoder

import (
	"github.com/rawblock/decipher-engine/internal/checker"
	"github.com/rawblock/decipher-engine/pkg/models"
)

type reverseDecoder struct{}

func newReverseDecoder() *reverseDecoder { return &reverseDecoder{} }

func (d *reverseDecoder) Describe() models.Descriptor {
	return models.Descriptor{
		Name:        "Reverse",
		Kind:        models.KindEncoder,
		Tags:        []string{"reverse"},
		Popularity:  0.3,
		Description: "reverses the text rune by rune",
		Link:        "",
	}
}

func (d *reverseDecoder) Crack(input string, chk checker.Checker) models.DecodeOutcome {
	out := models.DecodeOutcome{EncryptedText: input, DecoderName: d.Describe().Name}

	runes := []rune(input)
	if len(runes) == 0 {
		return out
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	text := string(runes)
	if text == input {
		return out
	}

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
