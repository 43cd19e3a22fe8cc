package decoder

import (
	"encoding/hex"
	"strings"

	"github.com/rawblock/decipher-engine/internal/checker"
	"github.com/rawblock/decipher-engine/pkg/models"
)

type hexDecoder struct{}

func newHexDecoder() *hexDecoder { return &hexDecoder{} }

func (d *hexDecoder) Describe() models.Descriptor {
	return models.Descriptor{
		Name:        "Hexadecimal",
		Kind:        models.KindEncoder,
		Tags:        []string{"hex"},
		Popularity:  0.6,
		Description: "decodes a hex digit string, with or without a 0x prefix or byte spacing",
		Link:        "https://en.wikipedia.org/wiki/Hexadecimal",
	}
}

func (d *hexDecoder) Crack(input string, chk checker.Checker) models.DecodeOutcome {
	out := models.DecodeOutcome{EncryptedText: input, DecoderName: d.Describe().Name}

	cleaned := strings.TrimPrefix(strings.TrimSpace(input), "0x")
	cleaned = strings.Join(strings.Fields(cleaned), "")

	decoded, err := hex.DecodeString(cleaned)
	if err != nil || len(decoded) == 0 || !isPrintable(decoded) {
		return out
	}

	text := string(decoded)
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
