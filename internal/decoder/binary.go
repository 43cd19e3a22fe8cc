package decoder

import (
	"strconv"
	"strings"

	"github.com/rawblock/decipher-engine/internal/checker"
	"github.com/rawblock/decipher-engine/pkg/models"
)

type binaryDecoder struct{}

func newBinaryDecoder() *binaryDecoder { return &binaryDecoder{} }

func (d *binaryDecoder) Describe() models.Descriptor {
	return models.Descriptor{
		Name:        "Binary",
		Kind:        models.KindEncoder,
		Tags:        []string{"binary"},
		Popularity:  0.4,
		Description: "decodes whitespace-delimited 8-bit binary groups into bytes",
		Link:        "https://en.wikipedia.org/wiki/Binary_code",
	}
}

func (d *binaryDecoder) Crack(input string, chk checker.Checker) models.DecodeOutcome {
	out := models.DecodeOutcome{EncryptedText: input, DecoderName: d.Describe().Name}

	groups := strings.Fields(input)
	if len(groups) == 0 {
		return out
	}

	bytes := make([]byte, 0, len(groups))
	for _, g := range groups {
		if len(g) != 8 {
			return out
		}
		v, err := strconv.ParseUint(g, 2, 8)
		if err != nil {
			return out
		}
		bytes = append(bytes, byte(v))
	}
	if !isPrintable(bytes) {
		return out
	}

	text := string(bytes)
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
