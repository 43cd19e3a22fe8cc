package decoder

import (
	"net/url"

	"github.com/rawblock/decipher-engine/internal/checker"
	"github.com/rawblock/decipher-engine/pkg/models"
)

type urlDecoder struct{}

func newURLDecoder() *urlDecoder { return &urlDecoder{} }

func (d *urlDecoder) Describe() models.Descriptor {
	return models.Descriptor{
		Name:        "URL",
		Kind:        models.KindEncoder,
		Tags:        []string{"url", "web"},
		Popularity:  0.5,
		Description: "percent-decodes a URL-encoded string",
		Link:        "https://en.wikipedia.org/wiki/Percent-encoding",
	}
}

func (d *urlDecoder) Crack(input string, chk checker.Checker) models.DecodeOutcome {
	out := models.DecodeOutcome{EncryptedText: input, DecoderName: d.Describe().Name}

	decoded, err := url.QueryUnescape(input)
	if err != nil || decoded == input {
		return out
	}

	out.UnencryptedText = []string{decoded}
	if chk != nil {
		if res := chk.CheckText(decoded); res.IsIdentified {
			out.Success = true
			out.MatchedText = decoded
			out.CheckerName = res.CheckerName
			out.CheckerDescription = res.Description
		}
	}
	return out
}
