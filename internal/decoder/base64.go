package decoder

import (
	"encoding/base64"

	"github.com/rawblock/decipher-engine/internal/checker"
	"github.com/rawblock/decipher-engine/pkg/models"
)

type base64Decoder struct{}

func newBase64Decoder() *base64Decoder { return &base64Decoder{} }

func (d *base64Decoder) Describe() models.Descriptor {
	return models.Descriptor{
		Name:        "Base64",
		Kind:        models.KindEncoder,
		Tags:        []string{"base64", "web"},
		Popularity:  0.8,
		Description: "decodes standard and URL-safe Base64 with or without padding",
		Link:        "https://en.wikipedia.org/wiki/Base64",
	}
}

// Crack tries standard, URL-safe, and raw (unpadded) variants in turn —
// the input rarely advertises which flavor it is.
func (d *base64Decoder) Crack(input string, chk checker.Checker) models.DecodeOutcome {
	out := models.DecodeOutcome{EncryptedText: input, DecoderName: d.Describe().Name}

	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	seen := make(map[string]struct{})
	for _, enc := range encodings {
		decoded, err := enc.DecodeString(input)
		if err != nil || len(decoded) == 0 || !isPrintable(decoded) {
			continue
		}
		text := string(decoded)
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		out.UnencryptedText = append(out.UnencryptedText, text)
	}

	if len(out.UnencryptedText) == 0 {
		return out
	}
	if chk != nil {
		for _, candidate := range out.UnencryptedText {
			if res := chk.CheckText(candidate); res.IsIdentified {
				out.Success = true
				out.MatchedText = candidate
				out.CheckerName = res.CheckerName
				out.CheckerDescription = res.Description
				break
			}
		}
	}
	return out
}

func isPrintable(b []byte) bool {
	for _, c := range b {
		if c < 0x09 || (c > 0x0d && c < 0x20) {
			return false
		}
	}
	return true
}
