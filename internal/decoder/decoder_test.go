package decoder

import (
	"testing"

	"github.com/rawblock/decipher-engine/pkg/models"
)

type stubChecker struct {
	want string
}

func (s stubChecker) Name() string { return "stub" }

func (s stubChecker) CheckText(text string) models.CheckerResult {
	if text == s.want {
		return models.CheckerResult{IsIdentified: true, Text: text, CheckerName: "stub"}
	}
	return models.CheckerResult{CheckerName: "stub"}
}

func TestRegistryEncodersAndCiphersSplit(t *testing.T) {
	r := NewDefault()

	for _, d := range r.Encoders() {
		if d.Describe().Kind != models.KindEncoder {
			t.Errorf("Encoders() returned non-encoder %q", d.Describe().Name)
		}
	}
	for _, d := range r.Ciphers() {
		if d.Describe().Kind != models.KindCipher {
			t.Errorf("Ciphers() returned non-cipher %q", d.Describe().Name)
		}
	}
	if got, want := len(r.Encoders())+len(r.Ciphers()), len(r.All()); got != want {
		t.Errorf("Encoders+Ciphers = %d, All = %d", got, want)
	}
}

func TestRegistryDuplicateNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	r := NewRegistry()
	r.Register(newBase64Decoder())
	r.Register(newBase64Decoder())
}

func TestBase64Crack(t *testing.T) {
	d := newBase64Decoder()
	out := d.Crack("aGVsbG8gd29ybGQ=", stubChecker{want: "hello world"})
	if !out.Success {
		t.Fatalf("expected success, got %+v", out)
	}
}

func TestBase64CrackInvalidInput(t *testing.T) {
	d := newBase64Decoder()
	out := d.Crack("not valid base64!!", nil)
	if out.Success || len(out.UnencryptedText) != 0 {
		t.Fatalf("expected no candidates, got %+v", out)
	}
}

func TestHexCrack(t *testing.T) {
	d := newHexDecoder()
	out := d.Crack("68656c6c6f", stubChecker{want: "hello"})
	if !out.Success {
		t.Fatalf("expected success, got %+v", out)
	}
}

func TestBinaryCrackRequiresEightBitGroups(t *testing.T) {
	d := newBinaryDecoder()
	out := d.Crack("0100100 01100101", nil)
	if out.Success || len(out.UnencryptedText) != 0 {
		t.Fatalf("expected no candidates for malformed groups, got %+v", out)
	}
}

func TestURLDecoderPercentDecodes(t *testing.T) {
	d := newURLDecoder()
	out := d.Crack("hello%20world", stubChecker{want: "hello world"})
	if !out.Success {
		t.Fatalf("expected success, got %+v", out)
	}
}

func TestReverseDecoder(t *testing.T) {
	d := newReverseDecoder()
	out := d.Crack("dlrow olleh", stubChecker{want: "hello world"})
	if !out.Success {
		t.Fatalf("expected success, got %+v", out)
	}
}

func TestCaesarTriesAllShifts(t *testing.T) {
	d := newCaesarDecoder()
	// "uryyb" is "hello" shifted by 13 (ROT13).
	out := d.Crack("uryyb", stubChecker{want: "hello"})
	if !out.Success {
		t.Fatalf("expected success, got %+v", out)
	}
	if out.Key != "13" {
		t.Errorf("Key = %q, want 13", out.Key)
	}
	if len(out.UnencryptedText) != 25 {
		t.Errorf("expected all 25 non-trivial shifts, got %d", len(out.UnencryptedText))
	}
}

func TestAtbashIsSelfInverse(t *testing.T) {
	d := newAtbashDecoder()
	encoded := d.Crack("hello", nil).UnencryptedText[0]
	decoded := d.Crack(encoded, nil).UnencryptedText[0]
	if decoded != "hello" {
		t.Errorf("Atbash(Atbash(%q)) = %q, want hello", "hello", decoded)
	}
}
