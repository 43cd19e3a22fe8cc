package search

import (
	"context"
	"errors"
	"testing"

	"github.com/rawblock/decipher-engine/internal/checker"
	"github.com/rawblock/decipher-engine/internal/decoder"
	"github.com/rawblock/decipher-engine/pkg/models"
)

func baseConfig() models.Config {
	return models.Config{TimeoutSeconds: 5}
}

func TestPerformCrackingPlaintextPassthrough(t *testing.T) {
	e := NewEngine(decoder.NewDefault())
	chk := checker.NewPasswordChecker()

	result, err := e.PerformCracking(context.Background(), baseConfig(), "password", []checker.Checker{chk})
	if err != nil {
		t.Fatalf("PerformCracking: %v", err)
	}
	if len(result.Path) != 0 {
		t.Errorf("expected empty path for passthrough, got %+v", result.Path)
	}
	if len(result.Text) != 1 || result.Text[0] != "password" {
		t.Errorf("expected [password], got %v", result.Text)
	}
}

func TestPerformCrackingSingleBase64(t *testing.T) {
	e := NewEngine(decoder.NewDefault())
	chk := checker.NewPasswordChecker() // "password" is in the built-in list

	// base64("password") = "cGFzc3dvcmQ="
	result, err := e.PerformCracking(context.Background(), baseConfig(), "cGFzc3dvcmQ=", []checker.Checker{chk})
	if err != nil {
		t.Fatalf("PerformCracking: %v", err)
	}
	if len(result.Text) != 1 || result.Text[0] != "password" {
		t.Errorf("got %v, want [password]", result.Text)
	}
	if len(result.Path) != 1 || result.Path[0].DecoderName != "Base64" {
		t.Errorf("expected single Base64 step, got %+v", result.Path)
	}
}

func TestPerformCrackingMemoizesNotDecodableCandidates(t *testing.T) {
	e := NewEngine(decoder.NewDefault())
	chk := checker.NewPasswordChecker()

	// Two independent calls on the same engine share e.notDecodable; the
	// second run should reach the same verdict without panicking or
	// misbehaving when a prior run already ruled out the same noisy
	// intermediate candidates.
	for i := 0; i < 2; i++ {
		if _, err := e.PerformCracking(context.Background(), baseConfig(), "cGFzc3dvcmQ=", []checker.Checker{chk}); err != nil {
			t.Fatalf("run %d: PerformCracking: %v", i, err)
		}
	}
}

func TestPerformCrackingCaesarShift13(t *testing.T) {
	e := NewEngine(decoder.NewDefault())
	chk, err := checker.NewRegexChecker(`^Rotate me 13 places!$`)
	if err != nil {
		t.Fatalf("NewRegexChecker: %v", err)
	}

	result, err := e.PerformCracking(context.Background(), baseConfig(), "Ebgngr zr 13 cynprf!", []checker.Checker{chk})
	if err != nil {
		t.Fatalf("PerformCracking: %v", err)
	}
	if len(result.Text) != 1 || result.Text[0] != "Rotate me 13 places!" {
		t.Fatalf("got %v, want [Rotate me 13 places!]", result.Text)
	}
	if len(result.Path) != 1 || result.Path[0].DecoderName != "Caesar" {
		t.Fatalf("expected single Caesar step, got %+v", result.Path)
	}
	if result.Path[0].Key != "13" {
		t.Errorf("Key = %q, want 13", result.Path[0].Key)
	}
}

func TestPerformCrackingReverseOfBase64(t *testing.T) {
	e := NewEngine(decoder.NewDefault())
	chk, err := checker.NewRegexChecker(`^hello world\s*$`)
	if err != nil {
		t.Fatalf("NewRegexChecker: %v", err)
	}

	// base64("hello world\n") = "aGVsbG8gd29ybGQK", reversed char by char.
	result, err := e.PerformCracking(context.Background(), baseConfig(), "KQGby92dg8GbsVGa", []checker.Checker{chk})
	if err != nil {
		t.Fatalf("PerformCracking: %v", err)
	}
	if len(result.Text) != 1 || result.Text[0] != "hello world\n" {
		t.Fatalf("got %v, want [hello world\\n]", result.Text)
	}
	if len(result.Path) != 2 || result.Path[0].DecoderName != "Reverse" || result.Path[1].DecoderName != "Base64" {
		t.Fatalf("expected [Reverse, Base64], got %+v", result.Path)
	}
}

func TestPerformCrackingExhaustsWithoutMatch(t *testing.T) {
	e := NewEngine(decoder.NewDefault())
	chk, err := checker.NewRegexChecker(`^this exact phrase will never appear anywhere$`)
	if err != nil {
		t.Fatalf("NewRegexChecker: %v", err)
	}

	cfg := models.Config{TimeoutSeconds: 2}
	_, err = e.PerformCracking(context.Background(), cfg, "just some ordinary text", []checker.Checker{chk})
	if err == nil {
		t.Fatal("expected an error (exhausted or timeout)")
	}
	if !errors.Is(err, ErrExhausted) && !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrExhausted or ErrTimeout, got %v", err)
	}
}
