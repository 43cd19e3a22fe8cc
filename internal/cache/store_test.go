package cache

import (
	"path/filepath"
	"testing"

	"github.com/rawblock/decipher-engine/pkg/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLookupRoundTrip(t *testing.T) {
	s := openTestStore(t)

	path := []models.DecodeOutcome{{DecoderName: "Base64", Success: true}}
	if _, err := s.Save("cGFzc3dvcmQ=", "password", path, true, 12); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entry, ok, err := s.Lookup("cGFzc3dvcmQ=")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if entry.DecodedText != "password" {
		t.Errorf("DecodedText = %q, want password", entry.DecodedText)
	}
	if !entry.Successful {
		t.Error("expected Successful = true")
	}
}

func TestLookupMissReturnsNotOK(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := s.Lookup("never saved")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if ok {
		t.Error("expected no hit for an unsaved key")
	}
}

func TestRecordBranch(t *testing.T) {
	s := openTestStore(t)
	entry, err := s.Save("x", "y", nil, false, 1)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	err = s.RecordBranch(models.Branch{
		ParentCacheID: entry.UUID,
		StepIndex:     0,
		DecoderName:   "Hexadecimal",
		ChildText:     "z",
		Successful:    false,
	})
	if err != nil {
		t.Fatalf("RecordBranch: %v", err)
	}
}

func TestWordlistIngestionAndLookup(t *testing.T) {
	s := openTestStore(t)

	file, err := s.RegisterWordlistFile("seed.txt", "test")
	if err != nil {
		t.Fatalf("RegisterWordlistFile: %v", err)
	}

	if err := s.InsertWords(file.ID, []string{"flag", "secret"}); err != nil {
		t.Fatalf("InsertWords: %v", err)
	}

	ok, err := s.ContainsWord("flag")
	if err != nil {
		t.Fatalf("ContainsWord: %v", err)
	}
	if !ok {
		t.Error("expected flag to be present")
	}

	ok, err = s.ContainsWord("missing")
	if err != nil {
		t.Fatalf("ContainsWord: %v", err)
	}
	if ok {
		t.Error("expected missing word to be absent")
	}

	words, err := s.AllWords()
	if err != nil {
		t.Fatalf("AllWords: %v", err)
	}
	if len(words) != 2 {
		t.Errorf("AllWords returned %d, want 2", len(words))
	}
}

func TestRegisterWordlistFileIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	first, err := s.RegisterWordlistFile("dup.txt", "test")
	if err != nil {
		t.Fatalf("RegisterWordlistFile: %v", err)
	}
	second, err := s.RegisterWordlistFile("dup.txt", "test")
	if err != nil {
		t.Fatalf("RegisterWordlistFile (second): %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected same row id, got %d and %d", first.ID, second.ID)
	}
}
