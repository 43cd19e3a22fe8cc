package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rawblock/decipher-engine/pkg/models"
)

type stubStore struct {
	words      map[string]bool
	nextFileID int64
	files      map[string]models.WordlistFile
	insertErr  error
}

func newStubStore() *stubStore {
	return &stubStore{words: map[string]bool{}, files: map[string]models.WordlistFile{}}
}

func (s *stubStore) AllWords() ([]string, error) {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	return out, nil
}

func (s *stubStore) ContainsWord(word string) (bool, error) {
	return s.words[word], nil
}

func (s *stubStore) RegisterWordlistFile(filename, source string) (models.WordlistFile, error) {
	if f, ok := s.files[filename]; ok {
		return f, nil
	}
	s.nextFileID++
	f := models.WordlistFile{ID: s.nextFileID, Filename: filename, Source: source}
	s.files[filename] = f
	return f, nil
}

func (s *stubStore) InsertWords(fileID int64, words []string) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	for _, w := range words {
		s.words[w] = true
	}
	return nil
}

func TestIndexContainsFallsBackToDBWhenEmpty(t *testing.T) {
	store := newStubStore()
	idx := NewIndex(filepath.Join(t.TempDir(), "bloom.dat"), store)

	if idx.Contains("anything") {
		t.Error("expected no membership with an empty store")
	}
}

func TestIndexContainsAfterLazyLoad(t *testing.T) {
	store := newStubStore()
	store.words["flag"] = true
	idx := NewIndex(filepath.Join(t.TempDir(), "bloom.dat"), store)

	if !idx.Contains("flag") {
		t.Error("expected flag to be a member")
	}
	if idx.Contains("nonmember") {
		t.Error("expected nonmember to be absent")
	}
}

func TestIndexRebuildPicksUpNewWords(t *testing.T) {
	store := newStubStore()
	idx := NewIndex(filepath.Join(t.TempDir(), "bloom.dat"), store)

	idx.Contains("seed") // forces the initial (empty) load
	store.words["late"] = true
	idx.Rebuild()

	if !idx.Contains("late") {
		t.Error("expected Rebuild to surface a word added after the first load")
	}
}

func TestSaveAndLoadFilterFileRoundTrip(t *testing.T) {
	store := newStubStore()
	store.words["alpha"] = true
	store.words["beta"] = true
	path := filepath.Join(t.TempDir(), "bloom.dat")

	idx := NewIndex(path, store)
	idx.Contains("alpha") // triggers load + persist

	reloaded, err := loadFilterFile(path)
	if err != nil {
		t.Fatalf("loadFilterFile: %v", err)
	}
	if !reloaded.Contains(wordHash("alpha")) {
		t.Error("expected reloaded filter to contain alpha")
	}
}

func TestIngestFileRegistersAndInsertsWords(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "seed.txt")
	if err := writeLines(listPath, []string{"flag", "", "  secret  ", "flag"}); err != nil {
		t.Fatalf("writeLines: %v", err)
	}

	store := newStubStore()
	idx := NewIndex(filepath.Join(dir, "bloom.dat"), store)
	ing := NewIngester(store, idx)

	record, err := ing.IngestFile(listPath)
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	if record.Filename != "seed.txt" {
		t.Errorf("Filename = %q, want seed.txt", record.Filename)
	}
	if !store.words["flag"] || !store.words["secret"] {
		t.Errorf("expected both words ingested, got %v", store.words)
	}
	if !idx.Contains("secret") {
		t.Error("expected the index to be rebuilt with the ingested words")
	}
}

func TestIngestFileMissingPathErrors(t *testing.T) {
	store := newStubStore()
	ing := NewIngester(store, nil)

	if _, err := ing.IngestFile(filepath.Join(t.TempDir(), "does-not-exist.txt")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestIngestFilePropagatesInsertError(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "seed.txt")
	if err := writeLines(listPath, []string{"flag"}); err != nil {
		t.Fatalf("writeLines: %v", err)
	}

	store := newStubStore()
	store.insertErr = errors.New("disk full")
	ing := NewIngester(store, nil)

	if _, err := ing.IngestFile(listPath); err == nil {
		t.Fatal("expected InsertWords error to propagate")
	}
}

func writeLines(path string, lines []string) error {
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
