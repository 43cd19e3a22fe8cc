package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rawblock/decipher-engine/pkg/models"
)

// FileStore is the subset of cache.Store ingestion needs, beyond the
// read-only DBBackend the Index already consults.
type FileStore interface {
	DBBackend
	RegisterWordlistFile(filename, source string) (models.WordlistFile, error)
	InsertWords(fileID int64, words []string) error
}

// Ingester loads newline-delimited wordlist files into the DB and keeps
// an Index's bloom filter in sync with what was ingested.
type Ingester struct {
	store FileStore
	index *Index
}

func NewIngester(store FileStore, index *Index) *Ingester {
	return &Ingester{store: store, index: index}
}

// IngestFile reads path line by line, registers it as a wordlist_files
// row (idempotent by filename), inserts every non-empty trimmed line as
// a word, and rebuilds the bloom filter so the new words are immediately
// visible to Contains.
func (ing *Ingester) IngestFile(path string) (models.WordlistFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.WordlistFile{}, fmt.Errorf("wordlist: open %s: %w", path, err)
	}
	defer f.Close()

	filename := filepath.Base(path)
	record, err := ing.store.RegisterWordlistFile(filename, path)
	if err != nil {
		return models.WordlistFile{}, err
	}

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return models.WordlistFile{}, fmt.Errorf("wordlist: scan %s: %w", path, err)
	}

	if len(words) > 0 {
		if err := ing.store.InsertWords(record.ID, words); err != nil {
			return models.WordlistFile{}, err
		}
	}

	if ing.index != nil {
		ing.index.Rebuild()
	}

	record.WordCount += len(words)
	return record, nil
}
