// Package wordlist provides a fast, approximate membership index over
// ingested wordlist corpora: a bloom filter in front of the authoritative
// SQLite table, so the hot path (checking whether a decode candidate is
// a known word) almost never touches disk.
package wordlist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/holiman/bloomfilter/v2"
)

// falsePositiveRate bounds how often Contains can wrongly claim a
// non-member is present; a wrong "maybe" here just costs one extra DB
// lookup, so this favors a small filter over a perfectly tight one.
const falsePositiveRate = 0.01

// DBBackend is the authoritative store the bloom filter sits in front of.
// internal/cache.Store implements this.
type DBBackend interface {
	AllWords() ([]string, error)
	ContainsWord(word string) (bool, error)
}

// Index is a bloom-filter-accelerated membership test over every word in
// every enabled wordlist file. It loads lazily and only once per process
// (via sync.Once), the first time Contains is called, rather than paying
// the build cost at startup when a crack request might not even use a
// wordlist checker.
type Index struct {
	path string
	db   DBBackend

	once   sync.Once
	filter *bloomfilter.Filter
	loadErr error
}

// NewIndex builds an index that persists its filter to path (typically
// ~/.ciphey/wordlist_bloom.dat) and falls back to db on a cold cache or a
// corrupted file.
func NewIndex(path string, db DBBackend) *Index {
	return &Index{path: path, db: db}
}

// Contains reports whether word is (probably, for the bloom path; always,
// for the DB fallback) a member of some enabled wordlist.
func (idx *Index) Contains(word string) bool {
	idx.once.Do(idx.load)

	if idx.filter == nil {
		// Bloom filter unavailable (corrupt file, build failure): degrade
		// to the authoritative but slower DB lookup rather than always
		// answering false.
		ok, err := idx.db.ContainsWord(word)
		if err != nil {
			log.Printf("wordlist: db fallback lookup failed: %v", err)
			return false
		}
		return ok
	}

	if !idx.filter.Contains(wordHash(word)) {
		return false
	}
	// Bloom filters never false-negative but do false-positive; confirm
	// against the DB before reporting a hit.
	ok, err := idx.db.ContainsWord(word)
	if err != nil {
		log.Printf("wordlist: confirmation lookup failed: %v", err)
		return false
	}
	return ok
}

func (idx *Index) load() {
	if f, err := loadFilterFile(idx.path); err == nil {
		idx.filter = f
		return
	}

	words, err := idx.db.AllWords()
	if err != nil {
		idx.loadErr = fmt.Errorf("wordlist: load words from db: %w", err)
		log.Printf("%v", idx.loadErr)
		return
	}
	if len(words) == 0 {
		return
	}

	filter, err := bloomfilter.NewOptimal(uint64(len(words)), falsePositiveRate)
	if err != nil {
		idx.loadErr = fmt.Errorf("wordlist: build filter: %w", err)
		log.Printf("%v", idx.loadErr)
		return
	}
	for _, w := range words {
		filter.Add(wordHash(w))
	}
	idx.filter = filter

	if err := saveFilterFile(idx.path, filter); err != nil {
		log.Printf("wordlist: persist filter: %v", err)
	}
}

// Rebuild forces a fresh load from the DB, discarding any cached filter.
// Called after ingesting new words so Contains reflects them immediately.
func (idx *Index) Rebuild() {
	// Delete the persisted filter first, or load would read it back.
	if err := os.Remove(idx.path); err != nil && !os.IsNotExist(err) {
		log.Printf("wordlist: remove stale filter: %v", err)
	}
	idx.once = sync.Once{}
	idx.filter = nil
	idx.once.Do(idx.load)
}

func wordHash(word string) hash.Hash64 {
	h := fnv.New64a()
	h.Write([]byte(word))
	return h
}

// saveFilterFile writes a 4-byte big-endian length prefix followed by the
// filter's marshaled bytes, so loadFilterFile can detect a truncated or
// otherwise corrupted file and fall back to rebuilding from the DB
// instead of panicking on a bad unmarshal.
func saveFilterFile(path string, f *bloomfilter.Filter) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := f.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal filter: %w", err)
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, uint32(len(data))); err != nil {
		return fmt.Errorf("write length prefix: %w", err)
	}
	buf.Write(data)

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func loadFilterFile(path string) (*bloomfilter.Filter, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(raw)
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, fmt.Errorf("read length prefix: %w", err)
	}
	if int(length) != r.Len() {
		return nil, fmt.Errorf("wordlist: filter file corrupt: length prefix %d does not match remaining %d bytes", length, r.Len())
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read filter body: %w", err)
	}

	f := new(bloomfilter.Filter)
	if err := f.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("unmarshal filter: %w", err)
	}
	return f, nil
}
