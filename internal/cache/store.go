package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rawblock/decipher-engine/pkg/models"
)

const timeLayout = time.RFC3339Nano

// Lookup returns a prior cached result for encodedText, if one exists.
// The cache is an optimization, never a correctness requirement: callers
// should log and continue past an error here rather than fail the crack
// request.
func (s *Store) Lookup(encodedText string) (models.CacheEntry, bool, error) {
	row := s.db.QueryRow(
		`SELECT uuid, encoded_text, decoded_text, path, successful, execution_time_ms, created_at
		 FROM cache WHERE encoded_text = ? ORDER BY created_at DESC LIMIT 1`,
		encodedText,
	)

	var entry models.CacheEntry
	var successful int
	var createdAt string
	err := row.Scan(&entry.UUID, &entry.EncodedText, &entry.DecodedText, &entry.Path, &successful, &entry.ExecutionTimeMS, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CacheEntry{}, false, nil
	}
	if err != nil {
		return models.CacheEntry{}, false, fmt.Errorf("cache: lookup: %w", err)
	}

	entry.Successful = successful != 0
	if t, perr := time.Parse(timeLayout, createdAt); perr == nil {
		entry.CreatedAt = t
	}
	return entry, true, nil
}

// Save persists one search outcome. path is the caller's decode path as
// returned by the search; Save serializes it to JSON as given, without
// re-deriving or filtering it, so the caller controls exactly what gets
// stored.
func (s *Store) Save(encodedText, decodedText string, path []models.DecodeOutcome, successful bool, executionTimeMS int64) (models.CacheEntry, error) {
	pathJSON, err := json.Marshal(path)
	if err != nil {
		return models.CacheEntry{}, fmt.Errorf("cache: marshal path: %w", err)
	}

	entry := models.CacheEntry{
		UUID:            uuid.NewString(),
		EncodedText:     encodedText,
		DecodedText:     decodedText,
		Path:            string(pathJSON),
		Successful:      successful,
		ExecutionTimeMS: executionTimeMS,
		CreatedAt:       time.Now(),
	}

	_, err = s.db.Exec(
		`INSERT INTO cache (uuid, encoded_text, decoded_text, path, successful, execution_time_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.UUID, entry.EncodedText, entry.DecodedText, entry.Path, boolToInt(entry.Successful), entry.ExecutionTimeMS, entry.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return models.CacheEntry{}, fmt.Errorf("cache: save: %w", err)
	}
	return entry, nil
}

// RecordBranch records an alternative child explored at some step on the
// way to parentCacheID's winning path, for tree-view consumers.
func (s *Store) RecordBranch(b models.Branch) error {
	var childID sql.NullString
	if b.ChildCacheID != "" {
		childID = sql.NullString{String: b.ChildCacheID, Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO branches (parent_cache_id, step_index, decoder_name, child_text, successful, child_cache_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.ParentCacheID, b.StepIndex, b.DecoderName, b.ChildText, boolToInt(b.Successful), childID,
	)
	if err != nil {
		return fmt.Errorf("cache: record branch: %w", err)
	}
	return nil
}

// LookupAIResponse returns a cached LLM response for encodedText+model,
// if present. The core engine never calls an LLM itself; this table only
// exists so an external AI add-on has somewhere to cache its answers
// through the same store.
func (s *Store) LookupAIResponse(encodedText, model string) (string, bool, error) {
	row := s.db.QueryRow(
		`SELECT response FROM ai_cache WHERE encoded_text = ? AND model = ? ORDER BY created_at DESC LIMIT 1`,
		encodedText, model,
	)
	var response string
	if err := row.Scan(&response); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("cache: lookup ai response: %w", err)
	}
	return response, true, nil
}

// SaveAIResponse caches an LLM response.
func (s *Store) SaveAIResponse(encodedText, model, response string) error {
	_, err := s.db.Exec(
		`INSERT INTO ai_cache (uuid, encoded_text, model, response, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), encodedText, model, response, time.Now().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("cache: save ai response: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
