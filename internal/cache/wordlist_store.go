package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rawblock/decipher-engine/pkg/models"
)

// RegisterWordlistFile inserts or, if filename already exists, returns
// the existing wordlist_files row — ingestion is idempotent by filename.
func (s *Store) RegisterWordlistFile(filename, source string) (models.WordlistFile, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO wordlist_files (filename, source, word_count, enabled, added_at)
		 VALUES (?, ?, 0, 1, ?)`,
		filename, source, time.Now().Format(timeLayout),
	)
	if err != nil {
		return models.WordlistFile{}, fmt.Errorf("cache: register wordlist file: %w", err)
	}
	id, err := res.LastInsertId()
	affected, raErr := res.RowsAffected()
	if err != nil || raErr != nil || affected == 0 || id == 0 {
		// Row already existed (the insert was ignored, so LastInsertId
		// still holds some earlier insert's rowid); look it up.
		row := s.db.QueryRow(`SELECT id FROM wordlist_files WHERE filename = ?`, filename)
		if scanErr := row.Scan(&id); scanErr != nil {
			return models.WordlistFile{}, fmt.Errorf("cache: look up existing wordlist file: %w", scanErr)
		}
	}
	return s.WordlistFile(id)
}

// WordlistFile fetches one wordlist_files row by id.
func (s *Store) WordlistFile(id int64) (models.WordlistFile, error) {
	row := s.db.QueryRow(
		`SELECT id, filename, source, word_count, enabled, added_at FROM wordlist_files WHERE id = ?`, id,
	)
	var f models.WordlistFile
	var enabled int
	var addedAt string
	if err := row.Scan(&f.ID, &f.Filename, &f.Source, &f.WordCount, &enabled, &addedAt); err != nil {
		return models.WordlistFile{}, fmt.Errorf("cache: fetch wordlist file %d: %w", id, err)
	}
	f.Enabled = enabled != 0
	if t, err := time.Parse(timeLayout, addedAt); err == nil {
		f.AddedAt = t
	}
	return f, nil
}

// EnabledWordlistFiles lists every wordlist_files row with enabled = 1.
func (s *Store) EnabledWordlistFiles() ([]models.WordlistFile, error) {
	rows, err := s.db.Query(
		`SELECT id, filename, source, word_count, enabled, added_at FROM wordlist_files WHERE enabled = 1`,
	)
	if err != nil {
		return nil, fmt.Errorf("cache: list enabled wordlist files: %w", err)
	}
	defer rows.Close()

	var out []models.WordlistFile
	for rows.Next() {
		var f models.WordlistFile
		var enabled int
		var addedAt string
		if err := rows.Scan(&f.ID, &f.Filename, &f.Source, &f.WordCount, &enabled, &addedAt); err != nil {
			return nil, fmt.Errorf("cache: scan wordlist file: %w", err)
		}
		f.Enabled = enabled != 0
		if t, err := time.Parse(timeLayout, addedAt); err == nil {
			f.AddedAt = t
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// InsertWords bulk-inserts words belonging to fileID inside one
// transaction, and updates word_count on wordlist_files to match.
func (s *Store) InsertWords(fileID int64, words []string) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("cache: begin word insert: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`INSERT INTO wordlist (file_id, word) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("cache: prepare word insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err = stmt.Exec(fileID, w); err != nil {
			return fmt.Errorf("cache: insert word: %w", err)
		}
	}

	if _, err = tx.Exec(
		`UPDATE wordlist_files SET word_count = word_count + ? WHERE id = ?`, len(words), fileID,
	); err != nil {
		return fmt.Errorf("cache: update word count: %w", err)
	}

	return tx.Commit()
}

// AllWords streams every word from every enabled wordlist file, used to
// build the bloom filter at startup.
func (s *Store) AllWords() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT w.word FROM wordlist w
		 JOIN wordlist_files f ON f.id = w.file_id
		 WHERE f.enabled = 1`,
	)
	if err != nil {
		return nil, fmt.Errorf("cache: list all words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("cache: scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// ContainsWord does an exact DB lookup, used as the bloom filter's
// fallback on a positive (possibly false-positive) membership test.
func (s *Store) ContainsWord(word string) (bool, error) {
	row := s.db.QueryRow(`SELECT 1 FROM wordlist WHERE word = ? LIMIT 1`, word)
	var one int
	err := row.Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: contains word: %w", err)
	}
	return true, nil
}
