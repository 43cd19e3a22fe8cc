// Package models holds the data types shared across the decoding engine:
// decoder descriptors and outcomes, checker results, cache rows, and the
// top-level result returned to API/CLI callers.
package models

import "time"

// Kind classifies a decoder as cheap/chainable (Encoder) or rare-in-
// composition (Cipher). It is a required field on Descriptor rather than
// a loose tag string, so the registry split used by the fan-out executor
// and the cost model (internal/heuristic) cannot silently misclassify a
// decoder.
type Kind string

const (
	KindEncoder Kind = "encoder"
	KindCipher  Kind = "cipher"
)

// Descriptor is the static metadata a decoder exposes via Describe().
type Descriptor struct {
	Name        string   `json:"name"`
	Kind        Kind     `json:"kind"`
	Tags        []string `json:"tags"`
	Popularity  float64  `json:"popularity"` // [0,1]
	Description string   `json:"description"`
	Link        string   `json:"link"`
}

// DecodeOutcome is the result of a single decoder's Crack call.
type DecodeOutcome struct {
	EncryptedText   string   `json:"encryptedText"`
	UnencryptedText []string `json:"unencryptedText"`
	DecoderName     string   `json:"decoderName"`
	Key             string   `json:"key,omitempty"`
	Success         bool     `json:"success"`
	// MatchedText is the specific entry of UnencryptedText the checker
	// confirmed, set by Crack at the point it finds a hit. Decoders that
	// return several candidates (Caesar's 25 shifts, Base64's encoding
	// variants) don't otherwise record which one matched.
	MatchedText        string `json:"matchedText,omitempty"`
	CheckerName        string `json:"checkerName,omitempty"`
	CheckerDescription string `json:"checkerDescription,omitempty"`
}

// CheckerResult is the uniform answer every checker variant returns.
type CheckerResult struct {
	IsIdentified bool   `json:"isIdentified"`
	Text         string `json:"text"`
	CheckerName  string `json:"checkerName"`
	Description  string `json:"description"`
	Link         string `json:"link,omitempty"`
}

// DecoderResult is the top-level payload returned by Engine.PerformCracking.
// ElapsedMS and CacheHit are included because they're cheap to carry and
// useful to API/CLI consumers for reporting.
type DecoderResult struct {
	Text      []string        `json:"text"`
	Path      []DecodeOutcome `json:"path"`
	ElapsedMS int64           `json:"elapsedMs"`
	CacheHit  bool            `json:"cacheHit"`
	// Branches records the non-winning sibling candidates produced
	// alongside each step of the winning path, keyed by step index, for
	// internal/cache's branches table (the tree-view data model). Not
	// serialized to API/CLI consumers — ParentCacheID is only known once
	// the caller has persisted the winning entry and assigned it a UUID.
	Branches []Branch `json:"-"`
}

// CacheEntry mirrors the `cache` table schema.
type CacheEntry struct {
	UUID             string    `json:"uuid"`
	EncodedText      string    `json:"encodedText"`
	DecodedText      string    `json:"decodedText"`
	Path             string    `json:"path"` // JSON-serialized []DecodeOutcome
	Successful       bool      `json:"successful"`
	ExecutionTimeMS  int64     `json:"executionTimeMs"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Branch mirrors the `branches` table: an alternative child explored at
// some step index on an ancestor of the winning path, kept for tree-view
// UIs outside this module's scope.
type Branch struct {
	ParentCacheID string `json:"parentCacheId"`
	StepIndex     int    `json:"stepIndex"`
	DecoderName   string `json:"decoderName"`
	ChildText     string `json:"childText"`
	Successful    bool   `json:"successful"`
	ChildCacheID  string `json:"childCacheId,omitempty"`
}

// WordlistFile catalogs an ingested corpus (the `wordlist_files` table).
type WordlistFile struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	Source    string    `json:"source"`
	WordCount int       `json:"wordCount"`
	Enabled   bool      `json:"enabled"`
	AddedAt   time.Time `json:"addedAt"`
}

// ColorScheme is the 5-named-RGB-triple map the CLI/TUI consumes. The core
// never interprets these values; it only round-trips them through Config.
type ColorScheme map[string][3]uint8

// AIConfig groups the optional LLM add-on fields. The core engine never
// calls out to an LLM itself; these fields exist only so an external
// add-on has somewhere to read its settings from and cache through.
type AIConfig struct {
	Enabled bool   `json:"aiEnabled" toml:"ai_enabled"`
	Model   string `json:"aiModel,omitempty" toml:"ai_model"`
	APIKey  string `json:"-" toml:"ai_api_key"`
}

// Config is the engine's external configuration surface.
type Config struct {
	TimeoutSeconds  int         `json:"timeoutSeconds" toml:"timeout_seconds"`
	Regex           string      `json:"regex,omitempty" toml:"regex"`
	Wordlist        []string    `json:"wordlist,omitempty" toml:"wordlist"`
	HumanCheckerOn  bool        `json:"humanCheckerOn" toml:"human_checker_on"`
	Verbose         int         `json:"verbose" toml:"verbose"` // 0..3
	APIMode         bool        `json:"apiMode" toml:"api_mode"`
	TopResults      bool        `json:"topResults" toml:"top_results"` // selects WaitAthena
	ColorScheme     ColorScheme `json:"colorScheme,omitempty" toml:"color_scheme"`
	AI              AIConfig    `json:"ai" toml:"ai"`
}
