// Package decoder implements the registry of reversible transformations
// (C1 in the design). A decoder exposes static metadata via Describe and
// a pure, deterministic Crack that never panics on malformed input — an
// unsuccessful attempt is an empty DecodeOutcome, not an error.
package decoder

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rawblock/decipher-engine/internal/checker"
	"github.com/rawblock/decipher-engine/pkg/models"
)

// Decoder is the contract every transformation implements. Crack must be
// side-effect free (besides consulting process-wide config such as a
// configured regex) and must never panic: invalid input simply yields a
// DecodeOutcome with no candidates.
type Decoder interface {
	Describe() models.Descriptor
	Crack(input string, chk checker.Checker) models.DecodeOutcome
}

// Registry catalogs decoders by name and supports the encoder/cipher split
// the fan-out executor and search engine rely on.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]Decoder
	order    []string // insertion order, used to make iteration deterministic
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Decoder)}
}

// Register adds a decoder. It panics on a duplicate name — this is a
// startup-time programming error, not a runtime condition, since decoder
// names must stay unique within the registry.
func (r *Registry) Register(d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := d.Describe().Name
	if name == "" {
		panic("decoder: Describe().Name must not be empty")
	}
	if _, exists := r.byName[name]; exists {
		panic(fmt.Sprintf("decoder: duplicate registration for %q", name))
	}
	r.byName[name] = d
	r.order = append(r.order, name)
}

// All returns every registered decoder in registration order.
func (r *Registry) All() []Decoder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Decoder, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Encoders returns only Kind==encoder decoders, in registration order.
func (r *Registry) Encoders() []Decoder {
	return r.filter(models.KindEncoder)
}

// Ciphers returns only Kind==cipher decoders, in registration order.
func (r *Registry) Ciphers() []Decoder {
	return r.filter(models.KindCipher)
}

func (r *Registry) filter(kind models.Kind) []Decoder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Decoder, 0, len(r.order))
	for _, name := range r.order {
		d := r.byName[name]
		if d.Describe().Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Lookup returns a decoder by name, if registered.
func (r *Registry) Lookup(name string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[name]
	return d, ok
}

// Popularity returns a decoder's popularity, or 0 if unknown. Used by the
// cost model so it never needs to import the registry's full Decoder
// interface.
func (r *Registry) Popularity(name string) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.byName[name]; ok {
		return d.Describe().Popularity
	}
	return 0
}

// NewDefault builds the registry shipped with this engine: a short deck of
// encoders and ciphers sufficient to exercise the cost model's encoder and
// cipher branches and the search engine's multi-candidate expansion.
func NewDefault() *Registry {
	r := NewRegistry()
	r.Register(newBase64Decoder())
	r.Register(newHexDecoder())
	r.Register(newBinaryDecoder())
	r.Register(newURLDecoder())
	r.Register(newReverseDecoder())
	r.Register(newCaesarDecoder())
	r.Register(newAtbashDecoder())
	return r
}

// namesSorted returns the names of ds in lexical order, discarding the
// registration order All() preserves. No test in this package calls it.
func namesSorted(ds []Decoder) []string {
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.Describe().Name
	}
	sort.Strings(names)
	return names
}
