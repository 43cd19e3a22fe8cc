// Package fanout runs every decoder in a registry against one input
// concurrently and collects their outcomes into one slice, with
// cooperative cancellation on the first checker-confirmed success
// (component C4). The shape — one goroutine per unit of work, an atomic
// progress counter, a context checked inside the loop — mirrors the block
// scanner's ScanRange pattern.
package fanout

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rawblock/decipher-engine/internal/checker"
	"github.com/rawblock/decipher-engine/internal/decoder"
	"github.com/rawblock/decipher-engine/pkg/models"
)

// Executor runs a fixed set of decoders against successive inputs. It
// tracks how many Crack calls it has issued and completed in total,
// readable through Issued and Completed.
type Executor struct {
	decoders []decoder.Decoder

	issued atomic.Int64
	done   atomic.Int64
}

// New builds an executor over decoders (typically Registry.Encoders() or
// Registry.Ciphers(), or both concatenated).
func New(decoders []decoder.Decoder) *Executor {
	return &Executor{decoders: decoders}
}

// Issued returns the number of Crack calls started so far.
func (e *Executor) Issued() int64 { return e.issued.Load() }

// Completed returns the number of Crack calls that have returned.
func (e *Executor) Completed() int64 { return e.done.Load() }

// Run applies every decoder to input concurrently and returns their
// outcomes. It launches no new work once ctx is done or once a decoder
// has returned a checker-confirmed success; a decoder that was not
// launched gets an empty outcome. Decoders already running are not
// interrupted, and Run always waits for them before returning.
func (e *Executor) Run(ctx context.Context, input string, chk checker.Checker) []models.DecodeOutcome {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]models.DecodeOutcome, len(e.decoders))

	var wg sync.WaitGroup
	for i, d := range e.decoders {
		select {
		case <-ctx.Done():
			results[i] = models.DecodeOutcome{EncryptedText: input, DecoderName: d.Describe().Name}
			continue
		default:
		}

		wg.Add(1)
		e.issued.Add(1)
		go func(i int, d decoder.Decoder) {
			defer wg.Done()
			defer e.done.Add(1)
			results[i] = d.Crack(input, chk)
			if results[i].Success {
				cancel()
			}
		}(i, d)
	}
	wg.Wait()

	return results
}

// FirstSuccess scans outcomes (typically Run's result) in order and
// returns the first successful one, or the zero value if none of the
// decoders succeeded.
func FirstSuccess(outcomes []models.DecodeOutcome) (models.DecodeOutcome, bool) {
	for _, o := range outcomes {
		if o.Success {
			return o, true
		}
	}
	return models.DecodeOutcome{}, false
}
