package checker

import (
	"sync"
	"time"

	"github.com/rawblock/decipher-engine/pkg/models"
)

// Athena composes several backends and returns the first positive result,
// in the order the backends were given. This is the default policy: stop
// searching the instant any checker is satisfied.
type Athena struct {
	checkers []Checker
}

func NewAthena(checkers ...Checker) *Athena {
	return &Athena{checkers: checkers}
}

func (a *Athena) Name() string { return "Athena" }

func (a *Athena) CheckText(text string) models.CheckerResult {
	for _, c := range a.checkers {
		if res := c.CheckText(text); res.IsIdentified {
			return res
		}
	}
	return notIdentified(a.Name())
}

// WaitAthena wraps an Athena but does not let a positive result end the
// search early: it records every hit and lets the caller keep searching
// until a deadline, so a run can report several plausible plaintexts
// instead of only the first (used when Config.TopResults is set).
//
// The accumulation bucket is owned per search session (one WaitAthena per
// PerformCracking call), not process-wide — two concurrent crack requests
// must not see each other's hits.
type WaitAthena struct {
	inner    *Athena
	deadline time.Time

	mu      sync.Mutex
	results []models.CheckerResult
}

func NewWaitAthena(deadline time.Time, checkers ...Checker) *WaitAthena {
	return &WaitAthena{inner: NewAthena(checkers...), deadline: deadline}
}

func (w *WaitAthena) Name() string { return "WaitAthena" }

// CheckText always runs the full checker chain and records any hit; it
// never suppresses the identified result from the caller, it only means
// the caller (the search session) is free to keep exploring afterward.
func (w *WaitAthena) CheckText(text string) models.CheckerResult {
	res := w.inner.CheckText(text)
	if res.IsIdentified {
		w.mu.Lock()
		w.results = append(w.results, res)
		w.mu.Unlock()
	}
	return res
}

// Expired reports whether now has passed the accumulation deadline.
func (w *WaitAthena) Expired(now time.Time) bool {
	return !now.Before(w.deadline)
}

// Results returns every hit recorded so far, in discovery order.
func (w *WaitAthena) Results() []models.CheckerResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.CheckerResult, len(w.results))
	copy(out, w.results)
	return out
}
