package search

import (
	"time"

	"github.com/rawblock/decipher-engine/internal/checker"
	"github.com/rawblock/decipher-engine/pkg/models"
)

// session owns the checker policy for exactly one PerformCracking call.
// When Config.TopResults is set it uses a WaitAthena so several
// plausible plaintexts can be collected instead of stopping at the
// first; the accumulation bucket is therefore per-session, never shared
// across concurrent crack requests.
type session struct {
	policy     checker.Checker
	waitAthena *checker.WaitAthena
}

func newSession(cfg models.Config, deadline time.Time, checkers []checker.Checker) *session {
	if cfg.TopResults {
		wa := checker.NewWaitAthena(deadline, checkers...)
		return &session{policy: wa, waitAthena: wa}
	}
	return &session{policy: checker.NewAthena(checkers...)}
}

func (s *session) Checker() checker.Checker { return s.policy }

// accumulating reports whether this session is still collecting
// additional hits (TopResults mode) rather than stopping at the first.
func (s *session) accumulating(now time.Time) bool {
	return s.waitAthena != nil && !s.waitAthena.Expired(now)
}

func (s *session) topResults() []models.CheckerResult {
	if s.waitAthena == nil {
		return nil
	}
	return s.waitAthena.Results()
}
