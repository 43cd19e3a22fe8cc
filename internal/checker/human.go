package checker

import "github.com/rawblock/decipher-engine/pkg/models"

// Confirmer asks a human to accept or reject a candidate plaintext and
// blocks until they answer or the implementation times out. The websocket
// hub in internal/api implements this by pushing a confirmation prompt to
// connected clients and waiting on a per-token reply channel.
type Confirmer interface {
	Confirm(candidate models.CheckerResult) bool
}

// HumanChecker gates an inner checker's positive results behind a human
// confirmation step (enabled via Config.HumanCheckerOn). A rejected
// candidate is reported as not identified so the search keeps looking
// rather than terminating on a false positive.
type HumanChecker struct {
	inner     Checker
	confirmer Confirmer
}

func NewHumanChecker(inner Checker, confirmer Confirmer) *HumanChecker {
	return &HumanChecker{inner: inner, confirmer: confirmer}
}

func (h *HumanChecker) Name() string { return "Human Checker" }

func (h *HumanChecker) CheckText(text string) models.CheckerResult {
	res := h.inner.CheckText(text)
	if !res.IsIdentified {
		return res
	}
	if h.confirmer == nil || h.confirmer.Confirm(res) {
		return res
	}
	return notIdentified(h.Name())
}
