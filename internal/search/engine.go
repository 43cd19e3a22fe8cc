package search

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rawblock/decipher-engine/internal/checker"
	"github.com/rawblock/decipher-engine/internal/decoder"
	"github.com/rawblock/decipher-engine/internal/fanout"
	"github.com/rawblock/decipher-engine/internal/heuristic"
	"github.com/rawblock/decipher-engine/pkg/models"
)

// ErrExhausted is returned when the frontier empties without the checker
// ever reporting a positive identification.
var ErrExhausted = errors.New("search: frontier exhausted without a match")

// ErrTimeout is returned when the configured deadline passes before a
// match is found (and, in TopResults mode, before any hits were
// collected — otherwise the hits collected so far are returned instead).
var ErrTimeout = errors.New("search: deadline exceeded")

// maxDepth bounds how many decoders may be chained on one path. Realistic
// chains top out around three (Reverse-of-Base64-of-ROT13-like cases);
// six gives headroom without letting a pathological input blow up the
// frontier.
const maxDepth = 6

// notDecodableCacheSize bounds the memo of candidates already confirmed
// as dead ends by heuristic.CantBeDecoded. Sibling branches across
// different PerformCracking calls often re-derive the same noisy
// intermediate string (e.g. a fixed garbage tail repeated in a batch of
// similar inputs); memoizing the verdict skips re-running the length,
// non-printable-ratio and quality checks for a candidate this engine has
// already ruled out.
const notDecodableCacheSize = 4096

// Engine runs the A* best-first search over a fixed decoder registry.
type Engine struct {
	registry     *decoder.Registry
	encoderExec  *fanout.Executor
	cipherExec   *fanout.Executor
	tracker      *heuristic.SuccessTracker
	notDecodable *lru.Cache[string, struct{}]
}

// NewEngine builds an engine over registry, with its own success-rate
// tracker and not-decodable memo shared across every PerformCracking
// call issued from it. The registry is split once into an encoder
// executor and a cipher executor, since every node expansion runs the
// encoder group first (and checks it for success) before falling back to
// the cipher group.
func NewEngine(registry *decoder.Registry) *Engine {
	notDecodable, err := lru.New[string, struct{}](notDecodableCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which never
		// happens with the constant above.
		panic(err)
	}
	return &Engine{
		registry:     registry,
		encoderExec:  fanout.New(registry.Encoders()),
		cipherExec:   fanout.New(registry.Ciphers()),
		tracker:      heuristic.NewSuccessTracker(),
		notDecodable: notDecodable,
	}
}

// PerformCracking runs the search: it checks input itself against the
// checker chain first (the plaintext-passthrough case), then explores
// chained decodings in A* order until a match is found, the deadline
// passes, or the frontier is exhausted.
func (e *Engine) PerformCracking(ctx context.Context, cfg models.Config, input string, checkers []checker.Checker) (models.DecoderResult, error) {
	start := time.Now()
	deadline := start.Add(time.Duration(cfg.TimeoutSeconds) * time.Second)

	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	sess := newSession(cfg, deadline, checkers)

	// Plaintext passthrough: the input may already be the answer.
	if res := sess.Checker().CheckText(input); res.IsIdentified {
		return models.DecoderResult{
			Text:      []string{input},
			Path:      nil,
			ElapsedMS: time.Since(start).Milliseconds(),
		}, nil
	}

	frontier := newFrontier()
	frontier.push(&Node{Text: input, G: 0, H: 0})
	visited := map[string]struct{}{input: {}}

	var collected []models.DecoderResult

	for frontier.Len() > 0 {
		now := time.Now()
		if ctx.Err() != nil || now.After(deadline) {
			break
		}

		node := frontier.pop()
		if len(node.Path) >= maxDepth {
			continue
		}

		result, matched := e.expandNode(ctx, sess, node, frontier, visited, start)
		if !matched {
			continue
		}

		if !sess.accumulating(time.Now()) {
			cancel()
			return result, nil
		}
		collected = append(collected, result)
	}

	if len(collected) > 0 {
		return mergeResults(collected, time.Since(start)), nil
	}
	if ctx.Err() != nil {
		return models.DecoderResult{}, ErrTimeout
	}
	return models.DecoderResult{}, ErrExhausted
}

// expandNode runs the encoder group against node.Text, checking it for a
// success before ever invoking the cipher group (the encoder group is
// cheap and high-value, so a cipher pass is only worth paying for once
// the cheap pass has failed). Whichever group(s) ran, every candidate
// they produced becomes either the confirmed plaintext or a new frontier
// node carrying the other candidates from this same expansion as its
// step's siblings.
func (e *Engine) expandNode(ctx context.Context, sess *session, node *Node, frontier *frontier, visited map[string]struct{}, start time.Time) (models.DecoderResult, bool) {
	outcomes := e.encoderExec.Run(ctx, node.Text, sess.Checker())
	for _, o := range outcomes {
		e.tracker.Record(o.DecoderName, o.Success)
	}

	if _, ok := fanout.FirstSuccess(outcomes); !ok {
		cipherOutcomes := e.cipherExec.Run(ctx, node.Text, sess.Checker())
		for _, o := range cipherOutcomes {
			e.tracker.Record(o.DecoderName, o.Success)
		}
		outcomes = append(outcomes, cipherOutcomes...)
	}

	stepIndex := len(node.Path)
	const visitedPruneThreshold, visitedPruneMaxLen = 10000, 100

	if winner, ok := fanout.FirstSuccess(outcomes); ok {
		candidate := matchedCandidate(winner)
		siblings := candidateBranches(outcomes, stepIndex, winner.DecoderName, candidate)
		result := models.DecoderResult{
			Text:      []string{candidate},
			Path:      appendStep(node.Path, singleCandidate(winner, candidate)),
			ElapsedMS: time.Since(start).Milliseconds(),
			Branches:  append(flattenBranches(node.Siblings), siblings...),
		}
		return result, true
	}

	for _, outcome := range outcomes {
		for _, candidate := range outcome.UnencryptedText {
			if e.notDecodable.Contains(candidate) {
				continue
			}
			if heuristic.CantBeDecoded(candidate) {
				e.notDecodable.Add(candidate, struct{}{})
				continue
			}
			if _, seen := visited[candidate]; seen {
				continue
			}
			visited[candidate] = struct{}{}
			if len(visited) > visitedPruneThreshold {
				// High-water-mark pass: drop long strings, the ones least
				// likely to lie on a solution path, to bound memory.
				for s := range visited {
					if len(s) > visitedPruneMaxLen {
						delete(visited, s)
					}
				}
			}

			kind := e.kindOf(outcome.DecoderName)
			isFirst := stepIndex == 0
			repeatsPrevEncoder := false
			if !isFirst {
				prev := node.Path[stepIndex-1]
				repeatsPrevEncoder = kind == models.KindEncoder && prev.DecoderName == outcome.DecoderName
			}
			cipherPosition := 0
			if kind == models.KindCipher {
				cipherPosition = heuristic.PriorCipherCount(node.Path, e.kindOf) + 1
			}
			g := node.G + heuristic.StepCost(kind, e.registry.Popularity(outcome.DecoderName), isFirst, repeatsPrevEncoder, cipherPosition)
			h := heuristic.H(candidate, outcome.DecoderName, e.tracker)

			siblings := candidateBranches(outcomes, stepIndex, outcome.DecoderName, candidate)

			frontier.push(&Node{
				Text:     candidate,
				Path:     appendStep(node.Path, singleCandidate(outcome, candidate)),
				Siblings: appendSiblings(node.Siblings, siblings),
				G:        g,
				H:        h,
			})
		}
	}

	return models.DecoderResult{}, false
}

func (e *Engine) kindOf(name string) models.Kind {
	if d, ok := e.registry.Lookup(name); ok {
		return d.Describe().Kind
	}
	return models.KindEncoder
}

// matchedCandidate picks the plaintext to report for a successful
// outcome: the specific candidate the decoder recorded as matched.
// Falling back to the first entry only guards against a decoder that
// forgot to set it; every decoder in this registry sets MatchedText at
// the point it finds a hit.
func matchedCandidate(outcome models.DecodeOutcome) string {
	if outcome.MatchedText != "" {
		return outcome.MatchedText
	}
	if len(outcome.UnencryptedText) > 0 {
		return outcome.UnencryptedText[0]
	}
	return ""
}

// candidateBranches converts every candidate across outcomes into a
// Branch record at stepIndex, excluding the one candidate
// (excludeDecoder, excludeText) the caller is keeping for itself — either
// the winning step or the frontier child being pushed.
func candidateBranches(outcomes []models.DecodeOutcome, stepIndex int, excludeDecoder, excludeText string) []models.Branch {
	var out []models.Branch
	for _, o := range outcomes {
		for _, c := range o.UnencryptedText {
			if o.DecoderName == excludeDecoder && c == excludeText {
				continue
			}
			out = append(out, models.Branch{
				StepIndex:   stepIndex,
				DecoderName: o.DecoderName,
				ChildText:   c,
			})
		}
	}
	return out
}

func flattenBranches(siblings [][]models.Branch) []models.Branch {
	var out []models.Branch
	for _, step := range siblings {
		out = append(out, step...)
	}
	return out
}

func appendSiblings(existing [][]models.Branch, step []models.Branch) [][]models.Branch {
	out := make([][]models.Branch, len(existing), len(existing)+1)
	copy(out, existing)
	return append(out, step)
}

func singleCandidate(outcome models.DecodeOutcome, candidate string) models.DecodeOutcome {
	step := outcome
	step.UnencryptedText = []string{candidate}
	return step
}

func appendStep(path []models.DecodeOutcome, step models.DecodeOutcome) []models.DecodeOutcome {
	out := make([]models.DecodeOutcome, len(path), len(path)+1)
	copy(out, path)
	return append(out, step)
}

// mergeResults flattens a TopResults run's collected hits into one
// DecoderResult: every distinct plaintext found, and the path and
// branches of whichever hit was found first (the rest remain
// reconstructible from the caller's own record of collected results if
// needed).
func mergeResults(collected []models.DecoderResult, elapsed time.Duration) models.DecoderResult {
	texts := make([]string, 0, len(collected))
	seen := make(map[string]struct{})
	for _, r := range collected {
		for _, t := range r.Text {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			texts = append(texts, t)
		}
	}
	return models.DecoderResult{
		Text:      texts,
		Path:      collected[0].Path,
		Branches:  collected[0].Branches,
		ElapsedMS: elapsed.Milliseconds(),
	}
}
