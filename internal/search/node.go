// Package search implements the A* best-first engine: a priority queue
// ordered by f = g + h, cycle detection via a visited set, deadline
// enforcement, and cooperative cancellation on first success.
package search

import (
	"container/heap"

	"github.com/rawblock/decipher-engine/pkg/models"
)

// Node is one state in the search frontier: a candidate string reached by
// some chain of decode outcomes, with its accumulated path cost g and
// heuristic estimate h.
type Node struct {
	Text string
	Path []models.DecodeOutcome
	// Siblings holds, for each step already taken to reach this node, the
	// other candidates the fan-out produced at that step but that didn't
	// end up on this node's path — kept so a winning node's full ancestor
	// chain can be persisted as cache branches without parent pointers.
	Siblings [][]models.Branch
	G        float64
	H        float64
}

// F is the A* priority: total estimated cost of a solution routed through
// this node.
func (n Node) F() float64 { return n.G + n.H }

// frontier is a min-heap of *Node ordered by F, breaking ties on a
// shallower path (fewer steps) so the search prefers simpler solutions
// among equally-costed candidates.
type frontier []*Node

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].F() != f[j].F() {
		return f[i].F() < f[j].F()
	}
	return len(f[i].Path) < len(f[j].Path)
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(*Node))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}

// newFrontier returns an initialized empty priority queue.
func newFrontier() *frontier {
	f := &frontier{}
	heap.Init(f)
	return f
}

func (f *frontier) push(n *Node) { heap.Push(f, n) }

func (f *frontier) pop() *Node { return heap.Pop(f).(*Node) }
