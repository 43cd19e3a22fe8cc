package search

import (
	"testing"

	"github.com/rawblock/decipher-engine/pkg/models"
)

func TestFrontierPopsLowestFFirst(t *testing.T) {
	f := newFrontier()
	f.push(&Node{Text: "expensive", G: 10, H: 10})
	f.push(&Node{Text: "cheap", G: 1, H: 1})
	f.push(&Node{Text: "mid", G: 5, H: 5})

	var order []string
	for f.Len() > 0 {
		order = append(order, f.pop().Text)
	}

	want := []string{"cheap", "mid", "expensive"}
	for i, w := range want {
		if order[i] != w {
			t.Errorf("pop order[%d] = %q, want %q (full order %v)", i, order[i], w, order)
		}
	}
}

func TestFrontierBreaksTiesOnShallowerPath(t *testing.T) {
	f := newFrontier()
	f.push(&Node{Text: "deep", G: 1, H: 1, Path: make([]models.DecodeOutcome, 3)})
	f.push(&Node{Text: "shallow", G: 1, H: 1, Path: make([]models.DecodeOutcome, 1)})

	first := f.pop()
	if first.Text != "shallow" {
		t.Errorf("expected shallower path to pop first, got %q", first.Text)
	}
}
