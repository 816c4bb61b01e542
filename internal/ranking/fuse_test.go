package ranking

import (
	"math"
	"testing"

	"github.com/cozyhaus/furnish/internal/domain/product"
)

func makeCandidate(t *testing.T, id string, categories ...string) Candidate {
	t.Helper()
	p, err := product.New(id, "Title "+id, "Brand", "desc", 99.0, categories, "", "", "", "")
	if err != nil {
		t.Fatalf("product.New(%s): %v", id, err)
	}
	return Candidate{Product: p}
}

func makeList(t *testing.T, channel string, ids ...string) RankedList {
	t.Helper()
	items := make([]Candidate, len(ids))
	for i, id := range ids {
		items[i] = makeCandidate(t, id)
	}
	return RankedList{Channel: channel, Items: items}
}

func ids(results []Scored) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Product.ID()
	}
	return out
}

func TestFuse_SingleChannelPreservesOrder(t *testing.T) {
	b := makeList(t, "image", "x", "y", "z")

	results := Fuse([]RankedList{{Channel: "text"}, b}, 2, 0)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Product.ID() != "x" || results[1].Product.ID() != "y" {
		t.Errorf("expected [x y], got %v", ids(results))
	}
}

func TestFuse_BothEmpty(t *testing.T) {
	results := Fuse([]RankedList{{Channel: "text"}, {Channel: "image"}}, 5, 0)
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestFuse_NoChannels(t *testing.T) {
	if got := Fuse(nil, 5, 0); len(got) != 0 {
		t.Fatalf("expected 0 results, got %d", len(got))
	}
}

func TestFuse_ZeroK(t *testing.T) {
	a := makeList(t, "text", "a")
	if got := Fuse([]RankedList{a}, 0, 0); len(got) != 0 {
		t.Fatalf("expected 0 results for k=0, got %d", len(got))
	}
}

func TestFuse_NoDuplicates(t *testing.T) {
	a := makeList(t, "text", "a", "b", "c")
	b := makeList(t, "image", "b", "d", "a")

	results := Fuse([]RankedList{a, b}, 10, 0)
	if len(results) != 4 {
		t.Fatalf("expected 4 unique results, got %d", len(results))
	}
	seen := make(map[string]bool)
	for _, r := range results {
		if seen[r.Product.ID()] {
			t.Errorf("duplicate id %s", r.Product.ID())
		}
		seen[r.Product.ID()] = true
	}
}

func TestFuse_TopKLimiting(t *testing.T) {
	a := makeList(t, "text", "a", "b", "c")
	b := makeList(t, "image", "d", "e", "f")

	results := Fuse([]RankedList{a, b}, 3, 0)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
}

func TestFuse_KExceedsCandidates(t *testing.T) {
	a := makeList(t, "text", "a", "b")

	results := Fuse([]RankedList{a}, 100, 0)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestFuse_ScoreFormula(t *testing.T) {
	a := makeList(t, "text", "a")
	b := makeList(t, "image", "a")

	results := Fuse([]RankedList{a, b}, 10, 0)
	// rank 0 in both channels with c=0: 1/1 + 1/1 = 2
	if math.Abs(results[0].Score-2.0) > 1e-12 {
		t.Errorf("expected score 2.0, got %f", results[0].Score)
	}
}

func TestFuse_SmoothingConstant(t *testing.T) {
	a := makeList(t, "text", "a")
	b := makeList(t, "image", "a")

	results := Fuse([]RankedList{a, b}, 10, 60)
	// rank 0 in both with c=60: 2/61
	expected := 2.0 / 61.0
	if math.Abs(results[0].Score-expected) > 1e-12 {
		t.Errorf("expected score %f, got %f", expected, results[0].Score)
	}
}

func TestFuse_MultiChannelOutranksSingle(t *testing.T) {
	a := makeList(t, "text", "a", "b", "c")
	b := makeList(t, "image", "c", "b", "d")

	results := Fuse([]RankedList{a, b}, 10, 0)

	scores := make(map[string]float64)
	for _, r := range results {
		scores[r.Product.ID()] = r.Score
	}

	// "b": 1/2 + 1/2 = 1.0, "c": 1/3 + 1/1 = 1.333
	// Both must score at least their best single-channel term.
	if scores["b"] < 0.5 {
		t.Errorf("overlap candidate 'b' score %f below single-channel term", scores["b"])
	}
	if scores["c"] < 1.0 {
		t.Errorf("overlap candidate 'c' score %f below single-channel term", scores["c"])
	}
	if scores["c"] <= scores["a"] {
		t.Errorf("two-channel 'c' (%f) should outrank single-channel 'a' (%f)", scores["c"], scores["a"])
	}
}

func TestFuse_SortedDescending(t *testing.T) {
	a := makeList(t, "text", "a", "b", "c", "d")
	b := makeList(t, "image", "c", "e", "a")

	results := Fuse([]RankedList{a, b}, 10, 0)
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted: %f > %f at index %d",
				results[i].Score, results[i-1].Score, i)
		}
	}
}

func TestFuse_DeterministicTieBreak(t *testing.T) {
	// "a" and "x" both score 1/1; "a" is in the earlier channel and must win.
	a := makeList(t, "text", "a", "b")
	b := makeList(t, "image", "x", "y")

	for run := 0; run < 20; run++ {
		results := Fuse([]RankedList{a, b}, 10, 0)
		want := []string{"a", "x", "b", "y"}
		got := ids(results)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("run %d: expected %v, got %v", run, want, got)
			}
		}
	}
}

func TestFuse_KeepsFirstSeenVector(t *testing.T) {
	vec := []float32{0.1, 0.2}
	a := RankedList{Channel: "text", Items: []Candidate{
		{Product: makeCandidate(t, "a").Product, Vector: vec},
	}}
	b := makeList(t, "image", "a")

	results := Fuse([]RankedList{a, b}, 10, 0)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if len(results[0].Vector) != 2 {
		t.Fatalf("expected vector preserved, got len %d", len(results[0].Vector))
	}
}
