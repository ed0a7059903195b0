package engine

import (
	"math"
	"testing"
)

func TestLMRReductionMatchesLogFormula(t *testing.T) {
	cases := []struct{ depth, idx int }{
		{3, 2}, {6, 4}, {10, 10}, {20, 30},
	}
	for _, c := range cases {
		want := int(math.Floor(math.Log(float64(c.depth)) * math.Log(float64(c.idx)) / 2))
		if got := lmrReduction(c.depth, c.idx); got != want {
			t.Errorf("lmrReduction(%d, %d) = %d, want %d", c.depth, c.idx, got, want)
		}
	}
}

func TestLMRReductionZeroAtTableEdge(t *testing.T) {
	if got := lmrReduction(0, 5); got != 0 {
		t.Errorf("lmrReduction(0, 5) = %d, want 0", got)
	}
	if got := lmrReduction(5, 0); got != 0 {
		t.Errorf("lmrReduction(5, 0) = %d, want 0", got)
	}
}

func TestLMRReductionClampsBeyondTableBounds(t *testing.T) {
	inBounds := lmrReduction(MaxLMRDepth-1, MaxLMRMoves-1)
	if got := lmrReduction(MaxLMRDepth+10, MaxLMRMoves+10); got != inBounds {
		t.Errorf("lmrReduction beyond table bounds = %d, want clamp to %d", got, inBounds)
	}
}

func TestLMRReductionMonotonicInMoveIndex(t *testing.T) {
	depth := 12
	prev := lmrReduction(depth, 1)
	for idx := 2; idx < 40; idx++ {
		cur := lmrReduction(depth, idx)
		if cur < prev {
			t.Fatalf("lmrReduction(%d, %d) = %d decreased from previous %d", depth, idx, cur, prev)
		}
		prev = cur
	}
}
