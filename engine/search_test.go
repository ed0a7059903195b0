package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"knightcore/board"
)

func mustSearchFEN(t *testing.T, fen string) *board.Position {
	t.Helper()
	p, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return p
}

func TestFindBestMoveFindsMateInOne(t *testing.T) {
	// White to move, Qe1-e8 delivers back-rank mate.
	pos := mustSearchFEN(t, "6k1/5ppp/8/8/8/8/8/4Q1K1 w - - 0 1")
	s := NewSearch(1 << 20)
	cfg := SearchConfig{MaxDepth: 4}

	best, score := s.FindBestMove(pos, cfg, nil, nil)

	e1, _ := board.ParseSquare("e1")
	e8, _ := board.ParseSquare("e8")
	want := board.Move{From: e1, To: e8, Type: board.Normal}
	if best != want {
		t.Fatalf("best move = %v, want mate-in-1 %v", best, want)
	}
	if score < ScoreMate-10 {
		t.Fatalf("score = %d, want a near-mate score", score)
	}
}

func TestFindBestMoveAvoidsHangingRook(t *testing.T) {
	// Rd2xd7 takes a pawn that the black king on e8 defends: Kxd7 wins the
	// rook back, so the search must not choose the capture.
	pos := mustSearchFEN(t, "4k3/3p4/8/8/8/8/3R4/4K3 w - - 0 1")
	s := NewSearch(1 << 20)
	cfg := SearchConfig{MaxDepth: 3}

	best, _ := s.FindBestMove(pos, cfg, nil, nil)

	d2, _ := board.ParseSquare("d2")
	d7, _ := board.ParseSquare("d7")
	blunder := board.Move{From: d2, To: d7, Type: board.CaptureMove}
	if best == blunder {
		t.Fatalf("search chose to hang the rook by capturing a defended queen's pawn: %v", best)
	}
}

func TestFindBestMoveIterativeDeepeningIncreasesDepth(t *testing.T) {
	pos := mustSearchFEN(t, board.StartFEN)
	s := NewSearch(1 << 20)
	cfg := SearchConfig{MaxDepth: 4}

	var depths []int
	s.FindBestMove(pos, cfg, nil, func(info SearchInfo) {
		depths = append(depths, info.Depth)
	})

	if len(depths) != 4 {
		t.Fatalf("expected 4 info callbacks (depths 1..4), got %d: %v", len(depths), depths)
	}
	for i, d := range depths {
		if d != i+1 {
			t.Fatalf("depths = %v, want strictly increasing 1..4", depths)
		}
	}
}

func TestFindBestMoveRespectsStopFlag(t *testing.T) {
	pos := mustSearchFEN(t, board.StartFEN)
	s := NewSearch(1 << 20)
	var stop atomic.Bool
	stop.Store(true)
	cfg := SearchConfig{MaxDepth: 64, Stop: &stop}

	done := make(chan struct{})
	go func() {
		s.FindBestMove(pos, cfg, nil, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("FindBestMove did not return promptly with Stop already set")
	}
}

func TestFindBestMoveRespectsTimeBudget(t *testing.T) {
	pos := mustSearchFEN(t, board.StartFEN)
	s := NewSearch(1 << 20)
	cfg := SearchConfig{MaxDepth: 64, TimeBudget: 50 * time.Millisecond}

	start := time.Now()
	s.FindBestMove(pos, cfg, nil, nil)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("FindBestMove took %v, want it to stop near the 50ms budget", elapsed)
	}
}

func TestFindBestMoveReturnsLegalMove(t *testing.T) {
	pos := mustSearchFEN(t, board.StartFEN)
	s := NewSearch(1 << 20)
	cfg := SearchConfig{MaxDepth: 2}

	best, _ := s.FindBestMove(pos, cfg, nil, nil)

	found := false
	for _, m := range board.GenerateLegal(pos) {
		if m == best {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("returned move %v is not among the legal moves from the starting position", best)
	}
}
