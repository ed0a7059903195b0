package board

import "testing"

func TestGenerateLegalStartingPositionCount(t *testing.T) {
	p := mustParseFEN(t, StartFEN)
	moves := GenerateLegal(p)
	if len(moves) != 20 {
		t.Fatalf("legal move count from start = %d, want 20", len(moves))
	}
}

func TestGenerateLegalExcludesMovesThatExposeCheck(t *testing.T) {
	// White king on e1, white bishop pinned on e2 by a black rook on e8.
	p := mustParseFEN(t, "4r1k1/8/8/8/8/8/4B3/4K3 w - - 0 1")
	for _, m := range GenerateLegal(p) {
		bishopSq, _ := ParseSquare("e2")
		if m.From == bishopSq && m.To.File() != bishopSq.File() {
			t.Errorf("pinned bishop should not be able to leave the e-file, got move to %s", m.To)
		}
	}
}

func TestGenerateLegalCapturesOnlyIncludesCapturesAndPromotions(t *testing.T) {
	p := mustParseFEN(t, "4k3/P7/8/4r3/8/8/8/4K2R w K - 0 1")
	for _, m := range GenerateLegalCaptures(p) {
		if !m.IsCapture() && !m.IsPromotion() {
			t.Errorf("GenerateLegalCaptures returned a quiet, non-promoting move: %s", m)
		}
	}
}

func TestEnPassantGeneratedWhenAvailable(t *testing.T) {
	p := mustParseFEN(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	found := false
	for _, m := range GenerateLegal(p) {
		if m.IsEnPassant() {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an en-passant move to be generated")
	}
}

func TestCastlingGeneratedWhenPathClearAndSafe(t *testing.T) {
	p := mustParseFEN(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	found := false
	for _, m := range GenerateLegal(p) {
		if m.IsCastling() {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected castling move to be generated")
	}
}

func TestCastlingBlockedWhenPathAttacked(t *testing.T) {
	// Black rook on f8 attacks f1, which the king must pass through castling
	// kingside — castling must not be offered.
	p := mustParseFEN(t, "4kr2/8/8/8/8/8/8/4K2R w K - 0 1")
	for _, m := range GenerateLegal(p) {
		if m.IsCastling() {
			t.Fatalf("castling through an attacked square should not be legal")
		}
	}
}

func TestIsSquareAttacked(t *testing.T) {
	p := mustParseFEN(t, StartFEN)
	e4, _ := ParseSquare("e4")
	if IsSquareAttacked(p, e4, White) {
		t.Errorf("e4 should not be attacked by white from the starting position")
	}
	d2, _ := ParseSquare("d2")
	if !IsSquareAttacked(p, d2, White) {
		t.Errorf("d2 should be attacked by white's own pieces from the starting position")
	}
}
