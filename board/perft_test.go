package board

import "testing"

// Reference counts are the standard published perft results for these
// positions (Kiwipete and the classic Position 5 among them).
func TestPerftStartingPosition(t *testing.T) {
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, c := range cases {
		p := mustParseFEN(t, StartFEN)
		if got := Perft(p, c.depth); got != c.want {
			t.Errorf("Perft(start, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, c := range cases {
		p := mustParseFEN(t, fen)
		if got := Perft(p, c.depth); got != c.want {
			t.Errorf("Perft(kiwipete, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition5(t *testing.T) {
	fen := "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
	p := mustParseFEN(t, fen)
	if got := Perft(p, 1); got != 44 {
		t.Errorf("Perft(position5, 1) = %d, want 44", got)
	}
	p = mustParseFEN(t, fen)
	if got := Perft(p, 3); got != 62379 {
		t.Errorf("Perft(position5, 3) = %d, want 62379", got)
	}
}

func TestPerftDetailedKiwipeteBreakdown(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	p := mustParseFEN(t, fen)
	counts := PerftDetailed(p, 3)
	if counts.Nodes != 97862 {
		t.Fatalf("PerftDetailed nodes = %d, want 97862", counts.Nodes)
	}
	if counts.Captures == 0 {
		t.Errorf("expected nonzero captures in kiwipete depth 3")
	}
	if counts.Checks == 0 {
		t.Errorf("expected nonzero checks in kiwipete depth 3")
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	p := mustParseFEN(t, StartFEN)
	div := PerftDivide(p, 3)
	var sum uint64
	for _, n := range div {
		sum += n
	}
	p2 := mustParseFEN(t, StartFEN)
	want := Perft(p2, 3)
	if sum != want {
		t.Fatalf("PerftDivide sum = %d, want %d", sum, want)
	}
	if len(div) != 20 {
		t.Fatalf("PerftDivide root move count = %d, want 20", len(div))
	}
}

func TestCheckmateDetection(t *testing.T) {
	// Fool's mate final position.
	p := mustParseFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if !IsCheckmate(p) {
		t.Fatalf("expected checkmate")
	}
	if IsStalemate(p) {
		t.Fatalf("checkmate should not also report stalemate")
	}
}

func TestStalemateDetection(t *testing.T) {
	p := mustParseFEN(t, "k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	if !IsStalemate(p) {
		t.Fatalf("expected stalemate")
	}
	if IsCheckmate(p) {
		t.Fatalf("stalemate should not also report checkmate")
	}
}
