package board

import (
	"errors"
	"testing"
)

func TestParseFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
	}
	for _, fen := range fens {
		p, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := p.ToFEN(); got != fen {
			t.Errorf("round trip mismatch: got %q want %q", got, fen)
		}
	}
}

func TestParseFENDefaultsMissingClocks(t *testing.T) {
	p, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	if err != nil {
		t.Fatalf("ParseFEN with missing clocks: %v", err)
	}
	if p.HalfmoveClock != 0 || p.FullmoveNumber != 1 {
		t.Errorf("expected default clocks 0/1, got %d/%d", p.HalfmoveClock, p.FullmoveNumber)
	}
}

func TestParseFENMalformedReportsParseError(t *testing.T) {
	cases := []string{
		"not a fen",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1",
	}
	for _, fen := range cases {
		_, err := ParseFEN(fen)
		if !errors.Is(err, ErrFenParse) {
			t.Errorf("ParseFEN(%q): expected ErrFenParse, got %v", fen, err)
		}
	}
}

func TestParseFENIllegalPositionReportsValidationError(t *testing.T) {
	cases := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w KQkq - 0 1", // missing white king
		"rnbqkbnP/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // pawn on the back rank
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1", // ep square inconsistent with side to move
	}
	for _, fen := range cases {
		_, err := ParseFEN(fen)
		if !errors.Is(err, ErrFenValidation) {
			t.Errorf("ParseFEN(%q): expected ErrFenValidation, got %v", fen, err)
		}
	}
}
