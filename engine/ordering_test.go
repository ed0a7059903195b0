package engine

import (
	"testing"

	"knightcore/board"
)

func TestOrderMovesPutsTTMoveFirst(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := board.GenerateLegal(pos)

	var killers KillerTable
	e2, _ := board.ParseSquare("e2")
	e4, _ := board.ParseSquare("e4")
	target := board.Move{From: e2, To: e4, Type: board.Normal}
	ttCode := board.EncodeMove(target)

	ordered := orderMoves(pos, moves, ttCode, &killers, 0)
	if ordered[0].move != target {
		t.Fatalf("expected TT move first, got %v", ordered[0].move)
	}
}

func TestOrderMovesRanksCapturesByMVVLVA(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/3q4/2P5/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := board.GenerateLegal(pos)
	var killers KillerTable
	ordered := orderMoves(pos, moves, 0xFFFF, &killers, 0)

	c4, _ := board.ParseSquare("c4")
	d5, _ := board.ParseSquare("d5")
	pawnTakesQueen := board.Move{From: c4, To: d5, Type: board.CaptureMove}

	if ordered[0].move != pawnTakesQueen {
		t.Fatalf("expected pawn-takes-queen to be the top-ranked move, got %v (score %d)", ordered[0].move, ordered[0].score)
	}
}

func TestKillerTableRecordAndShift(t *testing.T) {
	var k KillerTable
	m1 := board.Move{From: 8, To: 16, Type: board.Normal}
	m2 := board.Move{From: 9, To: 17, Type: board.Normal}

	k.Record(3, m1)
	if !k.isKiller1(3, m1) {
		t.Fatalf("expected m1 to be killer1 at ply 3")
	}

	k.Record(3, m2)
	if !k.isKiller1(3, m2) || !k.isKiller2(3, m1) {
		t.Fatalf("expected m2 to shift into killer1 and m1 into killer2")
	}

	k.Record(3, m2) // recording the current killer1 again should not shift
	if !k.isKiller2(3, m1) {
		t.Fatalf("re-recording the top killer should leave killer2 untouched")
	}
}

func TestKillerTableClear(t *testing.T) {
	var k KillerTable
	m := board.Move{From: 1, To: 2, Type: board.Normal}
	k.Record(0, m)
	k.Clear()
	if k.isKiller1(0, m) {
		t.Fatalf("expected killers to be cleared")
	}
}
