package board

// MoveList is a bounded move buffer; legal chess positions have at most
// ~218 moves, so a capacity of 256 is never exceeded.
type MoveList []Move

const maxMoves = 256

func newMoveList() MoveList {
	return make(MoveList, 0, maxMoves)
}

var promoPieces = [4]PieceType{Queen, Rook, Bishop, Knight}

// GeneratePseudoLegal returns every move for the side to move, ignoring
// whether it leaves the mover's own king in check.
func GeneratePseudoLegal(p *Position) MoveList {
	moves := newMoveList()
	genPawnMoves(p, &moves, false)
	genPieceMoves(p, &moves, false)
	genCastling(p, &moves)
	return moves
}

// GeneratePseudoLegalCaptures returns captures, en-passant captures, and
// non-capture promotions — the move set quiescence search expands.
func GeneratePseudoLegalCaptures(p *Position) MoveList {
	moves := newMoveList()
	genPawnMoves(p, &moves, true)
	genPieceMoves(p, &moves, true)
	return moves
}

// GenerateLegal filters GeneratePseudoLegal by making each move on a
// workspace copy and discarding those that leave the mover's king attacked.
func GenerateLegal(p *Position) MoveList {
	return filterLegal(p, GeneratePseudoLegal(p))
}

// GenerateLegalCaptures filters GeneratePseudoLegalCaptures the same way.
func GenerateLegalCaptures(p *Position) MoveList {
	return filterLegal(p, GeneratePseudoLegalCaptures(p))
}

func filterLegal(p *Position, pseudo MoveList) MoveList {
	legal := newMoveList()
	mover := p.SideToMove
	for _, m := range pseudo {
		work := p.Clone()
		work.MakeMove(m)
		if !IsSquareAttacked(work, work.KingSquare(mover), mover.Flip()) {
			legal = append(legal, m)
		}
	}
	return legal
}

func genPawnMoves(p *Position, moves *MoveList, capturesOnly bool) {
	side := p.SideToMove
	pawns := p.PiecesOf(side, Pawn)
	occ := p.Occupied()
	enemy := p.ColorBB(side.Flip())

	var forward Square = 8
	var startRank, promoRank int
	if side == White {
		startRank, promoRank = 1, 7
	} else {
		forward = -8
		startRank, promoRank = 6, 0
	}

	bb := pawns
	for bb != 0 {
		from := bb.PopLSB()
		to := from + forward

		if to >= 0 && to < 64 && !occ.Set(to) {
			if to.Rank() == promoRank {
				addPromotions(moves, from, to, false)
			} else if !capturesOnly {
				*moves = append(*moves, Move{From: from, To: to, Type: Normal})
				if from.Rank() == startRank {
					to2 := from + 2*forward
					if !occ.Set(to2) {
						*moves = append(*moves, Move{From: from, To: to2, Type: Normal})
					}
				}
			}
		}

		for _, atk := range pawnCaptureTargets(from, side) {
			if p.EPSquare != NoSquare && atk == p.EPSquare {
				*moves = append(*moves, Move{From: from, To: p.EPSquare, Type: EnPassant})
				continue
			}
			if enemy.Set(atk) {
				if atk.Rank() == promoRank {
					addPromotions(moves, from, atk, true)
				} else {
					*moves = append(*moves, Move{From: from, To: atk, Type: CaptureMove})
				}
			}
		}
	}
}

// pawnCaptureTargets returns the (up to two) diagonal squares in front of
// from for the given side, skipping board-edge wraparound.
func pawnCaptureTargets(from Square, side Color) []Square {
	f, r := from.File(), from.Rank()
	dr := 1
	if side == Black {
		dr = -1
	}
	var out []Square
	if onBoard(f-1, r+dr) {
		out = append(out, SquareFromCoords(f-1, r+dr))
	}
	if onBoard(f+1, r+dr) {
		out = append(out, SquareFromCoords(f+1, r+dr))
	}
	return out
}

func addPromotions(moves *MoveList, from, to Square, capture bool) {
	t := Promotion
	if capture {
		t = PromotionCapture
	}
	for _, pt := range promoPieces {
		*moves = append(*moves, Move{From: from, To: to, Type: t, Promotion: pt})
	}
}

func genPieceMoves(p *Position, moves *MoveList, capturesOnly bool) {
	side := p.SideToMove
	friendly := p.ColorBB(side)
	enemy := p.ColorBB(side.Flip())
	occ := p.Occupied()

	for _, pt := range [...]PieceType{Knight, Bishop, Rook, Queen, King} {
		bb := p.PiecesOf(side, pt)
		for bb != 0 {
			from := bb.PopLSB()
			targets := Attacks(pt, from, occ) &^ friendly
			tbb := targets
			for tbb != 0 {
				to := tbb.PopLSB()
				if enemy.Set(to) {
					*moves = append(*moves, Move{From: from, To: to, Type: CaptureMove})
				} else if !capturesOnly {
					*moves = append(*moves, Move{From: from, To: to, Type: Normal})
				}
			}
		}
	}
}

func genCastling(p *Position, moves *MoveList) {
	side := p.SideToMove
	occ := p.Occupied()
	enemy := side.Flip()

	if side == White {
		if p.CastlingRights.Has(WhiteKingside) &&
			!occ.Set(5) && !occ.Set(6) &&
			!IsSquareAttacked(p, 4, enemy) && !IsSquareAttacked(p, 5, enemy) && !IsSquareAttacked(p, 6, enemy) {
			*moves = append(*moves, Move{From: 4, To: 6, Type: Castling})
		}
		if p.CastlingRights.Has(WhiteQueenside) &&
			!occ.Set(1) && !occ.Set(2) && !occ.Set(3) &&
			!IsSquareAttacked(p, 4, enemy) && !IsSquareAttacked(p, 3, enemy) && !IsSquareAttacked(p, 2, enemy) {
			*moves = append(*moves, Move{From: 4, To: 2, Type: Castling})
		}
		return
	}
	if p.CastlingRights.Has(BlackKingside) &&
		!occ.Set(61) && !occ.Set(62) &&
		!IsSquareAttacked(p, 60, enemy) && !IsSquareAttacked(p, 61, enemy) && !IsSquareAttacked(p, 62, enemy) {
		*moves = append(*moves, Move{From: 60, To: 62, Type: Castling})
	}
	if p.CastlingRights.Has(BlackQueenside) &&
		!occ.Set(59) && !occ.Set(58) && !occ.Set(57) &&
		!IsSquareAttacked(p, 60, enemy) && !IsSquareAttacked(p, 59, enemy) && !IsSquareAttacked(p, 58, enemy) {
		*moves = append(*moves, Move{From: 60, To: 58, Type: Castling})
	}
}

// IsSquareAttacked reports whether sq is attacked by any piece of byColor.
func IsSquareAttacked(p *Position, sq Square, byColor Color) bool {
	if sq == NoSquare {
		return false
	}
	occ := p.Occupied()
	if KnightAttacks(sq)&p.PiecesOf(byColor, Knight) != 0 {
		return true
	}
	if KingAttacks(sq)&p.PiecesOf(byColor, King) != 0 {
		return true
	}
	if PawnAttacks(byColor.Flip(), sq)&p.PiecesOf(byColor, Pawn) != 0 {
		return true
	}
	bishopsQueens := p.PiecesOf(byColor, Bishop) | p.PiecesOf(byColor, Queen)
	if BishopAttacks(sq, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := p.PiecesOf(byColor, Rook) | p.PiecesOf(byColor, Queen)
	if RookAttacks(sq, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

// IsInCheck reports whether side's king is currently attacked.
func IsInCheck(p *Position, side Color) bool {
	return IsSquareAttacked(p, p.KingSquare(side), side.Flip())
}

// IsCheckmate reports in-check with no legal replies.
func IsCheckmate(p *Position) bool {
	return IsInCheck(p, p.SideToMove) && len(GenerateLegal(p)) == 0
}

// IsStalemate reports not-in-check with no legal replies.
func IsStalemate(p *Position) bool {
	return !IsInCheck(p, p.SideToMove) && len(GenerateLegal(p)) == 0
}

// IsDraw reports the 50-move rule (halfmove clock reaching 100 half-moves).
// Repetition draws are a search-level concern, not Position's.
func IsDraw(p *Position) bool {
	return p.HalfmoveClock >= 100
}
