package board

// UndoInfo is the per-move snapshot sufficient for unmakeMove to exactly
// reverse makeMove: the captured piece (including an en-passant victim),
// and the prior castling rights, en-passant square, halfmove clock, hash,
// and piece-square score.
type UndoInfo struct {
	Captured       Piece
	CapturedSquare Square // differs from move.To only for en passant
	CastlingRights CastlingRights
	EPSquare       Square
	HalfmoveClock  int
	Hash           uint64
	PST            Score
}

// place puts pc on an empty square sq, keeping the mailbox, bitboards, king
// cache, hash, and PST all in sync. sq must currently be empty.
func (p *Position) place(sq Square, pc Piece) {
	bb := SquareBB(sq)
	p.mailbox[sq] = pc
	p.pieceBB[pc.Type] |= bb
	p.colorBB[pc.Color] |= bb
	p.all |= bb
	if pc.Type == King {
		p.kingSquare[pc.Color] = sq
	}
	p.hash ^= zobristPieceSquare[pc.Color][pc.Type][sq]
	p.pst = p.pst.Add(pieceSquareValue(pc, sq))
}

// remove takes the piece off sq (which must be occupied) and returns it,
// keeping mailbox, bitboards, hash, and PST in sync.
func (p *Position) remove(sq Square) Piece {
	pc := p.mailbox[sq]
	bb := ^SquareBB(sq)
	p.pieceBB[pc.Type] &= bb
	p.colorBB[pc.Color] &= bb
	p.all &= bb
	p.mailbox[sq] = NoPiece
	p.hash ^= zobristPieceSquare[pc.Color][pc.Type][sq]
	p.pst = p.pst.Sub(pieceSquareValue(pc, sq))
	return pc
}

// relocate moves the piece on from to the empty square to, updating the
// king cache, hash, and PST; it is implemented as remove followed by place.
func (p *Position) relocate(from, to Square) {
	pc := p.mailbox[from]
	p.remove(from)
	p.place(to, pc)
}

var castlingRookSquares = map[Square]struct {
	from, to Square
	right    CastlingRights
}{
	6:  {from: 7, to: 5, right: WhiteKingside},
	2:  {from: 0, to: 3, right: WhiteQueenside},
	62: {from: 63, to: 61, right: BlackKingside},
	58: {from: 56, to: 59, right: BlackQueenside},
}

// startingRookSquareRight maps a rook's home square to the right it guards,
// used to strip castling rights when that rook moves or is captured.
var startingRookSquareRight = map[Square]CastlingRights{
	0:  WhiteQueenside,
	7:  WhiteKingside,
	56: BlackQueenside,
	63: BlackKingside,
}

// MakeMove applies move to p (precondition: move is at least pseudo-legal)
// and returns the UndoInfo needed to reverse it with UnmakeMove.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		Captured:       NoPiece,
		CapturedSquare: NoSquare,
		CastlingRights: p.CastlingRights,
		EPSquare:       p.EPSquare,
		HalfmoveClock:  p.HalfmoveClock,
		Hash:           p.hash,
		PST:            p.pst,
	}

	p.hash ^= zobristCastle[p.CastlingRights]
	if p.EPSquare != NoSquare {
		p.hash ^= zobristEPFile[p.EPSquare.File()]
	}

	mover := p.mailbox[m.From]
	isPawnMove := mover.Type == Pawn

	switch m.Type {
	case Castling:
		p.relocate(m.From, m.To)
		rk := castlingRookSquares[m.To]
		p.relocate(rk.from, rk.to)

	case EnPassant:
		capSq := m.To - 8
		if mover.Color == Black {
			capSq = m.To + 8
		}
		undo.Captured = p.remove(capSq)
		undo.CapturedSquare = capSq
		p.relocate(m.From, m.To)

	case Promotion:
		p.remove(m.From)
		p.place(m.To, Piece{Type: m.Promotion, Color: mover.Color})

	case PromotionCapture:
		undo.Captured = p.remove(m.To)
		undo.CapturedSquare = m.To
		p.remove(m.From)
		p.place(m.To, Piece{Type: m.Promotion, Color: mover.Color})

	case CaptureMove:
		undo.Captured = p.remove(m.To)
		undo.CapturedSquare = m.To
		p.relocate(m.From, m.To)

	default: // Normal
		p.relocate(m.From, m.To)
	}

	if isPawnMove || undo.Captured.Type != NoPieceType {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}

	if p.SideToMove == Black {
		p.FullmoveNumber++
	}

	if mover.Type == King {
		if mover.Color == White {
			p.CastlingRights &^= WhiteKingside | WhiteQueenside
		} else {
			p.CastlingRights &^= BlackKingside | BlackQueenside
		}
	}
	if r, ok := startingRookSquareRight[m.From]; ok {
		p.CastlingRights &^= r
	}
	if r, ok := startingRookSquareRight[m.To]; ok {
		p.CastlingRights &^= r
	}

	p.EPSquare = NoSquare
	if isPawnMove {
		diff := int(m.To) - int(m.From)
		if diff == 16 || diff == -16 {
			p.EPSquare = (m.From + m.To) / 2
		}
	}

	p.hash ^= zobristCastle[p.CastlingRights]
	if p.EPSquare != NoSquare {
		p.hash ^= zobristEPFile[p.EPSquare.File()]
	}
	p.hash ^= zobristSide
	p.SideToMove = p.SideToMove.Flip()

	return undo
}

// UnmakeMove exactly reverses the effect of MakeMove(m), given the UndoInfo
// it returned. Must be called in strict LIFO order against prior MakeMove
// calls.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	p.SideToMove = p.SideToMove.Flip()
	mover := p.mailbox[m.To]

	switch m.Type {
	case Castling:
		rk := castlingRookSquares[m.To]
		p.relocateRaw(rk.to, rk.from)
		p.relocateRaw(m.To, m.From)

	case EnPassant:
		p.relocateRaw(m.To, m.From)
		if undo.Captured.Type != NoPieceType {
			p.placeRaw(undo.CapturedSquare, undo.Captured)
		}

	case Promotion:
		p.removeRaw(m.To)
		p.placeRaw(m.From, Piece{Type: Pawn, Color: mover.Color})

	case PromotionCapture:
		p.removeRaw(m.To)
		p.placeRaw(m.From, Piece{Type: Pawn, Color: mover.Color})
		if undo.Captured.Type != NoPieceType {
			p.placeRaw(undo.CapturedSquare, undo.Captured)
		}

	case CaptureMove:
		p.relocateRaw(m.To, m.From)
		if undo.Captured.Type != NoPieceType {
			p.placeRaw(undo.CapturedSquare, undo.Captured)
		}

	default: // Normal
		p.relocateRaw(m.To, m.From)
	}

	p.CastlingRights = undo.CastlingRights
	p.EPSquare = undo.EPSquare
	p.HalfmoveClock = undo.HalfmoveClock
	p.hash = undo.Hash
	p.pst = undo.PST

	if p.SideToMove == Black {
		p.FullmoveNumber--
	}
}

// placeRaw/removeRaw/relocateRaw mirror place/remove/relocate but skip hash
// and PST bookkeeping: UnmakeMove restores both wholesale from UndoInfo, so
// touching them twice would be wasted work (and, for hash, actively wrong
// once the castling/ep keys have already been restored).
func (p *Position) placeRaw(sq Square, pc Piece) {
	bb := SquareBB(sq)
	p.mailbox[sq] = pc
	p.pieceBB[pc.Type] |= bb
	p.colorBB[pc.Color] |= bb
	p.all |= bb
	if pc.Type == King {
		p.kingSquare[pc.Color] = sq
	}
}

func (p *Position) removeRaw(sq Square) Piece {
	pc := p.mailbox[sq]
	bb := ^SquareBB(sq)
	p.pieceBB[pc.Type] &= bb
	p.colorBB[pc.Color] &= bb
	p.all &= bb
	p.mailbox[sq] = NoPiece
	return pc
}

func (p *Position) relocateRaw(from, to Square) {
	pc := p.removeRaw(from)
	p.placeRaw(to, pc)
}

// MakeNullMove flips the side to move and clears the en-passant square,
// returning the (epSquare, hash) pair UnmakeNullMove needs to restore state.
// Used by null-move pruning in search, never by make_move's own callers.
func (p *Position) MakeNullMove() (prevEP Square, prevHash uint64) {
	prevEP = p.EPSquare
	prevHash = p.hash
	if p.EPSquare != NoSquare {
		p.hash ^= zobristEPFile[p.EPSquare.File()]
	}
	p.EPSquare = NoSquare
	p.hash ^= zobristSide
	p.SideToMove = p.SideToMove.Flip()
	return
}

// UnmakeNullMove reverses MakeNullMove given the values it returned.
func (p *Position) UnmakeNullMove(prevEP Square, prevHash uint64) {
	p.SideToMove = p.SideToMove.Flip()
	p.EPSquare = prevEP
	p.hash = prevHash
}
