package board

// Board is a convenience layer over Position for callers that don't want to
// manage UndoInfo themselves: it owns the position, remembers the FEN it
// started from, and rejects illegal moves instead of trusting the caller.
type Board struct {
	pos       *Position
	startFEN  string
	undoStack []UndoInfo
	moveStack []Move
}

// New returns a Board at the standard starting position.
func New() *Board {
	b, err := NewFromFEN(StartFEN)
	if err != nil {
		panic("board: starting FEN failed to parse: " + err.Error())
	}
	return b
}

// NewFromFEN parses and validates fen (see ParseFEN/ValidateFEN) and
// returns a Board positioned there.
func NewFromFEN(fen string) (*Board, error) {
	pos, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Board{pos: pos, startFEN: fen}, nil
}

// Position exposes the underlying Position for read-only inspection by the
// evaluator and search.
func (b *Board) Position() *Position { return b.pos }

// StartFEN returns the FEN this Board was constructed from.
func (b *Board) StartFEN() string { return b.startFEN }

// MakeMove applies m if (and only if) it is legal, returning false and
// leaving the Board untouched otherwise.
func (b *Board) MakeMove(m Move) bool {
	if !b.IsMoveLegal(m) {
		return false
	}
	b.MakeMoveUnchecked(m)
	return true
}

// MakeMoveUnchecked applies m without a legality check (the caller is
// trusted — used by the UCI front end, which has already matched m against
// GetLegalMoves).
func (b *Board) MakeMoveUnchecked(m Move) {
	undo := b.pos.MakeMove(m)
	b.undoStack = append(b.undoStack, undo)
	b.moveStack = append(b.moveStack, m)
}

// UnmakeMove reverses the most recent MakeMove/MakeMoveUnchecked call.
func (b *Board) UnmakeMove() {
	n := len(b.moveStack)
	if n == 0 {
		return
	}
	m := b.moveStack[n-1]
	undo := b.undoStack[n-1]
	b.moveStack = b.moveStack[:n-1]
	b.undoStack = b.undoStack[:n-1]
	b.pos.UnmakeMove(m, undo)
}

// GetLegalMoves returns every legal move in the current position.
func (b *Board) GetLegalMoves() MoveList { return GenerateLegal(b.pos) }

// GetLegalCaptures returns every legal capture (plus non-capture
// promotions) in the current position.
func (b *Board) GetLegalCaptures() MoveList { return GenerateLegalCaptures(b.pos) }

// IsMoveLegal reports whether m is among the current legal moves.
func (b *Board) IsMoveLegal(m Move) bool {
	for _, legal := range b.GetLegalMoves() {
		if legal == m {
			return true
		}
	}
	return false
}

// FindLegalMove looks up the legal move matching from/to and, for
// promotions, the given promotion piece type (ignored for non-promotions).
func (b *Board) FindLegalMove(from, to Square, promotion PieceType) (Move, bool) {
	for _, m := range b.GetLegalMoves() {
		if m.From != from || m.To != to {
			continue
		}
		if m.IsPromotion() && m.Promotion != promotion {
			continue
		}
		return m, true
	}
	return Move{}, false
}

// IsInCheck reports whether the side to move is in check.
func (b *Board) IsInCheck() bool { return IsInCheck(b.pos, b.pos.SideToMove) }

// IsCheckmate reports checkmate for the side to move.
func (b *Board) IsCheckmate() bool { return IsCheckmate(b.pos) }

// IsStalemate reports stalemate for the side to move.
func (b *Board) IsStalemate() bool { return IsStalemate(b.pos) }

// IsDraw reports the 50-move rule. Repetition draws live in the search,
// which tracks game history the Board does not keep.
func (b *Board) IsDraw() bool { return IsDraw(b.pos) }
