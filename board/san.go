package board

import "strings"

// ToSAN renders m, played from p (before the move is made), as Standard
// Algebraic Notation, disambiguating by file, then rank, then both when
// more than one like piece can reach the destination. Check/checkmate
// suffixes reflect the position after the move.
func ToSAN(p *Position, m Move) string {
	if m.IsCastling() {
		san := castlingSAN(m)
		return san + checkSuffix(p, m)
	}

	mover := p.PieceAt(m.From)
	var sb strings.Builder

	if mover.Type != Pawn {
		sb.WriteByte(upper(mover.Type.Letter()))
		sb.WriteString(disambiguation(p, m, mover))
	} else if m.IsCapture() {
		sb.WriteByte(byte('a' + m.From.File()))
	}

	if m.IsCapture() {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(upper(m.Promotion.Letter()))
	}

	sb.WriteString(checkSuffix(p, m))
	return sb.String()
}

func upper(b byte) byte { return b &^ 0x20 }

func castlingSAN(m Move) string {
	if m.To.File() == 6 {
		return "O-O"
	}
	return "O-O-O"
}

// disambiguation finds every other legal move by a piece of the same type
// and color landing on m.To, then emits the minimal file/rank/both prefix
// that distinguishes m.From among them.
func disambiguation(p *Position, m Move, mover Piece) string {
	var sameFile, sameRank, any bool
	for _, other := range GenerateLegal(p) {
		if other.To != m.To || other.From == m.From {
			continue
		}
		otherPiece := p.PieceAt(other.From)
		if otherPiece.Type != mover.Type || otherPiece.Color != mover.Color {
			continue
		}
		any = true
		if other.From.File() == m.From.File() {
			sameFile = true
		}
		if other.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	if !any {
		return ""
	}
	switch {
	case !sameFile:
		return string([]byte{byte('a' + m.From.File())})
	case !sameRank:
		return string([]byte{byte('1' + m.From.Rank())})
	default:
		return m.From.String()
	}
}

func checkSuffix(p *Position, m Move) string {
	work := p.Clone()
	work.MakeMove(m)
	if !IsInCheck(work, work.SideToMove) {
		return ""
	}
	if len(GenerateLegal(work)) == 0 {
		return "#"
	}
	return "+"
}
