package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrFenParse reports a structurally malformed FEN string (wrong field
// count, unparseable rank, bad character). ErrFenValidation reports a
// structurally well-formed FEN describing an illegal position (wrong king
// count, pawns on the back rank, en-passant rank inconsistent with side to
// move, and similar). Callers distinguish the two: a parse error means "not
// FEN at all", a validation error means "well-formed but not a legal chess
// position".
var (
	ErrFenParse      = errors.New("board: malformed FEN")
	ErrFenValidation = errors.New("board: invalid position")
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func fenErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFenParse, fmt.Sprintf(format, args...))
}

func fenValidationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFenValidation, fmt.Sprintf(format, args...))
}

// ParseFEN parses and validates fen, returning a ready-to-use Position.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fenErr("expected at least 4 space-separated fields, got %d", len(fields))
	}
	for len(fields) < 6 {
		fields = append(fields, defaultTrailingField(len(fields)))
	}

	p := NewEmptyPosition()
	if err := parseBoardField(p, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return nil, fenErr("side to move field must be 'w' or 'b', got %q", fields[1])
	}

	rights, err := parseCastlingField(fields[2])
	if err != nil {
		return nil, err
	}
	p.CastlingRights = rights

	ep, err := parseEPField(fields[3])
	if err != nil {
		return nil, err
	}
	p.EPSquare = ep

	half, err := strconv.Atoi(fields[4])
	if err != nil || half < 0 {
		return nil, fenErr("halfmove clock must be a non-negative integer, got %q", fields[4])
	}
	p.HalfmoveClock = half

	full, err := strconv.Atoi(fields[5])
	if err != nil || full < 1 {
		return nil, fenErr("fullmove number must be a positive integer, got %q", fields[5])
	}
	p.FullmoveNumber = full

	p.InitAfterBulkLoad()

	if err := ValidateFEN(p); err != nil {
		return nil, err
	}
	return p, nil
}

func defaultTrailingField(alreadyPresent int) string {
	if alreadyPresent == 4 {
		return "0"
	}
	return "1"
}

var fenPieceLetters = map[byte]Piece{
	'P': {Type: Pawn, Color: White}, 'N': {Type: Knight, Color: White},
	'B': {Type: Bishop, Color: White}, 'R': {Type: Rook, Color: White},
	'Q': {Type: Queen, Color: White}, 'K': {Type: King, Color: White},
	'p': {Type: Pawn, Color: Black}, 'n': {Type: Knight, Color: Black},
	'b': {Type: Bishop, Color: Black}, 'r': {Type: Rook, Color: Black},
	'q': {Type: Queen, Color: Black}, 'k': {Type: King, Color: Black},
}

func parseBoardField(p *Position, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fenErr("board field must have 8 ranks separated by '/', got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range []byte(rankStr) {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc, ok := fenPieceLetters[ch]
			if !ok {
				return fenErr("unrecognized board character %q", string(ch))
			}
			if file > 7 {
				return fenErr("rank %d overflows past the h-file", rank+1)
			}
			p.SetPiece(SquareFromCoords(file, rank), pc)
			file++
		}
		if file != 8 {
			return fenErr("rank %d does not sum to 8 files (got %d)", rank+1, file)
		}
	}
	return nil
}

func parseCastlingField(field string) (CastlingRights, error) {
	if field == "-" {
		return 0, nil
	}
	var rights CastlingRights
	for _, ch := range []byte(field) {
		switch ch {
		case 'K':
			rights |= WhiteKingside
		case 'Q':
			rights |= WhiteQueenside
		case 'k':
			rights |= BlackKingside
		case 'q':
			rights |= BlackQueenside
		default:
			return 0, fenErr("unrecognized castling character %q", string(ch))
		}
	}
	return rights, nil
}

func parseEPField(field string) (Square, error) {
	if field == "-" {
		return NoSquare, nil
	}
	sq, ok := ParseSquare(field)
	if !ok {
		return NoSquare, fenErr("en-passant field must be '-' or a square, got %q", field)
	}
	return sq, nil
}

// ValidateFEN checks a fully constructed Position for the legality
// conditions a well-formed FEN can still violate: exactly one king per
// side, no pawns on the back ranks, and en-passant rank consistency.
func ValidateFEN(p *Position) error {
	if p.PiecesOf(White, King).PopCount() != 1 {
		return fenValidationErr("white must have exactly one king")
	}
	if p.PiecesOf(Black, King).PopCount() != 1 {
		return fenValidationErr("black must have exactly one king")
	}
	if p.Pieces(Pawn)&(Rank1|Rank8) != 0 {
		return fenValidationErr("no pawn may stand on rank 1 or rank 8")
	}
	if p.EPSquare != NoSquare {
		wantRank := 5
		if p.SideToMove == Black {
			wantRank = 2
		}
		if p.EPSquare.Rank() != wantRank {
			return fenValidationErr("en-passant square %s is inconsistent with side to move", p.EPSquare)
		}
	}
	return nil
}

// ToFEN serializes p back to FEN text.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(SquareFromCoords(file, rank))
			if pc.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := pc.Type.Letter()
			if pc.Color == Black {
				letter = letter | 0x20 // ASCII lowercase
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if p.CastlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if p.CastlingRights.Has(WhiteKingside) {
			sb.WriteByte('K')
		}
		if p.CastlingRights.Has(WhiteQueenside) {
			sb.WriteByte('Q')
		}
		if p.CastlingRights.Has(BlackKingside) {
			sb.WriteByte('k')
		}
		if p.CastlingRights.Has(BlackQueenside) {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.EPSquare.String())

	fmt.Fprintf(&sb, " %d %d", p.HalfmoveClock, p.FullmoveNumber)
	return sb.String()
}
