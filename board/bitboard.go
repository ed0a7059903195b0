package board

import "math/bits"

// Bitboard is a 64-bit set of squares; bit i set means square i is a member.
type Bitboard uint64

// Single-square and file/rank constants.
const (
	FileA Bitboard = 0x0101010101010101
	FileH Bitboard = FileA << 7
	Rank1 Bitboard = 0xFF
	Rank8 Bitboard = Rank1 << (8 * 7)
	Rank2 Bitboard = Rank1 << 8
	Rank4 Bitboard = Rank1 << (8 * 3)
	Rank5 Bitboard = Rank1 << (8 * 4)
	Rank7 Bitboard = Rank1 << (8 * 6)
)

var fileBB [8]Bitboard
var rankBB [8]Bitboard

func init() {
	for f := 0; f < 8; f++ {
		fileBB[f] = FileA << uint(f)
	}
	for r := 0; r < 8; r++ {
		rankBB[r] = Rank1 << uint(8*r)
	}
}

// FileBB returns the bitboard of an entire file (0=a .. 7=h).
func FileBB(file int) Bitboard { return fileBB[file] }

// RankBB returns the bitboard of an entire rank (0=rank1 .. 7=rank8).
func RankBB(rank int) Bitboard { return rankBB[rank] }

// SquareBB returns a bitboard with only sq set.
func SquareBB(sq Square) Bitboard { return Bitboard(1) << uint(sq) }

// Set reports whether bit sq is set.
func (b Bitboard) Set(sq Square) bool { return b&SquareBB(sq) != 0 }

// With returns b with sq set.
func (b Bitboard) With(sq Square) Bitboard { return b | SquareBB(sq) }

// Without returns b with sq cleared.
func (b Bitboard) Without(sq Square) Bitboard { return b &^ SquareBB(sq) }

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// LSB returns the least-significant set square, or NoSquare if empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB clears and returns the least-significant set square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// shiftNorth/shiftSouth etc. move every bit one step in a direction, masking
// off wraparound at board edges.
func shiftNorth(b Bitboard) Bitboard { return b << 8 }
func shiftSouth(b Bitboard) Bitboard { return b >> 8 }
func shiftEast(b Bitboard) Bitboard  { return (b &^ FileH) << 1 }
func shiftWest(b Bitboard) Bitboard  { return (b &^ FileA) >> 1 }
func shiftNE(b Bitboard) Bitboard    { return (b &^ FileH) << 9 }
func shiftNW(b Bitboard) Bitboard    { return (b &^ FileA) << 7 }
func shiftSE(b Bitboard) Bitboard    { return (b &^ FileH) >> 7 }
func shiftSW(b Bitboard) Bitboard    { return (b &^ FileA) >> 9 }
