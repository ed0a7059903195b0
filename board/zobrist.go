package board

import "math/rand"

// Zobrist key tables. Filled once at package init from a fixed seed so
// hashes are deterministic across runs and processes (DESIGN NOTES: magic
// search and Zobrist keys both use fixed-seed PRNGs for reproducibility).
var (
	zobristPieceSquare [2][6][64]uint64
	zobristSide        uint64
	zobristCastle      [16]uint64
	zobristEPFile      [8]uint64
)

func init() {
	rng := rand.New(rand.NewSource(0x5A6F62726973742A))
	for c := 0; c < 2; c++ {
		for pt := 0; pt < 6; pt++ {
			for sq := 0; sq < 64; sq++ {
				zobristPieceSquare[c][pt][sq] = rng.Uint64()
			}
		}
	}
	zobristSide = rng.Uint64()
	for i := range zobristCastle {
		zobristCastle[i] = rng.Uint64()
	}
	for i := range zobristEPFile {
		zobristEPFile[i] = rng.Uint64()
	}
}

// computeHash performs a full recomputation of the Zobrist hash from
// scratch: XOR of piece-square keys for every occupied square, the side key
// iff Black to move, the castling-rights key, and the en-passant-file key
// iff an en-passant square is set. Used by FEN parsing (once, after bulk
// construction) and by the round-trip invariant check in tests.
func (p *Position) computeHash() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		pc := p.mailbox[sq]
		if pc.IsEmpty() {
			continue
		}
		h ^= zobristPieceSquare[pc.Color][pc.Type][sq]
	}
	if p.SideToMove == Black {
		h ^= zobristSide
	}
	h ^= zobristCastle[p.CastlingRights]
	if p.EPSquare != NoSquare {
		h ^= zobristEPFile[p.EPSquare.File()]
	}
	return h
}

// RecomputeHash exposes computeHash for external consistency checks
// after any make, recomputing the hash from scratch must match it.
func (p *Position) RecomputeHash() uint64 { return p.computeHash() }
