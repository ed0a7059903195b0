package engine

import "knightcore/board"

// Score sentinels, shared by search and evaluation.
const (
	ScoreMate     = 100000
	ScoreInfinity = 200000
	ScoreDraw     = 0
)

// pieceWeight is the game-phase weight of one piece, used to taper between
// mid-game and end-game term values.
var pieceWeight = board.PhaseValue

// mobilityWeightMG/EG and mobilityBaseline tune the mobility term per piece
// type; pawns and kings are not scored for mobility.
var mobilityWeightMG = [6]int{0, 4, 5, 3, 2, 0}
var mobilityWeightEG = [6]int{0, 4, 5, 4, 4, 0}
var mobilityBaseline = [6]int{0, 4, 6, 7, 10, 0}

var passedPawnBonusMG = [8]int{0, 5, 10, 20, 35, 60, 100, 0}
var passedPawnBonusEG = [8]int{0, 10, 20, 35, 60, 100, 150, 0}

const (
	doubledPawnPenaltyMG  = -10
	doubledPawnPenaltyEG  = -20
	isolatedPawnPenaltyMG = -12
	isolatedPawnPenaltyEG = -10
	rookOpenFileBonus     = 25
	rookSemiOpenFileBonus = 12
	bishopPairBonusMG     = 30
	bishopPairBonusEG     = 40
)

// kingZoneWeight weights each piece type's contribution to the attacker
// "danger" score against an enemy king zone.
var kingZoneWeight = [6]int{0, 2, 2, 3, 5, 0}

// Evaluate returns a centipawn score from the side-to-move's perspective:
// positive means good for the side to move.
func Evaluate(p *board.Position) int {
	white := evaluateWhiteRelative(p)
	if p.SideToMove == board.Black {
		return -white
	}
	return white
}

func evaluateWhiteRelative(p *board.Position) int {
	var s board.Score
	s = s.Add(materialScore(p))
	s = s.Add(p.PST())
	s = s.Add(bishopPairScore(p))
	s = s.Add(pawnStructureScore(p))
	s = s.Add(rookFileScore(p))
	s = s.Add(mobilityScore(p))
	s = s.Add(kingSafetyScore(p))

	phase := gamePhase(p)
	return (s.MG*phase + s.EG*(24-phase)) / 24
}

func gamePhase(p *board.Position) int {
	phase := 0
	for pt := board.Knight; pt <= board.Queen; pt++ {
		phase += pieceWeight[pt] * p.Pieces(pt).PopCount()
	}
	if phase > 24 {
		phase = 24
	}
	return phase
}

func materialScore(p *board.Position) board.Score {
	var s board.Score
	for pt := board.Pawn; pt <= board.Queen; pt++ {
		w := p.PiecesOf(board.White, pt).PopCount()
		b := p.PiecesOf(board.Black, pt).PopCount()
		diff := w - b
		s.MG += diff * board.PieceValueMG[pt]
		s.EG += diff * board.PieceValueEG[pt]
	}
	return s
}

func bishopPairScore(p *board.Position) board.Score {
	var s board.Score
	wb := p.PiecesOf(board.White, board.Bishop).PopCount()
	bb := p.PiecesOf(board.Black, board.Bishop).PopCount()
	if wb >= 2 && bb < 2 {
		s.MG += bishopPairBonusMG
		s.EG += bishopPairBonusEG
	}
	if bb >= 2 && wb < 2 {
		s.MG -= bishopPairBonusMG
		s.EG -= bishopPairBonusEG
	}
	return s
}

func pawnStructureScore(p *board.Position) board.Score {
	var s board.Score
	wp := p.PiecesOf(board.White, board.Pawn)
	bp := p.PiecesOf(board.Black, board.Pawn)

	for f := 0; f < 8; f++ {
		file := board.FileBB(f)
		wn := (wp & file).PopCount()
		bn := (bp & file).PopCount()
		if wn > 1 {
			s.MG += (wn - 1) * doubledPawnPenaltyMG
			s.EG += (wn - 1) * doubledPawnPenaltyEG
		}
		if bn > 1 {
			s.MG -= (bn - 1) * doubledPawnPenaltyMG
			s.EG -= (bn - 1) * doubledPawnPenaltyEG
		}

		var adjacent board.Bitboard
		if f > 0 {
			adjacent |= board.FileBB(f - 1)
		}
		if f < 7 {
			adjacent |= board.FileBB(f + 1)
		}
		if wn > 0 && (wp&adjacent) == 0 {
			s.MG += wn * isolatedPawnPenaltyMG
			s.EG += wn * isolatedPawnPenaltyEG
		}
		if bn > 0 && (bp&adjacent) == 0 {
			s.MG -= bn * isolatedPawnPenaltyMG
			s.EG -= bn * isolatedPawnPenaltyEG
		}
	}

	s = s.Add(passedPawnScore(board.White, wp, bp))
	s = s.Sub(passedPawnScore(board.Black, bp, wp))
	return s
}

// passedPawnScore scores the passed pawns of side (owning ownPawns) against
// enemyPawns, white-relative (the caller negates for Black).
func passedPawnScore(side board.Color, ownPawns, enemyPawns board.Bitboard) board.Score {
	var s board.Score
	bb := ownPawns
	for bb != 0 {
		sq := bb.PopLSB()
		if isPassed(side, sq, enemyPawns) {
			rank := sq.Rank()
			if side == board.Black {
				rank = 7 - rank
			}
			s.MG += passedPawnBonusMG[rank]
			s.EG += passedPawnBonusEG[rank]
		}
	}
	return s
}

func isPassed(side board.Color, sq board.Square, enemyPawns board.Bitboard) bool {
	f := sq.File()
	files := board.FileBB(f)
	if f > 0 {
		files |= board.FileBB(f - 1)
	}
	if f < 7 {
		files |= board.FileBB(f + 1)
	}

	var ahead board.Bitboard
	if side == board.White {
		for r := sq.Rank() + 1; r < 8; r++ {
			ahead |= board.RankBB(r)
		}
	} else {
		for r := sq.Rank() - 1; r >= 0; r-- {
			ahead |= board.RankBB(r)
		}
	}
	return enemyPawns&files&ahead == 0
}

func rookFileScore(p *board.Position) board.Score {
	var s board.Score
	wp := p.PiecesOf(board.White, board.Pawn)
	bp := p.PiecesOf(board.Black, board.Pawn)

	score := func(rooks board.Bitboard, ownPawns, enemyPawns board.Bitboard) int {
		total := 0
		bb := rooks
		for bb != 0 {
			sq := bb.PopLSB()
			file := board.FileBB(sq.File())
			if ownPawns&file != 0 {
				continue
			}
			if enemyPawns&file == 0 {
				total += rookOpenFileBonus
			} else {
				total += rookSemiOpenFileBonus
			}
		}
		return total
	}

	w := score(p.PiecesOf(board.White, board.Rook), wp, bp)
	b := score(p.PiecesOf(board.Black, board.Rook), bp, wp)
	s.MG = w - b
	s.EG = w - b
	return s
}

func mobilityScore(p *board.Position) board.Score {
	var s board.Score
	occ := p.Occupied()
	wPawnAttacks := pawnAttackSpan(p.PiecesOf(board.White, board.Pawn), board.White)
	bPawnAttacks := pawnAttackSpan(p.PiecesOf(board.Black, board.Pawn), board.Black)

	add := func(side board.Color, friendly board.Bitboard, enemyPawnAttacks board.Bitboard) {
		area := ^friendly &^ enemyPawnAttacks
		sign := 1
		if side == board.Black {
			sign = -1
		}
		for pt := board.Knight; pt <= board.Queen; pt++ {
			bb := p.PiecesOf(side, pt)
			for bb != 0 {
				sq := bb.PopLSB()
				count := (board.Attacks(pt, sq, occ) & area).PopCount()
				delta := count - mobilityBaseline[pt]
				s.MG += sign * mobilityWeightMG[pt] * delta
				s.EG += sign * mobilityWeightEG[pt] * delta
			}
		}
	}

	add(board.White, p.ColorBB(board.White), bPawnAttacks)
	add(board.Black, p.ColorBB(board.Black), wPawnAttacks)
	return s
}

func pawnAttackSpan(pawns board.Bitboard, side board.Color) board.Bitboard {
	var out board.Bitboard
	bb := pawns
	for bb != 0 {
		sq := bb.PopLSB()
		out |= board.PawnAttacks(side, sq)
	}
	return out
}

func kingSafetyScore(p *board.Position) board.Score {
	var s board.Score
	w := kingSafetyOneSide(p, board.White)
	b := kingSafetyOneSide(p, board.Black)
	s.MG = w.MG - b.MG
	s.EG = w.EG - b.EG
	return s
}

// kingSafetyOneSide scores the shelter/storm/file terms and the attacker
// danger term for the king belonging to side, from that side's own
// perspective (positive = good for side), to be diffed by the caller.
func kingSafetyOneSide(p *board.Position, side board.Color) board.Score {
	var s board.Score
	ksq := p.KingSquare(side)
	if ksq == board.NoSquare {
		return s
	}
	f := ksq.File()
	lo, hi := f-1, f+1
	if lo < 0 {
		lo = 0
	}
	if hi > 7 {
		hi = 7
	}

	ownPawns := p.PiecesOf(side, board.Pawn)
	enemyPawns := p.PiecesOf(side.Flip(), board.Pawn)

	frontRanks := kingFrontRanks(side, ksq.Rank())
	for file := lo; file <= hi; file++ {
		fileMask := board.FileBB(file)
		shelter := (ownPawns & fileMask & frontRanks).PopCount()
		storm := (enemyPawns & fileMask & frontRanks).PopCount()
		s.MG += 10 * shelter
		s.MG -= 8 * storm
		if ownPawns&fileMask == 0 {
			if enemyPawns&fileMask == 0 {
				s.MG -= 25 // open file next to own king
			} else {
				s.MG -= 12 // semi-open
			}
		}
	}

	danger := kingZoneDanger(p, ksq, side.Flip())
	s.MG -= (danger * danger) / 8
	return s
}

func kingFrontRanks(side board.Color, kingRank int) board.Bitboard {
	var out board.Bitboard
	if side == board.White {
		for r := kingRank + 1; r <= kingRank+2 && r < 8; r++ {
			out |= board.RankBB(r)
		}
	} else {
		for r := kingRank - 1; r >= kingRank-2 && r >= 0; r-- {
			out |= board.RankBB(r)
		}
	}
	return out
}

// kingZoneDanger sums weight[pt] * |attacker-of-pt ∩ 3x3 king zone| for
// every enemy piece attacking the king's immediate neighborhood.
func kingZoneDanger(p *board.Position, ksq board.Square, attacker board.Color) int {
	zone := board.KingAttacks(ksq) | board.SquareBB(ksq)
	occ := p.Occupied()
	danger := 0

	danger += kingZoneWeight[board.Pawn] * (pawnAttackSpan(p.PiecesOf(attacker, board.Pawn), attacker) & zone).PopCount()

	for pt := board.Knight; pt <= board.Queen; pt++ {
		bb := p.PiecesOf(attacker, pt)
		for bb != 0 {
			sq := bb.PopLSB()
			danger += kingZoneWeight[pt] * (board.Attacks(pt, sq, occ) & zone).PopCount()
		}
	}
	return danger
}
