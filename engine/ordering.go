package engine

import "knightcore/board"

// Move ordering scores, highest tried first.
const (
	ttMoveScore  = 1_000_000
	killer1Score = 8000
	killer2Score = 7000
)

// pieceValueMVVLVA indexes MVV-LVA value by PieceType; distinct from the
// tapered evaluation material values, these are the classic integer scale.
var pieceValueMVVLVA = [6]int{100, 300, 300, 500, 900, 0}

// MaxPly bounds the killer table and the search stack.
const MaxPly = 128

// KillerTable holds two killer-move slots per ply.
type KillerTable struct {
	moves [MaxPly][2]board.Move
}

// Record inserts m as the newest killer at ply, shifting the previous
// slot-0 killer down, unless m is already the top killer.
func (k *KillerTable) Record(ply int, m board.Move) {
	if k.moves[ply][0] == m {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

// Clear resets every slot; called at the start of each findBestMove.
func (k *KillerTable) Clear() {
	for i := range k.moves {
		k.moves[i] = [2]board.Move{}
	}
}

func (k *KillerTable) isKiller1(ply int, m board.Move) bool { return k.moves[ply][0] == m }
func (k *KillerTable) isKiller2(ply int, m board.Move) bool { return k.moves[ply][1] == m }

// scoredMove pairs a move with its ordering score.
type scoredMove struct {
	move  board.Move
	score int
}

// orderMoves scores every move in moves and sorts them best-first via
// insertion sort (lists are small, typically <= 40).
func orderMoves(pos *board.Position, moves board.MoveList, ttMove uint16, killers *KillerTable, ply int) []scoredMove {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: scoreMove(pos, m, ttMove, killers, ply)}
	}
	insertionSortDescending(scored)
	return scored
}

// orderCaptures is the quiescence-search counterpart: MVV-LVA only, no TT
// move or killer bonuses (quiescence doesn't probe killers).
func orderCaptures(pos *board.Position, moves board.MoveList) []scoredMove {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: mvvLvaScore(pos, m)}
	}
	insertionSortDescending(scored)
	return scored
}

func scoreMove(pos *board.Position, m board.Move, ttMove uint16, killers *KillerTable, ply int) int {
	if board.EncodeMove(m) == ttMove {
		return ttMoveScore
	}
	if m.IsCapture() || m.IsPromotion() {
		return mvvLvaScore(pos, m)
	}
	if killers.isKiller1(ply, m) {
		return killer1Score
	}
	if killers.isKiller2(ply, m) {
		return killer2Score
	}
	return 0
}

// mvvLvaScore implements 10*value(victim) - value(attacker), with
// en-passant victims priced as pawns and promotions adding 10*value(promo).
func mvvLvaScore(pos *board.Position, m board.Move) int {
	score := 0
	if m.IsCapture() {
		victim := board.Pawn
		if m.Type != board.EnPassant {
			victim = pos.PieceAt(m.To).Type
		}
		attacker := pos.PieceAt(m.From).Type
		score = 10*pieceValueMVVLVA[victim] - pieceValueMVVLVA[attacker]
	}
	if m.IsPromotion() {
		score += 10 * pieceValueMVVLVA[m.Promotion]
	}
	return score
}

func insertionSortDescending(s []scoredMove) {
	for i := 1; i < len(s); i++ {
		key := s[i]
		j := i - 1
		for j >= 0 && s[j].score < key.score {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = key
	}
}
