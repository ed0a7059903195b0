package engine

import (
	"sync/atomic"
	"time"

	"knightcore/board"
)

// SearchConfig bundles the tunable parameters and external stop signal a
// single findBestMove call needs.
type SearchConfig struct {
	MaxDepth   int
	TimeBudget time.Duration
	Stop       *atomic.Bool // external stop flag, polled every 1024 nodes
}

// SearchInfo is the per-iteration progress callback payload.
type SearchInfo struct {
	Depth     int
	Score     int
	Nodes     uint64
	Elapsed   time.Duration
	PV        []board.Move
}

// Search owns a transposition table and the mutable search-time state
// (killers, node counter, stop flag) for a sequence of findBestMove calls
// against the same table.
type Search struct {
	TT      *TranspositionTable
	killers KillerTable

	nodes      uint64
	deadline   time.Time
	stop       *atomic.Bool
	stopped    bool
	rep        *repetitionTracker
}

// NewSearch returns a Search backed by a freshly allocated transposition
// table of the given byte size (0 selects the default).
func NewSearch(ttBytes int) *Search {
	return &Search{TT: NewTranspositionTable(ttBytes)}
}

// InfoFunc receives one SearchInfo per completed iterative-deepening
// iteration; nil disables the callback.
type InfoFunc func(SearchInfo)

// FindBestMove runs iterative deepening from pos (worked in place via
// make/unmake) up to cfg.MaxDepth or until cfg.TimeBudget/cfg.Stop trips.
// gameHistory supplies the hashes of positions played before this call, for
// repetition detection that spans prior moves in the game.
func (s *Search) FindBestMove(pos *board.Position, cfg SearchConfig, gameHistory []uint64, onInfo InfoFunc) (board.Move, int) {
	s.TT.NewSearch()
	s.killers.Clear()
	s.nodes = 0
	s.stopped = false
	s.stop = cfg.Stop
	s.rep = newRepetitionTracker(gameHistory)
	s.rep.push(pos.Hash())
	s.deadline = time.Time{}
	if cfg.TimeBudget > 0 {
		s.deadline = time.Now().Add(cfg.TimeBudget)
	}

	var best board.Move
	bestScore := -ScoreInfinity
	start := time.Now()

	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = MaxLMRDepth - 1
	}

	for depth := 1; depth <= maxDepth; depth++ {
		legal := board.GenerateLegal(pos)
		if len(legal) == 0 {
			break
		}

		ttMove := uint16(0xFFFF)
		if e, ok := s.TT.Probe(pos.Hash(), 0); ok {
			ttMove = e.Move
		}
		ordered := orderMoves(pos, legal, ttMove, &s.killers, 0)

		alpha, beta := -ScoreInfinity, ScoreInfinity
		iterBest := best
		iterScore := -ScoreInfinity
		first := true

		for _, sm := range ordered {
			m := sm.move
			undo := pos.MakeMove(m)
			s.rep.push(pos.Hash())

			var score int
			if first {
				score = -s.negamax(pos, depth-1, -beta, -alpha, 1, board.IsInCheck(pos, pos.SideToMove), true)
			} else {
				score = -s.negamax(pos, depth-1, -alpha-1, -alpha, 1, board.IsInCheck(pos, pos.SideToMove), true)
				if score > alpha && score < beta {
					score = -s.negamax(pos, depth-1, -beta, -alpha, 1, board.IsInCheck(pos, pos.SideToMove), true)
				}
			}

			s.rep.pop()
			pos.UnmakeMove(m, undo)

			if s.stopped {
				break
			}
			if first || score > iterScore {
				iterScore = score
				iterBest = m
			}
			if score > alpha {
				alpha = score
			}
			first = false
		}

		if s.stopped {
			break
		}

		best = iterBest
		bestScore = iterScore
		s.TT.Store(pos.Hash(), bestScore, depth, BoundExact, board.EncodeMove(best), 0)

		if onInfo != nil {
			onInfo(SearchInfo{
				Depth:   depth,
				Score:   bestScore,
				Nodes:   s.nodes,
				Elapsed: time.Since(start),
				PV:      s.extractPV(pos, depth),
			})
		}

		if bestScore >= ScoreMate-maxDepth {
			break
		}
	}

	return best, bestScore
}

// shouldStop polls the wall-clock deadline and the external stop flag every
// 1024 nodes.
func (s *Search) shouldStop() bool {
	s.nodes++
	if s.nodes&1023 != 0 {
		return s.stopped
	}
	if s.stop != nil && s.stop.Load() {
		s.stopped = true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.stopped = true
	}
	return s.stopped
}

// negamax runs a fail-soft alpha-beta search with alpha < beta, depth >= 0.
func (s *Search) negamax(pos *board.Position, depth, alpha, beta, ply int, inCheck bool, nullOk bool) int {
	if s.shouldStop() {
		return 0
	}

	isPV := beta-alpha > 1

	if ply > 0 {
		if pos.HalfmoveClock >= 100 || s.rep.isRepetitionDraw(pos.HalfmoveClock) {
			return ScoreDraw
		}
	}

	if depth <= 0 {
		return s.quiescence(pos, alpha, beta, ply)
	}

	originalAlpha := alpha
	hash := pos.Hash()
	var ttMoveCode uint16 = 0xFFFF

	if entry, ok := s.TT.Probe(hash, ply); ok {
		ttMoveCode = entry.Move
		if entry.Depth >= depth && !isPV {
			switch entry.Bound {
			case BoundExact:
				return entry.Score
			case BoundLower:
				if entry.Score >= beta {
					return entry.Score
				}
			case BoundUpper:
				if entry.Score <= alpha {
					return entry.Score
				}
			}
		}
	}

	if nullOk && !isPV && !inCheck && depth >= 3 && hasNonPawnMaterial(pos, pos.SideToMove) {
		prevEP, prevHash := pos.MakeNullMove()
		s.rep.push(pos.Hash())
		score := -s.negamax(pos, depth-1-2, -beta, -beta+1, ply+1, false, false)
		s.rep.pop()
		pos.UnmakeNullMove(prevEP, prevHash)
		if score >= beta {
			return beta
		}
	}

	legal := board.GenerateLegal(pos)
	if len(legal) == 0 {
		if inCheck {
			return -(ScoreMate - ply)
		}
		return ScoreDraw
	}

	ordered := orderMoves(pos, legal, ttMoveCode, &s.killers, ply)

	best := -ScoreInfinity
	var bestMove board.Move
	cutoff := false

	for idx, sm := range ordered {
		m := sm.move
		undo := pos.MakeMove(m)
		s.rep.push(pos.Hash())
		givesCheck := board.IsInCheck(pos, pos.SideToMove)

		var score int
		switch {
		case idx == 0:
			score = -s.negamax(pos, depth-1, -beta, -alpha, ply+1, givesCheck, true)
		default:
			reducible := depth >= 3 && idx >= 2 && !inCheck && !givesCheck && !m.IsCapture() && !m.IsPromotion()
			if reducible {
				r := lmrReduction(depth, idx)
				if r > depth-2 {
					r = depth - 2
				}
				if r < 0 {
					r = 0
				}
				score = -s.negamax(pos, depth-1-r, -alpha-1, -alpha, ply+1, givesCheck, true)
				if score > alpha {
					score = -s.negamax(pos, depth-1, -alpha-1, -alpha, ply+1, givesCheck, true)
				}
			} else {
				score = -s.negamax(pos, depth-1, -alpha-1, -alpha, ply+1, givesCheck, true)
			}
			if score > alpha && score < beta {
				score = -s.negamax(pos, depth-1, -beta, -alpha, ply+1, givesCheck, true)
			}
		}

		s.rep.pop()
		pos.UnmakeMove(m, undo)

		if s.stopped {
			return 0
		}

		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			cutoff = true
			if !m.IsCapture() && !m.IsPromotion() {
				s.killers.Record(ply, m)
			}
			break
		}
	}

	var bound Bound
	switch {
	case cutoff:
		bound = BoundLower
	case best > originalAlpha:
		bound = BoundExact
	default:
		bound = BoundUpper
	}
	s.TT.Store(hash, best, depth, bound, board.EncodeMove(bestMove), ply)

	return best
}

// quiescence extends the search along capture sequences past the horizon:
// stand-pat, captures only, negated-window recursion, TT store at depth 0.
func (s *Search) quiescence(pos *board.Position, alpha, beta, ply int) int {
	if s.shouldStop() {
		return 0
	}

	hash := pos.Hash()
	if entry, ok := s.TT.Probe(hash, ply); ok {
		switch entry.Bound {
		case BoundExact:
			return entry.Score
		case BoundLower:
			if entry.Score >= beta {
				return entry.Score
			}
		case BoundUpper:
			if entry.Score <= alpha {
				return entry.Score
			}
		}
	}

	standPat := Evaluate(pos)
	if standPat >= beta {
		return beta
	}
	best := standPat
	if standPat > alpha {
		alpha = standPat
	}

	captures := board.GenerateLegalCaptures(pos)
	ordered := orderCaptures(pos, captures)

	bound := BoundUpper
	for _, sm := range ordered {
		m := sm.move
		undo := pos.MakeMove(m)
		s.rep.push(pos.Hash())
		score := -s.quiescence(pos, -beta, -alpha, ply+1)
		s.rep.pop()
		pos.UnmakeMove(m, undo)

		if s.stopped {
			return 0
		}
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			bound = BoundLower
			break
		}
	}
	if best > alpha && bound != BoundLower {
		bound = BoundExact
	}
	s.TT.Store(hash, best, 0, bound, 0xFFFF, ply)
	return best
}

// hasNonPawnMaterial gates null-move pruning against zugzwang: with only
// pawns and a king left, a null move's "skip a turn" assumption tends to be
// wrong.
func hasNonPawnMaterial(pos *board.Position, side board.Color) bool {
	for pt := board.Knight; pt <= board.Queen; pt++ {
		if pos.PiecesOf(side, pt) != 0 {
			return true
		}
	}
	return false
}

// extractPV walks the TT following best moves from a clone of pos, stopping
// at a missing entry, an illegal move, or a repeated position (cycle guard).
// It works on a clone so the live search position is never disturbed.
func (s *Search) extractPV(pos *board.Position, maxLen int) []board.Move {
	work := pos.Clone()
	var pv []board.Move
	seen := make(map[uint64]bool)

	for len(pv) < maxLen {
		hash := work.Hash()
		if seen[hash] {
			break
		}
		seen[hash] = true

		entry, ok := s.TT.Probe(hash, 0)
		if !ok || entry.Move == 0xFFFF {
			break
		}
		m := board.DecodeMove(entry.Move)
		legal := false
		for _, lm := range board.GenerateLegal(work) {
			if lm == m {
				legal = true
				break
			}
		}
		if !legal {
			break
		}
		work.MakeMove(m)
		pv = append(pv, m)
	}

	return pv
}
