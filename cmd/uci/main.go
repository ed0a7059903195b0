package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"knightcore/board"
	"knightcore/engine"
)

func main() {
	uciLoop()
}

func uciLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)

	b := board.New()
	search := engine.NewSearch(0)
	var history []uint64
	var stop atomic.Bool

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}

		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name knightcore")
			fmt.Println("id author knightcore")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			b = board.New()
			search = engine.NewSearch(0)
			history = nil
		case "quit":
			return
		case "stop":
			stop.Store(true)
		case "position":
			b, history = handlePosition(tokens)
		case "go":
			handleGo(b, search, history, &stop, tokens)
		case "setoption":
			// no tunable options exposed
		default:
			fmt.Println("info string unknown command", tokens[0])
		}
	}
}

func handlePosition(tokens []string) (*board.Board, []uint64) {
	if len(tokens) < 2 {
		return board.New(), nil
	}

	var b *board.Board
	idx := 2
	switch strings.ToLower(tokens[1]) {
	case "startpos":
		b = board.New()
	case "fen":
		end := idx
		for end < len(tokens) && strings.ToLower(tokens[end]) != "moves" {
			end++
		}
		fen := strings.Join(tokens[idx:end], " ")
		parsed, err := board.NewFromFEN(fen)
		if err != nil {
			fmt.Println("info string invalid fen:", err)
			return board.New(), nil
		}
		b = parsed
		idx = end
	default:
		return board.New(), nil
	}

	var history []uint64
	if idx < len(tokens) && strings.ToLower(tokens[idx]) == "moves" {
		for _, moveText := range tokens[idx+1:] {
			legal := b.GetLegalMoves()
			m, ok := board.ParseUCIMove(strings.ToLower(moveText), legal)
			if !ok {
				fmt.Println("info string illegal move in position command:", moveText)
				break
			}
			history = append(history, b.Position().Hash())
			b.MakeMoveUnchecked(m)
		}
	}
	return b, history
}

func handleGo(b *board.Board, search *engine.Search, history []uint64, stop *atomic.Bool, tokens []string) {
	stop.Store(false)

	var wtime, btime, winc, binc, movetime, depth int
	for i := 1; i < len(tokens); i++ {
		switch strings.ToLower(tokens[i]) {
		case "wtime":
			i++
			wtime = atoi(tokens, i)
		case "btime":
			i++
			btime = atoi(tokens, i)
		case "winc":
			i++
			winc = atoi(tokens, i)
		case "binc":
			i++
			binc = atoi(tokens, i)
		case "movetime":
			i++
			movetime = atoi(tokens, i)
		case "depth":
			i++
			depth = atoi(tokens, i)
		case "infinite":
			depth = 0
			movetime = 0
		}
	}

	pos := b.Position()
	remaining, increment := wtime, winc
	if pos.SideToMove == board.Black {
		remaining, increment = btime, binc
	}

	budget := allocateTime(remaining, increment, movetime)

	cfg := engine.SearchConfig{
		MaxDepth:   depth,
		TimeBudget: budget,
		Stop:       stop,
	}

	best, _ := search.FindBestMove(pos, cfg, history, func(info engine.SearchInfo) {
		scoreField := fmt.Sprintf("cp %d", info.Score)
		if moves, isMate := mateMoves(info.Score); isMate {
			scoreField = fmt.Sprintf("mate %d", moves)
		}
		var nps int64
		if info.Elapsed > 0 {
			nps = int64(float64(info.Nodes) / info.Elapsed.Seconds())
		}
		fmt.Printf("info depth %d score %s nodes %d nps %d time %d pv %s\n",
			info.Depth, scoreField, info.Nodes, nps, info.Elapsed.Milliseconds(), pvString(info.PV))
	})

	if best.IsNull() {
		fmt.Println("bestmove 0000")
		return
	}
	fmt.Printf("bestmove %s\n", best.String())
}

// allocateTime implements allocated = min(remaining/3, remaining/30 +
// increment), floored at increment-50ms when increment > 0 so a large
// increment against a near-empty clock still gets most of that increment
// rather than being clamped down to almost nothing by the min.
func allocateTime(remainingMS, incrementMS, moveTimeMS int) time.Duration {
	if moveTimeMS > 0 {
		return time.Duration(moveTimeMS) * time.Millisecond
	}
	if remainingMS <= 0 {
		return 0
	}
	third := remainingMS / 3
	perMove := remainingMS/30 + incrementMS
	target := third
	if perMove < target {
		target = perMove
	}
	if incrementMS > 0 {
		floor := incrementMS - 50
		if floor > target {
			target = floor
		}
	}
	if target < 0 {
		target = 0
	}
	return time.Duration(target) * time.Millisecond
}

// mateMoves reports the signed number of moves to mate for a search score,
// and whether the score is a mate score at all (within the engine's mate
// band, well above any reachable evaluation score).
func mateMoves(score int) (moves int, isMate bool) {
	const mateBand = engine.ScoreMate - 1000
	switch {
	case score >= mateBand:
		plies := engine.ScoreMate - score
		return (plies + 1) / 2, true
	case score <= -mateBand:
		plies := engine.ScoreMate + score
		return -(plies + 1) / 2, true
	default:
		return 0, false
	}
}

func pvString(pv []board.Move) string {
	parts := make([]string, len(pv))
	for i, m := range pv {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

func atoi(tokens []string, i int) int {
	if i >= len(tokens) {
		return 0
	}
	v, _ := strconv.Atoi(tokens[i])
	return v
}
