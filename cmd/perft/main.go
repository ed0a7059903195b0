package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"knightcore/board"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to the initial position)")
	depth := flag.Int("depth", 0, "perft depth (required)")
	divide := flag.Bool("divide", false, "print per-root-move node counts")
	detailed := flag.Bool("detailed", false, "print the captures/en-passant/castles/promotions/checks/checkmates breakdown")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse fen: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := board.PerftDivide(pos, *depth)
		type kv struct {
			move string
			n    uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m, n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].move < arr[j].move })
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.move, x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *detailed {
		start := time.Now()
		counts := board.PerftDetailed(pos, *depth)
		elapsed := time.Since(start)
		fmt.Printf("nodes %d captures %d ep %d castles %d promotions %d checks %d checkmates %d (%s)\n",
			counts.Nodes, counts.Captures, counts.EnPassant, counts.Castles, counts.Promotions, counts.Checks, counts.Checkmates, elapsed)
		return
	}

	start := time.Now()
	nodes := board.Perft(pos, *depth)
	elapsed := time.Since(start)
	nps := float64(nodes) / elapsed.Seconds()
	fmt.Printf("depth %d\tnodes %d\ttime %s\tnps %.0f\n", *depth, nodes, elapsed, nps)
}
