package engine

import "math"

// MaxLMRDepth/MaxLMRMoves bound the precomputed late-move-reduction table.
const (
	MaxLMRDepth = 64
	MaxLMRMoves = 64
)

var lmrTable [MaxLMRDepth][MaxLMRMoves]int

func init() {
	for d := 1; d < MaxLMRDepth; d++ {
		for m := 1; m < MaxLMRMoves; m++ {
			lmrTable[d][m] = int(math.Floor(math.Log(float64(d)) * math.Log(float64(m)) / 2))
		}
	}
}

// lmrReduction returns the table entry for (depth, moveIndex), clamped into
// the table's bounds.
func lmrReduction(depth, moveIndex int) int {
	if depth >= MaxLMRDepth {
		depth = MaxLMRDepth - 1
	}
	if moveIndex >= MaxLMRMoves {
		moveIndex = MaxLMRMoves - 1
	}
	return lmrTable[depth][moveIndex]
}
