package engine

import (
	"sort"

	"github.com/RovarQRoom/gochess/internal/board"
)

// Move is a candidate the engine can recommend.
type Move struct {
	From board.Square `json:"from"`
	To   board.Square `json:"to"`
}

// orderMoves sorts candidates to tighten alpha-beta pruning: captures by
// victim value minus a fraction of the aggressor's (MVV-LVA), plus a bonus
// for landing near the board center. Ordering never changes the proven
// value, only how fast the bounds close.
func orderMoves(pos *board.Position, moves []Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return orderingScore(pos, moves[i]) > orderingScore(pos, moves[j])
	})
}

func orderingScore(pos *board.Position, m Move) int {
	score := 0
	victim := pos.Grid[m.To.Row][m.To.Col]
	aggressor := pos.Grid[m.From.Row][m.From.Col]
	if victim != nil && aggressor != nil {
		score += pieceValue(victim.Type) - pieceValue(aggressor.Type)/10
	}
	score += 14 - centerDistance(m.To)
	return score
}

// centerDistance is twice the Manhattan distance from the board center
// (2 at the four center squares, 14 in the corners).
func centerDistance(sq board.Square) int {
	return abs(2*sq.Row-7) + abs(2*sq.Col-7)
}
