package engine

import "github.com/RovarQRoom/gochess/internal/board"

const (
	scoreInfinity = 1 << 30
)

type ttEntry struct {
	score int
	depth int
}

// minimax walks the game tree with alpha-beta bounds, recursing on a clone
// of the position after each candidate. Maximizing levels explore the
// engine's own moves, minimizing levels the opponent's.
func (e *Engine) minimax(pos *board.Position, depth, alpha, beta int, maximizing bool) int {
	e.nodes++

	sideToMove := e.color
	if !maximizing {
		sideToMove = e.color.Opponent()
	}

	key := pos.Hash(sideToMove)
	if entry, ok := e.tt[key]; ok && entry.depth >= depth {
		return entry.score
	}

	if depth == 0 || pos.IsCheckmate(e.color) || pos.IsCheckmate(e.color.Opponent()) ||
		pos.IsStalemate(board.White) || pos.IsStalemate(board.Black) {
		score := e.evaluate(pos)
		e.tt[key] = ttEntry{score: score, depth: depth}
		return score
	}

	moves := collectMoves(pos, sideToMove)
	orderMoves(pos, moves)

	if maximizing {
		best := -scoreInfinity
		for _, m := range moves {
			clone := pos.Clone()
			clone.ApplyMove(m.From, m.To)
			score := e.minimax(clone, depth-1, alpha, beta, false)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				break
			}
		}
		e.tt[key] = ttEntry{score: best, depth: depth}
		return best
	}

	best := scoreInfinity
	for _, m := range moves {
		clone := pos.Clone()
		clone.ApplyMove(m.From, m.To)
		score := e.minimax(clone, depth-1, alpha, beta, true)
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if beta <= alpha {
			break
		}
	}
	e.tt[key] = ttEntry{score: best, depth: depth}
	return best
}

// collectMoves gathers every legal move for a color.
func collectMoves(pos *board.Position, c board.Color) []Move {
	moves := []Move{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := pos.Grid[row][col]
			if piece == nil || piece.Color != c {
				continue
			}
			for _, to := range pos.LegalMoves(piece.Square) {
				moves = append(moves, Move{From: piece.Square, To: to})
			}
		}
	}
	return moves
}
