package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/RovarQRoom/gochess/internal/board"
)

const (
	// Root positions busier than this get one depth level shaved off,
	// as long as the search stays above the floor.
	branchingThreshold = 30
	minSearchDepth     = 2

	timeBudgetPerLevel = 2 * time.Second
)

// Engine picks moves for one color via minimax with alpha-beta pruning
// over cloned positions. It is not safe for concurrent searches; callers
// run one search at a time and hand it a position snapshot.
type Engine struct {
	color      board.Color
	difficulty int
	maxDepth   int
	tt         map[uint64]ttEntry
	rng        *rand.Rand
	nodes      int
	logger     zerolog.Logger
}

// New builds an engine for the given color. Difficulty 1-4 controls search
// depth and the time budget; out-of-range values are clamped.
func New(color board.Color, difficulty int, logger zerolog.Logger) *Engine {
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 4 {
		difficulty = 4
	}
	return &Engine{
		color:      color,
		difficulty: difficulty,
		maxDepth:   difficulty + 1,
		tt:         make(map[uint64]ttEntry),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:     logger,
	}
}

func (e *Engine) Color() board.Color { return e.color }

// BestMove returns the engine's recommendation for the snapshot, or nil
// when the engine's color has no legal move at all. The search never
// mutates the snapshot; every candidate is explored on a clone.
func (e *Engine) BestMove(pos *board.Position) (m *Move, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine: search aborted: %v", r)
		}
	}()

	e.nodes = 0
	started := time.Now()

	moves := collectMoves(pos, e.color)
	if len(moves) == 0 {
		return nil, nil
	}
	if len(moves) == 1 {
		return &moves[0], nil
	}
	if e.difficulty <= 1 && pos.FullmoveNumber <= 3 {
		m := e.openingMove(pos, moves)
		return &m, nil
	}

	depth := e.maxDepth
	if len(moves) > branchingThreshold && depth > minSearchDepth {
		depth--
	}
	orderMoves(pos, moves)

	deadline := started.Add(time.Duration(e.difficulty) * timeBudgetPerLevel)
	alpha, beta := -scoreInfinity, scoreInfinity
	bestScore := -scoreInfinity
	var best *Move
	evaluated := 0

	for i := range moves {
		if evaluated > 0 && time.Now().After(deadline) {
			break
		}
		score := e.searchBranch(pos, moves[i], depth-1, alpha, beta)
		evaluated++
		if score > bestScore {
			bestScore = score
			best = &moves[i]
		}
		if bestScore > alpha {
			alpha = bestScore
		}
	}

	if best == nil {
		// Budget ran out before the first candidate finished; fall back
		// to a uniformly chosen legal move.
		best = &moves[e.rng.Intn(len(moves))]
	}

	e.logger.Debug().
		Int("nodes", e.nodes).
		Int("depth", depth).
		Int("score", bestScore).
		Dur("elapsed", time.Since(started)).
		Msg("search finished")

	return best, nil
}

// searchBranch evaluates one root candidate behind a recover boundary: a
// panic inside the subtree scores that branch neutral instead of aborting
// the whole search.
func (e *Engine) searchBranch(pos *board.Position, m Move, depth, alpha, beta int) (score int) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().
				Str("from", m.From.Notation()).
				Str("to", m.To.Notation()).
				Interface("panic", r).
				Msg("branch evaluation failed, scoring neutral")
			score = 0
		}
	}()
	clone := pos.Clone()
	clone.ApplyMove(m.From, m.To)
	return e.minimax(clone, depth, alpha, beta, false)
}

// openingMove is the fixed heuristic fast path for the easiest difficulty:
// push a central pawn two squares, else develop a knight toward the
// center, else take the head of the ordered list.
func (e *Engine) openingMove(pos *board.Position, moves []Move) Move {
	for _, m := range moves {
		piece := pos.Grid[m.From.Row][m.From.Col]
		if piece.Type == board.Pawn && (m.From.Col == 3 || m.From.Col == 4) &&
			abs(m.From.Row-m.To.Row) == 2 {
			return m
		}
	}
	for _, m := range moves {
		piece := pos.Grid[m.From.Row][m.From.Col]
		if piece.Type == board.Knight && (m.To.Col == 2 || m.To.Col == 5) {
			return m
		}
	}
	ordered := append([]Move(nil), moves...)
	orderMoves(pos, ordered)
	return ordered[0]
}
