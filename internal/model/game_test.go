package model

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/RovarQRoom/gochess/internal/board"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	return NewGame("test-game", zerolog.Nop())
}

func TestAddPlayerAssignsColors(t *testing.T) {
	g := newTestGame(t)

	color, err := g.AddPlayer("alice")
	if err != nil || color != board.White {
		t.Fatalf("first player got (%v, %v), want white", color, err)
	}
	color, err = g.AddPlayer("bob")
	if err != nil || color != board.Black {
		t.Fatalf("second player got (%v, %v), want black", color, err)
	}
	if _, err := g.AddPlayer("carol"); !errors.Is(err, ErrGameFull) {
		t.Fatalf("third player got %v, want ErrGameFull", err)
	}
}

func TestMakeMoveEnforcesTurnOrder(t *testing.T) {
	g := newTestGame(t)
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	e4 := WSMove{From: board.Square{Row: 6, Col: 4}, To: board.Square{Row: 4, Col: 4}}
	e5 := WSMove{From: board.Square{Row: 1, Col: 4}, To: board.Square{Row: 3, Col: 4}}

	if err := g.MakeMove("bob", e5); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("black moving first got %v, want ErrNotYourTurn", err)
	}
	if err := g.MakeMove("bob", e4); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("black moving white's pawn got %v, want ErrNotYourTurn", err)
	}
	if err := g.MakeMove("alice", e4); err != nil {
		t.Fatalf("white's opening move failed: %v", err)
	}
	if err := g.MakeMove("alice", e5); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("white moving black's pawn got %v, want ErrNotYourTurn", err)
	}
	if err := g.MakeMove("bob", e5); err != nil {
		t.Fatalf("black's reply failed: %v", err)
	}

	state := g.GetState()
	if len(state.MoveHistory) != 1 {
		t.Fatalf("move history length = %d, want 1 paired entry", len(state.MoveHistory))
	}
	if state.MoveHistory[0].WhitePly == nil || state.MoveHistory[0].BlackPly == nil {
		t.Fatalf("expected both plies recorded, got %+v", state.MoveHistory[0])
	}
}

func TestMakeMoveRejectsBadInput(t *testing.T) {
	g := newTestGame(t)
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	tests := []struct {
		name string
		move WSMove
		want error
	}{
		{
			name: "out of bounds",
			move: WSMove{From: board.Square{Row: 6, Col: 4}, To: board.Square{Row: 8, Col: 4}},
			want: ErrOutOfBounds,
		},
		{
			name: "empty source",
			move: WSMove{From: board.Square{Row: 4, Col: 4}, To: board.Square{Row: 3, Col: 4}},
			want: ErrNoPiece,
		},
		{
			name: "pawn cannot triple step",
			move: WSMove{From: board.Square{Row: 6, Col: 4}, To: board.Square{Row: 3, Col: 4}},
			want: ErrIllegalMove,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.MakeMove("alice", tt.move); !errors.Is(err, tt.want) {
				t.Fatalf("MakeMove = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCheckmateResolvesGame(t *testing.T) {
	g := newTestGame(t)
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	steps := []struct {
		player string
		move   WSMove
	}{
		{"alice", WSMove{From: board.Square{Row: 6, Col: 5}, To: board.Square{Row: 5, Col: 5}}},
		{"bob", WSMove{From: board.Square{Row: 1, Col: 4}, To: board.Square{Row: 3, Col: 4}}},
		{"alice", WSMove{From: board.Square{Row: 6, Col: 6}, To: board.Square{Row: 4, Col: 6}}},
		{"bob", WSMove{From: board.Square{Row: 0, Col: 3}, To: board.Square{Row: 4, Col: 7}}},
	}
	for _, s := range steps {
		if err := g.MakeMove(s.player, s.move); err != nil {
			t.Fatalf("move %+v by %s failed: %v", s.move, s.player, err)
		}
	}

	state := g.GetState()
	if state.Resolve == nil || *state.Resolve != "checkmate" {
		t.Fatalf("resolve = %v, want checkmate", state.Resolve)
	}
	if !state.IsCheck {
		t.Fatal("expected the final state to report check")
	}

	late := WSMove{From: board.Square{Row: 6, Col: 0}, To: board.Square{Row: 5, Col: 0}}
	if err := g.MakeMove("alice", late); !errors.Is(err, ErrGameOver) {
		t.Fatalf("move after checkmate got %v, want ErrGameOver", err)
	}
}

// Later moves must not leak into a state snapshot that is serialized
// outside the game lock, possibly concurrently with the engine's reply.
func TestGetStateSnapshotIsDetached(t *testing.T) {
	g := newTestGame(t)
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	before := g.GetState()

	e4 := WSMove{From: board.Square{Row: 6, Col: 4}, To: board.Square{Row: 4, Col: 4}}
	if err := g.MakeMove("alice", e4); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	pawn := before.Board[6][4]
	if pawn == nil {
		t.Fatal("snapshot lost the e2 pawn after a later move")
	}
	if pawn.HasMoved || pawn.Square != (board.Square{Row: 6, Col: 4}) {
		t.Fatalf("later move mutated the snapshot's pawn: %+v", pawn)
	}
	if before.Board[4][4] != nil {
		t.Fatal("later move appeared on the snapshot board")
	}
}

func TestResignEndsGame(t *testing.T) {
	g := newTestGame(t)
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	if err := g.Resign("carol"); !errors.Is(err, ErrNotInGame) {
		t.Fatalf("outsider resign got %v, want ErrNotInGame", err)
	}
	if err := g.Resign("bob"); err != nil {
		t.Fatalf("resign failed: %v", err)
	}

	state := g.GetState()
	if state.Resolve == nil || *state.Resolve != "black_resigned" {
		t.Fatalf("resolve = %v, want black_resigned", state.Resolve)
	}
	if err := g.Resign("alice"); !errors.Is(err, ErrGameOver) {
		t.Fatalf("resign after game over got %v, want ErrGameOver", err)
	}
}

func TestDrawOfferLifecycle(t *testing.T) {
	g := newTestGame(t)
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	if err := g.AcceptDraw("bob"); !errors.Is(err, ErrNoDrawOffer) {
		t.Fatalf("accept without offer got %v, want ErrNoDrawOffer", err)
	}
	if err := g.OfferDraw("alice"); err != nil {
		t.Fatalf("offer failed: %v", err)
	}
	if err := g.AcceptDraw("alice"); !errors.Is(err, ErrNoDrawOffer) {
		t.Fatalf("accepting your own offer got %v, want ErrNoDrawOffer", err)
	}

	state := g.GetState()
	if state.DrawOffer == nil || *state.DrawOffer != board.White {
		t.Fatalf("draw offer = %v, want white", state.DrawOffer)
	}

	if err := g.AcceptDraw("bob"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	state = g.GetState()
	if state.Resolve == nil || *state.Resolve != "draw" {
		t.Fatalf("resolve = %v, want draw", state.Resolve)
	}
}

func TestDrawOfferLapsesAfterMove(t *testing.T) {
	g := newTestGame(t)
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	if err := g.OfferDraw("bob"); err != nil {
		t.Fatalf("offer failed: %v", err)
	}
	e4 := WSMove{From: board.Square{Row: 6, Col: 4}, To: board.Square{Row: 4, Col: 4}}
	if err := g.MakeMove("alice", e4); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	if err := g.AcceptDraw("alice"); !errors.Is(err, ErrNoDrawOffer) {
		t.Fatalf("accepting a lapsed offer got %v, want ErrNoDrawOffer", err)
	}
}

func TestEngineGameRepliesToHumanMove(t *testing.T) {
	g := NewGameWithEngine("engine-game", 1, zerolog.Nop())

	color, err := g.AddPlayer("alice")
	if err != nil || color != board.White {
		t.Fatalf("human got (%v, %v), want white", color, err)
	}

	e4 := WSMove{From: board.Square{Row: 6, Col: 4}, To: board.Square{Row: 4, Col: 4}}
	if err := g.MakeMove("alice", e4); err != nil {
		t.Fatalf("human move failed: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		state := g.GetState()
		if state.ToMove == board.White && len(state.MoveHistory) == 1 &&
			state.MoveHistory[0].BlackPly != nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("engine never replied to the opening move")
}
