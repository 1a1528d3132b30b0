package model

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/RovarQRoom/gochess/internal/board"
	"github.com/RovarQRoom/gochess/internal/engine"
	"github.com/RovarQRoom/gochess/internal/ws"
)

const initialClockTime = 600 * time.Second

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNoPiece     = errors.New("no piece at from square")
	ErrIllegalMove = errors.New("invalid move, not legal")
	ErrOutOfBounds = errors.New("invalid move, out of bounds")
	ErrGameFull    = errors.New("game is full")
	ErrNotInGame   = errors.New("player is not in this game")
	ErrNoDrawOffer = errors.New("no draw offer to accept")
)

// GameConnections holds the websocket connections for a single game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game owns one long-lived position plus everything around it: players,
// clocks, result resolution, observers, and an optional engine opponent.
type Game struct {
	ID          string
	mu          sync.Mutex
	pos         *board.Position
	toMove      board.Color
	moveHistory []Move
	resolve     *string
	drawOffer   *board.Color
	lastMove    *SimpleMove
	sound       string
	players     Players
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
	ai          *engine.Engine
	logger      zerolog.Logger
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// GameState is the snapshot broadcast to clients after every change.
type GameState struct {
	Sound           string                `json:"sound"`
	Board           [8][8]*board.Piece    `json:"board"`
	ToMove          board.Color           `json:"toMove"`
	MoveHistory     []Move                `json:"moveHistory"`
	CapturedPieces  board.CapturedPieces  `json:"capturedPieces"`
	CastlingRights  board.CastlingRights  `json:"castlingRights"`
	EnPassantTarget *board.Square         `json:"enPassantTarget"`
	IsCheck         bool                  `json:"isCheck"`
	Resolve         *string               `json:"resolve"`
	DrawOffer       *board.Color          `json:"drawOffer"`
	Players         Players               `json:"players"`
	LastMove        *SimpleMove           `json:"lastMove"`
}

func NewGame(id string, logger zerolog.Logger) *Game {
	return &Game{
		ID:          id,
		pos:         board.NewPosition(),
		toMove:      board.White,
		moveHistory: make([]Move, 0),
		connections: NewGameConnections(),
		whiteClock:  NewClock(initialClockTime),
		blackClock:  NewClock(initialClockTime),
		logger:      logger.With().Str("game", id).Logger(),
	}
}

// NewGameWithEngine creates a game where black is played by the search
// engine at the given difficulty.
func NewGameWithEngine(id string, difficulty int, logger zerolog.Logger) *Game {
	g := NewGame(id, logger)
	g.ai = engine.New(board.Black, difficulty, g.logger)
	g.players.Black = ClientPlayer{
		ID:       "engine",
		Color:    board.Black,
		TimeLeft: int(initialClockTime.Milliseconds() / 100),
	}
	return g
}

func (g *Game) AddPlayer(playerID string) (board.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{
			ID:       playerID,
			Color:    board.White,
			TimeLeft: int(initialClockTime.Milliseconds() / 100),
		}
		return board.White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{
			ID:       playerID,
			Color:    board.Black,
			TimeLeft: int(initialClockTime.Milliseconds() / 100),
		}
		return board.Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshotState()
}

// snapshotState derives the client view from the position. Callers hold
// the game mutex. Pieces are copied by value: the snapshot is serialized
// after the mutex is released, while the engine goroutine may be mutating
// the live grid.
func (g *Game) snapshotState() GameState {
	var grid [8][8]*board.Piece
	for row := range g.pos.Grid {
		for col, piece := range g.pos.Grid[row] {
			if piece != nil {
				cp := *piece
				grid[row][col] = &cp
			}
		}
	}
	return GameState{
		Sound:           g.sound,
		Board:           grid,
		ToMove:          g.toMove,
		MoveHistory:     append([]Move(nil), g.moveHistory...),
		CapturedPieces:  g.pos.Captured,
		CastlingRights:  g.pos.Rights,
		EnPassantTarget: g.pos.EnPassantTarget,
		IsCheck:         g.pos.IsInCheck(g.toMove),
		Resolve:         g.resolve,
		DrawOffer:       g.drawOffer,
		Players:         g.players,
		LastMove:        g.lastMove,
	}
}

// LegalMoves exposes the destinations for the piece at (row, col).
func (g *Game) LegalMoves(row, col int) []board.Square {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.pos.LegalMoves(board.Square{Row: row, Col: col})
}

func (g *Game) isPlayerInGame(playerID string) bool {
	_, ok := g.playerColor(playerID)
	return ok
}

func (g *Game) playerColor(playerID string) (board.Color, bool) {
	if g.players.White.ID != "" && g.players.White.ID == playerID {
		return board.White, true
	}
	if g.players.Black.ID != "" && g.players.Black.ID == playerID {
		return board.Black, true
	}
	return "", false
}

// canSpectate allows open connections while a seat is still empty.
func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// MakeMove validates and executes a player's move.
func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolve != nil {
		return ErrGameOver
	}
	if !move.From.InBounds() || !move.To.InBounds() {
		return ErrOutOfBounds
	}
	piece := g.pos.PieceAt(move.From.Row, move.From.Col)
	if piece == nil {
		return ErrNoPiece
	}
	if piece.Color != g.toMove {
		return ErrNotYourTurn
	}
	mover := g.players.White
	if g.toMove == board.Black {
		mover = g.players.Black
	}
	if mover.ID != "" && mover.ID != playerID {
		return ErrNotYourTurn
	}

	legal := false
	for _, to := range g.pos.LegalMoves(move.From) {
		if to == move.To {
			legal = true
			break
		}
	}
	if !legal {
		return ErrIllegalMove
	}

	g.applyMove(move.From, move.To)
	return nil
}

// applyMove executes a validated move and everything that follows it:
// clocks, history, result resolution, broadcast, and the engine's reply.
// Callers hold the game mutex.
func (g *Game) applyMove(from, to board.Square) {
	if g.toMove == board.White {
		g.whiteClock.Stop()
	} else {
		g.blackClock.Stop()
	}

	g.pos.ApplyMove(from, to)
	rec := g.pos.History[len(g.pos.History)-1]

	g.sound = "move"
	if rec.Captured != nil {
		g.sound = "capture"
	}

	ply := plyFromRecord(rec)
	if rec.Color == board.White {
		g.moveHistory = append(g.moveHistory, Move{WhitePly: ply})
	} else if len(g.moveHistory) > 0 {
		g.moveHistory[len(g.moveHistory)-1].BlackPly = ply
	} else {
		g.moveHistory = append(g.moveHistory, Move{BlackPly: ply})
	}
	g.lastMove = &SimpleMove{From: from, To: to}

	// A pending draw offer lapses once a move is played.
	g.drawOffer = nil

	g.toMove = g.toMove.Opponent()
	inCheck := g.pos.IsInCheck(g.toMove)
	if inCheck {
		g.sound = "check"
	}

	switch {
	case !g.pos.HasAnyLegalMove(g.toMove):
		result := "stalemate"
		if inCheck {
			result = "checkmate"
		}
		g.resolve = &result
	case g.pos.IsDrawByFiftyMoveRule(),
		g.pos.IsDrawByInsufficientMaterial(),
		g.pos.IsDrawByRepetitionHeuristic():
		result := "draw"
		g.resolve = &result
	}

	if g.resolve == nil {
		if g.toMove == board.White {
			g.whiteClock.Start()
		} else {
			g.blackClock.Start()
		}
	}
	g.players.White.TimeLeft = int(g.whiteClock.GetTimeLeft().Milliseconds() / 100)
	g.players.Black.TimeLeft = int(g.blackClock.GetTimeLeft().Milliseconds() / 100)

	go g.broadcastState()

	if g.ai != nil && g.resolve == nil && g.toMove == g.ai.Color() {
		snapshot := g.pos.Clone()
		go g.playEngineMove(snapshot)
	}
}

// Resign ends the game immediately in the opponent's favor.
func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolve != nil {
		return ErrGameOver
	}
	color, ok := g.playerColor(playerID)
	if !ok {
		return ErrNotInGame
	}

	result := string(color) + "_resigned"
	g.resolve = &result
	g.whiteClock.Stop()
	g.blackClock.Stop()

	go g.broadcastState()
	return nil
}

// OfferDraw records a standing draw offer from the player. The offer
// lapses if either side plays a move before it is accepted.
func (g *Game) OfferDraw(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolve != nil {
		return ErrGameOver
	}
	color, ok := g.playerColor(playerID)
	if !ok {
		return ErrNotInGame
	}

	g.drawOffer = &color

	go g.broadcastState()
	return nil
}

// AcceptDraw resolves the game as drawn if the opponent's offer stands.
func (g *Game) AcceptDraw(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolve != nil {
		return ErrGameOver
	}
	color, ok := g.playerColor(playerID)
	if !ok {
		return ErrNotInGame
	}
	if g.drawOffer == nil || *g.drawOffer == color {
		return ErrNoDrawOffer
	}

	result := "draw"
	g.resolve = &result
	g.drawOffer = nil
	g.whiteClock.Stop()
	g.blackClock.Stop()

	go g.broadcastState()
	return nil
}

// playEngineMove runs the search on a snapshot outside the game lock and
// applies the recommendation if the game is still waiting on the engine.
func (g *Game) playEngineMove(snapshot *board.Position) {
	m, err := g.ai.BestMove(snapshot)
	if err != nil {
		g.logger.Error().Err(err).Msg("engine search failed")
		return
	}
	if m == nil {
		// No legal move: the position resolves itself as checkmate or
		// stalemate on the main path.
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.resolve != nil || g.toMove != g.ai.Color() {
		return
	}
	g.applyMove(m.From, m.To)
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and reject the new one.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	g.mu.Lock()
	payload, err := json.Marshal(g.snapshotState())
	g.mu.Unlock()
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to marshal game state")
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		})
		if err != nil {
			g.logger.Warn().Err(err).Str("player", playerID).Msg("dropping dead connection")
			g.connections.mu.Lock()
			delete(g.connections.connections, playerID)
			g.connections.mu.Unlock()
		}
	}
}
