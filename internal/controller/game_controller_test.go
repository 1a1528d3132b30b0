package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/RovarQRoom/gochess/internal/middleware"
	"github.com/RovarQRoom/gochess/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	gameManager := service.NewGameManager(zerolog.Nop())
	gameService := service.NewGameService(gameManager)
	gameController := NewGameController(gameService)

	app := fiber.New()
	api := app.Group("/api", middleware.EnsurePlayerID())
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/create/engine", gameController.CreateEngineGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, playerID, body string) (int, map[string]json.RawMessage) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	payload := map[string]json.RawMessage{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("%s %s: decoding body: %v", method, target, err)
	}
	return resp.StatusCode, payload
}

func stringField(t *testing.T, payload map[string]json.RawMessage, key string) string {
	t.Helper()

	raw, ok := payload[key]
	if !ok {
		t.Fatalf("response missing %q field", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		t.Fatalf("field %q is not a string: %v", key, err)
	}
	return s
}

func TestCreateGameRequiresPlayerID(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/game/create", "", "")
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
}

func TestGameLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)

	status, payload := doJSON(t, app, http.MethodPost, "/api/game/create", "alice", "")
	if status != http.StatusOK {
		t.Fatalf("create status = %d, want 200", status)
	}
	gameID := stringField(t, payload, "game_id")
	if gameID == "" {
		t.Fatal("expected a game id")
	}

	status, payload = doJSON(t, app, http.MethodPost, "/api/game/join/"+gameID, "alice", "")
	if status != http.StatusOK {
		t.Fatalf("join status = %d, want 200", status)
	}
	if color := stringField(t, payload, "color"); color != "white" {
		t.Fatalf("first joiner got color %q, want white", color)
	}

	status, _ = doJSON(t, app, http.MethodGet, "/api/game/"+gameID, "alice", "")
	if status != http.StatusOK {
		t.Fatalf("state status = %d, want 200", status)
	}

	status, payload = doJSON(t, app, http.MethodGet, "/api/game/"+gameID+"/moves?row=6&col=4", "alice", "")
	if status != http.StatusOK {
		t.Fatalf("moves status = %d, want 200", status)
	}
	var moves []struct {
		Row int `json:"row"`
		Col int `json:"col"`
	}
	if err := json.Unmarshal(payload["moves"], &moves); err != nil {
		t.Fatalf("decoding moves: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("e-pawn has %d moves, want 2", len(moves))
	}
}

func TestGameEndpointsRejectBadInput(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodGet, "/api/game/no-such-game", "alice", "")
	if status != http.StatusNotFound {
		t.Fatalf("unknown game status = %d, want 404", status)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/game/join/no-such-game", "alice", "")
	if status != http.StatusNotFound {
		t.Fatalf("join unknown game status = %d, want 404", status)
	}

	_, payload := doJSON(t, app, http.MethodPost, "/api/game/create", "alice", "")
	gameID := stringField(t, payload, "game_id")

	status, _ = doJSON(t, app, http.MethodGet, "/api/game/"+gameID+"/moves?row=9&col=4", "alice", "")
	if status != http.StatusBadRequest {
		t.Fatalf("out-of-range square status = %d, want 400", status)
	}
}

func TestCreateEngineGame(t *testing.T) {
	app := newTestApp(t)

	status, payload := doJSON(t, app, http.MethodPost, "/api/game/create/engine", "alice",
		`{"difficulty": 2}`)
	if status != http.StatusOK {
		t.Fatalf("create engine game status = %d, want 200", status)
	}
	gameID := stringField(t, payload, "game_id")

	status, payload = doJSON(t, app, http.MethodPost, "/api/game/join/"+gameID, "alice", "")
	if status != http.StatusOK {
		t.Fatalf("join status = %d, want 200", status)
	}
	if color := stringField(t, payload, "color"); color != "white" {
		t.Fatalf("human got color %q, want white (engine holds black)", color)
	}
}
