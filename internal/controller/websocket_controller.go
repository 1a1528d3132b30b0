package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/RovarQRoom/gochess/internal/model"
	"github.com/RovarQRoom/gochess/internal/service"
	"github.com/RovarQRoom/gochess/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      zerolog.Logger
}

func NewWebSocketController(gameService *service.GameService, logger zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// HandleConnection runs the read loop for one websocket connection.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		wsc.logger.Warn().Err(err).Str("game", gameID).Str("player", playerID).
			Msg("failed to register connection")
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			wsc.logger.Debug().Err(err).Str("player", playerID).Msg("read loop finished")
			break
		}

		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.logger.Warn().Err(err).Str("player", playerID).Msg("unparseable message")
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.sendError(c, err.Error())
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID)
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeResign:
		return wsc.gameService.HandleResign(gameID, playerID)

	case ws.MessageTypeDrawOffer:
		return wsc.gameService.HandleDrawOffer(gameID, playerID)

	case ws.MessageTypeDraw:
		return wsc.gameService.HandleDrawAccept(gameID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking parks one waiting player on the queue and streams the
// match notification back when the pairing ticker seats them.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)

	matchCh := make(chan string, 1)
	if err := wsc.gameService.RegisterMatchmakingChannel(playerID, matchCh); err != nil {
		wsc.logger.Warn().Err(err).Str("player", playerID).
			Msg("failed to register matchmaking channel")
		c.Close()
		return
	}
	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil {
		// Already queued from a previous connection; keep waiting on the
		// fresh channel.
		wsc.logger.Debug().Err(err).Str("player", playerID).Msg("player already queued")
	}

	// Drain the connection so we notice the client hanging up.
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case payload, ok := <-matchCh:
		if ok {
			c.WriteJSON(ws.Message{
				Type:    ws.MessageTypeMatchFound,
				Payload: json.RawMessage(payload),
			})
		}
	case <-disconnected:
		// Leaving the player queued would let the ticker seat them into a
		// game they can never join.
		wsc.gameService.LeaveMatchmaking(playerID)
	}

	wsc.gameService.UnregisterMatchmakingChannel(playerID)
	c.Close()
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	payload, _ := json.Marshal(fiberErrorPayload{Message: errorMsg})
	c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	})
}

type fiberErrorPayload struct {
	Message string `json:"message"`
}
