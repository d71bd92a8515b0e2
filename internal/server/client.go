package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"maw-server/internal/domain"
	"maw-server/internal/engine"
	"maw-server/internal/network"
	"maw-server/pkg/api"
	"maw-server/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = api.MaxCommandLength + 64 // запас на JSON-обёртку
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и движком.
// Читает текстовые кадры как команды игрока, пишет повествование из Hub.
type Client struct {
	Engine CommandSubmitter
	Hub    *network.Broadcaster
	Conn   *websocket.Conn
	Player domain.PlayerID

	updates chan api.ServerResponse
}

func NewClient(eng CommandSubmitter, hub *network.Broadcaster, conn *websocket.Conn, player domain.PlayerID) *Client {
	return &Client{
		Engine:  eng,
		Hub:     hub,
		Conn:    conn,
		Player:  player,
		updates: hub.Register(player),
	}
}

func parsePlayerID(raw string) (domain.PlayerID, error) {
	if raw == "" {
		return 0, errors.New("player query parameter is required")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid player id %q", raw)
	}
	return domain.PlayerID(id), nil
}

// decodeCommand принимает и голый текст, и {"text": "..."}
func decodeCommand(frame []byte) (api.ClientCommand, error) {
	var cmd api.ClientCommand
	trimmed := strings.TrimSpace(string(frame))
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal([]byte(trimmed), &cmd); err != nil {
			return cmd, fmt.Errorf("invalid command format: %w", err)
		}
	} else {
		cmd.Text = trimmed
	}
	if err := cmd.Validate(); err != nil {
		return cmd, fmt.Errorf("validation failed: %w", err)
	}
	return cmd, nil
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "ws_client",
		"player":    c.Player,
	})
	defer func() {
		c.Hub.Unregister(c.Player, c.updates)
		if err := c.Conn.Close(); err != nil {
			log.WithError(err).Debug("failed to close websocket connection")
		}
		log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	log.Info("Client connected")
	c.Hub.SendTo(c.Player, api.ServerResponse{Type: api.TypeWelcome, MyPlayerID: uint64(c.Player)})

	// ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		_, frame, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Errorf("WS Error: %v", err)
			}
			break
		}

		cmd, err := decodeCommand(frame)
		if err != nil {
			c.Hub.SendTo(c.Player, api.ServerResponse{Type: api.TypeError, Error: err.Error()})
			continue
		}

		if err := c.Engine.Submit(domain.PlayerInput(c.Player, cmd.Text)); err != nil {
			if errors.Is(err, engine.ErrInboxFull) {
				log.Warn("Engine inbox full, command rejected")
			}
			c.Hub.SendTo(c.Player, api.ServerResponse{Type: api.TypeError, Error: err.Error()})
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.updates:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				// Hub закрыл канал: отписка или новое соединение того же игрока
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
