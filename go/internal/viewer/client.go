package viewer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/quizdeck/triviacast/go/internal/gateway"
	"github.com/rs/zerolog/log"
)

// ClientConfig holds connection settings for a station client.
type ClientConfig struct {
	// GatewayAddr is the host:port of the gateway.
	GatewayAddr string
	// Station labels this client in gateway logs, e.g. "display-1".
	Station string
	// QuestionTime is the cosmetic countdown length per question.
	QuestionTime time.Duration
	// ReconnectWait is the delay between reconnect attempts.
	ReconnectWait time.Duration
}

// DefaultClientConfig returns default station client settings.
func DefaultClientConfig(addr, station string) ClientConfig {
	return ClientConfig{
		GatewayAddr:   addr,
		Station:       station,
		QuestionTime:  30 * time.Second,
		ReconnectWait: 2 * time.Second,
	}
}

// Client keeps a station's View in sync with the gateway: an initial REST
// fetch of the snapshot, then WebSocket pushes, reconnecting with a fresh
// fetch whenever the connection drops.
type Client struct {
	cfg       ClientConfig
	view      *View
	countdown *Countdown
}

func NewClient(cfg ClientConfig, view *View, countdown *Countdown) *Client {
	return &Client{cfg: cfg, view: view, countdown: countdown}
}

// Run keeps the client connected until ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	for {
		if err := c.connectOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Err(err).Str("station", c.cfg.Station).Msg("gateway connection lost, reconnecting")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.cfg.ReconnectWait):
		}
	}
}

func (c *Client) connectOnce(ctx context.Context) error {
	// Fetch the snapshot first so the station renders before the socket is
	// up, and so a reconnect catches up on anything missed while offline.
	if err := c.fetchState(ctx); err != nil {
		return fmt.Errorf("fetch initial state: %w", err)
	}

	wsURL := fmt.Sprintf("ws://%s/ws/game?station=%s", c.cfg.GatewayAddr, c.cfg.Station)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial gateway: %w", err)
	}
	defer conn.Close()

	log.Info().Str("station", c.cfg.Station).Msg("connected to gateway")

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		var msg gateway.WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Error().Err(err).Msg("failed to parse gateway message")
			continue
		}
		c.handleMessage(&msg)
	}
}

func (c *Client) fetchState(ctx context.Context) error {
	url := fmt.Sprintf("http://%s/api/game/state", c.cfg.GatewayAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var snap gateway.GameSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return err
	}

	c.applySnapshot(&snap)
	return nil
}

func (c *Client) handleMessage(msg *gateway.WSMessage) {
	switch msg.Type {
	case gateway.MessageTypeSnapshot:
		if msg.Snapshot != nil {
			c.applySnapshot(msg.Snapshot)
		}
	case gateway.MessageTypeEvent:
		if msg.Event != nil {
			c.view.HandleEvent(msg.Event.EventType)
		}
	default:
		log.Debug().Str("type", msg.Type).Msg("ignoring unknown gateway message")
	}
}

func (c *Client) applySnapshot(snap *gateway.GameSnapshot) {
	c.view.ApplySnapshot(snap)
	if c.countdown != nil {
		c.countdown.ObserveQuestion(snap.Session.CurrentQuestionID)
	}
}
