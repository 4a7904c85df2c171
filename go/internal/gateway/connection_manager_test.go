package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/quizdeck/triviacast/go/internal/models"
)

func newTestHub(t *testing.T) (*ConnectionManager, string) {
	t.Helper()
	cm := NewConnectionManager(DefaultConnectionConfig())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go cm.Start(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := cm.UpgradeConnection(w, r, "display-test"); err != nil {
			t.Errorf("UpgradeConnection() error = %v", err)
		}
	}))
	t.Cleanup(srv.Close)

	return cm, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitForConnections(t *testing.T, cm *ConnectionManager, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for cm.ConnectionCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("ConnectionCount() = %d, want %d", cm.ConnectionCount(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBroadcastReachesStation(t *testing.T) {
	cm, wsURL := newTestHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	waitForConnections(t, cm, 1)

	cm.BroadcastSnapshot(&GameSnapshot{Session: models.DefaultSession()})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if msg.Type != MessageTypeSnapshot || msg.Snapshot == nil {
		t.Errorf("message = %+v, want a snapshot frame", msg)
	}
}

func TestBroadcastSurvivesStationDisconnect(t *testing.T) {
	cm, wsURL := newTestHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	waitForConnections(t, cm, 1)

	// Keep broadcasting while the station drops; the fanout must never
	// send on the closed channel of a connection torn down mid-broadcast.
	snap := &GameSnapshot{Session: models.DefaultSession()}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			cm.BroadcastSnapshot(snap)
			time.Sleep(time.Millisecond)
		}
	}()
	time.Sleep(10 * time.Millisecond)
	conn.Close()
	<-done

	waitForConnections(t, cm, 0)
	cm.BroadcastSnapshot(snap)
}
