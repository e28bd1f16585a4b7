package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"moonmash/internal/bracket"

	"github.com/gorilla/websocket"
)

type wsEnvelope struct {
	Type   string       `json:"type"`
	State  StatePayload `json:"state"`
	Target string       `json:"target"`
	HTML   string       `json:"html"`
	Error  string       `json:"error"`
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Skipf("skipping test; websocket dial unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func readWSEnvelope(t *testing.T, conn *websocket.Conn, timeout time.Duration) wsEnvelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read websocket message: %v", err)
	}
	var msg wsEnvelope
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("decode websocket message: %v", err)
	}
	return msg
}

func expectWSType(t *testing.T, conn *websocket.Conn, want string) wsEnvelope {
	t.Helper()
	msg := readWSEnvelope(t, conn, 5*time.Second)
	if msg.Type != want {
		t.Fatalf("expected websocket message %s, got %s", want, msg.Type)
	}
	return msg
}

func sendWS(t *testing.T, conn *websocket.Conn, payload any) {
	t.Helper()
	if err := conn.WriteJSON(payload); err != nil {
		t.Fatalf("write websocket message: %v", err)
	}
}

func TestWebsocketInitialData(t *testing.T) {
	ts := startServer(t)
	ids := uploadBracket(t, ts)

	conn := dialWS(t, ts)
	initial := expectWSType(t, conn, wsTypeInitial)
	if len(initial.State.Images) != 4 || initial.State.Phase != bracket.PhaseVoting {
		t.Fatalf("unexpected initial state %+v", initial.State)
	}
	if got := pairIDs(initial.State); len(got) != 2 || got[0] != ids[0] || got[1] != ids[1] {
		t.Fatalf("unexpected initial pair %v", got)
	}
	html := expectWSType(t, conn, wsTypeHTML)
	if html.Target != "#board" || !strings.Contains(html.HTML, "data-vote") {
		t.Fatalf("unexpected html message %+v", html)
	}
}

func TestWebsocketBroadcastsRESTMutations(t *testing.T) {
	ts := startServer(t)
	first := dialWS(t, ts)
	second := dialWS(t, ts)
	for _, conn := range []*websocket.Conn{first, second} {
		expectWSType(t, conn, wsTypeInitial)
		expectWSType(t, conn, wsTypeHTML)
	}

	id := uploadImage(t, ts)

	for _, conn := range []*websocket.Conn{first, second} {
		update := expectWSType(t, conn, wsTypeUpdate)
		if len(update.State.Images) != 1 || update.State.Images[0].ID != id {
			t.Fatalf("unexpected broadcast state %+v", update.State)
		}
		expectWSType(t, conn, wsTypeHTML)
	}
}

func TestWebsocketActions(t *testing.T) {
	ts := startServer(t)
	ids := uploadBracket(t, ts)

	conn := dialWS(t, ts)
	expectWSType(t, conn, wsTypeInitial)
	expectWSType(t, conn, wsTypeHTML)

	sendWS(t, conn, map[string]any{"type": wsActionVote, "id": ids[1], "match": 1})
	update := expectWSType(t, conn, wsTypeUpdate)
	if wins, _ := imageByID(t, update.State, ids[1]); wins != 1 {
		t.Fatalf("expected socket vote to count, got %d wins", wins)
	}
	if got := pairIDs(update.State); got[0] != ids[1] || got[1] != ids[2] {
		t.Fatalf("expected winner to stay on, got pair %v", got)
	}
	expectWSType(t, conn, wsTypeHTML)

	sendWS(t, conn, map[string]any{"type": wsActionReset})
	update = expectWSType(t, conn, wsTypeUpdate)
	if len(update.State.Images) != 0 || update.State.Phase != bracket.PhaseCollecting {
		t.Fatalf("expected reset state, got %+v", update.State)
	}
	expectWSType(t, conn, wsTypeHTML)

	sendWS(t, conn, map[string]any{"type": wsActionUpload, "image_data": testImageData})
	update = expectWSType(t, conn, wsTypeUpdate)
	if len(update.State.Images) != 1 {
		t.Fatalf("expected socket upload to land, got %d images", len(update.State.Images))
	}
}

func TestWebsocketErrorsStayPrivate(t *testing.T) {
	ts := startServer(t)
	uploadBracket(t, ts)

	sender := dialWS(t, ts)
	observer := dialWS(t, ts)
	for _, conn := range []*websocket.Conn{sender, observer} {
		expectWSType(t, conn, wsTypeInitial)
		expectWSType(t, conn, wsTypeHTML)
	}

	tests := []map[string]any{
		{"type": wsActionVote, "id": newImageID(), "match": 1},
		{"type": wsActionVote, "id": "nope"},
		{"type": wsActionUpload, "image_data": ""},
		{"type": "shuffle"},
	}
	for _, payload := range tests {
		sendWS(t, sender, payload)
		if msg := expectWSType(t, sender, wsTypeError); msg.Error == "" {
			t.Fatalf("expected error text for %v", payload)
		}
	}

	_ = observer.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, _, err := observer.ReadMessage(); err == nil {
		t.Fatalf("expected no broadcast after rejected actions")
	}
}

func TestWebsocketRejectsForeignOrigin(t *testing.T) {
	ts := startServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err == nil {
		_ = conn.Close()
		t.Fatalf("expected foreign origin to be refused")
	}
	if resp == nil {
		t.Skipf("skipping test; websocket dial unavailable: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, resp.StatusCode)
	}
}
