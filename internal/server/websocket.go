package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteWait = 10 * time.Second

// wsClient serializes writes; gorilla connections allow one writer at a time.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

type wsHub struct {
	mu    sync.Mutex
	conns map[*wsClient]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		conns: make(map[*wsClient]struct{}),
	}
}

func (h *wsHub) Add(client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[client] = struct{}{}
}

func (h *wsHub) Remove(client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, client)
	_ = client.conn.Close()
}

func (h *wsHub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *wsHub) Send(client *wsClient, payloads ...any) {
	for _, payload := range payloads {
		data, err := json.Marshal(payload)
		if err != nil {
			continue
		}
		if err := client.write(data); err != nil {
			return
		}
	}
}

func (h *wsHub) Broadcast(payloads ...any) {
	h.mu.Lock()
	clients := make([]*wsClient, 0, len(h.conns))
	for client := range h.conns {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	messages := make([][]byte, 0, len(payloads))
	for _, payload := range payloads {
		data, err := json.Marshal(payload)
		if err != nil {
			return
		}
		messages = append(messages, data)
	}
	for _, client := range clients {
		for _, data := range messages {
			if err := client.write(data); err != nil {
				h.Remove(client)
				break
			}
		}
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.cfg.AllowedOrigin {
		return true
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return parsed.Host == r.Host
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected remote=%s", r.RemoteAddr)
	client := &wsClient{conn: conn}
	s.broadcastMu.Lock()
	s.ws.Add(client)
	state := s.store.Snapshot()
	s.ws.Send(client, stateMessage(wsTypeInitial, state), s.boardHTMLMessage(state))
	s.broadcastMu.Unlock()
	go s.readWS(client, r.RemoteAddr)
}

func (s *Server) readWS(client *wsClient, remote string) {
	defer s.ws.Remove(client)
	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			log.Printf("ws disconnected remote=%s error=%v", remote, err)
			return
		}
		if err := s.handleWSMessage(data); err != nil {
			s.ws.Send(client, wsErrorMessage{Type: wsTypeError, Error: err.Error()})
		}
	}
}

// handleWSMessage mirrors the REST actions for socket clients. Successful
// actions reach the sender through the regular broadcast.
func (s *Server) handleWSMessage(data []byte) error {
	var msg wsInbound
	if err := json.Unmarshal(data, &msg); err != nil {
		return errors.New("invalid message")
	}
	ctx := context.Background()
	switch msg.Type {
	case wsActionUpload:
		req := uploadRequest{ImageData: msg.ImageData}
		if err := validateRequest(req, uploadMessages, "image_data is required"); err != nil {
			return err
		}
		_, _, err := s.uploadImage(ctx, req.ImageData)
		return err
	case wsActionVote:
		req := voteRequest{ID: msg.ID, Match: msg.Match}
		if err := validateRequest(req, voteMessages, "invalid vote"); err != nil {
			return err
		}
		_, _, err := s.vote(ctx, req.ID, req.Match)
		return err
	case wsActionReset:
		s.reset(ctx)
		return nil
	default:
		return errors.New("unknown message type")
	}
}

// broadcastState sends the latest state to every observer. broadcastMu makes
// the snapshot and the writes one step, so the last broadcast always carries
// the newest state.
func (s *Server) broadcastState() {
	if s.ws == nil {
		return
	}
	s.broadcastMu.Lock()
	defer s.broadcastMu.Unlock()
	state := s.store.Snapshot()
	s.ws.Broadcast(stateMessage(wsTypeUpdate, state), s.boardHTMLMessage(state))
}
