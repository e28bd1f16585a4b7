package server

import (
	"net/http"
	"sync"
	"time"

	"moonmash/internal/cache"
	"moonmash/internal/config"

	"gorm.io/gorm"
)

type Server struct {
	store *Store
	db    *gorm.DB
	cache cache.Store
	ws    *wsHub
	cfg   config.Config

	// persistMu orders cache and audit writes.
	persistMu      sync.Mutex
	cachedVersion  int
	tournamentDBID uint

	broadcastMu sync.Mutex
}

// New builds a server. conn and stateCache may be nil to run purely in memory.
func New(conn *gorm.DB, cfg config.Config, stateCache cache.Store) *Server {
	return &Server{
		store: NewStore(),
		db:    conn,
		cache: stateCache,
		ws:    newWSHub(),
		cfg:   cfg,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /board", s.handleBoard)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/state", s.handleGetState)
	mux.HandleFunc("POST /api/images", s.handleUpload)
	mux.HandleFunc("POST /api/votes", s.handleVote)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	return withCORS(s.cfg.AllowedOrigin, mux)
}

// Close releases the cache backend. The gorm connection belongs to the caller.
func (s *Server) Close() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Close()
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
