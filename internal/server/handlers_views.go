package server

import (
	"net/http"

	"moonmash/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	templ.Handler(web.Home(buildBoardView(s.store.Snapshot()))).ServeHTTP(w, r)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	templ.Handler(web.Board(buildBoardView(s.store.Snapshot()))).ServeHTTP(w, r)
}
