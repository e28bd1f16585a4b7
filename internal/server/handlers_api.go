package server

import (
	"net/http"

	"moonmash/internal/bracket"
)

type uploadRequest struct {
	ImageData string `json:"image_data" validate:"required,dataurl"`
}

type voteRequest struct {
	ID    string `json:"id" validate:"required,imageid"`
	Match int    `json:"match" validate:"gte=0"`
}

var uploadMessages = fieldMessages{
	"ImageData": {
		"required": "image_data is required",
		"dataurl":  "image_data must be an image data URL",
	},
}

var voteMessages = fieldMessages{
	"ID": {
		"required": "id is required",
		"imageid":  "id must be an image id",
	},
	"Match": {
		"gte": "match must not be negative",
	},
}

type uploadResponse struct {
	Image bracket.Image `json:"image"`
	State StatePayload  `json:"state"`
}

type voteResponse struct {
	Outcome outcomePayload `json:"outcome"`
	State   StatePayload   `json:"state"`
}

type outcomePayload struct {
	Match    int    `json:"match"`
	WinnerID string `json:"winner_id"`
	LoserID  string `json:"loser_id"`
	Champion string `json:"champion,omitempty"`
	TieBreak bool   `json:"tie_break"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"observers": s.ws.Count(),
	})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, snapshot(s.store.Snapshot()))
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// base64 inflates payloads by a third
	r.Body = http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxImageBytes)*2+1024)
	var req uploadRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "image_data is required")
		return
	}
	if err := validateRequest(req, uploadMessages, "image_data is required"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	img, state, err := s.uploadImage(r.Context(), req.ImageData)
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{
		Image: img,
		State: snapshot(state),
	})
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if err := validateRequest(req, voteMessages, "invalid vote"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	outcome, state, err := s.vote(r.Context(), req.ID, req.Match)
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, voteResponse{
		Outcome: outcomePayload{
			Match:    outcome.Match,
			WinnerID: outcome.WinnerID,
			LoserID:  outcome.LoserID,
			Champion: outcome.Champion,
			TieBreak: outcome.TieBreak,
		},
		State: snapshot(state),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	state := s.reset(r.Context())
	writeJSON(w, http.StatusOK, snapshot(state))
}
