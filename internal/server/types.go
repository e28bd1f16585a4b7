package server

import "moonmash/internal/bracket"

const (
	wsTypeInitial = "initial_data"
	wsTypeUpdate  = "update_data"
	wsTypeHTML    = "html"
	wsTypeError   = "error"
)

const (
	wsActionUpload = "upload_image"
	wsActionVote   = "vote"
	wsActionReset  = "reset"
)

// StatePayload is what observers receive after every mutation.
type StatePayload struct {
	Images      []bracket.Image `json:"images"`
	CurrentPair []bracket.Image `json:"currentPair"`
	Queue       []bracket.Image `json:"queue"`
	FinalWinner *bracket.Image  `json:"finalWinner"`
	Phase       bracket.Phase   `json:"phase"`
	Match       int             `json:"match"`
	Version     int             `json:"version"`
}

type wsStateMessage struct {
	Type  string       `json:"type"`
	State StatePayload `json:"state"`
}

type wsHTMLMessage struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	Swap   string `json:"swap"`
	HTML   string `json:"html"`
}

type wsErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// wsInbound is the envelope clients send over the socket.
type wsInbound struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Match     int    `json:"match"`
	ImageData string `json:"image_data"`
}
