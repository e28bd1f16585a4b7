package server

type EventPayload struct {
	ImageID  string   `json:"image_id,omitempty"`
	Position int      `json:"position,omitempty"`
	MimeType string   `json:"mime_type,omitempty"`
	Phase    string   `json:"phase,omitempty"`
	Match    int      `json:"match,omitempty"`
	WinnerID string   `json:"winner_id,omitempty"`
	LoserID  string   `json:"loser_id,omitempty"`
	Champion string   `json:"champion,omitempty"`
	TieBreak bool     `json:"tie_break,omitempty"`
	PairIDs  []string `json:"pair_ids,omitempty"`
}
