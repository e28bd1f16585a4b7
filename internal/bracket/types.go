package bracket

import "time"

// BracketSize is the fixed number of images in one tournament.
const BracketSize = 4

type Phase string

const (
	PhaseCollecting Phase = "collecting"
	PhaseVoting     Phase = "voting"
	PhaseTieBreak   Phase = "tie-break"
	PhaseComplete   Phase = "complete"
)

type Image struct {
	ID         string    `json:"id"`
	Src        string    `json:"src"`
	Wins       int       `json:"wins"`
	Losses     int       `json:"losses"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// State is the whole tournament. Pair, Queue and FinalWinner hold image IDs
// that index into Images.
type State struct {
	Images      []Image
	Pair        []string
	Queue       []string
	FinalWinner string
	Phase       Phase
	Match       int
	Version     int
}

// Outcome describes one resolved vote.
type Outcome struct {
	WinnerID string
	LoserID  string
	Match    int
	Champion string
	TieBreak bool
}

func (s State) Clone() State {
	out := s
	out.Images = append([]Image(nil), s.Images...)
	out.Pair = append([]string(nil), s.Pair...)
	out.Queue = append([]string(nil), s.Queue...)
	return out
}

func (s State) Image(id string) (Image, bool) {
	for _, img := range s.Images {
		if img.ID == id {
			return img, true
		}
	}
	return Image{}, false
}

func (s State) indexOf(id string) int {
	for i := range s.Images {
		if s.Images[i].ID == id {
			return i
		}
	}
	return -1
}

// Resolve maps IDs to images, skipping unknown IDs.
func (s State) Resolve(ids []string) []Image {
	out := make([]Image, 0, len(ids))
	for _, id := range ids {
		if img, ok := s.Image(id); ok {
			out = append(out, img)
		}
	}
	return out
}

func (s State) Winner() (Image, bool) {
	if s.FinalWinner == "" {
		return Image{}, false
	}
	return s.Image(s.FinalWinner)
}
