package bracket

import (
	"errors"
	"fmt"
)

// New returns the empty state a tournament starts from, and the state every
// reset returns to.
func New() State {
	return State{Phase: PhaseCollecting}
}

// Reset clears images, pair, queue and winner. The version counter survives so
// observers can still order updates across a reset.
func Reset(state State) State {
	next := New()
	next.Version = state.Version
	return next
}

// StartTournament pairs the first two images and queues the rest.
func StartTournament(images []Image) (State, error) {
	if len(images) != BracketSize {
		return State{}, fmt.Errorf("%w: need %d images, got %d", ErrInvalidBracketSize, BracketSize, len(images))
	}
	state := State{
		Images: append([]Image(nil), images...),
		Phase:  PhaseVoting,
		Match:  1,
	}
	state.Pair = []string{images[0].ID, images[1].ID}
	for _, img := range images[2:] {
		state.Queue = append(state.Queue, img.ID)
	}
	return state, nil
}

// AddImage appends an image while the bracket is still collecting and starts
// the tournament once the bracket is full.
func AddImage(state State, img Image) (State, error) {
	if img.ID == "" {
		return state, errors.New("image id is required")
	}
	if state.Phase != PhaseCollecting && state.Phase != "" {
		return state, ErrBracketFull
	}
	if len(state.Images) >= BracketSize {
		return state, ErrBracketFull
	}
	if state.indexOf(img.ID) >= 0 {
		return state, fmt.Errorf("%w: %s", ErrDuplicateImage, img.ID)
	}
	next := state.Clone()
	next.Phase = PhaseCollecting
	next.Images = append(next.Images, img)
	if len(next.Images) < BracketSize {
		return next, nil
	}
	started, err := StartTournament(next.Images)
	if err != nil {
		return state, err
	}
	started.Version = state.Version
	return started, nil
}

// CheckMatch rejects votes aimed at a match that is no longer open. A zero
// match means the caller did not pin one.
func CheckMatch(state State, match int) error {
	if len(state.Pair) != 2 {
		return ErrNoActivePair
	}
	if match != 0 && match != state.Match {
		return fmt.Errorf("%w: match %d is closed, match %d is open", ErrInvalidVote, match, state.Match)
	}
	return nil
}

// ResolveVote records a head-to-head result and picks the next pair. The input
// state is never modified.
func ResolveVote(state State, selectedID string) (State, Outcome, error) {
	if len(state.Pair) != 2 {
		return state, Outcome{}, ErrNoActivePair
	}
	var loserID string
	switch selectedID {
	case state.Pair[0]:
		loserID = state.Pair[1]
	case state.Pair[1]:
		loserID = state.Pair[0]
	default:
		return state, Outcome{}, fmt.Errorf("%w: image %q is not in the current pair", ErrInvalidVote, selectedID)
	}

	next := state.Clone()
	winnerIdx := next.indexOf(selectedID)
	loserIdx := next.indexOf(loserID)
	if winnerIdx < 0 || loserIdx < 0 {
		return state, Outcome{}, ErrUnknownImage
	}
	next.Images[winnerIdx].Wins++
	next.Images[loserIdx].Losses++
	outcome := Outcome{
		WinnerID: selectedID,
		LoserID:  loserID,
		Match:    state.Match,
	}

	if len(next.Queue) > 0 {
		challenger := next.Queue[0]
		next.Queue = next.Queue[1:]
		next.Pair = []string{selectedID, challenger}
		next.Match++
		return next, outcome, nil
	}

	contenders := next.contenders()
	if len(contenders) == 1 {
		next.FinalWinner = contenders[0]
		next.Pair = nil
		next.Queue = nil
		next.Phase = PhaseComplete
		next.Match = 0
		outcome.Champion = contenders[0]
		return next, outcome, nil
	}

	next.Pair = []string{contenders[0], contenders[1]}
	next.Queue = append([]string(nil), contenders[2:]...)
	next.Phase = PhaseTieBreak
	next.Match++
	outcome.TieBreak = true
	return next, outcome, nil
}

// contenders lists, in collection order, every image holding the highest win
// count.
func (s State) contenders() []string {
	maxWins := -1
	for _, img := range s.Images {
		if img.Wins > maxWins {
			maxWins = img.Wins
		}
	}
	ids := make([]string, 0, len(s.Images))
	for _, img := range s.Images {
		if img.Wins == maxWins {
			ids = append(ids, img.ID)
		}
	}
	return ids
}
