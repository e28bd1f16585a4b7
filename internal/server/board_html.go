package server

import (
	"bytes"
	"context"

	"moonmash/internal/bracket"
	"moonmash/internal/web"
)

func (s *Server) boardHTMLMessage(state bracket.State) wsHTMLMessage {
	return htmlMessage("#board", "inner", s.renderBoardHTML(buildBoardView(state)))
}

func htmlMessage(target, swap, html string) wsHTMLMessage {
	return wsHTMLMessage{
		Type:   wsTypeHTML,
		Target: target,
		Swap:   swap,
		HTML:   html,
	}
}

func (s *Server) renderBoardHTML(view web.BoardView) string {
	var buf bytes.Buffer
	if err := web.Board(view).Render(context.Background(), &buf); err != nil {
		return ""
	}
	return buf.String()
}

func buildBoardView(state bracket.State) web.BoardView {
	view := web.BoardView{
		Phase:     string(state.Phase),
		Match:     state.Match,
		Images:    make([]web.ImageCard, 0, len(state.Images)),
		Remaining: bracket.BracketSize - len(state.Images),
	}
	if view.Remaining < 0 {
		view.Remaining = 0
	}
	for _, img := range state.Images {
		view.Images = append(view.Images, imageCard(state, img))
	}
	for _, img := range state.Resolve(state.Pair) {
		view.Pair = append(view.Pair, imageCard(state, img))
	}
	if winner, ok := state.Winner(); ok {
		card := imageCard(state, winner)
		view.Winner = &card
	}
	return view
}

// imageCard labels an image by where it sits in the bracket. Images outside
// the pair and queue keep their tallies and show as eliminated.
func imageCard(state bracket.State, img bracket.Image) web.ImageCard {
	card := web.ImageCard{
		ID:     img.ID,
		Src:    img.Src,
		Wins:   img.Wins,
		Losses: img.Losses,
	}
	switch {
	case state.Phase == bracket.PhaseCollecting || state.Phase == "":
		card.Status = web.CardWaiting
	case img.ID == state.FinalWinner:
		card.Status = web.CardWinner
	case contains(state.Pair, img.ID):
		card.Status = web.CardInPair
	case contains(state.Queue, img.ID):
		card.Status = web.CardQueued
	default:
		card.Status = web.CardEliminated
	}
	return card
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
