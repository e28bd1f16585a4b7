package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Board renders the part of the page that changes with every state update:
// the upload prompt, the open pair, the winner and the standings.
func Board(view BoardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="board" data-phase="` + esc(view.Phase) + `" data-match="` + itoa(view.Match) + `">`)
		switch {
		case view.Winner != nil:
			b.WriteString(`<section class="winner"><h2>The winner is:</h2>`)
			writeCard(&b, *view.Winner, "winner-card", false)
			b.WriteString(`</section>`)
		case len(view.Pair) == 2:
			title := "Pick your favourite"
			if view.Phase == "tie-break" {
				title = "Tie-break: pick your favourite"
			}
			b.WriteString(`<section class="voting"><h2>` + esc(title) + `</h2><p class="muted">Match ` + itoa(view.Match) + `</p><div class="pair">`)
			for _, card := range view.Pair {
				writeCard(&b, card, "vote-card", true)
			}
			b.WriteString(`</div></section>`)
		default:
			b.WriteString(`<section class="upload"><h2>Upload your image</h2><p class="muted">Voting begins when 4 images are uploaded. ` +
				itoa(view.Remaining) + ` to go.</p></section>`)
		}
		if len(view.Images) > 0 {
			b.WriteString(`<section class="standings"><h3>All images</h3><div class="grid">`)
			for _, card := range view.Images {
				writeCard(&b, card, "standing-card", false)
			}
			b.WriteString(`</div></section>`)
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeCard(b *strings.Builder, card ImageCard, class string, votable bool) {
	b.WriteString(`<div class="card ` + class + ` ` + esc(card.Status) + `" data-id="` + esc(card.ID) + `"`)
	if votable {
		b.WriteString(` data-vote="` + esc(card.ID) + `" role="button" tabindex="0"`)
	}
	b.WriteString(`>`)
	b.WriteString(`<img src="` + esc(card.Src) + `" alt="Image ` + esc(card.ID) + `"/>`)
	b.WriteString(`<p>Wins: ` + itoa(card.Wins) + `</p><p>Losses: ` + itoa(card.Losses) + `</p>`)
	if card.Status == CardEliminated {
		b.WriteString(`<p class="muted">Eliminated</p>`)
	}
	b.WriteString(`</div>`)
}
