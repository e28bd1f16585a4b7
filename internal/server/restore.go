package server

import (
	"context"
	"errors"
	"log"

	"moonmash/internal/bracket"
)

// RestoreFromCache reloads the cached image collection into an empty store.
// Images are re-added in upload order with their tallies, so a full restored
// bracket starts again from its first pair. It returns how many images were
// restored.
func (s *Server) RestoreFromCache(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	images, err := s.cache.Load(ctx)
	if err != nil {
		return 0, err
	}
	if len(images) == 0 {
		return 0, nil
	}
	restored := 0
	state, err := s.store.Update(func(state *bracket.State) error {
		if len(state.Images) > 0 {
			return errors.New("store already has images")
		}
		for _, img := range images {
			if restored == bracket.BracketSize {
				break
			}
			if _, err := validateImageID(img.ID); err != nil {
				log.Printf("restore skipped image_id=%q error=%v", img.ID, err)
				continue
			}
			next, err := bracket.AddImage(*state, img)
			if err != nil {
				log.Printf("restore skipped image_id=%s error=%v", img.ID, err)
				continue
			}
			*state = next
			restored++
		}
		if restored == 0 {
			return errors.New("no usable cached images")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Printf("restored images count=%d phase=%s", restored, state.Phase)
	s.syncCache(ctx, state)
	return restored, nil
}
