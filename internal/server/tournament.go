package server

import (
	"context"
	"log"

	"moonmash/internal/bracket"
)

func (s *Server) uploadImage(ctx context.Context, raw string) (bracket.Image, bracket.State, error) {
	upload, err := parseUpload(raw, s.cfg.MaxImageBytes)
	if err != nil {
		return bracket.Image{}, bracket.State{}, badRequest(err)
	}
	img := bracket.Image{
		ID:         newImageID(),
		Src:        upload.Src(),
		UploadedAt: timeNowUTC(),
	}
	state, err := s.store.Update(func(state *bracket.State) error {
		next, err := bracket.AddImage(*state, img)
		if err != nil {
			return err
		}
		*state = next
		return nil
	})
	if err != nil {
		log.Printf("upload rejected error=%v", err)
		return bracket.Image{}, state, err
	}
	log.Printf("image uploaded image_id=%s count=%d phase=%s", img.ID, len(state.Images), state.Phase)
	if err := s.persistUpload(state, img, upload); err != nil {
		log.Printf("persist upload failed image_id=%s error=%v", img.ID, err)
	}
	s.syncCache(ctx, state)
	s.broadcastState()
	return img, state, nil
}

// vote resolves the open match. A non-zero match pins the vote to that match
// so a late duplicate cannot land on the next pair.
func (s *Server) vote(ctx context.Context, selectedID string, match int) (bracket.Outcome, bracket.State, error) {
	var outcome bracket.Outcome
	state, err := s.store.Update(func(state *bracket.State) error {
		if err := bracket.CheckMatch(*state, match); err != nil {
			return err
		}
		next, result, err := bracket.ResolveVote(*state, selectedID)
		if err != nil {
			return err
		}
		*state = next
		outcome = result
		return nil
	})
	if err != nil {
		log.Printf("vote rejected image_id=%s match=%d error=%v", selectedID, match, err)
		return outcome, state, err
	}
	log.Printf("vote resolved match=%d winner=%s loser=%s phase=%s", outcome.Match, outcome.WinnerID, outcome.LoserID, state.Phase)
	if outcome.Champion != "" {
		log.Printf("tournament complete winner=%s", outcome.Champion)
	}
	if err := s.persistVote(state, outcome); err != nil {
		log.Printf("persist vote failed match=%d error=%v", outcome.Match, err)
	}
	s.syncCache(ctx, state)
	s.broadcastState()
	return outcome, state, nil
}

func (s *Server) reset(ctx context.Context) bracket.State {
	state, _ := s.store.Update(func(state *bracket.State) error {
		*state = bracket.Reset(*state)
		return nil
	})
	log.Printf("tournament reset version=%d", state.Version)
	if err := s.persistReset(); err != nil {
		log.Printf("persist reset failed error=%v", err)
	}
	s.syncCache(ctx, state)
	s.broadcastState()
	return state
}

// syncCache mirrors the image collection into the cache slot. Writes for
// versions older than the last one written are dropped.
func (s *Server) syncCache(ctx context.Context, state bracket.State) {
	if s.cache == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if state.Version <= s.cachedVersion {
		return
	}
	var err error
	if len(state.Images) == 0 {
		err = s.cache.Clear(ctx)
	} else {
		err = s.cache.Save(ctx, state.Images)
	}
	if err != nil {
		log.Printf("cache sync failed version=%d error=%v", state.Version, err)
		return
	}
	s.cachedVersion = state.Version
}
