package server

import (
	"encoding/json"
	"errors"

	"moonmash/internal/bracket"
	"moonmash/internal/db"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// The audit log is write-only: the in-memory store stays authoritative and
// nothing here is read back.

func (s *Server) persistUpload(state bracket.State, img bracket.Image, upload uploadedImage) error {
	if s.db == nil {
		return nil
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	tournamentID, err := s.ensureTournamentLocked()
	if err != nil {
		return err
	}
	position := len(state.Images)
	for i := range state.Images {
		if state.Images[i].ID == img.ID {
			position = i + 1
			break
		}
	}
	record := db.Image{
		TournamentID: tournamentID,
		PublicID:     img.ID,
		Position:     position,
		MimeType:     upload.MimeType,
		ImageData:    upload.Data,
	}
	if err := s.db.Create(&record).Error; err != nil && !isUniqueViolation(err) {
		return err
	}
	if err := s.persistEventLocked(s.db, tournamentID, "image_uploaded", EventPayload{
		ImageID:  img.ID,
		Position: position,
		MimeType: upload.MimeType,
	}); err != nil {
		return err
	}
	if state.Phase == bracket.PhaseCollecting {
		return nil
	}
	if err := s.db.Model(&db.Tournament{}).Where("id = ?", tournamentID).Update("phase", string(state.Phase)).Error; err != nil {
		return err
	}
	return s.persistEventLocked(s.db, tournamentID, "tournament_started", EventPayload{
		Phase:   string(state.Phase),
		Match:   state.Match,
		PairIDs: state.Pair,
	})
}

func (s *Server) persistVote(state bracket.State, outcome bracket.Outcome) error {
	if s.db == nil {
		return nil
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	tournamentID, err := s.ensureTournamentLocked()
	if err != nil {
		return err
	}
	winner, ok := state.Image(outcome.WinnerID)
	if !ok {
		return bracket.ErrUnknownImage
	}
	loser, ok := state.Image(outcome.LoserID)
	if !ok {
		return bracket.ErrUnknownImage
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, img := range []bracket.Image{winner, loser} {
			if err := tx.Model(&db.Image{}).Where("public_id = ?", img.ID).Updates(map[string]any{
				"wins":   img.Wins,
				"losses": img.Losses,
			}).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&db.Tournament{}).Where("id = ?", tournamentID).Updates(map[string]any{
			"phase":           string(state.Phase),
			"winner_image_id": state.FinalWinner,
			"votes":           gorm.Expr("votes + 1"),
		}).Error; err != nil {
			return err
		}
		return s.persistEventLocked(tx, tournamentID, "vote_resolved", EventPayload{
			Match:    outcome.Match,
			WinnerID: outcome.WinnerID,
			LoserID:  outcome.LoserID,
			Champion: outcome.Champion,
			TieBreak: outcome.TieBreak,
			Phase:    string(state.Phase),
			PairIDs:  state.Pair,
		})
	})
}

// persistReset closes the current tournament row; the next upload opens a
// new one.
func (s *Server) persistReset() error {
	if s.db == nil {
		return nil
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if s.tournamentDBID == 0 {
		return nil
	}
	tournamentID := s.tournamentDBID
	s.tournamentDBID = 0
	if err := s.db.Model(&db.Tournament{}).Where("id = ?", tournamentID).Update("phase", "reset").Error; err != nil {
		return err
	}
	return s.persistEventLocked(s.db, tournamentID, "tournament_reset", EventPayload{})
}

func (s *Server) ensureTournamentLocked() (uint, error) {
	if s.tournamentDBID != 0 {
		return s.tournamentDBID, nil
	}
	record := db.Tournament{
		Phase: string(bracket.PhaseCollecting),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return 0, err
	}
	if record.ID == 0 {
		return 0, errors.New("tournament not created")
	}
	s.tournamentDBID = record.ID
	return record.ID, nil
}

func (s *Server) persistEventLocked(conn *gorm.DB, tournamentID uint, eventType string, payload EventPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := db.Event{
		TournamentID: tournamentID,
		Type:         eventType,
		Payload:      datatypes.JSON(data),
	}
	return conn.Create(&event).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
