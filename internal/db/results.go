package db

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// ResultRow is one image's final standing within an audited tournament.
type ResultRow struct {
	TournamentID uint
	Phase        string
	Winner       bool
	ImageID      string
	Position     int
	Wins         int
	Losses       int
	CreatedAt    time.Time
}

// Results lists the most recent tournaments with their images in upload order.
func Results(conn *gorm.DB, limit int) ([]ResultRow, error) {
	var tournaments []Tournament
	query := conn.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	}).Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&tournaments).Error; err != nil {
		return nil, err
	}
	rows := make([]ResultRow, 0, len(tournaments)*4)
	for _, tournament := range tournaments {
		for _, img := range tournament.Images {
			rows = append(rows, ResultRow{
				TournamentID: tournament.ID,
				Phase:        tournament.Phase,
				Winner:       img.PublicID == tournament.WinnerImageID,
				ImageID:      img.PublicID,
				Position:     img.Position,
				Wins:         img.Wins,
				Losses:       img.Losses,
				CreatedAt:    tournament.CreatedAt,
			})
		}
	}
	return rows, nil
}

func WriteResultsCSV(w io.Writer, rows []ResultRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"tournament_id", "phase", "image_id", "position", "wins", "losses", "winner", "created_at"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.TournamentID), 10),
			row.Phase,
			row.ImageID,
			strconv.Itoa(row.Position),
			strconv.Itoa(row.Wins),
			strconv.Itoa(row.Losses),
			strconv.FormatBool(row.Winner),
			row.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
