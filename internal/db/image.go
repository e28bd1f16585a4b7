package db

import "time"

type Image struct {
	ID           uint      `gorm:"primaryKey"`
	TournamentID uint      `gorm:"index;not null"`
	PublicID     string    `gorm:"size:64;uniqueIndex;not null"`
	Position     int       `gorm:"not null"`
	MimeType     string    `gorm:"size:32;not null"`
	ImageData    []byte    `gorm:"type:bytea;not null"`
	Wins         int       `gorm:"not null;default:0"`
	Losses       int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}
