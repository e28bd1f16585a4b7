package db

import "time"

type Tournament struct {
	ID            uint      `gorm:"primaryKey"`
	Phase         string    `gorm:"size:32;not null"`
	WinnerImageID string    `gorm:"size:64;not null;default:''"`
	Votes         int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
	Images        []Image
	Events        []Event
}
