package models

import "time"

type RefreshToken struct {
	Token     string `gorm:"primarykey"`
	UserID    string `gorm:"index"` // with index, easy to find all of a user's refresh tokens
	CreatedAt time.Time
	ExpiresAt time.Time
}
