package models

import (
	"time"
)

// User mirrors the identity supplied by the auth provider. Rows exist so that
// score records can be joined for history and leaderboard views; credential
// management lives entirely outside this service.
type User struct {
	ID          string `json:"id" gorm:"primaryKey;size:255"`
	Username    string `json:"username" gorm:"uniqueIndex;not null;size:100"`
	DisplayName string `json:"display_name" gorm:"size:100"`
	Email       string `json:"email" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
