package models

import (
	"time"
)

// User represents the users table
// DB: users
type User struct {
	ID        string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	Email     string    `gorm:"column:email;size:255;not null;uniqueIndex:users_email_key" json:"email"`
	Password  string    `gorm:"column:password;size:255;not null" json:"-"`
	Name      string    `gorm:"column:name;size:100;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}

// SearchHistory represents one saved search for a user
// DB: search_history
// Records are served newest-first and capped at the 50 most recent per user.
type SearchHistory struct {
	ID        string         `gorm:"primaryKey;column:id;size:36" json:"id"`
	UserID    string         `gorm:"column:user_id;size:36;not null;index:search_history_user_id_idx" json:"userId"`
	Query     string         `gorm:"column:query;size:500;not null" json:"query"`
	Location  string         `gorm:"column:location;size:500;not null" json:"location"`
	Radius    string         `gorm:"column:radius;size:20;not null" json:"radius"`
	Filters   map[string]any `gorm:"column:filters;serializer:json" json:"filters"`
	Timestamp time.Time      `gorm:"column:timestamp;not null" json:"timestamp"`
}

func (SearchHistory) TableName() string {
	return "search_history"
}
