package models

import "time"

// Post is a feed entry, optionally carrying an uploaded image. The owner
// reference is set at creation and never changes.
type Post struct {
	ID        string    `json:"id" bson:"_id" db:"id"`
	UserID    string    `json:"userId" bson:"user_id" db:"user_id"`
	Content   string    `json:"content" bson:"content" db:"content"`
	ImageURL  string    `json:"imageUrl,omitempty" bson:"image_url,omitempty" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at" db:"updated_at"`

	// Author is populated on reads that join the owning user; never stored.
	Author *User `json:"user,omitempty" bson:"-" db:"-"`
}
