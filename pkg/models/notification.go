package models

import "time"

// Notification is an in-app message delivered to one user. Delivery is
// fire-and-forget: workflows never block on the sink.
type Notification struct {
	ID            string    `json:"id" bson:"_id,omitempty" db:"id"`
	UserID        string    `json:"user_id" bson:"user_id" db:"user_id"`
	Type          string    `json:"type" bson:"type" db:"type"`
	Title         string    `json:"title" bson:"title" db:"title"`
	Message       string    `json:"message" bson:"message" db:"message"`
	Link          string    `json:"link,omitempty" bson:"link,omitempty" db:"link"`
	RelatedUserID string    `json:"related_user_id,omitempty" bson:"related_user_id,omitempty" db:"related_user_id"`
	Read          bool      `json:"read" bson:"read" db:"read"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
