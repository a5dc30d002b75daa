package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`

	Email    string `bson:"email" json:"email"`
	Name     string `bson:"name" json:"name"`
	Username string `bson:"username" json:"username"`

	// Kept in the document for clients that still read it; nothing writes
	// anything but "".
	Following string `bson:"following" json:"following"`
}
