package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account. PasswordHash never leaves the service.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name"          json:"name"`
	Email        string        `bson:"email"         json:"email"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	Avatar       string        `bson:"avatar"        json:"avatar"`
	CreatedAt    time.Time     `bson:"created_at"    json:"created_at"`
}
