package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID             bson.ObjectID `json:"id"             bson:"_id,omitempty"`
	Username       string        `json:"username"       bson:"username"`
	Email          string        `json:"email"          bson:"email"`
	PasswordHash   string        `json:"-"              bson:"password_hash"`
	ProfilePicture string        `json:"profilePicture" bson:"profile_picture"`
	Bio            string        `json:"bio"            bson:"bio"`
	IsAdmin        bool          `json:"isAdmin"        bson:"is_admin"`
	CreatedAt      time.Time     `json:"createdAt"      bson:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt"      bson:"updated_at"`
}
