package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Teacher is a classroom owner. Teachers sign up with a username and
// password (or Google, when OAuth is configured) and create classrooms
// that students post questions to.
type Teacher struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	UsernameCI   string             `bson:"username_ci" json:"-"` // lowercase, diacritics-stripped
	PasswordHash string             `bson:"password" json:"-"`
	AuthMethod   string             `bson:"auth_method,omitempty" json:"-"` // password | google
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
