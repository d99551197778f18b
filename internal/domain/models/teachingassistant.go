package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeachingAssistant answers student questions across classrooms.
// TAs log in with username or email; IsActive gates login eligibility,
// so a deactivated TA keeps its records but can no longer sign in.
type TeachingAssistant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	UsernameCI   string             `bson:"username_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	FullName     string             `bson:"full_name" json:"fullName"`
	IsActive     bool               `bson:"is_active" json:"isActive"`
	LastLogin    *time.Time         `bson:"last_login,omitempty" json:"lastLogin,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}
