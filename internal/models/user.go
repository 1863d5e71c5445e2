package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // Don't return password hash in JSON
	Role     string `bson:"role" json:"role"`
	Verified bool   `bson:"verified" json:"verified"`

	// Legacy gate kept for compatibility with existing documents; never set anywhere.
	AdminApproved bool `bson:"adminApproved,omitempty" json:"adminApproved"`
}
