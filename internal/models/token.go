package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VerifyToken is a single-use opaque token bound to a user. The same document
// type backs both email verification and password reset links. A user may
// have several live tokens at once; issuing a new one does not invalidate
// earlier ones.
type VerifyToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Token     string             `bson:"token" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
}
