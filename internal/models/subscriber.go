package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Subscriber struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	Email string `bson:"email" json:"email"` // lower-cased, unique
	// UnsubscribeToken is embedded in every newsletter email. Legacy rows may
	// lack one; it gets backfilled the next time the address subscribes.
	UnsubscribeToken string `bson:"unsubscribeToken" json:"-"`
}
