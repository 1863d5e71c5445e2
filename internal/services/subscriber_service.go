package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udhekryqi/udhekryqi-backend/internal/models"
)

// SubscriberService manages the newsletter list. Subscribing is idempotent on
// the email address; rows created before unsubscribe tokens existed get one
// backfilled on their next subscribe.
type SubscriberService struct {
	col *mongo.Collection
}

func NewSubscriberService(db *mongo.Database) *SubscriberService {
	return &SubscriberService{col: db.Collection("subscribers")}
}

func (s *SubscriberService) Subscribe(ctx context.Context, email string) (*models.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, models.NewValidationError("Email is required")
	}

	var sub models.Subscriber
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		token, err := NewTokenString()
		if err != nil {
			return nil, err
		}
		now := time.Now().UTC()
		sub = models.Subscriber{
			ID:               primitive.NewObjectID(),
			CreatedAt:        now,
			UpdatedAt:        now,
			Email:            email,
			UnsubscribeToken: token,
		}
		if _, err := s.col.InsertOne(ctx, sub); err != nil {
			return nil, err
		}
		return &sub, nil
	}
	if err != nil {
		return nil, err
	}

	// Legacy row without a token
	if sub.UnsubscribeToken == "" {
		token, err := NewTokenString()
		if err != nil {
			return nil, err
		}
		sub.UnsubscribeToken = token
		_, err = s.col.UpdateOne(ctx, bson.M{"_id": sub.ID}, bson.M{"$set": bson.M{
			"unsubscribeToken": token,
			"updatedAt":        time.Now().UTC(),
		}})
		if err != nil {
			return nil, err
		}
	}
	return &sub, nil
}

// Unsubscribe deletes the subscriber holding the given token.
func (s *SubscriberService) Unsubscribe(ctx context.Context, token string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"unsubscribeToken": token})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// All returns every subscriber for a newsletter broadcast.
func (s *SubscriberService) All(ctx context.Context) ([]models.Subscriber, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	subs := []models.Subscriber{}
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
