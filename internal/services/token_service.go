package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udhekryqi/udhekryqi-backend/internal/models"
)

// TokenValidity is how long a verification/reset token stays redeemable.
const TokenValidity = time.Hour

// TokenService issues and redeems the single-use tokens behind email
// verification and password reset links. Both flows share one collection;
// a token document carries no purpose field, the redeeming endpoint decides
// what redemption means.
type TokenService struct {
	col *mongo.Collection
}

func NewTokenService(db *mongo.Database) *TokenService {
	return &TokenService{col: db.Collection("verify_tokens")}
}

// NewTokenString returns a fresh opaque token: 32 random bytes, hex-encoded.
func NewTokenString() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Issue stores a new token bound to userID and returns the token string for
// embedding in an outbound email link. Outstanding tokens for the same user
// stay valid; there is no deduplication.
func (s *TokenService) Issue(ctx context.Context, userID primitive.ObjectID) (string, error) {
	token, err := NewTokenString()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	_, err = s.col.InsertOne(ctx, models.VerifyToken{
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(TokenValidity),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Redeem looks the token up and enforces expiry: an expired token is deleted
// and reported exactly like a missing one, so callers cannot tell never-issued
// from stale. Redeem does not consume the token; the caller deletes it once
// the action it guards has succeeded.
func (s *TokenService) Redeem(ctx context.Context, token string) (*models.VerifyToken, error) {
	var doc models.VerifyToken
	err := s.col.FindOne(ctx, bson.M{"token": token}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !doc.ExpiresAt.IsZero() && time.Now().After(doc.ExpiresAt) {
		_, _ = s.col.DeleteOne(ctx, bson.M{"_id": doc.ID})
		return nil, models.ErrNotFound
	}
	return &doc, nil
}

// Delete removes a redeemed token, enforcing single use.
func (s *TokenService) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
