package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/udhekryqi/udhekryqi-backend/internal/models"
)

const bcryptCost = 10

// UserService owns the users collection: registration, credential checks and
// profile mutation. Role is pinned to "user" at registration and no mutation
// path ever reads a role from input.
type UserService struct {
	col *mongo.Collection
}

func NewUserService(db *mongo.Database) *UserService {
	return &UserService{col: db.Collection("users")}
}

// Register creates an unverified user with a bcrypt password hash.
// Returns ErrConflict when the email is already taken.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, models.NewValidationError("Name, email and password are required")
	}

	count, err := s.col.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, models.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Role:      models.RoleUser, // never taken from client input
		Verified:  false,
	}

	if _, err := s.col.InsertOne(ctx, user); err != nil {
		// The unique index can still race a concurrent register
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate checks the credentials and the verified flag. Unknown email
// and wrong password report the same ErrInvalidCredentials; an unverified
// account gets the distinct ErrNotVerified.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.Verified {
		return nil, models.ErrNotVerified
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, models.ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// MarkVerified flips the verified flag. Idempotent.
func (s *UserService) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"verified": true, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the password hash. Backs the reset-password flow.
func (s *UserService) UpdatePassword(ctx context.Context, id primitive.ObjectID, password string) error {
	if password == "" {
		return models.NewValidationError("Password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password": string(hash), "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Update changes name and/or password; empty values leave the field alone.
// Role is deliberately not updatable through any path.
func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, name, password string) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if strings.TrimSpace(name) != "" {
		set["name"] = strings.TrimSpace(name)
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return nil, err
		}
		set["password"] = string(hash)
	}

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, after).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
