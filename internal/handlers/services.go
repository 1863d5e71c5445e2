package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/udhekryqi/udhekryqi-backend/internal/models"
	"github.com/udhekryqi/udhekryqi-backend/internal/services"
)

// Narrow interfaces over the concrete services so handlers can be exercised
// with fakes in tests.

type UserStore interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	MarkVerified(ctx context.Context, id primitive.ObjectID) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, password string) error
	Update(ctx context.Context, id primitive.ObjectID, name, password string) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TokenIssuer interface {
	Issue(ctx context.Context, userID primitive.ObjectID) (string, error)
	Redeem(ctx context.Context, token string) (*models.VerifyToken, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type PostStore interface {
	Create(ctx context.Context, authorID primitive.ObjectID, authorName, title, content string, tags, media []string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Update(ctx context.Context, id primitive.ObjectID, upd services.PostUpdate) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error)
	ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.LikeResult, error)
	AddComment(ctx context.Context, postID, userID primitive.ObjectID, name, content string, parentID *primitive.ObjectID) (*models.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID, requesterID primitive.ObjectID, requesterRole string) error
}

type SubscriberStore interface {
	Subscribe(ctx context.Context, email string) (*models.Subscriber, error)
	Unsubscribe(ctx context.Context, token string) error
	All(ctx context.Context) ([]models.Subscriber, error)
}

type Mailer interface {
	Send(to, subject, html string) error
	SendAsync(to, subject, html string)
}
