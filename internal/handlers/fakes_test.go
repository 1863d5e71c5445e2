package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/udhekryqi/udhekryqi-backend/internal/auth"
	"github.com/udhekryqi/udhekryqi-backend/internal/middleware"
	"github.com/udhekryqi/udhekryqi-backend/internal/models"
	"github.com/udhekryqi/udhekryqi-backend/internal/services"
)

// --- request helpers ---

func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withClaims(r *http.Request, userID, role string) *http.Request {
	return r.WithContext(middleware.WithClaims(r.Context(), &auth.Claims{UserID: userID, Role: role}))
}

// --- fakes ---

type fakePostStore struct {
	createFn        func(ctx context.Context, authorID primitive.ObjectID, authorName, title, content string, tags, media []string) (*models.Post, error)
	listFn          func(ctx context.Context) ([]models.Post, error)
	getFn           func(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	updateFn        func(ctx context.Context, id primitive.ObjectID, upd services.PostUpdate) (*models.Post, error)
	deleteFn        func(ctx context.Context, id primitive.ObjectID) error
	deleteByAuthor  func(ctx context.Context, authorID primitive.ObjectID) (int64, error)
	toggleLikeFn    func(ctx context.Context, postID, userID primitive.ObjectID) (*models.LikeResult, error)
	addCommentFn    func(ctx context.Context, postID, userID primitive.ObjectID, name, content string, parentID *primitive.ObjectID) (*models.Comment, error)
	deleteCommentFn func(ctx context.Context, postID, commentID, requesterID primitive.ObjectID, requesterRole string) error
}

func (f *fakePostStore) Create(ctx context.Context, authorID primitive.ObjectID, authorName, title, content string, tags, media []string) (*models.Post, error) {
	return f.createFn(ctx, authorID, authorName, title, content, tags, media)
}
func (f *fakePostStore) List(ctx context.Context) ([]models.Post, error) { return f.listFn(ctx) }
func (f *fakePostStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return f.getFn(ctx, id)
}
func (f *fakePostStore) Update(ctx context.Context, id primitive.ObjectID, upd services.PostUpdate) (*models.Post, error) {
	return f.updateFn(ctx, id, upd)
}
func (f *fakePostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return f.deleteFn(ctx, id)
}
func (f *fakePostStore) DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	return f.deleteByAuthor(ctx, authorID)
}
func (f *fakePostStore) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.LikeResult, error) {
	return f.toggleLikeFn(ctx, postID, userID)
}
func (f *fakePostStore) AddComment(ctx context.Context, postID, userID primitive.ObjectID, name, content string, parentID *primitive.ObjectID) (*models.Comment, error) {
	return f.addCommentFn(ctx, postID, userID, name, content, parentID)
}
func (f *fakePostStore) DeleteComment(ctx context.Context, postID, commentID, requesterID primitive.ObjectID, requesterRole string) error {
	return f.deleteCommentFn(ctx, postID, commentID, requesterID, requesterRole)
}

type fakeUserStore struct {
	registerFn       func(ctx context.Context, name, email, password string) (*models.User, error)
	authenticateFn   func(ctx context.Context, email, password string) (*models.User, error)
	findByIDFn       func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	findByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	markVerifiedFn   func(ctx context.Context, id primitive.ObjectID) error
	updatePasswordFn func(ctx context.Context, id primitive.ObjectID, password string) error
	updateFn         func(ctx context.Context, id primitive.ObjectID, name, password string) (*models.User, error)
	deleteFn         func(ctx context.Context, id primitive.ObjectID) error
}

func (f *fakeUserStore) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	return f.registerFn(ctx, name, email, password)
}
func (f *fakeUserStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	return f.authenticateFn(ctx, email, password)
}
func (f *fakeUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.findByEmailFn(ctx, email)
}
func (f *fakeUserStore) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	return f.markVerifiedFn(ctx, id)
}
func (f *fakeUserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, password string) error {
	return f.updatePasswordFn(ctx, id, password)
}
func (f *fakeUserStore) Update(ctx context.Context, id primitive.ObjectID, name, password string) (*models.User, error) {
	return f.updateFn(ctx, id, name, password)
}
func (f *fakeUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return f.deleteFn(ctx, id)
}

type fakeTokenIssuer struct {
	issueFn  func(ctx context.Context, userID primitive.ObjectID) (string, error)
	redeemFn func(ctx context.Context, token string) (*models.VerifyToken, error)
	deleteFn func(ctx context.Context, id primitive.ObjectID) error

	deleted []primitive.ObjectID
}

func (f *fakeTokenIssuer) Issue(ctx context.Context, userID primitive.ObjectID) (string, error) {
	if f.issueFn != nil {
		return f.issueFn(ctx, userID)
	}
	return "issued-token", nil
}
func (f *fakeTokenIssuer) Redeem(ctx context.Context, token string) (*models.VerifyToken, error) {
	return f.redeemFn(ctx, token)
}
func (f *fakeTokenIssuer) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.deleted = append(f.deleted, id)
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeSubscriberStore struct {
	subscribeFn   func(ctx context.Context, email string) (*models.Subscriber, error)
	unsubscribeFn func(ctx context.Context, token string) error
	allFn         func(ctx context.Context) ([]models.Subscriber, error)
}

func (f *fakeSubscriberStore) Subscribe(ctx context.Context, email string) (*models.Subscriber, error) {
	return f.subscribeFn(ctx, email)
}
func (f *fakeSubscriberStore) Unsubscribe(ctx context.Context, token string) error {
	return f.unsubscribeFn(ctx, token)
}
func (f *fakeSubscriberStore) All(ctx context.Context) ([]models.Subscriber, error) {
	if f.allFn != nil {
		return f.allFn(ctx)
	}
	return nil, nil
}

type sentMail struct {
	To      string
	Subject string
	HTML    string
}

type fakeMailer struct {
	sent    []sentMail
	sendErr error
}

func (f *fakeMailer) Send(to, subject, html string) error {
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, HTML: html})
	return f.sendErr
}

func (f *fakeMailer) SendAsync(to, subject, html string) {
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, HTML: html})
}
