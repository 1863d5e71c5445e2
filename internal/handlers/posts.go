package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/udhekryqi/udhekryqi-backend/internal/config"
	"github.com/udhekryqi/udhekryqi-backend/internal/middleware"
	"github.com/udhekryqi/udhekryqi-backend/internal/models"
	"github.com/udhekryqi/udhekryqi-backend/internal/services"
)

type PostHandler struct {
	posts       PostStore
	users       UserStore
	subscribers SubscriberStore
	mailer      Mailer
	cfg         *config.Config
}

func NewPostHandler(posts PostStore, users UserStore, subscribers SubscriberStore, mailer Mailer, cfg *config.Config) *PostHandler {
	return &PostHandler{posts: posts, users: users, subscribers: subscribers, mailer: mailer, cfg: cfg}
}

type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Media   []string `json:"media"`
}

type AddCommentRequest struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	ParentID string `json:"parentId"`
}

// Create publishes a post with the author's name snapshotted at creation
// time, then broadcasts the newsletter to all subscribers in the background.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	authorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	author, err := h.users.FindByID(r.Context(), authorID)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Author not found")
		return
	}

	post, err := h.posts.Create(r.Context(), author.ID, author.Name, req.Title, req.Content, req.Tags, req.Media)
	if err != nil {
		writeError(w, err)
		return
	}

	go h.broadcastNewPost(post)

	writeJSON(w, http.StatusCreated, post)
}

// broadcastNewPost fans the new-post email out to every subscriber.
// Fire-and-forget: failures are logged, never surfaced, and there is no retry.
func (h *PostHandler) broadcastNewPost(post *models.Post) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	subs, err := h.subscribers.All(ctx)
	if err != nil {
		log.Printf("⚠️  Newsletter broadcast skipped: %v", err)
		return
	}
	for _, sub := range subs {
		html := services.BuildNewPostEmail(h.cfg.ClientURL, h.cfg.Host, post, sub.UnsubscribeToken)
		h.mailer.SendAsync(sub.Email, "Artikull i ri në Udhëkryqi: "+post.Title, html)
	}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Comments returns the post's comments as a nested tree, replies under their
// parent, each sibling group newest-first.
func (h *PostHandler) Comments(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"comments": services.BuildCommentTree(post.Comments),
	})
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	var upd services.PostUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.posts.Update(r.Context(), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	if err := h.posts.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Post deleted successfully")
}

// ToggleLike flips the caller's like on the post and returns the new
// membership flag, count and full like set.
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.posts.ToggleLike(r.Context(), postID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// AddComment appends a comment, optionally as a reply when parentId is set.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var parentID *primitive.ObjectID
	if req.ParentID != "" {
		pid, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid parentId")
			return
		}
		parentID = &pid
	}

	comment, err := h.posts.AddComment(r.Context(), postID, userID, req.Name, req.Content, parentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"comment": comment})
}

// DeleteComment removes a comment and its reply subtree; allowed for the
// comment owner or an admin.
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postId"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	commentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "commentId"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Comment not found")
		return
	}
	requesterID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.posts.DeleteComment(r.Context(), postID, commentID, requesterID, claims.Role); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Comment deleted")
}
