package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/udhekryqi/udhekryqi-backend/internal/auth"
	"github.com/udhekryqi/udhekryqi-backend/internal/config"
	"github.com/udhekryqi/udhekryqi-backend/internal/middleware"
	"github.com/udhekryqi/udhekryqi-backend/internal/models"
	"github.com/udhekryqi/udhekryqi-backend/internal/services"
)

type AuthHandler struct {
	users  UserStore
	tokens TokenIssuer
	posts  PostStore
	mailer Mailer
	cfg    *config.Config
}

func NewAuthHandler(users UserStore, tokens TokenIssuer, posts PostStore, mailer Mailer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, posts: posts, mailer: mailer, cfg: cfg}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

type userSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	Verified      bool   `json:"verified,omitempty"`
	AdminApproved bool   `json:"adminApproved,omitempty"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  userSummary `json:"user"`
}

// Register creates an unverified account and emails the verification link.
// A failed email send is logged but does not fail the registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.tokens.Issue(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	verifyURL := fmt.Sprintf("%s/api/auth/verify/%s", h.cfg.Host, token)
	if err := h.mailer.Send(user.Email, "Verify your email", services.BuildVerifyEmail(user.Name, verifyURL)); err != nil {
		log.Printf("⚠️  Failed to send verification email to %s: %v", user.Email, err)
	}

	writeMessage(w, http.StatusCreated, "User registered. Please verify your email.")
}

// Login checks credentials and returns a 2-hour bearer token with the user
// summary.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Role, []byte(h.cfg.JWTSecret))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User: userSummary{
			ID:            user.ID.Hex(),
			Name:          user.Name,
			Email:         user.Email,
			Role:          user.Role,
			Verified:      user.Verified,
			AdminApproved: user.AdminApproved,
		},
	})
}

// VerifyEmail redeems a verification token. Verifying an already-verified
// account succeeds without consuming anything.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	tok, err := h.tokens.Redeem(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid or expired verification token")
		return
	}

	user, err := h.users.FindByID(r.Context(), tok.UserID)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "User not found")
		return
	}

	if user.Verified {
		writeMessage(w, http.StatusOK, "Email already verified.")
		return
	}

	if err := h.users.MarkVerified(r.Context(), user.ID); err != nil {
		writeError(w, err)
		return
	}
	if err := h.tokens.Delete(r.Context(), tok.ID); err != nil {
		log.Printf("⚠️  Failed to delete redeemed token: %v", err)
	}
	writeMessage(w, http.StatusOK, "Email verified successfully. You can now log in.")
}

// ForgotPassword issues a reset token and emails the reset link.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.tokens.Issue(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", h.cfg.ClientURL, token)
	if err := h.mailer.Send(user.Email, "Reset your password", services.BuildResetEmail(user.Name, resetURL)); err != nil {
		log.Printf("⚠️  Failed to send reset email to %s: %v", user.Email, err)
	}

	writeMessage(w, http.StatusOK, "Password reset email sent")
}

// ResetPassword redeems a reset token, replaces the password hash and
// consumes the token.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tok, err := h.tokens.Redeem(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid or expired token")
		return
	}

	if err := h.users.UpdatePassword(r.Context(), tok.UserID, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	if err := h.tokens.Delete(r.Context(), tok.ID); err != nil {
		log.Printf("⚠️  Failed to delete redeemed token: %v", err)
	}
	writeMessage(w, http.StatusOK, "Password reset successful. You can now log in.")
}

// UpdateUser changes the target user's name and/or password. Allowed for the
// user themselves or an admin; role is never part of the request schema.
func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID := chi.URLParam(r, "id")
	if !auth.IsSelfOrAdmin(claims.UserID, userID, claims.Role) {
		writeMessage(w, http.StatusForbidden, "Unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		writeError(w, models.ErrNotFound)
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Update(r.Context(), id, req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User updated",
		"user": userSummary{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}

// DeleteUser removes an account; with ?deletePosts=true every post authored
// by that account goes with it.
func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID := chi.URLParam(r, "id")
	if !auth.IsSelfOrAdmin(claims.UserID, userID, claims.Role) {
		writeMessage(w, http.StatusForbidden, "Access denied")
		return
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		writeError(w, models.ErrNotFound)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("deletePosts") == "true" {
		if _, err := h.posts.DeleteByAuthor(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
	}

	writeMessage(w, http.StatusOK, "User deleted")
}
