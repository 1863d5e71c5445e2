package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/udhekryqi/udhekryqi-backend/internal/models"
)

func TestPostPreviewRedirectsBrowsers(t *testing.T) {
	postID := primitive.NewObjectID()
	h := NewPreviewHandler(&fakePostStore{}, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/posts/"+postID.Hex(), nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/130.0")
	req = withURLParams(req, map[string]string{"id": postID.Hex()})
	w := httptest.NewRecorder()

	h.PostPreview(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/posts/"+postID.Hex(), w.Header().Get("Location"))
}

func TestPostPreviewServesOpenGraphToCrawlers(t *testing.T) {
	postID := primitive.NewObjectID()
	posts := &fakePostStore{
		getFn: func(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
			return &models.Post{
				ID:         postID,
				CreatedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
				Title:      "Hiri dhe e vërteta",
				Content:    "<p>Një reflektim mbi hirin.</p>",
				AuthorName: "Redaksia",
				Media:      []string{"https://res.cloudinary.com/demo/image/upload/cover.jpg"},
			}, nil
		},
	}
	h := NewPreviewHandler(posts, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/posts/"+postID.Hex(), nil)
	req.Header.Set("User-Agent", "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)")
	req = withURLParams(req, map[string]string{"id": postID.Hex()})
	w := httptest.NewRecorder()

	h.PostPreview(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `og:title`)
	assert.Contains(t, body, "Hiri dhe e vërteta")
	assert.Contains(t, body, "Një reflektim mbi hirin.")
	assert.NotContains(t, body, "<p>")
	assert.Contains(t, body, "https://res.cloudinary.com/demo/image/upload/cover.jpg")
	assert.Contains(t, body, "2026-03-01T10:00:00Z")
}

func TestPostPreviewLogoFallbackAndAuthorDefault(t *testing.T) {
	postID := primitive.NewObjectID()
	posts := &fakePostStore{
		getFn: func(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
			return &models.Post{ID: postID, Title: "Pa media", Content: "tekst"}, nil
		},
	}
	h := NewPreviewHandler(posts, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/posts/"+postID.Hex(), nil)
	req.Header.Set("User-Agent", "Twitterbot/1.0")
	req = withURLParams(req, map[string]string{"id": postID.Hex()})
	w := httptest.NewRecorder()

	h.PostPreview(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/Logo-horizontal.png")
	assert.Contains(t, w.Body.String(), "Redaksia Udhekryqi")
}

func TestPostPreviewUnknownPost(t *testing.T) {
	posts := &fakePostStore{
		getFn: func(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
			return nil, models.ErrNotFound
		},
	}
	h := NewPreviewHandler(posts, testConfig())

	postID := primitive.NewObjectID()
	req := httptest.NewRequest(http.MethodGet, "/posts/"+postID.Hex(), nil)
	req.Header.Set("User-Agent", "WhatsApp/2.23.20")
	req = withURLParams(req, map[string]string{"id": postID.Hex()})
	w := httptest.NewRecorder()

	h.PostPreview(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
