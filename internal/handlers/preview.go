package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/udhekryqi/udhekryqi-backend/internal/config"
	"github.com/udhekryqi/udhekryqi-backend/internal/services"
)

var botUserAgentPattern = regexp.MustCompile(`(?i)facebookexternalhit|twitterbot|linkedinbot|discordbot|telegrambot|whatsapp`)

// previewTemplate renders the Open Graph page social crawlers consume. Real
// browsers never see it; they get redirected to the SPA.
var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="sq">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <meta name="description"        content="{{.Description}}">
  <meta property="og:type"        content="article">
  <meta property="og:site_name"   content="Udhëkryqi">
  <meta property="og:title"       content="{{.Title}}">
  <meta property="og:description" content="{{.Description}}">
  <meta property="og:image"       content="{{.Image}}">
  <meta property="og:url"         content="{{.URL}}">
  <meta property="article:author" content="{{.Author}}">
  <meta property="article:published_time" content="{{.Published}}">
  <meta name="twitter:card"       content="summary_large_image">
  <meta name="twitter:title"      content="{{.Title}}">
  <meta name="twitter:description" content="{{.Description}}">
  <meta name="twitter:image"      content="{{.Image}}">
  <meta http-equiv="refresh"      content="0; url={{.URL}}">
</head>
<body>Redirecting…</body>
</html>`))

type previewData struct {
	Title       string
	Description string
	Image       string
	URL         string
	Author      string
	Published   string
}

type PreviewHandler struct {
	posts PostStore
	cfg   *config.Config
}

func NewPreviewHandler(posts PostStore, cfg *config.Config) *PreviewHandler {
	return &PreviewHandler{posts: posts, cfg: cfg}
}

// PostPreview serves GET /posts/{id} for link unfurling: social-media
// crawlers get an Open Graph HTML page, everyone else a redirect to the
// front end.
func (h *PreviewHandler) PostPreview(w http.ResponseWriter, r *http.Request) {
	postURL := fmt.Sprintf("%s/posts/%s", h.cfg.ClientURL, chi.URLParam(r, "id"))

	if !botUserAgentPattern.MatchString(r.Header.Get("User-Agent")) {
		http.Redirect(w, r, postURL, http.StatusFound)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	desc := services.Snippet(post.Content)
	if len([]rune(desc)) > 160 {
		desc = string([]rune(desc)[:160])
	}

	image := h.cfg.ClientURL + "/Logo-horizontal.png"
	if len(post.Media) > 0 {
		image = post.Media[0]
	}

	author := post.AuthorName
	if author == "" {
		author = "Redaksia Udhekryqi"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	previewTemplate.Execute(w, previewData{
		Title:       post.Title,
		Description: desc,
		Image:       image,
		URL:         postURL,
		Author:      author,
		Published:   post.CreatedAt.UTC().Format(time.RFC3339),
	})
}
