package handlers

import (
	"net/http"

	"github.com/udhekryqi/udhekryqi-backend/internal/services"
)

type UploadHandler struct {
	cloudinary *services.CloudinaryService
}

func NewUploadHandler(cloudinary *services.CloudinaryService) *UploadHandler {
	return &UploadHandler{cloudinary: cloudinary}
}

type UploadResponse struct {
	URL string `json:"url"`
}

// Upload pushes article media to Cloudinary and returns the public URL.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.cloudinary == nil {
		writeMessage(w, http.StatusInternalServerError, "File upload service not available")
		return
	}

	// 20MB covers images and short videos
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = "udhekryqi"
	}

	url, err := h.cloudinary.UploadFile(r.Context(), file, folder)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{URL: url})
}
