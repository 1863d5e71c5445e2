package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/udhekryqi/udhekryqi-backend/internal/config"
	"github.com/udhekryqi/udhekryqi-backend/internal/services"
)

type SubscriptionHandler struct {
	subscribers SubscriberStore
	mailer      Mailer
	cfg         *config.Config
}

func NewSubscriptionHandler(subscribers SubscriberStore, mailer Mailer, cfg *config.Config) *SubscriptionHandler {
	return &SubscriptionHandler{subscribers: subscribers, mailer: mailer, cfg: cfg}
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe adds the address to the newsletter list instantly, no
// verification, and sends the welcome email. Subscribing twice is a no-op
// that keeps the original unsubscribe token.
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := h.subscribers.Subscribe(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	html := services.BuildWelcomeEmail(h.cfg.Host, sub.UnsubscribeToken)
	if err := h.mailer.Send(sub.Email, "Mirë se vini në Udhëkryqin!", html); err != nil {
		log.Printf("⚠️  Failed to send welcome email to %s: %v", sub.Email, err)
	}

	writeMessage(w, http.StatusOK, "Abonimi u krye. Email mirëseardhjeje u dërgua.")
}

// Unsubscribe handles the link embedded in every newsletter email. Responds
// with rendered HTML since the click comes from a mail client, not the SPA.
func (h *SubscriptionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Token mungon."))
		return
	}

	if err := h.subscribers.Unsubscribe(r.Context(), token); err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Token i pavlefshëm ose tashmë i çabonuar."))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(`<!DOCTYPE html>
<html lang="sq">
<head>
  <meta charset="utf-8" />
  <title>Çabonim i suksesshëm</title>
</head>
<body style="font-family: Georgia, serif; text-align: center; margin-top: 50px;">
  <h1>U çabonuat me sukses</h1>
  <p>Nuk do të merrni më email-e nga Udhëkryqi në këtë adresë.</p>
</body>
</html>`))
}
