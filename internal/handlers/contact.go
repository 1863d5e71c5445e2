package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Contact forwards a contact-form message to the editorial inbox and sends
// an auto-reply to the visitor.
func (h *AuthHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		writeMessage(w, http.StatusBadRequest, "Të gjitha fushat janë të detyrueshme.")
		return
	}

	htmlToAdmin := fmt.Sprintf(`
      <p><strong>Emri:</strong> %s</p>
      <p><strong>Email:</strong> %s</p>
      <p><strong>Mesazhi:</strong><br/>%s</p>
    `, req.Name, req.Email, req.Message)
	if err := h.mailer.Send(h.cfg.AdminEmail, "Kontakt nga "+req.Name, htmlToAdmin); err != nil {
		writeError(w, err)
		return
	}

	htmlToUser := fmt.Sprintf(`
      <p>I nderuar/ë %s,</p>
      <p>Faleminderit që na kontaktuat. Mesazhi juaj është pranuar dhe do të shqyrtohet sa më shpejt.</p>
      <p>Ju mund të përgjigjeni në këtë email nëse dëshironi të shtoni diçka.</p>
      <p><em>Udhëkryqi</em></p>
    `, req.Name)
	if err := h.mailer.Send(req.Email, "Udhëkryqi: Mesazhi juaj është pranuar", htmlToUser); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Mesazhi u dërgua me sukses.")
}
