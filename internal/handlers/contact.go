package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrymomot/cardforge/pkg/mailer"
	"github.com/dmitrymomot/cardforge/pkg/sanitizer"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// contact relays a contact form submission to the configured inbox.
func (h *Handlers) contact(w http.ResponseWriter, r *http.Request) {
	if h.mail == nil {
		h.respondError(w, r, fmt.Errorf("%w: contact form is not configured", errUnavailable))
		return
	}

	var req contactRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 64<<10)).Decode(&req); err != nil {
		h.respondError(w, r, fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err))
		return
	}

	msg := mailer.ContactMessage{
		Name:    sanitizer.StripHTML(req.Name),
		Email:   sanitizer.StripHTML(req.Email),
		Message: sanitizer.StripHTML(req.Message),
	}
	if msg.Email == "" || !strings.Contains(msg.Email, "@") {
		h.respondError(w, r, fmt.Errorf("%w: valid email is required", errBadRequest))
		return
	}
	if msg.Message == "" {
		h.respondError(w, r, fmt.Errorf("%w: message is required", errBadRequest))
		return
	}
	if msg.Name == "" {
		msg.Name = "Anonymous"
	}

	if err := h.mail.SendContact(r.Context(), msg); err != nil {
		h.respondError(w, r, fmt.Errorf("send contact message: %w", err))
		return
	}

	h.respondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
