package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/models"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
	"github.com/gorilla/mux"
)

type ContactSubmitter interface {
	Submit(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error)
}

type ContactHandler struct {
	service ContactSubmitter
}

// * A nil service keeps the route registered but answers 503
func NewContactHandler(service ContactSubmitter) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/contact", h.submit).Methods("POST")
}

// submit godoc
// @Summary Submit Contact Message
// @Description Validates and stores a contact form submission
// @Tags Contact
// @Accept json
// @Produce json
// @Param message body models.ContactRequest true "Contact form"
// @Success 201 {object} models.ContactMessage
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 503 {object} errors.HTTPErrorResponse
// @Router /contact [post]
func (h *ContactHandler) submit(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		errors.WriteHTTPError(w, errors.ContactDisabled())
		return
	}

	var req models.ContactRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		errors.WriteHTTPError(w, errors.Validation("Request body must be a JSON contact form", nil))
		return
	}

	msg, err := h.service.Submit(r.Context(), req)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	logger.Info("Accepted contact message %s", msg.ID)
	writeJSON(w, http.StatusCreated, msg, "Message received")
}
