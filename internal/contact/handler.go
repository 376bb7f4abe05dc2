package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/planora-app/planora/internal/auth"
	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/entitlement"
	"github.com/planora-app/planora/internal/guard"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

type Handler struct {
	service ContactService
}

func NewHandler(service ContactService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var form ContactForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.service.Create(r.Context(), uuid.MustParse(claims.UserID), form)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	config.JSON(w, http.StatusCreated, c)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	contacts, err := h.service.List(r.Context(), uuid.MustParse(claims.UserID))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, contacts)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.service.GetByID(r.Context(), id, uuid.MustParse(claims.UserID))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var form ContactForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.service.Update(r.Context(), id, uuid.MustParse(claims.UserID), form)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id, uuid.MustParse(claims.UserID)); err != nil {
		writeServiceError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, log *logrus.Entry, err error) {
	var quotaErr *entitlement.QuotaError
	switch {
	case errors.Is(err, ErrContactNotFound):
		http.Error(w, "contact not found", http.StatusNotFound)
	case errors.Is(err, guard.ErrAccessDenied):
		http.Error(w, "access denied", http.StatusForbidden)
	case errors.As(err, &quotaErr):
		config.JSON(w, http.StatusPaymentRequired, map[string]string{"error": quotaErr.Error()})
	default:
		log.WithError(err).Error("Contact operation failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
