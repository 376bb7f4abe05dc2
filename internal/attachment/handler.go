package attachment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/planora-app/planora/internal/auth"
	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/contact"
	"github.com/planora-app/planora/internal/guard"
	"github.com/planora-app/planora/internal/parent"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
	"github.com/planora-app/planora/internal/task"
)

var validate = validator.New()

type assignForm struct {
	ContactID string `json:"contact_id" validate:"required,uuid"`
}

type Handler struct {
	service AttachmentService
}

func NewHandler(service AttachmentService) *Handler {
	return &Handler{service: service}
}

// Assign handles POST /{programs|projects|tasks}/{id}/contacts.
func (h *Handler) Assign(kind parent.Kind, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		claims, err := auth.GetUserClaimsFromContext(r.Context())
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ref, ok := refFromURL(w, r, kind, param)
		if !ok {
			return
		}

		var form assignForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(form); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		contactID := uuid.MustParse(form.ContactID)
		if err := h.service.Assign(r.Context(), ref, contactID, uuid.MustParse(claims.UserID)); err != nil {
			writeServiceError(w, log, err)
			return
		}

		config.JSON(w, http.StatusOK, map[string]string{"message": "contact assigned"})
	}
}

// Unassign handles DELETE /{programs|projects|tasks}/{id}/contacts/{contactId}.
func (h *Handler) Unassign(kind parent.Kind, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		claims, err := auth.GetUserClaimsFromContext(r.Context())
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ref, ok := refFromURL(w, r, kind, param)
		if !ok {
			return
		}

		contactID, err := uuid.Parse(chi.URLParam(r, "contactId"))
		if err != nil {
			http.Error(w, "invalid contact id", http.StatusBadRequest)
			return
		}

		if err := h.service.Unassign(r.Context(), ref, contactID, uuid.MustParse(claims.UserID)); err != nil {
			writeServiceError(w, log, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListContacts handles GET /{programs|projects|tasks}/{id}/contacts.
func (h *Handler) ListContacts(kind parent.Kind, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		claims, err := auth.GetUserClaimsFromContext(r.Context())
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ref, ok := refFromURL(w, r, kind, param)
		if !ok {
			return
		}

		contacts, err := h.service.ListContacts(r.Context(), ref, uuid.MustParse(claims.UserID))
		if err != nil {
			writeServiceError(w, log, err)
			return
		}

		config.JSON(w, http.StatusOK, contacts)
	}
}

func refFromURL(w http.ResponseWriter, r *http.Request, kind parent.Kind, param string) (parent.Ref, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return parent.Ref{}, false
	}
	switch kind {
	case parent.KindProgram:
		return parent.ForProgram(id), true
	case parent.KindProject:
		return parent.ForProject(id), true
	default:
		return parent.ForTask(id), true
	}
}

func writeServiceError(w http.ResponseWriter, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, contact.ErrContactNotFound),
		errors.Is(err, program.ErrProgramNotFound),
		errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, task.ErrTaskNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, guard.ErrAccessDenied):
		http.Error(w, "access denied", http.StatusForbidden)
	default:
		log.WithError(err).Error("Contact assignment failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
