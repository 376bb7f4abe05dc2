package milestone

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
	"github.com/planora-app/planora/internal/guard"
	"github.com/planora-app/planora/internal/parent"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
)

var validate = validator.New()

type Handler struct {
	service MilestoneService
}

func NewHandler(service MilestoneService) *Handler {
	return &Handler{service: service}
}

// CreateForParent handles POST /{programs|projects}/{id}/milestones.
func (h *Handler) CreateForParent(kind parent.Kind, param string) http.HandlerFunc {
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

		var form MilestoneForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(form); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		m, err := h.service.Create(r.Context(), ref, uuid.MustParse(claims.UserID), form)
		if err != nil {
			writeServiceError(w, log, err)
			return
		}

		config.JSON(w, http.StatusCreated, m)
	}
}

// ListForParent handles GET /{programs|projects}/{id}/milestones.
func (h *Handler) ListForParent(kind parent.Kind, param string) http.HandlerFunc {
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

		milestones, err := h.service.ListByParent(r.Context(), ref, uuid.MustParse(claims.UserID))
		if err != nil {
			writeServiceError(w, log, err)
			return
		}

		config.JSON(w, http.StatusOK, milestones)
	}
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

	m, err := h.service.GetByID(r.Context(), id, uuid.MustParse(claims.UserID))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, m)
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

	var form MilestoneForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.service.Update(r.Context(), id, uuid.MustParse(claims.UserID), form)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, m)
}

// Toggle handles POST /milestones/{id}/toggle.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
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

	m, err := h.service.Toggle(r.Context(), id, uuid.MustParse(claims.UserID))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, m)
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

	ref, err := h.service.Delete(r.Context(), id, uuid.MustParse(claims.UserID))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"redirect_kind": string(ref.Kind()),
		"redirect_id":   ref.ID().String(),
	})
}

func refFromURL(w http.ResponseWriter, r *http.Request, kind parent.Kind, param string) (parent.Ref, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return parent.Ref{}, false
	}
	if kind == parent.KindProgram {
		return parent.ForProgram(id), true
	}
	return parent.ForProject(id), true
}

func writeServiceError(w http.ResponseWriter, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, ErrMilestoneNotFound):
		http.Error(w, "milestone not found", http.StatusNotFound)
	case errors.Is(err, program.ErrProgramNotFound):
		http.Error(w, "program not found", http.StatusNotFound)
	case errors.Is(err, project.ErrProjectNotFound):
		http.Error(w, "project not found", http.StatusNotFound)
	case errors.Is(err, guard.ErrAccessDenied):
		http.Error(w, "access denied", http.StatusForbidden)
	case errors.Is(err, ErrInvalidParent):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.WithError(err).Error("Milestone operation failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
