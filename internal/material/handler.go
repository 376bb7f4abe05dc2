package material

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
	"github.com/planora-app/planora/internal/task"
)

var validate = validator.New()

type Handler struct {
	service MaterialService
}

func NewHandler(service MaterialService) *Handler {
	return &Handler{service: service}
}

// CreateForParent handles POST /{programs|projects|tasks}/{id}/materials.
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

		var form MaterialForm
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

		config.JSON(w, http.StatusCreated, toResponse(m))
	}
}

// ListForParent handles GET /{programs|projects|tasks}/{id}/materials.
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

		materials, err := h.service.ListByParent(r.Context(), ref, uuid.MustParse(claims.UserID))
		if err != nil {
			writeServiceError(w, log, err)
			return
		}

		config.JSON(w, http.StatusOK, toResponses(materials))
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

	config.JSON(w, http.StatusOK, toResponse(m))
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

	var form MaterialForm
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

	config.JSON(w, http.StatusOK, toResponse(m))
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
	case errors.Is(err, ErrMaterialNotFound):
		http.Error(w, "material not found", http.StatusNotFound)
	case errors.Is(err, program.ErrProgramNotFound),
		errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, task.ErrTaskNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, guard.ErrAccessDenied):
		http.Error(w, "access denied", http.StatusForbidden)
	default:
		log.WithError(err).Error("Material operation failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
