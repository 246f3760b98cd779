// Package api exposes HTTP handlers for the signup service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"example.com/signup/internal/domain"
	"example.com/signup/internal/observability"
	"example.com/signup/internal/registry"
	"example.com/signup/web"
)

// Handler coordinates HTTP requests with the activity registry.
type Handler struct {
	registry *registry.Registry
	logger   *zap.Logger
}

// NewHandler builds a Handler.
func NewHandler(reg *registry.Registry, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{registry: reg, logger: logger}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.root)
	mux.Handle("/static/", http.FileServer(http.FS(web.Static)))
	mux.HandleFunc("/activities", h.listActivities)
	mux.HandleFunc("/activities/", h.activityAction)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// root redirects the bare path to the static UI. Every other path falling
// through to this pattern is unknown.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
		return
	}
	writeJSON(w, http.StatusOK, h.registry.List(r.Context()))
}

// activityAction dispatches the two roster mutations. The mux hands us an
// already URL-decoded path, so activity names keep their spaces:
//
//	POST   /activities/{name}/signup?email=E
//	DELETE /activities/{name}/signup/{email}
func (h *Handler) activityAction(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/activities/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 2 && parts[1] == "signup":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "unsupported method")
			return
		}
		h.signup(w, r, parts[0])
	case len(parts) == 3 && parts[1] == "signup":
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "unsupported method")
			return
		}
		h.unregister(w, r, parts[0], parts[2])
	default:
		writeError(w, http.StatusNotFound, "Not Found")
	}
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request, name string) {
	email := r.URL.Query().Get("email")
	if strings.TrimSpace(email) == "" {
		writeError(w, http.StatusBadRequest, "missing email parameter")
		return
	}

	if err := h.registry.Signup(r.Context(), name, email); err != nil {
		h.logger.Warn("signup rejected",
			zap.String("activity", name),
			zap.String("email", domain.NormalizeEmail(email)),
			zap.Error(err))
		switch {
		case errors.Is(err, domain.ErrActivityNotFound):
			observability.RecordSignup(observability.OutcomeNotFound)
			writeError(w, http.StatusNotFound, "Activity not found")
		case errors.Is(err, domain.ErrAlreadySignedUp):
			observability.RecordSignup(observability.OutcomeConflict)
			writeError(w, http.StatusBadRequest, "Student already signed up for this activity")
		case errors.Is(err, domain.ErrActivityFull):
			observability.RecordSignup(observability.OutcomeConflict)
			writeError(w, http.StatusBadRequest, "Activity is full")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	normalized := domain.NormalizeEmail(email)
	observability.RecordSignup(observability.OutcomeSuccess)
	h.logger.Info("participant signed up",
		zap.String("activity", name),
		zap.String("email", normalized))
	writeMessage(w, fmt.Sprintf("Signed up %s for %s", normalized, name))
}

func (h *Handler) unregister(w http.ResponseWriter, r *http.Request, name, email string) {
	if err := h.registry.Unregister(r.Context(), name, email); err != nil {
		h.logger.Warn("unregister rejected",
			zap.String("activity", name),
			zap.String("email", domain.NormalizeEmail(email)),
			zap.Error(err))
		switch {
		case errors.Is(err, domain.ErrActivityNotFound):
			observability.RecordUnregister(observability.OutcomeNotFound)
			writeError(w, http.StatusNotFound, "Activity not found")
		case errors.Is(err, domain.ErrParticipantNotFound):
			observability.RecordUnregister(observability.OutcomeNotFound)
			writeError(w, http.StatusNotFound, "Participant not found")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	normalized := domain.NormalizeEmail(email)
	observability.RecordUnregister(observability.OutcomeSuccess)
	h.logger.Info("participant unregistered",
		zap.String("activity", name),
		zap.String("email", normalized))
	writeMessage(w, fmt.Sprintf("Unregistered %s from %s", normalized, name))
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
