package ui

import (
	"net/http"
	"strings"

	httperrors "github.com/jw6ventures/calboard/internal/http/errors"
)

// loginRequest names the session owner. The demo has no accounts; any
// non-empty name gets a signed session cookie.
type loginRequest struct {
	Owner string `json:"owner"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	owner := strings.TrimSpace(req.Owner)
	if owner == "" {
		httperrors.BadRequestError(w, r, nil, "owner is required")
		return
	}

	if err := h.sessions.Issue(w, owner); err != nil {
		internalError(w, r, err, "issue session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"owner": owner})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
