package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/go-polls-service/internal/errors"
)

func (h *Handlers) VoteAdd(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in VoteRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	if err := h.Service.VoteAdd(r.Context(), chi.URLParam(r, "id"), userID, in.Option); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) VoteUpdate(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in VoteRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	if err := h.Service.VoteUpdate(r.Context(), chi.URLParam(r, "id"), userID, in.Option); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) VoteDelete(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.Service.VoteDelete)
}

func (h *Handlers) Share(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.Service.Share)
}

func (h *Handlers) Unshare(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.Service.Unshare)
}

func (h *Handlers) Bookmark(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.Service.Bookmark)
}

func (h *Handlers) Unbookmark(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.Service.Unbookmark)
}

// mark — общий хендлер бестелых операций над отметками.
func (h *Handlers) mark(w http.ResponseWriter, r *http.Request, apply func(context.Context, string, int64) error) {
	userID, err := requireUser(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := apply(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
