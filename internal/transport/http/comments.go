package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/go-polls-service/internal/errors"
	"github.com/pribylovaa/go-polls-service/internal/models"
)

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in CommentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	comment, err := h.Service.CreateComment(r.Context(), chi.URLParam(r, "id"), userID, in.Content)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentResponse(comment))
}

func (h *Handlers) CommentByID(w http.ResponseWriter, r *http.Request) {
	comment, err := h.Service.CommentByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commentResponse(comment))
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in CommentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	comment, err := h.Service.UpdateComment(r.Context(), chi.URLParam(r, "id"), userID, in.Content)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commentResponse(comment))
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.Service.DeleteComment(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	size, token, err := pageParams(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := h.Service.ListComments(r.Context(), chi.URLParam(r, "id"), viewerID(r), models.ListParams{
		PageSize:  size,
		PageToken: token,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commentPageResponse(page))
}
