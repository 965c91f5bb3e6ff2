package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/go-polls-service/internal/errors"
	"github.com/pribylovaa/go-polls-service/internal/models"
	"github.com/pribylovaa/go-polls-service/internal/service"
)

func (h *Handlers) CreatePoll(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in CreatePollRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	poll, err := h.Service.CreatePoll(r.Context(), service.CreatePollInput{
		OwnerID:     userID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Privacy:     models.Privacy(in.Privacy),
		Options:     in.Options,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, pollResponse(poll))
}

func (h *Handlers) PollByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.Service.PollByID(r.Context(), id, viewerID(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pollViewResponse(view))
}

func (h *Handlers) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in UpdatePollRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	upd := service.UpdatePollInput{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		AddOptions:  in.AddOptions,
		DelOptions:  in.DelOptions,
	}
	if in.Privacy != nil {
		p := models.Privacy(*in.Privacy)
		upd.Privacy = &p
	}

	poll, err := h.Service.UpdatePoll(r.Context(), chi.URLParam(r, "id"), userID, upd)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pollResponse(poll))
}

func (h *Handlers) DeletePoll(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.Service.DeletePoll(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AddOption(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in OptionRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	poll, err := h.Service.AddOption(r.Context(), chi.URLParam(r, "id"), userID, in.Option)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pollResponse(poll))
}

func (h *Handlers) DelOption(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in OptionRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	if err := h.Service.DelOption(r.Context(), chi.URLParam(r, "id"), userID, in.Option); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListPolls(w http.ResponseWriter, r *http.Request) {
	size, token, err := pageParams(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	in := service.ListPollsInput{
		ViewerID:  viewerID(r),
		Query:     r.URL.Query().Get("q"),
		PageSize:  size,
		PageToken: token,
	}

	if v := r.URL.Query().Get("owner_id"); v != "" {
		owner, err := strconv.ParseInt(v, 10, 64)
		if err != nil || owner <= 0 {
			apierrors.WriteError(w, r, errInvalidArgument())
			return
		}

		in.OwnerID = &owner
	}

	page, err := h.Service.ListPolls(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pollPageResponse(page))
}
