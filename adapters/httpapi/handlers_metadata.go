package httpapi

import (
	"net/http"

	"github.com/platform9/pcdmanager/usecase/metadata"
)

func (h *handler) addTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decode(r, w, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	out, err := h.svc.Metadata.AddTag(r.Context(), &metadata.TagInput{RegionRef: req.ref(h.actor(r, req.UserEmail)), Tag: req.Tag})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) removeTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decode(r, w, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	out, err := h.svc.Metadata.RemoveTag(r.Context(), &metadata.TagInput{RegionRef: req.ref(h.actor(r, req.UserEmail)), Tag: req.Tag})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) updateLease(w http.ResponseWriter, r *http.Request) {
	var req leaseRequest
	if err := decode(r, w, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	out, err := h.svc.Metadata.UpdateLease(r.Context(), &metadata.LeaseInput{
		RegionRef: req.ref(h.actor(r, req.UserEmail)),
		LeaseDate: req.LeaseDate,
		Note:      req.Note,
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) setOwner(w http.ResponseWriter, r *http.Request) {
	var req ownerRequest
	if err := decode(r, w, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	out, err := h.svc.Metadata.SetOwner(r.Context(), &metadata.OwnerInput{RegionRef: req.ref(h.actor(r, req.UserEmail)), Owner: req.Owner})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
