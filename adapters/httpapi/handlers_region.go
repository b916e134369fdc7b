package httpapi

import (
	"net/http"

	"github.com/platform9/pcdmanager/internal/naming"
	"github.com/platform9/pcdmanager/usecase/region"
)

func (d *deployRequest) input(actor string) region.DeployInput {
	return region.DeployInput{
		Environment:         d.Environment,
		ShortName:           d.ShortName,
		AdminEmail:          d.AdminEmail,
		AdminPassword:       d.AdminPassword,
		DBBackend:           d.DBBackend,
		ChartURL:            d.ChartURL,
		UseDUSpecificLECert: d.UseDUSpecificLECert,
		LeaseDate:           d.LeaseDate,
		Tags:                d.Tags,
		Owner:               actor,
		Token:               d.Token,
	}
}

func (h *handler) createRegion(w http.ResponseWriter, r *http.Request) {
	var req deployRequest
	if err := decode(r, w, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	actor := h.actor(r, req.UserEmail)
	var (
		out *region.CreateOutput
		err error
	)
	// A region name on the create form adds a region to an existing customer.
	if naming.IsInfra(req.RegionName) {
		out, err = h.svc.Regions.Create(r.Context(), &region.CreateInput{DeployInput: req.input(actor)})
	} else {
		out, err = h.svc.Regions.AddRegion(r.Context(), &region.AddRegionInput{DeployInput: req.input(actor), RegionName: req.RegionName})
	}
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) addRegion(w http.ResponseWriter, r *http.Request) {
	var req deployRequest
	if err := decode(r, w, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	out, err := h.svc.Regions.AddRegion(r.Context(), &region.AddRegionInput{
		DeployInput: req.input(h.actor(r, req.UserEmail)),
		RegionName:  req.RegionName,
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) upgradeRegion(w http.ResponseWriter, r *http.Request) {
	var req upgradeRequest
	if err := decode(r, w, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	out, err := h.svc.Regions.Upgrade(r.Context(), &region.UpgradeInput{
		Environment:         req.Environment,
		FQDN:                req.FQDN,
		Namespace:           req.Namespace,
		ShortName:           req.ShortName,
		RegionName:          req.RegionName,
		ChartURL:            req.ChartURL,
		UseDUSpecificLECert: req.UseDUSpecificLECert,
		Token:               req.Token,
		Actor:               h.actor(r, req.UserEmail),
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) deleteRegion(w http.ResponseWriter, r *http.Request) {
	var req regionRequest
	if err := decode(r, w, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	out, err := h.svc.Regions.Delete(r.Context(), &region.DeleteInput{
		Environment: req.Environment,
		FQDN:        req.FQDN,
		Namespace:   req.Namespace,
		ShortName:   req.ShortName,
		RegionName:  req.RegionName,
		Token:       req.Token,
		Actor:       h.actor(r, req.UserEmail),
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) resetTaskStatus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.svc.Regions.ResetState(r.Context(), &region.ResetStateInput{
		Environment: q.Get("env"),
		Namespace:   q.Get("namespace"),
		FQDN:        q.Get("fqdn"),
		Actor:       h.actor(r, ""),
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
