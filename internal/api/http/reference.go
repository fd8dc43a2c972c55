package http

import "net/http"

func (a *API) handleVehicleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.reference.VehicleCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (a *API) handleLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := a.reference.Locations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (a *API) handleOrgans(w http.ResponseWriter, r *http.Request) {
	organs, err := a.reference.Organs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, organs)
}

func (a *API) handleApplicationTypes(w http.ResponseWriter, r *http.Request) {
	types, err := a.reference.ApplicationTypes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (a *API) handleApplicationStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := a.reference.ApplicationStatuses(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (a *API) handleConditionTypes(w http.ResponseWriter, r *http.Request) {
	types, err := a.reference.ConditionTypes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}
