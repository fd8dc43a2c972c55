package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"madalto-backend/internal/service"
)

func (a *API) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	var req service.SubmitApplicationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := a.applications.Submit(r.Context(), applicant.UUID, applicant.Email, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (a *API) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	apps, err := a.applications.ListMine(r.Context(), applicant.ApplicantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (a *API) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	applicationID := mux.Vars(r)["id"]
	detail, err := a.applications.Get(r.Context(), applicant.ApplicantID, applicationID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
