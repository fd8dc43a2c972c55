package http

import (
	"net/http"

	"madalto-backend/internal/service"
)

func (a *API) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	profile, err := a.applicants.GetProfile(r.Context(), applicant.ApplicantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (a *API) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	var info service.PersonalInfo
	if err := decodeBody(r, &info); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := a.applicants.UpdateProfile(r.Context(), applicant.ApplicantID, &info)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) handleGetDonation(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	donation, err := a.applicants.GetDonation(r.Context(), applicant.ApplicantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, donation)
}

func (a *API) handleListFamily(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	family, err := a.applicants.ListFamily(r.Context(), applicant.ApplicantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"family": family})
}

func (a *API) handleAddFamilyMember(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	var input service.FamilyInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	family, err := a.applicants.AddFamilyMember(r.Context(), applicant.ApplicantID, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, family)
}

func (a *API) handleListEmployment(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	employment, err := a.applicants.ListEmployment(r.Context(), applicant.ApplicantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"employment": employment})
}

func (a *API) handleAddEmployment(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	var input service.EmploymentInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	employment, err := a.applicants.AddEmployment(r.Context(), applicant.ApplicantID, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, employment)
}

func (a *API) handleListEmergencyContacts(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	contacts, err := a.applicants.ListEmergencyContacts(r.Context(), applicant.ApplicantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
}

func (a *API) handleAddEmergencyContact(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	var input service.EmergencyContactInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	contact, err := a.applicants.AddEmergencyContact(r.Context(), applicant.ApplicantID, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

type updateDonationRequest struct {
	Organs []string `json:"organs"`
}

func (a *API) handleUpdateDonation(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	var req updateDonationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	donation, err := a.applicants.UpdateDonation(r.Context(), applicant.ApplicantID, req.Organs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, donation)
}
