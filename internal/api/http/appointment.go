package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"madalto-backend/internal/domain"
)

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.Validationf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

func (a *API) handleAvailableSlots(w http.ResponseWriter, r *http.Request) {
	locationID := r.URL.Query().Get("location_id")
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	slots, err := a.appointments.AvailableSlots(r.Context(), locationID, date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date.Format(dateLayout), "slots": slots})
}

type bookAppointmentRequest struct {
	LocationID      string `json:"location_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
}

func (a *API) handleBookAppointment(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	applicationID := mux.Vars(r)["id"]

	var req bookAppointmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	appt, err := a.appointments.Book(r.Context(), applicant.ApplicantID, applicationID,
		req.LocationID, date, req.AppointmentTime)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

func (a *API) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	applicationID := mux.Vars(r)["id"]

	appts, err := a.appointments.ListForApplication(r.Context(), applicant.ApplicantID, applicationID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, appts)
}

func (a *API) handleRescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	appointmentID := mux.Vars(r)["id"]

	var req bookAppointmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	appt, err := a.appointments.Reschedule(r.Context(), applicant.ApplicantID, appointmentID,
		req.LocationID, date, req.AppointmentTime)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (a *API) handleCancelAppointment(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	appointmentID := mux.Vars(r)["id"]

	if err := a.appointments.Cancel(r.Context(), applicant.ApplicantID, appointmentID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleCompleteAppointment(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r.Context())
	appointmentID := mux.Vars(r)["id"]

	if err := a.appointments.Complete(r.Context(), admin, appointmentID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "appointment completed"})
}
