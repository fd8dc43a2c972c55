// Package http exposes the REST API over gorilla/mux. Handlers stay
// thin: decode, call a service, map the error.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"madalto-backend/internal/service"
)

// API bundles the services the handlers need.
type API struct {
	auth         service.AuthService
	identity     service.IdentityService
	applications service.ApplicationService
	admin        service.AdminService
	documents    service.DocumentService
	appointments service.AppointmentService
	applicants   service.ApplicantService
	reference    service.ReferenceService
}

func NewAPI(
	auth service.AuthService,
	identity service.IdentityService,
	applications service.ApplicationService,
	admin service.AdminService,
	documents service.DocumentService,
	appointments service.AppointmentService,
	applicants service.ApplicantService,
	reference service.ReferenceService,
) *API {
	return &API{
		auth:         auth,
		identity:     identity,
		applications: applications,
		admin:        admin,
		documents:    documents,
		appointments: appointments,
		applicants:   applicants,
		reference:    reference,
	}
}

// Router builds the full route table under /api/v1.
func (a *API) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	v1 := r.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Auth
	v1.HandleFunc("/auth/signup-otp", a.handleSignupOTP).Methods(http.MethodPost)
	v1.HandleFunc("/auth/verify-otp", a.handleVerifyOTP).Methods(http.MethodPost)
	v1.HandleFunc("/auth/login", a.handleLogin).Methods(http.MethodPost)
	v1.HandleFunc("/auth/login/verify", a.handleLoginVerify).Methods(http.MethodPost)
	v1.HandleFunc("/auth/refresh", a.handleRefresh).Methods(http.MethodPost)

	// Reference data, public
	v1.HandleFunc("/reference/vehicle-categories", a.handleVehicleCategories).Methods(http.MethodGet)
	v1.HandleFunc("/reference/locations", a.handleLocations).Methods(http.MethodGet)
	v1.HandleFunc("/reference/organs", a.handleOrgans).Methods(http.MethodGet)
	v1.HandleFunc("/reference/application-types", a.handleApplicationTypes).Methods(http.MethodGet)
	v1.HandleFunc("/reference/application-statuses", a.handleApplicationStatuses).Methods(http.MethodGet)
	v1.HandleFunc("/reference/condition-types", a.handleConditionTypes).Methods(http.MethodGet)

	// Applicant profile
	v1.HandleFunc("/profile", a.requireApplicant(a.handleGetProfile)).Methods(http.MethodGet)
	v1.HandleFunc("/profile", a.requireApplicant(a.handleUpdateProfile)).Methods(http.MethodPut)
	v1.HandleFunc("/profile/donation", a.requireApplicant(a.handleGetDonation)).Methods(http.MethodGet)
	v1.HandleFunc("/profile/donation", a.requireApplicant(a.handleUpdateDonation)).Methods(http.MethodPut)
	v1.HandleFunc("/profile/family", a.requireApplicant(a.handleListFamily)).Methods(http.MethodGet)
	v1.HandleFunc("/profile/family", a.requireApplicant(a.handleAddFamilyMember)).Methods(http.MethodPost)
	v1.HandleFunc("/profile/employment", a.requireApplicant(a.handleListEmployment)).Methods(http.MethodGet)
	v1.HandleFunc("/profile/employment", a.requireApplicant(a.handleAddEmployment)).Methods(http.MethodPost)
	v1.HandleFunc("/profile/contacts", a.requireApplicant(a.handleListEmergencyContacts)).Methods(http.MethodGet)
	v1.HandleFunc("/profile/contacts", a.requireApplicant(a.handleAddEmergencyContact)).Methods(http.MethodPost)

	// Applications
	v1.HandleFunc("/applications", a.requireApplicant(a.handleSubmitApplication)).Methods(http.MethodPost)
	v1.HandleFunc("/applications", a.requireApplicant(a.handleListMyApplications)).Methods(http.MethodGet)
	v1.HandleFunc("/applications/{id}", a.requireApplicant(a.handleGetApplication)).Methods(http.MethodGet)

	// Documents
	v1.HandleFunc("/applications/{id}/documents", a.requireApplicant(a.handleUploadDocument)).Methods(http.MethodPost)
	v1.HandleFunc("/applications/{id}/documents/checklist", a.requireApplicant(a.handleDocumentChecklist)).Methods(http.MethodGet)
	v1.HandleFunc("/documents/{id}/download", a.requireApplicant(a.handleDownloadDocument)).Methods(http.MethodGet)
	v1.HandleFunc("/documents/{id}", a.requireApplicant(a.handleDeleteDocument)).Methods(http.MethodDelete)

	// Appointments
	v1.HandleFunc("/appointments/slots", a.requireApplicant(a.handleAvailableSlots)).Methods(http.MethodGet)
	v1.HandleFunc("/applications/{id}/appointments", a.requireApplicant(a.handleBookAppointment)).Methods(http.MethodPost)
	v1.HandleFunc("/applications/{id}/appointments", a.requireApplicant(a.handleListAppointments)).Methods(http.MethodGet)
	v1.HandleFunc("/appointments/{id}", a.requireApplicant(a.handleRescheduleAppointment)).Methods(http.MethodPut)
	v1.HandleFunc("/appointments/{id}", a.requireApplicant(a.handleCancelAppointment)).Methods(http.MethodDelete)

	// Admin
	admin := v1.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/applications", a.requireAdmin(a.handleAdminListApplications)).Methods(http.MethodGet)
	admin.HandleFunc("/applications/range", a.requireAdmin(a.handleAdminListByDateRange)).Methods(http.MethodGet)
	admin.HandleFunc("/applications/bulk-status", a.requireAdmin(a.handleAdminBulkStatus)).Methods(http.MethodPost)
	admin.HandleFunc("/applications/{id}/status", a.requireAdmin(a.handleAdminUpdateStatus)).Methods(http.MethodPatch)
	admin.HandleFunc("/applications/{id}/approve", a.requireAdmin(a.handleAdminApprove)).Methods(http.MethodPost)
	admin.HandleFunc("/applications/{id}/reject", a.requireAdmin(a.handleAdminReject)).Methods(http.MethodPost)
	admin.HandleFunc("/documents/pending-verification", a.requireAdmin(a.handleAdminPendingDocuments)).Methods(http.MethodGet)
	admin.HandleFunc("/documents/bulk-verify", a.requireAdmin(a.handleAdminBulkVerify)).Methods(http.MethodPost)
	admin.HandleFunc("/documents/{id}/verify", a.requireAdmin(a.handleVerifyDocument)).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{id}/complete", a.requireAdmin(a.handleCompleteAppointment)).Methods(http.MethodPost)
	admin.HandleFunc("/statistics", a.requireAdmin(a.handleAdminStatistics)).Methods(http.MethodGet)
	admin.HandleFunc("/admins", a.requireAdmin(a.handleAdminCreate)).Methods(http.MethodPost)
	admin.HandleFunc("/admins", a.requireAdmin(a.handleAdminList)).Methods(http.MethodGet)

	return r
}
