package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"madalto-backend/internal/domain"
)

func parsePaging(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}

type pagedApplications struct {
	Applications []domain.LicenseApplication `json:"applications"`
	Total        int32                       `json:"total"`
	Page         int32                       `json:"page"`
	PageSize     int32                       `json:"page_size"`
}

func (a *API) handleAdminListApplications(w http.ResponseWriter, r *http.Request) {
	var statuses []domain.ApplicationStatus
	for _, s := range r.URL.Query()["status"] {
		statuses = append(statuses, domain.ApplicationStatus(s))
	}
	page, pageSize := parsePaging(r)

	apps, total, err := a.admin.ListByStatus(r.Context(), statuses, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedApplications{Applications: apps, Total: total, Page: page, PageSize: pageSize})
}

func (a *API) handleAdminListByDateRange(w http.ResponseWriter, r *http.Request) {
	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, pageSize := parsePaging(r)

	apps, total, err := a.admin.ListByDateRange(r.Context(), start, end, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedApplications{Applications: apps, Total: total, Page: page, PageSize: pageSize})
}

type updateStatusRequest struct {
	Status                 domain.ApplicationStatus `json:"status"`
	RejectionReason        *string                  `json:"rejection_reason,omitempty"`
	AdditionalRequirements *string                  `json:"additional_requirements,omitempty"`
}

func (a *API) handleAdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r.Context())
	applicationID := mux.Vars(r)["id"]

	var req updateStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	app, err := a.admin.UpdateStatus(r.Context(), admin, applicationID, req.Status,
		req.RejectionReason, req.AdditionalRequirements)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (a *API) handleAdminApprove(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r.Context())
	applicationID := mux.Vars(r)["id"]

	app, err := a.admin.Approve(r.Context(), admin, applicationID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (a *API) handleAdminReject(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r.Context())
	applicationID := mux.Vars(r)["id"]

	var req rejectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	app, err := a.admin.Reject(r.Context(), admin, applicationID, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

type bulkStatusRequest struct {
	ApplicationIDs  []string                 `json:"application_ids"`
	Status          domain.ApplicationStatus `json:"status"`
	RejectionReason *string                  `json:"rejection_reason,omitempty"`
}

func (a *API) handleAdminBulkStatus(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r.Context())

	var req bulkStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if len(req.ApplicationIDs) == 0 {
		writeError(w, r, domain.Validationf("application_ids is required"))
		return
	}
	results := a.admin.BulkUpdateStatus(r.Context(), admin, req.ApplicationIDs, req.Status, req.RejectionReason)
	succeeded := 0
	for _, result := range results {
		if result.Success {
			succeeded++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results":          results,
		"successful_count": succeeded,
		"failed_count":     len(results) - succeeded,
	})
}

func (a *API) handleAdminStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := a.admin.GetStatistics(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type createAdminRequest struct {
	UUID     string           `json:"uuid"`
	Email    string           `json:"email"`
	FullName string           `json:"full_name"`
	Role     domain.AdminRole `json:"role"`
}

func (a *API) handleAdminCreate(w http.ResponseWriter, r *http.Request) {
	actor := adminFrom(r.Context())

	var req createAdminRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	newAdmin := &domain.Admin{
		UUID:     req.UUID,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: true,
	}
	if err := a.admin.CreateAdmin(r.Context(), actor, newAdmin); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newAdmin)
}

func (a *API) handleAdminList(w http.ResponseWriter, r *http.Request) {
	actor := adminFrom(r.Context())

	admins, err := a.admin.ListAdmins(r.Context(), actor)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, admins)
}
