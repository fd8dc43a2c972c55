package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/service"
)

// stubAdminService overrides only what a test needs. Calling anything
// else panics through the nil embedded interface, which is the point.
type stubAdminService struct {
	service.AdminService
	bulkResults []service.BulkStatusResult
}

func (s *stubAdminService) BulkUpdateStatus(ctx context.Context, admin *domain.Admin, applicationIDs []string, target domain.ApplicationStatus, rejectionReason *string) []service.BulkStatusResult {
	return s.bulkResults
}

type stubDocumentService struct {
	service.DocumentService
	pending     []domain.Document
	pendingErr  error
	bulkResults []service.DocumentVerifyResult
}

func (s *stubDocumentService) ListPendingVerification(ctx context.Context, admin *domain.Admin) ([]domain.Document, error) {
	return s.pending, s.pendingErr
}

func (s *stubDocumentService) BulkVerify(ctx context.Context, admin *domain.Admin, documentIDs []string, verified bool) []service.DocumentVerifyResult {
	return s.bulkResults
}

func adminRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(r.Context(), adminContextKey, &domain.Admin{
		AdminID: "ADM_000001", Role: domain.RoleReviewer, IsActive: true,
	})
	return r.WithContext(ctx)
}

func TestHandleAdminBulkStatus(t *testing.T) {
	t.Run("response carries the success and failure counts", func(t *testing.T) {
		a := &API{admin: &stubAdminService{bulkResults: []service.BulkStatusResult{
			{ApplicationID: "APPID_1", Success: true},
			{ApplicationID: "APPID_2", Success: true},
			{ApplicationID: "APPID_3", Success: false, Error: "application APPID_3 not found"},
		}}}

		w := httptest.NewRecorder()
		a.handleAdminBulkStatus(w, adminRequest(http.MethodPost, "/api/v1/admin/applications/bulk-status",
			`{"application_ids": ["APPID_1", "APPID_2", "APPID_3"], "status": "ASID_REV"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Results         []service.BulkStatusResult `json:"results"`
			SuccessfulCount int                        `json:"successful_count"`
			FailedCount     int                        `json:"failed_count"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Results, 3)
		assert.Equal(t, 2, resp.SuccessfulCount)
		assert.Equal(t, 1, resp.FailedCount)
	})

	t.Run("empty id list is rejected", func(t *testing.T) {
		a := &API{admin: &stubAdminService{}}

		w := httptest.NewRecorder()
		a.handleAdminBulkStatus(w, adminRequest(http.MethodPost, "/api/v1/admin/applications/bulk-status",
			`{"application_ids": [], "status": "ASID_REV"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleAdminPendingDocuments(t *testing.T) {
	a := &API{documents: &stubDocumentService{pending: []domain.Document{
		{DocumentID: "DOC_000001", DocumentName: "Medical Certificate", FileKey: "key-1"},
		{DocumentID: "DOC_000002", DocumentName: "Valid ID", FileKey: "key-2"},
	}}}

	w := httptest.NewRecorder()
	a.handleAdminPendingDocuments(w, adminRequest(http.MethodGet, "/api/v1/admin/documents/pending-verification", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Documents []domain.Document `json:"documents"`
		Count     int               `json:"count"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Documents, 2)
	assert.Equal(t, 2, resp.Count)
}

func TestHandleAdminBulkVerify(t *testing.T) {
	t.Run("response carries the success and failure counts", func(t *testing.T) {
		a := &API{documents: &stubDocumentService{bulkResults: []service.DocumentVerifyResult{
			{DocumentID: "DOC_000001", Success: true},
			{DocumentID: "DOC_000002", Success: false, Error: "document DOC_000002 not found"},
		}}}

		w := httptest.NewRecorder()
		a.handleAdminBulkVerify(w, adminRequest(http.MethodPost, "/api/v1/admin/documents/bulk-verify",
			`{"document_ids": ["DOC_000001", "DOC_000002"], "verified": true}`))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Results         []service.DocumentVerifyResult `json:"results"`
			SuccessfulCount int                            `json:"successful_count"`
			FailedCount     int                            `json:"failed_count"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.SuccessfulCount)
		assert.Equal(t, 1, resp.FailedCount)
	})

	t.Run("empty id list is rejected", func(t *testing.T) {
		a := &API{documents: &stubDocumentService{}}

		w := httptest.NewRecorder()
		a.handleAdminBulkVerify(w, adminRequest(http.MethodPost, "/api/v1/admin/documents/bulk-verify",
			`{"document_ids": [], "verified": true}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
