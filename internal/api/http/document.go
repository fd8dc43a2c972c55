package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"madalto-backend/internal/domain"
)

// maxUploadBytes caps document uploads at 10 MiB.
const maxUploadBytes = 10 << 20

func (a *API) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	applicationID := mux.Vars(r)["id"]

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, domain.Validationf("invalid multipart form: %v", err))
		return
	}
	documentName := r.FormValue("document_name")
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, domain.Validationf("file is required"))
		return
	}
	defer file.Close()

	doc, err := a.documents.Upload(r.Context(), applicant.ApplicantID, applicationID,
		documentName, file, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (a *API) handleDocumentChecklist(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	applicationID := mux.Vars(r)["id"]

	// Ownership check rides on the application lookup.
	if _, err := a.applications.Get(r.Context(), applicant.ApplicantID, applicationID); err != nil {
		writeError(w, r, err)
		return
	}
	checklist, err := a.documents.Checklist(r.Context(), applicationID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checklist)
}

func (a *API) handleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	documentID := mux.Vars(r)["id"]

	doc, reader, err := a.documents.Download(r.Context(), applicant.ApplicantID, documentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.DocumentName))
	if _, err := io.Copy(w, reader); err != nil {
		// Headers are already out, nothing useful left to send.
		return
	}
}

func (a *API) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	applicant := applicantFrom(r.Context())
	documentID := mux.Vars(r)["id"]

	if err := a.documents.Delete(r.Context(), applicant.ApplicantID, documentID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type verifyDocumentRequest struct {
	Verified bool `json:"verified"`
}

func (a *API) handleVerifyDocument(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r.Context())
	documentID := mux.Vars(r)["id"]

	var req verifyDocumentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.documents.Verify(r.Context(), admin, documentID, req.Verified); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "document updated"})
}

func (a *API) handleAdminPendingDocuments(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r.Context())
	docs, err := a.documents.ListPendingVerification(r.Context(), admin)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs, "count": len(docs)})
}

type bulkVerifyRequest struct {
	DocumentIDs []string `json:"document_ids"`
	Verified    bool     `json:"verified"`
}

func (a *API) handleAdminBulkVerify(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r.Context())

	var req bulkVerifyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if len(req.DocumentIDs) == 0 {
		writeError(w, r, domain.Validationf("document_ids is required"))
		return
	}
	results := a.documents.BulkVerify(r.Context(), admin, req.DocumentIDs, req.Verified)
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
