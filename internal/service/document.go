package service

import (
	"context"
	"errors"
	"io"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/logger"
	"madalto-backend/internal/repository"
	"madalto-backend/internal/storage"
)

type documentService struct {
	docRepo repository.DocumentRepository
	appRepo repository.ApplicationRepository
	blobs   storage.BlobStore
}

func NewDocumentService(docRepo repository.DocumentRepository, appRepo repository.ApplicationRepository, blobs storage.BlobStore) DocumentService {
	return &documentService{docRepo: docRepo, appRepo: appRepo, blobs: blobs}
}

// Upload stores the file and creates the document record. A document of
// the same name on the same application is a conflict; the one exception
// is the pending-upload placeholder row created at submission, which the
// first real upload fills in. Replacing an uploaded file requires
// deleting the document first.
func (s *documentService) Upload(ctx context.Context, applicantID, applicationID, documentName string, content io.Reader, contentType string) (*domain.Document, error) {
	if !domain.ValidDocumentName(documentName) {
		return nil, domain.Validationf("unknown document name %q", documentName)
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID != applicantID {
		return nil, domain.ErrForbidden
	}

	existing, err := s.docRepo.GetByApplicationAndName(ctx, applicationID, documentName)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.FileKey != storage.PendingUploadKey {
		return nil, domain.Conflictf("document %q already exists for this application", documentName)
	}

	key, err := s.blobs.Put(ctx, content, contentType)
	if err != nil {
		return nil, domain.Upstreamf("store document file: %v", err)
	}

	if existing == nil {
		doc := &domain.Document{
			ApplicationID: applicationID,
			DocumentName:  documentName,
			FileKey:       key,
			ContentType:   contentType,
		}
		if err := s.docRepo.Create(ctx, doc); err != nil {
			s.blobs.Delete(ctx, key)
			return nil, err
		}
		return doc, nil
	}

	if err := s.docRepo.ReplaceFile(ctx, existing.DocumentID, key, contentType); err != nil {
		s.blobs.Delete(ctx, key)
		return nil, err
	}
	existing.FileKey = key
	existing.ContentType = contentType
	existing.IsVerified = false
	return existing, nil
}

// Checklist pairs every required document name with whatever has been
// submitted for it.
func (s *documentService) Checklist(ctx context.Context, applicationID string) ([]domain.DocumentChecklistEntry, error) {
	docs, err := s.docRepo.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*domain.Document, len(docs))
	for i := range docs {
		byName[docs[i].DocumentName] = &docs[i]
	}

	entries := make([]domain.DocumentChecklistEntry, 0, len(domain.RequiredDocumentNames))
	for _, name := range domain.RequiredDocumentNames {
		entry := domain.DocumentChecklistEntry{DocumentName: name}
		if doc, ok := byName[name]; ok && doc.FileKey != storage.PendingUploadKey {
			entry.Submitted = true
			entry.Document = doc
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *documentService) Download(ctx context.Context, applicantID, documentID string) (*domain.Document, io.ReadCloser, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	app, err := s.appRepo.GetByID(ctx, doc.ApplicationID)
	if err != nil {
		return nil, nil, err
	}
	if app.ApplicantID != applicantID {
		return nil, nil, domain.ErrForbidden
	}
	if doc.FileKey == storage.PendingUploadKey {
		return nil, nil, domain.NotFoundf("document %s has no uploaded file", documentID)
	}

	reader, err := s.blobs.Read(ctx, doc.FileKey)
	if err != nil {
		return nil, nil, domain.Upstreamf("read document file: %v", err)
	}
	return doc, reader, nil
}

// Delete removes both the record and the backing file.
func (s *documentService) Delete(ctx context.Context, applicantID, documentID string) error {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	app, err := s.appRepo.GetByID(ctx, doc.ApplicationID)
	if err != nil {
		return err
	}
	if app.ApplicantID != applicantID {
		return domain.ErrForbidden
	}

	if err := s.docRepo.Delete(ctx, documentID); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, doc.FileKey); err != nil {
		logger.Warn("failed to delete document file", "key", doc.FileKey, "error", err)
	}
	return nil
}

func (s *documentService) Verify(ctx context.Context, admin *domain.Admin, documentID string, verified bool) error {
	if admin == nil || !admin.IsActive {
		return domain.ErrForbidden
	}
	return s.docRepo.SetVerified(ctx, documentID, verified, admin.AdminID)
}

// ListPendingVerification is the reviewer work queue: every uploaded
// document that has not been ruled on yet.
func (s *documentService) ListPendingVerification(ctx context.Context, admin *domain.Admin) ([]domain.Document, error) {
	if admin == nil || !admin.IsActive {
		return nil, domain.ErrForbidden
	}
	return s.docRepo.ListPendingVerification(ctx)
}

// BulkVerify rules on each document independently. A failure on one does
// not stop the rest.
func (s *documentService) BulkVerify(ctx context.Context, admin *domain.Admin, documentIDs []string, verified bool) []DocumentVerifyResult {
	results := make([]DocumentVerifyResult, 0, len(documentIDs))
	for _, id := range documentIDs {
		err := s.Verify(ctx, admin, id, verified)
		result := DocumentVerifyResult{DocumentID: id, Success: err == nil}
		if err != nil {
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}
