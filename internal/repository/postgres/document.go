package postgres

import (
	"context"
	"time"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/repository"
	"madalto-backend/internal/storage"
)

type documentRepository struct {
	db DBTX
}

func NewDocumentRepository(db DBTX) repository.DocumentRepository {
	return &documentRepository{db: db}
}

const documentColumns = `document_id, application_id, document_name, file_key, content_type, is_verified, verified_by, submitted_on, updated_on`

func (r *documentRepository) Create(ctx context.Context, d *domain.Document) error {
	query := `INSERT INTO submitteddocument (application_id, document_name, file_key, content_type, is_verified, submitted_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING document_id`
	now := time.Now()
	d.SubmittedOn = now
	d.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query, d.ApplicationID, d.DocumentName, d.FileKey, d.ContentType, d.IsVerified, now, now).Scan(&d.DocumentID)
	return translateErr(err)
}

func (r *documentRepository) GetByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM submitteddocument WHERE document_id = $1`
	d := &domain.Document{}
	err := r.db.QueryRowContext(ctx, query, documentID).Scan(
		&d.DocumentID, &d.ApplicationID, &d.DocumentName, &d.FileKey, &d.ContentType,
		&d.IsVerified, &d.VerifiedBy, &d.SubmittedOn, &d.UpdatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return d, nil
}

func (r *documentRepository) GetByApplicationAndName(ctx context.Context, applicationID, documentName string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM submitteddocument WHERE application_id = $1 AND document_name = $2`
	d := &domain.Document{}
	err := r.db.QueryRowContext(ctx, query, applicationID, documentName).Scan(
		&d.DocumentID, &d.ApplicationID, &d.DocumentName, &d.FileKey, &d.ContentType,
		&d.IsVerified, &d.VerifiedBy, &d.SubmittedOn, &d.UpdatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return d, nil
}

func (r *documentRepository) ListByApplication(ctx context.Context, applicationID string) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM submitteddocument WHERE application_id = $1 ORDER BY submitted_on`
	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.DocumentID, &d.ApplicationID, &d.DocumentName, &d.FileKey, &d.ContentType,
			&d.IsVerified, &d.VerifiedBy, &d.SubmittedOn, &d.UpdatedOn); err != nil {
			return nil, translateErr(err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// ReplaceFile swaps the stored file and clears the verified flag since the
// new content has not been reviewed.
func (r *documentRepository) ReplaceFile(ctx context.Context, documentID, fileKey, contentType string) error {
	query := `UPDATE submitteddocument SET file_key=$1, content_type=$2, is_verified=FALSE, updated_on=$3 WHERE document_id=$4`
	result, err := r.db.ExecContext(ctx, query, fileKey, contentType, time.Now(), documentID)
	if err != nil {
		return translateErr(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("document %s", documentID)
	}
	return nil
}

// SetVerified records the verdict together with who gave it. Unverifying
// clears the attribution.
func (r *documentRepository) SetVerified(ctx context.Context, documentID string, verified bool, verifierID string) error {
	query := `UPDATE submitteddocument SET is_verified=$1, verified_by=CASE WHEN $1 THEN $2 ELSE NULL END, updated_on=$3 WHERE document_id=$4`
	result, err := r.db.ExecContext(ctx, query, verified, verifierID, time.Now(), documentID)
	if err != nil {
		return translateErr(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("document %s", documentID)
	}
	return nil
}

func (r *documentRepository) VerifyAllForApplication(ctx context.Context, applicationID, verifierID string) error {
	query := `UPDATE submitteddocument SET is_verified=TRUE, verified_by=$1, updated_on=$2 WHERE application_id=$3`
	_, err := r.db.ExecContext(ctx, query, verifierID, time.Now(), applicationID)
	return translateErr(err)
}

// ListPendingVerification returns uploaded documents still waiting for a
// reviewer verdict. Placeholder rows with no file yet are excluded.
func (r *documentRepository) ListPendingVerification(ctx context.Context) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM submitteddocument WHERE is_verified = FALSE AND file_key <> $1 ORDER BY submitted_on`
	rows, err := r.db.QueryContext(ctx, query, storage.PendingUploadKey)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.DocumentID, &d.ApplicationID, &d.DocumentName, &d.FileKey, &d.ContentType,
			&d.IsVerified, &d.VerifiedBy, &d.SubmittedOn, &d.UpdatedOn); err != nil {
			return nil, translateErr(err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func (r *documentRepository) Delete(ctx context.Context, documentID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM submitteddocument WHERE document_id=$1`, documentID)
	if err != nil {
		return translateErr(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("document %s", documentID)
	}
	return nil
}
