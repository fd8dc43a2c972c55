package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"madalto-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same repository
// code can run standalone or inside a unit of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.ApplicantRepository
	repository.ApplicationRepository
	repository.DocumentRepository
	repository.AppointmentRepository
	repository.DonationRepository
	repository.ReferenceRepository
	repository.AdminRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		ApplicantRepository:   NewApplicantRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
		DocumentRepository:    NewDocumentRepository(db),
		AppointmentRepository: NewAppointmentRepository(db),
		DonationRepository:    NewDonationRepository(db),
		ReferenceRepository:   NewReferenceRepository(db),
		AdminRepository:       NewAdminRepository(db),
		UserRepository:        NewUserRepository(db),
	}
}

// WithinTx opens a transaction, binds a fresh repository set to it and
// runs fn. Any error (or panic) rolls the whole thing back.
func (s *Store) WithinTx(ctx context.Context, fn func(tx *repository.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			sqlTx.Rollback()
			panic(p)
		}
	}()

	tx := &repository.Tx{
		Applicants:   NewApplicantRepository(sqlTx),
		Applications: NewApplicationRepository(sqlTx),
		Documents:    NewDocumentRepository(sqlTx),
		Appointments: NewAppointmentRepository(sqlTx),
		Donations:    NewDonationRepository(sqlTx),
		Reference:    NewReferenceRepository(sqlTx),
	}

	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
