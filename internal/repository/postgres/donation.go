package postgres

import (
	"context"
	"time"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/repository"
)

type donationRepository struct {
	db DBTX
}

func NewDonationRepository(db DBTX) repository.DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, d *domain.Donation) error {
	query := `INSERT INTO donation (applicant_id, created_on, updated_on)
	          VALUES ($1, $2, $3) RETURNING donation_id`
	now := time.Now()
	d.CreatedOn = now
	d.UpdatedOn = now
	if err := r.db.QueryRowContext(ctx, query, d.ApplicantID, now, now).Scan(&d.DonationID); err != nil {
		return translateErr(err)
	}
	for _, organID := range d.OrganIDs {
		if err := r.AddOrgan(ctx, d.DonationID, organID); err != nil {
			return err
		}
	}
	return nil
}

func (r *donationRepository) GetByApplicant(ctx context.Context, applicantID string) (*domain.Donation, error) {
	query := `SELECT donation_id, applicant_id, created_on, updated_on FROM donation WHERE applicant_id = $1`
	d := &domain.Donation{}
	err := r.db.QueryRowContext(ctx, query, applicantID).Scan(&d.DonationID, &d.ApplicantID, &d.CreatedOn, &d.UpdatedOn)
	if err != nil {
		return nil, translateErr(err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT organ_id FROM donationorgan WHERE donation_id = $1`, d.DonationID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()
	for rows.Next() {
		var organID string
		if err := rows.Scan(&organID); err != nil {
			return nil, translateErr(err)
		}
		d.OrganIDs = append(d.OrganIDs, organID)
	}
	return d, nil
}

func (r *donationRepository) AddOrgan(ctx context.Context, donationID, organID string) error {
	query := `INSERT INTO donationorgan (donation_id, organ_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, donationID, organID)
	return translateErr(err)
}

// ReplaceOrgans swaps the pledged organ set wholesale.
func (r *donationRepository) ReplaceOrgans(ctx context.Context, donationID string, organIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM donationorgan WHERE donation_id = $1`, donationID); err != nil {
		return translateErr(err)
	}
	for _, organID := range organIDs {
		if err := r.AddOrgan(ctx, donationID, organID); err != nil {
			return err
		}
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE donation SET updated_on=$1 WHERE donation_id=$2`, time.Now(), donationID); err != nil {
		return translateErr(err)
	}
	return nil
}
