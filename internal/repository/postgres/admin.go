package postgres

import (
	"context"
	"time"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/repository"
)

type adminRepository struct {
	db DBTX
}

func NewAdminRepository(db DBTX) repository.AdminRepository {
	return &adminRepository{db: db}
}

const adminColumns = `admin_id, uuid, email, full_name, role, is_active, created_on, updated_on`

func (r *adminRepository) Create(ctx context.Context, a *domain.Admin) error {
	query := `INSERT INTO admin (uuid, email, full_name, role, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING admin_id`
	now := time.Now()
	a.CreatedOn = now
	a.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query, a.UUID, a.Email, a.FullName, a.Role, a.IsActive, now, now).Scan(&a.AdminID)
	return translateErr(err)
}

func (r *adminRepository) GetByUUID(ctx context.Context, uuid string) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admin WHERE uuid = $1`
	a := &domain.Admin{}
	err := r.db.QueryRowContext(ctx, query, uuid).Scan(
		&a.AdminID, &a.UUID, &a.Email, &a.FullName, &a.Role, &a.IsActive, &a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return a, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admin WHERE email = $1`
	a := &domain.Admin{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&a.AdminID, &a.UUID, &a.Email, &a.FullName, &a.Role, &a.IsActive, &a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return a, nil
}

func (r *adminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+adminColumns+` FROM admin ORDER BY created_on`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var admins []domain.Admin
	for rows.Next() {
		var a domain.Admin
		if err := rows.Scan(&a.AdminID, &a.UUID, &a.Email, &a.FullName, &a.Role, &a.IsActive, &a.CreatedOn, &a.UpdatedOn); err != nil {
			return nil, translateErr(err)
		}
		admins = append(admins, a)
	}
	return admins, nil
}

func (r *adminRepository) Update(ctx context.Context, a *domain.Admin) error {
	query := `UPDATE admin SET email=$1, full_name=$2, role=$3, is_active=$4, updated_on=$5 WHERE admin_id=$6`
	a.UpdatedOn = time.Now()
	result, err := r.db.ExecContext(ctx, query, a.Email, a.FullName, a.Role, a.IsActive, a.UpdatedOn, a.AdminID)
	if err != nil {
		return translateErr(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("admin %s", a.AdminID)
	}
	return nil
}
