package postgres

import (
	"context"
	"time"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/repository"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.UserAccount) error {
	query := `INSERT INTO useraccount (uuid, email, password_hash, is_verified, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	now := time.Now()
	u.CreatedOn = now
	u.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query, u.UUID, u.Email, u.PasswordHash, u.IsVerified, now, now)
	return translateErr(err)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	query := `SELECT uuid, email, password_hash, is_verified, created_on, updated_on FROM useraccount WHERE email = $1`
	u := &domain.UserAccount{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.UUID, &u.Email, &u.PasswordHash, &u.IsVerified, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return u, nil
}

func (r *userRepository) GetByUUID(ctx context.Context, uuid string) (*domain.UserAccount, error) {
	query := `SELECT uuid, email, password_hash, is_verified, created_on, updated_on FROM useraccount WHERE uuid = $1`
	u := &domain.UserAccount{}
	err := r.db.QueryRowContext(ctx, query, uuid).Scan(&u.UUID, &u.Email, &u.PasswordHash, &u.IsVerified, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return u, nil
}

func (r *userRepository) MarkVerified(ctx context.Context, uuid string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE useraccount SET is_verified=TRUE, updated_on=$1 WHERE uuid=$2`, time.Now(), uuid)
	if err != nil {
		return translateErr(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("user %s", uuid)
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, uuid, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE useraccount SET password_hash=$1, updated_on=$2 WHERE uuid=$3`, passwordHash, time.Now(), uuid)
	if err != nil {
		return translateErr(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("user %s", uuid)
	}
	return nil
}
