package postgres

import (
	"context"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/repository"
)

type referenceRepository struct {
	db DBTX
}

func NewReferenceRepository(db DBTX) repository.ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) ListVehicleCategories(ctx context.Context) ([]domain.VehicleCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category_id, category_description FROM vehiclecategory ORDER BY category_id`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var categories []domain.VehicleCategory
	for rows.Next() {
		var c domain.VehicleCategory
		if err := rows.Scan(&c.CategoryID, &c.CategoryDescription); err != nil {
			return nil, translateErr(err)
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *referenceRepository) GetVehicleCategory(ctx context.Context, categoryID string) (*domain.VehicleCategory, error) {
	c := &domain.VehicleCategory{}
	err := r.db.QueryRowContext(ctx, `SELECT category_id, category_description FROM vehiclecategory WHERE category_id = $1`, categoryID).
		Scan(&c.CategoryID, &c.CategoryDescription)
	if err != nil {
		return nil, translateErr(err)
	}
	return c, nil
}

func (r *referenceRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT location_id, location_name, address FROM location ORDER BY location_id`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.LocationID, &l.LocationName, &l.Address); err != nil {
			return nil, translateErr(err)
		}
		locations = append(locations, l)
	}
	return locations, nil
}

func (r *referenceRepository) GetLocation(ctx context.Context, locationID string) (*domain.Location, error) {
	l := &domain.Location{}
	err := r.db.QueryRowContext(ctx, `SELECT location_id, location_name, address FROM location WHERE location_id = $1`, locationID).
		Scan(&l.LocationID, &l.LocationName, &l.Address)
	if err != nil {
		return nil, translateErr(err)
	}
	return l, nil
}

func (r *referenceRepository) ListOrgans(ctx context.Context) ([]domain.Organ, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT organ_id, organ_name FROM organ ORDER BY organ_id`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var organs []domain.Organ
	for rows.Next() {
		var o domain.Organ
		if err := rows.Scan(&o.OrganID, &o.OrganName); err != nil {
			return nil, translateErr(err)
		}
		organs = append(organs, o)
	}
	return organs, nil
}

func (r *referenceRepository) ListApplicationTypes(ctx context.Context) ([]domain.ApplicationTypeRef, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT application_type_id, type_category FROM applicationtype ORDER BY application_type_id`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var types []domain.ApplicationTypeRef
	for rows.Next() {
		var t domain.ApplicationTypeRef
		if err := rows.Scan(&t.ApplicationTypeID, &t.TypeCategory); err != nil {
			return nil, translateErr(err)
		}
		types = append(types, t)
	}
	return types, nil
}

func (r *referenceRepository) ListApplicationStatuses(ctx context.Context) ([]domain.ApplicationStatusRef, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT application_status_id, status_description FROM applicationstatus ORDER BY application_status_id`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var statuses []domain.ApplicationStatusRef
	for rows.Next() {
		var s domain.ApplicationStatusRef
		if err := rows.Scan(&s.ApplicationStatusID, &s.StatusDescription); err != nil {
			return nil, translateErr(err)
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

func (r *referenceRepository) ListConditionTypes(ctx context.Context) ([]domain.LicenseConditionType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT condition_type_id, condition_description FROM licenseconditiontype ORDER BY condition_type_id`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var types []domain.LicenseConditionType
	for rows.Next() {
		var t domain.LicenseConditionType
		if err := rows.Scan(&t.ConditionTypeID, &t.ConditionDescription); err != nil {
			return nil, translateErr(err)
		}
		types = append(types, t)
	}
	return types, nil
}
