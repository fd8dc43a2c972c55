package postgres

import (
	"context"
	"time"

	"github.com/lib/pq"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/repository"
)

type applicationRepository struct {
	db DBTX
}

func NewApplicationRepository(db DBTX) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `application_id, applicant_id, application_type_id, application_status_id, submission_date, last_updated_date, rejection_reason, additional_requirements`

func (r *applicationRepository) Create(ctx context.Context, app *domain.LicenseApplication) error {
	query := `INSERT INTO licenseapplication (applicant_id, application_type_id, application_status_id, submission_date, last_updated_date)
	          VALUES ($1, $2, $3, $4, $5) RETURNING application_id`
	now := time.Now()
	app.SubmissionDate = now
	app.LastUpdatedDate = now
	err := r.db.QueryRowContext(ctx, query, app.ApplicantID, app.ApplicationTypeID, app.ApplicationStatusID, now, now).Scan(&app.ApplicationID)
	return translateErr(err)
}

func (r *applicationRepository) GetByID(ctx context.Context, applicationID string) (*domain.LicenseApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM licenseapplication WHERE application_id = $1`
	app := &domain.LicenseApplication{}
	err := r.db.QueryRowContext(ctx, query, applicationID).Scan(
		&app.ApplicationID, &app.ApplicantID, &app.ApplicationTypeID, &app.ApplicationStatusID,
		&app.SubmissionDate, &app.LastUpdatedDate, &app.RejectionReason, &app.AdditionalRequirements)
	if err != nil {
		return nil, translateErr(err)
	}
	return app, nil
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]domain.LicenseApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM licenseapplication WHERE applicant_id = $1 ORDER BY submission_date DESC`
	rows, err := r.db.QueryContext(ctx, query, applicantID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var apps []domain.LicenseApplication
	for rows.Next() {
		var app domain.LicenseApplication
		if err := rows.Scan(&app.ApplicationID, &app.ApplicantID, &app.ApplicationTypeID, &app.ApplicationStatusID,
			&app.SubmissionDate, &app.LastUpdatedDate, &app.RejectionReason, &app.AdditionalRequirements); err != nil {
			return nil, translateErr(err)
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func (r *applicationRepository) ListByStatus(ctx context.Context, statuses []domain.ApplicationStatus, page, pageSize int32) ([]domain.LicenseApplication, int32, error) {
	codes := make([]string, len(statuses))
	for i, s := range statuses {
		codes[i] = string(s)
	}

	var count int32
	countQuery := `SELECT count(*) FROM licenseapplication WHERE application_status_id = ANY($1)`
	if err := r.db.QueryRowContext(ctx, countQuery, pq.Array(codes)).Scan(&count); err != nil {
		return nil, 0, translateErr(err)
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + applicationColumns + ` FROM licenseapplication WHERE application_status_id = ANY($1) ORDER BY submission_date LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(codes), pageSize, offset)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	var apps []domain.LicenseApplication
	for rows.Next() {
		var app domain.LicenseApplication
		if err := rows.Scan(&app.ApplicationID, &app.ApplicantID, &app.ApplicationTypeID, &app.ApplicationStatusID,
			&app.SubmissionDate, &app.LastUpdatedDate, &app.RejectionReason, &app.AdditionalRequirements); err != nil {
			return nil, 0, translateErr(err)
		}
		apps = append(apps, app)
	}
	return apps, count, nil
}

func (r *applicationRepository) ListByDateRange(ctx context.Context, start, end time.Time, page, pageSize int32) ([]domain.LicenseApplication, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM licenseapplication WHERE submission_date >= $1 AND submission_date <= $2`
	if err := r.db.QueryRowContext(ctx, countQuery, start, end).Scan(&count); err != nil {
		return nil, 0, translateErr(err)
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + applicationColumns + ` FROM licenseapplication WHERE submission_date >= $1 AND submission_date <= $2 ORDER BY submission_date DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, start, end, pageSize, offset)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	var apps []domain.LicenseApplication
	for rows.Next() {
		var app domain.LicenseApplication
		if err := rows.Scan(&app.ApplicationID, &app.ApplicantID, &app.ApplicationTypeID, &app.ApplicationStatusID,
			&app.SubmissionDate, &app.LastUpdatedDate, &app.RejectionReason, &app.AdditionalRequirements); err != nil {
			return nil, 0, translateErr(err)
		}
		apps = append(apps, app)
	}
	return apps, count, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus, rejectionReason, additionalRequirements *string) error {
	query := `UPDATE licenseapplication SET application_status_id=$1, rejection_reason=COALESCE($2, rejection_reason), additional_requirements=COALESCE($3, additional_requirements), last_updated_date=$4 WHERE application_id=$5`
	result, err := r.db.ExecContext(ctx, query, status, rejectionReason, additionalRequirements, time.Now(), applicationID)
	if err != nil {
		return translateErr(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("application %s", applicationID)
	}
	return nil
}

func (r *applicationRepository) GetStatistics(ctx context.Context, now time.Time) (*domain.ApplicationStatistics, error) {
	query := `SELECT
	            count(*),
	            count(*) FILTER (WHERE application_status_id = 'ASID_PEN'),
	            count(*) FILTER (WHERE application_status_id = 'ASID_APP'),
	            count(*) FILTER (WHERE application_status_id = 'ASID_REJ'),
	            count(*) FILTER (WHERE submission_date >= $1)
	          FROM licenseapplication`
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats := &domain.ApplicationStatistics{}
	err := r.db.QueryRowContext(ctx, query, startOfDay).Scan(
		&stats.TotalApplications, &stats.PendingApplications, &stats.ApprovedApplications,
		&stats.RejectedApplications, &stats.ApplicationsToday)
	if err != nil {
		return nil, translateErr(err)
	}
	return stats, nil
}

func (r *applicationRepository) CreateHistory(ctx context.Context, h *domain.ApplicationStatusHistory) error {
	query := `INSERT INTO applicationstatushistory (application_id, application_status_id, status_change_date, changed_by)
	          VALUES ($1, $2, $3, $4) RETURNING history_id`
	h.StatusChangeDate = time.Now()
	err := r.db.QueryRowContext(ctx, query, h.ApplicationID, h.ApplicationStatusID, h.StatusChangeDate, h.ChangedBy).Scan(&h.HistoryID)
	return translateErr(err)
}

func (r *applicationRepository) ListHistory(ctx context.Context, applicationID string) ([]domain.ApplicationStatusHistory, error) {
	query := `SELECT history_id, application_id, application_status_id, status_change_date, changed_by FROM applicationstatushistory WHERE application_id = $1 ORDER BY status_change_date`
	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var history []domain.ApplicationStatusHistory
	for rows.Next() {
		var h domain.ApplicationStatusHistory
		if err := rows.Scan(&h.HistoryID, &h.ApplicationID, &h.ApplicationStatusID, &h.StatusChangeDate, &h.ChangedBy); err != nil {
			return nil, translateErr(err)
		}
		history = append(history, h)
	}
	return history, nil
}

func (r *applicationRepository) CreateVehicleLink(ctx context.Context, link *domain.ApplicationVehicleCategory) error {
	query := `INSERT INTO applicationvehiclecategory (application_id, category_id, clutch_type)
	          VALUES ($1, $2, $3) RETURNING app_vehicle_id`
	err := r.db.QueryRowContext(ctx, query, link.ApplicationID, link.CategoryID, link.ClutchType).Scan(&link.AppVehicleID)
	return translateErr(err)
}

func (r *applicationRepository) ListVehicleLinks(ctx context.Context, applicationID string) ([]domain.ApplicationVehicleCategory, error) {
	query := `SELECT app_vehicle_id, application_id, category_id, clutch_type FROM applicationvehiclecategory WHERE application_id = $1`
	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var links []domain.ApplicationVehicleCategory
	for rows.Next() {
		var l domain.ApplicationVehicleCategory
		if err := rows.Scan(&l.AppVehicleID, &l.ApplicationID, &l.CategoryID, &l.ClutchType); err != nil {
			return nil, translateErr(err)
		}
		links = append(links, l)
	}
	return links, nil
}

func (r *applicationRepository) CreateDrivingSkill(ctx context.Context, s *domain.DrivingSkill) error {
	query := `INSERT INTO drivingskill (application_id, acquisition, created_on)
	          VALUES ($1, $2, $3) RETURNING skill_id`
	s.CreatedOn = time.Now()
	err := r.db.QueryRowContext(ctx, query, s.ApplicationID, s.Acquisition, s.CreatedOn).Scan(&s.SkillID)
	return translateErr(err)
}

func (r *applicationRepository) GetDrivingSkill(ctx context.Context, applicationID string) (*domain.DrivingSkill, error) {
	query := `SELECT skill_id, application_id, acquisition, created_on FROM drivingskill WHERE application_id = $1`
	s := &domain.DrivingSkill{}
	err := r.db.QueryRowContext(ctx, query, applicationID).Scan(&s.SkillID, &s.ApplicationID, &s.Acquisition, &s.CreatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return s, nil
}

func (r *applicationRepository) CreateCondition(ctx context.Context, c *domain.LicenseCondition) error {
	query := `INSERT INTO licensecondition (application_id, condition_type_id)
	          VALUES ($1, $2) RETURNING condition_id`
	err := r.db.QueryRowContext(ctx, query, c.ApplicationID, c.ConditionTypeID).Scan(&c.ConditionID)
	return translateErr(err)
}

func (r *applicationRepository) ListConditions(ctx context.Context, applicationID string) ([]domain.LicenseCondition, error) {
	query := `SELECT condition_id, application_id, condition_type_id FROM licensecondition WHERE application_id = $1`
	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var conditions []domain.LicenseCondition
	for rows.Next() {
		var c domain.LicenseCondition
		if err := rows.Scan(&c.ConditionID, &c.ApplicationID, &c.ConditionTypeID); err != nil {
			return nil, translateErr(err)
		}
		conditions = append(conditions, c)
	}
	return conditions, nil
}
