package postgres

import (
	"context"
	"time"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/repository"
)

type applicantRepository struct {
	db DBTX
}

func NewApplicantRepository(db DBTX) repository.ApplicantRepository {
	return &applicantRepository{db: db}
}

const applicantColumns = `uuid, applicant_id, email, family_name, first_name, middle_name, address, contact_num, nationality, birthdate, birthplace, height, weight, eye_color, civil_status, educational_attainment, blood_type, sex, license_number, is_organ_donor, created_on, updated_on`

func (r *applicantRepository) Create(ctx context.Context, a *domain.Applicant) error {
	query := `INSERT INTO applicant (uuid, email, family_name, first_name, middle_name, address, contact_num, nationality, birthdate, birthplace, height, weight, eye_color, civil_status, educational_attainment, blood_type, sex, license_number, is_organ_donor, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21) RETURNING applicant_id`
	now := time.Now()
	a.CreatedOn = now
	a.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query,
		a.UUID, a.Email, a.FamilyName, a.FirstName, a.MiddleName, a.Address, a.ContactNum,
		a.Nationality, a.Birthdate, a.Birthplace, a.Height, a.Weight, a.EyeColor,
		a.CivilStatus, a.EducationalAttainment, a.BloodType, a.Sex, a.LicenseNumber,
		a.IsOrganDonor, now, now,
	).Scan(&a.ApplicantID)
	return translateErr(err)
}

func (r *applicantRepository) scanApplicant(row interface{ Scan(...interface{}) error }) (*domain.Applicant, error) {
	a := &domain.Applicant{}
	err := row.Scan(&a.UUID, &a.ApplicantID, &a.Email, &a.FamilyName, &a.FirstName, &a.MiddleName,
		&a.Address, &a.ContactNum, &a.Nationality, &a.Birthdate, &a.Birthplace, &a.Height, &a.Weight,
		&a.EyeColor, &a.CivilStatus, &a.EducationalAttainment, &a.BloodType, &a.Sex,
		&a.LicenseNumber, &a.IsOrganDonor, &a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return a, nil
}

func (r *applicantRepository) GetByUUID(ctx context.Context, uuid string) (*domain.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicant WHERE uuid = $1`
	return r.scanApplicant(r.db.QueryRowContext(ctx, query, uuid))
}

func (r *applicantRepository) GetByEmail(ctx context.Context, email string) (*domain.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicant WHERE email = $1`
	return r.scanApplicant(r.db.QueryRowContext(ctx, query, email))
}

func (r *applicantRepository) GetByApplicantID(ctx context.Context, applicantID string) (*domain.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicant WHERE applicant_id = $1`
	return r.scanApplicant(r.db.QueryRowContext(ctx, query, applicantID))
}

func (r *applicantRepository) Update(ctx context.Context, a *domain.Applicant) error {
	query := `UPDATE applicant SET uuid=$1, email=$2, family_name=$3, first_name=$4, middle_name=$5, address=$6, contact_num=$7, nationality=$8, birthdate=$9, birthplace=$10, height=$11, weight=$12, eye_color=$13, civil_status=$14, educational_attainment=$15, blood_type=$16, sex=$17, license_number=$18, is_organ_donor=$19, updated_on=$20 WHERE applicant_id=$21`
	a.UpdatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		a.UUID, a.Email, a.FamilyName, a.FirstName, a.MiddleName, a.Address, a.ContactNum,
		a.Nationality, a.Birthdate, a.Birthplace, a.Height, a.Weight, a.EyeColor,
		a.CivilStatus, a.EducationalAttainment, a.BloodType, a.Sex, a.LicenseNumber,
		a.IsOrganDonor, a.UpdatedOn, a.ApplicantID)
	return translateErr(err)
}

func (r *applicantRepository) UpdateLicenseNumber(ctx context.Context, applicantID, licenseNumber string) error {
	query := `UPDATE applicant SET license_number=$1, updated_on=$2 WHERE applicant_id=$3`
	_, err := r.db.ExecContext(ctx, query, licenseNumber, time.Now(), applicantID)
	return translateErr(err)
}

func (r *applicantRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Applicant, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM applicant`).Scan(&count); err != nil {
		return nil, 0, translateErr(err)
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + applicantColumns + ` FROM applicant ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	var applicants []domain.Applicant
	for rows.Next() {
		var a domain.Applicant
		if err := rows.Scan(&a.UUID, &a.ApplicantID, &a.Email, &a.FamilyName, &a.FirstName, &a.MiddleName,
			&a.Address, &a.ContactNum, &a.Nationality, &a.Birthdate, &a.Birthplace, &a.Height, &a.Weight,
			&a.EyeColor, &a.CivilStatus, &a.EducationalAttainment, &a.BloodType, &a.Sex,
			&a.LicenseNumber, &a.IsOrganDonor, &a.CreatedOn, &a.UpdatedOn); err != nil {
			return nil, 0, translateErr(err)
		}
		applicants = append(applicants, a)
	}
	return applicants, count, nil
}

func (r *applicantRepository) CreateEmergencyContact(ctx context.Context, c *domain.EmergencyContact) error {
	query := `INSERT INTO emergencycontact (applicant_id, contact_name, relation, contact_num, address, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING contact_id`
	c.CreatedOn = time.Now()
	err := r.db.QueryRowContext(ctx, query, c.ApplicantID, c.ContactName, c.Relation, c.ContactNum, c.Address, c.CreatedOn).Scan(&c.ContactID)
	return translateErr(err)
}

func (r *applicantRepository) ListEmergencyContacts(ctx context.Context, applicantID string) ([]domain.EmergencyContact, error) {
	query := `SELECT contact_id, applicant_id, contact_name, relation, contact_num, address, created_on FROM emergencycontact WHERE applicant_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, applicantID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var contacts []domain.EmergencyContact
	for rows.Next() {
		var c domain.EmergencyContact
		if err := rows.Scan(&c.ContactID, &c.ApplicantID, &c.ContactName, &c.Relation, &c.ContactNum, &c.Address, &c.CreatedOn); err != nil {
			return nil, translateErr(err)
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

func (r *applicantRepository) CreateEmployment(ctx context.Context, e *domain.Employment) error {
	query := `INSERT INTO employment (applicant_id, employer_name, employer_address, occupation, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING employment_id`
	e.CreatedOn = time.Now()
	err := r.db.QueryRowContext(ctx, query, e.ApplicantID, e.EmployerName, e.EmployerAddress, e.Occupation, e.CreatedOn).Scan(&e.EmploymentID)
	return translateErr(err)
}

func (r *applicantRepository) ListEmployment(ctx context.Context, applicantID string) ([]domain.Employment, error) {
	query := `SELECT employment_id, applicant_id, employer_name, employer_address, occupation, created_on FROM employment WHERE applicant_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, applicantID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var records []domain.Employment
	for rows.Next() {
		var e domain.Employment
		if err := rows.Scan(&e.EmploymentID, &e.ApplicantID, &e.EmployerName, &e.EmployerAddress, &e.Occupation, &e.CreatedOn); err != nil {
			return nil, translateErr(err)
		}
		records = append(records, e)
	}
	return records, nil
}

func (r *applicantRepository) CreateFamilyInformation(ctx context.Context, f *domain.FamilyInformation) error {
	query := `INSERT INTO familyinformation (applicant_id, relation_type, family_name, first_name, middle_name, is_deceased, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING family_id`
	f.CreatedOn = time.Now()
	err := r.db.QueryRowContext(ctx, query, f.ApplicantID, f.RelationType, f.FamilyName, f.FirstName, f.MiddleName, f.IsDeceased, f.CreatedOn).Scan(&f.FamilyID)
	return translateErr(err)
}

func (r *applicantRepository) GetFamilyByRelation(ctx context.Context, applicantID string, relation domain.Relation) (*domain.FamilyInformation, error) {
	query := `SELECT family_id, applicant_id, relation_type, family_name, first_name, middle_name, is_deceased, created_on FROM familyinformation WHERE applicant_id = $1 AND relation_type = $2`
	f := &domain.FamilyInformation{}
	err := r.db.QueryRowContext(ctx, query, applicantID, relation).Scan(&f.FamilyID, &f.ApplicantID, &f.RelationType, &f.FamilyName, &f.FirstName, &f.MiddleName, &f.IsDeceased, &f.CreatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return f, nil
}

func (r *applicantRepository) ListFamilyInformation(ctx context.Context, applicantID string) ([]domain.FamilyInformation, error) {
	query := `SELECT family_id, applicant_id, relation_type, family_name, first_name, middle_name, is_deceased, created_on FROM familyinformation WHERE applicant_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, applicantID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var records []domain.FamilyInformation
	for rows.Next() {
		var f domain.FamilyInformation
		if err := rows.Scan(&f.FamilyID, &f.ApplicantID, &f.RelationType, &f.FamilyName, &f.FirstName, &f.MiddleName, &f.IsDeceased, &f.CreatedOn); err != nil {
			return nil, translateErr(err)
		}
		records = append(records, f)
	}
	return records, nil
}
