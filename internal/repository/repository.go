package repository

import (
	"context"
	"time"

	"madalto-backend/internal/domain"
)

type ApplicantRepository interface {
	Create(ctx context.Context, a *domain.Applicant) error
	GetByUUID(ctx context.Context, uuid string) (*domain.Applicant, error)
	GetByEmail(ctx context.Context, email string) (*domain.Applicant, error)
	GetByApplicantID(ctx context.Context, applicantID string) (*domain.Applicant, error)
	Update(ctx context.Context, a *domain.Applicant) error
	UpdateLicenseNumber(ctx context.Context, applicantID, licenseNumber string) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Applicant, int32, error)

	// Child records created during composite submission
	CreateEmergencyContact(ctx context.Context, c *domain.EmergencyContact) error
	ListEmergencyContacts(ctx context.Context, applicantID string) ([]domain.EmergencyContact, error)
	CreateEmployment(ctx context.Context, e *domain.Employment) error
	ListEmployment(ctx context.Context, applicantID string) ([]domain.Employment, error)
	CreateFamilyInformation(ctx context.Context, f *domain.FamilyInformation) error
	GetFamilyByRelation(ctx context.Context, applicantID string, relation domain.Relation) (*domain.FamilyInformation, error)
	ListFamilyInformation(ctx context.Context, applicantID string) ([]domain.FamilyInformation, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.LicenseApplication) error
	GetByID(ctx context.Context, applicationID string) (*domain.LicenseApplication, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]domain.LicenseApplication, error)
	ListByStatus(ctx context.Context, statuses []domain.ApplicationStatus, page, pageSize int32) ([]domain.LicenseApplication, int32, error)
	ListByDateRange(ctx context.Context, start, end time.Time, page, pageSize int32) ([]domain.LicenseApplication, int32, error)
	UpdateStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus, rejectionReason, additionalRequirements *string) error
	GetStatistics(ctx context.Context, now time.Time) (*domain.ApplicationStatistics, error)

	// Status history (append only)
	CreateHistory(ctx context.Context, h *domain.ApplicationStatusHistory) error
	ListHistory(ctx context.Context, applicationID string) ([]domain.ApplicationStatusHistory, error)

	// Vehicle category links
	CreateVehicleLink(ctx context.Context, link *domain.ApplicationVehicleCategory) error
	ListVehicleLinks(ctx context.Context, applicationID string) ([]domain.ApplicationVehicleCategory, error)

	// Per-application child records
	CreateDrivingSkill(ctx context.Context, s *domain.DrivingSkill) error
	GetDrivingSkill(ctx context.Context, applicationID string) (*domain.DrivingSkill, error)
	CreateCondition(ctx context.Context, c *domain.LicenseCondition) error
	ListConditions(ctx context.Context, applicationID string) ([]domain.LicenseCondition, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, documentID string) (*domain.Document, error)
	GetByApplicationAndName(ctx context.Context, applicationID, documentName string) (*domain.Document, error)
	ListByApplication(ctx context.Context, applicationID string) ([]domain.Document, error)
	ReplaceFile(ctx context.Context, documentID, fileKey, contentType string) error
	SetVerified(ctx context.Context, documentID string, verified bool, verifierID string) error
	VerifyAllForApplication(ctx context.Context, applicationID, verifierID string) error
	ListPendingVerification(ctx context.Context) ([]domain.Document, error)
	Delete(ctx context.Context, documentID string) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, appointmentID string) (*domain.Appointment, error)
	ListByApplication(ctx context.Context, applicationID string) ([]domain.Appointment, error)
	ListBookedSlots(ctx context.Context, locationID string, date time.Time) ([]string, error)
	Update(ctx context.Context, a *domain.Appointment) error
	ListByDate(ctx context.Context, date time.Time, statuses []domain.AppointmentStatus) ([]domain.Appointment, error)
	MarkMissedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type DonationRepository interface {
	Create(ctx context.Context, d *domain.Donation) error
	GetByApplicant(ctx context.Context, applicantID string) (*domain.Donation, error)
	AddOrgan(ctx context.Context, donationID, organID string) error
	ReplaceOrgans(ctx context.Context, donationID string, organIDs []string) error
}

type ReferenceRepository interface {
	ListVehicleCategories(ctx context.Context) ([]domain.VehicleCategory, error)
	GetVehicleCategory(ctx context.Context, categoryID string) (*domain.VehicleCategory, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)
	GetLocation(ctx context.Context, locationID string) (*domain.Location, error)
	ListOrgans(ctx context.Context) ([]domain.Organ, error)
	ListApplicationTypes(ctx context.Context) ([]domain.ApplicationTypeRef, error)
	ListApplicationStatuses(ctx context.Context) ([]domain.ApplicationStatusRef, error)
	ListConditionTypes(ctx context.Context) ([]domain.LicenseConditionType, error)
}

type AdminRepository interface {
	Create(ctx context.Context, a *domain.Admin) error
	GetByUUID(ctx context.Context, uuid string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
	Update(ctx context.Context, a *domain.Admin) error
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.UserAccount) error
	GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error)
	GetByUUID(ctx context.Context, uuid string) (*domain.UserAccount, error)
	MarkVerified(ctx context.Context, uuid string) error
	UpdatePassword(ctx context.Context, uuid, passwordHash string) error
}

// Tx bundles repositories bound to one open database transaction. All
// operations through it commit or roll back together.
type Tx struct {
	Applicants   ApplicantRepository
	Applications ApplicationRepository
	Documents    DocumentRepository
	Appointments AppointmentRepository
	Donations    DonationRepository
	Reference    ReferenceRepository
}

// UnitOfWork runs fn inside a transaction. A non-nil error from fn rolls
// everything back; otherwise the transaction commits.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(tx *Tx) error) error
}
