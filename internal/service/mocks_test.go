package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/repository"
)

// MockApplicantRepo
type MockApplicantRepo struct {
	mock.Mock
}

func (m *MockApplicantRepo) Create(ctx context.Context, a *domain.Applicant) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockApplicantRepo) GetByUUID(ctx context.Context, uuid string) (*domain.Applicant, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Applicant), args.Error(1)
}
func (m *MockApplicantRepo) GetByEmail(ctx context.Context, email string) (*domain.Applicant, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Applicant), args.Error(1)
}
func (m *MockApplicantRepo) GetByApplicantID(ctx context.Context, applicantID string) (*domain.Applicant, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Applicant), args.Error(1)
}
func (m *MockApplicantRepo) Update(ctx context.Context, a *domain.Applicant) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockApplicantRepo) UpdateLicenseNumber(ctx context.Context, applicantID, licenseNumber string) error {
	args := m.Called(ctx, applicantID, licenseNumber)
	return args.Error(0)
}
func (m *MockApplicantRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Applicant, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Applicant), args.Get(1).(int32), args.Error(2)
}
func (m *MockApplicantRepo) CreateEmergencyContact(ctx context.Context, c *domain.EmergencyContact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockApplicantRepo) ListEmergencyContacts(ctx context.Context, applicantID string) ([]domain.EmergencyContact, error) {
	args := m.Called(ctx, applicantID)
	return args.Get(0).([]domain.EmergencyContact), args.Error(1)
}
func (m *MockApplicantRepo) CreateEmployment(ctx context.Context, e *domain.Employment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockApplicantRepo) ListEmployment(ctx context.Context, applicantID string) ([]domain.Employment, error) {
	args := m.Called(ctx, applicantID)
	return args.Get(0).([]domain.Employment), args.Error(1)
}
func (m *MockApplicantRepo) CreateFamilyInformation(ctx context.Context, f *domain.FamilyInformation) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}
func (m *MockApplicantRepo) GetFamilyByRelation(ctx context.Context, applicantID string, relation domain.Relation) (*domain.FamilyInformation, error) {
	args := m.Called(ctx, applicantID, relation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FamilyInformation), args.Error(1)
}
func (m *MockApplicantRepo) ListFamilyInformation(ctx context.Context, applicantID string) ([]domain.FamilyInformation, error) {
	args := m.Called(ctx, applicantID)
	return args.Get(0).([]domain.FamilyInformation), args.Error(1)
}

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.LicenseApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, applicationID string) (*domain.LicenseApplication, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LicenseApplication), args.Error(1)
}
func (m *MockApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]domain.LicenseApplication, error) {
	args := m.Called(ctx, applicantID)
	return args.Get(0).([]domain.LicenseApplication), args.Error(1)
}
func (m *MockApplicationRepo) ListByStatus(ctx context.Context, statuses []domain.ApplicationStatus, page, pageSize int32) ([]domain.LicenseApplication, int32, error) {
	args := m.Called(ctx, statuses, page, pageSize)
	return args.Get(0).([]domain.LicenseApplication), args.Get(1).(int32), args.Error(2)
}
func (m *MockApplicationRepo) ListByDateRange(ctx context.Context, start, end time.Time, page, pageSize int32) ([]domain.LicenseApplication, int32, error) {
	args := m.Called(ctx, start, end, page, pageSize)
	return args.Get(0).([]domain.LicenseApplication), args.Get(1).(int32), args.Error(2)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus, rejectionReason, additionalRequirements *string) error {
	args := m.Called(ctx, applicationID, status, rejectionReason, additionalRequirements)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetStatistics(ctx context.Context, now time.Time) (*domain.ApplicationStatistics, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationStatistics), args.Error(1)
}
func (m *MockApplicationRepo) CreateHistory(ctx context.Context, h *domain.ApplicationStatusHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}
func (m *MockApplicationRepo) ListHistory(ctx context.Context, applicationID string) ([]domain.ApplicationStatusHistory, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]domain.ApplicationStatusHistory), args.Error(1)
}
func (m *MockApplicationRepo) CreateVehicleLink(ctx context.Context, link *domain.ApplicationVehicleCategory) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}
func (m *MockApplicationRepo) ListVehicleLinks(ctx context.Context, applicationID string) ([]domain.ApplicationVehicleCategory, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]domain.ApplicationVehicleCategory), args.Error(1)
}
func (m *MockApplicationRepo) CreateDrivingSkill(ctx context.Context, s *domain.DrivingSkill) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetDrivingSkill(ctx context.Context, applicationID string) (*domain.DrivingSkill, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DrivingSkill), args.Error(1)
}
func (m *MockApplicationRepo) CreateCondition(ctx context.Context, c *domain.LicenseCondition) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockApplicationRepo) ListConditions(ctx context.Context, applicationID string) ([]domain.LicenseCondition, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]domain.LicenseCondition), args.Error(1)
}

// MockDocumentRepo
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDocumentRepo) GetByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentRepo) GetByApplicationAndName(ctx context.Context, applicationID, documentName string) (*domain.Document, error) {
	args := m.Called(ctx, applicationID, documentName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentRepo) ListByApplication(ctx context.Context, applicationID string) ([]domain.Document, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]domain.Document), args.Error(1)
}
func (m *MockDocumentRepo) ReplaceFile(ctx context.Context, documentID, fileKey, contentType string) error {
	args := m.Called(ctx, documentID, fileKey, contentType)
	return args.Error(0)
}
func (m *MockDocumentRepo) SetVerified(ctx context.Context, documentID string, verified bool, verifierID string) error {
	args := m.Called(ctx, documentID, verified, verifierID)
	return args.Error(0)
}
func (m *MockDocumentRepo) VerifyAllForApplication(ctx context.Context, applicationID, verifierID string) error {
	args := m.Called(ctx, applicationID, verifierID)
	return args.Error(0)
}
func (m *MockDocumentRepo) ListPendingVerification(ctx context.Context) ([]domain.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}
func (m *MockDocumentRepo) Delete(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// MockAppointmentRepo
type MockAppointmentRepo struct {
	mock.Mock
}

func (m *MockAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAppointmentRepo) GetByID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}
func (m *MockAppointmentRepo) ListByApplication(ctx context.Context, applicationID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}
func (m *MockAppointmentRepo) ListBookedSlots(ctx context.Context, locationID string, date time.Time) ([]string, error) {
	args := m.Called(ctx, locationID, date)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockAppointmentRepo) Update(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAppointmentRepo) ListByDate(ctx context.Context, date time.Time, statuses []domain.AppointmentStatus) ([]domain.Appointment, error) {
	args := m.Called(ctx, date, statuses)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}
func (m *MockAppointmentRepo) MarkMissedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockDonationRepo
type MockDonationRepo struct {
	mock.Mock
}

func (m *MockDonationRepo) Create(ctx context.Context, d *domain.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDonationRepo) GetByApplicant(ctx context.Context, applicantID string) (*domain.Donation, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) AddOrgan(ctx context.Context, donationID, organID string) error {
	args := m.Called(ctx, donationID, organID)
	return args.Error(0)
}
func (m *MockDonationRepo) ReplaceOrgans(ctx context.Context, donationID string, organIDs []string) error {
	args := m.Called(ctx, donationID, organIDs)
	return args.Error(0)
}

// MockReferenceRepo
type MockReferenceRepo struct {
	mock.Mock
}

func (m *MockReferenceRepo) ListVehicleCategories(ctx context.Context) ([]domain.VehicleCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.VehicleCategory), args.Error(1)
}
func (m *MockReferenceRepo) GetVehicleCategory(ctx context.Context, categoryID string) (*domain.VehicleCategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleCategory), args.Error(1)
}
func (m *MockReferenceRepo) ListLocations(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Location), args.Error(1)
}
func (m *MockReferenceRepo) GetLocation(ctx context.Context, locationID string) (*domain.Location, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}
func (m *MockReferenceRepo) ListOrgans(ctx context.Context) ([]domain.Organ, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Organ), args.Error(1)
}
func (m *MockReferenceRepo) ListApplicationTypes(ctx context.Context) ([]domain.ApplicationTypeRef, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ApplicationTypeRef), args.Error(1)
}
func (m *MockReferenceRepo) ListApplicationStatuses(ctx context.Context) ([]domain.ApplicationStatusRef, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ApplicationStatusRef), args.Error(1)
}
func (m *MockReferenceRepo) ListConditionTypes(ctx context.Context) ([]domain.LicenseConditionType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.LicenseConditionType), args.Error(1)
}

// MockAdminRepo
type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) Create(ctx context.Context, a *domain.Admin) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAdminRepo) GetByUUID(ctx context.Context, uuid string) (*domain.Admin, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
func (m *MockAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
func (m *MockAdminRepo) List(ctx context.Context) ([]domain.Admin, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Admin), args.Error(1)
}
func (m *MockAdminRepo) Update(ctx context.Context, a *domain.Admin) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOTP(ctx context.Context, email, code string, expiry time.Duration) error {
	args := m.Called(ctx, email, code, expiry)
	return args.Error(0)
}
func (m *MockEmailService) SendStatusNotification(ctx context.Context, email, name, applicationID, statusDescription string, reason *string) error {
	args := m.Called(ctx, email, name, applicationID, statusDescription, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendAppointmentReminder(ctx context.Context, email, name, locationName, date, slot string) error {
	args := m.Called(ctx, email, name, locationName, date, slot)
	return args.Error(0)
}

// MockBlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, reader io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, reader, contentType)
	return args.String(0), args.Error(1)
}
func (m *MockBlobStore) Read(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockBlobStore) Exists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

// fakeUnitOfWork passes the mock-backed Tx straight to fn. Commit and
// rollback semantics are exercised against sqlmock in the repository
// tests instead.
type fakeUnitOfWork struct {
	tx *repository.Tx
}

func (f *fakeUnitOfWork) WithinTx(ctx context.Context, fn func(tx *repository.Tx) error) error {
	return fn(f.tx)
}
