package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/repository"
	"madalto-backend/internal/storage"
)

type submitFixture struct {
	applicants   *MockApplicantRepo
	applications *MockApplicationRepo
	documents    *MockDocumentRepo
	appointments *MockAppointmentRepo
	donations    *MockDonationRepo
	reference    *MockReferenceRepo
	svc          ApplicationService
}

func newSubmitFixture() *submitFixture {
	f := &submitFixture{
		applicants:   new(MockApplicantRepo),
		applications: new(MockApplicationRepo),
		documents:    new(MockDocumentRepo),
		appointments: new(MockAppointmentRepo),
		donations:    new(MockDonationRepo),
		reference:    new(MockReferenceRepo),
	}
	uow := &fakeUnitOfWork{tx: &repository.Tx{
		Applicants:   f.applicants,
		Applications: f.applications,
		Documents:    f.documents,
		Appointments: f.appointments,
		Donations:    f.donations,
		Reference:    f.reference,
	}}
	f.svc = NewApplicationService(uow, f.applications, f.documents, f.appointments, 60, false)
	return f
}

func validSubmitRequest() *SubmitApplicationRequest {
	return &SubmitApplicationRequest{
		PersonalInfo: PersonalInfo{
			FamilyName:   "Reyes",
			FirstName:    "Maria",
			ContactNum:   "+639171234567",
			BloodType:    "O+",
			IsOrganDonor: false,
		},
		ApplicationTypeID: domain.TypeNew,
		VehicleCategories: []string{"CAT_001"},
		ClutchTypes:       []domain.ClutchType{domain.ClutchManual},
	}
}

func TestApplicationService_Submit(t *testing.T) {
	ctx := context.Background()
	uuid := "uuid-1"
	email := "maria@example.com"

	t.Run("new applicant full composite", func(t *testing.T) {
		f := newSubmitFixture()
		req := validSubmitRequest()
		req.PersonalInfo.IsOrganDonor = true
		req.Organs = []string{"ORG_KID", "bogus"}
		req.Conditions = []string{"Wear Corrective Lenses", "not a condition"}
		req.EmergencyContacts = []EmergencyContactInput{{ContactName: "Juan", Relation: "Spouse", ContactNum: "+639170000000"}}
		req.Employment = []EmploymentInput{{EmployerName: "Acme", Occupation: "Clerk"}}
		req.Family = []FamilyInput{{RelationType: "Mother", FamilyName: "Reyes", FirstName: "Ana"}}
		req.Documents = []DocumentInput{{DocumentName: "Birth Certificate"}, {DocumentName: "Grocery List"}}

		f.applicants.On("GetByUUID", ctx, uuid).Return(nil, domain.ErrNotFound)
		f.applicants.On("GetByEmail", ctx, email).Return(nil, domain.ErrNotFound)
		f.applicants.On("Create", ctx, mock.AnythingOfType("*domain.Applicant")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Applicant).ApplicantID = "APP_000001"
		}).Return(nil)

		f.applications.On("ListByApplicant", ctx, "APP_000001").Return([]domain.LicenseApplication{}, nil)
		f.reference.On("GetVehicleCategory", ctx, "CAT_001").Return(&domain.VehicleCategory{CategoryID: "CAT_001"}, nil)
		f.applications.On("Create", ctx, mock.AnythingOfType("*domain.LicenseApplication")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.LicenseApplication).ApplicationID = "APPID_000001"
		}).Return(nil)
		f.applications.On("CreateVehicleLink", ctx, mock.AnythingOfType("*domain.ApplicationVehicleCategory")).Return(nil)
		f.applications.On("CreateHistory", ctx, mock.MatchedBy(func(h *domain.ApplicationStatusHistory) bool {
			return h.ApplicationStatusID == domain.StatusPending && h.ChangedBy == "APP_000001"
		})).Return(nil)
		f.applications.On("CreateDrivingSkill", ctx, mock.MatchedBy(func(s *domain.DrivingSkill) bool {
			return s.Acquisition == domain.AcquisitionDrivingSchool
		})).Return(nil)
		f.applications.On("CreateCondition", ctx, mock.MatchedBy(func(c *domain.LicenseCondition) bool {
			return c.ConditionTypeID == "CTID_001"
		})).Return(nil)
		f.applicants.On("CreateEmergencyContact", ctx, mock.AnythingOfType("*domain.EmergencyContact")).Return(nil)
		f.applicants.On("CreateEmployment", ctx, mock.AnythingOfType("*domain.Employment")).Return(nil)
		f.applicants.On("GetFamilyByRelation", ctx, "APP_000001", domain.RelationMother).Return(nil, domain.ErrNotFound)
		f.applicants.On("CreateFamilyInformation", ctx, mock.AnythingOfType("*domain.FamilyInformation")).Return(nil)
		f.documents.On("Create", ctx, mock.MatchedBy(func(d *domain.Document) bool {
			return d.DocumentName == "Birth Certificate" && d.FileKey == storage.PendingUploadKey
		})).Return(nil)
		f.donations.On("GetByApplicant", ctx, "APP_000001").Return(nil, domain.ErrNotFound)
		f.donations.On("Create", ctx, mock.MatchedBy(func(d *domain.Donation) bool {
			return len(d.OrganIDs) == 1 && d.OrganIDs[0] == "ORG_KID"
		})).Return(nil)

		result, err := f.svc.Submit(ctx, uuid, email, req)
		assert.NoError(t, err)
		assert.Equal(t, "APPID_000001", result.ApplicationID)
		assert.Equal(t, "APP_000001", result.ApplicantID)
		assert.Equal(t, 1, result.VehicleCategories)
		assert.Equal(t, 1, result.Conditions)
		assert.Equal(t, 1, result.EmergencyContacts)
		assert.Equal(t, 1, result.Employment)
		assert.Equal(t, 1, result.Family)
		assert.Equal(t, 1, result.Documents)
		assert.Equal(t, 1, result.Organs)
		f.applicants.AssertExpectations(t)
		f.applications.AssertExpectations(t)
		f.donations.AssertExpectations(t)
	})

	t.Run("existing applicant found by email gets uuid backfilled", func(t *testing.T) {
		f := newSubmitFixture()
		req := validSubmitRequest()

		existing := &domain.Applicant{ApplicantID: "APP_000002", Email: email}
		f.applicants.On("GetByUUID", ctx, uuid).Return(nil, domain.ErrNotFound)
		f.applicants.On("GetByEmail", ctx, email).Return(existing, nil)
		f.applicants.On("Update", ctx, mock.MatchedBy(func(a *domain.Applicant) bool {
			return a.UUID == uuid && a.ApplicantID == "APP_000002"
		})).Return(nil)

		f.applications.On("ListByApplicant", ctx, "APP_000002").Return([]domain.LicenseApplication{}, nil)
		f.reference.On("GetVehicleCategory", ctx, "CAT_001").Return(&domain.VehicleCategory{CategoryID: "CAT_001"}, nil)
		f.applications.On("Create", ctx, mock.AnythingOfType("*domain.LicenseApplication")).Return(nil)
		f.applications.On("CreateVehicleLink", ctx, mock.Anything).Return(nil)
		f.applications.On("CreateHistory", ctx, mock.Anything).Return(nil)
		f.applications.On("CreateDrivingSkill", ctx, mock.Anything).Return(nil)

		_, err := f.svc.Submit(ctx, uuid, email, req)
		assert.NoError(t, err)
		f.applicants.AssertExpectations(t)
	})

	t.Run("eligibility conflict stops before any application write", func(t *testing.T) {
		f := newSubmitFixture()
		req := validSubmitRequest()

		applicant := &domain.Applicant{ApplicantID: "APP_000003", UUID: uuid, Email: email}
		f.applicants.On("GetByUUID", ctx, uuid).Return(applicant, nil)
		f.applicants.On("Update", ctx, mock.Anything).Return(nil)
		f.applications.On("ListByApplicant", ctx, "APP_000003").Return([]domain.LicenseApplication{
			{ApplicationID: "APPID_OLD", ApplicationTypeID: domain.TypeNew, ApplicationStatusID: domain.StatusPending},
		}, nil)

		_, err := f.svc.Submit(ctx, uuid, email, req)
		assert.ErrorIs(t, err, domain.ErrConflict)
		f.applications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown vehicle category is a validation error", func(t *testing.T) {
		f := newSubmitFixture()
		req := validSubmitRequest()
		req.VehicleCategories = []string{"CAT_999"}

		applicant := &domain.Applicant{ApplicantID: "APP_000004", UUID: uuid, Email: email}
		f.applicants.On("GetByUUID", ctx, uuid).Return(applicant, nil)
		f.applicants.On("Update", ctx, mock.Anything).Return(nil)
		f.applications.On("ListByApplicant", ctx, "APP_000004").Return([]domain.LicenseApplication{}, nil)
		f.reference.On("GetVehicleCategory", ctx, "CAT_999").Return(nil, domain.ErrNotFound)

		_, err := f.svc.Submit(ctx, uuid, email, req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("mid-transaction failure surfaces the error", func(t *testing.T) {
		f := newSubmitFixture()
		req := validSubmitRequest()

		applicant := &domain.Applicant{ApplicantID: "APP_000005", UUID: uuid, Email: email}
		f.applicants.On("GetByUUID", ctx, uuid).Return(applicant, nil)
		f.applicants.On("Update", ctx, mock.Anything).Return(nil)
		f.applications.On("ListByApplicant", ctx, "APP_000005").Return([]domain.LicenseApplication{}, nil)
		f.reference.On("GetVehicleCategory", ctx, "CAT_001").Return(&domain.VehicleCategory{CategoryID: "CAT_001"}, nil)
		f.applications.On("Create", ctx, mock.Anything).Return(nil)
		f.applications.On("CreateVehicleLink", ctx, mock.Anything).Return(domain.Upstreamf("insert failed"))

		result, err := f.svc.Submit(ctx, uuid, email, req)
		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("malformed license number is skipped, valid one stored", func(t *testing.T) {
		f := newSubmitFixture()
		req := validSubmitRequest()
		req.ApplicationTypeID = domain.TypeDuplicate
		expiry := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		req.LicenseDetails = &LicenseDetails{LicenseNumber: "R12-34-567890", ExpiryDate: &expiry}

		applicant := &domain.Applicant{ApplicantID: "APP_000006", UUID: uuid, Email: email}
		f.applicants.On("GetByUUID", ctx, uuid).Return(applicant, nil)
		f.applicants.On("Update", ctx, mock.Anything).Return(nil)
		f.applications.On("ListByApplicant", ctx, "APP_000006").Return([]domain.LicenseApplication{}, nil)
		f.reference.On("GetVehicleCategory", ctx, "CAT_001").Return(&domain.VehicleCategory{CategoryID: "CAT_001"}, nil)
		f.applications.On("Create", ctx, mock.Anything).Return(nil)
		f.applications.On("CreateVehicleLink", ctx, mock.Anything).Return(nil)
		f.applications.On("CreateHistory", ctx, mock.Anything).Return(nil)
		f.applications.On("CreateDrivingSkill", ctx, mock.Anything).Return(nil)
		f.applicants.On("UpdateLicenseNumber", ctx, "APP_000006", "R12-34-567890").Return(nil)

		_, err := f.svc.Submit(ctx, uuid, email, req)
		assert.NoError(t, err)
		f.applicants.AssertExpectations(t)

		f2 := newSubmitFixture()
		req2 := validSubmitRequest()
		req2.ApplicationTypeID = domain.TypeDuplicate
		req2.LicenseDetails = &LicenseDetails{LicenseNumber: "not-a-number"}

		f2.applicants.On("GetByUUID", ctx, uuid).Return(applicant, nil)
		f2.applicants.On("Update", ctx, mock.Anything).Return(nil)
		f2.applications.On("ListByApplicant", ctx, "APP_000006").Return([]domain.LicenseApplication{}, nil)
		f2.reference.On("GetVehicleCategory", ctx, "CAT_001").Return(&domain.VehicleCategory{CategoryID: "CAT_001"}, nil)
		f2.applications.On("Create", ctx, mock.Anything).Return(nil)
		f2.applications.On("CreateVehicleLink", ctx, mock.Anything).Return(nil)
		f2.applications.On("CreateHistory", ctx, mock.Anything).Return(nil)
		f2.applications.On("CreateDrivingSkill", ctx, mock.Anything).Return(nil)

		_, err = f2.svc.Submit(ctx, uuid, email, req2)
		assert.NoError(t, err)
		f2.applicants.AssertNotCalled(t, "UpdateLicenseNumber", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate document name maps to conflict", func(t *testing.T) {
		f := newSubmitFixture()
		req := validSubmitRequest()
		req.Documents = []DocumentInput{{DocumentName: "Valid ID"}}

		applicant := &domain.Applicant{ApplicantID: "APP_000007", UUID: uuid, Email: email}
		f.applicants.On("GetByUUID", ctx, uuid).Return(applicant, nil)
		f.applicants.On("Update", ctx, mock.Anything).Return(nil)
		f.applications.On("ListByApplicant", ctx, "APP_000007").Return([]domain.LicenseApplication{}, nil)
		f.reference.On("GetVehicleCategory", ctx, "CAT_001").Return(&domain.VehicleCategory{CategoryID: "CAT_001"}, nil)
		f.applications.On("Create", ctx, mock.Anything).Return(nil)
		f.applications.On("CreateVehicleLink", ctx, mock.Anything).Return(nil)
		f.applications.On("CreateHistory", ctx, mock.Anything).Return(nil)
		f.applications.On("CreateDrivingSkill", ctx, mock.Anything).Return(nil)
		f.documents.On("Create", ctx, mock.Anything).Return(domain.Conflictf("duplicate"))

		_, err := f.svc.Submit(ctx, uuid, email, req)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestApplicationService_SubmitValidation(t *testing.T) {
	ctx := context.Background()
	f := newSubmitFixture()

	t.Run("unknown application type", func(t *testing.T) {
		req := validSubmitRequest()
		req.ApplicationTypeID = "ATID_Z"
		_, err := f.svc.Submit(ctx, "u", "e@example.com", req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("no vehicle categories", func(t *testing.T) {
		req := validSubmitRequest()
		req.VehicleCategories = nil
		req.ClutchTypes = nil
		_, err := f.svc.Submit(ctx, "u", "e@example.com", req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("clutch count mismatch", func(t *testing.T) {
		req := validSubmitRequest()
		req.ClutchTypes = []domain.ClutchType{domain.ClutchManual, domain.ClutchAutomatic}
		_, err := f.svc.Submit(ctx, "u", "e@example.com", req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("bad contact number", func(t *testing.T) {
		req := validSubmitRequest()
		req.PersonalInfo.ContactNum = "0917"
		_, err := f.svc.Submit(ctx, "u", "e@example.com", req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("bad blood type", func(t *testing.T) {
		req := validSubmitRequest()
		req.PersonalInfo.BloodType = "Q+"
		_, err := f.svc.Submit(ctx, "u", "e@example.com", req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing identity", func(t *testing.T) {
		req := validSubmitRequest()
		ff := newSubmitFixture()
		_, err := ff.svc.Submit(ctx, "", "", req)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}
