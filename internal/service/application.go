package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/logger"
	"madalto-backend/internal/repository"
	"madalto-backend/internal/storage"
)

type applicationService struct {
	uow                       repository.UnitOfWork
	appRepo                   repository.ApplicationRepository
	docRepo                   repository.DocumentRepository
	apptRepo                  repository.AppointmentRepository
	renewalWindowDays         int
	allowRenewalWithoutExpiry bool
}

func NewApplicationService(
	uow repository.UnitOfWork,
	appRepo repository.ApplicationRepository,
	docRepo repository.DocumentRepository,
	apptRepo repository.AppointmentRepository,
	renewalWindowDays int,
	allowRenewalWithoutExpiry bool,
) ApplicationService {
	return &applicationService{
		uow:                       uow,
		appRepo:                   appRepo,
		docRepo:                   docRepo,
		apptRepo:                  apptRepo,
		renewalWindowDays:         renewalWindowDays,
		allowRenewalWithoutExpiry: allowRenewalWithoutExpiry,
	}
}

// Submit performs the composite application write. Everything happens in
// one transaction: the applicant upsert, the eligibility re-check, the
// application row and every child record. Any failure leaves no partial
// state behind.
func (s *applicationService) Submit(ctx context.Context, uuid, email string, req *SubmitApplicationRequest) (*SubmitApplicationResult, error) {
	log := logger.WithService("application")

	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	result := &SubmitApplicationResult{}
	err := s.uow.WithinTx(ctx, func(tx *repository.Tx) error {
		applicant, err := s.resolveApplicant(ctx, tx, uuid, email, &req.PersonalInfo)
		if err != nil {
			return err
		}
		result.ApplicantID = applicant.ApplicantID

		// Eligibility must be re-checked now that the applicant record is
		// final, against the same transaction's view.
		var licenseExpiry *time.Time
		if req.LicenseDetails != nil {
			licenseExpiry = req.LicenseDetails.ExpiryDate
		}
		elig := NewEligibilityService(tx.Applications, s.renewalWindowDays, s.allowRenewalWithoutExpiry)
		if err := elig.Check(ctx, applicant.ApplicantID, req.ApplicationTypeID, licenseExpiry); err != nil {
			return err
		}

		// Every category id must exist before any write that references it.
		for _, categoryID := range req.VehicleCategories {
			if _, err := tx.Reference.GetVehicleCategory(ctx, categoryID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.Validationf("unknown vehicle category %q", categoryID)
				}
				return err
			}
		}

		app := &domain.LicenseApplication{
			ApplicantID:         applicant.ApplicantID,
			ApplicationTypeID:   req.ApplicationTypeID,
			ApplicationStatusID: domain.StatusPending,
		}
		if err := tx.Applications.Create(ctx, app); err != nil {
			return err
		}
		result.ApplicationID = app.ApplicationID

		for i, categoryID := range req.VehicleCategories {
			link := &domain.ApplicationVehicleCategory{
				ApplicationID: app.ApplicationID,
				CategoryID:    categoryID,
				ClutchType:    req.ClutchTypes[i],
			}
			if err := tx.Applications.CreateVehicleLink(ctx, link); err != nil {
				return err
			}
			result.VehicleCategories++
		}

		history := &domain.ApplicationStatusHistory{
			ApplicationID:       app.ApplicationID,
			ApplicationStatusID: domain.StatusPending,
			ChangedBy:           applicant.ApplicantID,
		}
		if err := tx.Applications.CreateHistory(ctx, history); err != nil {
			return err
		}

		skill := &domain.DrivingSkill{
			ApplicationID: app.ApplicationID,
			Acquisition:   domain.NormalizeAcquisition(req.Acquisition),
		}
		if err := tx.Applications.CreateDrivingSkill(ctx, skill); err != nil {
			return err
		}

		for _, label := range req.Conditions {
			typeID, ok := domain.ConditionTypeID(label)
			if !ok {
				log.Warn("skipping unknown condition label", "label", label)
				continue
			}
			cond := &domain.LicenseCondition{ApplicationID: app.ApplicationID, ConditionTypeID: typeID}
			if err := tx.Applications.CreateCondition(ctx, cond); err != nil {
				return err
			}
			result.Conditions++
		}

		if err := s.writeApplicantChildren(ctx, tx, applicant, req, result, log); err != nil {
			return err
		}

		for _, doc := range req.Documents {
			if !domain.ValidDocumentName(doc.DocumentName) {
				log.Warn("skipping unknown document name", "name", doc.DocumentName)
				continue
			}
			fileKey := doc.FileKey
			if fileKey == "" {
				fileKey = storage.PendingUploadKey
			}
			record := &domain.Document{
				ApplicationID: app.ApplicationID,
				DocumentName:  doc.DocumentName,
				FileKey:       fileKey,
				ContentType:   doc.ContentType,
			}
			if err := tx.Documents.Create(ctx, record); err != nil {
				if errors.Is(err, domain.ErrConflict) {
					return domain.Conflictf("document %q already submitted for this application", doc.DocumentName)
				}
				return err
			}
			result.Documents++
		}

		if applicant.IsOrganDonor {
			if err := s.writeDonation(ctx, tx, applicant.ApplicantID, req.Organs, result, log); err != nil {
				return err
			}
		}

		if req.LicenseDetails != nil && req.LicenseDetails.LicenseNumber != "" {
			if domain.ValidLicenseNumber(req.LicenseDetails.LicenseNumber) {
				if err := tx.Applicants.UpdateLicenseNumber(ctx, applicant.ApplicantID, req.LicenseDetails.LicenseNumber); err != nil {
					return err
				}
			} else {
				log.Warn("skipping malformed license number", "applicant_id", applicant.ApplicantID)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "application submitted",
		"application_id", result.ApplicationID, "applicant_id", result.ApplicantID)
	return result, nil
}

// resolveApplicant finds the applicant by uuid, falls back to email with a
// uuid backfill, or creates a fresh record. Personal info fields are
// applied onto whatever record wins.
func (s *applicationService) resolveApplicant(ctx context.Context, tx *repository.Tx, uuid, email string, info *PersonalInfo) (*domain.Applicant, error) {
	if uuid == "" || email == "" {
		return nil, domain.ErrUnauthenticated
	}

	applicant, err := tx.Applicants.GetByUUID(ctx, uuid)
	if errors.Is(err, domain.ErrNotFound) {
		applicant, err = tx.Applicants.GetByEmail(ctx, email)
		if errors.Is(err, domain.ErrNotFound) {
			applicant = &domain.Applicant{UUID: uuid, Email: email}
			applyPersonalInfo(applicant, info)
			if err := tx.Applicants.Create(ctx, applicant); err != nil {
				return nil, err
			}
			return applicant, nil
		}
		if err != nil {
			return nil, err
		}
		applicant.UUID = uuid
	} else if err != nil {
		return nil, err
	}

	applyPersonalInfo(applicant, info)
	if err := tx.Applicants.Update(ctx, applicant); err != nil {
		return nil, err
	}
	return applicant, nil
}

func (s *applicationService) writeApplicantChildren(ctx context.Context, tx *repository.Tx, applicant *domain.Applicant, req *SubmitApplicationRequest, result *SubmitApplicationResult, log *slog.Logger) error {
	for _, in := range req.EmergencyContacts {
		contact := &domain.EmergencyContact{
			ApplicantID: applicant.ApplicantID,
			ContactName: in.ContactName,
			Relation:    in.Relation,
			ContactNum:  in.ContactNum,
			Address:     in.Address,
		}
		if err := tx.Applicants.CreateEmergencyContact(ctx, contact); err != nil {
			return err
		}
		result.EmergencyContacts++
	}

	for _, in := range req.Employment {
		employment := &domain.Employment{
			ApplicantID:     applicant.ApplicantID,
			EmployerName:    in.EmployerName,
			EmployerAddress: in.EmployerAddress,
			Occupation:      in.Occupation,
		}
		if err := tx.Applicants.CreateEmployment(ctx, employment); err != nil {
			return err
		}
		result.Employment++
	}

	for _, in := range req.Family {
		relation := domain.Relation(in.RelationType)
		if !relation.Valid() {
			log.Warn("skipping family record with unknown relation", "relation", in.RelationType)
			continue
		}
		if _, err := tx.Applicants.GetFamilyByRelation(ctx, applicant.ApplicantID, relation); err == nil {
			log.Warn("skipping duplicate family relation", "relation", in.RelationType)
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		family := &domain.FamilyInformation{
			ApplicantID:  applicant.ApplicantID,
			RelationType: relation,
			FamilyName:   in.FamilyName,
			FirstName:    in.FirstName,
			MiddleName:   in.MiddleName,
			IsDeceased:   in.IsDeceased,
		}
		if err := tx.Applicants.CreateFamilyInformation(ctx, family); err != nil {
			return err
		}
		result.Family++
	}
	return nil
}

func (s *applicationService) writeDonation(ctx context.Context, tx *repository.Tx, applicantID string, organs []string, result *SubmitApplicationResult, log *slog.Logger) error {
	if _, err := tx.Donations.GetByApplicant(ctx, applicantID); err == nil {
		// One pledge per applicant; an existing one stands.
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	var organIDs []string
	for _, code := range organs {
		if !domain.ValidOrganCode(code) {
			log.Warn("skipping unknown organ code", "code", code)
			continue
		}
		organIDs = append(organIDs, code)
	}
	if len(organIDs) == 0 {
		organIDs = []string{domain.OrganAll}
	}

	donation := &domain.Donation{ApplicantID: applicantID, OrganIDs: organIDs}
	if err := tx.Donations.Create(ctx, donation); err != nil {
		return err
	}
	result.Organs = len(organIDs)
	return nil
}

func (s *applicationService) Get(ctx context.Context, applicantID, applicationID string) (*ApplicationDetail, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID != applicantID {
		return nil, domain.ErrForbidden
	}

	detail := &ApplicationDetail{Application: *app}
	if detail.VehicleCategories, err = s.appRepo.ListVehicleLinks(ctx, applicationID); err != nil {
		return nil, err
	}
	if detail.History, err = s.appRepo.ListHistory(ctx, applicationID); err != nil {
		return nil, err
	}
	if detail.Documents, err = s.docRepo.ListByApplication(ctx, applicationID); err != nil {
		return nil, err
	}
	if detail.DrivingSkill, err = s.appRepo.GetDrivingSkill(ctx, applicationID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		detail.DrivingSkill = nil
	}
	if detail.Conditions, err = s.appRepo.ListConditions(ctx, applicationID); err != nil {
		return nil, err
	}
	if detail.Appointments, err = s.apptRepo.ListByApplication(ctx, applicationID); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *applicationService) ListMine(ctx context.Context, applicantID string) ([]domain.LicenseApplication, error) {
	return s.appRepo.ListByApplicant(ctx, applicantID)
}

func validateSubmission(req *SubmitApplicationRequest) error {
	if !req.ApplicationTypeID.Valid() {
		return domain.Validationf("unknown application type %q", req.ApplicationTypeID)
	}
	if len(req.VehicleCategories) == 0 {
		return domain.Validationf("at least one vehicle category is required")
	}
	if len(req.VehicleCategories) != len(req.ClutchTypes) {
		return domain.Validationf("vehicle categories and clutch types must match: %d vs %d",
			len(req.VehicleCategories), len(req.ClutchTypes))
	}
	for _, clutch := range req.ClutchTypes {
		if !clutch.Valid() {
			return domain.Validationf("unknown clutch type %q", clutch)
		}
	}
	info := &req.PersonalInfo
	if info.ContactNum != "" && !domain.ValidContactNumber(info.ContactNum) {
		return domain.Validationf("contact number must match +63 followed by 10 digits")
	}
	if info.BloodType != "" && !domain.ValidBloodType(info.BloodType) {
		return domain.Validationf("unknown blood type %q", info.BloodType)
	}
	return nil
}

func applyPersonalInfo(a *domain.Applicant, info *PersonalInfo) {
	a.FamilyName = info.FamilyName
	a.FirstName = info.FirstName
	a.MiddleName = info.MiddleName
	a.Address = info.Address
	a.ContactNum = info.ContactNum
	a.Nationality = info.Nationality
	a.Birthdate = info.Birthdate
	a.Birthplace = info.Birthplace
	a.Height = info.Height
	a.Weight = info.Weight
	a.EyeColor = info.EyeColor
	a.CivilStatus = info.CivilStatus
	a.EducationalAttainment = info.EducationalAttainment
	a.BloodType = info.BloodType
	a.Sex = info.Sex
	a.IsOrganDonor = info.IsOrganDonor
}
