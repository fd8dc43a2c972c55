package service

import (
	"context"
	"errors"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/identity"
	"madalto-backend/internal/logger"
	"madalto-backend/internal/repository"
)

type identityService struct {
	applicantRepo repository.ApplicantRepository
	adminRepo     repository.AdminRepository
}

func NewIdentityService(applicantRepo repository.ApplicantRepository, adminRepo repository.AdminRepository) IdentityService {
	return &identityService{applicantRepo: applicantRepo, adminRepo: adminRepo}
}

// ResolveApplicant maps the verified identity to an Applicant. A stub is
// created on first use; an email-only match gets its uuid backfilled as a
// read-path side effect.
func (s *identityService) ResolveApplicant(ctx context.Context, ident *identity.Identity) (*domain.Applicant, error) {
	if ident == nil || ident.UUID == "" || ident.Email == "" {
		return nil, domain.ErrUnauthenticated
	}

	applicant, err := s.applicantRepo.GetByUUID(ctx, ident.UUID)
	if err == nil {
		return applicant, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	applicant, err = s.applicantRepo.GetByEmail(ctx, ident.Email)
	if err == nil {
		applicant.UUID = ident.UUID
		if err := s.applicantRepo.Update(ctx, applicant); err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "linked identity to existing applicant",
			"applicant_id", applicant.ApplicantID)
		return applicant, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	applicant = &domain.Applicant{UUID: ident.UUID, Email: ident.Email}
	if err := s.applicantRepo.Create(ctx, applicant); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "created applicant stub", "applicant_id", applicant.ApplicantID)
	return applicant, nil
}

// ResolveAdmin returns the active admin record for the identity, or
// ErrForbidden when there is none. Admin privilege is never inferred from
// the email address itself.
func (s *identityService) ResolveAdmin(ctx context.Context, ident *identity.Identity) (*domain.Admin, error) {
	if ident == nil || ident.UUID == "" {
		return nil, domain.ErrUnauthenticated
	}
	admin, err := s.adminRepo.GetByUUID(ctx, ident.UUID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	if !admin.IsActive {
		return nil, domain.ErrForbidden
	}
	return admin, nil
}

type applicantService struct {
	applicantRepo repository.ApplicantRepository
	donationRepo  repository.DonationRepository
}

func NewApplicantService(applicantRepo repository.ApplicantRepository, donationRepo repository.DonationRepository) ApplicantService {
	return &applicantService{applicantRepo: applicantRepo, donationRepo: donationRepo}
}

func (s *applicantService) GetProfile(ctx context.Context, applicantID string) (*ApplicantProfile, error) {
	applicant, err := s.applicantRepo.GetByApplicantID(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	profile := &ApplicantProfile{Applicant: *applicant}
	if profile.EmergencyContacts, err = s.applicantRepo.ListEmergencyContacts(ctx, applicantID); err != nil {
		return nil, err
	}
	if profile.Employment, err = s.applicantRepo.ListEmployment(ctx, applicantID); err != nil {
		return nil, err
	}
	if profile.Family, err = s.applicantRepo.ListFamilyInformation(ctx, applicantID); err != nil {
		return nil, err
	}
	donation, err := s.donationRepo.GetByApplicant(ctx, applicantID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	profile.Donation = donation
	return profile, nil
}

func (s *applicantService) UpdateProfile(ctx context.Context, applicantID string, info *PersonalInfo) (*domain.Applicant, error) {
	if info.ContactNum != "" && !domain.ValidContactNumber(info.ContactNum) {
		return nil, domain.Validationf("contact number must match +63 followed by 10 digits")
	}
	if info.BloodType != "" && !domain.ValidBloodType(info.BloodType) {
		return nil, domain.Validationf("unknown blood type %q", info.BloodType)
	}

	applicant, err := s.applicantRepo.GetByApplicantID(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	applyPersonalInfo(applicant, info)
	if err := s.applicantRepo.Update(ctx, applicant); err != nil {
		return nil, err
	}
	return applicant, nil
}

// AddFamilyMember records one kin entry. The schema allows a single
// record per relation type, so a duplicate relation is a conflict.
func (s *applicantService) AddFamilyMember(ctx context.Context, applicantID string, input *FamilyInput) (*domain.FamilyInformation, error) {
	relation := domain.Relation(input.RelationType)
	if !relation.Valid() {
		return nil, domain.Validationf("unknown relation type %q", input.RelationType)
	}
	if input.FamilyName == "" || input.FirstName == "" {
		return nil, domain.Validationf("family name and first name are required")
	}

	if _, err := s.applicantRepo.GetFamilyByRelation(ctx, applicantID, relation); err == nil {
		return nil, domain.Conflictf("a %s record already exists", relation)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	family := &domain.FamilyInformation{
		ApplicantID:  applicantID,
		RelationType: relation,
		FamilyName:   input.FamilyName,
		FirstName:    input.FirstName,
		MiddleName:   input.MiddleName,
		IsDeceased:   input.IsDeceased,
	}
	if err := s.applicantRepo.CreateFamilyInformation(ctx, family); err != nil {
		return nil, err
	}
	return family, nil
}

func (s *applicantService) ListFamily(ctx context.Context, applicantID string) ([]domain.FamilyInformation, error) {
	return s.applicantRepo.ListFamilyInformation(ctx, applicantID)
}

func (s *applicantService) AddEmployment(ctx context.Context, applicantID string, input *EmploymentInput) (*domain.Employment, error) {
	if input.EmployerName == "" {
		return nil, domain.Validationf("employer name is required")
	}
	employment := &domain.Employment{
		ApplicantID:     applicantID,
		EmployerName:    input.EmployerName,
		EmployerAddress: input.EmployerAddress,
		Occupation:      input.Occupation,
	}
	if err := s.applicantRepo.CreateEmployment(ctx, employment); err != nil {
		return nil, err
	}
	return employment, nil
}

func (s *applicantService) ListEmployment(ctx context.Context, applicantID string) ([]domain.Employment, error) {
	return s.applicantRepo.ListEmployment(ctx, applicantID)
}

func (s *applicantService) AddEmergencyContact(ctx context.Context, applicantID string, input *EmergencyContactInput) (*domain.EmergencyContact, error) {
	if input.ContactName == "" {
		return nil, domain.Validationf("contact name is required")
	}
	if input.ContactNum != "" && !domain.ValidContactNumber(input.ContactNum) {
		return nil, domain.Validationf("contact number must match +63 followed by 10 digits")
	}
	contact := &domain.EmergencyContact{
		ApplicantID: applicantID,
		ContactName: input.ContactName,
		Relation:    input.Relation,
		ContactNum:  input.ContactNum,
		Address:     input.Address,
	}
	if err := s.applicantRepo.CreateEmergencyContact(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *applicantService) ListEmergencyContacts(ctx context.Context, applicantID string) ([]domain.EmergencyContact, error) {
	return s.applicantRepo.ListEmergencyContacts(ctx, applicantID)
}

func (s *applicantService) GetDonation(ctx context.Context, applicantID string) (*domain.Donation, error) {
	return s.donationRepo.GetByApplicant(ctx, applicantID)
}

// UpdateDonation replaces the pledged organ set, creating the pledge if
// none exists. Unknown organ codes are skipped; an empty valid set falls
// back to the all-organs sentinel.
func (s *applicantService) UpdateDonation(ctx context.Context, applicantID string, organIDs []string) (*domain.Donation, error) {
	var valid []string
	for _, code := range organIDs {
		if !domain.ValidOrganCode(code) {
			logger.Warn("skipping unknown organ code", "code", code)
			continue
		}
		valid = append(valid, code)
	}
	if len(valid) == 0 {
		valid = []string{domain.OrganAll}
	}

	donation, err := s.donationRepo.GetByApplicant(ctx, applicantID)
	if errors.Is(err, domain.ErrNotFound) {
		donation = &domain.Donation{ApplicantID: applicantID, OrganIDs: valid}
		if err := s.donationRepo.Create(ctx, donation); err != nil {
			return nil, err
		}
		return donation, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.donationRepo.ReplaceOrgans(ctx, donation.DonationID, valid); err != nil {
		return nil, err
	}
	donation.OrganIDs = valid
	return donation, nil
}
