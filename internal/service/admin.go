package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/logger"
	"madalto-backend/internal/repository"
)

type adminService struct {
	uow           repository.UnitOfWork
	appRepo       repository.ApplicationRepository
	applicantRepo repository.ApplicantRepository
	adminRepo     repository.AdminRepository
	emailSvc      EmailService
}

func NewAdminService(
	uow repository.UnitOfWork,
	appRepo repository.ApplicationRepository,
	applicantRepo repository.ApplicantRepository,
	adminRepo repository.AdminRepository,
	emailSvc EmailService,
) AdminService {
	return &adminService{
		uow:           uow,
		appRepo:       appRepo,
		applicantRepo: applicantRepo,
		adminRepo:     adminRepo,
		emailSvc:      emailSvc,
	}
}

// UpdateStatus applies one status transition. The transition table is the
// only authority on what is allowed. The status change, the history row
// and the approval side effects land in one transaction.
func (s *adminService) UpdateStatus(ctx context.Context, admin *domain.Admin, applicationID string, target domain.ApplicationStatus, rejectionReason, additionalRequirements *string) (*domain.LicenseApplication, error) {
	if admin == nil || !admin.IsActive {
		return nil, domain.ErrForbidden
	}
	if !target.Valid() {
		return nil, domain.Validationf("unknown status %q", target)
	}
	if target == domain.StatusRejected && (rejectionReason == nil || *rejectionReason == "") {
		return nil, domain.Validationf("a rejection reason is required")
	}

	var updated *domain.LicenseApplication
	var applicantEmail, applicantName string

	err := s.uow.WithinTx(ctx, func(tx *repository.Tx) error {
		app, err := tx.Applications.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if !domain.CanTransition(app.ApplicationStatusID, target) {
			return domain.Transitionf("%s -> %s is not allowed for application %s",
				app.ApplicationStatusID.Description(), target.Description(), applicationID)
		}

		if err := tx.Applications.UpdateStatus(ctx, applicationID, target, rejectionReason, additionalRequirements); err != nil {
			return err
		}

		history := &domain.ApplicationStatusHistory{
			ApplicationID:       applicationID,
			ApplicationStatusID: target,
			ChangedBy:           admin.AdminID,
		}
		if err := tx.Applications.CreateHistory(ctx, history); err != nil {
			return err
		}

		applicant, err := tx.Applicants.GetByApplicantID(ctx, app.ApplicantID)
		if err != nil {
			return err
		}
		applicantEmail = applicant.Email
		applicantName = applicant.FullName()

		// Approval verifies every submitted document and issues a license
		// number if the applicant has none yet.
		if target == domain.StatusApproved {
			if err := tx.Documents.VerifyAllForApplication(ctx, applicationID, admin.AdminID); err != nil {
				return err
			}
			if applicant.LicenseNumber == nil || *applicant.LicenseNumber == "" {
				number := generateLicenseNumber(applicant)
				if err := tx.Applicants.UpdateLicenseNumber(ctx, app.ApplicantID, number); err != nil {
					return err
				}
			}
		}

		app.ApplicationStatusID = target
		if rejectionReason != nil {
			app.RejectionReason = rejectionReason
		}
		updated = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "application status changed",
		"application_id", applicationID, "status", target, "admin_id", admin.AdminID)

	if s.emailSvc != nil && applicantEmail != "" {
		_ = s.emailSvc.SendStatusNotification(ctx, applicantEmail, applicantName, applicationID, target.Description(), rejectionReason)
	}
	return updated, nil
}

func (s *adminService) Approve(ctx context.Context, admin *domain.Admin, applicationID string) (*domain.LicenseApplication, error) {
	return s.UpdateStatus(ctx, admin, applicationID, domain.StatusApproved, nil, nil)
}

func (s *adminService) Reject(ctx context.Context, admin *domain.Admin, applicationID, reason string) (*domain.LicenseApplication, error) {
	return s.UpdateStatus(ctx, admin, applicationID, domain.StatusRejected, &reason, nil)
}

// BulkUpdateStatus applies the transition to each application
// independently. A failure on one does not stop or roll back the others.
func (s *adminService) BulkUpdateStatus(ctx context.Context, admin *domain.Admin, applicationIDs []string, target domain.ApplicationStatus, rejectionReason *string) []BulkStatusResult {
	results := make([]BulkStatusResult, 0, len(applicationIDs))
	for _, id := range applicationIDs {
		_, err := s.UpdateStatus(ctx, admin, id, target, rejectionReason, nil)
		result := BulkStatusResult{ApplicationID: id, Success: err == nil}
		if err != nil {
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

func (s *adminService) ListByStatus(ctx context.Context, statuses []domain.ApplicationStatus, page, pageSize int32) ([]domain.LicenseApplication, int32, error) {
	for _, status := range statuses {
		if !status.Valid() {
			return nil, 0, domain.Validationf("unknown status %q", status)
		}
	}
	if len(statuses) == 0 {
		statuses = []domain.ApplicationStatus{domain.StatusPending, domain.StatusUnderReview}
	}
	return s.appRepo.ListByStatus(ctx, statuses, page, pageSize)
}

func (s *adminService) ListByDateRange(ctx context.Context, start, end time.Time, page, pageSize int32) ([]domain.LicenseApplication, int32, error) {
	if end.Before(start) {
		return nil, 0, domain.Validationf("end date is before start date")
	}
	return s.appRepo.ListByDateRange(ctx, start, end, page, pageSize)
}

func (s *adminService) GetStatistics(ctx context.Context) (*domain.ApplicationStatistics, error) {
	return s.appRepo.GetStatistics(ctx, time.Now())
}

func (s *adminService) CreateAdmin(ctx context.Context, actor *domain.Admin, newAdmin *domain.Admin) error {
	if actor == nil || actor.Role != domain.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	if !newAdmin.Role.Valid() {
		return domain.Validationf("unknown admin role %q", newAdmin.Role)
	}
	newAdmin.IsActive = true
	return s.adminRepo.Create(ctx, newAdmin)
}

func (s *adminService) ListAdmins(ctx context.Context, actor *domain.Admin) ([]domain.Admin, error) {
	if actor == nil || actor.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	return s.adminRepo.List(ctx)
}

// generateLicenseNumber produces a number in the A12-34-567890 format. The
// leading letter comes from the family name so the number reads like the
// issuing series used on physical cards.
func generateLicenseNumber(applicant *domain.Applicant) string {
	letter := byte('N')
	if len(applicant.FamilyName) > 0 {
		c := applicant.FamilyName[0]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			letter = c
		}
	}
	year := time.Now().Year() % 100
	return fmt.Sprintf("%c%02d-%02d-%06d", letter, year, rand.Intn(100), rand.Intn(1000000))
}
