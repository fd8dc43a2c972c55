package service

import (
	"context"
	"time"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/logger"
	"madalto-backend/internal/repository"
)

type eligibilityService struct {
	appRepo                   repository.ApplicationRepository
	renewalWindowDays         int
	allowRenewalWithoutExpiry bool
	now                       func() time.Time
}

func NewEligibilityService(appRepo repository.ApplicationRepository, renewalWindowDays int, allowRenewalWithoutExpiry bool) EligibilityService {
	return &eligibilityService{
		appRepo:                   appRepo,
		renewalWindowDays:         renewalWindowDays,
		allowRenewalWithoutExpiry: allowRenewalWithoutExpiry,
		now:                       time.Now,
	}
}

// Check scans the applicant's full application history before allowing a
// new submission. The whole history is evaluated; the first blocking rule
// wins. It performs no writes.
func (s *eligibilityService) Check(ctx context.Context, applicantID string, appType domain.ApplicationType, licenseExpiry *time.Time) error {
	if !appType.Valid() {
		return domain.Validationf("unknown application type %q", appType)
	}

	existing, err := s.appRepo.ListByApplicant(ctx, applicantID)
	if err != nil {
		return err
	}

	for _, app := range existing {
		if app.ApplicationTypeID != appType {
			continue
		}
		switch {
		case app.ApplicationStatusID == domain.StatusRejected:
			// Reapplication after rejection is always permitted.
			continue
		case app.ApplicationStatusID.IsActive():
			return domain.Conflictf("an active %s application already exists (%s, status %s)",
				appType.Category(), app.ApplicationID, app.ApplicationStatusID.Description())
		case app.ApplicationStatusID == domain.StatusApproved:
			if err := s.checkApproved(appType, licenseExpiry); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *eligibilityService) checkApproved(appType domain.ApplicationType, licenseExpiry *time.Time) error {
	switch appType {
	case domain.TypeDuplicate:
		// Loss, damage or theft replacement is always allowed.
		return nil
	case domain.TypeNew:
		return domain.Conflictf("a new-license application was already approved; new applications are for first-time applicants only")
	case domain.TypeRenewal:
		if licenseExpiry == nil {
			if s.allowRenewalWithoutExpiry {
				logger.Warn("renewal allowed without expiry date on record")
				return nil
			}
			return domain.Conflictf("renewal requires the current license expiry date")
		}
		earliest := licenseExpiry.AddDate(0, 0, -s.renewalWindowDays)
		if s.now().Before(earliest) {
			return domain.Conflictf("renewal opens on %s (%d days before expiry)",
				earliest.Format("2006-01-02"), s.renewalWindowDays)
		}
		return nil
	}
	return nil
}
