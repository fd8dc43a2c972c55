package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"madalto-backend/internal/domain"
)

func newEligibilityForTest(appRepo *MockApplicationRepo, allowWithoutExpiry bool, now time.Time) *eligibilityService {
	return &eligibilityService{
		appRepo:                   appRepo,
		renewalWindowDays:         60,
		allowRenewalWithoutExpiry: allowWithoutExpiry,
		now:                       func() time.Time { return now },
	}
}

func TestEligibilityService_Check(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	applicantID := "APP_000001"

	history := func(apps ...domain.LicenseApplication) *MockApplicationRepo {
		repo := new(MockApplicationRepo)
		repo.On("ListByApplicant", ctx, applicantID).Return(apps, nil)
		return repo
	}

	t.Run("unknown type is a validation error", func(t *testing.T) {
		svc := newEligibilityForTest(new(MockApplicationRepo), false, now)
		err := svc.Check(ctx, applicantID, domain.ApplicationType("ATID_X"), nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("empty history allows any type", func(t *testing.T) {
		svc := newEligibilityForTest(history(), false, now)
		assert.NoError(t, svc.Check(ctx, applicantID, domain.TypeNew, nil))
	})

	t.Run("active same-type application blocks", func(t *testing.T) {
		repo := history(domain.LicenseApplication{
			ApplicationID:       "APPID_000001",
			ApplicationTypeID:   domain.TypeNew,
			ApplicationStatusID: domain.StatusUnderReview,
		})
		svc := newEligibilityForTest(repo, false, now)
		err := svc.Check(ctx, applicantID, domain.TypeNew, nil)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("active application of another type does not block", func(t *testing.T) {
		repo := history(domain.LicenseApplication{
			ApplicationTypeID:   domain.TypeNew,
			ApplicationStatusID: domain.StatusPending,
		})
		svc := newEligibilityForTest(repo, false, now)
		assert.NoError(t, svc.Check(ctx, applicantID, domain.TypeDuplicate, nil))
	})

	t.Run("rejected same-type application allows reapplication", func(t *testing.T) {
		repo := history(domain.LicenseApplication{
			ApplicationTypeID:   domain.TypeNew,
			ApplicationStatusID: domain.StatusRejected,
		})
		svc := newEligibilityForTest(repo, false, now)
		assert.NoError(t, svc.Check(ctx, applicantID, domain.TypeNew, nil))
	})

	t.Run("approved new blocks another new", func(t *testing.T) {
		repo := history(domain.LicenseApplication{
			ApplicationTypeID:   domain.TypeNew,
			ApplicationStatusID: domain.StatusApproved,
		})
		svc := newEligibilityForTest(repo, false, now)
		err := svc.Check(ctx, applicantID, domain.TypeNew, nil)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("approved duplicate always allows replacement", func(t *testing.T) {
		repo := history(domain.LicenseApplication{
			ApplicationTypeID:   domain.TypeDuplicate,
			ApplicationStatusID: domain.StatusApproved,
		})
		svc := newEligibilityForTest(repo, false, now)
		assert.NoError(t, svc.Check(ctx, applicantID, domain.TypeDuplicate, nil))
	})

	t.Run("renewal inside the window allows", func(t *testing.T) {
		repo := history(domain.LicenseApplication{
			ApplicationTypeID:   domain.TypeRenewal,
			ApplicationStatusID: domain.StatusApproved,
		})
		svc := newEligibilityForTest(repo, false, now)
		expiry := now.AddDate(0, 0, 59)
		assert.NoError(t, svc.Check(ctx, applicantID, domain.TypeRenewal, &expiry))
	})

	t.Run("renewal on the window boundary allows", func(t *testing.T) {
		repo := history(domain.LicenseApplication{
			ApplicationTypeID:   domain.TypeRenewal,
			ApplicationStatusID: domain.StatusApproved,
		})
		svc := newEligibilityForTest(repo, false, now)
		expiry := now.AddDate(0, 0, 60)
		assert.NoError(t, svc.Check(ctx, applicantID, domain.TypeRenewal, &expiry))
	})

	t.Run("renewal before the window opens blocks", func(t *testing.T) {
		repo := history(domain.LicenseApplication{
			ApplicationTypeID:   domain.TypeRenewal,
			ApplicationStatusID: domain.StatusApproved,
		})
		svc := newEligibilityForTest(repo, false, now)
		expiry := now.AddDate(0, 0, 61)
		err := svc.Check(ctx, applicantID, domain.TypeRenewal, &expiry)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("renewal without expiry blocks by default", func(t *testing.T) {
		repo := history(domain.LicenseApplication{
			ApplicationTypeID:   domain.TypeRenewal,
			ApplicationStatusID: domain.StatusApproved,
		})
		svc := newEligibilityForTest(repo, false, now)
		err := svc.Check(ctx, applicantID, domain.TypeRenewal, nil)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("renewal without expiry allowed when configured", func(t *testing.T) {
		repo := history(domain.LicenseApplication{
			ApplicationTypeID:   domain.TypeRenewal,
			ApplicationStatusID: domain.StatusApproved,
		})
		svc := newEligibilityForTest(repo, true, now)
		assert.NoError(t, svc.Check(ctx, applicantID, domain.TypeRenewal, nil))
	})

	t.Run("rejected then active still blocks", func(t *testing.T) {
		repo := history(
			domain.LicenseApplication{
				ApplicationTypeID:   domain.TypeNew,
				ApplicationStatusID: domain.StatusRejected,
			},
			domain.LicenseApplication{
				ApplicationTypeID:   domain.TypeNew,
				ApplicationStatusID: domain.StatusPending,
			},
		)
		svc := newEligibilityForTest(repo, false, now)
		err := svc.Check(ctx, applicantID, domain.TypeNew, nil)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}
