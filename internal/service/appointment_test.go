package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"madalto-backend/internal/domain"
)

func TestAppointmentService_AvailableSlots(t *testing.T) {
	ctx := context.Background()
	date := time.Now().AddDate(0, 0, 7)

	t.Run("full grid when nothing is booked", func(t *testing.T) {
		apptRepo := new(MockAppointmentRepo)
		refRepo := new(MockReferenceRepo)
		svc := NewAppointmentService(apptRepo, new(MockApplicationRepo), refRepo)

		refRepo.On("GetLocation", ctx, "LCTID_001").Return(&domain.Location{LocationID: "LCTID_001"}, nil)
		apptRepo.On("ListBookedSlots", ctx, "LCTID_001", date).Return([]string{}, nil)

		slots, err := svc.AvailableSlots(ctx, "LCTID_001", date)
		assert.NoError(t, err)
		assert.Len(t, slots, 14)
		assert.Contains(t, slots, "09:00")
		assert.Contains(t, slots, "16:30")
		assert.NotContains(t, slots, "12:00")
		assert.NotContains(t, slots, "12:30")
	})

	t.Run("booked slots are removed", func(t *testing.T) {
		apptRepo := new(MockAppointmentRepo)
		refRepo := new(MockReferenceRepo)
		svc := NewAppointmentService(apptRepo, new(MockApplicationRepo), refRepo)

		refRepo.On("GetLocation", ctx, "LCTID_001").Return(&domain.Location{LocationID: "LCTID_001"}, nil)
		apptRepo.On("ListBookedSlots", ctx, "LCTID_001", date).Return([]string{"09:00", "14:30"}, nil)

		slots, err := svc.AvailableSlots(ctx, "LCTID_001", date)
		assert.NoError(t, err)
		assert.Len(t, slots, 12)
		assert.NotContains(t, slots, "09:00")
		assert.NotContains(t, slots, "14:30")
	})

	t.Run("unknown location fails", func(t *testing.T) {
		apptRepo := new(MockAppointmentRepo)
		refRepo := new(MockReferenceRepo)
		svc := NewAppointmentService(apptRepo, new(MockApplicationRepo), refRepo)

		refRepo.On("GetLocation", ctx, "LCTID_999").Return(nil, domain.ErrNotFound)

		_, err := svc.AvailableSlots(ctx, "LCTID_999", date)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestAppointmentService_Book(t *testing.T) {
	ctx := context.Background()
	date := time.Now().AddDate(0, 0, 7)
	appID := "APPID_000001"
	applicantID := "APP_000001"

	ownedApp := &domain.LicenseApplication{ApplicationID: appID, ApplicantID: applicantID}

	t.Run("books a free slot", func(t *testing.T) {
		apptRepo := new(MockAppointmentRepo)
		appRepo := new(MockApplicationRepo)
		refRepo := new(MockReferenceRepo)
		svc := NewAppointmentService(apptRepo, appRepo, refRepo)

		appRepo.On("GetByID", ctx, appID).Return(ownedApp, nil)
		refRepo.On("GetLocation", ctx, "LCTID_001").Return(&domain.Location{LocationID: "LCTID_001"}, nil)
		apptRepo.On("ListByApplication", ctx, appID).Return([]domain.Appointment{}, nil)
		apptRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Appointment) bool {
			return a.AppointmentStatus == domain.AppointmentScheduled && a.AppointmentTime == "09:30"
		})).Return(nil)

		appt, err := svc.Book(ctx, applicantID, appID, "LCTID_001", date, "09:30")
		assert.NoError(t, err)
		assert.Equal(t, domain.AppointmentScheduled, appt.AppointmentStatus)
	})

	t.Run("someone else's application is forbidden", func(t *testing.T) {
		apptRepo := new(MockAppointmentRepo)
		appRepo := new(MockApplicationRepo)
		svc := NewAppointmentService(apptRepo, appRepo, new(MockReferenceRepo))

		appRepo.On("GetByID", ctx, appID).Return(ownedApp, nil)

		_, err := svc.Book(ctx, "APP_OTHER", appID, "LCTID_001", date, "09:30")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("lunch hour is not bookable", func(t *testing.T) {
		apptRepo := new(MockAppointmentRepo)
		appRepo := new(MockApplicationRepo)
		svc := NewAppointmentService(apptRepo, appRepo, new(MockReferenceRepo))

		appRepo.On("GetByID", ctx, appID).Return(ownedApp, nil)

		_, err := svc.Book(ctx, applicantID, appID, "LCTID_001", date, "12:00")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("past date is not bookable", func(t *testing.T) {
		apptRepo := new(MockAppointmentRepo)
		appRepo := new(MockApplicationRepo)
		svc := NewAppointmentService(apptRepo, appRepo, new(MockReferenceRepo))

		appRepo.On("GetByID", ctx, appID).Return(ownedApp, nil)

		_, err := svc.Book(ctx, applicantID, appID, "LCTID_001", time.Now().AddDate(0, 0, -1), "09:30")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("second active appointment is a conflict", func(t *testing.T) {
		apptRepo := new(MockAppointmentRepo)
		appRepo := new(MockApplicationRepo)
		refRepo := new(MockReferenceRepo)
		svc := NewAppointmentService(apptRepo, appRepo, refRepo)

		appRepo.On("GetByID", ctx, appID).Return(ownedApp, nil)
		refRepo.On("GetLocation", ctx, "LCTID_001").Return(&domain.Location{LocationID: "LCTID_001"}, nil)
		apptRepo.On("ListByApplication", ctx, appID).Return([]domain.Appointment{
			{AppointmentID: "APNID_000001", AppointmentStatus: domain.AppointmentScheduled, AppointmentDate: date, AppointmentTime: "10:00"},
		}, nil)

		_, err := svc.Book(ctx, applicantID, appID, "LCTID_001", date, "09:30")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("cancelled appointment does not block a new booking", func(t *testing.T) {
		apptRepo := new(MockAppointmentRepo)
		appRepo := new(MockApplicationRepo)
		refRepo := new(MockReferenceRepo)
		svc := NewAppointmentService(apptRepo, appRepo, refRepo)

		appRepo.On("GetByID", ctx, appID).Return(ownedApp, nil)
		refRepo.On("GetLocation", ctx, "LCTID_001").Return(&domain.Location{LocationID: "LCTID_001"}, nil)
		apptRepo.On("ListByApplication", ctx, appID).Return([]domain.Appointment{
			{AppointmentStatus: domain.AppointmentCancelled},
			{AppointmentStatus: domain.AppointmentMissed},
		}, nil)
		apptRepo.On("Create", ctx, mock.Anything).Return(nil)

		_, err := svc.Book(ctx, applicantID, appID, "LCTID_001", date, "09:30")
		assert.NoError(t, err)
	})

	t.Run("slot race maps to a friendly conflict", func(t *testing.T) {
		apptRepo := new(MockAppointmentRepo)
		appRepo := new(MockApplicationRepo)
		refRepo := new(MockReferenceRepo)
		svc := NewAppointmentService(apptRepo, appRepo, refRepo)

		appRepo.On("GetByID", ctx, appID).Return(ownedApp, nil)
		refRepo.On("GetLocation", ctx, "LCTID_001").Return(&domain.Location{LocationID: "LCTID_001"}, nil)
		apptRepo.On("ListByApplication", ctx, appID).Return([]domain.Appointment{}, nil)
		apptRepo.On("Create", ctx, mock.Anything).Return(domain.Conflictf("duplicate key"))

		_, err := svc.Book(ctx, applicantID, appID, "LCTID_001", date, "09:30")
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Contains(t, err.Error(), "already taken")
	})
}

func TestAppointmentService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	date := time.Now().AddDate(0, 0, 7)
	applicantID := "APP_000001"
	apptID := "APNID_000001"

	scheduled := func() *domain.Appointment {
		return &domain.Appointment{
			AppointmentID:     apptID,
			ApplicationID:     "APPID_000001",
			LocationID:        "LCTID_001",
			AppointmentDate:   date,
			AppointmentTime:   "09:30",
			AppointmentStatus: domain.AppointmentScheduled,
		}
	}
	ownedApp := &domain.LicenseApplication{ApplicationID: "APPID_000001", ApplicantID: applicantID}

	t.Run("reschedule moves and marks", func(t *testing.T) {
		apptRepo := new(MockAppointmentRepo)
		appRepo := new(MockApplicationRepo)
		refRepo := new(MockReferenceRepo)
		svc := NewAppointmentService(apptRepo, appRepo, refRepo)

		apptRepo.On("GetByID", ctx, apptID).Return(scheduled(), nil)
		appRepo.On("GetByID", ctx, "APPID_000001").Return(ownedApp, nil)
		refRepo.On("GetLocation", ctx, "LCTID_002").Return(&domain.Location{LocationID: "LCTID_002"}, nil)
		apptRepo.On("Update", ctx, mock.MatchedBy(func(a *domain.Appointment) bool {
			return a.AppointmentStatus == domain.AppointmentRescheduled &&
				a.LocationID == "LCTID_002" && a.AppointmentTime == "15:00"
		})).Return(nil)

		appt, err := svc.Reschedule(ctx, applicantID, apptID, "LCTID_002", date.AddDate(0, 0, 1), "15:00")
		assert.NoError(t, err)
		assert.Equal(t, domain.AppointmentRescheduled, appt.AppointmentStatus)
	})

	t.Run("completed appointment cannot be rescheduled", func(t *testing.T) {
		apptRepo := new(MockAppointmentRepo)
		appRepo := new(MockApplicationRepo)
		svc := NewAppointmentService(apptRepo, appRepo, new(MockReferenceRepo))

		done := scheduled()
		done.AppointmentStatus = domain.AppointmentCompleted
		apptRepo.On("GetByID", ctx, apptID).Return(done, nil)
		appRepo.On("GetByID", ctx, "APPID_000001").Return(ownedApp, nil)

		_, err := svc.Reschedule(ctx, applicantID, apptID, "LCTID_001", date, "09:30")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("cancel flips the status", func(t *testing.T) {
		apptRepo := new(MockAppointmentRepo)
		appRepo := new(MockApplicationRepo)
		svc := NewAppointmentService(apptRepo, appRepo, new(MockReferenceRepo))

		apptRepo.On("GetByID", ctx, apptID).Return(scheduled(), nil)
		appRepo.On("GetByID", ctx, "APPID_000001").Return(ownedApp, nil)
		apptRepo.On("Update", ctx, mock.MatchedBy(func(a *domain.Appointment) bool {
			return a.AppointmentStatus == domain.AppointmentCancelled
		})).Return(nil)

		assert.NoError(t, svc.Cancel(ctx, applicantID, apptID))
	})

	t.Run("complete requires an active admin", func(t *testing.T) {
		apptRepo := new(MockAppointmentRepo)
		svc := NewAppointmentService(apptRepo, new(MockApplicationRepo), new(MockReferenceRepo))

		err := svc.Complete(ctx, nil, apptID)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		apptRepo.On("GetByID", ctx, apptID).Return(scheduled(), nil)
		apptRepo.On("Update", ctx, mock.MatchedBy(func(a *domain.Appointment) bool {
			return a.AppointmentStatus == domain.AppointmentCompleted
		})).Return(nil)
		assert.NoError(t, svc.Complete(ctx, activeAdmin(), apptID))
	})
}
