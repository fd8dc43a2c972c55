package service

import (
	"context"
	"errors"
	"time"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/repository"
)

type appointmentService struct {
	apptRepo repository.AppointmentRepository
	appRepo  repository.ApplicationRepository
	refRepo  repository.ReferenceRepository
}

func NewAppointmentService(apptRepo repository.AppointmentRepository, appRepo repository.ApplicationRepository, refRepo repository.ReferenceRepository) AppointmentService {
	return &appointmentService{apptRepo: apptRepo, appRepo: appRepo, refRepo: refRepo}
}

// AvailableSlots returns the daily grid minus the slots already booked at
// the location.
func (s *appointmentService) AvailableSlots(ctx context.Context, locationID string, date time.Time) ([]string, error) {
	if _, err := s.refRepo.GetLocation(ctx, locationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Validationf("unknown location %q", locationID)
		}
		return nil, err
	}

	booked, err := s.apptRepo.ListBookedSlots(ctx, locationID, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}

	available := make([]string, 0, len(domain.AppointmentSlots))
	for _, slot := range domain.AppointmentSlots {
		if !taken[slot] {
			available = append(available, slot)
		}
	}
	return available, nil
}

func (s *appointmentService) Book(ctx context.Context, applicantID, applicationID, locationID string, date time.Time, slot string) (*domain.Appointment, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID != applicantID {
		return nil, domain.ErrForbidden
	}
	if err := s.validateSlot(ctx, locationID, date, slot); err != nil {
		return nil, err
	}

	// One active appointment per application.
	existing, err := s.apptRepo.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		if a.AppointmentStatus.Blocking() {
			return nil, domain.Conflictf("application %s already has an appointment on %s at %s",
				applicationID, a.AppointmentDate.Format("2006-01-02"), a.AppointmentTime)
		}
	}

	appointment := &domain.Appointment{
		ApplicationID:     applicationID,
		LocationID:        locationID,
		AppointmentDate:   date,
		AppointmentTime:   slot,
		AppointmentStatus: domain.AppointmentScheduled,
	}
	if err := s.apptRepo.Create(ctx, appointment); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflictf("slot %s on %s is already taken", slot, date.Format("2006-01-02"))
		}
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) Reschedule(ctx context.Context, applicantID, appointmentID, locationID string, date time.Time, slot string) (*domain.Appointment, error) {
	appointment, err := s.getOwned(ctx, applicantID, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.AppointmentStatus.Blocking() {
		return nil, domain.Conflictf("appointment %s is %s and cannot be rescheduled",
			appointmentID, appointment.AppointmentStatus)
	}
	if err := s.validateSlot(ctx, locationID, date, slot); err != nil {
		return nil, err
	}

	appointment.LocationID = locationID
	appointment.AppointmentDate = date
	appointment.AppointmentTime = slot
	appointment.AppointmentStatus = domain.AppointmentRescheduled
	if err := s.apptRepo.Update(ctx, appointment); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflictf("slot %s on %s is already taken", slot, date.Format("2006-01-02"))
		}
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) Cancel(ctx context.Context, applicantID, appointmentID string) error {
	appointment, err := s.getOwned(ctx, applicantID, appointmentID)
	if err != nil {
		return err
	}
	if !appointment.AppointmentStatus.Blocking() {
		return domain.Conflictf("appointment %s is %s and cannot be cancelled",
			appointmentID, appointment.AppointmentStatus)
	}
	appointment.AppointmentStatus = domain.AppointmentCancelled
	return s.apptRepo.Update(ctx, appointment)
}

func (s *appointmentService) Complete(ctx context.Context, admin *domain.Admin, appointmentID string) error {
	if admin == nil || !admin.IsActive {
		return domain.ErrForbidden
	}
	appointment, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !appointment.AppointmentStatus.Blocking() {
		return domain.Conflictf("appointment %s is %s and cannot be completed",
			appointmentID, appointment.AppointmentStatus)
	}
	appointment.AppointmentStatus = domain.AppointmentCompleted
	return s.apptRepo.Update(ctx, appointment)
}

func (s *appointmentService) ListForApplication(ctx context.Context, applicantID, applicationID string) ([]domain.Appointment, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID != applicantID {
		return nil, domain.ErrForbidden
	}
	return s.apptRepo.ListByApplication(ctx, applicationID)
}

func (s *appointmentService) getOwned(ctx context.Context, applicantID, appointmentID string) (*domain.Appointment, error) {
	appointment, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	app, err := s.appRepo.GetByID(ctx, appointment.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID != applicantID {
		return nil, domain.ErrForbidden
	}
	return appointment, nil
}

func (s *appointmentService) validateSlot(ctx context.Context, locationID string, date time.Time, slot string) error {
	if !domain.ValidSlot(slot) {
		return domain.Validationf("%q is not a bookable time slot", slot)
	}
	today := time.Now().Truncate(24 * time.Hour)
	if date.Before(today) {
		return domain.Validationf("appointment date %s is in the past", date.Format("2006-01-02"))
	}
	if _, err := s.refRepo.GetLocation(ctx, locationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Validationf("unknown location %q", locationID)
		}
		return err
	}
	return nil
}
