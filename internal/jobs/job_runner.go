package jobs

import (
	"context"
	"database/sql"
	"time"

	"madalto-backend/internal/config"
	"madalto-backend/internal/domain"
	"madalto-backend/internal/logger"
	"madalto-backend/internal/repository/postgres"
	"madalto-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db     *sql.DB
	store  *postgres.Store
	email  service.EmailService
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:     db,
		store:  store,
		email:  email,
		config: cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// MarkMissedAppointments flips appointments that were still scheduled on
// past days to Missed, which frees their slots.
func (jr *JobRunner) MarkMissedAppointments() {
	jr.runWithRecovery("MarkMissedAppointments", func() {
		ctx := context.Background()
		today := time.Now().UTC().Truncate(24 * time.Hour)
		count, err := jr.store.MarkMissedBefore(ctx, today)
		if err != nil {
			logger.Error("Failed to mark missed appointments", "error", err)
			return
		}
		logger.Info("Marked missed appointments", "count", count)
	})
}

// SendAppointmentReminders emails everyone with an appointment tomorrow.
func (jr *JobRunner) SendAppointmentReminders() {
	jr.runWithRecovery("SendAppointmentReminders", func() {
		ctx := context.Background()
		tomorrow := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)

		appointments, err := jr.store.ListByDate(ctx, tomorrow,
			[]domain.AppointmentStatus{domain.AppointmentScheduled, domain.AppointmentRescheduled})
		if err != nil {
			logger.Error("Failed to list tomorrow's appointments", "error", err)
			return
		}

		sent := 0
		for _, appt := range appointments {
			app, err := jr.store.ApplicationRepository.GetByID(ctx, appt.ApplicationID)
			if err != nil {
				logger.Error("Failed to load application for reminder", "application_id", appt.ApplicationID, "error", err)
				continue
			}
			applicant, err := jr.store.GetByApplicantID(ctx, app.ApplicantID)
			if err != nil {
				logger.Error("Failed to load applicant for reminder", "applicant_id", app.ApplicantID, "error", err)
				continue
			}
			location, err := jr.store.GetLocation(ctx, appt.LocationID)
			if err != nil {
				logger.Error("Failed to load location for reminder", "location_id", appt.LocationID, "error", err)
				continue
			}

			err = jr.email.SendAppointmentReminder(ctx, applicant.Email, applicant.FullName(),
				location.LocationName, appt.AppointmentDate.Format("2006-01-02"), appt.AppointmentTime)
			if err != nil {
				logger.Error("Failed to send appointment reminder", "appointment_id", appt.AppointmentID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Sent appointment reminders", "sent", sent, "total", len(appointments))
	})
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.MarkMissedAppointments()
	jr.SendAppointmentReminders()
}
