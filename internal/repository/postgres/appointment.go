package postgres

import (
	"context"
	"time"

	"github.com/lib/pq"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/repository"
)

type appointmentRepository struct {
	db DBTX
}

func NewAppointmentRepository(db DBTX) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

const appointmentColumns = `appointment_id, application_id, location_id, appointment_date, appointment_time, appointment_status, created_on, updated_on`

func (r *appointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	query := `INSERT INTO appointment (application_id, location_id, appointment_date, appointment_time, appointment_status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING appointment_id`
	now := time.Now()
	a.CreatedOn = now
	a.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query, a.ApplicationID, a.LocationID, a.AppointmentDate, a.AppointmentTime, a.AppointmentStatus, now, now).Scan(&a.AppointmentID)
	return translateErr(err)
}

func (r *appointmentRepository) GetByID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointment WHERE appointment_id = $1`
	a := &domain.Appointment{}
	err := r.db.QueryRowContext(ctx, query, appointmentID).Scan(
		&a.AppointmentID, &a.ApplicationID, &a.LocationID, &a.AppointmentDate,
		&a.AppointmentTime, &a.AppointmentStatus, &a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return a, nil
}

func (r *appointmentRepository) ListByApplication(ctx context.Context, applicationID string) ([]domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointment WHERE application_id = $1 ORDER BY appointment_date DESC, appointment_time DESC`
	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(&a.AppointmentID, &a.ApplicationID, &a.LocationID, &a.AppointmentDate,
			&a.AppointmentTime, &a.AppointmentStatus, &a.CreatedOn, &a.UpdatedOn); err != nil {
			return nil, translateErr(err)
		}
		appointments = append(appointments, a)
	}
	return appointments, nil
}

// ListBookedSlots returns the times already taken at a location on a date.
// Only statuses that block the slot count.
func (r *appointmentRepository) ListBookedSlots(ctx context.Context, locationID string, date time.Time) ([]string, error) {
	query := `SELECT appointment_time FROM appointment WHERE location_id = $1 AND appointment_date = $2 AND appointment_status IN ('Scheduled', 'Reschedule')`
	rows, err := r.db.QueryContext(ctx, query, locationID, date)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, translateErr(err)
		}
		slots = append(slots, t)
	}
	return slots, nil
}

func (r *appointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	query := `UPDATE appointment SET location_id=$1, appointment_date=$2, appointment_time=$3, appointment_status=$4, updated_on=$5 WHERE appointment_id=$6`
	a.UpdatedOn = time.Now()
	result, err := r.db.ExecContext(ctx, query, a.LocationID, a.AppointmentDate, a.AppointmentTime, a.AppointmentStatus, a.UpdatedOn, a.AppointmentID)
	if err != nil {
		return translateErr(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("appointment %s", a.AppointmentID)
	}
	return nil
}

func (r *appointmentRepository) ListByDate(ctx context.Context, date time.Time, statuses []domain.AppointmentStatus) ([]domain.Appointment, error) {
	codes := make([]string, len(statuses))
	for i, s := range statuses {
		codes[i] = string(s)
	}
	query := `SELECT ` + appointmentColumns + ` FROM appointment WHERE appointment_date = $1 AND appointment_status = ANY($2) ORDER BY appointment_time`
	rows, err := r.db.QueryContext(ctx, query, date, pq.Array(codes))
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(&a.AppointmentID, &a.ApplicationID, &a.LocationID, &a.AppointmentDate,
			&a.AppointmentTime, &a.AppointmentStatus, &a.CreatedOn, &a.UpdatedOn); err != nil {
			return nil, translateErr(err)
		}
		appointments = append(appointments, a)
	}
	return appointments, nil
}

// MarkMissedBefore flips still-scheduled appointments from past days to
// Missed. Used by the nightly job.
func (r *appointmentRepository) MarkMissedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `UPDATE appointment SET appointment_status='Missed', updated_on=$1 WHERE appointment_date < $2 AND appointment_status IN ('Scheduled', 'Reschedule')`
	result, err := r.db.ExecContext(ctx, query, time.Now(), cutoff)
	if err != nil {
		return 0, translateErr(err)
	}
	return result.RowsAffected()
}
