package domain

import (
	"fmt"
	"time"
)

// AppointmentStatus is the lifecycle state of a scheduled visit.
type AppointmentStatus string

const (
	AppointmentScheduled   AppointmentStatus = "Scheduled"
	AppointmentRescheduled AppointmentStatus = "Reschedule"
	AppointmentCompleted   AppointmentStatus = "Completed"
	AppointmentCancelled   AppointmentStatus = "Cancelled"
	AppointmentMissed      AppointmentStatus = "Missed"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentRescheduled, AppointmentCompleted,
		AppointmentCancelled, AppointmentMissed:
		return true
	}
	return false
}

// Blocking reports whether an appointment in this status occupies its slot.
// Cancelled and missed appointments free the slot for rebooking.
func (s AppointmentStatus) Blocking() bool {
	return s == AppointmentScheduled || s == AppointmentRescheduled
}

// Appointment books one half-hour slot at a location for an application.
type Appointment struct {
	AppointmentID     string            `json:"appointment_id"`
	ApplicationID     string            `json:"application_id"`
	LocationID        string            `json:"location_id"`
	AppointmentDate   time.Time         `json:"appointment_date"`
	AppointmentTime   string            `json:"appointment_time"`
	AppointmentStatus AppointmentStatus `json:"appointment_status"`
	CreatedOn         time.Time         `json:"created_on"`
	UpdatedOn         time.Time         `json:"updated_on"`
}

// AppointmentSlots is the fixed daily grid: half hours from 09:00 through
// 16:30, minus the 12:00 and 12:30 lunch break.
var AppointmentSlots = buildSlots()

func buildSlots() []string {
	var slots []string
	for h := 9; h <= 16; h++ {
		if h == 12 {
			continue
		}
		slots = append(slots, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	return slots
}

var slotSet = func() map[string]bool {
	m := make(map[string]bool, len(AppointmentSlots))
	for _, s := range AppointmentSlots {
		m[s] = true
	}
	return m
}()

// ValidSlot reports whether t is one of the bookable half-hour times.
func ValidSlot(t string) bool {
	return slotSet[t]
}

// SlotInstant combines an appointment date and slot time into a point in
// time within the given location's zone.
func SlotInstant(date time.Time, slot string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", slot, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
