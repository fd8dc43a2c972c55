package domain

import "time"

// ApplicationStatus is the persisted status code of a license application.
// The code set is closed; anything else is rejected at the boundary.
type ApplicationStatus string

const (
	StatusPending            ApplicationStatus = "ASID_PEN"
	StatusUnderReview        ApplicationStatus = "ASID_REV"
	StatusSubjectForApproval ApplicationStatus = "ASID_SFA"
	StatusForResubmission    ApplicationStatus = "ASID_RES"
	StatusApproved           ApplicationStatus = "ASID_APP"
	StatusRejected           ApplicationStatus = "ASID_REJ"
	StatusCompleted          ApplicationStatus = "ASID_COM"
)

var statusDescriptions = map[ApplicationStatus]string{
	StatusPending:            "Pending",
	StatusUnderReview:        "Under Review",
	StatusSubjectForApproval: "Subject for Approval",
	StatusForResubmission:    "For Resubmission",
	StatusApproved:           "Approved",
	StatusRejected:           "Rejected",
	StatusCompleted:          "Completed",
}

func (s ApplicationStatus) Valid() bool {
	_, ok := statusDescriptions[s]
	return ok
}

func (s ApplicationStatus) Description() string {
	return statusDescriptions[s]
}

// allowedTransitions is the closed transition table. Approved and Completed
// are terminal.
var allowedTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:            {StatusUnderReview, StatusApproved, StatusRejected},
	StatusUnderReview:        {StatusApproved, StatusRejected, StatusPending},
	StatusSubjectForApproval: {StatusApproved, StatusRejected},
	StatusForResubmission:    {StatusPending},
	StatusRejected:           {StatusPending},
	StatusApproved:           {},
	StatusCompleted:          {},
}

// CanTransition reports whether from -> to is an allowed status change.
// Unknown codes never transition.
func CanTransition(from, to ApplicationStatus) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// IsActiveStatus reports whether the status represents an in-flight
// application for eligibility purposes.
func (s ApplicationStatus) IsActive() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusSubjectForApproval, StatusForResubmission:
		return true
	}
	return false
}

type ApplicationType string

const (
	TypeNew       ApplicationType = "ATID_N"
	TypeRenewal   ApplicationType = "ATID_R"
	TypeDuplicate ApplicationType = "ATID_D"
)

var typeCategories = map[ApplicationType]string{
	TypeNew:       "New",
	TypeRenewal:   "Renewal",
	TypeDuplicate: "Duplicate",
}

func (t ApplicationType) Valid() bool {
	_, ok := typeCategories[t]
	return ok
}

func (t ApplicationType) Category() string {
	return typeCategories[t]
}

type ClutchType string

const (
	ClutchManual        ClutchType = "Manual"
	ClutchAutomatic     ClutchType = "Automatic"
	ClutchSemiAutomatic ClutchType = "Semi-automatic"
)

func (c ClutchType) Valid() bool {
	switch c {
	case ClutchManual, ClutchAutomatic, ClutchSemiAutomatic:
		return true
	}
	return false
}

// LicenseApplication is one license request instance. Status is mutated
// only through the transition engine; rejected applications persist for
// audit and reapplication history.
type LicenseApplication struct {
	ApplicationID          string            `json:"application_id"`
	ApplicantID            string            `json:"applicant_id"`
	ApplicationTypeID      ApplicationType   `json:"application_type_id"`
	ApplicationStatusID    ApplicationStatus `json:"application_status_id"`
	SubmissionDate         time.Time         `json:"submission_date"`
	LastUpdatedDate        time.Time         `json:"last_updated_date"`
	RejectionReason        *string           `json:"rejection_reason,omitempty"`
	AdditionalRequirements *string           `json:"additional_requirements,omitempty"`
}

// ApplicationStatusHistory is an append-only audit row; it is never updated
// or deleted.
type ApplicationStatusHistory struct {
	HistoryID           string            `json:"history_id"`
	ApplicationID       string            `json:"application_id"`
	ApplicationStatusID ApplicationStatus `json:"application_status_id"`
	StatusChangeDate    time.Time         `json:"status_change_date"`
	ChangedBy           string            `json:"changed_by"`
}

// ApplicationVehicleCategory links an application to a vehicle category
// with the clutch type selected for it.
type ApplicationVehicleCategory struct {
	AppVehicleID  string     `json:"app_vehicle_id"`
	ApplicationID string     `json:"application_id"`
	CategoryID    string     `json:"category_id"`
	ClutchType    ClutchType `json:"clutch_type"`
}
