package service

import (
	"context"
	"io"
	"time"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/identity"
)

// LoginResult is the outcome of a verified login. The role flags tell
// the client which surface to route the user to.
type LoginResult struct {
	Tokens              *identity.Tokens `json:"tokens"`
	IsAdmin             bool             `json:"is_admin"`
	HasApplicantProfile bool             `json:"has_applicant_profile"`
}

type AuthService interface {
	RequestSignupOTP(ctx context.Context, email, password string) error
	VerifySignupOTP(ctx context.Context, email, code string) (*identity.Tokens, error)
	RequestLoginOTP(ctx context.Context, email, password string) error
	VerifyLoginOTP(ctx context.Context, email, password, code string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refresh string) (*identity.Tokens, error)
	Authenticate(ctx context.Context, bearerToken string) (*identity.Identity, error)
}

// IdentityService resolves a verified external identity onto internal
// records.
type IdentityService interface {
	ResolveApplicant(ctx context.Context, ident *identity.Identity) (*domain.Applicant, error)
	ResolveAdmin(ctx context.Context, ident *identity.Identity) (*domain.Admin, error)
}

// EligibilityService decides whether an applicant may submit an
// application of the requested type. A nil error means ALLOW; a BLOCK
// comes back as ErrConflict with the reason in the message.
type EligibilityService interface {
	Check(ctx context.Context, applicantID string, appType domain.ApplicationType, licenseExpiry *time.Time) error
}

// PersonalInfo is the applicant profile payload of a composite submission.
type PersonalInfo struct {
	FamilyName            string                       `json:"family_name"`
	FirstName             string                       `json:"first_name"`
	MiddleName            *string                      `json:"middle_name,omitempty"`
	Address               string                       `json:"address"`
	ContactNum            string                       `json:"contact_num"`
	Nationality           string                       `json:"nationality"`
	Birthdate             *time.Time                   `json:"birthdate,omitempty"`
	Birthplace            string                       `json:"birthplace"`
	Height                float64                      `json:"height"`
	Weight                float64                      `json:"weight"`
	EyeColor              string                       `json:"eye_color"`
	CivilStatus           domain.CivilStatus           `json:"civil_status"`
	EducationalAttainment domain.EducationalAttainment `json:"educational_attainment"`
	BloodType             string                       `json:"blood_type"`
	Sex                   domain.Sex                   `json:"sex"`
	IsOrganDonor          bool                         `json:"is_organ_donor"`
}

type EmergencyContactInput struct {
	ContactName string `json:"contact_name"`
	Relation    string `json:"relation"`
	ContactNum  string `json:"contact_num"`
	Address     string `json:"address"`
}

type EmploymentInput struct {
	EmployerName    string `json:"employer_name"`
	EmployerAddress string `json:"employer_address"`
	Occupation      string `json:"occupation"`
}

type FamilyInput struct {
	RelationType string  `json:"relation_type"`
	FamilyName   string  `json:"family_name"`
	FirstName    string  `json:"first_name"`
	MiddleName   *string `json:"middle_name,omitempty"`
	IsDeceased   bool    `json:"is_deceased"`
}

type DocumentInput struct {
	DocumentName string `json:"document_name"`
	FileKey      string `json:"file_key,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
}

// LicenseDetails carries an existing license number for renewal and
// duplicate applications.
type LicenseDetails struct {
	LicenseNumber string     `json:"license_number"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
}

// SubmitApplicationRequest is the full composite submission payload.
type SubmitApplicationRequest struct {
	PersonalInfo      PersonalInfo            `json:"personal_info"`
	ApplicationTypeID domain.ApplicationType  `json:"application_type_id"`
	VehicleCategories []string                `json:"vehicle_categories"`
	ClutchTypes       []domain.ClutchType     `json:"clutch_types"`
	Acquisition       string                  `json:"acquisition,omitempty"`
	Conditions        []string                `json:"conditions,omitempty"`
	EmergencyContacts []EmergencyContactInput `json:"emergency_contacts,omitempty"`
	Employment        []EmploymentInput       `json:"employment,omitempty"`
	Family            []FamilyInput           `json:"family,omitempty"`
	Documents         []DocumentInput         `json:"documents,omitempty"`
	Organs            []string                `json:"organs,omitempty"`
	LicenseDetails    *LicenseDetails         `json:"license_details,omitempty"`
}

// SubmitApplicationResult reports the created application and the child
// record counts, so the client can confirm what was written.
type SubmitApplicationResult struct {
	ApplicationID     string `json:"application_id"`
	ApplicantID       string `json:"applicant_id"`
	VehicleCategories int    `json:"vehicle_categories"`
	Conditions        int    `json:"conditions"`
	EmergencyContacts int    `json:"emergency_contacts"`
	Employment        int    `json:"employment"`
	Family            int    `json:"family"`
	Documents         int    `json:"documents"`
	Organs            int    `json:"organs"`
}

// ApplicationDetail is an application with its child records attached.
type ApplicationDetail struct {
	Application       domain.LicenseApplication           `json:"application"`
	VehicleCategories []domain.ApplicationVehicleCategory `json:"vehicle_categories"`
	History           []domain.ApplicationStatusHistory   `json:"history"`
	Documents         []domain.Document                   `json:"documents"`
	DrivingSkill      *domain.DrivingSkill                `json:"driving_skill,omitempty"`
	Conditions        []domain.LicenseCondition           `json:"conditions,omitempty"`
	Appointments      []domain.Appointment                `json:"appointments,omitempty"`
}

type ApplicationService interface {
	Submit(ctx context.Context, uuid, email string, req *SubmitApplicationRequest) (*SubmitApplicationResult, error)
	Get(ctx context.Context, applicantID, applicationID string) (*ApplicationDetail, error)
	ListMine(ctx context.Context, applicantID string) ([]domain.LicenseApplication, error)
}

// BulkStatusResult is one entry of a bulk status change outcome. Failures
// do not stop the rest of the batch.
type BulkStatusResult struct {
	ApplicationID string `json:"application_id"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
}

type AdminService interface {
	UpdateStatus(ctx context.Context, admin *domain.Admin, applicationID string, target domain.ApplicationStatus, rejectionReason, additionalRequirements *string) (*domain.LicenseApplication, error)
	Approve(ctx context.Context, admin *domain.Admin, applicationID string) (*domain.LicenseApplication, error)
	Reject(ctx context.Context, admin *domain.Admin, applicationID, reason string) (*domain.LicenseApplication, error)
	BulkUpdateStatus(ctx context.Context, admin *domain.Admin, applicationIDs []string, target domain.ApplicationStatus, rejectionReason *string) []BulkStatusResult
	ListByStatus(ctx context.Context, statuses []domain.ApplicationStatus, page, pageSize int32) ([]domain.LicenseApplication, int32, error)
	ListByDateRange(ctx context.Context, start, end time.Time, page, pageSize int32) ([]domain.LicenseApplication, int32, error)
	GetStatistics(ctx context.Context) (*domain.ApplicationStatistics, error)
	CreateAdmin(ctx context.Context, actor *domain.Admin, newAdmin *domain.Admin) error
	ListAdmins(ctx context.Context, actor *domain.Admin) ([]domain.Admin, error)
}

// DocumentVerifyResult is one entry of a bulk verification outcome.
type DocumentVerifyResult struct {
	DocumentID string `json:"document_id"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

type DocumentService interface {
	Upload(ctx context.Context, applicantID, applicationID, documentName string, content io.Reader, contentType string) (*domain.Document, error)
	Checklist(ctx context.Context, applicationID string) ([]domain.DocumentChecklistEntry, error)
	Download(ctx context.Context, applicantID, documentID string) (*domain.Document, io.ReadCloser, error)
	Delete(ctx context.Context, applicantID, documentID string) error
	Verify(ctx context.Context, admin *domain.Admin, documentID string, verified bool) error
	ListPendingVerification(ctx context.Context, admin *domain.Admin) ([]domain.Document, error)
	BulkVerify(ctx context.Context, admin *domain.Admin, documentIDs []string, verified bool) []DocumentVerifyResult
}

type AppointmentService interface {
	AvailableSlots(ctx context.Context, locationID string, date time.Time) ([]string, error)
	Book(ctx context.Context, applicantID, applicationID, locationID string, date time.Time, slot string) (*domain.Appointment, error)
	Reschedule(ctx context.Context, applicantID, appointmentID, locationID string, date time.Time, slot string) (*domain.Appointment, error)
	Cancel(ctx context.Context, applicantID, appointmentID string) error
	Complete(ctx context.Context, admin *domain.Admin, appointmentID string) error
	ListForApplication(ctx context.Context, applicantID, applicationID string) ([]domain.Appointment, error)
}

// ApplicantProfile bundles the applicant with their child records.
type ApplicantProfile struct {
	Applicant         domain.Applicant           `json:"applicant"`
	EmergencyContacts []domain.EmergencyContact  `json:"emergency_contacts,omitempty"`
	Employment        []domain.Employment        `json:"employment,omitempty"`
	Family            []domain.FamilyInformation `json:"family,omitempty"`
	Donation          *domain.Donation           `json:"donation,omitempty"`
}

type ApplicantService interface {
	GetProfile(ctx context.Context, applicantID string) (*ApplicantProfile, error)
	UpdateProfile(ctx context.Context, applicantID string, info *PersonalInfo) (*domain.Applicant, error)
	GetDonation(ctx context.Context, applicantID string) (*domain.Donation, error)
	UpdateDonation(ctx context.Context, applicantID string, organIDs []string) (*domain.Donation, error)
	AddFamilyMember(ctx context.Context, applicantID string, input *FamilyInput) (*domain.FamilyInformation, error)
	ListFamily(ctx context.Context, applicantID string) ([]domain.FamilyInformation, error)
	AddEmployment(ctx context.Context, applicantID string, input *EmploymentInput) (*domain.Employment, error)
	ListEmployment(ctx context.Context, applicantID string) ([]domain.Employment, error)
	AddEmergencyContact(ctx context.Context, applicantID string, input *EmergencyContactInput) (*domain.EmergencyContact, error)
	ListEmergencyContacts(ctx context.Context, applicantID string) ([]domain.EmergencyContact, error)
}

type ReferenceService interface {
	VehicleCategories(ctx context.Context) ([]domain.VehicleCategory, error)
	Locations(ctx context.Context) ([]domain.Location, error)
	Organs(ctx context.Context) ([]domain.Organ, error)
	ApplicationTypes(ctx context.Context) ([]domain.ApplicationTypeRef, error)
	ApplicationStatuses(ctx context.Context) ([]domain.ApplicationStatusRef, error)
	ConditionTypes(ctx context.Context) ([]domain.LicenseConditionType, error)
}

type EmailService interface {
	SendOTP(ctx context.Context, email, code string, expiry time.Duration) error
	SendStatusNotification(ctx context.Context, email, name, applicationID, statusDescription string, reason *string) error
	SendAppointmentReminder(ctx context.Context, email, name, locationName, date, slot string) error
}
