package domain

import (
	"regexp"
	"time"
)

type CivilStatus string

const (
	CivilStatusMarried   CivilStatus = "Married"
	CivilStatusSingle    CivilStatus = "Single"
	CivilStatusWidowed   CivilStatus = "Widowed"
	CivilStatusSeparated CivilStatus = "Separated"
)

type EducationalAttainment string

const (
	EducationPostgraduate EducationalAttainment = "Postgraduate"
	EducationCollege      EducationalAttainment = "College"
	EducationHighSchool   EducationalAttainment = "High School"
	EducationElementary   EducationalAttainment = "Elementary"
)

type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
	SexOther  Sex = "Other"
)

// Applicant is the profile tied to one external identity. UUID is the link
// to the identity provider's subject; ApplicantID is the human-facing
// business id (APP_001, ...) generated by the database.
type Applicant struct {
	UUID                  string                `json:"uuid"`
	ApplicantID           string                `json:"applicant_id"`
	Email                 string                `json:"email"`
	FamilyName            string                `json:"family_name"`
	FirstName             string                `json:"first_name"`
	MiddleName            *string               `json:"middle_name,omitempty"`
	Address               string                `json:"address"`
	ContactNum            string                `json:"contact_num"`
	Nationality           string                `json:"nationality"`
	Birthdate             *time.Time            `json:"birthdate,omitempty"`
	Birthplace            string                `json:"birthplace"`
	Height                float64               `json:"height"`
	Weight                float64               `json:"weight"`
	EyeColor              string                `json:"eye_color"`
	CivilStatus           CivilStatus           `json:"civil_status"`
	EducationalAttainment EducationalAttainment `json:"educational_attainment"`
	BloodType             string                `json:"blood_type"`
	Sex                   Sex                   `json:"sex"`
	LicenseNumber         *string               `json:"license_number,omitempty"`
	IsOrganDonor          bool                  `json:"is_organ_donor"`
	CreatedOn             time.Time             `json:"created_on"`
	UpdatedOn             time.Time             `json:"updated_on"`
}

var (
	licenseNumberPattern = regexp.MustCompile(`^[A-Z][0-9]{2}-[0-9]{2}-[0-9]{6}$`)
	contactNumPattern    = regexp.MustCompile(`^\+63\d{10}$`)
	bloodTypes           = map[string]bool{
		"A+": true, "A-": true, "B+": true, "B-": true,
		"AB+": true, "AB-": true, "O+": true, "O-": true,
	}
)

// ValidLicenseNumber reports whether s matches the required
// letter + 2 digits - 2 digits - 6 digits format (e.g. A12-34-567890).
func ValidLicenseNumber(s string) bool {
	return licenseNumberPattern.MatchString(s)
}

// ValidContactNumber reports whether s is a +63 mobile number.
func ValidContactNumber(s string) bool {
	return contactNumPattern.MatchString(s)
}

func ValidBloodType(s string) bool {
	return bloodTypes[s]
}

// Age returns the applicant's age in whole years, or -1 when no birthdate
// is on record.
func (a *Applicant) Age(now time.Time) int {
	if a.Birthdate == nil {
		return -1
	}
	b := *a.Birthdate
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return age
}

func (a *Applicant) FullName() string {
	if a.FirstName == "" && a.FamilyName == "" {
		return ""
	}
	return a.FirstName + " " + a.FamilyName
}
