package domain

import "time"

// SkillAcquisition is how the applicant learned to drive.
type SkillAcquisition string

const (
	AcquisitionDrivingSchool   SkillAcquisition = "LTO-Accredited Driving School"
	AcquisitionTESDA           SkillAcquisition = "TESDA"
	AcquisitionPrivateLicensed SkillAcquisition = "Private Licensed Person"
)

// NormalizeAcquisition maps a supplied acquisition label onto the fixed
// vocabulary, falling back to the driving school default when the label is
// unrecognized or empty.
func NormalizeAcquisition(s string) SkillAcquisition {
	switch SkillAcquisition(s) {
	case AcquisitionDrivingSchool, AcquisitionTESDA, AcquisitionPrivateLicensed:
		return SkillAcquisition(s)
	}
	return AcquisitionDrivingSchool
}

// DrivingSkill records how driving competence was acquired, one per
// application.
type DrivingSkill struct {
	SkillID       string           `json:"skill_id"`
	ApplicationID string           `json:"application_id"`
	Acquisition   SkillAcquisition `json:"acquisition"`
	CreatedOn     time.Time        `json:"created_on"`
}

// conditionTypeIDs maps the condition labels the intake form uses onto the
// seeded condition type ids. Unknown labels are skipped by the writer, not
// rejected.
var conditionTypeIDs = map[string]string{
	"Wear Corrective Lenses":                       "CTID_001",
	"Drive with Special Equipment for Upper Limbs": "CTID_002",
	"Drive with Special Equipment for Lower Limbs": "CTID_003",
	"Daylight Driving Only":                        "CTID_004",
	"Hearing Aid Required":                         "CTID_005",
}

// ConditionTypeID resolves a condition label to its type id. The second
// return is false for labels outside the controlled vocabulary.
func ConditionTypeID(label string) (string, bool) {
	id, ok := conditionTypeIDs[label]
	return id, ok
}

// LicenseConditionType is a reference table row.
type LicenseConditionType struct {
	ConditionTypeID      string `json:"condition_type_id"`
	ConditionDescription string `json:"condition_description"`
}

// LicenseCondition attaches one driving restriction to an application.
type LicenseCondition struct {
	ConditionID     string `json:"condition_id"`
	ApplicationID   string `json:"application_id"`
	ConditionTypeID string `json:"condition_type_id"`
}

// Relation is the allowed kinship set for family records.
type Relation string

const (
	RelationMother Relation = "Mother"
	RelationFather Relation = "Father"
	RelationSpouse Relation = "Spouse"
)

func (r Relation) Valid() bool {
	switch r {
	case RelationMother, RelationFather, RelationSpouse:
		return true
	}
	return false
}

// EmergencyContact belongs to one applicant.
type EmergencyContact struct {
	ContactID   string    `json:"contact_id"`
	ApplicantID string    `json:"applicant_id"`
	ContactName string    `json:"contact_name"`
	Relation    string    `json:"relation"`
	ContactNum  string    `json:"contact_num"`
	Address     string    `json:"address"`
	CreatedOn   time.Time `json:"created_on"`
}

// Employment is the applicant's employer and occupation details.
type Employment struct {
	EmploymentID    string    `json:"employment_id"`
	ApplicantID     string    `json:"applicant_id"`
	EmployerName    string    `json:"employer_name"`
	EmployerAddress string    `json:"employer_address"`
	Occupation      string    `json:"occupation"`
	CreatedOn       time.Time `json:"created_on"`
}

// FamilyInformation is one kin record per relation type per applicant.
type FamilyInformation struct {
	FamilyID     string    `json:"family_id"`
	ApplicantID  string    `json:"applicant_id"`
	RelationType Relation  `json:"relation_type"`
	FamilyName   string    `json:"family_name"`
	FirstName    string    `json:"first_name"`
	MiddleName   *string   `json:"middle_name,omitempty"`
	IsDeceased   bool      `json:"is_deceased"`
	CreatedOn    time.Time `json:"created_on"`
}
