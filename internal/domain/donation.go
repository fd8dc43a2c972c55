package domain

import "time"

// Organ codes recognized for donation pledges. ORG_ALL subsumes the rest.
const (
	OrganAll      = "ORG_ALL"
	OrganKidney   = "ORG_KID"
	OrganHeart    = "ORG_HRT"
	OrganCornea   = "ORG_COR"
	OrganEyes     = "ORG_EYE"
	OrganPancreas = "ORG_PAN"
	OrganLiver    = "ORG_LIV"
	OrganLungs    = "ORG_LUN"
	OrganBones    = "ORG_BON"
	OrganSkin     = "ORG_SKN"
)

var organNames = map[string]string{
	OrganAll:      "All Organs",
	OrganKidney:   "Kidney",
	OrganHeart:    "Heart",
	OrganCornea:   "Cornea",
	OrganEyes:     "Eyes",
	OrganPancreas: "Pancreas",
	OrganLiver:    "Liver",
	OrganLungs:    "Lungs",
	OrganBones:    "Bones",
	OrganSkin:     "Skin",
}

func ValidOrganCode(code string) bool {
	_, ok := organNames[code]
	return ok
}

func OrganName(code string) string {
	return organNames[code]
}

// Organ is a reference table row.
type Organ struct {
	OrganID   string `json:"organ_id"`
	OrganName string `json:"organ_name"`
}

// Donation is an applicant's organ donation pledge. One pledge per
// applicant; the organ set is replaced wholesale on update.
type Donation struct {
	DonationID  string    `json:"donation_id"`
	ApplicantID string    `json:"applicant_id"`
	OrganIDs    []string  `json:"organ_ids"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}
