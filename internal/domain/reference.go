package domain

// VehicleCategory is a reference table row describing a license class.
type VehicleCategory struct {
	CategoryID          string `json:"category_id"`
	CategoryDescription string `json:"category_description"`
}

// Location is an LTO branch where appointments take place.
type Location struct {
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Address      string `json:"address"`
}

// ApplicationTypeRef is the reference-table view of an application type.
type ApplicationTypeRef struct {
	ApplicationTypeID ApplicationType `json:"application_type_id"`
	TypeCategory      string          `json:"type_category"`
}

// ApplicationStatusRef is the reference-table view of an application status.
type ApplicationStatusRef struct {
	ApplicationStatusID ApplicationStatus `json:"application_status_id"`
	StatusDescription   string            `json:"status_description"`
}
