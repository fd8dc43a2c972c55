package domain

import "time"

// RequiredDocumentNames is the checklist every application must satisfy
// before it can reach Subject for Approval.
var RequiredDocumentNames = []string{
	"Birth Certificate",
	"Residence Certificate",
	"Medical Certificate",
	"Drug Test Result",
	"Driving Course Certificate",
	"Valid ID",
	"Passport Photo",
}

var requiredDocumentSet = func() map[string]bool {
	m := make(map[string]bool, len(RequiredDocumentNames))
	for _, n := range RequiredDocumentNames {
		m[n] = true
	}
	return m
}()

// ValidDocumentName reports whether name is one of the recognized
// document kinds.
func ValidDocumentName(name string) bool {
	return requiredDocumentSet[name]
}

// Document is one submitted file for an application. At most one document
// per (application, name); uploading a second file for the same name is a
// conflict, so a resubmission deletes the document and uploads anew.
type Document struct {
	DocumentID    string    `json:"document_id"`
	ApplicationID string    `json:"application_id"`
	DocumentName  string    `json:"document_name"`
	FileKey       string    `json:"file_key"`
	ContentType   string    `json:"content_type"`
	IsVerified    bool      `json:"is_verified"`
	VerifiedBy    *string   `json:"verified_by,omitempty"`
	SubmittedOn   time.Time `json:"submitted_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}

// DocumentChecklistEntry pairs a required document name with what has been
// submitted for it, if anything.
type DocumentChecklistEntry struct {
	DocumentName string    `json:"document_name"`
	Submitted    bool      `json:"submitted"`
	Document     *Document `json:"document,omitempty"`
}
