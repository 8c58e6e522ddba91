package club

import "strings"

// Field is a logical field name, independent of the physical column a store
// maps it to.
type Field string

const (
	FieldName        Field = "name"
	FieldAffiliation Field = "affiliation"
	FieldEmail       Field = "email"
	FieldPhone       Field = "phone"
	FieldAddress     Field = "address"
)

// CoreFields lists the fields the reconciliation writer is allowed to touch,
// in dataset column order. Tracking columns are deliberately absent.
func CoreFields() []Field {
	return []Field{FieldName, FieldAffiliation, FieldEmail, FieldPhone, FieldAddress}
}

// Record is one club extracted from a federation page.
type Record struct {
	Name        string `json:"nom"`
	Affiliation string `json:"numero_affiliation,omitempty"`
	// Email is the coalesced address: principal wins over officiel,
	// officiel over autre. The raw variants are kept for reference.
	Email         string `json:"email,omitempty"`
	OfficialEmail string `json:"email_officiel,omitempty"`
	PrimaryEmail  string `json:"email_principal,omitempty"`
	Phone         string `json:"telephone,omitempty"`
	Address       string `json:"adresse,omitempty"`
	SourceURL     string `json:"url_detail"`
	// SourceID is the provenance selector: a district name in district mode,
	// the SCL number in range mode.
	SourceID string `json:"source_id"`
}

// Found reports whether the record carries an extractable club. A page with
// no name is a non-result, not an error.
func (r *Record) Found() bool {
	return r != nil && strings.TrimSpace(r.Name) != ""
}

// FieldValue returns the record's value for a logical field.
func (r *Record) FieldValue(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldAffiliation:
		return r.Affiliation
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldAddress:
		return r.Address
	}
	return ""
}
