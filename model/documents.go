package model

import (
	"time"
)

// Document slot keys. Each contractor has one DocumentManagement record with
// these eleven named slots; a slot holds the server-side path of the stored
// file, or the empty string when nothing has been uploaded.
const (
	SlotFilingLetter                  = "filingLetter"
	SlotCertificateOfCompliance       = "certificateOfCompliance"
	SlotSignedCertificateOfCompliance = "signedCertificateOfCompliance"
	SlotActivityReport                = "activityReport"
	SlotTaxQualityCertificate         = "taxQualityCertificate"
	SlotSocialSecurity                = "socialSecurity"
	SlotRut                           = "rut"
	SlotRit                           = "rit"
	SlotTrainings                     = "trainings"
	SlotInitiationRecord              = "initiationRecord"
	SlotAccountCertification          = "accountCertification"
)

// SlotKeys lists the document slots in canonical order.
var SlotKeys = []string{
	SlotFilingLetter,
	SlotCertificateOfCompliance,
	SlotSignedCertificateOfCompliance,
	SlotActivityReport,
	SlotTaxQualityCertificate,
	SlotSocialSecurity,
	SlotRut,
	SlotRit,
	SlotTrainings,
	SlotInitiationRecord,
	SlotAccountCertification,
}

// SlotLabels maps slot keys to display names.
var SlotLabels = map[string]string{
	SlotFilingLetter:                  "Filing letter",
	SlotCertificateOfCompliance:       "Certificate of compliance",
	SlotSignedCertificateOfCompliance: "Signed certificate of compliance",
	SlotActivityReport:                "Activity report",
	SlotTaxQualityCertificate:         "Tax quality certificate",
	SlotSocialSecurity:                "Social security",
	SlotRut:                           "RUT",
	SlotRit:                           "RIT",
	SlotTrainings:                     "Trainings",
	SlotInitiationRecord:              "Initiation record",
	SlotAccountCertification:          "Account certification",
}

// IsSlot reports whether key names one of the eleven document slots.
func IsSlot(key string) bool {
	_, ok := SlotLabels[key]
	return ok
}

// DocumentManagement is the per-contractor record of uploaded documents.
type DocumentManagement struct {
	ID                            string    `json:"id"`
	ContractorID                  string    `json:"contractorId"`
	FilingLetter                  string    `json:"filingLetter"`
	CertificateOfCompliance       string    `json:"certificateOfCompliance"`
	SignedCertificateOfCompliance string    `json:"signedCertificateOfCompliance"`
	ActivityReport                string    `json:"activityReport"`
	TaxQualityCertificate         string    `json:"taxQualityCertificate"`
	SocialSecurity                string    `json:"socialSecurity"`
	Rut                           string    `json:"rut"`
	Rit                           string    `json:"rit"`
	Trainings                     string    `json:"trainings"`
	InitiationRecord              string    `json:"initiationRecord"`
	AccountCertification          string    `json:"accountCertification"`
	CreationDate                  time.Time `json:"creationDate"`
	Description                   string    `json:"description"`
	RetentionTime                 int       `json:"retentionTime"`
	State                         bool      `json:"state"`
	Version                       int       `json:"version"`
	IPRegister                    string    `json:"ipRegister"`
}

// Slot returns the stored path for the given slot key, or the empty string
// for unknown keys.
func (d *DocumentManagement) Slot(key string) string {
	switch key {
	case SlotFilingLetter:
		return d.FilingLetter
	case SlotCertificateOfCompliance:
		return d.CertificateOfCompliance
	case SlotSignedCertificateOfCompliance:
		return d.SignedCertificateOfCompliance
	case SlotActivityReport:
		return d.ActivityReport
	case SlotTaxQualityCertificate:
		return d.TaxQualityCertificate
	case SlotSocialSecurity:
		return d.SocialSecurity
	case SlotRut:
		return d.Rut
	case SlotRit:
		return d.Rit
	case SlotTrainings:
		return d.Trainings
	case SlotInitiationRecord:
		return d.InitiationRecord
	case SlotAccountCertification:
		return d.AccountCertification
	}
	return ""
}

// SetSlot stores path under the given slot key. Unknown keys are ignored.
func (d *DocumentManagement) SetSlot(key, path string) {
	switch key {
	case SlotFilingLetter:
		d.FilingLetter = path
	case SlotCertificateOfCompliance:
		d.CertificateOfCompliance = path
	case SlotSignedCertificateOfCompliance:
		d.SignedCertificateOfCompliance = path
	case SlotActivityReport:
		d.ActivityReport = path
	case SlotTaxQualityCertificate:
		d.TaxQualityCertificate = path
	case SlotSocialSecurity:
		d.SocialSecurity = path
	case SlotRut:
		d.Rut = path
	case SlotRit:
		d.Rit = path
	case SlotTrainings:
		d.Trainings = path
	case SlotInitiationRecord:
		d.InitiationRecord = path
	case SlotAccountCertification:
		d.AccountCertification = path
	}
}

// Uploaded reports whether the given slot holds a stored file. A slot counts
// as uploaded iff its value is a non-empty path.
func (d *DocumentManagement) Uploaded(key string) bool {
	return d.Slot(key) != ""
}

// MissingSlots returns the slot keys without an uploaded file, in canonical
// order.
func (d *DocumentManagement) MissingSlots() []string {
	var missing []string
	for _, key := range SlotKeys {
		if !d.Uploaded(key) {
			missing = append(missing, key)
		}
	}
	return missing
}
