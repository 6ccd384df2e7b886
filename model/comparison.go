package model

import (
	"math"
	"time"
)

// FieldVerdict is the analysis outcome for a single document slot.
type FieldVerdict struct {
	Status         bool   `json:"status"`
	Description    string `json:"description,omitempty"`
	UserComparison string `json:"usercomparasion,omitempty"`
}

// Comparison is the record produced by the server-side analysis job from a
// DocumentManagement. It mirrors the eleven document slots, but each field
// carries a verdict instead of a file path; a nil field means the slot was
// not part of the analysis.
type Comparison struct {
	ID                            string        `json:"id"`
	DocumentManagementID          string        `json:"documentManagementId"`
	FilingLetter                  *FieldVerdict `json:"filingLetter,omitempty"`
	CertificateOfCompliance       *FieldVerdict `json:"certificateOfCompliance,omitempty"`
	SignedCertificateOfCompliance *FieldVerdict `json:"signedCertificateOfCompliance,omitempty"`
	ActivityReport                *FieldVerdict `json:"activityReport,omitempty"`
	TaxQualityCertificate         *FieldVerdict `json:"taxQualityCertificate,omitempty"`
	SocialSecurity                *FieldVerdict `json:"socialSecurity,omitempty"`
	Rut                           *FieldVerdict `json:"rut,omitempty"`
	Rit                           *FieldVerdict `json:"rit,omitempty"`
	Trainings                     *FieldVerdict `json:"trainings,omitempty"`
	InitiationRecord              *FieldVerdict `json:"initiationRecord,omitempty"`
	AccountCertification          *FieldVerdict `json:"accountCertification,omitempty"`
	CreatedAt                     time.Time     `json:"createdAt,omitempty"`
}

// Verdict returns the verdict for the given slot key, or nil when the slot
// was absent from the analysis.
func (c *Comparison) Verdict(key string) *FieldVerdict {
	switch key {
	case SlotFilingLetter:
		return c.FilingLetter
	case SlotCertificateOfCompliance:
		return c.CertificateOfCompliance
	case SlotSignedCertificateOfCompliance:
		return c.SignedCertificateOfCompliance
	case SlotActivityReport:
		return c.ActivityReport
	case SlotTaxQualityCertificate:
		return c.TaxQualityCertificate
	case SlotSocialSecurity:
		return c.SocialSecurity
	case SlotRut:
		return c.Rut
	case SlotRit:
		return c.Rit
	case SlotTrainings:
		return c.Trainings
	case SlotInitiationRecord:
		return c.InitiationRecord
	case SlotAccountCertification:
		return c.AccountCertification
	}
	return nil
}

// SetVerdict stores a verdict under the given slot key. Unknown keys are
// ignored.
func (c *Comparison) SetVerdict(key string, v *FieldVerdict) {
	switch key {
	case SlotFilingLetter:
		c.FilingLetter = v
	case SlotCertificateOfCompliance:
		c.CertificateOfCompliance = v
	case SlotSignedCertificateOfCompliance:
		c.SignedCertificateOfCompliance = v
	case SlotActivityReport:
		c.ActivityReport = v
	case SlotTaxQualityCertificate:
		c.TaxQualityCertificate = v
	case SlotSocialSecurity:
		c.SocialSecurity = v
	case SlotRut:
		c.Rut = v
	case SlotRit:
		c.Rit = v
	case SlotTrainings:
		c.Trainings = v
	case SlotInitiationRecord:
		c.InitiationRecord = v
	case SlotAccountCertification:
		c.AccountCertification = v
	}
}

// Percentage returns the share of analyzed slots that passed, rounded to the
// nearest integer. Slots absent from the analysis do not count toward the
// total. Returns 0 when no slot was analyzed.
func (c *Comparison) Percentage() int {
	present := 0
	approved := 0
	for _, key := range SlotKeys {
		v := c.Verdict(key)
		if v == nil {
			continue
		}
		present++
		if v.Status {
			approved++
		}
	}
	if present == 0 {
		return 0
	}
	return int(math.Round(float64(approved) / float64(present) * 100))
}
