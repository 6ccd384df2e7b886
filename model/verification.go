package model

import (
	"strings"
	"time"
)

// missingMarker is the phrase legacy servers embed in the verification
// description, followed by a comma-separated list of slot keys.
const missingMarker = "Faltan los siguientes documentos:"

// Verification is the terminal pass/fail summary for a contractor. State is
// true when every analyzed slot passed; otherwise MissingFields lists the
// slot keys that are still missing or rejected.
type Verification struct {
	ID            string    `json:"id"`
	ContractorID  string    `json:"contractorId"`
	State         bool      `json:"state"`
	Description   string    `json:"description"`
	MissingFields []string  `json:"missingFields,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// Missing returns the missing slot keys. It prefers the structured
// MissingFields value and falls back to parsing the legacy description
// format for servers that have not adopted the structured field.
func (v *Verification) Missing() []string {
	if len(v.MissingFields) > 0 {
		return v.MissingFields
	}
	return ParseMissingFields(v.Description)
}

// ParseMissingFields extracts slot keys from a legacy verification
// description, where the keys follow a fixed marker phrase as a
// comma-separated list. Returns nil when the marker is absent or no valid
// slot key follows it.
func ParseMissingFields(description string) []string {
	idx := strings.Index(description, missingMarker)
	if idx < 0 {
		return nil
	}
	tail := description[idx+len(missingMarker):]
	var fields []string
	for _, part := range strings.Split(tail, ",") {
		key := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "."))
		if IsSlot(key) {
			fields = append(fields, key)
		}
	}
	return fields
}
