package domain

import "time"

// Document kinds that draw numbers from a per-company sequence.
const (
	SequenceJournal   = "JOURNAL"
	SequenceTaxReturn = "TAX_RETURN"
)

// DocumentSequence tracks the last number handed out for one document kind
// within a company. Numbers are reserved atomically and never reused, so a
// failed save may leave a gap.
type DocumentSequence struct {
	CompanyID     string    `json:"companyID"`
	Kind          string    `json:"kind"`
	Prefix        string    `json:"prefix"`  // e.g. "JE-"
	Padding       int       `json:"padding"` // Minimum digits, zero-filled
	LastNumber    int64     `json:"lastNumber"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
