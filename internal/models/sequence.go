package models

import "time"

// DocumentSequence represents a row of the document_sequences table.
type DocumentSequence struct {
	CompanyID     string    `db:"company_id"`
	Kind          string    `db:"kind"`
	Prefix        string    `db:"prefix"`
	Padding       int       `db:"padding"`
	LastNumber    int64     `db:"last_number"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
