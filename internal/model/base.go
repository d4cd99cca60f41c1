package model

import "time"

// Status is a display toggle, not a deletion marker. Rows are only removed
// by explicit (cascading) deletes.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type BaseModel struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
