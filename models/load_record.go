package models

import "time"

// BatchState represents the lifecycle state of one catalog load call
type BatchState string

const (
	BatchReceived   BatchState = "RECEIVED"
	BatchValidated  BatchState = "VALIDATED"
	BatchPersisting BatchState = "PERSISTING"
	BatchCommitted  BatchState = "COMMITTED"
	BatchRejected   BatchState = "REJECTED"
	BatchRolledBack BatchState = "ROLLED_BACK"
)

// LoadRecord is the journal row written for every load call, terminal state
// and error summary included, so rejected and rolled-back batches stay
// auditable.
type LoadRecord struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	BatchID        string     `json:"batch_id" gorm:"uniqueIndex;not null"`
	State          BatchState `json:"state" gorm:"not null"`
	Users          int        `json:"users"`
	Restaurants    int        `json:"restaurants"`
	MenuCategories int        `json:"menu_categories"`
	MenuItems      int        `json:"menu_items"`
	Errors         StringList `json:"errors,omitempty" gorm:"type:json"`
	CreatedAt      time.Time  `json:"created_at"`
}
