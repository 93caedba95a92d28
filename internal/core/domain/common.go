package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// For single-owner entities CreatedBy/LastUpdatedBy equal the owning UserID.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}
