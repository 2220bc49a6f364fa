package storage

import "time"

// SharedAccess grants read-only access to one layout via an access
// code.
type SharedAccess struct {
	LayoutID   string    `json:"layout_id"`
	Email      string    `json:"email"`
	AccessCode string    `json:"access_code"`
	CreatedAt  time.Time `json:"created_at"`
}
