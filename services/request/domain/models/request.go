package models

import "time"

// ItemRequest is a wish for an item not yet in the catalog. Catalog items may
// later be created against it via their RequestID reference.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
}
