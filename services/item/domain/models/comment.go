package models

import "time"

// Comment is post-rental feedback on an item. Comments are immutable once
// created; the author name is resolved at read time, never persisted here.
type Comment struct {
	ID       int64
	Text     string
	ItemID   int64
	AuthorID int64
	Created  time.Time
}
