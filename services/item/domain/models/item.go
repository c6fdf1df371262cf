package models

// Item is a shareable physical object listed by an owner.
// RequestID, when set, points at the item request this item was created for.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

// ApplyPatch overwrites only the supplied fields (PATCH semantics).
// Nil pointers leave the current value untouched.
func (i *Item) ApplyPatch(name, description *string, available *bool) {
	if name != nil {
		i.Name = *name
	}
	if description != nil {
		i.Description = *description
	}
	if available != nil {
		i.Available = *available
	}
}
