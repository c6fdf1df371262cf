package models

// User is a member of the sharing community. Email is unique across all
// users; the match is case-sensitive and exact.
type User struct {
	ID    int64
	Name  string
	Email string
}

// ApplyPatch overwrites only the supplied fields (PATCH semantics).
// Nil pointers leave the current value untouched.
func (u *User) ApplyPatch(name, email *string) {
	if name != nil {
		u.Name = *name
	}
	if email != nil {
		u.Email = *email
	}
}
