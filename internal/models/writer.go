package models

// Writer is an immutable snapshot of the acting user, embedded into
// articles, comments and history events at write time. It is replaced
// wholesale on mutation, never edited in place.
type Writer struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// WriterOf snapshots a user into a Writer.
func WriterOf(u *User) Writer {
	return Writer{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}
