// Package todos implements owner-scoped todo items: the ownership policy,
// the orchestrating service and the persistence store. Every todo belongs to
// exactly one user and is only ever visible to that user.
package todos

import "time"

// Todo represents a todo item as stored in the database. UserID is the owner
// and is immutable after creation; it determines all access rights and never
// appears in responses.
type Todo struct {
	ID          int
	UserID      int
	Title       string
	Description *string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
