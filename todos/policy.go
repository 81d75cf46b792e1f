package todos

import "github.com/RobertLib/todo-api/apperror"

// Ownership policy: pure predicates deciding whether a user may act on a
// todo. Kept free of I/O so they can be reasoned about and tested in
// isolation.

// CanView reports whether the user owns the todo.
func CanView(userID int, todo *Todo) bool {
	return todo.UserID == userID
}

// CanUpdate reports whether the user owns the todo.
func CanUpdate(userID int, todo *Todo) bool {
	return todo.UserID == userID
}

// CanDelete reports whether the user owns the todo.
func CanDelete(userID int, todo *Todo) bool {
	return todo.UserID == userID
}

// CanCreate reports whether the user may create todos; any authenticated
// user (positive id) may.
func CanCreate(userID int) bool {
	return userID > 0
}

// Authorize converts a policy decision into a Forbidden error. An empty
// message falls back to "Access denied".
func Authorize(allowed bool, message string) error {
	if allowed {
		return nil
	}
	if message == "" {
		message = "Access denied"
	}
	return apperror.NewForbiddenError(message, nil)
}
