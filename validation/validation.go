// Package validation contains pure validators for inbound request payloads.
// Payloads arrive as untyped maps (attacker-controlled JSON); every rule is
// checked independently and all failures accumulate, so a payload breaking
// two rules reports two field errors. Validators that pass return a typed
// input struct, so no code past this layer touches raw payloads.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/RobertLib/todo-api/apperror"
)

// emailPattern is intentionally loose: one local part, one domain, one TLD,
// no whitespace. Full RFC 5322 parsing is not the goal.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// maxTitleLength bounds a todo title.
const maxTitleLength = 255

// Result is an ordered accumulation of field-level validation errors.
// A payload is valid iff the list is empty.
type Result struct {
	errors []apperror.FieldError
}

// AddError appends a field error, preserving insertion order.
func (r *Result) AddError(field, message string) {
	r.errors = append(r.errors, apperror.FieldError{Field: field, Message: message})
}

// IsValid reports whether no errors were recorded.
func (r *Result) IsValid() bool {
	return len(r.errors) == 0
}

// Errors returns the recorded field errors in order.
func (r *Result) Errors() []apperror.FieldError {
	return r.errors
}

// ToError converts the result into a ValidationError, or nil when valid.
func (r *Result) ToError() error {
	if r.IsValid() {
		return nil
	}
	return apperror.NewValidationError(r.errors)
}

// RegisterInput is a validated registration payload.
type RegisterInput struct {
	Email    string
	Password string
}

// LoginInput is a validated login payload.
type LoginInput struct {
	Email    string
	Password string
}

// CreateTodoInput is a validated todo creation payload. Description is nil
// when omitted or explicitly null.
type CreateTodoInput struct {
	Title       string
	Description *string
}

// UpdateTodoInput is a validated partial todo update. Nil pointers mean the
// field was not supplied; DescriptionSet distinguishes an explicit null
// (clear the description) from an absent field.
type UpdateTodoInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Completed      *bool
}

// nonEmptyString returns the value when it is a string with non-whitespace
// content, and whether it was one.
func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// ValidateRegister checks a registration payload: email must be present and
// have a plausible shape, password must be present and at least 6 characters.
func ValidateRegister(data map[string]any) (*RegisterInput, *Result) {
	result := &Result{}
	in := &RegisterInput{}

	if email, ok := nonEmptyString(data["email"]); !ok {
		result.AddError("email", "Email is required")
	} else if !emailPattern.MatchString(email) {
		result.AddError("email", "Invalid email format")
	} else {
		in.Email = email
	}

	if password, ok := nonEmptyString(data["password"]); !ok {
		result.AddError("password", "Password is required")
	} else if utf8.RuneCountInString(password) < 6 {
		result.AddError("password", "Password must be at least 6 characters long")
	} else {
		in.Password = password
	}

	if !result.IsValid() {
		return nil, result
	}
	return in, result
}

// ValidateLogin checks a login payload for presence only. The email format is
// validated at registration time; re-checking here would only leak which
// addresses can exist.
func ValidateLogin(data map[string]any) (*LoginInput, *Result) {
	result := &Result{}
	in := &LoginInput{}

	if email, ok := nonEmptyString(data["email"]); !ok {
		result.AddError("email", "Email is required")
	} else {
		in.Email = email
	}

	if password, ok := nonEmptyString(data["password"]); !ok {
		result.AddError("password", "Password is required")
	} else {
		in.Password = password
	}

	if !result.IsValid() {
		return nil, result
	}
	return in, result
}

// ValidateCreateTodo checks a todo creation payload: title required, trimmed
// non-empty, at most 255 characters; description, when present and non-null,
// must be a string.
func ValidateCreateTodo(data map[string]any) (*CreateTodoInput, *Result) {
	result := &Result{}
	in := &CreateTodoInput{}

	if title, ok := nonEmptyString(data["title"]); !ok {
		result.AddError("title", "Title is required")
	} else if utf8.RuneCountInString(title) > maxTitleLength {
		result.AddError("title", "Title must not exceed 255 characters")
	} else {
		in.Title = title
	}

	if raw, present := data["description"]; present && raw != nil {
		if s, ok := raw.(string); ok {
			in.Description = &s
		} else {
			result.AddError("description", "Description must be a string")
		}
	}

	if !result.IsValid() {
		return nil, result
	}
	return in, result
}

// ValidateUpdateTodo checks a partial todo update. Every supplied field is
// individually type- and shape-checked; supplying none of title, description
// and completed is itself an error, reported against the whole body.
func ValidateUpdateTodo(data map[string]any) (*UpdateTodoInput, *Result) {
	result := &Result{}
	in := &UpdateTodoInput{}

	rawTitle, hasTitle := data["title"]
	if hasTitle {
		if title, ok := nonEmptyString(rawTitle); !ok {
			result.AddError("title", "Title must be a non-empty string")
		} else if utf8.RuneCountInString(title) > maxTitleLength {
			result.AddError("title", "Title must not exceed 255 characters")
		} else {
			in.Title = &title
		}
	}

	rawDescription, hasDescription := data["description"]
	if hasDescription {
		// An explicit null clears the description; anything else must be a
		// string.
		in.DescriptionSet = true
		if rawDescription != nil {
			if s, ok := rawDescription.(string); ok {
				in.Description = &s
			} else {
				in.DescriptionSet = false
				result.AddError("description", "Description must be a string")
			}
		}
	}

	rawCompleted, hasCompleted := data["completed"]
	if hasCompleted {
		if completed, ok := rawCompleted.(bool); ok {
			in.Completed = &completed
		} else {
			result.AddError("completed", "Completed must be a boolean")
		}
	}

	if !hasTitle && !hasDescription && !hasCompleted {
		result.AddError("body", "At least one field (title, description, or completed) must be provided")
	}

	if !result.IsValid() {
		return nil, result
	}
	return in, result
}
