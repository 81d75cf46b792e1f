package todos

import "time"

// CreateTodoRequest documents the creation payload; decoding goes through the
// validation package.
type CreateTodoRequest struct {
	Title       string  `json:"title" example:"Buy milk"`
	Description *string `json:"description,omitempty" example:"2 liters, semi-skimmed"`
}

// UpdateTodoRequest documents the partial-update payload. At least one field
// must be supplied.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty" example:"Buy oat milk"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty" example:"true"`
}

// TodoResponse is the outward projection of a todo. The owner id is stripped;
// ownership is a server-side concern.
type TodoResponse struct {
	ID          int       `json:"id" example:"1"`
	Title       string    `json:"title" example:"Buy milk"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed" example:"false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func mapToResponse(todo *Todo) *TodoResponse {
	return &TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}
