package todos

import (
	"context"

	"github.com/RobertLib/todo-api/apperror"
	"github.com/RobertLib/todo-api/auth"
	"github.com/RobertLib/todo-api/validation"
)

// Service orchestrates todo operations. Every call follows the same shape:
// require authentication, load, check the ownership policy, mutate, project
// the response. Ownership is enforced here, not in the storage layer.
type Service struct {
	store Store
}

// NewService creates a Service with its store injected.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create persists a new todo owned by userID.
func (s *Service) Create(ctx context.Context, userID int, in *validation.CreateTodoInput) (*TodoResponse, error) {
	if err := auth.RequireAuth(userID); err != nil {
		return nil, err
	}
	if err := Authorize(CanCreate(userID), "You are not authorized to create todos"); err != nil {
		return nil, err
	}

	todo, err := s.store.Insert(ctx, userID, in.Title, in.Description)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to create todo", err)
	}

	return mapToResponse(todo), nil
}

// List returns all todos owned by userID, newest first.
func (s *Service) List(ctx context.Context, userID int) ([]TodoResponse, error) {
	if err := auth.RequireAuth(userID); err != nil {
		return nil, err
	}

	todos, err := s.store.FindAllByOwner(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to list todos", err)
	}

	responses := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		responses = append(responses, *mapToResponse(&todos[i]))
	}
	return responses, nil
}

// Get returns a single todo by id, provided userID owns it.
func (s *Service) Get(ctx context.Context, todoID, userID int) (*TodoResponse, error) {
	if err := auth.RequireAuth(userID); err != nil {
		return nil, err
	}

	todo, err := s.load(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(CanView(userID, todo), "You are not authorized to view this todo"); err != nil {
		return nil, err
	}

	return mapToResponse(todo), nil
}

// Update applies the supplied fields to a todo, provided userID owns it. The
// updated_at timestamp is refreshed on every successful mutation.
func (s *Service) Update(ctx context.Context, todoID, userID int, in *validation.UpdateTodoInput) (*TodoResponse, error) {
	if err := auth.RequireAuth(userID); err != nil {
		return nil, err
	}

	todo, err := s.load(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(CanUpdate(userID, todo), "You are not authorized to update this todo"); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdatePartial(ctx, todoID, in)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to update todo", err)
	}
	if updated == nil {
		// Existence was confirmed above; the row vanishing in between is a
		// lost race, reported as an internal failure.
		return nil, apperror.NewInternalError("Failed to update todo", nil)
	}

	return mapToResponse(updated), nil
}

// Delete removes a todo, provided userID owns it.
func (s *Service) Delete(ctx context.Context, todoID, userID int) error {
	if err := auth.RequireAuth(userID); err != nil {
		return err
	}

	todo, err := s.load(ctx, todoID)
	if err != nil {
		return err
	}
	if err := Authorize(CanDelete(userID, todo), "You are not authorized to delete this todo"); err != nil {
		return err
	}

	affected, err := s.store.Delete(ctx, todoID)
	if err != nil {
		return apperror.NewDatabaseError("Failed to delete todo", err)
	}
	if affected == 0 {
		return apperror.NewInternalError("Failed to delete todo", nil)
	}

	return nil
}

// load fetches a todo and converts absence into NotFound.
func (s *Service) load(ctx context.Context, todoID int) (*Todo, error) {
	todo, err := s.store.FindByID(ctx, todoID)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to get todo", err)
	}
	if todo == nil {
		return nil, apperror.NewNotFoundError("Todo not found", nil)
	}
	return todo, nil
}
