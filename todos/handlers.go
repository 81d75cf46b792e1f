package todos

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RobertLib/todo-api/apperror"
	"github.com/RobertLib/todo-api/auth"
	"github.com/RobertLib/todo-api/validation"
)

// Handlers wraps the todo Service to provide HTTP handlers. All routes are
// mounted behind the JWT middleware; the user id comes from the request
// context.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleCreate godoc
// @Summary Create a todo
// @Tags Todos
// @Accept json
// @Produce json
// @Param todoBody body todos.CreateTodoRequest true "Todo to create"
// @Success 201 {object} todos.TodoResponse
// @Failure 400 {object} apperror.ErrorResponse "Validation failed"
// @Failure 401 {object} apperror.ErrorResponse "Not authenticated"
// @Security BearerAuth
// @Router /todos [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := auth.DecodeBody(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		in, result := validation.ValidateCreateTodo(data)
		if !result.IsValid() {
			auth.WriteError(w, r, result.ToError())
			return
		}

		userID, _ := auth.UserIDFromContext(r.Context())
		todo, err := h.service.Create(r.Context(), userID, in)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusCreated, todo)
	}
}

// HandleList godoc
// @Summary List the authenticated user's todos
// @Tags Todos
// @Produce json
// @Success 200 {array} todos.TodoResponse
// @Failure 401 {object} apperror.ErrorResponse "Not authenticated"
// @Security BearerAuth
// @Router /todos [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserIDFromContext(r.Context())
		todoList, err := h.service.List(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, todoList)
	}
}

// HandleGet godoc
// @Summary Get a todo by id
// @Tags Todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} todos.TodoResponse
// @Failure 400 {object} apperror.ErrorResponse "Invalid todo ID"
// @Failure 401 {object} apperror.ErrorResponse "Not authenticated"
// @Failure 403 {object} apperror.ErrorResponse "Not the owner"
// @Failure 404 {object} apperror.ErrorResponse "Todo not found"
// @Security BearerAuth
// @Router /todos/{id} [get]
func (h *Handlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		todoID, err := todoIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		userID, _ := auth.UserIDFromContext(r.Context())
		todo, err := h.service.Get(r.Context(), todoID, userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, todo)
	}
}

// HandleUpdate godoc
// @Summary Partially update a todo
// @Tags Todos
// @Accept json
// @Produce json
// @Param id path int true "Todo ID"
// @Param todoBody body todos.UpdateTodoRequest true "Fields to update"
// @Success 200 {object} todos.TodoResponse
// @Failure 400 {object} apperror.ErrorResponse "Validation failed"
// @Failure 401 {object} apperror.ErrorResponse "Not authenticated"
// @Failure 403 {object} apperror.ErrorResponse "Not the owner"
// @Failure 404 {object} apperror.ErrorResponse "Todo not found"
// @Security BearerAuth
// @Router /todos/{id} [patch]
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		todoID, err := todoIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		data, err := auth.DecodeBody(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		in, result := validation.ValidateUpdateTodo(data)
		if !result.IsValid() {
			auth.WriteError(w, r, result.ToError())
			return
		}

		userID, _ := auth.UserIDFromContext(r.Context())
		todo, err := h.service.Update(r.Context(), todoID, userID, in)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, todo)
	}
}

// HandleDelete godoc
// @Summary Delete a todo
// @Tags Todos
// @Param id path int true "Todo ID"
// @Success 204 "Deleted"
// @Failure 400 {object} apperror.ErrorResponse "Invalid todo ID"
// @Failure 401 {object} apperror.ErrorResponse "Not authenticated"
// @Failure 403 {object} apperror.ErrorResponse "Not the owner"
// @Failure 404 {object} apperror.ErrorResponse "Todo not found"
// @Security BearerAuth
// @Router /todos/{id} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		todoID, err := todoIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		userID, _ := auth.UserIDFromContext(r.Context())
		if err := h.service.Delete(r.Context(), todoID, userID); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func todoIDParam(r *http.Request) (int, error) {
	todoID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, apperror.NewBadRequestError("Invalid todo ID", err)
	}
	return todoID, nil
}
