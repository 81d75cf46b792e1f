package auth

import (
	"encoding/json"
	"net/http"

	"github.com/RobertLib/todo-api/apperror"
	"github.com/RobertLib/todo-api/logger"
	"github.com/RobertLib/todo-api/validation"
)

// Handlers wraps the auth Service to provide HTTP handlers.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleRegister godoc
// @Summary User registration
// @Description Registers a new user and returns the user with a token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "Registration details"
// @Success 201 {object} auth.AuthResponse "User created"
// @Failure 400 {object} apperror.ErrorResponse "Validation failed"
// @Failure 409 {object} apperror.ErrorResponse "Email already registered"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := DecodeBody(r)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		in, result := validation.ValidateRegister(data)
		if !result.IsValid() {
			WriteError(w, r, result.ToError())
			return
		}

		resp, err := h.service.Register(r.Context(), in)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusCreated, resp)
	}
}

// HandleLogin godoc
// @Summary User login
// @Description Logs in an existing user and returns the user with a token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "Login credentials"
// @Success 200 {object} auth.AuthResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Validation failed"
// @Failure 401 {object} apperror.ErrorResponse "Invalid credentials"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := DecodeBody(r)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		in, result := validation.ValidateLogin(data)
		if !result.IsValid() {
			WriteError(w, r, result.ToError())
			return
		}

		resp, err := h.service.Login(r.Context(), in)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

// DecodeBody reads a JSON request body into an untyped map for the
// validation layer. A body that is not a JSON object is a bad request.
func DecodeBody(r *http.Request) (map[string]any, error) {
	defer r.Body.Close()
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		return nil, apperror.NewBadRequestError("Invalid request body", err)
	}
	return data, nil
}

// WriteJSON serializes data to the response with the given status.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Log.Errorw("failed to encode response", "error", err)
		}
	}
}

// WriteError converts any error into the standardized error response. Errors
// that are not AppErrors are treated as unexpected: their detail is logged
// and a generic message is returned, so internals never reach the caller.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("Internal server error", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Log.Errorw("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", appErr.StatusCode(),
			"error", appErr.Error(),
		)
	} else {
		logger.Log.Debugw("request rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"status", appErr.StatusCode(),
			"error", appErr.Message,
		)
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
