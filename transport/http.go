package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	userapp "github.com/xam1dullo/identity-api/application/user"
	"github.com/xam1dullo/identity-api/constant"
	"github.com/xam1dullo/identity-api/model"
	"github.com/xam1dullo/identity-api/utils/errors"
	validatorx "github.com/xam1dullo/identity-api/utils/validator"
)

type RestHandler struct {
	UserApp userapp.UserApp
}

func NewTransport(UserApp userapp.UserApp) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		UserApp: UserApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	mux.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	mux.HandleFunc("/users", rh.ListUsers).Methods(http.MethodGet)
	mux.HandleFunc("/users/{email}", rh.UpdateUser).Methods(http.MethodPut)
	mux.HandleFunc("/users/{email}", rh.DeleteUser).Methods(http.MethodDelete)

	// middleware
	mux.Use(LoggingMiddleware())

	return mux
}

// Register handler
// @Summary Register user
// @Description Register a new user with full profile and credentials
// @Tags Users
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} transport.SuccessResponse
// @Failure 400 {object} transport.ErrorResponse
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetValidationError(validatorx.Messages(err)))
		return
	}

	if s.UserApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res.Message, res)
}

// Login handler
// @Summary Login user
// @Description Verify email/password credentials
// @Tags Users
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} transport.SuccessResponse
// @Failure 400 {object} transport.ErrorResponse
// @Failure 401 {object} transport.ErrorResponse
// @Failure 404 {object} transport.ErrorResponse
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetValidationError(validatorx.Messages(err)))
		return
	}

	if s.UserApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res.Message, res)
}

// ListUsers handler
// @Summary List users
// @Description List all users without credential material
// @Tags Users
// @Produce json
// @Success 200 {object} transport.SuccessResponse
// @Router /users [get]
func (s *RestHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.UserApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	users, err := s.UserApp.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, "success", users)
}

// UpdateUser handler
// @Summary Update user
// @Description Apply a partial update to the user keyed by email
// @Tags Users
// @Accept json
// @Produce json
// @Param email path string true "User email"
// @Param request body model.UpdateRequest true "Update Request"
// @Success 200 {object} transport.SuccessResponse
// @Failure 404 {object} transport.ErrorResponse
// @Router /users/{email} [put]
func (s *RestHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := mux.Vars(r)["email"]

	var req model.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if s.UserApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	if err := s.UserApp.Update(ctx, email, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, "user updated successfully", nil)
}

// DeleteUser handler
// @Summary Delete user
// @Description Remove the user keyed by email
// @Tags Users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} transport.SuccessResponse
// @Failure 404 {object} transport.ErrorResponse
// @Router /users/{email} [delete]
func (s *RestHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := mux.Vars(r)["email"]

	if s.UserApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	if err := s.UserApp.Delete(ctx, email); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, "user deleted successfully", nil)
}
