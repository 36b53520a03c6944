// Copyright (c) 2026 MovieFlix. All rights reserved.

package account

import (
	"net/http"
	"time"

	"github.com/movieflix/api/internal/platform/apperr"
	requestutil "github.com/movieflix/api/internal/platform/request"
	"github.com/movieflix/api/internal/platform/respond"
	"github.com/movieflix/api/internal/platform/validate"
	"github.com/movieflix/api/internal/users/auth"
)

// # Definitions & Constructors

// URL parameter names shared with the routing table.
const (
	ParamUsername = "username"
	ParamMovieID  = "movieID"
)

// Handler implements account and favorites HTTP endpoints.
//
// # Scope
//
// Every endpoint here operates on /users/{username} resources. Authentication
// and ownership checks run in the middleware pipeline before these handlers;
// the one policy the handler owns itself is the privileged-account deletion
// guard in [Handler.Delete].
type Handler struct {
	accountService *Service
	adminUsername  string
}

// NewHandler constructs a new [Handler] with its service dependency and the
// name of the privileged account.
func NewHandler(service *Service, adminUsername string) *Handler {
	return &Handler{
		accountService: service,
		adminUsername:  adminUsername,
	}
}

// # Request Payloads

type updateProfileRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Birth     string `json:"birth"`
}

/*
List returns every registered account.

GET /users

Description: Administrative listing of all user profiles. Password hashes
never serialize.

Response:
  - 200: []User: All accounts
  - 403: ErrForbidden: Caller is not the privileged account
*/
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.accountService.ListProfiles(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

/*
Get returns a single account by username.

GET /users/{username}

Response:
  - 200: User: The requested profile
  - 403: ErrForbidden: Caller does not own the resource
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, ParamUsername)

	user, err := handler.accountService.GetProfile(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Update replaces the full account profile.

PUT /users/{username}

Description: Full replacement with the same field rules as registration. The
password is always required, reconfirming intent, and is re-hashed before
storage. Changing the username is allowed; the favorites set follows the
rename through the storage cascade.

Request:
  - Body: updateProfileRequest (Username, Password, FirstName, LastName, Email, Birth)

Response:
  - 200: User: The refreshed profile
  - 404: ErrNotFound: Unknown username
  - 409: ErrConflict: New username already taken
  - 422: ErrValidation: Field rule violations
*/
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, ParamUsername)

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		MinLen(auth.FieldUsername, input.Username, auth.UsernameMinLen).
		Alphanumeric(auth.FieldUsername, input.Username).
		Required(auth.FieldPassword, input.Password).
		Required(auth.FieldFirstName, input.FirstName).
		Required(auth.FieldLastName, input.LastName).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		Date(auth.FieldBirth, input.Birth)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var birthDate *time.Time
	if input.Birth != "" {
		parsed, _ := time.Parse(validate.DateLayout, input.Birth)
		birthDate = &parsed
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), username, UpdateProfileInput{
		Username:  input.Username,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		BirthDate: birthDate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Delete permanently removes an account.

DELETE /users/{username}

Description: Hard deletion with cascade cleanup of the favorites set. The
privileged account cannot delete itself; every deployment keeps at least
one administrator.

Response:
  - 200: Success: "<username> was deleted."
  - 403: ErrForbidden: Privileged account self-deletion
  - 404: ErrNotFound: "<username> was not found."
*/
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, ParamUsername)

	// The privileged account is load-bearing for administration.
	if username == handler.adminUsername {
		respond.Error(writer, request, apperr.Forbidden("The administrator account cannot be deleted"))
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		auth.FieldMessage: username + " was deleted.",
	})
}

/*
AddFavorite adds a movie to the user's favorites set.

PUT /users/{username}/favorites/{movieID}

Description: Idempotent membership insert. Re-adding an existing favorite
returns the unchanged profile with the same success status.

Response:
  - 200: User: The post-operation profile
  - 404: ErrNotFound: Unknown account
  - 422: ErrValidation: Malformed movie identifier
*/
func (handler *Handler) AddFavorite(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, ParamUsername)
	movieID := requestutil.Param(request, ParamMovieID)

	v := &validate.Validator{}
	v.UUID(ParamMovieID, movieID)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.AddFavorite(request.Context(), username, movieID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
RemoveFavorite removes a movie from the user's favorites set.

DELETE /users/{username}/favorites/{movieID}

Description: Idempotent membership delete. Removing an absent favorite
returns the unchanged profile with the same success status.

Response:
  - 200: User: The post-operation profile
  - 422: ErrValidation: Malformed movie identifier
*/
func (handler *Handler) RemoveFavorite(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, ParamUsername)
	movieID := requestutil.Param(request, ParamMovieID)

	v := &validate.Validator{}
	v.UUID(ParamMovieID, movieID)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.RemoveFavorite(request.Context(), username, movieID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
