// Copyright (c) 2026 MovieFlix. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/movieflix/api/internal/platform/sec"
	"github.com/movieflix/api/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for user accounts and favorites.
//
// Favorites mutations delegate to single atomic repository statements so that
// concurrent requests for the same account can never lose each other's writes.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: The hydrated user profile
  - err: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, username string) (*auth.User, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
ListProfiles retrieves every registered account.

Description: Administrative listing. Password hashes never serialize; the
User entity hides them at the JSON layer.

Parameters:
  - context: context.Context

Returns:
  - []*auth.User: All accounts ordered by username
  - err: Storage failures
*/
func (service *Service) ListProfiles(context context.Context) ([]*auth.User, error) {
	users, err := service.accountRepository.List(context)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, nil
}

// UpdateProfileInput defines the full replacement state for an account.
// The password arrives in plaintext and is hashed before it leaves this package.
type UpdateProfileInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	BirthDate *time.Time
}

/*
UpdateProfile replaces every mutable field of an account.

Description: Full replacement, not a patch. The password is always present
(reconfirming intent) and is re-hashed here; the plaintext never reaches
storage or logs. A username rename carries the favorites set along via the
storage-level cascade.

Parameters:
  - context: context.Context
  - username: string (Current name of the account)
  - input: UpdateProfileInput

Returns:
  - *auth.User: The refreshed user profile
  - err: Not found, conflict on a taken username, hashing, or update failures
*/
func (service *Service) UpdateProfile(context context.Context, username string, input UpdateProfileInput) (*auth.User, error) {

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	user := &auth.User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		BirthDate:    input.BirthDate,
	}

	if err := service.accountRepository.Update(context, username, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("username", input.Username))

	return service.accountRepository.FindByUsername(context, input.Username)
}

/*
DeleteAccount permanently removes a user account.

Description: Hard deletion. The cascade on users.favorite cleans up the
favorites set in the same statement, and any outstanding token for the
account stops resolving at the auth gate.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - err: apperr.NotFound if the account does not exist
*/
func (service *Service) DeleteAccount(context context.Context, username string) error {
	if err := service.accountRepository.Delete(context, username); err != nil {
		return err
	}

	service.logger.Warn("user_account_deleted", slog.String("username", username))

	return nil
}

// # Favorites Management

/*
AddFavorite marks a movie as a favorite of the user.

Description: Adding an already-favorited movie succeeds without change. The
returned profile always reflects post-operation state.

Parameters:
  - context: context.Context
  - username: string
  - movieID: string (UUID)

Returns:
  - *auth.User: The updated user profile
  - err: apperr.NotFound if the account is unknown
*/
func (service *Service) AddFavorite(context context.Context, username, movieID string) (*auth.User, error) {
	if err := service.accountRepository.AddFavorite(context, username, movieID); err != nil {
		return nil, err
	}

	service.logger.Info("favorite_added",
		slog.String("username", username),
		slog.String("movie_id", movieID),
	)

	return service.accountRepository.FindByUsername(context, username)
}

/*
RemoveFavorite clears a movie from the user's favorites.

Description: Removing a movie that is not favorited succeeds without change.

Parameters:
  - context: context.Context
  - username: string
  - movieID: string (UUID)

Returns:
  - *auth.User: The updated user profile
  - err: Storage failures
*/
func (service *Service) RemoveFavorite(context context.Context, username, movieID string) (*auth.User, error) {
	if err := service.accountRepository.RemoveFavorite(context, username, movieID); err != nil {
		return nil, err
	}

	service.logger.Info("favorite_removed",
		slog.String("username", username),
		slog.String("movie_id", movieID),
	)

	return service.accountRepository.FindByUsername(context, username)
}
