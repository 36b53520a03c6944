// Copyright (c) 2026 MovieFlix. All rights reserved.

package account_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieflix/api/internal/platform/apperr"
	"github.com/movieflix/api/internal/platform/sec"
	"github.com/movieflix/api/internal/users/account"
	"github.com/movieflix/api/internal/users/auth"
)

// # Test Fakes

// fakeAccountRepository mimics the storage contract, including the
// idempotent single-statement favorites semantics.
type fakeAccountRepository struct {
	users       map[string]*auth.User
	favorites   map[string]map[string]bool
	deleteCalls int
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{
		users:     map[string]*auth.User{},
		favorites: map[string]map[string]bool{},
	}
}

func (f *fakeAccountRepository) addUser(username string) *auth.User {
	user := &auth.User{
		ID:        "01915b3a-8f4e-7cc2-a7b9-1f2e3d4c5b6a",
		Username:  username,
		FirstName: "Jamie",
		LastName:  "Doe",
		Email:     username + "@movieflix.app",
	}
	f.users[username] = user
	f.favorites[username] = map[string]bool{}
	return user
}

func (f *fakeAccountRepository) projection(username string) *auth.User {
	user := *f.users[username]
	user.Favorites = []string{}
	for movieID := range f.favorites[username] {
		user.Favorites = append(user.Favorites, movieID)
	}
	return &user
}

func (f *fakeAccountRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if _, ok := f.users[username]; !ok {
		return nil, apperr.NotFoundMsg(username + " was not found.")
	}
	return f.projection(username), nil
}

func (f *fakeAccountRepository) List(_ context.Context) ([]*auth.User, error) {
	users := []*auth.User{}
	for username := range f.users {
		users = append(users, f.projection(username))
	}
	return users, nil
}

func (f *fakeAccountRepository) Update(_ context.Context, currentUsername string, updated *auth.User) error {
	user, ok := f.users[currentUsername]
	if !ok {
		return apperr.NotFoundMsg(currentUsername + " was not found.")
	}
	if updated.Username != currentUsername {
		if _, taken := f.users[updated.Username]; taken {
			return apperr.Conflict(updated.Username + " already exists")
		}
		// Rename carries the favorites set, mirroring ON UPDATE CASCADE
		f.users[updated.Username] = user
		f.favorites[updated.Username] = f.favorites[currentUsername]
		delete(f.users, currentUsername)
		delete(f.favorites, currentUsername)
	}
	user.Username = updated.Username
	user.PasswordHash = updated.PasswordHash
	user.FirstName = updated.FirstName
	user.LastName = updated.LastName
	user.Email = updated.Email
	user.BirthDate = updated.BirthDate
	return nil
}

func (f *fakeAccountRepository) Delete(_ context.Context, username string) error {
	f.deleteCalls++
	if _, ok := f.users[username]; !ok {
		return apperr.NotFoundMsg(username + " was not found.")
	}
	delete(f.users, username)
	delete(f.favorites, username)
	return nil
}

func (f *fakeAccountRepository) AddFavorite(_ context.Context, username, movieID string) error {
	set, ok := f.favorites[username]
	if !ok {
		return apperr.NotFoundMsg(username + " was not found.")
	}
	set[movieID] = true
	return nil
}

func (f *fakeAccountRepository) RemoveFavorite(_ context.Context, username, movieID string) error {
	if set, ok := f.favorites[username]; ok {
		delete(set, movieID)
	}
	return nil
}

func newTestService(repo *fakeAccountRepository) *account.Service {
	return account.NewService(repo, slog.Default())
}

const movieID = "01915b3a-8f4e-7cc2-a7b9-1f2e3d4c5b6a"

// # Favorites Set Semantics

/*
TestService_AddFavorite_Idempotent verifies that adding the same movie twice
converges on a single membership entry.
*/
func TestService_AddFavorite_Idempotent(t *testing.T) {
	repo := newFakeAccountRepository()
	repo.addUser("moviefan42")
	service := newTestService(repo)

	first, err := service.AddFavorite(context.Background(), "moviefan42", movieID)
	require.NoError(t, err)
	assert.Equal(t, []string{movieID}, first.Favorites)

	second, err := service.AddFavorite(context.Background(), "moviefan42", movieID)
	require.NoError(t, err)
	assert.Equal(t, []string{movieID}, second.Favorites)
}

/*
TestService_RemoveFavorite_AbsentIsNoOp verifies that removing a movie that
was never favorited succeeds and leaves the set unchanged.
*/
func TestService_RemoveFavorite_AbsentIsNoOp(t *testing.T) {
	repo := newFakeAccountRepository()
	repo.addUser("moviefan42")
	service := newTestService(repo)

	user, err := service.RemoveFavorite(context.Background(), "moviefan42", movieID)
	require.NoError(t, err)
	assert.Empty(t, user.Favorites)
}

/*
TestService_FavoriteRoundTrip adds then removes a favorite and checks the
returned projections at each step.
*/
func TestService_FavoriteRoundTrip(t *testing.T) {
	repo := newFakeAccountRepository()
	repo.addUser("moviefan42")
	service := newTestService(repo)

	added, err := service.AddFavorite(context.Background(), "moviefan42", movieID)
	require.NoError(t, err)
	assert.Contains(t, added.Favorites, movieID)

	removed, err := service.RemoveFavorite(context.Background(), "moviefan42", movieID)
	require.NoError(t, err)
	assert.NotContains(t, removed.Favorites, movieID)
}

// # Profile Lifecycle

/*
TestService_UpdateProfile verifies re-hashing and the rename-with-favorites
behavior.
*/
func TestService_UpdateProfile(t *testing.T) {
	repo := newFakeAccountRepository()
	repo.addUser("moviefan42")
	require.NoError(t, repo.AddFavorite(context.Background(), "moviefan42", movieID))
	service := newTestService(repo)

	user, err := service.UpdateProfile(context.Background(), "moviefan42", account.UpdateProfileInput{
		Username:  "cinephile99",
		Password:  "fresh-secret",
		FirstName: "Jamie",
		LastName:  "Doe",
		Email:     "jamie@movieflix.app",
	})
	require.NoError(t, err)

	assert.Equal(t, "cinephile99", user.Username)
	assert.True(t, sec.CheckPasswordHash("fresh-secret", user.PasswordHash))

	// Favorites follow the rename
	assert.Contains(t, user.Favorites, movieID)
}

/*
TestService_UpdateProfile_Conflict verifies that renaming onto a taken
username is rejected with 409.
*/
func TestService_UpdateProfile_Conflict(t *testing.T) {
	repo := newFakeAccountRepository()
	repo.addUser("moviefan42")
	repo.addUser("cinephile99")
	service := newTestService(repo)

	_, err := service.UpdateProfile(context.Background(), "moviefan42", account.UpdateProfileInput{
		Username: "cinephile99",
		Password: "whatever",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 409, ae.HTTPStatus)
}

/*
TestService_DeleteAccount verifies hard deletion and the unknown-account miss.
*/
func TestService_DeleteAccount(t *testing.T) {
	repo := newFakeAccountRepository()
	repo.addUser("moviefan42")
	service := newTestService(repo)

	require.NoError(t, service.DeleteAccount(context.Background(), "moviefan42"))

	err := service.DeleteAccount(context.Background(), "moviefan42")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "moviefan42 was not found.", err.Error())
}
