// Copyright (c) 2026 MovieFlix. All rights reserved.

package catalog

import (
	"context"
	"log/slog"

	"github.com/movieflix/api/internal/platform/apperr"
)

// # Service Layer

// Service exposes catalog read use cases over the repository.
type Service struct {
	movieRepository MovieRepository
	logger          *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(movieRepo MovieRepository, logger *slog.Logger) *Service {
	return &Service{
		movieRepository: movieRepo,
		logger:          logger,
	}
}

// ListMovies returns the full catalog.
func (service *Service) ListMovies(context context.Context) ([]*Movie, error) {
	return service.movieRepository.ListMovies(context)
}

/*
GetMovieByTitle resolves an exact-title lookup.

Description: A miss is not an error for this endpoint; the caller gets a nil
movie and renders it as a null payload.

Parameters:
  - context: context.Context
  - title: string

Returns:
  - *Movie: The matching entry, or nil on a miss
  - err: Storage failures only
*/
func (service *Service) GetMovieByTitle(context context.Context, title string) (*Movie, error) {
	movie, err := service.movieRepository.FindMovieByTitle(context, title)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return movie, nil
}

// ListGenres returns the distinct genres present in the catalog.
func (service *Service) ListGenres(context context.Context) ([]Genre, error) {
	return service.movieRepository.ListGenres(context)
}

// GetGenreByName returns one genre or apperr.NotFound.
func (service *Service) GetGenreByName(context context.Context, name string) (*Genre, error) {
	return service.movieRepository.FindGenreByName(context, name)
}

// ListDirectors returns the distinct directors across the catalog.
func (service *Service) ListDirectors(context context.Context) ([]Person, error) {
	return service.movieRepository.ListDirectors(context)
}

// GetDirectorByName returns one director or apperr.NotFound.
func (service *Service) GetDirectorByName(context context.Context, name string) (*Person, error) {
	return service.movieRepository.FindDirectorByName(context, name)
}

// ListActors returns the distinct actors across every cast list.
func (service *Service) ListActors(context context.Context) ([]Person, error) {
	return service.movieRepository.ListActors(context)
}

// GetActorByName returns one actor or apperr.NotFound.
func (service *Service) GetActorByName(context context.Context, name string) (*Person, error) {
	return service.movieRepository.FindActorByName(context, name)
}
