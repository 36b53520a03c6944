// Copyright (c) 2026 MovieFlix. All rights reserved.

package catalog

import "context"

// MovieRepository defines the read contract over the movie catalog.
//
// Every lookup returns apperr.NotFound on a miss; the service layer decides
// which misses are errors and which are empty results.
type MovieRepository interface {
	/*
		ListMovies retrieves the full catalog ordered by title.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Movie: All catalog entries
		  - err: Storage failures
	*/
	ListMovies(context context.Context) ([]*Movie, error)

	/*
		FindMovieByTitle retrieves one movie by its exact title.

		Parameters:
		  - context: context.Context
		  - title: string

		Returns:
		  - *Movie: The matching entry
		  - err: apperr.NotFound or storage failures
	*/
	FindMovieByTitle(context context.Context, title string) (*Movie, error)

	/*
		ListGenres retrieves the distinct genres present in the catalog.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Genre: Distinct name/description pairs ordered by name
		  - err: Storage failures
	*/
	ListGenres(context context.Context) ([]Genre, error)

	/*
		FindGenreByName retrieves one genre by its exact name.

		Parameters:
		  - context: context.Context
		  - name: string

		Returns:
		  - *Genre: The matching genre
		  - err: apperr.NotFound or storage failures
	*/
	FindGenreByName(context context.Context, name string) (*Genre, error)

	/*
		ListDirectors retrieves the distinct directors across the catalog.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Person: One entry per director name, ordered by name
		  - err: Storage failures
	*/
	ListDirectors(context context.Context) ([]Person, error)

	/*
		FindDirectorByName retrieves one director by their exact name.

		Parameters:
		  - context: context.Context
		  - name: string

		Returns:
		  - *Person: The matching director
		  - err: apperr.NotFound or storage failures
	*/
	FindDirectorByName(context context.Context, name string) (*Person, error)

	/*
		ListActors retrieves the distinct actors unnested from every cast list.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Person: One entry per actor name, ordered by name
		  - err: Storage failures
	*/
	ListActors(context context.Context) ([]Person, error)

	/*
		FindActorByName retrieves one actor by their exact name.

		Parameters:
		  - context: context.Context
		  - name: string

		Returns:
		  - *Person: The matching actor
		  - err: apperr.NotFound or storage failures
	*/
	FindActorByName(context context.Context, name string) (*Person, error)
}
