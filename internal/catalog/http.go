// Copyright (c) 2026 MovieFlix. All rights reserved.

package catalog

import (
	"net/http"

	requestutil "github.com/movieflix/api/internal/platform/request"
	"github.com/movieflix/api/internal/platform/respond"
)

// URL parameter names shared with the routing table.
const (
	ParamTitle = "title"
	ParamName  = "name"
)

// Handler implements catalog read HTTP endpoints.
//
// All routes here sit behind the authentication requirement; there is no
// per-resource ownership because catalog data is shared.
type Handler struct {
	catalogService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{catalogService: service}
}

/*
ListMovies returns every movie in the catalog.

GET /movies

Response:
  - 200: []Movie: Full catalog ordered by title
*/
func (handler *Handler) ListMovies(writer http.ResponseWriter, request *http.Request) {
	movies, err := handler.catalogService.ListMovies(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, movies)
}

/*
GetMovie returns one movie by exact title.

GET /movies/{title}

Description: A miss yields a successful response with a null payload rather
than a 404, matching the single-record lookup contract.

Response:
  - 200: Movie or null
*/
func (handler *Handler) GetMovie(writer http.ResponseWriter, request *http.Request) {
	title := requestutil.Param(request, ParamTitle)

	movie, err := handler.catalogService.GetMovieByTitle(request.Context(), title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if movie == nil {
		respond.OK(writer, nil)
		return
	}

	respond.OK(writer, movie)
}

/*
ListGenres returns the distinct genres in the catalog.

GET /genres

Response:
  - 200: []Genre
*/
func (handler *Handler) ListGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.catalogService.ListGenres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, genres)
}

/*
GetGenre returns one genre by exact name.

GET /genres/{name}

Response:
  - 200: Genre
  - 404: ErrNotFound: Unknown genre
*/
func (handler *Handler) GetGenre(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, ParamName)

	genre, err := handler.catalogService.GetGenreByName(request.Context(), name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, genre)
}

/*
ListDirectors returns the distinct directors in the catalog.

GET /directors

Response:
  - 200: []Person
*/
func (handler *Handler) ListDirectors(writer http.ResponseWriter, request *http.Request) {
	directors, err := handler.catalogService.ListDirectors(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, directors)
}

/*
GetDirector returns one director by exact name.

GET /directors/{name}

Response:
  - 200: Person
  - 404: ErrNotFound: Unknown director
*/
func (handler *Handler) GetDirector(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, ParamName)

	director, err := handler.catalogService.GetDirectorByName(request.Context(), name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, director)
}

/*
ListActors returns the distinct actors across every cast list.

GET /actors

Response:
  - 200: []Person
*/
func (handler *Handler) ListActors(writer http.ResponseWriter, request *http.Request) {
	actors, err := handler.catalogService.ListActors(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, actors)
}

/*
GetActor returns one actor by exact name.

GET /actors/{name}

Response:
  - 200: Person
  - 404: ErrNotFound: Unknown actor
*/
func (handler *Handler) GetActor(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, ParamName)

	actor, err := handler.catalogService.GetActorByName(request.Context(), name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, actor)
}
