// Copyright (c) 2026 MovieFlix. All rights reserved.

/*
Package catalog provides read-only access to the movie catalog.

It exposes movies plus the derived genre, director, and actor views projected
out of the movie records themselves. There is no write path: catalog content
is seeded and curated out of band.

# Architecture

  - Entities: Movie is the aggregate; Genre and Person are embedded values.
  - Storage: Person data lives as JSONB inside core.movie; the repository
    unnests it for the people-centric views.
  - Delivery: All endpoints require authentication but no ownership.
*/
package catalog

// Genre classifies a movie and carries its own display description.
type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Person describes a director or an actor attached to a movie.
//
// Year fields are pointers so that living people serialize without a
// death year rather than with a zero.
type Person struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	BirthYear *int   `json:"birthYear,omitempty"`
	DeathYear *int   `json:"deathYear,omitempty"`
}

// Movie is the central aggregate of the catalog.
//
// Titles are unique across the catalog, which makes exact-title lookup a
// stable access path alongside the UUID.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genre       Genre    `json:"genre"`
	Director    Person   `json:"director"`
	Actors      []Person `json:"actors"`
	ImagePath   string   `json:"image_path"`
	Featured    bool     `json:"featured"`
}
