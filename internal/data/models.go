package data

import (
	"database/sql"
	"errors"
	"time"
)

// Define a custom ErrRecordNotFound error. We'll return this from our Get(), Update() and Delete() methods when
// looking up a movie or person that doesn't exist in our database.
var (
	ErrRecordNotFound = errors.New("record not found")
)

// queryTimeout bounds every round trip to the database.
const queryTimeout = 3 * time.Second

// Models groups the movie and person stores. The fields are interfaces so the handlers can be run against
// the in-memory mock models in tests.
type Models struct {
	Movies interface {
		GetAll(pageIndex, pageSize int) ([]*Movie, int, error)
		Get(id int64) (*Movie, error)
		Insert(movie *Movie) error
		Update(movie *Movie, removed, added []int64) error
		Delete(id int64) error
	}
	People interface {
		GetAll(pageIndex, pageSize int) ([]*Person, int, error)
		Get(id int64) (*Person, error)
		GetByIDs(ids []int64) ([]*Person, error)
		Insert(person *Person) error
		Update(person *Person) error
		Delete(id int64) error
	}
}

// NewModels returns a Models struct containing the PostgreSQL backed stores.
func NewModels(db *sql.DB) Models {
	return Models{
		Movies: MovieModel{DB: db},
		People: PersonModel{DB: db},
	}
}

// NewMockModels returns a Models instance backed by a single in-memory catalog, so movies
// created through it can reference people created through it.
func NewMockModels() Models {
	c := newMockCatalog()
	return Models{
		Movies: MockMovieModel{catalog: c},
		People: MockPersonModel{catalog: c},
	}
}
